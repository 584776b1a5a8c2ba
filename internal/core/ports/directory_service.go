package ports

import (
	"context"

	"github.com/luct/reporting-system/internal/core/domain"
)

// LecturerInfo is the safe projection of a lecturer account exposed by the
// directory listing (no email, no hash).
type LecturerInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	FacultyID string `json:"faculty_id,omitempty"`
}

// DirectoryService exposes the read-only reference listings that feed
// registration forms and dashboards.
type DirectoryService interface {
	ListFaculties(ctx context.Context) ([]domain.Faculty, error)
	ListClasses(ctx context.Context) ([]domain.Class, error)
	ListCourses(ctx context.Context, facultyID string) ([]domain.Course, error)
	ListLecturers(ctx context.Context) ([]LecturerInfo, error)
}
