package ports

import (
	"context"

	"github.com/luct/reporting-system/internal/core/domain"
)

// DirectoryRepository reads the faculty/class/course reference data. This
// core never writes any of it.
type DirectoryRepository interface {
	ListFaculties(ctx context.Context) ([]domain.Faculty, error)
	FindFaculty(ctx context.Context, id string) (*domain.Faculty, error)
	ListClasses(ctx context.Context) ([]domain.Class, error)
	FindClass(ctx context.Context, id string) (*domain.Class, error)
	// ListCourses narrows to a faculty when facultyID is non-empty.
	ListCourses(ctx context.Context, facultyID string) ([]domain.Course, error)
	FindCourse(ctx context.Context, id string) (*domain.Course, error)
	// FindCourses resolves course details in bulk for read-time enrichment.
	FindCourses(ctx context.Context, ids []string) (map[string]*domain.Course, error)
}
