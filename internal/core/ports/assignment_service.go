package ports

import (
	"context"
	"time"

	"github.com/luct/reporting-system/internal/core/domain"
)

// AssignmentView is an assignment row enriched at read time with the course
// and user display names the dashboards render.
type AssignmentView struct {
	ID           string    `json:"id"`
	CourseID     string    `json:"course_id"`
	CourseName   string    `json:"course_name"`
	CourseCode   string    `json:"course_code"`
	LecturerID   string    `json:"lecturer_id"`
	LecturerName string    `json:"lecturer_name"`
	AssignedBy   string    `json:"assigned_by"`
	AssignerName string    `json:"assigner_name"`
	AssignedAt   time.Time `json:"assigned_at"`
}

// AssignmentService defines the course-assignment use-cases.
type AssignmentService interface {
	Assign(ctx context.Context, principal domain.Principal, courseID, lecturerID string) (*domain.CourseAssignment, error)
	List(ctx context.Context, principal domain.Principal) ([]AssignmentView, error)
	Delete(ctx context.Context, principal domain.Principal, id string) error
}
