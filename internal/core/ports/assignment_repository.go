package ports

import (
	"context"

	"github.com/luct/reporting-system/internal/core/domain"
)

// AssignmentRepository defines persistence operations for course assignments.
// DeleteOwned matches on both id and creator in one conditional operation;
// zero deletions map to domain.ErrAssignmentNotFound.
type AssignmentRepository interface {
	Create(ctx context.Context, a *domain.CourseAssignment) (*domain.CourseAssignment, error)
	// List returns assignments newest-first, restricted to a lecturer when
	// lecturerID is non-empty.
	List(ctx context.Context, lecturerID string) ([]*domain.CourseAssignment, error)
	DeleteOwned(ctx context.Context, id, assignedBy string) error
}
