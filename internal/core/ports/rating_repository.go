package ports

import (
	"context"

	"github.com/luct/reporting-system/internal/core/domain"
)

// RatingRepository defines persistence operations for lecturer ratings.
// DeleteOwned matches on both id and student owner in one conditional
// operation; zero deletions map to domain.ErrRatingNotFound.
type RatingRepository interface {
	Create(ctx context.Context, r *domain.Rating) (*domain.Rating, error)
	// List returns ratings newest-first, restricted to a student's own rows
	// when studentID is non-empty.
	List(ctx context.Context, studentID string) ([]*domain.Rating, error)
	ListByLecturer(ctx context.Context, lecturerID string) ([]*domain.Rating, error)
	DeleteOwned(ctx context.Context, id, studentID string) error
	// AggregateByLecturer computes per-lecturer rating count and mean in the
	// store, keyed by lecturer id.
	AggregateByLecturer(ctx context.Context) (map[string]domain.RatingAggregate, error)
}
