package ports

import (
	"context"
	"time"

	"github.com/luct/reporting-system/internal/core/domain"
)

// RatingView is a rating row enriched with the lecturer and student display
// names resolved at read time.
type RatingView struct {
	ID           string    `json:"id"`
	LecturerID   string    `json:"lecturer_id"`
	LecturerName string    `json:"lecturer_name"`
	StudentID    string    `json:"student_id"`
	StudentName  string    `json:"student_name"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// LecturerRatingSummary is one row of the per-faculty ratings summary.
// Average is formatted to one decimal; "0.0" when the lecturer has no ratings.
type LecturerRatingSummary struct {
	LecturerID   string `json:"lecturer_id"`
	LecturerName string `json:"lecturer_name"`
	Count        int64  `json:"count"`
	Average      string `json:"average"`
}

// RatingService defines the rating use-cases.
type RatingService interface {
	Submit(ctx context.Context, principal domain.Principal, lecturerID string, rating int, comment string) (*domain.Rating, error)
	List(ctx context.Context, principal domain.Principal) ([]RatingView, error)
	// ListForLecturer returns the ratings about one lecturer, newest-first.
	ListForLecturer(ctx context.Context, lecturerID string) ([]RatingView, error)
	Delete(ctx context.Context, principal domain.Principal, id string) error
	// Summary computes count and mean rating for every lecturer in the given
	// faculty. Pure recomputation; results may be served from a short-lived
	// cache.
	Summary(ctx context.Context, facultyID string) ([]LecturerRatingSummary, error)
}
