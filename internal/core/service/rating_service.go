package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/luct/reporting-system/internal/core/domain"
	"github.com/luct/reporting-system/internal/core/ports"
)

// SummaryCache abstracts the short-lived cache in front of the ratings
// summary (Redis). A miss or a cache failure always falls through to a full
// recomputation, so the cache can never serve wrong data for long.
type SummaryCache interface {
	Get(ctx context.Context, facultyID string) ([]ports.LecturerRatingSummary, error)
	Set(ctx context.Context, facultyID string, items []ports.LecturerRatingSummary) error
}

// RatingService implements rating submission, listing, deletion, and the
// per-faculty summary aggregation.
type RatingService struct {
	ratings ports.RatingRepository
	users   ports.UserRepository
	cache   SummaryCache
	log     zerolog.Logger
}

func NewRatingService(ratings ports.RatingRepository, users ports.UserRepository, cache SummaryCache, log zerolog.Logger) *RatingService {
	return &RatingService{ratings: ratings, users: users, cache: cache, log: log}
}

func (s *RatingService) Submit(ctx context.Context, principal domain.Principal, lecturerID string, rating int, comment string) (*domain.Rating, error) {
	if principal.Role != domain.RoleStudent {
		return nil, domain.ErrForbidden
	}
	if lecturerID == "" {
		return nil, fmt.Errorf("%w: lecturer_id is required", domain.ErrValidation)
	}
	if rating < domain.RatingMin || rating > domain.RatingMax {
		return nil, fmt.Errorf("%w: rating must be an integer between %d and %d", domain.ErrValidation, domain.RatingMin, domain.RatingMax)
	}

	lecturer, err := s.users.FindByID(ctx, lecturerID)
	if err != nil || lecturer.Role != domain.RoleLecturer {
		return nil, fmt.Errorf("%w: %q is not a lecturer", domain.ErrValidation, lecturerID)
	}

	created, err := s.ratings.Create(ctx, &domain.Rating{
		LecturerID: lecturerID,
		StudentID:  principal.ID,
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		s.log.Error().Err(err).Str("lecturer_id", lecturerID).Msg("failed to submit rating")
		return nil, err
	}

	s.log.Info().Str("rating_id", created.ID).Str("lecturer_id", lecturerID).Str("student_id", principal.ID).Msg("rating submitted")
	return created, nil
}

// List returns ratings enriched with display names. Students only ever see
// their own rows.
func (s *RatingService) List(ctx context.Context, principal domain.Principal) ([]ports.RatingView, error) {
	studentID := ""
	if principal.Role == domain.RoleStudent {
		studentID = principal.ID
	}

	rows, err := s.ratings.List(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, rows)
}

func (s *RatingService) ListForLecturer(ctx context.Context, lecturerID string) ([]ports.RatingView, error) {
	rows, err := s.ratings.ListByLecturer(ctx, lecturerID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, rows)
}

func (s *RatingService) Delete(ctx context.Context, principal domain.Principal, id string) error {
	if principal.Role != domain.RoleStudent {
		return domain.ErrForbidden
	}

	if err := s.ratings.DeleteOwned(ctx, id, principal.ID); err != nil {
		return err
	}
	s.log.Info().Str("rating_id", id).Str("student_id", principal.ID).Msg("rating deleted")
	return nil
}

// Summary computes count and mean rating for every lecturer in the faculty.
// Lecturers with no ratings appear with count 0 and average "0.0". The
// result is served from the cache when fresh.
func (s *RatingService) Summary(ctx context.Context, facultyID string) ([]ports.LecturerRatingSummary, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, facultyID); err != nil {
			s.log.Warn().Err(err).Msg("summary cache read failed, recomputing")
		} else if cached != nil {
			return cached, nil
		}
	}

	lecturers, err := s.users.ListLecturers(ctx, facultyID)
	if err != nil {
		return nil, err
	}
	aggregates, err := s.ratings.AggregateByLecturer(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]ports.LecturerRatingSummary, 0, len(lecturers))
	for _, l := range lecturers {
		row := ports.LecturerRatingSummary{
			LecturerID:   l.ID,
			LecturerName: l.Name,
			Average:      "0.0",
		}
		if agg, ok := aggregates[l.ID]; ok && agg.Count > 0 {
			row.Count = agg.Count
			row.Average = fmt.Sprintf("%.1f", agg.Mean)
		}
		items = append(items, row)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].LecturerName < items[j].LecturerName })

	if s.cache != nil {
		if err := s.cache.Set(ctx, facultyID, items); err != nil {
			s.log.Warn().Err(err).Msg("summary cache write failed")
		}
	}
	return items, nil
}

func (s *RatingService) enrich(ctx context.Context, rows []*domain.Rating) ([]ports.RatingView, error) {
	if len(rows) == 0 {
		return []ports.RatingView{}, nil
	}

	userIDs := make([]string, 0, 2*len(rows))
	for _, r := range rows {
		userIDs = append(userIDs, r.LecturerID, r.StudentID)
	}
	users, err := s.users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	views := make([]ports.RatingView, 0, len(rows))
	for _, r := range rows {
		view := ports.RatingView{
			ID:         r.ID,
			LecturerID: r.LecturerID,
			StudentID:  r.StudentID,
			Rating:     r.Rating,
			Comment:    r.Comment,
			CreatedAt:  r.CreatedAt,
		}
		if lecturer, ok := users[r.LecturerID]; ok {
			view.LecturerName = lecturer.Name
		}
		if student, ok := users[r.StudentID]; ok {
			view.StudentName = student.Name
		}
		views = append(views, view)
	}
	return views, nil
}
