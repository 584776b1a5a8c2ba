package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/luct/reporting-system/internal/core/domain"
	"github.com/luct/reporting-system/internal/core/ports"
)

type stubRatingService struct {
	submitFn  func(principal domain.Principal, lecturerID string, rating int, comment string) (*domain.Rating, error)
	listFn    func(principal domain.Principal) ([]ports.RatingView, error)
	byLectFn  func(lecturerID string) ([]ports.RatingView, error)
	deleteFn  func(principal domain.Principal, id string) error
	summaryFn func(facultyID string) ([]ports.LecturerRatingSummary, error)
}

func (s *stubRatingService) Submit(_ context.Context, p domain.Principal, lecturerID string, rating int, comment string) (*domain.Rating, error) {
	return s.submitFn(p, lecturerID, rating, comment)
}

func (s *stubRatingService) List(_ context.Context, p domain.Principal) ([]ports.RatingView, error) {
	return s.listFn(p)
}

func (s *stubRatingService) ListForLecturer(_ context.Context, lecturerID string) ([]ports.RatingView, error) {
	return s.byLectFn(lecturerID)
}

func (s *stubRatingService) Delete(_ context.Context, p domain.Principal, id string) error {
	return s.deleteFn(p, id)
}

func (s *stubRatingService) Summary(_ context.Context, facultyID string) ([]ports.LecturerRatingSummary, error) {
	return s.summaryFn(facultyID)
}

func TestRatingHandler_Submit(t *testing.T) {
	h := NewRatingHandler(&stubRatingService{
		submitFn: func(p domain.Principal, lecturerID string, rating int, comment string) (*domain.Rating, error) {
			if p.ID != "stud-1" || lecturerID != "lect-1" || rating != 4 || comment != "clear" {
				t.Fatalf("unexpected call: %+v %q %d %q", p, lecturerID, rating, comment)
			}
			return &domain.Rating{ID: "rating-1", LecturerID: lecturerID, StudentID: p.ID, Rating: rating}, nil
		},
	})

	c, rec := newJSONContext(t, http.MethodPost, "/rate", `{"lecturer_id":"lect-1","rating":4,"comment":"clear"}`)
	setPrincipal(c, "stud-1", domain.RoleStudent, "fac-1")

	if err := h.Submit(c); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRatingHandler_Submit_RejectsOutOfRange(t *testing.T) {
	h := NewRatingHandler(&stubRatingService{
		submitFn: func(domain.Principal, string, int, string) (*domain.Rating, error) {
			t.Fatalf("service must not be called for out-of-range rating")
			return nil, nil
		},
	})

	for _, body := range []string{
		`{"lecturer_id":"lect-1","rating":0}`,
		`{"lecturer_id":"lect-1","rating":6}`,
		`{"lecturer_id":"lect-1","rating":-2}`,
		`{"rating":3}`,
	} {
		c, _ := newJSONContext(t, http.MethodPost, "/rate", body)
		setPrincipal(c, "stud-1", domain.RoleStudent, "fac-1")

		err := h.Submit(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %v", body, err)
		}
	}
}

func TestRatingHandler_Delete_NotOwner(t *testing.T) {
	h := NewRatingHandler(&stubRatingService{
		deleteFn: func(domain.Principal, string) error {
			return domain.ErrRatingNotFound
		},
	})

	c, _ := newJSONContext(t, http.MethodDelete, "/rate/rating-1", "")
	c.SetParamNames("id")
	c.SetParamValues("rating-1")
	setPrincipal(c, "stud-2", domain.RoleStudent, "fac-1")

	if err := h.Delete(c); !errors.Is(err, domain.ErrRatingNotFound) {
		t.Fatalf("expected ErrRatingNotFound, got %v", err)
	}
}

func TestRatingHandler_Summary_UsesTokenFaculty(t *testing.T) {
	h := NewRatingHandler(&stubRatingService{
		summaryFn: func(facultyID string) ([]ports.LecturerRatingSummary, error) {
			if facultyID != "fac-1" {
				t.Fatalf("expected faculty from token, got %q", facultyID)
			}
			return []ports.LecturerRatingSummary{
				{LecturerID: "lect-1", LecturerName: "Anna", Count: 3, Average: "4.0"},
			}, nil
		},
	})

	// The query string must not override the token's faculty scope.
	c, rec := newJSONContext(t, http.MethodGet, "/ratings-summary?faculty_id=fac-other", "")
	setPrincipal(c, "prl-1", domain.RolePRL, "fac-1")

	if err := h.Summary(c); err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var items []ports.LecturerRatingSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 1 || items[0].Average != "4.0" {
		t.Fatalf("unexpected payload: %+v", items)
	}
}
