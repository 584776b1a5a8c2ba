package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/luct/reporting-system/internal/core/domain"
	"github.com/luct/reporting-system/internal/core/ports"
)

type stubReportService struct {
	createFn   func(principal domain.Principal, input ports.CreateReportInput) (*domain.Report, error)
	listFn     func(principal domain.Principal) ([]*domain.Report, error)
	updateFn   func(principal domain.Principal, id string, patch domain.ReportPatch) (*domain.Report, error)
	deleteFn   func(principal domain.Principal, id string) error
	feedbackFn func(principal domain.Principal, id, feedback string) error
}

func (s *stubReportService) Create(_ context.Context, p domain.Principal, input ports.CreateReportInput) (*domain.Report, error) {
	return s.createFn(p, input)
}

func (s *stubReportService) List(_ context.Context, p domain.Principal) ([]*domain.Report, error) {
	return s.listFn(p)
}

func (s *stubReportService) Update(_ context.Context, p domain.Principal, id string, patch domain.ReportPatch) (*domain.Report, error) {
	return s.updateFn(p, id, patch)
}

func (s *stubReportService) Delete(_ context.Context, p domain.Principal, id string) error {
	return s.deleteFn(p, id)
}

func (s *stubReportService) AttachFeedback(_ context.Context, p domain.Principal, id, feedback string) error {
	return s.feedbackFn(p, id, feedback)
}

func TestReportHandler_Create(t *testing.T) {
	h := NewReportHandler(&stubReportService{
		createFn: func(p domain.Principal, input ports.CreateReportInput) (*domain.Report, error) {
			if p.ID != "lect-1" || p.Role != domain.RoleLecturer {
				t.Fatalf("unexpected principal: %+v", p)
			}
			if input.Topic != "REST APIs" || input.StudentsPresent != 38 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Report{ID: "report-1", Topic: input.Topic}, nil
		},
	})

	body := `{"class_id":"class-1","course_id":"course-1","week_of_reporting":"Week 6",` +
		`"date_of_lecture":"2026-03-02","students_present":38,"total_students":45,` +
		`"venue":"Room 12","lecture_time":"10:00","topic":"REST APIs"}`
	c, rec := newJSONContext(t, http.MethodPost, "/reports", body)
	setPrincipal(c, "lect-1", domain.RoleLecturer, "fac-1")

	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "report added") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestReportHandler_Create_MissingRequiredFields(t *testing.T) {
	h := NewReportHandler(&stubReportService{
		createFn: func(domain.Principal, ports.CreateReportInput) (*domain.Report, error) {
			t.Fatalf("service must not be called on invalid payload")
			return nil, nil
		},
	})

	c, _ := newJSONContext(t, http.MethodPost, "/reports", `{"class_id":"class-1"}`)
	setPrincipal(c, "lect-1", domain.RoleLecturer, "fac-1")

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestReportHandler_Create_MissingClaims(t *testing.T) {
	h := NewReportHandler(&stubReportService{})

	c, _ := newJSONContext(t, http.MethodPost, "/reports", `{}`)
	// No principal injected: the context fast-fail must trip before bind.
	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestReportHandler_Update_PatchPassthrough(t *testing.T) {
	h := NewReportHandler(&stubReportService{
		updateFn: func(p domain.Principal, id string, patch domain.ReportPatch) (*domain.Report, error) {
			if id != "report-1" {
				t.Fatalf("unexpected id %q", id)
			}
			if patch.Topic == nil || *patch.Topic != "Revised" {
				t.Fatalf("expected topic patch, got %+v", patch)
			}
			if patch.Venue != nil {
				t.Fatalf("absent fields must stay nil, got %+v", patch)
			}
			return &domain.Report{ID: id, Topic: *patch.Topic}, nil
		},
	})

	c, rec := newJSONContext(t, http.MethodPut, "/reports/report-1", `{"topic":"Revised"}`)
	c.SetParamNames("id")
	c.SetParamValues("report-1")
	setPrincipal(c, "lect-1", domain.RoleLecturer, "fac-1")

	if err := h.Update(c); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReportHandler_Update_NotOwner(t *testing.T) {
	h := NewReportHandler(&stubReportService{
		updateFn: func(domain.Principal, string, domain.ReportPatch) (*domain.Report, error) {
			return nil, domain.ErrReportNotFound
		},
	})

	c, _ := newJSONContext(t, http.MethodPut, "/reports/report-1", `{"topic":"Hijacked"}`)
	c.SetParamNames("id")
	c.SetParamValues("report-1")
	setPrincipal(c, "lect-2", domain.RoleLecturer, "fac-1")

	if err := h.Update(c); !errors.Is(err, domain.ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
}

func TestReportHandler_Delete(t *testing.T) {
	called := false
	h := NewReportHandler(&stubReportService{
		deleteFn: func(p domain.Principal, id string) error {
			called = true
			if id != "report-1" || p.ID != "lect-1" {
				t.Fatalf("unexpected call: %q by %+v", id, p)
			}
			return nil
		},
	})

	c, rec := newJSONContext(t, http.MethodDelete, "/reports/report-1", "")
	c.SetParamNames("id")
	c.SetParamValues("report-1")
	setPrincipal(c, "lect-1", domain.RoleLecturer, "fac-1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if !called {
		t.Fatalf("service not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReportHandler_AttachFeedback(t *testing.T) {
	h := NewReportHandler(&stubReportService{
		feedbackFn: func(p domain.Principal, id, feedback string) error {
			if p.Role != domain.RolePRL || id != "report-1" || feedback != "good coverage" {
				t.Fatalf("unexpected call: %q %q by %+v", id, feedback, p)
			}
			return nil
		},
	})

	c, rec := newJSONContext(t, http.MethodPut, "/reports/report-1/feedback", `{"feedback":"good coverage"}`)
	c.SetParamNames("id")
	c.SetParamValues("report-1")
	setPrincipal(c, "prl-1", domain.RolePRL, "fac-1")

	if err := h.AttachFeedback(c); err != nil {
		t.Fatalf("AttachFeedback returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newJSONContext(t, http.MethodPut, "/reports/report-1/feedback", `{"feedback":""}`)
	c.SetParamNames("id")
	c.SetParamValues("report-1")
	setPrincipal(c, "prl-1", domain.RolePRL, "fac-1")

	err := h.AttachFeedback(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty feedback, got %v", err)
	}
}
