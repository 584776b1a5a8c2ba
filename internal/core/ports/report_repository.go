package ports

import (
	"context"

	"github.com/luct/reporting-system/internal/core/domain"
)

// ReportRepository defines persistence operations for lecture reports.
//
// UpdateOwned and DeleteOwned take the owner id as part of the match filter
// so the ownership check and the mutation are a single conditional store
// operation — no read-then-write window. A zero matched/deleted count maps
// to domain.ErrReportNotFound regardless of whether the record exists.
type ReportRepository interface {
	Create(ctx context.Context, r *domain.Report) (*domain.Report, error)
	// List returns reports newest-first. When lecturerID is non-empty the
	// result is restricted to that lecturer's reports.
	List(ctx context.Context, lecturerID string) ([]*domain.Report, error)
	FindByID(ctx context.Context, id string) (*domain.Report, error)
	UpdateOwned(ctx context.Context, id, lecturerID string, patch domain.ReportPatch) error
	DeleteOwned(ctx context.Context, id, lecturerID string) error
	// SetFeedback updates only the prl_feedback field.
	SetFeedback(ctx context.Context, id, feedback string) error
}
