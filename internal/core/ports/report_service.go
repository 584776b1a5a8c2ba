package ports

import (
	"context"

	"github.com/luct/reporting-system/internal/core/domain"
)

// CreateReportInput carries the lecturer-supplied report fields. Class and
// course display names are resolved server-side at write time; the client
// only sends references.
type CreateReportInput struct {
	ClassID          string
	CourseID         string
	WeekOfReporting  string
	DateOfLecture    string
	StudentsPresent  int
	TotalStudents    int
	Venue            string
	LectureTime      string
	Topic            string
	LearningOutcomes string
	Recommendations  string
}

// ReportService defines the report lifecycle use-cases. Every method takes
// the acting principal; ownership and role rules are enforced here, never in
// the transport layer alone.
type ReportService interface {
	Create(ctx context.Context, principal domain.Principal, input CreateReportInput) (*domain.Report, error)
	List(ctx context.Context, principal domain.Principal) ([]*domain.Report, error)
	Update(ctx context.Context, principal domain.Principal, id string, patch domain.ReportPatch) (*domain.Report, error)
	Delete(ctx context.Context, principal domain.Principal, id string) error
	AttachFeedback(ctx context.Context, principal domain.Principal, id, feedback string) error
}
