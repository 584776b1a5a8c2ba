package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/luct/reporting-system/internal/core/domain"
	"github.com/luct/reporting-system/internal/core/ports"
)

// ReportService implements the report lifecycle. Ownership rules live here:
// update and delete pass the acting lecturer's id into the repository filter,
// so the check and the mutation are one store operation.
type ReportService struct {
	reports   ports.ReportRepository
	directory ports.DirectoryRepository
	log       zerolog.Logger
}

func NewReportService(reports ports.ReportRepository, directory ports.DirectoryRepository, log zerolog.Logger) *ReportService {
	return &ReportService{reports: reports, directory: directory, log: log}
}

// Create persists a new report for the acting lecturer. Class and course
// display names are snapshotted at write time; a later rename of either must
// not alter what this report shows.
func (s *ReportService) Create(ctx context.Context, principal domain.Principal, input ports.CreateReportInput) (*domain.Report, error) {
	if principal.Role != domain.RoleLecturer {
		return nil, domain.ErrForbidden
	}
	if input.ClassID == "" || input.CourseID == "" || input.Topic == "" {
		return nil, fmt.Errorf("%w: class_id, course_id and topic are required", domain.ErrValidation)
	}

	class, err := s.directory.FindClass(ctx, input.ClassID)
	if err != nil {
		if errors.Is(err, domain.ErrClassNotFound) {
			return nil, fmt.Errorf("%w: unknown class %q", domain.ErrValidation, input.ClassID)
		}
		return nil, err
	}
	course, err := s.directory.FindCourse(ctx, input.CourseID)
	if err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			return nil, fmt.Errorf("%w: unknown course %q", domain.ErrValidation, input.CourseID)
		}
		return nil, err
	}

	report := &domain.Report{
		LecturerID:       principal.ID,
		LecturerName:     principal.Name,
		ClassID:          class.ID,
		ClassName:        class.Name,
		CourseID:         course.ID,
		CourseName:       course.Name,
		CourseCode:       course.Code,
		WeekOfReporting:  input.WeekOfReporting,
		DateOfLecture:    input.DateOfLecture,
		StudentsPresent:  input.StudentsPresent,
		TotalStudents:    input.TotalStudents,
		Venue:            input.Venue,
		LectureTime:      input.LectureTime,
		Topic:            input.Topic,
		LearningOutcomes: input.LearningOutcomes,
		Recommendations:  input.Recommendations,
		CreatedAt:        time.Now().UTC(),
	}

	created, err := s.reports.Create(ctx, report)
	if err != nil {
		s.log.Error().Err(err).Str("lecturer_id", principal.ID).Msg("failed to create report")
		return nil, err
	}

	s.log.Info().Str("report_id", created.ID).Str("lecturer_id", principal.ID).Msg("report created")
	return created, nil
}

// List returns reports newest-first. Lecturers only ever see their own rows;
// the filtering happens here, not in any client.
func (s *ReportService) List(ctx context.Context, principal domain.Principal) ([]*domain.Report, error) {
	lecturerID := ""
	if principal.Role == domain.RoleLecturer {
		lecturerID = principal.ID
	}
	return s.reports.List(ctx, lecturerID)
}

// Update applies the whitelisted patch to a report owned by the principal.
// A non-owner gets the same ErrReportNotFound as a missing id.
func (s *ReportService) Update(ctx context.Context, principal domain.Principal, id string, patch domain.ReportPatch) (*domain.Report, error) {
	if principal.Role != domain.RoleLecturer {
		return nil, domain.ErrForbidden
	}

	if err := s.reports.UpdateOwned(ctx, id, principal.ID, patch); err != nil {
		return nil, err
	}
	return s.reports.FindByID(ctx, id)
}

func (s *ReportService) Delete(ctx context.Context, principal domain.Principal, id string) error {
	if principal.Role != domain.RoleLecturer {
		return domain.ErrForbidden
	}

	if err := s.reports.DeleteOwned(ctx, id, principal.ID); err != nil {
		return err
	}
	s.log.Info().Str("report_id", id).Str("lecturer_id", principal.ID).Msg("report deleted")
	return nil
}

// AttachFeedback sets the prl_feedback field on any report. There is no
// ownership constraint — any PRL may review any report — and no other field
// can be touched through this path.
func (s *ReportService) AttachFeedback(ctx context.Context, principal domain.Principal, id, feedback string) error {
	if principal.Role != domain.RolePRL {
		return domain.ErrForbidden
	}
	if feedback == "" {
		return fmt.Errorf("%w: feedback is required", domain.ErrValidation)
	}

	if err := s.reports.SetFeedback(ctx, id, feedback); err != nil {
		return err
	}
	s.log.Info().Str("report_id", id).Str("prl_id", principal.ID).Msg("feedback attached")
	return nil
}
