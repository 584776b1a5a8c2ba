package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/luct/reporting-system/internal/core/domain"
	"github.com/luct/reporting-system/internal/core/ports"
)

// AssignmentService implements course-to-lecturer assignment management.
// Deletion is restricted to the PL who created the assignment; the creator
// id is part of the delete filter so the check cannot race the write.
type AssignmentService struct {
	assignments ports.AssignmentRepository
	directory   ports.DirectoryRepository
	users       ports.UserRepository
	log         zerolog.Logger
}

func NewAssignmentService(assignments ports.AssignmentRepository, directory ports.DirectoryRepository, users ports.UserRepository, log zerolog.Logger) *AssignmentService {
	return &AssignmentService{assignments: assignments, directory: directory, users: users, log: log}
}

func (s *AssignmentService) Assign(ctx context.Context, principal domain.Principal, courseID, lecturerID string) (*domain.CourseAssignment, error) {
	if principal.Role != domain.RolePL {
		return nil, domain.ErrForbidden
	}
	if courseID == "" || lecturerID == "" {
		return nil, fmt.Errorf("%w: course_id and lecturer_id are required", domain.ErrValidation)
	}

	if _, err := s.directory.FindCourse(ctx, courseID); err != nil {
		return nil, fmt.Errorf("%w: unknown course %q", domain.ErrValidation, courseID)
	}
	lecturer, err := s.users.FindByID(ctx, lecturerID)
	if err != nil || lecturer.Role != domain.RoleLecturer {
		return nil, fmt.Errorf("%w: %q is not a lecturer", domain.ErrValidation, lecturerID)
	}

	assignment := &domain.CourseAssignment{
		CourseID:   courseID,
		LecturerID: lecturerID,
		AssignedBy: principal.ID,
		AssignedAt: time.Now().UTC(),
	}

	created, err := s.assignments.Create(ctx, assignment)
	if err != nil {
		s.log.Error().Err(err).Str("course_id", courseID).Msg("failed to create assignment")
		return nil, err
	}

	s.log.Info().Str("assignment_id", created.ID).Str("course_id", courseID).Str("lecturer_id", lecturerID).Msg("course assigned")
	return created, nil
}

// List returns assignments enriched with course and user display names.
// Lecturers only see rows where they are the assignee.
func (s *AssignmentService) List(ctx context.Context, principal domain.Principal) ([]ports.AssignmentView, error) {
	switch principal.Role {
	case domain.RolePL, domain.RolePRL, domain.RoleLecturer:
	default:
		return nil, domain.ErrForbidden
	}

	lecturerID := ""
	if principal.Role == domain.RoleLecturer {
		lecturerID = principal.ID
	}

	rows, err := s.assignments.List(ctx, lecturerID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []ports.AssignmentView{}, nil
	}

	courseIDs := make([]string, 0, len(rows))
	userIDs := make([]string, 0, 2*len(rows))
	for _, a := range rows {
		courseIDs = append(courseIDs, a.CourseID)
		userIDs = append(userIDs, a.LecturerID, a.AssignedBy)
	}

	courses, err := s.directory.FindCourses(ctx, courseIDs)
	if err != nil {
		return nil, err
	}
	users, err := s.users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	views := make([]ports.AssignmentView, 0, len(rows))
	for _, a := range rows {
		view := ports.AssignmentView{
			ID:         a.ID,
			CourseID:   a.CourseID,
			LecturerID: a.LecturerID,
			AssignedBy: a.AssignedBy,
			AssignedAt: a.AssignedAt,
		}
		if course, ok := courses[a.CourseID]; ok {
			view.CourseName = course.Name
			view.CourseCode = course.Code
		}
		if lecturer, ok := users[a.LecturerID]; ok {
			view.LecturerName = lecturer.Name
		}
		if assigner, ok := users[a.AssignedBy]; ok {
			view.AssignerName = assigner.Name
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *AssignmentService) Delete(ctx context.Context, principal domain.Principal, id string) error {
	if principal.Role != domain.RolePL {
		return domain.ErrForbidden
	}

	if err := s.assignments.DeleteOwned(ctx, id, principal.ID); err != nil {
		return err
	}
	s.log.Info().Str("assignment_id", id).Str("pl_id", principal.ID).Msg("assignment deleted")
	return nil
}
