package service

import (
	"context"

	"github.com/luct/reporting-system/internal/core/domain"
	"github.com/luct/reporting-system/internal/core/ports"
)

// DirectoryService exposes the read-only reference listings.
type DirectoryService struct {
	directory ports.DirectoryRepository
	users     ports.UserRepository
}

func NewDirectoryService(directory ports.DirectoryRepository, users ports.UserRepository) *DirectoryService {
	return &DirectoryService{directory: directory, users: users}
}

func (s *DirectoryService) ListFaculties(ctx context.Context) ([]domain.Faculty, error) {
	return s.directory.ListFaculties(ctx)
}

func (s *DirectoryService) ListClasses(ctx context.Context) ([]domain.Class, error) {
	return s.directory.ListClasses(ctx)
}

func (s *DirectoryService) ListCourses(ctx context.Context, facultyID string) ([]domain.Course, error) {
	return s.directory.ListCourses(ctx, facultyID)
}

func (s *DirectoryService) ListLecturers(ctx context.Context) ([]ports.LecturerInfo, error) {
	lecturers, err := s.users.ListLecturers(ctx, "")
	if err != nil {
		return nil, err
	}

	infos := make([]ports.LecturerInfo, 0, len(lecturers))
	for _, l := range lecturers {
		infos = append(infos, ports.LecturerInfo{ID: l.ID, Name: l.Name, FacultyID: l.FacultyID})
	}
	return infos, nil
}
