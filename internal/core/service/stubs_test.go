package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/luct/reporting-system/internal/core/domain"
	"github.com/luct/reporting-system/internal/core/ports"
)

// In-memory stand-ins for the Mongo repositories. They reproduce the
// conditional-filter semantics of the real ones: owner-scoped mutations
// match id and owner together, and report an absent match the same way as a
// missing record.

type stubUserRepo struct {
	seq      int
	users    map[string]*domain.User
	students map[string]string // userID -> classID
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User), students: make(map[string]string)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	result := make(map[string]*domain.User)
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			result[id] = cloneUser(u)
		}
	}
	return result, nil
}

func (r *stubUserRepo) ListLecturers(_ context.Context, facultyID string) ([]*domain.User, error) {
	var lecturers []*domain.User
	for _, u := range r.users {
		if u.Role != domain.RoleLecturer {
			continue
		}
		if facultyID != "" && u.FacultyID != facultyID {
			continue
		}
		lecturers = append(lecturers, cloneUser(u))
	}
	sort.Slice(lecturers, func(i, j int) bool { return lecturers[i].Name < lecturers[j].Name })
	return lecturers, nil
}

func (r *stubUserRepo) CreateStudentProfile(_ context.Context, userID, classID string) error {
	r.students[userID] = classID
	return nil
}

// add seeds a user directly, bypassing registration.
func (r *stubUserRepo) add(u *domain.User) *domain.User {
	r.seq++
	copy := cloneUser(u)
	if copy.ID == "" {
		copy.ID = fmt.Sprintf("user-%d", r.seq)
	}
	r.users[copy.ID] = copy
	return copy
}

type stubDirectoryRepo struct {
	faculties map[string]*domain.Faculty
	classes   map[string]*domain.Class
	courses   map[string]*domain.Course
}

func newStubDirectoryRepo() *stubDirectoryRepo {
	return &stubDirectoryRepo{
		faculties: make(map[string]*domain.Faculty),
		classes:   make(map[string]*domain.Class),
		courses:   make(map[string]*domain.Course),
	}
}

func (r *stubDirectoryRepo) ListFaculties(_ context.Context) ([]domain.Faculty, error) {
	var out []domain.Faculty
	for _, f := range r.faculties {
		out = append(out, *f)
	}
	return out, nil
}

func (r *stubDirectoryRepo) FindFaculty(_ context.Context, id string) (*domain.Faculty, error) {
	if f, ok := r.faculties[id]; ok {
		clone := *f
		return &clone, nil
	}
	return nil, domain.ErrFacultyNotFound
}

func (r *stubDirectoryRepo) ListClasses(_ context.Context) ([]domain.Class, error) {
	var out []domain.Class
	for _, c := range r.classes {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubDirectoryRepo) FindClass(_ context.Context, id string) (*domain.Class, error) {
	if c, ok := r.classes[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, domain.ErrClassNotFound
}

func (r *stubDirectoryRepo) ListCourses(_ context.Context, facultyID string) ([]domain.Course, error) {
	var out []domain.Course
	for _, c := range r.courses {
		if facultyID == "" || c.FacultyID == facultyID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubDirectoryRepo) FindCourse(_ context.Context, id string) (*domain.Course, error) {
	if c, ok := r.courses[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, domain.ErrCourseNotFound
}

func (r *stubDirectoryRepo) FindCourses(_ context.Context, ids []string) (map[string]*domain.Course, error) {
	result := make(map[string]*domain.Course)
	for _, id := range ids {
		if c, ok := r.courses[id]; ok {
			clone := *c
			result[id] = &clone
		}
	}
	return result, nil
}

type stubReportRepo struct {
	seq     int
	reports map[string]*domain.Report
}

func newStubReportRepo() *stubReportRepo {
	return &stubReportRepo{reports: make(map[string]*domain.Report)}
}

func cloneReport(r *domain.Report) *domain.Report {
	clone := *r
	return &clone
}

func (r *stubReportRepo) Create(_ context.Context, report *domain.Report) (*domain.Report, error) {
	r.seq++
	copy := cloneReport(report)
	copy.ID = fmt.Sprintf("report-%d", r.seq)
	r.reports[copy.ID] = cloneReport(copy)
	return cloneReport(copy), nil
}

func (r *stubReportRepo) List(_ context.Context, lecturerID string) ([]*domain.Report, error) {
	var out []*domain.Report
	for _, rep := range r.reports {
		if lecturerID == "" || rep.LecturerID == lecturerID {
			out = append(out, cloneReport(rep))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubReportRepo) FindByID(_ context.Context, id string) (*domain.Report, error) {
	if rep, ok := r.reports[id]; ok {
		return cloneReport(rep), nil
	}
	return nil, domain.ErrReportNotFound
}

func (r *stubReportRepo) UpdateOwned(_ context.Context, id, lecturerID string, patch domain.ReportPatch) error {
	rep, ok := r.reports[id]
	if !ok || rep.LecturerID != lecturerID {
		return domain.ErrReportNotFound
	}
	if patch.WeekOfReporting != nil {
		rep.WeekOfReporting = *patch.WeekOfReporting
	}
	if patch.DateOfLecture != nil {
		rep.DateOfLecture = *patch.DateOfLecture
	}
	if patch.StudentsPresent != nil {
		rep.StudentsPresent = *patch.StudentsPresent
	}
	if patch.TotalStudents != nil {
		rep.TotalStudents = *patch.TotalStudents
	}
	if patch.Venue != nil {
		rep.Venue = *patch.Venue
	}
	if patch.LectureTime != nil {
		rep.LectureTime = *patch.LectureTime
	}
	if patch.Topic != nil {
		rep.Topic = *patch.Topic
	}
	if patch.LearningOutcomes != nil {
		rep.LearningOutcomes = *patch.LearningOutcomes
	}
	if patch.Recommendations != nil {
		rep.Recommendations = *patch.Recommendations
	}
	return nil
}

func (r *stubReportRepo) DeleteOwned(_ context.Context, id, lecturerID string) error {
	rep, ok := r.reports[id]
	if !ok || rep.LecturerID != lecturerID {
		return domain.ErrReportNotFound
	}
	delete(r.reports, id)
	return nil
}

func (r *stubReportRepo) SetFeedback(_ context.Context, id, feedback string) error {
	rep, ok := r.reports[id]
	if !ok {
		return domain.ErrReportNotFound
	}
	rep.PRLFeedback = feedback
	return nil
}

type stubAssignmentRepo struct {
	seq         int
	assignments map[string]*domain.CourseAssignment
}

func newStubAssignmentRepo() *stubAssignmentRepo {
	return &stubAssignmentRepo{assignments: make(map[string]*domain.CourseAssignment)}
}

func (r *stubAssignmentRepo) Create(_ context.Context, a *domain.CourseAssignment) (*domain.CourseAssignment, error) {
	r.seq++
	copy := *a
	copy.ID = fmt.Sprintf("assignment-%d", r.seq)
	stored := copy
	r.assignments[copy.ID] = &stored
	return &copy, nil
}

func (r *stubAssignmentRepo) List(_ context.Context, lecturerID string) ([]*domain.CourseAssignment, error) {
	var out []*domain.CourseAssignment
	for _, a := range r.assignments {
		if lecturerID == "" || a.LecturerID == lecturerID {
			clone := *a
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AssignedAt.After(out[j].AssignedAt) })
	return out, nil
}

func (r *stubAssignmentRepo) DeleteOwned(_ context.Context, id, assignedBy string) error {
	a, ok := r.assignments[id]
	if !ok || a.AssignedBy != assignedBy {
		return domain.ErrAssignmentNotFound
	}
	delete(r.assignments, id)
	return nil
}

type stubRatingRepo struct {
	seq     int
	ratings map[string]*domain.Rating
}

func newStubRatingRepo() *stubRatingRepo {
	return &stubRatingRepo{ratings: make(map[string]*domain.Rating)}
}

func (r *stubRatingRepo) Create(_ context.Context, rating *domain.Rating) (*domain.Rating, error) {
	r.seq++
	copy := *rating
	copy.ID = fmt.Sprintf("rating-%d", r.seq)
	stored := copy
	r.ratings[copy.ID] = &stored
	return &copy, nil
}

func (r *stubRatingRepo) List(_ context.Context, studentID string) ([]*domain.Rating, error) {
	var out []*domain.Rating
	for _, rt := range r.ratings {
		if studentID == "" || rt.StudentID == studentID {
			clone := *rt
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubRatingRepo) ListByLecturer(_ context.Context, lecturerID string) ([]*domain.Rating, error) {
	var out []*domain.Rating
	for _, rt := range r.ratings {
		if rt.LecturerID == lecturerID {
			clone := *rt
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubRatingRepo) DeleteOwned(_ context.Context, id, studentID string) error {
	rt, ok := r.ratings[id]
	if !ok || rt.StudentID != studentID {
		return domain.ErrRatingNotFound
	}
	delete(r.ratings, id)
	return nil
}

func (r *stubRatingRepo) AggregateByLecturer(_ context.Context) (map[string]domain.RatingAggregate, error) {
	sums := make(map[string]int)
	counts := make(map[string]int64)
	for _, rt := range r.ratings {
		sums[rt.LecturerID] += rt.Rating
		counts[rt.LecturerID]++
	}
	result := make(map[string]domain.RatingAggregate, len(counts))
	for id, count := range counts {
		result[id] = domain.RatingAggregate{Count: count, Mean: float64(sums[id]) / float64(count)}
	}
	return result, nil
}

type stubSummaryCache struct {
	entries map[string][]ports.LecturerRatingSummary
	hits    int
	sets    int
}

func newStubSummaryCache() *stubSummaryCache {
	return &stubSummaryCache{entries: make(map[string][]ports.LecturerRatingSummary)}
}

func (c *stubSummaryCache) Get(_ context.Context, facultyID string) ([]ports.LecturerRatingSummary, error) {
	if items, ok := c.entries[facultyID]; ok {
		c.hits++
		return items, nil
	}
	return nil, nil
}

func (c *stubSummaryCache) Set(_ context.Context, facultyID string, items []ports.LecturerRatingSummary) error {
	c.sets++
	c.entries[facultyID] = items
	return nil
}
