package domain

import "time"

// Report is a weekly lecture report submitted by a lecturer.
//
// ClassName, CourseName and CourseCode are snapshots resolved from the
// referenced class/course at creation time. They are immutable post-write:
// renaming a course later must not rewrite historical report display text.
type Report struct {
	ID               string    `json:"id"`
	LecturerID       string    `json:"lecturer_id"`
	LecturerName     string    `json:"lecturer_name"`
	ClassID          string    `json:"class_id"`
	ClassName        string    `json:"class_name"`
	CourseID         string    `json:"course_id"`
	CourseName       string    `json:"course_name"`
	CourseCode       string    `json:"course_code"`
	WeekOfReporting  string    `json:"week_of_reporting"`
	DateOfLecture    string    `json:"date_of_lecture"`
	StudentsPresent  int       `json:"students_present"`
	TotalStudents    int       `json:"total_students"`
	Venue            string    `json:"venue"`
	LectureTime      string    `json:"lecture_time"`
	Topic            string    `json:"topic"`
	LearningOutcomes string    `json:"learning_outcomes"`
	Recommendations  string    `json:"recommendations"`
	PRLFeedback      string    `json:"prl_feedback,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// Reviewed reports whether PRL feedback has been attached. Once set, a report
// never transitions back to unreviewed.
func (r *Report) Reviewed() bool {
	return r.PRLFeedback != ""
}

// ReportPatch carries the whitelisted mutable fields for an owner update.
// Nil fields are left unchanged. Ownership and feedback fields are
// deliberately absent.
type ReportPatch struct {
	WeekOfReporting  *string
	DateOfLecture    *string
	StudentsPresent  *int
	TotalStudents    *int
	Venue            *string
	LectureTime      *string
	Topic            *string
	LearningOutcomes *string
	Recommendations  *string
}
