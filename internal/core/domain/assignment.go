package domain

import "time"

// CourseAssignment links a course to a lecturer. AssignedBy records the PL
// who created it; only that PL may delete it.
type CourseAssignment struct {
	ID         string    `json:"id"`
	CourseID   string    `json:"course_id"`
	LecturerID string    `json:"lecturer_id"`
	AssignedBy string    `json:"assigned_by"`
	AssignedAt time.Time `json:"assigned_at"`
}
