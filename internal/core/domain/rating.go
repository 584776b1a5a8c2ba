package domain

import "time"

const (
	RatingMin = 1
	RatingMax = 5
)

// Rating is a student's score for a lecturer. StudentID is the owner; only
// that student may delete the rating.
type Rating struct {
	ID         string    `json:"id"`
	LecturerID string    `json:"lecturer_id"`
	StudentID  string    `json:"student_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// RatingAggregate is the per-lecturer count and mean produced by the store.
type RatingAggregate struct {
	Count int64
	Mean  float64
}
