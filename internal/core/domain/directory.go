package domain

// Reference data read by registration forms and write-time snapshot lookups.
// This core never mutates any of it.

type Faculty struct {
	ID   string `json:"faculty_id"`
	Name string `json:"faculty_name"`
}

type Class struct {
	ID        string `json:"class_id"`
	Name      string `json:"class_name"`
	Year      int    `json:"year"`
	FacultyID string `json:"faculty_id"`
}

type Course struct {
	ID        string `json:"course_id"`
	Name      string `json:"course_name"`
	Code      string `json:"course_code"`
	FacultyID string `json:"faculty_id"`
}
