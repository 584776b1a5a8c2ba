package domain

import "errors"

var (
	// ErrValidation wraps all missing/malformed-input failures (HTTP 400).
	ErrValidation = errors.New("validation failed")

	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("access forbidden")

	// Not-found and not-owner intentionally share one error per record type,
	// so a caller cannot distinguish "does not exist" from "not yours".
	ErrReportNotFound     = errors.New("report not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrRatingNotFound     = errors.New("rating not found")

	ErrFacultyNotFound = errors.New("faculty not found")
	ErrClassNotFound   = errors.New("class not found")
	ErrCourseNotFound  = errors.New("course not found")
)
