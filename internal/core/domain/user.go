package domain

import "time"

// Role is the closed set of actor roles in the platform. Roles are matched
// exactly; an unknown string never grants access.
type Role string

const (
	RoleStudent  Role = "Student"
	RoleLecturer Role = "Lecturer"
	RolePRL      Role = "PRL"
	RolePL       Role = "PL"
)

// ParseRole maps a raw string onto the Role enum.
// Returns ErrInvalidRole for anything outside the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleLecturer, RolePRL, RolePL:
		return Role(s), nil
	}
	return "", ErrInvalidRole
}

// User models an authenticated actor in the system.
// PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	FacultyID    string    `json:"faculty_id,omitempty"`
	FacultyName  string    `json:"faculty_name,omitempty"`
	ClassID      string    `json:"class_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal is the identity decoded from a verified token. It is the only
// actor representation the service layer trusts for ownership checks.
type Principal struct {
	ID        string
	Role      Role
	Name      string
	FacultyID string
}
