package ports

import (
	"context"

	"github.com/luct/reporting-system/internal/core/domain"
)

// RegisterInput carries all data needed to create an account.
// ClassID is required for the Student role and ignored otherwise.
type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	Role      string
	FacultyID string
	ClassID   string
}

// AuthResult is returned on successful registration or login.
type AuthResult struct {
	Token string
	User  *domain.User
}

// AuthService defines credential verification and token issuance.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
