package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/luct/reporting-system/internal/core/domain"
	"github.com/luct/reporting-system/internal/core/ports"
)

// AuthService implements registration, login, and token issuance.
type AuthService struct {
	users     ports.UserRepository
	directory ports.DirectoryRepository
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, directory ports.DirectoryRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &AuthService{users: users, directory: directory, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" || input.Role == "" || input.FacultyID == "" {
		return nil, fmt.Errorf("%w: name, email, password, role and faculty_id are required", domain.ErrValidation)
	}

	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, input.Role)
	}
	if role == domain.RoleStudent && input.ClassID == "" {
		return nil, fmt.Errorf("%w: class_id is required for the Student role", domain.ErrValidation)
	}

	faculty, err := s.directory.FindFaculty(ctx, input.FacultyID)
	if err != nil {
		if errors.Is(err, domain.ErrFacultyNotFound) {
			return nil, fmt.Errorf("%w: unknown faculty %q", domain.ErrValidation, input.FacultyID)
		}
		return nil, err
	}
	if role == domain.RoleStudent {
		if _, err := s.directory.FindClass(ctx, input.ClassID); err != nil {
			if errors.Is(err, domain.ErrClassNotFound) {
				return nil, fmt.Errorf("%w: unknown class %q", domain.ErrValidation, input.ClassID)
			}
			return nil, err
		}
	}

	// Early duplicate check for a friendly 409. The unique index on email is
	// the real guarantee: concurrent registrations both passing this check
	// still cannot create two rows.
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
		FacultyID:    input.FacultyID,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if role == domain.RoleStudent {
		if err := s.users.CreateStudentProfile(ctx, created.ID, input.ClassID); err != nil {
			return nil, err
		}
		created.ClassID = input.ClassID
	}

	created.FacultyName = faculty.Name

	token, err := s.generateToken(created)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return &ports.AuthResult{Token: token, User: created}, nil
}

// Login authenticates by email only. Unknown accounts and wrong passwords
// both surface ErrInvalidCredentials so responses cannot be used to probe
// which emails are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if faculty, err := s.directory.FindFaculty(ctx, user.FacultyID); err == nil {
		user.FacultyName = faculty.Name
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")
	return &ports.AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"role":       string(user.Role),
		"name":       user.Name,
		"email":      user.Email,
		"faculty_id": user.FacultyID,
		"iat":        now.Unix(),
		"exp":        now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
