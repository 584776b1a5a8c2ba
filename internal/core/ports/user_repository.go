package ports

import (
	"context"

	"github.com/luct/reporting-system/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Create must rely on the store's unique email constraint — the application
// level existence check alone cannot close the concurrent-registration race.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs resolves display names in bulk for read-time enrichment.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
	// ListLecturers returns all lecturer accounts; facultyID narrows the
	// result when non-empty.
	ListLecturers(ctx context.Context, facultyID string) ([]*domain.User, error)
	// CreateStudentProfile persists the role-specific auxiliary row linking a
	// student account to its class.
	CreateStudentProfile(ctx context.Context, userID, classID string) error
}
