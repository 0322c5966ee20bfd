package ports

import (
	"context"

	"github.com/taskflow/task-service/internal/core/domain"
)

// UserRepository defines the credential store operations the authenticator needs.
// Create must enforce username and email uniqueness atomically and report a
// collision as domain.ErrUsernameTaken or domain.ErrEmailTaken.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// RoleRepository is the persisted role catalog.
type RoleRepository interface {
	// FindByName returns domain.ErrRoleNotFound when no record exists.
	FindByName(ctx context.Context, name domain.Role) (*domain.RoleRecord, error)
	// Ensure creates the record for name if it is absent and returns it.
	// Calling it repeatedly yields the same record.
	Ensure(ctx context.Context, name domain.Role) (*domain.RoleRecord, error)
}
