package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taskflow/task-service/internal/core/domain"
	"github.com/taskflow/task-service/internal/core/ports"
)

// RoleCatalog fronts the persisted role records. Records are only created by
// Bootstrap; Lookup never creates anything.
type RoleCatalog struct {
	repo   ports.RoleRepository
	logger zerolog.Logger
}

func NewRoleCatalog(repo ports.RoleRepository, logger zerolog.Logger) *RoleCatalog {
	return &RoleCatalog{repo: repo, logger: logger}
}

// Bootstrap ensures one record per role exists. It is safe to run on every start.
func (c *RoleCatalog) Bootstrap(ctx context.Context) error {
	for _, r := range domain.AllRoles() {
		rec, err := c.repo.Ensure(ctx, r)
		if err != nil {
			return fmt.Errorf("bootstrap role %s: %w", r, err)
		}
		c.logger.Debug().Str("role", string(rec.Name)).Str("id", rec.ID).Msg("role catalog entry ready")
	}
	return nil
}

// Lookup returns the catalog record for name, or an error wrapping
// domain.ErrRoleCatalogMissing when the catalog was never seeded.
func (c *RoleCatalog) Lookup(ctx context.Context, name domain.Role) (*domain.RoleRecord, error) {
	rec, err := c.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrRoleCatalogMissing, name)
		}
		return nil, fmt.Errorf("lookup role %s: %w", name, err)
	}
	return rec, nil
}
