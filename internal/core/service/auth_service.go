package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskflow/task-service/internal/core/domain"
	"github.com/taskflow/task-service/internal/core/ports"
)

// AuthService implements signup and login.
type AuthService struct {
	users    ports.UserRepository
	roles    *RoleCatalog
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	throttle ports.LoginThrottle
	now      func() time.Time
	logger   zerolog.Logger
}

// AuthOption configures optional AuthService collaborators.
type AuthOption func(*AuthService)

// WithLoginThrottle enables failed-login limiting.
func WithLoginThrottle(t ports.LoginThrottle) AuthOption {
	return func(s *AuthService) { s.throttle = t }
}

// WithClock replaces time.Now as the source of token issue times.
func WithClock(now func() time.Time) AuthOption {
	return func(s *AuthService) { s.now = now }
}

func NewAuthService(
	users ports.UserRepository,
	roles *RoleCatalog,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	logger zerolog.Logger,
	opts ...AuthOption,
) *AuthService {
	s := &AuthService{
		users:  users,
		roles:  roles,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login looks the account up by email, verifies the password and mints a
// token whose subject is the username. Nothing is persisted.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if s.throttled(ctx, email) {
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			return nil, domain.ErrUnknownIdentity
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.recordFailure(ctx, email)
		return nil, domain.ErrInvalidCredentials
	}

	roles := user.RoleNames()
	token, err := s.tokens.Issue(user.Username, roles, s.now())
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	s.resetFailures(ctx, email)

	s.logger.Info().Str("username", user.Username).Msg("user logged in")

	return &ports.LoginResult{
		Token:    token,
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    roles,
	}, nil
}

// Signup creates an account. The password is hashed but not checked against
// the password policy.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) error {
	taken, err := s.users.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return fmt.Errorf("signup: %w", err)
	}
	if taken {
		return domain.ErrUsernameTaken
	}

	taken, err = s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return fmt.Errorf("signup: %w", err)
	}
	if taken {
		return domain.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return fmt.Errorf("signup: %w", err)
	}

	refs, err := s.resolveRoles(ctx, in.Roles)
	if err != nil {
		return err
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Roles:        refs,
		CreatedAt:    s.now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) || errors.Is(err, domain.ErrEmailTaken) {
			return err
		}
		return fmt.Errorf("signup: %w", err)
	}

	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return nil
}

// resolveRoles maps requested role names onto catalog records. No names means
// {USER}; unrecognised names fall back to USER; duplicates collapse.
func (s *AuthService) resolveRoles(ctx context.Context, names []string) ([]domain.RoleRef, error) {
	wanted := []domain.Role{domain.RoleUser}
	if len(names) > 0 {
		wanted = wanted[:0]
		seen := make(map[domain.Role]struct{}, len(names))
		for _, n := range names {
			r := domain.RoleFromRequest(n)
			if _, dup := seen[r]; dup {
				continue
			}
			seen[r] = struct{}{}
			wanted = append(wanted, r)
		}
	}

	refs := make([]domain.RoleRef, 0, len(wanted))
	for _, r := range wanted {
		rec, err := s.roles.Lookup(ctx, r)
		if err != nil {
			if errors.Is(err, domain.ErrRoleCatalogMissing) {
				s.logger.Error().Err(err).Str("role", string(r)).Msg("role catalog not seeded; check bootstrap")
			}
			return nil, err
		}
		refs = append(refs, domain.RoleRef{ID: rec.ID, Name: rec.Name})
	}
	return refs, nil
}

func (s *AuthService) throttled(ctx context.Context, email string) bool {
	if s.throttle == nil {
		return false
	}
	exceeded, err := s.throttle.Exceeded(ctx, email)
	if err != nil {
		s.logger.Warn().Err(err).Msg("login throttle check failed, continuing")
		return false
	}
	return exceeded
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record login failure")
	}
}

func (s *AuthService) resetFailures(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.Reset(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("failed to reset login failures")
	}
}
