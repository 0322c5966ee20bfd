package ports

import (
	"context"
	"time"

	"github.com/taskflow/task-service/internal/core/domain"
)

// SignupInput carries the account details submitted at signup.
// Roles holds raw request names ("admin", "mod", ...); nil or empty means default.
type SignupInput struct {
	Username string
	Email    string
	Password string
	Roles    []string
}

// LoginResult is the identity summary returned on successful login.
type LoginResult struct {
	Token    string
	ID       string
	Username string
	Email    string
	Roles    []domain.Role
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Signup(ctx context.Context, input SignupInput) error
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

// TokenIssuer mints session tokens.
type TokenIssuer interface {
	Issue(subject string, roles []domain.Role, now time.Time) (string, error)
}

// TokenVerifier checks session tokens against the verifier's clock.
type TokenVerifier interface {
	Verify(token string, now time.Time) (domain.Claims, error)
}

// LoginThrottle tracks failed logins per email. Implementations may be absent;
// callers treat store errors as non-fatal.
type LoginThrottle interface {
	Exceeded(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
