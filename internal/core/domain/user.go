package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUnknownIdentity    = errors.New("email is not in use")
	ErrInvalidCredentials = errors.New("bad credentials")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrEmailTaken         = errors.New("email is already in use")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
)

// RoleRef is the reference a user document keeps to a role catalog record.
type RoleRef struct {
	ID   string `json:"id"`
	Name Role   `json:"name"`
}

// User models an account that can authenticate against the service.
// PasswordHash always holds a bcrypt digest once persisted.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Roles        []RoleRef `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
}

// RoleNames returns the role identifiers held by the user, in stored order.
func (u *User) RoleNames() []Role {
	names := make([]Role, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}
