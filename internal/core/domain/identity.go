package domain

import (
	"errors"
	"time"
)

var (
	ErrTokenMalformed        = errors.New("token is malformed")
	ErrTokenExpired          = errors.New("token is expired")
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
	ErrTokenUnsupported      = errors.New("token format is unsupported")

	ErrAuthenticationRequired = errors.New("authentication required")
	ErrAuthorizationDenied    = errors.New("access denied")
)

// Claims is the verified content of a session token.
type Claims struct {
	ID        string
	Subject   string
	Roles     []Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Identity is the request-scoped view of an authenticated caller.
// It is built only from verified claims and lives for one request.
type Identity struct {
	Subject string
	Roles   []Role
}

// IdentityFromClaims derives the request identity from verified claims.
func IdentityFromClaims(c Claims) Identity {
	roles := make([]Role, len(c.Roles))
	copy(roles, c.Roles)
	return Identity{Subject: c.Subject, Roles: roles}
}

// HasRole reports whether the identity holds role r.
func (i Identity) HasRole(r Role) bool {
	for _, held := range i.Roles {
		if held == r {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the identity holds at least one of roles.
func (i Identity) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if i.HasRole(r) {
			return true
		}
	}
	return false
}

// Owns reports whether a resource owned by ownerID belongs to this identity.
func (i Identity) Owns(ownerID string) bool {
	return i.Subject != "" && ownerID == i.Subject
}
