package domain

import "errors"

// Role is the closed set of roles a user can hold. The string value is the
// identifier carried in token claims and stored in the role catalog.
type Role string

const (
	RoleUser      Role = "ROLE_USER"
	RoleModerator Role = "ROLE_MODERATOR"
	RoleAdmin     Role = "ROLE_ADMIN"
)

var (
	ErrRoleNotFound       = errors.New("role not found")
	ErrRoleCatalogMissing = errors.New("role catalog is missing a required role")
)

// AllRoles lists every enumeration value; the catalog bootstrap seeds one record each.
func AllRoles() []Role {
	return []Role{RoleUser, RoleModerator, RoleAdmin}
}

// Valid reports whether r is one of the enumeration values.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// RoleFromRequest maps a role name sent at signup to a Role.
// "admin" and "mod" are recognised; every other value falls back to RoleUser.
func RoleFromRequest(name string) Role {
	switch name {
	case "admin":
		return RoleAdmin
	case "mod":
		return RoleModerator
	default:
		return RoleUser
	}
}

// RoleRecord is a persisted role catalog entry.
type RoleRecord struct {
	ID   string
	Name Role
}
