package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/task-service/internal/api/metrics"
	"github.com/taskflow/task-service/internal/core/domain"
)

type accessKind int

const (
	accessAuthenticated accessKind = iota
	accessPublic
	accessAnyRole
)

// Access is the requirement a route places on the caller.
type Access struct {
	kind  accessKind
	roles []domain.Role
}

func Public() Access        { return Access{kind: accessPublic} }
func Authenticated() Access { return Access{kind: accessAuthenticated} }

// AnyRole admits callers holding at least one of roles.
func AnyRole(roles ...domain.Role) Access {
	return Access{kind: accessAnyRole, roles: append([]domain.Role(nil), roles...)}
}

// Rule binds a path pattern to an access requirement. Patterns are exact
// paths or prefixes ending in "/**".
type Rule struct {
	Pattern string
	Access  Access
}

func (r Rule) matches(path string) bool {
	prefix, ok := strings.CutSuffix(r.Pattern, "/**")
	if !ok {
		return path == r.Pattern
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// Policy is an ordered rule table; the first matching rule wins and
// unmatched paths require authentication.
type Policy struct {
	rules []Rule
}

func NewPolicy(rules ...Rule) *Policy {
	return &Policy{rules: append([]Rule(nil), rules...)}
}

// Resolve returns the access requirement for path.
func (p *Policy) Resolve(path string) Access {
	for _, r := range p.rules {
		if r.matches(path) {
			return r.Access
		}
	}
	return Authenticated()
}

// DefaultPolicy is the route table of the task service.
func DefaultPolicy() *Policy {
	anyUser := AnyRole(domain.RoleUser, domain.RoleModerator, domain.RoleAdmin)
	return NewPolicy(
		Rule{Pattern: "/api/auth/**", Access: Public()},
		Rule{Pattern: "/api/test/all", Access: Public()},
		Rule{Pattern: "/api/test/user", Access: anyUser},
		Rule{Pattern: "/api/test/mod", Access: AnyRole(domain.RoleModerator)},
		Rule{Pattern: "/api/test/admin", Access: AnyRole(domain.RoleAdmin)},
		Rule{Pattern: "/api/admin/**", Access: AnyRole(domain.RoleAdmin)},
		Rule{Pattern: "/api/user/**", Access: AnyRole(domain.RoleUser)},
		Rule{Pattern: "/api/task/create", Access: anyUser},
		Rule{Pattern: "/api/task/**", Access: Authenticated()},
		Rule{Pattern: "/health", Access: Public()},
		Rule{Pattern: "/health/ready", Access: Public()},
		Rule{Pattern: "/metrics", Access: Public()},
		Rule{Pattern: "/swagger/**", Access: Public()},
	)
}

// Guard enforces policy against the identity set by Authenticate.
func Guard(policy *Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			access := policy.Resolve(c.Request().URL.Path)
			if access.kind == accessPublic {
				return next(c)
			}

			id, ok := IdentityFrom(c)
			if !ok {
				metrics.AuthorizationDecisionsTotal.WithLabelValues("unauthenticated").Inc()
				return domain.ErrAuthenticationRequired
			}
			if access.kind == accessAnyRole && !id.HasAnyRole(access.roles...) {
				metrics.AuthorizationDecisionsTotal.WithLabelValues("denied").Inc()
				return domain.ErrAuthorizationDenied
			}

			metrics.AuthorizationDecisionsTotal.WithLabelValues("allowed").Inc()
			return next(c)
		}
	}
}
