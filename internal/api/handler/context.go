package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/taskflow/task-service/internal/api/middleware"
	"github.com/taskflow/task-service/internal/core/domain"
)

// callerIdentity returns the verified identity of the request. Routes behind
// the guard always have one; a missing identity is reported rather than
// treated as anonymous.
func callerIdentity(c echo.Context) (domain.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, domain.ErrAuthenticationRequired
	}
	return id, nil
}
