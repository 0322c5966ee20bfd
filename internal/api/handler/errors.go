package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/task-service/internal/core/domain"
)

// messageResponse is the envelope for every error and for plain
// acknowledgements.
type messageResponse struct {
	Message string `json:"message"`
}

// ResolveError maps a known domain error to its HTTP status and client
// message. ok is false for errors that must be treated as internal.
func ResolveError(err error) (status int, message string, ok bool) {
	switch {
	case errors.Is(err, domain.ErrUnknownIdentity):
		return http.StatusBadRequest, "Error: Email is not in use!", true
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, "Error: Bad credentials", true
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusBadRequest, "Error: Username is already taken!", true
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusBadRequest, "Error: Email is already in use!", true
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "Error: Too many failed login attempts, try again later", true
	case errors.Is(err, domain.ErrRoleCatalogMissing):
		return http.StatusInternalServerError, "Error: Role is not found.", true
	case errors.Is(err, domain.ErrAuthenticationRequired):
		return http.StatusUnauthorized, "Error: Unauthorized", true
	case errors.Is(err, domain.ErrAuthorizationDenied), errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Error: Access is denied", true
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, "Error: Task not found", true
	case errors.Is(err, domain.ErrInvalidTask):
		return http.StatusBadRequest, err.Error(), true
	}
	return 0, "", false
}

// respondError renders known domain errors and hands anything else to the
// central error handler.
func respondError(c echo.Context, err error) error {
	status, msg, ok := ResolveError(err)
	if !ok {
		return err
	}
	return c.JSON(status, messageResponse{Message: msg})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, messageResponse{Message: msg})
}
