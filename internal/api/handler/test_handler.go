package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ContentHandler serves the /api/test role probes. Access is decided by the
// route policy; the handlers only return their content.
type ContentHandler struct{}

func NewContentHandler() *ContentHandler {
	return &ContentHandler{}
}

// @Summary  Public content
// @Tags     test
// @Produce  plain
// @Success  200  {string}  string
// @Router   /api/test/all [get]
func (h *ContentHandler) All(c echo.Context) error {
	return c.String(http.StatusOK, "Public Content.")
}

// @Summary   Content for any signed-in role
// @Tags      test
// @Produce   plain
// @Security  BearerAuth
// @Success   200  {string}  string
// @Router    /api/test/user [get]
func (h *ContentHandler) User(c echo.Context) error {
	return c.String(http.StatusOK, "User Content.")
}

// @Summary   Moderator content
// @Tags      test
// @Produce   plain
// @Security  BearerAuth
// @Success   200  {string}  string
// @Router    /api/test/mod [get]
func (h *ContentHandler) Moderator(c echo.Context) error {
	return c.String(http.StatusOK, "Moderator Board.")
}

// @Summary   Admin content
// @Tags      test
// @Produce   plain
// @Security  BearerAuth
// @Success   200  {string}  string
// @Router    /api/test/admin [get]
func (h *ContentHandler) Admin(c echo.Context) error {
	return c.String(http.StatusOK, "Admin Board.")
}
