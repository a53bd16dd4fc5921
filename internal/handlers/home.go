package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/salesdash/internal/gate"
)

// HomeHandler handles requests for the home page.
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// HomeGet sends the browser to the first view of its session state: Login when
// logged out, Dashboard when logged in.
func (h *HomeHandler) HomeGet(c echo.Context) error {
	state := gate.FromContext(c.Request().Context())
	return c.Redirect(http.StatusSeeOther, state.Home().Path())
}

// Health reports liveness.
func (h *HomeHandler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
