package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/salesdash/internal/gate"
	"github.com/nfrund/salesdash/internal/rendering"
	"github.com/nfrund/salesdash/internal/view"
	"github.com/nfrund/salesdash/web/src/templates/layouts"
	g "maragu.dev/gomponents"
)

// renderPage wraps content in the Base layout for the current session state,
// consuming pending flashes.
func renderPage(c echo.Context, r rendering.Renderer, title string, content g.Node) error {
	state := gate.FromContext(c.Request().Context())
	page := layouts.Base(title, state, view.GetFlashData(c), content)
	return r.RenderPage(c, http.StatusOK, page)
}

// attachment streams data as a download named filename.
func attachment(c echo.Context, filename, contentType string, data []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, contentType, data)
}
