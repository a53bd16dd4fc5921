package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/salesdash/internal/domain"
	"github.com/nfrund/salesdash/internal/gate"
	"github.com/nfrund/salesdash/internal/metrics"
	"github.com/nfrund/salesdash/internal/middleware"
	"github.com/nfrund/salesdash/internal/rendering"
	"github.com/nfrund/salesdash/internal/view"
	"github.com/nfrund/salesdash/internal/view/dto/auth"
	"github.com/nfrund/salesdash/web/src/templates/pages"
)

// Messages shown after the auth form posts.
const (
	MsgRegistered      = "Registration successful. Please login."
	MsgUsernameExists  = "Username already exists"
	MsgFieldsRequired  = "Username and password are required"
	MsgInvalidLogin    = "Invalid username or password"
	MsgLoginSuccessful = "Login successful"
)

// AuthHandler serves the Register, Login and Logout views.
type AuthHandler struct {
	store    domain.CredentialRepository
	renderer rendering.Renderer
	metrics  *metrics.Metrics
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(store domain.CredentialRepository, renderer rendering.Renderer, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{store: store, renderer: renderer, metrics: m}
}

// RegisterGet renders the registration form (GET /register).
func (h *AuthHandler) RegisterGet(c echo.Context) error {
	data := auth.RegisterData{Username: view.PopFlashValue(c, "username")}
	return renderPage(c, h.renderer, string(gate.ViewRegister), pages.Register(data))
}

// RegisterPost creates an account and reports the outcome as a flash on the
// registration page. Store failures surface as 500s.
func (h *AuthHandler) RegisterPost(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	result, err := h.store.Register(c.Request().Context(), req.Username, req.Password)
	h.metrics.Registration(result, err)
	if err != nil {
		return err
	}

	logger := middleware.FromContext(c.Request().Context())
	switch result {
	case domain.RegisterSuccess:
		logger.Info("User registered", "username", strings.TrimSpace(req.Username))
		view.SetFlashSuccess(c, MsgRegistered)
	case domain.RegisterExists:
		view.SetFlashError(c, MsgUsernameExists)
		view.SetFlashValue(c, "username", req.Username)
	case domain.RegisterEmpty:
		view.SetFlashWarning(c, MsgFieldsRequired)
		view.SetFlashValue(c, "username", req.Username)
	}
	return c.Redirect(http.StatusSeeOther, gate.ViewRegister.Path())
}

// LoginGet renders the login form (GET /login).
func (h *AuthHandler) LoginGet(c echo.Context) error {
	data := auth.LoginData{Username: view.PopFlashValue(c, "username")}
	return renderPage(c, h.renderer, string(gate.ViewLogin), pages.Login(data))
}

// LoginPost checks the credentials and moves the session to LoggedIn on a match.
func (h *AuthHandler) LoginPost(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	current := gate.FromContext(ctx)
	next, err := current.SignIn(ctx, h.store, req.Username, req.Password)
	h.metrics.Login(err)
	if errors.Is(err, domain.ErrAuth) {
		view.SetFlashError(c, MsgInvalidLogin)
		view.SetFlashValue(c, "username", req.Username)
		return c.Redirect(http.StatusSeeOther, gate.ViewLogin.Path())
	}
	if err != nil {
		return err
	}

	if err := gate.Save(c, next); err != nil {
		return err
	}
	middleware.FromContext(ctx).Info("User logged in", "username", next.Username)
	view.SetFlashSuccess(c, MsgLoginSuccessful)
	return c.Redirect(http.StatusSeeOther, next.Home().Path())
}

// Logout resets the session to LoggedOut and returns to the login form.
func (h *AuthHandler) Logout(c echo.Context) error {
	current := gate.FromContext(c.Request().Context())
	next := current.SignOut()
	if err := gate.Save(c, next); err != nil {
		return err
	}
	middleware.FromContext(c.Request().Context()).Info("User logged out", "username", current.Username)
	return c.Redirect(http.StatusSeeOther, next.Home().Path())
}
