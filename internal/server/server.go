package server

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/salesdash/internal/config"
	"github.com/nfrund/salesdash/internal/dataset"
	"github.com/nfrund/salesdash/internal/domain"
	"github.com/nfrund/salesdash/internal/gate"
	"github.com/nfrund/salesdash/internal/handlers"
	"github.com/nfrund/salesdash/internal/metrics"
	appmiddleware "github.com/nfrund/salesdash/internal/middleware"
	"github.com/nfrund/salesdash/internal/prediction"
	"github.com/nfrund/salesdash/internal/rendering"
	"github.com/nfrund/salesdash/internal/report"
	"github.com/nfrund/salesdash/internal/view"
	"github.com/nfrund/salesdash/web"
	"github.com/nfrund/salesdash/web/src/templates/layouts"
	"github.com/nfrund/salesdash/web/src/templates/pages"
)

// Dependencies holds the services the HTTP server is built from.
type Dependencies struct {
	Config   *config.Config
	Store    domain.CredentialRepository
	Source   dataset.Source
	Pipeline *prediction.Pipeline
	Emitter  *report.Emitter
	Metrics  *metrics.Metrics
	Renderer *rendering.UniversalRenderer
	// Echo is optional; a fresh instance is created when nil.
	Echo *echo.Echo
}

// Server holds the echo instance and the handlers mounted on it.
type Server struct {
	E   *echo.Echo
	Cfg *config.Config

	source           dataset.Source
	metrics          *metrics.Metrics
	homeHandler      *handlers.HomeHandler
	authHandler      *handlers.AuthHandler
	dashboardHandler *handlers.DashboardHandler
}

// New configures echo with the middleware chain and creates the handlers.
// Routes are mounted separately by RegisterRoutes.
func New(deps Dependencies) (*Server, error) {
	if deps.Config == nil {
		return nil, errors.New("server: config is required")
	}
	if deps.Config.SessionSecret == "" {
		return nil, errors.New("server: session secret is required")
	}
	if deps.Config.GeneratedSecret {
		slog.Warn("SESSION_SECRET is not set; using a random secret, sessions will not survive a restart")
	}
	if deps.Store == nil || deps.Source == nil || deps.Pipeline == nil || deps.Emitter == nil {
		return nil, errors.New("server: store, source, pipeline and emitter are required")
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	if deps.Renderer == nil {
		deps.Renderer = rendering.NewUniversalRenderer()
	}

	e := deps.Echo
	if e == nil {
		e = echo.New()
	}
	e.HideBanner = true
	e.Renderer = deps.Renderer
	e.Validator = handlers.NewValidator()

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(appmiddleware.Logger)
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			appmiddleware.FromContext(c.Request().Context()).Debug("request",
				"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	// Configure and use session middleware
	store := sessions.NewCookieStore([]byte(deps.Config.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))
	e.Use(gate.Middleware())

	e.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	setupErrorHandling(e)

	return &Server{
		E:           e,
		Cfg:         deps.Config,
		source:      deps.Source,
		metrics:     deps.Metrics,
		homeHandler: handlers.NewHomeHandler(),
		authHandler: handlers.NewAuthHandler(deps.Store, deps.Renderer, deps.Metrics),
		dashboardHandler: handlers.NewDashboardHandler(handlers.DashboardDependencies{
			Source:   deps.Source,
			Pipeline: deps.Pipeline,
			Emitter:  deps.Emitter,
			Renderer: deps.Renderer,
			Metrics:  deps.Metrics,
			Currency: deps.Config.Currency,
		}),
	}, nil
}

// setupErrorHandling installs the HTTP error handler. Domain errors that reach
// it are mapped to status codes; 5xx responses are logged with a stack trace.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, message := statusFor(err)
		logger := appmiddleware.FromContext(c.Request().Context())
		if code >= http.StatusInternalServerError {
			logger.Error("Internal Server Error (Unhandled)",
				"error", err,
				"path", c.Request().URL.Path,
				"stack_trace", string(debug.Stack()),
			)
		} else {
			logger.Debug("Request rejected", "status", code, "error", err)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		// htmx swaps fragments, so a full page would nest the layout.
		if c.Request().Header.Get("HX-Request") == "true" {
			_ = c.String(code, message)
			return
		}

		page := layouts.Base(http.StatusText(code), gate.FromContext(c.Request().Context()), view.FlashData{}, pages.Error(code, message))
		var buf bytes.Buffer
		if rerr := page.Render(&buf); rerr != nil {
			slog.Error("Failed to render error page", "error", rerr)
			_ = c.String(code, message)
			return
		}
		_ = c.HTMLBlob(code, buf.Bytes())
	}
}

// statusFor maps err to an HTTP status and a message safe to show the user.
func statusFor(err error) (int, string) {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code, fmt.Sprint(he.Message)
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrAuth):
		return http.StatusUnauthorized, "Invalid username or password"
	case errors.Is(err, domain.ErrDataset):
		return http.StatusInternalServerError, "The business dataset could not be loaded."
	default:
		return http.StatusInternalServerError, "Something went wrong. Please try again."
	}
}
