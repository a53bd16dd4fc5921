package server

import (
	"github.com/labstack/echo/v4"
	"github.com/nfrund/salesdash/internal/gate"
	"github.com/nfrund/salesdash/internal/middleware"
)

// RegisterRoutes sets up all the application routes. Each view is guarded so
// that only the session state exposing it can reach it.
func (s *Server) RegisterRoutes() {
	rateLimiter := middleware.RateLimiter(s.Cfg.AuthRateLimit)

	s.E.GET("/", s.homeHandler.HomeGet)
	s.E.GET("/health", s.homeHandler.Health)
	s.E.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))

	register := gate.Require(gate.ViewRegister)
	s.E.GET("/register", s.authHandler.RegisterGet, register)
	s.E.POST("/register", s.authHandler.RegisterPost, register, rateLimiter)

	login := gate.Require(gate.ViewLogin)
	s.E.GET("/login", s.authHandler.LoginGet, login)
	s.E.POST("/login", s.authHandler.LoginPost, login, rateLimiter)

	s.E.POST("/logout", s.authHandler.Logout, gate.Require(gate.ViewLogout))

	dashboard := s.E.Group("/dashboard", gate.Require(gate.ViewDashboard))
	dashboard.GET("", s.dashboardHandler.DashboardGet)
	dashboard.GET("/prediction", s.dashboardHandler.PredictionGet)
	dashboard.GET("/report", s.dashboardHandler.ReportGet)
}
