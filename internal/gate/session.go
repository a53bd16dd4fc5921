package gate

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	sessionName = "dashboard-session"
	keyLoggedIn = "logged_in"
	keyUsername = "username"
)

// Load reads the state from the cookie session. A missing or undecodable
// session yields LoggedOut.
func Load(c echo.Context) State {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		slog.Debug("Discarding unreadable session", "error", err)
		return LoggedOut()
	}
	loggedIn, _ := sess.Values[keyLoggedIn].(bool)
	username, _ := sess.Values[keyUsername].(string)
	if !loggedIn {
		return LoggedOut()
	}
	return LoggedInAs(username)
}

// Save persists s to the cookie session and updates the request context so
// later code in the same request sees the new state.
func Save(c echo.Context, s State) error {
	sess, err := session.Get(sessionName, c)
	if err != nil && sess == nil {
		return fmt.Errorf("get session: %w", err)
	}
	sess.Values[keyLoggedIn] = s.LoggedIn
	if s.LoggedIn {
		sess.Values[keyUsername] = s.Username
	} else {
		delete(sess.Values, keyUsername)
	}
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	c.SetRequest(c.Request().WithContext(WithState(c.Request().Context(), s)))
	return nil
}

// Middleware loads the state into the request context. It must run after the
// echo-contrib session middleware.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := Load(c)
			c.SetRequest(c.Request().WithContext(WithState(c.Request().Context(), s)))
			return next(c)
		}
	}
}

// Require protects a route serving v: requests whose state does not expose v
// are redirected to the state's home view.
func Require(v View) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := FromContext(c.Request().Context())
			if !s.Allows(v) {
				return c.Redirect(http.StatusSeeOther, s.Home().Path())
			}
			return next(c)
		}
	}
}
