// Package gate holds the per-user login state and decides which views it may reach.
//
// State is an explicit value: middleware loads it from the cookie session into the
// request context, handlers read it with FromContext and persist transitions with Save.
package gate

import (
	"context"
	"fmt"
	"strings"

	"github.com/nfrund/salesdash/internal/domain"
)

// View is one of the four named pages of the dashboard.
type View string

const (
	ViewLogin     View = "Login"
	ViewRegister  View = "Register"
	ViewDashboard View = "Dashboard"
	ViewLogout    View = "Logout"
)

// Path returns the route serving the view.
func (v View) Path() string {
	return "/" + strings.ToLower(string(v))
}

var (
	loggedOutViews = []View{ViewLogin, ViewRegister}
	loggedInViews  = []View{ViewDashboard, ViewLogout}
)

// State is either logged out (the zero value) or logged in as Username.
type State struct {
	LoggedIn bool
	Username string
}

// LoggedOut returns the initial state.
func LoggedOut() State {
	return State{}
}

// LoggedInAs returns the state of an authenticated user.
func LoggedInAs(username string) State {
	return State{LoggedIn: true, Username: username}
}

// Authenticator is the part of the credential store the gate depends on.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (bool, error)
}

// SignIn moves to LoggedIn only when the credentials match. A mismatch returns the
// receiver unchanged and domain.ErrAuth; store failures propagate as-is.
func (s State) SignIn(ctx context.Context, auth Authenticator, username, password string) (State, error) {
	ok, err := auth.Authenticate(ctx, username, password)
	if err != nil {
		return s, fmt.Errorf("authenticate %q: %w", username, err)
	}
	if !ok {
		return s, domain.ErrAuth
	}
	return LoggedInAs(strings.TrimSpace(username)), nil
}

// SignOut returns the logged-out state, dropping the username.
func (s State) SignOut() State {
	return LoggedOut()
}

// Views lists the views reachable from this state, in navigation order.
func (s State) Views() []View {
	if s.LoggedIn {
		return loggedInViews
	}
	return loggedOutViews
}

// Allows reports whether v is reachable from this state.
func (s State) Allows(v View) bool {
	for _, allowed := range s.Views() {
		if allowed == v {
			return true
		}
	}
	return false
}

// Home is the view a request lands on when it asks for one it may not reach.
func (s State) Home() View {
	return s.Views()[0]
}

type contextKey string

const stateKey = contextKey("gate-state")

// WithState returns a copy of ctx carrying s.
func WithState(ctx context.Context, s State) context.Context {
	return context.WithValue(ctx, stateKey, s)
}

// FromContext returns the state carried by ctx, or LoggedOut when there is none.
func FromContext(ctx context.Context) State {
	if s, ok := ctx.Value(stateKey).(State); ok {
		return s
	}
	return LoggedOut()
}
