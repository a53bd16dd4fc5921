package view

import (
	"log/slog"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	flashSessionName = "flash-session"
	flashKeySuccess  = "success"
	flashKeyError    = "error"
	flashKeyWarning  = "warning"
)

// FlashData holds the one-shot messages to show on the next rendered page.
type FlashData struct {
	Success []string
	Error   []string
	Warning []string
}

// Empty reports whether there is nothing to show.
func (f FlashData) Empty() bool {
	return len(f.Success) == 0 && len(f.Error) == 0 && len(f.Warning) == 0
}

// setFlash sets a flash message in the session.
func setFlash(c echo.Context, key, message string) {
	sess, err := session.Get(flashSessionName, c)
	if sess == nil {
		slog.Error("Failed to get flash session", "error", err)
		return
	}
	sess.AddFlash(message, key)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		slog.Error("Failed to save flash session", "error", err)
	}
}

// SetFlashSuccess sets a success flash message.
func SetFlashSuccess(c echo.Context, message string) {
	setFlash(c, flashKeySuccess, message)
}

// SetFlashError sets an error flash message.
func SetFlashError(c echo.Context, message string) {
	setFlash(c, flashKeyError, message)
}

// SetFlashWarning sets a warning flash message.
func SetFlashWarning(c echo.Context, message string) {
	setFlash(c, flashKeyWarning, message)
}

// GetFlashData retrieves and clears flash messages from the session.
func GetFlashData(c echo.Context) FlashData {
	var data FlashData

	sess, _ := session.Get(flashSessionName, c)
	if sess == nil {
		return data
	}

	// The Flashes() method retrieves and then clears the flashes from the session.
	data.Success = asStrings(sess.Flashes(flashKeySuccess))
	data.Error = asStrings(sess.Flashes(flashKeyError))
	data.Warning = asStrings(sess.Flashes(flashKeyWarning))

	// If we have flashes, save the session to persist the clearing of flashes.
	if !data.Empty() {
		_ = sess.Save(c.Request(), c.Response())
	}
	return data
}

func asStrings(values []interface{}) []string {
	var out []string
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// SetFlashValue stores a form value to pre-fill on the next render, e.g. the
// username after a failed login.
func SetFlashValue(c echo.Context, field, value string) {
	setFlash(c, "form_"+field, value)
}

// PopFlashValue returns and clears a value stored with SetFlashValue.
func PopFlashValue(c echo.Context, field string) string {
	sess, _ := session.Get(flashSessionName, c)
	if sess == nil {
		return ""
	}
	values := asStrings(sess.Flashes("form_" + field))
	if len(values) == 0 {
		return ""
	}
	// Save to persist the consumed flash.
	_ = sess.Save(c.Request(), c.Response())
	return values[0]
}
