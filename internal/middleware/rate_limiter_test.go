package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loginServer mounts a stand-in credential form behind RateLimiter(perSecond).
func loginServer(perSecond float64) *echo.Echo {
	e := echo.New()
	e.POST("/login", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}, RateLimiter(perSecond))
	return e
}

func postLogin(e *echo.Echo, clientIP string) *httptest.ResponseRecorder {
	form := url.Values{"username": {"alice"}, "password": {"pw"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.RemoteAddr = clientIP
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter(t *testing.T) {
	e := loginServer(10)

	t.Run("allows a burst of the configured rate", func(t *testing.T) {
		for i := 0; i < 10; i++ {
			rec := postLogin(e, "192.0.2.2:1234")
			require.Equal(t, http.StatusSeeOther, rec.Code, "request %d should be allowed", i+1)
		}

		rec := postLogin(e, "192.0.2.2:1234")
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Contains(t, rec.Body.String(), "Too many requests")
	})

	t.Run("limits each client separately", func(t *testing.T) {
		assert.Equal(t, http.StatusSeeOther, postLogin(e, "192.0.2.3:1234").Code)
	})
}

func TestRateLimiter_FractionalRate(t *testing.T) {
	e := loginServer(0.5)

	assert.Equal(t, http.StatusSeeOther, postLogin(e, "192.0.2.4:1234").Code, "first attempt must pass")
	assert.Equal(t, http.StatusTooManyRequests, postLogin(e, "192.0.2.4:1234").Code)
}

func TestBurstFor(t *testing.T) {
	cases := map[float64]int{
		0.1: 1,
		0.5: 1,
		1:   1,
		2.5: 3,
		10:  10,
	}
	for rate, want := range cases {
		assert.Equal(t, want, burstFor(rate), "rate %v", rate)
	}
}
