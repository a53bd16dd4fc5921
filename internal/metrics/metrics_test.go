package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nfrund/salesdash/internal/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.Registration(domain.RegisterSuccess, nil)
	m.Registration(domain.RegisterExists, nil)
	m.Registration("", errors.New("disk full"))
	m.Login(nil)
	m.Login(domain.ErrAuth)
	m.Login(fmt.Errorf("wrapped: %w", domain.ErrAuth))
	m.Prediction(time.Now(), fmt.Errorf("%w: singular", domain.ErrFit))
	m.Report(nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.registrations.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.registrations.WithLabelValues("exists")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.registrations.WithLabelValues("error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.logins.WithLabelValues("rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.predictions.WithLabelValues("fit_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reports.WithLabelValues("success")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.Login(nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `salesdash_logins_total{result="success"} 1`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
