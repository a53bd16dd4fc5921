// Package metrics exposes Prometheus counters for the dashboard's user actions.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/nfrund/salesdash/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors registered on a single registry.
type Metrics struct {
	registry *prometheus.Registry

	registrations *prometheus.CounterVec
	logins        *prometheus.CounterVec
	predictions   *prometheus.CounterVec
	fitDuration   prometheus.Histogram
	reports       *prometheus.CounterVec
}

// New creates the collectors on a fresh registry, together with the Go runtime
// and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "salesdash_registrations_total",
			Help: "Registration attempts by result",
		}, []string{"result"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "salesdash_logins_total",
			Help: "Login attempts by result",
		}, []string{"result"}),
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "salesdash_predictions_total",
			Help: "Prediction pipeline runs by result",
		}, []string{"result"}),
		fitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "salesdash_prediction_duration_seconds",
			Help:    "Time to load the dataset, fit the model and evaluate it",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~800ms
		}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "salesdash_reports_total",
			Help: "PDF reports emitted by result",
		}, []string{"result"}),
	}
	reg.MustRegister(
		m.registrations, m.logins, m.predictions, m.fitDuration, m.reports,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registration counts a registration attempt by its result, or "error".
func (m *Metrics) Registration(result domain.RegisterResult, err error) {
	label := string(result)
	if err != nil {
		label = "error"
	}
	m.registrations.WithLabelValues(label).Inc()
}

// Login counts a login attempt.
func (m *Metrics) Login(err error) {
	m.logins.WithLabelValues(outcome(err)).Inc()
}

// Prediction records one pipeline run that started at start.
func (m *Metrics) Prediction(start time.Time, err error) {
	m.fitDuration.Observe(time.Since(start).Seconds())
	m.predictions.WithLabelValues(outcome(err)).Inc()
}

// Report counts an emitted report.
func (m *Metrics) Report(err error) {
	m.reports.WithLabelValues(outcome(err)).Inc()
}

// outcome maps an error to a low-cardinality label.
func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrAuth):
		return "rejected"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrDataset):
		return "dataset_error"
	case errors.Is(err, domain.ErrFit):
		return "fit_error"
	case errors.Is(err, domain.ErrIO):
		return "io_error"
	default:
		return "error"
	}
}
