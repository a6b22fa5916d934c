// Package metrics holds the Prometheus instruments the conduit service
// exposes at /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "conduit"

// Metrics is safe to use as a nil pointer; every method is then a no-op.
// Services and middleware take a *Metrics so tests can pass nil.
type Metrics struct {
	registry *prometheus.Registry

	authFailures  *prometheus.CounterVec
	logins        *prometheus.CounterVec
	registrations *prometheus.CounterVec
	kdfDuration   *prometheus.HistogramVec
	kdfInFlight   prometheus.Gauge
	rateLimited   *prometheus.CounterVec
}

// New builds a fresh registry with the service instruments plus the standard
// Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		authFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "failures_total",
			Help:      "Bearer token rejections by reason (missing, malformed, invalid_signature, expired)",
		}, []string{"reason"}),

		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "users",
			Name:      "logins_total",
			Help:      "Login attempts by outcome",
		}, []string{"outcome"}),

		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "users",
			Name:      "registrations_total",
			Help:      "Registration attempts by outcome",
		}, []string{"outcome"}),

		kdfDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "kdf",
			Name:      "duration_seconds",
			Help:      "Time spent deriving password hashes",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"op"}),

		kdfInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "kdf",
			Name:      "in_flight",
			Help:      "Password hash derivations currently running",
		}),

		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter, by route pattern",
		}, []string{"route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.authFailures,
		m.logins,
		m.registrations,
		m.kdfDuration,
		m.kdfInFlight,
		m.rateLimited,
	)

	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// AuthFailure counts a rejected bearer token.
func (m *Metrics) AuthFailure(reason string) {
	if m == nil {
		return
	}
	m.authFailures.WithLabelValues(reason).Inc()
}

// Login counts a login attempt. outcome is "success", "invalid" or "error".
func (m *Metrics) Login(outcome string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(outcome).Inc()
}

// Registration counts a registration attempt.
func (m *Metrics) Registration(outcome string) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(outcome).Inc()
}

// ObserveKDF times one password hash derivation. Call the returned func when
// the derivation finishes.
func (m *Metrics) ObserveKDF(op string) func() {
	if m == nil {
		return func() {}
	}
	start := time.Now()
	m.kdfInFlight.Inc()
	return func() {
		m.kdfInFlight.Dec()
		m.kdfDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}

// RateLimited counts a request rejected with 429.
func (m *Metrics) RateLimited(route string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(route).Inc()
}
