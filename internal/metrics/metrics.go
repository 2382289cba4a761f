// Package metrics defines the Prometheus collectors of the shell.
//
// Naming follows Prometheus conventions:
//   - flightdesk_ prefix for all custom metrics
//   - _total suffix for counters
//   - _seconds suffix for duration histograms
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	// GatewayRequestsTotal counts outbound gateway calls by status code and method.
	GatewayRequestsTotal *prometheus.CounterVec
	// GatewayRequestDurationSeconds observes outbound gateway latency.
	GatewayRequestDurationSeconds *prometheus.HistogramVec
	// GatewayInFlight is the number of gateway calls currently outstanding.
	GatewayInFlight prometheus.Gauge
	// ViewOutcomesTotal counts view submissions by view and outcome.
	ViewOutcomesTotal *prometheus.CounterVec
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		GatewayRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightdesk_gateway_requests_total",
				Help: "Total gateway requests by status code and method.",
			},
			[]string{"code", "method"},
		),
		GatewayRequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flightdesk_gateway_request_duration_seconds",
				Help:    "Gateway request latency in seconds.",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"code", "method"},
		),
		GatewayInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "flightdesk_gateway_in_flight_requests",
			Help: "Gateway requests currently in flight.",
		}),
		ViewOutcomesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightdesk_view_outcomes_total",
				Help: "View submissions by view and outcome (success, invalid, failed, cancelled, unauthenticated, forbidden).",
			},
			[]string{"view", "outcome"},
		),
	}

	m.registry.MustRegister(
		m.GatewayRequestsTotal,
		m.GatewayRequestDurationSeconds,
		m.GatewayInFlight,
		m.ViewOutcomesTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// InstrumentRoundTripper wraps next with the gateway collectors. A nil
// Metrics returns next untouched.
func (m *Metrics) InstrumentRoundTripper(next http.RoundTripper) http.RoundTripper {
	if m == nil {
		return next
	}
	return promhttp.InstrumentRoundTripperInFlight(m.GatewayInFlight,
		promhttp.InstrumentRoundTripperCounter(m.GatewayRequestsTotal,
			promhttp.InstrumentRoundTripperDuration(m.GatewayRequestDurationSeconds, next),
		),
	)
}

func (m *Metrics) ObserveView(view, outcome string) {
	if m == nil {
		return
	}
	m.ViewOutcomesTotal.WithLabelValues(view, outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
