package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	registry *prometheus.Registry

	// Sweep metrics
	SweepsTotal      prometheus.Counter
	SweepErrorsTotal prometheus.Counter
	SweepDuration    prometheus.Histogram
	RequestsPending  prometheus.Gauge

	// Per-request metrics
	ApprovalsTotal       *prometheus.CounterVec
	NotificationsTotal   *prometheus.CounterVec
	RequestsSkippedTotal prometheus.Counter
}

// NewMetrics creates and registers all metrics
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		SweepsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sweeps_total",
				Help: "Total number of approval sweeps executed",
			},
		),
		SweepErrorsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sweep_errors_total",
				Help: "Total number of sweeps that failed to list pending requests",
			},
		),
		SweepDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sweep_duration_seconds",
				Help:    "Duration of approval sweeps in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		RequestsPending: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "requests_pending",
				Help: "Number of pending subscription requests found by the last sweep",
			},
		),
		ApprovalsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "approvals_total",
				Help: "Total number of subscription request approvals by status",
			},
			[]string{"status"},
		),
		NotificationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notifications_total",
				Help: "Total number of approval notifications published by status",
			},
			[]string{"status"},
		),
		RequestsSkippedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "requests_skipped_total",
				Help: "Total number of subscription requests skipped for missing identifiers",
			},
		),
	}

	registry.MustRegister(
		m.SweepsTotal,
		m.SweepErrorsTotal,
		m.SweepDuration,
		m.RequestsPending,
		m.ApprovalsTotal,
		m.NotificationsTotal,
		m.RequestsSkippedTotal,
	)

	return m
}

// Handler returns an HTTP handler for the metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Registry returns the Prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
