// Package metrics exposes Prometheus metrics for the registry backend.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. A nil *Metrics
// is valid and records nothing, which keeps tests free of registration
// conflicts on the default registry.
type Metrics struct {
	// ContributionsTotal counts contribution attempts by result:
	// accepted, rejected (validation or business rule), failed (storage).
	ContributionsTotal *prometheus.CounterVec

	// ItemsCreated counts registry items added by an admin.
	ItemsCreated prometheus.Counter

	// RequestDuration observes API request latency.
	RequestDuration *prometheus.HistogramVec
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		ContributionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wedsite_contributions_total",
			Help: "Total contribution attempts by result",
		}, []string{"result"}),

		ItemsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wedsite_registry_items_created_total",
			Help: "Total registry items created",
		}),

		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wedsite_http_request_duration_seconds",
			Help:    "HTTP request latency by method, path, and status",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "path", "status"}),
	}
}

// RecordContribution counts one contribution attempt.
func (m *Metrics) RecordContribution(result string) {
	if m != nil {
		m.ContributionsTotal.WithLabelValues(result).Inc()
	}
}

// IncrementItemsCreated counts one created item.
func (m *Metrics) IncrementItemsCreated() {
	if m != nil {
		m.ItemsCreated.Inc()
	}
}

// ObserveRequest records one request's latency.
func (m *Metrics) ObserveRequest(method, path string, status int, d time.Duration) {
	if m != nil {
		m.RequestDuration.WithLabelValues(method, path, strconv.Itoa(status)).Observe(d.Seconds())
	}
}
