// Package metrics provides Prometheus metrics for the handshake tooling.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "secrethandshake"
)

// Result label values for the Handshakes counter.
const (
	ResultOK           = "ok"
	ResultRejected     = "rejected"
	ResultUnauthorized = "unauthorized"
	ResultIOError      = "io_error"
)

// Metrics contains the Prometheus metrics for handshake endpoints.
type Metrics struct {
	// Handshakes counts completed handshake attempts by role and result.
	Handshakes *prometheus.CounterVec

	// HandshakeDuration observes wall time of completed handshakes.
	HandshakeDuration prometheus.Histogram

	// HandshakesActive tracks handshakes currently in flight.
	HandshakesActive prometheus.Gauge
}

var (
	defaultMetrics *Metrics
	metricsOnce    sync.Once
)

// Default returns the process-wide metrics instance.
func Default() *Metrics {
	metricsOnce.Do(func() {
		defaultMetrics = NewMetrics()
	})
	return defaultMetrics
}

// NewMetrics creates a Metrics instance registered with the default registry.
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsWithRegistry creates a Metrics instance with a custom registry.
func NewMetricsWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Handshakes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handshakes_total",
			Help:      "Completed handshake attempts by role and result",
		}, []string{"role", "result"}),

		HandshakeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "handshake_duration_seconds",
			Help:      "Wall time of completed handshakes",
			Buckets:   prometheus.DefBuckets,
		}),

		HandshakesActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "handshakes_active",
			Help:      "Handshakes currently in flight",
		}),
	}
}
