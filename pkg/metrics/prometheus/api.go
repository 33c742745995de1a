// Package prometheus implements metrics.APIMetrics on a private Prometheus
// registry that is written out in text exposition format when a command
// finishes, for the node_exporter textfile collector.
package prometheus

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// APIMetrics is the Prometheus implementation of metrics.APIMetrics.
type APIMetrics struct {
	registry *prometheus.Registry

	requests  *prometheus.CounterVec
	durations *prometheus.HistogramVec
	pageItems *prometheus.HistogramVec
}

// NewAPIMetrics creates the collectors on a fresh registry.
func NewAPIMetrics() *APIMetrics {
	reg := prometheus.NewRegistry()

	return &APIMetrics{
		registry: reg,
		requests: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "neutronctl_api_requests_total",
				Help: "Total Neutron API requests by method, resource and status code",
			},
			[]string{"method", "resource", "code"},
		),
		durations: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "neutronctl_api_request_duration_seconds",
				Help:    "Neutron API request latency by method and resource",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "resource"},
		),
		pageItems: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "neutronctl_list_page_items",
				Help:    "Items returned per list page",
				Buckets: []float64{0, 1, 10, 100, 500, 1000, 5000},
			},
			[]string{"resource"},
		),
	}
}

// ObserveRequest implements metrics.APIMetrics.
func (m *APIMetrics) ObserveRequest(method, resource string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	m.requests.WithLabelValues(method, resource, code).Inc()
	m.durations.WithLabelValues(method, resource).Observe(duration.Seconds())
}

// ObservePage implements metrics.APIMetrics.
func (m *APIMetrics) ObservePage(resource string, items int) {
	if m == nil {
		return
	}
	m.pageItems.WithLabelValues(resource).Observe(float64(items))
}

// Gatherer exposes the registry, mainly for tests.
func (m *APIMetrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile atomically writes all collected metrics to path.
func (m *APIMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}
