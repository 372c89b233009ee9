// Package metrics exposes Prometheus metrics for the diagnostic engine:
// HTTP traffic, per-diagnostic query timing and topology gauges.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// HTTP Metrics
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPRequestsInFlight  prometheus.Gauge
	HTTPResponseSizeBytes *prometheus.HistogramVec

	// Query Metrics (one query_type per diagnostic operation)
	QueriesTotal       *prometheus.CounterVec
	QueryDuration      *prometheus.HistogramVec
	QueryNodesVisited  *prometheus.HistogramVec
	SlowQueries        *prometheus.CounterVec

	// Topology Metrics
	TopologyDevices       prometheus.Gauge
	TopologyLinks         prometheus.Gauge
	TopologyServices      prometheus.Gauge
	TopologyLinksByStatus *prometheus.GaugeVec
	TopologyLoadsTotal    *prometheus.CounterVec
	TopologyGeneration    prometheus.Gauge

	registry *prometheus.Registry
	mu       sync.RWMutex
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initHTTPMetrics()
	r.initQueryMetrics()
	r.initTopologyMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
