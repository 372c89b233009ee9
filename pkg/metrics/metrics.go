package metrics

import (
	"time"
)

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordResponseSize records the size of an HTTP response body
func (r *Registry) RecordResponseSize(method, path string, size float64) {
	r.HTTPResponseSizeBytes.WithLabelValues(method, path).Observe(size)
}

// IncHTTPRequestsInFlight increments the in-flight request gauge
func (r *Registry) IncHTTPRequestsInFlight() {
	r.HTTPRequestsInFlight.Inc()
}

// DecHTTPRequestsInFlight decrements the in-flight request gauge
func (r *Registry) DecHTTPRequestsInFlight() {
	r.HTTPRequestsInFlight.Dec()
}

// RecordQuery records a diagnostic query execution
func (r *Registry) RecordQuery(queryType, status string, duration time.Duration, nodesVisited int) {
	r.QueriesTotal.WithLabelValues(queryType, status).Inc()
	r.QueryDuration.WithLabelValues(queryType).Observe(duration.Seconds())
	r.QueryNodesVisited.WithLabelValues(queryType).Observe(float64(nodesVisited))

	if duration > time.Second {
		r.SlowQueries.WithLabelValues(queryType).Inc()
	}
}

// RecordTopologyLoad records a load attempt and, on success, the new
// entity counts.
func (r *Registry) RecordTopologyLoad(ok bool, devices, links, services int) {
	if !ok {
		r.TopologyLoadsTotal.WithLabelValues("error").Inc()
		return
	}
	r.TopologyLoadsTotal.WithLabelValues("ok").Inc()
	r.TopologyDevices.Set(float64(devices))
	r.TopologyLinks.Set(float64(links))
	r.TopologyServices.Set(float64(services))
}

// UpdateLinkStatusCounts updates the per-status link gauge
func (r *Registry) UpdateLinkStatusCounts(up, degraded, down int) {
	r.TopologyLinksByStatus.WithLabelValues("UP").Set(float64(up))
	r.TopologyLinksByStatus.WithLabelValues("DEGRADED").Set(float64(degraded))
	r.TopologyLinksByStatus.WithLabelValues("DOWN").Set(float64(down))
}

// SetTopologyGeneration records the current state generation
func (r *Registry) SetTopologyGeneration(gen uint64) {
	r.TopologyGeneration.Set(float64(gen))
}
