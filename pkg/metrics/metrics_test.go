package metrics

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	if r.HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal not initialized")
	}
	if r.QueriesTotal == nil {
		t.Error("QueriesTotal not initialized")
	}
	if r.TopologyDevices == nil {
		t.Error("TopologyDevices not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	r1 := DefaultRegistry()
	r2 := DefaultRegistry()

	if r1 != r2 {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordQuery(t *testing.T) {
	r := NewRegistry()

	r.RecordQuery("network_health", "ok", 5*time.Millisecond, 13)
	r.RecordQuery("blast_radius", "error", 2*time.Millisecond, 0)

	counter, err := r.QueriesTotal.GetMetricWithLabelValues("network_health", "ok")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 1 {
		t.Errorf("Expected counter 1, got %v", got)
	}
}

func TestRecordQuery_SlowQuery(t *testing.T) {
	r := NewRegistry()

	r.RecordQuery("upstream_path", "ok", 2*time.Second, 4)

	counter, err := r.SlowQueries.GetMetricWithLabelValues("upstream_path")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 1 {
		t.Errorf("Expected slow query counter 1, got %v", got)
	}
}

func TestRecordTopologyLoad(t *testing.T) {
	r := NewRegistry()

	r.RecordTopologyLoad(true, 13, 12, 7)

	var metric dto.Metric
	if err := r.TopologyDevices.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if got := metric.GetGauge().GetValue(); got != 13 {
		t.Errorf("Expected 13 devices, got %v", got)
	}

	r.RecordTopologyLoad(false, 0, 0, 0)
	counter, err := r.TopologyLoadsTotal.GetMetricWithLabelValues("error")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 1 {
		t.Errorf("Expected 1 failed load, got %v", got)
	}
}

func TestUpdateLinkStatusCounts(t *testing.T) {
	r := NewRegistry()

	r.UpdateLinkStatusCounts(10, 1, 1)

	gauge, err := r.TopologyLinksByStatus.GetMetricWithLabelValues("DOWN")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	var metric dto.Metric
	if err := gauge.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if got := metric.GetGauge().GetValue(); got != 1 {
		t.Errorf("Expected 1 DOWN link, got %v", got)
	}
}

func TestGatherAll(t *testing.T) {
	r := NewRegistry()
	r.RecordHTTPRequest("GET", "/api/v1/health-summary", "200", 10*time.Millisecond)

	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	found := false
	for _, mf := range families {
		if mf.GetName() == "netgraph_http_requests_total" {
			found = true
		}
	}
	if !found {
		t.Error("netgraph_http_requests_total not gathered")
	}
}
