package diagnostics

import (
	"errors"
	"testing"

	"github.com/calligan/netgraph/pkg/topology"
)

func TestServicePath_TracesToRoot(t *testing.T) {
	engine, _ := newTestEngine(t)

	trace, err := engine.ServicePath("postgresql_orders")
	if err != nil {
		t.Fatalf("ServicePath failed: %v", err)
	}

	want := []string{"db-server-1", "dist-switch-2", "agg-switch-2", "core-router-1"}
	if !equalStrings(trace.Hops, want) {
		t.Errorf("Unexpected hops: got %v, want %v", trace.Hops, want)
	}
	if trace.Host != "db-server-1" {
		t.Errorf("Expected host db-server-1, got %s", trace.Host)
	}
	if got := trace.String(); got != "postgresql_orders → db-server-1 → dist-switch-2 → agg-switch-2 → core-router-1" {
		t.Errorf("Unexpected trace string: %s", got)
	}
}

func TestServicePath_ByServiceID(t *testing.T) {
	engine, _ := newTestEngine(t)

	trace, err := engine.ServicePath("svc-db")
	if err != nil {
		t.Fatalf("ServicePath by ID failed: %v", err)
	}
	if trace.Service != "postgresql_orders" {
		t.Errorf("Expected service name postgresql_orders, got %s", trace.Service)
	}
}

func TestServicePath_TieBreak(t *testing.T) {
	engine, _ := newTestEngine(t)

	// edge-gateway-1 is dual-homed; both aggregation switches fan out to two
	// downstream devices, so the lexically smaller ID wins the tie.
	trace, err := engine.ServicePath("slim_gateway")
	if err != nil {
		t.Fatalf("ServicePath failed: %v", err)
	}

	want := []string{"edge-gateway-1", "agg-switch-1", "core-router-1"}
	if !equalStrings(trace.Hops, want) {
		t.Errorf("Unexpected hops: got %v, want %v", trace.Hops, want)
	}
}

func TestServicePath_Deterministic(t *testing.T) {
	engine, _ := newTestEngine(t)

	first, err := engine.ServicePath("slim_gateway")
	if err != nil {
		t.Fatalf("ServicePath failed: %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := engine.ServicePath("slim_gateway")
		if err != nil {
			t.Fatalf("ServicePath failed on run %d: %v", i, err)
		}
		if !equalStrings(again.Hops, first.Hops) {
			t.Fatalf("Path changed between runs: %v vs %v", first.Hops, again.Hops)
		}
	}
}

func TestServicePath_UnknownService(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.ServicePath("nonexistent_service")
	if !errors.Is(err, topology.ErrServiceNotFound) {
		t.Errorf("Expected ErrServiceNotFound, got %v", err)
	}
}

func TestServicePath_IsolatedHost(t *testing.T) {
	store := topology.NewStore()
	topo := &topology.Topology{
		Devices: []topology.Device{
			{ID: "lonely-server-1", Kind: "server", Name: "lonely-server-1"},
		},
		Services: []topology.Service{
			{ID: "svc-orphan", Name: "orphan_service", Criticality: topology.CriticalityStandard, Host: "lonely-server-1"},
		},
		Connections: []topology.Connection{
			{From: "svc-orphan", To: "lonely-server-1", Relation: topology.RelationRunsOn},
		},
	}
	if err := store.Load(topo); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	engine := NewEngine(store)

	_, err := engine.ServicePath("orphan_service")
	if !errors.Is(err, topology.ErrPathNotFound) {
		t.Errorf("Expected ErrPathNotFound, got %v", err)
	}
}

func TestServicePath_CycleTerminates(t *testing.T) {
	store := topology.NewStore()
	topo := &topology.Topology{
		Devices: []topology.Device{
			{ID: "ring-a", Kind: "switch", Name: "ring-a"},
			{ID: "ring-b", Kind: "switch", Name: "ring-b"},
			{ID: "ring-c", Kind: "switch", Name: "ring-c"},
		},
		Services: []topology.Service{
			{ID: "svc-ring", Name: "ring_service", Criticality: topology.CriticalityStandard, Host: "ring-a"},
		},
		Connections: []topology.Connection{
			{From: "ring-a", To: "ring-b", Relation: topology.RelationConnectsTo},
			{From: "ring-b", To: "ring-c", Relation: topology.RelationConnectsTo},
			{From: "ring-c", To: "ring-a", Relation: topology.RelationConnectsTo},
			{From: "svc-ring", To: "ring-a", Relation: topology.RelationRunsOn},
		},
	}
	if err := store.Load(topo); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	engine := NewEngine(store)

	trace, err := engine.ServicePath("ring_service")
	if err != nil {
		t.Fatalf("ServicePath failed: %v", err)
	}
	// Walks the ring once and stops when every device has been visited.
	want := []string{"ring-a", "ring-c", "ring-b"}
	if !equalStrings(trace.Hops, want) {
		t.Errorf("Unexpected hops: got %v, want %v", trace.Hops, want)
	}
}
