package topology

import (
	"fmt"
	"sort"
)

// LinkStatus represents the operational state of a network link.
type LinkStatus string

const (
	StatusUp       LinkStatus = "UP"
	StatusDegraded LinkStatus = "DEGRADED"
	StatusDown     LinkStatus = "DOWN"
)

// Criticality marks a service as business-critical for health escalation.
type Criticality string

const (
	CriticalityCritical Criticality = "CRITICAL"
	CriticalityStandard Criticality = "STANDARD"
)

// Relation is the type of a directed connection edge.
type Relation string

const (
	// RelationRunsOn binds a service to the device hosting it.
	RelationRunsOn Relation = "RUNS_ON"
	// RelationConnectsTo links two devices; the From side is upstream
	// of the To side (core CONNECTS_TO aggregation, and so on down).
	RelationConnectsTo Relation = "CONNECTS_TO"
)

// Device is a piece of network infrastructure (router, switch, server, ...).
// Kind is an open enum; new device kinds appear without a schema change.
type Device struct {
	ID   string `json:"id" yaml:"id" validate:"required"`
	Kind string `json:"kind" yaml:"kind" validate:"required"`
	Name string `json:"name" yaml:"name" validate:"required"`
	Site string `json:"site,omitempty" yaml:"site,omitempty"`
}

// Link is a physical/logical link between two devices. It is undirected for
// traversal purposes but stored with a canonical source/target pair.
type Link struct {
	ID             string     `json:"id" yaml:"id" validate:"required"`
	Source         string     `json:"source" yaml:"source" validate:"required"`
	Target         string     `json:"target" yaml:"target" validate:"required"`
	UtilizationPct float64    `json:"utilization_pct" yaml:"utilization_pct" validate:"gte=0,lte=100"`
	Status         LinkStatus `json:"status,omitempty" yaml:"status,omitempty" validate:"omitempty,oneof=UP DEGRADED DOWN"`
}

// Service is a workload running on a device.
type Service struct {
	ID          string      `json:"id" yaml:"id" validate:"required"`
	Name        string      `json:"name" yaml:"name" validate:"required"`
	Criticality Criticality `json:"criticality" yaml:"criticality" validate:"required,oneof=CRITICAL STANDARD"`
	Host        string      `json:"host" yaml:"host" validate:"required"`
}

// Connection is a directed edge between two nodes of the graph.
type Connection struct {
	From     string   `json:"from" yaml:"from" validate:"required"`
	To       string   `json:"to" yaml:"to" validate:"required"`
	Relation Relation `json:"relation" yaml:"relation" validate:"required,oneof=RUNS_ON CONNECTS_TO"`
}

// Topology is the full entity set handed to Store.Load by an external loader.
type Topology struct {
	Devices     []Device     `json:"devices" yaml:"devices"`
	Links       []Link       `json:"links" yaml:"links"`
	Services    []Service    `json:"services" yaml:"services"`
	Connections []Connection `json:"connections" yaml:"connections"`
}

// Thresholds derive a link status from utilization when no explicit status
// is stored. A stored status always wins over the derived one.
type Thresholds struct {
	WarningPct  float64
	CriticalPct float64
}

// DefaultThresholds matches the demo data: 85%+ is a dead link, 70%+ is
// running hot.
func DefaultThresholds() Thresholds {
	return Thresholds{WarningPct: 70, CriticalPct: 85}
}

// Derive maps a utilization percentage to a link status.
func (t Thresholds) Derive(pct float64) LinkStatus {
	switch {
	case pct >= t.CriticalPct:
		return StatusDown
	case pct >= t.WarningPct:
		return StatusDegraded
	default:
		return StatusUp
	}
}

// EffectiveStatus returns the stored status when set, otherwise the status
// derived from utilization.
func (l *Link) EffectiveStatus(t Thresholds) LinkStatus {
	if l.Status != "" {
		return l.Status
	}
	return t.Derive(l.UtilizationPct)
}

// Severity orders statuses for worst-wins comparisons.
func (s LinkStatus) Severity() int {
	switch s {
	case StatusDown:
		return 2
	case StatusDegraded:
		return 1
	default:
		return 0
	}
}

// Impaired reports whether the link is carrying traffic below par.
func (s LinkStatus) Impaired() bool {
	return s == StatusDegraded || s == StatusDown
}

// pairKey is the canonical unordered endpoint pair of a link or
// CONNECTS_TO edge.
type pairKey struct {
	a, b string
}

func canonicalPair(x, y string) pairKey {
	if x > y {
		x, y = y, x
	}
	return pairKey{a: x, b: y}
}

func (p pairKey) String() string {
	return fmt.Sprintf("%s<->%s", p.a, p.b)
}

// Clone returns a deep copy of the topology. Slices are copied so callers
// can mutate the result without touching the original.
func (t *Topology) Clone() *Topology {
	clone := &Topology{
		Devices:     make([]Device, len(t.Devices)),
		Links:       make([]Link, len(t.Links)),
		Services:    make([]Service, len(t.Services)),
		Connections: make([]Connection, len(t.Connections)),
	}
	copy(clone.Devices, t.Devices)
	copy(clone.Links, t.Links)
	copy(clone.Services, t.Services)
	copy(clone.Connections, t.Connections)
	return clone
}

// Sort orders all entity slices by ID (connections by from/to/relation) so
// that exported topologies are reproducible.
func (t *Topology) Sort() {
	sort.Slice(t.Devices, func(i, j int) bool { return t.Devices[i].ID < t.Devices[j].ID })
	sort.Slice(t.Links, func(i, j int) bool { return t.Links[i].ID < t.Links[j].ID })
	sort.Slice(t.Services, func(i, j int) bool { return t.Services[i].ID < t.Services[j].ID })
	sort.Slice(t.Connections, func(i, j int) bool {
		ci, cj := t.Connections[i], t.Connections[j]
		if ci.From != cj.From {
			return ci.From < cj.From
		}
		if ci.To != cj.To {
			return ci.To < cj.To
		}
		return ci.Relation < cj.Relation
	})
}
