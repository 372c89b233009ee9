package diagnostics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/calligan/netgraph/pkg/topology"
)

// HealthStatus is the overall network verdict.
type HealthStatus string

const (
	StatusHealthy  HealthStatus = "HEALTHY"
	StatusDegraded HealthStatus = "DEGRADED"
	StatusCritical HealthStatus = "CRITICAL"
)

// Rank orders statuses for worst-wins comparison.
func (s HealthStatus) Rank() int {
	switch s {
	case StatusCritical:
		return 2
	case StatusDegraded:
		return 1
	default:
		return 0
	}
}

// RiskLevel grades the impact of a hypothetical link failure.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskModerate RiskLevel = "MODERATE"
	RiskCritical RiskLevel = "CRITICAL"
)

// LinkSummary is a link with its effective status resolved, as reported in
// diagnostic answers.
type LinkSummary struct {
	ID             string              `json:"id"`
	Status         topology.LinkStatus `json:"status"`
	UtilizationPct float64             `json:"utilization_pct"`
}

func (l LinkSummary) String() string {
	return fmt.Sprintf("%s (%s, %g%%)", l.ID, l.Status, l.UtilizationPct)
}

// HealthSummary is the precise answer to "how is the network doing". It names
// the impaired links and the services cut off by dead ones instead of handing
// back the raw graph.
type HealthSummary struct {
	Overall          HealthStatus  `json:"overall"`
	TotalLinks       int           `json:"total_links"`
	ImpairedLinks    []LinkSummary `json:"impaired_links,omitempty"`
	AffectedServices []string      `json:"affected_services,omitempty"`
	CriticalServices []string      `json:"critical_services,omitempty"`
	Devices          int           `json:"devices"`
	Generation       uint64        `json:"generation"`
}

// String renders the one-line verdict. Output is reproducible: impaired
// links and service lists are sorted before rendering.
func (h *HealthSummary) String() string {
	var b strings.Builder
	b.WriteString(string(h.Overall))
	if len(h.ImpairedLinks) > 0 {
		parts := make([]string, 0, len(h.ImpairedLinks))
		for _, l := range h.ImpairedLinks {
			parts = append(parts, l.String())
		}
		fmt.Fprintf(&b, " | %d of %d links impaired: %s", len(h.ImpairedLinks), h.TotalLinks, strings.Join(parts, ", "))
	} else {
		fmt.Fprintf(&b, " | All %d links operational", h.TotalLinks)
	}
	if len(h.AffectedServices) > 0 {
		fmt.Fprintf(&b, " | Services cut off: %s", strings.Join(h.AffectedServices, ", "))
	}
	if len(h.CriticalServices) > 0 {
		fmt.Fprintf(&b, " | Critical services: %s", strings.Join(h.CriticalServices, ", "))
	}
	fmt.Fprintf(&b, " | %d devices total", h.Devices)
	return b.String()
}

// PathTrace is the upstream route from a service to the network root.
type PathTrace struct {
	Service string   `json:"service"`
	Host    string   `json:"host"`
	Hops    []string `json:"hops"` // host first, root last
}

// String renders the route the way an operator reads it.
func (p *PathTrace) String() string {
	if len(p.Hops) == 0 {
		return fmt.Sprintf("%s → %s (no upstream path found)", p.Service, p.Host)
	}
	return fmt.Sprintf("%s → %s", p.Service, strings.Join(p.Hops, " → "))
}

// Impact is the blast radius of one or more link failures: everything that
// loses its path to the root set, nothing that keeps a redundant one.
type Impact struct {
	Links            []LinkSummary `json:"links"`
	AffectedDevices  []string      `json:"affected_devices,omitempty"`
	AffectedServices []string      `json:"affected_services,omitempty"`
	Risk             RiskLevel     `json:"risk"`
}

func (i *Impact) String() string {
	parts := make([]string, 0, len(i.Links))
	for _, l := range i.Links {
		parts = append(parts, l.String())
	}
	s := fmt.Sprintf("%s | Risk: %s", strings.Join(parts, ", "), i.Risk)
	if len(i.AffectedDevices) > 0 {
		s += fmt.Sprintf(" | Devices cut off: %s", strings.Join(i.AffectedDevices, ", "))
	} else {
		s += " | No devices cut off"
	}
	if len(i.AffectedServices) > 0 {
		s += fmt.Sprintf(" | Services impacted: %s", strings.Join(i.AffectedServices, ", "))
	}
	return s
}

// Diagnosis is the infrastructure check for a single service: its placement
// plus any problem links next to its host.
type Diagnosis struct {
	Service        string               `json:"service"`
	Criticality    topology.Criticality `json:"criticality"`
	Host           string               `json:"host"`
	Site           string               `json:"site,omitempty"`
	IssueType      string               `json:"issue_type"`
	ProblemLinks   []LinkSummary        `json:"problem_links,omitempty"`
	Recommendation string               `json:"recommendation"`
}

func (d *Diagnosis) String() string {
	tag := ""
	if d.Criticality == topology.CriticalityCritical {
		tag = " [CRITICAL]"
	}
	if len(d.ProblemLinks) > 0 {
		parts := make([]string, 0, len(d.ProblemLinks))
		for _, l := range d.ProblemLinks {
			parts = append(parts, l.String())
		}
		return fmt.Sprintf("%s%s on %s (%s) | Issues found: %s | Recommendation: %s",
			d.Service, tag, d.Host, d.Site, strings.Join(parts, ", "), d.Recommendation)
	}
	return fmt.Sprintf("%s%s on %s (%s) | No infrastructure issues | Recommendation: %s",
		d.Service, tag, d.Host, d.Site, d.Recommendation)
}

func sortLinkSummaries(ls []LinkSummary) {
	sort.Slice(ls, func(i, j int) bool { return ls[i].ID < ls[j].ID })
}
