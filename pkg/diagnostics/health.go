package diagnostics

import (
	"sort"
	"time"

	"github.com/calligan/netgraph/pkg/topology"
)

// NetworkHealth aggregates the state of every link into one verdict.
//
// Overall is CRITICAL when a CRITICAL service has lost every path to the
// root set because of a DOWN link, DEGRADED when any link is impaired, and
// HEALTHY otherwise. AffectedServices is the union of the blast radii of all
// currently DOWN links.
func (e *Engine) NetworkHealth() (*HealthSummary, error) {
	start := time.Now()
	v, err := e.snapshot("NetworkHealth")
	if err != nil {
		e.record("network_health", start, 0, err)
		return nil, err
	}

	t := v.Thresholds()
	stats := v.Stats()

	var impaired []LinkSummary
	down := make(map[string]bool)
	for _, l := range v.Links() {
		st := l.EffectiveStatus(t)
		if st.Impaired() {
			impaired = append(impaired, LinkSummary{ID: l.ID, Status: st, UtilizationPct: l.UtilizationPct})
		}
		if st == topology.StatusDown {
			down[l.ID] = true
		}
	}

	var affectedSvcs []string
	visited := stats.Devices
	if len(down) > 0 {
		_, affectedSvcs, visited = affected(v, down)
	}

	overall := StatusHealthy
	if len(impaired) > 0 {
		overall = StatusDegraded
	}
	for _, id := range affectedSvcs {
		svc, gerr := v.GetService(id)
		if gerr == nil && svc.Criticality == topology.CriticalityCritical {
			overall = StatusCritical
			break
		}
	}

	var criticalNames []string
	for _, s := range v.Services() {
		if s.Criticality == topology.CriticalityCritical {
			criticalNames = append(criticalNames, s.Name)
		}
	}
	sort.Strings(criticalNames)

	summary := &HealthSummary{
		Overall:          overall,
		TotalLinks:       stats.Links,
		ImpairedLinks:    impaired,
		AffectedServices: affectedSvcs,
		CriticalServices: criticalNames,
		Devices:          stats.Devices,
		Generation:       v.Generation(),
	}
	e.record("network_health", start, visited, nil)
	return summary, nil
}
