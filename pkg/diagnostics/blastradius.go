package diagnostics

import (
	"time"

	"github.com/calligan/netgraph/pkg/topology"
)

// BlastRadius answers "what breaks if this link fails": the services whose
// hosts were reachable from the root set before removing the link and are
// not after. A service with a surviving redundant path stays out of the
// result; an empty result is a valid answer, not an error.
func (e *Engine) BlastRadius(linkID string) (*Impact, error) {
	start := time.Now()
	v, err := e.snapshot("BlastRadius")
	if err != nil {
		e.record("blast_radius", start, 0, err)
		return nil, err
	}

	impact, visited, err := e.impact(v, []string{linkID})
	e.record("blast_radius", start, visited, err)
	if err != nil {
		return nil, err
	}
	return impact, nil
}

// ImpactOfFailures is the multi-link what-if: the combined blast radius of
// all the given links failing at once. Correlated failures can cut off
// services no single link would.
func (e *Engine) ImpactOfFailures(linkIDs []string) (*Impact, error) {
	start := time.Now()
	v, err := e.snapshot("ImpactOfFailures")
	if err != nil {
		e.record("impact", start, 0, err)
		return nil, err
	}

	impact, visited, err := e.impact(v, linkIDs)
	e.record("impact", start, visited, err)
	if err != nil {
		return nil, err
	}
	return impact, nil
}

func (e *Engine) impact(v *topology.View, linkIDs []string) (*Impact, int, error) {
	t := v.Thresholds()
	blocked := make(map[string]bool, len(linkIDs))
	summaries := make([]LinkSummary, 0, len(linkIDs))
	for _, id := range linkIDs {
		l, err := v.GetLink(id)
		if err != nil {
			return nil, 0, err
		}
		if !blocked[id] {
			blocked[id] = true
			summaries = append(summaries, LinkSummary{
				ID:             l.ID,
				Status:         l.EffectiveStatus(t),
				UtilizationPct: l.UtilizationPct,
			})
		}
	}
	sortLinkSummaries(summaries)

	devices, services, visited := affected(v, blocked)

	risk := RiskLow
	if len(services) > 0 {
		risk = RiskModerate
	}
	for _, id := range services {
		svc, err := v.GetService(id)
		if err == nil && svc.Criticality == topology.CriticalityCritical {
			risk = RiskCritical
			break
		}
	}

	return &Impact{
		Links:            summaries,
		AffectedDevices:  devices,
		AffectedServices: services,
		Risk:             risk,
	}, visited, nil
}
