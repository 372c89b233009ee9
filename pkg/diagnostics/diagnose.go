package diagnostics

import (
	"time"
)

// Utilization above this counts as a problem even when the link status is
// still nominally UP.
const hotLinkPct = 80

// Fixed recommendation strings. The diagnosis either points at the network
// or away from it.
const (
	RecommendCheckLinks = "Check network links"
	RecommendCheckLogs  = "Check application logs"
)

// DiagnoseService checks whether a service's trouble is infrastructure: it
// reports the service's placement and every problem link adjacent to its
// host (impaired effective status, or running hotter than 80%). issueType is
// echoed back; the check itself is the same for any issue.
func (e *Engine) DiagnoseService(serviceID, issueType string) (*Diagnosis, error) {
	start := time.Now()
	v, err := e.snapshot("DiagnoseService")
	if err != nil {
		e.record("diagnose_service", start, 0, err)
		return nil, err
	}

	svc, err := v.FindServiceByName(serviceID)
	if err != nil {
		e.record("diagnose_service", start, 0, err)
		return nil, err
	}
	host, err := v.GetDevice(svc.Host)
	if err != nil {
		e.record("diagnose_service", start, 0, err)
		return nil, err
	}

	t := v.Thresholds()
	neighbors, err := v.Neighbors(host.ID)
	if err != nil {
		e.record("diagnose_service", start, 1, err)
		return nil, err
	}

	var problems []LinkSummary
	for _, n := range neighbors {
		for _, l := range n.Links {
			st := l.EffectiveStatus(t)
			if st.Impaired() || l.UtilizationPct > hotLinkPct {
				problems = append(problems, LinkSummary{
					ID:             l.ID,
					Status:         st,
					UtilizationPct: l.UtilizationPct,
				})
			}
		}
	}
	sortLinkSummaries(problems)

	recommendation := RecommendCheckLogs
	if len(problems) > 0 {
		recommendation = RecommendCheckLinks
	}

	diag := &Diagnosis{
		Service:        svc.Name,
		Criticality:    svc.Criticality,
		Host:           host.Name,
		Site:           host.Site,
		IssueType:      issueType,
		ProblemLinks:   problems,
		Recommendation: recommendation,
	}
	e.record("diagnose_service", start, 1+len(neighbors), nil)
	return diag, nil
}
