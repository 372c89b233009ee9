package api

import (
	"github.com/calligan/netgraph/pkg/diagnostics"
	"github.com/calligan/netgraph/pkg/topology"
)

// ErrorResponse is the JSON body of every error answer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// HealthSummaryResponse wraps the engine's summary with its rendered
// one-line verdict.
type HealthSummaryResponse struct {
	*diagnostics.HealthSummary
	Verdict string `json:"verdict"`
}

// PathResponse is the upstream trace plus its rendered route.
type PathResponse struct {
	*diagnostics.PathTrace
	Route string `json:"route"`
}

// ImpactResponse wraps an impact analysis with its rendered summary.
type ImpactResponse struct {
	*diagnostics.Impact
	Summary string `json:"summary"`
}

// DiagnosisResponse wraps a service diagnosis with its rendered summary.
type DiagnosisResponse struct {
	*diagnostics.Diagnosis
	Summary string `json:"summary"`
}

// ImpactRequest asks what breaks when all the named links fail at once.
type ImpactRequest struct {
	LinkIDs []string `json:"link_ids"`
}

// LinkStatusRequest overrides a link's stored status. An empty status clears
// the override so the status derives from utilization again.
type LinkStatusRequest struct {
	Status         topology.LinkStatus `json:"status"`
	UtilizationPct *float64            `json:"utilization_pct,omitempty"`
}

// LoadResponse reports what a successful topology load produced.
type LoadResponse struct {
	Stats      topology.Stats `json:"stats"`
	Generation uint64         `json:"generation"`
}
