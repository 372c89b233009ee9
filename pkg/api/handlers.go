package api

import (
	"net/http"

	"github.com/calligan/netgraph/pkg/logging"
	"github.com/calligan/netgraph/pkg/topology"
)

func (s *Server) handleHealthSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.engine.NetworkHealth()
	if err != nil {
		s.respondDiagnosticError(w, "health summary", err)
		return
	}
	s.respondJSON(w, http.StatusOK, HealthSummaryResponse{
		HealthSummary: summary,
		Verdict:       summary.String(),
	})
}

func (s *Server) handleServicePath(w http.ResponseWriter, r *http.Request) {
	trace, err := s.engine.ServicePath(r.PathValue("id"))
	if err != nil {
		s.respondDiagnosticError(w, "path trace", err)
		return
	}
	s.respondJSON(w, http.StatusOK, PathResponse{
		PathTrace: trace,
		Route:     trace.String(),
	})
}

func (s *Server) handleDiagnosis(w http.ResponseWriter, r *http.Request) {
	issue := r.URL.Query().Get("issue")
	if issue == "" {
		issue = "timeout"
	}
	diag, err := s.engine.DiagnoseService(r.PathValue("id"), issue)
	if err != nil {
		s.respondDiagnosticError(w, "diagnosis", err)
		return
	}
	s.respondJSON(w, http.StatusOK, DiagnosisResponse{
		Diagnosis: diag,
		Summary:   diag.String(),
	})
}

func (s *Server) handleBlastRadius(w http.ResponseWriter, r *http.Request) {
	impact, err := s.engine.BlastRadius(r.PathValue("id"))
	if err != nil {
		s.respondDiagnosticError(w, "blast radius", err)
		return
	}
	s.respondJSON(w, http.StatusOK, ImpactResponse{
		Impact:  impact,
		Summary: impact.String(),
	})
}

func (s *Server) handleImpact(w http.ResponseWriter, r *http.Request) {
	var req ImpactRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if len(req.LinkIDs) == 0 {
		s.respondError(w, http.StatusBadRequest, "link_ids must name at least one link")
		return
	}

	impact, err := s.engine.ImpactOfFailures(req.LinkIDs)
	if err != nil {
		s.respondDiagnosticError(w, "impact analysis", err)
		return
	}
	s.respondJSON(w, http.StatusOK, ImpactResponse{
		Impact:  impact,
		Summary: impact.String(),
	})
}

func (s *Server) handleExportTopology(w http.ResponseWriter, r *http.Request) {
	topo, err := s.engine.RawTopology()
	if err != nil {
		s.respondDiagnosticError(w, "topology export", err)
		return
	}
	s.respondJSON(w, http.StatusOK, topo)
}

func (s *Server) handleLoadTopology(w http.ResponseWriter, r *http.Request) {
	var topo topology.Topology
	if !s.decodeJSON(w, r, &topo) {
		return
	}

	if err := s.store.Load(&topo); err != nil {
		s.respondDiagnosticError(w, "topology load", err)
		return
	}

	view := s.store.Snapshot()
	stats := view.Stats()
	s.metrics.RecordTopologyLoad(true, stats.Devices, stats.Links, stats.Services)
	s.metrics.SetTopologyGeneration(view.Generation())
	s.updateLinkGauges(view)
	s.log.Info("topology loaded",
		logging.Int("devices", stats.Devices),
		logging.Int("links", stats.Links),
		logging.Int("services", stats.Services))

	s.respondJSON(w, http.StatusOK, LoadResponse{
		Stats:      stats,
		Generation: view.Generation(),
	})
}

func (s *Server) handleSetLinkStatus(w http.ResponseWriter, r *http.Request) {
	linkID := r.PathValue("id")

	var req LinkStatusRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	switch req.Status {
	case "", topology.StatusUp, topology.StatusDegraded, topology.StatusDown:
	default:
		s.respondError(w, http.StatusBadRequest, "status must be UP, DEGRADED, DOWN or empty")
		return
	}

	if err := s.store.SetLinkStatus(linkID, req.Status); err != nil {
		s.respondDiagnosticError(w, "link status update", err)
		return
	}
	if req.UtilizationPct != nil {
		if err := s.store.SetLinkUtilization(linkID, *req.UtilizationPct); err != nil {
			s.respondDiagnosticError(w, "link utilization update", err)
			return
		}
	}

	view := s.store.Snapshot()
	s.metrics.SetTopologyGeneration(view.Generation())
	s.updateLinkGauges(view)
	s.log.Info("link updated",
		logging.LinkID(linkID),
		logging.String("status", string(req.Status)))

	link, err := view.GetLink(linkID)
	if err != nil {
		s.respondDiagnosticError(w, "link status update", err)
		return
	}
	s.respondJSON(w, http.StatusOK, link)
}

func (s *Server) updateLinkGauges(view *topology.View) {
	s.metrics.UpdateLinkStatusCounts(
		len(view.LinksByStatus(topology.StatusUp)),
		len(view.LinksByStatus(topology.StatusDegraded)),
		len(view.LinksByStatus(topology.StatusDown)),
	)
}
