package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/calligan/netgraph/pkg/logging"
	"github.com/calligan/netgraph/pkg/topology"
)

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode JSON response", logging.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}

// respondDiagnosticError maps engine and store errors to HTTP status codes:
// unknown entities and unreachable paths are 404, rejected topologies 422,
// an unloaded store 503. Anything else is a sanitized 500; the full error
// stays in the log.
func (s *Server) respondDiagnosticError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, topology.ErrPathNotFound):
		s.respondError(w, http.StatusNotFound, err.Error())
	case topology.IsNotFound(err):
		s.respondError(w, http.StatusNotFound, err.Error())
	case topology.IsValidation(err):
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, topology.ErrNotLoaded):
		s.respondError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.log.Error("internal error", logging.Operation(op), logging.Error(err))
		s.respondError(w, http.StatusInternalServerError, op+" failed")
	}
}

// decodeJSON decodes the request body, answering 400 itself on failure.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}
