package server

import (
	"encoding/json"
	"net/http"

	"github.com/gitlite/flowgraph/pkg/buildinfo"
	apperrors "github.com/gitlite/flowgraph/pkg/errors"
	"github.com/gitlite/flowgraph/pkg/flow"
	"github.com/gitlite/flowgraph/pkg/graph"
	"github.com/gitlite/flowgraph/pkg/history"
	"github.com/gitlite/flowgraph/pkg/pipeline"
)

// =============================================================================
// Request / Response Shapes
// =============================================================================

// computeRequest is the shared request body for both compute endpoints:
// a history snapshot plus pipeline options.
type computeRequest struct {
	History history.History  `json:"history"`
	Options pipeline.Options `json:"options"`
}

// layoutResponse is the body returned by POST /api/layout.
type layoutResponse struct {
	HistoryHash string       `json:"history_hash"`
	Layout      graph.Layout `json:"layout"`
	Cached      bool         `json:"cached"`
}

// flowsResponse is the body returned by POST /api/flows.
type flowsResponse struct {
	HistoryHash string            `json:"history_hash"`
	Labels      map[string]string `json:"labels"`
	Groups      []flow.Group      `json:"groups"`
	Cached      bool              `json:"cached"`
}

// errorResponse is the body returned on any failure.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// =============================================================================
// Handlers
// =============================================================================

// handleHealth reports liveness and build information.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handleLayout computes the lane/edge layout for a posted snapshot.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeCompute(w, r)
	if !ok {
		return
	}

	result, err := s.runner.Execute(r.Context(), req.History, req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, layoutResponse{
		HistoryHash: result.HistoryHash,
		Layout:      result.Layout,
		Cached:      result.CacheInfo.LayoutHit,
	})
}

// handleFlows resolves branch labels and flow groups for a posted snapshot.
func (s *Server) handleFlows(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeCompute(w, r)
	if !ok {
		return
	}

	result, err := s.runner.Execute(r.Context(), req.History, req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, flowsResponse{
		HistoryHash: result.HistoryHash,
		Labels:      result.Flows.Labels,
		Groups:      result.Flows.Groups,
		Cached:      result.CacheInfo.FlowsHit,
	})
}

// =============================================================================
// Helpers
// =============================================================================

// decodeCompute parses and bounds the shared request body. On failure it
// writes the error response itself and returns ok=false.
func (s *Server) decodeCompute(w http.ResponseWriter, r *http.Request) (computeRequest, bool) {
	var req computeRequest
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    string(apperrors.ErrCodeInvalidInput),
			Message: "malformed request body: " + err.Error(),
		})
		return computeRequest{}, false
	}
	return req, true
}

// writeError maps pipeline errors to HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := apperrors.GetCode(err)

	switch code {
	case apperrors.ErrCodeInvalidInput,
		apperrors.ErrCodeInvalidHistory,
		apperrors.ErrCodeEmptyHistory,
		apperrors.ErrCodeDuplicateHash,
		apperrors.ErrCodeInvalidOptions:
		status = http.StatusBadRequest
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case apperrors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	case "":
		code = apperrors.ErrCodeInternal
	}
	if r.Context().Err() != nil {
		status = http.StatusGatewayTimeout
		code = apperrors.ErrCodeTimeout
	}

	s.logger.Error("request failed",
		"id", RequestID(r.Context()),
		"code", code,
		"error", err)

	s.writeJSON(w, status, errorResponse{
		Code:    string(code),
		Message: apperrors.UserMessage(err),
	})
}

// writeJSON encodes v as the response body with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}
