package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/freelance-matcher/internal/embedding"
)

// BackfillRequest configures a backfill run. Force recomputes embeddings that
// already exist.
type BackfillRequest struct {
	Force bool `json:"force"`
}

// BackfillResponse is the per-record report of a backfill run.
type BackfillResponse struct {
	Items     []embedding.BackfillItem `json:"items"`
	Attempted int                      `json:"attempted"`
	Succeeded int                      `json:"succeeded"`
	Failed    int                      `json:"failed"`
	Truncated bool                     `json:"truncated,omitempty"` // run was cancelled mid-way
}

// handleBackfill recomputes embeddings for all records missing one. The run is
// all-attempted: individual failures are reported, never fatal.
func (s *Server) handleBackfill(w http.ResponseWriter, r *http.Request) {
	var req BackfillRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.handleError(w, NewValidationError("invalid request body"))
			return
		}
	}

	items, err := s.embedder.BackfillAll(r.Context(), req.Force)
	if err != nil && items == nil {
		s.handleError(w, err)
		return
	}

	resp := BackfillResponse{
		Items:     items,
		Attempted: len(items),
		Truncated: err != nil,
	}
	if resp.Items == nil {
		resp.Items = []embedding.BackfillItem{}
	}
	for _, item := range items {
		if item.Success {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}
	s.jsonResponse(w, http.StatusOK, resp)
}
