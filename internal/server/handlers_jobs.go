package server

import (
	"log"
	"net/http"

	"github.com/jonathan/freelance-matcher/internal/types"
)

// CreateJobRequest is the payload for creating a job request directly,
// bypassing conversational intake.
type CreateJobRequest struct {
	Description string                `json:"description" validate:"required,min=3"`
	Location    *types.LocationData   `json:"location,omitempty"`
	TimeWindow  *types.TimeWindowData `json:"time_window,omitempty"`
	Budget      *string               `json:"budget,omitempty"`
}

// CreateJobResponse reports the new job and whether its embedding is ready.
// The embedding step is best-effort at create time; a false value means the
// job is stored but not matchable until a backfill run.
type CreateJobResponse struct {
	ID             string `json:"id"`
	EmbeddingReady bool   `json:"embedding_ready"`
}

// handleCreateJob creates a job request and computes its embedding.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req CreateJobRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleError(w, err)
		return
	}

	ctx := r.Context()
	id, err := s.db.CreateJob(ctx, types.JobRequestCreateInput{
		Description: req.Description,
		Location:    req.Location,
		TimeWindow:  req.TimeWindow,
		Budget:      req.Budget,
	})
	if err != nil {
		s.handleError(w, err)
		return
	}

	ready := true
	if err := s.embedder.ComputeAndStoreJobEmbedding(ctx, id); err != nil {
		// The row exists without a vector; backfill will pick it up.
		log.Printf("[server] embedding failed for job %s: %v", id, err)
		ready = false
	}

	s.jsonResponse(w, http.StatusCreated, CreateJobResponse{
		ID:             id.String(),
		EmbeddingReady: ready,
	})
}

// handleGetJob retrieves a job request by ID.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	job, err := s.db.GetJob(r.Context(), id)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "job not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// MatchesResponse is the ranked candidate list for a job.
type MatchesResponse struct {
	JobID   string              `json:"job_id"`
	Matches []types.MatchResult `json:"matches"`
	Count   int                 `json:"count"`
}

// handleRankMatches returns the ranked freelancer candidates for a job.
func (s *Server) handleRankMatches(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		s.handleError(w, err)
		return
	}
	topK := parseQueryInt(r, "top_k", s.cfg.TopK, 100)

	matches, err := s.engine.RankMatches(r.Context(), id, topK)
	if err != nil {
		s.handleError(w, err)
		return
	}

	// An empty pool is an empty list, not an error
	if matches == nil {
		matches = []types.MatchResult{}
	}
	s.jsonResponse(w, http.StatusOK, MatchesResponse{
		JobID:   id.String(),
		Matches: matches,
		Count:   len(matches),
	})
}
