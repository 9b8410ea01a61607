package server

import (
	"log"
	"net/http"

	"github.com/jonathan/freelance-matcher/internal/types"
)

// FreelancerRequest is the payload for creating or replacing a profile.
type FreelancerRequest struct {
	Description  string                    `json:"description" validate:"required,min=3"`
	Skills       []string                  `json:"skills,omitempty"`
	ExampleTasks []string                  `json:"example_tasks,omitempty"`
	Availability *types.Availability       `json:"availability,omitempty"`
	Location     *types.FreelancerLocation `json:"location,omitempty"`
	PricingStyle string                    `json:"pricing_style,omitempty" validate:"omitempty,oneof=hourly per_task"`
	HourlyRate   *float64                  `json:"hourly_rate,omitempty" validate:"omitempty,gte=0"`
}

func (req *FreelancerRequest) toInput() types.FreelancerUpsertInput {
	return types.FreelancerUpsertInput{
		Description:  req.Description,
		Skills:       req.Skills,
		ExampleTasks: req.ExampleTasks,
		Availability: req.Availability,
		Location:     req.Location,
		PricingStyle: req.PricingStyle,
		HourlyRate:   req.HourlyRate,
	}
}

// FreelancerWriteResponse reports the profile and its embedding readiness.
type FreelancerWriteResponse struct {
	ID             string `json:"id"`
	EmbeddingReady bool   `json:"embedding_ready"`
}

// handleCreateFreelancer creates a profile and computes its embedding.
func (s *Server) handleCreateFreelancer(w http.ResponseWriter, r *http.Request) {
	var req FreelancerRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleError(w, err)
		return
	}

	ctx := r.Context()
	id, err := s.db.CreateFreelancer(ctx, req.toInput())
	if err != nil {
		s.handleError(w, err)
		return
	}

	ready := true
	if err := s.embedder.ComputeAndStoreFreelancerEmbedding(ctx, id); err != nil {
		log.Printf("[server] embedding failed for freelancer %s: %v", id, err)
		ready = false
	}

	s.jsonResponse(w, http.StatusCreated, FreelancerWriteResponse{
		ID:             id.String(),
		EmbeddingReady: ready,
	})
}

// handleGetFreelancer retrieves a profile by ID.
func (s *Server) handleGetFreelancer(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	freelancer, err := s.db.GetFreelancer(r.Context(), id)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if freelancer == nil {
		s.errorResponse(w, http.StatusNotFound, "freelancer not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, freelancer)
}

// handleUpdateFreelancer replaces a profile and recomputes its embedding.
// Until the recompute lands the profile is out of the candidate pool, since
// the update clears the stale vector.
func (s *Server) handleUpdateFreelancer(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	var req FreelancerRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleError(w, err)
		return
	}

	ctx := r.Context()
	existing, err := s.db.GetFreelancer(ctx, id)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if existing == nil {
		s.errorResponse(w, http.StatusNotFound, "freelancer not found")
		return
	}

	if err := s.db.UpdateFreelancer(ctx, id, req.toInput()); err != nil {
		s.handleError(w, err)
		return
	}

	ready := true
	if err := s.embedder.ComputeAndStoreFreelancerEmbedding(ctx, id); err != nil {
		log.Printf("[server] embedding failed for freelancer %s: %v", id, err)
		ready = false
	}

	s.jsonResponse(w, http.StatusOK, FreelancerWriteResponse{
		ID:             id.String(),
		EmbeddingReady: ready,
	})
}
