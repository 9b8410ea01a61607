package server

import (
	"log"
	"net/http"

	"github.com/jonathan/freelance-matcher/internal/types"
)

// SessionResponse is the public view of an intake session.
type SessionResponse struct {
	SessionID string          `json:"session_id"`
	Phase     types.Phase     `json:"phase"`
	JobData   *types.JobData  `json:"job_data"`
	Messages  []types.Message `json:"messages,omitempty"`
}

func sessionResponse(state *types.ConversationState) SessionResponse {
	return SessionResponse{
		SessionID: state.SessionID.String(),
		Phase:     state.Phase,
		JobData:   state.JobData,
		Messages:  state.Messages,
	}
}

// handleStartSession opens a new intake conversation.
func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	state, err := s.intake.StartSession(r.Context())
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, sessionResponse(state))
}

// handleGetSession returns the current state of an intake session.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	state, err := s.intake.GetSession(r.Context(), id)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sessionResponse(state))
}

// IntakeMessageRequest is one user message in an intake conversation.
type IntakeMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

// handleIntakeMessage processes one conversation turn.
func (s *Server) handleIntakeMessage(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	var req IntakeMessageRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleError(w, err)
		return
	}

	result, err := s.intake.HandleTurn(r.Context(), id, req.Message)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleIntakeMessageStream processes one conversation turn and reports the
// outcome as Server-Sent Events: a "state" event with the accumulated data and
// phase, a "reply" event with the assistant message, then "done".
func (s *Server) handleIntakeMessageStream(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	var req IntakeMessageRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleError(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := s.intake.HandleTurn(r.Context(), id, req.Message)
	if err != nil {
		sse.WriteError(err.Error())
		return
	}

	if err := sse.WriteEvent("state", map[string]any{
		"session_id": result.SessionID.String(),
		"phase":      result.Phase,
		"job_data":   result.JobData,
	}); err != nil {
		return
	}
	if err := sse.WriteEvent("reply", map[string]string{"reply": result.Reply}); err != nil {
		return
	}
	sse.WriteEvent("done", map[string]string{"session_id": result.SessionID.String()}) //nolint:errcheck
}

// ConfirmResponse reports the job created from a confirmed intake session.
type ConfirmResponse struct {
	JobID          string `json:"job_id"`
	EmbeddingReady bool   `json:"embedding_ready"`
}

// handleConfirmSession finalizes a session that reached the confirmation
// phase: the accumulated data becomes a job request, the embedding is
// computed, and the session is discarded.
func (s *Server) handleConfirmSession(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	ctx := r.Context()
	data, err := s.intake.Confirm(ctx, id)
	if err != nil {
		s.handleError(w, err)
		return
	}

	jobID, err := s.db.CreateJob(ctx, types.FromJobData(data))
	if err != nil {
		s.handleError(w, err)
		return
	}

	ready := true
	if err := s.embedder.ComputeAndStoreJobEmbedding(ctx, jobID); err != nil {
		log.Printf("[server] embedding failed for job %s: %v", jobID, err)
		ready = false
	}

	s.jsonResponse(w, http.StatusCreated, ConfirmResponse{
		JobID:          jobID.String(),
		EmbeddingReady: ready,
	})
}
