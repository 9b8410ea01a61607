package intake

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/freelance-matcher/internal/llm"
	"github.com/jonathan/freelance-matcher/internal/prompts"
	"github.com/jonathan/freelance-matcher/internal/types"
)

// SessionStore persists conversation state between turns.
type SessionStore interface {
	Create(ctx context.Context) (*types.ConversationState, error)
	Get(ctx context.Context, sessionID uuid.UUID) (*types.ConversationState, error)
	Save(ctx context.Context, state *types.ConversationState) error
	Delete(ctx context.Context, sessionID uuid.UUID) error
}

// Service drives one intake conversation turn by turn.
type Service struct {
	client   llm.Client
	sessions SessionStore
}

// NewService creates an intake service.
func NewService(client llm.Client, sessions SessionStore) *Service {
	return &Service{client: client, sessions: sessions}
}

// TurnResult is the outcome of processing one user message.
type TurnResult struct {
	SessionID uuid.UUID      `json:"session_id"`
	Phase     types.Phase    `json:"phase"`
	JobData   *types.JobData `json:"job_data"`
	Reply     string         `json:"reply"`
}

// StartSession opens a fresh intake session in the understanding phase.
func (s *Service) StartSession(ctx context.Context) (*types.ConversationState, error) {
	return s.sessions.Create(ctx)
}

// GetSession loads an existing session.
func (s *Service) GetSession(ctx context.Context, sessionID uuid.UUID) (*types.ConversationState, error) {
	return s.sessions.Get(ctx, sessionID)
}

// HandleTurn processes one user message: extract fields, merge them into the
// accumulated data, re-derive the phase and generate the assistant reply under
// that phase's instruction set. Extraction failure aborts the turn before any
// state is written, so accumulated data never regresses.
func (s *Service) HandleTurn(ctx context.Context, sessionID uuid.UUID, message string) (*TurnResult, error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	extracted, err := ExtractFields(ctx, s.client, state.JobData, message)
	if err != nil {
		return nil, err
	}
	state.JobData = MergeExtracted(state.JobData, extracted)
	state.Phase = DetectPhase(state.JobData)
	state.Append(types.RoleUser, message)

	reply, err := s.generateReply(ctx, state, message)
	if err != nil {
		return nil, err
	}
	state.Append(types.RoleAssistant, reply)

	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, err
	}

	return &TurnResult{
		SessionID: state.SessionID,
		Phase:     state.Phase,
		JobData:   state.JobData,
		Reply:     reply,
	}, nil
}

// Confirm finalizes a session after the client's explicit yes. The session
// must have reached the confirmation phase; the accumulated data is returned
// for persistence and the session is discarded.
func (s *Service) Confirm(ctx context.Context, sessionID uuid.UUID) (*types.JobData, error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state.Phase != types.PhaseConfirmation {
		return nil, &ErrNotConfirmable{SessionID: sessionID, Phase: state.Phase}
	}
	data := state.JobData.Clone()
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Service) generateReply(ctx context.Context, state *types.ConversationState, message string) (string, error) {
	template, err := InstructionSet(state.Phase)
	if err != nil {
		return "", err
	}
	prompt := prompts.Format(template, map[string]string{
		"Known":   KnownSummary(state.JobData),
		"Message": message,
	})
	reply, err := s.client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return "", fmt.Errorf("reply generation failed: %w", err)
	}
	return reply, nil
}

// ErrNotConfirmable indicates a confirm call before the session reached the
// confirmation phase.
type ErrNotConfirmable struct {
	SessionID uuid.UUID
	Phase     types.Phase
}

func (e *ErrNotConfirmable) Error() string {
	return fmt.Sprintf("session %s cannot be confirmed in phase %q", e.SessionID, e.Phase)
}
