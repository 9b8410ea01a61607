package types

import (
	"time"

	"github.com/google/uuid"
)

// Phase is the current stage of a guided intake conversation.
// It is derived from the accumulated JobData on every turn, never stored as
// independent state, except for PhaseComplete which is only ever reached by an
// explicit confirmation action.
type Phase string

// Intake phases, in order.
const (
	PhaseUnderstanding Phase = "understanding"
	PhaseLogistics     Phase = "logistics"
	PhaseConfirmation  Phase = "confirmation"
	PhaseComplete      Phase = "complete"
)

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one chat turn within an intake session.
type Message struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// ConversationState is the full state of one intake session. It lives for the
// duration of the session and is discarded once the phase reaches complete.
type ConversationState struct {
	SessionID uuid.UUID `json:"session_id"`
	Phase     Phase     `json:"phase"`
	JobData   *JobData  `json:"job_data"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Append adds a message and bumps the update timestamp.
func (c *ConversationState) Append(role, content string) {
	now := time.Now().UTC()
	c.Messages = append(c.Messages, Message{Role: role, Content: content, At: now})
	c.UpdatedAt = now
}

// LastUserMessage returns the content of the most recent user message, or "".
func (c *ConversationState) LastUserMessage() string {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleUser {
			return c.Messages[i].Content
		}
	}
	return ""
}
