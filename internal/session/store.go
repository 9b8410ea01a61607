// Package session stores intake conversation state in Redis. A session is one
// JSON blob under a TTL key; the TTL is refreshed on every turn and the key is
// deleted once intake completes. Writes are last-write-wins, no locking.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jonathan/freelance-matcher/internal/types"
)

// DefaultTTL is how long an idle intake session survives.
const DefaultTTL = 24 * time.Hour

// ErrSessionNotFound indicates the session does not exist or has expired.
type ErrSessionNotFound struct {
	SessionID uuid.UUID
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.SessionID)
}

// Store is a Redis-backed conversation state store.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewClient creates and verifies a Redis client connection.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return rdb, nil
}

// NewStore creates a session store. A non-positive TTL falls back to DefaultTTL.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{rdb: rdb, ttl: ttl}
}

// Create opens a fresh session in the understanding phase.
func (s *Store) Create(ctx context.Context) (*types.ConversationState, error) {
	now := time.Now().UTC()
	state := &types.ConversationState{
		SessionID: uuid.New(),
		Phase:     types.PhaseUnderstanding,
		JobData:   &types.JobData{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Get loads a session's state.
func (s *Store) Get(ctx context.Context, sessionID uuid.UUID) (*types.ConversationState, error) {
	data, err := s.rdb.Get(ctx, sessionKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, &ErrSessionNotFound{SessionID: sessionID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}

	var state types.ConversationState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse session %s: %w", sessionID, err)
	}
	return &state, nil
}

// Save writes a session's state and refreshes its TTL.
func (s *Store) Save(ctx context.Context, state *types.ConversationState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session %s: %w", state.SessionID, err)
	}
	if err := s.rdb.Set(ctx, sessionKey(state.SessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session %s: %w", state.SessionID, err)
	}
	return nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (s *Store) Delete(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.rdb.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	return nil
}

func sessionKey(sessionID uuid.UUID) string {
	return "intake:session:" + sessionID.String()
}
