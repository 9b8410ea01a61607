// Package embedding computes and stores entity embeddings from canonical
// composite text.
package embedding

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/freelance-matcher/internal/composite"
	"github.com/jonathan/freelance-matcher/internal/llm"
	"github.com/jonathan/freelance-matcher/internal/types"
)

// Store is the record access the service needs. Each embedding update is a
// single write so a cancelled call never leaves a partial vector behind.
type Store interface {
	GetJob(ctx context.Context, id uuid.UUID) (*types.JobRequest, error)
	UpdateJobEmbedding(ctx context.Context, id uuid.UUID, vector []float64) error
	ListJobs(ctx context.Context) ([]types.JobRequest, error)

	GetFreelancer(ctx context.Context, id uuid.UUID) (*types.FreelancerProfile, error)
	UpdateFreelancerEmbedding(ctx context.Context, id uuid.UUID, vector []float64) error
	ListFreelancers(ctx context.Context) ([]types.FreelancerProfile, error)
}

// ErrEmptySourceText indicates an entity whose composite text is empty;
// embedding it would be meaningless, so the call is rejected before any
// provider call is made.
type ErrEmptySourceText struct {
	Kind string
	ID   uuid.UUID
}

func (e *ErrEmptySourceText) Error() string {
	return fmt.Sprintf("%s %s has no text to embed", e.Kind, e.ID)
}

// ErrNotFound indicates the entity does not exist.
type ErrNotFound struct {
	Kind string
	ID   uuid.UUID
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// Record kinds reported by backfill
const (
	KindJob        = "job"
	KindFreelancer = "freelancer"
)

// BackfillItem is the per-record outcome of a bulk backfill run.
type BackfillItem struct {
	ID      uuid.UUID `json:"id"`
	Kind    string    `json:"kind"`
	Success bool      `json:"success"`
	Error   string    `json:"error,omitempty"`
}

// Service turns entities into embeddings and persists them.
type Service struct {
	store  Store
	client llm.Client
}

// NewService creates an embedding service.
func NewService(store Store, client llm.Client) *Service {
	return &Service{store: store, client: client}
}

// ComputeAndStoreJobEmbedding builds the job's composite text, embeds it and
// writes the vector in a single update.
func (s *Service) ComputeAndStoreJobEmbedding(ctx context.Context, jobID uuid.UUID) error {
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return fmt.Errorf("failed to load job: %w", err)
	}
	if job == nil {
		return &ErrNotFound{Kind: KindJob, ID: jobID}
	}

	text := composite.BuildJobText(job)
	if strings.TrimSpace(text) == "" {
		return &ErrEmptySourceText{Kind: KindJob, ID: jobID}
	}

	vector, err := s.client.EmbedText(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to embed job %s: %w", jobID, err)
	}
	if err := s.store.UpdateJobEmbedding(ctx, jobID, vector); err != nil {
		return fmt.Errorf("failed to store job embedding: %w", err)
	}
	return nil
}

// ComputeAndStoreFreelancerEmbedding builds the profile's composite text,
// embeds it and writes the vector in a single update.
func (s *Service) ComputeAndStoreFreelancerEmbedding(ctx context.Context, freelancerID uuid.UUID) error {
	f, err := s.store.GetFreelancer(ctx, freelancerID)
	if err != nil {
		return fmt.Errorf("failed to load freelancer: %w", err)
	}
	if f == nil {
		return &ErrNotFound{Kind: KindFreelancer, ID: freelancerID}
	}

	text := composite.BuildFreelancerText(f)
	if strings.TrimSpace(text) == "" {
		return &ErrEmptySourceText{Kind: KindFreelancer, ID: freelancerID}
	}

	vector, err := s.client.EmbedText(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to embed freelancer %s: %w", freelancerID, err)
	}
	if err := s.store.UpdateFreelancerEmbedding(ctx, freelancerID, vector); err != nil {
		return fmt.Errorf("failed to store freelancer embedding: %w", err)
	}
	return nil
}

// BackfillAll recomputes embeddings for every record, strictly one at a time.
// A record's failure is recorded and the run continues; the result is always
// the full per-record report ("all attempted", never all-or-nothing). When
// force is false, records that already have an embedding are skipped.
// Cancellation stops the run and returns the items attempted so far.
func (s *Service) BackfillAll(ctx context.Context, force bool) ([]BackfillItem, error) {
	jobs, err := s.store.ListJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	freelancers, err := s.store.ListFreelancers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list freelancers: %w", err)
	}

	items := make([]BackfillItem, 0, len(jobs)+len(freelancers))
	for i := range jobs {
		if !force && jobs[i].HasEmbedding() {
			continue
		}
		select {
		case <-ctx.Done():
			return items, ctx.Err()
		default:
		}
		items = append(items, s.backfillOne(ctx, KindJob, jobs[i].ID))
	}
	for i := range freelancers {
		if !force && freelancers[i].HasEmbedding() {
			continue
		}
		select {
		case <-ctx.Done():
			return items, ctx.Err()
		default:
		}
		items = append(items, s.backfillOne(ctx, KindFreelancer, freelancers[i].ID))
	}
	return items, nil
}

func (s *Service) backfillOne(ctx context.Context, kind string, id uuid.UUID) BackfillItem {
	item := BackfillItem{ID: id, Kind: kind}
	var err error
	switch kind {
	case KindJob:
		err = s.ComputeAndStoreJobEmbedding(ctx, id)
	default:
		err = s.ComputeAndStoreFreelancerEmbedding(ctx, id)
	}
	if err != nil {
		item.Error = err.Error()
		return item
	}
	item.Success = true
	return item
}
