package matching

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/freelance-matcher/internal/composite"
	"github.com/jonathan/freelance-matcher/internal/llm"
	"github.com/jonathan/freelance-matcher/internal/prompts"
	"github.com/jonathan/freelance-matcher/internal/types"
)

// DefaultTopK is the result count when the caller does not specify one.
const DefaultTopK = 10

// explainConcurrency bounds parallel explanation calls per ranking request.
const explainConcurrency = 4

// Store is the record access the engine needs. ListCandidates must return
// only profiles with a computed embedding; city is an optional cheap
// pre-filter applied before the similarity step.
type Store interface {
	GetJob(ctx context.Context, id uuid.UUID) (*types.JobRequest, error)
	ListCandidates(ctx context.Context, city *string) ([]types.FreelancerProfile, error)
}

// ErrNoEmbedding indicates ranking was requested for a job whose embedding
// has not been computed yet.
type ErrNoEmbedding struct {
	JobID uuid.UUID
}

func (e *ErrNoEmbedding) Error() string {
	return fmt.Sprintf("job %s has no embedding", e.JobID)
}

// ErrJobNotFound indicates the job does not exist.
type ErrJobNotFound struct {
	JobID uuid.UUID
}

func (e *ErrJobNotFound) Error() string {
	return fmt.Sprintf("job not found: %s", e.JobID)
}

// Engine produces ranked candidate lists for jobs.
type Engine struct {
	store   Store
	client  llm.Client
	explain bool
}

// NewEngine creates a ranking engine. When explain is true the top results
// get a best-effort natural-language explanation.
func NewEngine(store Store, client llm.Client, explain bool) *Engine {
	return &Engine{store: store, client: client, explain: explain}
}

// RankMatches returns up to topK candidates for the job, best first.
// An empty candidate pool is a successful empty result, not an error.
// Ordering is deterministic: score descending, then raw similarity, then most
// recently updated candidate, then ID.
func (e *Engine) RankMatches(ctx context.Context, jobID uuid.UUID, topK int) ([]types.MatchResult, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	job, err := e.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}
	if job == nil {
		return nil, &ErrJobNotFound{JobID: jobID}
	}
	if !job.HasEmbedding() {
		return nil, &ErrNoEmbedding{JobID: jobID}
	}

	candidates, err := e.store.ListCandidates(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	type scored struct {
		result    types.MatchResult
		updatedAt int64
	}
	ranked := make([]scored, 0, len(candidates))
	for i := range candidates {
		candidate := &candidates[i]
		if !candidate.HasEmbedding() {
			// Rows written between the two-step insert/embed are visible
			// without a vector; they are not candidates yet.
			continue
		}
		sim, err := CosineSimilarity(job.Embedding, candidate.Embedding)
		if err != nil {
			log.Printf("[matching] skipping candidate %s: %v", candidate.ID, err)
			continue
		}
		adj := StructuredAdjustment(job, candidate)
		if adj.Excluded {
			continue
		}
		ranked = append(ranked, scored{
			result: types.MatchResult{
				FreelancerID: candidate.ID,
				Similarity:   sim,
				Adjustment:   adj.Delta,
				Score:        clamp(sim+adj.Delta, -1, 1),
			},
			updatedAt: candidate.UpdatedAt.UnixNano(),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.result.Score != b.result.Score {
			return a.result.Score > b.result.Score
		}
		if a.result.Similarity != b.result.Similarity {
			return a.result.Similarity > b.result.Similarity
		}
		if a.updatedAt != b.updatedAt {
			return a.updatedAt > b.updatedAt
		}
		return a.result.FreelancerID.String() < b.result.FreelancerID.String()
	})

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	results := make([]types.MatchResult, len(ranked))
	for i, r := range ranked {
		results[i] = r.result
	}

	if e.explain && len(results) > 0 {
		e.explainMatches(ctx, job, candidates, results)
	}
	return results, nil
}

// explainMatches fills in explanations for the ranked results. Failures leave
// the explanation empty and never affect the ranking itself.
func (e *Engine) explainMatches(ctx context.Context, job *types.JobRequest, candidates []types.FreelancerProfile, results []types.MatchResult) {
	byID := make(map[uuid.UUID]*types.FreelancerProfile, len(candidates))
	for i := range candidates {
		byID[candidates[i].ID] = &candidates[i]
	}
	jobText := composite.BuildJobText(job)
	template := prompts.MustGet("matching.json", "explain-match")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(explainConcurrency)
	for i := range results {
		candidate, ok := byID[results[i].FreelancerID]
		if !ok {
			continue
		}
		g.Go(func() error {
			prompt := prompts.Format(template, map[string]string{
				"JobText":        jobText,
				"FreelancerText": composite.BuildFreelancerText(candidate),
			})
			explanation, err := e.client.GenerateContent(gctx, prompt, llm.TierLite)
			if err != nil {
				log.Printf("[matching] explanation failed for %s: %v", results[i].FreelancerID, err)
				return nil // best effort
			}
			results[i].Explanation = explanation
			return nil
		})
	}
	_ = g.Wait()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
