package types

import "github.com/google/uuid"

// MatchResult is one ranked candidate for a job. Similarity is the raw cosine
// similarity in [-1, 1]; Adjustment is the structured-compatibility delta
// applied on top (always <= 0); Score is the clamped sum used for ordering.
// Explanation is best-effort and may be empty.
type MatchResult struct {
	FreelancerID uuid.UUID `json:"freelancer_id"`
	Similarity   float64   `json:"similarity"`
	Adjustment   float64   `json:"adjustment"`
	Score        float64   `json:"score"`
	Explanation  string    `json:"explanation,omitempty"`
}
