// Package matching ranks freelancer candidates for a job by cosine similarity
// of their embeddings, with structured-compatibility penalties layered on top.
package matching

import (
	"fmt"
	"math"
)

// CosineSimilarity returns the cosine of the angle between two vectors, in
// [-1, 1]. Vectors of different lengths are an error; a zero vector yields 0.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector dimension mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("empty vectors")
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
