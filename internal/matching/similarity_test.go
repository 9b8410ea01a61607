package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity_IdenticalVectors(t *testing.T) {
	v := []float64{0.5, -0.25, 0.8}
	sim, err := CosineSimilarity(v, v)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 1e-12)
}

func TestCosineSimilarity_OppositeVectors(t *testing.T) {
	sim, err := CosineSimilarity([]float64{1, 2}, []float64{-1, -2})
	require.NoError(t, err)
	assert.InDelta(t, -1.0, sim, 1e-12)
}

func TestCosineSimilarity_OrthogonalVectors(t *testing.T) {
	sim, err := CosineSimilarity([]float64{1, 0}, []float64{0, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, sim, 1e-12)
}

func TestCosineSimilarity_ScaleInvariant(t *testing.T) {
	a := []float64{0.3, 0.7, -0.2}
	b := []float64{0.6, 1.4, -0.4} // 2*a
	sim, err := CosineSimilarity(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 1e-12)
}

func TestCosineSimilarity_DimensionMismatch(t *testing.T) {
	_, err := CosineSimilarity([]float64{1, 2}, []float64{1, 2, 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dimension mismatch")
}

func TestCosineSimilarity_EmptyVectors(t *testing.T) {
	_, err := CosineSimilarity(nil, nil)
	assert.Error(t, err)
}

func TestCosineSimilarity_ZeroVector(t *testing.T) {
	sim, err := CosineSimilarity([]float64{0, 0}, []float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 0.0, sim)
}
