package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "text-embedding-004", cfg.EmbeddingModel)
	assert.Equal(t, DefaultEmbeddingDimension, cfg.EmbeddingDimension)
	assert.NotEmpty(t, cfg.Models[TierLite])
	assert.NotEmpty(t, cfg.Models[TierStandard])
}

func TestGetModel_FallsBackToStandard(t *testing.T) {
	cfg := &Config{Models: map[ModelTier]string{TierStandard: "standard-model"}}
	assert.Equal(t, "standard-model", cfg.GetModel(TierLite))
	assert.Equal(t, "standard-model", cfg.GetModel(TierStandard))
}

func TestGetModel_NoModels(t *testing.T) {
	cfg := &Config{Models: map[ModelTier]string{}}
	assert.Equal(t, "", cfg.GetModel(TierLite))
}
