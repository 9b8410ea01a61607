// Package llm provides the model configuration and client abstraction for
// generation, structured extraction and text embeddings.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: field extraction, short explanations
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: intake replies, summaries
	TierStandard ModelTier = "standard"
)

// DefaultEmbeddingDimension is the vector length produced by the default
// embedding model. Every stored embedding must have exactly this length.
const DefaultEmbeddingDimension = 768

// Config holds the model configuration for the application
type Config struct {
	Models             map[ModelTier]string
	EmbeddingModel     string
	EmbeddingDimension int
}

// DefaultConfig returns the default Gemini model configuration
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
		EmbeddingModel:     "text-embedding-004",
		EmbeddingDimension: DefaultEmbeddingDimension,
	}
}

// GetModel returns the model name for a given tier, falling back to the
// standard tier when the requested tier is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	return ""
}
