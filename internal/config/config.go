// Package config provides configuration loading and validation.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the application configuration, loadable from a JSON file. Every
// field is optional; missing values use defaults or environment variables.
// Secrets (DATABASE_URL, REDIS_URL, GEMINI_API_KEY, JWT_SECRET) come from the
// environment, never from the config file.
type Config struct {
	Port int `json:"port,omitempty"` // HTTP listen port

	// Matching
	TopK           int  `json:"top_k,omitempty"`           // default result count for match requests
	ExplainMatches bool `json:"explain_matches,omitempty"` // generate per-match explanations

	// Embeddings
	EmbeddingModel     string `json:"embedding_model,omitempty"`
	EmbeddingDimension int    `json:"embedding_dimension,omitempty"`

	// Intake
	SessionTTLMinutes int `json:"session_ttl_minutes,omitempty"` // idle session lifetime
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Port:               8080,
		TopK:               10,
		ExplainMatches:     true,
		EmbeddingModel:     "text-embedding-004",
		EmbeddingDimension: 768,
		SessionTTLMinutes:  24 * 60,
	}
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.TopK < 0 {
		return fmt.Errorf("config error: 'top_k' must be non-negative")
	}
	if c.EmbeddingDimension < 0 {
		return fmt.Errorf("config error: 'embedding_dimension' must be non-negative")
	}
	if c.SessionTTLMinutes < 0 {
		return fmt.Errorf("config error: 'session_ttl_minutes' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from
// defaults. Zero means unset for every numeric field here.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.TopK == 0 {
		result.TopK = defaults.TopK
	}
	if result.EmbeddingModel == "" {
		result.EmbeddingModel = defaults.EmbeddingModel
	}
	if result.EmbeddingDimension == 0 {
		result.EmbeddingDimension = defaults.EmbeddingDimension
	}
	if result.SessionTTLMinutes == 0 {
		result.SessionTTLMinutes = defaults.SessionTTLMinutes
	}
	// Bool fields cannot distinguish unset from false, so they are not merged.

	return result
}
