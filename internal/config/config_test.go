package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 10, cfg.TopK)
	assert.True(t, cfg.ExplainMatches)
	assert.Equal(t, "text-embedding-004", cfg.EmbeddingModel)
	assert.Equal(t, 768, cfg.EmbeddingDimension)
	assert.Equal(t, 24*60, cfg.SessionTTLMinutes)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"port": 9000, "top_k": 5}`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 5, cfg.TopK)
	assert.Equal(t, "", cfg.EmbeddingModel)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	bad := cfg
	bad.Port = 70000
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.TopK = -1
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.EmbeddingDimension = -5
	assert.Error(t, bad.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	partial := Config{Port: 9000}
	merged := partial.MergeWithDefaults(DefaultConfig())

	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, 10, merged.TopK)
	assert.Equal(t, "text-embedding-004", merged.EmbeddingModel)
	assert.Equal(t, 768, merged.EmbeddingDimension)
	assert.Equal(t, 24*60, merged.SessionTTLMinutes)
}
