package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `{
		"api_key": "test-key",
		"embedding_model": "gemini-embedding-001",
		"batch_size": 10,
		"top_k": 5,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, "gemini-embedding-001", cfg.EmbeddingModel)
	assert.Equal(t, 10, cfg.BatchSize)
	assert.Equal(t, 5, cfg.TopK)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfig_MalformedJSON(t *testing.T) {
	path := writeConfig(t, `{"api_key": `)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestApplyEnv_FillsUnsetFields(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("DATABASE_URL", "postgres://localhost/test")

	cfg := &Config{}
	cfg.ApplyEnv()

	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "postgres://localhost/test", cfg.DatabaseURL)
}

func TestApplyEnv_DoesNotOverrideFileValues(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg := &Config{APIKey: "file-key"}
	cfg.ApplyEnv()

	assert.Equal(t, "file-key", cfg.APIKey)
}

func TestValidate_AcceptsZeroValues(t *testing.T) {
	cfg := &Config{}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_RejectsNegativeBatchSize(t *testing.T) {
	cfg := &Config{BatchSize: -1}
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsNegativeCacheTTL(t *testing.T) {
	cfg := &Config{CacheTTLHours: -1}
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsNegativeTopK(t *testing.T) {
	cfg := &Config{TopK: -1}
	assert.Error(t, cfg.Validate())
}
