package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, 1000, cfg.Chunking.Size)
	assert.Equal(t, 200, cfg.Chunking.Overlap)
	assert.Equal(t, 3, cfg.Retrieval.TopK)
	assert.Equal(t, "OPENAI_API_KEY", cfg.OpenAI.APIKeyEnv)
	assert.Equal(t, "text-embedding-3-small", cfg.OpenAI.EmbeddingModel)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.ChatModel)
	assert.False(t, cfg.Ingest.StrictEmbedding)
	assert.False(t, cfg.Watch.Enabled)
	assert.Equal(t, "./documents", cfg.Watch.Dir)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  addr: ":9090"
chunking:
  size: 500
  overlap: 50
retrieval:
  top_k: 5
openai:
  base_url: "http://localhost:8080/v1"
  chat_model: "gpt-4o"
ingest:
  strict_embedding: true
watch:
  enabled: true
  dir: "/srv/documents"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 500, cfg.Chunking.Size)
	assert.Equal(t, 50, cfg.Chunking.Overlap)
	assert.Equal(t, 5, cfg.Retrieval.TopK)
	assert.Equal(t, "http://localhost:8080/v1", cfg.OpenAI.BaseURL)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.ChatModel)
	assert.True(t, cfg.Ingest.StrictEmbedding)
	assert.True(t, cfg.Watch.Enabled)
	assert.Equal(t, "/srv/documents", cfg.Watch.Dir)

	// Unset fields still take defaults.
	assert.Equal(t, "text-embedding-3-small", cfg.OpenAI.EmbeddingModel)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [broken"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestOpenAIConfig_APIKeyFromEnv(t *testing.T) {
	t.Setenv("TEST_OPENAI_KEY", "sk-from-env")

	cfg := OpenAIConfig{APIKeyEnv: "TEST_OPENAI_KEY"}
	assert.Equal(t, "sk-from-env", cfg.APIKey())

	cfg.APIKeyEnv = "TEST_OPENAI_KEY_UNSET"
	assert.Empty(t, cfg.APIKey())
}
