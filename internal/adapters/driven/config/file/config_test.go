package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, cfg.Embedding.Provider)
	assert.Equal(t, "fs", cfg.Index.Store)
	assert.Equal(t, 1000, cfg.Index.ChunkSize)
	assert.Equal(t, 100, cfg.Index.ChunkOverlap)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[embedding]
provider = "ollama"
model = "nomic-embed-text"

[llm]
provider = "anthropic"
model = "claude-sonnet-4-0"

[index]
store = "sqlite"
chunk_size = 500

[server]
addr = ":9090"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ProviderOllama, cfg.Embedding.Provider)
	assert.Equal(t, "nomic-embed-text", cfg.Embedding.Model)
	assert.Equal(t, ProviderAnthropic, cfg.LLM.Provider)
	assert.Equal(t, "sqlite", cfg.Index.Store)
	assert.Equal(t, 500, cfg.Index.ChunkSize)
	// omitted values keep their defaults
	assert.Equal(t, 100, cfg.Index.ChunkOverlap)
	assert.Equal(t, ":9090", cfg.Server.Addr)
}

func TestLoad_EnvFillsAPIKeys(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-from-env")
	t.Setenv("DOCNAV_API_KEY", "server-secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, "sk-from-env", cfg.Embedding.APIKey)
	assert.Equal(t, "sk-from-env", cfg.LLM.APIKey)
	assert.Equal(t, "server-secret", cfg.Server.APIKey)
}

func TestLoad_EnvSelectsProviderKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("ANTHROPIC_API_KEY", "sk-anthropic")

	path := writeConfig(t, `
[llm]
provider = "anthropic"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-anthropic", cfg.LLM.APIKey)
	assert.Equal(t, "sk-openai", cfg.Embedding.APIKey)
}

func TestLoad_FileKeyBeatsEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-from-env")

	path := writeConfig(t, `
[embedding]
api_key = "sk-from-file"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-from-file", cfg.Embedding.APIKey)
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := writeConfig(t, `[embedding`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}
