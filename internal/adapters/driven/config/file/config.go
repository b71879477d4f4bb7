// Package file loads docnav configuration from a TOML file.
// Configuration lives in ~/.docnav/config.toml by default; API keys
// may come from the environment instead so they stay out of the file.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Provider names accepted in the [embedding] and [llm] sections.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

// EmbeddingConfig configures the embedding provider.
type EmbeddingConfig struct {
	Provider   string  `toml:"provider"`
	Model      string  `toml:"model"`
	BaseURL    string  `toml:"base_url"`
	APIKey     string  `toml:"api_key"`
	Dimensions int     `toml:"dimensions"`
	RateLimit  float64 `toml:"rate_limit"`
}

// LLMConfig configures the answer-generation provider.
type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	BaseURL  string `toml:"base_url"`
	APIKey   string `toml:"api_key"`
}

// IndexConfig configures index building and storage.
type IndexConfig struct {
	// Store selects the blob store backend: "fs" or "sqlite".
	Store        string `toml:"store"`
	DataDir      string `toml:"data_dir"`
	ChunkSize    int    `toml:"chunk_size"`
	ChunkOverlap int    `toml:"chunk_overlap"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`

	// APIKey, when set, is required from clients via the X-Api-Key
	// header. Empty disables authentication.
	APIKey string `toml:"api_key"`

	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

// Config is the top-level docnav configuration.
type Config struct {
	Embedding EmbeddingConfig `toml:"embedding"`
	LLM       LLMConfig       `toml:"llm"`
	Index     IndexConfig     `toml:"index"`
	Server    ServerConfig    `toml:"server"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Embedding: EmbeddingConfig{Provider: ProviderOpenAI},
		LLM:       LLMConfig{Provider: ProviderOpenAI},
		Index: IndexConfig{
			Store:        "fs",
			ChunkSize:    1000,
			ChunkOverlap: 100,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
	}
}

// DefaultPath returns the default config file location,
// ~/.docnav/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".docnav", "config.toml"), nil
}

// Load reads configuration from path, applying defaults for anything
// the file omits. A missing file is not an error; the defaults are
// returned. If path is empty, the default location is used.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv fills API keys from the environment when the file leaves
// them unset. The environment never overrides an explicit file value.
func applyEnv(cfg *Config) {
	if cfg.Embedding.APIKey == "" {
		cfg.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case ProviderAnthropic:
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		default:
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}
	if cfg.Server.APIKey == "" {
		cfg.Server.APIKey = os.Getenv("DOCNAV_API_KEY")
	}
}
