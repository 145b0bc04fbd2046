// Package config loads application configuration from a TOML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Embedding provider names.
const (
	EmbeddingProviderOpenAI = "openai"
	EmbeddingProviderOllama = "ollama"
)

// LLM provider names.
const (
	LLMProviderGemini = "gemini"
	LLMProviderOllama = "ollama"
	LLMProviderNone   = "none"
)

// Config is the full application configuration.
type Config struct {
	// DataDir is the root directory for all persisted state
	// (default: ~/.personaapply).
	DataDir string `toml:"data_dir"`

	Embedding EmbeddingConfig `toml:"embedding"`
	LLM       LLMConfig       `toml:"llm"`
	Index     IndexConfig     `toml:"index"`
	Upload    UploadConfig    `toml:"upload"`
}

// EmbeddingConfig configures the embedding backend.
type EmbeddingConfig struct {
	// Provider selects the backend: "openai" or "ollama".
	Provider string `toml:"provider"`

	// APIKey authenticates hosted providers. Overridden by
	// OPENAI_API_KEY when set.
	APIKey string `toml:"api_key"`

	// BaseURL overrides the provider's default endpoint.
	BaseURL string `toml:"base_url"`

	// Model is the embedding model name.
	Model string `toml:"model"`

	// Dimensions overrides the model's default vector size.
	Dimensions int `toml:"dimensions"`

	// TimeoutSeconds is the per-request timeout.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// LLMConfig configures the optional generation backend.
type LLMConfig struct {
	// Provider selects the backend: "gemini", "ollama" or "none".
	Provider string `toml:"provider"`

	// APIKey authenticates hosted providers. Overridden by
	// GEMINI_API_KEY when set.
	APIKey string `toml:"api_key"`

	// BaseURL overrides the provider's default endpoint.
	BaseURL string `toml:"base_url"`

	// Model is the generation model name.
	Model string `toml:"model"`

	// TimeoutSeconds is the per-request timeout.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// IndexConfig tunes the retrieval index.
type IndexConfig struct {
	// ChunkSize is the split window size in characters.
	ChunkSize int `toml:"chunk_size"`

	// ChunkOverlap is the split window overlap in characters.
	ChunkOverlap int `toml:"chunk_overlap"`

	// SearchK is the default search result count.
	SearchK int `toml:"search_k"`

	// MaxContextChunks caps user context assembly.
	MaxContextChunks int `toml:"max_context_chunks"`
}

// UploadConfig tunes document ingestion.
type UploadConfig struct {
	// MaxBytes caps uploaded document size (default 10 MiB).
	MaxBytes int `toml:"max_bytes"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Embedding: EmbeddingConfig{
			Provider: EmbeddingProviderOllama,
		},
		LLM: LLMConfig{
			Provider: LLMProviderNone,
		},
	}
}

// Load reads configuration from path, falling back to defaults when the file
// is missing. Environment variables override file values afterwards.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("config: getting home directory: %w", err)
		}
		path = filepath.Join(home, ".personaapply", "config.toml")
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No config file yet, defaults plus environment apply.
	case err != nil:
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv overrides file values from the environment.
func applyEnv(cfg *Config) {
	if v := os.Getenv("PERSONAAPPLY_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("PERSONAAPPLY_EMBEDDING_PROVIDER"); v != "" {
		cfg.Embedding.Provider = v
	}
	if v := os.Getenv("PERSONAAPPLY_EMBEDDING_MODEL"); v != "" {
		cfg.Embedding.Model = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Embedding.APIKey = v
	}
	if v := os.Getenv("PERSONAAPPLY_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("PERSONAAPPLY_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("PERSONAAPPLY_UPLOAD_MAX_BYTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Upload.MaxBytes = n
		}
	}
}

// EmbeddingTimeout returns the configured embedding timeout, or zero when
// the adapter default should apply.
func (c Config) EmbeddingTimeout() time.Duration {
	return time.Duration(c.Embedding.TimeoutSeconds) * time.Second
}

// LLMTimeout returns the configured LLM timeout, or zero when the adapter
// default should apply.
func (c Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLM.TimeoutSeconds) * time.Second
}

// ResolveDataDir returns the data directory, defaulting to ~/.personaapply.
func (c Config) ResolveDataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: getting home directory: %w", err)
	}
	return filepath.Join(home, ".personaapply"), nil
}
