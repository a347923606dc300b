// Package config loads, validates, and persists finchat configuration.
// Values come from .finchat.yml overlaid with FINCHAT_* environment
// variables; anything unset falls back to defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// DefaultPath is the conventional config file location.
const DefaultPath = ".finchat.yml"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (FINCHAT_*). A missing file is not an
// error; defaults apply.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// FINCHAT_PROVIDER -> provider, FINCHAT_CHUNK_SIZE -> chunk_size, etc.
	if err := k.Load(env.Provider("FINCHAT_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "FINCHAT_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validProviders is the set of recognized backend values.
var validProviders = map[ProviderType]bool{
	ProviderOpenAI:   true,
	ProviderLMStudio: true,
	ProviderOllama:   true,
}

// validIndexProviders is the set of recognized index values.
var validIndexProviders = map[IndexProvider]bool{
	IndexMemory:  true,
	IndexChromem: true,
}

// Validate checks that the configuration contains valid values. Any error
// here must abort startup.
func (c *Config) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if !validProviders[c.Provider] {
		return fmt.Errorf("invalid provider %q: must be one of openai, lmstudio, ollama", c.Provider)
	}

	if c.Model == "" {
		return fmt.Errorf("model is required")
	}

	if c.EmbeddingProvider != "" && !validProviders[c.EmbeddingProvider] {
		return fmt.Errorf("invalid embedding_provider %q", c.EmbeddingProvider)
	}

	if c.IndexProvider != "" && !validIndexProviders[c.IndexProvider] {
		return fmt.Errorf("invalid index_provider %q: must be memory or chromem", c.IndexProvider)
	}

	if c.CorpusDir == "" {
		return fmt.Errorf("corpus_dir is required")
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive")
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("chunk_overlap must be non-negative")
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("chunk_overlap (%d) must be smaller than chunk_size (%d)", c.ChunkOverlap, c.ChunkSize)
	}

	if c.TopK <= 0 {
		return fmt.Errorf("top_k must be positive")
	}
	if c.CacheTTLSeconds < 0 {
		return fmt.Errorf("cache_ttl_seconds must be non-negative")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	if c.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency must be non-negative")
	}
	if c.LLMRPM < 0 {
		return fmt.Errorf("llm_rpm must be non-negative")
	}

	return nil
}

// APIKeyEnvVar returns the conventional environment variable name for the
// API key of the given provider. Ollama needs none.
func APIKeyEnvVar(provider ProviderType) string {
	switch provider {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderLMStudio:
		return "LMSTUDIO_API_KEY"
	default:
		return ""
	}
}
