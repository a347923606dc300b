package config

import (
	"path/filepath"
	"time"
)

// ProviderType identifies a model backend for generation or embeddings.
type ProviderType string

const (
	ProviderOpenAI   ProviderType = "openai"
	ProviderLMStudio ProviderType = "lmstudio"
	ProviderOllama   ProviderType = "ollama"
)

// IndexProvider identifies a vector index implementation.
type IndexProvider string

const (
	IndexMemory  IndexProvider = "memory"
	IndexChromem IndexProvider = "chromem"
)

// Config is the top-level finchat configuration, corresponding to .finchat.yml.
type Config struct {
	// Generation backend.
	Provider ProviderType `yaml:"provider" koanf:"provider"`
	Model    string       `yaml:"model" koanf:"model"`
	BaseURL  string       `yaml:"base_url" koanf:"base_url"`
	LLMRPM   int          `yaml:"llm_rpm" koanf:"llm_rpm"` // requests per minute, 0 means unlimited

	// Embedding backend.
	EmbeddingProvider   ProviderType `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel      string       `yaml:"embedding_model" koanf:"embedding_model"`
	EmbeddingBaseURL    string       `yaml:"embedding_base_url" koanf:"embedding_base_url"`
	EmbeddingDimensions int          `yaml:"embedding_dimensions" koanf:"embedding_dimensions"`
	EmbeddingCacheSize  int          `yaml:"embedding_cache_size" koanf:"embedding_cache_size"` // 0 uses the built-in default

	// Knowledge corpus and index.
	CorpusDir     string        `yaml:"corpus_dir" koanf:"corpus_dir"`
	Include       []string      `yaml:"include" koanf:"include"`
	Exclude       []string      `yaml:"exclude" koanf:"exclude"`
	IndexProvider IndexProvider `yaml:"index_provider" koanf:"index_provider"`
	DataDir       string        `yaml:"data_dir" koanf:"data_dir"`

	// Routing. An empty RulesFile means the built-in rule table.
	RulesFile string `yaml:"rules_file" koanf:"rules_file"`

	// Chunking and retrieval.
	ChunkSize    int `yaml:"chunk_size" koanf:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap" koanf:"chunk_overlap"`
	TopK         int `yaml:"top_k" koanf:"top_k"`

	// Handler result cache. Rules may override per intent.
	CacheTTLSeconds int `yaml:"cache_ttl_seconds" koanf:"cache_ttl_seconds"`

	// Generation tuning.
	Temperature           float64 `yaml:"temperature" koanf:"temperature"`
	MaxTokensSummary      int     `yaml:"max_tokens_summary" koanf:"max_tokens_summary"`
	MaxTokensConversation int     `yaml:"max_tokens_conversation" koanf:"max_tokens_conversation"`

	// Index build parallelism.
	MaxConcurrency int `yaml:"max_concurrency" koanf:"max_concurrency"`

	// Surfaces.
	Addr     string `yaml:"addr" koanf:"addr"`
	LogLevel string `yaml:"log_level" koanf:"log_level"`
}

// CacheTTL returns the default handler-result lifetime as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// DatabasePath returns the SQLite snapshot location under DataDir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "finchat.db")
}
