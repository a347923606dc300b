package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != ProviderLMStudio {
		t.Errorf("expected default provider %q, got %q", ProviderLMStudio, cfg.Provider)
	}
	if cfg.ChunkSize != 400 {
		t.Errorf("expected default chunk_size 400, got %d", cfg.ChunkSize)
	}
	if cfg.ChunkOverlap != 100 {
		t.Errorf("expected default chunk_overlap 100, got %d", cfg.ChunkOverlap)
	}
	if cfg.TopK != 3 {
		t.Errorf("expected default top_k 3, got %d", cfg.TopK)
	}
	if cfg.CacheTTL() != 5*time.Minute {
		t.Errorf("expected default cache TTL 5m, got %v", cfg.CacheTTL())
	}
	if cfg.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %q", cfg.Addr)
	}
	if cfg.IndexProvider != IndexMemory {
		t.Errorf("expected default index provider %q, got %q", IndexMemory, cfg.IndexProvider)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.finchat.yml")

	original := DefaultConfig()
	original.Provider = ProviderOpenAI
	original.Model = "gpt-4o"
	original.BaseURL = ""
	original.IndexProvider = IndexChromem
	original.CorpusDir = "kb"
	original.Include = []string{"**/*.md", "guides/**/*.txt"}
	original.TopK = 5
	original.CacheTTLSeconds = 600

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify round-trip.
	if loaded.Provider != original.Provider {
		t.Errorf("provider: got %q, want %q", loaded.Provider, original.Provider)
	}
	if loaded.Model != original.Model {
		t.Errorf("model: got %q, want %q", loaded.Model, original.Model)
	}
	if loaded.IndexProvider != original.IndexProvider {
		t.Errorf("index_provider: got %q, want %q", loaded.IndexProvider, original.IndexProvider)
	}
	if loaded.CorpusDir != original.CorpusDir {
		t.Errorf("corpus_dir: got %q, want %q", loaded.CorpusDir, original.CorpusDir)
	}
	if loaded.TopK != original.TopK {
		t.Errorf("top_k: got %d, want %d", loaded.TopK, original.TopK)
	}
	if loaded.CacheTTLSeconds != original.CacheTTLSeconds {
		t.Errorf("cache_ttl_seconds: got %d, want %d", loaded.CacheTTLSeconds, original.CacheTTLSeconds)
	}
	if len(loaded.Include) != len(original.Include) {
		t.Errorf("include length: got %d, want %d", len(loaded.Include), len(original.Include))
	}
	for i, v := range loaded.Include {
		if v != original.Include[i] {
			t.Errorf("include[%d]: got %q, want %q", i, v, original.Include[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Provider != ProviderLMStudio {
		t.Errorf("expected default provider, got %q", cfg.Provider)
	}
	if cfg.ChunkSize != 400 {
		t.Errorf("expected default chunk_size, got %d", cfg.ChunkSize)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Override provider and chunk size via env vars.
	os.Setenv("FINCHAT_PROVIDER", "ollama")
	os.Setenv("FINCHAT_CHUNK_SIZE", "512")
	defer os.Unsetenv("FINCHAT_PROVIDER")
	defer os.Unsetenv("FINCHAT_CHUNK_SIZE")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Provider != ProviderOllama {
		t.Errorf("env override failed: got %q, want %q", loaded.Provider, ProviderOllama)
	}
	if loaded.ChunkSize != 512 {
		t.Errorf("env override failed: got chunk_size %d, want 512", loaded.ChunkSize)
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateInvalidProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "bard"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid provider")
	}
}

func TestValidateEmptyProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty provider")
	}
}

func TestValidateEmptyModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Model = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty model")
	}
}

func TestValidateInvalidIndexProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IndexProvider = "faiss"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid index_provider")
	}
}

func TestValidateOverlapNotSmallerThanChunk(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ChunkSize = 100
	cfg.ChunkOverlap = 100
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error when overlap >= chunk_size")
	}
}

func TestValidateNonPositiveTopK(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TopK = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for top_k 0")
	}
}

func TestValidateNegativeCacheTTL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CacheTTLSeconds = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for negative cache_ttl_seconds")
	}
}

func TestValidateTemperatureRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Temperature = 2.5
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for out-of-range temperature")
	}
}

func TestValidateEmptyCorpusDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CorpusDir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty corpus_dir")
	}
}

func TestPresetFor(t *testing.T) {
	p := PresetFor(ProviderLMStudio)
	if p.Model != "local-model" {
		t.Errorf("expected local-model, got %q", p.Model)
	}
	if p.BaseURL != "http://localhost:1234/v1" {
		t.Errorf("expected LM Studio base URL, got %q", p.BaseURL)
	}

	p = PresetFor(ProviderOpenAI)
	if p.EmbeddingDimensions != 1536 {
		t.Errorf("expected 1536 dimensions, got %d", p.EmbeddingDimensions)
	}

	// Unknown provider falls back.
	p = PresetFor("unknown")
	if p.Model != "local-model" {
		t.Errorf("expected fallback to LM Studio preset, got %q", p.Model)
	}
}

func TestAPIKeyEnvVar(t *testing.T) {
	tests := []struct {
		provider ProviderType
		want     string
	}{
		{ProviderOpenAI, "OPENAI_API_KEY"},
		{ProviderLMStudio, "LMSTUDIO_API_KEY"},
		{ProviderOllama, ""},
	}
	for _, tt := range tests {
		got := APIKeyEnvVar(tt.provider)
		if got != tt.want {
			t.Errorf("APIKeyEnvVar(%q) = %q, want %q", tt.provider, got, tt.want)
		}
	}
}

func TestDatabasePath(t *testing.T) {
	cfg := DefaultConfig()
	want := filepath.Join(".finchat", "finchat.db")
	if got := cfg.DatabasePath(); got != want {
		t.Errorf("DatabasePath() = %q, want %q", got, want)
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"**/*.md", []string{"**/*.md"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}
