package config

// Preset describes the default models for one provider.
type Preset struct {
	Model               string
	EmbeddingModel      string
	EmbeddingDimensions int
	BaseURL             string
}

// providerPresets maps each provider to its model choices. Local backends
// carry their conventional base URLs; OpenAI uses the SDK default.
var providerPresets = map[ProviderType]Preset{
	ProviderOpenAI: {
		Model:               "gpt-4o-mini",
		EmbeddingModel:      "text-embedding-3-small",
		EmbeddingDimensions: 1536,
	},
	ProviderLMStudio: {
		Model:               "local-model",
		EmbeddingModel:      "text-embedding-nomic-embed-text-v1.5",
		EmbeddingDimensions: 768,
		BaseURL:             "http://localhost:1234/v1",
	},
	ProviderOllama: {
		Model:               "llama3",
		EmbeddingModel:      "nomic-embed-text",
		EmbeddingDimensions: 768,
		BaseURL:             "http://localhost:11434",
	},
}

// DefaultExcludes are glob patterns dropped from the corpus by default.
var DefaultExcludes = []string{
	"**/README.md",
	"**/*.draft.md",
}

// DefaultConfig returns a Config with sensible defaults: a local LM Studio
// backend and an in-memory index, so finchat works offline out of the box.
func DefaultConfig() *Config {
	preset := providerPresets[ProviderLMStudio]
	return &Config{
		Provider:              ProviderLMStudio,
		Model:                 preset.Model,
		BaseURL:               preset.BaseURL,
		EmbeddingProvider:     ProviderLMStudio,
		EmbeddingModel:        preset.EmbeddingModel,
		EmbeddingBaseURL:      preset.BaseURL,
		EmbeddingDimensions:   preset.EmbeddingDimensions,
		CorpusDir:             "knowledge",
		Include:               []string{"**/*.md", "**/*.txt"},
		Exclude:               DefaultExcludes,
		IndexProvider:         IndexMemory,
		DataDir:               ".finchat",
		ChunkSize:             400,
		ChunkOverlap:          100,
		TopK:                  3,
		CacheTTLSeconds:       300,
		Temperature:           0.4,
		MaxTokensSummary:      200,
		MaxTokensConversation: 500,
		MaxConcurrency:        4,
		Addr:                  ":8080",
		LogLevel:              "info",
	}
}

// PresetFor returns the default models for the given provider. Unknown
// providers fall back to the LM Studio preset.
func PresetFor(provider ProviderType) Preset {
	if p, ok := providerPresets[provider]; ok {
		return p
	}
	return providerPresets[ProviderLMStudio]
}
