package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/finchat-dev/finchat/internal/assistant"
	"github.com/finchat-dev/finchat/internal/config"
	"github.com/finchat-dev/finchat/internal/db"
	"github.com/finchat-dev/finchat/internal/embeddings"
	"github.com/finchat-dev/finchat/internal/handler"
	"github.com/finchat-dev/finchat/internal/llm"
	"github.com/finchat-dev/finchat/internal/logger"
	"github.com/finchat-dev/finchat/internal/respond"
	"github.com/finchat-dev/finchat/internal/retrieval"
	"github.com/finchat-dev/finchat/internal/router"
	"github.com/finchat-dev/finchat/internal/vectordb"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `finchat init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// initLogger installs the process logger on stderr and returns it. The
// --verbose flag wins over the configured level.
func initLogger(cfg *config.Config) logger.Logger {
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger.Init(os.Stderr, level)
	return logger.Default()
}

// newProvider creates the generation backend from config, rate limited when
// llm_rpm is set.
func newProvider(cfg *config.Config) (llm.Provider, error) {
	p, err := llm.NewProvider(string(cfg.Provider), cfg.Model, cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("creating LLM provider: %w", err)
	}
	if cfg.LLMRPM > 0 {
		p = llm.NewRateLimited(p, cfg.LLMRPM)
	}
	return p, nil
}

// newEmbedder creates the embedding backend from config, wrapped in an LRU
// cache so repeated queries embed once.
func newEmbedder(cfg *config.Config) (embeddings.Embedder, error) {
	provider := cfg.EmbeddingProvider
	if provider == "" {
		provider = cfg.Provider
	}
	model := cfg.EmbeddingModel
	if model == "" {
		model = config.PresetFor(provider).EmbeddingModel
	}
	dims := cfg.EmbeddingDimensions
	if dims == 0 {
		dims = config.PresetFor(provider).EmbeddingDimensions
	}

	var inner embeddings.Embedder
	switch provider {
	case config.ProviderOpenAI:
		apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderOpenAI))
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for OpenAI embeddings")
		}
		inner = embeddings.NewOpenAIEmbedder(apiKey, embeddings.OpenAIModel(model), cfg.EmbeddingBaseURL).WithDimensions(dims)
	case config.ProviderLMStudio:
		baseURL := cfg.EmbeddingBaseURL
		if baseURL == "" {
			baseURL = config.PresetFor(provider).BaseURL
		}
		// LM Studio ignores the key but the client requires one.
		inner = embeddings.NewOpenAIEmbedder("lm-studio", embeddings.OpenAIModel(model), baseURL).WithDimensions(dims)
	case config.ProviderOllama:
		inner = embeddings.NewOllamaEmbedder(model, dims, cfg.EmbeddingBaseURL)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", provider)
	}

	return embeddings.NewCached(inner, cfg.EmbeddingCacheSize)
}

// loadTable builds the routing table: the configured rules file when set,
// the built-in table otherwise.
func loadTable(cfg *config.Config) (*router.Table, error) {
	if cfg.RulesFile != "" {
		table, err := router.LoadTable(cfg.RulesFile)
		if err != nil {
			return nil, fmt.Errorf("loading rules from %s: %w", cfg.RulesFile, err)
		}
		return table, nil
	}
	return router.DefaultTable(), nil
}

// newAssistant assembles the full answer pipeline. No retrieval engine is
// installed; callers attach one via SwapEngine once the index is loaded.
// The handler registry starts empty: matched intents degrade to the
// handler-unavailable reply until a deployment registers live handlers.
func newAssistant(cfg *config.Config, provider llm.Provider, log logger.Logger) (*assistant.Assistant, error) {
	table, err := loadTable(cfg)
	if err != nil {
		return nil, err
	}

	sel := respond.NewSelector(provider, respond.Options{
		Model:            cfg.Model,
		Temperature:      cfg.Temperature,
		SummaryMaxTokens: cfg.MaxTokensSummary,
		AnswerMaxTokens:  cfg.MaxTokensConversation,
	}, log)

	return assistant.New(table, handler.NewRegistry(), sel, assistant.Options{
		TopK:     cfg.TopK,
		CacheTTL: cfg.CacheTTL(),
	}, log), nil
}

// buildEngine loads the indexed knowledge base and returns a retrieval
// engine over it, or nil when nothing has been indexed yet. The chromem
// backend restores its own snapshot when one is current; otherwise the
// index is rebuilt from the stored vectors, which never re-embeds.
func buildEngine(ctx context.Context, cfg *config.Config, embedder embeddings.Embedder, log logger.Logger) (*retrieval.Engine, error) {
	if _, err := os.Stat(cfg.DatabasePath()); os.IsNotExist(err) {
		return nil, nil
	}

	database, err := db.Open(cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("opening snapshot database: %w", err)
	}
	defer database.Close()

	chunks, vectors, err := db.NewStore(database).LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	index, err := vectordb.New(string(cfg.IndexProvider), embedder)
	if err != nil {
		return nil, err
	}

	restored := false
	if c, ok := index.(*vectordb.Chromem); ok {
		if err := c.Load(ctx, cfg.DataDir); err == nil && c.Len() == len(chunks) {
			restored = true
		}
	}
	if !restored {
		if err := index.Add(ctx, chunks, vectors); err != nil {
			return nil, fmt.Errorf("building index: %w", err)
		}
	}

	log.Debug("knowledge base loaded", "chunks", len(chunks), "index", cfg.IndexProvider, "restored", restored)
	return retrieval.NewEngine(embedder, index, chunks, log), nil
}

// loadEngine builds the retrieval engine, warning on stderr instead of
// failing when the knowledge base is missing or unreadable. Surfaces keep
// working without one; unmatched questions just answer ungrounded.
func loadEngine(ctx context.Context, cfg *config.Config, log logger.Logger) *retrieval.Engine {
	embedder, err := newEmbedder(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create embedder: %v\n", err)
		return nil
	}
	engine, err := buildEngine(ctx, cfg, embedder, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load knowledge base: %v\n", err)
		return nil
	}
	if engine == nil {
		fmt.Fprintln(os.Stderr, "Warning: no knowledge base indexed yet. Run `finchat index` to build one.")
	}
	return engine
}
