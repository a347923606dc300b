package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
)

// corpusCandidates are directory names checked for existing knowledge
// documents, in preference order.
var corpusCandidates = []string{"knowledge", "docs", "data"}

// detectCorpusDir looks for a directory that already contains markdown or
// text documents and returns it with the number of files found.
func detectCorpusDir() (dir string, count int) {
	for _, candidate := range corpusCandidates {
		matches, _ := filepath.Glob(filepath.Join(candidate, "*.md"))
		txt, _ := filepath.Glob(filepath.Join(candidate, "*.txt"))
		matches = append(matches, txt...)
		if len(matches) > 0 {
			return candidate, len(matches)
		}
	}
	return "", 0
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .finchat.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to finchat! Let's configure your assistant.")
	fmt.Println()

	defaultCorpus := "knowledge"
	if dir, count := detectCorpusDir(); dir != "" {
		fmt.Printf("Found %d document(s) under %s/\n\n", count, dir)
		defaultCorpus = dir
	}

	// 1. Generation backend.
	providerPrompt := promptui.Select{
		Label: "Select model backend",
		Items: []string{
			"lmstudio - local OpenAI-compatible server (default)",
			"ollama   - local Ollama daemon",
			"openai   - OpenAI API",
		},
	}
	providerIdx, _, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("backend selection: %w", err)
	}
	providers := []ProviderType{ProviderLMStudio, ProviderOllama, ProviderOpenAI}
	provider := providers[providerIdx]
	preset := PresetFor(provider)

	// 2. Model name.
	modelPrompt := promptui.Prompt{
		Label:   "Chat model",
		Default: preset.Model,
	}
	model, err := modelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}

	// 3. Knowledge directory.
	corpusPrompt := promptui.Prompt{
		Label:   "Knowledge base directory",
		Default: defaultCorpus,
	}
	corpusDir, err := corpusPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("corpus dir: %w", err)
	}

	// 4. Index backend.
	indexPrompt := promptui.Select{
		Label: "Select vector index",
		Items: []string{
			"memory  - exact scan, rebuilt from the database at startup",
			"chromem - persistent chromem-go collection",
		},
	}
	indexIdx, _, err := indexPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("index selection: %w", err)
	}
	indexes := []IndexProvider{IndexMemory, IndexChromem}

	// 5. Extra exclude patterns.
	excludePrompt := promptui.Prompt{
		Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	exclude := DefaultExcludes
	if excludeStr != "" {
		exclude = append(exclude, splitAndTrim(excludeStr)...)
	}

	cfg := DefaultConfig()
	cfg.Provider = provider
	cfg.Model = model
	cfg.BaseURL = preset.BaseURL
	cfg.EmbeddingProvider = provider
	cfg.EmbeddingModel = preset.EmbeddingModel
	cfg.EmbeddingBaseURL = preset.BaseURL
	cfg.EmbeddingDimensions = preset.EmbeddingDimensions
	cfg.CorpusDir = corpusDir
	cfg.Exclude = exclude
	cfg.IndexProvider = indexes[indexIdx]

	// Check for API key.
	if envVar := APIKeyEnvVar(provider); envVar != "" {
		if os.Getenv(envVar) == "" && provider == ProviderOpenAI {
			fmt.Printf("\nNote: Set %s in your environment before asking questions.\n", envVar)
		}
	}

	if err := cfg.Save(DefaultPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", DefaultPath)
	fmt.Printf("Next: put markdown files under %s/ and run 'finchat index'.\n", corpusDir)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string, trimming whitespace and
// dropping empty entries.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
