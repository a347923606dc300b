package llm

import (
	"fmt"
	"os"
)

const defaultLMStudioBaseURL = "http://localhost:1234/v1"

// NewProvider creates a new LLM provider based on the given provider type
// and model. Supported provider types: "openai", "lmstudio", "ollama".
// baseURL overrides the provider's default endpoint when non-empty.
func NewProvider(providerType, model, baseURL string) (Provider, error) {
	switch providerType {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
		return NewOpenAIProvider(apiKey, model, baseURL), nil

	case "lmstudio":
		// LM Studio ignores the key but the client requires one.
		apiKey := os.Getenv("LMSTUDIO_API_KEY")
		if apiKey == "" {
			apiKey = "lm-studio"
		}
		if baseURL == "" {
			baseURL = defaultLMStudioBaseURL
		}
		return NewOpenAIProvider(apiKey, model, baseURL), nil

	case "ollama":
		if baseURL == "" {
			baseURL = os.Getenv("OLLAMA_HOST")
		}
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return NewOllamaProvider(baseURL, model), nil

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}
