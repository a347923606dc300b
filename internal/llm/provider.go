package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable indicates the generation backend could not produce a
// completion (network failure, bad status, empty response). Callers degrade
// to a deterministic fallback when errors.Is reports it.
var ErrUnavailable = errors.New("generation backend unavailable")

// Provider defines the interface for LLM providers.
type Provider interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name returns the name of this provider.
	Name() string
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
