package embeddings

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable indicates the embedding provider could not produce vectors
// (network failure, bad response, provider down). Callers that can degrade
// to lexical search should test for it with errors.Is.
var ErrUnavailable = errors.New("embedding provider unavailable")

// Embedder defines the interface for generating text embeddings.
type Embedder interface {
	// Embed generates embeddings for one or more texts.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the number of dimensions in the embedding vectors.
	Dimensions() int

	// Name returns the name/identifier of the embedding model.
	Name() string
}

// unavailable marks err as a provider outage while keeping the cause
// inspectable through errors.Is/As.
func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
