package vectordb

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/finchat-dev/finchat/internal/corpus"
	"github.com/finchat-dev/finchat/internal/embeddings"
)

// Providers selectable through New.
const (
	ProviderMemory  = "memory"
	ProviderChromem = "chromem"
)

// Match pairs a corpus chunk with its similarity score.
type Match struct {
	Chunk corpus.Chunk
	Score float64
}

// Index stores embedded corpus chunks and answers nearest-neighbor queries.
// Add runs during the build phase only; implementations are read-only once
// searching starts, so concurrent readers need no locks.
type Index interface {
	// Add stores chunks with their precomputed vectors. vectors[i] belongs
	// to chunks[i] and every vector must have the same dimensionality.
	Add(ctx context.Context, chunks []corpus.Chunk, vectors [][]float32) error

	// Search returns the k most similar chunks, best first. An empty index
	// or k <= 0 yields an empty result, never an error.
	Search(ctx context.Context, queryVec []float32, k int) ([]Match, error)

	// Len returns the number of stored chunks.
	Len() int
}

// New constructs the configured index backend. An empty provider selects
// the in-memory exact-scan store.
func New(provider string, embedder embeddings.Embedder) (Index, error) {
	switch provider {
	case "", ProviderMemory:
		return NewMemory(), nil
	case ProviderChromem:
		return NewChromem(embedder)
	default:
		return nil, fmt.Errorf("unsupported index provider: %q", provider)
	}
}

// SortMatches orders matches by score descending, breaking ties by document
// ID then chunk sequence so equal-score results are stable across runs.
func SortMatches(matches []Match) {
	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Chunk.DocID != b.Chunk.DocID {
			return a.Chunk.DocID < b.Chunk.DocID
		}
		return a.Chunk.Seq < b.Chunk.Seq
	})
}

// Cosine returns the cosine similarity of two vectors in [-1, 1]. Vectors
// of different lengths or zero magnitude score 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
