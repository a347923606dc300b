package vectordb

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/finchat-dev/finchat/internal/corpus"
	"github.com/finchat-dev/finchat/internal/embeddings"
)

// Memory is an exact-scan cosine index. Every search compares the query
// vector against all stored vectors, which keeps results exact and the
// implementation trivial; corpora in the tens of thousands of chunks stay
// well under a millisecond per query.
type Memory struct {
	dims    int
	chunks  []corpus.Chunk
	vectors [][]float32
}

// NewMemory creates an empty in-memory index.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Add(_ context.Context, chunks []corpus.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("got %d chunks but %d vectors", len(chunks), len(vectors))
	}
	for i, vec := range vectors {
		if len(vec) == 0 {
			return fmt.Errorf("chunk %s#%d has an empty vector", chunks[i].DocID, chunks[i].Seq)
		}
		if m.dims == 0 {
			m.dims = len(vec)
		}
		if len(vec) != m.dims {
			return fmt.Errorf("chunk %s#%d has %d dimensions, index has %d",
				chunks[i].DocID, chunks[i].Seq, len(vec), m.dims)
		}
	}
	m.chunks = append(m.chunks, chunks...)
	m.vectors = append(m.vectors, vectors...)
	return nil
}

func (m *Memory) Search(_ context.Context, queryVec []float32, k int) ([]Match, error) {
	if k <= 0 || len(m.chunks) == 0 {
		return nil, nil
	}
	if len(queryVec) != m.dims {
		return nil, fmt.Errorf("query vector has %d dimensions, index has %d", len(queryVec), m.dims)
	}

	matches := make([]Match, len(m.chunks))
	for i, vec := range m.vectors {
		matches[i] = Match{Chunk: m.chunks[i], Score: Cosine(queryVec, vec)}
	}
	SortMatches(matches)

	if k > len(matches) {
		k = len(matches)
	}
	return matches[:k], nil
}

func (m *Memory) Len() int {
	return len(m.chunks)
}

// BuildOptions tune the embedding phase of Build.
type BuildOptions struct {
	// BatchSize is the number of chunk texts per Embed call. Defaults to 64.
	BatchSize int
	// Concurrency is the number of parallel Embed calls. Defaults to 4.
	Concurrency int
	// OnProgress, when set, receives the running count of embedded chunks.
	// It may be called from multiple goroutines.
	OnProgress func(done, total int)
}

// Build embeds every chunk and returns a ready Memory index. Batches are
// embedded concurrently; vector order still matches chunk order.
func Build(ctx context.Context, embedder embeddings.Embedder, chunks []corpus.Chunk, opts *BuildOptions) (*Memory, error) {
	m := NewMemory()
	if len(chunks) == 0 {
		return m, nil
	}

	batchSize := 64
	concurrency := 4
	var onProgress func(done, total int)
	if opts != nil {
		if opts.BatchSize > 0 {
			batchSize = opts.BatchSize
		}
		if opts.Concurrency > 0 {
			concurrency = opts.Concurrency
		}
		onProgress = opts.OnProgress
	}

	vectors := make([][]float32, len(chunks))
	var done atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for start := 0; start < len(chunks); start += batchSize {
		start := start
		end := min(start+batchSize, len(chunks))
		g.Go(func() error {
			texts := make([]string, end-start)
			for i := range texts {
				texts[i] = chunks[start+i].Text
			}
			embedded, err := embedder.Embed(ctx, texts)
			if err != nil {
				return fmt.Errorf("embed chunks %d-%d: %w", start, end-1, err)
			}
			if len(embedded) != len(texts) {
				return fmt.Errorf("embed chunks %d-%d: got %d vectors for %d texts", start, end-1, len(embedded), len(texts))
			}
			copy(vectors[start:end], embedded)
			if onProgress != nil {
				onProgress(int(done.Add(int64(end-start))), len(chunks))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := m.Add(ctx, chunks, vectors); err != nil {
		return nil, err
	}
	return m, nil
}
