package vectordb

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	chromem "github.com/philippgille/chromem-go"

	"github.com/finchat-dev/finchat/internal/corpus"
	"github.com/finchat-dev/finchat/internal/embeddings"
)

const (
	collectionName = "knowledge"
	snapshotFile   = "index.gob.gz"
)

// Chromem implements Index using chromem-go. It accepts precomputed vectors
// so the embeddings cache and snapshot reuse work the same as with Memory,
// and it can persist the whole collection to disk between runs.
type Chromem struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedFunc  chromem.EmbeddingFunc
}

// NewChromem creates an in-memory chromem-backed index. The embedder is
// registered as the collection's embedding func for documents added without
// a vector.
func NewChromem(embedder embeddings.Embedder) (*Chromem, error) {
	if embedder == nil {
		return nil, fmt.Errorf("chromem index requires an embedder")
	}
	db := chromem.NewDB()
	ef := embeddings.ToChromemFunc(embedder)

	col, err := db.GetOrCreateCollection(collectionName, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &Chromem{
		db:         db,
		collection: col,
		embedFunc:  ef,
	}, nil
}

func (c *Chromem) Add(ctx context.Context, chunks []corpus.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("got %d chunks but %d vectors", len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return nil
	}

	docs := make([]chromem.Document, len(chunks))
	for i, chunk := range chunks {
		docs[i] = chromem.Document{
			ID:        chunkKey(chunk),
			Content:   chunk.Text,
			Embedding: vectors[i],
			Metadata: map[string]string{
				"doc_id": chunk.DocID,
				"seq":    strconv.Itoa(chunk.Seq),
			},
		}
	}

	return c.collection.AddDocuments(ctx, docs, 1)
}

func (c *Chromem) Search(ctx context.Context, queryVec []float32, k int) ([]Match, error) {
	if k <= 0 {
		return nil, nil
	}

	// chromem-go requires nResults <= collection size.
	count := c.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := c.collection.QueryEmbedding(ctx, queryVec, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	matches := make([]Match, len(results))
	for i, r := range results {
		seq, _ := strconv.Atoi(r.Metadata["seq"])
		matches[i] = Match{
			Chunk: corpus.Chunk{
				DocID: r.Metadata["doc_id"],
				Seq:   seq,
				Text:  r.Content,
			},
			Score: float64(r.Similarity),
		}
	}
	// chromem orders by similarity only; re-sort so ties stay deterministic.
	SortMatches(matches)

	return matches, nil
}

func (c *Chromem) Len() int {
	return c.collection.Count()
}

// Persist saves the collection to dir.
func (c *Chromem) Persist(_ context.Context, dir string) error {
	return c.db.ExportToFile(filepath.Join(dir, snapshotFile), true, "")
}

// Load restores a collection previously saved with Persist.
func (c *Chromem) Load(_ context.Context, dir string) error {
	if err := c.db.ImportFromFile(filepath.Join(dir, snapshotFile), ""); err != nil {
		return fmt.Errorf("import from file: %w", err)
	}

	// Re-acquire collection reference after import.
	col := c.db.GetCollection(collectionName, c.embedFunc)
	if col == nil {
		return fmt.Errorf("collection %q not found after import", collectionName)
	}
	c.collection = col
	return nil
}

func chunkKey(chunk corpus.Chunk) string {
	return chunk.DocID + "#" + strconv.Itoa(chunk.Seq)
}
