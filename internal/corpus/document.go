// Package corpus supplies knowledge documents and splits them into bounded,
// overlapping chunks for indexing.
package corpus

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// Document is one knowledge-base document at build time.
type Document struct {
	ID   string // Source identifier, usually a slash-separated relative path.
	Text string // Full plain text.
	Hash string // SHA-256 hex digest of the source bytes. Optional; computed from Text when empty.
}

// ContentHash returns the document's hash, computing one from Text when the
// source did not provide it.
func (d Document) ContentHash() string {
	if d.Hash != "" {
		return d.Hash
	}
	sum := sha256.Sum256([]byte(d.Text))
	return hex.EncodeToString(sum[:])
}

// Chunk is a bounded slice of a document. Chunks are created once at corpus
// build time and are immutable afterwards.
type Chunk struct {
	DocID string `json:"doc_id"`
	Seq   int    `json:"seq"` // Position within the document, starting at 0.
	Text  string `json:"text"`
}

// Source supplies the corpus at index build time only.
type Source interface {
	Documents(ctx context.Context) ([]Document, error)
}

// StaticSource is a Source over an in-memory document list. Used by tests
// and for the built-in starter corpus.
type StaticSource []Document

func (s StaticSource) Documents(_ context.Context) ([]Document, error) {
	return s, nil
}
