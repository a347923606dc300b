package db

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/finchat-dev/finchat/internal/corpus"
)

// Store persists embedded corpus chunks between index builds.
type Store struct {
	db *DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *DB) *Store {
	return &Store{db: database}
}

// Hashes returns the content hash of every stored document, keyed by doc ID.
func (s *Store) Hashes(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc_id, content_hash FROM documents`)
	if err != nil {
		return nil, fmt.Errorf("querying document hashes: %w", err)
	}
	defer rows.Close()

	hashes := make(map[string]string)
	for rows.Next() {
		var docID, hash string
		if err := rows.Scan(&docID, &hash); err != nil {
			return nil, fmt.Errorf("scanning document hash: %w", err)
		}
		hashes[docID] = hash
	}
	return hashes, rows.Err()
}

// SaveDocument upserts a document and replaces its chunks. vectors[i]
// belongs to chunks[i].
func (s *Store) SaveDocument(ctx context.Context, doc corpus.Document, chunks []corpus.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("saving %s: got %d chunks but %d vectors", doc.ID, len(chunks), len(vectors))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (doc_id, content_hash) VALUES (?, ?)
		ON CONFLICT(doc_id) DO UPDATE SET
			content_hash = excluded.content_hash,
			indexed_at = datetime('now')`,
		doc.ID, doc.ContentHash(),
	)
	if err != nil {
		return fmt.Errorf("upserting document %s: %w", doc.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM chunks WHERE doc_id = ?`, doc.ID); err != nil {
		return fmt.Errorf("clearing chunks for %s: %w", doc.ID, err)
	}

	for i, chunk := range chunks {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO chunks (doc_id, seq, text, embedding) VALUES (?, ?, ?, ?)`,
			doc.ID, chunk.Seq, chunk.Text, encodeVector(vectors[i]),
		)
		if err != nil {
			return fmt.Errorf("inserting chunk %s#%d: %w", doc.ID, chunk.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing document %s: %w", doc.ID, err)
	}
	return nil
}

// LoadDocument returns a document's stored chunks and vectors in sequence
// order. A missing document yields empty results, not an error.
func (s *Store) LoadDocument(ctx context.Context, docID string) ([]corpus.Chunk, [][]float32, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT doc_id, seq, text, embedding FROM chunks
		WHERE doc_id = ? ORDER BY seq`, docID)
	if err != nil {
		return nil, nil, fmt.Errorf("querying chunks for %s: %w", docID, err)
	}
	defer rows.Close()
	return scanChunks(rows)
}

// LoadAll returns every stored chunk and vector, ordered by doc ID then
// sequence.
func (s *Store) LoadAll(ctx context.Context) ([]corpus.Chunk, [][]float32, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT doc_id, seq, text, embedding FROM chunks
		ORDER BY doc_id, seq`)
	if err != nil {
		return nil, nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()
	return scanChunks(rows)
}

// Prune removes documents (and their chunks) whose IDs are not in keep.
// It returns the number of documents removed.
func (s *Store) Prune(ctx context.Context, keep []string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	where := ""
	args := make([]any, 0, len(keep))
	if len(keep) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(keep)), ", ")
		where = " WHERE doc_id NOT IN (" + placeholders + ")"
		for _, id := range keep {
			args = append(args, id)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM chunks`+where, args...); err != nil {
		return 0, fmt.Errorf("pruning chunks: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM documents`+where, args...)
	if err != nil {
		return 0, fmt.Errorf("pruning documents: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting pruned documents: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing prune: %w", err)
	}
	return int(removed), nil
}

// ChunkCount returns the total number of stored chunks.
func (s *Store) ChunkCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return count, nil
}

func scanChunks(rows *sql.Rows) ([]corpus.Chunk, [][]float32, error) {
	var chunks []corpus.Chunk
	var vectors [][]float32
	for rows.Next() {
		var chunk corpus.Chunk
		var blob []byte
		if err := rows.Scan(&chunk.DocID, &chunk.Seq, &chunk.Text, &blob); err != nil {
			return nil, nil, fmt.Errorf("scanning chunk: %w", err)
		}
		vec, err := decodeVector(blob)
		if err != nil {
			return nil, nil, fmt.Errorf("decoding embedding for %s#%d: %w", chunk.DocID, chunk.Seq, err)
		}
		chunks = append(chunks, chunk)
		vectors = append(vectors, vec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return chunks, vectors, nil
}

// encodeVector packs a vector as little-endian float32 bytes.
func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func decodeVector(buf []byte) ([]float32, error) {
	if len(buf)%4 != 0 {
		return nil, fmt.Errorf("embedding blob length %d is not a multiple of 4", len(buf))
	}
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return vec, nil
}
