package corpus

import (
	"strings"
	"unicode"
)

// Default chunking geometry. Sized for sentence-transformer style embedding
// models that degrade on long inputs.
const (
	DefaultChunkSize = 400
	DefaultOverlap   = 100
)

// Splitter cuts document text into chunks of at most ChunkSize runes, each
// overlapping its predecessor by roughly Overlap runes so context at chunk
// boundaries is preserved. Cuts prefer whitespace in the second half of the
// window over a hard mid-word cut.
type Splitter struct {
	ChunkSize int
	Overlap   int
}

// NewSplitter returns a Splitter, substituting defaults for non-positive
// values. Overlap is clamped below ChunkSize so the window always advances.
func NewSplitter(chunkSize, overlap int) Splitter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = DefaultOverlap
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 4
	}
	return Splitter{ChunkSize: chunkSize, Overlap: overlap}
}

// Split chunks one document's text. Empty or whitespace-only text yields no
// chunks. Sequence numbers are contiguous from zero.
func (s Splitter) Split(docID, text string) []Chunk {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= s.ChunkSize {
		return []Chunk{{DocID: docID, Seq: 0, Text: string(runes)}}
	}

	var chunks []Chunk
	start := 0
	for start < len(runes) {
		end := start + s.ChunkSize
		if end >= len(runes) {
			end = len(runes)
		} else {
			if cut := lastBreak(runes, start+s.ChunkSize/2, end); cut > start {
				end = cut
			}
		}

		if piece := strings.TrimSpace(string(runes[start:end])); piece != "" {
			chunks = append(chunks, Chunk{DocID: docID, Seq: len(chunks), Text: piece})
		}

		if end >= len(runes) {
			break
		}
		next := end - s.Overlap
		if next <= start {
			next = start + 1
		}
		start = next
	}
	return chunks
}

// lastBreak returns the index just past the last whitespace rune in
// runes[lo:hi], or -1 when the window has none.
func lastBreak(runes []rune, lo, hi int) int {
	for i := hi - 1; i > lo; i-- {
		if unicode.IsSpace(runes[i]) {
			return i + 1
		}
	}
	return -1
}

// SplitAll chunks every document in order.
func (s Splitter) SplitAll(docs []Document) []Chunk {
	var chunks []Chunk
	for _, doc := range docs {
		chunks = append(chunks, s.Split(doc.ID, doc.Text)...)
	}
	return chunks
}
