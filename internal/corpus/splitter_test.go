package corpus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitShortDocument(t *testing.T) {
	s := NewSplitter(400, 100)

	chunks := s.Split("doc1", "SIP is a systematic investment plan.")
	require.Len(t, chunks, 1)
	assert.Equal(t, "doc1", chunks[0].DocID)
	assert.Equal(t, 0, chunks[0].Seq)
	assert.Equal(t, "SIP is a systematic investment plan.", chunks[0].Text)
}

func TestSplitEmptyDocument(t *testing.T) {
	s := NewSplitter(400, 100)

	assert.Nil(t, s.Split("doc1", ""))
	assert.Nil(t, s.Split("doc1", "   \n\t  "))
}

func TestSplitBoundsAndSequence(t *testing.T) {
	s := NewSplitter(100, 20)
	text := strings.Repeat("alpha beta gamma delta epsilon ", 40)

	chunks := s.Split("doc1", text)
	require.Greater(t, len(chunks), 1)

	for i, c := range chunks {
		assert.Equal(t, i, c.Seq)
		assert.Equal(t, "doc1", c.DocID)
		assert.LessOrEqual(t, len([]rune(c.Text)), 100, "chunk %d too long", i)
		assert.NotEmpty(t, c.Text)
	}
}

func TestSplitOverlapPreservesBoundaryContext(t *testing.T) {
	s := NewSplitter(100, 40)
	text := strings.Repeat("one two three four five six seven eight nine ten ", 20)

	chunks := s.Split("doc1", text)
	require.Greater(t, len(chunks), 1)

	// The tail of each chunk must reappear at the head of the next one.
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1].Text
		tail := prev[len(prev)-10:]
		assert.Contains(t, chunks[i].Text, strings.TrimSpace(tail),
			"chunk %d does not overlap chunk %d", i, i-1)
	}
}

func TestSplitPrefersWhitespaceCuts(t *testing.T) {
	s := NewSplitter(50, 10)
	text := strings.Repeat("financial planning basics ", 20)

	chunks := s.Split("doc1", text)
	require.Greater(t, len(chunks), 1)
	for _, c := range chunks[:len(chunks)-1] {
		// Cuts land on whitespace, so no chunk ends mid-word.
		words := strings.Fields(c.Text)
		require.NotEmpty(t, words)
		assert.Contains(t, []string{"financial", "planning", "basics"}, words[len(words)-1])
	}
}

func TestSplitNoWhitespaceStillAdvances(t *testing.T) {
	s := NewSplitter(50, 10)
	text := strings.Repeat("x", 500)

	chunks := s.Split("doc1", text)
	require.NotEmpty(t, chunks)

	total := 0
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c.Text), 50)
		total += len(c.Text)
	}
	assert.GreaterOrEqual(t, total, 500) // all input covered, overlap counted twice
}

func TestNewSplitterDefaults(t *testing.T) {
	s := NewSplitter(0, -1)
	assert.Equal(t, DefaultChunkSize, s.ChunkSize)
	assert.Equal(t, DefaultOverlap, s.Overlap)

	// Overlap must stay below chunk size.
	s = NewSplitter(100, 200)
	assert.Less(t, s.Overlap, s.ChunkSize)
}

func TestSplitAll(t *testing.T) {
	s := NewSplitter(400, 100)

	chunks := s.SplitAll([]Document{
		{ID: "a.txt", Text: "SIP is a systematic investment plan."},
		{ID: "b.txt", Text: "EMI is the equal monthly installment on a loan."},
	})
	require.Len(t, chunks, 2)
	assert.Equal(t, "a.txt", chunks[0].DocID)
	assert.Equal(t, "b.txt", chunks[1].DocID)
	assert.Equal(t, 0, chunks[1].Seq)
}
