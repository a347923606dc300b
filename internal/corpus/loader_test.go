package corpus

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func docIDs(docs []Document) []string {
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids
}

func TestDirSourceDocuments(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sip.md", "# SIP\n\nA systematic investment plan.")
	writeFile(t, dir, "emi.txt", "EMI is the equal monthly installment.")
	writeFile(t, dir, "notes/funds.md", "Mutual funds pool money from investors.")
	writeFile(t, dir, "image.png", "\x00\x01binary")
	writeFile(t, dir, "script.py", "print('skipped, unsupported extension')")

	docs, err := NewDirSource(dir, nil, nil).Documents(context.Background())
	require.NoError(t, err)

	ids := docIDs(docs)
	assert.ElementsMatch(t, []string{"sip.md", "emi.txt", "notes/funds.md"}, ids)

	for _, d := range docs {
		assert.NotEmpty(t, d.Text)
		assert.NotEmpty(t, d.Hash)
		if d.ID == "sip.md" {
			// Markdown structure is stripped to plain text.
			assert.NotContains(t, d.Text, "#")
			assert.Contains(t, d.Text, "SIP")
			assert.Contains(t, d.Text, "A systematic investment plan.")
		}
	}
}

func TestDirSourceIncludeExclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keep.md", "keep")
	writeFile(t, dir, "drop.md", "drop")
	writeFile(t, dir, "sub/keep2.md", "keep2")

	docs, err := NewDirSource(dir, []string{"**/*.md"}, []string{"drop.md"}).Documents(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"keep.md", "sub/keep2.md"}, docIDs(docs))
}

func TestDirSourceSkipsExcludedDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc.md", "visible")
	writeFile(t, dir, ".git/hidden.md", "invisible")
	writeFile(t, dir, "node_modules/dep.md", "invisible")

	docs, err := NewDirSource(dir, nil, nil).Documents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"doc.md"}, docIDs(docs))
}

func TestDirSourceSkipsOversized(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "big.txt", "0123456789")
	writeFile(t, dir, "small.txt", "ok")

	src := NewDirSource(dir, nil, nil)
	src.MaxFileSize = 5

	docs, err := src.Documents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"small.txt"}, docIDs(docs))
}

func TestDirSourceCancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc.md", "text")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDirSource(dir, nil, nil).Documents(ctx)
	assert.Error(t, err)
}

// demoCorpusDir returns the absolute path to the testdata/corpus directory.
func demoCorpusDir(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok, "unable to determine test file location")
	abs, err := filepath.Abs(filepath.Join(filepath.Dir(filename), "..", "..", "testdata", "corpus"))
	require.NoError(t, err)
	_, err = os.Stat(abs)
	require.NoError(t, err, "demo corpus missing: %s", abs)
	return abs
}

func TestDirSourceDemoCorpus(t *testing.T) {
	docs, err := NewDirSource(demoCorpusDir(t), nil, nil).Documents(context.Background())
	require.NoError(t, err)

	ids := docIDs(docs)
	assert.Contains(t, ids, "sip.md")
	assert.Contains(t, ids, "emi.md")
	assert.Contains(t, ids, "mutual-funds.md")
	assert.Contains(t, ids, "stock-metrics.md")

	for _, d := range docs {
		assert.NotContains(t, d.Text, "#", "markdown syntax should be stripped: %s", d.ID)
		assert.Greater(t, len(d.Text), 200, "demo doc should carry real content: %s", d.ID)
	}
}

func TestStaticSource(t *testing.T) {
	src := StaticSource{{ID: "a", Text: "alpha"}}

	docs, err := src.Documents(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "a", docs[0].ID)
}

func TestDocumentContentHash(t *testing.T) {
	d := Document{ID: "a", Text: "alpha"}
	h1 := d.ContentHash()
	assert.Len(t, h1, 64)
	assert.Equal(t, h1, Document{ID: "b", Text: "alpha"}.ContentHash())

	d.Hash = "preset"
	assert.Equal(t, "preset", d.ContentHash())
}
