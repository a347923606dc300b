package corpus

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/finchat-dev/finchat/internal/logger"
)

// DefaultMaxFileSize caps the size of a single knowledge document (1 MB).
const DefaultMaxFileSize int64 = 1 << 20

// defaultExcludes are directory names skipped during traversal.
var defaultExcludes = []string{
	".git",
	".finchat",
	"node_modules",
	"vendor",
	"__pycache__",
	".venv",
	".idea",
	".vscode",
	".DS_Store",
}

// DirSource loads knowledge documents from a directory tree. Markdown files
// are converted to plain text; .txt files are read as-is; everything else
// is skipped. Document IDs are slash-separated paths relative to Root.
type DirSource struct {
	Root        string
	Include     []string // doublestar globs; empty includes every supported file
	Exclude     []string // doublestar globs
	MaxFileSize int64    // 0 means DefaultMaxFileSize

	Log logger.Logger
}

// NewDirSource creates a DirSource rooted at dir.
func NewDirSource(dir string, include, exclude []string) *DirSource {
	return &DirSource{
		Root:    dir,
		Include: include,
		Exclude: exclude,
		Log:     logger.Default(),
	}
}

// Documents walks the tree and returns every readable knowledge document.
// Unreadable entries are skipped rather than failing the whole load.
func (s *DirSource) Documents(ctx context.Context) ([]Document, error) {
	root, err := filepath.Abs(s.Root)
	if err != nil {
		return nil, fmt.Errorf("corpus: resolve root: %w", err)
	}

	maxSize := s.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	var docs []Document
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if excludedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if !matchesInclude(relPath, s.Include) || matchesAny(relPath, s.Exclude) {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".md" && ext != ".markdown" && ext != ".txt" {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Size() > maxSize {
			s.log().Warn("skipping oversized document", "path", relPath, "bytes", info.Size())
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			s.log().Warn("skipping unreadable document", "path", relPath, "error", err)
			return nil
		}
		if isBinary(raw) {
			return nil
		}

		text := string(raw)
		if ext == ".md" || ext == ".markdown" {
			text = MarkdownToText(raw)
		}

		sum := sha256.Sum256(raw)
		docs = append(docs, Document{
			ID:   relPath,
			Text: text,
			Hash: hex.EncodeToString(sum[:]),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("corpus: walking %s: %w", s.Root, err)
	}

	s.log().Debug("loaded corpus documents", "root", s.Root, "count", len(docs))
	return docs, nil
}

func (s *DirSource) log() logger.Logger {
	if s.Log != nil {
		return s.Log
	}
	return logger.Default()
}

func excludedDir(name string) bool {
	for _, excl := range defaultExcludes {
		if strings.EqualFold(name, excl) {
			return true
		}
	}
	return false
}

func matchesInclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	return matchesAny(relPath, patterns)
}

// matchesAny checks relPath against doublestar glob patterns, matching the
// full relative path first and the bare filename second.
func matchesAny(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.PathMatch(pattern, relPath); err == nil && matched {
			return true
		}
		if matched, err := doublestar.PathMatch(pattern, filepath.Base(relPath)); err == nil && matched {
			return true
		}
	}
	return false
}

// isBinary checks the first 512 bytes for NUL, the usual cheap heuristic.
func isBinary(data []byte) bool {
	n := len(data)
	if n > 512 {
		n = 512
	}
	for i := 0; i < n; i++ {
		if data[i] == 0 {
			return true
		}
	}
	return false
}
