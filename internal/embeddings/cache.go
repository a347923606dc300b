package embeddings

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the cached vector count when callers pass 0.
const DefaultCacheSize = 4096

// CachedEmbedder wraps another Embedder with an LRU cache keyed by the
// SHA-256 of each text. Repeated queries and unchanged corpus chunks skip
// the provider round trip entirely.
type CachedEmbedder struct {
	inner Embedder
	cache *lru.Cache[string, []float32]
}

// NewCached creates a caching decorator around inner holding up to size
// vectors. size <= 0 selects DefaultCacheSize.
func NewCached(inner Embedder, size int) (*CachedEmbedder, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, []float32](size)
	if err != nil {
		return nil, fmt.Errorf("init embedding cache: %w", err)
	}
	return &CachedEmbedder{inner: inner, cache: cache}, nil
}

func (c *CachedEmbedder) Name() string {
	return c.inner.Name()
}

func (c *CachedEmbedder) Dimensions() int {
	return c.inner.Dimensions()
}

func (c *CachedEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	results := make([][]float32, len(texts))
	missing := make([]string, 0, len(texts))
	missingIdx := make(map[string][]int, len(texts))

	for i, text := range texts {
		key := cacheKey(text)
		if vec, ok := c.cache.Get(key); ok {
			results[i] = cloneVector(vec)
			continue
		}
		if _, seen := missingIdx[text]; !seen {
			missing = append(missing, text)
		}
		missingIdx[text] = append(missingIdx[text], i)
	}
	if len(missing) == 0 {
		return results, nil
	}

	embedded, err := c.inner.Embed(ctx, missing)
	if err != nil {
		return nil, err
	}
	if len(embedded) != len(missing) {
		return nil, unavailable(fmt.Errorf("received %d embeddings for %d texts", len(embedded), len(missing)))
	}

	for i, text := range missing {
		c.cache.Add(cacheKey(text), cloneVector(embedded[i]))
		for _, idx := range missingIdx[text] {
			results[idx] = cloneVector(embedded[i])
		}
	}
	return results, nil
}

// Len reports how many vectors the cache currently holds.
func (c *CachedEmbedder) Len() int {
	return c.cache.Len()
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func cloneVector(src []float32) []float32 {
	if len(src) == 0 {
		return nil
	}
	dst := make([]float32, len(src))
	copy(dst, src)
	return dst
}
