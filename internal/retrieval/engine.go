// Package retrieval answers free-text queries with corpus passages,
// preferring semantic search and degrading to lexical token overlap when
// the embedding provider is unreachable.
package retrieval

import (
	"context"

	"github.com/finchat-dev/finchat/internal/corpus"
	"github.com/finchat-dev/finchat/internal/embeddings"
	"github.com/finchat-dev/finchat/internal/logger"
	"github.com/finchat-dev/finchat/internal/query"
	"github.com/finchat-dev/finchat/internal/vectordb"
)

// Strategies recorded on results.
const (
	StrategyVector  = "vector"
	StrategyLexical = "lexical"
)

// Result carries retrieved matches plus the strategy that produced them.
type Result struct {
	Matches  []vectordb.Match
	Strategy string
}

// Empty reports whether retrieval found nothing.
func (r Result) Empty() bool {
	return len(r.Matches) == 0
}

// Engine retrieves corpus context for a query. It holds the chunk list
// alongside the index so lexical scoring works even when the vector path
// is down. Both are read-only after construction.
type Engine struct {
	embedder embeddings.Embedder
	index    vectordb.Index
	chunks   []corpus.Chunk
	tokens   []map[string]struct{}
	log      logger.Logger
}

// NewEngine builds an engine over an already-populated index. chunks must
// be the same set the index holds; their token sets are precomputed here.
func NewEngine(embedder embeddings.Embedder, index vectordb.Index, chunks []corpus.Chunk, log logger.Logger) *Engine {
	if log == nil {
		log = logger.Default()
	}
	tokens := make([]map[string]struct{}, len(chunks))
	for i, chunk := range chunks {
		tokens[i] = query.TokenSet(chunk.Text)
	}
	return &Engine{
		embedder: embedder,
		index:    index,
		chunks:   chunks,
		tokens:   tokens,
		log:      log,
	}
}

// Retrieve returns up to k matches for the query, best first. Failures
// never surface as errors: if embedding or the index is unavailable the
// engine scores chunks lexically, and when nothing matches at all the
// result is simply empty.
func (e *Engine) Retrieve(ctx context.Context, q query.Query, k int) Result {
	if k <= 0 || len(e.chunks) == 0 {
		return Result{Strategy: StrategyVector}
	}

	vecs, err := e.embedder.Embed(ctx, []string{q.Normalized})
	if err == nil && len(vecs) == 1 {
		matches, serr := e.index.Search(ctx, vecs[0], k)
		if serr == nil {
			return Result{Matches: matches, Strategy: StrategyVector}
		}
		e.log.Warn("vector search failed, falling back to lexical", "error", serr)
	} else {
		e.log.Warn("embedding unavailable, falling back to lexical", "error", err)
	}

	return Result{Matches: e.lexical(q, k), Strategy: StrategyLexical}
}

// lexical scores each chunk by the number of distinct query tokens it
// contains. Chunks scoring zero are excluded; ties order by document ID
// then sequence, same as vector results.
func (e *Engine) lexical(q query.Query, k int) []vectordb.Match {
	distinct := query.TokenSet(q.Normalized)
	if len(distinct) == 0 {
		return nil
	}

	var matches []vectordb.Match
	for i, chunkTokens := range e.tokens {
		score := 0
		for tok := range distinct {
			if _, ok := chunkTokens[tok]; ok {
				score++
			}
		}
		if score == 0 {
			continue
		}
		matches = append(matches, vectordb.Match{Chunk: e.chunks[i], Score: float64(score)})
	}

	vectordb.SortMatches(matches)
	if k < len(matches) {
		matches = matches[:k]
	}
	return matches
}
