// Package assistant wires routing, result caching, handler execution,
// retrieval, and response selection into the single entry point every
// surface (CLI, REST, WebSocket, MCP) calls.
package assistant

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/finchat-dev/finchat/internal/cache"
	"github.com/finchat-dev/finchat/internal/handler"
	"github.com/finchat-dev/finchat/internal/logger"
	"github.com/finchat-dev/finchat/internal/query"
	"github.com/finchat-dev/finchat/internal/respond"
	"github.com/finchat-dev/finchat/internal/retrieval"
	"github.com/finchat-dev/finchat/internal/router"
	"github.com/finchat-dev/finchat/internal/vectordb"
)

// FinalAnswer is the complete outcome of one query. Text is never empty.
type FinalAnswer struct {
	Text     string `json:"text"`
	Intent   string `json:"intent"`
	Tier     string `json:"tier"`
	Fallback bool   `json:"fallback"`
	CacheHit bool   `json:"cache_hit"`
}

// Options tunes the orchestrator. Zero values pick the defaults below.
type Options struct {
	// TopK is the number of passages retrieved for unmatched queries.
	TopK int

	// CacheTTL is the handler-result lifetime for rules that do not carry
	// their own.
	CacheTTL time.Duration
}

const (
	DefaultTopK     = 3
	DefaultCacheTTL = 5 * time.Minute
)

// Assistant orchestrates the query pipeline. The rule table, registry, and
// selector are immutable after construction; the result cache and the
// swappable retrieval engine are the only mutable state, and both are safe
// for concurrent use.
type Assistant struct {
	table    *router.Table
	registry *handler.Registry
	selector *respond.Selector
	results  *cache.Cache[handler.Result]
	engine   atomic.Pointer[retrieval.Engine]
	opts     Options
	log      logger.Logger
}

// New builds an Assistant. No retrieval engine is installed yet; unmatched
// queries answer ungrounded until SwapEngine provides one. A nil log falls
// back to the package default logger.
func New(table *router.Table, registry *handler.Registry, selector *respond.Selector, opts Options, log logger.Logger) *Assistant {
	if log == nil {
		log = logger.Default()
	}
	if opts.TopK == 0 {
		opts.TopK = DefaultTopK
	}
	if opts.CacheTTL == 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	return &Assistant{
		table:    table,
		registry: registry,
		selector: selector,
		results:  cache.New[handler.Result](),
		opts:     opts,
		log:      log,
	}
}

// SwapEngine atomically installs a retrieval engine, replacing any previous
// one. Queries in flight keep the engine they already loaded; new queries
// see the replacement. Used at startup and after reindexing.
func (a *Assistant) SwapEngine(e *retrieval.Engine) {
	a.engine.Store(e)
}

// Intents lists the intent tags the rule table can route to, in rank order.
func (a *Assistant) Intents() []string {
	return a.table.Intents()
}

// HandleQuery answers one user query. It never returns an error: every
// failure inside the pipeline degrades to a deterministic fallback answer.
func (a *Assistant) HandleQuery(ctx context.Context, text, userID string) FinalAnswer {
	start := time.Now()
	q := query.New(text, userID)
	d := a.table.Route(q)

	var (
		ans respond.Answer
		hit bool
	)
	if d.Matched() {
		ans, hit = a.direct(ctx, q, d)
	} else {
		ans = a.retrieveAndRespond(ctx, q, d)
	}

	a.log.Info("query answered",
		"intent", d.Intent,
		"tier", ans.Tier,
		"fallback", ans.Fallback,
		"cache_hit", hit,
		"took", time.Since(start),
	)
	return FinalAnswer{
		Text:     ans.Text,
		Intent:   d.Intent,
		Tier:     ans.Tier,
		Fallback: ans.Fallback,
		CacheHit: hit,
	}
}

// direct serves a matched intent: cached handler result when one is live,
// otherwise a fresh execution. Only successful results are cached, and the
// answer text is always re-rendered, so a cache hit can still produce a
// fresh phrasing.
func (a *Assistant) direct(ctx context.Context, q query.Query, d router.Decision) (respond.Answer, bool) {
	if res, ok := a.results.Get(q.Normalized); ok {
		a.log.Debug("handler result served from cache", "intent", d.Intent)
		return a.selector.Respond(ctx, q, d, nil, res, nil), true
	}

	res, err := a.registry.Execute(ctx, d.Intent, d.Params)
	if err == nil {
		a.results.Set(q.Normalized, res, a.ttlFor(d.Intent))
	}
	return a.selector.Respond(ctx, q, d, nil, res, err), false
}

// ttlFor returns the matched rule's cache TTL, or the configured default
// when the rule does not override it.
func (a *Assistant) ttlFor(intent string) time.Duration {
	if r, ok := a.table.Rule(intent); ok && r.CacheTTL > 0 {
		return r.CacheTTL
	}
	return a.opts.CacheTTL
}

// retrieveAndRespond serves an unmatched query: fetch passages when an
// engine is installed, then let the selector pick grounded or ungrounded
// generation based on what came back.
func (a *Assistant) retrieveAndRespond(ctx context.Context, q query.Query, d router.Decision) respond.Answer {
	var matches []vectordb.Match
	if e := a.engine.Load(); e != nil {
		result := e.Retrieve(ctx, q, a.opts.TopK)
		matches = result.Matches
		a.log.Debug("retrieval finished",
			"strategy", result.Strategy, "matches", len(matches))
	} else {
		a.log.Debug("no retrieval engine installed, answering ungrounded")
	}
	return a.selector.Respond(ctx, q, d, matches, nil, nil)
}
