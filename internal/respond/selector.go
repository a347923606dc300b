// Package respond composes the final answer text for a routed query. It
// selects one of three strategies: direct presentation of a matched intent's
// handler result, grounded generation over retrieved passages, or ungrounded
// generation from the model alone. Every strategy carries a deterministic
// fallback, so an answer is always produced even when the generation backend
// is down.
package respond

import (
	"context"
	"fmt"
	"strings"

	"github.com/finchat-dev/finchat/internal/handler"
	"github.com/finchat-dev/finchat/internal/llm"
	"github.com/finchat-dev/finchat/internal/logger"
	"github.com/finchat-dev/finchat/internal/query"
	"github.com/finchat-dev/finchat/internal/router"
	"github.com/finchat-dev/finchat/internal/vectordb"
)

// Tier names reported on an Answer. The tier is decided by the routing
// outcome and the retrieval result, never by whether generation succeeded;
// Fallback records that separately.
const (
	TierDirect     = "direct"
	TierGrounded   = "grounded"
	TierUngrounded = "ungrounded"
)

// Answer is a composed response ready for display.
type Answer struct {
	// Text is the answer shown to the user. Never empty.
	Text string `json:"text"`

	// Tier names the strategy that produced the text.
	Tier string `json:"tier"`

	// Fallback is true when a deterministic degraded path produced the
	// text instead of the language model.
	Fallback bool `json:"fallback"`
}

// Options tunes the Selector's completion requests. Zero values pick the
// defaults below, which mirror the tuning the pipeline was calibrated with.
type Options struct {
	// Model overrides the provider's default completion model.
	Model string

	// Temperature for all conversational completions.
	Temperature float64

	// SummaryMaxTokens bounds completions that rephrase a handler result.
	SummaryMaxTokens int

	// AnswerMaxTokens bounds grounded and ungrounded completions.
	AnswerMaxTokens int
}

const (
	DefaultTemperature      = 0.4
	DefaultSummaryMaxTokens = 200
	DefaultAnswerMaxTokens  = 500
)

func (o Options) withDefaults() Options {
	if o.Temperature == 0 {
		o.Temperature = DefaultTemperature
	}
	if o.SummaryMaxTokens == 0 {
		o.SummaryMaxTokens = DefaultSummaryMaxTokens
	}
	if o.AnswerMaxTokens == 0 {
		o.AnswerMaxTokens = DefaultAnswerMaxTokens
	}
	return o
}

// Selector picks a response strategy and renders the answer.
type Selector struct {
	provider llm.Provider
	opts     Options
	log      logger.Logger
}

// NewSelector builds a Selector on top of a generation provider. A nil log
// falls back to the package default logger.
func NewSelector(provider llm.Provider, opts Options, log logger.Logger) *Selector {
	if log == nil {
		log = logger.Default()
	}
	return &Selector{provider: provider, opts: opts.withDefaults(), log: log}
}

// Respond renders the answer for one routed query. The strategy is a pure
// function of the inputs: a matched decision means direct, an unmatched
// decision with retrieved passages means grounded generation, and an
// unmatched decision with nothing retrieved means ungrounded generation.
// Respond never returns an error; degraded paths yield deterministic text
// with Fallback set.
func (s *Selector) Respond(ctx context.Context, q query.Query, d router.Decision, matches []vectordb.Match, res handler.Result, handlerErr error) Answer {
	if d.Matched() {
		return s.direct(ctx, q, d, res, handlerErr)
	}
	if len(matches) > 0 {
		return s.grounded(ctx, q, matches)
	}
	return s.ungrounded(ctx, q)
}

// direct presents a handler result. The model rephrases the raw fields into
// a natural sentence; when it cannot, the sorted field template takes over.
func (s *Selector) direct(ctx context.Context, q query.Query, d router.Decision, res handler.Result, handlerErr error) Answer {
	if handlerErr != nil {
		s.log.Warn("handler failed, answering with outage notice",
			"intent", d.Intent, "error", handlerErr)
		return Answer{Text: handlerUnavailableText(d.Intent), Tier: TierDirect, Fallback: true}
	}

	text, err := s.generate(ctx, s.opts.SummaryMaxTokens,
		llm.System(systemPrompt),
		llm.User(summaryPrompt(q, res)),
	)
	if err != nil {
		s.log.Warn("summary generation failed, using field template",
			"intent", d.Intent, "error", err)
		return Answer{Text: FormatResult(d.Intent, res), Tier: TierDirect, Fallback: true}
	}
	return Answer{Text: text, Tier: TierDirect}
}

// grounded answers from retrieved passages. When generation fails the top
// ranked passage is returned verbatim rather than nothing.
func (s *Selector) grounded(ctx context.Context, q query.Query, matches []vectordb.Match) Answer {
	text, err := s.generate(ctx, s.opts.AnswerMaxTokens,
		llm.System(systemPrompt),
		llm.User(groundedContent(q, matches)),
	)
	if err != nil {
		s.log.Warn("grounded generation failed, returning top passage",
			"doc", matches[0].Chunk.DocID, "error", err)
		return Answer{Text: matches[0].Chunk.Text, Tier: TierGrounded, Fallback: true}
	}
	return Answer{Text: text, Tier: TierGrounded}
}

// ungrounded answers from the model alone.
func (s *Selector) ungrounded(ctx context.Context, q query.Query) Answer {
	text, err := s.generate(ctx, s.opts.AnswerMaxTokens,
		llm.System(systemPrompt),
		llm.User(q.Raw),
	)
	if err != nil {
		s.log.Warn("ungrounded generation failed, using static notice", "error", err)
		return Answer{Text: NoInformationText, Tier: TierUngrounded, Fallback: true}
	}
	return Answer{Text: text, Tier: TierUngrounded}
}

// generate runs one completion and normalizes its output. An empty
// completion counts as a backend failure so callers degrade instead of
// surfacing a blank answer.
func (s *Selector) generate(ctx context.Context, maxTokens int, messages ...llm.Message) (string, error) {
	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Model:       s.opts.Model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: s.opts.Temperature,
	})
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return "", fmt.Errorf("%w: empty completion", llm.ErrUnavailable)
	}
	return text, nil
}
