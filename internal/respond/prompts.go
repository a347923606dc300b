package respond

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/finchat-dev/finchat/internal/handler"
	"github.com/finchat-dev/finchat/internal/query"
	"github.com/finchat-dev/finchat/internal/vectordb"
)

// systemPrompt frames every conversational completion.
const systemPrompt = `You are FinChat, an AI financial assistant for India.

Provide clear, accurate financial information. Consider risk tolerance and time horizon.

Guidelines:
- Be concise (2-4 sentences max)
- Use Indian context (₹, lakhs, crores)
- Stick to the provided context when one is given
- Don't invent numbers
- For tax advice, mention consulting a CA

Topics: stocks, mutual funds, SIP, EMI, retirement, tax saving, portfolio.`

// maxSummaryDataBytes caps the serialized handler result injected into a
// summary prompt.
const maxSummaryDataBytes = 1000

// maxContextBytes caps concatenated passage text injected into a grounded
// prompt. Sized for the default top-k at the default chunk size.
const maxContextBytes = 2000

// summaryPrompt asks the model to rephrase a handler result for the user's
// question. Map keys serialize in sorted order, so the prompt is stable for
// a given result.
func summaryPrompt(q query.Query, res handler.Result) string {
	data, err := json.MarshalIndent(map[string]any(res), "", "  ")
	if err != nil {
		data = fmt.Appendf(nil, "%v", res)
	}
	return fmt.Sprintf(`Summarize for: %q

Data: %s

Requirements:
- Use exact asset name from query
- Include key metrics
- 2-3 sentences max
- Use ₹ for currency
- Don't use ticker symbols

Summary:`, q.Raw, clip(string(data), maxSummaryDataBytes))
}

// groundedContent builds the user message for generation over retrieved
// passages: the passages first, then the question exactly as asked.
func groundedContent(q query.Query, matches []vectordb.Match) string {
	texts := make([]string, 0, len(matches))
	for _, m := range matches {
		texts = append(texts, m.Chunk.Text)
	}
	context := clip(strings.Join(texts, "\n\n"), maxContextBytes)
	return fmt.Sprintf("Context: %s\n\nUser: %s", context, q.Raw)
}

// clip truncates s to at most max bytes without splitting a rune.
func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}
