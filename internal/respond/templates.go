package respond

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/finchat-dev/finchat/internal/handler"
)

// NoInformationText is the answer of last resort: no intent matched, nothing
// was retrieved, and the generation backend is unavailable.
const NoInformationText = "I don't have any information on that topic yet. " +
	"Try asking about stocks, mutual funds, SIP, EMI, retirement, or tax saving."

// handlerUnavailableText is the answer when a matched intent's handler
// failed. Deterministic and independent of the failure cause.
func handlerUnavailableText(intent string) string {
	return fmt.Sprintf("The %s service is temporarily unavailable. Please try again in a moment.",
		humanize(intent))
}

// FormatResult renders a handler result as plain text, one field per line in
// sorted key order. It stands in for the model when summary generation is
// unavailable, so it must surface every field the handler produced.
func FormatResult(intent string, res handler.Result) string {
	if len(res) == 0 {
		return fmt.Sprintf("The %s lookup finished but returned no data.", humanize(intent))
	}

	keys := make([]string, 0, len(res))
	for k := range res {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "Here is the %s result:\n", humanize(intent))
	for _, k := range keys {
		fmt.Fprintf(&b, "- %s: %s\n", k, formatValue(res[k]))
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatValue renders one field value. Floats print in plain notation since
// %v would switch large amounts to scientific form. Composite values print
// as compact JSON, which sorts map keys and keeps the line deterministic.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "n/a"
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case map[string]any, []any:
		enc, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(enc)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// humanize turns an intent tag like "stock_price" into "stock price".
func humanize(intent string) string {
	return strings.ReplaceAll(intent, "_", " ")
}
