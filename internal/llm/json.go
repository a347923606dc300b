package llm

import (
	"encoding/json"
	"regexp"
)

// Models in JSON mode still sometimes wrap the object in a markdown fence or
// surround it with prose. Candidates are tried in order of specificity; all
// use non-greedy matching so trailing commentary is ignored.
var jsonCandidates = []*regexp.Regexp{
	regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```"),
	regexp.MustCompile("(?s)```\\s*(\\{.*?\\})\\s*```"),
	regexp.MustCompile(`(?s)(\{.*?\})`),
}

// ExtractJSON recovers a JSON object from raw model output. It tries a
// direct parse first, then each fenced/bare candidate pattern. Returns
// false when no candidate parses.
func ExtractJSON(text string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err == nil && obj != nil {
		return obj, true
	}

	for _, re := range jsonCandidates {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		obj = nil
		if err := json.Unmarshal([]byte(m[1]), &obj); err == nil && obj != nil {
			return obj, true
		}
	}
	return nil, false
}
