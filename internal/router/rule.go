// Package router implements deterministic intent detection over an ordered
// table of rules. Routing is a pure function of the normalized query text
// and the static rule configuration: no network, no index lookups.
package router

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// IntentUnmatched is the intent tag of a Decision produced when no rule in
// the table matched. It is a valid routing outcome, not an error.
const IntentUnmatched = "unmatched"

// Rule is one intent-detection rule. A rule matches a query when at least
// one keyword is contained in the normalized text or at least one pattern
// matches it, and none of the exclusion keywords are contained. Rules are
// evaluated in ascending rank order and the first match wins.
type Rule struct {
	// Rank orders the rule within the table. Ranks must be positive and
	// unique; lower ranks are evaluated first.
	Rank int

	// Intent is the tag reported on a match, and the key under which an
	// external handler is registered.
	Intent string

	// Keywords is the inclusion set: the rule can match when any keyword
	// appears as a substring of the normalized text.
	Keywords []string

	// Excludes vetoes a match when any entry appears as a substring of the
	// normalized text. Exclusion sets keep a broad rule from shadowing a
	// more specific one ranked after it.
	Excludes []string

	// Patterns is an alternative inclusion set of regular expressions.
	Patterns []string

	// Params declares how parameters are extracted from the normalized
	// text once the rule has matched. Extraction never vetoes the match.
	Params []ParamSpec

	// CacheTTL overrides the default handler-result cache TTL for this
	// intent. Zero means use the configured default.
	CacheTTL time.Duration

	compiled []*regexp.Regexp
}

// ParamSpec declares one regex-driven parameter extractor. Specs are
// evaluated in order; the first spec that matches a given name wins. A spec
// with an empty Pattern never matches and only contributes its Default.
type ParamSpec struct {
	// Name of the parameter in the Decision's parameter map.
	Name string `yaml:"name"`

	// Pattern is a regular expression applied to the normalized text.
	Pattern string `yaml:"pattern,omitempty"`

	// Group selects the capture group whose text becomes the value.
	// Zero selects the whole match.
	Group int `yaml:"group,omitempty"`

	// Value, when non-empty, is assigned verbatim on a match instead of
	// the captured text. Used to map synonym patterns to a canonical form.
	Value string `yaml:"value,omitempty"`

	// Default is assigned when no spec for this name matched.
	Default string `yaml:"default,omitempty"`

	// Scale transforms the captured text. The only supported value is
	// "amount", which parses Indian currency shorthand: "12k" becomes
	// 12000, "1.5 lakh" becomes 150000, "2 crore" becomes 20000000.
	Scale string `yaml:"scale,omitempty"`

	compiled *regexp.Regexp
}

// Decision is the outcome of routing one query.
type Decision struct {
	// Intent is the matched rule's tag, or IntentUnmatched.
	Intent string `json:"intent"`

	// Params holds the extracted parameters. Nil when unmatched.
	Params map[string]string `json:"params,omitempty"`

	// Rank is the matched rule's rank, zero when unmatched. Diagnostic
	// only.
	Rank int `json:"rank,omitempty"`
}

// Matched reports whether a rule matched.
func (d Decision) Matched() bool {
	return d.Intent != IntentUnmatched
}

// Unmatched is the Decision returned when no rule matched.
func Unmatched() Decision {
	return Decision{Intent: IntentUnmatched}
}

// matches evaluates the rule's predicate against normalized query text.
func (r *Rule) matches(normalized string) bool {
	hit := false
	for _, kw := range r.Keywords {
		if strings.Contains(normalized, kw) {
			hit = true
			break
		}
	}
	if !hit {
		for _, re := range r.compiled {
			if re.MatchString(normalized) {
				hit = true
				break
			}
		}
	}
	if !hit {
		return false
	}
	for _, ex := range r.Excludes {
		if strings.Contains(normalized, ex) {
			return false
		}
	}
	return true
}

// extract runs the rule's parameter specs against normalized text. First
// matching spec per name wins; defaults fill names no spec matched.
func (r *Rule) extract(normalized string) map[string]string {
	if len(r.Params) == 0 {
		return map[string]string{}
	}

	params := make(map[string]string, len(r.Params))
	for _, spec := range r.Params {
		if _, done := params[spec.Name]; done {
			continue
		}
		if spec.compiled == nil {
			continue
		}
		m := spec.compiled.FindStringSubmatch(normalized)
		if m == nil || spec.Group >= len(m) {
			continue
		}
		val := spec.Value
		if val == "" {
			val = m[spec.Group]
		}
		if spec.Scale == "amount" {
			scaled, ok := scaleAmount(val)
			if !ok {
				continue
			}
			val = scaled
		}
		params[spec.Name] = val
	}

	for _, spec := range r.Params {
		if _, done := params[spec.Name]; done {
			continue
		}
		if spec.Default != "" {
			params[spec.Name] = spec.Default
		}
	}
	return params
}

var amountRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(k|lakh|lakhs|crore|cr)?$`)

// scaleAmount converts a captured amount like "12k", "1.5 lakh" or "2 crore"
// into a plain integer string.
func scaleAmount(s string) (string, bool) {
	m := amountRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return "", false
	}
	switch m[2] {
	case "k":
		v *= 1_000
	case "lakh", "lakhs":
		v *= 100_000
	case "crore", "cr":
		v *= 10_000_000
	}
	return strconv.FormatInt(int64(math.Round(v)), 10), true
}

// validate checks the rule's static configuration. Any error here is a
// configuration error and aborts table construction.
func (r *Rule) validate() error {
	if r.Intent == "" {
		return fmt.Errorf("rule rank %d: intent is required", r.Rank)
	}
	if r.Intent == IntentUnmatched {
		return fmt.Errorf("rule rank %d: intent %q is reserved", r.Rank, IntentUnmatched)
	}
	if r.Rank <= 0 {
		return fmt.Errorf("rule %q: rank must be positive, got %d", r.Intent, r.Rank)
	}
	if len(r.Keywords) == 0 && len(r.Patterns) == 0 {
		return fmt.Errorf("rule %q: at least one keyword or pattern is required", r.Intent)
	}
	for _, kw := range r.Keywords {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("rule %q: empty keyword", r.Intent)
		}
	}
	for _, spec := range r.Params {
		if spec.Name == "" {
			return fmt.Errorf("rule %q: param spec without a name", r.Intent)
		}
		if spec.Scale != "" && spec.Scale != "amount" {
			return fmt.Errorf("rule %q: param %q: unknown scale %q", r.Intent, spec.Name, spec.Scale)
		}
		if spec.Group < 0 {
			return fmt.Errorf("rule %q: param %q: negative capture group", r.Intent, spec.Name)
		}
		if spec.Pattern == "" && spec.Default == "" && spec.Value == "" {
			return fmt.Errorf("rule %q: param %q: needs a pattern or a default", r.Intent, spec.Name)
		}
	}
	return nil
}

// compile builds the rule's regular expressions. Called once by NewTable.
func (r *Rule) compile() error {
	r.compiled = make([]*regexp.Regexp, 0, len(r.Patterns))
	for _, p := range r.Patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return fmt.Errorf("rule %q: pattern %q: %w", r.Intent, p, err)
		}
		r.compiled = append(r.compiled, re)
	}
	for i := range r.Params {
		spec := &r.Params[i]
		if spec.Pattern == "" {
			continue
		}
		re, err := regexp.Compile(spec.Pattern)
		if err != nil {
			return fmt.Errorf("rule %q: param %q: pattern %q: %w", r.Intent, spec.Name, spec.Pattern, err)
		}
		if spec.Group > re.NumSubexp() {
			return fmt.Errorf("rule %q: param %q: capture group %d out of range", r.Intent, spec.Name, spec.Group)
		}
		spec.compiled = re
	}
	return nil
}
