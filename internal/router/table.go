package router

import (
	"fmt"
	"sort"

	"github.com/finchat-dev/finchat/internal/query"
)

// Table is an immutable, ordered set of rules. Build it once at startup
// with NewTable; afterwards it is safe for unlimited concurrent readers.
type Table struct {
	rules []Rule
}

// NewTable validates, compiles, and orders the given rules. It returns an
// error on any malformed rule: empty intent, duplicate or non-positive
// rank, empty predicate, or an uncompilable pattern. Such errors are fatal
// configuration errors and must abort startup.
func NewTable(rules []Rule) (*Table, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("router: rule table is empty")
	}

	owned := make([]Rule, len(rules))
	copy(owned, rules)

	seen := make(map[int]string, len(owned))
	for i := range owned {
		r := &owned[i]
		if err := r.validate(); err != nil {
			return nil, fmt.Errorf("router: %w", err)
		}
		if prev, dup := seen[r.Rank]; dup {
			return nil, fmt.Errorf("router: rules %q and %q share rank %d", prev, r.Intent, r.Rank)
		}
		seen[r.Rank] = r.Intent
		if err := r.compile(); err != nil {
			return nil, fmt.Errorf("router: %w", err)
		}
	}

	sort.Slice(owned, func(i, j int) bool { return owned[i].Rank < owned[j].Rank })

	return &Table{rules: owned}, nil
}

// Route evaluates the table against the query in rank order and returns
// the first match, or an unmatched Decision once the table is exhausted.
// The result depends only on the normalized text and the table itself, so
// repeated calls with the same query yield identical Decisions.
func (t *Table) Route(q query.Query) Decision {
	for i := range t.rules {
		r := &t.rules[i]
		if !r.matches(q.Normalized) {
			continue
		}
		return Decision{
			Intent: r.Intent,
			Params: r.extract(q.Normalized),
			Rank:   r.Rank,
		}
	}
	return Unmatched()
}

// Rule returns the rule that owns the given intent tag, or false when the
// table has no such rule. Used by the orchestrator to read per-intent cache
// TTLs.
func (t *Table) Rule(intent string) (Rule, bool) {
	for i := range t.rules {
		if t.rules[i].Intent == intent {
			return t.rules[i], true
		}
	}
	return Rule{}, false
}

// Len returns the number of rules in the table.
func (t *Table) Len() int {
	return len(t.rules)
}

// Intents lists the intent tags in rank order.
func (t *Table) Intents() []string {
	out := make([]string, len(t.rules))
	for i := range t.rules {
		out[i] = t.rules[i].Intent
	}
	return out
}
