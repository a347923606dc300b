package router

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchat-dev/finchat/internal/query"
)

const sampleRuleYAML = `
rules:
  - rank: 1
    intent: metric
    keywords: ["p/e", "dividend yield"]
    cache_ttl: 5m
    params:
      - name: query
        pattern: "^.*$"
  - rank: 2
    intent: price
    keywords: ["price", "stock"]
    excludes: ["fund", "nav"]
`

func TestParseRules(t *testing.T) {
	rules, err := ParseRules([]byte(sampleRuleYAML))
	require.NoError(t, err)
	require.Len(t, rules, 2)

	assert.Equal(t, "metric", rules[0].Intent)
	assert.Equal(t, 5*time.Minute, rules[0].CacheTTL)
	assert.Equal(t, time.Duration(0), rules[1].CacheTTL)
	assert.Equal(t, []string{"fund", "nav"}, rules[1].Excludes)
}

func TestLoadTableRoutesLikeCodeBuiltTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yml")
	require.NoError(t, os.WriteFile(path, []byte(sampleRuleYAML), 0o644))

	loaded, err := LoadTable(path)
	require.NoError(t, err)

	built, err := NewTable([]Rule{
		{Rank: 1, Intent: "metric", Keywords: []string{"p/e", "dividend yield"}},
		{Rank: 2, Intent: "price", Keywords: []string{"price", "stock"}, Excludes: []string{"fund", "nav"}},
	})
	require.NoError(t, err)

	for _, q := range []string{"p/e ratio of TCS", "price of TCS stock", "nav of XYZ fund", "hello"} {
		lhs := loaded.Route(query.New(q, "u1"))
		rhs := built.Route(query.New(q, "u1"))
		assert.Equal(t, rhs.Intent, lhs.Intent, "query %q", q)
		assert.Equal(t, rhs.Rank, lhs.Rank, "query %q", q)
	}
}

func TestParseRulesErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", ":\n  - ["},
		{"no rules", "rules: []"},
		{"bad ttl", "rules:\n  - rank: 1\n    intent: a\n    keywords: [x]\n    cache_ttl: soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRules([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadTableRejectsInvalidRules(t *testing.T) {
	// Parses fine but fails table validation: duplicate ranks.
	path := filepath.Join(t.TempDir(), "rules.yml")
	data := "rules:\n  - {rank: 1, intent: a, keywords: [x]}\n  - {rank: 1, intent: b, keywords: [y]}\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := LoadTable(path)
	assert.Error(t, err)
}

func TestLoadTableMissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}
