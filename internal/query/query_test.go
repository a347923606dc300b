package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	q := New("  What is the Price  of TCS? ", "user-1")

	assert.Equal(t, "  What is the Price  of TCS? ", q.Raw)
	assert.Equal(t, "what is the price of tcs?", q.Normalized)
	assert.Equal(t, "user-1", q.UserID)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "SIP of 10K", "sip of 10k"},
		{"trims", "  hello  ", "hello"},
		{"collapses whitespace", "a \t b\n\nc", "a b c"},
		{"empty", "", ""},
		{"only whitespace", " \t\n ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"p", "e", "ratio", "of", "tcs"}, Tokens("P/E ratio of TCS"))
	assert.Equal(t, []string{"sip", "10k"}, Tokens("sip, 10k!"))
	assert.Empty(t, Tokens("  ...  "))
}

func TestTokenSet(t *testing.T) {
	set := TokenSet("what is sip sip")

	assert.Len(t, set, 3)
	assert.Contains(t, set, "sip")
	assert.Contains(t, set, "what")
	assert.Contains(t, set, "is")
}
