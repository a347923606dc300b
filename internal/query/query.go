// Package query defines the immutable query value passed through the
// routing and retrieval pipeline.
package query

import (
	"strings"
	"unicode"
)

// Query carries one user question through the pipeline. Construct it with
// New and treat it as immutable afterwards.
type Query struct {
	Raw        string // Text exactly as the user typed it.
	Normalized string // Lower-cased, trimmed, inner whitespace collapsed.
	UserID     string // Opaque user/session identifier.
}

// New builds a Query from raw text. The normalized form is what rule
// predicates, cache keys, and lexical scoring operate on.
func New(raw, userID string) Query {
	return Query{
		Raw:        raw,
		Normalized: Normalize(raw),
		UserID:     userID,
	}
}

// Normalize lower-cases, trims, and collapses runs of whitespace to a
// single space.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Tokens splits normalized text into lower-cased alphanumeric tokens.
// Non-alphanumeric runes act as separators, so "p/e ratio" yields
// ["p", "e", "ratio"].
func Tokens(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// TokenSet returns the distinct tokens of s.
func TokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokens(s) {
		set[tok] = struct{}{}
	}
	return set
}
