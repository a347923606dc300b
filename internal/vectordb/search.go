package vectordb

import (
	"fmt"
	"strings"
)

// FormatMatches renders retrieval matches as human-readable text.
func FormatMatches(matches []Match) string {
	if len(matches) == 0 {
		return "No matching passages found."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d passage(s):\n\n", len(matches)))

	for i, m := range matches {
		sb.WriteString(fmt.Sprintf("--- Passage %d (score: %.4f) ---\n", i+1, m.Score))
		sb.WriteString(fmt.Sprintf("Source: %s (chunk %d)\n", m.Chunk.DocID, m.Chunk.Seq))
		sb.WriteString("\n")
		sb.WriteString(m.Chunk.Text)
		sb.WriteString("\n\n")
	}

	return sb.String()
}
