package corpus

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// MarkdownToText renders markdown source as plain text by walking the
// parsed AST and keeping only textual content. Headings, paragraphs, list
// items, and code blocks come out as blank-line separated blocks, which the
// splitter later treats as preferred cut points.
func MarkdownToText(src []byte) string {
	doc := goldmark.New().Parser().Parse(gmtext.NewReader(src))

	var sb strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			switch n.(type) {
			case *ast.Heading, *ast.Paragraph, *ast.TextBlock:
				sb.WriteString("\n\n")
			}
			return ast.WalkContinue, nil
		}

		switch t := n.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte('\n')
			}
		case *ast.String:
			sb.Write(t.Value)
		case *ast.AutoLink:
			sb.Write(t.URL(src))
		case *ast.FencedCodeBlock:
			writeLines(&sb, src, t)
			sb.WriteString("\n")
		case *ast.CodeBlock:
			writeLines(&sb, src, t)
			sb.WriteString("\n")
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(sb.String())
}

func writeLines(sb *strings.Builder, src []byte, n ast.Node) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
}
