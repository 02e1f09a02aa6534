// Package goldmark strips markdown markup from thought text using
// goldmark for parsing, leaving plain text suitable for a single-line
// caption.
package goldmark

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Strip parses source as markdown and returns its plain text with
// emphasis and other markup removed and surrounding whitespace
// trimmed. Block boundaries become single line breaks. Returns ""
// when nothing but markup or whitespace remains.
func Strip(source string) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}
	src := []byte(source)
	p := goldmark.DefaultParser()
	doc := p.Parse(text.NewReader(src))

	var buf bytes.Buffer
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		stripBlock(c, src, &buf)
		if c.NextSibling() != nil {
			buf.WriteByte('\n')
		}
	}
	return strings.TrimSpace(buf.String())
}

func stripBlock(node ast.Node, source []byte, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.Heading, *ast.TextBlock:
		stripInline(node, source, buf)

	case *ast.FencedCodeBlock:
		writeLines(n, source, buf)

	case *ast.CodeBlock:
		writeLines(n, source, buf)

	case *ast.List:
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			var ib bytes.Buffer
			for c := item.FirstChild(); c != nil; c = c.NextSibling() {
				stripBlock(c, source, &ib)
			}
			buf.WriteString(strings.TrimSpace(ib.String()))
			if item.NextSibling() != nil {
				buf.WriteByte('\n')
			}
		}

	case *ast.Blockquote:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			stripBlock(c, source, buf)
			if c.NextSibling() != nil {
				buf.WriteByte('\n')
			}
		}

	case *ast.ThematicBreak:
		// Markup only, dropped.

	default:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			stripBlock(c, source, buf)
		}
	}
}

func writeLines(node ast.Node, source []byte, buf *bytes.Buffer) {
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.WriteString(strings.TrimRight(string(line.Value(source)), "\n"))
		if i < lines.Len()-1 {
			buf.WriteByte('\n')
		}
	}
}

func stripInline(node ast.Node, source []byte, buf *bytes.Buffer) {
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		switch n := c.(type) {
		case *ast.Text:
			buf.Write(n.Segment.Value(source))
			if n.SoftLineBreak() {
				buf.WriteByte(' ')
			}
			if n.HardLineBreak() {
				buf.WriteByte('\n')
			}

		case *ast.String:
			buf.Write(n.Value)

		case *ast.AutoLink:
			buf.Write(n.URL(source))

		case *ast.RawHTML:
			// Markup only, dropped.

		default:
			// Emphasis, code spans, links, images: keep the inner
			// text, drop the markers.
			stripInline(c, source, buf)
		}
	}
}
