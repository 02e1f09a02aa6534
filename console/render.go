package console

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Render composes the visible document as plain text: hidden
// fragments are skipped, squeezed separators collapse to a single
// line break, collapsible fragments show a ▶/▼ indicator, collapsed
// bodies are withheld, and indent prefixes apply per line. Header
// lines are fitted to width; body lines are left to the host to wrap.
func (c *Console) Render(width int) string {
	var b strings.Builder
	first := true
	for _, fr := range c.frags {
		if fr.hidden {
			continue
		}
		if !first {
			if fr.squeezeSep {
				b.WriteString("\n")
			} else {
				b.WriteString(separator)
			}
		}
		first = false
		b.WriteString(fr.render(width))
	}
	return b.String()
}

func (fr *fragment) render(width int) string {
	var lines []string

	label := fr.label
	if fr.collapsible {
		indicator := "▶"
		if !fr.collapsed {
			indicator = "▼"
		}
		label = indicator + " " + label
	}
	if label != "" {
		if width > 0 {
			label = runewidth.Truncate(label, width, "…")
		}
		lines = append(lines, label)
	}

	showBody := fr.hasBody && !fr.bodyHidden && (!fr.collapsible || !fr.collapsed)
	if showBody && fr.body != "" {
		lines = append(lines, strings.Split(fr.body, "\n")...)
	}

	if fr.indent != "" {
		for i := range lines {
			lines[i] = fr.indent + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
