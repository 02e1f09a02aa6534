package fold

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/fwojciec/fold/goldmark"
)

// maxLabelGraphemes bounds the always-visible wrapper caption.
const maxLabelGraphemes = 72

const ellipsis = "…"

// updateLabel appends incoming thought text and re-derives the
// wrapper caption. When the caption cannot carry the whole thought
// (truncated or multi-line), the full stripped text moves into a
// hidden child fragment in the reserved first child slot, one click
// away behind the wrapper.
func (c *Controller) updateLabel(s *Session, g *Group, text string) {
	g.accumulated.WriteString(text)

	full := goldmark.Strip(g.accumulated.String())
	if full == "" {
		// Whitespace or markup only so far; keep the previous label.
		return
	}

	first, _, multiline := strings.Cut(full, "\n")
	short, truncated := truncateGraphemes(first, maxLabelGraphemes)
	if truncated {
		short += ellipsis
	}
	g.Label = short

	if truncated || multiline {
		thoughtID := g.WrapperID + thoughtSuffix
		body := full
		c.surface.CreateOrUpdateFragment(g.RequestID, thoughtID, Fragment{Body: &body})
		g.registerThoughtChild(thoughtID)
	}
	c.syncChildren(s, g)
}

// truncateGraphemes cuts s to at most max grapheme clusters, so a
// multi-rune emoji or combining sequence is never split.
func truncateGraphemes(s string, max int) (string, bool) {
	if uniseg.GraphemeClusterCount(s) <= max {
		return s, false
	}
	var b strings.Builder
	gr := uniseg.NewGraphemes(s)
	for n := 0; n < max && gr.Next(); n++ {
		b.WriteString(gr.Str())
	}
	return b.String(), true
}
