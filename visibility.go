package fold

// syncChildren cascades the wrapper's current collapse state onto
// every registered child. Idempotent: re-running it with no state
// change leaves the surface as it was.
func (c *Controller) syncChildren(s *Session, g *Group) {
	if !c.surface.Live() {
		return
	}
	wr, err := c.surface.FragmentRange(g.RequestID, g.WrapperID)
	if err != nil {
		return
	}

	// The wrapper body is a placeholder, never meaningful content.
	// Keep it hidden regardless of collapse state; a surface with
	// native bodyless collapsibles would not need this.
	if wr.BodyStart < wr.End {
		c.surface.SetInvisible(Range{Start: wr.BodyStart, End: wr.End}, true)
	}

	for _, id := range g.ChildIDs {
		r, err := c.surface.FragmentRange(g.RequestID, id)
		if err != nil {
			continue
		}
		whole := Range{Start: r.Start, End: r.End}
		if wr.Collapsed {
			c.surface.SetInvisible(whole, true)
			continue
		}
		c.surface.SetInvisible(whole, false)
		c.surface.SetIndent(whole, c.indent)
		if r.BlankBefore {
			// Squeeze the double line-break before the child down to
			// a single one.
			c.surface.SetInvisible(Range{Start: r.Start - 1, End: r.Start}, true)
		}
	}
}
