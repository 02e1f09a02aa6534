package fold

// startAnimator schedules the spinner for g. Any animator running for
// the session is stopped first, so at most one is ever live.
func (c *Controller) startAnimator(s *Session, g *Group) {
	for _, prev := range s.Groups {
		if prev != g {
			prev.stopAnimator()
		}
	}
	g.frameIndex = 0
	// Capture only the stable wrapper id; each tick re-resolves the
	// live group through the session so a replaced group is never
	// mutated through a stale reference.
	id := g.WrapperID
	g.animator = c.scheduler.Every(c.interval, func() bool {
		return c.tick(s, id)
	})
}

// tick advances the spinner one frame and pushes the composed caption
// to the surface. Returning false cancels the schedule. Animation is
// best-effort: a finalized group, a dead surface, or a panic stops
// the animator instead of propagating to the event layer.
func (c *Controller) tick(s *Session, wrapperID string) (alive bool) {
	g, ok := s.GroupByWrapper(wrapperID)
	if !ok || g.finalized {
		return false
	}
	if !c.surface.Live() {
		g.clearAnimator()
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("spinner tick failed", "wrapper", wrapperID, "reason", r)
			g.clearAnimator()
			alive = false
		}
	}()

	frame := c.frames[g.frameIndex%len(c.frames)]
	g.frameIndex++
	c.surface.CreateOrUpdateFragment(g.RequestID, g.WrapperID, Fragment{
		LabelLeft: frame + " " + g.Label,
	})
	return true
}

// finalize stops the group's animator and shows the completion
// marker. A finalized group never regains an active animator.
func (c *Controller) finalize(s *Session, g *Group) {
	g.stopAnimator()
	g.finalized = true
	c.surface.CreateOrUpdateFragment(g.RequestID, g.WrapperID, Fragment{
		LabelLeft: doneMark + " " + g.Label,
	})
	if len(g.ChildIDs) > 0 {
		c.syncChildren(s, g)
	}
}

// sweepUnfinalized pushes the completion marker onto every group not
// yet shown as finalized. Turn-end safety net; idempotent with
// finalize. A pending tick for a swept group sees the finalized flag
// and cancels itself.
func (c *Controller) sweepUnfinalized(s *Session) {
	for _, g := range s.Groups {
		if g.finalized {
			continue
		}
		g.finalized = true
		c.surface.CreateOrUpdateFragment(g.RequestID, g.WrapperID, Fragment{
			LabelLeft: doneMark + " " + g.Label,
		})
		if len(g.ChildIDs) > 0 {
			c.syncChildren(s, g)
		}
	}
}
