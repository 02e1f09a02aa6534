package fold

import (
	"fmt"
	"log/slog"
	"time"
)

const (
	workingLabel    = "Working…"
	placeholderBody = "…"
	doneMark        = "✓"
	defaultIndent   = "  "
	thoughtSuffix   = "/thought"
	defaultInterval = 100 * time.Millisecond
)

var defaultFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Controller clusters incrementally arriving turn fragments into
// collapsible wrapper groups, animates the active group's caption,
// and keeps child visibility in step with the wrapper's collapse
// state. All methods must be called on the surface's logical thread.
type Controller struct {
	surface   Surface
	scheduler Scheduler
	enabled   bool
	interval  time.Duration
	frames    []string
	indent    string
	logger    *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithEnabled turns grouping on or off. When disabled every operation
// is a no-op and fragments render as the host produced them.
func WithEnabled(enabled bool) Option {
	return func(c *Controller) { c.enabled = enabled }
}

// WithInterval sets the spinner tick interval.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithFrames sets the spinner glyph sequence.
func WithFrames(frames []string) Option {
	return func(c *Controller) {
		if len(frames) > 0 {
			c.frames = frames
		}
	}
}

// WithIndent sets the per-line prefix applied to expanded children.
func WithIndent(prefix string) Option {
	return func(c *Controller) { c.indent = prefix }
}

// WithLogger sets the logger for best-effort failures. The default
// discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Controller rendering into surface with animator ticks
// delivered by scheduler.
func New(surface Surface, scheduler Scheduler, opts ...Option) *Controller {
	c := &Controller{
		surface:   surface,
		scheduler: scheduler,
		enabled:   true,
		interval:  defaultInterval,
		frames:    defaultFrames,
		indent:    defaultIndent,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// HandleEvent routes a turn event to the matching operation.
func (c *Controller) HandleEvent(s *Session, e Event) {
	switch e := e.(type) {
	case EventTurnStarted:
		s.RequestCount++
	case EventThoughtText:
		c.OnThoughtText(s, e.Text, e.NewPhase)
	case EventToolCallStarted:
		c.OnToolCallStarted(s)
	case EventTurnEnded:
		c.OnTurnEnded(s)
	case EventUserToggle:
		c.OnUserToggle(s, e.FragmentID)
	}
}

// OnThoughtText folds a chunk of reasoning text into the current
// group, starting a new one at turn or phase boundaries.
func (c *Controller) OnThoughtText(s *Session, text string, newPhase bool) {
	if !c.enabled {
		return
	}
	g := c.ensureWrapper(s, newPhase)
	c.updateLabel(s, g, text)
}

// OnToolCallStarted attributes a tool call to the current group,
// creating one if the turn has produced no group yet.
func (c *Controller) OnToolCallStarted(s *Session) {
	if !c.enabled {
		return
	}
	c.ensureWrapper(s, false)
	c.markToolCall(s)
}

// OnTurnEnded stops the active animator and sweeps every group not
// yet shown as finalized.
func (c *Controller) OnTurnEnded(s *Session) {
	if !c.enabled {
		return
	}
	if g := s.CurrentGroup; g != nil {
		g.stopAnimator()
	}
	c.sweepUnfinalized(s)
}

// OnUserToggle cascades a user-driven expand or collapse of a wrapper
// onto every registered child, including children added after the
// toggle last fired. Non-wrapper fragment ids are ignored.
func (c *Controller) OnUserToggle(s *Session, fragmentID string) {
	if !c.enabled {
		return
	}
	g, ok := s.GroupByWrapper(fragmentID)
	if !ok {
		return
	}
	c.syncChildren(s, g)
}

// AttachChild registers a fragment the host rendered as a child of
// the current group and syncs its visibility to the wrapper state.
func (c *Controller) AttachChild(s *Session, childID string) {
	if !c.enabled {
		return
	}
	g := s.CurrentGroup
	if g == nil {
		return
	}
	g.RegisterChild(childID)
	c.syncChildren(s, g)
}

// ensureWrapper returns the group new activity folds into. A new
// group starts at a turn boundary, or when a new thought follows tool
// calls within the same turn (a new phase of work).
func (c *Controller) ensureWrapper(s *Session, newThought bool) *Group {
	cur := s.CurrentGroup
	sameTurn := cur != nil && cur.RequestID == s.RequestCount
	if sameTurn && !(newThought && cur.HasToolCalls) {
		return cur
	}
	if sameTurn {
		c.finalize(s, cur)
		s.GroupIndex++
	} else {
		s.GroupIndex = 1
	}

	g := &Group{
		RequestID: s.RequestCount,
		WrapperID: wrapperID(s.RequestCount, s.GroupIndex),
		Label:     workingLabel,
	}
	s.addGroup(g)

	body := placeholderBody
	expanded := false
	c.surface.CreateOrUpdateFragment(g.RequestID, g.WrapperID, Fragment{
		LabelLeft: workingLabel,
		Body:      &body,
		Expanded:  &expanded,
	})
	c.startAnimator(s, g)
	return g
}

// markToolCall flags the current group as having tool calls.
// Idempotent; a no-op without a current group.
func (c *Controller) markToolCall(s *Session) {
	if g := s.CurrentGroup; g != nil {
		g.HasToolCalls = true
	}
}

// wrapperID derives the stable wrapper fragment identifier for a
// (turn, group index) pair.
func wrapperID(requestID, index int) string {
	return fmt.Sprintf("group-%d.%d", requestID, index)
}
