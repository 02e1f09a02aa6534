package fold

import (
	"strings"

	"github.com/google/uuid"
)

// Session holds the per-session grouping state. RequestCount
// identifies the current turn; Groups is the append-only history of
// every group created during the session and is never reordered or
// pruned — it is the authoritative record for toggle replay.
type Session struct {
	ID           string
	RequestCount int
	CurrentGroup *Group
	Groups       []*Group
	GroupIndex   int

	// byWrapper maps wrapper fragment identifiers to their owning
	// group, maintained at creation time. Toggle resolution goes
	// through this map rather than parsing identifiers.
	byWrapper map[string]*Group
}

// NewSession creates an empty session with a fresh identifier.
func NewSession() *Session {
	return &Session{
		ID:        uuid.NewString(),
		byWrapper: make(map[string]*Group),
	}
}

// GroupByWrapper resolves the group owning a wrapper fragment
// identifier. The second return is false for unknown identifiers.
func (s *Session) GroupByWrapper(wrapperID string) (*Group, bool) {
	g, ok := s.byWrapper[wrapperID]
	return g, ok
}

// FindOwningGroup searches groups in reverse creation order for the
// first one that registered childID. Reverse order resolves ambiguity
// toward the active phase.
func (s *Session) FindOwningGroup(childID string) (*Group, bool) {
	for i := len(s.Groups) - 1; i >= 0; i-- {
		if s.Groups[i].HasChild(childID) {
			return s.Groups[i], true
		}
	}
	return nil, false
}

func (s *Session) addGroup(g *Group) {
	s.CurrentGroup = g
	s.Groups = append(s.Groups, g)
	if s.byWrapper == nil {
		s.byWrapper = make(map[string]*Group)
	}
	s.byWrapper[g.WrapperID] = g
}

// Group is one collapsible wrapper section. It is created by the
// controller when a new phase of work begins and persists in the
// session history for the remainder of the session.
type Group struct {
	RequestID    int
	WrapperID    string
	ChildIDs     []string
	HasToolCalls bool
	Label        string

	accumulated strings.Builder
	frameIndex  int
	finalized   bool

	// animator is the owning handle to the single periodic task, nil
	// when idle. The stop function cancels the schedule.
	animator func()
}

// RegisterChild appends childID to the group's children if absent.
// Insertion order is display order.
func (g *Group) RegisterChild(childID string) {
	if !g.HasChild(childID) {
		g.ChildIDs = append(g.ChildIDs, childID)
	}
}

// registerThoughtChild puts childID in the reserved first slot.
func (g *Group) registerThoughtChild(childID string) {
	if !g.HasChild(childID) {
		g.ChildIDs = append([]string{childID}, g.ChildIDs...)
	}
}

// HasChild reports whether childID is registered.
func (g *Group) HasChild(childID string) bool {
	for _, id := range g.ChildIDs {
		if id == childID {
			return true
		}
	}
	return false
}

// AccumulatedText returns the full raw thought text contributed to
// the group, in arrival order.
func (g *Group) AccumulatedText() string {
	return g.accumulated.String()
}

// Animating reports whether the group owns a live animator.
func (g *Group) Animating() bool {
	return g.animator != nil
}

// Finalized reports whether the group has been shown as complete.
func (g *Group) Finalized() bool {
	return g.finalized
}

// stopAnimator cancels the group's animator if one is running.
// Safe to call when idle.
func (g *Group) stopAnimator() {
	if g.animator != nil {
		g.animator()
		g.animator = nil
	}
}

// clearAnimator drops the handle without cancelling, for ticks that
// terminate their own schedule.
func (g *Group) clearAnimator() {
	g.animator = nil
}
