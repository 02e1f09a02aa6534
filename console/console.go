// Package console implements an in-memory document surface: an
// append-only fragment store with range queries, invisibility and
// indentation marks, and plain-text rendering. It is the substrate
// the TUI and tests run the fold controller against.
package console

import "github.com/fwojciec/fold"

// Interface compliance check.
var _ fold.Surface = (*Console)(nil)

// Console is the fragment store. Offsets reported by FragmentRange
// are byte positions in the full composition; invisibility marks are
// presentation-only and never shift offsets.
type Console struct {
	live  bool
	frags []*fragment
	byID  map[string]*fragment
}

type fragment struct {
	id          string
	requestID   int
	label       string
	body        string
	hasBody     bool
	collapsible bool
	collapsed   bool

	// Presentation marks, independent of each other.
	hidden     bool
	bodyHidden bool
	squeezeSep bool
	indent     string
}

// New creates a live, empty console.
func New() *Console {
	return &Console{live: true, byID: make(map[string]*fragment)}
}

// Close marks the surface gone. Subsequent mutations are no-ops and
// range queries report ErrSurfaceClosed.
func (c *Console) Close() {
	c.live = false
}

// Live implements fold.Surface.
func (c *Console) Live() bool {
	return c.live
}

// CreateOrUpdateFragment implements fold.Surface. New fragments are
// appended in creation order; nil optional fields leave existing
// values untouched. Providing Expanded makes the fragment
// collapsible.
func (c *Console) CreateOrUpdateFragment(requestID int, fragmentID string, f fold.Fragment) {
	if !c.live {
		return
	}
	fr, ok := c.byID[fragmentID]
	if !ok {
		fr = &fragment{id: fragmentID, requestID: requestID}
		c.frags = append(c.frags, fr)
		c.byID[fragmentID] = fr
	}
	fr.label = f.LabelLeft
	if f.Body != nil {
		fr.body = *f.Body
		fr.hasBody = true
	}
	if f.Expanded != nil {
		fr.collapsible = true
		fr.collapsed = !*f.Expanded
	}
}

// FragmentRange implements fold.Surface.
func (c *Console) FragmentRange(requestID int, fragmentID string) (fold.Range, error) {
	if !c.live {
		return fold.Range{}, fold.ErrSurfaceClosed
	}
	fr, ok := c.byID[fragmentID]
	if !ok || fr.requestID != requestID {
		return fold.Range{}, fold.ErrFragmentNotFound
	}
	for i, l := range c.layouts() {
		if c.frags[i] == fr {
			return fold.Range{
				Start:       l.start,
				BodyStart:   l.bodyStart,
				End:         l.end,
				Collapsed:   fr.collapsible && fr.collapsed,
				BlankBefore: i > 0,
			}, nil
		}
	}
	return fold.Range{}, fold.ErrFragmentNotFound
}

// SetInvisible implements fold.Surface. The range is classified
// against the current layout: a whole fragment, the separator before
// a fragment, or a fragment's body. Anything else is ignored —
// presentation is best-effort.
func (c *Console) SetInvisible(r fold.Range, invisible bool) {
	if !c.live {
		return
	}
	for i, l := range c.layouts() {
		fr := c.frags[i]
		switch {
		case r.Start == l.start && r.End == l.end:
			fr.hidden = invisible
			return
		case i > 0 && r.Start >= l.sepStart && r.End <= l.start && r.Start < r.End:
			fr.squeezeSep = invisible
			return
		case r.Start == l.bodyStart && r.End == l.end && l.bodyStart > l.start:
			fr.bodyHidden = invisible
			return
		}
	}
}

// SetIndent implements fold.Surface. The prefix applies to every
// rendered line of the fragment containing the range.
func (c *Console) SetIndent(r fold.Range, prefix string) {
	if !c.live {
		return
	}
	for i, l := range c.layouts() {
		if r.Start >= l.start && r.End <= l.end {
			c.frags[i].indent = prefix
			return
		}
	}
}

// Toggle flips the collapse state of a collapsible fragment and
// reports whether the id named one.
func (c *Console) Toggle(fragmentID string) bool {
	fr, ok := c.byID[fragmentID]
	if !ok || !fr.collapsible {
		return false
	}
	fr.collapsed = !fr.collapsed
	return true
}

// Collapsed reports the collapse state of a fragment. False for
// unknown or non-collapsible ids.
func (c *Console) Collapsed(fragmentID string) bool {
	fr, ok := c.byID[fragmentID]
	return ok && fr.collapsible && fr.collapsed
}

// CollapsibleIDs returns the ids of collapsible fragments in display
// order.
func (c *Console) CollapsibleIDs() []string {
	var ids []string
	for _, fr := range c.frags {
		if fr.collapsible {
			ids = append(ids, fr.id)
		}
	}
	return ids
}

// layout is a fragment's byte offsets in the full composition.
// sepStart marks where the separator before the fragment begins;
// bodyStart equals end when the fragment has no body.
type layout struct {
	sepStart  int
	start     int
	bodyStart int
	end       int
}

func (c *Console) layouts() []layout {
	ls := make([]layout, len(c.frags))
	off := 0
	for i, fr := range c.frags {
		sepStart := off
		if i > 0 {
			off += len(separator)
		}
		text, bodyOff := fr.compose()
		ls[i] = layout{
			sepStart:  sepStart,
			start:     off,
			bodyStart: off + bodyOff,
			end:       off + len(text),
		}
		off = ls[i].end
	}
	return ls
}

const separator = "\n\n"

// compose returns the fragment's full text and the byte offset where
// its body begins (len(text) when there is no body).
func (fr *fragment) compose() (text string, bodyOff int) {
	switch {
	case fr.hasBody && fr.label != "":
		return fr.label + "\n" + fr.body, len(fr.label) + 1
	case fr.hasBody:
		return fr.body, 0
	default:
		return fr.label, len(fr.label)
	}
}
