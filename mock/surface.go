// Package mock provides test doubles for fold interfaces.
package mock

import "github.com/fwojciec/fold"

// Interface compliance check.
var _ fold.Surface = (*Surface)(nil)

// Surface is a test double for fold.Surface.
// Set the function fields for the methods you need. All fields are
// nil-safe: mutations no-op, FragmentRange reports not found, and
// Live reports true, because most tests only care about one or two
// surface interactions.
type Surface struct {
	CreateOrUpdateFragmentFn func(requestID int, fragmentID string, frag fold.Fragment)
	FragmentRangeFn          func(requestID int, fragmentID string) (fold.Range, error)
	SetInvisibleFn           func(r fold.Range, invisible bool)
	SetIndentFn              func(r fold.Range, prefix string)
	LiveFn                   func() bool
}

// CreateOrUpdateFragment delegates to CreateOrUpdateFragmentFn.
func (s *Surface) CreateOrUpdateFragment(requestID int, fragmentID string, frag fold.Fragment) {
	if s.CreateOrUpdateFragmentFn != nil {
		s.CreateOrUpdateFragmentFn(requestID, fragmentID, frag)
	}
}

// FragmentRange delegates to FragmentRangeFn. Reports not found when
// FragmentRangeFn is nil.
func (s *Surface) FragmentRange(requestID int, fragmentID string) (fold.Range, error) {
	if s.FragmentRangeFn == nil {
		return fold.Range{}, fold.ErrFragmentNotFound
	}
	return s.FragmentRangeFn(requestID, fragmentID)
}

// SetInvisible delegates to SetInvisibleFn.
func (s *Surface) SetInvisible(r fold.Range, invisible bool) {
	if s.SetInvisibleFn != nil {
		s.SetInvisibleFn(r, invisible)
	}
}

// SetIndent delegates to SetIndentFn.
func (s *Surface) SetIndent(r fold.Range, prefix string) {
	if s.SetIndentFn != nil {
		s.SetIndentFn(r, prefix)
	}
}

// Live delegates to LiveFn. Reports true when LiveFn is nil.
func (s *Surface) Live() bool {
	if s.LiveFn == nil {
		return true
	}
	return s.LiveFn()
}
