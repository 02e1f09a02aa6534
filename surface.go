package fold

// Fragment describes an upsert of a renderable unit. LabelLeft is the
// single-line header text. Body and Expanded are optional: nil fields
// leave the existing value untouched. Providing Expanded makes the
// fragment collapsible.
type Fragment struct {
	LabelLeft string
	Body      *string
	Expanded  *bool
}

// Range is a snapshot of a fragment's position in the surface
// document, in byte offsets over the full composition (invisibility
// marks do not shift offsets). BodyStart equals End when the fragment
// has no body. BlankBefore reports whether a blank separator line
// precedes the fragment.
type Range struct {
	Start       int
	BodyStart   int
	End         int
	Collapsed   bool
	BlankBefore bool
}

// Surface is the document substrate the controller renders into.
// Implementations are expected to fail silently once the surface is
// gone; Live gates every mutation the controller performs.
type Surface interface {
	// CreateOrUpdateFragment idempotently upserts a fragment within a
	// turn. It is a no-op when the surface is not live.
	CreateOrUpdateFragment(requestID int, fragmentID string, frag Fragment)

	// FragmentRange resolves a fragment's current range. It returns
	// ErrFragmentNotFound for unknown identifiers and ErrSurfaceClosed
	// when the surface is gone.
	FragmentRange(requestID int, fragmentID string) (Range, error)

	// SetInvisible marks or clears invisibility on a range. A range
	// covering a whole fragment hides the fragment; a range inside the
	// separator before a fragment squeezes the blank line; a range
	// covering a fragment's body hides the body. Marks set through
	// different ranges are independent.
	SetInvisible(r Range, invisible bool)

	// SetIndent applies a per-line indent prefix to the fragment
	// containing the range.
	SetIndent(r Range, prefix string)

	// Live reports whether the surface still exists.
	Live() bool
}
