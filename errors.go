package fold

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrFragmentNotFound indicates the surface has no fragment with
	// the requested identifier.
	ErrFragmentNotFound = errors.New("fragment not found")

	// ErrSurfaceClosed indicates an operation on a surface that is no
	// longer live. Callers treat it as a normal stop condition.
	ErrSurfaceClosed = errors.New("surface closed")
)
