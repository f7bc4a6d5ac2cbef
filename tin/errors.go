package tin

import (
	"errors"

	"github.com/katalvlaran/gotin/quadedge"
)

// Sentinel errors surfaced across the TIN Engine boundary (spec.md §6, §7).
var (
	// ErrInvalidVertex indicates a NaN/±Inf coordinate was rejected before
	// any mutation occurred.
	ErrInvalidVertex = errors.New("tin: invalid vertex coordinates")

	// ErrDuplicateVertex indicates a coincident vertex was rejected rather
	// than merged (only possible when the configured MergeRule is
	// MergeReject).
	ErrDuplicateVertex = errors.New("tin: duplicate vertex")

	// ErrTinLocked indicates a mutator was called on a locked TIN.
	ErrTinLocked = errors.New("tin: locked")

	// ErrNotBootstrapped indicates an operation that requires a
	// bootstrapped TIN was called before bootstrap completed.
	ErrNotBootstrapped = errors.New("tin: not bootstrapped")

	// ErrIndexOutOfRange indicates a packed constraint index exceeded its
	// field width; re-exported from quadedge for callers that only import
	// tin.
	ErrIndexOutOfRange = quadedge.ErrIndexOutOfRange

	// ErrCollinearBootstrap indicates every staged vertex is collinear
	// within the kernel's orientation threshold, so bootstrap cannot pick
	// a non-degenerate initial triangle yet. AddVertex does not return it:
	// it keeps the vertex staged and reports success.
	ErrCollinearBootstrap = errors.New("tin: all staged vertices are collinear")

	// ErrExterior indicates a query point lies outside the convex hull.
	ErrExterior = errors.New("tin: point is exterior to the triangulation")

	// ErrStaleIterator indicates a TriangleIterator was used after a
	// Clear() changed the underlying pool's epoch.
	ErrStaleIterator = errors.New("tin: iterator is stale after Clear")
)
