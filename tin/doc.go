// Package tin implements the TIN Engine (spec.md §4.4): bootstrap,
// incremental insertion with Delaunay restoration by edge flipping, and a
// stochastic Lawson's-walk point locator, all built on the quadedge
// package's arena-backed quad-edge pool.
//
// A Tin starts empty and accumulates staged vertices until three
// non-collinear ones are available (Bootstrap); every vertex added after
// that goes through the incremental insertion path directly. The
// constraint and refine packages operate on the same *quadedge.Pool a Tin
// owns, via the exported Pool() and Kernel() accessors in types.go and the
// mutation hooks such as ForceFlip in flip.go — spec.md §2 describes the
// TIN Engine, Constraint Processor, and Ruppert Refiner as three
// components sharing one pool rather than three independent data stores.
//
// Errors:
//
//	ErrInvalidVertex      - NaN/±Inf coordinate.
//	ErrDuplicateVertex    - coincident vertex rejected (MergeReject rule).
//	ErrTinLocked          - mutation attempted on a locked Tin.
//	ErrNotBootstrapped    - operation requires bootstrap to have completed.
//	ErrIndexOutOfRange    - packed constraint index out of range.
//	ErrCollinearBootstrap - staged vertices are all collinear so far
//	                        (internal to bootstrap; AddVertex keeps staging).
//	ErrExterior           - query point outside the convex hull.
//	ErrStaleIterator      - iterator used after Clear().
package tin
