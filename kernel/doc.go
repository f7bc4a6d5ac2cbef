// Package kernel provides the geometric predicates that every other gotin
// package builds on: orientation, in-circle, and circumcircle, each backed
// by a double-precision fast path and a bounded extended-precision fallback
// for the cases where the fast path's rounding error could flip the sign.
//
// Kernel is stateless with respect to geometry (every predicate is a pure
// function of its inputs); the only state it carries is a nominal point
// spacing used to derive tolerance thresholds, and a diagnostic counter
// tracking how often the extended-precision path fires.
//
// Errors:
//
//	ErrNonPositiveSpacing - nominal point spacing must be > 0.
package kernel
