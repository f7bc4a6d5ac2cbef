package constraint

import "errors"

// Sentinel errors surfaced across the constraint processor's boundary
// (spec.md §6, §7).
var (
	// ErrCrossingConstraint indicates a requested segment would cross an
	// already-constrained edge, and the caller did not opt into resolving
	// the crossing (spec.md §4.5.1: "a constraint may not cross another
	// constraint").
	ErrCrossingConstraint = errors.New("constraint: segment crosses an existing constraint")

	// ErrUnclosedPolygon indicates AddPolygonConstraint was given fewer
	// than three points (spec.md §4.5.2). Points are not checked for
	// distinctness here; a repeated point surfaces as ErrDegenerateSegment.
	ErrUnclosedPolygon = errors.New("constraint: polygon ring is not closed")

	// ErrDegenerateSegment indicates a linear constraint's two endpoints
	// are coincident within the kernel's tolerance, so no segment exists
	// to insert.
	ErrDegenerateSegment = errors.New("constraint: segment endpoints coincide")

	// ErrNoPath indicates the tunnelling walk from one endpoint could not
	// reach the other, which only happens against a corrupt mesh (an
	// endpoint not actually present in the Tin's pool).
	ErrNoPath = errors.New("constraint: no tunnelling path between endpoints")
)
