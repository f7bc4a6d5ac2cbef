package constraint

import "github.com/katalvlaran/gotin/tin"

// maxTunnelSteps bounds a single segment insertion against an infinite
// loop in a corrupt mesh; a correct tunnelling walk never approaches it.
const maxTunnelSteps = 1 << 16

// Option configures a single constraint insertion call.
type Option func(*config)

type config struct {
	allowCrossing bool
}

// WithCrossingAllowed permits a new segment to tunnel through an existing
// constraint instead of failing with ErrCrossingConstraint. A crossed
// constrained edge has its CONSTRAINED bit cleared and is then flipped
// like any other edge; its other markings (membership flags and indices)
// stay on the flipped edge, so the earlier constraint no longer appears as
// an edge of the mesh, and no vertex is added at the intersection
// (spec.md §9 Open Question 1 leaves "intersecting constraints" open —
// this package's resolution is documented in DESIGN.md).
func WithCrossingAllowed(allow bool) Option {
	return func(c *config) { c.allowCrossing = allow }
}

func resolveConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// LinearConstraint is an open polyline of forced edges: consecutive
// points in Points are joined by a tunnelled segment sharing one
// constraint-line index (spec.md §4.5.3).
type LinearConstraint struct {
	Points []tin.Input
}

// PolygonConstraint is a closed ring of forced border edges plus an
// optional region index painted onto every triangle enclosed by the ring
// (spec.md §4.5.2). Points must not repeat its first vertex as its last;
// AddPolygonConstraint closes the ring itself.
type PolygonConstraint struct {
	Points []tin.Input

	// RegionIndex, when >= 0, is stamped onto every triangle flood-filled
	// from the ring's linking edge as that region's interior index
	// (spec.md §4.3, §4.5.2). Leave RegionIndex at -1 to insert the
	// ring's border without labelling its interior. Points' winding
	// controls which side gets labelled "interior": counterclockwise
	// labels the ring's ordinary geometric inside, clockwise labels its
	// outside (hole semantics) — both are handled directly, since the
	// flood fill seeds from the side of the ring's first border edge that
	// the ring's own point order puts "to the left".
	RegionIndex int32
}
