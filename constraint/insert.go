package constraint

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/gotin/kernel"
	"github.com/katalvlaran/gotin/quadedge"
	"github.com/katalvlaran/gotin/tin"
)

// pinwheelLimit bounds every pinwheel walk this package performs, mirroring
// quadedge.Pool.Pinwheel's own limit parameter.
const pinwheelLimit = 1 << 16

// InsertSegment forces a single segment between a and b into t, tunnelling
// through whatever edges currently cross it (spec.md §4.5.1). It mints and
// returns a fresh constraint index recorded against the resulting edge.
func InsertSegment(t *tin.Tin, a, b tin.Input, opts ...Option) (int32, error) {
	if !t.IsBootstrapped() {
		return 0, tin.ErrNotBootstrapped
	}

	idx := t.NextConstraintIndex()
	e, err := insertLineSegment(t, a, b, idx, opts...)
	if err != nil {
		return 0, err
	}
	t.RecordConstraint(idx, e, false)

	return idx, nil
}

// AddLinearConstraint forces every consecutive pair of points in lc.Points
// into t as one open polyline, sharing a single constraint-line index
// (spec.md §4.5.3).
func AddLinearConstraint(t *tin.Tin, lc LinearConstraint, opts ...Option) error {
	if !t.IsBootstrapped() {
		return tin.ErrNotBootstrapped
	}
	if len(lc.Points) < 2 {
		return ErrDegenerateSegment
	}

	idx := t.NextConstraintIndex()
	var linkingEdge int32
	haveLinking := false

	for i := 0; i+1 < len(lc.Points); i++ {
		e, err := insertLineSegment(t, lc.Points[i], lc.Points[i+1], idx, opts...)
		if err != nil {
			return fmt.Errorf("constraint: linear segment %d: %w", i, err)
		}
		if !haveLinking {
			linkingEdge, haveLinking = e, true
		}
	}
	t.RecordConstraint(idx, linkingEdge, false)

	return nil
}

func insertLineSegment(t *tin.Tin, a, b tin.Input, lineIdx int32, opts ...Option) (int32, error) {
	cfg := resolveConfig(opts)

	va, err := resolveVertex(t, a)
	if err != nil {
		return 0, err
	}
	vb, err := resolveVertex(t, b)
	if err != nil {
		return 0, err
	}
	if va == vb {
		return 0, ErrDegenerateSegment
	}

	return tunnel(t, va, vb, cfg.allowCrossing, func(pool *quadedge.Pool, e int32) error {
		return pool.SetLineIndex(e, lineIdx)
	})
}

func insertBorderSegment(t *tin.Tin, a, b tin.Input, regionIdx int32, opts ...Option) (int32, error) {
	cfg := resolveConfig(opts)

	va, err := resolveVertex(t, a)
	if err != nil {
		return 0, err
	}
	vb, err := resolveVertex(t, b)
	if err != nil {
		return 0, err
	}
	if va == vb {
		return 0, ErrDegenerateSegment
	}

	return tunnel(t, va, vb, cfg.allowCrossing, func(pool *quadedge.Pool, e int32) error {
		return pool.SetBorderIndex(e, regionIdx)
	})
}

// resolveVertex ensures pt is present as a real vertex in t (inserting it,
// or merging it into a coincident existing vertex per the Tin's configured
// MergeRule) and returns that vertex's pointer identity.
func resolveVertex(t *tin.Tin, pt tin.Input) (*quadedge.Vertex, error) {
	if err := t.AddVertex(pt.X, pt.Y, pt.Z); err != nil && !errors.Is(err, tin.ErrDuplicateVertex) {
		return nil, fmt.Errorf("constraint: resolveVertex: %w", err)
	}

	e, loc, err := t.Navigator().Locate(kernel.Point{X: pt.X, Y: pt.Y})
	if err != nil {
		return nil, err
	}
	if loc != tin.LocOnVertex {
		return nil, fmt.Errorf("constraint: resolveVertex: (%g, %g) did not resolve to a vertex", pt.X, pt.Y)
	}

	return t.Pool().Orig(e), nil
}

// tunnel forces the direct edge a->b to exist by repeatedly flipping
// whatever edge currently crosses segment ab, then applies stamp to the
// resulting edge (spec.md §4.5.1). Each flip is the same in-circle-driven
// diagonal swap a Delaunay restoration pass performs; tunnelling differs
// only in applying it unconditionally to edges the forced segment crosses
// rather than ones that merely fail the in-circle test.
func tunnel(t *tin.Tin, a, b *quadedge.Vertex, allowCrossing bool, stamp func(*quadedge.Pool, int32) error) (int32, error) {
	pool := t.Pool()
	k := t.Kernel()
	var touched, uncrossed []int32

	// rollback undoes every flip recorded in touched, in reverse order. A
	// quad-edge flip reuses its edge's own id for the swapped diagonal, so
	// re-flipping the same id is its own inverse; undoing in LIFO order
	// mirrors how each flip's quadrilateral depended on the mesh state the
	// prior flip left behind. Edges in uncrossed (constrained edges cleared
	// under allowCrossing) get their CONSTRAINED bit back once the flips are
	// undone. Called on every failure exit so a failed
	// InsertSegment/AddLinearConstraint/AddPolygonConstraint never leaves
	// the mesh topology observably mutated (spec.md §7).
	rollback := func() {
		for i := len(touched) - 1; i >= 0; i-- {
			_ = t.ForceFlip(touched[i])
		}
		for _, e := range uncrossed {
			pool.SetConstrained(e, true)
		}
	}

	for step := 0; step < maxTunnelSteps; step++ {
		if e, ok := findDirectEdge(pool, a, b); ok {
			if err := stamp(pool, e); err != nil {
				rollback()
				return 0, err
			}
			a.MarkConstraintMember()
			b.MarkConstraintMember()
			t.MarkNonConformant()
			t.RestoreDelaunayAround(touched)

			return e, nil
		}

		cross, ok := findCrossingEdge(pool, k, a, b)
		if !ok {
			rollback()
			return 0, ErrNoPath
		}
		if pool.IsConstrained(cross) {
			if !allowCrossing {
				rollback()
				return 0, ErrCrossingConstraint
			}
			pool.SetConstrained(cross, false)
			uncrossed = append(uncrossed, cross)
		}
		if err := t.ForceFlip(cross); err != nil {
			rollback()
			return 0, fmt.Errorf("constraint: tunnelling: %w", err)
		}
		touched = append(touched, cross)
	}

	rollback()
	return 0, fmt.Errorf("constraint: tunnelling exceeded %d steps", maxTunnelSteps)
}

// edgeAt returns some directed edge whose origin is v, found by a linear
// scan of the pool's allocated pairs. Segment insertion is not a hot path,
// so this trades an O(live pairs) scan for not needing a vertex->edge
// index anywhere in the pool.
func edgeAt(pool *quadedge.Pool, v *quadedge.Vertex) (int32, bool) {
	for _, base := range pool.IterAllocated() {
		if pool.Orig(base) == v {
			return base, true
		}
		if pool.Orig(quadedge.Dual(base)) == v {
			return quadedge.Dual(base), true
		}
	}

	return 0, false
}

// findDirectEdge reports the directed edge a->b, if one already exists.
func findDirectEdge(pool *quadedge.Pool, a, b *quadedge.Vertex) (int32, bool) {
	anchor, ok := edgeAt(pool, a)
	if !ok {
		return 0, false
	}
	for _, e := range pool.Pinwheel(anchor, pinwheelLimit) {
		if pool.Dest(e) == b {
			return e, true
		}
	}

	return 0, false
}

// findCrossingEdge finds the first edge segment a->b crosses, by walking
// the pinwheel of triangles fanned around a until it finds the one wedge
// whose angular span contains the direction toward b; that wedge's far
// edge (opposite a) is the crossing (standard incremental "visibility
// march" used by segment-forcing CDT algorithms).
//
// Pool.Pinwheel walks its spokes counterclockwise, so for consecutive
// spokes a->p, a->q bounding one triangle, b falls inside that wedge
// exactly when b is left of (or on) ray a->p and right of (or on) ray
// a->q: b is swept through going counterclockwise from p but not yet past
// q.
func findCrossingEdge(pool *quadedge.Pool, k *kernel.Kernel, a, b *quadedge.Vertex) (int32, bool) {
	anchor, ok := edgeAt(pool, a)
	if !ok {
		return 0, false
	}

	ring := pool.Pinwheel(anchor, pinwheelLimit)
	n := len(ring)
	for i := 0; i < n; i++ {
		e1 := ring[i]
		e2 := ring[(i+1)%n]
		if pool.IsGhost(e1) || pool.IsGhost(e2) {
			continue
		}

		p := pool.Dest(e1)
		q := pool.Dest(e2)
		o1 := k.Orient(a.Point(), p.Point(), b.Point())
		o2 := k.Orient(a.Point(), q.Point(), b.Point())
		if o1 >= 0 && o2 <= 0 {
			return pool.Next(e1), true
		}
	}

	return 0, false
}
