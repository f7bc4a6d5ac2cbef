package constraint

import (
	"fmt"

	"github.com/katalvlaran/gotin/quadedge"
	"github.com/katalvlaran/gotin/tin"
)

// AddPolygonConstraint forces every edge of pc's ring into t as region
// border edges sharing one constraint index, then (if pc.RegionIndex is
// non-negative) flood-fills the ring's interior with that same index
// (spec.md §4.5.2).
func AddPolygonConstraint(t *tin.Tin, pc PolygonConstraint, opts ...Option) error {
	if !t.IsBootstrapped() {
		return tin.ErrNotBootstrapped
	}
	if len(pc.Points) < 3 {
		return ErrUnclosedPolygon
	}

	idx := t.NextConstraintIndex()
	n := len(pc.Points)
	var linkingEdge int32
	haveLinking := false

	for i := 0; i < n; i++ {
		a, b := pc.Points[i], pc.Points[(i+1)%n]
		e, err := insertBorderSegment(t, a, b, idx, opts...)
		if err != nil {
			return fmt.Errorf("constraint: polygon border %d: %w", i, err)
		}
		if !haveLinking {
			linkingEdge, haveLinking = e, true
		}
	}
	t.RecordConstraint(idx, linkingEdge, true)

	if pc.RegionIndex >= 0 {
		if err := floodFillRegion(t, linkingEdge, pc.RegionIndex); err != nil {
			return fmt.Errorf("constraint: region flood fill: %w", err)
		}
	}

	return nil
}

// floodFillRegion stamps regionIdx as the region-interior index on every
// real triangle reachable, without crossing a REGION_BORDER edge, from
// linkingEdge's own face (spec.md §4.5.2 step 2: "flood-fill from
// linkingEdge.dual.forward, the first interior triangle").
//
// linkingEdge is stored oriented consecutive-ring-point-to-next-point
// (spec.md §4.5.2 step 1: "oriented such that the region interior is to
// the left"), and this package's Next walks a directed edge's own CCW
// face loop, so linkingEdge's own face is already the face to its left —
// no separate winding computation is needed: a clockwise ring's points
// still produce a linkingEdge whose left-hand face is the ring's
// geometric exterior, which is exactly the "interior" hole semantics
// spec.md §3 requires. A hull-edge linkingEdge never lands this seed on
// the ghost side, since attachGhostTriangle always hangs the ghost face
// off Dual of the real hull edge, never off the real edge itself.
func floodFillRegion(t *tin.Tin, linkingEdge int32, regionIdx int32) error {
	pool := t.Pool()

	visited := make(map[int32]bool)
	queue := []int32{linkingEdge}

	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		if pool.IsGhost(e) {
			continue
		}

		tri := pool.Triangle(e)
		key := faceKey(tri)
		if visited[key] {
			continue
		}
		visited[key] = true

		for _, side := range tri {
			if pool.IsRegionBorder(side) {
				continue
			}
			if err := pool.SetRegionInteriorIndex(side, regionIdx); err != nil {
				return err
			}
			if neighbor := quadedge.Dual(side); !pool.IsGhost(neighbor) {
				queue = append(queue, neighbor)
			}
		}
	}

	return nil
}

// faceKey identifies e's enclosing face uniquely regardless of which of
// its three directed edges e names, by the smallest of the three.
func faceKey(tri [3]int32) int32 {
	min := tri[0]
	for _, e := range tri[1:] {
		if e < min {
			min = e
		}
	}

	return min
}
