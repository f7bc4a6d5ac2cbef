package tin

import (
	"fmt"
	"sync/atomic"

	"github.com/katalvlaran/gotin/kernel"
	"github.com/katalvlaran/gotin/quadedge"
)

// Location classifies where a query point landed relative to the
// triangulation (spec.md §4.4.2).
type Location int

const (
	// LocInterior is strictly inside a real triangle.
	LocInterior Location = iota
	// LocOnEdge is on a real edge of the triangle the walk ended in: the
	// kernel's Orient reports zero for that edge and the point.
	LocOnEdge
	// LocOnVertex coincides with an existing vertex.
	LocOnVertex
	// LocExterior is outside the convex hull.
	LocExterior
)

// maxWalkSteps bounds a single Locate call against an infinite loop in a
// corrupt mesh.
const maxWalkSteps = 1 << 20

// Navigator performs stochastic Lawson's-walk point location against a
// Tin (spec.md §4.4.2). Multiple Navigators may run concurrently against
// a locked Tin; none may run concurrently with mutation.
type Navigator struct {
	t *Tin
}

// Navigator returns a point locator bound to t.
func (t *Tin) Navigator() *Navigator { return &Navigator{t: t} }

// Locate walks from the Tin's warm-start search edge toward pt, returning
// the edge the walk ended on and how pt relates to it. The walk resolves
// orientation ties between multiple valid crossing edges by drawing from
// the Tin's seeded RNG (spec.md §5 determinism: the same seed always
// produces the same tie-break sequence).
func (n *Navigator) Locate(pt kernel.Point) (int32, Location, error) {
	t := n.t
	if !t.IsBootstrapped() {
		return 0, 0, ErrNotBootstrapped
	}

	pool := t.pool
	k := t.kernel
	e, _ := t.SearchEdge()

	atomic.AddInt64(&t.diag.walkCount, 1)

	for steps := 0; ; steps++ {
		atomic.AddInt64(&t.diag.totalSteps, 1)
		if steps > maxWalkSteps {
			return 0, 0, fmt.Errorf("tin: locate: walk exceeded %d steps", maxWalkSteps)
		}

		if pool.IsGhost(e) {
			next, loc, done, result, err := n.crossGhost(e, pt)
			if err != nil {
				return 0, 0, err
			}
			if done {
				return result, loc, nil
			}
			e = next
			continue
		}

		tri := pool.Triangle(e)
		av, bv, cv := pool.Orig(tri[0]), pool.Orig(tri[1]), pool.Orig(tri[2])
		a, b, c := av.Point(), bv.Point(), cv.Point()

		if edge, ok := n.vertexHit(tri, [3]kernel.Point{a, b, c}, pt); ok {
			return edge, LocOnVertex, nil
		}

		o0 := k.Orient(a, b, pt)
		o1 := k.Orient(b, c, pt)
		o2 := k.Orient(c, a, pt)

		if o0 >= 0 && o1 >= 0 && o2 >= 0 {
			switch {
			case o0 == 0:
				return tri[0], LocOnEdge, nil
			case o1 == 0:
				return tri[1], LocOnEdge, nil
			case o2 == 0:
				return tri[2], LocOnEdge, nil
			default:
				t.SetSearchEdge(tri[0])
				return tri[0], LocInterior, nil
			}
		}

		var negatives []int32
		if o0 < 0 {
			negatives = append(negatives, tri[0])
		}
		if o1 < 0 {
			negatives = append(negatives, tri[1])
		}
		if o2 < 0 {
			negatives = append(negatives, tri[2])
		}

		pick := negatives[0]
		if len(negatives) > 1 {
			t.mu.Lock()
			pick = negatives[t.rng.Intn(len(negatives))]
			t.mu.Unlock()
		}
		e = quadedge.Dual(pick)
	}
}

// vertexHit reports whether pt coincides (within the kernel's vertex
// coincidence threshold) with one of tri's three vertices.
func (n *Navigator) vertexHit(tri [3]int32, pts [3]kernel.Point, pt kernel.Point) (int32, bool) {
	thresh := n.t.kernel.VertexCoincidenceThreshold()
	for i, v := range pts {
		dx := v.X - pt.X
		dy := v.Y - pt.Y
		if dx*dx+dy*dy <= thresh*thresh {
			return tri[i], true
		}
	}

	return 0, false
}

// crossGhost handles the walk stepping into an exterior (ghost) face. It
// checks pt against the ghost wedge's one real hull edge: if pt is still
// on the interior side, the walk re-enters the mesh through that edge; if
// pt is exactly on it, location resolves to that boundary edge; otherwise
// the walk continues around the hull looking for the wedge that does
// contain pt, declaring LocExterior once every wedge has been checked.
func (n *Navigator) crossGhost(e int32, pt kernel.Point) (next int32, loc Location, done bool, result int32, err error) {
	t := n.t
	pool := t.pool
	k := t.kernel

	hull := ghostHullEdge(pool, e)
	cur := hull
	for steps := 0; steps < hullGuardLimit; steps++ {
		o := k.Orient(pool.Orig(cur).Point(), pool.Dest(cur).Point(), pt)
		switch {
		case o > 0:
			t.SetSearchEdge(quadedge.Dual(cur))
			return quadedge.Dual(cur), 0, false, 0, nil
		case o == 0:
			return 0, LocOnEdge, true, cur, nil
		}
		cur = nextHullEdge(pool, cur)
		if cur == hull {
			break
		}
	}

	atomic.AddInt64(&t.diag.exteriorWalks, 1)

	return 0, LocExterior, true, e, nil
}
