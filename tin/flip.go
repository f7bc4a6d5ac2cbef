package tin

import (
	"fmt"

	"github.com/katalvlaran/gotin/quadedge"
)

// maxFlipSteps bounds restoreDelaunay against an infinite loop in a
// corrupt mesh; a correct incremental insertion never approaches it.
const maxFlipSteps = 1 << 20

// restoreDelaunay drains a worklist of candidate edges, flipping any that
// fail the in-circle test against their two opposite apexes and
// re-queuing the four edges newly exposed by each flip (spec.md §4.4.4).
// CONSTRAINED edges are never flip candidates (spec.md §4.5.4): a forced
// edge stays forced regardless of local Delaunay-ness.
func (t *Tin) restoreDelaunay(seed []int32) {
	pool := t.pool
	k := t.kernel

	queue := make([]int32, 0, len(seed)*2)
	queued := make(map[int32]bool, len(seed)*2)
	push := func(e int32) {
		base := quadedge.BaseRef(e)
		if queued[base] {
			return
		}
		queued[base] = true
		queue = append(queue, e)
	}
	for _, e := range seed {
		push(e)
	}

	for steps := 0; len(queue) > 0; steps++ {
		if steps > maxFlipSteps {
			return
		}

		e := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		queued[quadedge.BaseRef(e)] = false

		if pool.IsConstrained(e) || pool.IsGhost(e) || pool.IsGhost(quadedge.Dual(e)) {
			continue
		}

		de := quadedge.Dual(e)
		a, b := pool.Orig(e), pool.Orig(de)
		c := pool.Orig(pool.Next(pool.Next(e)))
		d := pool.Orig(pool.Next(pool.Next(de)))

		if k.InCircle(a.Point(), b.Point(), c.Point(), d.Point()) <= 0 {
			continue
		}

		ad := pool.Next(de)
		bc := pool.Next(e)
		ca := pool.Next(bc)
		db := pool.Next(ad)

		flipEdge(pool, e)

		push(ad)
		push(bc)
		push(ca)
		push(db)
	}
}

// RestoreDelaunayAround re-queues edges into the ordinary in-circle flip
// pass. The constraint package calls this after tunnelling a forced
// segment into place, to relax whatever non-constrained edges the
// tunnelling disturbed back toward Delaunay (spec.md §4.5.4: a constrained
// triangulation is only required to be Delaunay away from its forced
// edges).
func (t *Tin) RestoreDelaunayAround(edges []int32) { t.restoreDelaunay(edges) }

// ForceFlip swaps e's diagonal unconditionally, bypassing the in-circle
// test restoreDelaunay normally requires. Exposed for the constraint
// package's segment-tunnelling algorithm, which must clear a forced
// segment's path regardless of local Delaunay-ness; e must border two real
// (non-ghost) triangles and must not itself be constrained.
func (t *Tin) ForceFlip(e int32) error {
	if t.pool.IsGhost(e) || t.pool.IsGhost(quadedge.Dual(e)) {
		return fmt.Errorf("tin: cannot flip a hull edge")
	}
	if t.pool.IsConstrained(e) {
		return fmt.Errorf("tin: cannot flip a constrained edge")
	}

	flipEdge(t.pool, e)

	return nil
}

// flipEdge replaces diagonal e=A->B of the quadrilateral A,D,B,C (apex C
// on e's side, apex D on Dual(e)'s side) with the other diagonal D->C,
// reusing e's own quad-edge pair so no new edge is allocated.
func flipEdge(p *quadedge.Pool, e int32) {
	de := quadedge.Dual(e)
	bc := p.Next(e)
	ca := p.Next(bc)
	ad := p.Next(de)
	db := p.Next(ad)

	c := p.Orig(ca)
	d := p.Orig(db)

	p.SetOrig(e, d)
	p.SetOrig(de, c)

	spliceTriangle(p, ad, e, ca)
	spliceTriangle(p, db, bc, de)
}
