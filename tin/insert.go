package tin

import (
	"github.com/katalvlaran/gotin/quadedge"
)

// spliceTriangle threads three half-edges into a single CCW face loop:
// Next(e1)=e2, Next(e2)=e3, Next(e3)=e1 (and the matching Prev pointers,
// via Pool.Splice).
func spliceTriangle(p *quadedge.Pool, e1, e2, e3 int32) {
	p.Splice(e1, e2)
	p.Splice(e2, e3)
	p.Splice(e3, e1)
}

// insertVertex routes v through whichever of the four incremental
// insertion cases spec.md §4.4.3 names applies at its location.
func (t *Tin) insertVertex(v *quadedge.Vertex) error {
	nav := t.Navigator()
	e, loc, err := nav.Locate(v.Point())
	if err != nil {
		return err
	}

	switch loc {
	case LocOnVertex:
		return t.mergeVertex(t.pool.Orig(e), v)
	case LocOnEdge:
		return t.insertOnEdge(e, v)
	case LocExterior:
		return t.insertHullExtension(e, v)
	default: // LocInterior
		return t.insertInterior(e, v)
	}
}

// mergeVertex resolves a newly located vertex that coincides with an
// existing one, per the Tin's configured MergeRule (spec.md §9 Open
// Question 3).
func (t *Tin) mergeVertex(existing, incoming *quadedge.Vertex) error {
	switch t.mergeRule {
	case MergeReject:
		return ErrDuplicateVertex
	case MergeReplace:
		existing.UpdateZ(incoming.Z)
	case MergeAverage:
		existing.UpdateZ((existing.Z + incoming.Z) / 2)
	case MergeKeepFirst:
		// existing wins outright; nothing to update.
	}

	t.mu.Lock()
	t.appendMergeLog(MergeRecord{Survivor: existing, Absorbed: incoming, Rule: t.mergeRule})
	t.mu.Unlock()

	return nil
}

// insertInterior splits the triangle bounded by e into three, connecting
// v to each of its three corners (spec.md §4.4.3 "interior split").
func (t *Tin) insertInterior(e int32, v *quadedge.Vertex) error {
	pool := t.pool

	tri := pool.Triangle(e)
	ab, bc, ca := tri[0], tri[1], tri[2]
	a, b, c := pool.Orig(ab), pool.Orig(bc), pool.Orig(ca)

	va := pool.Allocate(v, a)
	vb := pool.Allocate(v, b)
	vc := pool.Allocate(v, c)
	av := quadedge.Dual(va)
	bv := quadedge.Dual(vb)
	cv := quadedge.Dual(vc)

	spliceTriangle(pool, ab, bv, va)
	spliceTriangle(pool, bc, cv, vb)
	spliceTriangle(pool, ca, av, vc)

	t.expandBounds(v)
	t.SetSearchEdge(ab)
	t.restoreDelaunay([]int32{ab, bc, ca})

	return nil
}

// insertOnEdge splits edge e at v, producing four triangles from the (up
// to) two that shared e, and propagating e's full constraint word onto
// both resulting sub-edges (spec.md §4.4.3 "on-edge split", §4.5.4
// constraint inheritance on split).
func (t *Tin) insertOnEdge(e int32, v *quadedge.Vertex) error {
	pool := t.pool

	tri1 := pool.Triangle(e)
	bc, ca := tri1[1], tri1[2]
	apexC := pool.Orig(ca)

	de := quadedge.Dual(e)
	tri2 := pool.Triangle(de)
	ad, db := tri2[1], tri2[2]
	apexD := pool.Orig(db)

	oldB := pool.Dest(e)

	pool.SetOrig(de, v) // e becomes A->V; de (=va) becomes V->A

	vb := pool.Allocate(v, oldB)
	bv := quadedge.Dual(vb)
	pool.CopyConstraint(vb, e)

	vc := pool.Allocate(v, apexC)
	cv := quadedge.Dual(vc)

	vd := pool.Allocate(v, apexD)
	dv := quadedge.Dual(vd)

	spliceTriangle(pool, e, vc, ca)
	spliceTriangle(pool, vb, bc, cv)
	spliceTriangle(pool, bv, vd, db)
	spliceTriangle(pool, de, ad, dv)

	t.expandBounds(v)
	t.SetSearchEdge(vc)
	t.restoreDelaunay([]int32{bc, ca, ad, db})

	return nil
}

// insertHullExtension extends the convex hull to include v, fanning a new
// real triangle across every hull edge visible from v (spec.md §4.4.3
// "hull extension").
func (t *Tin) insertHullExtension(ghostEdge int32, v *quadedge.Vertex) error {
	pool := t.pool
	k := t.kernel

	start := ghostHullEdge(pool, ghostEdge)
	visible := []int32{start}

	left := start
	for i := 0; i < hullGuardLimit; i++ {
		cand := prevHullEdge(pool, left)
		if cand == left {
			break
		}
		if k.Orient(pool.Orig(cand).Point(), pool.Dest(cand).Point(), v.Point()) >= 0 {
			break
		}
		visible = append([]int32{cand}, visible...)
		left = cand
	}

	right := start
	for i := 0; i < hullGuardLimit; i++ {
		cand := nextHullEdge(pool, right)
		if cand == right {
			break
		}
		if k.Orient(pool.Orig(cand).Point(), pool.Dest(cand).Point(), v.Point()) >= 0 {
			break
		}
		visible = append(visible, cand)
		right = cand
	}

	firstSpoke := pool.Allocate(v, pool.Orig(visible[0]))
	prevSpoke := firstSpoke
	affected := make([]int32, 0, len(visible))

	for _, he := range visible {
		y := pool.Dest(he)
		nextSpoke := pool.Allocate(v, y)
		spliceTriangle(pool, he, quadedge.Dual(nextSpoke), prevSpoke)
		affected = append(affected, he)
		prevSpoke = nextSpoke
	}
	lastSpoke := prevSpoke

	attachGhostTriangle(pool, quadedge.Dual(firstSpoke))
	attachGhostTriangle(pool, lastSpoke)

	t.expandBounds(v)
	t.SetSearchEdge(visible[0])
	t.restoreDelaunay(affected)

	return nil
}

// nextHullEdge returns the hull edge immediately following he (sharing
// he's destination vertex) when walking the convex hull counterclockwise.
// Two pinwheel steps around Dest(he), anchored on the ghost side, land
// directly on the next ghost wedge's hull edge: ghost wedges attach
// hull-to-hull regardless of how many real triangles separate them on the
// interior side.
func nextHullEdge(p *quadedge.Pool, he int32) int32 {
	cur := quadedge.Dual(he)
	cur = quadedge.Dual(p.Prev(cur))
	cur = quadedge.Dual(p.Prev(cur))

	return cur
}

// prevHullEdge returns the hull edge immediately preceding he (sharing
// he's origin vertex). Unlike nextHullEdge, the preceding ghost wedge is
// not a fixed number of pinwheel steps away around Orig(he) (real
// triangles intervene), so this walks the full pinwheel around Orig(he)
// until it lands back on a second null-destined edge.
func prevHullEdge(p *quadedge.Pool, he int32) int32 {
	xn := p.Next(quadedge.Dual(he))
	cur := xn
	for i := 0; i < hullGuardLimit; i++ {
		cur = quadedge.Dual(p.Prev(cur))
		if cur == xn {
			break
		}
		if p.Dest(cur).IsNull() {
			return quadedge.Dual(p.Prev(cur))
		}
	}

	return he
}
