package quadedge

import "math"

// Orig returns the origin vertex of directed edge e.
func (p *Pool) Orig(e int32) *Vertex { return p.record(e).orig }

// Dest returns the destination vertex of directed edge e: by the pool's
// invariant, the origin of e's dual.
func (p *Pool) Dest(e int32) *Vertex { return p.record(Dual(e)).orig }

// Next returns the next half-edge around e's enclosing face (triangle),
// continuing counterclockwise: for a real triangle A,B,C stored as the
// three half-edges AB, BC, CA, Next(AB) == BC.
func (p *Pool) Next(e int32) int32 { return p.record(e).next }

// Prev returns the half-edge preceding e around its enclosing face:
// Prev(Next(e)) == e and Next(Prev(e)) == e always hold.
func (p *Pool) Prev(e int32) int32 { return p.record(e).prev }

// SetOrig assigns the origin of e. Used only by the TIN engine during
// bootstrap, insertion, and flipping; not part of the read-only navigation
// surface external collaborators should rely on.
func (p *Pool) SetOrig(e int32, v *Vertex) { p.record(e).orig = v }

// SetNext threads e's next pointer.
func (p *Pool) SetNext(e, next int32) { p.record(e).next = next }

// SetPrev threads e's prev pointer.
func (p *Pool) SetPrev(e, prev int32) { p.record(e).prev = prev }

// Splice threads next/prev so that b follows a around a's face: it sets
// Next(a) = b and Prev(b) = a. This is the single primitive the TIN
// engine's insert, flip, and constraint-tunnelling code uses to rebuild
// face loops; every higher-level relinking operation is a sequence of
// Splice calls.
func (p *Pool) Splice(a, b int32) {
	p.SetNext(a, b)
	p.SetPrev(b, a)
}

// Pinwheel returns the cyclic sequence of directed edges whose origin is
// Orig(e), walked counterclockwise starting at e: each successive edge is
// Dual(Prev(current)), which shares the same origin because Prev(current)
// ends at Orig(current) and Dual flips that into an edge starting there.
// The walk stops when it returns to e, or after at most limit steps as a
// guard against a corrupt (non-cyclic) ring.
func (p *Pool) Pinwheel(e int32, limit int) []int32 {
	out := make([]int32, 0, 8)
	cur := e
	for i := 0; i < limit; i++ {
		out = append(out, cur)
		cur = Dual(p.Prev(cur))
		if cur == e {
			return out
		}
	}

	return out
}

// Length returns the Euclidean length of e, or +Inf if either endpoint is
// the null vertex (a ghost edge has no finite length).
func (p *Pool) Length(e int32) float64 {
	return math.Sqrt(p.LengthSq(e))
}

// LengthSq returns the squared Euclidean length of e, or +Inf for a ghost
// edge.
func (p *Pool) LengthSq(e int32) float64 {
	a, b := p.Orig(e), p.Dest(e)
	if a.IsNull() || b.IsNull() {
		return math.Inf(1)
	}
	dx := a.X - b.X
	dy := a.Y - b.Y

	return dx*dx + dy*dy
}

// Triangle returns the three directed edges bounding e's face, in order
// e, Next(e), Next(Next(e)).
func (p *Pool) Triangle(e int32) [3]int32 {
	n := p.Next(e)

	return [3]int32{e, n, p.Next(n)}
}

// IsGhost reports whether e belongs to the outer (ghost) face: true when
// any vertex of e's triangle is NullVertex.
func (p *Pool) IsGhost(e int32) bool {
	tri := p.Triangle(e)
	for _, d := range tri {
		if p.Orig(d).IsNull() {
			return true
		}
	}

	return false
}
