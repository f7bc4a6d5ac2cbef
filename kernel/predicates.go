package kernel

import "math"

// errBoundFactor scales the summed magnitudes of each fast determinant's
// product terms, plus an absolute floor of the squared nominal spacing, to
// a conservative bound on the double-precision rounding error of the fast
// determinant paths below. It is deliberately generous (a small constant
// multiple of machine epsilon): values with |det| beneath the resulting
// bound fall through to the extended-precision path in exact.go rather
// than trust a borderline double-precision sign.
const errBoundFactor = 64 * machineEpsilon

const machineEpsilon = 1.1102230246251565e-16

// Orient returns the sign of the signed area of triangle a,b,c:
//
//	+1 if c lies strictly to the left of the directed line a->b (CCW turn)
//	 0 if a, b, c are collinear
//	-1 if c lies strictly to the right of a->b (CW turn)
//
// NaN or infinite coordinates make every fast-path term NaN, which already
// compares false against any threshold, so Orient degrades to 0 for them as
// required by spec.md's out-of-range-coordinate failure mode; callers must
// still reject such vertices before they reach the TIN engine.
func (k *Kernel) Orient(a, b, c Point) int {
	k.recordTest()

	detLeft := (a.X - c.X) * (b.Y - c.Y)
	detRight := (a.Y - c.Y) * (b.X - c.X)
	det := detLeft - detRight

	bound := errBoundFactor * (math.Abs(detLeft) + math.Abs(detRight) + k.inCircleScale)
	if math.Abs(det) > bound {
		return sign(det)
	}
	if math.IsNaN(det) {
		return 0
	}

	k.recordFallback()
	return orient2dExact(a, b, c)
}

// InCircle reports whether d lies inside (+1), on (0), or outside (-1) the
// circumcircle of a, b, c. a, b, c MUST be given in counterclockwise order;
// callers that cannot guarantee this should orient the triangle first.
func (k *Kernel) InCircle(a, b, c, d Point) int {
	k.recordTest()

	adx := a.X - d.X
	ady := a.Y - d.Y
	bdx := b.X - d.X
	bdy := b.Y - d.Y
	cdx := c.X - d.X
	cdy := c.Y - d.Y

	alift := adx*adx + ady*ady
	blift := bdx*bdx + bdy*bdy
	clift := cdx*cdx + cdy*cdy

	t1 := adx * (bdy*clift - cdy*blift)
	t2 := ady * (bdx*clift - cdx*blift)
	t3 := alift * (bdx*cdy - cdx*bdy)
	det := t1 - t2 + t3

	bound := errBoundFactor * k.inCircleScale * (math.Abs(t1) + math.Abs(t2) + math.Abs(t3) + 1)
	if math.Abs(det) > bound {
		return sign(det)
	}
	if math.IsNaN(det) {
		return 0
	}

	k.recordFallback()
	return inCircleExact(a, b, c, d)
}

// Circumcircle returns the center (cx, cy) and squared radius r2 of the
// circle through a, b, c. ok is false when a, b, c are collinear within
// the kernel's orientation threshold, in which case no finite circle
// exists and cx, cy, r2 are zero.
func (k *Kernel) Circumcircle(a, b, c Point) (cx, cy, r2 float64, ok bool) {
	if k.Orient(a, b, c) == 0 {
		return 0, 0, 0, false
	}

	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))

	aSq := a.X*a.X + a.Y*a.Y
	bSq := b.X*b.X + b.Y*b.Y
	cSq := c.X*c.X + c.Y*c.Y

	ux := (aSq*(b.Y-c.Y) + bSq*(c.Y-a.Y) + cSq*(a.Y-b.Y)) / d
	uy := (aSq*(c.X-b.X) + bSq*(a.X-c.X) + cSq*(b.X-a.X)) / d

	dx := a.X - ux
	dy := a.Y - uy

	return ux, uy, dx*dx + dy*dy, true
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
