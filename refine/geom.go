package refine

import (
	"math"

	"github.com/katalvlaran/gotin/kernel"
)

func edgeLenSq(p, q kernel.Point) float64 {
	dx, dy := p.X-q.X, p.Y-q.Y

	return dx*dx + dy*dy
}

// crossProduct returns twice the signed area of triangle abc.
func crossProduct(a, b, c kernel.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
}

// shortestSide reports which of a triangle's three edges (0: a-b, 1: b-c,
// 2: c-a) is shortest, its squared length, and the product of the other
// two edges' squared lengths.
func shortestSide(a, b, c kernel.Point) (which int, shortSq, pairProd float64) {
	sab := edgeLenSq(a, b)
	sbc := edgeLenSq(b, c)
	sca := edgeLenSq(c, a)

	switch {
	case sab <= sbc && sab <= sca:
		return 0, sab, sbc * sca
	case sbc <= sab && sbc <= sca:
		return 1, sbc, sab * sca
	default:
		return 2, sca, sab * sbc
	}
}

// isBadTriangle reports whether triangle abc fails the radius-edge
// quality bound, and its cross product (spec.md §4.6 "bad-triangle
// test"): pairProd >= 4*rhoMin^2*cross^2, and cross^2 > 4*minArea^2 so a
// triangle already at or below the area floor is never further refined.
func isBadTriangle(o RuppertOptions, a, b, c kernel.Point) (cross float64, bad bool) {
	_, _, pairProd := shortestSide(a, b, c)
	cross = crossProduct(a, b, c)
	crossSq := cross * cross
	rho := o.rhoMin()

	bad = pairProd >= 4*rho*rho*crossSq && crossSq > 4*o.minTriangleArea*o.minTriangleArea

	return cross, bad
}

// isEncroached reports whether r lies on or inside the diametral circle
// of segment pq: the angle prq is at least 90 degrees, equivalently
// dot(p-r, q-r) <= 0.
func isEncroached(p, q, r kernel.Point) bool {
	return (p.X-r.X)*(q.X-r.X)+(p.Y-r.Y)*(q.Y-r.Y) <= 0
}

// baryCoords returns the barycentric weights of (x, y) with respect to
// triangle abc; mirrors tin.Barycentric's formula directly over raw
// points, since refine's candidate points don't yet have *quadedge.Vertex
// identity to hand tin.Barycentric.
func baryCoords(a, b, c kernel.Point, x, y float64) (u, v, w float64) {
	d := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
	if d == 0 {
		return 0, 0, 0
	}

	u = ((b.Y-c.Y)*(x-c.X) + (c.X-b.X)*(y-c.Y)) / d
	v = ((c.Y-a.Y)*(x-c.X) + (a.X-c.X)*(y-c.Y)) / d
	w = 1 - u - v

	return u, v, w
}

const insideEpsilon = 1e-9

func insideTriangle(a, b, c kernel.Point, x, y float64) bool {
	u, v, w := baryCoords(a, b, c, x, y)

	return u >= -insideEpsilon && v >= -insideEpsilon && w >= -insideEpsilon
}

// offCenterPoint computes the off-center Steiner point for a bad triangle
// abc whose shortest edge is pq and opposite apex is r (spec.md §4.6): the
// midpoint of pq, pushed along pq's inward normal by min(distance to the
// circumcenter, beta*|pq|). If the result falls outside abc, the
// circumcenter is used instead (Shewchuk's off-center method's degenerate
// fallback).
func offCenterPoint(k *kernel.Kernel, beta float64, a, b, c kernel.Point, which int) (x, y float64, kind VertexKind) {
	p, q, r := sidePoints(a, b, c, which)

	mx, my := (p.X+q.X)/2, (p.Y+q.Y)/2
	cx, cy, _, ok := k.Circumcircle(a, b, c)
	if !ok {
		return mx, my, KindOffcenter
	}
	if !insideTriangle(a, b, c, cx, cy) {
		// A triangle whose own circumcenter falls outside it cannot offer
		// a well-defined off-center either; fall back directly.
		return cx, cy, KindCircumcenter
	}

	dCirc := math.Hypot(cx-mx, cy-my)
	pqLen := math.Sqrt(edgeLenSq(p, q))
	d := math.Min(dCirc, beta*pqLen)

	dx, dy := q.X-p.X, q.Y-p.Y
	nx, ny := -dy, dx
	nlen := math.Hypot(nx, ny)
	if nlen == 0 {
		return cx, cy, KindCircumcenter
	}
	nx, ny = nx/nlen, ny/nlen
	if (r.X-mx)*nx+(r.Y-my)*ny < 0 {
		nx, ny = -nx, -ny
	}

	ox, oy := mx+d*nx, my+d*ny
	if !insideTriangle(a, b, c, ox, oy) {
		return cx, cy, KindCircumcenter
	}

	return ox, oy, KindOffcenter
}

// sidePoints returns (p, q, r) for side index which: p, q are that side's
// endpoints in triangle winding order, r is the opposite apex.
func sidePoints(a, b, c kernel.Point, which int) (p, q, r kernel.Point) {
	switch which {
	case 0:
		return a, b, c
	case 1:
		return b, c, a
	default:
		return c, a, b
	}
}

// angleAt returns the unsigned angle p-v-q, in radians.
func angleAt(v, p, q kernel.Point) float64 {
	ax, ay := p.X-v.X, p.Y-v.Y
	bx, by := q.X-v.X, q.Y-v.Y
	dot := ax*bx + ay*by
	cross := ax*by - ay*bx

	return math.Abs(math.Atan2(cross, dot))
}

// shellIndex returns round(log2(|m-z|)), the shell ring index of point m
// around critical corner z (spec.md §4.6 "shell splitting").
func shellIndex(z, m kernel.Point) int {
	d := math.Hypot(m.X-z.X, m.Y-z.Y)
	if d <= 0 {
		return 0
	}

	return int(math.Round(math.Log2(d)))
}

// clampToShell moves m onto the exact shell ring radius 2^shell around z,
// along the ray from z through m.
func clampToShell(z, m kernel.Point, shell int) kernel.Point {
	d := math.Hypot(m.X-z.X, m.Y-z.Y)
	if d == 0 {
		return m
	}
	scale := math.Pow(2, float64(shell)) / d

	return kernel.Point{X: z.X + (m.X-z.X)*scale, Y: z.Y + (m.Y-z.Y)*scale}
}
