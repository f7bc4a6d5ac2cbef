package tin

import (
	"math"

	"github.com/katalvlaran/gotin/kernel"
	"github.com/katalvlaran/gotin/quadedge"
)

// hullGuardLimit bounds every hull-ring or pinwheel walk against a corrupt
// (non-cyclic) mesh, mirroring quadedge.Pinwheel's own limit parameter.
const hullGuardLimit = 1 << 16

// stageVertex buffers v until bootstrap can run, or triggers bootstrap
// immediately once three non-collinear vertices are available.
func (t *Tin) stageVertex(v *quadedge.Vertex) error {
	t.mu.Lock()
	t.staging = append(t.staging, v)
	t.mu.Unlock()

	return t.tryBootstrap()
}

// tryBootstrap creates the initial triangle plus its surrounding ghost
// faces (spec.md §4.4.1) once three well-separated, non-collinear staged
// vertices exist, then replays every other staged vertex through the
// ordinary incremental insertion path.
func (t *Tin) tryBootstrap() error {
	t.mu.Lock()
	if t.bootstrapped || len(t.staging) < 3 {
		t.mu.Unlock()
		return nil
	}
	staging := t.staging
	t.mu.Unlock()

	i, j, k, ok := t.pickBootstrapTriple(staging)
	if !ok {
		return ErrCollinearBootstrap
	}

	a, b, c := staging[i], staging[j], staging[k]
	if t.kernel.Orient(a.Point(), b.Point(), c.Point()) < 0 {
		b, c = c, b
	}

	ab := t.buildInitialTriangle(a, b, c)

	t.mu.Lock()
	t.bootstrapped = true
	t.staging = nil
	t.mu.Unlock()
	t.SetSearchEdge(ab)

	for idx, v := range staging {
		if idx == i || idx == j || idx == k {
			continue
		}
		if err := t.insertVertex(v); err != nil {
			return err
		}
	}

	return nil
}

// pickBootstrapTriple chooses the pair of staged vertices with the
// greatest squared separation, then the staged vertex that forms the
// largest-area triangle with that pair — a cheap proxy for "well
// separated" that keeps the initial triangle numerically well-conditioned
// (spec.md §4.4.1). ok is false if every staged vertex is collinear.
//
// When the spatial index is enabled, the search runs first over
// cornerCandidates (a handful of vertices near the staging set's
// bounding-box corners, found via the R-tree) rather than every staged
// vertex; this only changes which well-separated triple is likely to win
// the search, never the O(n²) fallback's correctness, which pickTriple
// still provides over the full staging slice whenever the candidate set
// is too small or degenerate to yield one.
func (t *Tin) pickBootstrapTriple(staging []*quadedge.Vertex) (i, j, k int, ok bool) {
	if candidates := t.cornerCandidates(staging); len(candidates) >= 3 {
		if ci, cj, ck, cok := pickTriple(t, candidates); cok {
			return indexOfVertex(staging, candidates[ci]), indexOfVertex(staging, candidates[cj]), indexOfVertex(staging, candidates[ck]), true
		}
	}

	return pickTriple(t, staging)
}

// cornerCandidates queries the auxiliary R-tree near each corner of
// staging's bounding box (spec.md §4.4.1 "well-separated triple"),
// giving pickBootstrapTriple a small, spatially spread-out candidate set
// to search instead of every staged vertex. Returns nil when the index is
// disabled or staging's bounding box is degenerate (every staged vertex
// coincides). The vertex that triggered this very bootstrap call may not
// yet be indexed (AddVertex indexes a staged vertex only after bootstrap
// either fires or doesn't), which only ever shrinks the candidate set by
// one — pickBootstrapTriple's full-staging fallback covers it.
func (t *Tin) cornerCandidates(staging []*quadedge.Vertex) []*quadedge.Vertex {
	if !t.spatialIndexEnabled || len(staging) < 3 {
		return nil
	}

	minX, minY := staging[0].X, staging[0].Y
	maxX, maxY := minX, minY
	for _, v := range staging[1:] {
		minX, maxX = math.Min(minX, v.X), math.Max(maxX, v.X)
		minY, maxY = math.Min(minY, v.Y), math.Max(maxY, v.Y)
	}
	radius := math.Max(maxX-minX, maxY-minY) / 4
	if radius <= 0 {
		return nil
	}

	corners := [4]kernel.Point{
		{X: minX, Y: minY}, {X: minX, Y: maxY}, {X: maxX, Y: minY}, {X: maxX, Y: maxY},
	}

	seen := make(map[*quadedge.Vertex]bool)
	var out []*quadedge.Vertex
	for _, c := range corners {
		for _, v := range t.nearbyVertices(c, radius) {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}

	return out
}

// pickTriple runs the farthest-pair-then-largest-area search described on
// pickBootstrapTriple over pts, returning indices into pts itself.
func pickTriple(t *Tin, pts []*quadedge.Vertex) (i, j, k int, ok bool) {
	n := len(pts)
	bestD := -1.0
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			dx := pts[a].X - pts[b].X
			dy := pts[a].Y - pts[b].Y
			d := dx*dx + dy*dy
			if d > bestD {
				bestD = d
				i, j = a, b
			}
		}
	}

	bestArea := 0.0
	for c := 0; c < n; c++ {
		if c == i || c == j {
			continue
		}
		area := math.Abs(crossArea(pts[i].Point(), pts[j].Point(), pts[c].Point()))
		if area > bestArea {
			bestArea = area
			k = c
			ok = true
		}
	}
	if ok && t.kernel.Orient(pts[i].Point(), pts[j].Point(), pts[k].Point()) == 0 {
		ok = false
	}

	return i, j, k, ok
}

// indexOfVertex returns v's index in staging, or -1 if absent.
func indexOfVertex(staging []*quadedge.Vertex, v *quadedge.Vertex) int {
	for idx, s := range staging {
		if s == v {
			return idx
		}
	}

	return -1
}

func crossArea(a, b, c kernel.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// buildInitialTriangle allocates the three real half-edges of the
// bootstrap triangle A,B,C (already CCW) plus the three ghost triangles
// that close its exterior, and returns the directed edge A->B.
func (t *Tin) buildInitialTriangle(a, b, c *quadedge.Vertex) int32 {
	p := t.pool

	ab := p.Allocate(a, b)
	bc := p.Allocate(b, c)
	ca := p.Allocate(c, a)
	spliceTriangle(p, ab, bc, ca)

	attachGhostTriangle(p, ab)
	attachGhostTriangle(p, bc)
	attachGhostTriangle(p, ca)

	t.expandBounds(a)
	t.expandBounds(b)
	t.expandBounds(c)

	return ab
}

// attachGhostTriangle builds the exterior ghost face bordering real hull
// edge xy (x = Orig(xy), y = Dest(xy)): the loop Dual(xy) -> x->Null ->
// Null->y -> Dual(xy), so that the outer face of the triangulation is
// always a proper (if degenerate) triangle with NullVertex as its apex.
func attachGhostTriangle(p *quadedge.Pool, xy int32) {
	x := p.Orig(xy)
	y := p.Dest(xy)
	yx := quadedge.Dual(xy)

	xn := p.Allocate(x, quadedge.NullVertex)
	ny := p.Allocate(quadedge.NullVertex, y)
	spliceTriangle(p, yx, xn, ny)
}

// ghostHullEdge returns the one real (non-null) directed edge of the
// ghost triangle anchored at e.
func ghostHullEdge(p *quadedge.Pool, e int32) int32 {
	tri := p.Triangle(e)
	for _, d := range tri {
		if !p.Orig(d).IsNull() && !p.Dest(d).IsNull() {
			return d
		}
	}

	return tri[0]
}
