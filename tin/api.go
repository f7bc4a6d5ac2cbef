package tin

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/gotin/hilbert"
	"github.com/katalvlaran/gotin/kernel"
	"github.com/katalvlaran/gotin/quadedge"
)

// AddVertex inserts one vertex at (x, y, z) into the triangulation,
// staging it if bootstrap hasn't run yet (spec.md §4.4.1, §4.4.3).
func (t *Tin) AddVertex(x, y float64, z float32) error {
	if err := t.checkMutable(); err != nil {
		return err
	}
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return ErrInvalidVertex
	}

	t.mu.Lock()
	idx := t.nextVertexIndex
	t.nextVertexIndex++
	t.mu.Unlock()

	v := quadedge.NewVertex(x, y, z, idx)

	if !t.IsBootstrapped() {
		// An all-collinear staging set is not an error here: the vertex
		// stays staged and bootstrap is retried on the next AddVertex.
		if err := t.stageVertex(v); err != nil && !errors.Is(err, ErrCollinearBootstrap) {
			return err
		}
		t.indexVertex(v)
		return nil
	}

	// The R-tree coincidence check narrows the vertexCoincidenceThreshold
	// test to a small candidate set ahead of the point-location walk
	// (spec.md §4.4.3 step 2), rather than relying solely on whichever
	// triangle the walk happens to land on. This only runs here, once the
	// mesh is already bootstrapped: every vertex the index can find at
	// this point is a real, already-placed mesh vertex, never one merely
	// staged and awaiting bootstrap's own replay (see tryBootstrap).
	if existing, hit := t.coincidentVertex(kernel.Point{X: x, Y: y}); hit {
		return t.mergeVertex(existing, v)
	}

	if err := t.insertVertex(v); err != nil {
		return err
	}
	t.indexVertex(v)

	return nil
}

// Input is one vertex supplied to AddVertices.
type Input struct {
	X, Y float64
	Z    float32
}

// AddVertices inserts every vertex in vs, in the traversal order selected
// by order. Hilbert ordering only affects throughput (fewer point-location
// walk steps on average for spatially clustered input), never the
// resulting triangulation (spec.md §5).
func (t *Tin) AddVertices(vs []Input, order Order) error {
	indices := make([]int, len(vs))
	for i := range indices {
		indices[i] = i
	}

	if order == Hilbert && len(vs) > 1 {
		bounds, _ := t.Bounds()
		minX, minY, maxX, maxY := bounds.MinX, bounds.MinY, bounds.MaxX, bounds.MaxY
		if !t.hasBounds {
			minX, minY = math.Inf(1), math.Inf(1)
			maxX, maxY = math.Inf(-1), math.Inf(-1)
			for _, v := range vs {
				minX, maxX = math.Min(minX, v.X), math.Max(maxX, v.X)
				minY, maxY = math.Min(minY, v.Y), math.Max(maxY, v.Y)
			}
		}
		keys := make([]uint64, len(vs))
		for i, v := range vs {
			keys[i] = hilbert.Encode(v.X, v.Y, minX, minY, maxX, maxY, hilbert.DefaultOrder)
		}
		sort.Slice(indices, func(a, b int) bool { return keys[indices[a]] < keys[indices[b]] })
	}

	for _, i := range indices {
		v := vs[i]
		if err := t.AddVertex(v.X, v.Y, v.Z); err != nil {
			return fmt.Errorf("tin: AddVertices: vertex %d: %w", i, err)
		}
	}

	return nil
}

// Triangle is a materialized (non-ghost) triangle: its three corner
// vertices and the directed edge GetTriangles() discovered it from.
type Triangle struct {
	A, B, C *quadedge.Vertex
	Edge    int32
}

// GetTriangles returns every real (non-ghost) triangle currently in the
// mesh, each reported exactly once.
func (t *Tin) GetTriangles() ([]Triangle, error) {
	it := t.NewTriangleIterator()
	var out []Triangle
	for {
		tri, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, tri)
	}
}

// TriangleIterator walks every real triangle in the mesh lazily. It is
// bound to the pool's epoch at construction: any call to Next() after an
// intervening Clear() returns ErrStaleIterator instead of silently
// iterating a pool that has moved on (spec.md's generation-stamped
// iterator convention).
type TriangleIterator struct {
	t     *Tin
	epoch uint64
	bases []int32
	bi    int
	di    int
	seen  map[int32]bool
}

// NewTriangleIterator constructs a TriangleIterator snapshotting the
// pool's currently allocated pairs and epoch.
func (t *Tin) NewTriangleIterator() *TriangleIterator {
	return &TriangleIterator{
		t:     t,
		epoch: t.pool.Epoch(),
		bases: t.pool.IterAllocated(),
		seen:  make(map[int32]bool),
	}
}

// Next returns the next undiscovered triangle, or ok=false once the walk
// is exhausted. err is ErrStaleIterator if the pool was Clear()ed since
// construction.
func (it *TriangleIterator) Next() (tri Triangle, ok bool, err error) {
	if it.epoch != it.t.pool.Epoch() {
		return Triangle{}, false, ErrStaleIterator
	}

	pool := it.t.pool
	for it.bi < len(it.bases) {
		base := it.bases[it.bi]
		for it.di < 2 {
			e := base ^ int32(it.di)
			it.di++
			if it.seen[e] || pool.IsGhost(e) {
				continue
			}
			corners := pool.Triangle(e)
			it.seen[corners[0]], it.seen[corners[1]], it.seen[corners[2]] = true, true, true

			return Triangle{
				A:    pool.Orig(corners[0]),
				B:    pool.Orig(corners[1]),
				C:    pool.Orig(corners[2]),
				Edge: corners[0],
			}, true, nil
		}
		it.di = 0
		it.bi++
	}

	return Triangle{}, false, nil
}

// Edge is one materialized mesh edge: its two endpoints, the directed
// edge index GetEdges() discovered it from, and whether it is constrained.
type Edge struct {
	A, B        *quadedge.Vertex
	DirectedRef int32
	Constrained bool
}

// GetEdges returns every real edge in the mesh (both endpoints real
// vertices; ghost edges to the null vertex are skipped, hull edges are
// included), each reported once.
func (t *Tin) GetEdges() ([]Edge, error) {
	pool := t.pool
	var out []Edge
	for _, base := range pool.IterAllocated() {
		if pool.Orig(base).IsNull() || pool.Orig(base^1).IsNull() {
			continue
		}
		out = append(out, Edge{
			A:           pool.Orig(base),
			B:           pool.Dest(base),
			DirectedRef: base,
			Constrained: pool.IsConstrained(base),
		})
	}

	return out, nil
}

// GetPerimeter returns the convex hull as an ordered, CCW-walkable ring of
// vertices (spec.md's supplemented "get_perimeter").
func (t *Tin) GetPerimeter() ([]*quadedge.Vertex, error) {
	if !t.IsBootstrapped() {
		return nil, ErrNotBootstrapped
	}

	pool := t.pool
	start, _ := t.SearchEdge()

	if !pool.IsGhost(start) {
		// The search edge isn't necessarily a hull edge; scan for any
		// ghost wedge to anchor the hull walk. A bootstrapped mesh always
		// has at least one (spec.md §4.4.1: every hull edge gets one).
	findGhost:
		for _, base := range pool.IterAllocated() {
			for _, e := range [2]int32{base, base ^ 1} {
				if pool.IsGhost(e) {
					start = e
					break findGhost
				}
			}
		}
	}
	start = ghostHullEdge(pool, start)

	out := []*quadedge.Vertex{pool.Orig(start)}
	cur := start
	for i := 0; i < hullGuardLimit; i++ {
		cur = nextHullEdge(pool, cur)
		if cur == start {
			break
		}
		out = append(out, pool.Orig(cur))
	}

	return out, nil
}

// Barycentric returns the barycentric weights (u, v, w) of point (x, y)
// relative to triangle tri, such that x = u*A.x + v*B.x + w*C.x and
// u + v + w == 1.
func Barycentric(tri Triangle, x, y float64) (u, v, w float64) {
	ax, ay := tri.A.X, tri.A.Y
	bx, by := tri.B.X, tri.B.Y
	cx, cy := tri.C.X, tri.C.Y

	d := (by-cy)*(ax-cx) + (cx-bx)*(ay-cy)
	if d == 0 {
		return 0, 0, 0
	}

	u = ((by-cy)*(x-cx) + (cx-bx)*(y-cy)) / d
	v = ((cy-ay)*(x-cx) + (ax-cx)*(y-cy)) / d
	w = 1 - u - v

	return u, v, w
}

