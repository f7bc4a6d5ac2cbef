package tin

import (
	"github.com/dhconnelly/rtreego"
	"github.com/katalvlaran/gotin/kernel"
	"github.com/katalvlaran/gotin/quadedge"
)

// spatialVertex adapts a *quadedge.Vertex to rtreego.Spatial so the R-tree
// can index it as a degenerate (zero-area) rectangle at its coordinates.
type spatialVertex struct {
	v *quadedge.Vertex
}

// pointEpsilon is the side length of the degenerate box rtreego indexes a
// single point as; rtreego.NewRect rejects zero-length sides.
const pointEpsilon = 1e-12

// Bounds implements rtreego.Spatial.
func (s spatialVertex) Bounds() rtreego.Rect {
	point := rtreego.Point{s.v.X - pointEpsilon/2, s.v.Y - pointEpsilon/2}
	rect, _ := rtreego.NewRect(point, []float64{pointEpsilon, pointEpsilon})

	return rect
}

// indexVertex inserts v into the auxiliary spatial index, if enabled.
func (t *Tin) indexVertex(v *quadedge.Vertex) {
	if !t.spatialIndexEnabled {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rtree.Insert(spatialVertex{v: v})
}

// nearbyVertices returns every indexed vertex within radius of pt, via an
// R-tree box query. Two callers use this at different radii: the
// coincidence check ahead of a full point-location walk (spec.md §4.4.3,
// radius = the kernel's vertex-coincidence threshold) and
// pickBootstrapTriple's search for well-separated candidates near a
// bounding-box corner (spec.md §4.4.1, radius = a fraction of the
// staging set's span).
func (t *Tin) nearbyVertices(pt kernel.Point, radius float64) []*quadedge.Vertex {
	if !t.spatialIndexEnabled || radius <= 0 {
		return nil
	}
	lo := rtreego.Point{pt.X - radius, pt.Y - radius}
	rect, err := rtreego.NewRect(lo, []float64{2 * radius, 2 * radius})
	if err != nil {
		return nil
	}

	t.mu.RLock()
	hits := t.rtree.SearchIntersect(rect)
	t.mu.RUnlock()

	out := make([]*quadedge.Vertex, 0, len(hits))
	for _, h := range hits {
		if sv, ok := h.(spatialVertex); ok {
			out = append(out, sv.v)
		}
	}

	return out
}

// coincidentVertex narrows the vertex-coincidence check ahead of a full
// point-location walk (spec.md §4.4.3 step 2) to the small candidate set
// nearbyVertices returns within the kernel's coincidence threshold,
// instead of locating pt first and checking only the three corners of
// whichever triangle the walk happens to land on.
func (t *Tin) coincidentVertex(pt kernel.Point) (*quadedge.Vertex, bool) {
	thresh := t.kernel.VertexCoincidenceThreshold()
	if thresh <= 0 {
		return nil, false
	}
	for _, v := range t.nearbyVertices(pt, thresh) {
		dx, dy := v.X-pt.X, v.Y-pt.Y
		if dx*dx+dy*dy <= thresh*thresh {
			return v, true
		}
	}

	return nil, false
}
