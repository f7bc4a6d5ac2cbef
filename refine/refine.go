package refine

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/gotin/kernel"
	"github.com/katalvlaran/gotin/quadedge"
	"github.com/katalvlaran/gotin/tin"
)

// ErrNotBootstrapped is returned verbatim from tin.ErrNotBootstrapped;
// re-exported so callers that only import refine can still match it.
var ErrNotBootstrapped = tin.ErrNotBootstrapped

// state carries everything one Refine call threads through its main
// loop: the target mesh, resolved options, and the bookkeeping the spec
// attaches to individual vertices and corners rather than to the mesh
// itself.
type state struct {
	t    *tin.Tin
	k    *kernel.Kernel
	opts RuppertOptions

	vdata   map[*quadedge.Vertex]*VertexData
	corners map[*quadedge.Vertex]*CornerInfo

	snapshot []tin.Triangle // only populated when opts.snapshotInterpolation

	ignoredSegments map[int64]bool // seditious-would-result, permanently skipped
	skippedFaces    map[int32]bool // seditious shortest edge, permanently skipped

	result Result
}

// Refine runs the Ruppert mesh-quality refinement loop against t until
// both its encroached-segment and bad-triangle backlogs are empty, or
// MaxIterations is exhausted (spec.md §4.6).
func Refine(t *tin.Tin, opts ...Option) (Result, error) {
	if !t.IsBootstrapped() {
		return Result{}, ErrNotBootstrapped
	}

	o := resolveOptions(opts)
	st := &state{
		t:               t,
		k:               t.Kernel(),
		opts:            o,
		vdata:           make(map[*quadedge.Vertex]*VertexData),
		corners:         make(map[*quadedge.Vertex]*CornerInfo),
		ignoredSegments: make(map[int64]bool),
		skippedFaces:    make(map[int32]bool),
	}

	if o.snapshotInterpolation {
		snap, err := t.GetTriangles()
		if err != nil {
			return Result{}, fmt.Errorf("refine: snapshot: %w", err)
		}
		st.snapshot = snap
	}

	for iter := 0; iter < o.maxIterations; iter++ {
		st.result.Iterations = iter + 1

		segs, err := st.constrainedSegments()
		if err != nil {
			return st.result, err
		}
		st.corners = buildCornerInfo(segs)

		if seg, ok := findEncroachedSegment(t, segs, st.ignoredSegments); ok {
			progressed, err := st.handleEncroachment(seg)
			if err != nil {
				return st.result, err
			}
			if progressed {
				continue
			}
		}

		tri, ok, err := st.findBadTriangle()
		if err != nil {
			return st.result, err
		}
		if !ok {
			st.result.Converged = true
			break
		}

		if err := st.handleBadTriangle(tri); err != nil {
			return st.result, err
		}
	}

	return st.result, nil
}

func (st *state) constrainedSegments() ([]tin.Edge, error) {
	edges, err := st.t.GetEdges()
	if err != nil {
		return nil, fmt.Errorf("refine: GetEdges: %w", err)
	}
	out := edges[:0:0]
	for _, e := range edges {
		if e.Constrained {
			out = append(out, e)
		}
	}

	return out, nil
}

// handleEncroachment splits seg at its (possibly shell-clamped) midpoint,
// unless doing so would create a seditious pair around seg's acute corner
// and that is configured to be ignored, in which case seg is permanently
// marked ignored and handleEncroachment reports no progress so the caller
// falls through to bad-triangle handling instead.
func (st *state) handleEncroachment(seg tin.Edge) (bool, error) {
	plan := st.planSplit(seg)

	if plan.critical && st.opts.ignoreSeditiousEncroachments && st.wouldBeSeditious(seg.A, seg.B, plan.corner, plan.shell) {
		st.ignoredSegments[segKey(seg.A, seg.B)] = true
		st.result.SkippedSeditious++

		return false, nil
	}

	if err := st.splitSegment(seg, plan); err != nil {
		return false, err
	}

	return true, nil
}

// splitPlan is the midpoint (shell-clamped if seg has a critical
// endpoint) a segment split will insert, computed once and shared
// between the seditious pre-check and the actual insertion so both agree
// on the same shell index.
type splitPlan struct {
	m        kernel.Point
	corner   *quadedge.Vertex
	shell    int
	critical bool
}

// planSplit computes seg's split point: its plain midpoint, or — when one
// endpoint is a critical corner z — that midpoint clamped onto the exact
// shell ring 2^round(log2(|m-z|)) around z (spec.md §4.6 "shell
// splitting").
func (st *state) planSplit(seg tin.Edge) splitPlan {
	p, q := seg.A.Point(), seg.B.Point()
	m := kernel.Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}

	corner, critical := st.pickCriticalCorner(seg.A, seg.B)
	if !critical {
		return splitPlan{m: m}
	}

	shell := shellIndex(corner.Point(), m)
	m = clampToShell(corner.Point(), m, shell)

	return splitPlan{m: m, corner: corner, shell: shell, critical: true}
}

// splitSegment inserts plan's point and lets the TIN engine's own
// on-edge insertion path carry seg's constraint bits onto both resulting
// sub-edges (spec.md §4.6 "segment split"; the TIN Engine's insertOnEdge
// already performs that bit propagation, so this package does not touch
// the pool directly).
func (st *state) splitSegment(seg tin.Edge, plan splitPlan) error {
	z := float32(0)
	if st.opts.interpolateZ {
		z = (seg.A.Z + seg.B.Z) / 2
	}

	if err := st.t.AddVertex(plan.m.X, plan.m.Y, z); err != nil && !errors.Is(err, tin.ErrDuplicateVertex) {
		return fmt.Errorf("refine: splitSegment: %w", err)
	}
	v, err := st.resolveVertex(plan.m)
	if err != nil {
		return err
	}

	cornerIdx := int32(-1)
	if plan.critical {
		cornerIdx = plan.corner.Index
	}
	st.vdata[v] = &VertexData{Kind: KindMidpoint, Corner: cornerIdx, Shell: plan.shell}
	st.result.SegmentsSplit++
	st.result.VerticesInserted++

	return nil
}

// pickCriticalCorner reports whichever of a, b is a critical corner
// (preferring the sharper one if both are), for shell-indexed splitting.
func (st *state) pickCriticalCorner(a, b *quadedge.Vertex) (corner *quadedge.Vertex, critical bool) {
	ca, okA := st.corners[a]
	cb, okB := st.corners[b]

	switch {
	case okA && ca.Critical && okB && cb.Critical:
		if ca.MinAngleRad <= cb.MinAngleRad {
			return a, true
		}

		return b, true
	case okA && ca.Critical:
		return a, true
	case okB && cb.Critical:
		return b, true
	default:
		return nil, false
	}
}

// wouldBeSeditious reports whether splitting segment ab around corner at
// its computed shell would pair up with an existing MIDPOINT vertex that
// already shares that same corner and shell index (spec.md §4.6
// "seditious edge").
func (st *state) wouldBeSeditious(a, b, corner *quadedge.Vertex, shell int) bool {
	for _, v := range [2]*quadedge.Vertex{a, b} {
		vd, ok := st.vdata[v]
		if !ok || vd.Kind != KindMidpoint {
			continue
		}
		if vd.Corner == corner.Index && vd.Shell == shell {
			return true
		}
	}

	return false
}

// handleBadTriangle computes tri's Steiner insertion point; if that point
// would encroach a constraint segment, the segment is split instead
// (deferring to encroachment per spec.md §4.6), unless doing so would be
// seditious and that is configured to be ignored, in which case tri is
// skipped outright.
func (st *state) handleBadTriangle(tri tin.Triangle) error {
	a, b, c := tri.A.Point(), tri.B.Point(), tri.C.Point()
	which, _, _ := shortestSide(a, b, c)
	x, y, kind := offCenterPoint(st.k, st.opts.beta(), a, b, c, which)

	segs, err := st.constrainedSegments()
	if err != nil {
		return err
	}
	if seg, ok := findSegmentEncroachedByPoint(segs, kernel.Point{X: x, Y: y}); ok {
		plan := st.planSplit(seg)
		if plan.critical && st.opts.ignoreSeditiousEncroachments && st.wouldBeSeditious(seg.A, seg.B, plan.corner, plan.shell) {
			st.ignoredSegments[segKey(seg.A, seg.B)] = true
			st.skippedFaces[faceKeyOf(st.t.Pool(), tri.Edge)] = true
			st.result.SkippedSeditious++

			return nil
		}

		return st.splitSegment(seg, plan)
	}

	if st.opts.skipSeditiousTriangles && st.sideIsSeditious(tri, which) {
		st.skippedFaces[faceKeyOf(st.t.Pool(), tri.Edge)] = true
		st.result.SkippedSeditious++

		return nil
	}

	z := st.interpolateZAt(x, y)
	if err := st.t.AddVertex(x, y, z); err != nil && !errors.Is(err, tin.ErrDuplicateVertex) {
		return fmt.Errorf("refine: handleBadTriangle: %w", err)
	}
	v, err := st.resolveVertex(kernel.Point{X: x, Y: y})
	if err != nil {
		return err
	}
	st.vdata[v] = &VertexData{Kind: kind, Corner: -1}
	st.result.VerticesInserted++

	return nil
}

// sideIsSeditious reports whether tri's side which connects two existing
// MIDPOINT vertices sharing the same critical corner and shell index.
func (st *state) sideIsSeditious(tri tin.Triangle, which int) bool {
	verts := [3]*quadedge.Vertex{tri.A, tri.B, tri.C}
	p, q := verts[which], verts[(which+1)%3]

	pd, okP := st.vdata[p]
	qd, okQ := st.vdata[q]

	return okP && okQ && pd.Kind == KindMidpoint && qd.Kind == KindMidpoint &&
		pd.Corner >= 0 && pd.Corner == qd.Corner && pd.Shell == qd.Shell
}

func (st *state) findBadTriangle() (tin.Triangle, bool, error) {
	tris, err := st.t.GetTriangles()
	if err != nil {
		return tin.Triangle{}, false, fmt.Errorf("refine: GetTriangles: %w", err)
	}

	byEdge := make(map[int32]tin.Triangle, len(tris))
	var candidates []*badTriangleItem
	for _, tri := range tris {
		key := faceKeyOf(st.t.Pool(), tri.Edge)
		if st.skippedFaces[key] {
			continue
		}
		cross, bad := isBadTriangle(st.opts, tri.A.Point(), tri.B.Point(), tri.C.Point())
		if !bad {
			continue
		}
		candidates = append(candidates, &badTriangleItem{edge: tri.Edge, crossSq: cross * cross})
		byEdge[tri.Edge] = tri
	}

	worst, ok := popWorst(candidates)
	if !ok {
		return tin.Triangle{}, false, nil
	}

	return byEdge[worst.edge], true, nil
}

// resolveVertex returns the *quadedge.Vertex identity of whatever now
// occupies point pt, which must already have been inserted (directly or
// via merge) into st.t.
func (st *state) resolveVertex(pt kernel.Point) (*quadedge.Vertex, error) {
	e, loc, err := st.t.Navigator().Locate(pt)
	if err != nil {
		return nil, fmt.Errorf("refine: resolveVertex: %w", err)
	}
	if loc != tin.LocOnVertex {
		return nil, fmt.Errorf("refine: resolveVertex: (%g, %g) did not resolve to a vertex", pt.X, pt.Y)
	}

	return st.t.Pool().Orig(e), nil
}

// interpolateZAt computes a non-midpoint insertion point's Z, honoring
// WithSnapshotInterpolation's choice of source mesh; returns 0 when Z
// interpolation is disabled or the point cannot be located.
func (st *state) interpolateZAt(x, y float64) float32 {
	if !st.opts.interpolateZ {
		return 0
	}

	if st.opts.snapshotInterpolation {
		for _, tri := range st.snapshot {
			a, b, c := tri.A.Point(), tri.B.Point(), tri.C.Point()
			if !insideTriangle(a, b, c, x, y) {
				continue
			}
			u, v, w := baryCoords(a, b, c, x, y)

			return float32(u)*tri.A.Z + float32(v)*tri.B.Z + float32(w)*tri.C.Z
		}

		return 0
	}

	e, loc, err := st.t.Navigator().Locate(kernel.Point{X: x, Y: y})
	if err != nil || loc == tin.LocExterior {
		return 0
	}
	tri := st.t.Pool().Triangle(e)
	av, bv, cv := st.t.Pool().Orig(tri[0]), st.t.Pool().Orig(tri[1]), st.t.Pool().Orig(tri[2])
	u, v, w := baryCoords(av.Point(), bv.Point(), cv.Point(), x, y)

	return float32(u)*av.Z + float32(v)*bv.Z + float32(w)*cv.Z
}

// findEncroachedSegment scans segs for one currently encroached by
// either of its two incident triangles' apex vertices, skipping any
// segment flagged in ignored.
func findEncroachedSegment(t *tin.Tin, segs []tin.Edge, ignored map[int64]bool) (tin.Edge, bool) {
	pool := t.Pool()
	for _, e := range segs {
		if ignored[segKey(e.A, e.B)] {
			continue
		}

		p, q := e.A.Point(), e.B.Point()
		apex1 := pool.Dest(pool.Next(e.DirectedRef))
		apex2 := pool.Dest(pool.Next(quadedge.Dual(e.DirectedRef)))

		if !apex1.IsNull() && isEncroached(p, q, apex1.Point()) {
			return e, true
		}
		if !apex2.IsNull() && isEncroached(p, q, apex2.Point()) {
			return e, true
		}
	}

	return tin.Edge{}, false
}

// findSegmentEncroachedByPoint reports the first constrained segment
// whose diametral circle contains pt, for testing a not-yet-inserted
// candidate Steiner point.
func findSegmentEncroachedByPoint(segs []tin.Edge, pt kernel.Point) (tin.Edge, bool) {
	for _, e := range segs {
		if isEncroached(e.A.Point(), e.B.Point(), pt) {
			return e, true
		}
	}

	return tin.Edge{}, false
}

// faceKeyOf identifies e's enclosing face uniquely regardless of which of
// its three directed edges is passed, by the smallest of the three.
func faceKeyOf(pool *quadedge.Pool, e int32) int32 {
	tri := pool.Triangle(e)
	min := tri[0]
	for _, d := range tri[1:] {
		if d < min {
			min = d
		}
	}

	return min
}

// segKey canonically identifies the undirected pair (a, b) by vertex
// index, independent of argument order.
func segKey(a, b *quadedge.Vertex) int64 {
	if a.Index > b.Index {
		a, b = b, a
	}

	return int64(a.Index)<<32 | int64(uint32(b.Index))
}
