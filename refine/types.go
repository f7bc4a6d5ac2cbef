package refine

import "math"

// VertexKind classifies why a vertex was introduced, recorded for every
// vertex Refine itself inserts (spec.md §4.6 "vdata[v]").
type VertexKind int

const (
	// KindInput marks a vertex that existed before Refine ran.
	KindInput VertexKind = iota
	// KindMidpoint marks a vertex introduced by splitting an encroached
	// constraint segment.
	KindMidpoint
	// KindOffcenter marks a vertex introduced at a bad triangle's
	// off-center point.
	KindOffcenter
	// KindCircumcenter marks a vertex introduced at a bad triangle's
	// circumcenter, the off-center computation's degenerate fallback.
	KindCircumcenter
)

// VertexData is Refine's bookkeeping for one inserted vertex: its kind,
// the critical corner it shells around (MIDPOINTs only), and its shell
// index at that corner.
type VertexData struct {
	Kind   VertexKind
	Corner int32 // origin Vertex.Index of the critical corner, or -1
	Shell  int
}

// CornerInfo is the minimum incident angle recorded at one constraint
// vertex (spec.md §4.6 "cornerInfo[v]"). A corner is critical when its
// minimum angle is below 60 degrees: Ruppert/Shewchuk's termination proof
// requires shell splitting only near such corners.
type CornerInfo struct {
	MinAngleRad float64
	Critical    bool
}

// RuppertOptions configures one Refine call (spec.md §4.6 "configuration
// {minAngleDeg, minTriangleArea, skipSeditiousTriangles,
// ignoreSeditiousEncroachments, enforceSqrt2Guard, interpolateZ,
// maxIterations}").
type RuppertOptions struct {
	minAngleDeg                  float64
	minTriangleArea              float64
	skipSeditiousTriangles       bool
	ignoreSeditiousEncroachments bool
	enforceSqrt2Guard            bool
	interpolateZ                 bool
	snapshotInterpolation        bool
	maxIterations                int
}

// defaultOptions mirrors the common Ruppert/Shewchuk practical defaults:
// a 20-degree minimum angle (well inside the off-center method's ~30
// degree guaranteed-termination bound), the sqrt(2) radius-edge guard
// enabled, and both seditious-edge escape hatches enabled so a
// pathological acute corner degrades to "skipped" rather than looping
// forever.
func defaultOptions() RuppertOptions {
	return RuppertOptions{
		minAngleDeg:                  20.0,
		minTriangleArea:              0,
		skipSeditiousTriangles:       true,
		ignoreSeditiousEncroachments: true,
		enforceSqrt2Guard:            true,
		interpolateZ:                 false,
		snapshotInterpolation:        false,
		maxIterations:                10000,
	}
}

// beta returns 1 / (2*sin(minAngle)), the off-center method's target
// circumradius-to-shortest-edge ratio (spec.md §4.6 "Derived parameters").
func (o RuppertOptions) beta() float64 {
	return 1 / (2 * math.Sin(o.minAngleDeg*math.Pi/180))
}

// rhoMin returns the bad-triangle test's radius-edge threshold: beta,
// clamped up to sqrt(2) when the guard is enabled (spec.md §4.6).
func (o RuppertOptions) rhoMin() float64 {
	b := o.beta()
	if o.enforceSqrt2Guard && b < math.Sqrt2 {
		return math.Sqrt2
	}

	return b
}

// Option configures one Refine call.
type Option func(*RuppertOptions)

// WithMinAngleDeg sets the minimum desired angle, in degrees (default 20).
func WithMinAngleDeg(deg float64) Option {
	return func(o *RuppertOptions) { o.minAngleDeg = deg }
}

// WithMinTriangleArea sets the smallest triangle area Refine will not
// try to shrink further, even if its angle is still poor (default 0: no
// area floor).
func WithMinTriangleArea(area float64) Option {
	return func(o *RuppertOptions) { o.minTriangleArea = area }
}

// WithSkipSeditiousTriangles toggles skipping a bad triangle whose
// shortest edge is seditious instead of looping on it forever (default
// true).
func WithSkipSeditiousTriangles(v bool) Option {
	return func(o *RuppertOptions) { o.skipSeditiousTriangles = v }
}

// WithIgnoreSeditiousEncroachments toggles ignoring an encroachment whose
// witness vertex would itself create a seditious pair (default true).
func WithIgnoreSeditiousEncroachments(v bool) Option {
	return func(o *RuppertOptions) { o.ignoreSeditiousEncroachments = v }
}

// WithSqrt2Guard toggles the radius-edge ratio floor of sqrt(2), which
// caps the enforced minimum angle at approximately 20.7 degrees for
// guaranteed termination (default true).
func WithSqrt2Guard(v bool) Option {
	return func(o *RuppertOptions) { o.enforceSqrt2Guard = v }
}

// WithInterpolateZ toggles computing inserted vertices' Z instead of
// leaving it at zero: a midpoint linearly interpolates its split
// segment's two endpoints; an off-center or circumcenter point
// barycentrically interpolates its enclosing triangle (see
// WithSnapshotInterpolation for which mesh state that triangle is read
// from) (default false).
func WithInterpolateZ(v bool) Option {
	return func(o *RuppertOptions) { o.interpolateZ = v }
}

// WithSnapshotInterpolation selects interpolating bad-triangle insertion
// points against the TIN's state at the start of Refine, rather than its
// evolving state as refinement proceeds (default false: evolving, which
// is cheaper and the common case since interpolateZ itself defaults off)
// (spec.md §9 Open Question 4).
func WithSnapshotInterpolation(v bool) Option {
	return func(o *RuppertOptions) { o.snapshotInterpolation = v }
}

// WithMaxIterations bounds the refine loop (default 10000).
func WithMaxIterations(n int) Option {
	return func(o *RuppertOptions) { o.maxIterations = n }
}

func resolveOptions(opts []Option) RuppertOptions {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Result reports how a Refine call concluded (spec.md §4.6 "Failure
// semantics").
type Result struct {
	// Converged is true iff both the encroached-segment and bad-triangle
	// queues emptied before MaxIterations was reached.
	Converged bool

	Iterations       int
	VerticesInserted int
	SegmentsSplit    int

	// SkippedSeditious counts triangles or encroachments Refine declined
	// to act on because doing so would create a seditious pair
	// (SPEC_FULL.md's supplemented feature 5).
	SkippedSeditious int
}
