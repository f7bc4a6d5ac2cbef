package tin

import (
	"math/rand"
	"sync"

	"github.com/dhconnelly/rtreego"
	"github.com/katalvlaran/gotin/kernel"
	"github.com/katalvlaran/gotin/quadedge"
)

// MergeRule selects how AddVertex resolves a newly inserted vertex that is
// coincident (within the kernel's vertexCoincidenceThreshold) with one
// already present. spec.md §9 Open Question 3 leaves the default
// inconsistent across the source's paths; this implementation picks
// MergeKeepFirst as its fixed default (see DESIGN.md).
type MergeRule int

const (
	// MergeKeepFirst discards the incoming vertex, keeping whichever
	// vertex was inserted first at that location.
	MergeKeepFirst MergeRule = iota
	// MergeReplace replaces the existing vertex's Z value with the
	// incoming one's; the existing vertex keeps its own index.
	MergeReplace
	// MergeAverage averages the Z values of the existing and incoming
	// vertex in place.
	MergeAverage
	// MergeReject rejects the incoming vertex with ErrDuplicateVertex
	// instead of merging.
	MergeReject
)

// Order selects the traversal order AddVertices uses over its input.
type Order int

const (
	// AsIs inserts vertices in the order the caller provides them.
	AsIs Order = iota
	// Hilbert sorts vertices along a Hilbert space-filling curve first
	// (see the hilbert package); purely a throughput optimization with no
	// effect on the resulting triangulation (spec.md §5).
	Hilbert
)

// Bounds is an axis-aligned bounding box over every inserted real vertex.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// MergeRecord is one entry in a Tin's bounded merge audit trail.
type MergeRecord struct {
	Survivor *quadedge.Vertex
	Absorbed *quadedge.Vertex
	Rule     MergeRule
}

// constraintRecord is the per-TIN bookkeeping entry for one inserted
// constraint (spec.md §4.5.4: "every constraint edge is recorded in the
// per-TIN constraint list at the index stamped into its bitfield").
type constraintRecord struct {
	linkingEdge int32
	isRegion    bool
}

// Option configures a Tin at construction time.
type Option func(*Tin)

// WithSeed fixes the RNG seed the stochastic Lawson's walk (and any
// caller-visible tie-breaking) uses, for reproducible runs (spec.md §5,
// §8 property 8 "Determinism").
func WithSeed(seed int64) Option {
	return func(t *Tin) { t.rng = rand.New(rand.NewSource(seed)) }
}

// WithMergeRule overrides the default vertex-merge resolution rule
// (MergeKeepFirst).
func WithMergeRule(rule MergeRule) Option {
	return func(t *Tin) { t.mergeRule = rule }
}

// WithMergeLogCapacity bounds the vertex-merge audit trail (default 64).
func WithMergeLogCapacity(n int) Option {
	return func(t *Tin) { t.mergeLogCap = n }
}

// WithSpatialIndex enables (the default) or disables the auxiliary R-tree
// used to accelerate coincidence lookups and bootstrap-triple selection.
func WithSpatialIndex(enabled bool) Option {
	return func(t *Tin) { t.spatialIndexEnabled = enabled }
}

// Tin is the central engine type: it owns a quad-edge pool and drives
// bootstrap, incremental insertion, Delaunay restoration, and stochastic
// point location over it.
type Tin struct {
	mu sync.RWMutex // guards locked, bounds, searchEdge, diagnostics

	kernel *kernel.Kernel
	pool   *quadedge.Pool

	bounds    Bounds
	hasBounds bool

	searchEdge    int32
	hasSearchEdge bool

	bootstrapped bool
	locked       bool
	conformant   bool // isConformant(): true until the first CONSTRAINED edge appears

	staging         []*quadedge.Vertex
	nextVertexIndex int32

	rng         *rand.Rand
	mergeRule   MergeRule
	mergeLog    []MergeRecord
	mergeLogCap int

	spatialIndexEnabled bool
	rtree               *rtreego.Rtree

	constraints []constraintRecord

	diag diagnostics
}

type diagnostics struct {
	walkCount       int64
	testCount       int64
	exteriorWalks   int64
	totalSteps      int64
	extendedWalks   int64
}

// NewTin constructs an empty Tin whose geometric tolerances derive from
// nominalSpacing (spec.md §6 "new_tin(nominal_spacing)").
func NewTin(nominalSpacing float64, opts ...Option) (*Tin, error) {
	k, err := kernel.NewKernel(nominalSpacing)
	if err != nil {
		return nil, err
	}

	t := &Tin{
		kernel:              k,
		pool:                quadedge.NewPool(),
		conformant:          true,
		mergeRule:           MergeKeepFirst,
		mergeLogCap:         64,
		spatialIndexEnabled: true,
		rng:                 rand.New(rand.NewSource(1)),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.spatialIndexEnabled {
		t.rtree = rtreego.NewTree(2, 4, 16)
	}

	return t, nil
}

// Kernel returns the geometric kernel backing this Tin's predicates.
func (t *Tin) Kernel() *kernel.Kernel { return t.kernel }

// Pool returns the quad-edge pool backing this Tin. The constraint and
// refine packages operate directly on the returned pool in addition to
// calling Tin's own exported methods.
func (t *Tin) Pool() *quadedge.Pool { return t.pool }

// IsBootstrapped reports whether the initial triangle has been created.
func (t *Tin) IsBootstrapped() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.bootstrapped
}

// IsLocked reports whether mutation is currently refused.
func (t *Tin) IsLocked() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.locked
}

// Lock refuses further mutation while permitting concurrent read-only
// queries from independent Navigators (spec.md §5).
func (t *Tin) Lock() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.locked = true
}

// IsConformant reports spec.md §4.5.4's isConformant(): false once any
// CONSTRAINED edge has been inserted.
func (t *Tin) IsConformant() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.conformant
}

// MarkNonConformant flips IsConformant to false. Called by the constraint
// package the first time it stamps CONSTRAINED on an edge.
func (t *Tin) MarkNonConformant() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.conformant = false
}

// Bounds returns the axis-aligned bounding box of every real vertex
// inserted so far, and false if no vertex has been inserted.
func (t *Tin) Bounds() (Bounds, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.bounds, t.hasBounds
}

func (t *Tin) expandBounds(v *quadedge.Vertex) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.hasBounds {
		t.bounds = Bounds{MinX: v.X, MinY: v.Y, MaxX: v.X, MaxY: v.Y}
		t.hasBounds = true
		return
	}
	if v.X < t.bounds.MinX {
		t.bounds.MinX = v.X
	}
	if v.Y < t.bounds.MinY {
		t.bounds.MinY = v.Y
	}
	if v.X > t.bounds.MaxX {
		t.bounds.MaxX = v.X
	}
	if v.Y > t.bounds.MaxY {
		t.bounds.MaxY = v.Y
	}
}

// checkMutable returns ErrTinLocked if the Tin refuses mutation.
func (t *Tin) checkMutable() error {
	if t.IsLocked() {
		return ErrTinLocked
	}

	return nil
}

// NextConstraintIndex reserves and returns the next unique constraint
// index, assigned by the managing TIN as spec.md §3 requires.
func (t *Tin) NextConstraintIndex() int32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	idx := int32(len(t.constraints))
	t.constraints = append(t.constraints, constraintRecord{})

	return idx
}

// RecordConstraint stores the linking edge for constraint index idx
// (spec.md §3: "a back-reference to one of its constraint edges").
func (t *Tin) RecordConstraint(idx int32, linkingEdge int32, isRegion bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.constraints[idx] = constraintRecord{linkingEdge: linkingEdge, isRegion: isRegion}
}

// ConstraintLinkingEdge returns the recorded linking edge for constraint
// index idx.
func (t *Tin) ConstraintLinkingEdge(idx int32) (int32, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if idx < 0 || int(idx) >= len(t.constraints) {
		return 0, false
	}

	return t.constraints[idx].linkingEdge, true
}

// SearchEdge returns the engine's warm-start locator edge, and whether one
// has been set yet (false before bootstrap).
func (t *Tin) SearchEdge() (int32, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.searchEdge, t.hasSearchEdge
}

// SetSearchEdge updates the warm-start locator edge (spec.md §4.4.5).
func (t *Tin) SetSearchEdge(e int32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.searchEdge = e
	t.hasSearchEdge = true
}

// Clear discards every vertex, edge, and constraint, restoring the Tin to
// its just-constructed state (other than configuration options).
func (t *Tin) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.pool.Clear()
	t.bounds = Bounds{}
	t.hasBounds = false
	t.hasSearchEdge = false
	t.bootstrapped = false
	t.locked = false
	t.conformant = true
	t.staging = nil
	t.nextVertexIndex = 0
	t.constraints = nil
	t.diag = diagnostics{}
	if t.spatialIndexEnabled {
		t.rtree = rtreego.NewTree(2, 4, 16)
	}
}

// MergeLog returns a copy of the bounded vertex-merge audit trail.
func (t *Tin) MergeLog() []MergeRecord {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]MergeRecord, len(t.mergeLog))
	copy(out, t.mergeLog)

	return out
}

func (t *Tin) appendMergeLog(rec MergeRecord) {
	t.mergeLog = append(t.mergeLog, rec)
	if len(t.mergeLog) > t.mergeLogCap {
		t.mergeLog = t.mergeLog[len(t.mergeLog)-t.mergeLogCap:]
	}
}
