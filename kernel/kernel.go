package kernel

import (
	"errors"
	"sync/atomic"
)

// ErrNonPositiveSpacing indicates that NewKernel was given a spacing <= 0.
var ErrNonPositiveSpacing = errors.New("kernel: nominal spacing must be positive")

// Point is a bare 2-D coordinate. Kernel predicates operate on Point rather
// than on any richer vertex type so that quadedge, tin, constraint, and
// refine can each supply their own vertex representation without creating
// an import cycle back into kernel.
type Point struct {
	X, Y float64
}

// Kernel evaluates geometric predicates at a tolerance derived from a
// caller-supplied nominal point spacing (see NewKernel). A Kernel is safe
// for concurrent use: the only mutable state is an atomic fallback counter.
type Kernel struct {
	spacing float64

	// vertexCoincidenceThreshold, onEdgeThreshold and inCircleScale are the
	// threshold policy values from spec.md ​§4.1.
	vertexCoincidenceThreshold float64
	onEdgeThreshold            float64
	inCircleScale              float64

	fallbackCount int64 // atomic: number of extended-precision evaluations
	testCount     int64 // atomic: number of predicate evaluations total
}

// NewKernel derives a Kernel's tolerance thresholds from a nominal point
// spacing s (the typical distance between neighbouring input vertices).
// Complexity: O(1).
func NewKernel(nominalSpacing float64) (*Kernel, error) {
	if !(nominalSpacing > 0) {
		return nil, ErrNonPositiveSpacing
	}

	return &Kernel{
		spacing:                    nominalSpacing,
		vertexCoincidenceThreshold: nominalSpacing * 1e-13,
		onEdgeThreshold:            nominalSpacing * 1e-10,
		inCircleScale:              nominalSpacing * nominalSpacing,
	}, nil
}

// NominalSpacing returns the spacing this Kernel was constructed with.
func (k *Kernel) NominalSpacing() float64 { return k.spacing }

// VertexCoincidenceThreshold returns s·1e-13: two vertices closer than this
// are treated as the same logical location by the insertion path.
func (k *Kernel) VertexCoincidenceThreshold() float64 { return k.vertexCoincidenceThreshold }

// OnEdgeThreshold returns s·1e-10: the distance from a query point to an
// edge's supporting line below which the point is considered to lie on
// the edge.
func (k *Kernel) OnEdgeThreshold() float64 { return k.onEdgeThreshold }

// InCircleScale returns s², used to scale the in-circle determinant's
// rounding-error bound to the input's magnitude.
func (k *Kernel) InCircleScale() float64 { return k.inCircleScale }

// FallbackCount reports how many predicate evaluations fell through to the
// extended-precision path since construction.
func (k *Kernel) FallbackCount() int64 { return atomic.LoadInt64(&k.fallbackCount) }

// TestCount reports the total number of predicate evaluations performed.
func (k *Kernel) TestCount() int64 { return atomic.LoadInt64(&k.testCount) }

// FallbackRate reports FallbackCount/TestCount, or 0 if no tests have run.
func (k *Kernel) FallbackRate() float64 {
	n := atomic.LoadInt64(&k.testCount)
	if n == 0 {
		return 0
	}

	return float64(atomic.LoadInt64(&k.fallbackCount)) / float64(n)
}

func (k *Kernel) recordTest()     { atomic.AddInt64(&k.testCount, 1) }
func (k *Kernel) recordFallback() { atomic.AddInt64(&k.fallbackCount, 1) }
