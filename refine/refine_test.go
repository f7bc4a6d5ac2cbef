package refine

import (
	"testing"

	"github.com/katalvlaran/gotin/constraint"
	"github.com/katalvlaran/gotin/tin"
	"github.com/stretchr/testify/require"
)

func newGrid(t *testing.T, n int) *tin.Tin {
	tn, err := tin.NewTin(1.0, tin.WithSeed(7))
	require.NoError(t, err)

	var pts []tin.Input
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			pts = append(pts, tin.Input{X: float64(x), Y: float64(y)})
		}
	}
	require.NoError(t, tn.AddVertices(pts, tin.AsIs))

	return tn
}

func TestRefineConvergesOnGrid(t *testing.T) {
	tn := newGrid(t, 4)

	res, err := Refine(tn, WithMinAngleDeg(20), WithMaxIterations(2000))
	require.NoError(t, err)
	require.True(t, res.Converged)

	tris, err := tn.GetTriangles()
	require.NoError(t, err)

	o := resolveOptions([]Option{WithMinAngleDeg(20)})
	for _, tri := range tris {
		_, bad := isBadTriangle(o, tri.A.Point(), tri.B.Point(), tri.C.Point())
		require.False(t, bad, "triangle at edge %d still fails the quality bound after convergence", tri.Edge)
	}
}

func TestRefineSplitsEncroachedSegment(t *testing.T) {
	tn := newGrid(t, 3)

	_, err := constraint.InsertSegment(tn, tin.Input{X: 0, Y: 0}, tin.Input{X: 2, Y: 1})
	require.NoError(t, err)

	// A vertex close to the constrained segment's midpoint, well inside
	// its diametral circle, forces an encroachment Refine must resolve by
	// splitting the segment.
	require.NoError(t, tn.AddVertex(1.0, 0.52, 0))

	res, err := Refine(tn, WithMaxIterations(500))
	require.NoError(t, err)
	require.True(t, res.Converged)
	require.Greater(t, res.SegmentsSplit, 0)

	segs, err := tn.GetEdges()
	require.NoError(t, err)

	pool := tn.Pool()
	for _, e := range segs {
		if !e.Constrained {
			continue
		}
		p, q := e.A.Point(), e.B.Point()
		apex1 := pool.Dest(pool.Next(e.DirectedRef))
		if !apex1.IsNull() {
			require.False(t, isEncroached(p, q, apex1.Point()))
		}
	}
}

func TestRefineRespectsMaxIterations(t *testing.T) {
	tn := newGrid(t, 6)

	res, err := Refine(tn, WithMinAngleDeg(33), WithMaxIterations(1))
	require.NoError(t, err)
	require.LessOrEqual(t, res.Iterations, 1)
}
