package constraint

import (
	"testing"

	"github.com/katalvlaran/gotin/kernel"
	"github.com/katalvlaran/gotin/tin"
	"github.com/stretchr/testify/require"
)

func newGrid(t *testing.T, n int) *tin.Tin {
	tn, err := tin.NewTin(1.0, tin.WithSeed(11))
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

func directedEdgeBetween(t *testing.T, tn *tin.Tin, a, b tin.Input) int32 {
	t.Helper()
	e, loc, err := tn.Navigator().Locate(kernel.Point{X: a.X, Y: a.Y})
	require.NoError(t, err)
	require.Equal(t, tin.LocOnVertex, loc)

	pool := tn.Pool()
	av := pool.Orig(e)
	for _, cand := range pool.Pinwheel(e, 1<<10) {
		if pool.Dest(cand).X == b.X && pool.Dest(cand).Y == b.Y {
			return cand
		}
	}
	t.Fatalf("no edge found from (%v,%v) to (%v,%v), anchor vertex %v", a.X, a.Y, b.X, b.Y, av)

	return 0
}

func TestInsertSegmentOnExistingEdge(t *testing.T) {
	tn := newGrid(t, 2)

	idx, err := InsertSegment(tn, tin.Input{X: 0, Y: 0}, tin.Input{X: 1, Y: 0})
	require.NoError(t, err)
	require.GreaterOrEqual(t, idx, int32(0))
	require.False(t, tn.IsConformant())

	e := directedEdgeBetween(t, tn, tin.Input{X: 0, Y: 0}, tin.Input{X: 1, Y: 0})
	require.True(t, tn.Pool().IsConstrained(e))
	require.True(t, tn.Pool().IsLineMember(e))
}

func TestInsertSegmentTunnelsAcrossGrid(t *testing.T) {
	tn := newGrid(t, 3)

	// (0,0)-(2,1) is not collinear with any existing grid vertex, so it
	// genuinely forces a tunnel through whichever edges the triangulation
	// happened to put in its way.
	_, err := InsertSegment(tn, tin.Input{X: 0, Y: 0}, tin.Input{X: 2, Y: 1})
	require.NoError(t, err)

	e := directedEdgeBetween(t, tn, tin.Input{X: 0, Y: 0}, tin.Input{X: 2, Y: 1})
	require.True(t, tn.Pool().IsConstrained(e))
	require.True(t, tn.Pool().IsLineMember(e))
}

func TestCrossingConstraintRejectedByDefault(t *testing.T) {
	tn := newGrid(t, 3)

	_, err := InsertSegment(tn, tin.Input{X: 0, Y: 0}, tin.Input{X: 2, Y: 1})
	require.NoError(t, err)

	_, err = InsertSegment(tn, tin.Input{X: 0, Y: 1}, tin.Input{X: 2, Y: 0})
	require.ErrorIs(t, err, ErrCrossingConstraint)
}

func TestCrossingConstraintAllowedWithOption(t *testing.T) {
	tn := newGrid(t, 3)

	_, err := InsertSegment(tn, tin.Input{X: 0, Y: 0}, tin.Input{X: 2, Y: 1})
	require.NoError(t, err)

	_, err = InsertSegment(tn, tin.Input{X: 0, Y: 1}, tin.Input{X: 2, Y: 0}, WithCrossingAllowed(true))
	require.NoError(t, err)
}

func TestAddLinearConstraintSharesOneIndex(t *testing.T) {
	tn := newGrid(t, 3)

	lc := LinearConstraint{Points: []tin.Input{
		{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2},
	}}
	require.NoError(t, AddLinearConstraint(tn, lc))

	e1 := directedEdgeBetween(t, tn, tin.Input{X: 0, Y: 0}, tin.Input{X: 1, Y: 1})
	e2 := directedEdgeBetween(t, tn, tin.Input{X: 1, Y: 1}, tin.Input{X: 2, Y: 2})
	require.Equal(t, tn.Pool().LineIndex(e1), tn.Pool().LineIndex(e2))
}

func TestAddPolygonConstraintMarksBordersAndInterior(t *testing.T) {
	tn := newGrid(t, 5)

	// Offset from the grid's own vertices and axes so that no border
	// segment is collinear with an existing vertex along its open interior.
	pc := PolygonConstraint{
		Points: []tin.Input{
			{X: 0.5, Y: 0.5}, {X: 3.5, Y: 0.7}, {X: 3.3, Y: 3.5}, {X: 0.7, Y: 3.3},
		},
		RegionIndex: 0,
	}
	require.NoError(t, AddPolygonConstraint(tn, pc))

	border := directedEdgeBetween(t, tn, tin.Input{X: 0.5, Y: 0.5}, tin.Input{X: 3.5, Y: 0.7})
	require.True(t, tn.Pool().IsRegionBorder(border))
	require.True(t, tn.Pool().IsConstrained(border))

	e, loc, err := tn.Navigator().Locate(kernel.Point{X: 2, Y: 2})
	require.NoError(t, err)
	require.NotEqual(t, tin.LocExterior, loc)
	require.Equal(t, int32(0), tn.Pool().RegionInteriorIndex(e))
}

func TestAddPolygonConstraintRejectsTooFewPoints(t *testing.T) {
	tn := newGrid(t, 2)

	err := AddPolygonConstraint(tn, PolygonConstraint{
		Points:      []tin.Input{{X: 0, Y: 0}, {X: 1, Y: 0}},
		RegionIndex: -1,
	})
	require.ErrorIs(t, err, ErrUnclosedPolygon)
}
