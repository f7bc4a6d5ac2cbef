package tin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTinRejectsNonPositiveSpacing(t *testing.T) {
	_, err := NewTin(0)
	require.Error(t, err)
}

func TestSingleTriangleBootstrap(t *testing.T) {
	tn, err := NewTin(1.0, WithSeed(7))
	require.NoError(t, err)

	require.NoError(t, tn.AddVertex(0, 0, 0))
	require.NoError(t, tn.AddVertex(1, 0, 0))
	require.False(t, tn.IsBootstrapped(), "bootstrap needs three non-collinear vertices")

	require.NoError(t, tn.AddVertex(0, 1, 0))
	require.True(t, tn.IsBootstrapped())

	tris, err := tn.GetTriangles()
	require.NoError(t, err)
	require.Len(t, tris, 1)

	edges, err := tn.GetEdges()
	require.NoError(t, err)
	require.Len(t, edges, 3)
}

func TestCollinearStagingDoesNotBootstrap(t *testing.T) {
	tn, err := NewTin(1.0)
	require.NoError(t, err)

	require.NoError(t, tn.AddVertex(0, 0, 0))
	require.NoError(t, tn.AddVertex(1, 0, 0))
	require.NoError(t, tn.AddVertex(2, 0, 0))
	require.False(t, tn.IsBootstrapped())

	require.NoError(t, tn.AddVertex(0, 1, 0))
	require.True(t, tn.IsBootstrapped())
}

func TestTwoByTwoSquareInteriorSplit(t *testing.T) {
	tn, err := NewTin(1.0, WithSeed(1))
	require.NoError(t, err)

	pts := []Input{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2},
	}
	require.NoError(t, tn.AddVertices(pts, AsIs))
	require.NoError(t, tn.AddVertex(1, 1, 0))

	tris, err := tn.GetTriangles()
	require.NoError(t, err)
	require.Len(t, tris, 4)
}

func TestFiveByFiveGridProducesExpectedTriangleCount(t *testing.T) {
	tn, err := NewTin(1.0, WithSeed(42))
	require.NoError(t, err)

	var pts []Input
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			pts = append(pts, Input{X: float64(x), Y: float64(y)})
		}
	}
	require.NoError(t, tn.AddVertices(pts, AsIs))

	tris, err := tn.GetTriangles()
	require.NoError(t, err)
	require.Len(t, tris, 32, "a convex-hull triangulation of a 5x5 grid has 2*(5-1)*(5-1) = 32 triangles")
}

func TestDuplicateVertexMergeKeepFirst(t *testing.T) {
	tn, err := NewTin(1.0)
	require.NoError(t, err)
	require.NoError(t, tn.AddVertex(0, 0, 0))
	require.NoError(t, tn.AddVertex(1, 0, 0))
	require.NoError(t, tn.AddVertex(0, 1, 0))

	require.NoError(t, tn.AddVertex(0, 0, 99))
	require.Len(t, tn.MergeLog(), 1)
	require.Equal(t, float32(0), tn.MergeLog()[0].Survivor.Z, "MergeKeepFirst keeps the original Z")
}

func TestDuplicateVertexMergeReject(t *testing.T) {
	tn, err := NewTin(1.0, WithMergeRule(MergeReject))
	require.NoError(t, err)
	require.NoError(t, tn.AddVertex(0, 0, 0))
	require.NoError(t, tn.AddVertex(1, 0, 0))
	require.NoError(t, tn.AddVertex(0, 1, 0))

	require.ErrorIs(t, tn.AddVertex(0, 0, 1), ErrDuplicateVertex)
}

func TestLockPreventsMutation(t *testing.T) {
	tn, err := NewTin(1.0)
	require.NoError(t, err)
	require.NoError(t, tn.AddVertex(0, 0, 0))
	require.NoError(t, tn.AddVertex(1, 0, 0))
	require.NoError(t, tn.AddVertex(0, 1, 0))

	tn.Lock()
	require.ErrorIs(t, tn.AddVertex(5, 5, 0), ErrTinLocked)
}

func TestHullExtensionKeepsConvexity(t *testing.T) {
	tn, err := NewTin(1.0, WithSeed(3))
	require.NoError(t, err)
	pts := []Input{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 2},
		{X: 3, Y: 1}, // outside the first triangle's hull
	}
	require.NoError(t, tn.AddVertices(pts, AsIs))

	tris, err := tn.GetTriangles()
	require.NoError(t, err)
	require.Len(t, tris, 2)
}

func TestGetPerimeterIsClosedRing(t *testing.T) {
	tn, err := NewTin(1.0, WithSeed(1))
	require.NoError(t, err)
	pts := []Input{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}
	require.NoError(t, tn.AddVertices(pts, AsIs))

	ring, err := tn.GetPerimeter()
	require.NoError(t, err)
	require.Len(t, ring, 4)
}

func TestTriangleIteratorStalesAfterClear(t *testing.T) {
	tn, err := NewTin(1.0)
	require.NoError(t, err)
	require.NoError(t, tn.AddVertex(0, 0, 0))
	require.NoError(t, tn.AddVertex(1, 0, 0))
	require.NoError(t, tn.AddVertex(0, 1, 0))

	it := tn.NewTriangleIterator()
	tn.Clear()

	_, _, err = it.Next()
	require.ErrorIs(t, err, ErrStaleIterator)
}

func TestBarycentricWeightsSumToOne(t *testing.T) {
	tn, err := NewTin(1.0)
	require.NoError(t, err)
	require.NoError(t, tn.AddVertex(0, 0, 0))
	require.NoError(t, tn.AddVertex(4, 0, 0))
	require.NoError(t, tn.AddVertex(0, 4, 0))

	tris, err := tn.GetTriangles()
	require.NoError(t, err)
	require.Len(t, tris, 1)

	u, v, w := Barycentric(tris[0], 1, 1)
	require.InDelta(t, 1.0, u+v+w, 1e-9)
}

func TestStatsString(t *testing.T) {
	tn, err := NewTin(1.0)
	require.NoError(t, err)
	require.NoError(t, tn.AddVertex(0, 0, 0))
	require.NoError(t, tn.AddVertex(1, 0, 0))
	require.NoError(t, tn.AddVertex(0, 1, 0))

	s := tn.Stats()
	require.Equal(t, 3, s.VertexCount)
	require.Equal(t, 1, s.TriangleCount)
	require.NotEmpty(t, s.String())
}
