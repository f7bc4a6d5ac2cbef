package quadedge

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildTriangle allocates three half-edges A->B->C->A and threads them into
// a single face loop, returning the edge A->B.
func buildTriangle(p *Pool, a, b, c *Vertex) int32 {
	ab := p.Allocate(a, b)
	bc := p.Allocate(b, c)
	ca := p.Allocate(c, a)
	p.Splice(ab, bc)
	p.Splice(bc, ca)
	p.Splice(ca, ab)

	return ab
}

func TestFaceLoopNavigation(t *testing.T) {
	p := NewPool()
	a := NewVertex(0, 0, 0, 0)
	b := NewVertex(1, 0, 0, 1)
	c := NewVertex(0, 1, 0, 2)

	ab := buildTriangle(p, a, b, c)
	tri := p.Triangle(ab)

	require.Equal(t, ab, tri[0])
	require.Same(t, a, p.Orig(tri[0]))
	require.Same(t, b, p.Orig(tri[1]))
	require.Same(t, c, p.Orig(tri[2]))
	require.Equal(t, ab, p.Next(tri[2]), "face loop must close after three edges")
	require.Equal(t, ab, p.Prev(tri[1]))
}

func TestPinwheelFirstStep(t *testing.T) {
	p := NewPool()
	a := NewVertex(0, 0, 0, 0)
	b := NewVertex(1, 0, 0, 1)
	c := NewVertex(0, 1, 0, 2)
	ab := buildTriangle(p, a, b, c)
	ca := p.Prev(ab)

	ring := p.Pinwheel(ab, 2)
	require.Equal(t, ab, ring[0])
	require.Equal(t, Dual(ca), ring[1], "second pinwheel step is Dual(Prev(e))")
	require.Same(t, a, p.Orig(ring[1]), "pinwheel stays anchored at the same origin vertex")
}

func TestLengthOfGhostEdgeIsInfinite(t *testing.T) {
	p := NewPool()
	a := NewVertex(0, 0, 0, 0)
	e := p.Allocate(a, NullVertex)
	require.True(t, math.IsInf(p.Length(e), 1))
}

func TestLengthSq(t *testing.T) {
	p := NewPool()
	a := NewVertex(0, 0, 0, 0)
	b := NewVertex(3, 4, 0, 1)
	e := p.Allocate(a, b)
	require.InDelta(t, 25.0, p.LengthSq(e), 1e-9)
}

func TestIsGhost(t *testing.T) {
	p := NewPool()
	a := NewVertex(0, 0, 0, 0)
	b := NewVertex(1, 0, 0, 1)
	realTri := buildTriangle(p, a, b, NewVertex(0, 1, 0, 2))
	require.False(t, p.IsGhost(realTri))

	ghostTri := buildTriangle(p, b, a, NullVertex)
	require.True(t, p.IsGhost(ghostTri))
}
