package quadedge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllocateAssignsEndpoints(t *testing.T) {
	p := NewPool()
	a := NewVertex(0, 0, 0, 0)
	b := NewVertex(1, 0, 0, 1)

	e := p.Allocate(a, b)
	require.Equal(t, int32(0), e)
	require.Equal(t, int32(0), e&1, "base index must be even")
	require.Same(t, a, p.Orig(e))
	require.Same(t, b, p.Dest(e))
	require.Same(t, b, p.Orig(Dual(e)))
	require.Same(t, a, p.Dest(Dual(e)))
	require.Equal(t, int32(1), p.Len())
}

func TestDualClosure(t *testing.T) {
	p := NewPool()
	e := p.Allocate(NewVertex(0, 0, 0, 0), NewVertex(1, 1, 0, 1))
	require.Equal(t, e, Dual(Dual(e)))
}

func TestFreeListReuse(t *testing.T) {
	p := NewPool()
	e1 := p.Allocate(NewVertex(0, 0, 0, 0), NewVertex(1, 0, 0, 1))
	require.True(t, p.IsLive(e1))

	p.Free(e1)
	require.False(t, p.IsLive(e1))
	require.Equal(t, int32(0), p.Len())

	e2 := p.Allocate(NewVertex(2, 2, 0, 2), NewVertex(3, 3, 0, 3))
	require.Equal(t, e1, e2, "stack-discipline free-list reuse must return the same index")
	require.True(t, p.IsLive(e2))
}

func TestIterAllocatedSkipsFreed(t *testing.T) {
	p := NewPool()
	e1 := p.Allocate(NewVertex(0, 0, 0, 0), NewVertex(1, 0, 0, 1))
	e2 := p.Allocate(NewVertex(1, 0, 0, 1), NewVertex(1, 1, 0, 2))
	_ = p.Allocate(NewVertex(1, 1, 0, 2), NewVertex(0, 0, 0, 0))

	p.Free(e2)

	live := p.IterAllocated()
	require.Len(t, live, 2)
	require.Contains(t, live, e1)
	require.NotContains(t, live, e2)
}

func TestAllocateGrowsAcrossPages(t *testing.T) {
	p := NewPool()
	v := NewVertex(0, 0, 0, 0)
	var last int32
	for i := 0; i < pagePairs+5; i++ {
		last = p.Allocate(v, v)
	}
	require.Equal(t, int32(2*(pagePairs+4)), last)
	require.Equal(t, int32(pagePairs+5), p.Len())
}

func TestClearResetsAndBumpsEpoch(t *testing.T) {
	p := NewPool()
	p.Allocate(NewVertex(0, 0, 0, 0), NewVertex(1, 0, 0, 1))
	e0 := p.Epoch()
	p.Clear()
	require.Equal(t, int32(0), p.Len())
	require.Equal(t, e0+1, p.Epoch())
}
