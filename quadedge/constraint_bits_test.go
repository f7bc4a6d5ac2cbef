package quadedge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetBorderIndexImpliesFlags(t *testing.T) {
	p := NewPool()
	e := p.Allocate(NewVertex(0, 0, 0, 0), NewVertex(1, 0, 0, 1))

	require.NoError(t, p.SetBorderIndex(e, 7))
	require.Equal(t, int32(7), p.BorderIndex(e))
	require.True(t, p.IsRegionBorder(e))
	require.True(t, p.IsRegionMember(e))
	require.True(t, p.IsConstrained(e))
}

func TestSetRegionInteriorIndexClearsConstrained(t *testing.T) {
	p := NewPool()
	e := p.Allocate(NewVertex(0, 0, 0, 0), NewVertex(1, 0, 0, 1))
	p.SetConstrained(e, true)

	require.NoError(t, p.SetRegionInteriorIndex(e, 3))
	require.Equal(t, int32(3), p.RegionInteriorIndex(e))
	require.True(t, p.IsRegionMember(e))
	require.False(t, p.IsConstrained(e), "region-interior index must clear CONSTRAINED")
}

func TestClearBorderIndexPreservesFlags(t *testing.T) {
	// spec.md §9 Open Question 2: writing -1 clears only the index field.
	p := NewPool()
	e := p.Allocate(NewVertex(0, 0, 0, 0), NewVertex(1, 0, 0, 1))
	require.NoError(t, p.SetBorderIndex(e, 5))

	require.NoError(t, p.SetBorderIndex(e, -1))
	require.Equal(t, int32(-1), p.BorderIndex(e))
	require.True(t, p.IsRegionBorder(e), "REGION_BORDER must survive clearing the index")
	require.True(t, p.IsRegionMember(e), "REGION_MEMBER must survive clearing the index")
}

func TestLineAndBorderIndexCoexist(t *testing.T) {
	// spec.md §8 property 6 ("the 2024 fix"): setting a line index must not
	// disturb the border index, and vice versa.
	p := NewPool()
	e := p.Allocate(NewVertex(0, 0, 0, 0), NewVertex(1, 0, 0, 1))

	require.NoError(t, p.SetBorderIndex(e, 12))
	require.NoError(t, p.SetLineIndex(e, 34))

	require.Equal(t, int32(12), p.BorderIndex(e))
	require.Equal(t, int32(34), p.LineIndex(e))
	require.True(t, p.IsLineMember(e))
	require.True(t, p.IsRegionBorder(e))
}

func TestIndexOutOfRangeRejected(t *testing.T) {
	p := NewPool()
	e := p.Allocate(NewVertex(0, 0, 0, 0), NewVertex(1, 0, 0, 1))

	require.ErrorIs(t, p.SetBorderIndex(e, 32767), ErrIndexOutOfRange)
	require.ErrorIs(t, p.SetLineIndex(e, 4095), ErrIndexOutOfRange)
	require.NoError(t, p.SetBorderIndex(e, 32766))
	require.NoError(t, p.SetLineIndex(e, 4094))
}

func TestConstraintBitsAccessibleViaEitherDirection(t *testing.T) {
	p := NewPool()
	e := p.Allocate(NewVertex(0, 0, 0, 0), NewVertex(1, 0, 0, 1))
	d := Dual(e)

	require.NoError(t, p.SetLineIndex(e, 9))
	require.Equal(t, int32(9), p.LineIndex(d), "constraint word is shared by both directions of the pair")
}
