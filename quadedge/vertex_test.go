package quadedge

import (
	"testing"

	"github.com/katalvlaran/gotin/kernel"
	"github.com/stretchr/testify/require"
)

func TestNullVertexIsNull(t *testing.T) {
	require.True(t, NullVertex.IsNull())
	require.False(t, NewVertex(0, 0, 0, 0).IsNull())
}

func TestIdentityNotCoordinateEquality(t *testing.T) {
	a := NewVertex(1, 1, 0, 0)
	b := NewVertex(1, 1, 0, 1)
	require.NotSame(t, a, b, "two distinct vertex records at the same coordinates are distinct identities")
}

func TestMarkConstraintMember(t *testing.T) {
	v := NewVertex(0, 0, 0, 0)
	require.False(t, v.IsConstraintMember())
	v.MarkConstraintMember()
	require.True(t, v.IsConstraintMember())
}

func TestCoincident(t *testing.T) {
	k, err := kernel.NewKernel(1.0)
	require.NoError(t, err)

	a := NewVertex(0, 0, 0, 0)
	b := NewVertex(1e-15, 0, 0, 1)
	c := NewVertex(1, 1, 0, 2)

	require.True(t, Coincident(k, a, b))
	require.False(t, Coincident(k, a, c))
	require.False(t, Coincident(k, a, NullVertex))
}
