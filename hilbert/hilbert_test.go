package hilbert

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDeterministic(t *testing.T) {
	a := Encode(0.3, 0.7, 0, 0, 1, 1, DefaultOrder)
	b := Encode(0.3, 0.7, 0, 0, 1, 1, DefaultOrder)
	require.Equal(t, a, b)
}

func TestEncodeCorners(t *testing.T) {
	origin := Encode(0, 0, 0, 0, 1, 1, DefaultOrder)
	opposite := Encode(1, 1, 0, 0, 1, 1, DefaultOrder)
	require.NotEqual(t, origin, opposite)
}

func TestEncodeAdjacentCellsStayWithinCurveLength(t *testing.T) {
	a := Encode(0.5, 0.5, 0, 0, 1, 1, 8)
	b := Encode(0.5+1.0/256, 0.5, 0, 0, 1, 1, 8)
	// cells 127 and 128 on the x axis straddle the curve's central seam, so
	// their indices (10922 and 54613) are far apart; the bound below is the
	// order-8 curve's full length of 1<<16 cells
	diff := int64(a) - int64(b)
	if diff < 0 {
		diff = -diff
	}
	require.Less(t, diff, int64(1<<16))
}

func TestRescaleClampsOutOfRange(t *testing.T) {
	require.Equal(t, uint64(0), rescale(-5, 0, 1, 256))
	require.Equal(t, uint64(255), rescale(5, 0, 1, 256))
}
