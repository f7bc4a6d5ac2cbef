package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrient(t *testing.T) {
	k, err := NewKernel(1.0)
	require.NoError(t, err)

	tests := []struct {
		name     string
		a, b, c  Point
		expected int
	}{
		{"ccw_turn", Point{0, 0}, Point{1, 0}, Point{0, 1}, 1},
		{"cw_turn", Point{0, 0}, Point{0, 1}, Point{1, 0}, -1},
		{"collinear", Point{0, 0}, Point{1, 0}, Point{2, 0}, 0},
		{"collinear_reversed", Point{2, 0}, Point{1, 0}, Point{0, 0}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := k.Orient(tc.a, tc.b, tc.c)
			require.Equal(t, tc.expected, got)
		})
	}
}

func TestOrientNearDegenerate(t *testing.T) {
	k, err := NewKernel(1.0)
	require.NoError(t, err)

	// A tiny perturbation off the x-axis; the fast path's rounding error
	// bound must not be fooled into reporting collinear.
	a := Point{0, 0}
	b := Point{1, 0}
	c := Point{0.5, 1e-20}
	require.Equal(t, 1, k.Orient(a, b, c))
	require.Greater(t, k.FallbackCount(), int64(0))
}

func TestInCircle(t *testing.T) {
	k, err := NewKernel(1.0)
	require.NoError(t, err)

	// Unit circle triangle, CCW.
	a := Point{1, 0}
	b := Point{0, 1}
	c := Point{-1, 0}

	require.Equal(t, 1, k.InCircle(a, b, c, Point{0, 0}), "origin is inside the unit circle")
	require.Equal(t, -1, k.InCircle(a, b, c, Point{10, 10}), "far point is outside")
	require.Equal(t, 0, k.InCircle(a, b, c, Point{0, -1}), "fourth point on the same circle")
}

func TestCircumcircle(t *testing.T) {
	k, err := NewKernel(1.0)
	require.NoError(t, err)

	a := Point{1, 0}
	b := Point{0, 1}
	c := Point{-1, 0}

	cx, cy, r2, ok := k.Circumcircle(a, b, c)
	require.True(t, ok)
	require.InDelta(t, 0, cx, 1e-9)
	require.InDelta(t, 0, cy, 1e-9)
	require.InDelta(t, 1, r2, 1e-9)
}

func TestCircumcircleCollinear(t *testing.T) {
	k, err := NewKernel(1.0)
	require.NoError(t, err)

	_, _, _, ok := k.Circumcircle(Point{0, 0}, Point{1, 0}, Point{2, 0})
	require.False(t, ok)
}

func TestThresholds(t *testing.T) {
	k, err := NewKernel(2.0)
	require.NoError(t, err)

	require.InDelta(t, 2e-13, k.VertexCoincidenceThreshold(), 1e-20)
	require.InDelta(t, 2e-10, k.OnEdgeThreshold(), 1e-17)
	require.InDelta(t, 4.0, k.InCircleScale(), 1e-12)
}

func TestNewKernelRejectsNonPositiveSpacing(t *testing.T) {
	_, err := NewKernel(0)
	require.ErrorIs(t, err, ErrNonPositiveSpacing)

	_, err = NewKernel(-1)
	require.ErrorIs(t, err, ErrNonPositiveSpacing)
}
