package geom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRectContains(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 100, H: 200}
	require.True(t, r.Contains(Point{0, 0}))
	require.True(t, r.Contains(Point{100, 200}))
	require.False(t, r.Contains(Point{100.1, 0}))
}

func TestClamp(t *testing.T) {
	require.Equal(t, 0.0, Clamp(-5, 0, 10))
	require.Equal(t, 10.0, Clamp(50, 0, 10))
	require.Equal(t, 5.0, Clamp(5, 0, 10))
}

func TestAnimatedValueReachesTarget(t *testing.T) {
	var v AnimatedValue
	v.Current = 0
	v.AnimateTo(100, 1.0)
	done := false
	for i := 0; i < 120 && !done; i++ {
		done = v.Step(1.0 / 60.0)
	}
	require.True(t, done)
	require.InDelta(t, 100.0, v.Current, 0.001)
}

func TestPointDistance(t *testing.T) {
	require.InDelta(t, 5.0, Point{0, 0}.Distance(Point{3, 4}), 0.0001)
}
