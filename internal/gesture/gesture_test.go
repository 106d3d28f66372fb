package gesture

import (
	"testing"
	"time"

	"github.com/flickos/flick/internal/geom"
	"github.com/stretchr/testify/require"
)

func TestEdgeSwipeOpensQS(t *testing.T) {
	r := New(geom.Size{W: 1080, H: 2400}, DefaultConfig())
	t0 := time.Unix(0, 0)

	evs := r.TouchDown(0, geom.Point{X: 10, Y: 1200}, t0)
	require.Empty(t, evs)

	evs = r.TouchMotion(0, geom.Point{X: 45, Y: 1200}, t0.Add(10*time.Millisecond))
	require.Len(t, evs, 1)
	require.Equal(t, EventEdgeSwipeStart, evs[0].Kind)
	require.Equal(t, EdgeLeft, evs[0].Edge)

	evs = r.TouchMotion(0, geom.Point{X: 310, Y: 1200}, t0.Add(20*time.Millisecond))
	require.Len(t, evs, 1)
	require.Equal(t, EventEdgeSwipeUpdate, evs[0].Kind)
	require.InDelta(t, 1.0, evs[0].Progress, 0.001)

	evs = r.TouchUp(0, t0.Add(30*time.Millisecond))
	require.Len(t, evs, 1)
	require.Equal(t, EventEdgeSwipeEnd, evs[0].Kind)
	require.True(t, evs[0].Completed)
}

func TestTouchExactlyOnEdgeClassifiesAsEdge(t *testing.T) {
	r := New(geom.Size{W: 1080, H: 2400}, DefaultConfig())
	r.TouchDown(0, geom.Point{X: 0, Y: 1200}, time.Unix(0, 0))
	sg := r.gestures[0]
	require.Equal(t, KindPotentialEdgeSwipe, sg.Kind)
	require.Equal(t, EdgeLeft, sg.Edge)
}

func TestEdgeSwipeActivatesAtExactThreshold(t *testing.T) {
	r := New(geom.Size{W: 1080, H: 2400}, DefaultConfig())
	t0 := time.Unix(0, 0)
	r.TouchDown(0, geom.Point{X: 0, Y: 1200}, t0)
	evs := r.TouchMotion(0, geom.Point{X: 30, Y: 1200}, t0.Add(time.Millisecond))
	require.Len(t, evs, 1)
	require.Equal(t, EventEdgeSwipeStart, evs[0].Kind)
}

func TestProgressNeverNegative(t *testing.T) {
	r := New(geom.Size{W: 1080, H: 2400}, DefaultConfig())
	t0 := time.Unix(0, 0)
	r.TouchDown(0, geom.Point{X: 0, Y: 1200}, t0)
	r.TouchMotion(0, geom.Point{X: 40, Y: 1200}, t0.Add(time.Millisecond))
	evs := r.TouchMotion(0, geom.Point{X: 20, Y: 1200}, t0.Add(2*time.Millisecond))
	require.Len(t, evs, 1)
	require.GreaterOrEqual(t, evs[0].Progress, 0.0)
}

func TestTapOnPotentialTap(t *testing.T) {
	r := New(geom.Size{W: 1080, H: 2400}, DefaultConfig())
	t0 := time.Unix(0, 0)
	r.TouchDown(0, geom.Point{X: 500, Y: 1200}, t0)
	evs := r.TouchUp(0, t0.Add(50*time.Millisecond))
	require.Len(t, evs, 1)
	require.Equal(t, EventTap, evs[0].Kind)
}

func TestLongPress(t *testing.T) {
	r := New(geom.Size{W: 1080, H: 2400}, DefaultConfig())
	t0 := time.Unix(0, 0)
	r.TouchDown(0, geom.Point{X: 500, Y: 1200}, t0)
	evs := r.TouchUp(0, t0.Add(600*time.Millisecond))
	require.Len(t, evs, 1)
	require.Equal(t, EventLongPress, evs[0].Kind)
}

func TestPinchOnTwoFingers(t *testing.T) {
	r := New(geom.Size{W: 1080, H: 2400}, DefaultConfig())
	t0 := time.Unix(0, 0)
	r.TouchDown(0, geom.Point{X: 500, Y: 500}, t0)
	r.TouchDown(1, geom.Point{X: 600, Y: 500}, t0)
	evs := r.TouchMotion(0, geom.Point{X: 450, Y: 500}, t0.Add(time.Millisecond))
	require.NotEmpty(t, evs)
	require.Equal(t, EventPinch, evs[0].Kind)
	require.Greater(t, evs[0].Scale, 1.0)
	require.Greater(t, evs[0].ZoomFactor, 1.0)
}

func TestTwoFingerPanEmitsPanEvent(t *testing.T) {
	r := New(geom.Size{W: 1080, H: 2400}, DefaultConfig())
	t0 := time.Unix(0, 0)
	r.TouchDown(0, geom.Point{X: 500, Y: 500}, t0)
	r.TouchDown(1, geom.Point{X: 600, Y: 500}, t0)

	// Both fingers translate by the same amount: once both have moved the
	// separation is back to its initial value (Scale 1), while the
	// centroid has moved, so a Pan fires alongside the Pinch.
	r.TouchMotion(0, geom.Point{X: 520, Y: 500}, t0.Add(time.Millisecond))
	evs := r.TouchMotion(1, geom.Point{X: 620, Y: 500}, t0.Add(2*time.Millisecond))

	var pan *Event
	for i := range evs {
		if evs[i].Kind == EventPan {
			pan = &evs[i]
		}
	}
	require.NotNil(t, pan)
	require.Equal(t, 10.0, pan.PanDelta.X)
}

func TestTouchCancelClearsAllState(t *testing.T) {
	r := New(geom.Size{W: 1080, H: 2400}, DefaultConfig())
	t0 := time.Unix(0, 0)
	r.TouchDown(0, geom.Point{X: 500, Y: 500}, t0)
	r.TouchDown(1, geom.Point{X: 600, Y: 500}, t0)
	r.TouchCancel()
	require.False(t, r.HasAggregateState())
	require.Equal(t, 0, r.ActiveSlotCount())
}

func TestMotionOnUnknownSlotIgnored(t *testing.T) {
	r := New(geom.Size{W: 1080, H: 2400}, DefaultConfig())
	require.NotPanics(t, func() {
		evs := r.TouchMotion(99, geom.Point{X: 1, Y: 1}, time.Unix(0, 0))
		require.Nil(t, evs)
	})
}

func TestAggregateStateClearedWhenLastSlotRemoved(t *testing.T) {
	r := New(geom.Size{W: 1080, H: 2400}, DefaultConfig())
	t0 := time.Unix(0, 0)
	r.TouchDown(0, geom.Point{X: 500, Y: 500}, t0)
	r.TouchUp(0, t0.Add(time.Millisecond))
	require.False(t, r.HasAggregateState())
}
