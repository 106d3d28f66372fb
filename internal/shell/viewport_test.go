package shell

import (
	"testing"

	"github.com/flickos/flick/internal/geom"
	"github.com/stretchr/testify/require"
)

func TestViewportFit(t *testing.T) {
	v := NewViewport(0, geom.Size{W: 1920, H: 1080})
	screen := geom.Size{W: 360, H: 720}
	require.InDelta(t, 0.1875, v.FitZoom(screen), 0.001)
}

func TestViewportCoordinateRoundTrip(t *testing.T) {
	v := NewViewport(0, geom.Size{W: 1920, H: 1080})
	v.Zoom = 0.5
	v.Pan = geom.Point{X: 100, Y: 50}

	screen := geom.Size{W: 360, H: 720}
	screenPoint := geom.Point{X: 180, Y: 360}

	virtual := v.ScreenToVirtual(screenPoint, screen)
	back := v.VirtualToScreen(virtual, screen)

	require.InDelta(t, screenPoint.X, back.X, 0.001)
	require.InDelta(t, screenPoint.Y, back.Y, 0.001)
}
