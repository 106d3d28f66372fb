package shell

import "github.com/flickos/flick/internal/geom"

// Viewport is a virtual coordinate space (e.g. a desktop app's native
// 1920x1080 canvas) mapped onto a smaller physical screen via zoom and
// pan, so desktop-oriented apps remain usable on phone-class hardware.
type Viewport struct {
	ID          uint32
	VirtualSize geom.Size
	Zoom        float64
	Pan         geom.Point
	MinZoom     float64
	MaxZoom     float64
}

// NewViewport creates a viewport at 1.0 zoom with no pan.
func NewViewport(id uint32, virtualSize geom.Size) *Viewport {
	return &Viewport{
		ID:          id,
		VirtualSize: virtualSize,
		Zoom:        1.0,
		MinZoom:     0.3,
		MaxZoom:     3.0,
	}
}

// FitZoom returns the zoom level that fits the whole virtual size onto
// screen, preserving aspect (the smaller of the two axis scales).
func (v *Viewport) FitZoom(screen geom.Size) float64 {
	scaleX := float64(screen.W) / float64(v.VirtualSize.W)
	scaleY := float64(screen.H) / float64(v.VirtualSize.H)
	if scaleX < scaleY {
		return scaleX
	}
	return scaleY
}

// Reset returns the viewport to a fit-to-screen view with no pan.
func (v *Viewport) Reset(screen geom.Size) {
	v.Zoom = v.FitZoom(screen)
	v.Pan = geom.Point{}
}

// ZoomAt applies a multiplicative zoom delta centered on a screen-space
// point, keeping the virtual point under that screen point stable.
func (v *Viewport) ZoomAt(delta float64, center geom.Point, screen geom.Size) {
	oldZoom := v.Zoom
	virtualCenter := v.ScreenToVirtual(center, screen)
	newZoom := v.Zoom * delta
	v.Zoom = geom.Clamp(newZoom, v.MinZoom, v.MaxZoom)

	if abs(v.Zoom-oldZoom) > 0.001 {
		v.Pan.X = virtualCenter.X - center.X/v.Zoom
		v.Pan.Y = virtualCenter.Y - center.Y/v.Zoom
	}
	v.clampPan(screen)
}

// PanBy shifts the pan offset by a screen-space delta.
func (v *Viewport) PanBy(delta geom.Point, screen geom.Size) {
	v.Pan.X -= delta.X / v.Zoom
	v.Pan.Y -= delta.Y / v.Zoom
	v.clampPan(screen)
}

// clampPan keeps at least 10% of the visible viewport on-screen.
func (v *Viewport) clampPan(screen geom.Size) {
	visibleW := float64(screen.W) / v.Zoom
	visibleH := float64(screen.H) / v.Zoom

	maxPanX := max0(float64(v.VirtualSize.W) - visibleW*0.1)
	maxPanY := max0(float64(v.VirtualSize.H) - visibleH*0.1)
	minPanX := -min0(visibleW * 0.9)
	minPanY := -min0(visibleH * 0.9)

	v.Pan.X = geom.Clamp(v.Pan.X, minPanX, maxPanX)
	v.Pan.Y = geom.Clamp(v.Pan.Y, minPanY, maxPanY)
}

// ScreenToVirtual converts a screen-space point to virtual coordinates.
func (v *Viewport) ScreenToVirtual(screenPos geom.Point, _ geom.Size) geom.Point {
	return geom.Point{
		X: screenPos.X/v.Zoom + v.Pan.X,
		Y: screenPos.Y/v.Zoom + v.Pan.Y,
	}
}

// VirtualToScreen converts a virtual-space point back to screen coordinates.
func (v *Viewport) VirtualToScreen(virtualPos geom.Point, _ geom.Size) geom.Point {
	return geom.Point{
		X: (virtualPos.X - v.Pan.X) * v.Zoom,
		Y: (virtualPos.Y - v.Pan.Y) * v.Zoom,
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func max0(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}

func min0(f float64) float64 {
	if f < 0 {
		return f
	}
	return 0
}
