// Package hwcomposer emulates enough of the DRM/KMS and GBM surface to
// let Flick drive Android's hwcomposer HAL as if it were a normal DRM
// display device. Object IDs are fixed rather than discovered, since
// there is exactly one display.
package hwcomposer

import "sync"

// Fixed DRM object IDs. There is exactly one connector, encoder, CRTC,
// and pair of planes on this device.
const (
	ConnectorID     = 1
	EncoderID       = 5
	CRTCID          = 10
	PrimaryPlaneID  = 20
	CursorPlaneID   = 21
	framebufferBase = 100
)

// DRM fourcc format codes, the subset the primary plane advertises.
const (
	FormatXRGB8888 = 0x34325258
	FormatARGB8888 = 0x34325241
	FormatRGB565   = 0x36314752
	FormatXBGR8888 = 0x34324258
	FormatABGR8888 = 0x34324241
)

// DisplayMode describes the single fixed mode this device exposes.
type DisplayMode struct {
	Width       uint32
	Height      uint32
	RefreshRate uint32 // Hz
}

// ModeInfo mirrors the kernel's drm_mode_modeinfo layout closely enough
// for callers that expect one.
type ModeInfo struct {
	Clock                               uint32
	Hdisplay, HsyncStart, HsyncEnd, Htotal uint16
	Vdisplay, VsyncStart, VsyncEnd, Vtotal uint16
	Vrefresh                            uint32
	Name                                 string
}

// modeInfo derives blanking-inclusive timing values from mode, adding
// fixed horizontal/vertical blanking the way a real modeline would.
func modeInfo(mode DisplayMode) ModeInfo {
	hdisplay := uint16(mode.Width)
	vdisplay := uint16(mode.Height)
	htotal := hdisplay + 200
	vtotal := vdisplay + 50
	clock := uint32(htotal) * uint32(vtotal) * mode.RefreshRate / 1000

	return ModeInfo{
		Clock:       clock,
		Hdisplay:    hdisplay,
		HsyncStart:  hdisplay + 50,
		HsyncEnd:    hdisplay + 100,
		Htotal:      htotal,
		Vdisplay:    vdisplay,
		VsyncStart:  vdisplay + 10,
		VsyncEnd:    vdisplay + 20,
		Vtotal:      vtotal,
		Vrefresh:    mode.RefreshRate,
		Name:        modeName(hdisplay, vdisplay, mode.RefreshRate),
	}
}

func modeName(w, h uint16, refresh uint32) string {
	return itoa(int(w)) + "x" + itoa(int(h)) + "@" + itoa(int(refresh))
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// FramebufferInfo describes one registered framebuffer.
type FramebufferInfo struct {
	ID     uint32
	Width  uint32
	Height uint32
	Pitch  uint32
	BPP    uint32
	Depth  uint32
	Format uint32
	Handle uint32
}

// ConnectorInfo describes the single physical connector.
type ConnectorInfo struct {
	ID             uint32
	Connected      bool
	WidthMM        uint32
	HeightMM       uint32
}

// CrtcInfo describes the single CRTC's current mode.
type CrtcInfo struct {
	ID         uint32
	X, Y       uint32
	Width      uint32
	Height     uint32
	ModeValid  bool
}

// PlaneType distinguishes the primary scanout plane from the cursor
// plane.
type PlaneType int

const (
	PlaneOverlay PlaneType = iota
	PlanePrimary
	PlaneCursor
)

// PlaneInfo describes a plane's current framebuffer and compositing
// rectangle.
type PlaneInfo struct {
	ID            uint32
	Type          PlaneType
	Formats       []uint32
	FbID          uint32
	CrtcID        uint32
	CrtcX, CrtcY  int32
	CrtcW, CrtcH  uint32
}

// Resources enumerates the device's fixed connector/encoder/CRTC plus
// the currently registered framebuffer IDs.
type Resources struct {
	MinWidth, MaxWidth   uint32
	MinHeight, MaxHeight uint32
	Connectors           []uint32
	CRTCs                []uint32
	Encoders             []uint32
	FBs                  []uint32
}

// Device is the virtual DRM device, backed by an hwcomposer HAL handle
// once Open succeeds. All bookkeeping below is pure and does not touch
// the HAL, so it is exercised directly by tests; the HAL-facing code
// (Open and the GbmDevice buffer calls) lives in hal.go.
type Device struct {
	mu sync.Mutex

	mode DisplayMode
	hal  *halHandle

	fbCounter    uint32
	framebuffers map[uint32]FramebufferInfo

	primaryPlaneFB uint32
	cursorPlaneFB  uint32
}

// NewDevice constructs a device with a known display mode, for use
// before Open (e.g. in the windowed backend or in tests) or after Open
// reports the hardware's real mode.
func NewDevice(mode DisplayMode) *Device {
	return &Device{
		mode:         mode,
		fbCounter:    framebufferBase,
		framebuffers: make(map[uint32]FramebufferInfo),
	}
}

// Mode returns the device's current display mode.
func (d *Device) Mode() DisplayMode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// ModeInfo returns the DRM-style timing values derived from Mode.
func (d *Device) ModeInfo() ModeInfo {
	return modeInfo(d.Mode())
}

// Resources returns the fixed connector/encoder/CRTC set and the
// framebuffers currently registered.
func (d *Device) Resources() Resources {
	d.mu.Lock()
	defer d.mu.Unlock()

	fbs := make([]uint32, 0, len(d.framebuffers))
	for id := range d.framebuffers {
		fbs = append(fbs, id)
	}
	return Resources{
		MinWidth: 1, MaxWidth: 8192,
		MinHeight: 1, MaxHeight: 8192,
		Connectors: []uint32{ConnectorID},
		CRTCs:      []uint32{CRTCID},
		Encoders:   []uint32{EncoderID},
		FBs:        fbs,
	}
}

// Connector describes the single physical connector, approximating
// physical size from a nominal 400 DPI when no better figure exists.
func (d *Device) Connector() ConnectorInfo {
	mode := d.Mode()
	const dpi = 400.0
	return ConnectorInfo{
		ID:        ConnectorID,
		Connected: true,
		WidthMM:   uint32(float64(mode.Width) * 25.4 / dpi),
		HeightMM:  uint32(float64(mode.Height) * 25.4 / dpi),
	}
}

// Crtc describes the single CRTC, always active at the origin.
func (d *Device) Crtc() CrtcInfo {
	mode := d.Mode()
	return CrtcInfo{ID: CRTCID, Width: mode.Width, Height: mode.Height, ModeValid: true}
}

// Plane returns the primary or cursor plane's current state, or false
// for any other ID.
func (d *Device) Plane(planeID uint32) (PlaneInfo, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	mode := d.mode

	switch planeID {
	case PrimaryPlaneID:
		return PlaneInfo{
			ID:     PrimaryPlaneID,
			Type:   PlanePrimary,
			Formats: []uint32{FormatXRGB8888, FormatARGB8888, FormatXBGR8888, FormatABGR8888, FormatRGB565},
			FbID:   d.primaryPlaneFB,
			CrtcID: CRTCID,
			CrtcW:  mode.Width,
			CrtcH:  mode.Height,
		}, true
	case CursorPlaneID:
		return PlaneInfo{
			ID:      CursorPlaneID,
			Type:    PlaneCursor,
			Formats: []uint32{FormatARGB8888},
			FbID:    d.cursorPlaneFB,
			CrtcW:   64,
			CrtcH:   64,
		}, true
	default:
		return PlaneInfo{}, false
	}
}

// AddFramebuffer registers a new framebuffer backed by handle, assigning
// it the next sequential ID starting at 100.
func (d *Device) AddFramebuffer(width, height, pitch, bpp, depth, format, handle uint32) uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := d.fbCounter
	d.fbCounter++
	d.framebuffers[id] = FramebufferInfo{
		ID: id, Width: width, Height: height, Pitch: pitch, BPP: bpp, Depth: depth, Format: format, Handle: handle,
	}
	return id
}

// GetFramebuffer returns a previously registered framebuffer.
func (d *Device) GetFramebuffer(id uint32) (FramebufferInfo, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fb, ok := d.framebuffers[id]
	return fb, ok
}

// RemoveFramebuffer forgets a framebuffer, reporting whether id was
// known. A second removal of the same id, or removal of an id that was
// never registered, reports false rather than aborting.
func (d *Device) RemoveFramebuffer(id uint32) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.framebuffers[id]; !ok {
		return false
	}
	delete(d.framebuffers, id)
	return true
}

// SetPlane assigns fbID to the primary or cursor plane; unknown plane
// IDs are silently ignored.
func (d *Device) SetPlane(planeID, fbID uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch planeID {
	case PrimaryPlaneID:
		d.primaryPlaneFB = fbID
	case CursorPlaneID:
		d.cursorPlaneFB = fbID
	}
}

// PageFlip presents fbID on the primary plane. It reports false if the
// framebuffer is unknown, leaving the current plane contents untouched.
func (d *Device) PageFlip(fbID uint32) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.framebuffers[fbID]; !ok {
		return false
	}
	d.primaryPlaneFB = fbID
	return true
}
