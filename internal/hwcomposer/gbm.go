package hwcomposer

import "fmt"

// GBM buffer usage flags, compatible with the standard GBM numbering.
const (
	UseScanout  uint32 = 1 << 0
	UseCursor   uint32 = 1 << 1
	UseRendering uint32 = 1 << 2
	UseWrite    uint32 = 1 << 3
	UseLinear   uint32 = 1 << 4
)

// Gralloc usage flags the HAL expects, mirroring hardware/gralloc.h.
const (
	grallocUsageHWFB        uint64 = 1 << 0
	grallocUsageHWComposer  uint64 = 1 << 11
	grallocUsageHWRender    uint64 = 1 << 9
	grallocUsageHWTexture   uint64 = 1 << 8
	grallocUsageSWWriteOften uint64 = 1 << 4
)

// halPixelFormat maps a GbmFormat to the Android HAL_PIXEL_FORMAT_*
// constant gralloc allocates against.
const (
	halPixelFormatRGBA8888 int32 = 1
	halPixelFormatRGBX8888 int32 = 2
	halPixelFormatRGB565   int32 = 4
)

// GbmFormat is the subset of DRM fourcc formats GBM buffers may use.
type GbmFormat uint32

const (
	FormatRGBX GbmFormat = FormatXRGB8888
	FormatRGBA GbmFormat = FormatARGB8888
	Format565  GbmFormat = FormatRGB565
)

// toHALFormat converts a GbmFormat to the gralloc HAL pixel format it
// allocates as.
func (f GbmFormat) toHALFormat() (int32, error) {
	switch f {
	case FormatRGBA, GbmFormat(FormatABGR8888):
		return halPixelFormatRGBA8888, nil
	case FormatRGBX, GbmFormat(FormatXBGR8888):
		return halPixelFormatRGBX8888, nil
	case Format565:
		return halPixelFormatRGB565, nil
	default:
		return 0, fmt.Errorf("unsupported gbm format 0x%x", uint32(f))
	}
}

// bpp returns bytes per pixel for f.
func (f GbmFormat) bpp() uint32 {
	if f == Format565 {
		return 2
	}
	return 4
}

// gbmToGrallocUsage translates GBM usage flags into the gralloc usage
// bitmask the HAL allocate call expects. A buffer requested with no
// flags at all still needs HW composer + render access to be useful.
func gbmToGrallocUsage(usage uint32) uint64 {
	var out uint64
	if usage&UseScanout != 0 {
		out |= grallocUsageHWFB | grallocUsageHWComposer
	}
	if usage&UseRendering != 0 {
		out |= grallocUsageHWRender | grallocUsageHWTexture
	}
	if usage&UseWrite != 0 {
		out |= grallocUsageSWWriteOften
	}
	if usage&UseCursor != 0 {
		out |= grallocUsageHWFB
	}
	if out == 0 {
		out = grallocUsageHWComposer | grallocUsageHWRender
	}
	return out
}

// GbmBo is a buffer object backed by a gralloc native handle. Every
// GbmBo either owns its handle (allocated here, freed on Release) or
// imported it (never frees it) — callers must not free a handle neither
// allocated nor explicitly imported through this type.
type GbmBo struct {
	Handle       uintptr
	Width        uint32
	Height       uint32
	Stride       uint32
	Format       GbmFormat
	wasAllocated bool
	released     bool
}

// importBo wraps a handle this process does not own — Release hands it
// to the HAL with was-allocated 0 rather than as an allocated buffer.
func importBo(handle uintptr, width, height, stride uint32, format GbmFormat) *GbmBo {
	return &GbmBo{Handle: handle, Width: width, Height: height, Stride: stride, Format: format, wasAllocated: false}
}

// OwnsHandle reports whether this GbmBo frees its handle on Release.
func (b *GbmBo) OwnsHandle() bool { return b.wasAllocated }

// Released reports whether Release has already run.
func (b *GbmBo) Released() bool { return b.released }

// GbmDevice allocates gralloc-backed buffer objects for scanout and
// rendering. All allocation here is pure bookkeeping; hal.go supplies
// the real hybris_gralloc_* calls once opened against hardware.
type GbmDevice struct {
	hal *halHandle
}

// NewGbmDevice wraps a HAL handle (nil until Open succeeds) for buffer
// allocation.
func NewGbmDevice(hal *halHandle) *GbmDevice {
	return &GbmDevice{hal: hal}
}

// Surface manages a small ring of buffers for double/triple buffered
// rendering, rotating the front buffer on each LockFrontBuffer call.
type Surface struct {
	Width, Height uint32
	Format        GbmFormat
	buffers       []*GbmBo
	current       int
}

// NewSurface builds a surface around pre-allocated buffers (typically
// three, for triple buffering).
func NewSurface(width, height uint32, format GbmFormat, buffers []*GbmBo) *Surface {
	return &Surface{Width: width, Height: height, Format: format, buffers: buffers}
}

// LockFrontBuffer returns the next buffer in rotation.
func (s *Surface) LockFrontBuffer() (*GbmBo, error) {
	if len(s.buffers) == 0 {
		return nil, fmt.Errorf("surface has no buffers")
	}
	bo := s.buffers[s.current]
	s.current = (s.current + 1) % len(s.buffers)
	return bo, nil
}
