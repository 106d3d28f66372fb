package hwcomposer

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ebitengine/purego"
)

// halHandle binds the hybris/gralloc entry points Flick needs. It is
// constructed lazily by Open, never by a package init(), so importing
// or unit-testing this package never touches dlopen: only a real Open
// call against real hardware loads the library.
type halHandle struct {
	lib uintptr

	grallocAllocate func(width, height, format int32, usage int32, handle *uintptr, stride *uint32) int32
	grallocRelease  func(handle uintptr, wasAllocated int32) int32
	grallocLock     func(handle uintptr, usage, l, t, w, h int32, vaddr *uintptr) int32
	grallocUnlock   func(handle uintptr) int32
}

// openHAL loads libhybris-common and resolves the hybris_gralloc_*
// entry points Flick calls to allocate and map scanout buffers.
func openHAL() (*halHandle, error) {
	lib, err := purego.Dlopen("libhybris-common.so.1", purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		lib, err = purego.Dlopen("libhybris-common.so", purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			return nil, fmt.Errorf("load libhybris-common: %w", err)
		}
	}

	h := &halHandle{lib: lib}
	purego.RegisterLibFunc(&h.grallocAllocate, lib, "hybris_gralloc_allocate")
	purego.RegisterLibFunc(&h.grallocRelease, lib, "hybris_gralloc_release")
	purego.RegisterLibFunc(&h.grallocLock, lib, "hybris_gralloc_lock")
	purego.RegisterLibFunc(&h.grallocUnlock, lib, "hybris_gralloc_unlock")
	return h, nil
}

// Open initializes the hwcomposer-backed DRM device against real
// hardware: it loads the gralloc HAL and takes the display size from
// FLICK_DISPLAY_WIDTH/FLICK_DISPLAY_HEIGHT, else from the framebuffer
// sysfs node, else a fixed 1080x2340; the refresh rate is always 60Hz.
// Open is the only entry point in this package that
// touches dlopen or a real display.
func Open() (*Device, *GbmDevice, error) {
	hal, err := openHAL()
	if err != nil {
		return nil, nil, fmt.Errorf("open hwcomposer HAL: %w", err)
	}

	mode := DisplayMode{Width: 1080, Height: 2340, RefreshRate: 60}
	if w, h, ok := displayDimensionsFromEnv(); ok {
		mode.Width, mode.Height = w, h
	} else if w, h, ok := displayDimensionsFromSysfs(); ok {
		mode.Width, mode.Height = w, h
	}

	drm := NewDevice(mode)
	drm.hal = hal
	gbm := NewGbmDevice(hal)
	return drm, gbm, nil
}

func displayDimensionsFromEnv() (uint32, uint32, bool) {
	w, errW := strconv.Atoi(os.Getenv("FLICK_DISPLAY_WIDTH"))
	h, errH := strconv.Atoi(os.Getenv("FLICK_DISPLAY_HEIGHT"))
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return uint32(w), uint32(h), true
}

func displayDimensionsFromSysfs() (uint32, uint32, bool) {
	raw, err := os.ReadFile("/sys/class/graphics/fb0/virtual_size")
	if err != nil {
		return 0, 0, false
	}
	parts := strings.Split(strings.TrimSpace(string(raw)), ",")
	if len(parts) < 2 {
		return 0, 0, false
	}
	w, errW := strconv.Atoi(parts[0])
	h, errH := strconv.Atoi(parts[1])
	if errW != nil || errH != nil {
		return 0, 0, false
	}
	return uint32(w), uint32(h), true
}

// AllocateBo allocates a gralloc-backed buffer of the given size,
// format, and GBM usage flags. It requires a Device opened against real
// hardware.
func (g *GbmDevice) AllocateBo(width, height uint32, format GbmFormat, usage uint32) (*GbmBo, error) {
	if g.hal == nil {
		return nil, fmt.Errorf("gbm device has no HAL handle, call Open first")
	}
	halFormat, err := format.toHALFormat()
	if err != nil {
		return nil, err
	}
	grallocUsage := int32(gbmToGrallocUsage(usage))

	var handle uintptr
	var stride uint32
	ret := g.hal.grallocAllocate(int32(width), int32(height), halFormat, grallocUsage, &handle, &stride)
	if ret != 0 || handle == 0 {
		return nil, fmt.Errorf("hybris_gralloc_allocate failed: %d", ret)
	}

	return &GbmBo{Handle: handle, Width: width, Height: height, Stride: stride, Format: format, wasAllocated: true}, nil
}

// CreateSurface allocates a triple-buffered rendering surface.
func (g *GbmDevice) CreateSurface(width, height uint32, format GbmFormat, usage uint32) (*Surface, error) {
	bos := make([]*GbmBo, 0, 3)
	for i := 0; i < 3; i++ {
		bo, err := g.AllocateBo(width, height, format, usage)
		if err != nil {
			return nil, fmt.Errorf("allocate buffer %d of 3: %w", i, err)
		}
		bos = append(bos, bo)
	}
	return NewSurface(width, height, format, bos), nil
}

// ImportBo wraps a handle owned elsewhere (e.g. received over a wire
// protocol), which Release must never free.
func (g *GbmDevice) ImportBo(handle uintptr, width, height, stride uint32, format GbmFormat) *GbmBo {
	return importBo(handle, width, height, stride, format)
}

// Release frees b's handle if this GbmBo allocated it; an imported
// handle is passed to hybris_gralloc_release with was-allocated 0
// instead. Calling Release twice, or on a null handle, is a no-op;
// otherwise it returns an error when the device has no HAL.
func (g *GbmDevice) Release(b *GbmBo) error {
	if b.released || b.Handle == 0 {
		b.released = true
		return nil
	}
	b.released = true
	if g.hal == nil {
		return fmt.Errorf("gbm device has no HAL handle, call Open first")
	}
	was := int32(0)
	if b.wasAllocated {
		was = 1
	}
	if ret := g.hal.grallocRelease(b.Handle, was); ret != 0 {
		return fmt.Errorf("hybris_gralloc_release failed: %d", ret)
	}
	return nil
}

// Map locks b for CPU write access and returns a pointer to its pixel
// data.
func (g *GbmDevice) Map(b *GbmBo) (uintptr, error) {
	if b.Handle == 0 {
		return 0, fmt.Errorf("cannot map null buffer")
	}
	if g.hal == nil {
		return 0, fmt.Errorf("gbm device has no HAL handle, call Open first")
	}
	const usageSWReadWriteOften = int32(grallocUsageSWWriteOften) | 1<<1
	var vaddr uintptr
	if ret := g.hal.grallocLock(b.Handle, usageSWReadWriteOften, 0, 0, int32(b.Width), int32(b.Height), &vaddr); ret != 0 {
		return 0, fmt.Errorf("hybris_gralloc_lock failed: %d", ret)
	}
	return vaddr, nil
}

// Unmap releases the CPU mapping obtained from Map.
func (g *GbmDevice) Unmap(b *GbmBo) error {
	if b.Handle == 0 || g.hal == nil {
		return nil
	}
	if ret := g.hal.grallocUnlock(b.Handle); ret != 0 {
		return fmt.Errorf("hybris_gralloc_unlock failed: %d", ret)
	}
	return nil
}
