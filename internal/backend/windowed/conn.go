package windowed

import (
	"fmt"
	"syscall"
	"time"

	"github.com/flickos/flick/internal/geom"
	"github.com/flickos/flick/internal/gesture"
	"github.com/neurlang/wayland/wl"
	"github.com/neurlang/wayland/wlclient"
	"golang.org/x/sys/unix"
)

// Conn is the live host-Wayland-client half of the windowed backend: it
// connects to a host compositor exactly the way an ordinary Wayland
// client does, opens one top-level surface to host Flick's own
// rendering, and feeds host pointer/keyboard input through a
// HostInputBridge. The connection glue here is the ordinary Wayland
// client connect/registry/seat sequence.
type Conn struct {
	display    *wl.Display
	registry   *wl.Registry
	compositor *wl.Compositor
	shell      *wl.Shell
	shm        *wl.Shm
	seat       *wl.Seat
	pointer    *wl.Pointer
	keyboard   *wl.Keyboard
	surface    *wl.Surface
	shellSurf  *wl.ShellSurface

	bridge    *HostInputBridge
	dispatch  func([]gesture.Event, time.Time)
	pointerAt geom.Point
	screen    geom.Size
	done      chan struct{}
}

// Dial connects to the host compositor and opens one top-level surface
// sized to screen, forwarding all input through bridge and every
// resulting gesture event to dispatch.
func Dial(bridge *HostInputBridge, dispatch func([]gesture.Event, time.Time), screen geom.Size, title string) (*Conn, error) {
	c := &Conn{bridge: bridge, dispatch: dispatch, screen: screen, done: make(chan struct{})}

	var err error
	c.display, err = wlclient.DisplayConnect(nil)
	if err != nil {
		return nil, fmt.Errorf("connect to host Wayland display: %w", err)
	}

	c.registry, err = c.display.GetRegistry()
	if err != nil {
		return nil, fmt.Errorf("get host registry: %w", err)
	}
	c.registry.AddGlobalHandler(c)
	if err := wlclient.DisplayRoundtrip(c.display); err != nil {
		return nil, fmt.Errorf("host registry roundtrip: %w", err)
	}

	if c.compositor == nil || c.shell == nil {
		return nil, fmt.Errorf("host compositor missing wl_compositor or wl_shell")
	}

	c.surface, err = c.compositor.CreateSurface()
	if err != nil {
		return nil, fmt.Errorf("create host surface: %w", err)
	}
	c.shellSurf, err = c.shell.GetShellSurface(c.surface)
	if err != nil {
		return nil, fmt.Errorf("get shell surface: %w", err)
	}
	c.shellSurf.SetToplevel()
	c.shellSurf.SetTitle(title)

	if c.shm != nil {
		attachSolidColorBuffer(c.shm, c.surface, uint32(screen.W), uint32(screen.H), 0, 0, 0)
	}

	return c, nil
}

// Close disconnects from the host compositor.
func (c *Conn) Close() { close(c.done) }

// Serve dispatches host Wayland events until Close is called.
func (c *Conn) Serve() error {
	for {
		select {
		case <-c.done:
			return nil
		default:
			if err := wlclient.DisplayDispatch(c.display); err != nil {
				return fmt.Errorf("host event loop: %w", err)
			}
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// HandleRegistryGlobal binds the host globals Flick's windowed backend
// needs: a compositor and shell to host its own surface, and a seat to
// receive pointer/keyboard input to forward into the bridge.
func (c *Conn) HandleRegistryGlobal(ev wl.RegistryGlobalEvent) {
	switch ev.Interface {
	case "wl_compositor":
		c.compositor = wlclient.RegistryBindCompositorInterface(c.registry, ev.Name, 4)
	case "wl_shell":
		c.shell = wlclient.RegistryBindShellInterface(c.registry, ev.Name, 1)
	case "wl_shm":
		c.shm = wlclient.RegistryBindShmInterface(c.registry, ev.Name, 1)
	case "wl_seat":
		c.seat = wlclient.RegistryBindSeatInterface(c.registry, ev.Name, 7)
		c.seat.AddCapabilitiesHandler(c)
		wlclient.DisplayRoundtrip(c.display)
	}
}

// HandleSeatCapabilities binds pointer and keyboard objects once the
// host seat advertises them, so host input starts flowing into bridge.
func (c *Conn) HandleSeatCapabilities(ev wl.SeatCapabilitiesEvent) {
	if ev.Capabilities&wl.SeatCapabilityPointer != 0 && c.pointer == nil {
		if p, err := c.seat.GetPointer(); err == nil {
			c.pointer = p
			c.pointer.AddMotionHandler(c)
			c.pointer.AddButtonHandler(c)
			wlclient.DisplayRoundtrip(c.display)
		}
	}
	if ev.Capabilities&wl.SeatCapabilityKeyboard != 0 && c.keyboard == nil {
		if k, err := c.seat.GetKeyboard(); err == nil {
			c.keyboard = k
			c.keyboard.AddKeyHandler(c)
			wlclient.DisplayRoundtrip(c.display)
		}
	}
}

// HandlePointerMotion tracks the host pointer position and forwards a
// synthetic touch-motion event while a button is held.
func (c *Conn) HandlePointerMotion(ev wl.PointerMotionEvent) {
	c.pointerAt = geom.Point{X: float64(ev.SurfaceX), Y: float64(ev.SurfaceY)}
	now := time.Now()
	c.dispatchEvents(c.bridge.PointerMotion(c.pointerAt, now), now)
}

// HandlePointerButton forwards host button press/release as synthetic
// touch down/up on the mouse slot.
func (c *Conn) HandlePointerButton(ev wl.PointerButtonEvent) {
	now := time.Now()
	c.dispatchEvents(c.bridge.PointerButton(ev.State == 1, c.pointerAt, now), now)
}

// dispatchEvents forwards bridge-produced gesture events to the
// compositor's dispatch pipeline, if one was supplied to Dial.
func (c *Conn) dispatchEvents(events []gesture.Event, now time.Time) {
	if c.dispatch == nil || len(events) == 0 {
		return
	}
	c.dispatch(events, now)
}

// HandleKeyboardKey forwards host key presses into the bridge's char
// injection path. Only key-down (State==1) is forwarded.
func (c *Conn) HandleKeyboardKey(ev wl.KeyboardKeyEvent) {
	if ev.State != 1 {
		return
	}
	c.bridge.KeyboardKey(ev.Key, false)
}

// Repaint fills the hosted surface with a solid color; it stands in for
// the real shell renderer until one exists, so the windowed backend's
// top-level surface is never left with undefined content.
func (c *Conn) Repaint(r, g, b uint8) {
	if c.shm == nil {
		return
	}
	attachSolidColorBuffer(c.shm, c.surface, uint32(c.screen.W), uint32(c.screen.H), r, g, b)
}

// attachSolidColorBuffer allocates a shared-memory buffer sized
// width×height, fills it with one ARGB8888 color, and attaches/commits
// it to surface. The memfd-backed wl_shm pool is the standard way a
// Wayland client hands pixel data to its compositor without a copy.
func attachSolidColorBuffer(shm *wl.Shm, surface *wl.Surface, width, height uint32, r, g, b uint8) {
	stride := int(width) * 4
	size := stride * int(height)

	fd, err := unix.MemfdCreate("flick-surface", unix.MFD_CLOEXEC)
	if err != nil {
		return
	}
	defer syscall.Close(fd)
	if err := syscall.Ftruncate(fd, int64(size)); err != nil {
		return
	}

	data, err := syscall.Mmap(fd, 0, size, syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		return
	}
	for i := 0; i < size; i += 4 {
		data[i+0] = b
		data[i+1] = g
		data[i+2] = r
		data[i+3] = 0xff
	}
	_ = syscall.Munmap(data)

	pool, err := shm.CreatePool(uintptr(fd), int32(size))
	if err != nil {
		return
	}
	buffer, err := pool.CreateBuffer(0, int32(width), int32(height), int32(stride), wl.ShmFormatArgb8888)
	if err != nil {
		return
	}
	surface.Attach(buffer, 0, 0)
	surface.Damage(0, 0, int32(width), int32(height))
	surface.Commit()
}
