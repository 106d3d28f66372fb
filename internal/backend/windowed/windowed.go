// Package windowed implements the --windowed development backend: Flick
// runs nested inside one window of a host Wayland compositor, acting as
// an ordinary client of that host rather than owning DRM/input devices
// directly. This is the real-world meaning of a "windowed backend" in
// nested compositors. Host input (mouse-as-single-finger-touch, host
// keyboard) is forwarded into Flick's own gesture recognizer and
// keyboard controller so the rest of Flick behaves identically to the
// hardware backend.
package windowed

import (
	"time"

	"github.com/flickos/flick/internal/geom"
	"github.com/flickos/flick/internal/gesture"
	"github.com/flickos/flick/internal/keyboard"
)

// mouseSlot is the synthetic touch slot used to represent the host
// pointer as a single finger, since development machines running the
// windowed backend typically have no touchscreen.
const mouseSlot = 0

// HostInputBridge translates host Wayland input events into Flick's own
// gesture and keyboard pipelines.
type HostInputBridge struct {
	recognizer  *gesture.Recognizer
	keyboard    *keyboard.Controller
	pointerDown bool
}

// NewHostInputBridge wires a bridge over an existing recognizer and
// keyboard controller, the same ones the hardware backend drives.
func NewHostInputBridge(recognizer *gesture.Recognizer, kb *keyboard.Controller) *HostInputBridge {
	return &HostInputBridge{recognizer: recognizer, keyboard: kb}
}

// PointerButton handles a host wl_pointer button event, treating button
// press/release as touch down/up on the synthetic mouse slot.
func (b *HostInputBridge) PointerButton(pressed bool, pos geom.Point, now time.Time) []gesture.Event {
	if pressed && !b.pointerDown {
		b.pointerDown = true
		return b.recognizer.TouchDown(mouseSlot, pos, now)
	}
	if !pressed && b.pointerDown {
		b.pointerDown = false
		return b.recognizer.TouchUp(mouseSlot, now)
	}
	return nil
}

// PointerMotion forwards host pointer motion as touch motion while the
// button is held, mirroring a finger drag.
func (b *HostInputBridge) PointerMotion(pos geom.Point, now time.Time) []gesture.Event {
	if !b.pointerDown {
		return nil
	}
	return b.recognizer.TouchMotion(mouseSlot, pos, now)
}

// KeyboardKey forwards a host evdev keycode/shift state into Flick's
// synthetic key injection path, so typing on the host machine types
// into the focused Flick client exactly as the on-screen keyboard would.
func (b *HostInputBridge) KeyboardKey(code uint32, shift bool) {
	if ch, ok := keyboard.EvdevToChar(code, shift); ok {
		b.keyboard.InjectChar(ch)
	}
}
