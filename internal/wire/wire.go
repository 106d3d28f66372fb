// Package wire defines the minimal contract a Wayland/X11 wire protocol
// library would otherwise provide. The protocol codec itself is out of
// scope; internal/compositor depends only on these small interfaces so
// its logic stays independent of whichever concrete library is linked
// in (the windowed dev backend, a real compositor crate, or a test
// double).
package wire

// ClientID identifies one connected protocol client.
type ClientID uint64

// ObjectID identifies one protocol object (surface, seat, output, ...)
// scoped to a client.
type ObjectID uint32

// SurfaceRole distinguishes how a surface is being used.
type SurfaceRole int

const (
	RoleNone SurfaceRole = iota
	RoleToplevel
	RolePopup
	RoleCursor
)

// SeatCapabilities mirrors wl_seat's capability bitmask.
type SeatCapabilities struct {
	Keyboard bool
	Pointer  bool
	Touch    bool
}

// Seat is the minimal seat contract the compositor needs: capability
// flags and the currently focused surface per device.
type Seat interface {
	Capabilities() SeatCapabilities
	SetKeyboardFocus(surface ObjectID, serial uint32)
	KeyboardFocus() (ObjectID, bool)
}

// Output describes one display output's logical geometry.
type Output struct {
	ID     ObjectID
	Width  int
	Height int
	Scale  int
}

// Client is the minimal per-connection contract: identity and the
// ability to push protocol events to it.
type Client interface {
	ID() ClientID
	Send(objectID ObjectID, event Event)
	Disconnect(reason string)
}

// Event is an opaque outbound protocol event; concrete codecs define
// their own event payloads and type-assert as needed.
type Event interface {
	EventName() string
}

// Surface is the minimal per-surface contract the compositor's window
// space operates on.
type Surface interface {
	ID() ObjectID
	Client() ClientID
	Role() SurfaceRole
	Configure(width, height int, serial uint32)
}
