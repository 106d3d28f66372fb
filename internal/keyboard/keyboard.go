// Package keyboard implements the on-screen keyboard's visibility state
// machine, per-window visibility memory, and synthetic evdev key
// injection into the focused client.
package keyboard

import "sync"

// Layout is the currently shown keyboard layout.
type Layout int

const (
	LayoutLetters Layout = iota
	LayoutNumbers
	LayoutSymbols
)

// KeyEvent is one synthesized press+release pair ready for the wire layer.
type KeyEvent struct {
	Code   uint32
	Shift  bool
	Serial uint32
}

// Injector sends a key press/release to the focused client's keyboard.
type Injector interface {
	InjectKey(code uint32, shiftDown bool, serial uint32)
}

// Controller is the single source of truth for on-screen keyboard
// visibility. text-input bridging, the long-press menu, and gesture
// animators all route visibility changes through it rather than each
// keeping their own flag.
type Controller struct {
	mu sync.Mutex

	visible      bool
	shiftLatched bool
	layout       Layout

	perWindow map[uint32]bool

	serial uint32
	inject Injector
}

// NewController returns a hidden, letters-layout controller.
func NewController(inject Injector) *Controller {
	return &Controller{perWindow: make(map[uint32]bool), inject: inject}
}

// Visible reports the current visibility.
func (c *Controller) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

// Show makes the keyboard visible; callers resize client windows in
// response (via the ResizeHook pattern used by the compositor).
func (c *Controller) Show() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visible = true
}

// Hide makes the keyboard invisible; callers restore client windows.
func (c *Controller) Hide() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visible = false
}

// Toggle flips visibility and returns the new state.
func (c *Controller) Toggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visible = !c.visible
	return c.visible
}

// ToggleShift flips the latched shift state.
func (c *Controller) ToggleShift() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shiftLatched = !c.shiftLatched
}

// ShiftLatched reports whether shift is currently latched.
func (c *Controller) ShiftLatched() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shiftLatched
}

// ToggleLayout cycles letters -> numbers -> symbols -> letters.
func (c *Controller) ToggleLayout() Layout {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.layout = (c.layout + 1) % 3
	return c.layout
}

// CurrentLayout returns the currently shown layout.
func (c *Controller) CurrentLayout() Layout {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.layout
}

// SaveForWindow records the current visibility against windowID, called
// when a ShellView change moves away from windowID as the topmost window.
func (c *Controller) SaveForWindow(windowID uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.perWindow[windowID] = c.visible
}

// RestoreForWindow applies windowID's remembered visibility, called when
// windowID becomes the topmost window. Windows with no memory default to
// hidden.
func (c *Controller) RestoreForWindow(windowID uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visible = c.perWindow[windowID]
}

// ForgetWindow drops a closed window's remembered visibility.
func (c *Controller) ForgetWindow(windowID uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.perWindow, windowID)
}

// InjectChar synthesizes a press+release for ch, applying shift if the
// character requires it and the evdev table recognizes it. It reports
// whether the character was injectable.
func (c *Controller) InjectChar(ch rune) bool {
	code, shift, ok := CharToEvdev(ch)
	if !ok {
		return false
	}
	c.injectCode(code, shift)
	return true
}

// InjectBackspace, InjectEnter and InjectSpace synthesize their fixed keys.
func (c *Controller) InjectBackspace() { c.injectCode(BackspaceCode, false) }
func (c *Controller) InjectEnter()    { c.injectCode(EnterCode, false) }
func (c *Controller) InjectSpace()    { c.injectCode(SpaceCode, false) }

func (c *Controller) injectCode(code uint32, shift bool) {
	c.mu.Lock()
	c.serial++
	serial := c.serial
	inject := c.inject
	c.mu.Unlock()
	if inject != nil {
		inject.InjectKey(code, shift, serial)
	}
}
