package compositor

import (
	"fmt"
	"time"

	"github.com/flickos/flick/internal/animate"
	"github.com/flickos/flick/internal/apps"
	"github.com/flickos/flick/internal/geom"
	"github.com/flickos/flick/internal/gesture"
	"github.com/flickos/flick/internal/keyboard"
	"github.com/flickos/flick/internal/lock"
	"github.com/flickos/flick/internal/shell"
	"github.com/flickos/flick/internal/system"
	"github.com/flickos/flick/internal/textinput"
	"github.com/flickos/flick/internal/wire"
)

// revealCommitThreshold is the switcher/QS reveal's release-time commit
// point, passed to each reveal animator's End.
const revealCommitThreshold = 0.5

// Launcher starts an app process by its freedesktop Exec string; the
// compositor never shells out directly, it delegates to whatever launch
// policy (privilege drop, render-backend env) the caller wires in.
type Launcher interface {
	Launch(execStr string) error
}

// Compositor owns the window space, the gesture recognizer and its four
// animators, the shell view controller, text input focus routing, the
// on-screen keyboard, and the system-status façade, and drives them all
// from a single per-tick dispatch: process input, mutate state, mirror
// IPC files.
type Compositor struct {
	screen geom.Size
	paths  Paths

	windows    *WindowSpace
	recognizer *gesture.Recognizer

	closeAnim    *animate.CloseAnimator
	homeAnim     *animate.HomeAnimator
	switcherAnim *animate.RevealAnimator
	qsAnim       *animate.RevealAnimator

	shellCtrl  *shell.Controller
	keyboard   *keyboard.Controller
	textinput  *textinput.Tracker
	status     *system.Status
	appManager *apps.Manager
	launcher   Launcher
	seat       wire.Seat
	viewport   *shell.Viewport

	focusedWindow uint32
	hasFocus      bool
	serial        uint32

	pendingTextInputEvents []textinput.Event

	lockCtrl     *lock.Controller
	lockTimeout  time.Duration
	lastInputAt  time.Time
}

// New wires a fresh Compositor for the given logical screen size.
// launcher and seat may be nil — a nil launcher makes TapApp a no-op on
// the spawn path (focus-existing-instance still works), a nil seat skips
// wire-level focus notification while IPC/text-input focus still fire.
func New(screen geom.Size, paths Paths, status *system.Status, appManager *apps.Manager, launcher Launcher, seat wire.Seat) *Compositor {
	c := &Compositor{
		screen:     screen,
		paths:      paths,
		windows:    NewWindowSpace(),
		recognizer: gesture.New(screen, gesture.DefaultConfig()),
		shellCtrl:  shell.NewController(),
		textinput:  textinput.NewTracker(),
		status:     status,
		appManager: appManager,
		launcher:   launcher,
		seat:       seat,
		viewport:   shell.NewViewport(0, screen),
	}
	c.keyboard = keyboard.NewController(noopInjector{})
	c.closeAnim = animate.NewCloseAnimator(c.windows, c)
	c.homeAnim = animate.NewHomeAnimator(c.windows, c.keyboard, c, screen.H)
	c.switcherAnim = animate.NewRevealAnimator()
	c.qsAnim = animate.NewRevealAnimator()
	return c
}

// noopInjector is the keyboard controller's key-event sink until a real
// evdev/wire injector is wired by the backend in use; InjectChar and
// friends then become no-ops rather than nil-pointer panics.
type noopInjector struct{}

func (noopInjector) InjectKey(code uint32, shiftDown bool, serial uint32) {}

// SetKeyboardInjector rewires the on-screen keyboard's output once a
// real backend (windowed dev conn, XWayland, or native wire seat) is
// available to receive injected key events.
func (c *Compositor) SetKeyboardInjector(inj keyboard.Injector) {
	c.keyboard = keyboard.NewController(inj)
	c.homeAnim = animate.NewHomeAnimator(c.windows, c.keyboard, c, c.screen.H)
}

// Recognizer exposes the gesture recognizer so an input bridge (e.g. the
// windowed backend's host-pointer-as-touch bridge) can share the exact
// recognizer instance Dispatch expects events from.
func (c *Compositor) Recognizer() *gesture.Recognizer { return c.recognizer }

// Dispatch routes recognizer events produced by any input source (the
// hardware touchscreen's own HandleTouch* calls, or an external bridge
// like the windowed backend's host pointer) through the same
// animator/shell/IPC pipeline.
func (c *Compositor) Dispatch(events []gesture.Event, now time.Time) {
	if len(events) > 0 {
		c.noteInput(now)
	}
	c.dispatchGestureEvents(events, now)
}

// Windows exposes the window space for backends that need to feed
// surface-create/map/destroy notifications directly (XWayland manager,
// native wire dispatch).
func (c *Compositor) Windows() *WindowSpace { return c.windows }

// Shell exposes the shell view controller for UI rendering code that
// needs the current view/scroll/menu state.
func (c *Compositor) Shell() *shell.Controller { return c.shellCtrl }

// Keyboard exposes the on-screen keyboard controller.
func (c *Compositor) Keyboard() *keyboard.Controller { return c.keyboard }

// TextInput exposes the text-input tracker for wire-protocol glue to
// register instances and read back focus events.
func (c *Compositor) TextInput() *textinput.Tracker { return c.textinput }

// Status exposes the system-status façade backing the quick-settings
// panel's live snapshot.
func (c *Compositor) Status() *system.Status { return c.status }

// Lock exposes the lock-screen authentication controller, if one has
// been wired with SetLockController.
func (c *Compositor) Lock() *lock.Controller { return c.lockCtrl }

// Viewport returns the virtual coordinate space that pinch/pan gestures
// zoom and pan, shared by whatever window is currently focused.
func (c *Compositor) Viewport() *shell.Viewport { return c.viewport }

// SetLockController wires the lock-screen controller and its auto-lock
// timeout from cfg; a MethodNone config disables both the boot lock
// screen and idle auto-lock.
func (c *Compositor) SetLockController(ctrl *lock.Controller, cfg lock.Config) {
	c.lockCtrl = ctrl
	if cfg.Method != lock.MethodNone {
		c.lockTimeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	} else {
		c.lockTimeout = 0
	}
	c.lastInputAt = time.Now()
	c.shellCtrl.Boot(cfg.Method != lock.MethodNone)
}

// Tick runs the auto-lock check; callers invoke it once per event-loop
// iteration. It transitions ShellView to LockScreen after lockTimeout
// has elapsed with no touch input, mirroring the teacher's idle-watcher
// concept with the compositor's own input timestamps in place of an
// external X11 screensaver-extension poll (Flick owns the input source
// directly, so there is nothing external left to poll).
func (c *Compositor) Tick(now time.Time) {
	if c.lockCtrl == nil || c.lockTimeout <= 0 {
		return
	}
	if c.shellCtrl.View() == shell.ViewLockScreen {
		return
	}
	if now.Sub(c.lastInputAt) >= c.lockTimeout {
		c.shellCtrl.SetView(shell.ViewLockScreen)
	}
}

// noteInput records the time of the most recent touch event for the
// idle auto-lock check.
func (c *Compositor) noteInput(now time.Time) { c.lastInputAt = now }

// PendingTextInputEvents drains and returns text-input events queued by
// the last focus change, for the dispatch loop to deliver to clients.
func (c *Compositor) PendingTextInputEvents() []textinput.Event {
	ev := c.pendingTextInputEvents
	c.pendingTextInputEvents = nil
	return ev
}

func (c *Compositor) nextSerial() uint32 {
	c.serial++
	return c.serial
}

// MapWindow registers a newly mapped window, raises and focuses it, and
// mirrors the window list and focus IPC files. Per §4.3, a window that
// the shell controller was awaiting (tap-to-launch) only now transitions
// the view to App.
func (c *Compositor) MapWindow(w Window, now time.Time) {
	c.windows.Map(w)
	c.shellCtrl.WindowMapped()
	c.raiseAndFocus(w.ID, now)
}

// UnmapWindow removes a window; if none remain, the shell transitions
// Home per the documented rule.
func (c *Compositor) UnmapWindow(id uint32, now time.Time) {
	c.windows.Unmap(id)
	if c.focusedWindow == id {
		c.hasFocus = false
		c.focusedWindow = 0
	}
	if c.windows.Count() == 0 {
		c.shellCtrl.LastWindowClosed()
	} else if top, ok := c.windows.Topmost(); ok {
		c.raiseAndFocus(top.ID, now)
	}
	c.mirrorWindowsIPC(now)
}

// CloseWindow implements animate.WindowCloser: it unmaps the window,
// which is the Go module's stand-in for sending a protocol-appropriate
// close request to whichever backend owns the surface.
func (c *Compositor) CloseWindow(windowID uint32) {
	c.windows.Unmap(windowID)
	if c.focusedWindow == windowID {
		c.hasFocus = false
		c.focusedWindow = 0
	}
}

// AnyWindowsRemain implements animate.WindowLister.
func (c *Compositor) AnyWindowsRemain() bool { return c.windows.Count() > 0 }

// ResizeWindowsForKeyboard implements animate.ResizeHook: every mapped
// window is resized to account for the on-screen keyboard's height.
func (c *Compositor) ResizeWindowsForKeyboard(visible bool) {
	h := c.screen.H
	if visible {
		h -= animate.KeyboardHeight(c.screen.H)
	}
	for _, w := range c.windows.Mapped() {
		c.windows.Resize(w.ID, c.screen.W, h)
	}
}

// RememberKeyboardVisible implements animate.ResizeHook.
func (c *Compositor) RememberKeyboardVisible(windowID uint32, visible bool) {
	if visible {
		c.keyboard.SaveForWindow(windowID)
	}
}

// raiseAndFocus raises a window, sets wire keyboard focus (if a seat is
// wired), and routes the resulting leave/enter through the text-input
// tracker, then mirrors the focus IPC file. Per the ordering guarantee,
// this always completes before any subsequent wire event referencing the
// new surface is processed.
func (c *Compositor) raiseAndFocus(windowID uint32, now time.Time) {
	c.windows.Raise(windowID)
	c.focusedWindow = windowID
	c.hasFocus = true

	c.keyboard.RestoreForWindow(windowID)
	c.ResizeWindowsForKeyboard(c.keyboard.Visible())

	w, ok := c.windows.Get(windowID)
	if ok && w.HasSurface {
		if c.seat != nil {
			c.seat.SetKeyboardFocus(w.SurfaceID, c.nextSerial())
		}
		client := textinput.ClientID(fmt.Sprintf("w%d", windowID))
		surface := textinput.SurfaceID(fmt.Sprintf("s%d", w.SurfaceID))
		c.pendingTextInputEvents = append(c.pendingTextInputEvents, c.textinput.SetFocus(client, surface)...)
	}
	c.mirrorWindowsIPC(now)
	_ = c.paths.WriteFocusIPC(windowID, now)
}

// mirrorWindowsIPC writes the current window stack to the windows IPC
// file; write failures are intentionally ignored here (the file is a
// best-effort mirror for an external reader, not load-bearing state).
func (c *Compositor) mirrorWindowsIPC(now time.Time) {
	_ = c.paths.WriteWindowsIPC(c.windows.Mapped(), now)
}

// FocusedWindow returns the currently focused window id, if any.
func (c *Compositor) FocusedWindow() (uint32, bool) { return c.focusedWindow, c.hasFocus }

// TapApp implements the Home-screen tap-on-app flow: focus an existing
// instance if one is running, otherwise launch a new process. The shell
// view only transitions to App once the new window actually maps.
func (c *Compositor) TapApp(appID string, now time.Time) error {
	def, ok := c.appManager.Get(appID)
	if !ok {
		return fmt.Errorf("tap app: unknown app %q", appID)
	}

	var known []apps.Window
	for _, w := range c.windows.Mapped() {
		known = append(known, apps.Window{ID: w.ID, X11Class: w.Class, X11Inst: w.Instance})
	}
	if match, found := apps.FindExistingInstance(def.Exec, known); found {
		c.raiseAndFocus(match.ID, now)
		c.shellCtrl.TapApp(appID, true)
		return nil
	}

	c.shellCtrl.TapApp(appID, false)
	if c.launcher == nil {
		return nil
	}
	if err := c.launcher.Launch(def.Exec); err != nil {
		return fmt.Errorf("tap app: launch %q: %w", appID, err)
	}
	return nil
}

// HandleTouchDown forwards a touch-down to the gesture recognizer.
func (c *Compositor) HandleTouchDown(slot int, pos geom.Point, now time.Time) {
	c.noteInput(now)
	c.dispatchGestureEvents(c.recognizer.TouchDown(slot, pos, now), now)
}

// HandleTouchMotion forwards a touch-motion to the gesture recognizer.
func (c *Compositor) HandleTouchMotion(slot int, pos geom.Point, now time.Time) {
	c.noteInput(now)
	c.dispatchGestureEvents(c.recognizer.TouchMotion(slot, pos, now), now)
}

// HandleTouchUp forwards a touch-up to the gesture recognizer.
func (c *Compositor) HandleTouchUp(slot int, now time.Time) {
	c.noteInput(now)
	c.dispatchGestureEvents(c.recognizer.TouchUp(slot, now), now)
}

// HandleTouchCancel clears all per-slot recognizer state and aborts any
// animator in progress, per the documented cancellation rule.
func (c *Compositor) HandleTouchCancel() {
	c.recognizer.TouchCancel()
	c.closeAnim.End(false, c)
	c.homeAnim.End(false)
	c.switcherAnim.End(false, revealCommitThreshold)
	c.qsAnim.End(false, revealCommitThreshold)
}

func toGestureEdge(e gesture.Edge) GestureEdge {
	switch e {
	case gesture.EdgeLeft:
		return EdgeLeft
	case gesture.EdgeRight:
		return EdgeRight
	case gesture.EdgeTop:
		return EdgeTop
	case gesture.EdgeBottom:
		return EdgeBottom
	default:
		return EdgeNone
	}
}

func toShellEdge(e gesture.Edge) shell.Edge {
	switch e {
	case gesture.EdgeLeft:
		return shell.EdgeLeft
	case gesture.EdgeRight:
		return shell.EdgeRight
	case gesture.EdgeTop:
		return shell.EdgeTop
	case gesture.EdgeBottom:
		return shell.EdgeBottom
	default:
		return shell.EdgeNone
	}
}

// dispatchGestureEvents routes recognizer output to the appropriate
// animator and shell-view transition, and mirrors gesture progress to
// its IPC file.
func (c *Compositor) dispatchGestureEvents(events []gesture.Event, now time.Time) {
	for _, ev := range events {
		switch ev.Kind {
		case gesture.EventEdgeSwipeStart:
			c.startEdgeAnimator(ev.Edge)
			_ = c.paths.WriteGestureIPC(toGestureEdge(ev.Edge), "start", 0, 0, now)
		case gesture.EventEdgeSwipeUpdate:
			c.updateEdgeAnimator(ev.Edge, ev.Progress)
			_ = c.paths.WriteGestureIPC(toGestureEdge(ev.Edge), "update", ev.Progress, ev.Velocity.Y, now)
		case gesture.EventEdgeSwipeEnd:
			c.endEdgeAnimator(ev.Edge, ev.Completed, now)
			_ = c.paths.WriteGestureIPC(toGestureEdge(ev.Edge), "end", 0, 0, now)
		case gesture.EventPinch:
			c.viewport.ZoomAt(ev.ZoomFactor, ev.Center, c.screen)
		case gesture.EventPan:
			c.viewport.PanBy(ev.PanDelta, c.screen)
		case gesture.EventTap, gesture.EventLongPress:
			// Hit-testing these against rendered geometry is the UI
			// layer's job; the compositor only owns window/focus state.
		}
	}
}

func (c *Compositor) topWindowID() uint32 {
	if w, ok := c.windows.Topmost(); ok {
		return w.ID
	}
	return 0
}

func (c *Compositor) startEdgeAnimator(edge gesture.Edge) {
	switch edge {
	case gesture.EdgeTop:
		c.closeAnim.Start(c.topWindowID())
	case gesture.EdgeBottom:
		c.homeAnim.Start(c.topWindowID())
	case gesture.EdgeLeft:
		c.qsAnim.Start()
	case gesture.EdgeRight:
		c.switcherAnim.Start()
	}
}

func (c *Compositor) updateEdgeAnimator(edge gesture.Edge, progress float64) {
	switch edge {
	case gesture.EdgeTop:
		c.closeAnim.Update(progress)
	case gesture.EdgeBottom:
		c.homeAnim.Update(progress)
	case gesture.EdgeLeft:
		c.qsAnim.Update(progress)
	case gesture.EdgeRight:
		c.switcherAnim.Update(progress)
	}
}

func (c *Compositor) endEdgeAnimator(edge gesture.Edge, completed bool, now time.Time) {
	switch edge {
	case gesture.EdgeTop:
		if c.closeAnim.End(completed, c) {
			c.shellCtrl.SetView(shell.ViewHome)
		}
		c.mirrorWindowsIPC(now)
	case gesture.EdgeBottom:
		wentHome := completed && c.homeAnim.PastKeyboard()
		c.homeAnim.End(completed)
		if wentHome {
			c.shellCtrl.SetView(shell.ViewHome)
		}
	case gesture.EdgeLeft, gesture.EdgeRight:
		var commit bool
		if edge == gesture.EdgeLeft {
			commit = c.qsAnim.End(completed, revealCommitThreshold)
		} else {
			commit = c.switcherAnim.End(completed, revealCommitThreshold)
		}
		c.shellCtrl.EdgeSwipeTransition(toShellEdge(edge), commit)
	}
}
