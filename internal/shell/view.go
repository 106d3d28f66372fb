// Package shell implements the shell view controller: the state
// machine that tracks which screen is on top (home, lock, quick
// settings, app switcher, or a running app) and routes gesture and tap
// input into view transitions. The virtual-viewport pan/zoom model
// lives alongside it in viewport.go.
package shell

// View is the shell's current top-level screen.
type View int

const (
	ViewHome View = iota
	ViewLockScreen
	ViewQuickSettings
	ViewAppSwitcher
	ViewApp
)

// MenuLevel is the long-press app-tile menu's depth.
type MenuLevel int

const (
	MenuClosed MenuLevel = iota
	MenuLevel1
	MenuLevel2
)

// MenuAction distinguishes the two level-1 choices.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionMove
	MenuActionChangeDefault
)

// LongPressMenu holds the two-level app-tile menu's state.
type LongPressMenu struct {
	Level         MenuLevel
	Action        MenuAction
	Category      string
	AvailableApps []string
	ScrollOffset  float64
	Highlighted   int
}

// OpenLevel1 opens the menu at level 1 for the tapped-and-held app.
func (m *LongPressMenu) OpenLevel1(category string) {
	m.Level = MenuLevel1
	m.Action = MenuActionNone
	m.Category = category
	m.Highlighted = 0
}

// ChooseAction descends to level 2 with the chosen action and its list.
func (m *LongPressMenu) ChooseAction(action MenuAction, apps []string) {
	m.Level = MenuLevel2
	m.Action = action
	m.AvailableApps = apps
	m.ScrollOffset = 0
	m.Highlighted = 0
}

// Close dismisses the menu entirely.
func (m *LongPressMenu) Close() {
	*m = LongPressMenu{}
}

// Controller holds the current view, per-view scroll/pan offsets, and
// the optional long-press menu overlay. It does not own the app
// registry, lock controller, or window space directly — those are
// passed as arguments to the operations that need them, avoiding a
// back-reference into the compositor that owns this controller.
type Controller struct {
	view   View
	scroll map[View]float64
	menu   LongPressMenu

	// AwaitingMapForApp, when non-empty, names the app whose window the
	// controller is waiting to see mapped before switching to ViewApp —
	// this avoids flashing a stale App view on tap-to-launch.
	AwaitingMapForApp string
}

// NewController starts on ViewHome.
func NewController() *Controller {
	return &Controller{view: ViewHome, scroll: make(map[View]float64)}
}

// View returns the current top-level view.
func (c *Controller) View() View { return c.view }

// SetView switches the current view directly, used for transitions that
// are not gesture-driven (lock success, window-map completion, boot).
func (c *Controller) SetView(v View) { c.view = v }

// Scroll returns the remembered scroll/pan offset for v.
func (c *Controller) Scroll(v View) float64 { return c.scroll[v] }

// SetScroll remembers a scroll/pan offset for v.
func (c *Controller) SetScroll(v View, offset float64) { c.scroll[v] = offset }

// Menu returns a pointer to the long-press menu overlay so callers can
// mutate it in place.
func (c *Controller) Menu() *LongPressMenu { return &c.menu }

// Boot transitions from process start: Home, unless lockRequired (config
// method != None and the last unlock is stale), in which case LockScreen.
func (c *Controller) Boot(lockRequired bool) {
	if lockRequired {
		c.view = ViewLockScreen
	} else {
		c.view = ViewHome
	}
}

// TapApp begins the tap-on-app-in-Home flow: the caller supplies whether
// an existing instance was focused. If so, TapApp moves the view to App
// at once; if not, the controller remembers which app it
// is waiting on and defers the view change until WindowMapped is called,
// so a new launch never flashes a stale App view.
func (c *Controller) TapApp(appID string, focusedExisting bool) {
	if focusedExisting {
		c.view = ViewApp
		c.AwaitingMapForApp = ""
		return
	}
	c.AwaitingMapForApp = appID
}

// WindowMapped reports that a new top-level window has mapped. If the
// controller was waiting on a launch, it transitions to App now.
func (c *Controller) WindowMapped() {
	if c.AwaitingMapForApp != "" {
		c.view = ViewApp
		c.AwaitingMapForApp = ""
	}
}

// LastWindowClosed transitions to Home, per the rule that closing the
// last window always returns to the home screen.
func (c *Controller) LastWindowClosed() {
	c.view = ViewHome
	c.scroll[ViewAppSwitcher] = 0
}

// EdgeSwipeTransition applies the §4.1 table mapping completed edge
// swipes to view transitions: left->QuickSettings, right->AppSwitcher,
// bottom->Home (handled by the home animator's own logic, this is the
// direct completed-edge-swipe case), top->closes the app (handled by the
// close animator). Only left/right are pure view transitions; bottom and
// top are driven by their animators instead and should not call this.
func (c *Controller) EdgeSwipeTransition(edge Edge, completed bool) {
	if !completed {
		return
	}
	switch edge {
	case EdgeLeft:
		c.view = ViewQuickSettings
	case EdgeRight:
		c.view = ViewAppSwitcher
	}
}

// Edge mirrors gesture.Edge without importing the gesture package, to
// keep shell's public surface independent of the touch recognizer's
// internal representation.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeLeft
	EdgeRight
	EdgeTop
	EdgeBottom
)
