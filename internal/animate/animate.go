// Package animate implements the interactive-gesture animators: close,
// keyboard-first home, app switcher reveal and quick-settings reveal.
// Each mutates a window's position or a shared progress value in
// response to EdgeSwipeStart/Update/End events. The home and reveal
// animators decide commit-vs-cancel from their own offset or progress
// threshold at release; the close animator commits exactly when the
// gesture recognizer's completed flag is set.
package animate

const swipeThreshold = 300.0

// WindowMover is the compositor-space hook an animator uses to move a
// window during an interactive gesture.
type WindowMover interface {
	MoveWindow(windowID uint32, x, y int)
	WindowPosition(windowID uint32) (x, y int)
}

// WindowCloser sends a protocol-appropriate close request and unmaps.
type WindowCloser interface {
	CloseWindow(windowID uint32)
}

// KeyboardHook is the subset of keyboard.Controller the home animator
// needs, kept as an interface to avoid importing the keyboard package
// directly into animate.
type KeyboardHook interface {
	Visible() bool
	Show()
	Hide()
}

// ResizeHook resizes all mapped windows to account for keyboard
// visibility, mirroring the compositor's resize_windows_for_keyboard.
type ResizeHook interface {
	ResizeWindowsForKeyboard(visible bool)
	RememberKeyboardVisible(windowID uint32, visible bool)
}

// KeyboardHeight returns the on-screen keyboard height for screenH,
// matching the original's max(200, screenH*0.22).
func KeyboardHeight(screenH int) int {
	h := int(float64(screenH) * 0.22)
	if h < 200 {
		return 200
	}
	return h
}

// CloseAnimator drives the swipe-down-to-close gesture on one window.
type CloseAnimator struct {
	mover  WindowMover
	closer WindowCloser

	active    bool
	windowID  uint32
	originalY int
	originalX int
}

func NewCloseAnimator(mover WindowMover, closer WindowCloser) *CloseAnimator {
	return &CloseAnimator{mover: mover, closer: closer}
}

// Start captures the window's original position.
func (a *CloseAnimator) Start(windowID uint32) {
	x, y := a.mover.WindowPosition(windowID)
	a.active = true
	a.windowID = windowID
	a.originalX = x
	a.originalY = y
}

// Update moves the window down proportionally to progress.
func (a *CloseAnimator) Update(progress float64) {
	if !a.active {
		return
	}
	offset := int(progress * swipeThreshold)
	a.mover.MoveWindow(a.windowID, a.originalX, a.originalY+offset)
}

// WindowLister reports whether any tracked windows remain, used by End
// to decide whether to report a transition to Home.
type WindowLister interface {
	AnyWindowsRemain() bool
}

// End closes the window if completed, else restores it. It reports
// whether the caller should transition ShellView to Home (no windows
// remain after a completed close).
func (a *CloseAnimator) End(completed bool, lister WindowLister) (goHome bool) {
	if !a.active {
		return false
	}
	defer func() { a.active = false }()

	if completed {
		a.closer.CloseWindow(a.windowID)
		return !lister.AnyWindowsRemain()
	}
	a.mover.MoveWindow(a.windowID, a.originalX, a.originalY)
	return false
}

// HomeAnimator drives the swipe-up-to-home gesture with keyboard-first
// semantics: dragging up first reveals the keyboard, and only commits to
// Home once the finger passes keyboardHeight+60px.
type HomeAnimator struct {
	mover    WindowMover
	keyboard KeyboardHook
	resize   ResizeHook
	screenH  int

	active       bool
	windowID     uint32
	originalX    int
	originalY    int
	pastKeyboard bool
}

func NewHomeAnimator(mover WindowMover, keyboard KeyboardHook, resize ResizeHook, screenH int) *HomeAnimator {
	return &HomeAnimator{mover: mover, keyboard: keyboard, resize: resize, screenH: screenH}
}

// Start captures window position and whether the keyboard was already
// visible. If it was, the gesture starts already past the commit
// threshold (a pure home gesture); otherwise the keyboard is shown
// immediately as part of the gesture.
func (a *HomeAnimator) Start(windowID uint32) {
	x, y := a.mover.WindowPosition(windowID)
	a.active = true
	a.windowID = windowID
	a.originalX = x
	a.originalY = y

	if a.keyboard.Visible() {
		a.pastKeyboard = true
	} else {
		a.pastKeyboard = false
		a.keyboard.Show()
	}
}

// Update moves the window up proportionally and recomputes past_keyboard
// from the current offset, toggling keyboard visibility only on a real
// threshold crossing (idempotent on repeated calls on the same side).
func (a *HomeAnimator) Update(progress float64) {
	if !a.active {
		return
	}
	offset := int(progress * swipeThreshold)
	a.mover.MoveWindow(a.windowID, a.originalX, a.originalY-offset)

	commitThreshold := KeyboardHeight(a.screenH) + 60
	wasPast := a.pastKeyboard
	if offset >= commitThreshold {
		if !wasPast {
			a.keyboard.Hide()
			a.pastKeyboard = true
		}
	} else {
		if wasPast {
			a.keyboard.Show()
			a.pastKeyboard = false
		}
	}
}

// End decides the three-way outcome described in the on-screen keyboard
// section: committed home, snap-keyboard-into-place, or cancel.
func (a *HomeAnimator) End(completed bool) {
	if !a.active {
		return
	}
	pastKeyboard := a.pastKeyboard
	_, y := a.mover.WindowPosition(a.windowID)
	actualOffset := a.originalY - y

	switch {
	case pastKeyboard:
		a.mover.MoveWindow(a.windowID, a.originalX, a.originalY)
	case actualOffset > 20:
		a.mover.MoveWindow(a.windowID, a.originalX, a.originalY)
		a.resize.ResizeWindowsForKeyboard(true)
		a.resize.RememberKeyboardVisible(a.windowID, true)
	default:
		a.mover.MoveWindow(a.windowID, a.originalX, a.originalY)
		a.keyboard.Hide()
	}

	a.active = false
	a.pastKeyboard = false
}

// PastKeyboard reports whether the gesture, if ended now, would commit to
// Home. End resets the flag, so callers read PastKeyboard before calling
// End to decide the ShellView transition.
func (a *HomeAnimator) PastKeyboard() bool { return a.pastKeyboard }

// RevealAnimator is the shared shape of the switcher and quick-settings
// animators: a 0..1 progress value streamed to shared state, with commit
// deciding the resulting view on release.
type RevealAnimator struct {
	Progress float64
	active   bool
}

func NewRevealAnimator() *RevealAnimator { return &RevealAnimator{} }

func (r *RevealAnimator) Start() {
	r.active = true
	r.Progress = 0
}

func (r *RevealAnimator) Update(progress float64) {
	if !r.active {
		return
	}
	if progress < 0 {
		progress = 0
	}
	r.Progress = progress
}

// End reports whether the reveal should commit (progress far enough
// along, or the recognizer says the gesture completed).
func (r *RevealAnimator) End(completed bool, commitThreshold float64) (commit bool) {
	if !r.active {
		return false
	}
	r.active = false
	return completed || r.Progress >= commitThreshold
}
