package animate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeMover struct {
	pos map[uint32][2]int
}

func newFakeMover(windowID uint32, x, y int) *fakeMover {
	return &fakeMover{pos: map[uint32][2]int{windowID: {x, y}}}
}

func (m *fakeMover) MoveWindow(windowID uint32, x, y int) { m.pos[windowID] = [2]int{x, y} }
func (m *fakeMover) WindowPosition(windowID uint32) (int, int) {
	p := m.pos[windowID]
	return p[0], p[1]
}

type fakeCloser struct{ closed []uint32 }

func (c *fakeCloser) CloseWindow(windowID uint32) { c.closed = append(c.closed, windowID) }

type fakeLister struct{ remain bool }

func (l fakeLister) AnyWindowsRemain() bool { return l.remain }

func TestCloseAnimatorCommit(t *testing.T) {
	mover := newFakeMover(1, 0, 0)
	closer := &fakeCloser{}
	a := NewCloseAnimator(mover, closer)

	a.Start(1)
	a.Update(0.5)
	x, y := mover.WindowPosition(1)
	require.Equal(t, 0, x)
	require.Equal(t, 150, y)

	goHome := a.End(true, fakeLister{remain: false})
	require.True(t, goHome)
	require.Equal(t, []uint32{1}, closer.closed)
}

func TestCloseAnimatorCancelRestoresPosition(t *testing.T) {
	mover := newFakeMover(1, 20, 100)
	a := NewCloseAnimator(mover, &fakeCloser{})
	a.Start(1)
	a.Update(0.8)
	goHome := a.End(false, fakeLister{remain: true})
	require.False(t, goHome)
	x, y := mover.WindowPosition(1)
	require.Equal(t, 20, x)
	require.Equal(t, 100, y)
}

type fakeKeyboard struct {
	visible   bool
	showCalls int
	hideCalls int
}

func (k *fakeKeyboard) Visible() bool { return k.visible }
func (k *fakeKeyboard) Show() {
	k.showCalls++
	k.visible = true
}
func (k *fakeKeyboard) Hide() {
	k.hideCalls++
	k.visible = false
}

type fakeResize struct {
	resized    []bool
	remembered map[uint32]bool
}

func (r *fakeResize) ResizeWindowsForKeyboard(visible bool) { r.resized = append(r.resized, visible) }
func (r *fakeResize) RememberKeyboardVisible(windowID uint32, visible bool) {
	if r.remembered == nil {
		r.remembered = make(map[uint32]bool)
	}
	r.remembered[windowID] = visible
}

// TestHomeGestureScenario reproduces the spec's literal keyboard-first
// home gesture walkthrough: screen_h=2400, keyboard_height=528,
// commit_threshold=588, window starting at y=0.
func TestHomeGestureScenario(t *testing.T) {
	mover := newFakeMover(1, 0, 0)
	kb := &fakeKeyboard{visible: false}
	resize := &fakeResize{}
	a := NewHomeAnimator(mover, kb, resize, 2400)

	require.Equal(t, 528, KeyboardHeight(2400))

	a.Start(1)
	require.True(t, kb.visible, "keyboard shown immediately since it was not visible")
	require.False(t, a.PastKeyboard())

	a.Update(300.0 / swipeThreshold)
	_, y := mover.WindowPosition(1)
	require.Equal(t, -300, y)
	require.False(t, a.PastKeyboard())
	require.True(t, kb.visible)

	a.Update(600.0 / swipeThreshold)
	_, y = mover.WindowPosition(1)
	require.Equal(t, -600, y)
	require.True(t, a.PastKeyboard(), "600 >= 588 commit threshold")
	require.False(t, kb.visible)

	// Idempotence: a second update on the same side must not re-hide.
	hideCallsBefore := kb.hideCalls
	a.Update(600.0 / swipeThreshold)
	require.Equal(t, hideCallsBefore, kb.hideCalls)

	a.Update(400.0 / swipeThreshold)
	require.False(t, a.PastKeyboard(), "retreated below threshold")
	require.True(t, kb.visible)

	a.End(false)
	_, y = mover.WindowPosition(1)
	require.Equal(t, 0, y, "window restored")
	require.Equal(t, []bool{true}, resize.resized)
	require.True(t, resize.remembered[1])
}

func TestHomeGestureAlreadyVisibleIsPureHomeGesture(t *testing.T) {
	mover := newFakeMover(1, 0, 0)
	kb := &fakeKeyboard{visible: true}
	a := NewHomeAnimator(mover, kb, &fakeResize{}, 2400)

	a.Start(1)
	require.True(t, a.PastKeyboard())

	// Past-keyboard follows the current offset: 30px is below the 588px
	// commit threshold, so the flag drops back to false.
	a.Update(0.1)
	require.False(t, a.PastKeyboard())

	a.End(true)
	_, y := mover.WindowPosition(1)
	require.Equal(t, 0, y)
}

func TestHomeGestureCancelWhenBarelyMoved(t *testing.T) {
	mover := newFakeMover(1, 0, 0)
	kb := &fakeKeyboard{visible: false}
	a := NewHomeAnimator(mover, kb, &fakeResize{}, 2400)

	a.Start(1)
	a.Update(10.0 / swipeThreshold)
	a.End(false)

	_, y := mover.WindowPosition(1)
	require.Equal(t, 0, y)
	require.False(t, kb.visible, "cancelled gesture hides keyboard")
}

func TestRevealAnimatorCommitsPastThreshold(t *testing.T) {
	r := NewRevealAnimator()
	r.Start()
	r.Update(0.6)
	require.Equal(t, 0.6, r.Progress)
	require.True(t, r.End(false, 0.5))
}

func TestRevealAnimatorCancelBelowThreshold(t *testing.T) {
	r := NewRevealAnimator()
	r.Start()
	r.Update(0.2)
	require.False(t, r.End(false, 0.5))
}

func TestRevealAnimatorNegativeProgressClampedToZero(t *testing.T) {
	r := NewRevealAnimator()
	r.Start()
	r.Update(-0.3)
	require.Equal(t, 0.0, r.Progress)
}
