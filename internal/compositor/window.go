// Package compositor ties the wire-protocol window space, the gesture
// recognizer and its animators, the shell view controller, text input,
// on-screen keyboard and system status together into the single
// cooperative event loop the rest of Flick's packages are driven from.
package compositor

import (
	"sync"

	"github.com/flickos/flick/internal/wire"
)

// Window is one top-level surface the compositor tracks, whether it
// arrived as a native wire surface or an XWayland-translated X11 window.
type Window struct {
	ID       uint32
	Title    string
	Class    string
	Instance string
	X11      bool

	SurfaceID  wire.ObjectID
	HasSurface bool

	X, Y, W, H int
	Mapped     bool
}

// WindowSpace owns the mapped-window list and its stacking order. It is
// the compositor's only source of truth for which window is topmost;
// animate's WindowMover/WindowCloser hooks and the app-switcher focus
// path all read and write through it.
type WindowSpace struct {
	mu    sync.Mutex
	byID  map[uint32]*Window
	order []uint32 // back to front; last element is topmost
}

// NewWindowSpace creates an empty window space.
func NewWindowSpace() *WindowSpace {
	return &WindowSpace{byID: make(map[uint32]*Window)}
}

// Map adds w as mapped and raises it to the top of the stack. Mapping an
// already-known ID updates its fields in place and still raises it.
func (s *WindowSpace) Map(w Window) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.Mapped = true
	s.byID[w.ID] = &w
	s.raiseLocked(w.ID)
}

// Unmap removes a window from the stack. If it was the topmost window
// and no windows remain, the caller should transition the shell to Home
// (see Compositor.UnmapWindow); Unmap itself only removes state.
func (s *WindowSpace) Unmap(id uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, id)
	kept := s.order[:0]
	for _, o := range s.order {
		if o != id {
			kept = append(kept, o)
		}
	}
	s.order = kept
}

// Raise moves id to the top of the stack without changing its geometry.
func (s *WindowSpace) Raise(id uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raiseLocked(id)
}

func (s *WindowSpace) raiseLocked(id uint32) {
	if _, ok := s.byID[id]; !ok {
		return
	}
	kept := s.order[:0]
	for _, o := range s.order {
		if o != id {
			kept = append(kept, o)
		}
	}
	s.order = append(kept, id)
}

// Get returns a copy of the window state for id.
func (s *WindowSpace) Get(id uint32) (Window, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.byID[id]
	if !ok {
		return Window{}, false
	}
	return *w, true
}

// SetSurface records the wire surface id a previously X11-only window
// resolves to, once the XWayland association event arrives.
func (s *WindowSpace) SetSurface(id uint32, surfaceID wire.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.byID[id]; ok {
		w.SurfaceID = surfaceID
		w.HasSurface = true
	}
}

// Topmost returns the frontmost mapped window, if any.
func (s *WindowSpace) Topmost() (Window, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.order) == 0 {
		return Window{}, false
	}
	return *s.byID[s.order[len(s.order)-1]], true
}

// Mapped returns all mapped windows in back-to-front stacking order.
func (s *WindowSpace) Mapped() []Window {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Window, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.byID[id])
	}
	return out
}

// Count reports how many windows are currently mapped.
func (s *WindowSpace) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// MoveWindow implements animate.WindowMover.
func (s *WindowSpace) MoveWindow(windowID uint32, x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.byID[windowID]; ok {
		w.X, w.Y = x, y
	}
}

// WindowPosition implements animate.WindowMover.
func (s *WindowSpace) WindowPosition(windowID uint32) (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.byID[windowID]; ok {
		return w.X, w.Y
	}
	return 0, 0
}

// Resize sets a window's size, used by resize-for-keyboard.
func (s *WindowSpace) Resize(windowID uint32, w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if win, ok := s.byID[windowID]; ok {
		win.W, win.H = w, h
	}
}
