// Package xwayland plays the XWM role for Flick's Xwayland display: a
// minimal X11 client that becomes the window manager for X11 clients,
// translating their create/configure/map lifecycle into compositor
// window-space operations. The pure lifecycle logic (this file) is
// kept independent of the live xgb connection (conn.go) so it can be
// exercised without an X server.
package xwayland

import "github.com/flickos/flick/internal/geom"

// ManagedWindow is Flick's view of one X11 top-level, wrapped as a
// native compositor window at origin (0,0), sized to the viewport.
type ManagedWindow struct {
	ID       uint32
	Class    string
	Instance string
	X, Y     int
	W, H     int
	Mapped   bool
}

// Manager tracks X11 windows and decides their geometry and lifecycle
// transitions. Letterbox mode overrides configure requests to the
// viewport size; otherwise requests are honored as-is.
type Manager struct {
	windows   map[uint32]*ManagedWindow
	screen    geom.Size
	letterbox bool

	onMapped func(windowID uint32)
}

// NewManager returns a manager sized to screen, optionally in letterbox
// mode (apps configured to a smaller inset viewport than the physical
// output). onMapped is invoked when a window's first MapRequest is
// processed, driving the shell view controller's transition to App.
func NewManager(screen geom.Size, letterbox bool, onMapped func(windowID uint32)) *Manager {
	return &Manager{windows: make(map[uint32]*ManagedWindow), screen: screen, letterbox: letterbox, onMapped: onMapped}
}

// OnCreateNotify registers a new X11 window, pending its wire-surface
// association and configuration.
func (m *Manager) OnCreateNotify(windowID uint32) *ManagedWindow {
	w := &ManagedWindow{ID: windowID}
	m.windows[windowID] = w
	return w
}

// OnConfigureRequest applies a configure request. In letterbox mode the
// requested size is overridden to the viewport/screen size; otherwise
// it is honored verbatim. Position is always the origin per spec §6.
func (m *Manager) OnConfigureRequest(windowID uint32, reqW, reqH int) (appliedW, appliedH int, ok bool) {
	w, found := m.windows[windowID]
	if !found {
		return 0, 0, false
	}
	w.X, w.Y = 0, 0
	if m.letterbox {
		w.W, w.H = m.screen.W, m.screen.H
	} else {
		w.W, w.H = reqW, reqH
	}
	return w.W, w.H, true
}

// OnMapRequest marks a window mapped and, on its first mapping, fires
// onMapped so the shell can transition to the App view.
func (m *Manager) OnMapRequest(windowID uint32) bool {
	w, found := m.windows[windowID]
	if !found {
		return false
	}
	wasMapped := w.Mapped
	w.Mapped = true
	if !wasMapped && m.onMapped != nil {
		m.onMapped(windowID)
	}
	return true
}

// OnDestroyNotify forgets a window entirely.
func (m *Manager) OnDestroyNotify(windowID uint32) {
	delete(m.windows, windowID)
}

// SetWindowClass records the WM_CLASS (class, instance) pair used by
// focus-existing-instance matching.
func (m *Manager) SetWindowClass(windowID uint32, class, instance string) {
	if w, ok := m.windows[windowID]; ok {
		w.Class = class
		w.Instance = instance
	}
}

// Get returns the managed window for windowID.
func (m *Manager) Get(windowID uint32) (*ManagedWindow, bool) {
	w, ok := m.windows[windowID]
	return w, ok
}

// MappedWindows returns all currently mapped windows, for focus-
// existing-instance scanning and the window-list IPC.
func (m *Manager) MappedWindows() []ManagedWindow {
	out := make([]ManagedWindow, 0, len(m.windows))
	for _, w := range m.windows {
		if w.Mapped {
			out = append(out, *w)
		}
	}
	return out
}
