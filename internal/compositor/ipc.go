package compositor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Paths resolves the external IPC file locations the shell UI and other
// companion processes poll: state files live under XDG_RUNTIME_DIR (or
// /tmp if unset), command/scratch files under /tmp specifically, per the
// documented layout.
type Paths struct {
	GestureFile string
	WindowsFile string
	FocusFile   string
	HapticFile  string
	PhonePrefix string
}

// NewPaths resolves Paths against runtimeDir, falling back to /tmp when
// runtimeDir is empty (no XDG_RUNTIME_DIR in the environment).
func NewPaths(runtimeDir string) Paths {
	if runtimeDir == "" {
		runtimeDir = "/tmp"
	}
	return Paths{
		GestureFile: filepath.Join(runtimeDir, "flick-gesture"),
		WindowsFile: filepath.Join(runtimeDir, "flick-windows"),
		FocusFile:   filepath.Join(runtimeDir, "flick-focus"),
		HapticFile:  "/tmp/flick_haptic",
		PhonePrefix: "/tmp/flick_phone_",
	}
}

// writeIPCFile truncates and rewrites path with content. Readers treat an
// empty file as "no event", so a failed write is left for the next
// successful one rather than retried inline in the event loop.
func writeIPCFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

// FormatWindowsIPC renders the mapped-window list as the external shell
// expects: a timestamp line, then one "id|title|class" line per window
// in back-to-front stacking order. X11-translated windows report their
// X11 window id, not any resolved wire surface id, so the list stays
// stable across the surface association race.
func FormatWindowsIPC(windows []Window, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d\n", now.Unix())
	for _, w := range windows {
		fmt.Fprintf(&b, "%d|%s|%s\n", w.ID, w.Title, w.Class)
	}
	return b.String()
}

// GestureEdge mirrors gesture.Edge/shell.Edge as a string, so ipc.go does
// not need to import either package just to format it.
type GestureEdge string

const (
	EdgeNone   GestureEdge = "none"
	EdgeLeft   GestureEdge = "left"
	EdgeRight  GestureEdge = "right"
	EdgeTop    GestureEdge = "top"
	EdgeBottom GestureEdge = "bottom"
)

// FormatGestureIPC renders one line of interactive-gesture progress:
// timestamp, edge, state, progress, velocity — space separated, so an
// external reader can poll it once per frame to mirror the reveal.
func FormatGestureIPC(edge GestureEdge, state string, progress, velocity float64, now time.Time) string {
	return fmt.Sprintf("%d %s %s %.4f %.4f\n", now.Unix(), edge, state, progress, velocity)
}

// FormatFocusIPC renders the currently focused window id as a single
// line; windowID 0 means no window is focused.
func FormatFocusIPC(windowID uint32, now time.Time) string {
	return fmt.Sprintf("%d %d\n", now.Unix(), windowID)
}

// WriteWindowsIPC mirrors the window list to p.WindowsFile.
func (p Paths) WriteWindowsIPC(windows []Window, now time.Time) error {
	return writeIPCFile(p.WindowsFile, FormatWindowsIPC(windows, now))
}

// WriteGestureIPC mirrors one gesture-progress sample to p.GestureFile.
func (p Paths) WriteGestureIPC(edge GestureEdge, state string, progress, velocity float64, now time.Time) error {
	return writeIPCFile(p.GestureFile, FormatGestureIPC(edge, state, progress, velocity, now))
}

// WriteFocusIPC mirrors the focused window id to p.FocusFile.
func (p Paths) WriteFocusIPC(windowID uint32, now time.Time) error {
	return writeIPCFile(p.FocusFile, FormatFocusIPC(windowID, now))
}

// WriteHaptic drops a one-line trigger for the external haptic helper
// to pick up; it truncates on every write like the other state files.
func (p Paths) WriteHaptic(pattern string) error {
	return writeIPCFile(p.HapticFile, pattern+"\n")
}
