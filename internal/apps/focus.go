package apps

import (
	"strings"
)

// ExtractBinaryName derives the binary name used for window matching from
// a freedesktop Exec string, e.g. "/usr/bin/vlc %U" -> "vlc", "env
// VAR=val firefox" -> "firefox". It skips placeholder tokens (starting
// with '%'), env-style "KEY=VALUE" tokens, and the literal "env" prefix.
func ExtractBinaryName(exec string) string {
	for _, part := range strings.Fields(exec) {
		if strings.HasPrefix(part, "%") || strings.Contains(part, "=") || part == "env" {
			continue
		}
		if idx := strings.LastIndex(part, "/"); idx >= 0 {
			part = part[idx+1:]
		}
		return strings.ToLower(part)
	}
	return ""
}

// MatchesWindow reports whether an X11 window's class/instance strings
// identify the same app as binaryName, via case-insensitive bidirectional
// substring containment in either direction against either field.
func MatchesWindow(binaryName, class, instance string) bool {
	if binaryName == "" {
		return false
	}
	class = strings.ToLower(class)
	instance = strings.ToLower(instance)
	return strings.Contains(class, binaryName) || strings.Contains(instance, binaryName) ||
		strings.Contains(binaryName, class) || strings.Contains(binaryName, instance)
}

// Window is the subset of window state focus-existing-instance needs,
// kept independent of any particular compositor window representation.
type Window struct {
	ID       uint32
	X11Class string
	X11Inst  string
}

// FindExistingInstance returns the first window among windows that matches
// exec's binary name, and whether one was found.
func FindExistingInstance(exec string, windows []Window) (Window, bool) {
	binaryName := ExtractBinaryName(exec)
	if binaryName == "" {
		return Window{}, false
	}
	for _, w := range windows {
		if MatchesWindow(binaryName, w.X11Class, w.X11Inst) {
			return w, true
		}
	}
	return Window{}, false
}
