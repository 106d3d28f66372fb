package compositor

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fixedTime() time.Time {
	return time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
}

func TestNewPathsFallsBackToTmp(t *testing.T) {
	p := NewPaths("")
	require.Equal(t, "/tmp/flick-gesture", p.GestureFile)
	require.Equal(t, "/tmp/flick_haptic", p.HapticFile)
}

func TestNewPathsUsesRuntimeDir(t *testing.T) {
	p := NewPaths("/run/user/1000")
	require.Equal(t, "/run/user/1000/flick-windows", p.WindowsFile)
}

func TestFormatWindowsIPCListsStackOrder(t *testing.T) {
	windows := []Window{
		{ID: 1, Title: "Terminal", Class: "xterm"},
		{ID: 2, Title: "Browser", Class: "firefox"},
	}
	out := FormatWindowsIPC(windows, fixedTime())
	lines := splitLines(out)
	require.Len(t, lines, 3)
	require.Equal(t, "1|Terminal|xterm", lines[1])
	require.Equal(t, "2|Browser|firefox", lines[2])
}

func TestFormatWindowsIPCEmptyIsJustTimestamp(t *testing.T) {
	out := FormatWindowsIPC(nil, fixedTime())
	lines := splitLines(out)
	require.Len(t, lines, 1)
}

func TestFormatGestureIPCIncludesAllFields(t *testing.T) {
	out := FormatGestureIPC(EdgeLeft, "update", 0.5, 120.0, fixedTime())
	require.Contains(t, out, "left")
	require.Contains(t, out, "update")
	require.Contains(t, out, "0.5000")
}

func TestWriteWindowsIPCTruncatesOnEachWrite(t *testing.T) {
	dir := t.TempDir()
	p := NewPaths(dir)

	require.NoError(t, p.WriteWindowsIPC([]Window{{ID: 1, Title: "a", Class: "b"}}, fixedTime()))
	data, err := os.ReadFile(p.WindowsFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "1|a|b")

	require.NoError(t, p.WriteWindowsIPC(nil, fixedTime()))
	data, err = os.ReadFile(p.WindowsFile)
	require.NoError(t, err)
	require.NotContains(t, string(data), "1|a|b")
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, c := range s {
		if c == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return lines
}

func TestPathsJoinedCorrectly(t *testing.T) {
	p := NewPaths("/run/user/1000")
	require.Equal(t, filepath.Join("/run/user/1000", "flick-focus"), p.FocusFile)
}
