package apps

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeDesktopFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestScanAppsParsesDesktopEntries(t *testing.T) {
	dir := t.TempDir()
	writeDesktopFile(t, dir, "vlc.desktop", "Name=VLC\nIcon=vlc\nExec=/usr/bin/vlc %U\nX-Flick-Color=#ff8800\n")
	writeDesktopFile(t, dir, "broken.desktop", "Name=Broken\n")

	m := NewManager()
	m.ScanApps([]string{dir})

	def, ok := m.Get("vlc")
	require.True(t, ok)
	require.Equal(t, "VLC", def.DisplayName)
	require.Equal(t, "vlc", def.IconName)
	require.Equal(t, "#ff8800", def.Color)

	_, ok = m.Get("broken")
	require.False(t, ok, "entries without Exec are skipped")
}

func TestGridOrderFollowsPersistedConfig(t *testing.T) {
	dir := t.TempDir()
	writeDesktopFile(t, dir, "a.desktop", "Name=A\nExec=a\n")
	writeDesktopFile(t, dir, "b.desktop", "Name=B\nExec=b\n")
	writeDesktopFile(t, dir, "c.desktop", "Name=C\nExec=c\n")

	m := NewManager()
	m.config = AppConfig{GridOrder: []string{"c", "a"}}
	m.ScanApps([]string{dir})

	order := m.GridOrder()
	require.Len(t, order, 3)
	require.Equal(t, "c", order[0].ID)
	require.Equal(t, "a", order[1].ID)
	require.Equal(t, "b", order[2].ID, "unlisted apps appended after the configured ones")
}

func TestMoveApp(t *testing.T) {
	cfg := AppConfig{GridOrder: []string{"a", "b", "c", "d"}}
	cfg.MoveApp(0, 2)
	require.Equal(t, []string{"b", "c", "a", "d"}, cfg.GridOrder)
}

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app_config.json")
	cfg := AppConfig{GridOrder: []string{"x", "y"}}
	require.NoError(t, SaveAppConfig(path, cfg))

	loaded := LoadAppConfig(path)
	require.Equal(t, cfg, loaded)
}

func TestLoadAppConfigMissingFileReturnsEmpty(t *testing.T) {
	cfg := LoadAppConfig("/nonexistent/app_config.json")
	require.Empty(t, cfg.GridOrder)
}

func TestSetConfigAppliedBeforeScan(t *testing.T) {
	dir := t.TempDir()
	writeDesktopFile(t, dir, "a.desktop", "Name=A\nExec=a\n")
	writeDesktopFile(t, dir, "b.desktop", "Name=B\nExec=b\n")

	m := NewManager()
	m.SetConfig(AppConfig{GridOrder: []string{"b", "a"}})
	m.ScanApps([]string{dir})

	order := m.GridOrder()
	require.Len(t, order, 2)
	require.Equal(t, "b", order[0].ID)
	require.Equal(t, []string{"b", "a"}, m.Config().GridOrder)
}
