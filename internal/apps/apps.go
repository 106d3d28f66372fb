// Package apps implements discovery and ordering of installed
// applications and the focus-existing-instance lookup used when the
// shell taps an already-running app.
package apps

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AppDef describes one discovered application.
type AppDef struct {
	ID          string
	DisplayName string
	IconName    string
	Color       string
	Exec        string
	SourcePath  string
}

// AppInfo is the render-oriented projection of an AppDef used by grid and
// switcher views.
type AppInfo struct {
	ID          string
	DisplayName string
	IconName    string
	Color       string
}

func (d AppDef) Info() AppInfo {
	return AppInfo{ID: d.ID, DisplayName: d.DisplayName, IconName: d.IconName, Color: d.Color}
}

// AppConfig is the persisted grid ordering, app_config.json.
type AppConfig struct {
	GridOrder []string `json:"grid_order"`
}

// LoadAppConfig reads app_config.json at path, returning an empty config
// if the file is absent or malformed, so the defaults are used and the
// next save overwrites the file. Nothing is logged here.
func LoadAppConfig(path string) AppConfig {
	data, err := os.ReadFile(path)
	if err != nil {
		return AppConfig{}
	}
	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}
	}
	return cfg
}

// SaveAppConfig persists cfg as indented JSON.
func SaveAppConfig(path string, cfg AppConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal app config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// MoveApp relocates the app at index from to index to within the grid
// order, shifting the entries between them.
func (c *AppConfig) MoveApp(from, to int) {
	if from < 0 || from >= len(c.GridOrder) || to < 0 || to >= len(c.GridOrder) || from == to {
		return
	}
	id := c.GridOrder[from]
	without := append(append([]string{}, c.GridOrder[:from]...), c.GridOrder[from+1:]...)
	out := append(append([]string{}, without[:to]...), append([]string{id}, without[to:]...)...)
	c.GridOrder = out
}

// Manager owns the discovered app catalogue and its persisted ordering.
type Manager struct {
	apps   map[string]AppDef
	order  []string
	config AppConfig
}

// NewManager returns an empty manager; call ScanApps to populate it.
func NewManager() *Manager {
	return &Manager{apps: make(map[string]AppDef)}
}

// SetConfig applies a loaded app_config.json's grid ordering; call
// before ScanApps so the first rebuildOrder honors it.
func (m *Manager) SetConfig(cfg AppConfig) { m.config = cfg }

// Config returns the manager's current grid-order config, for saving
// back after a drag-reorder.
func (m *Manager) Config() AppConfig { return AppConfig{GridOrder: m.order} }

// ScanApps walks dirs looking for freedesktop .desktop entries and
// populates the catalogue. Unparseable files are skipped, not fatal.
func (m *Manager) ScanApps(dirs []string) {
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".desktop") {
				continue
			}
			path := filepath.Join(dir, e.Name())
			def, ok := parseDesktopEntry(path)
			if !ok {
				continue
			}
			m.apps[def.ID] = def
		}
	}
	m.rebuildOrder()
}

func (m *Manager) rebuildOrder() {
	seen := make(map[string]bool, len(m.apps))
	var order []string
	for _, id := range m.config.GridOrder {
		if _, ok := m.apps[id]; ok && !seen[id] {
			order = append(order, id)
			seen[id] = true
		}
	}
	for id := range m.apps {
		if !seen[id] {
			order = append(order, id)
			seen[id] = true
		}
	}
	m.order = order
}

// parseDesktopEntry extracts the handful of keys Flick cares about from a
// minimal freedesktop .desktop file.
func parseDesktopEntry(path string) (AppDef, bool) {
	f, err := os.Open(path)
	if err != nil {
		return AppDef{}, false
	}
	defer f.Close()

	def := AppDef{SourcePath: path, ID: strings.TrimSuffix(filepath.Base(path), ".desktop")}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "Name="):
			def.DisplayName = strings.TrimPrefix(line, "Name=")
		case strings.HasPrefix(line, "Icon="):
			def.IconName = strings.TrimPrefix(line, "Icon=")
		case strings.HasPrefix(line, "Exec="):
			def.Exec = strings.TrimPrefix(line, "Exec=")
		case strings.HasPrefix(line, "X-Flick-Color="):
			def.Color = strings.TrimPrefix(line, "X-Flick-Color=")
		}
	}
	if def.Exec == "" {
		return AppDef{}, false
	}
	if def.DisplayName == "" {
		def.DisplayName = def.ID
	}
	return def, true
}

// GridOrder returns the apps in their persisted/display order.
func (m *Manager) GridOrder() []AppInfo {
	out := make([]AppInfo, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.apps[id].Info())
	}
	return out
}

// Get returns the AppDef for id.
func (m *Manager) Get(id string) (AppDef, bool) {
	d, ok := m.apps[id]
	return d, ok
}

// Exec returns the exec string for id, as used by focus-existing-instance
// and process spawn.
func (m *Manager) Exec(id string) (string, bool) {
	d, ok := m.apps[id]
	return d.Exec, ok
}
