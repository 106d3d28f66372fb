// Package display persists screen and screensaver preferences as
// display_config.json, the third of the three state files named in the
// persisted-state list (alongside app_config.json and lock_config.json).
package display

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the persisted display configuration, one per user.
type Config struct {
	// BrightnessPercent is the last user-set backlight level, restored
	// on boot before any ambient-light adjustment runs.
	BrightnessPercent int `json:"brightness_percent"`
	// DimTimeoutSeconds is the persisted idle-dim timeout (0 disables
	// dimming). It is stored and validated here; no code in this module
	// dims the backlight from it.
	DimTimeoutSeconds int `json:"dim_timeout_seconds"`
	// KeepOnWhileCharging is the persisted keep-screen-on-while-charging
	// preference. It is stored here; neither auto-lock nor any dimming
	// consults it.
	KeepOnWhileCharging bool `json:"keep_on_while_charging"`
}

// DefaultConfig matches the distillation's documented defaults: full
// brightness, dim after 30s of idle input, no charging exemption.
func DefaultConfig() Config {
	return Config{
		BrightnessPercent: 100,
		DimTimeoutSeconds: 30,
	}
}

// LoadConfig reads and validates a display configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read display config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse display config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid display config: %w", err)
	}
	return cfg, nil
}

// SaveConfig validates and writes cfg to path, creating parent
// directories as needed.
func SaveConfig(path string, cfg Config) error {
	if err := validate(&cfg); err != nil {
		return fmt.Errorf("invalid display config: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal display config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create display config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write display config: %w", err)
	}
	return nil
}

// validate clamps brightness to 0..100 rather than rejecting a
// marginally out-of-range value, and rejects a negative dim timeout.
func validate(cfg *Config) error {
	if cfg.BrightnessPercent < 0 {
		cfg.BrightnessPercent = 0
	}
	if cfg.BrightnessPercent > 100 {
		cfg.BrightnessPercent = 100
	}
	if cfg.DimTimeoutSeconds < 0 {
		return fmt.Errorf("dim timeout must not be negative")
	}
	return nil
}

// GenerateDefaultConfigFile writes a default display_config.json at path
// if one does not already exist.
func GenerateDefaultConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return SaveConfig(path, DefaultConfig())
}
