package lock

import (
	"encoding/json"
	"fmt"
	"os"
)

// Method is the authentication method the lock screen uses.
type Method int

const (
	MethodNone Method = iota
	MethodPin
	MethodPattern
	MethodPassword
)

// Config is the persisted lock configuration, one per user, stored as
// lock_config.json under $XDG_STATE_HOME/flick (or ~/.local/state/flick).
type Config struct {
	Method         Method `json:"method"`
	PinHash        string `json:"pin_hash,omitempty"`
	PatternHash    string `json:"pattern_hash,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	MaxAttempts    int    `json:"max_attempts"`
}

// DefaultConfig matches the distillation's documented defaults.
func DefaultConfig() Config {
	return Config{
		Method:         MethodPassword,
		TimeoutSeconds: 300,
		MaxAttempts:    5,
	}
}

// LoadConfig reads and validates a lock configuration file. On parse
// failure the caller should fall back to DefaultConfig and overwrite on
// next save, per the documented config-parse-failure error kind.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read lock config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse lock config: %w", err)
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultConfig().MaxAttempts
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = DefaultConfig().TimeoutSeconds
	}
	return cfg, nil
}

// SaveConfig writes cfg as indented JSON to path.
func SaveConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal lock config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write lock config: %w", err)
	}
	return nil
}
