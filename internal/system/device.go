// Package system bridges Flick's shell to the live device: backlight,
// vibrator, battery, wifi/bluetooth/airplane-mode radios, and audio
// volume. Each concern splits pure parsing/formatting (tested without
// touching the filesystem or spawning processes) from the small glue
// that actually reads sysfs or shells out, mirroring how the teacher
// keeps `internal/media_control.go`'s D-Bus calls thin wrappers around
// logic that doesn't need a live bus to exercise.
package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Backlight controls screen brightness through the sysfs backlight
// class. Set writes the brightness node directly and returns the write
// error; there is no brightnessctl fallback.
type Backlight struct {
	path          string
	maxBrightness uint32
}

// OpenBacklight finds the first backlight device under
// /sys/class/backlight and reads its max_brightness.
func OpenBacklight() (*Backlight, error) {
	const dir = "/sys/class/backlight"
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		raw, err := os.ReadFile(filepath.Join(path, "max_brightness"))
		if err != nil {
			continue
		}
		max, err := strconv.ParseUint(strings.TrimSpace(string(raw)), 10, 32)
		if err != nil {
			continue
		}
		return &Backlight{path: path, maxBrightness: uint32(max)}, nil
	}
	return nil, fmt.Errorf("no backlight device found under %s", dir)
}

// Get returns current brightness as a 0.0-1.0 fraction.
func (b *Backlight) Get() float32 {
	raw, err := os.ReadFile(filepath.Join(b.path, "brightness"))
	if err != nil {
		return 0.5
	}
	val, err := strconv.ParseUint(strings.TrimSpace(string(raw)), 10, 32)
	if err != nil {
		return 0.5
	}
	return brightnessFraction(uint32(val), b.maxBrightness)
}

// brightnessFraction converts a raw/max sysfs reading into a 0.0-1.0
// fraction.
func brightnessFraction(raw, max uint32) float32 {
	if max == 0 {
		return 0.5
	}
	return float32(raw) / float32(max)
}

// Set applies value (0.0-1.0, clamped to a 5% floor to avoid a fully
// black screen) by writing the sysfs brightness node.
func (b *Backlight) Set(value float32) error {
	raw := rawBrightness(value, b.maxBrightness)
	path := filepath.Join(b.path, "brightness")
	if err := os.WriteFile(path, []byte(strconv.FormatUint(uint64(raw), 10)), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// rawBrightness converts a clamped 0.0-1.0 fraction to a raw sysfs
// value against max.
func rawBrightness(value float32, max uint32) uint32 {
	clamped := clampFloat(value, 0.05, 1.0)
	return uint32(clamped * float32(max))
}

func clampFloat(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Vibrator drives the Android/Droidian vibrator LED class device for
// haptic feedback.
type Vibrator struct {
	path string
}

const vibratorPath = "/sys/class/leds/vibrator"

// OpenVibrator returns a Vibrator if the vibrator LED device exists.
func OpenVibrator() (*Vibrator, error) {
	if _, err := os.Stat(vibratorPath); err != nil {
		return nil, fmt.Errorf("no vibrator device at %s: %w", vibratorPath, err)
	}
	return &Vibrator{path: vibratorPath}, nil
}

// Vibrate triggers a vibration for durationMs milliseconds.
func (v *Vibrator) Vibrate(durationMs uint32) error {
	if err := os.WriteFile(filepath.Join(v.path, "duration"), []byte(strconv.FormatUint(uint64(durationMs), 10)), 0644); err != nil {
		return fmt.Errorf("set vibrator duration: %w", err)
	}
	if err := os.WriteFile(filepath.Join(v.path, "activate"), []byte("1"), 0644); err != nil {
		return fmt.Errorf("activate vibrator: %w", err)
	}
	return nil
}

// Tap is a short vibration for key presses.
func (v *Vibrator) Tap() error { return v.Vibrate(15) }

// Click is a medium vibration for actions like closing an app.
func (v *Vibrator) Click() error { return v.Vibrate(25) }

// Heavy is a strong vibration for important events.
func (v *Vibrator) Heavy() error { return v.Vibrate(50) }
