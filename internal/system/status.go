package system

import "github.com/flickos/flick/internal/shell"

// Status aggregates the live device/radio/audio/battery readers into
// the snapshot the quick-settings panel renders against.
type Status struct {
	battery   *BatteryMonitor
	backlight *Backlight
	radios    *Radios
	volume    *Volume

	dndEnabled     bool
	rotationLocked bool
}

// NewStatus wires up whichever backends are available on this device;
// callers on the windowed dev backend will typically get a Status with
// nil battery/backlight, and Snapshot degrades gracefully.
func NewStatus() *Status {
	battery, _ := NewBatteryMonitor()
	backlight, _ := OpenBacklight()
	return &Status{
		battery:   battery,
		backlight: backlight,
		radios:    NewRadios(),
		volume:    NewVolume(),
	}
}

// SetDoNotDisturb records the shell-local DND toggle state; DND has no
// system-level backing store, it is purely a Flick notification filter.
func (s *Status) SetDoNotDisturb(enabled bool) { s.dndEnabled = enabled }

// SetRotationLocked records the shell-local rotation-lock toggle state.
func (s *Status) SetRotationLocked(enabled bool) { s.rotationLocked = enabled }

// Snapshot reads current battery/radio/audio/brightness state into the
// shape the quick-settings panel expects.
func (s *Status) Snapshot() shell.SystemSnapshot {
	snap := shell.SystemSnapshot{
		DndEnabled:     s.dndEnabled,
		RotationLocked: s.rotationLocked,
	}

	if s.battery != nil {
		if bat, err := s.battery.Read(); err == nil {
			snap.BatteryPercent, snap.BatteryCharging = bat.Capacity, bat.Charging
		}
	}
	if snap.BatteryPercent == 0 {
		if bat, ok := ReadBatterySysfs(); ok {
			snap.BatteryPercent, snap.BatteryCharging = bat.Capacity, bat.Charging
		}
	}

	if s.backlight != nil {
		snap.Brightness = s.backlight.Get()
	} else {
		snap.Brightness = 0.5
	}

	if s.radios != nil {
		snap.WifiEnabled = s.radios.WifiEnabled()
		if ssid, ok := s.radios.CurrentSSID(); ok {
			snap.WifiSSID = ssid
		}
		snap.BluetoothEnabled = s.radios.BluetoothEnabled()
	}

	if s.volume != nil {
		snap.Volume = s.volume.Get()
		snap.Muted = s.volume.Muted()
	}

	return snap
}

// ToggleWifi flips the wifi radio and returns the new state.
func (s *Status) ToggleWifi() bool {
	enabled := !s.radios.WifiEnabled()
	s.radios.SetWifiEnabled(enabled)
	return enabled
}

// ToggleBluetooth flips the bluetooth radio and returns the new state.
func (s *Status) ToggleBluetooth() bool {
	enabled := !s.radios.BluetoothEnabled()
	s.radios.SetBluetoothEnabled(enabled)
	return enabled
}

// ToggleAirplaneMode flips all radios together and returns the new
// airplane-mode state.
func (s *Status) ToggleAirplaneMode() bool {
	enabled := !s.radios.AirplaneModeEnabled()
	s.radios.SetAirplaneMode(enabled)
	return enabled
}

// SetBrightness applies value (0.0-1.0) to the backlight, if present.
func (s *Status) SetBrightness(value float32) error {
	if s.backlight == nil {
		return nil
	}
	return s.backlight.Set(value)
}

// SetVolume applies value (0-100) to the Master mixer channel.
func (s *Status) SetVolume(value uint8) { s.volume.Set(value) }

// ToggleMute flips the Master mixer's mute state.
func (s *Status) ToggleMute() { s.volume.ToggleMuted() }
