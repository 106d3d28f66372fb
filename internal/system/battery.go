package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/godbus/dbus/v5"
)

// BatteryStatus is a point-in-time reading of the battery.
type BatteryStatus struct {
	Capacity uint8
	Charging bool
	State    string
}

// sysfsBatteryPaths lists the power_supply class directories checked
// in order; Android names its battery "battery", mainline Linux
// typically "BAT0"/"BAT1".
var sysfsBatteryPaths = []string{
	"/sys/class/power_supply/battery",
	"/sys/class/power_supply/Battery",
	"/sys/class/power_supply/BAT0",
	"/sys/class/power_supply/BAT1",
}

// parseBatterySysfs reads capacity/status from one power_supply
// directory, returning false if neither file is readable.
func parseBatterySysfs(dir string) (BatteryStatus, bool) {
	if _, err := os.Stat(dir); err != nil {
		return BatteryStatus{}, false
	}
	capacity := uint8(0)
	if raw, err := os.ReadFile(filepath.Join(dir, "capacity")); err == nil {
		if v, err := strconv.ParseUint(strings.TrimSpace(string(raw)), 10, 8); err == nil {
			capacity = uint8(v)
		}
	}
	status := "Unknown"
	if raw, err := os.ReadFile(filepath.Join(dir, "status")); err == nil {
		status = strings.TrimSpace(string(raw))
	}
	return BatteryStatus{
		Capacity: capacity,
		Charging: status == "Charging" || status == "Full",
		State:    status,
	}, true
}

// ReadBatterySysfs scans the known power_supply class paths for a
// battery, used when UPower is unavailable.
func ReadBatterySysfs() (BatteryStatus, bool) {
	for _, p := range sysfsBatteryPaths {
		if st, ok := parseBatterySysfs(p); ok {
			return st, true
		}
	}
	return BatteryStatus{}, false
}

// BatteryMonitor reads battery status from UPower over the system bus,
// falling back to sysfs if UPower is not running — the same
// connect-and-call shape as the teacher's MediaController, but against
// the system bus and org.freedesktop.UPower rather than the session
// bus and MPRIS.
type BatteryMonitor struct {
	conn *dbus.Conn
}

const (
	upowerDest = "org.freedesktop.UPower"
	upowerPath = "/org/freedesktop/UPower/devices/DisplayDevice"
)

// NewBatteryMonitor connects to the system bus. A nil error with a nil
// conn is never returned; callers without a system bus (e.g. in the
// windowed dev backend) should catch the error and rely on
// ReadBatterySysfs instead.
func NewBatteryMonitor() (*BatteryMonitor, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("connect to system bus: %w", err)
	}
	return &BatteryMonitor{conn: conn}, nil
}

// Close disconnects from the system bus.
func (m *BatteryMonitor) Close() {
	if m.conn != nil {
		m.conn.Close()
	}
}

// Read queries UPower's DisplayDevice (the UPower-synthesized
// aggregate device covering whichever battery is present).
func (m *BatteryMonitor) Read() (BatteryStatus, error) {
	obj := m.conn.Object(upowerDest, dbus.ObjectPath(upowerPath))

	percentage, err := obj.GetProperty(upowerDest + ".Device.Percentage")
	if err != nil {
		return BatteryStatus{}, fmt.Errorf("read UPower percentage: %w", err)
	}
	state, err := obj.GetProperty(upowerDest + ".Device.State")
	if err != nil {
		return BatteryStatus{}, fmt.Errorf("read UPower state: %w", err)
	}

	pct, _ := percentage.Value().(float64)
	// UPower device states: 1=Charging, 2=Discharging, 4=FullyCharged.
	stateCode, _ := state.Value().(uint32)

	return BatteryStatus{
		Capacity: uint8(pct),
		Charging: stateCode == 1 || stateCode == 4,
		State:    upowerStateName(stateCode),
	}, nil
}

func upowerStateName(code uint32) string {
	switch code {
	case 1:
		return "Charging"
	case 2:
		return "Discharging"
	case 4:
		return "Full"
	default:
		return "Unknown"
	}
}
