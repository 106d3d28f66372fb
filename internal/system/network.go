package system

import (
	"os/exec"
	"strconv"
	"strings"
)

// WifiNetwork is one scan result.
type WifiNetwork struct {
	SSID      string
	Signal    uint8
	Security  string
	Connected bool
}

// parseNmcliConnectionShow extracts the SSID of the active wireless
// connection from `nmcli -t -f NAME,TYPE connection show --active`
// output.
func parseNmcliConnectionShow(output string) (string, bool) {
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, "wireless") || strings.Contains(line, "wifi") {
			name, _, _ := strings.Cut(line, ":")
			if name != "" {
				return name, true
			}
		}
	}
	return "", false
}

// parseNmcliWifiList parses `nmcli -t -f SSID,SIGNAL,SECURITY dev wifi
// list` output into scan results, marking the currently connected SSID.
func parseNmcliWifiList(output, currentSSID string) []WifiNetwork {
	var out []WifiNetwork
	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}
		parts := strings.Split(line, ":")
		if len(parts) < 1 || parts[0] == "" {
			continue
		}
		ssid := parts[0]
		var signal uint8
		if len(parts) >= 2 {
			if v, err := strconv.ParseUint(parts[1], 10, 8); err == nil {
				signal = uint8(v)
			}
		}
		security := ""
		if len(parts) >= 3 {
			security = parts[2]
		}
		out = append(out, WifiNetwork{
			SSID:      ssid,
			Signal:    signal,
			Security:  security,
			Connected: currentSSID != "" && currentSSID == ssid,
		})
	}
	return out
}

// parseRfkillBluetoothBlocked reports whether `rfkill list bluetooth`
// output shows the radio soft-blocked (disabled).
func parseRfkillBluetoothBlocked(output string) bool {
	return strings.Contains(output, "Soft blocked: yes")
}

// findWifiDevice extracts the first wifi-type device name from
// `nmcli -t -f DEVICE,TYPE dev` output, for disconnect.
func findWifiDevice(output string) (string, bool) {
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, "wifi") {
			device, _, _ := strings.Cut(line, ":")
			return device, device != ""
		}
	}
	return "", false
}

// Radios drives WiFi, Bluetooth, and airplane mode through nmcli and
// rfkill, the same external-tool approach as the original shell's
// system integration.
type Radios struct {
	run func(name string, args ...string) ([]byte, error)
}

// NewRadios returns a Radios that shells out for real.
func NewRadios() *Radios {
	return &Radios{run: func(name string, args ...string) ([]byte, error) {
		return exec.Command(name, args...).Output()
	}}
}

// WifiEnabled reports whether nmcli's wifi radio is on.
func (r *Radios) WifiEnabled() bool {
	out, err := r.run("nmcli", "radio", "wifi")
	return err == nil && strings.TrimSpace(string(out)) == "enabled"
}

// SetWifiEnabled turns the wifi radio on or off.
func (r *Radios) SetWifiEnabled(enabled bool) bool {
	state := "off"
	if enabled {
		state = "on"
	}
	_, err := r.run("nmcli", "radio", "wifi", state)
	return err == nil
}

// CurrentSSID returns the SSID of the active wireless connection, if
// any.
func (r *Radios) CurrentSSID() (string, bool) {
	out, err := r.run("nmcli", "-t", "-f", "NAME,TYPE", "connection", "show", "--active")
	if err != nil {
		return "", false
	}
	return parseNmcliConnectionShow(string(out))
}

// ScanWifi lists nearby networks, marking the currently connected one.
func (r *Radios) ScanWifi() []WifiNetwork {
	current, _ := r.CurrentSSID()
	out, err := r.run("nmcli", "-t", "-f", "SSID,SIGNAL,SECURITY", "dev", "wifi", "list")
	if err != nil {
		return nil
	}
	return parseNmcliWifiList(string(out), current)
}

// ConnectWifi joins ssid, optionally with a password.
func (r *Radios) ConnectWifi(ssid string, password string) bool {
	args := []string{"dev", "wifi", "connect", ssid}
	if password != "" {
		args = append(args, "password", password)
	}
	_, err := r.run("nmcli", args...)
	return err == nil
}

// DisconnectWifi disconnects the active wifi device, if any.
func (r *Radios) DisconnectWifi() bool {
	out, err := r.run("nmcli", "-t", "-f", "DEVICE,TYPE", "dev")
	if err != nil {
		return false
	}
	device, ok := findWifiDevice(string(out))
	if !ok {
		return false
	}
	_, err = r.run("nmcli", "dev", "disconnect", device)
	return err == nil
}

// BluetoothEnabled reports whether the bluetooth radio is un-blocked.
func (r *Radios) BluetoothEnabled() bool {
	out, err := r.run("rfkill", "list", "bluetooth")
	return err == nil && !parseRfkillBluetoothBlocked(string(out))
}

// SetBluetoothEnabled blocks or unblocks the bluetooth radio.
func (r *Radios) SetBluetoothEnabled(enabled bool) bool {
	action := "block"
	if enabled {
		action = "unblock"
	}
	_, err := r.run("rfkill", action, "bluetooth")
	return err == nil
}

// AirplaneModeEnabled reports whether both wifi and bluetooth are off.
func (r *Radios) AirplaneModeEnabled() bool {
	return !r.WifiEnabled() && !r.BluetoothEnabled()
}

// SetAirplaneMode turns all radios off (enabled=true) or restores wifi
// and bluetooth (enabled=false).
func (r *Radios) SetAirplaneMode(enabled bool) {
	r.SetWifiEnabled(!enabled)
	r.SetBluetoothEnabled(!enabled)
}
