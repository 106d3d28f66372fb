package system

import (
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// findAudioUser locates the first user runtime directory under
// /run/user that holds a live PulseAudio or PipeWire socket, and
// resolves its uid to a username. Root-run processes (Flick's
// compositor, typically) need this to reach the session's audio
// server instead of root's own, nonexistent one.
func findAudioUser() (uid uint32, username string, ok bool) {
	entries, err := os.ReadDir("/run/user")
	if err != nil {
		return 0, "", false
	}
	for _, e := range entries {
		id, err := strconv.ParseUint(e.Name(), 10, 32)
		if err != nil {
			continue
		}
		pulsePath := filepath.Join("/run/user", e.Name(), "pulse")
		pipewirePath := filepath.Join("/run/user", e.Name(), "pipewire-0")
		if !pathExists(pulsePath) && !pathExists(pipewirePath) {
			continue
		}
		if u, err := user.LookupId(e.Name()); err == nil {
			return uint32(id), u.Username, true
		}
	}
	return 0, "", false
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// parseAmixerVolume extracts the percentage from `amixer get Master`
// output, which reports lines like
// "Front Left: Playback 32768 [50%] [on]".
func parseAmixerVolume(output string) (uint8, bool) {
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, "Playback") || !strings.Contains(line, "[") {
			continue
		}
		start := strings.Index(line, "[")
		if start < 0 {
			continue
		}
		rest := line[start+1:]
		end := strings.Index(rest, "%")
		if end < 0 {
			continue
		}
		if v, err := strconv.ParseUint(rest[:end], 10, 8); err == nil {
			return uint8(v), true
		}
	}
	return 0, false
}

// parseAmixerMuted reports whether `amixer get Master` output shows
// the channel muted ("[off]").
func parseAmixerMuted(output string) bool {
	return strings.Contains(output, "[off]")
}

// Volume drives the Master mixer channel via amixer, running as
// whichever user owns the active audio session when Flick itself runs
// as root.
type Volume struct {
	run func(args ...string) ([]byte, error)
}

// NewVolume returns a Volume that runs amixer directly, or via sudo as
// the resolved audio user when the current process is root and that
// user differs.
func NewVolume() *Volume {
	return &Volume{run: runAmixer}
}

func runAmixer(args ...string) ([]byte, error) {
	uid, _, ok := findAudioUser()
	if !ok {
		return exec.Command("amixer", args...).Output()
	}
	if syscall.Getuid() == int(uid) {
		return exec.Command("amixer", args...).Output()
	}
	shellCmd := "amixer " + quoteArgs(args)
	return exec.Command("sudo", "-u", "#"+strconv.FormatUint(uint64(uid), 10), "sh", "-c", shellCmd).Output()
}

func quoteArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = "'" + a + "'"
	}
	return strings.Join(quoted, " ")
}

// Get returns the current Master volume, 0-100.
func (v *Volume) Get() uint8 {
	out, err := v.run("get", "Master")
	if err != nil {
		return 50
	}
	vol, ok := parseAmixerVolume(string(out))
	if !ok {
		return 50
	}
	return vol
}

// Set applies value (clamped to 100).
func (v *Volume) Set(value uint8) {
	if value > 100 {
		value = 100
	}
	v.run("set", "Master", strconv.FormatUint(uint64(value), 10)+"%")
}

// Up raises volume by 5%.
func (v *Volume) Up() { v.run("set", "Master", "5%+") }

// Down lowers volume by 5%.
func (v *Volume) Down() { v.run("set", "Master", "5%-") }

// Muted reports whether Master is currently muted.
func (v *Volume) Muted() bool {
	out, err := v.run("get", "Master")
	if err != nil {
		return false
	}
	return parseAmixerMuted(string(out))
}

// SetMuted mutes or unmutes Master.
func (v *Volume) SetMuted(muted bool) {
	state := "unmute"
	if muted {
		state = "mute"
	}
	v.run("set", "Master", state)
}

// ToggleMuted flips the current mute state.
func (v *Volume) ToggleMuted() { v.run("set", "Master", "toggle") }
