// Package spawn launches app processes from Flick's compositor, which
// typically runs as root on Droidian devices. Apps must run as an
// ordinary user: this package resolves which user, drops privileges
// before exec, and engineers an environment that forces software
// rendering where the hwcomposer backend can't hand GPU buffers to
// clients directly.
package spawn

import (
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"strconv"
	"syscall"
)

// TargetUser is the account apps are spawned as when Flick itself runs
// as root.
type TargetUser struct {
	Name    string
	UID     uint32
	GID     uint32
	HomeDir string
}

// fallbackUser is the account name Droidian images use by convention
// when neither FLICK_USER nor SUDO_USER names one.
const fallbackUser = "droidian"

// ResolveTargetUserName picks the username apps should run as:
// FLICK_USER (preserved across nested sudo by the launch script), then
// SUDO_USER, then the Droidian fallback account if its home directory
// exists. getenv and homeExists are injected so this pure decision is
// testable without real environment variables or a real filesystem.
func ResolveTargetUserName(getenv func(string) string, homeExists func(user string) bool) (string, bool) {
	if u := getenv("FLICK_USER"); u != "" && u != "root" {
		return u, true
	}
	if u := getenv("SUDO_USER"); u != "" && u != "root" {
		return u, true
	}
	if homeExists(fallbackUser) {
		return fallbackUser, true
	}
	return "", false
}

// ShouldDropPrivileges reports whether the current process is root and
// therefore needs to drop privileges before running an app.
func ShouldDropPrivileges() bool {
	return os.Getuid() == 0
}

// LookupTargetUser resolves a username to uid/gid/home via the system
// user database.
func LookupTargetUser(username string) (TargetUser, error) {
	u, err := user.Lookup(username)
	if err != nil {
		return TargetUser{}, fmt.Errorf("look up user %q: %w", username, err)
	}
	uid, err := strconv.ParseUint(u.Uid, 10, 32)
	if err != nil {
		return TargetUser{}, fmt.Errorf("parse uid for %q: %w", username, err)
	}
	gid, err := strconv.ParseUint(u.Gid, 10, 32)
	if err != nil {
		return TargetUser{}, fmt.Errorf("parse gid for %q: %w", username, err)
	}
	home := u.HomeDir
	if home == "" {
		home = "/home/" + username
	}
	return TargetUser{Name: username, UID: uint32(uid), GID: uint32(gid), HomeDir: home}, nil
}

// RenderBackend selects which environment engineering AppEnv applies:
// Standard targets a regular Wayland-capable GPU path, Hwcomposer
// forces full software rendering for clients that can't receive EGL
// buffers from the hwcomposer-backed compositor directly.
type RenderBackend int

const (
	Standard RenderBackend = iota
	Hwcomposer
)

// AppEnv builds the environment variables a spawned app needs: Wayland
// socket, DPI/text scaling, and (for the hwcomposer backend) a full
// software-rendering path across Qt, GTK, and GStreamer. xdgRuntimeDir
// is forwarded from the caller's own environment when set.
func AppEnv(socketName string, textScale float64, backend RenderBackend, xdgRuntimeDir string) map[string]string {
	gdkScale := int(textScale + 0.5)
	env := map[string]string{
		"WAYLAND_DISPLAY":   socketName,
		"QT_QPA_PLATFORM":   "wayland",
		"QT_QUICK_BACKEND":  "software",
		"QT_OPENGL":         "software",
		"QSG_RENDER_LOOP":   "basic",
		"LIBGL_ALWAYS_SOFTWARE": "1",
		"GST_GL_API":        "",
		"GST_GL_PLATFORM":   "",
		"QT_SCALE_FACTOR":   formatFloat(textScale),
		"QT_FONT_DPI":       strconv.Itoa(int(96.0*textScale + 0.5)),
		"GDK_SCALE":         strconv.Itoa(gdkScale),
		"GDK_DPI_SCALE":     formatFloat(textScale),
	}

	if backend == Hwcomposer {
		env["GDK_BACKEND"] = "wayland"
		env["GSK_RENDERER"] = "cairo"
		env["GDK_RENDERING"] = "image"
		env["GSETTINGS_BACKEND"] = "memory"
		env["GALLIUM_DRIVER"] = "llvmpipe"
		env["__EGL_VENDOR_LIBRARY_FILENAMES"] = ""
		env["GST_VAAPI_ALL_DRIVERS"] = "1"
		env["LIBVA_DRIVER_NAME"] = ""
	}

	if xdgRuntimeDir != "" {
		env["XDG_RUNTIME_DIR"] = xdgRuntimeDir
	}
	return env
}

// UserEnv adds the HOME/USER/LOGNAME and XDG directory variables a
// dropped-privilege child needs once its identity is known.
func UserEnv(target TargetUser) map[string]string {
	home := target.HomeDir
	return map[string]string{
		"HOME":             home,
		"USER":             target.Name,
		"LOGNAME":          target.Name,
		"FLICK_STATE_DIR":  home + "/.local/state/flick",
		"XDG_CONFIG_HOME":  home + "/.config",
		"XDG_DATA_HOME":    home + "/.local/share",
		"XDG_CACHE_HOME":   home + "/.cache",
		"XDG_STATE_HOME":   home + "/.local/state",
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Command builds the *exec.Cmd for launching cmdline under "sh -c",
// with its render-backend environment and, if the current process is
// root, a resolved target user's environment and a Credential that
// drops to that user's uid/gid before exec.
func Command(cmdline, socketName string, textScale float64, backend RenderBackend) *exec.Cmd {
	cmd := exec.Command("sh", "-c", cmdline)

	env := os.Environ()
	for k, v := range AppEnv(socketName, textScale, backend, os.Getenv("XDG_RUNTIME_DIR")) {
		env = append(env, k+"="+v)
	}

	if ShouldDropPrivileges() {
		if username, ok := ResolveTargetUserName(os.Getenv, homeDirExists); ok {
			if target, err := LookupTargetUser(username); err == nil {
				for k, v := range UserEnv(target) {
					env = append(env, k+"="+v)
				}
				cmd.SysProcAttr = &syscall.SysProcAttr{
					Credential: &syscall.Credential{Uid: target.UID, Gid: target.GID, Groups: []uint32{}},
				}
			}
		}
	}

	cmd.Env = env
	return cmd
}

func homeDirExists(username string) bool {
	_, err := os.Stat("/home/" + username)
	return err == nil
}

// Launch runs cmdline as an app, dropping privileges if Flick itself
// runs as root.
func Launch(cmdline, socketName string, textScale float64, backend RenderBackend) error {
	cmd := Command(cmdline, socketName, textScale, backend)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("spawn %q: %w", cmdline, err)
	}
	return nil
}
