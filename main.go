package main

import (
	"flag"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/flickos/flick/internal/apps"
	"github.com/flickos/flick/internal/backend/windowed"
	"github.com/flickos/flick/internal/compositor"
	"github.com/flickos/flick/internal/display"
	"github.com/flickos/flick/internal/geom"
	"github.com/flickos/flick/internal/hwcomposer"
	"github.com/flickos/flick/internal/lock"
	"github.com/flickos/flick/internal/spawn"
	"github.com/flickos/flick/internal/system"
)

// defaultScreen is the logical screen size used by the windowed dev
// backend and as a fallback when the hardware mode can't be queried;
// it matches the handset resolution internal/hwcomposer.Open falls
// back to when no display sysfs node or env override is present.
var defaultScreen = geom.Size{W: 1080, H: 2340}

func main() {
	windowedFlag := flag.Bool("windowed", false, "run nested inside a host Wayland compositor (development)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Flick: a mobile-first Wayland shell\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		fmt.Fprintf(os.Stderr, "  --windowed\n    	Run nested inside a host Wayland compositor, for development.\n")
		fmt.Fprintf(os.Stderr, "  	Without this flag, Flick drives the hwcomposer/DRM hardware backend directly.\n")
	}
	flag.Parse()

	stateDir := resolveStateDir()
	InitLogger(LevelInfo, os.Getenv("FLICK_DEBUG") != "", filepath.Join(stateDir, "log"))
	defer InstallPanicHook(filepath.Join(stateDir, "crash.log"))()

	if err := run(*windowedFlag, stateDir); err != nil {
		Error("flick exited: %v", err)
		os.Exit(1)
	}
}

// resolveStateDir follows $XDG_STATE_HOME/flick, falling back to
// ~/.local/state/flick, matching the distillation's own lock-screen
// config path.
func resolveStateDir() string {
	if base := os.Getenv("XDG_STATE_HOME"); base != "" {
		return filepath.Join(base, "flick")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "/tmp"
	}
	return filepath.Join(home, ".local", "state", "flick")
}

// run wires every component and blocks until the backend's connection
// or event source ends.
func run(windowedMode bool, stateDir string) error {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	appCfg := apps.LoadAppConfig(filepath.Join(stateDir, "app_config.json"))
	lockCfg, err := lock.LoadConfig(filepath.Join(stateDir, "lock_config.json"))
	if err != nil {
		Warn("lock config: %v, using defaults", err)
		lockCfg = lock.DefaultConfig()
	}
	if err := display.GenerateDefaultConfigFile(filepath.Join(stateDir, "display_config.json")); err != nil {
		Warn("generate display config: %v", err)
	}
	displayCfg, err := display.LoadConfig(filepath.Join(stateDir, "display_config.json"))
	if err != nil {
		Warn("display config: %v, using defaults", err)
		displayCfg = display.DefaultConfig()
	}

	appManager := apps.NewManager()
	appManager.SetConfig(appCfg)
	appManager.ScanApps(appDirs())

	status := system.NewStatus()
	if err := status.SetBrightness(float32(displayCfg.BrightnessPercent) / 100); err != nil {
		Debug("restore brightness: %v", err)
	}

	renderBackend := spawn.Standard
	if !windowedMode {
		renderBackend = spawn.Hwcomposer
	}
	launcher := appLauncher{socketName: "wayland-flick-0", textScale: 1.0, backend: renderBackend}

	screen := defaultScreen
	var dev *hwcomposer.Device
	var gbm *hwcomposer.GbmDevice
	if !windowedMode {
		dev, gbm, err = hwcomposer.Open()
		if err != nil {
			return fmt.Errorf("open hwcomposer display: %w", err)
		}
		mode := dev.Mode()
		screen = geom.Size{W: int(mode.Width), H: int(mode.Height)}
		_ = gbm
	}

	paths := compositor.NewPaths(os.Getenv("XDG_RUNTIME_DIR"))
	c := compositor.New(screen, paths, status, appManager, launcher, nil)

	currentUser, err := user.Current()
	username := "user"
	if err == nil {
		username = currentUser.Username
	}
	lockCtrl := lock.NewController(lockCfg, lock.NewPamAuthenticator(), username)
	c.SetLockController(lockCtrl, lockCfg)

	if windowedMode {
		return runWindowed(c, screen)
	}
	return runHardware(c)
}

// appDirs lists the freedesktop .desktop directories Flick scans for
// installed apps.
func appDirs() []string {
	dirs := []string{"/usr/share/applications"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local", "share", "applications"))
	}
	return dirs
}

// appLauncher adapts internal/spawn's privilege-dropping process
// launcher to the compositor.Launcher interface.
type appLauncher struct {
	socketName string
	textScale  float64
	backend    spawn.RenderBackend
}

func (l appLauncher) Launch(execStr string) error {
	return spawn.Launch(execStr, l.socketName, l.textScale, l.backend)
}

// runWindowed dials the host Wayland compositor as an ordinary client
// and forwards host pointer/keyboard input into c, per the windowed
// dev backend's documented role.
func runWindowed(c *compositor.Compositor, screen geom.Size) error {
	bridge := windowed.NewHostInputBridge(c.Recognizer(), c.Keyboard())
	conn, err := windowed.Dial(bridge, c.Dispatch, screen, "Flick")
	if err != nil {
		return fmt.Errorf("dial host compositor: %w", err)
	}
	defer conn.Close()

	go tickLoop(c)
	return conn.Serve()
}

// runHardware drives the hwcomposer/DRM backend directly. Raw touch
// input device reading is hardware glue outside this module's scope,
// the same boundary internal/wire draws around the wire protocol codec
// itself; c.HandleTouchDown/Motion/Up is the integration point a real
// evdev reader feeds.
func runHardware(c *compositor.Compositor) error {
	tickLoop(c)
	return nil
}

// tickLoop runs the idle auto-lock check once per second for as long
// as the process lives.
func tickLoop(c *compositor.Compositor) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for now := range ticker.C {
		c.Tick(now)
	}
}
