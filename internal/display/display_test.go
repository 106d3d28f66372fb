package display

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigMatchesDocumentedDefaults(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, 100, cfg.BrightnessPercent)
	require.Equal(t, 30, cfg.DimTimeoutSeconds)
	require.False(t, cfg.KeepOnWhileCharging)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "display_config.json")
	cfg := Config{BrightnessPercent: 60, DimTimeoutSeconds: 45, KeepOnWhileCharging: true}
	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestSaveConfigClampsBrightness(t *testing.T) {
	path := filepath.Join(t.TempDir(), "display_config.json")
	require.NoError(t, SaveConfig(path, Config{BrightnessPercent: 150}))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 100, loaded.BrightnessPercent)
}

func TestSaveConfigRejectsNegativeTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "display_config.json")
	err := SaveConfig(path, Config{DimTimeoutSeconds: -1})
	require.Error(t, err)
}

func TestGenerateDefaultConfigFileSkipsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "display_config.json")
	require.NoError(t, SaveConfig(path, Config{BrightnessPercent: 42, DimTimeoutSeconds: 5}))

	require.NoError(t, GenerateDefaultConfigFile(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 42, loaded.BrightnessPercent)
}
