package system

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeBatteryFixture(t *testing.T, dir, capacity, status string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "capacity"), []byte(capacity), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "status"), []byte(status), 0644))
}

func TestParseBatterySysfsCharging(t *testing.T) {
	dir := t.TempDir()
	writeBatteryFixture(t, dir, "72\n", "Charging\n")

	st, ok := parseBatterySysfs(dir)
	require.True(t, ok)
	require.Equal(t, uint8(72), st.Capacity)
	require.True(t, st.Charging)
	require.Equal(t, "Charging", st.State)
}

func TestParseBatterySysfsDischarging(t *testing.T) {
	dir := t.TempDir()
	writeBatteryFixture(t, dir, "45\n", "Discharging\n")

	st, ok := parseBatterySysfs(dir)
	require.True(t, ok)
	require.False(t, st.Charging)
}

func TestParseBatterySysfsFullCountsAsCharging(t *testing.T) {
	dir := t.TempDir()
	writeBatteryFixture(t, dir, "100\n", "Full\n")

	st, ok := parseBatterySysfs(dir)
	require.True(t, ok)
	require.True(t, st.Charging)
}

func TestParseBatterySysfsMissingDir(t *testing.T) {
	_, ok := parseBatterySysfs("/nonexistent/battery/path")
	require.False(t, ok)
}

func TestUpowerStateName(t *testing.T) {
	require.Equal(t, "Charging", upowerStateName(1))
	require.Equal(t, "Discharging", upowerStateName(2))
	require.Equal(t, "Full", upowerStateName(4))
	require.Equal(t, "Unknown", upowerStateName(99))
}
