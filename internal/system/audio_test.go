package system

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAmixerVolume(t *testing.T) {
	out := "Simple mixer control 'Master',0\n  Front Left: Playback 32768 [50%] [on]\n  Front Right: Playback 32768 [50%] [on]\n"
	v, ok := parseAmixerVolume(out)
	require.True(t, ok)
	require.Equal(t, uint8(50), v)
}

func TestParseAmixerVolumeNoMatch(t *testing.T) {
	_, ok := parseAmixerVolume("nothing useful here\n")
	require.False(t, ok)
}

func TestParseAmixerMuted(t *testing.T) {
	require.True(t, parseAmixerMuted("Front Left: Playback 0 [0%] [off]\n"))
	require.False(t, parseAmixerMuted("Front Left: Playback 32768 [50%] [on]\n"))
}

func TestQuoteArgsWrapsEachArgument(t *testing.T) {
	require.Equal(t, "'set' 'Master' '50%'", quoteArgs([]string{"set", "Master", "50%"}))
}

func fakeVolume(out string, err error) *Volume {
	return &Volume{run: func(args ...string) ([]byte, error) {
		if err != nil {
			return nil, err
		}
		return []byte(out), nil
	}}
}

func TestVolumeGetFallsBackTo50OnError(t *testing.T) {
	v := fakeVolume("", fmt.Errorf("amixer not found"))
	require.Equal(t, uint8(50), v.Get())
}

func TestVolumeGetParsesOutput(t *testing.T) {
	v := fakeVolume("Front Left: Playback 1 [73%] [on]\n", nil)
	require.Equal(t, uint8(73), v.Get())
}

func TestVolumeMutedParsesOutput(t *testing.T) {
	v := fakeVolume("Front Left: Playback 0 [0%] [off]\n", nil)
	require.True(t, v.Muted())
}
