package apps

import "testing"

import "github.com/stretchr/testify/require"

func TestExtractBinaryName(t *testing.T) {
	require.Equal(t, "vlc", ExtractBinaryName("/usr/bin/vlc %U"))
	require.Equal(t, "firefox", ExtractBinaryName("env VAR=val firefox"))
	require.Equal(t, "gimp", ExtractBinaryName("GIMP %f"))
	require.Equal(t, "", ExtractBinaryName("%f"))
	require.Equal(t, "", ExtractBinaryName(""))
}

func TestMatchesWindowBidirectionalSubstring(t *testing.T) {
	require.True(t, MatchesWindow("vlc", "Vlc", ""))
	require.True(t, MatchesWindow("firefox", "", "Firefox-esr"))
	require.True(t, MatchesWindow("gimp-2.10", "gimp", ""), "binary name containing class also matches")
	require.False(t, MatchesWindow("vlc", "firefox", "firefox"))
	require.False(t, MatchesWindow("", "vlc", "vlc"))
}

func TestFindExistingInstanceScenario(t *testing.T) {
	windows := []Window{
		{ID: 1, X11Class: "Firefox", X11Inst: "Navigator"},
		{ID: 2, X11Class: "Vlc", X11Inst: "vlc"},
	}
	w, ok := FindExistingInstance("/usr/bin/vlc %U", windows)
	require.True(t, ok)
	require.Equal(t, uint32(2), w.ID)

	_, ok = FindExistingInstance("/usr/bin/gimp", windows)
	require.False(t, ok)
}
