package shell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBootTransitions(t *testing.T) {
	c := NewController()
	c.Boot(false)
	require.Equal(t, ViewHome, c.View())

	c2 := NewController()
	c2.Boot(true)
	require.Equal(t, ViewLockScreen, c2.View())
}

func TestTapAppDefersViewUntilWindowMaps(t *testing.T) {
	c := NewController()
	c.SetView(ViewHome)
	c.TapApp("firefox", false)
	require.Equal(t, ViewHome, c.View(), "view must not flash to App before the window maps")
	require.Equal(t, "firefox", c.AwaitingMapForApp)

	c.WindowMapped()
	require.Equal(t, ViewApp, c.View())
	require.Empty(t, c.AwaitingMapForApp)
}

func TestTapAppFocusingExistingSwitchesImmediately(t *testing.T) {
	c := NewController()
	c.SetView(ViewHome)
	c.TapApp("vlc", true)
	require.Equal(t, ViewApp, c.View())
	require.Empty(t, c.AwaitingMapForApp)
}

func TestLastWindowClosedGoesHome(t *testing.T) {
	c := NewController()
	c.SetView(ViewApp)
	c.SetScroll(ViewAppSwitcher, 42)
	c.LastWindowClosed()
	require.Equal(t, ViewHome, c.View())
	require.Equal(t, 0.0, c.Scroll(ViewAppSwitcher))
}

func TestEdgeSwipeTransitionsOnlyOnCompletion(t *testing.T) {
	c := NewController()
	c.SetView(ViewApp)
	c.EdgeSwipeTransition(EdgeLeft, false)
	require.Equal(t, ViewApp, c.View(), "incomplete swipe does not transition")

	c.EdgeSwipeTransition(EdgeLeft, true)
	require.Equal(t, ViewQuickSettings, c.View())

	c.SetView(ViewApp)
	c.EdgeSwipeTransition(EdgeRight, true)
	require.Equal(t, ViewAppSwitcher, c.View())
}

func TestLongPressMenuLevels(t *testing.T) {
	c := NewController()
	m := c.Menu()
	require.Equal(t, MenuClosed, m.Level)

	m.OpenLevel1("Communicate")
	require.Equal(t, MenuLevel1, m.Level)

	m.ChooseAction(MenuActionMove, []string{"a", "b"})
	require.Equal(t, MenuLevel2, m.Level)
	require.Equal(t, MenuActionMove, m.Action)
	require.Equal(t, []string{"a", "b"}, m.AvailableApps)

	m.Close()
	require.Equal(t, MenuClosed, m.Level)
	require.Empty(t, m.AvailableApps)
}
