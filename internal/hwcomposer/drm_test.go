package hwcomposer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testMode() DisplayMode {
	return DisplayMode{Width: 1080, Height: 2340, RefreshRate: 60}
}

func TestResourcesReportFixedObjectIDs(t *testing.T) {
	d := NewDevice(testMode())
	res := d.Resources()
	require.Equal(t, []uint32{ConnectorID}, res.Connectors)
	require.Equal(t, []uint32{CRTCID}, res.CRTCs)
	require.Equal(t, []uint32{EncoderID}, res.Encoders)
	require.Empty(t, res.FBs)
}

func TestAddFramebufferStartsAt100(t *testing.T) {
	d := NewDevice(testMode())
	id := d.AddFramebuffer(1080, 2340, 1080*4, 32, 24, FormatXRGB8888, 0xdead)
	require.Equal(t, uint32(100), id)

	second := d.AddFramebuffer(1080, 2340, 1080*4, 32, 24, FormatXRGB8888, 0xbeef)
	require.Equal(t, uint32(101), second)
}

func TestGetFramebufferRoundTrip(t *testing.T) {
	d := NewDevice(testMode())
	id := d.AddFramebuffer(640, 480, 640*4, 32, 24, FormatARGB8888, 0x1234)

	fb, ok := d.GetFramebuffer(id)
	require.True(t, ok)
	require.Equal(t, uint32(640), fb.Width)
	require.Equal(t, uint32(480), fb.Height)
}

func TestRemoveFramebufferThenGetMisses(t *testing.T) {
	d := NewDevice(testMode())
	id := d.AddFramebuffer(640, 480, 640*4, 32, 24, FormatARGB8888, 0x1234)
	require.True(t, d.RemoveFramebuffer(id))

	_, ok := d.GetFramebuffer(id)
	require.False(t, ok)
}

func TestRemoveUnknownFramebufferReportsNotFound(t *testing.T) {
	d := NewDevice(testMode())
	require.False(t, d.RemoveFramebuffer(999))
}

func TestRemoveFramebufferTwiceReportsNotFoundSecondTime(t *testing.T) {
	d := NewDevice(testMode())
	id := d.AddFramebuffer(1080, 1920, 4320, 32, 24, FormatARGB8888, 7)
	require.True(t, d.RemoveFramebuffer(id))
	require.False(t, d.RemoveFramebuffer(id))
}

func TestPageFlipUnknownFramebufferFails(t *testing.T) {
	d := NewDevice(testMode())
	require.False(t, d.PageFlip(999))
}

func TestPageFlipAppliesToPrimaryPlane(t *testing.T) {
	d := NewDevice(testMode())
	id := d.AddFramebuffer(1080, 2340, 1080*4, 32, 24, FormatXRGB8888, 0xdead)

	require.True(t, d.PageFlip(id))

	plane, ok := d.Plane(PrimaryPlaneID)
	require.True(t, ok)
	require.Equal(t, id, plane.FbID)
}

func TestSetPlaneCursor(t *testing.T) {
	d := NewDevice(testMode())
	d.SetPlane(CursorPlaneID, 150)

	plane, ok := d.Plane(CursorPlaneID)
	require.True(t, ok)
	require.Equal(t, uint32(150), plane.FbID)
}

func TestPlaneUnknownIDMisses(t *testing.T) {
	d := NewDevice(testMode())
	_, ok := d.Plane(999)
	require.False(t, ok)
}

func TestModeInfoDerivesBlankingTimings(t *testing.T) {
	mi := modeInfo(testMode())
	require.Equal(t, uint16(1080), mi.Hdisplay)
	require.Equal(t, uint16(2340), mi.Vdisplay)
	require.Equal(t, uint16(1280), mi.Htotal)
	require.Equal(t, uint16(2390), mi.Vtotal)
	require.Equal(t, "1080x2340@60", mi.Name)
}

func TestConnectorApproximatesPhysicalSizeAt400DPI(t *testing.T) {
	d := NewDevice(testMode())
	c := d.Connector()
	require.True(t, c.Connected)
	require.InDelta(t, 68, c.WidthMM, 1)
}
