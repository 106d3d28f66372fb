package compositor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWindowSpaceMapRaisesToTop(t *testing.T) {
	s := NewWindowSpace()
	s.Map(Window{ID: 1, Title: "a"})
	s.Map(Window{ID: 2, Title: "b"})

	top, ok := s.Topmost()
	require.True(t, ok)
	require.Equal(t, uint32(2), top.ID)

	s.Raise(1)
	top, ok = s.Topmost()
	require.True(t, ok)
	require.Equal(t, uint32(1), top.ID)
}

func TestWindowSpaceUnmapRemovesFromOrder(t *testing.T) {
	s := NewWindowSpace()
	s.Map(Window{ID: 1})
	s.Map(Window{ID: 2})
	s.Unmap(2)

	require.Equal(t, 1, s.Count())
	_, ok := s.Get(2)
	require.False(t, ok)
}

func TestWindowSpaceMappedReturnsStackOrder(t *testing.T) {
	s := NewWindowSpace()
	s.Map(Window{ID: 1})
	s.Map(Window{ID: 2})
	s.Map(Window{ID: 3})
	s.Raise(1)

	ids := []uint32{}
	for _, w := range s.Mapped() {
		ids = append(ids, w.ID)
	}
	require.Equal(t, []uint32{2, 3, 1}, ids)
}

func TestWindowSpaceSetSurfaceMarksResolved(t *testing.T) {
	s := NewWindowSpace()
	s.Map(Window{ID: 1, X11: true})
	_, ok := s.Get(1)
	require.True(t, ok)

	s.SetSurface(1, 42)
	w, _ := s.Get(1)
	require.True(t, w.HasSurface)
	require.EqualValues(t, 42, w.SurfaceID)
}

func TestWindowSpaceMoveAndResize(t *testing.T) {
	s := NewWindowSpace()
	s.Map(Window{ID: 1, W: 1080, H: 2340})
	s.MoveWindow(1, 0, -500)
	x, y := s.WindowPosition(1)
	require.Equal(t, 0, x)
	require.Equal(t, -500, y)

	s.Resize(1, 1080, 1800)
	w, _ := s.Get(1)
	require.Equal(t, 1800, w.H)
}

func TestWindowSpaceRaiseUnknownIDIsNoop(t *testing.T) {
	s := NewWindowSpace()
	s.Map(Window{ID: 1})
	s.Raise(99)
	top, ok := s.Topmost()
	require.True(t, ok)
	require.Equal(t, uint32(1), top.ID)
}
