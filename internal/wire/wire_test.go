package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeSeat struct {
	caps  SeatCapabilities
	focus ObjectID
	has   bool
}

func (s *fakeSeat) Capabilities() SeatCapabilities { return s.caps }
func (s *fakeSeat) SetKeyboardFocus(surface ObjectID, serial uint32) {
	s.focus = surface
	s.has = true
}
func (s *fakeSeat) KeyboardFocus() (ObjectID, bool) { return s.focus, s.has }

func TestSeatFocusRoundTrip(t *testing.T) {
	var s Seat = &fakeSeat{caps: SeatCapabilities{Keyboard: true}}
	_, ok := s.KeyboardFocus()
	require.False(t, ok)

	s.SetKeyboardFocus(ObjectID(7), 1)
	id, ok := s.KeyboardFocus()
	require.True(t, ok)
	require.Equal(t, ObjectID(7), id)
}

type fakeSurface struct {
	id     ObjectID
	client ClientID
	role   SurfaceRole
	w, h   int
}

func (s *fakeSurface) ID() ObjectID       { return s.id }
func (s *fakeSurface) Client() ClientID   { return s.client }
func (s *fakeSurface) Role() SurfaceRole  { return s.role }
func (s *fakeSurface) Configure(w, h int, serial uint32) {
	s.w, s.h = w, h
}

func TestSurfaceConfigure(t *testing.T) {
	var surf Surface = &fakeSurface{id: 1, client: 2, role: RoleToplevel}
	surf.Configure(1080, 1872, 5)
	fs := surf.(*fakeSurface)
	require.Equal(t, 1080, fs.w)
	require.Equal(t, 1872, fs.h)
}
