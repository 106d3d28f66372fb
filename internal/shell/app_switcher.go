package shell

import (
	"math"

	"github.com/flickos/flick/internal/geom"
)

// WindowCard is one open window as shown in the app switcher's vertical
// card stack.
type WindowCard struct {
	ID       uint32
	Title    string
	AppClass string
	Color    [4]float64
}

// NewWindowCard derives a display color from the app class name.
func NewWindowCard(id uint32, title, appClass string) WindowCard {
	return WindowCard{ID: id, Title: title, AppClass: appClass, Color: classToColor(appClass)}
}

// classToColor hashes a class name into a consistent HSL-derived color,
// so each app gets a stable but arbitrary card color across switcher
// renders.
func classToColor(class string) [4]float64 {
	var hash uint32
	for _, b := range []byte(class) {
		hash = (hash + uint32(b)) * 31
	}
	hue := float64(hash % 360)
	const s, l = 0.6, 0.4

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(hue/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch int(hue / 60) {
	case 0:
		r, g, b = c, x, 0
	case 1:
		r, g, b = x, c, 0
	case 2:
		r, g, b = 0, c, x
	case 3:
		r, g, b = 0, x, c
	case 4:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return [4]float64{r + m, g + m, b + m, 1.0}
}

// AppSwitcherLayout computes card placement for the vertical stack.
type AppSwitcherLayout struct {
	screen          geom.Size
	cardHeightRatio float64
	cardSpacing     float64
	sideMargin      float64
	topOffset       float64
}

// NewAppSwitcherLayout matches the original layout constants: 55% card
// height, 180px overlap spacing, 16px side margin, 80px top offset.
func NewAppSwitcherLayout(screen geom.Size) AppSwitcherLayout {
	return AppSwitcherLayout{
		screen:          screen,
		cardHeightRatio: 0.55,
		cardSpacing:     180.0,
		sideMargin:      16.0,
		topOffset:       80.0,
	}
}

// CardRect returns the card rectangle for the given stack index at
// scrollOffset.
func (l AppSwitcherLayout) CardRect(index int, scrollOffset float64) geom.Rect {
	width := float64(l.screen.W) - l.sideMargin*2
	height := float64(l.screen.H) * l.cardHeightRatio
	y := l.topOffset + float64(index)*l.cardSpacing - scrollOffset
	return geom.Rect{X: l.sideMargin, Y: y, W: width, H: height}
}

// AppSwitcher is the interactive reveal state for the switcher view.
type AppSwitcher struct {
	Layout       AppSwitcherLayout
	ScrollOffset float64
	XOffset      float64
	screenWidth  float64
}

// NewAppSwitcher starts fully hidden, off the right edge of the screen.
func NewAppSwitcher(screen geom.Size) *AppSwitcher {
	return &AppSwitcher{
		Layout:      NewAppSwitcherLayout(screen),
		XOffset:     float64(screen.W),
		screenWidth: float64(screen.W),
	}
}

// SetProgress slides the switcher in from the right: progress=0 hidden,
// progress=1 fully visible.
func (s *AppSwitcher) SetProgress(progress float64) {
	s.XOffset = s.screenWidth * (1 - progress)
}

// HitTest returns the window ID of the topmost card under pos, checking
// cards front-to-back (later-opened on top).
func (s *AppSwitcher) HitTest(pos geom.Point, windows []WindowCard) (uint32, bool) {
	for i := len(windows) - 1; i >= 0; i-- {
		w := windows[i]
		card := s.Layout.CardRect(i, s.ScrollOffset)
		adjustedX := card.X + s.XOffset
		if pos.X >= adjustedX && pos.X < adjustedX+card.W && pos.Y >= card.Y && pos.Y < card.Y+card.H {
			return w.ID, true
		}
	}
	return 0, false
}
