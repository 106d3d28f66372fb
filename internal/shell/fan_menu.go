package shell

import (
	"math"

	"github.com/flickos/flick/internal/geom"
)

// FanMenuSide is which bottom corner the fan menu is anchored to.
type FanMenuSide int

const (
	FanSideLeft FanMenuSide = iota
	FanSideRight
)

// FanCategory is one of the fan menu's five top-level categories.
type FanCategory int

const (
	FanCommunicate FanCategory = iota
	FanMedia
	FanTools
	FanApps
	FanSystem
)

// FanCategories lists all five categories in display order.
var FanCategories = []FanCategory{FanCommunicate, FanMedia, FanTools, FanApps, FanSystem}

// Label returns the category's display name.
func (c FanCategory) Label() string {
	switch c {
	case FanCommunicate:
		return "Communicate"
	case FanMedia:
		return "Media"
	case FanTools:
		return "Tools"
	case FanApps:
		return "Apps"
	case FanSystem:
		return "System"
	default:
		return ""
	}
}

// FanMenuItem is one launchable entry in a category's submenu.
type FanMenuItem struct {
	Name     string
	Icon     string
	Exec     string
	IsRecent bool
}

// FanMenuState is the fan menu's live interaction state.
type FanMenuState struct {
	Visible            bool
	Side                FanMenuSide
	HighlightedCategory int
	SelectedCategory    *FanCategory
	HighlightedItem     int
	TouchPos            geom.Point
	Anchor              geom.Point
	Progress            float64
	SubmenuProgress     float64
}

// NewFanMenuState returns a hidden fan menu with no highlighted entries.
func NewFanMenuState() FanMenuState {
	return FanMenuState{HighlightedCategory: -1, HighlightedItem: -1}
}

// FanMenuLayout computes category and submenu button positions along an
// arc anchored to a bottom screen corner.
type FanMenuLayout struct {
	screen     geom.Size
	fanRadius  float64
	buttonSize float64
	arcSpan    float64
	arcStart   float64
}

// NewFanMenuLayout matches the original's fixed geometry: 200px radius,
// 80px buttons, a 90-degree arc starting 18 degrees above horizontal.
func NewFanMenuLayout(screen geom.Size) FanMenuLayout {
	return FanMenuLayout{
		screen:     screen,
		fanRadius:  200.0,
		buttonSize: 80.0,
		arcSpan:    math.Pi * 0.5,
		arcStart:   math.Pi * 0.1,
	}
}

// AnchorPoint returns the bottom-corner anchor for side, 20px inset.
func (l FanMenuLayout) AnchorPoint(side FanMenuSide) geom.Point {
	y := float64(l.screen.H) - 20.0
	x := 20.0
	if side == FanSideRight {
		x = float64(l.screen.W) - 20.0
	}
	return geom.Point{X: x, Y: y}
}

// CategoryPosition returns the center of the index'th category button,
// fanning out from anchor along the arc (mirrored for the left side).
func (l FanMenuLayout) CategoryPosition(index int, side FanMenuSide, anchor geom.Point) geom.Point {
	count := float64(len(FanCategories))
	angleStep := l.arcSpan / (count - 1)

	var baseAngle float64
	if side == FanSideLeft {
		baseAngle = math.Pi - l.arcStart - float64(index)*angleStep
	} else {
		baseAngle = l.arcStart + float64(index)*angleStep
	}

	return geom.Point{
		X: anchor.X + l.fanRadius*math.Cos(baseAngle),
		Y: anchor.Y - l.fanRadius*math.Sin(baseAngle),
	}
}

// CategoryRect returns the hit-testable square bounds for a category
// button.
func (l FanMenuLayout) CategoryRect(index int, side FanMenuSide, anchor geom.Point) geom.Rect {
	center := l.CategoryPosition(index, side, anchor)
	half := l.buttonSize / 2
	return geom.Rect{X: center.X - half, Y: center.Y - half, W: l.buttonSize, H: l.buttonSize}
}

// HitTestCategory returns the index of the category button under touch,
// or -1 if none.
func (l FanMenuLayout) HitTestCategory(touch geom.Point, side FanMenuSide, anchor geom.Point) int {
	for i := range FanCategories {
		r := l.CategoryRect(i, side, anchor)
		if touch.X >= r.X && touch.X <= r.X+r.W && touch.Y >= r.Y && touch.Y <= r.Y+r.H {
			return i
		}
	}
	return -1
}

// SubmenuPositions returns itemCount positions fanning out from the
// selected category's button on a smaller secondary arc.
func (l FanMenuLayout) SubmenuPositions(categoryIndex, itemCount int, side FanMenuSide, anchor geom.Point) []geom.Point {
	categoryPos := l.CategoryPosition(categoryIndex, side, anchor)

	const submenuRadius = 120.0
	const submenuArc = math.Pi * 0.4
	arcStep := 0.0
	if itemCount > 1 {
		arcStep = submenuArc / float64(itemCount-1)
	}

	out := make([]geom.Point, itemCount)
	for i := 0; i < itemCount; i++ {
		var baseAngle float64
		if side == FanSideLeft {
			baseAngle = math.Pi*0.75 - float64(i)*arcStep
		} else {
			baseAngle = math.Pi*0.25 + float64(i)*arcStep
		}
		out[i] = geom.Point{
			X: categoryPos.X + submenuRadius*math.Cos(baseAngle),
			Y: categoryPos.Y - submenuRadius*math.Sin(baseAngle),
		}
	}
	return out
}
