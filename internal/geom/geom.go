// Package geom holds the small geometric primitives shared by every shell
// and compositor component: points, sizes, rects, easing and animated
// values. Nothing here owns state beyond its own fields.
package geom

import "math"

// Point is a 2D coordinate in logical pixels.
type Point struct {
	X, Y float64
}

func (p Point) Add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y} }
func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }

// Distance returns the Euclidean distance between p and o.
func (p Point) Distance(o Point) float64 {
	dx, dy := p.X-o.X, p.Y-o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Size is a logical width/height pair.
type Size struct {
	W, H int
}

// Rect is an axis-aligned rectangle in logical pixels, origin top-left.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies within r, inclusive of edges.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{r.X + r.W/2, r.Y + r.H/2}
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp linearly interpolates between a and b by t in [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// EaseOutCubic is the easing curve used for gesture-snap animations.
func EaseOutCubic(t float64) float64 {
	t = Clamp(t, 0, 1)
	f := t - 1
	return f*f*f + 1
}

// AnimatedValue tracks a value easing toward a target over a duration.
// It is a pure data holder; callers drive it by calling Step with an
// elapsed-time delta.
type AnimatedValue struct {
	Current  float64
	start    float64
	target   float64
	elapsed  float64
	duration float64
}

// AnimateTo begins animating from Current to target over durationSeconds.
func (a *AnimatedValue) AnimateTo(target, durationSeconds float64) {
	a.start = a.Current
	a.target = target
	a.elapsed = 0
	a.duration = durationSeconds
}

// Step advances the animation by dtSeconds and reports whether it is done.
func (a *AnimatedValue) Step(dtSeconds float64) bool {
	if a.duration <= 0 {
		a.Current = a.target
		return true
	}
	a.elapsed += dtSeconds
	t := a.elapsed / a.duration
	if t >= 1 {
		a.Current = a.target
		return true
	}
	a.Current = Lerp(a.start, a.target, EaseOutCubic(t))
	return false
}
