// Package gesture turns raw per-finger touch frames into high-level
// gesture events. One Recognizer instance owns one state machine
// per active touch slot; it never fails — ambiguous input simply yields
// no event.
package gesture

import (
	"time"

	"github.com/flickos/flick/internal/geom"
)

// Edge identifies a screen edge an edge-swipe originates from.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeLeft
	EdgeRight
	EdgeTop
	EdgeBottom
)

// Kind tags the current state of one touch slot.
type Kind int

const (
	KindPotentialTap Kind = iota
	KindLongPress
	KindPotentialEdgeSwipe
	KindEdgeSwipe
	KindSwipe
	KindMultiTouch
)

// SlotGesture is the state machine value held for one active touch slot.
type SlotGesture struct {
	Kind Kind
	Edge Edge // meaningful for KindPotentialEdgeSwipe / KindEdgeSwipe
}

// TouchPoint tracks one active finger.
type TouchPoint struct {
	SlotID    int
	StartPos  geom.Point
	CurPos    geom.Point
	StartTime time.Time
	LastTime  time.Time
	Velocity  geom.Point
}

// EventKind tags the variant of a GestureEvent.
type EventKind int

const (
	EventEdgeSwipeStart EventKind = iota
	EventEdgeSwipeUpdate
	EventEdgeSwipeEnd
	EventPinch
	EventPan
	EventTap
	EventLongPress
)

// Event is emitted by the recognizer in response to a touch frame.
type Event struct {
	Kind      EventKind
	Edge      Edge
	Fingers   int
	Progress  float64
	Velocity  geom.Point
	Completed bool
	Center    geom.Point
	Scale     float64 // Pinch only: current_dist / initial_dist, since the gesture started
	Delta     float64 // Pinch only: Scale - 1
	ZoomFactor float64 // Pinch only: current_dist / previous-frame_dist, the per-call multiplicative factor ZoomAt expects
	PanDelta  geom.Point // Pan only: screen-space centroid movement since the previous frame
}

// Config holds the recognizer's tunable thresholds. Zero-value Config is
// invalid; use DefaultConfig.
type Config struct {
	EdgeThreshold         float64
	ActivationDistance    float64
	SwipeThreshold        float64
	CompleteThreshold     float64
	LongPressDuration     time.Duration
	TapDuration           time.Duration
	TapTolerance          float64
	EdgeTapTolerance      float64 // tolerance for a tap cancelled out of PotentialEdgeSwipe
}

// DefaultConfig matches the values named throughout the specification.
func DefaultConfig() Config {
	return Config{
		EdgeThreshold:      80,
		ActivationDistance: 30,
		SwipeThreshold:     300,
		CompleteThreshold:  100,
		LongPressDuration:  500 * time.Millisecond,
		TapDuration:        200 * time.Millisecond,
		TapTolerance:       10,
		EdgeTapTolerance:   20,
	}
}

// Recognizer is a per-slot touch state machine over an output screen size.
type Recognizer struct {
	screen geom.Size
	cfg    Config

	points   map[int]*TouchPoint
	gestures map[int]*SlotGesture

	multiSlots       []int
	pinchInitial     float64
	lastMultiDist    float64
	havePinchInit    bool
	lastCentroid     geom.Point
	haveLastCentroid bool

	activeKind Kind
	haveActive bool
}

// New creates a recognizer for the given logical screen size.
func New(screen geom.Size, cfg Config) *Recognizer {
	return &Recognizer{
		screen:   screen,
		cfg:      cfg,
		points:   make(map[int]*TouchPoint),
		gestures: make(map[int]*SlotGesture),
	}
}

func classifyEdge(pos geom.Point, screen geom.Size, threshold float64) (Edge, bool) {
	w, h := float64(screen.W), float64(screen.H)
	switch {
	case pos.X <= threshold:
		return EdgeLeft, true
	case pos.X >= w-threshold:
		return EdgeRight, true
	case pos.Y <= threshold:
		return EdgeTop, true
	case pos.Y >= h-threshold:
		return EdgeBottom, true
	default:
		return EdgeNone, false
	}
}

// inwardDistance returns the signed distance traveled toward the screen
// interior from edge, given the slot's start and current position.
func inwardDistance(edge Edge, start, cur geom.Point) float64 {
	switch edge {
	case EdgeLeft:
		return cur.X - start.X
	case EdgeRight:
		return start.X - cur.X
	case EdgeTop:
		return cur.Y - start.Y
	case EdgeBottom:
		return start.Y - cur.Y
	default:
		return 0
	}
}

func velocityBetween(prev, cur geom.Point, prevTime, curTime time.Time) geom.Point {
	dt := curTime.Sub(prevTime)
	if dt < time.Millisecond {
		dt = time.Millisecond
	}
	secs := dt.Seconds()
	return geom.Point{X: (cur.X - prev.X) / secs, Y: (cur.Y - prev.Y) / secs}
}

// TouchDown registers a new finger on slot at pos.
func (r *Recognizer) TouchDown(slot int, pos geom.Point, now time.Time) []Event {
	tp := &TouchPoint{SlotID: slot, StartPos: pos, CurPos: pos, StartTime: now, LastTime: now}
	r.points[slot] = tp

	if edge, ok := classifyEdge(pos, r.screen, r.cfg.EdgeThreshold); ok {
		r.gestures[slot] = &SlotGesture{Kind: KindPotentialEdgeSwipe, Edge: edge}
	} else {
		r.gestures[slot] = &SlotGesture{Kind: KindPotentialTap}
	}

	if len(r.points) == 2 {
		r.tryStartMultiTouch()
	}
	return nil
}

// tryStartMultiTouch promotes exactly two active slots to MultiTouch and
// records their initial separation.
func (r *Recognizer) tryStartMultiTouch() {
	if len(r.points) != 2 {
		return
	}
	var slots []int
	for s := range r.points {
		slots = append(slots, s)
	}
	p0, p1 := r.points[slots[0]], r.points[slots[1]]
	dist := p0.CurPos.Distance(p1.CurPos)
	if dist <= 0 {
		return
	}
	r.multiSlots = slots
	r.pinchInitial = dist
	r.lastMultiDist = dist
	r.havePinchInit = true
	r.lastCentroid = geom.Point{X: (p0.CurPos.X + p1.CurPos.X) / 2, Y: (p0.CurPos.Y + p1.CurPos.Y) / 2}
	r.haveLastCentroid = true
	r.gestures[slots[0]] = &SlotGesture{Kind: KindMultiTouch}
	r.gestures[slots[1]] = &SlotGesture{Kind: KindMultiTouch}
}

// TouchMotion updates slot's position and returns any emitted events. A
// motion for an unknown slot is silently ignored.
func (r *Recognizer) TouchMotion(slot int, pos geom.Point, now time.Time) []Event {
	tp, ok := r.points[slot]
	if !ok {
		return nil
	}
	vel := velocityBetween(tp.CurPos, pos, tp.LastTime, now)
	tp.CurPos = pos
	tp.LastTime = now
	tp.Velocity = vel

	sg, ok := r.gestures[slot]
	if !ok {
		return nil
	}

	switch sg.Kind {
	case KindPotentialEdgeSwipe:
		d := inwardDistance(sg.Edge, tp.StartPos, tp.CurPos)
		if d >= r.cfg.ActivationDistance {
			sg.Kind = KindEdgeSwipe
			r.activeKind, r.haveActive = KindEdgeSwipe, true
			return []Event{{Kind: EventEdgeSwipeStart, Edge: sg.Edge, Fingers: 1}}
		}
		return nil
	case KindEdgeSwipe:
		d := inwardDistance(sg.Edge, tp.StartPos, tp.CurPos)
		progress := d / r.cfg.SwipeThreshold
		if progress < 0 {
			progress = 0
		}
		return []Event{{Kind: EventEdgeSwipeUpdate, Edge: sg.Edge, Progress: progress, Velocity: vel}}
	case KindMultiTouch:
		return r.emitMultiTouch()
	default:
		return nil
	}
}

// emitMultiTouch computes the two-finger pinch and pan signals for the
// current frame. Scale/Delta are cumulative since the gesture started
// (the documented Pinch formula); ZoomFactor and PanDelta are each
// relative to the previous frame, the form Viewport.ZoomAt/PanBy expect
// to apply once per call.
func (r *Recognizer) emitMultiTouch() []Event {
	if !r.havePinchInit || len(r.multiSlots) != 2 {
		return nil
	}
	p0, ok0 := r.points[r.multiSlots[0]]
	p1, ok1 := r.points[r.multiSlots[1]]
	if !ok0 || !ok1 {
		return nil
	}
	dist := p0.CurPos.Distance(p1.CurPos)
	scale := dist / r.pinchInitial
	center := geom.Point{X: (p0.CurPos.X + p1.CurPos.X) / 2, Y: (p0.CurPos.Y + p1.CurPos.Y) / 2}
	r.activeKind, r.haveActive = KindMultiTouch, true

	zoomFactor := 1.0
	if r.lastMultiDist > 0 {
		zoomFactor = dist / r.lastMultiDist
	}
	r.lastMultiDist = dist

	events := []Event{{Kind: EventPinch, Center: center, Scale: scale, Delta: scale - 1, ZoomFactor: zoomFactor}}

	if r.haveLastCentroid {
		panDelta := geom.Point{X: center.X - r.lastCentroid.X, Y: center.Y - r.lastCentroid.Y}
		if panDelta.X != 0 || panDelta.Y != 0 {
			events = append(events, Event{Kind: EventPan, Center: center, PanDelta: panDelta})
		}
	}
	r.lastCentroid = center
	r.haveLastCentroid = true

	return events
}

// TouchUp releases slot and returns any emitted terminal event. An up for
// an unknown slot is silently ignored.
func (r *Recognizer) TouchUp(slot int, now time.Time) []Event {
	tp, ok := r.points[slot]
	if !ok {
		return nil
	}
	sg := r.gestures[slot]
	duration := now.Sub(tp.StartTime)
	straightLine := tp.StartPos.Distance(tp.CurPos)

	var events []Event
	if sg != nil {
		switch sg.Kind {
		case KindEdgeSwipe:
			total := inwardDistance(sg.Edge, tp.StartPos, tp.CurPos)
			completed := total > r.cfg.CompleteThreshold
			events = []Event{{Kind: EventEdgeSwipeEnd, Edge: sg.Edge, Completed: completed, Velocity: tp.Velocity}}
		case KindPotentialEdgeSwipe:
			if straightLine < r.cfg.EdgeTapTolerance && duration < r.cfg.TapDuration {
				events = []Event{{Kind: EventTap}}
			}
		case KindPotentialTap:
			if straightLine < r.cfg.TapTolerance && duration < r.cfg.TapDuration {
				events = []Event{{Kind: EventTap}}
			} else if duration >= r.cfg.LongPressDuration {
				events = []Event{{Kind: EventLongPress}}
			}
		}
	}

	r.removeSlot(slot)
	return events
}

func (r *Recognizer) removeSlot(slot int) {
	delete(r.points, slot)
	delete(r.gestures, slot)
	if len(r.multiSlots) > 0 {
		kept := r.multiSlots[:0]
		for _, s := range r.multiSlots {
			if s != slot {
				kept = append(kept, s)
			}
		}
		r.multiSlots = kept
		if len(r.multiSlots) < 2 {
			r.havePinchInit = false
			r.haveLastCentroid = false
			r.multiSlots = nil
		}
	}
	if len(r.points) == 0 {
		r.haveActive = false
		r.havePinchInit = false
		r.haveLastCentroid = false
		r.multiSlots = nil
	}
}

// TouchCancel drops all slots and state. It never emits an event.
func (r *Recognizer) TouchCancel() {
	r.points = make(map[int]*TouchPoint)
	r.gestures = make(map[int]*SlotGesture)
	r.multiSlots = nil
	r.havePinchInit = false
	r.haveLastCentroid = false
	r.haveActive = false
}

// ActiveSlotCount reports how many slots currently hold state — used by
// invariant checks and tests.
func (r *Recognizer) ActiveSlotCount() int { return len(r.points) }

// HasAggregateState reports whether any points, active gesture, or pinch
// initial distance is currently held.
func (r *Recognizer) HasAggregateState() bool {
	return len(r.points) > 0 || r.haveActive || r.havePinchInit
}
