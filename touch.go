package tactile

import (
	"math"
	"time"
)

// Gesture recognizer defaults.
const (
	defaultTapThreshold     = 350 * time.Millisecond // multi-tap repeat window
	defaultTapHoldThreshold = 750 * time.Millisecond // press duration for tap-hold
	defaultSwipeThreshold   = 50.0                   // dominant-axis px for a swipe
	touchRearmDelay         = 20 * time.Millisecond  // trailing-event guard with a tap handler
)

// TapEvent is emitted for a press and release with no meaningful movement.
// TapCount counts successive quick taps within the repeat window, enabling
// double/triple tap detection by the consumer.
type TapEvent struct {
	Event    PointerEvent
	TapCount int
}

// TapHoldEvent is emitted when a press is held without movement past the
// hold threshold. A session that fired tap-hold never also fires tap.
type TapHoldEvent struct {
	Event PointerEvent
}

// SwipeEvent is emitted on release or cancel when the dominant-axis
// displacement exceeds the swipe threshold and the element has no scroll
// room left in that direction.
type SwipeEvent struct {
	Event      PointerEvent
	Direction  Direction
	DistanceX  float64
	DistanceY  float64
	Velocity   float64 // px per millisecond, start to end
}

// ScrollEvent is emitted on every qualifying move once the session commits
// to a scroll axis. Distances are measured from the session start point.
type ScrollEvent struct {
	Event           PointerEvent
	StartPoint      Vec2
	CurrentPoint    Vec2
	DistanceX       float64
	DistanceY       float64
	ScrollDirection Direction
	Velocity        float64 // px per millisecond, start to current
}

// TouchConfig configures a gesture recognizer. Zero-value thresholds take
// the package defaults. Only configured callbacks are invoked.
type TouchConfig struct {
	OnTap     func(TapEvent)
	OnTapHold func(TapHoldEvent)
	OnSwipe   func(SwipeEvent)
	OnScroll  func(ScrollEvent)

	// TapThreshold is the repeat window for multi-tap counting (350ms).
	TapThreshold time.Duration
	// TapHoldThreshold is the motionless press duration that fires
	// tap-hold (750ms).
	TapHoldThreshold time.Duration
	// SwipeDistanceThreshold is the dominant-axis distance a swipe must
	// cover (50).
	SwipeDistanceThreshold float64
}

// Touch recognizes tap, multi-tap, tap-hold, swipe, and scroll gestures on
// one element. One session spans pointer-down to pointer-up/cancel; within
// a session exactly one of tap, tap-hold, or swipe is reported, while
// scroll may repeat during movement.
type Touch struct {
	doc *Document
	el  *Element
	cfg TouchConfig

	// Session state
	active         bool
	pointerID      int
	startPoint     Vec2
	lastMovedPoint Vec2
	startTime      float64
	moved          bool
	holdFired      bool
	hScrollLocked  bool
	vScrollLocked  bool
	scrollDir      Direction
	rearmAt        float64

	tapCount int

	holdTimer     *Timer
	tapResetTimer *Timer

	downFn   PointerListener
	moveFn   PointerListener
	upFn     PointerListener
	cancelFn PointerListener

	destroyed bool
}

// NewTouch attaches a gesture recognizer to el. The element must belong to
// the document. Destroy detaches it.
func NewTouch(doc *Document, el *Element, cfg TouchConfig) *Touch {
	if cfg.TapThreshold <= 0 {
		cfg.TapThreshold = defaultTapThreshold
	}
	if cfg.TapHoldThreshold <= 0 {
		cfg.TapHoldThreshold = defaultTapHoldThreshold
	}
	if cfg.SwipeDistanceThreshold <= 0 {
		cfg.SwipeDistanceThreshold = defaultSwipeThreshold
	}
	t := &Touch{doc: doc, el: el, cfg: cfg}
	t.downFn = t.onPointerDown
	t.moveFn = t.onPointerMove
	t.upFn = t.onPointerUp
	t.cancelFn = t.onPointerCancel
	doc.Events.Add(el, EventPointerDown, t.downFn, 0)
	return t
}

// Element returns the element this recognizer is attached to.
func (t *Touch) Element() *Element {
	return t.el
}

// TapCount returns the current rolling tap count.
func (t *Touch) TapCount() int {
	return t.tapCount
}

// Destroy detaches every listener and stops all timers. Idempotent.
func (t *Touch) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	if t.active {
		t.detachSessionListeners()
	}
	t.doc.Events.Remove(t.el, EventPointerDown, t.downFn)
	t.holdTimer.Stop()
	t.tapResetTimer.Stop()
	t.active = false
}

// --- Session lifecycle ---

func (t *Touch) onPointerDown(ev PointerEvent) {
	if t.destroyed || t.active {
		return
	}
	// Trailing synthetic events right after a session resolves must not
	// re-trigger a new one.
	if t.doc.Now() < t.rearmAt {
		return
	}
	t.active = true
	t.pointerID = ev.PointerID
	t.startPoint = ev.Point()
	t.lastMovedPoint = t.startPoint
	t.startTime = ev.Timestamp
	t.moved = false
	t.holdFired = false
	t.hScrollLocked = false
	t.vScrollLocked = false
	t.scrollDir = DirectionNotMoved

	root := t.doc.Root()
	t.doc.Events.Add(root, EventPointerMove, t.moveFn, 0)
	t.doc.Events.Add(root, EventPointerUp, t.upFn, 0)
	t.doc.Events.Add(root, EventPointerCancel, t.cancelFn, 0)

	t.holdTimer = t.doc.Scheduler().After(t.cfg.TapHoldThreshold, func() {
		t.holdFired = true
		if t.cfg.OnTapHold != nil {
			t.cfg.OnTapHold(TapHoldEvent{Event: ev})
		}
	})
}

func (t *Touch) onPointerMove(ev PointerEvent) {
	if !t.active || ev.PointerID != t.pointerID {
		return
	}
	point := ev.Point()
	if point.X != t.startPoint.X || point.Y != t.startPoint.Y {
		t.holdTimer.Stop()
	}

	// Axis latching uses the distance from the previous move point, not
	// the start point, so a curving gesture cannot flip the committed
	// scroll direction.
	stepX := math.Abs(point.X - t.lastMovedPoint.X)
	stepY := math.Abs(point.Y - t.lastMovedPoint.Y)
	if !t.hScrollLocked && !t.vScrollLocked {
		if stepX > stepY {
			t.hScrollLocked = true
		} else if stepY > stepX {
			t.vScrollLocked = true
		}
	}
	switch {
	case t.hScrollLocked && stepX != 0:
		if point.X > t.lastMovedPoint.X {
			t.scrollDir = DirectionRight
		} else if point.X < t.lastMovedPoint.X {
			t.scrollDir = DirectionLeft
		}
	case t.vScrollLocked && stepY != 0:
		if point.Y > t.lastMovedPoint.Y {
			t.scrollDir = DirectionDown
		} else if point.Y < t.lastMovedPoint.Y {
			t.scrollDir = DirectionUp
		}
	}

	if t.hScrollLocked || t.vScrollLocked {
		t.moved = true
		if t.cfg.OnScroll != nil {
			t.cfg.OnScroll(ScrollEvent{
				Event:           ev,
				StartPoint:      t.startPoint,
				CurrentPoint:    point,
				DistanceX:       point.X - t.startPoint.X,
				DistanceY:       point.Y - t.startPoint.Y,
				ScrollDirection: t.scrollDir,
				Velocity:        t.velocity(point, ev.Timestamp),
			})
		}
	} else if stepX != 0 || stepY != 0 {
		t.moved = true
	}
	t.lastMovedPoint = point
}

func (t *Touch) onPointerUp(ev PointerEvent) {
	if !t.active || ev.PointerID != t.pointerID {
		return
	}
	t.holdTimer.Stop()

	point := ev.Point()
	dx := point.X - t.startPoint.X
	dy := point.Y - t.startPoint.Y

	if math.Round(math.Abs(dx)) < 1 && math.Round(math.Abs(dy)) < 1 && !t.holdFired {
		t.tapCount++
		if t.cfg.OnTap != nil {
			t.cfg.OnTap(TapEvent{Event: ev, TapCount: t.tapCount})
		}
		t.tapResetTimer.Stop()
		t.tapResetTimer = t.doc.Scheduler().After(t.cfg.TapThreshold, func() {
			t.tapCount = 0
		})
	} else {
		// A non-tap release breaks the rolling tap sequence.
		t.tapResetTimer.Stop()
		t.tapCount = 0
		t.evaluateSwipe(ev, point)
	}
	t.endSession()
}

func (t *Touch) onPointerCancel(ev PointerEvent) {
	if !t.active || ev.PointerID != t.pointerID {
		return
	}
	t.holdTimer.Stop()
	t.tapResetTimer.Stop()
	t.tapCount = 0
	// A pointer leaving the element boundary can still register as a swipe.
	t.evaluateSwipe(ev, ev.Point())
	t.endSession()
}

func (t *Touch) endSession() {
	t.detachSessionListeners()
	t.active = false
	delay := time.Duration(0)
	if t.cfg.OnTap != nil {
		delay = touchRearmDelay
	}
	t.rearmAt = t.doc.Now() + delay.Seconds()
}

func (t *Touch) detachSessionListeners() {
	root := t.doc.Root()
	t.doc.Events.Remove(root, EventPointerMove, t.moveFn)
	t.doc.Events.Remove(root, EventPointerUp, t.upFn)
	t.doc.Events.Remove(root, EventPointerCancel, t.cancelFn)
}

// velocity is the Euclidean distance from the start point divided by the
// elapsed milliseconds since the session began.
func (t *Touch) velocity(point Vec2, timestamp float64) float64 {
	elapsedMs := (timestamp - t.startTime) * 1000
	if elapsedMs <= 0 {
		return 0
	}
	return math.Hypot(point.X-t.startPoint.X, point.Y-t.startPoint.Y) / elapsedMs
}

// --- Swipe evaluation ---

func (t *Touch) evaluateSwipe(ev PointerEvent, point Vec2) {
	if t.cfg.OnSwipe == nil {
		return
	}
	dx := point.X - t.startPoint.X
	dy := point.Y - t.startPoint.Y

	var dir Direction
	var dominant float64
	if math.Abs(dx) > math.Abs(dy) {
		dominant = math.Abs(dx)
		if dx > 0 {
			dir = DirectionRight
		} else {
			dir = DirectionLeft
		}
	} else {
		// Vertical tie-break toward Up when the end point is above the
		// start.
		dominant = math.Abs(dy)
		if dy <= 0 {
			dir = DirectionUp
		} else {
			dir = DirectionDown
		}
	}
	if dominant <= t.cfg.SwipeDistanceThreshold {
		return
	}
	if !t.checkSwipe(dir) {
		return
	}
	t.cfg.OnSwipe(SwipeEvent{
		Event:     ev,
		Direction: dir,
		DistanceX: dx,
		DistanceY: dy,
		Velocity:  t.velocity(point, ev.Timestamp),
	})
}

// checkSwipe disambiguates a deliberate swipe from ordinary scrolling: the
// swipe only fires when the element has no scroll room left in the swipe
// direction. The horizontal branch accepts either edge as an or-condition
// while the vertical branch is direction-specific; the imbalance matches
// long-standing observed behavior and is kept deliberately.
func (t *Touch) checkSwipe(dir Direction) bool {
	el := t.el
	switch dir {
	case DirectionLeft, DirectionRight:
		if !el.OverflowX.scrollable() || !el.overflowsX() {
			return true
		}
		atLeft := el.ScrollX == 0
		atRight := math.Ceil(el.ScrollX+el.ClientWidth()) >= el.ContentWidth
		return atLeft || atRight
	default:
		if !el.OverflowY.scrollable() || !el.overflowsY() {
			return true
		}
		if dir == DirectionUp {
			return math.Ceil(el.ScrollY+el.ClientHeight()) >= el.ContentHeight
		}
		return el.ScrollY == 0
	}
}
