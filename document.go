package tactile

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// docPointerState tracks one pointer's press lifecycle.
type docPointerState struct {
	down   bool
	kind   PointerKind
	button MouseButton
	startX float64
	startY float64
	lastX  float64
	lastY  float64
	target *Element // element hit at press time
}

// scrollAnim holds active smooth-scroll tweens for document X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// dragLock is the document-wide single-drag guard. Test-and-set acquire;
// release is a no-op unless the caller owns the lock, so a forced destroy
// racing a normal stop cannot release someone else's session.
type dragLock struct {
	held  bool
	owner *Draggable
}

func (l *dragLock) acquire(d *Draggable) bool {
	if l.held {
		return false
	}
	l.held = true
	l.owner = d
	return true
}

func (l *dragLock) release(d *Draggable) {
	if l.owner == d {
		l.held = false
		l.owner = nil
	}
}

// Document is the top-level object that owns the element tree, the listener
// registry, the droppable registry, pointer state, and the frame clock.
//
// There is no background goroutine: Update advances everything one frame at
// a time, matching a cooperative single-threaded event loop. Events are
// processed synchronously and fully before the next is accepted.
type Document struct {
	root       *Element
	scrollRoot *Element

	// Viewport is the visible client-coordinate region of the document.
	Viewport Rect

	// Events is the listener registry for every element in this document.
	Events *Registry

	sched *Scheduler

	// DraggingActive is set while any drag session is in progress. Hosts
	// use it to suppress selection-like behavior during a drag.
	DraggingActive bool

	droppables map[string]*Droppable
	dropScopes map[string]*dropScope
	drag       dragLock

	// Input state
	pointers    [maxPointers]docPointerState
	captured    [maxPointers]*Element
	injectQueue []syntheticPointerEvent
	testRunner  *TestRunner
	backend     *ebitenBackend

	scrollTween *scrollAnim
	debug       bool
}

// NewDocument creates a document whose root element fills the viewport.
// The root is the default scroll root; size its ContentWidth/ContentHeight
// beyond the viewport to make the page itself scrollable.
func NewDocument(viewport Rect) *Document {
	sched := &Scheduler{}
	root := NewElement("root", viewport.Width, viewport.Height)
	root.ContentWidth = viewport.Width
	root.ContentHeight = viewport.Height
	doc := &Document{
		root:       root,
		scrollRoot: root,
		Viewport:   viewport,
		Events:     newRegistry(sched),
		sched:      sched,
		droppables: make(map[string]*Droppable),
		dropScopes: make(map[string]*dropScope),
	}
	root.doc = doc
	return doc
}

// Root returns the document's root element.
func (d *Document) Root() *Element {
	return d.root
}

// ScrollRoot returns the element whose scroll offsets represent document
// scrolling (the root unless overridden).
func (d *Document) ScrollRoot() *Element {
	return d.scrollRoot
}

// SetScrollRoot overrides the element treated as the document scroller.
func (d *Document) SetScrollRoot(el *Element) {
	if el != nil {
		d.scrollRoot = el
	}
}

// Scheduler returns the document's frame clock.
func (d *Document) Scheduler() *Scheduler {
	return d.sched
}

// Now returns the document clock in seconds.
func (d *Document) Now() float64 {
	return d.sched.Now()
}

// VisibleRect returns the currently visible page-coordinate region:
// the viewport shifted by the document scroll offsets.
func (d *Document) VisibleRect() Rect {
	return Rect{
		X:      d.scrollRoot.ScrollX,
		Y:      d.scrollRoot.ScrollY,
		Width:  d.Viewport.Width,
		Height: d.Viewport.Height,
	}
}

// ScrollBy adjusts the document scroll offsets, clamped to the content.
func (d *Document) ScrollBy(dx, dy float64) {
	d.scrollTween = nil
	d.scrollRoot.SetScroll(d.scrollRoot.ScrollX+dx, d.scrollRoot.ScrollY+dy)
}

// ScrollTo animates the document scroll offsets to (x, y) over duration
// seconds. A zero duration snaps immediately.
func (d *Document) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	if duration <= 0 {
		d.scrollTween = nil
		d.scrollRoot.SetScroll(x, y)
		return
	}
	d.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(d.scrollRoot.ScrollX), float32(x), duration, easeFn),
		tweenY: gween.New(float32(d.scrollRoot.ScrollY), float32(y), duration, easeFn),
	}
}

// ScrollIntoView scrolls the document the minimal amount needed to bring
// the whole element into the visible region. No-op if already visible.
func (d *Document) ScrollIntoView(el *Element) {
	if el == nil {
		return
	}
	box := PageRect(el)
	visible := d.VisibleRect()
	sx, sy := d.scrollRoot.ScrollX, d.scrollRoot.ScrollY

	if box.X < visible.X {
		sx -= visible.X - box.X
	} else if box.X+box.Width > visible.X+visible.Width {
		sx += box.X + box.Width - (visible.X + visible.Width)
	}
	if box.Y < visible.Y {
		sy -= visible.Y - box.Y
	} else if box.Y+box.Height > visible.Y+visible.Height {
		sy += box.Y + box.Height - (visible.Y + visible.Height)
	}
	d.scrollRoot.SetScroll(sx, sy)
}

// Update advances the document by dt seconds: smooth scrolling, scheduled
// timers, frame hooks, then input (injected events first, one per frame,
// then the attached backend).
func (d *Document) Update(dt float64) {
	if d.scrollTween != nil {
		st := d.scrollTween
		x, y := d.scrollRoot.ScrollX, d.scrollRoot.ScrollY
		if !st.doneX {
			val, done := st.tweenX.Update(float32(dt))
			x = float64(val)
			st.doneX = done
		}
		if !st.doneY {
			val, done := st.tweenY.Update(float32(dt))
			y = float64(val)
			st.doneY = done
		}
		d.scrollRoot.SetScroll(x, y)
		if st.doneX && st.doneY {
			d.scrollTween = nil
		}
	}

	d.sched.Step(dt)

	if d.testRunner != nil {
		d.testRunner.step(d)
	}
	consumed := d.processInjectedInput()
	if d.backend != nil && !consumed {
		d.backend.poll(d)
	}
}

// SetDebugMode enables or disables debug mode. When enabled, disposed
// element access panics and suspicious trees produce stderr warnings.
func (d *Document) SetDebugMode(enabled bool) {
	d.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Document debug flag so that
// element operations (which lack a Document pointer) can check it cheaply.
// Only valid with a single Document; multiple Documents with differing
// debug modes will reflect whichever called SetDebugMode last.
var globalDebug bool

// --- Pointer capture ---

// CapturePointer routes all events for pointerID to the given element,
// bypassing hit testing, until released.
func (d *Document) CapturePointer(pointerID int, el *Element) {
	if pointerID >= 0 && pointerID < maxPointers {
		d.captured[pointerID] = el
	}
}

// ReleasePointer stops routing events for pointerID to a captured element.
func (d *Document) ReleasePointer(pointerID int) {
	if pointerID >= 0 && pointerID < maxPointers {
		d.captured[pointerID] = nil
	}
}

// --- Pointer dispatch ---

// HitTest returns the topmost interactable element at the page point, or
// nil over empty space.
func (d *Document) HitTest(pageX, pageY float64) *Element {
	stack := ElementsAt(d, pageX, pageY)
	if len(stack) == 0 {
		return nil
	}
	return stack[0]
}

// DispatchPointer runs the pointer state machine for a single pointer and
// delivers pointerdown/pointermove/pointerup events through the registry.
// Events bubble from the target element up through its ancestors.
func (d *Document) DispatchPointer(pointerID int, kind PointerKind, pageX, pageY float64, pressed bool, button MouseButton, mods KeyModifiers) {
	if pointerID < 0 || pointerID >= maxPointers {
		return
	}
	ps := &d.pointers[pointerID]

	var target *Element
	if d.captured[pointerID] != nil {
		target = d.captured[pointerID]
	} else {
		target = d.HitTest(pageX, pageY)
	}

	ev := d.makeEvent(kind, pointerID, button, mods, pageX, pageY, target)

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.kind = kind
		ps.button = button
		ps.startX, ps.startY = pageX, pageY
		ps.lastX, ps.lastY = pageX, pageY
		ps.target = target
		d.bubble(target, EventPointerDown, ev)

	case !pressed && ps.down:
		ev.Button = ps.button
		d.bubble(target, EventPointerUp, ev)
		d.captured[pointerID] = nil
		ps.down = false
		ps.target = nil

	case pressed && ps.down:
		if pageX != ps.lastX || pageY != ps.lastY {
			ev.Button = ps.button
			d.bubble(target, EventPointerMove, ev)
			ps.lastX, ps.lastY = pageX, pageY
		}

	default:
		// Hover move with no button held.
		if pageX != ps.lastX || pageY != ps.lastY {
			d.bubble(target, EventPointerMove, ev)
			ps.lastX, ps.lastY = pageX, pageY
		}
	}
}

// CancelPointer aborts the pointer's press lifecycle, delivering a
// pointercancel to the captured or pressed element. No-op for an idle
// pointer.
func (d *Document) CancelPointer(pointerID int) {
	if pointerID < 0 || pointerID >= maxPointers {
		return
	}
	ps := &d.pointers[pointerID]
	if !ps.down {
		return
	}
	target := d.captured[pointerID]
	if target == nil {
		target = ps.target
	}
	ev := d.makeEvent(ps.kind, pointerID, ps.button, 0, ps.lastX, ps.lastY, target)
	d.bubble(target, EventPointerCancel, ev)
	d.captured[pointerID] = nil
	ps.down = false
	ps.target = nil
}

func (d *Document) makeEvent(kind PointerKind, pointerID int, button MouseButton, mods KeyModifiers, pageX, pageY float64, target *Element) PointerEvent {
	return PointerEvent{
		Kind:      kind,
		PointerID: pointerID,
		Button:    button,
		Modifiers: mods,
		PageX:     pageX,
		PageY:     pageY,
		ClientX:   pageX - d.scrollRoot.ScrollX,
		ClientY:   pageY - d.scrollRoot.ScrollY,
		Target:    target,
		Timestamp: d.sched.Now(),
	}
}

// bubble delivers the event to target and every ancestor. A nil target
// delivers to the root only, so document-level listeners always run.
func (d *Document) bubble(target *Element, name string, ev PointerEvent) {
	if target == nil {
		target = d.root
	}
	for el := target; el != nil; el = el.Parent {
		d.Events.Trigger(el, name, ev)
	}
}
