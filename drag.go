package tactile

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/tanema/gween/ease"
)

// Drag engine defaults.
const (
	defaultDragDistance   = 1.0  // px of movement before a drag starts
	defaultRevertDuration = 0.25 // seconds for the revert tween
)

// DragStartEvent is passed to OnDragStart before a session begins. Setting
// Cancel aborts the drag without starting it.
type DragStartEvent struct {
	Event   PointerEvent
	Element *Element
	Cancel  bool
}

// DragEvent reports one position update of an active drag.
type DragEvent struct {
	Event    PointerEvent
	Element  *Element
	Helper   *Element
	Position Vec2 // page coordinates written to the helper this update
	Target   *Element
}

// DragStopEvent reports the end of a drag session. Target is nil when the
// release happened over no compatible droppable.
type DragStopEvent struct {
	Event   PointerEvent
	Element *Element
	Helper  *Element
	Target  *Droppable
}

// DragConfig configures a draggable element. The zero value drags the
// element itself in the default scope with a 1px distance threshold.
type DragConfig struct {
	// Clone drags a shallow copy of the element instead of the element
	// itself; the copy is owned by the engine and disposed on stop.
	Clone bool
	// Helper, when set, manufactures the visual proxy at drag start.
	// Returning nil silently cancels the drag (a voluntary cancel, not
	// an error).
	Helper func(DragStartEvent) *Element

	// DragArea clamps helper movement to a bounding container.
	DragArea *Element
	// CoordinateFrame selects how DragArea interprets coordinates.
	CoordinateFrame CoordinateFrame
	// Axis restricts which coordinate is written to the helper.
	Axis Axis
	// Distance is the movement threshold before dragging starts (1).
	Distance float64

	// Handle restricts drag initiation to presses on a matching
	// descendant or inside one (the press target's ancestors are
	// consulted too).
	Handle Selector
	// Abort suppresses drag initiation on matching descendants,
	// including presses on their children.
	Abort Selector

	// Scope names the droppable group this drag targets ("default").
	Scope string
	// DragData is attached to the scope slot and handed to droppables.
	DragData any

	// TailMode makes the helper trail under the pointer's top-left
	// rather than preserving the grab offset.
	TailMode bool
	// AutoScroll scrolls the document and the nearest scrollable
	// ancestor to keep the helper visible.
	AutoScroll bool
	// ScrollAware corrects the helper position by the ancestor scroll
	// accumulated during the session (ignored in clone mode).
	ScrollAware bool

	// TapHoldToDrag requires a motionless hold before a touch pointer
	// arms the drag.
	TapHoldToDrag bool
	// TapHoldThreshold is the hold duration for TapHoldToDrag (750ms).
	TapHoldThreshold time.Duration

	// Revert animates the helper back to its origin when the drop was
	// not accepted. Only applies when the helper is not engine-owned.
	Revert bool
	// RevertDuration is the revert tween length (250ms).
	RevertDuration time.Duration

	OnDragStart func(*DragStartEvent)
	OnDrag      func(DragEvent)
	OnDragStop  func(DragStopEvent)
	// OnFail observes a panic recovered inside the per-move update. The
	// session is already cleaned up when it runs.
	OnFail func(error)
}

// dragSession is the ephemeral state of one active drag, created when the
// distance threshold is crossed and destroyed on release or cancel.
type dragSession struct {
	id          string
	helper      *Element
	helperOwned bool

	cursorOffset Vec2
	lastPosition Vec2

	limits    Limits
	border    Edges
	padding   Edges
	hasLimits bool

	scrollAncestor *Element
	scrollStart    Vec2

	originX, originY float64 // helper local position at drag start
	hovered          *Droppable
}

// Draggable wires drag behavior onto an element. At most one Draggable in a
// document is in the Dragging state at a time; pointer-downs elsewhere stay
// idle until the active session resolves.
type Draggable struct {
	doc *Document
	el  *Element
	cfg DragConfig

	armed     bool
	holdArmed bool
	dragging  bool
	pointerID int
	kind      PointerKind
	start     Vec2

	session *dragSession

	holdTimer *Timer

	downFn   PointerListener
	moveFn   PointerListener
	upFn     PointerListener
	cancelFn PointerListener

	destroyed bool
}

// NewDraggable attaches drag behavior to el with the given configuration.
func NewDraggable(doc *Document, el *Element, cfg DragConfig) *Draggable {
	if cfg.Distance <= 0 {
		cfg.Distance = defaultDragDistance
	}
	if cfg.Scope == "" {
		cfg.Scope = DefaultScope
	}
	if cfg.TapHoldThreshold <= 0 {
		cfg.TapHoldThreshold = defaultTapHoldThreshold
	}
	g := &Draggable{doc: doc, el: el, cfg: cfg}
	g.downFn = g.onPointerDown
	g.moveFn = g.onPointerMove
	g.upFn = g.onPointerUp
	g.cancelFn = g.onPointerCancel
	doc.Events.Add(el, EventPointerDown, g.downFn, 0)
	return g
}

// Element returns the draggable's source element.
func (g *Draggable) Element() *Element {
	return g.el
}

// Dragging reports whether a session is currently active.
func (g *Draggable) Dragging() bool {
	return g.dragging
}

// Helper returns the active session's helper element, or nil.
func (g *Draggable) Helper() *Element {
	if g.session == nil {
		return nil
	}
	return g.session.helper
}

// Destroy force-ends any active session and detaches all listeners.
// Idempotent. The single-drag guard is always released.
func (g *Draggable) Destroy() {
	if g.destroyed {
		return
	}
	g.destroyed = true
	if g.dragging {
		g.abortSession()
	} else if g.armed {
		g.disarm()
	}
	g.doc.Events.Remove(g.el, EventPointerDown, g.downFn)
	g.doc.drag.release(g)
}

// --- Arming ---

func (g *Draggable) onPointerDown(ev PointerEvent) {
	if g.destroyed || g.armed || g.dragging {
		return
	}
	// Exclusive single-drag guard: a second pointer-down anywhere while a
	// drag is active must not arm a second session.
	if g.doc.drag.held {
		return
	}
	if g.cfg.Abort != nil && matchesWithin(g.cfg.Abort, ev.Target, g.el) {
		return
	}
	if g.cfg.Handle != nil && !matchesWithin(g.cfg.Handle, ev.Target, g.el) {
		return
	}

	g.armed = true
	g.holdArmed = false
	g.pointerID = ev.PointerID
	g.kind = ev.Kind
	g.start = ev.Point()

	root := g.doc.Root()
	g.doc.Events.Add(root, EventPointerMove, g.moveFn, 0)
	g.doc.Events.Add(root, EventPointerUp, g.upFn, 0)
	g.doc.Events.Add(root, EventPointerCancel, g.cancelFn, 0)

	if g.cfg.TapHoldToDrag && ev.Kind == PointerTouch {
		g.holdTimer = g.doc.Scheduler().After(g.cfg.TapHoldThreshold, func() {
			g.holdArmed = true
		})
	}
}

// matchesWithin reports whether sel matches el or any of its ancestors up
// to and including limit. Presses land on the innermost element, so a
// handle or abort region with children still matches.
func matchesWithin(sel Selector, el, limit *Element) bool {
	for n := el; n != nil; n = n.Parent {
		if sel(n) {
			return true
		}
		if n == limit {
			break
		}
	}
	return false
}

// disarm abandons an armed-but-not-dragging state.
func (g *Draggable) disarm() {
	g.holdTimer.Stop()
	g.detachSessionListeners()
	g.armed = false
	g.holdArmed = false
}

func (g *Draggable) detachSessionListeners() {
	root := g.doc.Root()
	g.doc.Events.Remove(root, EventPointerMove, g.moveFn)
	g.doc.Events.Remove(root, EventPointerUp, g.upFn)
	g.doc.Events.Remove(root, EventPointerCancel, g.cancelFn)
}

// --- Movement ---

func (g *Draggable) onPointerMove(ev PointerEvent) {
	if !g.armed || ev.PointerID != g.pointerID {
		return
	}
	if g.dragging {
		g.safeUpdate(ev)
		return
	}
	if g.cfg.TapHoldToDrag && g.kind == PointerTouch && !g.holdArmed {
		// Movement before the hold elapsed: this is a scroll or swipe,
		// not a drag.
		g.disarm()
		return
	}
	point := ev.Point()
	dist := math.Hypot(point.X-g.start.X, point.Y-g.start.Y)
	if g.holdArmed || dist >= g.cfg.Distance {
		if g.startDrag(ev) {
			g.safeUpdate(ev)
		}
	}
}

// startDrag transitions Armed -> Dragging. Returns false when the start was
// cancelled (callback veto, lock contention, or no helper).
func (g *Draggable) startDrag(ev PointerEvent) bool {
	if !g.doc.drag.acquire(g) {
		g.disarm()
		return false
	}
	startEv := DragStartEvent{Event: ev, Element: g.el}
	if g.cfg.OnDragStart != nil {
		g.cfg.OnDragStart(&startEv)
		if startEv.Cancel {
			g.doc.drag.release(g)
			g.disarm()
			return false
		}
	}

	helper, owned := g.makeHelper(startEv)
	if helper == nil {
		// Treated as a voluntary cancel, not an error.
		g.doc.drag.release(g)
		g.disarm()
		return false
	}

	s := &dragSession{
		id:          uuid.NewString(),
		helper:      helper,
		helperOwned: owned,
		originX:     helper.X,
		originY:     helper.Y,
	}

	if g.cfg.DragArea != nil {
		s.limits, s.border, s.padding = DragLimits(g.doc, g.cfg.DragArea, helper, g.cfg.CoordinateFrame)
		s.hasLimits = true
	}

	helperPos := PagePosition(helper)
	if g.cfg.TailMode {
		// Tail mode: no grab offset; the helper's top-left trails the
		// pointer directly.
		s.cursorOffset = Vec2{}
	} else {
		// Offset from the press point, so the helper keeps the spot it
		// was grabbed at under the pointer.
		s.cursorOffset = Vec2{X: g.start.X - helperPos.X, Y: g.start.Y - helperPos.Y}
	}
	s.lastPosition = helperPos

	stack := ElementsAt(g.doc, ev.PageX, ev.PageY)
	s.scrollAncestor = ScrollableAncestor(g.doc, stack, false)
	if s.scrollAncestor != nil {
		s.scrollStart = Vec2{X: s.scrollAncestor.ScrollX, Y: s.scrollAncestor.ScrollY}
	}

	g.session = s
	g.dragging = true
	g.holdTimer.Stop()

	g.el.Grabbed = true
	g.doc.DraggingActive = true
	g.doc.CapturePointer(ev.PointerID, g.el)

	g.doc.resetDropGuards(g.cfg.Scope)
	g.doc.dropScopes[g.cfg.Scope] = &dropScope{
		draggable: g,
		helper:    helper,
		source:    g.el,
		data:      g.cfg.DragData,
	}
	return true
}

// makeHelper acquires or creates the visual proxy for the session.
func (g *Draggable) makeHelper(startEv DragStartEvent) (*Element, bool) {
	if g.cfg.Helper != nil {
		return g.cfg.Helper(startEv), false
	}
	if g.cfg.Clone {
		clone := g.el.Clone()
		pos := PagePosition(g.el)
		g.doc.Root().AddChild(clone)
		local := pageToLocal(g.doc.Root(), pos)
		clone.SetPosition(local.X, local.Y)
		return clone, true
	}
	return g.el, false
}

// safeUpdate runs one per-move update with a recover guard: an unexpected
// panic inside the update cancels the session, still runs full listener
// cleanup so nothing leaks, and reports through OnFail.
func (g *Draggable) safeUpdate(ev PointerEvent) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("tactile: drag update failed: %v", r)
			g.abortSession()
			if g.cfg.OnFail != nil {
				g.cfg.OnFail(err)
			}
		}
	}()
	g.updateDrag(ev)
}

// updateDrag repositions the helper for one pointer sample.
func (g *Draggable) updateDrag(ev PointerEvent) {
	s := g.session
	if s == nil || s.helper == nil || s.helper.IsDisposed() {
		return
	}
	helper := s.helper

	// Stray pointer coordinates beyond the document are pulled back in.
	px := clamp(ev.PageX, 0, DocumentExtent(g.doc, AxisX))
	py := clamp(ev.PageY, 0, DocumentExtent(g.doc, AxisY))

	x := px - s.cursorOffset.X
	y := py - s.cursorOffset.Y

	if s.hasLimits {
		x, y = g.clampToLimits(s, helper, x, y)
	}

	if g.cfg.ScrollAware && !g.cfg.Clone && s.scrollAncestor != nil {
		x -= s.scrollAncestor.ScrollX - s.scrollStart.X
		y -= s.scrollAncestor.ScrollY - s.scrollStart.Y
	}

	var local Vec2
	if g.cfg.CoordinateFrame == FrameRelative && g.cfg.DragArea != nil {
		// Position within the drag-area container's own frame.
		origin := PagePosition(g.cfg.DragArea)
		local = Vec2{
			X: x - origin.X - g.cfg.DragArea.Border.Left - g.cfg.DragArea.Padding.Left,
			Y: y - origin.Y - g.cfg.DragArea.Border.Top - g.cfg.DragArea.Padding.Top,
		}
	} else if helper.Parent != nil {
		local = pageToLocal(helper.Parent, Vec2{X: x, Y: y})
	} else {
		local = Vec2{X: x, Y: y}
	}

	switch g.cfg.Axis {
	case AxisX:
		helper.X = local.X
	case AxisY:
		helper.Y = local.Y
	default:
		helper.SetPosition(local.X, local.Y)
	}
	s.lastPosition = Vec2{X: x, Y: y}

	target := g.resolveHover(ev)

	if g.cfg.OnDrag != nil {
		g.cfg.OnDrag(DragEvent{
			Event:    ev,
			Element:  g.el,
			Helper:   helper,
			Position: s.lastPosition,
			Target:   target,
		})
	}

	if g.cfg.AutoScroll {
		g.autoScroll(s, helper)
	}
}

// clampToLimits keeps the helper's margin box inside the drag-area limits.
func (g *Draggable) clampToLimits(s *dragSession, helper *Element, x, y float64) (float64, float64) {
	minX := s.limits.Left + helper.Margin.Left
	maxX := s.limits.Right - helper.Width - helper.Margin.Right
	minY := s.limits.Top + helper.Margin.Top
	maxY := s.limits.Bottom - helper.Height - helper.Margin.Bottom
	if maxX < minX {
		maxX = minX
	}
	if maxY < minY {
		maxY = minY
	}
	return clamp(x, minX, maxX), clamp(y, minY, maxY)
}

// resolveHover routes over/out notifications as the pointer crosses
// droppables. Returns the hovered element for the drag callback.
func (g *Draggable) resolveHover(ev PointerEvent) *Element {
	dp, resolved := g.doc.resolveDropTarget(ev, g.cfg.Scope)
	s := g.session
	slot := g.doc.dropScopes[g.cfg.Scope]
	if slot == nil {
		return resolved
	}
	if dp != s.hovered {
		if s.hovered != nil {
			s.hovered.fireOut(ev, slot)
		}
		if dp != nil {
			dp.fireOver(ev, slot)
		}
		s.hovered = dp
	}
	return resolved
}

// autoScroll keeps the helper visible: the document scrolls the minimal
// amount, and the session's scrollable ancestor is nudged by the helper's
// own extent when the helper is about to clip at its edge.
func (g *Draggable) autoScroll(s *dragSession, helper *Element) {
	if !InViewport(g.doc, helper) {
		g.doc.ScrollIntoView(helper)
	}
	anc := s.scrollAncestor
	if anc == nil || anc == g.doc.ScrollRoot() {
		return
	}
	box := PageRect(helper)
	ancPos := PagePosition(anc)
	visTop := ancPos.Y + anc.Border.Top
	visBottom := visTop + anc.ClientHeight()
	if box.Y+box.Height > visBottom {
		anc.SetScroll(anc.ScrollX, anc.ScrollY+box.Height)
	} else if box.Y < visTop {
		anc.SetScroll(anc.ScrollX, anc.ScrollY-box.Height)
	}
}

// --- Release ---

func (g *Draggable) onPointerUp(ev PointerEvent) {
	if !g.armed && !g.dragging {
		return
	}
	if ev.PointerID != g.pointerID {
		return
	}
	if !g.dragging {
		g.disarm()
		return
	}
	g.finishDrag(ev)
}

func (g *Draggable) onPointerCancel(ev PointerEvent) {
	if ev.PointerID != g.pointerID {
		return
	}
	if g.dragging {
		g.abortSession()
		if g.cfg.OnDragStop != nil {
			g.cfg.OnDragStop(DragStopEvent{Event: ev, Element: g.el, Target: nil})
		}
		return
	}
	if g.armed {
		g.disarm()
	}
}

// finishDrag resolves the drop target, notifies the consumer, runs full
// cleanup, and finally delivers the drop. The single-drag guard release is
// deferred so it happens even if a consumer callback panics.
func (g *Draggable) finishDrag(ev PointerEvent) {
	defer g.doc.drag.release(g)

	s := g.session
	scope := g.cfg.Scope
	slot := g.doc.dropScopes[scope]
	dp, _ := g.doc.resolveDropTarget(ev, scope)

	if g.cfg.OnDragStop != nil {
		g.cfg.OnDragStop(DragStopEvent{
			Event:   ev,
			Element: g.el,
			Helper:  s.helper,
			Target:  dp,
		})
	}

	g.cleanupSession()

	accepted := false
	if dp != nil && slot != nil {
		accepted = dp.drop(ev, slot)
	}
	delete(g.doc.dropScopes, scope)

	g.settleHelper(s, accepted)
	g.session = nil
}

// abortSession is the forced teardown path (cancel, destroy, or a recovered
// panic). No drop is delivered; the scope slot is still cleared.
func (g *Draggable) abortSession() {
	s := g.session
	g.cleanupSession()
	g.doc.drag.release(g)
	delete(g.doc.dropScopes, g.cfg.Scope)
	if s != nil {
		g.settleHelper(s, false)
	}
	g.session = nil
}

// cleanupSession removes every listener added during arming or dragging and
// clears the session flags. Runs exactly once per session on either the
// normal stop or the forced teardown path.
func (g *Draggable) cleanupSession() {
	g.holdTimer.Stop()
	g.detachSessionListeners()
	g.doc.ReleasePointer(g.pointerID)
	g.el.Grabbed = false
	g.doc.DraggingActive = false
	g.armed = false
	g.holdArmed = false
	g.dragging = false
}

// settleHelper disposes an engine-owned helper, or reverts an unaccepted
// drag back to its origin when configured.
func (g *Draggable) settleHelper(s *dragSession, accepted bool) {
	if s == nil || s.helper == nil || s.helper.IsDisposed() {
		return
	}
	if s.helperOwned {
		s.helper.Dispose()
		return
	}
	if g.cfg.Revert && !accepted {
		dur := float32(g.cfg.RevertDuration.Seconds())
		if dur <= 0 {
			dur = defaultRevertDuration
		}
		tween := TweenPosition(s.helper, s.originX, s.originY, dur, ease.OutQuad)
		var hook FrameHook
		hook = g.doc.Scheduler().OnFrame(func(dt float64) {
			tween.Update(float32(dt))
			if tween.Done {
				hook.Remove()
			}
		})
	}
}

// pageToLocal converts a page-coordinate point into parent's content frame,
// the coordinate space children of parent are positioned in.
func pageToLocal(parent *Element, page Vec2) Vec2 {
	origin := PagePosition(parent)
	return Vec2{
		X: page.X - origin.X - parent.Border.Left - parent.Padding.Left + parent.ScrollX,
		Y: page.Y - origin.Y - parent.Border.Top - parent.Padding.Top + parent.ScrollY,
	}
}
