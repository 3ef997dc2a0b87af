package tactile

import "github.com/google/uuid"

// DefaultScope is the drag/drop scope used when a config leaves Scope empty.
const DefaultScope = "default"

// DropTargetEvent notifies a droppable that a compatible drag entered or
// left its bounds.
type DropTargetEvent struct {
	Event     PointerEvent
	Target    *Element // the droppable's registered element
	Helper    *Element // the helper being dragged
	DragData  any
	Droppable *Droppable
}

// DropEvent notifies a droppable that a drag was released over it.
type DropEvent struct {
	Event          PointerEvent
	Target         *Element // the droppable's registered element
	DroppedElement *Element // the drag's source element
	Helper         *Element
	DragData       any
}

// DropConfig configures a droppable region.
type DropConfig struct {
	// Scope restricts which draggables this droppable accepts. Empty
	// means DefaultScope.
	Scope string
	// Accept, when set, must match the dragged helper or the drop is
	// silently ignored.
	Accept Selector

	OnOver func(DropTargetEvent)
	OnOut  func(DropTargetEvent)
	OnDrop func(DropEvent)
}

// dropScope is the per-scope payload slot populated while a drag targeting
// that scope is in progress. Only the drag engine writes it; droppables
// read it to correlate an incoming drop with the dragged payload. It is
// cleared unconditionally when the drag ends, including forced destroy.
type dropScope struct {
	draggable *Draggable
	helper    *Element
	source    *Element
	data      any
}

// Droppable is a registered region that can receive drops for a scope.
type Droppable struct {
	id  string
	doc *Document
	el  *Element
	cfg DropConfig

	// dropCalled guards against duplicate drop firing when overlapping
	// listeners observe the same release. Reset when the next drag arms.
	dropCalled bool
}

// RegisterDroppable registers el as a drop target and returns its handle.
// The registration lives until UnregisterDroppable or element disposal
// teardown by the caller.
func (d *Document) RegisterDroppable(el *Element, cfg DropConfig) *Droppable {
	if el == nil {
		return nil
	}
	if cfg.Scope == "" {
		cfg.Scope = DefaultScope
	}
	dp := &Droppable{
		id:  uuid.NewString(),
		doc: d,
		el:  el,
		cfg: cfg,
	}
	d.droppables[dp.id] = dp
	return dp
}

// UnregisterDroppable removes a droppable registration by id. No-op for an
// unknown id.
func (d *Document) UnregisterDroppable(id string) {
	delete(d.droppables, id)
}

// ID returns the generated registration id.
func (dp *Droppable) ID() string {
	return dp.id
}

// Element returns the registered drop-target element.
func (dp *Droppable) Element() *Element {
	return dp.el
}

// Scope returns the droppable's scope name.
func (dp *Droppable) Scope() string {
	return dp.cfg.Scope
}

// resetDropGuards re-arms the one-shot drop guard on every droppable in the
// scope. Called when a new drag session starts.
func (d *Document) resetDropGuards(scope string) {
	for _, dp := range d.droppables {
		if dp.cfg.Scope == scope {
			dp.dropCalled = false
		}
	}
}

// resolveDropTarget finds the droppable under the pointer for the scope.
// The resolved element must be the droppable's registered element or one of
// its descendants.
func (d *Document) resolveDropTarget(ev PointerEvent, scope string) (*Droppable, *Element) {
	slot := d.dropScopes[scope]

	target := ev.Target
	if slot != nil && slot.helper != nil && slot.helper.Visible {
		// Pointer capture makes the naive target the drag source, and a
		// visible helper sits on top of whatever the pointer is over; in
		// both cases the true element is found by hiding the helper and
		// re-querying the hit stack.
		obscured := ev.Kind == PointerTouch || target == slot.source ||
			(target != nil && target.IsDescendantOf(slot.helper))
		if obscured {
			slot.helper.Visible = false
			stack := ElementsAt(d, ev.PageX, ev.PageY)
			slot.helper.Visible = true
			if len(stack) > 0 {
				target = stack[0]
			} else {
				target = nil
			}
		}
	}
	if target == nil {
		return nil, nil
	}

	// Walk up from the resolved element to the nearest registered
	// droppable in this scope.
	for el := target; el != nil; el = el.Parent {
		for _, dp := range d.droppables {
			if dp.cfg.Scope == scope && dp.el == el {
				return dp, target
			}
		}
	}
	return nil, nil
}

// fireOver notifies the droppable that a drag entered it.
func (dp *Droppable) fireOver(ev PointerEvent, slot *dropScope) {
	if dp.cfg.OnOver == nil {
		return
	}
	dp.cfg.OnOver(DropTargetEvent{
		Event:     ev,
		Target:    dp.el,
		Helper:    slot.helper,
		DragData:  slot.data,
		Droppable: dp,
	})
}

// fireOut notifies the droppable that a drag left it.
func (dp *Droppable) fireOut(ev PointerEvent, slot *dropScope) {
	if dp.cfg.OnOut == nil {
		return
	}
	dp.cfg.OnOut(DropTargetEvent{
		Event:     ev,
		Target:    dp.el,
		Helper:    slot.helper,
		DragData:  slot.data,
		Droppable: dp,
	})
}

// drop delivers the release to the droppable. The one-shot guard swallows
// duplicate invocations; a configured Accept selector that rejects the
// helper silently ignores the drop. Returns whether the drop was accepted.
func (dp *Droppable) drop(ev PointerEvent, slot *dropScope) bool {
	if dp.dropCalled {
		return false
	}
	dp.dropCalled = true
	if dp.cfg.Accept != nil && !dp.cfg.Accept(slot.helper) {
		return false
	}
	if dp.cfg.OnDrop != nil {
		dp.cfg.OnDrop(DropEvent{
			Event:          ev,
			Target:         dp.el,
			DroppedElement: slot.source,
			Helper:         slot.helper,
			DragData:       slot.data,
		})
	}
	return true
}
