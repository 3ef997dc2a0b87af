package tactile

// syntheticPointerEvent represents a single injected pointer sample. Page
// coordinates are used, identical to what a backend would deliver, so
// injected input flows through the same dispatch path as real input.
type syntheticPointerEvent struct {
	pageX, pageY float64
	pressed      bool
	kind         PointerKind
	pointerID    int
	button       MouseButton
}

// InjectPress queues a mouse press at the given page coordinates (left
// button). The event is consumed on the next Update, one per frame.
func (d *Document) InjectPress(x, y float64) {
	d.injectQueue = append(d.injectQueue, syntheticPointerEvent{
		pageX: x, pageY: y,
		pressed: true,
		kind:    PointerMouse,
		button:  MouseButtonLeft,
	})
}

// InjectMove queues a mouse move at the given page coordinates with the
// button held down. Use this between InjectPress and InjectRelease to
// simulate a drag.
func (d *Document) InjectMove(x, y float64) {
	d.injectQueue = append(d.injectQueue, syntheticPointerEvent{
		pageX: x, pageY: y,
		pressed: true,
		kind:    PointerMouse,
		button:  MouseButtonLeft,
	})
}

// InjectRelease queues a mouse release at the given page coordinates.
func (d *Document) InjectRelease(x, y float64) {
	d.injectQueue = append(d.injectQueue, syntheticPointerEvent{
		pageX: x, pageY: y,
		pressed: false,
		kind:    PointerMouse,
		button:  MouseButtonLeft,
	})
}

// InjectClick is a convenience that queues a press followed by a release at
// the same page coordinates. Consumes two frames.
func (d *Document) InjectClick(x, y float64) {
	d.InjectPress(x, y)
	d.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves ending at (toX, toY), and a release there. The total
// sequence consumes `frames` frames. Minimum frames is 2 (press + release);
// with fewer than 3 frames no move is injected and nothing is dragged.
func (d *Document) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	d.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		d.InjectMove(x, y)
	}
	d.InjectRelease(toX, toY)
}

// InjectTouchPress queues a touch press on pointer slot 1.
func (d *Document) InjectTouchPress(x, y float64) {
	d.injectQueue = append(d.injectQueue, syntheticPointerEvent{
		pageX: x, pageY: y,
		pressed:   true,
		kind:      PointerTouch,
		pointerID: 1,
		button:    MouseButtonLeft,
	})
}

// InjectTouchMove queues a held touch sample on pointer slot 1.
func (d *Document) InjectTouchMove(x, y float64) {
	d.injectQueue = append(d.injectQueue, syntheticPointerEvent{
		pageX: x, pageY: y,
		pressed:   true,
		kind:      PointerTouch,
		pointerID: 1,
		button:    MouseButtonLeft,
	})
}

// InjectTouchRelease queues a touch release on pointer slot 1.
func (d *Document) InjectTouchRelease(x, y float64) {
	d.injectQueue = append(d.injectQueue, syntheticPointerEvent{
		pageX: x, pageY: y,
		pressed:   false,
		kind:      PointerTouch,
		pointerID: 1,
		button:    MouseButtonLeft,
	})
}

// InjectHold queues a touch press held motionless for frames samples and a
// release at the same spot. Combined with stepped Update durations this
// drives hold-based gestures.
func (d *Document) InjectHold(x, y float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	d.InjectTouchPress(x, y)
	for i := 1; i < frames; i++ {
		d.InjectTouchMove(x, y)
	}
	d.InjectTouchRelease(x, y)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through DispatchPointer. Returns true if an event was consumed (real
// backend input should be skipped this frame).
func (d *Document) processInjectedInput() bool {
	if len(d.injectQueue) == 0 {
		return false
	}
	evt := d.injectQueue[0]
	copy(d.injectQueue, d.injectQueue[1:])
	d.injectQueue = d.injectQueue[:len(d.injectQueue)-1]

	d.DispatchPointer(evt.pointerID, evt.kind, evt.pageX, evt.pageY, evt.pressed, evt.button, 0)
	return true
}
