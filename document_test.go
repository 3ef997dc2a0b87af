package tactile

import (
	"testing"

	"github.com/tanema/gween/ease"
)

// press/drag/release drive the dispatch state machine directly, the way a
// backend would.
func press(doc *Document, x, y float64) {
	doc.DispatchPointer(0, PointerMouse, x, y, true, MouseButtonLeft, 0)
}

func moveTo(doc *Document, x, y float64) {
	doc.DispatchPointer(0, PointerMouse, x, y, true, MouseButtonLeft, 0)
}

func release(doc *Document, x, y float64) {
	doc.DispatchPointer(0, PointerMouse, x, y, false, MouseButtonLeft, 0)
}

func touchPress(doc *Document, x, y float64) {
	doc.DispatchPointer(1, PointerTouch, x, y, true, MouseButtonLeft, 0)
}

func touchMove(doc *Document, x, y float64) {
	doc.DispatchPointer(1, PointerTouch, x, y, true, MouseButtonLeft, 0)
}

func touchRelease(doc *Document, x, y float64) {
	doc.DispatchPointer(1, PointerTouch, x, y, false, MouseButtonLeft, 0)
}

// --- Dispatch ---

func TestDispatchDownMoveUp(t *testing.T) {
	doc := newTestDoc()
	el := addBox(doc.Root(), "box", 10, 10, 100, 100)

	var names []string
	record := func(ev PointerEvent) { names = append(names, ev.Name) }
	doc.Events.Add(el, EventPointerDown+" "+EventPointerMove+" "+EventPointerUp, record, 0)

	press(doc, 50, 50)
	moveTo(doc, 60, 60)
	release(doc, 60, 60)

	want := []string{EventPointerDown, EventPointerMove, EventPointerUp}
	if len(names) != 3 {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %v, want %v", i, names[i], want[i])
		}
	}
}

func TestDispatchBubbles(t *testing.T) {
	doc := newTestDoc()
	outer := addBox(doc.Root(), "outer", 0, 0, 200, 200)
	inner := addBox(outer, "inner", 10, 10, 50, 50)

	var order []string
	doc.Events.Add(inner, EventPointerDown, func(PointerEvent) { order = append(order, "inner") }, 0)
	doc.Events.Add(outer, EventPointerDown, func(PointerEvent) { order = append(order, "outer") }, 0)
	doc.Events.Add(doc.Root(), EventPointerDown, func(PointerEvent) { order = append(order, "root") }, 0)

	press(doc, 30, 30)
	if len(order) != 3 || order[0] != "inner" || order[1] != "outer" || order[2] != "root" {
		t.Errorf("order = %v, want target then ancestors", order)
	}
}

func TestDispatchEmptySpaceReachesRoot(t *testing.T) {
	doc := newTestDoc()
	el := addBox(doc.Root(), "box", 500, 400, 50, 50)

	rootDowns := 0
	elDowns := 0
	doc.Events.Add(doc.Root(), EventPointerDown, func(PointerEvent) { rootDowns++ }, 0)
	doc.Events.Add(el, EventPointerDown, func(PointerEvent) { elDowns++ }, 0)

	press(doc, 10, 10)
	release(doc, 10, 10)
	if rootDowns != 1 {
		t.Errorf("rootDowns = %d, want 1", rootDowns)
	}
	if elDowns != 0 {
		t.Errorf("elDowns = %d, want 0", elDowns)
	}
}

func TestDispatchTargetAndCoordinates(t *testing.T) {
	doc := newTestDoc()
	doc.Root().ContentHeight = 1000
	doc.Root().OverflowY = OverflowAuto
	el := addBox(doc.Root(), "box", 10, 10, 100, 100)

	var got PointerEvent
	doc.Events.Add(el, EventPointerDown, func(ev PointerEvent) { got = ev }, 0)

	doc.ScrollBy(0, 100)
	// Element scrolled up out of view; press where it used to be misses.
	press(doc, 50, 50)
	release(doc, 50, 50)
	if got.Target != nil {
		t.Fatal("element should have scrolled away from (50, 50)")
	}

	doc.Root().SetScroll(0, 0)
	press(doc, 50, 50)
	if got.Target != el {
		t.Fatalf("Target = %v, want el", got.Target)
	}
	if got.PageX != 50 || got.ClientX != 50 {
		t.Errorf("coordinates = page %v client %v, want 50/50", got.PageX, got.ClientX)
	}
	release(doc, 50, 50)
}

func TestMoveWithoutDisplacementNotDispatched(t *testing.T) {
	doc := newTestDoc()
	el := addBox(doc.Root(), "box", 0, 0, 100, 100)

	moves := 0
	doc.Events.Add(el, EventPointerMove, func(PointerEvent) { moves++ }, 0)

	press(doc, 50, 50)
	moveTo(doc, 50, 50)
	moveTo(doc, 50, 50)
	moveTo(doc, 51, 50)
	release(doc, 51, 50)
	if moves != 1 {
		t.Errorf("moves = %d, want 1 (identical samples are swallowed)", moves)
	}
}

// --- Pointer capture ---

func TestPointerCapture(t *testing.T) {
	doc := newTestDoc()
	a := addBox(doc.Root(), "a", 0, 0, 100, 100)
	b := addBox(doc.Root(), "b", 200, 200, 100, 100)

	var target *Element
	doc.Events.Add(a, EventPointerMove, func(ev PointerEvent) { target = ev.Target }, 0)

	press(doc, 50, 50)
	doc.CapturePointer(0, a)
	moveTo(doc, 250, 250) // over b, but a holds the capture
	if target != a {
		t.Errorf("captured target = %v, want a", target)
	}

	release(doc, 250, 250)
	// Capture auto-releases on pointer up.
	if doc.captured[0] != nil {
		t.Error("capture should clear on release")
	}
	_ = b
}

// --- Cancel ---

func TestCancelPointer(t *testing.T) {
	doc := newTestDoc()
	el := addBox(doc.Root(), "box", 0, 0, 100, 100)

	cancels := 0
	doc.Events.Add(el, EventPointerCancel, func(PointerEvent) { cancels++ }, 0)

	doc.CancelPointer(0) // idle pointer: no-op
	if cancels != 0 {
		t.Fatal("cancel on an idle pointer must not dispatch")
	}

	press(doc, 50, 50)
	doc.CancelPointer(0)
	if cancels != 1 {
		t.Errorf("cancels = %d, want 1", cancels)
	}
	if doc.pointers[0].down {
		t.Error("pointer should be reset after cancel")
	}
}

// --- Scrolling ---

func TestScrollBy(t *testing.T) {
	doc := newTestDoc()
	doc.Root().ContentHeight = 2000
	doc.Root().OverflowY = OverflowAuto

	doc.ScrollBy(0, 300)
	if doc.Root().ScrollY != 300 {
		t.Errorf("ScrollY = %v, want 300", doc.Root().ScrollY)
	}
	doc.ScrollBy(0, -1000)
	if doc.Root().ScrollY != 0 {
		t.Errorf("ScrollY = %v, want clamped 0", doc.Root().ScrollY)
	}
}

func TestScrollToTween(t *testing.T) {
	doc := newTestDoc()
	doc.Root().ContentHeight = 2000
	doc.Root().OverflowY = OverflowAuto

	doc.ScrollTo(0, 400, 1.0, ease.Linear)
	doc.Update(0.5)
	mid := doc.Root().ScrollY
	if mid <= 0 || mid >= 400 {
		t.Errorf("ScrollY = %v, want between 0 and 400 mid-tween", mid)
	}
	doc.Update(1.0)
	if doc.Root().ScrollY != 400 {
		t.Errorf("ScrollY = %v, want 400 after settling", doc.Root().ScrollY)
	}
}

func TestScrollIntoView(t *testing.T) {
	doc := newTestDoc()
	doc.Root().ContentHeight = 2000
	doc.Root().OverflowY = OverflowAuto
	below := addBox(doc.Root(), "below", 10, 900, 50, 50)

	doc.ScrollIntoView(below)
	if !InViewport(doc, below) {
		t.Errorf("element should be visible after ScrollIntoView, ScrollY = %v", doc.Root().ScrollY)
	}
}

// --- Update pipeline ---

func TestUpdateConsumesOneInjectedEventPerFrame(t *testing.T) {
	doc := newTestDoc()
	el := addBox(doc.Root(), "box", 0, 0, 100, 100)

	downs, ups := 0, 0
	doc.Events.Add(el, EventPointerDown, func(PointerEvent) { downs++ }, 0)
	doc.Events.Add(el, EventPointerUp, func(PointerEvent) { ups++ }, 0)

	doc.InjectClick(50, 50)
	doc.Update(0.016)
	if downs != 1 || ups != 0 {
		t.Fatalf("after frame 1: downs=%d ups=%d, want 1/0", downs, ups)
	}
	doc.Update(0.016)
	if downs != 1 || ups != 1 {
		t.Errorf("after frame 2: downs=%d ups=%d, want 1/1", downs, ups)
	}
}
