package tactile

import (
	"testing"
)

// --- Test helpers ---

func newTestDoc() *Document {
	return NewDocument(Rect{Width: 640, Height: 480})
}

// addBox creates an element, positions it, and attaches it to parent.
func addBox(parent *Element, name string, x, y, w, h float64) *Element {
	el := NewElement(name, w, h)
	el.SetPosition(x, y)
	parent.AddChild(el)
	return el
}

func assertPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s should panic", name)
		}
	}()
	fn()
}

// --- Constructor defaults ---

func TestNewElementDefaults(t *testing.T) {
	el := NewElement("box", 100, 50)
	if el.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if el.Name != "box" {
		t.Errorf("Name = %q, want %q", el.Name, "box")
	}
	if el.Width != 100 || el.Height != 50 {
		t.Errorf("size = (%v, %v), want (100, 50)", el.Width, el.Height)
	}
	if !el.Visible {
		t.Error("Visible should be true")
	}
	if !el.Interactable {
		t.Error("Interactable should be true")
	}
	if el.Grabbed {
		t.Error("Grabbed should be false")
	}
	if el.OverflowX != OverflowVisible || el.OverflowY != OverflowVisible {
		t.Error("overflow should default to visible")
	}
}

func TestUniqueIDs(t *testing.T) {
	a := NewElement("a", 1, 1)
	b := NewElement("b", 1, 1)
	c := a.Clone()
	if a.ID == b.ID || b.ID == c.ID || a.ID == c.ID {
		t.Errorf("IDs should be unique: %d, %d, %d", a.ID, b.ID, c.ID)
	}
}

func TestClone(t *testing.T) {
	parent := NewElement("parent", 500, 500)
	el := addBox(parent, "box", 10, 20, 100, 50)
	el.Margin = UniformEdges(4)
	el.UserData = "payload"
	el.OverflowY = OverflowAuto
	el.ContentHeight = 300
	el.ScrollY = 40
	addBox(el, "inner", 0, 0, 10, 10)

	c := el.Clone()
	if c.Parent != nil {
		t.Error("clone should have no parent")
	}
	if c.NumChildren() != 0 {
		t.Error("clone should have no children")
	}
	if c.X != 10 || c.Y != 20 || c.Width != 100 || c.Height != 50 {
		t.Errorf("clone geometry = (%v, %v, %v, %v)", c.X, c.Y, c.Width, c.Height)
	}
	if c.Margin != UniformEdges(4) {
		t.Errorf("clone Margin = %v", c.Margin)
	}
	if c.ScrollY != 40 || c.ContentHeight != 300 {
		t.Errorf("clone scroll state = (%v, %v), want (40, 300)", c.ScrollY, c.ContentHeight)
	}
	if c.UserData != "payload" {
		t.Errorf("clone UserData = %v", c.UserData)
	}
}

// --- Tree manipulation ---

func TestAddChildBasic(t *testing.T) {
	parent := NewElement("parent", 100, 100)
	child := NewElement("child", 10, 10)
	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("child.Parent should be parent")
	}
	if parent.NumChildren() != 1 {
		t.Errorf("NumChildren = %d, want 1", parent.NumChildren())
	}
	if parent.ChildAt(0) != child {
		t.Error("ChildAt(0) should be child")
	}
}

func TestAddChildReparent(t *testing.T) {
	p1 := NewElement("p1", 100, 100)
	p2 := NewElement("p2", 100, 100)
	child := NewElement("child", 10, 10)

	p1.AddChild(child)
	p2.AddChild(child)
	if p1.NumChildren() != 0 {
		t.Error("p1 should have 0 children after reparent")
	}
	if p2.NumChildren() != 1 {
		t.Error("p2 should have 1 child")
	}
	if child.Parent != p2 {
		t.Error("child.Parent should be p2")
	}
}

func TestAddChildPanics(t *testing.T) {
	parent := NewElement("parent", 100, 100)
	child := NewElement("child", 10, 10)
	parent.AddChild(child)

	assertPanic(t, "AddChild(nil)", func() { parent.AddChild(nil) })
	assertPanic(t, "cycle", func() { child.AddChild(parent) })
	assertPanic(t, "self", func() { parent.AddChild(parent) })
}

func TestAddChildAt(t *testing.T) {
	parent := NewElement("parent", 100, 100)
	a := addBox(parent, "a", 0, 0, 1, 1)
	c := addBox(parent, "c", 0, 0, 1, 1)
	b := NewElement("b", 1, 1)
	parent.AddChildAt(b, 1)

	if parent.ChildAt(0) != a || parent.ChildAt(1) != b || parent.ChildAt(2) != c {
		t.Error("children should be ordered a, b, c")
	}
	assertPanic(t, "index out of range", func() { parent.AddChildAt(NewElement("d", 1, 1), 5) })
}

func TestRemoveChild(t *testing.T) {
	parent := NewElement("parent", 100, 100)
	child := addBox(parent, "child", 0, 0, 1, 1)
	parent.RemoveChild(child)

	if parent.NumChildren() != 0 {
		t.Error("parent should have no children")
	}
	if child.Parent != nil {
		t.Error("child.Parent should be nil")
	}
	if child.IsDisposed() {
		t.Error("removal must not dispose")
	}

	other := NewElement("other", 1, 1)
	assertPanic(t, "RemoveChild of non-child", func() { parent.RemoveChild(other) })
}

func TestRemoveChildAt(t *testing.T) {
	parent := NewElement("parent", 100, 100)
	a := addBox(parent, "a", 0, 0, 1, 1)
	b := addBox(parent, "b", 0, 0, 1, 1)

	got := parent.RemoveChildAt(0)
	if got != a {
		t.Error("RemoveChildAt(0) should return a")
	}
	if parent.NumChildren() != 1 || parent.ChildAt(0) != b {
		t.Error("b should remain")
	}
}

func TestRemoveChildren(t *testing.T) {
	parent := NewElement("parent", 100, 100)
	a := addBox(parent, "a", 0, 0, 1, 1)
	addBox(parent, "b", 0, 0, 1, 1)

	parent.RemoveChildren()
	if parent.NumChildren() != 0 {
		t.Error("parent should be empty")
	}
	if a.Parent != nil || a.IsDisposed() {
		t.Error("children should be detached but not disposed")
	}
}

func TestSetChildIndex(t *testing.T) {
	parent := NewElement("parent", 100, 100)
	a := addBox(parent, "a", 0, 0, 1, 1)
	b := addBox(parent, "b", 0, 0, 1, 1)
	c := addBox(parent, "c", 0, 0, 1, 1)

	parent.SetChildIndex(c, 0)
	if parent.ChildAt(0) != c || parent.ChildAt(1) != a || parent.ChildAt(2) != b {
		t.Error("children should be ordered c, a, b")
	}
	parent.SetChildIndex(c, 2)
	if parent.ChildAt(0) != a || parent.ChildAt(1) != b || parent.ChildAt(2) != c {
		t.Error("children should be ordered a, b, c")
	}
}

func TestIsDescendantOf(t *testing.T) {
	root := NewElement("root", 100, 100)
	mid := addBox(root, "mid", 0, 0, 50, 50)
	leaf := addBox(mid, "leaf", 0, 0, 10, 10)

	if !leaf.IsDescendantOf(root) {
		t.Error("leaf should descend from root")
	}
	if !leaf.IsDescendantOf(leaf) {
		t.Error("an element descends from itself")
	}
	if root.IsDescendantOf(leaf) {
		t.Error("root should not descend from leaf")
	}
}

// --- ZIndex ordering ---

func TestZIndexOrdering(t *testing.T) {
	parent := NewElement("parent", 100, 100)
	a := addBox(parent, "a", 0, 0, 1, 1)
	b := addBox(parent, "b", 0, 0, 1, 1)
	c := addBox(parent, "c", 0, 0, 1, 1)

	b.SetZIndex(-1)
	c.SetZIndex(1)
	ordered := parent.orderedChildren()
	if ordered[0] != b || ordered[1] != a || ordered[2] != c {
		t.Errorf("ordered = %v, %v, %v, want b, a, c", ordered[0].Name, ordered[1].Name, ordered[2].Name)
	}
}

func TestZIndexStableForTies(t *testing.T) {
	parent := NewElement("parent", 100, 100)
	a := addBox(parent, "a", 0, 0, 1, 1)
	b := addBox(parent, "b", 0, 0, 1, 1)
	c := addBox(parent, "c", 0, 0, 1, 1)
	a.SetZIndex(5)
	b.SetZIndex(5)
	c.SetZIndex(5)

	ordered := parent.orderedChildren()
	if ordered[0] != a || ordered[1] != b || ordered[2] != c {
		t.Error("equal ZIndex should preserve insertion order")
	}
}

// --- Box model ---

func TestClientSize(t *testing.T) {
	el := NewElement("box", 100, 80)
	el.Border = Edges{Left: 2, Right: 2, Top: 3, Bottom: 3}
	if el.ClientWidth() != 96 {
		t.Errorf("ClientWidth = %v, want 96", el.ClientWidth())
	}
	if el.ClientHeight() != 74 {
		t.Errorf("ClientHeight = %v, want 74", el.ClientHeight())
	}
}

func TestMarginRect(t *testing.T) {
	el := NewElement("box", 100, 80)
	el.Margin = Edges{Left: 5, Right: 10, Top: 1, Bottom: 2}
	w, h := el.MarginRect()
	if w != 115 || h != 83 {
		t.Errorf("MarginRect = (%v, %v), want (115, 83)", w, h)
	}
}

// --- Scrolling ---

func TestSetScrollClamped(t *testing.T) {
	el := NewElement("pane", 100, 100)
	el.OverflowY = OverflowAuto
	el.ContentHeight = 300

	el.SetScroll(0, 150)
	if el.ScrollY != 150 {
		t.Errorf("ScrollY = %v, want 150", el.ScrollY)
	}
	el.SetScroll(0, 500)
	if el.ScrollY != 200 {
		t.Errorf("ScrollY = %v, want 200 (clamped)", el.ScrollY)
	}
	el.SetScroll(0, -10)
	if el.ScrollY != 0 {
		t.Errorf("ScrollY = %v, want 0 (clamped)", el.ScrollY)
	}
}

func TestSetScrollNonScrollable(t *testing.T) {
	el := NewElement("pane", 100, 100)
	el.ContentHeight = 300 // OverflowVisible: no scrolling
	el.SetScroll(0, 50)
	if el.ScrollY != 0 {
		t.Errorf("ScrollY = %v, want 0 for visible overflow", el.ScrollY)
	}
}

func TestScrollExtent(t *testing.T) {
	el := NewElement("pane", 100, 100)
	el.ContentHeight = 300
	if el.ScrollExtent(AxisY) != 300 {
		t.Errorf("ScrollExtent(Y) = %v, want 300", el.ScrollExtent(AxisY))
	}
	if el.ScrollExtent(AxisX) != 100 {
		t.Errorf("ScrollExtent(X) = %v, want client width 100", el.ScrollExtent(AxisX))
	}
}

// --- Disposal ---

func TestDisposeSubtree(t *testing.T) {
	doc := newTestDoc()
	parent := addBox(doc.Root(), "parent", 0, 0, 100, 100)
	child := addBox(parent, "child", 0, 0, 10, 10)

	parent.Dispose()
	if !parent.IsDisposed() || !child.IsDisposed() {
		t.Error("whole subtree should be disposed")
	}
	if doc.Root().NumChildren() != 0 {
		t.Error("parent should be detached from root")
	}
	if parent.ID != 0 {
		t.Error("disposed ID should be cleared")
	}
	parent.Dispose() // idempotent
}

func TestDisposeClearsListeners(t *testing.T) {
	doc := newTestDoc()
	el := addBox(doc.Root(), "box", 0, 0, 100, 100)
	doc.Events.Add(el, EventPointerDown, func(PointerEvent) {}, 0)

	el.Dispose()
	if doc.Events.Count(el, "") != 0 {
		t.Error("disposal should clear the listener table entry")
	}
}

func TestDocumentPropagation(t *testing.T) {
	doc := newTestDoc()
	parent := NewElement("parent", 100, 100)
	child := NewElement("child", 10, 10)
	parent.AddChild(child)

	doc.Root().AddChild(parent)
	if child.Document() != doc {
		t.Error("document should propagate to grandchildren")
	}
	doc.Root().RemoveChild(parent)
	if child.Document() != nil {
		t.Error("document should clear on detach")
	}
}
