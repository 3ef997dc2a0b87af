package tactile

// elementIDCounter is a plain counter; tactile is single-threaded, no atomic.
var elementIDCounter uint32

func nextElementID() uint32 {
	elementIDCounter++
	return elementIDCounter
}

// Element is the fundamental tree node. A single flat struct is used for all
// element roles to avoid interface dispatch on the hot path.
//
// Geometry follows a box model: X and Y position the border box relative to
// the parent's content origin, Width and Height size the border box, and
// Margin, Border, and Padding thicken outward/inward from there. Scroll
// state lives directly on the element; a scrolling ancestor shifts every
// descendant's page position by its scroll offsets.
type Element struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Element
	children []*Element

	// Box geometry (border box, local to parent content origin)
	X, Y          float64
	Width, Height float64
	Margin        Edges
	Border        Edges
	Padding       Edges

	// Scroll state
	OverflowX, OverflowY         Overflow
	ScrollX, ScrollY             float64
	ContentWidth, ContentHeight  float64

	// Visibility & interaction
	Visible      bool
	Interactable bool

	// Grabbed is set while this element is the source of an active drag.
	Grabbed bool

	// Ordering
	ZIndex int

	// Metadata
	UserData any

	// Internal
	doc            *Document
	disposed       bool
	childrenSorted bool
	sortedChildren []*Element // reused buffer for ZIndex-sorted traversal order
}

// NewElement creates an element with the given name and border-box size.
func NewElement(name string, width, height float64) *Element {
	el := &Element{
		Name:           name,
		ID:             nextElementID(),
		Width:          width,
		Height:         height,
		Visible:        true,
		Interactable:   true,
		childrenSorted: true,
	}
	return el
}

// Clone returns a shallow copy of the element: same geometry, box edges,
// scroll state, name, and user data, but no parent, no children, and a
// fresh ID. Used by clone-mode drags to manufacture a helper.
func (el *Element) Clone() *Element {
	c := &Element{
		Name:           el.Name,
		ID:             nextElementID(),
		X:              el.X,
		Y:              el.Y,
		Width:          el.Width,
		Height:         el.Height,
		Margin:         el.Margin,
		Border:         el.Border,
		Padding:        el.Padding,
		OverflowX:      el.OverflowX,
		OverflowY:      el.OverflowY,
		ContentWidth:   el.ContentWidth,
		ContentHeight:  el.ContentHeight,
		ScrollX:        el.ScrollX,
		ScrollY:        el.ScrollY,
		Visible:        el.Visible,
		Interactable:   el.Interactable,
		ZIndex:         el.ZIndex,
		UserData:       el.UserData,
		childrenSorted: true,
	}
	return c
}

// SetPosition sets the element's local X and Y.
func (el *Element) SetPosition(x, y float64) {
	el.X = x
	el.Y = y
}

// SetSize sets the element's border-box width and height.
func (el *Element) SetSize(w, h float64) {
	el.Width = w
	el.Height = h
}

// MarginRect returns the element's margin-box size.
func (el *Element) MarginRect() (w, h float64) {
	return el.Width + el.Margin.Horizontal(), el.Height + el.Margin.Vertical()
}

// ClientWidth returns the inner width available to content: border-box width
// minus borders. Mirrors the visible box of a scrolling element.
func (el *Element) ClientWidth() float64 {
	w := el.Width - el.Border.Horizontal()
	if w < 0 {
		return 0
	}
	return w
}

// ClientHeight returns the inner height available to content.
func (el *Element) ClientHeight() float64 {
	h := el.Height - el.Border.Vertical()
	if h < 0 {
		return 0
	}
	return h
}

// ScrollExtent returns the scrollable content extent for the axis: the
// larger of the declared content size and the client size.
func (el *Element) ScrollExtent(axis Axis) float64 {
	if axis == AxisX {
		if el.ContentWidth > el.ClientWidth() {
			return el.ContentWidth
		}
		return el.ClientWidth()
	}
	if el.ContentHeight > el.ClientHeight() {
		return el.ContentHeight
	}
	return el.ClientHeight()
}

// overflowsY reports whether vertical content exceeds the visible box.
func (el *Element) overflowsY() bool {
	return el.ContentHeight > el.ClientHeight()
}

// overflowsX reports whether horizontal content exceeds the visible box.
func (el *Element) overflowsX() bool {
	return el.ContentWidth > el.ClientWidth()
}

// SetScroll sets the element's scroll offsets, clamped to the scrollable
// range. Elements whose overflow mode does not permit scrolling keep 0.
func (el *Element) SetScroll(x, y float64) {
	el.ScrollX = clamp(x, 0, el.maxScrollX())
	el.ScrollY = clamp(y, 0, el.maxScrollY())
}

func (el *Element) maxScrollX() float64 {
	if !el.OverflowX.scrollable() {
		return 0
	}
	m := el.ContentWidth - el.ClientWidth()
	if m < 0 {
		return 0
	}
	return m
}

func (el *Element) maxScrollY() float64 {
	if !el.OverflowY.scrollable() {
		return 0
	}
	m := el.ContentHeight - el.ClientHeight()
	if m < 0 {
		return 0
	}
	return m
}

// --- Tree manipulation ---

// AddChild appends child to this element's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this element (cycle).
func (el *Element) AddChild(child *Element) {
	if child == nil {
		panic("tactile: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(el, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, el) {
		panic("tactile: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = el
	child.setDocument(el.doc)
	el.children = append(el.children, child)
	el.childrenSorted = false
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(el)
	}
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (el *Element) AddChildAt(child *Element, index int) {
	if child == nil {
		panic("tactile: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(el, "AddChildAt (parent)")
		debugCheckDisposed(child, "AddChildAt (child)")
	}
	if isAncestor(child, el) {
		panic("tactile: adding child would create a cycle")
	}
	if index < 0 || index > len(el.children) {
		panic("tactile: child index out of range")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = el
	child.setDocument(el.doc)
	el.children = append(el.children, nil)
	copy(el.children[index+1:], el.children[index:])
	el.children[index] = child
	el.childrenSorted = false
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(el)
	}
}

// RemoveChild detaches child from this element.
// Panics if child.Parent != el.
func (el *Element) RemoveChild(child *Element) {
	if globalDebug {
		debugCheckDisposed(el, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != el {
		panic("tactile: child's parent is not this element")
	}
	el.removeChildByPtr(child)
	child.Parent = nil
	child.setDocument(nil)
	el.childrenSorted = false
}

// RemoveChildAt removes and returns the child at the given index.
func (el *Element) RemoveChildAt(index int) *Element {
	if globalDebug {
		debugCheckDisposed(el, "RemoveChildAt")
	}
	if index < 0 || index >= len(el.children) {
		panic("tactile: child index out of range")
	}
	child := el.children[index]
	copy(el.children[index:], el.children[index+1:])
	el.children[len(el.children)-1] = nil
	el.children = el.children[:len(el.children)-1]
	child.Parent = nil
	child.setDocument(nil)
	el.childrenSorted = false
	return child
}

// RemoveFromParent detaches this element from its parent.
// No-op if this element has no parent.
func (el *Element) RemoveFromParent() {
	if el.Parent == nil {
		return
	}
	el.Parent.RemoveChild(el)
}

// RemoveChildren detaches all children from this element.
// Children are NOT disposed.
func (el *Element) RemoveChildren() {
	for _, child := range el.children {
		child.Parent = nil
		child.setDocument(nil)
	}
	el.children = el.children[:0]
	el.childrenSorted = true
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (el *Element) Children() []*Element {
	return el.children
}

// NumChildren returns the number of children.
func (el *Element) NumChildren() int {
	return len(el.children)
}

// ChildAt returns the child at the given index.
func (el *Element) ChildAt(index int) *Element {
	return el.children[index]
}

// SetChildIndex moves child to a new index among its siblings.
func (el *Element) SetChildIndex(child *Element, index int) {
	if child.Parent != el {
		panic("tactile: child's parent is not this element")
	}
	nc := len(el.children)
	if index < 0 || index >= nc {
		panic("tactile: child index out of range")
	}
	oldIndex := -1
	for i, c := range el.children {
		if c == child {
			oldIndex = i
			break
		}
	}
	if oldIndex == index {
		return
	}
	// Shift elements to fill the gap and open the target slot.
	if oldIndex < index {
		copy(el.children[oldIndex:], el.children[oldIndex+1:index+1])
	} else {
		copy(el.children[index+1:], el.children[index:oldIndex])
	}
	el.children[index] = child
	el.childrenSorted = false
}

// SetZIndex sets the element's ZIndex and marks the parent's children as unsorted.
func (el *Element) SetZIndex(z int) {
	if el.ZIndex == z {
		return
	}
	el.ZIndex = z
	if el.Parent != nil {
		el.Parent.childrenSorted = false
	}
}

// Document returns the document this element is attached to, or nil.
func (el *Element) Document() *Document {
	return el.doc
}

// setDocument propagates document attachment through the subtree.
func (el *Element) setDocument(doc *Document) {
	if el.doc == doc {
		return
	}
	el.doc = doc
	for _, child := range el.children {
		child.setDocument(doc)
	}
}

// --- Disposal ---

// Dispose removes this element from its parent, clears any listeners
// registered on it, marks it as disposed, and recursively disposes all
// descendants.
func (el *Element) Dispose() {
	if el.disposed {
		return
	}
	el.RemoveFromParent()
	el.dispose()
}

func (el *Element) dispose() {
	if el.doc != nil {
		el.doc.Events.Clear(el)
	}
	el.disposed = true
	el.ID = 0
	for _, child := range el.children {
		child.Parent = nil
		child.dispose()
	}
	el.children = nil
	el.sortedChildren = nil
	el.Parent = nil
	el.doc = nil
	el.UserData = nil
}

// IsDisposed returns true if this element has been disposed.
func (el *Element) IsDisposed() bool {
	return el.disposed
}

// --- Helpers ---

// IsDescendantOf reports whether el is candidate or sits below candidate.
func (el *Element) IsDescendantOf(candidate *Element) bool {
	return isAncestor(candidate, el)
}

// isAncestor reports whether candidate is an ancestor of element (or the
// element itself).
func isAncestor(candidate, el *Element) bool {
	for p := el; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from el.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (el *Element) removeChildByPtr(child *Element) {
	for i, c := range el.children {
		if c == child {
			copy(el.children[i:], el.children[i+1:])
			el.children[len(el.children)-1] = nil
			el.children = el.children[:len(el.children)-1]
			return
		}
	}
}

// rebuildSortedChildren rebuilds the ZIndex-sorted traversal order for an
// element. Stable insertion sort: sibling order is preserved within equal
// ZIndex values.
func (el *Element) rebuildSortedChildren() {
	nc := len(el.children)
	if cap(el.sortedChildren) < nc {
		el.sortedChildren = make([]*Element, nc)
	}
	el.sortedChildren = el.sortedChildren[:nc]
	copy(el.sortedChildren, el.children)
	for i := 1; i < nc; i++ {
		key := el.sortedChildren[i]
		j := i - 1
		for j >= 0 && el.sortedChildren[j].ZIndex > key.ZIndex {
			el.sortedChildren[j+1] = el.sortedChildren[j]
			j--
		}
		el.sortedChildren[j+1] = key
	}
	el.childrenSorted = true
}

// orderedChildren returns the ZIndex-sorted child list, rebuilding if needed.
func (el *Element) orderedChildren() []*Element {
	if len(el.children) == 0 {
		return nil
	}
	if !el.childrenSorted {
		el.rebuildSortedChildren()
	}
	if el.sortedChildren != nil {
		return el.sortedChildren
	}
	return el.children
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
