package tactile

// Geometry helpers. Everything here is a pure read of the element tree; no
// function in this file mutates geometry except ScrollableAncestor, which
// may force the scroll root's overflow mode so auto-scroll has somewhere to
// act.
//
// Drag sessions must never crash mid-gesture, so every function treats a
// nil element or document as a zero-value query rather than an error.

// PagePosition returns the element's border-box origin in page coordinates:
// an iterative walk up the parent chain accumulating each ancestor's
// content-origin offset minus its scroll offsets.
func PagePosition(el *Element) Vec2 {
	if el == nil {
		return Vec2{}
	}
	x, y := el.X, el.Y
	for p := el.Parent; p != nil; p = p.Parent {
		x += p.X + p.Border.Left + p.Padding.Left - p.ScrollX
		y += p.Y + p.Border.Top + p.Padding.Top - p.ScrollY
	}
	return Vec2{X: x, Y: y}
}

// PageRect returns the element's border box in page coordinates.
func PageRect(el *Element) Rect {
	if el == nil {
		return Rect{}
	}
	pos := PagePosition(el)
	return Rect{X: pos.X, Y: pos.Y, Width: el.Width, Height: el.Height}
}

// RelativePosition returns the element's position adjusted by its own
// margin, so the result marks where the margin box begins rather than the
// border box.
func RelativePosition(el *Element) Vec2 {
	if el == nil {
		return Vec2{}
	}
	pos := PagePosition(el)
	return Vec2{X: pos.X - el.Margin.Left, Y: pos.Y - el.Margin.Top}
}

// DragLimits computes the clamping rectangle for helper movement inside
// container, along with the container's border and padding thicknesses.
// The limits span the container's client box (inside borders) in page
// coordinates.
//
// FrameInternalScroll containers manage their own inner scrolling: their
// top is corrected by the document's current scroll offset and their height
// is the visible client height rather than the full content extent.
//
// A nil container yields zero limits, which the drag engine treats as
// unconstrained.
func DragLimits(doc *Document, container, helper *Element, frame CoordinateFrame) (Limits, Edges, Edges) {
	if container == nil {
		return Limits{}, Edges{}, Edges{}
	}
	border := container.Border
	padding := container.Padding

	pos := PagePosition(container)
	left := pos.X + border.Left
	top := pos.Y + border.Top

	width := container.ClientWidth()
	height := container.ScrollExtent(AxisY)

	if frame == FrameInternalScroll {
		height = container.ClientHeight()
		if doc != nil && doc.scrollRoot != nil {
			top += doc.scrollRoot.ScrollY
		}
	}

	return Limits{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
	}, border, padding
}

// DocumentExtent returns the most permissive page extent for the axis: the
// maximum of the scroll root's content size, its box size, and the viewport
// size. Used to clamp stray pointer coordinates beyond the visible document.
func DocumentExtent(doc *Document, axis Axis) float64 {
	if doc == nil {
		return 0
	}
	root := doc.scrollRoot
	if axis == AxisX {
		ext := doc.Viewport.Width
		if root != nil {
			ext = max3(root.ContentWidth, root.Width, ext)
		}
		return ext
	}
	ext := doc.Viewport.Height
	if root != nil {
		ext = max3(root.ContentHeight, root.Height, ext)
	}
	return ext
}

// InViewport reports whether the whole element, not just a corner, lies
// inside the currently visible region of the document.
func InViewport(doc *Document, el *Element) bool {
	if doc == nil || el == nil {
		return false
	}
	visible := doc.VisibleRect()
	return visible.ContainsRect(PageRect(el))
}

// PointerPosition normalizes a pointer event to its page and client
// coordinate pairs.
func PointerPosition(ev PointerEvent) (page, client Vec2) {
	return Vec2{X: ev.PageX, Y: ev.PageY}, Vec2{X: ev.ClientX, Y: ev.ClientY}
}

// ElementsAt returns the stack of elements whose border box contains the
// page point, topmost first. Negative coordinates are clamped to 0.
// Invisible or non-interactable subtrees are skipped.
func ElementsAt(doc *Document, pageX, pageY float64) []*Element {
	if doc == nil || doc.root == nil {
		return nil
	}
	if pageX < 0 {
		pageX = 0
	}
	if pageY < 0 {
		pageY = 0
	}
	stack := collectHits(doc.root, pageX, pageY, nil)
	// Reverse painter order: topmost visual element first.
	for i, j := 0, len(stack)-1; i < j; i, j = i+1, j-1 {
		stack[i], stack[j] = stack[j], stack[i]
	}
	return stack
}

// collectHits walks the tree in painter order (DFS, ZIndex-sorted),
// appending every element containing the point.
func collectHits(el *Element, x, y float64, buf []*Element) []*Element {
	if !el.Visible || !el.Interactable {
		return buf
	}
	if PageRect(el).Contains(x, y) {
		buf = append(buf, el)
	}
	for _, child := range el.orderedChildren() {
		buf = collectHits(child, x, y, buf)
	}
	return buf
}

// ScrollableAncestor scans a hit stack for the first element that both
// permits vertical scrolling and has content overflowing its visible box.
// When none qualifies it falls back to the document's scroll root, forcing
// the root's overflow to Auto if it was Visible so auto-scroll has
// somewhere to act.
func ScrollableAncestor(doc *Document, stack []*Element, reverse bool) *Element {
	if reverse {
		for i := len(stack) - 1; i >= 0; i-- {
			if isScrollable(stack[i]) {
				return stack[i]
			}
		}
	} else {
		for _, el := range stack {
			if isScrollable(el) {
				return el
			}
		}
	}
	if doc == nil || doc.scrollRoot == nil {
		return nil
	}
	root := doc.scrollRoot
	if root.OverflowY == OverflowVisible {
		root.OverflowY = OverflowAuto
	}
	return root
}

func isScrollable(el *Element) bool {
	return el != nil && el.OverflowY.scrollable() && el.overflowsY()
}

func max3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
