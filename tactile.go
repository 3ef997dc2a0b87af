package tactile

// Vec2 is a 2D vector used for positions, offsets, sizes, and distances
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// ContainsRect reports whether other lies entirely inside r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.X+other.Width <= r.X+r.Width &&
		other.Y+other.Height <= r.Y+r.Height
}

// Edges holds per-side thicknesses for margins, borders, and paddings.
type Edges struct {
	Top, Right, Bottom, Left float64
}

// Horizontal returns Left + Right.
func (e Edges) Horizontal() float64 { return e.Left + e.Right }

// Vertical returns Top + Bottom.
func (e Edges) Vertical() float64 { return e.Top + e.Bottom }

// UniformEdges returns an Edges with all four sides set to v.
func UniformEdges(v float64) Edges {
	return Edges{Top: v, Right: v, Bottom: v, Left: v}
}

// Limits is the clamping rectangle for helper movement during a drag,
// expressed as page-coordinate edges rather than origin+size.
type Limits struct {
	Left, Top, Right, Bottom float64
}

// Axis restricts movement to a single coordinate, or to neither.
type Axis uint8

const (
	AxisNone Axis = iota // no restriction; both coordinates move
	AxisX                // only the X coordinate is written
	AxisY                // only the Y coordinate is written
)

// Overflow controls whether an element clips and scrolls its content.
type Overflow uint8

const (
	OverflowVisible Overflow = iota // content spills out; element never scrolls
	OverflowHidden                  // content clipped, no user scrolling
	OverflowAuto                    // scrolls when content exceeds the box
	OverflowScroll                  // always scrollable
)

// scrollable reports whether this overflow mode permits scrolling at all.
func (o Overflow) scrollable() bool {
	return o == OverflowAuto || o == OverflowScroll
}

// CoordinateFrame selects how a drag-area container interprets helper
// coordinates. Containers that manage their own internal scrolling
// (FrameInternalScroll) measure against the visible box rather than the
// full content extent; FrameRelative containers position the helper in the
// container's own coordinate space.
type CoordinateFrame uint8

const (
	FrameStandard       CoordinateFrame = iota // page-coordinate content box
	FrameInternalScroll                        // visible box, corrected by document scroll
	FrameRelative                              // container-relative positioning
)

// Direction names the dominant axis direction of a swipe or scroll.
type Direction uint8

const (
	DirectionNotMoved Direction = iota // displacement below threshold
	DirectionRight
	DirectionLeft
	DirectionUp
	DirectionDown
)

func (d Direction) String() string {
	switch d {
	case DirectionRight:
		return "right"
	case DirectionLeft:
		return "left"
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return "not-moved"
	}
}

// PointerKind distinguishes mouse-derived events from touch-derived ones.
// Touch events always hit the element under the finger last frame (the
// helper, during a drag), so drop resolution re-resolves them.
type PointerKind uint8

const (
	PointerMouse PointerKind = iota
	PointerTouch
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Low-level pointer event names recognized by the listener registry.
// Space-separated combinations of these are accepted by Registry.Add.
const (
	EventPointerDown   = "pointerdown"
	EventPointerMove   = "pointermove"
	EventPointerUp     = "pointerup"
	EventPointerCancel = "pointercancel"
)

// PointerEvent is the low-level input sample delivered to registered
// listeners. Page coordinates are document-relative; client coordinates are
// viewport-relative (page minus document scroll).
type PointerEvent struct {
	Name      string
	Kind      PointerKind
	PointerID int
	Button    MouseButton
	Modifiers KeyModifiers

	PageX, PageY     float64
	ClientX, ClientY float64

	// Target is the topmost interactable element under the pointer at
	// dispatch time (nil over empty space).
	Target *Element

	// Timestamp is the document clock in seconds at dispatch time.
	Timestamp float64
}

// Point returns the event's page coordinates as a Vec2.
func (e PointerEvent) Point() Vec2 {
	return Vec2{X: e.PageX, Y: e.PageY}
}

// Selector matches elements by predicate. Used for drag handles, abort
// targets, and droppable accept filters.
type Selector func(*Element) bool

// ByName returns a Selector matching elements with the given Name.
func ByName(name string) Selector {
	return func(el *Element) bool {
		return el != nil && el.Name == name
	}
}
