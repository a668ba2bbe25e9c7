package canopy

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorTransparent is the zero color. Nodes with a transparent color are not
// painted by Draw but still participate in layout and hit testing.
var ColorTransparent = Color{}

// toRGBA converts to a premultiplied color.RGBA scaled by alpha.
func (c Color) toRGBA(alpha float64) color.RGBA {
	a := clamp01(c.A * alpha)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// Vec2 is a 2D vector used for positions, offsets, sizes, anchors and pivots
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

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

// Intersect returns the overlapping region of r and other. The result has
// zero size when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x0 := max(r.X, other.X)
	y0 := max(r.Y, other.Y)
	x1 := min(r.X+r.Width, other.X+other.Width)
	y1 := min(r.Y+r.Height, other.Y+other.Height)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// Insets holds per-side padding.
type Insets struct {
	Left, Top, Right, Bottom float64
}

// Anchor is one of nine reference points on a 3x3 grid. It fixes the pivot
// and the anchor box a Node is positioned against inside its parent.
type Anchor uint8

const (
	AnchorTopLeft Anchor = iota
	AnchorTop
	AnchorTopRight
	AnchorLeft
	AnchorMiddle
	AnchorRight
	AnchorBottomLeft
	AnchorBottom
	AnchorBottomRight
)

// anchorPoints maps each Anchor to its normalized point in the parent.
// Y grows downward, so the top row is y=0.
var anchorPoints = [...]Vec2{
	AnchorTopLeft:     {0, 0},
	AnchorTop:         {0.5, 0},
	AnchorTopRight:    {1, 0},
	AnchorLeft:        {0, 0.5},
	AnchorMiddle:      {0.5, 0.5},
	AnchorRight:       {1, 0.5},
	AnchorBottomLeft:  {0, 1},
	AnchorBottom:      {0.5, 1},
	AnchorBottomRight: {1, 1},
}

// Point returns the normalized position of the anchor.
func (a Anchor) Point() Vec2 {
	if int(a) >= len(anchorPoints) {
		return anchorPoints[AnchorMiddle]
	}
	return anchorPoints[a]
}

func (a Anchor) String() string {
	switch a {
	case AnchorTopLeft:
		return "TopLeft"
	case AnchorTop:
		return "Top"
	case AnchorTopRight:
		return "TopRight"
	case AnchorLeft:
		return "Left"
	case AnchorMiddle:
		return "Middle"
	case AnchorRight:
		return "Right"
	case AnchorBottomLeft:
		return "BottomLeft"
	case AnchorBottom:
		return "Bottom"
	case AnchorBottomRight:
		return "BottomRight"
	}
	return "Anchor(?)"
}

// Fill selects which axes of a Node stretch to the parent's bounds. Fill is
// layered on top of Anchor.
type Fill uint8

const (
	FillNone       Fill = iota // explicit size on both axes
	FillHorizontal             // stretch X, keep the anchor's Y
	FillVertical               // stretch Y, keep the anchor's X
	FillAll                    // stretch both, pivot forced to center
)

func (f Fill) String() string {
	switch f {
	case FillNone:
		return "None"
	case FillHorizontal:
		return "Horizontal"
	case FillVertical:
		return "Vertical"
	case FillAll:
		return "All"
	}
	return "Fill(?)"
}

func (f Fill) stretchesX() bool { return f == FillHorizontal || f == FillAll }
func (f Fill) stretchesY() bool { return f == FillVertical || f == FillAll }

// LayoutMode selects how a layout group stacks its children.
type LayoutMode uint8

const (
	LayoutNone       LayoutMode = iota // children positioned by their own anchors
	LayoutVertical                     // top to bottom
	LayoutHorizontal                   // left to right
)

// Alignment places children on a layout group's cross axis.
type Alignment uint8

const (
	AlignStart  Alignment = iota // left for vertical groups, top for horizontal
	AlignCenter                  // centered on the cross axis
	AlignEnd                     // right for vertical groups, bottom for horizontal
)

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventPointerDown  EventType = iota // fires when a pointer button is pressed
	EventPointerUp                     // fires when a pointer button is released
	EventPointerMove                   // fires when the pointer moves (hover, no button)
	EventClick                         // fires on press then release over the same node
	EventDoubleClick                   // fires on the second click within DoubleClickInterval
	EventDragStart                     // fires when movement exceeds the drag dead zone
	EventDrag                          // fires each frame while dragging
	EventDragEnd                       // fires when the pointer is released after dragging
	EventPointerEnter                  // fires when the pointer enters a node's bounds
	EventPointerLeave                  // fires when the pointer leaves a node's bounds
	EventScroll                        // fires when the wheel moves over a node

	eventTypeCount
)

func (e EventType) String() string {
	switch e {
	case EventPointerDown:
		return "PointerDown"
	case EventPointerUp:
		return "PointerUp"
	case EventPointerMove:
		return "PointerMove"
	case EventClick:
		return "Click"
	case EventDoubleClick:
		return "DoubleClick"
	case EventDragStart:
		return "DragStart"
	case EventDrag:
		return "Drag"
	case EventDragEnd:
		return "DragEnd"
	case EventPointerEnter:
		return "PointerEnter"
	case EventPointerLeave:
		return "PointerLeave"
	case EventScroll:
		return "Scroll"
	}
	return "Event(?)"
}

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

// Has reports whether every modifier in want is held in m.
func (m KeyModifiers) Has(want KeyModifiers) bool {
	return want != 0 && m&want == want
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
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
