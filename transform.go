package canopy

// geometryVersion increments whenever anything that can move or resize a rect
// changes. Resolved rects and layout slots are cached against it, which
// replaces per-node dirty flags: a change anywhere invalidates every cache.
var geometryVersion uint64 = 1

func touchGeometry() {
	geometryVersion++
}

// --- Anchor, fill & size ---

// SetAnchor sets pivot, anchor-min and anchor-max to the anchor's point, then
// re-applies the current Fill on top of it.
func (n *Node) SetAnchor(a Anchor) {
	n.anchor = a
	n.applyFill()
}

// SetFill sets which axes stretch to the parent. Fill always reads the
// current anchor, so set the anchor first or re-apply the fill afterwards.
func (n *Node) SetFill(f Fill) {
	n.fill = f
	n.applyFill()
}

func (n *Node) applyFill() {
	p := n.anchor.Point()
	n.anchorMin, n.anchorMax, n.pivot = p, p, p
	sd := Vec2{n.width, n.height}
	if n.fill.stretchesX() {
		n.anchorMin.X, n.anchorMax.X = 0, 1
		sd.X = 0
	}
	if n.fill.stretchesY() {
		n.anchorMin.Y, n.anchorMax.Y = 0, 1
		sd.Y = 0
	}
	if n.fill == FillAll {
		n.pivot = Vec2{0.5, 0.5}
	}
	n.sizeDelta = sd
	if n.element != nil {
		n.element.applyFill(n.fill, n.width, n.height)
	}
	touchGeometry()
}

// SetSize stores an explicit width and height. Axes stretched by Fill keep
// stretching. When the node is managed by a parent's layout group this sets
// the preferred size the layout pass reads instead.
func (n *Node) SetSize(w, h float64) {
	n.width, n.height = w, h
	if !n.fill.stretchesX() {
		n.sizeDelta.X = w
	}
	if !n.fill.stretchesY() {
		n.sizeDelta.Y = h
	}
	if n.element != nil {
		n.element.applyFill(n.fill, w, h)
	}
	touchGeometry()
}

// SetPosition sets the offset of the pivot from its anchor reference point.
func (n *Node) SetPosition(x, y float64) {
	n.position = Vec2{x, y}
	touchGeometry()
}

// SetPivot overrides the pivot set by the anchor. The next SetAnchor or
// SetFill call resets it.
func (n *Node) SetPivot(px, py float64) {
	n.pivot = Vec2{px, py}
	touchGeometry()
}

// Anchor returns the last anchor set.
func (n *Node) Anchor() Anchor { return n.anchor }

// Fill returns the current fill mode.
func (n *Node) Fill() Fill { return n.fill }

// Size returns the explicit width and height last passed to SetSize.
func (n *Node) Size() (w, h float64) { return n.width, n.height }

// Position returns the pivot offset from the anchor reference point.
func (n *Node) Position() Vec2 { return n.position }

// AnchorMin returns the normalized lower anchor corner.
func (n *Node) AnchorMin() Vec2 { return n.anchorMin }

// AnchorMax returns the normalized upper anchor corner.
func (n *Node) AnchorMax() Vec2 { return n.anchorMax }

// Pivot returns the normalized pivot.
func (n *Node) Pivot() Vec2 { return n.pivot }

// SizeDelta returns the size added to the anchor box on each axis.
func (n *Node) SizeDelta() Vec2 { return n.sizeDelta }

// --- Rect resolution ---

// Rect returns the node's rectangle in screen coordinates. A node without a
// parent resolves against an empty rect at the origin. Children of a layout
// group take the slot the group assigned them.
func (n *Node) Rect() Rect {
	if n.rectVersion == geometryVersion {
		return n.rect
	}
	var r Rect
	switch {
	case n.Parent == nil:
		r = resolveRect(Rect{}, n)
	default:
		pr := n.Parent.Rect()
		if slot, ok := n.Parent.layoutSlot(n); ok {
			r = Rect{pr.X + slot.X, pr.Y + slot.Y, slot.Width, slot.Height}
		} else {
			r = resolveRect(pr, n)
		}
	}
	n.rect = r
	n.rectVersion = geometryVersion
	return r
}

// resolveRect places n inside parent rect p from its anchors, pivot, size
// delta and position.
func resolveRect(p Rect, n *Node) Rect {
	minX := p.X + n.anchorMin.X*p.Width
	maxX := p.X + n.anchorMax.X*p.Width
	minY := p.Y + n.anchorMin.Y*p.Height
	maxY := p.Y + n.anchorMax.Y*p.Height

	w := maxX - minX + n.sizeDelta.X
	h := maxY - minY + n.sizeDelta.Y
	if g := n.layout; g != nil && g.fitContent {
		if g.mode == LayoutVertical {
			h = g.preferredMainSize()
		} else {
			w = g.preferredMainSize()
		}
	}
	w = max(w, 0)
	h = max(h, 0)

	px := minX + (maxX-minX)*n.pivot.X + n.position.X
	py := minY + (maxY-minY)*n.pivot.Y + n.position.Y
	return Rect{px - n.pivot.X*w, py - n.pivot.Y*h, w, h}
}

// moveRectTo shifts the position so the rect's top-left corner lands on
// (x, y) in screen coordinates, keeping its size.
func (n *Node) moveRectTo(x, y float64) {
	r := n.Rect()
	n.SetPosition(n.position.X+x-r.X, n.position.Y+y-r.Y)
}

// --- Coordinate conversion ---

// ScreenToLocal converts a screen-space point to coordinates relative to the
// node's top-left corner.
func (n *Node) ScreenToLocal(sx, sy float64) (lx, ly float64) {
	r := n.Rect()
	return sx - r.X, sy - r.Y
}

// LocalToScreen converts a point relative to the node's top-left corner to
// screen space.
func (n *Node) LocalToScreen(lx, ly float64) (sx, sy float64) {
	r := n.Rect()
	return lx + r.X, ly + r.Y
}
