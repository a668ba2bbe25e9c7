package canopy

// ScrollView is a clipping viewport over a vertically stacked content node.
// The content grows with its children; the wheel moves it within the
// viewport.
type ScrollView struct {
	viewport *Node
	content  *Node
	offset   float64

	// Speed is the distance scrolled per wheel notch.
	Speed float64
}

// NewScrollView creates a viewport filling its parent, with a content node
// pinned to its top edge that stacks children vertically.
func NewScrollView(name string, theme Theme) *ScrollView {
	sv := &ScrollView{Speed: theme.ScrollSpeed}

	sv.viewport = NewPanel(name, theme.ViewportColor)
	sv.viewport.SetFill(FillAll)
	sv.viewport.Clip = true
	sv.viewport.Interactable = true

	sv.content = NewNode(name + ".content")
	sv.content.SetAnchor(AnchorTop)
	sv.content.SetFill(FillHorizontal)
	sv.content.SetLayout(LayoutVertical)
	sv.content.SetSpacing(theme.Spacing)
	p := theme.Padding
	sv.content.SetPadding(p.Left, p.Top, p.Right, p.Bottom)
	sv.content.SetChildControl(true, false)
	sv.content.SetFitContent(true)

	sv.viewport.attach(sv.content)
	sv.viewport.SetContent(sv.content)

	sv.viewport.On(EventScroll, func(e *Event) bool {
		if sv.MaxScroll() == 0 {
			return false
		}
		sv.SetScroll(sv.offset - e.WheelY*sv.Speed)
		return true
	})
	return sv
}

// Viewport returns the clipping node.
func (sv *ScrollView) Viewport() *Node { return sv.viewport }

// Content returns the node children are stacked in.
func (sv *ScrollView) Content() *Node { return sv.content }

// Add appends a child to the content node.
func (sv *ScrollView) Add(child *Node) { sv.content.Add(child) }

// Scroll returns the current offset from the top, clamped to the content
// height as it is now.
func (sv *ScrollView) Scroll() float64 {
	return clamp(sv.offset, 0, sv.MaxScroll())
}

// MaxScroll returns how far the content extends past the viewport.
func (sv *ScrollView) MaxScroll() float64 {
	return max(sv.content.Rect().Height-sv.viewport.Rect().Height, 0)
}

// SetScroll moves the content so offset pixels are hidden above the
// viewport. The offset is clamped to [0, MaxScroll].
func (sv *ScrollView) SetScroll(offset float64) {
	sv.offset = clamp(offset, 0, sv.MaxScroll())
	sv.content.SetPosition(0, -sv.offset)
}
