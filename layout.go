package canopy

// LayoutElement carries the sizing preferences of a node managed by its
// parent's layout group. A preferred size of -1 means the layout decides,
// sharing leftover space by flexible weight. Change it through the Node
// setters so cached geometry is invalidated.
type LayoutElement struct {
	prefW, prefH float64
	flexW, flexH float64
	ignore       bool // positioned by its own anchors even inside a group
}

// PreferredSize returns the preferred width and height; -1 lets the layout
// decide.
func (e *LayoutElement) PreferredSize() (w, h float64) { return e.prefW, e.prefH }

// FlexibleWeight returns the share of leftover space taken on each axis.
func (e *LayoutElement) FlexibleWeight() (w, h float64) { return e.flexW, e.flexH }

// Ignored reports whether the element is excluded from its group.
func (e *LayoutElement) Ignored() bool { return e.ignore }

func (e *LayoutElement) applyFill(f Fill, w, h float64) {
	e.prefW, e.flexW = w, 0
	e.prefH, e.flexH = h, 0
	if f.stretchesX() {
		e.prefW, e.flexW = -1, 1
	}
	if f.stretchesY() {
		e.prefH, e.flexH = -1, 1
	}
}

func (n *Node) ensureElement() {
	if n.element != nil {
		return
	}
	n.element = &LayoutElement{}
	n.element.applyFill(n.fill, n.width, n.height)
}

// LayoutElement returns the node's layout preferences, or nil when its parent
// has no layout group.
func (n *Node) LayoutElement() *LayoutElement {
	return n.element
}

func (n *Node) elementOrWarn(op string) *LayoutElement {
	if n.element == nil {
		logWarnf("Node."+op, "node %q is not inside a layout group", n.Name)
	}
	return n.element
}

// SetIgnoreLayout excludes the node from its parent's layout group.
func (n *Node) SetIgnoreLayout(ignore bool) {
	if e := n.elementOrWarn("SetIgnoreLayout"); e != nil {
		e.ignore = ignore
		touchGeometry()
	}
}

// SetPreferredSize overrides the size the parent's layout group gives the
// node. -1 on an axis hands that axis to the flexible weights.
func (n *Node) SetPreferredSize(w, h float64) {
	if e := n.elementOrWarn("SetPreferredSize"); e != nil {
		e.prefW, e.prefH = w, h
		touchGeometry()
	}
}

// SetFlexibleWeight sets the node's share of leftover space on each axis.
// Only axes with a preferred size of -1 use it.
func (n *Node) SetFlexibleWeight(w, h float64) {
	if e := n.elementOrWarn("SetFlexibleWeight"); e != nil {
		e.flexW, e.flexH = w, h
		touchGeometry()
	}
}

// LayoutGroup stacks a node's children along one axis.
type LayoutGroup struct {
	owner         *Node
	mode          LayoutMode
	spacing       float64
	padding       Insets
	align         Alignment
	controlWidth  bool
	controlHeight bool
	fitContent    bool

	slots   map[*Node]Rect // local to the owner's rect
	version uint64
}

// Mode returns the stacking direction.
func (g *LayoutGroup) Mode() LayoutMode { return g.mode }

// Spacing returns the gap between consecutive children.
func (g *LayoutGroup) Spacing() float64 { return g.spacing }

// Padding returns the inner padding.
func (g *LayoutGroup) Padding() Insets { return g.padding }

// ChildAlignment returns the cross-axis alignment.
func (g *LayoutGroup) ChildAlignment() Alignment { return g.align }

// ChildControl reports whether the group sets children's width and height.
func (g *LayoutGroup) ChildControl() (width, height bool) {
	return g.controlWidth, g.controlHeight
}

// FitContent reports whether the owner sizes itself to its children on the
// main axis.
func (g *LayoutGroup) FitContent() bool { return g.fitContent }

// SetLayout gives the node a Vertical or Horizontal layout group, destroying
// any previous group first. LayoutNone removes the group. Existing children
// are opted into size tracking.
func (n *Node) SetLayout(mode LayoutMode) {
	if n.layout != nil {
		n.layout.owner = nil
		n.layout.slots = nil
		n.layout = nil
	}
	if mode == LayoutNone {
		for _, c := range n.children {
			c.element = nil
		}
		touchGeometry()
		return
	}
	n.layout = &LayoutGroup{
		owner:         n,
		mode:          mode,
		controlWidth:  true,
		controlHeight: true,
	}
	for _, c := range n.children {
		c.ensureElement()
	}
	touchGeometry()
}

// Layout returns the node's layout group, or nil.
func (n *Node) Layout() *LayoutGroup {
	return n.layout
}

func (n *Node) layoutOrWarn(op string) *LayoutGroup {
	if n.layout == nil {
		logWarnf("Node."+op, "node %q has no layout group", n.Name)
	}
	return n.layout
}

// SetSpacing sets the gap between children. Logs and does nothing when the
// node has no layout group.
func (n *Node) SetSpacing(spacing float64) {
	if g := n.layoutOrWarn("SetSpacing"); g != nil {
		g.spacing = spacing
		touchGeometry()
	}
}

// SetPadding sets the layout group's inner padding.
func (n *Node) SetPadding(left, top, right, bottom float64) {
	if g := n.layoutOrWarn("SetPadding"); g != nil {
		g.padding = Insets{left, top, right, bottom}
		touchGeometry()
	}
}

// SetChildAlignment sets where children sit on the cross axis.
func (n *Node) SetChildAlignment(a Alignment) {
	if g := n.layoutOrWarn("SetChildAlignment"); g != nil {
		g.align = a
		touchGeometry()
	}
}

// SetChildControl sets whether the group drives children's width and height.
// A child whose size is not controlled keeps its own explicit size.
func (n *Node) SetChildControl(width, height bool) {
	if g := n.layoutOrWarn("SetChildControl"); g != nil {
		g.controlWidth, g.controlHeight = width, height
		touchGeometry()
	}
}

// SetFitContent makes the node size itself to its children on the layout's
// main axis.
func (n *Node) SetFitContent(fit bool) {
	if g := n.layoutOrWarn("SetFitContent"); g != nil {
		g.fitContent = fit
		touchGeometry()
	}
}

// layoutSlot returns the rect the group assigned to child, relative to the
// owner's top-left corner.
func (n *Node) layoutSlot(child *Node) (Rect, bool) {
	g := n.layout
	if g == nil || child.element == nil || child.element.ignore || !child.active {
		return Rect{}, false
	}
	if g.version != geometryVersion || g.slots == nil {
		g.compute()
	}
	r, ok := g.slots[child]
	return r, ok
}

func (g *LayoutGroup) managed() []*Node {
	var out []*Node
	for _, c := range g.owner.children {
		if c.active && c.element != nil && !c.element.ignore {
			out = append(out, c)
		}
	}
	return out
}

// axisPrefs returns a child's main-axis preferred size (or -1) with its
// flexible weight, and its cross-axis preferred size (or -1).
func (g *LayoutGroup) axisPrefs(c *Node) (main, flex, cross float64) {
	e := c.element
	if g.mode == LayoutVertical {
		main, flex = c.height, 0
		if g.controlHeight {
			main, flex = e.prefH, e.flexH
		}
		cross = c.width
		if g.controlWidth {
			cross = e.prefW
		}
		return main, flex, cross
	}
	main, flex = c.width, 0
	if g.controlWidth {
		main, flex = e.prefW, e.flexW
	}
	cross = c.height
	if g.controlHeight {
		cross = e.prefH
	}
	return main, flex, cross
}

// preferredMainSize is the main-axis extent of all fixed-size children plus
// gaps and padding. Flexible children contribute nothing.
func (g *LayoutGroup) preferredMainSize() float64 {
	items := g.managed()
	total := 0.0
	for _, c := range items {
		if main, _, _ := g.axisPrefs(c); main > 0 {
			total += main
		}
	}
	if len(items) > 1 {
		total += g.spacing * float64(len(items)-1)
	}
	if g.mode == LayoutVertical {
		return total + g.padding.Top + g.padding.Bottom
	}
	return total + g.padding.Left + g.padding.Right
}

func (g *LayoutGroup) compute() {
	g.version = geometryVersion
	g.slots = make(map[*Node]Rect)
	owner := g.owner.Rect()
	innerW := max(owner.Width-g.padding.Left-g.padding.Right, 0)
	innerH := max(owner.Height-g.padding.Top-g.padding.Bottom, 0)

	vertical := g.mode == LayoutVertical
	mainAvail, crossAvail := innerW, innerH
	if vertical {
		mainAvail, crossAvail = innerH, innerW
	}

	items := g.managed()
	mains := make([]float64, len(items))
	fixed, flexTotal := 0.0, 0.0
	for i, c := range items {
		main, flex, _ := g.axisPrefs(c)
		if main >= 0 {
			mains[i] = main
			fixed += main
			continue
		}
		mains[i] = -1
		if flex <= 0 {
			flex = 1
		}
		flexTotal += flex
	}
	if len(items) > 1 {
		fixed += g.spacing * float64(len(items)-1)
	}
	remaining := max(mainAvail-fixed, 0)
	if g.fitContent {
		remaining = 0
	}
	for i, c := range items {
		if mains[i] >= 0 {
			continue
		}
		_, flex, _ := g.axisPrefs(c)
		if flex <= 0 {
			flex = 1
		}
		mains[i] = remaining * flex / flexTotal
	}

	cursor := g.padding.Left
	crossStart := g.padding.Top
	if vertical {
		cursor, crossStart = g.padding.Top, g.padding.Left
	}
	for i, c := range items {
		_, _, cross := g.axisPrefs(c)
		if cross < 0 {
			cross = crossAvail
		}
		offset := 0.0
		switch g.align {
		case AlignCenter:
			offset = (crossAvail - cross) / 2
		case AlignEnd:
			offset = crossAvail - cross
		}
		if vertical {
			g.slots[c] = Rect{crossStart + offset, cursor, cross, mains[i]}
		} else {
			g.slots[c] = Rect{cursor, crossStart + offset, mains[i], cross}
		}
		cursor += mains[i] + g.spacing
	}
}
