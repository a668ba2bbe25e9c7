package canopy

// WindowState is the geometry a window snapshots before going fullscreen and
// restores verbatim afterwards.
type WindowState struct {
	Width, Height float64
	AnchorMin     Vec2
	AnchorMax     Vec2
	Pivot         Vec2
	Position      Vec2

	anchor    Anchor
	fill      Fill
	sizeDelta Vec2
}

type dragMode uint8

const (
	dragNone dragMode = iota
	dragMove
	dragResize
)

// Window is an Overlay with a title bar, a scrolling content area and a
// resize grip. It can be dragged, resized within [MinSize, MaxSize] and
// toggled to fill the viewport. Add on the window or its root places
// children in the scroll content.
type Window struct {
	Overlay

	titleBar *Node
	scroll   *ScrollView
	grip     *Node

	fullscreen bool
	saved      WindowState

	drag dragMode
	refX float64 // last drag point in canvas space
	refY float64

	MinSize Vec2
	MaxSize Vec2

	// MoveModifier held while dragging anywhere on the window moves it.
	MoveModifier KeyModifiers
	// ResizeModifier held while dragging anywhere on the window resizes it.
	// It is checked before MoveModifier.
	ResizeModifier KeyModifiers
}

// NewWindow creates a hidden window of the given size anchored at the
// middle of the viewport.
func (s *Scene) NewWindow(title string, width, height float64) *Window {
	th := s.theme
	w := &Window{
		MinSize:        th.WindowMinSize,
		MaxSize:        th.WindowMaxSize,
		MoveModifier:   ModAlt,
		ResizeModifier: ModAlt | ModShift,
	}
	w.scene = s
	w.index = -1

	root := NewPanel(title, th.WindowColor)
	root.SetSize(width, height)
	root.SetLayout(LayoutVertical)

	w.titleBar = NewPanel(title+".title", th.TitleColor)
	w.titleBar.Label = title
	w.titleBar.Interactable = true
	w.titleBar.SetFill(FillHorizontal)
	w.titleBar.SetSize(0, th.TitleHeight)
	root.attach(w.titleBar)

	w.scroll = NewScrollView(title+".body", th)
	root.attach(w.scroll.Viewport())

	w.grip = NewPanel(title+".grip", th.GripColor)
	w.grip.Interactable = true
	root.attach(w.grip)
	w.grip.SetIgnoreLayout(true)
	w.grip.SetAnchor(AnchorBottomRight)
	w.grip.SetSize(th.GripSize, th.GripSize)

	root.SetContent(w.scroll.Content())
	w.init(title, root)

	root.On(EventDragStart, w.onDragStart)
	root.On(EventDrag, w.onDrag)
	root.On(EventDragEnd, w.onDragEnd)
	// Observers see clicks before any child handler can consume them.
	focus := []CallbackHandle{
		s.On(EventClick, w.focusOn),
		s.On(EventDragStart, w.focusOn),
	}
	root.OnDestroy(func() {
		for _, h := range focus {
			h.Remove()
		}
	})
	w.titleBar.On(EventDoubleClick, func(*Event) bool {
		w.ToggleFullscreen()
		return true
	})
	return w
}

// Title returns the text shown in the title bar.
func (w *Window) Title() string { return w.titleBar.Label }

// SetTitle changes the title bar text.
func (w *Window) SetTitle(title string) { w.titleBar.Label = title }

// TitleBar returns the title bar node.
func (w *Window) TitleBar() *Node { return w.titleBar }

// Grip returns the resize grip node.
func (w *Window) Grip() *Node { return w.grip }

// ScrollView returns the window's content area.
func (w *Window) ScrollView() *ScrollView { return w.scroll }

// Fullscreen reports whether the window currently fills the viewport.
func (w *Window) Fullscreen() bool { return w.fullscreen }

// Dragging reports whether a move or resize gesture is in progress.
func (w *Window) Dragging() bool { return w.drag != dragNone }

// WindowState returns the window's current geometry.
func (w *Window) WindowState() WindowState {
	n := w.root
	return WindowState{
		Width:     n.width,
		Height:    n.height,
		AnchorMin: n.anchorMin,
		AnchorMax: n.anchorMax,
		Pivot:     n.pivot,
		Position:  n.position,
		anchor:    n.anchor,
		fill:      n.fill,
		sizeDelta: n.sizeDelta,
	}
}

func (w *Window) restore(st WindowState) {
	n := w.root
	n.width, n.height = st.Width, st.Height
	n.anchorMin, n.anchorMax = st.AnchorMin, st.AnchorMax
	n.pivot = st.Pivot
	n.position = st.Position
	n.anchor, n.fill = st.anchor, st.fill
	n.sizeDelta = st.sizeDelta
	touchGeometry()
}

// BeginFullscreen snapshots the geometry and stretches the window over the
// whole viewport. No-op when already fullscreen.
func (w *Window) BeginFullscreen() {
	if w.fullscreen || w.destroyed {
		return
	}
	w.saved = w.WindowState()
	w.fullscreen = true
	w.root.SetFill(FillAll)
	w.root.SetPosition(0, 0)
}

// EndFullscreen restores the geometry captured by BeginFullscreen exactly.
// No-op when not fullscreen.
func (w *Window) EndFullscreen() {
	if !w.fullscreen || w.destroyed {
		return
	}
	w.fullscreen = false
	w.restore(w.saved)
}

// ToggleFullscreen switches between fullscreen and windowed.
func (w *Window) ToggleFullscreen() {
	if w.fullscreen {
		w.EndFullscreen()
	} else {
		w.BeginFullscreen()
	}
}

// Resize sets the window size clamped to [MinSize, MaxSize], shifting the
// position so the top-left corner stays put. Ignored while fullscreen.
func (w *Window) Resize(width, height float64) {
	if w.fullscreen {
		return
	}
	n := w.root
	nw := clamp(width, w.MinSize.X, max(w.MinSize.X, w.MaxSize.X))
	nh := clamp(height, w.MinSize.Y, max(w.MinSize.Y, w.MaxSize.Y))
	dw, dh := nw-n.width, nh-n.height
	if dw == 0 && dh == 0 {
		return
	}
	n.SetSize(nw, nh)
	n.SetPosition(n.position.X+dw*n.pivot.X, n.position.Y+dh*n.pivot.Y)
}

func (w *Window) gestureFor(e *Event) (mode dragMode, focus bool) {
	switch {
	case e.Modifiers.Has(w.ResizeModifier):
		return dragResize, false
	case e.Modifiers.Has(w.MoveModifier):
		return dragMove, false
	case isAncestor(w.grip, e.Target):
		return dragResize, true
	case isAncestor(w.titleBar, e.Target):
		return dragMove, true
	}
	return dragNone, true
}

func (w *Window) onDragStart(e *Event) bool {
	mode, _ := w.gestureFor(e)
	if mode == dragNone {
		return false
	}
	// The gesture began at the press point, before the dead zone was
	// crossed; anchoring there keeps the window under the cursor.
	if w.fullscreen {
		if mode == dragResize {
			return true
		}
		// Keep the cursor on the same spot of the title bar after the
		// window shrinks back.
		r := w.root.Rect()
		fx := 0.5
		if r.Width > 0 {
			fx = (e.StartX - r.X) / r.Width
		}
		dy := e.StartY - r.Y
		w.EndFullscreen()
		nr := w.root.Rect()
		w.root.moveRectTo(e.StartX-fx*nr.Width, e.StartY-dy)
	}
	x, y := w.surface.ScreenToLocal(e.StartX, e.StartY)
	w.drag = mode
	w.refX, w.refY = x, y
	return true
}

func (w *Window) onDrag(e *Event) bool {
	if w.drag == dragNone {
		return false
	}
	x, y := w.surface.ScreenToLocal(e.GlobalX, e.GlobalY)
	dx, dy := x-w.refX, y-w.refY
	switch w.drag {
	case dragMove:
		p := w.root.position
		w.root.SetPosition(p.X+dx, p.Y+dy)
		w.refX, w.refY = x, y
	case dragResize:
		// Only the applied change moves the reference, so past a size
		// limit the grip waits for the cursor to come back.
		ow, oh := w.root.width, w.root.height
		w.Resize(ow+dx, oh+dy)
		w.refX += w.root.width - ow
		w.refY += w.root.height - oh
	}
	return true
}

func (w *Window) onDragEnd(e *Event) bool {
	if w.drag == dragNone {
		return false
	}
	// The release frame can still carry movement.
	w.onDrag(e)
	w.drag = dragNone
	return true
}

func (w *Window) focusOn(e *Event) {
	if e.Target == nil || !isAncestor(w.root, e.Target) {
		return
	}
	if _, focus := w.gestureFor(e); focus {
		w.BringToFront()
	}
}
