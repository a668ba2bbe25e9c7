package canopy

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constants ---

const (
	defaultDragDeadZone = 4.0 // pixels

	// DoubleClickInterval is the longest gap, in seconds of scene time,
	// between two clicks on the same node that still counts as a double
	// click.
	DoubleClickInterval = 0.35
)

// InputSource is the per-frame view of the host's input devices.
// EbitenInput reads it from ebiten; tests supply their own.
type InputSource interface {
	CursorPosition() (x, y float64)
	IsMouseButtonPressed(b MouseButton) bool
	IsKeyPressed(k ebiten.Key) bool
	IsKeyJustPressed(k ebiten.Key) bool
	// Wheel returns this frame's wheel movement.
	Wheel() (x, y float64)
}

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a convex polygon hit area in local coordinates.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside a convex polygon using cross-product sign test.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}

	// Check that the point is on the same side of every edge.
	var positive, negative bool
	for i := 0; i < n; i++ {
		x1 := p.Points[i].X
		y1 := p.Points[i].Y
		j := (i + 1) % n
		x2 := p.Points[j].X
		y2 := p.Points[j].Y

		cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// --- Pointer state ---

type pointerState struct {
	down      bool
	startX    float64
	startY    float64
	lastX     float64
	lastY     float64
	hitNode   *Node
	hoverNode *Node // last node the pointer was hovering over (for enter/leave)
	dragging  bool
	button    MouseButton // button captured at press time

	lastClickNode *Node
	lastClickTime float64
}

// --- Scene-level event registration ---

// On registers a scene-wide observer for ev. Observers see every event of
// that type before node handlers do, including events with no target, and
// cannot consume them.
func (s *Scene) On(ev EventType, fn func(*Event)) CallbackHandle {
	return s.handlers.add(ev, fn)
}

// CapturePointer routes all pointer events to node until the button is
// released or ReleasePointer is called.
func (s *Scene) CapturePointer(node *Node) {
	s.captured = node
}

// ReleasePointer stops routing pointer events to a captured node.
func (s *Scene) ReleasePointer() {
	s.captured = nil
}

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (s *Scene) SetDragDeadZone(pixels float64) {
	s.dragDeadZone = pixels
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise the node's rect.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	r := n.Rect()
	if r.Width == 0 && r.Height == 0 {
		return false
	}
	return lx >= 0 && lx <= r.Width && ly >= 0 && ly <= r.Height
}

// HitTest returns the topmost interactable node under (x, y), or nil.
// Children are tested before their parent, in reverse paint order.
func (s *Scene) HitTest(x, y float64) *Node {
	return pick(s.top, x, y)
}

func pick(n *Node, x, y float64) *Node {
	if !n.active || n.inputBlocked || n.disposed {
		return nil
	}
	r := n.Rect()
	if n.Clip && !r.Contains(x, y) {
		return nil
	}
	kids := n.paintOrder()
	for i := len(kids) - 1; i >= 0; i-- {
		if hit := pick(kids[i], x, y); hit != nil {
			return hit
		}
	}
	if n.Interactable && nodeContainsLocal(n, x-r.X, y-r.Y) {
		return n
	}
	return nil
}

// --- Input processing ---

// readModifiers reads the current keyboard modifier state.
func readModifiers(in InputSource) KeyModifiers {
	if in == nil {
		return 0
	}
	var mods KeyModifiers
	if in.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if in.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if in.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if in.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// processInput runs shortcuts, then pointer and wheel dispatch. Synthetic
// events, when queued, replace the device pointer for the frame.
func (s *Scene) processInput() {
	mods := readModifiers(s.input)
	if s.input != nil {
		s.shortcuts.process(s.input, mods)
	}

	if s.processInjectedInput(mods) {
		return
	}
	if s.input == nil {
		return
	}

	x, y := s.input.CursorPosition()
	var pressed bool
	var button MouseButton
	switch {
	case s.input.IsMouseButtonPressed(MouseButtonLeft):
		pressed, button = true, MouseButtonLeft
	case s.input.IsMouseButtonPressed(MouseButtonRight):
		pressed, button = true, MouseButtonRight
	case s.input.IsMouseButtonPressed(MouseButtonMiddle):
		pressed, button = true, MouseButtonMiddle
	}
	s.processPointer(x, y, pressed, button, mods)

	if wx, wy := s.input.Wheel(); wx != 0 || wy != 0 {
		s.processWheel(x, y, wx, wy, mods)
	}
}

// processPointer runs the pointer state machine.
func (s *Scene) processPointer(x, y float64, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &s.pointer
	if s.captured != nil && s.captured.disposed {
		s.captured = nil
	}
	if ps.hitNode != nil && ps.hitNode.disposed {
		ps.hitNode = nil
	}
	if ps.hoverNode != nil && ps.hoverNode.disposed {
		ps.hoverNode = nil
	}

	// Determine target node: captured node or hit test.
	target := s.captured
	if target == nil {
		target = s.HitTest(x, y)
	}

	// Fire hover enter/leave when the hovered node changes.
	if target != ps.hoverNode {
		if ps.hoverNode != nil {
			s.fire(&Event{Type: EventPointerLeave, Target: ps.hoverNode, GlobalX: x, GlobalY: y, Button: button, Modifiers: mods})
		}
		if target != nil {
			s.fire(&Event{Type: EventPointerEnter, Target: target, GlobalX: x, GlobalY: y, Button: button, Modifiers: mods})
		}
		ps.hoverNode = target
	}

	switch {
	case pressed && !ps.down:
		// Just pressed: capture the button for the whole interaction.
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
		ps.hitNode = target
		ps.dragging = false
		s.fire(&Event{Type: EventPointerDown, Target: target, GlobalX: x, GlobalY: y, Button: button, Modifiers: mods})

	case !pressed && ps.down:
		if ps.dragging {
			s.fire(s.dragEvent(EventDragEnd, x, y, x-ps.lastX, y-ps.lastY, mods))
		} else if ps.hitNode != nil && ps.hitNode == target {
			s.fire(&Event{Type: EventClick, Target: target, GlobalX: x, GlobalY: y, Button: ps.button, Modifiers: mods})
			s.detectDoubleClick(target, x, y, mods)
		}
		s.fire(&Event{Type: EventPointerUp, Target: target, GlobalX: x, GlobalY: y, Button: ps.button, Modifiers: mods})

		// Auto-release capture.
		s.captured = nil
		ps.down = false
		ps.hitNode = nil
		ps.dragging = false

	case pressed && ps.down:
		if x != ps.lastX || y != ps.lastY {
			if !ps.dragging {
				dx := x - ps.startX
				dy := y - ps.startY
				if math.Sqrt(dx*dx+dy*dy) > s.dragDeadZone {
					ps.dragging = true
					// A drag cancels any pending double click.
					ps.lastClickNode = nil
					s.fire(s.dragEvent(EventDragStart, x, y, dx, dy, mods))
				}
			}
			if ps.dragging {
				s.fire(s.dragEvent(EventDrag, x, y, x-ps.lastX, y-ps.lastY, mods))
			}
		}
		ps.lastX, ps.lastY = x, y

	default:
		// Hover move.
		if x != ps.lastX || y != ps.lastY {
			s.fire(&Event{Type: EventPointerMove, Target: target, GlobalX: x, GlobalY: y, Button: button, Modifiers: mods})
			ps.lastX, ps.lastY = x, y
		}
	}
}

func (s *Scene) dragEvent(typ EventType, x, y, dx, dy float64, mods KeyModifiers) *Event {
	ps := &s.pointer
	return &Event{
		Type: typ, Target: ps.hitNode,
		GlobalX: x, GlobalY: y,
		StartX: ps.startX, StartY: ps.startY,
		DeltaX: dx, DeltaY: dy,
		Button: ps.button, Modifiers: mods,
	}
}

func (s *Scene) detectDoubleClick(target *Node, x, y float64, mods KeyModifiers) {
	ps := &s.pointer
	if ps.lastClickNode == target && s.clock-ps.lastClickTime <= DoubleClickInterval {
		ps.lastClickNode = nil
		s.fire(&Event{Type: EventDoubleClick, Target: target, GlobalX: x, GlobalY: y, Button: ps.button, Modifiers: mods})
		return
	}
	ps.lastClickNode = target
	ps.lastClickTime = s.clock
}

// processWheel delivers a scroll event to the node under (x, y).
func (s *Scene) processWheel(x, y, wx, wy float64, mods KeyModifiers) {
	target := s.captured
	if target == nil {
		target = s.HitTest(x, y)
	}
	s.fire(&Event{Type: EventScroll, Target: target, GlobalX: x, GlobalY: y, WheelX: wx, WheelY: wy, Modifiers: mods})
}

// fire notifies scene observers, bubbles the event through the target's
// ancestors and forwards it to the EntityStore.
func (s *Scene) fire(e *Event) {
	if e.Target != nil {
		e.LocalX, e.LocalY = e.Target.ScreenToLocal(e.GlobalX, e.GlobalY)
	}
	s.handlers.notify(e)
	if e.Target == nil {
		return
	}
	dispatchEvent(e)
	s.emitInteractionEvent(e)
}

// --- ECS bridge ---

func (s *Scene) emitInteractionEvent(e *Event) {
	if s.store == nil || e.Target == nil || e.Target.EntityID == 0 {
		return
	}
	lx, ly := e.Target.ScreenToLocal(e.GlobalX, e.GlobalY)
	s.store.EmitEvent(InteractionEvent{
		Type:      e.Type,
		EntityID:  e.Target.EntityID,
		GlobalX:   e.GlobalX,
		GlobalY:   e.GlobalY,
		LocalX:    lx,
		LocalY:    ly,
		Button:    e.Button,
		Modifiers: e.Modifiers,
		StartX:    e.StartX,
		StartY:    e.StartY,
		DeltaX:    e.DeltaX,
		DeltaY:    e.DeltaY,
		WheelX:    e.WheelX,
		WheelY:    e.WheelY,
	})
}
