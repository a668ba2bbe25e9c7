package canopy

type syntheticKind uint8

const (
	syntheticPointer syntheticKind = iota
	syntheticWheel
)

// syntheticEvent is one queued frame of injected input. Screen coordinates
// are used, identical to real mouse input.
type syntheticEvent struct {
	kind    syntheticKind
	x, y    float64
	pressed bool
	button  MouseButton
	wheelX  float64
	wheelY  float64
	mods    KeyModifiers
}

// SetInjectModifiers sets the modifier keys held during subsequently queued
// synthetic events, on top of whatever the InputSource reports.
func (s *Scene) SetInjectModifiers(mods KeyModifiers) {
	s.injectMods = mods
}

func (s *Scene) inject(ev syntheticEvent) {
	ev.mods = s.injectMods
	s.injectQueue = append(s.injectQueue, ev)
}

// InjectPress queues a pointer press at the given screen coordinates (left
// button). The event is consumed on the next frame's input pass.
func (s *Scene) InjectPress(x, y float64) {
	s.inject(syntheticEvent{kind: syntheticPointer, x: x, y: y, pressed: true, button: MouseButtonLeft})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (s *Scene) InjectMove(x, y float64) {
	s.inject(syntheticEvent{kind: syntheticPointer, x: x, y: y, pressed: true, button: MouseButtonLeft})
}

// InjectHover queues a pointer move with no button held.
func (s *Scene) InjectHover(x, y float64) {
	s.inject(syntheticEvent{kind: syntheticPointer, x: x, y: y, button: MouseButtonLeft})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.inject(syntheticEvent{kind: syntheticPointer, x: x, y: y, button: MouseButtonLeft})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same screen coordinates. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release), which is a click if the two
// points fall within the drag dead zone.
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		s.InjectMove(x, y)
	}
	s.InjectRelease(toX, toY)
}

// InjectWheel queues a wheel movement over the given screen coordinates.
func (s *Scene) InjectWheel(x, y, dx, dy float64) {
	s.inject(syntheticEvent{kind: syntheticWheel, x: x, y: y, wheelX: dx, wheelY: dy})
}

// PendingInjections returns the number of queued synthetic events.
func (s *Scene) PendingInjections() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the pointer or wheel path. Returns true if an event was consumed
// (device pointer input is skipped for the frame).
func (s *Scene) processInjectedInput(mods KeyModifiers) bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	mods |= evt.mods
	switch evt.kind {
	case syntheticWheel:
		s.processWheel(evt.x, evt.y, evt.wheelX, evt.wheelY, mods)
	default:
		s.processPointer(evt.x, evt.y, evt.pressed, evt.button, mods)
	}
	return true
}
