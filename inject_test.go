package canopy

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInjectPressQueues(t *testing.T) {
	s := NewScene(800, 600)
	s.InjectPress(100, 200)

	if s.PendingInjections() != 1 {
		t.Fatalf("queue length = %d, want 1", s.PendingInjections())
	}
	ev := s.injectQueue[0]
	if ev.kind != syntheticPointer || ev.x != 100 || ev.y != 200 || !ev.pressed || ev.button != MouseButtonLeft {
		t.Errorf("unexpected event: %+v", ev)
	}
}

func TestInjectClickQueuesTwo(t *testing.T) {
	s := NewScene(800, 600)
	s.InjectClick(50, 60)

	if s.PendingInjections() != 2 {
		t.Fatalf("queue length = %d, want 2", s.PendingInjections())
	}
	if !s.injectQueue[0].pressed || s.injectQueue[1].pressed {
		t.Error("click should queue a press then a release")
	}
}

func TestInjectDragInterpolates(t *testing.T) {
	s := NewScene(800, 600)
	s.InjectDrag(0, 0, 100, 50, 6)

	var xs, ys []float64
	for _, ev := range s.injectQueue {
		xs = append(xs, ev.x)
		ys = append(ys, ev.y)
	}
	if diff := cmp.Diff([]float64{0, 20, 40, 60, 80, 100}, xs, approx); diff != "" {
		t.Errorf("x (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0, 10, 20, 30, 40, 50}, ys, approx); diff != "" {
		t.Errorf("y (-want +got):\n%s", diff)
	}
	last := s.injectQueue[len(s.injectQueue)-1]
	if last.pressed {
		t.Error("drag should end with a release")
	}
}

func TestInjectDragMinimumFrames(t *testing.T) {
	s := NewScene(800, 600)
	s.InjectDrag(0, 0, 10, 10, 0)
	if s.PendingInjections() != 2 {
		t.Errorf("queue length = %d, want 2", s.PendingInjections())
	}
}

func TestInjectWheel(t *testing.T) {
	s := NewScene(800, 600)
	box := newBox("box", 0, 0, 100, 100)
	s.Root().Add(box)
	var dy float64
	box.On(EventScroll, func(e *Event) bool { dy = e.WheelY; return true })

	s.InjectWheel(10, 10, 0, 2)
	s.Tick(frame)
	if dy != 2 {
		t.Errorf("WheelY = %v, want 2", dy)
	}
}

func TestInjectConsumesOnePerFrame(t *testing.T) {
	s := NewScene(800, 600)
	s.InjectClick(10, 10)
	s.Tick(frame)
	if s.PendingInjections() != 1 {
		t.Errorf("after one frame: %d pending, want 1", s.PendingInjections())
	}
	s.Tick(frame)
	if s.PendingInjections() != 0 {
		t.Errorf("after two frames: %d pending, want 0", s.PendingInjections())
	}
}

func TestInjectModifiersAttachToQueuedEvents(t *testing.T) {
	s := NewScene(800, 600)
	box := newBox("box", 0, 0, 100, 100)
	s.Root().Add(box)
	var mods []KeyModifiers
	box.On(EventPointerDown, func(e *Event) bool { mods = append(mods, e.Modifiers); return true })

	s.SetInjectModifiers(ModAlt)
	s.InjectPress(10, 10)
	s.SetInjectModifiers(0)
	s.InjectRelease(10, 10)
	s.InjectPress(10, 10)

	for i := 0; i < 3; i++ {
		s.Tick(frame)
	}
	if diff := cmp.Diff([]KeyModifiers{ModAlt, 0}, mods); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestInjectClickEndToEnd(t *testing.T) {
	s := NewScene(800, 600)
	box := newBox("box", 0, 0, 100, 100)
	s.Root().Add(box)
	clicks := 0
	box.On(EventClick, func(*Event) bool { clicks++; return true })

	s.InjectClick(50, 50)
	s.Tick(frame)
	if clicks != 0 {
		t.Fatal("click should not fire on the press frame")
	}
	s.Tick(frame)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestInjectDragEndToEnd(t *testing.T) {
	s := NewScene(800, 600)
	box := newBox("box", 0, 0, 100, 100)
	s.Root().Add(box)
	var got []string
	for _, ev := range []EventType{EventDragStart, EventDrag, EventDragEnd} {
		box.On(ev, func(e *Event) bool { got = append(got, e.Type.String()); return true })
	}

	s.InjectDrag(10, 10, 90, 10, 4)
	for i := 0; i < 4; i++ {
		s.Tick(frame)
	}
	want := []string{"DragStart", "Drag", "Drag", "DragEnd"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
