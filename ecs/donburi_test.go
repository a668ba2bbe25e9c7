package ecs

import (
	"testing"

	"github.com/phanxgames/canopy"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []canopy.InteractionEvent
	InteractionEventType.Subscribe(world, func(w donburi.World, e canopy.InteractionEvent) {
		received = append(received, e)
	})

	store.EmitEvent(canopy.InteractionEvent{
		Type:     canopy.EventPointerDown,
		EntityID: 42,
		GlobalX:  100,
		GlobalY:  200,
		Button:   canopy.MouseButtonLeft,
	})

	store.EmitEvent(canopy.InteractionEvent{
		Type:   canopy.EventScroll,
		WheelY: -1,
	})

	// Events are queued until processed.
	InteractionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}

	e0 := received[0]
	if e0.Type != canopy.EventPointerDown || e0.EntityID != 42 {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.GlobalX != 100 || e0.GlobalY != 200 {
		t.Errorf("event 0 position: (%v,%v)", e0.GlobalX, e0.GlobalY)
	}

	e1 := received[1]
	if e1.Type != canopy.EventScroll || e1.WheelY != -1 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiStore_EmitState(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []canopy.StateEvent
	StateEventType.Subscribe(world, func(w donburi.World, e canopy.StateEvent) {
		received = append(received, e)
	})

	store.EmitState(canopy.StateEvent{Kind: canopy.StatePaused, Active: true})
	StateEventType.ProcessEvents(world)

	if len(received) != 1 || received[0].Kind != canopy.StatePaused || !received[0].Active {
		t.Fatalf("received %+v", received)
	}
}

func TestDonburiStore_ImplementsEntityStore(t *testing.T) {
	world := donburi.NewWorld()
	var store canopy.EntityStore = NewDonburiStore(world)
	_ = store // compile-time interface check
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	InteractionEventType.Subscribe(world, func(w donburi.World, e canopy.InteractionEvent) {
		count1++
	})
	InteractionEventType.Subscribe(world, func(w donburi.World, e canopy.InteractionEvent) {
		count2++
	})

	store.EmitEvent(canopy.InteractionEvent{Type: canopy.EventClick})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestDonburiStore_SceneBridge(t *testing.T) {
	world := donburi.NewWorld()
	scene := canopy.NewScene(400, 300)
	scene.SetEntityStore(NewDonburiStore(world))

	btn := canopy.NewPanel("button", canopy.ColorWhite)
	btn.Interactable = true
	btn.EntityID = 7
	scene.Root().Add(btn)

	var clicks []uint32
	InteractionEventType.Subscribe(world, func(w donburi.World, e canopy.InteractionEvent) {
		if e.Type == canopy.EventClick {
			clicks = append(clicks, e.EntityID)
		}
	})
	var states []canopy.StateEvent
	StateEventType.Subscribe(world, func(w donburi.World, e canopy.StateEvent) {
		states = append(states, e)
	})

	// The default 100x100 middle-anchored node covers the viewport center.
	scene.InjectClick(200, 150)
	scene.Tick(1.0 / 60)
	scene.Tick(1.0 / 60)

	h := scene.Pauses().Acquire("menu")
	scene.Tick(1.0 / 60)
	h.Close()
	scene.Tick(1.0 / 60)

	events.ProcessAllEvents(world)

	if len(clicks) != 1 || clicks[0] != 7 {
		t.Errorf("clicks = %v, want [7]", clicks)
	}
	want := []canopy.StateEvent{
		{Kind: canopy.StatePaused, Active: true},
		{Kind: canopy.StatePaused, Active: false},
	}
	if len(states) != len(want) {
		t.Fatalf("states = %+v, want %+v", states, want)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Errorf("state %d = %+v, want %+v", i, states[i], want[i])
		}
	}
}
