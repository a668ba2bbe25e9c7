// Package ecs provides ECS adapters for canopy.
package ecs

import (
	"github.com/phanxgames/canopy"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for canopy interaction events.
// Subscribe to this in your ECS systems to receive pointer, drag, and scroll events.
var InteractionEventType = events.NewEventType[canopy.InteractionEvent]()

// StateEventType is the Donburi event type for lock and pause transitions.
// One event is published per edge of the aggregate, never per holder.
var StateEventType = events.NewEventType[canopy.StateEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Events are published to InteractionEventType and StateEventType and can be
// consumed with Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) canopy.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event canopy.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

func (s *donburiStore) EmitState(event canopy.StateEvent) {
	StateEventType.Publish(s.world, event)
}
