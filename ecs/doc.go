// Package ecs provides ECS adapters for canopy's event system.
//
// The primary adapter is [NewDonburiStore], which bridges canopy interaction
// events (pointer, click, drag, scroll) and pause/lock transitions into a
// [Donburi] world as typed events. Subscribe to [InteractionEventType] and
// [StateEventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
