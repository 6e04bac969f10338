// Package ecs provides ECS adapters for dotgrid's grid events.
//
// The primary adapter is [NewDonburiStore], which bridges dotgrid events
// (push, shock, leave) into a [Donburi] world as typed events. Subscribe to
// [GridEventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	effect.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
