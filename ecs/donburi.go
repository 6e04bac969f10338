// Package ecs provides ECS adapters for dotgrid.
package ecs

import (
	"github.com/phanxgames/dotgrid"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GridEventType is the Donburi event type for dotgrid events.
// Subscribe to this in your ECS systems to react to pushes and shocks.
var GridEventType = events.NewEventType[dotgrid.GridEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Grid events are published to GridEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) dotgrid.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event dotgrid.GridEvent) {
	GridEventType.Publish(s.world, event)
}
