package ecs

import (
	"github.com/phanxgames/catalog"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for scene interaction events.
var InteractionEventType = events.NewEventType[catalog.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) catalog.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event catalog.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}
