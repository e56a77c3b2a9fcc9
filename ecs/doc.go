// Package ecs provides ECS adapters for catalog scene interaction events.
//
// The primary adapter is [NewDonburiStore], which bridges scene interaction
// events (press, release, click, focus, blur, enter, leave) into a [Donburi]
// world as typed events. Subscribe to [InteractionEventType] in your ECS
// systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
