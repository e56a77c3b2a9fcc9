// Package catalog is a handle-indexed hierarchical object catalog with an
// [Ebitengine] widget layer on top.
//
// # Handles and packed stores
//
// A [Store] is a structure-of-arrays table: each attribute is a typed
// [Column] registered at construction, and all columns hold their rows in the
// same dense order. Rows are named by a [Handle], which keeps resolving to the
// same logical row while inserts and removes shift rows around. Handles carry
// a generation, so a handle to a removed row fails with [ErrInvalidHandle]
// instead of aliasing whatever reuses its slot.
//
//	store := catalog.NewStore(catalog.Config{Capacity: 256})
//	names := catalog.NewColumn[string](store)
//	h, _ := store.Add()
//	names.Set(h, "first")
//
// # Spatial catalog
//
// [Spatial] keeps a tree of rectangles in one store, in depth-first
// pre-order: every node's descendants sit in the rows right after it. First
// and last child are read off that layout and the sibling links.
//
//	sp := catalog.NewSpatial(catalog.Config{})
//	root, _ := sp.Add(catalog.InvalidHandle, catalog.Vec2{}, catalog.Vec2{X: 100, Y: 100})
//	child, _ := sp.Add(root, catalog.Vec2{X: 10, Y: 10}, catalog.Vec2{X: 20, Y: 20})
//	sp.Update()
//	wp, _ := sp.WorldPosition(child) // (10, 10)
//
// World positions and z order are derived. They are recomputed by
// [Spatial.Update] only, so call it after a batch of changes and before
// reading them. Every node owns a contiguous z band holding its subtree;
// siblings get disjoint bands in sibling order.
//
// Catalogs are not safe for concurrent use.
//
// # Scenes
//
// [Scene] adds color, hit testing, focus and per-frame event flags keyed by
// the same handles, paints widgets in z order, and can forward interaction
// events to an ECS through [EntityStore] (see the ecs package).
//
//	scene := catalog.NewScene(catalog.Config{})
//	btn, _ := scene.AddWidget(catalog.InvalidHandle, catalog.Vec2{X: 40, Y: 40},
//		catalog.Vec2{X: 120, Y: 40}, catalog.Color{R: 0.3, G: 0.7, B: 1, A: 1})
//	catalog.Run(scene, catalog.RunConfig{Title: "Buttons", Width: 640, Height: 480})
//
// [Ebitengine]: https://ebitengine.org
package catalog
