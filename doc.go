// Package canopy is a retained-mode UI toolkit for [Ebitengine] games:
// anchored rect layout, fading overlays, draggable windows and the
// bookkeeping a host needs to pause or lock itself while UI is up.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene := canopy.NewScene(640, 480)
//	w := scene.NewWindow("Inventory", 240, 180)
//	w.Add(canopy.NewPanel("slot", canopy.Color{R: 0.3, G: 0.6, B: 1, A: 1}))
//	w.Show()
//	canopy.Run(scene, canopy.RunConfig{Title: "demo", Width: 640, Height: 480})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly, or [Scene.Tick] with your own
// frame time.
//
// # Nodes and rects
//
// Every UI element is a [Node]. A node's rect is resolved from its parent's
// rect through an [Anchor] (one of nine reference points), a [Fill] mode
// (which axes stretch to the parent), an explicit size and a position
// offset. Coordinates are in screen pixels with Y growing downward.
//
//	panel := canopy.NewPanel("hud", canopy.Color{A: 0.5})
//	panel.SetAnchor(canopy.AnchorTopRight)
//	panel.SetSize(200, 60)
//	scene.Root().Add(panel)
//
// SetFill reads the anchor current at the time of the call, so set the
// anchor first.
//
// [Node.SetLayout] stacks a node's children vertically or horizontally.
// Children stretched by Fill share the remaining space; others keep their
// size. [Node.SetFitContent] sizes the node to its children.
//
// # Events
//
// Handlers registered with [Node.On] receive pointer events for the node
// and its descendants. Returning true consumes the event; otherwise it keeps
// bubbling to the parent. [Scene.On] observes every event before any node.
// A panicking handler is logged and skipped.
//
// # Overlays and windows
//
// An [Overlay] lives on its own stacking surface above the scene root and
// fades in and out with [Overlay.Show] and [Overlay.Hide]. A [Window] adds
// a title bar, scrolling content, a resize grip, fullscreen toggling and
// click-to-focus. Stacking order is kept by the scene's [OverlayRegistry].
//
// # Animation
//
// [Timer], [Ease] and [EaseGroup] are advanced once per frame by the
// scene's [Animator]. Ease curves are [gween] easing functions.
//
// # Pause and lock
//
// [LockHandler] and [PauseHandler] fold any number of holders into a
// single flag the host polls each frame, with edge callbacks when the flag
// changes. Overlays with AutoPause hold a [PauseHandle] while shown.
//
// # ECS integration
//
// [Scene.SetEntityStore] forwards interaction events and pause/lock edges to
// an ECS. The canopy/ecs module provides a [Donburi] adapter.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package canopy
