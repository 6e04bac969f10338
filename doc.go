// Package dotgrid renders an interactive grid of dots that reacts to pointer
// motion and clicks with spring-like physics. It is meant as a decorative
// background layer for [Ebitengine] games and tools, and also renders
// headlessly through a software canvas.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a window and hosts
// the effect for you:
//
//	cfg := dotgrid.Config{BaseColor: "#3a2e23", ActiveColor: "#ff7b54", DotSize: 5, Gap: 44}
//	if err := dotgrid.Run(cfg, dotgrid.RunConfig{Title: "Dots", Width: 800, Height: 600}); err != nil {
//		log.Fatal(err)
//	}
//
// For full control, create a [Game] with [NewGame] and pass it to
// ebiten.RunGame, or mount an [Effect] on any [Surface] and call
// [Effect.Update] and [Effect.Draw] yourself.
//
// # How it works
//
// The grid is rebuilt from the container size on every [Effect.Resize].
// Dots at rest are not drawn. A fast pointer pushes the dots around it and
// a click sends a radial shock; each pushed dot is thrown by an
// [InertiaSolver] (or a gween tween once the solver has failed) and then
// settles back with an elastic ease. Dots near the pointer blend from the
// base color toward the active color.
//
// When UI elements float above the grid, attach a [Document] with
// [WithDocument]: the pointer is treated as absent while an opaque element
// covers it. [Page] and [Layer] provide a ready-made element tree.
//
// # Logging
//
// dotgrid logs through log/slog and is silent by default; see [SetLogger].
//
// [Ebitengine]: https://ebitengine.org
package dotgrid
