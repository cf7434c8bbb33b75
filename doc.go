// Package orbita renders a rotating image globe for [Ebitengine].
//
// Orbita projects a set of flat images onto the surface of a sphere and
// drives viewport-aware animation sequences over the result: queued
// parameter tweens (scale, position, rotation, image size, spin speed),
// breakpoint-dependent timing, and in-place geometry morphing when the
// global image size changes.
//
// # Quick start
//
// Load a responsive configuration, create a [Globe], project images, and
// drive it from your game loop:
//
//	cfg, err := orbita.LoadConfig(configYAML)
//	if err != nil { ... }
//	globe, err := orbita.New(cfg, orbita.Options{
//		ViewportWidth:  1280,
//		ViewportHeight: 720,
//	})
//	if err != nil { ... }
//	results := orbita.LoadTextures(os.DirFS("assets"), paths, 512)
//	if _, err := globe.ProjectImages(results, orbita.ProjectOptions{}); err != nil { ... }
//
//	type Game struct{ globe *orbita.Globe }
//
//	func (g *Game) Update() error        { g.globe.Update(1.0 / float64(ebiten.TPS())); return nil }
//	func (g *Game) Draw(s *ebiten.Image) { g.globe.Draw(s) }
//
// # Animation queue
//
// The [Engine] executes a strictly sequential FIFO of [Step] values. Each
// step interpolates only the properties named in its [Delta]; everything
// else keeps its current value. Steps may reference a named keyframe
// timing, which overrides their explicit duration/delay/easing while
// responsive mode is enabled. Interpolation runs on [gween] tweens using
// easing curves resolved by name from the fixed table in this package.
//
// # Breakpoints
//
// A [BreakpointResolver] maps viewport width to a named tier. Width
// changes are debounced over a 150 ms quiet window; a confirmed change
// stops the current sequence and, after a short settle delay, starts the
// sequence registered for the new tier.
//
// # Projection and morphing
//
// [Projector.ProjectImage] wraps a flat rectangle onto the sphere as a
// curved vertex grid. The original flat layout of every projection is
// retained, so a later change to the shared size multiplier re-curves all
// existing meshes in place instead of rebuilding them, and a multiplier
// round-trip restores the original vertices exactly.
//
// Orbita is single-threaded and cooperative: all mutation happens inside
// Update on the game loop goroutine. The only concurrency is inside the
// bounded texture decode pool in [LoadTextures].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package orbita
