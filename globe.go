package orbita

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// defaultRadius is the sphere radius used when neither Options nor the
// initial breakpoint settings provide one.
const defaultRadius = 6.0

// Options configures a Globe at creation time.
type Options struct {
	// ViewportWidth/Height are the initial viewport size in pixels.
	ViewportWidth  float64
	ViewportHeight float64

	// Radius overrides the sphere radius (0 defers to the initial
	// breakpoint's globe settings, then to the default).
	Radius float64

	// Segments is the projection grid resolution (0 = default).
	Segments int

	// DisableResponsive turns off keyframe-table timing resolution;
	// steps then always use their explicit duration/delay/easing.
	DisableResponsive bool
}

// Globe is the explicit handle tying the engine, resolver, projector,
// registry, and renderer together. It is returned from New and owns the
// whole lifecycle; there is no ambient global state.
type Globe struct {
	cfg       *Config
	transform *Transform
	projector *Projector
	engine    *Engine
	resolver  *BreakpointResolver
	renderer  *Renderer

	imageScale    *Cell
	rotationSpeed *Cell

	disposed bool
}

// New builds a Globe from a responsive configuration. All sequences and
// keyframes are validated here; a bad easing name or negative timing
// fails construction rather than surfacing mid-animation.
func New(cfg *Config, opts Options) (*Globe, error) {
	if cfg == nil {
		return nil, fmt.Errorf("orbita: nil config")
	}

	resolver, err := NewBreakpointResolver(cfg.Breakpoints, opts.ViewportWidth)
	if err != nil {
		return nil, err
	}
	initial := cfg.SettingsFor(resolver.Current())

	radius := opts.Radius
	if radius == 0 {
		radius = initial.Globe.Radius
	}
	if radius == 0 {
		radius = defaultRadius
	}
	segments := opts.Segments
	if segments == 0 {
		segments = initial.Globe.Segments
	}
	projector, err := NewProjector(radius, segments)
	if err != nil {
		return nil, err
	}

	g := &Globe{
		cfg:       cfg,
		transform: NewTransform(),
		projector: projector,
		resolver:  resolver,
	}
	g.imageScale = NewCell(1, func(v float64) {
		// Validated at enqueue/settings time; a failure here means a
		// direct Set with a bad value, which the cell caller checks.
		if err := projector.SetSizeMultiplier(v); err != nil {
			debugLogf("size multiplier rejected: %v", err)
		}
	})
	g.rotationSpeed = NewCell(initial.Globe.RotationSpeed, nil)

	g.engine = NewEngine(g.transform, g.imageScale, g.rotationSpeed, cfg.Keyframes)
	g.engine.SetResponsiveMode(!opts.DisableResponsive)
	for name, steps := range cfg.Sequences {
		converted := make([]Step, len(steps))
		for i, sc := range steps {
			converted[i] = sc.Step()
		}
		if err := g.engine.RegisterSequence(name, converted); err != nil {
			return nil, err
		}
	}

	g.renderer = NewRenderer(Camera{}, opts.ViewportWidth, opts.ViewportHeight)
	g.applySettings(resolver.Current())
	resolver.OnChange = func(newBp, oldBp string) {
		g.applySettings(newBp)
		g.engine.OnBreakpointChange(newBp, oldBp)
	}

	// Kick off the initial breakpoint's sequence (after the usual
	// settle delay), mirroring what a confirmed resize would do.
	g.engine.OnBreakpointChange(resolver.Current(), "")

	return g, nil
}

// applySettings pushes a breakpoint's camera/globe overrides into the
// live scene. Particle settings are carried for the consumer only.
func (g *Globe) applySettings(name string) {
	s := g.cfg.SettingsFor(name)
	if s.Camera.Distance > 0 {
		g.renderer.Camera.Position = Vec3{Z: s.Camera.Distance}
	} else if g.renderer.Camera.Position == (Vec3{}) {
		g.renderer.Camera.Position = Vec3{Z: g.projector.Radius() * 3}
	}
	if s.Camera.FOV > 0 {
		g.renderer.Camera.FOV = s.Camera.FOV
	}
	if s.Globe.RotationSpeed != 0 {
		g.rotationSpeed.Set(s.Globe.RotationSpeed)
	}
	if s.Globe.ImageScale > 0 {
		g.imageScale.Set(s.Globe.ImageScale)
	}
}

// Update advances the globe by dt seconds: resolver debounce, animation
// queue, and the continuous spin. Call once per frame.
func (g *Globe) Update(dt float64) {
	if g.disposed {
		return
	}
	g.resolver.Update(dt)
	g.engine.Update(dt)
	// The y axis spins continuously and belongs to no queued step.
	g.transform.Rotation.Y += g.rotationSpeed.Get() * dt
}

// Draw renders all projected images through the globe transform.
func (g *Globe) Draw(screen *ebiten.Image) {
	if g.disposed {
		return
	}
	g.renderer.Draw(screen, g.transform, g.projector.Radius(), g.projector.Registry().Records())
}

// SetViewportSize reports a viewport change. The height takes effect
// immediately; the width flows through the breakpoint debounce.
func (g *Globe) SetViewportSize(width, height float64) {
	g.renderer.SetViewport(width, height)
	g.resolver.SetViewportWidth(width)
}

// ProjectImages distributes loaded textures over the sphere. Failed
// loader items are skipped without aborting the batch; the returned
// error, if any, wraps the first failure.
func (g *Globe) ProjectImages(results []TextureResult, opts ProjectOptions) ([]*Mesh, error) {
	textures, urls := SplitResults(results)
	return g.projector.ProjectImagesSpherically(textures, urls, opts)
}

// CurrentBreakpoint returns the active breakpoint name.
func (g *Globe) CurrentBreakpoint() string { return g.resolver.Current() }

// KeyframeTiming resolves a named timing triple from the configuration.
func (g *Globe) KeyframeTiming(name string) (KeyframeTiming, bool) {
	return g.cfg.Keyframes.Lookup(name)
}

// ParticleSettings returns the active breakpoint's particle overrides
// for the consumer's particle-orbit layer.
func (g *Globe) ParticleSettings() ParticleSettings {
	return g.cfg.SettingsFor(g.resolver.Current()).Particles
}

// Engine returns the animation queue engine.
func (g *Globe) Engine() *Engine { return g.engine }

// Projector returns the spherical projector.
func (g *Globe) Projector() *Projector { return g.projector }

// Resolver returns the breakpoint resolver.
func (g *Globe) Resolver() *BreakpointResolver { return g.resolver }

// Transform returns the shared animated transform.
func (g *Globe) Transform() *Transform { return g.transform }

// Renderer returns the render pass, exposing the camera.
func (g *Globe) Renderer() *Renderer { return g.renderer }

// SetSizeMultiplier sets the shared image size multiplier directly,
// morphing all projections in place.
func (g *Globe) SetSizeMultiplier(v float64) error {
	return g.projector.SetSizeMultiplier(v)
}

// SizeMultiplier returns the shared image size multiplier.
func (g *Globe) SizeMultiplier() float64 { return g.projector.SizeMultiplier() }

// Dispose releases all projections and queued animation state. The
// globe must not be used afterwards.
func (g *Globe) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	g.engine.Dispose()
	g.projector.Dispose()
}
