package orbita

import (
	"fmt"
	"math"
)

// Record is the persistent metadata needed to re-derive a projection's
// geometry at any size multiplier: the original parameters plus the flat
// local vertex layout captured at creation time. Records are created by
// ProjectImage, morphed in place on multiplier changes, and destroyed
// when the owning projector is disposed.
type Record struct {
	Mesh        *Mesh
	ImageURL    string
	TargetSize  float64 // radians, unmultiplied
	Position    LatLng
	Alignment   Vec2
	Rotation    Vec3
	AspectRatio float64

	// local is the original flat vertex layout in unit grid
	// coordinates. Morphs always scale from this basis, never from the
	// previous frame's result.
	local []Vec2
}

// Registry tracks every projected item's original parameters and live
// geometry so a global size-multiplier change is applied as an in-place
// morph instead of re-creating geometry. The registry exclusively owns
// its records; the scene holds the meshes only for rendering.
//
// Morph passes are not safe to run concurrently; the single-threaded
// cooperative model serializes them by construction.
type Registry struct {
	proj       *Projector
	records    []*Record
	multiplier float64
}

func newRegistry(p *Projector) *Registry {
	return &Registry{proj: p, multiplier: 1}
}

// SizeMultiplier returns the shared multiplier applied to all records.
func (g *Registry) SizeMultiplier() float64 { return g.multiplier }

// Len returns the number of tracked projections.
func (g *Registry) Len() int { return len(g.records) }

// Records returns the tracked records. The returned slice MUST NOT be
// mutated.
func (g *Registry) Records() []*Record { return g.records }

// SetSizeMultiplier changes the shared multiplier and morphs every
// tracked projection in place. Setting the current value again is a
// no-op; the morph pass is not free and never runs redundantly.
func (g *Registry) SetSizeMultiplier(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("orbita: size multiplier must be in (0, inf), got %v", v)
	}
	if v == g.multiplier {
		return nil
	}
	g.multiplier = v
	for _, rec := range g.records {
		g.proj.reproject(rec, v)
	}
	return nil
}

func (g *Registry) add(rec *Record) {
	g.records = append(g.records, rec)
}

// dispose releases all records and their geometry.
func (g *Registry) dispose() {
	for _, rec := range g.records {
		rec.Mesh.disposed = true
		rec.Mesh.Positions = nil
		rec.Mesh.Normals = nil
		rec.Mesh.UVs = nil
		rec.Mesh.Indices = nil
		rec.Mesh.verts = nil
		rec.Mesh.culled = nil
		rec.Mesh.depths = nil
		rec.Mesh.Texture = nil
		rec.local = nil
	}
	g.records = nil
}
