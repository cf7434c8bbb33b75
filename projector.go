package orbita

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// defaultSegments is the grid resolution used when the caller passes 0:
// each projected image becomes a (segments+1)² vertex grid.
const defaultSegments = 16

// maxSurfaceOffset is the largest outward normal offset applied to a
// projection, in sphere-radius units. Images sharing nearly the same
// location get distinct offsets so they do not z-fight.
const maxSurfaceOffset = 0.01

// Mesh is a projected image's live geometry: a curved vertex grid lying
// on (or just above) the sphere surface. Positions and Normals are
// rewritten in place by morph passes; UVs, Indices, and Texture are
// fixed at creation.
type Mesh struct {
	Positions []Vec3
	Normals   []Vec3
	UVs       []Vec2
	Indices   []uint16
	Texture   *ebiten.Image

	// Render-pass scratch buffers, reused every frame.
	verts  []ebiten.Vertex
	culled []uint16
	depths []float64

	disposed bool
}

// IsDisposed reports whether the mesh has been released.
func (m *Mesh) IsDisposed() bool { return m.disposed }

// Projector converts flat image rectangles into curved meshes on a
// sphere of fixed radius, and re-curves them later under a different
// size multiplier without discarding the original flat layout.
type Projector struct {
	radius   float64
	segments int
	registry *Registry
}

// NewProjector creates a projector for a sphere of the given radius.
// segments controls grid resolution; 0 means the default.
func NewProjector(radius float64, segments int) (*Projector, error) {
	if math.IsNaN(radius) || radius <= 0 {
		return nil, fmt.Errorf("orbita: sphere radius must be > 0, got %v", radius)
	}
	if segments < 0 {
		return nil, fmt.Errorf("orbita: segments must be >= 0, got %d", segments)
	}
	if segments == 0 {
		segments = defaultSegments
	}
	p := &Projector{radius: radius, segments: segments}
	p.registry = newRegistry(p)
	return p, nil
}

// Radius returns the sphere radius.
func (p *Projector) Radius() float64 { return p.radius }

// Registry returns the projection registry owning all records created by
// this projector.
func (p *Projector) Registry() *Registry { return p.registry }

// SetSizeMultiplier sets the shared size multiplier, morphing every
// tracked projection in place. See Registry.SetSizeMultiplier.
func (p *Projector) SetSizeMultiplier(v float64) error {
	return p.registry.SetSizeMultiplier(v)
}

// SizeMultiplier returns the current shared size multiplier.
func (p *Projector) SizeMultiplier() float64 {
	return p.registry.SizeMultiplier()
}

// ProjectImage wraps a flat rectangle textured with texture onto the
// sphere and registers the result for later morphing.
//
// targetSize is the image's height coverage in radians (0 collapses the
// grid to the anchor point, which is valid). pos is the anchor in
// degrees. alignment components are in [-1, 1]: -1 pins the anchor to
// one edge, 0 centers it, +1 pins the opposite edge. rotation is applied
// around the anchor's tangent frame, in radians.
//
// texture may be nil for headless use; the aspect ratio is then 1.
func (p *Projector) ProjectImage(texture *ebiten.Image, imageURL string, targetSize float64, pos LatLng, alignment Vec2, rotation Vec3) (*Mesh, error) {
	if math.IsNaN(targetSize) || targetSize < 0 {
		return nil, fmt.Errorf("orbita: target size must be >= 0, got %v", targetSize)
	}
	if alignment.X < -1 || alignment.X > 1 || alignment.Y < -1 || alignment.Y > 1 {
		return nil, fmt.Errorf("orbita: alignment must be in [-1,1], got (%v, %v)", alignment.X, alignment.Y)
	}
	if math.IsNaN(pos.Lat) || math.IsNaN(pos.Lng) {
		return nil, fmt.Errorf("orbita: position must be finite, got (%v, %v)", pos.Lat, pos.Lng)
	}

	aspect := 1.0
	if texture != nil {
		b := texture.Bounds()
		if b.Dy() > 0 {
			aspect = float64(b.Dx()) / float64(b.Dy())
		}
	}

	seg := p.segments
	count := (seg + 1) * (seg + 1)
	mesh := &Mesh{
		Positions: make([]Vec3, count),
		Normals:   make([]Vec3, count),
		UVs:       make([]Vec2, count),
		Indices:   make([]uint16, 0, seg*seg*6),
		Texture:   texture,
	}
	rec := &Record{
		Mesh:        mesh,
		ImageURL:    imageURL,
		TargetSize:  targetSize,
		Position:    pos,
		Alignment:   alignment,
		Rotation:    rotation,
		AspectRatio: aspect,
		local:       make([]Vec2, count),
	}

	// Flat local layout: unit grid coordinates in [-0.5, 0.5], stored
	// once and reused by every subsequent morph so repeated multiplier
	// changes always recompute from the same basis.
	for j := 0; j <= seg; j++ {
		for i := 0; i <= seg; i++ {
			idx := j*(seg+1) + i
			u := float64(i) / float64(seg)
			v := float64(j) / float64(seg)
			rec.local[idx] = Vec2{X: u - 0.5, Y: 0.5 - v}
			mesh.UVs[idx] = Vec2{X: u, Y: v}
		}
	}
	for j := 0; j < seg; j++ {
		for i := 0; i < seg; i++ {
			a := uint16(j*(seg+1) + i)
			b := a + 1
			c := a + uint16(seg) + 1
			d := c + 1
			mesh.Indices = append(mesh.Indices, a, c, b, b, c, d)
		}
	}

	p.reproject(rec, p.registry.SizeMultiplier())
	p.registry.add(rec)
	return mesh, nil
}

// ProjectOptions configures batch projection.
type ProjectOptions struct {
	// TargetSize is the per-image height coverage in radians. 0 uses a
	// size derived from the image count so the sphere is evenly covered.
	TargetSize float64
	// Distribution tunes the latitude-band placement.
	Distribution DistributionOptions
	// Rotation is applied to every image's tangent frame.
	Rotation Vec3
}

// ProjectImagesSpherically distributes the given textures evenly over
// the sphere via the distribution planner and projects each one. A nil
// texture slot yields a nil mesh slot and an entry in the returned
// error; sibling projections still complete.
func (p *Projector) ProjectImagesSpherically(textures []*ebiten.Image, urls []string, opts ProjectOptions) ([]*Mesh, error) {
	if len(urls) != len(textures) {
		return nil, fmt.Errorf("orbita: got %d textures but %d urls", len(textures), len(urls))
	}
	n := len(textures)
	if n == 0 {
		return nil, nil
	}
	size := opts.TargetSize
	if size == 0 {
		// Larger sets get smaller images; tuned for visual coverage.
		size = 2.4 / math.Sqrt(float64(n))
	}

	placements := PlanDistribution(n, opts.Distribution)
	meshes := make([]*Mesh, n)
	var firstErr error
	failed := 0
	for i, tex := range textures {
		if tex == nil {
			failed++
			if firstErr == nil {
				firstErr = fmt.Errorf("orbita: texture %d (%q) is nil", i, urls[i])
			}
			debugLogf("skipping image %d (%q): no texture", i, urls[i])
			continue
		}
		mesh, err := p.ProjectImage(tex, urls[i], size, placements[i].LatLng(), Vec2{}, opts.Rotation)
		if err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
			debugLogf("skipping image %d (%q): %v", i, urls[i], err)
			continue
		}
		meshes[i] = mesh
	}
	if firstErr != nil {
		return meshes, fmt.Errorf("orbita: %d of %d projections failed: %w", failed, n, firstErr)
	}
	return meshes, nil
}

// Dispose releases every registered projection. Meshes created by this
// projector must not be rendered afterwards.
func (p *Projector) Dispose() {
	p.registry.dispose()
}

// reproject rewrites rec's mesh vertices for the given multiplier,
// always starting from the stored flat local coordinates. Applying m
// then 1/m therefore restores the original positions exactly.
func (p *Projector) reproject(rec *Record, multiplier float64) {
	r := p.radius
	phi := degToRad(90 - rec.Position.Lat)
	theta := degToRad(rec.Position.Lng + 180)

	// Effective footprint in angular units, then arc length.
	width := rec.TargetSize * rec.AspectRatio * multiplier
	height := rec.TargetSize * multiplier
	arcW := width * r
	arcH := height * r

	// Tangent frame at the anchor, for the per-image rotation.
	up := sphericalDir(phi, theta)
	east := Vec3{0, 1, 0}.Cross(up).Normalize()
	if east.Length() == 0 {
		east = Vec3{1, 0, 0} // anchor at a pole
	}
	north := up.Cross(east)

	offset := surfaceOffset(rec.Position, rec.ImageURL)
	scaleOut := 1 + offset

	rot := rec.Rotation
	for idx, lc := range rec.local {
		// Alignment shifts the rectangle relative to the anchor: -1
		// pins the anchor to one edge, +1 to the opposite edge.
		x := (lc.X - rec.Alignment.X*0.5) * arcW
		y := (lc.Y - rec.Alignment.Y*0.5) * arcH

		// Local angular offsets. Latitude bends by arc/radius; the
		// longitude step widens toward the poles by the sin factor.
		dphi := -y / r
		sinBand := math.Sin(phi + dphi)
		if math.Abs(sinBand) < 1e-6 {
			if sinBand < 0 {
				sinBand = -1e-6
			} else {
				sinBand = 1e-6
			}
		}
		dtheta := x / (r * sinBand)

		pt := sphericalDir(phi+dphi, theta+dtheta).Mul(r)
		if rot != (Vec3{}) {
			pt = pt.rotateAround(east, rot.X).
				rotateAround(north, rot.Y).
				rotateAround(up, rot.Z)
		}
		rec.Mesh.Positions[idx] = pt.Mul(scaleOut)
	}

	recomputeNormals(rec.Mesh)
}

// sphericalDir converts spherical angles to a unit direction.
func sphericalDir(phi, theta float64) Vec3 {
	sinPhi, cosPhi := math.Sincos(phi)
	sinTheta, cosTheta := math.Sincos(theta)
	return Vec3{
		X: -sinPhi * cosTheta,
		Y: cosPhi,
		Z: sinPhi * sinTheta,
	}
}

// surfaceOffset is the deterministic anti-z-fighting offset for a
// projection, in sphere-radius units, in [0, maxSurfaceOffset]. It mixes
// the integer-scaled coordinates with a character-sum hash of the image
// identifier, so the same (lat, lng, url) triple yields the same offset
// across re-projections and across process restarts.
func surfaceOffset(pos LatLng, imageURL string) float64 {
	h := int64(math.Round(pos.Lat * 1000))
	h = h*31 + int64(math.Round(pos.Lng*1000))
	var sum int64
	for _, c := range imageURL {
		sum += int64(c)
	}
	h = h*31 + sum
	if h < 0 {
		h = -h
	}
	return float64(h%1024) / 1023 * maxSurfaceOffset
}

// recomputeNormals rebuilds per-vertex normals by accumulating face
// normals. Degenerate vertices (zero-area neighborhoods, e.g. a
// collapsed zero-size grid) fall back to the radial direction.
func recomputeNormals(m *Mesh) {
	for i := range m.Normals {
		m.Normals[i] = Vec3{}
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		ab := m.Positions[b].Sub(m.Positions[a])
		ac := m.Positions[c].Sub(m.Positions[a])
		fn := ab.Cross(ac)
		m.Normals[a] = m.Normals[a].Add(fn)
		m.Normals[b] = m.Normals[b].Add(fn)
		m.Normals[c] = m.Normals[c].Add(fn)
	}
	for i := range m.Normals {
		if m.Normals[i].Length() == 0 {
			m.Normals[i] = m.Positions[i].Normalize()
			continue
		}
		n := m.Normals[i].Normalize()
		// Keep normals outward regardless of triangle winding.
		if n.Dot(m.Positions[i]) < 0 {
			n = n.Mul(-1)
		}
		m.Normals[i] = n
	}
}
