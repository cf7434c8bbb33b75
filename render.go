package orbita

import (
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// Camera is the read-only view the renderer projects through. Orbita
// never mutates it; the consumer (or per-breakpoint settings) positions
// it. The camera always looks at the world origin with +Y up.
type Camera struct {
	Position Vec3
	// FOV is the vertical field of view in degrees. 0 means 50.
	FOV float64
}

// nearPlane is the minimum view-space depth; triangles entirely closer
// than this are dropped.
const nearPlane = 0.1

// Renderer perspective-projects projected-image meshes through the globe
// transform into screen space and submits them with DrawTriangles,
// painter-sorted back to front. Per-mesh scratch buffers are reused, so
// a steady frame allocates almost nothing.
type Renderer struct {
	Camera Camera

	width  float64
	height float64

	order  []*Record // per-frame draw order scratch
	depths []float64 // parallel to order
}

// NewRenderer creates a renderer for the given viewport size in pixels.
func NewRenderer(cam Camera, width, height float64) *Renderer {
	return &Renderer{Camera: cam, width: width, height: height}
}

// SetViewport updates the projection for a new viewport size.
func (r *Renderer) SetViewport(width, height float64) {
	r.width = width
	r.height = height
}

// viewBasis returns the camera's right/up/forward axes.
func (r *Renderer) viewBasis() (right, up, forward Vec3) {
	forward = r.Camera.Position.Mul(-1).Normalize()
	if forward.Length() == 0 {
		forward = Vec3{0, 0, -1} // camera at origin; arbitrary but stable
	}
	right = forward.Cross(Vec3{0, 1, 0}).Normalize()
	if right.Length() == 0 {
		right = Vec3{1, 0, 0} // looking straight along Y
	}
	up = right.Cross(forward)
	return right, up, forward
}

// Draw projects every record's mesh through the globe transform and
// draws it to screen. Behind-camera and back-facing triangles are
// culled; meshes are painter-sorted by view depth; vertex colors carry a
// depth gradient so the far side of the globe reads darker.
func (r *Renderer) Draw(screen *ebiten.Image, t *Transform, radius float64, records []*Record) {
	if r.width <= 0 || r.height <= 0 || len(records) == 0 {
		return
	}

	fov := r.Camera.FOV
	if fov == 0 {
		fov = 50
	}
	focal := (r.height / 2) / math.Tan(degToRad(fov)/2)
	cx, cy := r.width/2, r.height/2
	right, up, forward := r.viewBasis()

	// Depth-gradient range: the globe's nearest and farthest surface.
	extent := radius * maxAbsScale(t)
	centerZ := t.Position.Sub(r.Camera.Position).Dot(forward)
	nearZ := centerZ - extent
	farZ := centerZ + extent

	r.order = r.order[:0]
	r.depths = r.depths[:0]
	for _, rec := range records {
		m := rec.Mesh
		if m.disposed || m.Texture == nil || len(m.Positions) == 0 {
			continue
		}
		center := worldPoint(meshCentroid(m), t)
		r.order = append(r.order, rec)
		r.depths = append(r.depths, center.Sub(r.Camera.Position).Dot(forward))
	}
	sort.Sort(&byDepthDesc{order: r.order, depths: r.depths})

	for _, rec := range r.order {
		m := rec.Mesh
		b := m.Texture.Bounds()
		tw, th := float32(b.Dx()), float32(b.Dy())

		if cap(m.verts) < len(m.Positions) {
			m.verts = make([]ebiten.Vertex, len(m.Positions))
		}
		m.verts = m.verts[:len(m.Positions)]
		if cap(m.depths) < len(m.Positions) {
			m.depths = make([]float64, len(m.Positions))
		}
		m.depths = m.depths[:len(m.Positions)]

		for i, p := range m.Positions {
			w := worldPoint(p, t)
			rel := w.Sub(r.Camera.Position)
			z := rel.Dot(forward)
			m.depths[i] = z
			var sx, sy float64
			if z > nearPlane {
				sx = cx + focal*rel.Dot(right)/z
				sy = cy - focal*rel.Dot(up)/z
			}
			shade := depthShade(z, nearZ, farZ)
			m.verts[i] = ebiten.Vertex{
				DstX:   float32(sx),
				DstY:   float32(sy),
				SrcX:   float32(m.UVs[i].X) * tw,
				SrcY:   float32(m.UVs[i].Y) * th,
				ColorR: shade,
				ColorG: shade,
				ColorB: shade,
				ColorA: 1,
			}
		}

		m.culled = m.culled[:0]
		for i := 0; i+2 < len(m.Indices); i += 3 {
			ia, ib, ic := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
			if m.depths[ia] <= nearPlane && m.depths[ib] <= nearPlane && m.depths[ic] <= nearPlane {
				continue
			}
			// Back-face test against the stored outward normal.
			n := rotatePoint(m.Normals[ia], t.Rotation)
			wa := worldPoint(m.Positions[ia], t)
			if n.Dot(r.Camera.Position.Sub(wa)) <= 0 {
				continue
			}
			m.culled = append(m.culled, ia, ib, ic)
		}
		if len(m.culled) == 0 {
			continue
		}

		screen.DrawTriangles(m.verts, m.culled, m.Texture, &ebiten.DrawTrianglesOptions{})
	}
}

// byDepthDesc sorts records farthest-first, keeping the parallel depth
// slice in step.
type byDepthDesc struct {
	order  []*Record
	depths []float64
}

func (s *byDepthDesc) Len() int           { return len(s.order) }
func (s *byDepthDesc) Less(i, j int) bool { return s.depths[i] > s.depths[j] }
func (s *byDepthDesc) Swap(i, j int) {
	s.order[i], s.order[j] = s.order[j], s.order[i]
	s.depths[i], s.depths[j] = s.depths[j], s.depths[i]
}

// worldPoint applies the globe transform to a local mesh point:
// component scale, extrinsic XYZ rotation, then translation.
func worldPoint(p Vec3, t *Transform) Vec3 {
	p = Vec3{p.X * t.Scale.X, p.Y * t.Scale.Y, p.Z * t.Scale.Z}
	p = rotatePoint(p, t.Rotation)
	return p.Add(t.Position)
}

// rotatePoint applies extrinsic XYZ Euler rotation.
func rotatePoint(p Vec3, rot Vec3) Vec3 {
	if rot.X != 0 {
		p = p.rotateAround(Vec3{1, 0, 0}, rot.X)
	}
	if rot.Y != 0 {
		p = p.rotateAround(Vec3{0, 1, 0}, rot.Y)
	}
	if rot.Z != 0 {
		p = p.rotateAround(Vec3{0, 0, 1}, rot.Z)
	}
	return p
}

// meshCentroid averages a mesh's local positions.
func meshCentroid(m *Mesh) Vec3 {
	var c Vec3
	for _, p := range m.Positions {
		c = c.Add(p)
	}
	return c.Mul(1 / float64(len(m.Positions)))
}

// maxAbsScale returns the largest scale component magnitude.
func maxAbsScale(t *Transform) float64 {
	s := math.Max(math.Abs(t.Scale.X), math.Max(math.Abs(t.Scale.Y), math.Abs(t.Scale.Z)))
	if s == 0 {
		return 1
	}
	return s
}

// depthShade maps view depth to a brightness factor in [0.35, 1].
func depthShade(z, nearZ, farZ float64) float32 {
	if farZ <= nearZ {
		return 1
	}
	f := (z - nearZ) / (farZ - nearZ)
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return float32(1 - 0.65*f)
}
