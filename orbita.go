package orbita

import "math"

// Vec2 is a 2D vector used for alignments, texture coordinates, and flat
// local mesh coordinates.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a 3D vector used for positions, scales, rotations, and normals.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Mul returns v scaled by s.
func (v Vec3) Mul(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product of v and o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

// rotateAround rotates v around the unit axis by angle radians (Rodrigues).
func (v Vec3) rotateAround(axis Vec3, angle float64) Vec3 {
	if angle == 0 {
		return v
	}
	sin, cos := math.Sincos(angle)
	return v.Mul(cos).
		Add(axis.Cross(v).Mul(sin)).
		Add(axis.Mul(axis.Dot(v) * (1 - cos)))
}

// LatLng is a geographic position on the sphere, in degrees.
// Latitude is positive north, longitude positive east.
type LatLng struct {
	Lat, Lng float64
}

// Transform is the shared mutable target the animation engine writes to.
// The consumer reads it every frame to place the globe; the engine owns
// writes to Scale, Position, and Rotation.X/Z. Rotation.Y belongs to the
// continuous spin and is never written by queued steps.
type Transform struct {
	Scale    Vec3
	Position Vec3
	Rotation Vec3
}

// NewTransform returns a Transform with identity scale.
func NewTransform() *Transform {
	return &Transform{Scale: Vec3{1, 1, 1}}
}

// degToRad converts degrees to radians.
func degToRad(d float64) float64 { return d * math.Pi / 180 }
