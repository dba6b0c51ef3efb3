// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types: points, vectors, segments, colors and the vertex records uploaded to GPU buffers.
package common

import "github.com/chewxy/math32"

// Epsilon is the tolerance used for approximate float comparisons.
const Epsilon = 1.0e-5

// Point2 is a 2D position. Its memory layout is two packed float32 values so a []Point2
// can be uploaded directly as vertex data.
type Point2 struct {
	X, Y float32
}

// Point3 is a 3D position laid out as three packed float32 values.
type Point3 struct {
	X, Y, Z float32
}

// Vector3 is a 3D direction laid out as three packed float32 values.
type Vector3 struct {
	X, Y, Z float32
}

// Color4 is an RGBA color with components in [0, 1].
type Color4 struct {
	R, G, B, A float32
}

// Array returns the color as a 4-component array for vec4 uniform uploads.
func (c Color4) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

// Segment2 is a 2D line segment from A to B.
type Segment2 struct {
	A, B Point2
}

// PositionAndColor is the interleaved vertex record used by shaded lines: a 2D position
// followed by an RGBA color.
type PositionAndColor struct {
	Position Point2
	Color    Color4
}

// VertexAndNormal is the interleaved vertex record used by lit surfaces: a 3D position
// followed by its surface normal.
type VertexAndNormal struct {
	Vertex Point3
	Normal Vector3
}

// Add returns p translated by v.
func (p Point2) Add(v Point2) Point2 {
	return Point2{X: p.X + v.X, Y: p.Y + v.Y}
}

// Equal reports whether p and q are within Epsilon of each other on both axes.
func (p Point2) Equal(q Point2) bool {
	return math32.Abs(p.X-q.X) < Epsilon && math32.Abs(p.Y-q.Y) < Epsilon
}

// Sub returns the vector from q to p.
func (p Point3) Sub(q Point3) Vector3 {
	return Vector3{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// Add returns p translated by v.
func (p Point3) Add(v Vector3) Point3 {
	return Point3{X: p.X + v.X, Y: p.Y + v.Y, Z: p.Z + v.Z}
}

// Dot returns the dot product of v and w.
func (v Vector3) Dot(w Vector3) float32 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the cross product v × w.
func (v Vector3) Cross(w Vector3) Vector3 {
	return Vector3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Scale returns v multiplied by s.
func (v Vector3) Scale(s float32) Vector3 {
	return Vector3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Norm returns the Euclidean length of v.
func (v Vector3) Norm() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length, or v unchanged if it has zero length.
func (v Vector3) Normalize() Vector3 {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

// Length returns the length of the segment.
func (s Segment2) Length() float32 {
	dx := s.B.X - s.A.X
	dy := s.B.Y - s.A.Y
	return math32.Hypot(dx, dy)
}

// Midpoint returns the point halfway between A and B.
func (s Segment2) Midpoint() Point2 {
	return Point2{X: (s.A.X + s.B.X) * 0.5, Y: (s.A.Y + s.B.Y) * 0.5}
}
