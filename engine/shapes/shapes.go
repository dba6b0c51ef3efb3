// Package shapes generates CPU-side vertex data for the built-in geometry nodes.
package shapes

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/chewxy/math32"
)

// MinSides is the fewest sides a regular polygon can have.
const MinSides = 3

// NGonSpec describes a regular polygon.
type NGonSpec struct {
	Center common.Point2
	Sides  int
	Radius float32
}

// Fan is a triangle fan outlining a regular polygon: the center, one vertex per side starting
// at angle 0 and turning counter-clockwise, and a closing copy of the first perimeter vertex.
type Fan struct {
	Vertices []common.Point2
}

// Perimeter returns the polygon's corners without the center and the closing vertex.
func (f Fan) Perimeter() []common.Point2 {
	if len(f.Vertices) < 2 {
		return nil
	}
	out := make([]common.Point2, len(f.Vertices)-2)
	copy(out, f.Vertices[1:len(f.Vertices)-1])
	return out
}

// NGon builds the triangle fan for a regular polygon.
//
// Parameters:
//   - spec: center, side count and circumradius
//
// Returns:
//   - Fan: sides+2 vertices
//   - error: error if the polygon has fewer than MinSides sides or a non-positive radius
func NGon(spec NGonSpec) (Fan, error) {
	if spec.Sides < MinSides {
		return Fan{}, fmt.Errorf("n-gon needs at least %d sides, got %d", MinSides, spec.Sides)
	}
	if spec.Radius <= 0 {
		return Fan{}, fmt.Errorf("n-gon radius must be positive, got %g", spec.Radius)
	}

	verts := make([]common.Point2, 0, spec.Sides+2)
	verts = append(verts, spec.Center)

	da := 2 * math32.Pi / float32(spec.Sides)
	for i := range spec.Sides {
		angle := da * float32(i)
		verts = append(verts, common.Point2{
			X: spec.Center.X + spec.Radius*math32.Cos(angle),
			Y: spec.Center.Y + spec.Radius*math32.Sin(angle),
		})
	}
	verts = append(verts, common.Point2{X: spec.Center.X + spec.Radius, Y: spec.Center.Y})

	return Fan{Vertices: verts}, nil
}

// UnitSquare returns a unit square centered on the origin in the z=0 plane as a four-vertex
// triangle strip (bottom left, bottom right, top left, top right) with every normal facing +Z.
func UnitSquare() []common.VertexAndNormal {
	n := common.Vector3{X: 0, Y: 0, Z: 1}
	return []common.VertexAndNormal{
		{Vertex: common.Point3{X: -0.5, Y: -0.5}, Normal: n},
		{Vertex: common.Point3{X: 0.5, Y: -0.5}, Normal: n},
		{Vertex: common.Point3{X: -0.5, Y: 0.5}, Normal: n},
		{Vertex: common.Point3{X: 0.5, Y: 0.5}, Normal: n},
	}
}
