package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertPoint(t *testing.T, want, got Point3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-5)
	assert.InDelta(t, want.Y, got.Y, 1e-5)
	assert.InDelta(t, want.Z, got.Z, 1e-5)
}

func TestMatrix_PostMultiplyOrder(t *testing.T) {
	// Translate then scale: the scale applies to the point first.
	m := Identity4()
	m.Translate(10, 0, 0)
	m.Scale(2, 2, 2)
	assertPoint(t, Point3{X: 12, Y: 2, Z: 2}, m.TransformPoint(Point3{X: 1, Y: 1, Z: 1}))

	n := Identity4()
	n.Scale(2, 2, 2)
	n.Translate(10, 0, 0)
	assertPoint(t, Point3{X: 22, Y: 2, Z: 2}, n.TransformPoint(Point3{X: 1, Y: 1, Z: 1}))
}

func TestMatrix_Rotations(t *testing.T) {
	m := Identity4()
	m.RotateZ(90)
	assertPoint(t, Point3{Y: 1}, m.TransformPoint(Point3{X: 1}))

	m.SetIdentity()
	m.RotateX(90)
	assertPoint(t, Point3{Z: 1}, m.TransformPoint(Point3{Y: 1}))

	m.SetIdentity()
	m.RotateY(90)
	assertPoint(t, Point3{X: 1}, m.TransformPoint(Point3{Z: 1}))

	axis := Identity4()
	axis.Rotate(90, Vector3{Z: 5})
	assert.True(t, axis.ApproxEqual(func() Matrix4x4 { r := Identity4(); r.RotateZ(90); return r }(), 1e-6))

	zero := Identity4()
	zero.Rotate(45, Vector3{})
	assert.Equal(t, Identity4(), zero)
}

func TestMatrix_MulMatchesSequentialCalls(t *testing.T) {
	a := Identity4()
	a.Translate(1, 2, 3)
	b := Identity4()
	b.RotateZ(30)
	b.Scale(2, 1, 1)

	seq := Identity4()
	seq.Translate(1, 2, 3)
	seq.RotateZ(30)
	seq.Scale(2, 1, 1)

	assert.True(t, a.Mul(b).ApproxEqual(seq, 1e-6))
}

func TestMatrix_Inverse(t *testing.T) {
	m := Identity4()
	m.Translate(3, -2, 5)
	m.RotateY(40)
	inv, ok := m.Inverse()
	require.True(t, ok)
	assert.True(t, m.Mul(inv).ApproxEqual(Identity4(), 1e-5))

	var singular Matrix4x4
	_, ok = singular.Inverse()
	assert.False(t, ok)
}

func TestMatrix_NormalMatrix(t *testing.T) {
	m := Identity4()
	m.RotateZ(30)
	m.Scale(4, 1, 1)

	nm, ok := m.NormalMatrix()
	require.True(t, ok)
	want := m.Mat4().Mat3().Inv().Transpose().Mat4()
	assert.True(t, nm.ApproxEqual(NewMatrix4x4(want), 1e-6))
	assert.Equal(t, float32(1), nm.At(3, 3))

	flat := Identity4()
	flat.Scale(1, 1, 0)
	_, ok = flat.NormalMatrix()
	assert.False(t, ok)
}

func TestMatrix_TransformVectorIgnoresTranslation(t *testing.T) {
	m := Identity4()
	m.Translate(100, 100, 100)
	m.Scale(2, 3, 4)
	v := m.TransformVector(Vector3{X: 1, Y: 1, Z: 1})
	assert.Equal(t, Vector3{X: 2, Y: 3, Z: 4}, v)
}

func TestOrtho2D_MapsWindowToClipSpace(t *testing.T) {
	o := Ortho2D(-5, 5, -5, 5)
	assertPoint(t, Point3{X: 1, Y: 1}, o.TransformPoint(Point3{X: 5, Y: 5}))
	assertPoint(t, Point3{X: -0.5, Y: 0.2}, o.TransformPoint(Point3{X: -2.5, Y: 1}))

	inv, ok := o.Inverse()
	require.True(t, ok)
	assertPoint(t, Point3{X: -5, Y: 5}, inv.TransformPoint(Point3{X: -1, Y: 1}))
}

func TestPerspectiveAndLookAt(t *testing.T) {
	eye := Point3{Y: -10}
	view := LookAt(eye, Point3{}, Vector3{Z: 1})
	assertPoint(t, Point3{Z: -10}, view.TransformPoint(Point3{}))

	pv := Perspective(90, 1, 1, 100).Mul(view)
	center := pv.TransformPoint(Point3{})
	assert.InDelta(t, 0, center.X, 1e-5)
	assert.InDelta(t, 0, center.Y, 1e-5)
	assert.Greater(t, center.Z, float32(-1))
	assert.Less(t, center.Z, float32(1))

	want := mgl32.Perspective(mgl32.DegToRad(90), 1, 1, 100)
	assert.True(t, Perspective(90, 1, 1, 100).ApproxEqual(NewMatrix4x4(want), 1e-6))
}

func TestSliceAndStructToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes([]Point2{}))

	pts := []Point2{{X: 1, Y: 2}, {X: 3, Y: 4}}
	assert.Len(t, SliceToBytes(pts), 16)

	v := VertexAndNormal{Vertex: Point3{X: 1}, Normal: Vector3{Z: 1}}
	assert.Len(t, StructToBytes(&v), 24)
}
