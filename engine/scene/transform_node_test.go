package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/device/recorder"
	"github.com/Carmen-Shannon/oxy-graph/engine/shader"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransform_StackBalancedOnDeepTree(t *testing.T) {
	rec := recorder.New()
	sn := newShader(t, rec, shader.FlatColor)

	var parent Node = sn
	for range 64 {
		tn := NewTransformNode()
		tn.Translate(0.1, 0, 0)
		parent.AddChild(tn)
		parent = tn
	}
	parent.AddChild(newSquare(t, rec, sn, "leaf"))

	state := traverse(t, rec, sn, common.Identity4())
	assert.Equal(t, 64, state.Stats.MaxDepth)
	assert.Equal(t, 1, state.Stats.DrawCalls)

	model, ok := rec.Draws()[0].Matrix(sn.Handles().Get(shader.SlotModelMatrix))
	require.True(t, ok)
	assert.InDelta(t, 6.4, model.At(0, 3), 1e-4)
}

func TestTransform_StackBalancedOnWideTree(t *testing.T) {
	rec := recorder.New()
	sn := newShader(t, rec, shader.FlatColor)
	for i := range 32 {
		tn := NewTransformNode()
		tn.Translate(float32(i), 0, 0)
		tn.AddChild(newSquare(t, rec, sn, ""))
		sn.AddChild(tn)
	}

	state := traverse(t, rec, sn, common.Identity4())
	assert.Equal(t, 1, state.Stats.MaxDepth)
	require.Len(t, rec.Draws(), 32)

	loc := sn.Handles().Get(shader.SlotModelMatrix)
	for i, d := range rec.Draws() {
		model, ok := d.Matrix(loc)
		require.True(t, ok)
		assert.InDelta(t, float32(i), model.At(0, 3), 1e-6, "sibling %d saw another sibling's transform", i)
	}
}

func TestTransform_OrderMatters(t *testing.T) {
	rec := recorder.New()
	sn := newShader(t, rec, shader.FlatColor)

	translateFirst := NewTransformNode()
	translateFirst.Translate(1, 0, 0)
	translateFirst.RotateZ(90)
	translateFirst.AddChild(newSquare(t, rec, sn, "tr"))

	rotateFirst := NewTransformNode()
	rotateFirst.RotateZ(90)
	rotateFirst.Translate(1, 0, 0)
	rotateFirst.AddChild(newSquare(t, rec, sn, "rt"))

	sn.AddChild(translateFirst)
	sn.AddChild(rotateFirst)
	traverse(t, rec, sn, common.Identity4())

	draws := rec.Draws()
	require.Len(t, draws, 2)
	loc := sn.Handles().Get(shader.SlotModelMatrix)
	m0, _ := draws[0].Matrix(loc)
	m1, _ := draws[1].Matrix(loc)

	p0 := m0.TransformPoint(common.Point3{X: 1})
	assert.InDelta(t, 1, p0.X, 1e-5)
	assert.InDelta(t, 1, p0.Y, 1e-5)

	p1 := m1.TransformPoint(common.Point3{X: 1})
	assert.InDelta(t, 0, p1.X, 1e-5)
	assert.InDelta(t, 2, p1.Y, 1e-5)
}

func TestTransform_NormalMatrixUnderNonUniformScale(t *testing.T) {
	rec := recorder.New()
	sn := newShader(t, rec, shader.Lit)
	sq, err := NewUnitSquareNode(rec, sn.Handles())
	require.NoError(t, err)

	tn := NewTransformNode()
	tn.Translate(1, 2, 3)
	tn.Scale(2, 1, 0.5)
	tn.RotateX(30)
	tn.RotateZ(45)
	tn.AddChild(sq)
	sn.AddChild(tn)

	pv := common.Perspective(70, 1, 1, 200).Mul(common.LookAt(common.Point3{Y: -90, Z: 50}, common.Point3{Z: 50}, common.Vector3{Z: 1}))
	traverse(t, rec, sn, pv)

	expected := mgl32.Translate3D(1, 2, 3).
		Mul4(mgl32.Scale3D(2, 1, 0.5)).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(30))).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(45)))
	expectedNormal := expected.Mat3().Inv().Transpose().Mat4()

	draws := rec.Draws()
	require.Len(t, draws, 1)
	h := sn.Handles()

	model, ok := draws[0].Matrix(h.Get(shader.SlotModelMatrix))
	require.True(t, ok)
	assert.True(t, model.ApproxEqual(common.NewMatrix4x4(expected), 1e-5))

	normal, ok := draws[0].Matrix(h.Get(shader.SlotNormalMatrix))
	require.True(t, ok)
	assert.True(t, normal.ApproxEqual(common.NewMatrix4x4(expectedNormal), 1e-4))

	pvm, ok := draws[0].Matrix(h.Get(shader.SlotPVM))
	require.True(t, ok)
	assert.True(t, pvm.ApproxEqual(pv.Mul(common.NewMatrix4x4(expected)), 1e-3))

	// A transformed tangent stays perpendicular to the transformed normal.
	tangent := model.TransformVector(common.Vector3{X: 1, Y: 1})
	n := normal.TransformVector(common.Vector3{Z: 1})
	assert.InDelta(t, 0, tangent.Dot(n), 1e-4)
}

func TestTransform_LoadIdentity(t *testing.T) {
	tn := NewTransformNode()
	tn.Translate(3, 4, 5)
	tn.Scale(2, 2, 2)
	tn.LoadIdentity()
	assert.True(t, tn.Matrix().ApproxEqual(common.Identity4(), 1e-6))
}

func TestTransform_SiblingsRestorePublishedModel(t *testing.T) {
	rec := recorder.New()
	sn := newShader(t, rec, shader.FlatColor)

	moved := NewTransformNode()
	moved.Translate(5, 5, 0)
	moved.AddChild(newSquare(t, rec, sn, "moved"))
	sn.AddChild(moved)
	sn.AddChild(newSquare(t, rec, sn, "origin"))

	traverse(t, rec, sn, common.Identity4())
	draws := rec.Draws()
	require.Len(t, draws, 2)

	model, ok := draws[1].Matrix(sn.Handles().Get(shader.SlotModelMatrix))
	require.True(t, ok)
	assert.True(t, model.ApproxEqual(common.Identity4(), 1e-6))
}
