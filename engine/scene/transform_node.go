package scene

import (
	"github.com/Carmen-Shannon/oxy-graph/common"
)

// TransformNode composes an affine transform into the model matrix for the duration of its subtree.
// Every operation post-multiplies the stored matrix, so operations apply to geometry in reverse call order
// and reordering them changes the result.
type TransformNode interface {
	Node

	// LoadIdentity resets the stored transform.
	LoadIdentity()

	// Translate post-multiplies a translation.
	Translate(x, y, z float32)

	// Rotate post-multiplies a rotation of deg degrees about axis.
	Rotate(deg float32, axis common.Vector3)

	// RotateX post-multiplies a rotation of deg degrees about the x axis.
	RotateX(deg float32)

	// RotateY post-multiplies a rotation of deg degrees about the y axis.
	RotateY(deg float32)

	// RotateZ post-multiplies a rotation of deg degrees about the z axis.
	RotateZ(deg float32)

	// Scale post-multiplies a scale.
	Scale(x, y, z float32)

	// Matrix returns the stored composite transform.
	Matrix() common.Matrix4x4
}

type transformNode struct {
	baseNode
	composite common.Matrix4x4
}

var _ TransformNode = &transformNode{}

// NewTransformNode creates a transform node holding the identity.
//
// Parameters:
//   - options: functional options such as WithName and WithChildren
//
// Returns:
//   - TransformNode: the new node
func NewTransformNode(options ...NodeBuilderOption) TransformNode {
	n := &transformNode{composite: common.Identity4()}
	n.init(n, KindTransform, options)
	return n
}

func (n *transformNode) LoadIdentity() {
	n.composite.SetIdentity()
}

func (n *transformNode) Translate(x, y, z float32) {
	n.composite.Translate(x, y, z)
}

func (n *transformNode) Rotate(deg float32, axis common.Vector3) {
	n.composite.Rotate(deg, axis)
}

func (n *transformNode) RotateX(deg float32) {
	n.composite.RotateX(deg)
}

func (n *transformNode) RotateY(deg float32) {
	n.composite.RotateY(deg)
}

func (n *transformNode) RotateZ(deg float32) {
	n.composite.RotateZ(deg)
}

func (n *transformNode) Scale(x, y, z float32) {
	n.composite.Scale(x, y, z)
}

func (n *transformNode) Matrix() common.Matrix4x4 {
	return n.composite
}

// Traverse pushes the model matrix, applies the stored transform in the frame its ancestors established,
// publishes the derived matrices, draws the subtree and pops. The restored matrices are published again
// so later siblings draw with their own ancestors' transform. The deferred pop also runs if a descendant panics.
func (n *transformNode) Traverse(state *FrameState) {
	state.Stats.Nodes++
	state.PushTransform()
	defer func() {
		state.PopTransform()
		state.PublishTransforms()
	}()

	state.ModelMatrix = state.ModelMatrix.Mul(n.composite)
	state.PublishTransforms()

	n.traverseChildren(state)
}
