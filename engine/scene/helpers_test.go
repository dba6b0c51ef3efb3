package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/device/recorder"
	"github.com/Carmen-Shannon/oxy-graph/engine/shader"
	"github.com/Carmen-Shannon/oxy-graph/engine/shapes"
	"github.com/stretchr/testify/require"
)

var (
	red   = common.Color4{R: 1, A: 1}
	green = common.Color4{G: 1, A: 1}
	blue  = common.Color4{B: 1, A: 1}
)

func newShader(t *testing.T, rec *recorder.Recorder, src shader.Source) ShaderNode {
	t.Helper()
	sn, err := NewShaderNodeFromSource(rec, src)
	require.NoError(t, err)
	return sn
}

func newSquare(t *testing.T, rec *recorder.Recorder, sn ShaderNode, name string) NGonNode {
	t.Helper()
	n, err := NewRegularNGonNode(rec, sn.Handles(), shapes.NGonSpec{Sides: 4, Radius: 1}, WithName(name))
	require.NoError(t, err)
	return n
}

// traverse runs one traversal against a fresh frame state and checks it was restored.
func traverse(t *testing.T, rec *recorder.Recorder, root Node, pv common.Matrix4x4) *FrameState {
	t.Helper()
	state := NewFrameState(rec)
	state.ProjectionView = pv
	root.Traverse(state)
	require.Equal(t, 0, state.Depth())
	require.False(t, state.Blending)
	require.True(t, state.ModelMatrix.ApproxEqual(common.Identity4(), 1e-6))
	return state
}

// leakyNode deliberately breaks the traversal contract.
type leakyNode struct {
	baseNode
	pushes int
	blend  bool
}

func newLeakyNode(pushes int, blend bool) *leakyNode {
	n := &leakyNode{pushes: pushes, blend: blend}
	n.init(n, KindScene, []NodeBuilderOption{WithName("leaky")})
	return n
}

func (n *leakyNode) Traverse(state *FrameState) {
	state.Stats.Nodes++
	for range n.pushes {
		state.PushTransform()
	}
	if n.blend {
		state.Device.EnableBlend()
		state.Blending = true
	}
}
