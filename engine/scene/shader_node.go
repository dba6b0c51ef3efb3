package scene

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-graph/engine/device"
	"github.com/Carmen-Shannon/oxy-graph/engine/shader"
)

// ShaderNode activates a program for its subtree and publishes the program's handle table.
// It does not restore the previous table on exit: descendants always read the table of the
// nearest shader node above them.
type ShaderNode interface {
	Node

	// Program returns the owned program.
	Program() shader.Program

	// Handles returns the program's resolved handle table.
	Handles() shader.HandleTable
}

type shaderNode struct {
	baseNode
	program shader.Program
}

var _ ShaderNode = &shaderNode{}

// NewShaderNode creates a shader node that takes ownership of a compiled program.
// Panics if program is nil.
//
// Parameters:
//   - program: the compiled program with resolved handles
//   - options: functional options such as WithName and WithChildren
//
// Returns:
//   - ShaderNode: the new node
func NewShaderNode(program shader.Program, options ...NodeBuilderOption) ShaderNode {
	if program == nil {
		panic("scene: NewShaderNode requires a non-nil program")
	}
	n := &shaderNode{program: program}
	n.name = program.Name()
	n.init(n, KindShader, options)
	return n
}

// NewShaderNodeFromSource compiles a built-in source and wraps it in a shader node.
// Resolution failures abort construction and leave nothing allocated on the device.
//
// Parameters:
//   - dev: the device to compile on
//   - src: the program source and bindings
//   - options: functional options such as WithName and WithChildren
//
// Returns:
//   - ShaderNode: the new node
//   - error: wraps shader.ErrCompile or shader.ErrHandleResolution
func NewShaderNodeFromSource(dev device.Device, src shader.Source, options ...NodeBuilderOption) (ShaderNode, error) {
	program, err := shader.NewProgram(dev, shader.WithSource(src))
	if err != nil {
		return nil, fmt.Errorf("failed to build shader node %q: %w", src.Name, err)
	}
	return NewShaderNode(program, options...), nil
}

func (n *shaderNode) Program() shader.Program {
	return n.program
}

func (n *shaderNode) Handles() shader.HandleTable {
	return n.program.Handles()
}

// Traverse binds the program, publishes its handles, uploads the projection-view matrix and the
// current transform and color state, then draws the subtree.
func (n *shaderNode) Traverse(state *FrameState) {
	state.Stats.Nodes++

	n.program.Use()
	state.Handles = n.program.Handles()

	if h := state.Handles.Get(shader.SlotProjectionView); h.Valid() {
		state.Device.UniformMatrix4(h, state.ProjectionView)
	}
	state.PublishTransforms()
	state.PublishColor(state.Color)

	n.traverseChildren(state)
}

func (n *shaderNode) release() {
	n.program.Release()
}
