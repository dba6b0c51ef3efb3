package scene

import (
	"github.com/Carmen-Shannon/oxy-graph/common"
)

// PresentationNode scopes a color and an optional blend toggle to its subtree.
type PresentationNode interface {
	Node

	// Color returns the color published to the subtree.
	Color() common.Color4

	// SetColor changes the color published on the next traversal.
	SetColor(c common.Color4)

	// Blending reports whether the subtree is drawn with alpha blending.
	Blending() bool

	// SetBlending changes whether the subtree is drawn with alpha blending.
	SetBlending(enabled bool)
}

type presentationNode struct {
	baseNode
	color    common.Color4
	blending bool
}

var _ PresentationNode = &presentationNode{}

// NewColorNode creates a presentation node that publishes a color without touching blending.
//
// Parameters:
//   - color: the color for the subtree
//   - options: functional options such as WithName and WithChildren
//
// Returns:
//   - PresentationNode: the new node
func NewColorNode(color common.Color4, options ...NodeBuilderOption) PresentationNode {
	return NewColorBlendingNode(color, false, options...)
}

// NewColorBlendingNode creates a presentation node that publishes a color and, when blending is set,
// enables source-alpha blending for its subtree only.
//
// Parameters:
//   - color: the color for the subtree
//   - blending: whether to blend the subtree
//   - options: functional options such as WithName and WithChildren
//
// Returns:
//   - PresentationNode: the new node
func NewColorBlendingNode(color common.Color4, blending bool, options ...NodeBuilderOption) PresentationNode {
	n := &presentationNode{color: color, blending: blending}
	n.init(n, KindPresentation, options)
	return n
}

func (n *presentationNode) Color() common.Color4 {
	return n.color
}

func (n *presentationNode) SetColor(c common.Color4) {
	n.color = c
}

func (n *presentationNode) Blending() bool {
	return n.blending
}

func (n *presentationNode) SetBlending(enabled bool) {
	n.blending = enabled
}

// Traverse publishes the color, enables blending if this node turns it on, draws the subtree,
// then undoes both in reverse order. On exit the enclosing color, or DefaultColor at the top level,
// is published again so siblings never inherit this node's color.
// Nested blending nodes leave the device toggle to the outermost one.
func (n *presentationNode) Traverse(state *FrameState) {
	state.Stats.Nodes++

	prevColor, hadColor := state.Color, state.HasColor
	enabledHere := n.blending && !state.Blending

	if enabledHere {
		state.Device.EnableBlend()
		state.Blending = true
	}
	state.Color, state.HasColor = n.color, true
	state.PublishColor(n.color)

	defer func() {
		state.Color, state.HasColor = prevColor, hadColor
		state.PublishColor(prevColor)
		if enabledHere {
			state.Device.DisableBlend()
			state.Blending = false
		}
	}()

	n.traverseChildren(state)
}
