package scene

import (
	"fmt"
	"slices"
)

// NodeKind identifies the variant of a scene node.
type NodeKind int

const (
	KindScene NodeKind = iota
	KindTransform
	KindPresentation
	KindShader
	KindGeometry
)

func (k NodeKind) String() string {
	switch k {
	case KindScene:
		return "scene"
	case KindTransform:
		return "transform"
	case KindPresentation:
		return "presentation"
	case KindShader:
		return "shader"
	case KindGeometry:
		return "geometry"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Node is one vertex of the scene tree. Every variant dispatches through Traverse, which must leave
// the FrameState exactly as it found it. Nodes own their children exclusively; the set of variants is
// closed to this package.
type Node interface {
	// Kind returns the node variant.
	Kind() NodeKind

	// Name returns the node's display name, empty if none was given.
	Name() string

	// Traverse draws the node and its subtree against the frame state.
	//
	// Parameters:
	//   - state: the shared frame state, restored on return
	Traverse(state *FrameState)

	// AddChild appends a child to the end of the child list and takes ownership of it.
	// Panics if the child is nil, is this node or one of its ancestors, or already has a parent.
	//
	// Parameters:
	//   - child: the node to attach
	AddChild(child Node)

	// Children returns the child list in traversal order.
	Children() []Node

	// Parent returns the owning node, or nil for a root.
	Parent() Node

	// Destroy detaches the node from its parent and releases the GPU resources of its whole subtree.
	// Subsequent calls are no-ops.
	Destroy()

	node() *baseNode
	release()
}

// baseNode holds the state every variant shares: identity, ownership edges and the child list.
type baseNode struct {
	self      Node
	kind      NodeKind
	name      string
	parent    Node
	children  []Node
	destroyed bool
}

// init wires the embedded base to its outer node and applies options.
func (b *baseNode) init(self Node, kind NodeKind, options []NodeBuilderOption) {
	b.self = self
	b.kind = kind
	for _, opt := range options {
		opt(b)
	}
}

func (b *baseNode) node() *baseNode {
	return b
}

func (b *baseNode) Kind() NodeKind {
	return b.kind
}

func (b *baseNode) Name() string {
	return b.name
}

func (b *baseNode) Parent() Node {
	return b.parent
}

func (b *baseNode) Children() []Node {
	out := make([]Node, len(b.children))
	copy(out, b.children)
	return out
}

func (b *baseNode) AddChild(child Node) {
	if child == nil {
		panic(fmt.Sprintf("scene: nil child added to %s", describe(b.self)))
	}
	cb := child.node()
	for n := b.self; n != nil; n = n.Parent() {
		if n == child {
			panic(fmt.Sprintf("scene: adding %s under %s would create a cycle", describe(child), describe(b.self)))
		}
	}
	if cb.parent != nil {
		panic(fmt.Sprintf("scene: %s already has parent %s", describe(child), describe(cb.parent)))
	}
	if cb.destroyed || b.destroyed {
		panic(fmt.Sprintf("scene: cannot attach %s to %s after destruction", describe(child), describe(b.self)))
	}
	cb.parent = b.self
	b.children = append(b.children, child)
}

// Traverse is the base step: visit every child in insertion order with the same state.
func (b *baseNode) Traverse(state *FrameState) {
	state.Stats.Nodes++
	b.traverseChildren(state)
}

func (b *baseNode) traverseChildren(state *FrameState) {
	for _, c := range b.children {
		c.Traverse(state)
	}
}

func (b *baseNode) Destroy() {
	if b.destroyed {
		return
	}
	if b.parent != nil {
		b.parent.node().detach(b.self)
	}
	b.destroyTree()
}

// destroyTree releases children before their parent so a node never outlives the resources below it.
func (b *baseNode) destroyTree() {
	if b.destroyed {
		return
	}
	for _, c := range b.children {
		c.node().destroyTree()
	}
	b.self.release()
	b.destroyed = true
	b.children = nil
	b.parent = nil
}

func (b *baseNode) detach(child Node) {
	for i, c := range b.children {
		if c == child {
			b.children = slices.Delete(b.children, i, i+1)
			break
		}
	}
	child.node().parent = nil
}

// release frees the node's own GPU resources. Variants that own none keep this no-op.
func (b *baseNode) release() {}

func describe(n Node) string {
	if n == nil {
		return "<nil>"
	}
	if name := n.Name(); name != "" {
		return fmt.Sprintf("%s node %q", n.Kind(), name)
	}
	return fmt.Sprintf("%s node", n.Kind())
}

// sceneNode is the plain grouping variant with no visual effect of its own.
type sceneNode struct {
	baseNode
}

var _ Node = &sceneNode{}

// NewSceneNode creates a grouping node that only traverses its children.
//
// Parameters:
//   - options: functional options such as WithName and WithChildren
//
// Returns:
//   - Node: the new node
func NewSceneNode(options ...NodeBuilderOption) Node {
	n := &sceneNode{}
	n.init(n, KindScene, options)
	return n
}
