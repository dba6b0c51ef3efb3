package scene

// NodeBuilderOption is a functional option applied to any scene node at construction.
type NodeBuilderOption func(b *baseNode)

// WithName sets the node's display name used by Print and in panics.
//
// Parameters:
//   - name: the display name
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithName(name string) NodeBuilderOption {
	return func(b *baseNode) {
		b.name = name
	}
}

// WithChildren attaches children in order, as if by AddChild.
//
// Parameters:
//   - children: the nodes to attach
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithChildren(children ...Node) NodeBuilderOption {
	return func(b *baseNode) {
		for _, c := range children {
			b.AddChild(c)
		}
	}
}
