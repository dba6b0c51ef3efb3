package shader

// ProgramBuilderOption is a functional option for configuring a program before compilation.
type ProgramBuilderOption func(p *program)

// WithName sets the program name used in logs and errors.
//
// Parameters:
//   - name: the display name
//
// Returns:
//   - ProgramBuilderOption: option function to apply
func WithName(name string) ProgramBuilderOption {
	return func(p *program) {
		p.name = name
	}
}

// WithSources sets the vertex and fragment stage sources.
//
// Parameters:
//   - vertex: the vertex stage source
//   - fragment: the fragment stage source
//
// Returns:
//   - ProgramBuilderOption: option function to apply
func WithSources(vertex, fragment string) ProgramBuilderOption {
	return func(p *program) {
		p.vertexSource = vertex
		p.fragmentSource = fragment
	}
}

// WithBindings appends slot bindings to resolve after linking.
//
// Parameters:
//   - bindings: the bindings to resolve
//
// Returns:
//   - ProgramBuilderOption: option function to apply
func WithBindings(bindings ...Binding) ProgramBuilderOption {
	return func(p *program) {
		p.bindings = append(p.bindings, bindings...)
	}
}

// WithSource applies a built-in Source's stages and bindings.
//
// Parameters:
//   - src: the built-in source
//
// Returns:
//   - ProgramBuilderOption: option function to apply
func WithSource(src Source) ProgramBuilderOption {
	return func(p *program) {
		p.name = src.Name
		p.vertexSource = src.Vertex
		p.fragmentSource = src.Fragment
		p.bindings = append(p.bindings, src.Bindings...)
	}
}
