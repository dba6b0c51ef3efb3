package glsl

import "github.com/cogentcore/webgpu/wgpu"

// vertexFormatInfo holds the wgpu vertex format and its byte size for offset calculation
type vertexFormatInfo struct {
	format wgpu.VertexFormat
	size   uint64
}

// Input is a vertex stage input declaration: `layout(location = N) in <type> <name>;`.
type Input struct {
	// Name is the attribute name used for location lookup.
	Name string

	// Type is the GLSL type name, e.g. "vec2".
	Type string

	// Location is the explicit layout location, or -1 when none was declared.
	Location int

	// Format is the vertex format matching Type.
	Format wgpu.VertexFormat

	// Size is the byte size of one value of Type.
	Size uint64
}

// Uniform is a `uniform <type> <name>;` declaration.
type Uniform struct {
	Name string
	Type string

	// Count is the array length for `uniform T name[N];`, 1 otherwise.
	Count int
}

// Declarations holds everything a program exposes by name.
type Declarations struct {
	// Version is the `#version` directive value, empty if absent.
	Version string

	// Inputs are the vertex stage inputs in declaration order.
	Inputs []Input

	// Uniforms are the uniforms of all parsed stages in first-declared order, without duplicates.
	Uniforms []Uniform
}
