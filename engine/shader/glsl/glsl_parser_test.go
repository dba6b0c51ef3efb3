package glsl

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lineVertex = `#version 330 core
// shaded line
layout(location = 0) in vec2 vtx_position;
layout (location=1) in vec4 vtx_color;
uniform mat4 ortho;
/* unused
uniform mat4 ghost;
*/
out vec4 frag_color;
void main() {
	gl_Position = ortho * vec4(vtx_position, 0.0, 1.0);
	frag_color = vtx_color;
}
`

const lineFragment = `#version 330 core
in vec4 frag_color;
uniform float alpha;
uniform mat4 ortho;
out vec4 out_color;
void main() { out_color = vec4(frag_color.rgb, alpha); }
`

func TestParseProgram(t *testing.T) {
	d, err := ParseProgram(lineVertex, lineFragment)
	require.NoError(t, err)

	assert.Equal(t, "330 core", d.Version)
	require.Len(t, d.Inputs, 2)
	assert.Equal(t, Input{Name: "vtx_position", Type: "vec2", Location: 0, Format: wgpu.VertexFormatFloat32x2, Size: 8}, d.Inputs[0])
	assert.Equal(t, 1, d.Inputs[1].Location)
	assert.Equal(t, wgpu.VertexFormatFloat32x4, d.Inputs[1].Format)

	require.Len(t, d.Uniforms, 2)
	assert.Equal(t, "ortho", d.Uniforms[0].Name)
	assert.Equal(t, "alpha", d.Uniforms[1].Name)
	assert.True(t, d.HasUniform("alpha"))
	assert.False(t, d.HasUniform("ghost"))

	_, ok := d.Input("frag_color")
	assert.False(t, ok, "fragment varyings are not vertex inputs")
}

func TestParseVertexWithoutLayout(t *testing.T) {
	d, err := ParseVertex(`
attribute highp vec3 position;
in vec3 normal;
uniform mat4 lights[4];
`)
	require.NoError(t, err)
	require.Len(t, d.Inputs, 2)
	assert.Equal(t, -1, d.Inputs[0].Location)
	assert.Equal(t, "vec3", d.Inputs[0].Type)
	require.Len(t, d.Uniforms, 1)
	assert.Equal(t, 4, d.Uniforms[0].Count)
}

func TestParseVertexRejectsMatrixInput(t *testing.T) {
	_, err := ParseVertex("in mat4 instance_model;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "instance_model")
}

func TestVertexLayout(t *testing.T) {
	d, err := ParseVertex("in vec3 position;\nin vec3 normal;\n")
	require.NoError(t, err)

	layout := d.VertexLayout()
	assert.Equal(t, uint64(24), layout.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, layout.StepMode)
	require.Len(t, layout.Attributes, 2)
	assert.Equal(t, uint64(0), layout.Attributes[0].Offset)
	assert.Equal(t, uint32(0), layout.Attributes[0].ShaderLocation)
	assert.Equal(t, uint64(12), layout.Attributes[1].Offset)
	assert.Equal(t, uint32(1), layout.Attributes[1].ShaderLocation)
}
