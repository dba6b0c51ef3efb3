package shader

// Source is a built-in program: its stages and the slots it binds.
type Source struct {
	Name     string
	Vertex   string
	Fragment string
	Bindings []Binding
}

// FlatColor fills 2D geometry with the color uniform.
var FlatColor = Source{
	Name: "flat-color",
	Vertex: `#version 330 core
layout (location = 0) in vec2 vtx_position;
uniform mat4 ortho;
uniform mat4 model_matrix;
void main()
{
    gl_Position = ortho * model_matrix * vec4(vtx_position, 0.0, 1.0);
}
`,
	Fragment: `#version 330 core
layout (location = 0) out vec4 frag_color;
uniform vec4 color;
void main()
{
    frag_color = color;
}
`,
	Bindings: []Binding{
		Require(SlotPosition, "vtx_position"),
		Require(SlotProjectionView, "ortho"),
		Require(SlotColor, "color"),
		Optional(SlotModelMatrix, "model_matrix"),
	},
}

// RoundPoints draws each point as a disc shaded by its point coordinate, tinted by the color uniform.
var RoundPoints = Source{
	Name: "round-points",
	Vertex: `#version 330 core
layout (location = 0) in vec2 vtx_position;
uniform mat4 ortho;
void main()
{
    gl_Position = ortho * vec4(vtx_position, 0.0, 1.0);
}
`,
	Fragment: `#version 330 core
layout (location = 0) out vec4 frag_color;
uniform vec4 color;
void main()
{
    if (dot(gl_PointCoord - 0.5, gl_PointCoord - 0.5) > 0.25) discard;
    frag_color = vec4(gl_PointCoord.st, 0.0, 1.0) * color;
}
`,
	Bindings: []Binding{
		Require(SlotPosition, "vtx_position"),
		Require(SlotProjectionView, "ortho"),
		Optional(SlotColor, "color"),
	},
}

// ShadedLine interpolates a per-vertex color along 2D lines.
var ShadedLine = Source{
	Name: "shaded-line",
	Vertex: `#version 330 core
layout (location = 0) in vec2 vtx_position;
layout (location = 1) in vec4 vtx_color;
smooth out vec4 color;
uniform mat4 ortho;
void main()
{
    color = vtx_color;
    gl_Position = ortho * vec4(vtx_position, 0.0, 1.0);
}
`,
	Fragment: `#version 330 core
smooth in vec4 color;
layout (location = 0) out vec4 frag_color;
void main()
{
    frag_color = color;
}
`,
	Bindings: []Binding{
		Require(SlotPosition, "vtx_position"),
		Require(SlotVertexColor, "vtx_color"),
		Require(SlotProjectionView, "ortho"),
	},
}

// Lit shades 3D surfaces with a single directional light and the color uniform as diffuse material.
var Lit = Source{
	Name: "lit",
	Vertex: `#version 330 core
layout (location = 0) in vec3 vtx_position;
layout (location = 1) in vec3 vtx_normal;
uniform mat4 pvm;
uniform mat4 model_matrix;
uniform mat4 normal_matrix;
out vec3 world_normal;
void main()
{
    world_normal = normalize(mat3(normal_matrix) * vtx_normal);
    gl_Position = pvm * vec4(vtx_position, 1.0);
}
`,
	Fragment: `#version 330 core
in vec3 world_normal;
layout (location = 0) out vec4 frag_color;
uniform vec4 color;
const vec3 light_dir = normalize(vec3(0.4, 1.0, 0.6));
void main()
{
    float diffuse = max(dot(normalize(world_normal), light_dir), 0.0);
    frag_color = vec4(color.rgb * (0.25 + 0.75 * diffuse), color.a);
}
`,
	Bindings: []Binding{
		Require(SlotPosition, "vtx_position"),
		Require(SlotNormal, "vtx_normal"),
		Require(SlotPVM, "pvm"),
		Require(SlotNormalMatrix, "normal_matrix"),
		Require(SlotColor, "color"),
		Optional(SlotModelMatrix, "model_matrix"),
	},
}
