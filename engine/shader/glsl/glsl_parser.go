package glsl

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// glslVertexFormatMap maps GLSL attribute type names to their corresponding wgpu vertex format and byte size
var glslVertexFormatMap = map[string]vertexFormatInfo{
	"float": {wgpu.VertexFormatFloat32, 4},
	"vec2":  {wgpu.VertexFormatFloat32x2, 8},
	"vec3":  {wgpu.VertexFormatFloat32x3, 12},
	"vec4":  {wgpu.VertexFormatFloat32x4, 16},
	"int":   {wgpu.VertexFormatSint32, 4},
	"ivec2": {wgpu.VertexFormatSint32x2, 8},
	"ivec3": {wgpu.VertexFormatSint32x3, 12},
	"ivec4": {wgpu.VertexFormatSint32x4, 16},
	"uint":  {wgpu.VertexFormatUint32, 4},
	"uvec2": {wgpu.VertexFormatUint32x2, 8},
	"uvec3": {wgpu.VertexFormatUint32x3, 12},
	"uvec4": {wgpu.VertexFormatUint32x4, 16},
}

var (
	// blockCommentRegex matches /* ... */ comments, including multi-line ones
	blockCommentRegex = regexp.MustCompile(`(?s)/\*.*?\*/`)

	// lineCommentRegex matches // comments to end of line
	lineCommentRegex = regexp.MustCompile(`//[^\n]*`)

	// versionRegex matches the #version directive and captures its value
	versionRegex = regexp.MustCompile(`^#version\s+(.+)$`)

	// inputRegex matches an input statement with an optional layout qualifier and precision
	inputRegex = regexp.MustCompile(`^(?:layout\s*\(\s*location\s*=\s*(\d+)\s*\)\s*)?(?:in|attribute)\s+(?:(?:highp|mediump|lowp)\s+)?(\w+)\s+(\w+)$`)

	// uniformRegex matches a uniform statement with an optional precision and array length
	uniformRegex = regexp.MustCompile(`^(?:layout\s*\([^)]*\)\s*)?uniform\s+(?:(?:highp|mediump|lowp)\s+)?(\w+)\s+(\w+)\s*(?:\[\s*(\d+)\s*\])?$`)
)

// ParseVertex extracts the version, inputs and uniforms of a vertex stage.
//
// Parameters:
//   - src: the vertex stage source text
//
// Returns:
//   - Declarations: the parsed declarations
//   - error: error if an input uses a type that cannot be fed from a vertex buffer
func ParseVertex(src string) (Declarations, error) {
	var d Declarations
	if err := d.parse(src, true); err != nil {
		return Declarations{}, err
	}
	return d, nil
}

// ParseProgram extracts the declarations of a vertex and fragment stage pair.
// Fragment stage inputs are varyings and are not reported as Inputs.
//
// Parameters:
//   - vertexSrc: the vertex stage source text
//   - fragmentSrc: the fragment stage source text
//
// Returns:
//   - Declarations: the merged declarations
//   - error: error if either stage could not be parsed
func ParseProgram(vertexSrc, fragmentSrc string) (Declarations, error) {
	var d Declarations
	if err := d.parse(vertexSrc, true); err != nil {
		return Declarations{}, fmt.Errorf("vertex stage: %w", err)
	}
	if err := d.parse(fragmentSrc, false); err != nil {
		return Declarations{}, fmt.Errorf("fragment stage: %w", err)
	}
	return d, nil
}

// parse scans one stage and appends what it declares.
func (d *Declarations) parse(src string, vertexStage bool) error {
	src = blockCommentRegex.ReplaceAllString(src, " ")
	src = lineCommentRegex.ReplaceAllString(src, "")

	// Preprocessor directives are newline-terminated; everything else is ';'-terminated.
	var body strings.Builder
	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			if m := versionRegex.FindStringSubmatch(trimmed); m != nil && d.Version == "" {
				d.Version = strings.TrimSpace(m[1])
			}
			continue
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}

	for _, stmt := range strings.Split(body.String(), ";") {
		stmt = strings.Join(strings.Fields(stmt), " ")
		if stmt == "" {
			continue
		}
		// Statements that open a block carry their leading declarations in front of the brace.
		if i := strings.LastIndexAny(stmt, "{}"); i >= 0 {
			stmt = strings.TrimSpace(stmt[i+1:])
		}

		if m := uniformRegex.FindStringSubmatch(stmt); m != nil {
			count := 1
			if m[3] != "" {
				count, _ = strconv.Atoi(m[3])
			}
			d.addUniform(Uniform{Name: m[2], Type: m[1], Count: count})
			continue
		}

		if !vertexStage {
			continue
		}
		if m := inputRegex.FindStringSubmatch(stmt); m != nil {
			info, ok := glslVertexFormatMap[m[2]]
			if !ok {
				return fmt.Errorf("input %q has unsupported type %q", m[3], m[2])
			}
			location := -1
			if m[1] != "" {
				location, _ = strconv.Atoi(m[1])
			}
			d.Inputs = append(d.Inputs, Input{
				Name:     m[3],
				Type:     m[2],
				Location: location,
				Format:   info.format,
				Size:     info.size,
			})
		}
	}
	return nil
}

func (d *Declarations) addUniform(u Uniform) {
	for _, existing := range d.Uniforms {
		if existing.Name == u.Name {
			return
		}
	}
	d.Uniforms = append(d.Uniforms, u)
}

// Input returns the input with the given name.
//
// Parameters:
//   - name: the attribute name
//
// Returns:
//   - Input: the declaration
//   - bool: false if the program declares no such input
func (d Declarations) Input(name string) (Input, bool) {
	for _, in := range d.Inputs {
		if in.Name == name {
			return in, true
		}
	}
	return Input{}, false
}

// HasUniform reports whether a uniform with the given name is declared.
func (d Declarations) HasUniform(name string) bool {
	for _, u := range d.Uniforms {
		if u.Name == name {
			return true
		}
	}
	return false
}

// VertexLayout builds an interleaved wgpu.VertexBufferLayout feeding every input in declaration order.
// Offsets are assigned sequentially; each attribute's ShaderLocation is its declared location,
// or its index when no location was declared.
//
// Returns:
//   - wgpu.VertexBufferLayout: the constructed vertex buffer layout
func (d Declarations) VertexLayout() wgpu.VertexBufferLayout {
	attrs := make([]wgpu.VertexAttribute, 0, len(d.Inputs))
	var offset uint64

	for i, in := range d.Inputs {
		location := in.Location
		if location < 0 {
			location = i
		}
		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         in.Format,
			Offset:         offset,
			ShaderLocation: uint32(location),
		})
		offset += in.Size
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: offset,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}
}
