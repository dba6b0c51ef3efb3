package device

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrResourceCreation is returned when the device cannot allocate a buffer, vertex array or program.
var ErrResourceCreation = errors.New("device resource creation failed")

// Handle is an opaque integer naming a GPU-side object: an attribute or uniform location,
// a buffer, a vertex array or a program. Negative values mean "not present"; uploads and
// bindings that target an invalid handle are skipped.
type Handle int32

// InvalidHandle is the sentinel for an unresolved or unused handle.
const InvalidHandle Handle = -1

// Valid reports whether the handle refers to a real GPU-side object.
func (h Handle) Valid() bool {
	return h >= 0
}

// Primitive selects how a draw submission assembles its vertices.
type Primitive int

const (
	PrimitivePoints Primitive = iota
	PrimitiveLines
	PrimitiveLineStrip
	PrimitiveTriangles
	PrimitiveTriangleStrip
	PrimitiveTriangleFan
)

func (p Primitive) String() string {
	switch p {
	case PrimitivePoints:
		return "points"
	case PrimitiveLines:
		return "lines"
	case PrimitiveLineStrip:
		return "line-strip"
	case PrimitiveTriangles:
		return "triangles"
	case PrimitiveTriangleStrip:
		return "triangle-strip"
	case PrimitiveTriangleFan:
		return "triangle-fan"
	default:
		return fmt.Sprintf("primitive(%d)", int(p))
	}
}

// BufferUsage hints how often a buffer's contents change.
type BufferUsage int

const (
	// UsageStatic buffers are written once at construction.
	UsageStatic BufferUsage = iota
	// UsageDynamic buffers are rewritten between frames.
	UsageDynamic
)

// Range is a closed interval reported by a device capability query.
type Range struct {
	Min, Max float32
}

// Clamp limits v to the range. An empty range (Max < Min) returns v unchanged.
//
// Parameters:
//   - v: the requested value
//
// Returns:
//   - float32: v limited to [Min, Max]
func (r Range) Clamp(v float32) float32 {
	if r.Max < r.Min {
		return v
	}
	return common.Clamp(v, r.Min, r.Max)
}

// Limits describes the rasterization capabilities of a device.
type Limits struct {
	// LineWidth is the supported aliased line width range.
	LineWidth Range

	// PointSize is the supported aliased point size range.
	PointSize Range
}

// Device is the immediate-mode graphics interface the scene graph drives.
// All methods must be called from the thread that owns the graphics context.
type Device interface {
	// CompileProgram compiles and links a program from vertex and fragment sources.
	//
	// Parameters:
	//   - vertexSource: the vertex stage source text
	//   - fragmentSource: the fragment stage source text
	//
	// Returns:
	//   - Handle: the program handle
	//   - error: the compiler or linker log if the program could not be built
	CompileProgram(vertexSource, fragmentSource string) (Handle, error)

	// DeleteProgram releases a program.
	DeleteProgram(program Handle)

	// UseProgram binds a program as current.
	UseProgram(program Handle)

	// AttribLocation looks up a vertex attribute location by name, or InvalidHandle.
	AttribLocation(program Handle, name string) Handle

	// UniformLocation looks up a uniform location by name, or InvalidHandle.
	UniformLocation(program Handle, name string) Handle

	// UniformMatrix4 uploads a 4x4 matrix to the current program.
	UniformMatrix4(location Handle, m common.Matrix4x4)

	// UniformVec4 uploads a 4-component vector to the current program.
	UniformVec4(location Handle, v [4]float32)

	// UniformFloat uploads a scalar to the current program.
	UniformFloat(location Handle, v float32)

	// EnableBlend turns on alpha blending with the fixed source-alpha, one-minus-source-alpha equation.
	EnableBlend()

	// DisableBlend turns alpha blending off.
	DisableBlend()

	// SetLineWidth sets the rasterized line width in pixels.
	SetLineWidth(width float32)

	// SetPointSize sets the rasterized point size in pixels.
	SetPointSize(size float32)

	// SetMultisample toggles multisample rasterization on surfaces created with sample buffers.
	SetMultisample(enabled bool)

	// CreateBuffer allocates a vertex buffer of size bytes and fills its leading bytes with data.
	//
	// Parameters:
	//   - data: initial contents, may be shorter than size or nil
	//   - size: capacity in bytes
	//   - usage: update frequency hint
	//
	// Returns:
	//   - Handle: the buffer handle
	//   - error: wraps ErrResourceCreation on failure
	CreateBuffer(data []byte, size int, usage BufferUsage) (Handle, error)

	// UpdateBuffer overwrites len(data) bytes of a buffer starting at offset.
	UpdateBuffer(buffer Handle, offset int, data []byte)

	// DeleteBuffer releases a buffer.
	DeleteBuffer(buffer Handle)

	// CreateVertexArray binds a buffer's byte layout to attribute locations.
	// Each attribute's ShaderLocation is the attribute handle it feeds.
	//
	// Parameters:
	//   - buffer: the source vertex buffer
	//   - layout: stride and per-attribute format/offset/location
	//
	// Returns:
	//   - Handle: the vertex array handle
	//   - error: wraps ErrResourceCreation on failure
	CreateVertexArray(buffer Handle, layout wgpu.VertexBufferLayout) (Handle, error)

	// DeleteVertexArray releases a vertex array.
	DeleteVertexArray(vao Handle)

	// Draw submits count vertices starting at first from a vertex array.
	Draw(vao Handle, mode Primitive, first, count int)

	// Clear clears the color and depth buffers of the current framebuffer.
	Clear(color common.Color4)

	// Viewport sets the rendering viewport in pixels.
	Viewport(x, y, width, height int)

	// Error pops the oldest pending device error, or returns nil when none is pending.
	Error() error

	// Limits reports the device's rasterization capabilities.
	Limits() Limits
}

// AttributeComponents returns the component count and byte size of a vertex format
// the device knows how to bind.
//
// Parameters:
//   - format: the attribute format
//
// Returns:
//   - int: component count
//   - int: size in bytes
//   - bool: false if the format is not a float format the device supports
func AttributeComponents(format wgpu.VertexFormat) (int, int, bool) {
	switch format {
	case wgpu.VertexFormatFloat32:
		return 1, 4, true
	case wgpu.VertexFormatFloat32x2:
		return 2, 8, true
	case wgpu.VertexFormatFloat32x3:
		return 3, 12, true
	case wgpu.VertexFormatFloat32x4:
		return 4, 16, true
	default:
		return 0, 0, false
	}
}
