package device

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/gl/v3.3-core/gl"
)

// glDevice implements Device on an OpenGL 3.3 core context.
// The context must be current on the calling thread for every method.
type glDevice struct {
	limits Limits

	// blending mirrors GL_BLEND so redundant toggles are not issued.
	blending bool

	// deferred holds errors popped while probing an allocation, ahead of the GL queue.
	deferred errorQueue
}

var _ Device = &glDevice{}

// NewGLDevice loads the OpenGL function pointers for the current context and queries its limits.
// Call it after the window has made its context current.
//
// Returns:
//   - Device: the OpenGL device
//   - error: error if the GL bindings could not be initialized
func NewGLDevice() (Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL bindings: %w", err)
	}

	d := &glDevice{}

	var lineRange, pointRange [2]float32
	var flags int32
	gl.GetFloatv(gl.ALIASED_LINE_WIDTH_RANGE, &lineRange[0])
	gl.GetFloatv(gl.POINT_SIZE_RANGE, &pointRange[0])
	gl.GetIntegerv(gl.CONTEXT_FLAGS, &flags)
	d.limits = Limits{
		LineWidth: lineWidthRange(lineRange, flags&gl.CONTEXT_FLAG_FORWARD_COMPATIBLE_BIT != 0),
		PointSize: Range{Min: pointRange[0], Max: pointRange[1]},
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)

	common.Logger().Info("opengl device ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
		"lineWidth", d.limits.LineWidth,
		"pointSize", d.limits.PointSize,
	)
	return d, nil
}

func (d *glDevice) CompileProgram(vertexSource, fragmentSource string) (Handle, error) {
	vs, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return InvalidHandle, fmt.Errorf("vertex stage: %w", err)
	}
	defer gl.DeleteShader(vs)

	fs, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return InvalidHandle, fmt.Errorf("fragment stage: %w", err)
	}
	defer gl.DeleteShader(fs)

	program := gl.CreateProgram()
	if program == 0 {
		return InvalidHandle, fmt.Errorf("%w: glCreateProgram returned 0", ErrResourceCreation)
	}
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)
	gl.DetachShader(program, vs)
	gl.DetachShader(program, fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		msg := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(msg))
		gl.DeleteProgram(program)
		return InvalidHandle, fmt.Errorf("link failed: %s", strings.TrimRight(msg, "\x00"))
	}

	common.Logger().Debug("program linked", "program", program)
	return Handle(program), nil
}

// compileShader compiles a single shader stage and returns its GL name.
func compileShader(source string, stage uint32) (uint32, error) {
	shader := gl.CreateShader(stage)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		msg := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(msg))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %s", strings.TrimRight(msg, "\x00"))
	}
	return shader, nil
}

func (d *glDevice) DeleteProgram(program Handle) {
	if !program.Valid() {
		return
	}
	gl.DeleteProgram(uint32(program))
}

func (d *glDevice) UseProgram(program Handle) {
	if !program.Valid() {
		return
	}
	gl.UseProgram(uint32(program))
}

func (d *glDevice) AttribLocation(program Handle, name string) Handle {
	return Handle(gl.GetAttribLocation(uint32(program), gl.Str(name+"\x00")))
}

func (d *glDevice) UniformLocation(program Handle, name string) Handle {
	return Handle(gl.GetUniformLocation(uint32(program), gl.Str(name+"\x00")))
}

func (d *glDevice) UniformMatrix4(location Handle, m common.Matrix4x4) {
	if !location.Valid() {
		return
	}
	f := m.Floats()
	gl.UniformMatrix4fv(int32(location), 1, false, &f[0])
}

func (d *glDevice) UniformVec4(location Handle, v [4]float32) {
	if !location.Valid() {
		return
	}
	gl.Uniform4f(int32(location), v[0], v[1], v[2], v[3])
}

func (d *glDevice) UniformFloat(location Handle, v float32) {
	if !location.Valid() {
		return
	}
	gl.Uniform1f(int32(location), v)
}

func (d *glDevice) EnableBlend() {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	d.blending = true
}

func (d *glDevice) DisableBlend() {
	gl.Disable(gl.BLEND)
	d.blending = false
}

func (d *glDevice) SetLineWidth(width float32) {
	gl.LineWidth(d.limits.LineWidth.Clamp(width))
}

func (d *glDevice) SetPointSize(size float32) {
	gl.PointSize(d.limits.PointSize.Clamp(size))
}

func (d *glDevice) SetMultisample(enabled bool) {
	if enabled {
		gl.Enable(gl.MULTISAMPLE)
		return
	}
	gl.Disable(gl.MULTISAMPLE)
}

func (d *glDevice) CreateBuffer(data []byte, size int, usage BufferUsage) (Handle, error) {
	if size < len(data) {
		size = len(data)
	}
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	if vbo == 0 {
		return InvalidHandle, fmt.Errorf("%w: glGenBuffers returned 0", ErrResourceCreation)
	}

	glUsage := uint32(gl.STATIC_DRAW)
	if usage == UsageDynamic {
		glUsage = gl.DYNAMIC_DRAW
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, glUsage)
	if len(data) > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data), gl.Ptr(data))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if d.allocationFailed() {
		gl.DeleteBuffers(1, &vbo)
		return InvalidHandle, fmt.Errorf("%w: out of memory allocating %d bytes", ErrResourceCreation, size)
	}
	return Handle(vbo), nil
}

// allocationFailed drains the GL error queue looking for OUT_OF_MEMORY. Any other code is
// deferred so the next Error call still reports it.
func (d *glDevice) allocationFailed() bool {
	oom := false
	for range maxDrainedErrors {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
		if code == gl.OUT_OF_MEMORY {
			oom = true
			continue
		}
		d.deferred.push(glError(code))
	}
	return oom
}

func (d *glDevice) UpdateBuffer(buffer Handle, offset int, data []byte) {
	if !buffer.Valid() || len(data) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(buffer))
	gl.BufferSubData(gl.ARRAY_BUFFER, offset, len(data), gl.Ptr(data))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (d *glDevice) DeleteBuffer(buffer Handle) {
	if !buffer.Valid() {
		return
	}
	vbo := uint32(buffer)
	gl.DeleteBuffers(1, &vbo)
}

func (d *glDevice) CreateVertexArray(buffer Handle, layout wgpu.VertexBufferLayout) (Handle, error) {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	if vao == 0 {
		return InvalidHandle, fmt.Errorf("%w: glGenVertexArrays returned 0", ErrResourceCreation)
	}

	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(buffer))
	for _, attr := range layout.Attributes {
		components, _, ok := AttributeComponents(attr.Format)
		if !ok {
			gl.BindVertexArray(0)
			gl.DeleteVertexArrays(1, &vao)
			return InvalidHandle, fmt.Errorf("%w: unsupported attribute format %v", ErrResourceCreation, attr.Format)
		}
		gl.EnableVertexAttribArray(attr.ShaderLocation)
		gl.VertexAttribPointerWithOffset(attr.ShaderLocation, int32(components), gl.FLOAT, false,
			int32(layout.ArrayStride), uintptr(attr.Offset))
	}
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	return Handle(vao), nil
}

func (d *glDevice) DeleteVertexArray(vao Handle) {
	if !vao.Valid() {
		return
	}
	id := uint32(vao)
	gl.DeleteVertexArrays(1, &id)
}

func (d *glDevice) Draw(vao Handle, mode Primitive, first, count int) {
	gl.BindVertexArray(uint32(vao))
	gl.DrawArrays(glPrimitive(mode), int32(first), int32(count))
	gl.BindVertexArray(0)
}

func (d *glDevice) Clear(color common.Color4) {
	gl.ClearColor(color.R, color.G, color.B, color.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *glDevice) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (d *glDevice) Error() error {
	if err := d.deferred.pop(); err != nil {
		return err
	}
	code := gl.GetError()
	if code == gl.NO_ERROR {
		return nil
	}
	return glError(code)
}

func (d *glDevice) Limits() Limits {
	return d.limits
}

// glPrimitive maps a Primitive to its GL draw mode.
func glPrimitive(p Primitive) uint32 {
	switch p {
	case PrimitivePoints:
		return gl.POINTS
	case PrimitiveLines:
		return gl.LINES
	case PrimitiveLineStrip:
		return gl.LINE_STRIP
	case PrimitiveTriangleStrip:
		return gl.TRIANGLE_STRIP
	case PrimitiveTriangleFan:
		return gl.TRIANGLE_FAN
	default:
		return gl.TRIANGLES
	}
}

func glError(code uint32) error {
	return fmt.Errorf("gl error 0x%04X (%s)", code, glErrorName(code))
}

func glErrorName(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "invalid enum"
	case gl.INVALID_VALUE:
		return "invalid value"
	case gl.INVALID_OPERATION:
		return "invalid operation"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "invalid framebuffer operation"
	case gl.OUT_OF_MEMORY:
		return "out of memory"
	default:
		return "unknown"
	}
}
