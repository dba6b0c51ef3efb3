// Package recorder provides an in-memory device.Device that records every call made against it.
// It backs the headless mode of the example programs and every traversal test.
package recorder

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/device"
	"github.com/Carmen-Shannon/oxy-graph/engine/shader/glsl"
	"github.com/cogentcore/webgpu/wgpu"
)

// Invalid-operation errors mirror what a real driver would queue.
var (
	ErrInvalidOperation = errors.New("invalid operation")
	ErrInvalidValue     = errors.New("invalid value")
)

// Call is one recorded device call.
type Call struct {
	// Op is the device method name, e.g. "Draw" or "UniformVec4".
	Op string

	// Handle is the primary handle the call targeted, or device.InvalidHandle.
	Handle device.Handle
}

// DrawRecord captures the device state observed by one draw submission.
type DrawRecord struct {
	VAO     device.Handle
	Mode    device.Primitive
	First   int
	Count   int
	Program device.Handle

	// Blend is whether blending was enabled at submission time.
	Blend bool

	LineWidth float32
	PointSize float32

	// Vertices is a copy of the bytes of the drawn range of the bound buffer.
	Vertices []byte

	matrices map[device.Handle]common.Matrix4x4
	vec4s    map[device.Handle][4]float32
	floats   map[device.Handle]float32
}

// Matrix returns the matrix uniform value bound at the given location during the draw.
func (d DrawRecord) Matrix(location device.Handle) (common.Matrix4x4, bool) {
	m, ok := d.matrices[location]
	return m, ok
}

// Vec4 returns the vec4 uniform value bound at the given location during the draw.
func (d DrawRecord) Vec4(location device.Handle) ([4]float32, bool) {
	v, ok := d.vec4s[location]
	return v, ok
}

// Float returns the scalar uniform value bound at the given location during the draw.
func (d DrawRecord) Float(location device.Handle) (float32, bool) {
	v, ok := d.floats[location]
	return v, ok
}

// program is a compiled program with its name-to-location tables.
type program struct {
	attribs  map[string]device.Handle
	uniforms map[string]device.Handle

	matrices map[device.Handle]common.Matrix4x4
	vec4s    map[device.Handle][4]float32
	floats   map[device.Handle]float32
}

type vertexArray struct {
	buffer device.Handle
	layout wgpu.VertexBufferLayout
}

// Recorder implements device.Device in memory.
// It is not safe for concurrent use, like the context it stands in for.
type Recorder struct {
	limits device.Limits

	nextHandle device.Handle

	programs     map[device.Handle]*program
	buffers      map[device.Handle][]byte
	vertexArrays map[device.Handle]vertexArray

	// releases counts delete calls per handle, including calls on handles that were already gone.
	releases map[device.Handle]int

	current     device.Handle
	blend       bool
	lineWidth   float32
	pointSize   float32
	multisample bool

	calls   []Call
	draws   []DrawRecord
	pending []error

	failBuffers      int
	failVertexArrays int
	failCompile      error
}

var _ device.Device = &Recorder{}

// New creates a Recorder with the given options applied.
//
// Parameters:
//   - options: functional options to configure the recorder
//
// Returns:
//   - *Recorder: the recording device
func New(options ...RecorderBuilderOption) *Recorder {
	r := &Recorder{
		limits: device.Limits{
			LineWidth: device.Range{Min: 1, Max: 4},
			PointSize: device.Range{Min: 1, Max: 64},
		},
		nextHandle:   1,
		programs:     make(map[device.Handle]*program),
		buffers:      make(map[device.Handle][]byte),
		vertexArrays: make(map[device.Handle]vertexArray),
		releases:     make(map[device.Handle]int),
		current:      device.InvalidHandle,
		lineWidth:    1,
		pointSize:    1,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *Recorder) record(op string, h device.Handle) {
	r.calls = append(r.calls, Call{Op: op, Handle: h})
}

func (r *Recorder) allocate() device.Handle {
	h := r.nextHandle
	r.nextHandle++
	return h
}

func (r *Recorder) CompileProgram(vertexSource, fragmentSource string) (device.Handle, error) {
	r.record("CompileProgram", device.InvalidHandle)
	if r.failCompile != nil {
		err := r.failCompile
		r.failCompile = nil
		return device.InvalidHandle, err
	}

	decls, err := glsl.ParseProgram(vertexSource, fragmentSource)
	if err != nil {
		return device.InvalidHandle, err
	}

	p := &program{
		attribs:  make(map[string]device.Handle, len(decls.Inputs)),
		uniforms: make(map[string]device.Handle, len(decls.Uniforms)),
		matrices: make(map[device.Handle]common.Matrix4x4),
		vec4s:    make(map[device.Handle][4]float32),
		floats:   make(map[device.Handle]float32),
	}
	for i, in := range decls.Inputs {
		loc := in.Location
		if loc < 0 {
			loc = i
		}
		p.attribs[in.Name] = device.Handle(loc)
	}
	for i, u := range decls.Uniforms {
		p.uniforms[u.Name] = device.Handle(i)
	}

	h := r.allocate()
	r.programs[h] = p
	return h, nil
}

func (r *Recorder) DeleteProgram(prog device.Handle) {
	r.record("DeleteProgram", prog)
	r.releases[prog]++
	delete(r.programs, prog)
}

func (r *Recorder) UseProgram(prog device.Handle) {
	r.record("UseProgram", prog)
	if _, ok := r.programs[prog]; !ok {
		r.pending = append(r.pending, fmt.Errorf("%w: UseProgram(%d)", ErrInvalidOperation, prog))
		return
	}
	r.current = prog
}

func (r *Recorder) AttribLocation(prog device.Handle, name string) device.Handle {
	p, ok := r.programs[prog]
	if !ok {
		return device.InvalidHandle
	}
	if h, ok := p.attribs[name]; ok {
		return h
	}
	return device.InvalidHandle
}

func (r *Recorder) UniformLocation(prog device.Handle, name string) device.Handle {
	p, ok := r.programs[prog]
	if !ok {
		return device.InvalidHandle
	}
	if h, ok := p.uniforms[name]; ok {
		return h
	}
	return device.InvalidHandle
}

// uniformTarget returns the current program for a uniform upload, queuing an error when none is bound.
func (r *Recorder) uniformTarget(op string, location device.Handle) *program {
	r.record(op, location)
	if !location.Valid() {
		return nil
	}
	p, ok := r.programs[r.current]
	if !ok {
		r.pending = append(r.pending, fmt.Errorf("%w: %s without a program", ErrInvalidOperation, op))
		return nil
	}
	return p
}

func (r *Recorder) UniformMatrix4(location device.Handle, m common.Matrix4x4) {
	if p := r.uniformTarget("UniformMatrix4", location); p != nil {
		p.matrices[location] = m
	}
}

func (r *Recorder) UniformVec4(location device.Handle, v [4]float32) {
	if p := r.uniformTarget("UniformVec4", location); p != nil {
		p.vec4s[location] = v
	}
}

func (r *Recorder) UniformFloat(location device.Handle, v float32) {
	if p := r.uniformTarget("UniformFloat", location); p != nil {
		p.floats[location] = v
	}
}

func (r *Recorder) EnableBlend() {
	r.record("EnableBlend", device.InvalidHandle)
	r.blend = true
}

func (r *Recorder) DisableBlend() {
	r.record("DisableBlend", device.InvalidHandle)
	r.blend = false
}

func (r *Recorder) SetLineWidth(width float32) {
	r.record("SetLineWidth", device.InvalidHandle)
	r.lineWidth = r.limits.LineWidth.Clamp(width)
}

func (r *Recorder) SetPointSize(size float32) {
	r.record("SetPointSize", device.InvalidHandle)
	r.pointSize = r.limits.PointSize.Clamp(size)
}

func (r *Recorder) SetMultisample(enabled bool) {
	r.record("SetMultisample", device.InvalidHandle)
	r.multisample = enabled
}

func (r *Recorder) CreateBuffer(data []byte, size int, usage device.BufferUsage) (device.Handle, error) {
	r.record("CreateBuffer", device.InvalidHandle)
	if r.failBuffers > 0 {
		r.failBuffers--
		return device.InvalidHandle, fmt.Errorf("%w: injected buffer failure", device.ErrResourceCreation)
	}
	if size < len(data) {
		size = len(data)
	}
	buf := make([]byte, size)
	copy(buf, data)

	h := r.allocate()
	r.buffers[h] = buf
	return h, nil
}

func (r *Recorder) UpdateBuffer(buffer device.Handle, offset int, data []byte) {
	r.record("UpdateBuffer", buffer)
	buf, ok := r.buffers[buffer]
	if !ok {
		r.pending = append(r.pending, fmt.Errorf("%w: UpdateBuffer(%d)", ErrInvalidOperation, buffer))
		return
	}
	if offset < 0 || offset+len(data) > len(buf) {
		r.pending = append(r.pending, fmt.Errorf("%w: UpdateBuffer range [%d,%d) exceeds %d bytes",
			ErrInvalidValue, offset, offset+len(data), len(buf)))
		return
	}
	copy(buf[offset:], data)
}

func (r *Recorder) DeleteBuffer(buffer device.Handle) {
	r.record("DeleteBuffer", buffer)
	r.releases[buffer]++
	delete(r.buffers, buffer)
}

func (r *Recorder) CreateVertexArray(buffer device.Handle, layout wgpu.VertexBufferLayout) (device.Handle, error) {
	r.record("CreateVertexArray", buffer)
	if r.failVertexArrays > 0 {
		r.failVertexArrays--
		return device.InvalidHandle, fmt.Errorf("%w: injected vertex array failure", device.ErrResourceCreation)
	}
	if _, ok := r.buffers[buffer]; !ok {
		return device.InvalidHandle, fmt.Errorf("%w: unknown buffer %d", device.ErrResourceCreation, buffer)
	}
	for _, attr := range layout.Attributes {
		if _, _, ok := device.AttributeComponents(attr.Format); !ok {
			return device.InvalidHandle, fmt.Errorf("%w: unsupported attribute format %v", device.ErrResourceCreation, attr.Format)
		}
	}

	h := r.allocate()
	r.vertexArrays[h] = vertexArray{buffer: buffer, layout: layout}
	return h, nil
}

func (r *Recorder) DeleteVertexArray(vao device.Handle) {
	r.record("DeleteVertexArray", vao)
	r.releases[vao]++
	delete(r.vertexArrays, vao)
}

func (r *Recorder) Draw(vao device.Handle, mode device.Primitive, first, count int) {
	r.record("Draw", vao)
	va, ok := r.vertexArrays[vao]
	if !ok {
		r.pending = append(r.pending, fmt.Errorf("%w: Draw with vertex array %d", ErrInvalidOperation, vao))
		return
	}

	rec := DrawRecord{
		VAO:       vao,
		Mode:      mode,
		First:     first,
		Count:     count,
		Program:   r.current,
		Blend:     r.blend,
		LineWidth: r.lineWidth,
		PointSize: r.pointSize,
		matrices:  map[device.Handle]common.Matrix4x4{},
		vec4s:     map[device.Handle][4]float32{},
		floats:    map[device.Handle]float32{},
	}
	if p, ok := r.programs[r.current]; ok {
		for k, v := range p.matrices {
			rec.matrices[k] = v
		}
		for k, v := range p.vec4s {
			rec.vec4s[k] = v
		}
		for k, v := range p.floats {
			rec.floats[k] = v
		}
	}
	if buf, ok := r.buffers[va.buffer]; ok {
		stride := int(va.layout.ArrayStride)
		start, end := first*stride, (first+count)*stride
		if start >= 0 && end <= len(buf) {
			rec.Vertices = append([]byte(nil), buf[start:end]...)
		}
	}
	r.draws = append(r.draws, rec)
}

func (r *Recorder) Clear(color common.Color4) {
	r.record("Clear", device.InvalidHandle)
}

func (r *Recorder) Viewport(x, y, width, height int) {
	r.record("Viewport", device.InvalidHandle)
}

func (r *Recorder) Error() error {
	if len(r.pending) == 0 {
		return nil
	}
	err := r.pending[0]
	r.pending = r.pending[1:]
	return err
}

func (r *Recorder) Limits() device.Limits {
	return r.limits
}

// PushError queues an error to be returned by Error.
func (r *Recorder) PushError(err error) {
	r.pending = append(r.pending, err)
}

// FailNextCompile makes the next CompileProgram call return err.
func (r *Recorder) FailNextCompile(err error) {
	r.failCompile = err
}

// FailNextBuffers makes the next n CreateBuffer calls fail.
func (r *Recorder) FailNextBuffers(n int) {
	r.failBuffers = n
}

// FailNextVertexArrays makes the next n CreateVertexArray calls fail.
func (r *Recorder) FailNextVertexArrays(n int) {
	r.failVertexArrays = n
}

// Calls returns every recorded call in order.
func (r *Recorder) Calls() []Call {
	return append([]Call(nil), r.calls...)
}

// CallsOf returns the recorded calls with the given op name.
func (r *Recorder) CallsOf(op string) []Call {
	var out []Call
	for _, c := range r.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Draws returns every recorded draw submission in order.
func (r *Recorder) Draws() []DrawRecord {
	return append([]DrawRecord(nil), r.draws...)
}

// Reset forgets recorded calls and draws. Device objects and state are kept.
func (r *Recorder) Reset() {
	r.calls = nil
	r.draws = nil
}

// Blending reports whether blending is currently enabled.
func (r *Recorder) Blending() bool {
	return r.blend
}

// Multisampling reports whether multisample rasterization is on.
func (r *Recorder) Multisampling() bool {
	return r.multisample
}

// CurrentProgram returns the bound program.
func (r *Recorder) CurrentProgram() device.Handle {
	return r.current
}

// Buffer returns a copy of a live buffer's contents.
func (r *Recorder) Buffer(buffer device.Handle) ([]byte, bool) {
	buf, ok := r.buffers[buffer]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), buf...), true
}

// VertexArrayLayout returns the layout a live vertex array was created with.
func (r *Recorder) VertexArrayLayout(vao device.Handle) (wgpu.VertexBufferLayout, bool) {
	va, ok := r.vertexArrays[vao]
	return va.layout, ok
}

// LiveBuffers returns the handles of buffers that have not been deleted, sorted.
func (r *Recorder) LiveBuffers() []device.Handle {
	return sortedKeys(r.buffers)
}

// LiveVertexArrays returns the handles of vertex arrays that have not been deleted, sorted.
func (r *Recorder) LiveVertexArrays() []device.Handle {
	return sortedKeys(r.vertexArrays)
}

// Releases returns how many times a delete call targeted the handle.
func (r *Recorder) Releases(h device.Handle) int {
	return r.releases[h]
}

func sortedKeys[V any](m map[device.Handle]V) []device.Handle {
	keys := make([]device.Handle, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
