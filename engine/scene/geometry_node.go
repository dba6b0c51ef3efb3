package scene

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/device"
	"github.com/Carmen-Shannon/oxy-graph/engine/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrCapacityExceeded is returned when an update supplies more vertices than a node's buffer holds.
	ErrCapacityExceeded = errors.New("geometry capacity exceeded")

	// ErrNodeReleased is returned when mutating a geometry node whose GPU resources were released.
	ErrNodeReleased = errors.New("geometry node released")
)

// GeometryNode owns a vertex buffer and the vertex array binding it to attribute handles, and issues
// the draw submission for them. Its children, if any, are traversed after its own draw.
type GeometryNode interface {
	Node

	// Capacity returns the number of vertices the buffer holds.
	Capacity() int

	// Count returns the number of vertices drawn per traversal.
	Count() int

	// Primitive returns how the vertices are assembled.
	Primitive() device.Primitive

	// Released reports whether the GPU resources have been freed.
	Released() bool
}

// attribute places one slot's data inside an interleaved vertex.
type attribute struct {
	slot     shader.Slot
	format   wgpu.VertexFormat
	offset   uint64
	required bool
}

// vertexLayout builds the layout binding for the attributes the handle table resolved.
// Optional attributes the shader does not use are left unbound.
func vertexLayout(handles shader.HandleTable, stride uint64, attrs ...attribute) (wgpu.VertexBufferLayout, error) {
	layout := wgpu.VertexBufferLayout{
		ArrayStride: stride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  make([]wgpu.VertexAttribute, 0, len(attrs)),
	}
	for _, a := range attrs {
		h := handles.Get(a.slot)
		if !h.Valid() {
			if a.required {
				return wgpu.VertexBufferLayout{}, fmt.Errorf("%w: geometry needs the %s attribute", shader.ErrHandleResolution, a.slot)
			}
			continue
		}
		layout.Attributes = append(layout.Attributes, wgpu.VertexAttribute{
			Format:         a.format,
			Offset:         a.offset,
			ShaderLocation: uint32(h),
		})
	}
	return layout, nil
}

// mesh is the buffer and vertex array pair a geometry node owns.
type mesh struct {
	device   device.Device
	buffer   device.Handle
	vao      device.Handle
	stride   int
	capacity int
	count    int
	mode     device.Primitive
	released bool
}

// newMesh allocates a buffer of capacity vertices, fills its head with initial and binds it with layout.
// If the vertex array cannot be created the buffer is released before returning.
func newMesh(dev device.Device, layout wgpu.VertexBufferLayout, mode device.Primitive, capacity int, initial []byte, usage device.BufferUsage) (*mesh, error) {
	if dev == nil {
		panic("scene: geometry requires a device")
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("geometry capacity must be positive, got %d", capacity)
	}
	stride := int(layout.ArrayStride)
	if len(initial) > capacity*stride {
		return nil, fmt.Errorf("%w: %d initial bytes, capacity %d bytes", ErrCapacityExceeded, len(initial), capacity*stride)
	}

	buffer, err := dev.CreateBuffer(initial, capacity*stride, usage)
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex buffer: %w", err)
	}
	vao, err := dev.CreateVertexArray(buffer, layout)
	if err != nil {
		dev.DeleteBuffer(buffer)
		return nil, fmt.Errorf("failed to create vertex array: %w", err)
	}

	common.Logger().Debug("geometry resources acquired", "buffer", buffer, "vao", vao, "capacity", capacity, "mode", mode.String())
	return &mesh{
		device:   dev,
		buffer:   buffer,
		vao:      vao,
		stride:   stride,
		capacity: capacity,
		count:    len(initial) / stride,
		mode:     mode,
	}, nil
}

// write overwrites vertices starting at vertex index first. It does not change the visible count.
func (m *mesh) write(first int, data []byte) error {
	if m.released {
		return ErrNodeReleased
	}
	vertices := len(data) / m.stride
	if first < 0 || first+vertices > m.capacity {
		return fmt.Errorf("%w: %d vertices at %d, capacity %d", ErrCapacityExceeded, vertices, first, m.capacity)
	}
	m.device.UpdateBuffer(m.buffer, first*m.stride, data)
	return nil
}

// draw submits the first count vertices, or records a skipped draw when there is nothing to submit.
func (m *mesh) draw(state *FrameState, count int) {
	if m.released || count <= 0 {
		state.Stats.SkippedDraws++
		return
	}
	state.Device.Draw(m.vao, m.mode, 0, count)
	state.Stats.DrawCalls++
	state.Stats.Vertices += count
}

func (m *mesh) release() {
	if m.released {
		return
	}
	m.released = true
	m.device.DeleteVertexArray(m.vao)
	m.device.DeleteBuffer(m.buffer)
	common.Logger().Debug("geometry resources released", "buffer", m.buffer, "vao", m.vao)
}

// geometryNode is the shared part of every geometry variant.
type geometryNode struct {
	baseNode
	mesh *mesh
}

func (g *geometryNode) Capacity() int {
	return g.mesh.capacity
}

func (g *geometryNode) Count() int {
	return g.mesh.count
}

func (g *geometryNode) Primitive() device.Primitive {
	return g.mesh.mode
}

func (g *geometryNode) Released() bool {
	return g.mesh.released
}

// Traverse draws the visible vertices and then the children.
func (g *geometryNode) Traverse(state *FrameState) {
	state.Stats.Nodes++
	g.mesh.draw(state, g.mesh.count)
	g.traverseChildren(state)
}

func (g *geometryNode) release() {
	g.mesh.release()
}
