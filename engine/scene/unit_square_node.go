package scene

import (
	"fmt"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/device"
	"github.com/Carmen-Shannon/oxy-graph/engine/shader"
	"github.com/Carmen-Shannon/oxy-graph/engine/shapes"
	"github.com/cogentcore/webgpu/wgpu"
)

// NewUnitSquareNode uploads a unit square in the z=0 plane facing +Z, drawn as a triangle strip.
// The normal attribute is bound only if the shader resolved it.
//
// Parameters:
//   - dev: the device owning the buffer
//   - handles: the handle table of the shader the square is drawn with
//   - options: functional options such as WithName and WithChildren
//
// Returns:
//   - GeometryNode: the new node
//   - error: error if the layout cannot be bound or the device cannot allocate
func NewUnitSquareNode(dev device.Device, handles shader.HandleTable, options ...NodeBuilderOption) (GeometryNode, error) {
	stride := uint64(unsafe.Sizeof(common.VertexAndNormal{}))
	layout, err := vertexLayout(handles, stride,
		attribute{slot: shader.SlotPosition, format: wgpu.VertexFormatFloat32x3, offset: 0, required: true},
		attribute{slot: shader.SlotNormal, format: wgpu.VertexFormatFloat32x3, offset: uint64(unsafe.Offsetof(common.VertexAndNormal{}.Normal))},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create unit square node: %w", err)
	}

	verts := shapes.UnitSquare()
	m, err := newMesh(dev, layout, device.PrimitiveTriangleStrip, len(verts), common.SliceToBytes(verts), device.UsageStatic)
	if err != nil {
		return nil, fmt.Errorf("failed to create unit square node: %w", err)
	}

	n := &unitSquareNode{geometryNode: geometryNode{mesh: m}}
	n.init(n, KindGeometry, options)
	return n, nil
}

type unitSquareNode struct {
	geometryNode
}

var _ GeometryNode = &unitSquareNode{}
