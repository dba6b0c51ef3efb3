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

// NGonNode draws a filled regular polygon as a static triangle fan.
type NGonNode interface {
	GeometryNode

	// VertexList returns the polygon's corners in counter-clockwise order.
	VertexList() []common.Point2
}

type ngonNode struct {
	geometryNode
	perimeter []common.Point2
}

var _ NGonNode = &ngonNode{}

// NewNGonNode uploads a prebuilt fan into a static buffer bound to the position attribute of handles.
//
// Parameters:
//   - dev: the device owning the buffer
//   - handles: the handle table of the shader the polygon is drawn with
//   - fan: the polygon's triangle fan
//   - options: functional options such as WithName and WithChildren
//
// Returns:
//   - NGonNode: the new node
//   - error: error if the layout cannot be bound or the device cannot allocate
func NewNGonNode(dev device.Device, handles shader.HandleTable, fan shapes.Fan, options ...NodeBuilderOption) (NGonNode, error) {
	if len(fan.Vertices) < shapes.MinSides+2 {
		return nil, fmt.Errorf("failed to create n-gon node: fan has %d vertices", len(fan.Vertices))
	}
	stride := uint64(unsafe.Sizeof(common.Point2{}))
	layout, err := vertexLayout(handles, stride,
		attribute{slot: shader.SlotPosition, format: wgpu.VertexFormatFloat32x2, required: true},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create n-gon node: %w", err)
	}
	m, err := newMesh(dev, layout, device.PrimitiveTriangleFan, len(fan.Vertices), common.SliceToBytes(fan.Vertices), device.UsageStatic)
	if err != nil {
		return nil, fmt.Errorf("failed to create n-gon node: %w", err)
	}

	n := &ngonNode{geometryNode: geometryNode{mesh: m}, perimeter: fan.Perimeter()}
	n.init(n, KindGeometry, options)
	return n, nil
}

// NewRegularNGonNode generates and uploads a regular polygon.
//
// Parameters:
//   - dev: the device owning the buffer
//   - handles: the handle table of the shader the polygon is drawn with
//   - spec: the polygon's center, side count and radius
//   - options: functional options such as WithName and WithChildren
//
// Returns:
//   - NGonNode: the new node
//   - error: error if the polygon is degenerate or the node cannot be built
func NewRegularNGonNode(dev device.Device, handles shader.HandleTable, spec shapes.NGonSpec, options ...NodeBuilderOption) (NGonNode, error) {
	fan, err := shapes.NGon(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to create n-gon node: %w", err)
	}
	return NewNGonNode(dev, handles, fan, options...)
}

func (n *ngonNode) VertexList() []common.Point2 {
	out := make([]common.Point2, len(n.perimeter))
	copy(out, n.perimeter)
	return out
}
