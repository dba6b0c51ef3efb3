package scene

import (
	"fmt"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/device"
	"github.com/Carmen-Shannon/oxy-graph/engine/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// DefaultPointSize is the rasterized point size used until SetPointSize is called.
const DefaultPointSize = 8

// PointNode draws a dynamic set of 2D points. Its buffer capacity is fixed at construction;
// the number of points drawn follows the last Update.
type PointNode interface {
	GeometryNode

	// Update replaces the drawn points. More points than Capacity is rejected and leaves the node unchanged.
	//
	// Parameters:
	//   - points: the new points, possibly empty
	//
	// Returns:
	//   - error: wraps ErrCapacityExceeded or ErrNodeReleased
	Update(points []common.Point2) error

	// Clear stops drawing any points. Buffer contents are kept.
	Clear()

	// PointSize returns the point size in pixels.
	PointSize() float32

	// SetPointSize sets the point size, clamped to the device's supported range.
	SetPointSize(size float32)
}

type pointNode struct {
	geometryNode
	size float32
}

var _ PointNode = &pointNode{}

// NewPointNode allocates a dynamic point buffer bound to the position attribute of handles.
//
// Parameters:
//   - dev: the device owning the buffer
//   - handles: the handle table of the shader the points are drawn with
//   - capacity: the maximum number of points
//   - options: functional options such as WithName and WithChildren
//
// Returns:
//   - PointNode: the new node, drawing nothing until updated
//   - error: error if the layout cannot be bound or the device cannot allocate
func NewPointNode(dev device.Device, handles shader.HandleTable, capacity int, options ...NodeBuilderOption) (PointNode, error) {
	stride := uint64(unsafe.Sizeof(common.Point2{}))
	layout, err := vertexLayout(handles, stride,
		attribute{slot: shader.SlotPosition, format: wgpu.VertexFormatFloat32x2, required: true},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create point node: %w", err)
	}
	m, err := newMesh(dev, layout, device.PrimitivePoints, capacity, nil, device.UsageDynamic)
	if err != nil {
		return nil, fmt.Errorf("failed to create point node: %w", err)
	}

	n := &pointNode{geometryNode: geometryNode{mesh: m}}
	n.SetPointSize(DefaultPointSize)
	n.init(n, KindGeometry, options)
	return n, nil
}

func (n *pointNode) Update(points []common.Point2) error {
	if n.mesh.released {
		return ErrNodeReleased
	}
	if len(points) > n.mesh.capacity {
		return fmt.Errorf("%w: %d points, capacity %d", ErrCapacityExceeded, len(points), n.mesh.capacity)
	}
	if len(points) > 0 {
		if err := n.mesh.write(0, common.SliceToBytes(points)); err != nil {
			return err
		}
	}
	n.mesh.count = len(points)
	return nil
}

func (n *pointNode) Clear() {
	n.mesh.count = 0
}

func (n *pointNode) PointSize() float32 {
	return n.size
}

func (n *pointNode) SetPointSize(size float32) {
	n.size = n.mesh.device.Limits().PointSize.Clamp(size)
}

func (n *pointNode) Traverse(state *FrameState) {
	state.Stats.Nodes++
	if n.mesh.count > 0 {
		state.Device.SetPointSize(n.size)
	}
	n.mesh.draw(state, n.mesh.count)
	n.traverseChildren(state)
}
