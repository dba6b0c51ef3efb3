package scene

import (
	"fmt"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/device"
	"github.com/Carmen-Shannon/oxy-graph/engine/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// DragLineNode draws a single two-color line whose endpoints are replaced interactively.
// The line is drawn only once both endpoints have been set since it was last cleared; replacing
// the start point begins a new line and hides it until the end point is set again.
type DragLineNode interface {
	GeometryNode

	// ReplaceStart sets the start point and hides the line until ReplaceEnd is called.
	ReplaceStart(p common.Point2) error

	// ReplaceEnd sets the end point; the line becomes visible if the start point is set.
	ReplaceEnd(p common.Point2) error

	// Clear hides the line and forgets both endpoints.
	Clear()

	// Visible reports whether the next traversal draws the line.
	Visible() bool

	// Segment returns the last-set endpoint positions.
	Segment() common.Segment2

	// Width returns the line width in pixels.
	Width() float32

	// SetWidth sets the line width, clamped to the device's supported range.
	SetWidth(w float32)
}

type dragLineNode struct {
	geometryNode
	start, end       common.PositionAndColor
	startSet, endSet bool
	width            float32
}

var _ DragLineNode = &dragLineNode{}

// NewDragLineNode allocates a two-vertex position-and-color buffer.
// The color attribute is bound only if the shader resolved it.
//
// Parameters:
//   - dev: the device owning the buffer
//   - handles: the handle table of the shader the line is drawn with
//   - startColor: color at the start point
//   - endColor: color at the end point
//   - width: line width in pixels
//   - options: functional options such as WithName and WithChildren
//
// Returns:
//   - DragLineNode: the new node, hidden until both endpoints are set
//   - error: error if the layout cannot be bound or the device cannot allocate
func NewDragLineNode(dev device.Device, handles shader.HandleTable, startColor, endColor common.Color4, width float32, options ...NodeBuilderOption) (DragLineNode, error) {
	stride := uint64(unsafe.Sizeof(common.PositionAndColor{}))
	layout, err := vertexLayout(handles, stride,
		attribute{slot: shader.SlotPosition, format: wgpu.VertexFormatFloat32x2, offset: 0, required: true},
		attribute{slot: shader.SlotVertexColor, format: wgpu.VertexFormatFloat32x4, offset: uint64(unsafe.Offsetof(common.PositionAndColor{}.Color))},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create drag line node: %w", err)
	}

	initial := []common.PositionAndColor{{Color: startColor}, {Color: endColor}}
	m, err := newMesh(dev, layout, device.PrimitiveLines, len(initial), common.SliceToBytes(initial), device.UsageDynamic)
	if err != nil {
		return nil, fmt.Errorf("failed to create drag line node: %w", err)
	}
	m.count = 0

	n := &dragLineNode{
		geometryNode: geometryNode{mesh: m},
		start:        initial[0],
		end:          initial[1],
	}
	n.SetWidth(width)
	n.init(n, KindGeometry, options)
	return n, nil
}

func (n *dragLineNode) ReplaceStart(p common.Point2) error {
	if n.mesh.released {
		return ErrNodeReleased
	}
	n.start.Position = p
	if err := n.mesh.write(0, common.StructToBytes(&n.start)); err != nil {
		return err
	}
	n.startSet = true
	n.endSet = false
	n.refresh()
	return nil
}

func (n *dragLineNode) ReplaceEnd(p common.Point2) error {
	if n.mesh.released {
		return ErrNodeReleased
	}
	n.end.Position = p
	if err := n.mesh.write(1, common.StructToBytes(&n.end)); err != nil {
		return err
	}
	n.endSet = true
	n.refresh()
	return nil
}

func (n *dragLineNode) Clear() {
	n.startSet = false
	n.endSet = false
	n.refresh()
}

// refresh derives the visible count from which endpoints are set.
func (n *dragLineNode) refresh() {
	if n.startSet && n.endSet {
		n.mesh.count = 2
		return
	}
	n.mesh.count = 0
}

func (n *dragLineNode) Visible() bool {
	return n.mesh.count == 2
}

func (n *dragLineNode) Segment() common.Segment2 {
	return common.Segment2{A: n.start.Position, B: n.end.Position}
}

func (n *dragLineNode) Width() float32 {
	return n.width
}

func (n *dragLineNode) SetWidth(w float32) {
	n.width = n.mesh.device.Limits().LineWidth.Clamp(w)
}

func (n *dragLineNode) Traverse(state *FrameState) {
	state.Stats.Nodes++
	if n.Visible() {
		state.Device.SetLineWidth(n.width)
	}
	n.mesh.draw(state, n.mesh.count)
	n.traverseChildren(state)
}
