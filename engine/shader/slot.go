package shader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-graph/engine/device"
)

// Slot names one entry of the handle table a shader publishes to the scene.
type Slot int

const (
	// Vertex attributes.
	SlotPosition Slot = iota
	SlotNormal
	SlotVertexColor

	// Uniforms.
	SlotProjectionView
	SlotPVM
	SlotModelMatrix
	SlotNormalMatrix
	SlotColor

	// SlotCount is the number of slots; it is not a slot.
	SlotCount
)

var slotNames = [SlotCount]string{
	SlotPosition:       "position",
	SlotNormal:         "normal",
	SlotVertexColor:    "vertex-color",
	SlotProjectionView: "projection-view",
	SlotPVM:            "pvm",
	SlotModelMatrix:    "model-matrix",
	SlotNormalMatrix:   "normal-matrix",
	SlotColor:          "color",
}

func (s Slot) String() string {
	if s < 0 || s >= SlotCount {
		return fmt.Sprintf("slot(%d)", int(s))
	}
	return slotNames[s]
}

// IsAttribute reports whether the slot is fed from a vertex buffer rather than a uniform.
func (s Slot) IsAttribute() bool {
	return s >= SlotPosition && s <= SlotVertexColor
}

// HandleTable maps every slot to the resolved handle of the active program.
// Slots the program does not use hold device.InvalidHandle.
type HandleTable [SlotCount]device.Handle

// NewHandleTable returns a table with every slot unresolved.
func NewHandleTable() HandleTable {
	var t HandleTable
	for i := range t {
		t[i] = device.InvalidHandle
	}
	return t
}

// Get returns the handle for a slot.
func (t HandleTable) Get(s Slot) device.Handle {
	return t[s]
}

// Binding ties a slot to the name the program declares for it.
type Binding struct {
	Slot     Slot
	Name     string
	Required bool
}

// Require binds a slot whose absence fails program construction.
//
// Parameters:
//   - slot: the slot to fill
//   - name: the attribute or uniform name in the program source
//
// Returns:
//   - Binding: the required binding
func Require(slot Slot, name string) Binding {
	return Binding{Slot: slot, Name: name, Required: true}
}

// Optional binds a slot that is left unresolved when the program does not use it.
//
// Parameters:
//   - slot: the slot to fill
//   - name: the attribute or uniform name in the program source
//
// Returns:
//   - Binding: the optional binding
func Optional(slot Slot, name string) Binding {
	return Binding{Slot: slot, Name: name}
}
