package shader

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/device"
	"github.com/Carmen-Shannon/oxy-graph/engine/shader/glsl"
)

var (
	// ErrHandleResolution is returned when a required attribute or uniform cannot be resolved.
	ErrHandleResolution = errors.New("shader handle resolution failed")

	// ErrCompile is returned when the device cannot compile or link a program.
	ErrCompile = errors.New("shader compilation failed")
)

// Program is a compiled GPU program together with its resolved handle table.
type Program interface {
	// Name returns the program's display name.
	Name() string

	// Handle returns the device program handle.
	Handle() device.Handle

	// Handles returns the resolved handle table. Unbound slots are invalid.
	Handles() HandleTable

	// Declarations returns the attributes and uniforms the sources declare.
	Declarations() glsl.Declarations

	// Use binds the program as current on the device.
	Use()

	// Release deletes the program from the device. Subsequent calls are no-ops.
	Release()
}

// program is the implementation of the Program interface.
type program struct {
	name           string
	vertexSource   string
	fragmentSource string
	bindings       []Binding

	device  device.Device
	handle  device.Handle
	handles HandleTable
	decls   glsl.Declarations

	released bool
}

var _ Program = &program{}

// NewProgram compiles a program and resolves every binding against it.
// A required binding that resolves to an invalid handle fails construction and releases the program.
//
// Parameters:
//   - dev: the device to compile on
//   - options: functional options supplying sources and bindings
//
// Returns:
//   - Program: the compiled program
//   - error: wraps ErrCompile or ErrHandleResolution on failure
func NewProgram(dev device.Device, options ...ProgramBuilderOption) (Program, error) {
	if dev == nil {
		panic("shader: NewProgram requires a device")
	}

	p := &program{
		name:    "program",
		device:  dev,
		handle:  device.InvalidHandle,
		handles: NewHandleTable(),
	}
	for _, opt := range options {
		opt(p)
	}

	decls, err := glsl.ParseProgram(p.vertexSource, p.fragmentSource)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCompile, p.name, err)
	}
	p.decls = decls

	handle, err := dev.CompileProgram(p.vertexSource, p.fragmentSource)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCompile, p.name, err)
	}
	p.handle = handle

	if err := p.resolve(); err != nil {
		p.Release()
		return nil, err
	}

	common.Logger().Info("shader program ready", "name", p.name, "program", p.handle)
	return p, nil
}

// resolve looks up every binding and fills the handle table.
func (p *program) resolve() error {
	for _, b := range p.bindings {
		var h device.Handle
		if b.Slot.IsAttribute() {
			h = p.device.AttribLocation(p.handle, b.Name)
		} else {
			h = p.device.UniformLocation(p.handle, b.Name)
		}

		if !h.Valid() {
			if b.Required {
				return fmt.Errorf("%w: %s: %s %q: %s", ErrHandleResolution, p.name, b.Slot, b.Name, p.missingReason(b))
			}
			common.Logger().Debug("optional shader handle unused", "program", p.name, "slot", b.Slot.String(), "name", b.Name)
			continue
		}

		p.handles[b.Slot] = h
		common.Logger().Debug("shader handle resolved", "program", p.name, "slot", b.Slot.String(), "name", b.Name, "handle", h)
	}
	return nil
}

// missingReason distinguishes a name the sources never declare from one the compiler dropped.
func (p *program) missingReason(b Binding) string {
	declared := false
	if b.Slot.IsAttribute() {
		_, declared = p.decls.Input(b.Name)
	} else {
		declared = p.decls.HasUniform(b.Name)
	}
	if declared {
		return "declared but inactive in the linked program"
	}
	return "not declared"
}

func (p *program) Name() string {
	return p.name
}

func (p *program) Handle() device.Handle {
	return p.handle
}

func (p *program) Handles() HandleTable {
	return p.handles
}

func (p *program) Declarations() glsl.Declarations {
	return p.decls
}

func (p *program) Use() {
	p.device.UseProgram(p.handle)
}

func (p *program) Release() {
	if p.released {
		return
	}
	p.released = true
	p.device.DeleteProgram(p.handle)
	common.Logger().Debug("shader program released", "name", p.name, "program", p.handle)
}
