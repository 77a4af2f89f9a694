// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

// Phase selects which update a drain runs.
//
type Phase uint8

// Evaluation phases.
//
const (
	PhaseNormal  Phase = iota // combinational propagation
	PhaseRising               // rising clock edge
	PhaseFalling              // falling clock edge
)

func (p Phase) String() string {
	switch p {
	case PhaseNormal:
		return "normal"
	case PhaseRising:
		return "rising"
	case PhaseFalling:
		return "falling"
	}
	return "invalid"
}

// A Component is a logic unit mounted in a Model.
//
// Outputs are positional: the value for output pin i is at index i of the
// slice returned by Init and Update. Every output pin that has an edge wired
// from it must be produced on every update, or the evaluation fails with a
// MissingOutputError.
//
// Components may implement fmt.Stringer to describe their internal state for
// display.
//
type Component interface {
	// Init returns the outputs of the component before its first update.
	Init() []Value
	// Update computes outputs from the current inputs. The inputs slice has
	// NumInputs() entries, indexed by pin, with the zero Value on unconnected
	// pins. Components with variable fan-in receive the values of all their
	// incoming edges in connection order.
	Update(phase Phase, inputs []Value) ([]Value, error)
	// NumInputs returns the input arity, or 0 for variable fan-in.
	NumInputs() int
	// NumOutputs returns the output arity, or 0 if output pins are not
	// checked at connection time.
	NumOutputs() int
}
