// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package parts provides the built-in components for logicsim: logic gates,
// registers, wires, I/O parts, multiplexers and adders.
//
package parts

import (
	"strconv"

	ls "github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

// MaxInputs is the maximum number of inputs of a gate.
//
const MaxInputs = 64

// gate operators
type binOp func(a, b ls.Value) (ls.Value, error)

var (
	opAnd binOp = ls.Value.And
	opOr  binOp = ls.Value.Or
	opXor binOp = ls.Value.Xor
)

// A Gate reduces its inputs left to right with a binary operator, optionally
// inverting the result. Gates are stateless and ignore the evaluation phase.
//
type Gate struct {
	name   string
	op     binOp
	invert bool
	width  int
	inputs int
}

func newGate(name string, op binOp, invert bool, width, inputs int) (*Gate, error) {
	if err := ls.CheckWidth(width); err != nil {
		return nil, errors.Wrap(err, name)
	}
	if inputs < 1 || inputs > MaxInputs {
		return nil, errors.Errorf("%s: invalid input count %d: must be in range [1, %d]", name, inputs, MaxInputs)
	}
	return &Gate{name: name, op: op, invert: invert, width: width, inputs: inputs}, nil
}

// NewAnd returns a AND gate.
//
//	Inputs: in[0] .. in[inputs-1]
//	Outputs: out
//	Function: out = in[0] & in[1] & ... & in[inputs-1]
//
func NewAnd(width, inputs int) (*Gate, error) { return newGate("AND", opAnd, false, width, inputs) }

// NewOr returns a OR gate.
//
//	Function: out = in[0] | in[1] | ... | in[inputs-1]
//
func NewOr(width, inputs int) (*Gate, error) { return newGate("OR", opOr, false, width, inputs) }

// NewXor returns a XOR gate.
//
//	Function: out = in[0] ^ in[1] ^ ... ^ in[inputs-1]
//
func NewXor(width, inputs int) (*Gate, error) { return newGate("XOR", opXor, false, width, inputs) }

// NewNand returns a NAND gate.
//
//	Function: out = !(in[0] & in[1] & ... & in[inputs-1])
//
func NewNand(width, inputs int) (*Gate, error) { return newGate("NAND", opAnd, true, width, inputs) }

// NewNor returns a NOR gate.
//
//	Function: out = !(in[0] | in[1] | ... | in[inputs-1])
//
func NewNor(width, inputs int) (*Gate, error) { return newGate("NOR", opOr, true, width, inputs) }

// NewXnor returns a XNOR gate.
//
//	Function: out = !(in[0] ^ in[1] ^ ... ^ in[inputs-1])
//
func NewXnor(width, inputs int) (*Gate, error) { return newGate("XNOR", opXor, true, width, inputs) }

// NewNot returns a NOT gate.
//
//	Inputs: in
//	Outputs: out
//	Function: out = !in
//
func NewNot(width int) (*Gate, error) { return newGate("NOT", nil, true, width, 1) }

// Name returns the gate kind, e.g. "NAND".
//
func (g *Gate) Name() string { return g.name }

// Width returns the gate's bit width.
//
func (g *Gate) Width() int { return g.width }

// Init implements logicsim.Component.
//
func (g *Gate) Init() []ls.Value { return []ls.Value{ls.Floating(g.width)} }

// Update implements logicsim.Component. Unconnected inputs are treated as
// floating.
//
func (g *Gate) Update(_ ls.Phase, inputs []ls.Value) ([]ls.Value, error) {
	n := g.inputs
	if len(inputs) < n {
		n = len(inputs)
	}
	if n == 0 {
		return []ls.Value{ls.Floating(g.width)}, nil
	}
	for _, in := range inputs[:n] {
		if err := checkWidth(g.name, in, g.width); err != nil {
			return nil, err
		}
	}
	out := connected(inputs[0], g.width)
	for _, in := range inputs[1:n] {
		var err error
		if out, err = g.op(out, connected(in, g.width)); err != nil {
			return nil, errors.Wrap(err, g.name)
		}
	}
	if g.invert {
		out = out.Not()
	}
	return []ls.Value{out}, nil
}

// NumInputs implements logicsim.Component.
//
func (g *Gate) NumInputs() int { return g.inputs }

// NumOutputs implements logicsim.Component.
//
func (g *Gate) NumOutputs() int { return 1 }

func (g *Gate) String() string {
	if g.inputs == 1 {
		return g.name + strconv.Itoa(g.width)
	}
	return g.name + strconv.Itoa(g.width) + "x" + strconv.Itoa(g.inputs)
}

// checkWidth fails if v is connected and its width differs from width.
func checkWidth(op string, v ls.Value, width int) error {
	if v.IsConnected() && v.Width() != width {
		return &ls.WidthMismatchError{Op: op, Left: width, Right: v.Width()}
	}
	return nil
}

// connected substitutes a floating value for unconnected pins.
func connected(v ls.Value, width int) ls.Value {
	if !v.IsConnected() {
		return ls.Floating(width)
	}
	return v
}
