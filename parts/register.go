// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package parts

import (
	"fmt"

	ls "github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

// Register pin numbers.
//
const (
	RegData = iota
	RegEnable
	RegClock
	RegClear
	regInputs
)

// RegOut is the register's only output pin.
//
const RegOut = 0

// A Register stores a value across evaluations.
//
//	Inputs: data[width], enable, clock, clear
//	Outputs: out[width]
//
// In PhaseNormal, a high clear input loads data immediately and outputs it.
// Otherwise, data is latched when enable is high and clock went from low to
// high since the previous evaluation; out then shows the value stored before
// the latch until the next evaluation. In PhaseRising, the phase itself is the
// clock edge: enable alone latches data. PhaseFalling only records that the
// clock is low. Clear takes precedence in every phase.
//
type Register struct {
	width   int
	stored  ls.Value
	prevLow bool // clock was low at the previous evaluation
}

// NewRegister returns a register of the given width. Its initial content is
// floating.
//
func NewRegister(width int) (*Register, error) {
	if err := ls.CheckWidth(width); err != nil {
		return nil, errors.Wrap(err, "register")
	}
	return &Register{width: width, stored: ls.Floating(width)}, nil
}

// Stored returns the current content of the register.
//
func (r *Register) Stored() ls.Value { return r.stored }

// Width returns the register's data width.
//
func (r *Register) Width() int { return r.width }

// Init implements logicsim.Component.
//
func (r *Register) Init() []ls.Value { return []ls.Value{r.stored} }

// Update implements logicsim.Component.
//
func (r *Register) Update(phase ls.Phase, inputs []ls.Value) ([]ls.Value, error) {
	if len(inputs) < regInputs {
		return nil, errors.Errorf("register: expected %d inputs, got %d", regInputs, len(inputs))
	}
	data := connected(inputs[RegData], r.width)
	if data.Width() != r.width {
		return nil, &ls.WidthMismatchError{Op: "register data", Left: r.width, Right: data.Width()}
	}
	clk := inputs[RegClock]
	out := r.stored

	if inputs[RegClear].IsHigh() {
		r.stored = data
		r.prevLow = false
		return []ls.Value{data}, nil
	}

	switch phase {
	case ls.PhaseRising:
		if inputs[RegEnable].IsHigh() {
			r.stored = data
		}
		r.prevLow = false
	case ls.PhaseFalling:
		r.prevLow = true
	default:
		if inputs[RegEnable].IsHigh() && clk.IsHigh() && r.prevLow {
			r.stored = data
			r.prevLow = false
		} else {
			r.prevLow = clk.IsLow()
		}
	}
	return []ls.Value{out}, nil
}

// NumInputs implements logicsim.Component.
//
func (r *Register) NumInputs() int { return regInputs }

// NumOutputs implements logicsim.Component.
//
func (r *Register) NumOutputs() int { return 1 }

func (r *Register) String() string {
	return fmt.Sprintf("REG%d stored=%s", r.width, r.stored)
}
