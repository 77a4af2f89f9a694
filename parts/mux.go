// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package parts

import (
	"strconv"

	ls "github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

// Mux pin numbers.
//
const (
	MuxA = iota
	MuxB
	MuxSel
)

// A Mux is a 2 way multiplexer.
//
//	Inputs: a[width], b[width], sel
//	Outputs: out[width]
//	Function: if sel == 0 { out = a } else { out = b }
//
// If sel is not a defined logic level, out is a when a and b agree and
// unknown otherwise.
//
type Mux struct {
	width int
}

// NewMux returns a new multiplexer.
//
func NewMux(width int) (*Mux, error) {
	if err := ls.CheckWidth(width); err != nil {
		return nil, errors.Wrap(err, "mux")
	}
	return &Mux{width: width}, nil
}

func (m *Mux) Init() []ls.Value { return []ls.Value{ls.Floating(m.width)} }

func (m *Mux) Update(_ ls.Phase, inputs []ls.Value) ([]ls.Value, error) {
	for _, in := range inputs[MuxA : MuxB+1] {
		if err := checkWidth("mux", in, m.width); err != nil {
			return nil, err
		}
	}
	a, b, sel := connected(inputs[MuxA], m.width), connected(inputs[MuxB], m.width), inputs[MuxSel]
	switch {
	case sel.IsLow():
		return []ls.Value{a}, nil
	case sel.IsHigh():
		return []ls.Value{b}, nil
	case a == b:
		return []ls.Value{a}, nil
	}
	return []ls.Value{ls.Unknown(m.width)}, nil
}

func (m *Mux) NumInputs() int  { return 3 }
func (m *Mux) NumOutputs() int { return 1 }
func (m *Mux) String() string  { return "MUX" + strconv.Itoa(m.width) }

// DMux pin numbers.
//
const (
	DMuxIn  = 0
	DMuxSel = 1
	DMuxA   = 0
	DMuxB   = 1
)

// A DMux is a 2 way demultiplexer.
//
//	Inputs: in[width], sel
//	Outputs: a[width], b[width]
//	Function: if sel == 0 { a = in; b = 0 } else { a = 0; b = in }
//
// If sel is not a defined logic level, both outputs are unknown.
//
type DMux struct {
	width int
}

// NewDMux returns a new demultiplexer.
//
func NewDMux(width int) (*DMux, error) {
	if err := ls.CheckWidth(width); err != nil {
		return nil, errors.Wrap(err, "dmux")
	}
	return &DMux{width: width}, nil
}

func (d *DMux) Init() []ls.Value {
	return []ls.Value{ls.Floating(d.width), ls.Floating(d.width)}
}

func (d *DMux) Update(_ ls.Phase, inputs []ls.Value) ([]ls.Value, error) {
	if err := checkWidth("dmux", inputs[DMuxIn], d.width); err != nil {
		return nil, err
	}
	in, sel := connected(inputs[DMuxIn], d.width), inputs[DMuxSel]
	zero := ls.New(0, d.width)
	switch {
	case sel.IsLow():
		return []ls.Value{in, zero}, nil
	case sel.IsHigh():
		return []ls.Value{zero, in}, nil
	}
	return []ls.Value{ls.Unknown(d.width), ls.Unknown(d.width)}, nil
}

func (d *DMux) NumInputs() int  { return 2 }
func (d *DMux) NumOutputs() int { return 2 }
func (d *DMux) String() string  { return "DMUX" + strconv.Itoa(d.width) }
