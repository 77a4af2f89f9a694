// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package parts

import (
	"strconv"

	ls "github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

// Adder pin numbers.
//
const (
	AddA = iota
	AddB
	AddCarryIn
)

// Adder output pins.
//
const (
	AddSum = iota
	AddCarryOut
)

// An Adder is a ripple carry adder.
//
//	Inputs: a[width], b[width], cin
//	Outputs: sum[width], cout
//	Function: sum = lsb(a + b + cin)
//	          cout = msb(a + b + cin)
//
// Undefined input bits propagate along the carry chain with the usual
// four-state rules, so a floating bit only spoils the bits above it. An
// unconnected carry input counts as 0.
//
type Adder struct {
	width int
}

// NewAdder returns a new adder.
//
func NewAdder(width int) (*Adder, error) {
	if err := ls.CheckWidth(width); err != nil {
		return nil, errors.Wrap(err, "adder")
	}
	return &Adder{width: width}, nil
}

func (a *Adder) Init() []ls.Value {
	return []ls.Value{ls.Floating(a.width), ls.Floating(1)}
}

// bit returns bit i of v as a 1 bit value.
func bit(v ls.Value, i int) ls.Value {
	s, _ := v.Bit(i)
	r, _ := ls.Floating(1).WithBit(0, s)
	return r
}

func (a *Adder) Update(_ ls.Phase, inputs []ls.Value) ([]ls.Value, error) {
	va, vb := connected(inputs[AddA], a.width), connected(inputs[AddB], a.width)
	if va.Width() != a.width || vb.Width() != a.width {
		return nil, &ls.WidthMismatchError{Op: "adder", Left: va.Width(), Right: vb.Width()}
	}
	c := inputs[AddCarryIn]
	if !c.IsConnected() {
		c = ls.FromBool(false)
	} else if c.Width() != 1 {
		return nil, &ls.WidthMismatchError{Op: "adder carry", Left: 1, Right: c.Width()}
	}
	sum := ls.New(0, a.width)
	for i := 0; i < a.width; i++ {
		x, y := bit(va, i), bit(vb, i)
		s0, _ := x.Xor(y)
		s, _ := s0.Xor(c)
		g, _ := x.And(y)
		p, _ := s0.And(c)
		c, _ = g.Or(p)
		st, _ := s.Bit(0)
		sum, _ = sum.WithBit(i, st)
	}
	if va.IsBurned() || vb.IsBurned() {
		sum = sum.Burn()
	}
	return []ls.Value{sum, c}, nil
}

func (a *Adder) NumInputs() int  { return 3 }
func (a *Adder) NumOutputs() int { return 2 }
func (a *Adder) String() string  { return "ADD" + strconv.Itoa(a.width) }
