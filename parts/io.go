// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package parts

import (
	"fmt"

	ls "github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

// An Input is a source driven by the caller.
//
//	Outputs: out
//	Function: out = the last value passed to Set
//
// Inputs accept no incoming edges; any that are connected are ignored.
//
type Input struct {
	v ls.Value
}

// NewInput returns an input of the given width, initially floating.
//
func NewInput(width int) (*Input, error) {
	if err := ls.CheckWidth(width); err != nil {
		return nil, errors.Wrap(err, "input")
	}
	return &Input{v: ls.Floating(width)}, nil
}

// NewConstant returns an input permanently set to v.
//
func NewConstant(v ls.Value) *Input {
	return &Input{v: v}
}

// Set changes the value of the input. The new value must have the input's
// width. The change is only visible once the input is evaluated.
//
func (i *Input) Set(v ls.Value) error {
	if v.Width() != i.v.Width() {
		return &ls.WidthMismatchError{Op: "input set", Left: i.v.Width(), Right: v.Width()}
	}
	i.v = v
	return nil
}

// Value returns the current value of the input.
//
func (i *Input) Value() ls.Value { return i.v }

func (i *Input) Init() []ls.Value                                { return []ls.Value{i.v} }
func (i *Input) Update(ls.Phase, []ls.Value) ([]ls.Value, error) { return []ls.Value{i.v}, nil }
func (i *Input) NumInputs() int                                  { return 0 }
func (i *Input) NumOutputs() int                                 { return 1 }
func (i *Input) String() string                                  { return "IN " + i.v.String() }

// A Clock is a 1 bit source following the evaluation phases: it goes high on
// PhaseRising, low on PhaseFalling and holds its level in PhaseNormal.
//
type Clock struct {
	high bool
}

// NewClock returns a new clock, initially low.
//
func NewClock() *Clock { return &Clock{} }

// High returns the current clock level.
//
func (c *Clock) High() bool { return c.high }

func (c *Clock) Init() []ls.Value { return []ls.Value{ls.FromBool(c.high)} }

func (c *Clock) Update(phase ls.Phase, _ []ls.Value) ([]ls.Value, error) {
	switch phase {
	case ls.PhaseRising:
		c.high = true
	case ls.PhaseFalling:
		c.high = false
	}
	return []ls.Value{ls.FromBool(c.high)}, nil
}

func (c *Clock) NumInputs() int  { return 0 }
func (c *Clock) NumOutputs() int { return 1 }
func (c *Clock) String() string  { return "CLK " + ls.FromBool(c.high).String() }

// A Probe records the value on its input. If a callback is set, it is called
// with the input value on every evaluation.
//
//	Inputs: in
//	Outputs: none
//
type Probe struct {
	name string
	v    ls.Value
	f    func(ls.Value)
}

// NewProbe returns a new probe. f may be nil.
//
func NewProbe(name string, f func(ls.Value)) *Probe {
	return &Probe{name: name, f: f}
}

// Value returns the last value seen by the probe. It is the zero Value until
// the probe is evaluated with a connected input.
//
func (p *Probe) Value() ls.Value { return p.v }

// Name returns the probe's name.
//
func (p *Probe) Name() string { return p.name }

func (p *Probe) Init() []ls.Value { return nil }

func (p *Probe) Update(_ ls.Phase, inputs []ls.Value) ([]ls.Value, error) {
	p.v = inputs[0]
	if p.f != nil {
		p.f(p.v)
	}
	return nil, nil
}

func (p *Probe) NumInputs() int { return 1 }

// NumOutputs returns 0. Any edge wired from a probe fails at evaluation time.
//
func (p *Probe) NumOutputs() int { return 0 }

func (p *Probe) String() string { return fmt.Sprintf("PROBE %s=%s", p.name, p.v) }
