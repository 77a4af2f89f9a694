// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package parts

import (
	"strconv"

	ls "github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

// A Wire passes its input through and detects short circuits between multiple
// drivers. It accepts any number of incoming edges.
//
//	Inputs: variable
//	Outputs: out[width]
//	Function: out = in[0] if all inputs are equal, in[0] burned otherwise.
//
// Incoming edges that carry no value yet are ignored.
//
type Wire struct {
	width   int
	shorted bool
}

// NewWire returns a new wire of the given width.
//
func NewWire(width int) (*Wire, error) {
	if err := ls.CheckWidth(width); err != nil {
		return nil, errors.Wrap(err, "wire")
	}
	return &Wire{width: width}, nil
}

// Shorted returns true if the drivers disagreed at the last update.
//
func (w *Wire) Shorted() bool { return w.shorted }

// Init implements logicsim.Component.
//
func (w *Wire) Init() []ls.Value { return []ls.Value{ls.Floating(w.width)} }

// Update implements logicsim.Component.
//
func (w *Wire) Update(_ ls.Phase, inputs []ls.Value) ([]ls.Value, error) {
	w.shorted = false
	var out ls.Value
	for _, in := range inputs {
		if !in.IsConnected() {
			// edge not written yet
			continue
		}
		if err := checkWidth("wire", in, w.width); err != nil {
			return nil, err
		}
		switch {
		case !out.IsConnected():
			out = in
		case in != out:
			w.shorted = true
		}
	}
	if !out.IsConnected() {
		return []ls.Value{ls.Floating(w.width)}, nil
	}
	if w.shorted {
		out = out.Burn()
	}
	return []ls.Value{out}, nil
}

// NumInputs returns 0: wires have variable fan-in.
//
func (w *Wire) NumInputs() int { return 0 }

// NumOutputs returns 0: wires have no fixed pin contract.
//
func (w *Wire) NumOutputs() int { return 0 }

func (w *Wire) String() string {
	s := "WIRE" + strconv.Itoa(w.width)
	if w.shorted {
		s += " shorted"
	}
	return s
}
