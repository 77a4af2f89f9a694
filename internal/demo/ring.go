// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package demo

import (
	"strings"

	ls "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/parts"
	"github.com/pkg/errors"
)

// Ring is a ring oscillator: an odd number of inverters connected in a loop.
// It never settles; Step evaluates every inverter once instead.
//
type Ring struct {
	m     *ls.Model
	gates []ls.NodeID
}

// NewRing returns a ring of n inverters. n must be odd.
//
func NewRing(n int, opts ...ls.Option) (*Ring, error) {
	if n < 1 || n%2 == 0 {
		return nil, errors.Errorf("invalid inverter count %d: must be odd", n)
	}
	rg := &Ring{m: ls.NewModel(opts...)}
	b := &builder{m: rg.m}
	for range n {
		rg.gates = append(rg.gates, b.add(parts.NewNot(1)))
	}
	for i, g := range rg.gates {
		b.connect(g, 0, rg.gates[(i+1)%n], 0, 1)
	}
	if b.err != nil {
		return nil, b.err
	}
	return rg, nil
}

func (rg *Ring) Model() *ls.Model { return rg.m }

// Reset forces the input of the first inverter low and the others floating,
// then lets the low level travel once around the ring.
//
func (rg *Ring) Reset() error {
	in, err := rg.m.Incoming(rg.gates[0])
	if err != nil {
		return err
	}
	if len(in) != 1 {
		return errors.Errorf("ring broken at node %d", rg.gates[0])
	}
	// rebuild the closing edge with a defined level
	e, err := rg.m.Edge(in[0])
	if err != nil {
		return err
	}
	if err = rg.m.Disconnect(in[0]); err != nil {
		return err
	}
	if _, err = rg.m.Connect(e.Src, e.SrcPin, e.Dst, e.DstPin, ls.FromBool(false)); err != nil {
		return err
	}
	if err = rg.m.Enqueue(rg.gates...); err != nil {
		return err
	}
	return rg.m.RunNormal()
}

// Step evaluates each inverter once, in ring order.
//
func (rg *Ring) Step() (string, error) {
	if err := rg.m.Enqueue(rg.gates...); err != nil {
		return "", err
	}
	if err := rg.m.RunNormal(); err != nil {
		return "", err
	}
	return rg.Levels(), nil
}

// Levels returns the output level of each inverter.
//
func (rg *Ring) Levels() string {
	var b strings.Builder
	for _, g := range rg.gates {
		out, _ := rg.m.Outputs(g)
		b.WriteString(out[0].String())
	}
	return b.String()
}

// Settle tries to settle the ring. It always fails with a
// logicsim.NoConvergenceError.
//
func (rg *Ring) Settle() (int, error) {
	return rg.m.Settle(ls.PhaseNormal)
}
