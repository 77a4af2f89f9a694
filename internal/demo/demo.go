// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package demo provides reference circuits for the logicsim command.
//
package demo

import (
	"sort"

	ls "github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

// A Circuit is a ready to run demo circuit.
//
type Circuit interface {
	// Model returns the circuit's graph.
	Model() *ls.Model
	// Reset brings the circuit to its initial state.
	Reset() error
	// Step runs one cycle and returns a short description of the new state.
	Step() (string, error)
}

type entry struct {
	desc string
	new  func(opts ...ls.Option) (Circuit, error)
}

var registry = map[string]entry{
	"counter": {"4 bit synchronous counter built from registers and gates", func(opts ...ls.Option) (Circuit, error) { return NewCounter(4, opts...) }},
	"latch":   {"NOR based SR latch cycling through set, hold and reset", func(opts ...ls.Option) (Circuit, error) { return NewLatch(opts...) }},
	"ring":    {"3 inverter ring oscillator, stepped one drain at a time", func(opts ...ls.Option) (Circuit, error) { return NewRing(3, opts...) }},
}

// Names returns the names of the available circuits, sorted.
//
func Names() []string {
	ns := make([]string, 0, len(registry))
	for n := range registry {
		ns = append(ns, n)
	}
	sort.Strings(ns)
	return ns
}

// Description returns a one line description of the named circuit.
//
func Description(name string) string { return registry[name].desc }

// New builds the named circuit. The options are passed to the circuit's Model.
// The returned circuit is reset.
//
func New(name string, opts ...ls.Option) (Circuit, error) {
	e, ok := registry[name]
	if !ok {
		return nil, errors.Errorf("unknown circuit %q", name)
	}
	c, err := e.new(opts...)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	if err = c.Reset(); err != nil {
		return nil, errors.Wrapf(err, "%s: reset", name)
	}
	return c, nil
}

// builder accumulates the first error of a sequence of Model calls.
//
type builder struct {
	m   *ls.Model
	err error
}

func (b *builder) add(c ls.Component, err error) ls.NodeID {
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return -1
	}
	return b.m.Add(c)
}

func (b *builder) connect(src ls.NodeID, srcPin int, dst ls.NodeID, dstPin int, width int) {
	if b.err != nil {
		return
	}
	_, b.err = b.m.Connect(src, srcPin, dst, dstPin, ls.Floating(width))
}
