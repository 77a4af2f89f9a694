// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package simtest provides utility functions for testing circuits.
//
package simtest

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	ls "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/parts"
	"github.com/pkg/errors"
)

// A Pin designates an output pin of a node.
//
type Pin struct {
	Node ls.NodeID
	Pin  int
}

// A Builder mounts a circuit under test in m. It is given one input node per
// circuit input, each with a single output pin, and returns the output pins of
// the circuit.
//
type Builder func(m *ls.Model, inputs []ls.NodeID) ([]Pin, error)

// Part returns a Builder for a single component whose input pin i is driven by
// circuit input i and whose outputs are the circuit outputs.
//
func Part(c ls.Component) Builder {
	return func(m *ls.Model, inputs []ls.NodeID) ([]Pin, error) {
		n := m.Add(c)
		for i, in := range inputs {
			if _, err := m.Connect(in, 0, n, i, ls.Value{}); err != nil {
				return nil, err
			}
		}
		outs := make([]Pin, c.NumOutputs())
		for i := range outs {
			outs[i] = Pin{n, i}
		}
		return outs, nil
	}
}

// harness drives a circuit built by a Builder.
//
type harness struct {
	m      *ls.Model
	in     []*parts.Input
	probes []*parts.Probe
}

func newHarness(b Builder, widths []int) (*harness, error) {
	h := &harness{m: ls.NewModel()}
	ids := make([]ls.NodeID, len(widths))
	for i, w := range widths {
		in, err := parts.NewInput(w)
		if err != nil {
			return nil, errors.Wrapf(err, "input %d", i)
		}
		h.in = append(h.in, in)
		ids[i] = h.m.Add(in)
	}
	outs, err := b(h.m, ids)
	if err != nil {
		return nil, errors.Wrap(err, "build circuit")
	}
	for i, o := range outs {
		p := parts.NewProbe("", nil)
		h.probes = append(h.probes, p)
		if _, err := h.m.Connect(o.Node, o.Pin, h.m.Add(p), 0, ls.Value{}); err != nil {
			return nil, errors.Wrapf(err, "output %d", i)
		}
	}
	return h, nil
}

func (h *harness) eval(in []ls.Value) ([]ls.Value, error) {
	for i, v := range in {
		if err := h.in[i].Set(v); err != nil {
			return nil, errors.Wrapf(err, "input %d", i)
		}
	}
	if _, err := h.m.Settle(ls.PhaseNormal); err != nil {
		return nil, err
	}
	out := make([]ls.Value, len(h.probes))
	for i, p := range h.probes {
		out[i] = p.Value()
	}
	return out, nil
}

func join(vs []ls.Value) string {
	var b strings.Builder
	for i, v := range vs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.String())
	}
	return b.String()
}

// maxExhaustive is the maximum total input width tested exhaustively.
const maxExhaustive = 12

// ComparePart builds two circuits with the same interface and compares their
// outputs given the same inputs: all zeros, all ones, then every input
// combination if the total input width is small enough, random values
// otherwise.
//
func ComparePart(t testing.TB, widths []int, b1, b2 Builder) {
	t.Helper()
	h1, err := newHarness(b1, widths)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := newHarness(b2, widths)
	if err != nil {
		t.Fatal(err)
	}
	if len(h1.probes) != len(h2.probes) {
		t.Fatalf("output count mismatch: %d != %d", len(h1.probes), len(h2.probes))
	}

	total := 0
	for _, w := range widths {
		total += w
	}
	in := make([]ls.Value, len(widths))
	check := func() {
		t.Helper()
		o1, err := h1.eval(in)
		if err != nil {
			t.Fatal(err)
		}
		o2, err := h2.eval(in)
		if err != nil {
			t.Fatal(err)
		}
		for i := range o1 {
			if o1[i] != o2[i] {
				t.Fatalf("\nInputs %s\nExpected out[%d] = %s\nGot %s", join(in), i, o1[i], o2[i])
			}
		}
	}

	start := time.Now()
	for i, w := range widths {
		in[i] = ls.New(0, w)
	}
	check()
	for i, w := range widths {
		in[i] = ls.New(^uint32(0), w)
	}
	check()

	if total <= maxExhaustive {
		for n := uint32(0); n < 1<<uint(total); n++ {
			v := n
			for i, w := range widths {
				in[i] = ls.New(v, w)
				v >>= uint(w)
			}
			check()
		}
	} else {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		for range 1 << maxExhaustive {
			for i, w := range widths {
				in[i] = ls.New(rnd.Uint32(), w)
			}
			check()
		}
	}

	evals := h1.m.Evaluations() + h2.m.Evaluations()
	t.Logf("%d components. %d evaluations in %v.", h1.m.Len()+h2.m.Len(), evals, time.Since(start))
}

// A Row is a truth table line. Values are parsed with logicsim.ParseValue.
//
type Row struct {
	In  []string
	Out []string
}

// TruthTable builds a circuit and checks its outputs against a truth table.
// Rows are applied in order on the same circuit, so sequential behavior can be
// tested as well.
//
func TruthTable(t testing.TB, widths []int, b Builder, rows []Row) {
	t.Helper()
	h, err := newHarness(b, widths)
	if err != nil {
		t.Fatal(err)
	}
	for r, row := range rows {
		in := make([]ls.Value, len(row.In))
		for i, s := range row.In {
			if in[i], err = ls.ParseValue(s); err != nil {
				t.Fatalf("row %d: input %d: %v", r, i, err)
			}
		}
		out, err := h.eval(in)
		if err != nil {
			t.Fatalf("row %d: %v", r, err)
		}
		if len(out) != len(row.Out) {
			t.Fatalf("row %d: got %d outputs, expected %d", r, len(out), len(row.Out))
		}
		for i, s := range row.Out {
			if out[i].String() != strings.ToUpper(s) {
				t.Errorf("row %d: %s => out[%d] = %s, expected %s", r, join(in), i, out[i], s)
			}
		}
	}
}
