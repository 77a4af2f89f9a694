// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package demo

import (
	"fmt"

	ls "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/parts"
)

// latchSequence is the set/reset input sequence applied by Latch.Step.
var latchSequence = [...]struct{ s, r bool }{
	{true, false},  // set
	{false, false}, // hold
	{false, true},  // reset
	{false, false}, // hold
}

// Latch is a NOR based SR latch.
//
type Latch struct {
	m     *ls.Model
	s, r  *parts.Input
	q, nq ls.NodeID
	step  int
}

// NewLatch returns a new SR latch.
//
func NewLatch(opts ...ls.Option) (*Latch, error) {
	l := &Latch{m: ls.NewModel(opts...)}
	var err error
	if l.s, err = parts.NewInput(1); err != nil {
		return nil, err
	}
	if l.r, err = parts.NewInput(1); err != nil {
		return nil, err
	}
	b := &builder{m: l.m}
	s, r := l.m.Add(l.s), l.m.Add(l.r)
	l.q = b.add(parts.NewNor(1, 2))
	l.nq = b.add(parts.NewNor(1, 2))
	b.connect(r, 0, l.q, 0, 1)
	b.connect(l.nq, 0, l.q, 1, 1)
	b.connect(s, 0, l.nq, 0, 1)
	b.connect(l.q, 0, l.nq, 1, 1)
	if b.err != nil {
		return nil, b.err
	}
	return l, nil
}

func (l *Latch) Model() *ls.Model { return l.m }

// Reset drives the reset input once.
//
func (l *Latch) Reset() error {
	l.step = 0
	_, err := l.apply(false, true)
	return err
}

// Step applies the next set/reset pair of the sequence.
//
func (l *Latch) Step() (string, error) {
	in := latchSequence[l.step%len(latchSequence)]
	l.step++
	return l.apply(in.s, in.r)
}

func (l *Latch) apply(s, r bool) (string, error) {
	if err := l.s.Set(ls.FromBool(s)); err != nil {
		return "", err
	}
	if err := l.r.Set(ls.FromBool(r)); err != nil {
		return "", err
	}
	if _, err := l.m.Settle(ls.PhaseNormal); err != nil {
		return "", err
	}
	q, nq := l.Q()
	return fmt.Sprintf("S=%s R=%s Q=%s !Q=%s", ls.FromBool(s), ls.FromBool(r), q, nq), nil
}

// Q returns the latch outputs.
//
func (l *Latch) Q() (q, nq ls.Value) {
	qs, _ := l.m.Outputs(l.q)
	nqs, _ := l.m.Outputs(l.nq)
	return qs[0], nqs[0]
}
