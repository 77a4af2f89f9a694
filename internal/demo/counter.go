// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package demo

import (
	ls "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/parts"
)

// Counter is a synchronous binary counter. Bit i toggles on a rising clock
// edge when all lower bits are set:
//
//	d[i] = (q[i] ^ c[i]) & !reset
//	c[0] = 1, c[i+1] = q[i] & c[i]
//
type Counter struct {
	m     *ls.Model
	reset *parts.Input
	regs  []*parts.Register
}

// NewCounter returns a counter of the given width.
//
func NewCounter(bits int, opts ...ls.Option) (*Counter, error) {
	if err := ls.CheckWidth(bits); err != nil {
		return nil, err
	}
	c := &Counter{m: ls.NewModel(opts...)}
	b := &builder{m: c.m}
	var err error
	if c.reset, err = parts.NewInput(1); err != nil {
		return nil, err
	}
	rst := c.m.Add(c.reset)
	nrst := b.add(parts.NewNot(1))
	b.connect(rst, 0, nrst, 0, 1)
	carry := c.m.Add(parts.NewConstant(ls.FromBool(true)))
	en := c.m.Add(parts.NewConstant(ls.FromBool(true)))

	for i := 0; i < bits; i++ {
		r, err := parts.NewRegister(1)
		if err != nil {
			return nil, err
		}
		c.regs = append(c.regs, r)
		q := c.m.Add(r)
		x := b.add(parts.NewXor(1, 2))
		d := b.add(parts.NewAnd(1, 2))
		b.connect(q, parts.RegOut, x, 0, 1)
		b.connect(carry, 0, x, 1, 1)
		b.connect(x, 0, d, 0, 1)
		b.connect(nrst, 0, d, 1, 1)
		b.connect(d, 0, q, parts.RegData, 1)
		b.connect(en, 0, q, parts.RegEnable, 1)
		b.connect(rst, 0, q, parts.RegClear, 1)
		if i < bits-1 {
			next := b.add(parts.NewAnd(1, 2))
			b.connect(q, parts.RegOut, next, 0, 1)
			b.connect(carry, 0, next, 1, 1)
			carry = next
		}
	}
	if b.err != nil {
		return nil, b.err
	}
	return c, nil
}

func (c *Counter) Model() *ls.Model { return c.m }

// Reset clears all bits.
//
func (c *Counter) Reset() error {
	if err := c.reset.Set(ls.FromBool(true)); err != nil {
		return err
	}
	if _, err := c.m.Settle(ls.PhaseNormal); err != nil {
		return err
	}
	if err := c.reset.Set(ls.FromBool(false)); err != nil {
		return err
	}
	_, err := c.m.Settle(ls.PhaseNormal)
	return err
}

// Step runs a full clock cycle.
//
func (c *Counter) Step() (string, error) {
	if _, err := c.m.Settle(ls.PhaseRising); err != nil {
		return "", err
	}
	if _, err := c.m.Settle(ls.PhaseNormal); err != nil {
		return "", err
	}
	return c.Value().String(), nil
}

// Value returns the current count.
//
func (c *Counter) Value() ls.Value {
	v := ls.Floating(len(c.regs))
	for i, r := range c.regs {
		s, _ := r.Stored().Bit(0)
		v, _ = v.WithBit(i, s)
	}
	return v
}
