package parts_test

import (
	"testing"
	"testing/quick"

	ls "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/parts"
	"github.com/db47h/logicsim/simtest"
	"github.com/stretchr/testify/assert"
)

// gateAdder builds a 1 bit full adder from two half adders.
func gateAdder(m *ls.Model, in []ls.NodeID) ([]simtest.Pin, error) {
	a, b, cin := in[0], in[1], in[2]
	s0 := m.Add(must2(parts.NewXor(1, 2)))
	s := m.Add(must2(parts.NewXor(1, 2)))
	c0 := m.Add(must2(parts.NewAnd(1, 2)))
	c1 := m.Add(must2(parts.NewAnd(1, 2)))
	cout := m.Add(must2(parts.NewOr(1, 2)))
	for _, c := range [][3]ls.NodeID{
		{a, s0, 0}, {b, s0, 1},
		{s0, s, 0}, {cin, s, 1},
		{a, c0, 0}, {b, c0, 1},
		{s0, c1, 0}, {cin, c1, 1},
		{c0, cout, 0}, {c1, cout, 1},
	} {
		if _, err := m.Connect(c[0], 0, c[1], int(c[2]), ls.Floating(1)); err != nil {
			return nil, err
		}
	}
	return []simtest.Pin{{Node: s}, {Node: cout}}, nil
}

func TestAdder_gates(t *testing.T) {
	simtest.ComparePart(t, []int{1, 1, 1}, simtest.Part(must[*parts.Adder](t)(parts.NewAdder(1))), gateAdder)
}

func TestAdder_sum(t *testing.T) {
	add := must[*parts.Adder](t)(parts.NewAdder(32))
	f := func(a, b uint32, cin bool) bool {
		out, err := add.Update(ls.PhaseNormal, []ls.Value{ls.New(a, 32), ls.New(b, 32), ls.FromBool(cin)})
		if err != nil {
			return false
		}
		exp := uint64(a) + uint64(b)
		if cin {
			exp++
		}
		sum, ok := out[parts.AddSum].AsLogic()
		return ok && sum == uint32(exp) && out[parts.AddCarryOut] == ls.FromBool(exp>>32 != 0)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestAdder_fourState(t *testing.T) {
	add := must[*parts.Adder](t)(parts.NewAdder(4))
	simtest.TruthTable(t, []int{4, 4, 1}, simtest.Part(add), []simtest.Row{
		{In: []string{"0011", "0001", "0"}, Out: []string{"0100", "0"}},
		{In: []string{"1111", "0001", "0"}, Out: []string{"0000", "1"}},
		{In: []string{"0Z01", "0001", "0"}, Out: []string{"0Z10", "0"}},
		// a carry into an undefined bit spoils the bits above it
		{In: []string{"0Z11", "0001", "0"}, Out: []string{"ZZ00", "0"}},
		{In: []string{"0X11", "0001", "0"}, Out: []string{"XX00", "0"}},
	})
	assert.Equal(t, "ADD4", add.String())

	_, err := add.Update(ls.PhaseNormal, []ls.Value{ls.New(0, 4), ls.New(0, 3), {}})
	assert.ErrorIs(t, err, ls.ErrWidthMismatch)
}
