package parts_test

import (
	"testing"

	ls "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/parts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInput(t *testing.T) {
	in := must[*parts.Input](t)(parts.NewInput(3))
	assert.True(t, in.Value().IsFloating())
	assert.ErrorIs(t, in.Set(ls.New(1, 4)), ls.ErrWidthMismatch)
	require.NoError(t, in.Set(ls.New(5, 3)))
	assert.Equal(t, ls.New(5, 3), update(t, in, ls.PhaseRising))
	assert.Equal(t, "IN 101", in.String())

	_, err := parts.NewInput(40)
	assert.Error(t, err)

	c := parts.NewConstant(ls.FromBool(true))
	assert.Equal(t, ls.FromBool(true), c.Init()[0])
}

func TestClock(t *testing.T) {
	c := parts.NewClock()
	assert.Equal(t, ls.FromBool(false), c.Init()[0])
	td := []struct {
		phase ls.Phase
		high  bool
	}{
		{ls.PhaseNormal, false},
		{ls.PhaseRising, true},
		{ls.PhaseNormal, true},
		{ls.PhaseFalling, false},
		{ls.PhaseNormal, false},
	}
	for _, d := range td {
		assert.Equal(t, ls.FromBool(d.high), update(t, c, d.phase), "after %s", d.phase)
		assert.Equal(t, d.high, c.High())
	}
}

func TestProbe(t *testing.T) {
	var seen []ls.Value
	p := parts.NewProbe("q", func(v ls.Value) { seen = append(seen, v) })
	assert.False(t, p.Value().IsConnected())
	out, err := p.Update(ls.PhaseNormal, []ls.Value{ls.New(2, 2)})
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, ls.New(2, 2), p.Value())
	assert.Equal(t, []ls.Value{ls.New(2, 2)}, seen)
	assert.Equal(t, "PROBE q=10", p.String())
	assert.Equal(t, "q", p.Name())
}
