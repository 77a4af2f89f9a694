package simstat_test

import (
	"strings"
	"testing"
	"time"

	ls "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/parts"
	"github.com/db47h/logicsim/simstat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_model(t *testing.T) {
	rec := simstat.NewRecorder(0)
	m := ls.NewModel(ls.WithObserver(rec))
	in := m.Add(parts.NewConstant(ls.FromBool(true)))
	g, err := parts.NewNot(1)
	require.NoError(t, err)
	not := m.Add(g)
	_, err = m.Connect(in, 0, not, 0, ls.Floating(1))
	require.NoError(t, err)

	n, err := m.Settle(ls.PhaseNormal)
	require.NoError(t, err)
	require.NoError(t, m.Enqueue(not))
	require.NoError(t, m.RunRisingEdge())

	assert.Equal(t, uint64(n+1), rec.Evaluations())
	assert.Equal(t, uint64(2), rec.NodeCount(not))
	assert.Equal(t, uint64(1), rec.Drains(ls.PhaseNormal))
	assert.Equal(t, uint64(1), rec.Drains(ls.PhaseRising))
	assert.Zero(t, rec.Drains(ls.PhaseFalling))

	s := rec.Summaries()
	require.Len(t, s, 3)
	assert.Equal(t, "node", s[0].Name)
	assert.Equal(t, "drain normal", s[1].Name)
	assert.Equal(t, "drain rising", s[2].Name)
}

func TestRecorder_summary(t *testing.T) {
	rec := simstat.NewRecorder(16)
	for _, d := range []time.Duration{1, 2, 3, 4} {
		rec.NodeEvaluated(0, d*time.Millisecond)
	}
	s := rec.Summaries()
	require.Len(t, s, 1)
	assert.Equal(t, uint64(4), s[0].Count)
	assert.Equal(t, time.Millisecond, s[0].Min)
	assert.Equal(t, 4*time.Millisecond, s[0].Max)

	var b strings.Builder
	rec.Table(&b)
	assert.Contains(t, b.String(), "node")

	rec.Reset()
	assert.Empty(t, rec.Summaries())
	assert.Zero(t, rec.NodeCount(0))
}
