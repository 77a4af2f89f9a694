package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/logicsim/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEval(t *testing.T) {
	td := []struct {
		args []string
		exp  string
		err  bool
	}{
		{[]string{"01ZX", "and", "1100"}, "0100", false},
		{[]string{"0011", "or", "0101"}, "0111", false},
		{[]string{"0011", "xor", "0101"}, "0110", false},
		{[]string{"01ZX", "not"}, "10ZX", false},
		{[]string{"01", "and", "1"}, "", true},
		{[]string{"01", "nand", "10"}, "", true},
		{[]string{"01", "not", "10"}, "", true},
		{[]string{"012", "not"}, "", true},
		{[]string{"01"}, "", true},
	}
	for _, d := range td {
		v, err := eval(d.args)
		if d.err {
			assert.Error(t, err, "%v", d.args)
			continue
		}
		require.NoError(t, err, "%v", d.args)
		assert.Equal(t, d.exp, v.String(), "%v", d.args)
	}
}

func TestRun(t *testing.T) {
	cfg := config.Default()
	cfg.Cycles = 3
	var out, log bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, false, &out, &log))
	s := out.String()
	assert.Contains(t, s, "0011")
	assert.Contains(t, s, "REG1")
	assert.NotContains(t, s, "TIMINGS")
	assert.Contains(t, log.String(), "circuit ready")

	cfg.Circuit = "toaster"
	assert.Error(t, run(context.Background(), cfg, false, &out, &log))
}

func TestApp(t *testing.T) {
	p := filepath.Join(t.TempDir(), "logicsim.hcl")
	require.NoError(t, os.WriteFile(p, []byte(`circuit = "latch"`+"\n"+`cycles = 2`+"\n"), 0o644))

	var out, log bytes.Buffer
	app := newApp(&out, &log)
	require.NoError(t, app.Run(context.Background(), []string{"logicsim", "run", "--config", p, "--cycles", "4", "--log-format", "json"}))
	s := out.String()
	assert.Contains(t, s, "S=0 R=1 Q=0 !Q=1")
	assert.Contains(t, s, "evaluations in 4 cycles")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(log.String()), "{"), "json log expected")

	out.Reset()
	require.NoError(t, newApp(&out, &log).Run(context.Background(), []string{"logicsim", "list"}))
	for _, n := range []string{"counter", "latch", "ring"} {
		assert.Contains(t, out.String(), n)
	}

	out.Reset()
	require.NoError(t, newApp(&out, &log).Run(context.Background(), []string{"logicsim", "eval", "1010", "xor", "0110"}))
	assert.Equal(t, "1100\n", out.String())

	assert.Error(t, newApp(&out, &log).Run(context.Background(), []string{"logicsim", "run", "--log-level", "loud"}))
}
