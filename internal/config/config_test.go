package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/db47h/logicsim/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	c, err := config.Parse([]byte(`
log_level = "debug"
budget    = 100
circuit   = "ring"
`), "test.hcl")
	require.NoError(t, err)
	exp := config.Default()
	exp.LogLevel = "debug"
	exp.Budget = 100
	exp.Circuit = "ring"
	assert.Equal(t, exp, c)
}

func TestParse_errors(t *testing.T) {
	td := []struct {
		name string
		src  string
	}{
		{"syntax", `log_level = `},
		{"unknown key", `colour = "red"`},
		{"type", `budget = "lots"`},
		{"level", `log_level = "loud"`},
		{"format", `log_format = "xml"`},
		{"budget", `budget = -1`},
		{"cycles", `cycles = -3`},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			_, err := config.Parse([]byte(d.src), d.name+".hcl")
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "logicsim.hcl")
	require.NoError(t, os.WriteFile(p, []byte("cycles = 3\nlog_format = \"json\"\n"), 0o644))
	c, err := config.Load(p)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Cycles)
	assert.Equal(t, "json", c.LogFormat)
	assert.Equal(t, "counter", c.Circuit)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	assert.NoError(t, config.Default().Validate())
}
