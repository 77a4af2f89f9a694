// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command logicsim runs the demo circuits of the logicsim package.
//
// Usage:
//
//	logicsim run [--config file.hcl] [--circuit name] [--cycles n] [--budget n]
//	logicsim list
//	logicsim eval a op [b]
//
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	ls "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/internal/config"
	"github.com/db47h/logicsim/internal/demo"
	"github.com/db47h/logicsim/simstat"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
)

const (
	configKey    = "config"
	circuitKey   = "circuit"
	cyclesKey    = "cycles"
	budgetKey    = "budget"
	logLevelKey  = "log-level"
	logFormatKey = "log-format"
	statsKey     = "stats"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "logicsim:", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "logicsim",
		Usage: "Digital logic simulator",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run a demo circuit",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: configKey, Usage: "HCL settings file"},
					&cli.StringFlag{Name: circuitKey, Usage: "circuit to run (see list)"},
					&cli.IntFlag{Name: cyclesKey, Usage: "number of cycles to run"},
					&cli.IntFlag{Name: budgetKey, Usage: "maximum evaluations per settle"},
					&cli.StringFlag{Name: logLevelKey, Usage: "log level: debug, info, warn or error"},
					&cli.StringFlag{Name: logFormatKey, Usage: "log format: text or json"},
					&cli.BoolFlag{Name: statsKey, Usage: "print timing statistics", Value: true},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, err := loadConfig(cmd)
					if err != nil {
						return err
					}
					return run(ctx, cfg, cmd.Bool(statsKey), stdout, stderr)
				},
			},
			{
				Name:  "list",
				Usage: "List demo circuits",
				Action: func(_ context.Context, _ *cli.Command) error {
					list(stdout)
					return nil
				},
			},
			{
				Name:      "eval",
				Usage:     "Combine four-state values, e.g. eval 01ZX and 1100",
				ArgsUsage: "a op [b]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					r, err := eval(cmd.Args().Slice())
					if err != nil {
						return err
					}
					fmt.Fprintln(stdout, r)
					return nil
				},
			},
		},
	}
}

// loadConfig merges the settings file and command line flags.
//
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg := config.Default()
	if p := cmd.String(configKey); p != "" {
		var err error
		if cfg, err = config.Load(p); err != nil {
			return nil, err
		}
	}
	cfg.Merge(&config.Config{
		Circuit:   cmd.String(circuitKey),
		Cycles:    int(cmd.Int(cyclesKey)),
		Budget:    int(cmd.Int(budgetKey)),
		LogLevel:  cmd.String(logLevelKey),
		LogFormat: cmd.String(logFormatKey),
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config, stats bool, stdout, stderr io.Writer) error {
	log := newLogger(cfg.LogLevel, cfg.LogFormat, stderr)
	rec := simstat.NewRecorder(0)
	c, err := demo.New(cfg.Circuit, ls.WithLogger(log), ls.WithBudget(cfg.Budget), ls.WithObserver(rec))
	if err != nil {
		return err
	}
	m := c.Model()
	log.Info("circuit ready", "circuit", cfg.Circuit, "nodes", m.Len(), "edges", len(m.Edges()))

	steps := table.NewWriter()
	steps.SetTitle(cfg.Circuit)
	steps.SetOutputMirror(stdout)
	steps.AppendHeader(table.Row{"cycle", "state"})
	for i := 1; i <= cfg.Cycles; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		s, err := c.Step()
		if err != nil {
			return errors.Wrapf(err, "cycle %d", i)
		}
		steps.AppendRow(table.Row{i, s})
	}
	steps.Render()

	nodes := table.NewWriter()
	nodes.SetTitle("Components")
	nodes.SetOutputMirror(stdout)
	nodes.AppendHeader(table.Row{"node", "state", "evaluations"})
	for _, n := range m.Nodes() {
		s, err := m.State(n)
		if err != nil {
			return err
		}
		nodes.AppendRow(table.Row{n, s, humanize.Comma(int64(rec.NodeCount(n)))})
	}
	nodes.Render()

	fmt.Fprintf(stdout, "%s evaluations in %d cycles\n", humanize.Comma(int64(m.Evaluations())), cfg.Cycles)
	if stats {
		rec.Table(stdout)
	}
	return nil
}

func list(w io.Writer) {
	t := tablewriter.NewWriter(w)
	t.SetHeader([]string{"Circuit", "Description"})
	for _, n := range demo.Names() {
		t.Append([]string{n, demo.Description(n)})
	}
	t.Render()
}

func eval(args []string) (ls.Value, error) {
	if len(args) < 2 {
		return ls.Value{}, errors.New("usage: eval a op [b]")
	}
	a, err := ls.ParseValue(args[0])
	if err != nil {
		return ls.Value{}, err
	}
	if args[1] == "not" {
		if len(args) != 2 {
			return ls.Value{}, errors.New("not takes a single operand")
		}
		return a.Not(), nil
	}
	if len(args) != 3 {
		return ls.Value{}, errors.Errorf("%s takes two operands", args[1])
	}
	b, err := ls.ParseValue(args[2])
	if err != nil {
		return ls.Value{}, err
	}
	switch args[1] {
	case "and":
		return a.And(b)
	case "or":
		return a.Or(b)
	case "xor":
		return a.Xor(b)
	}
	return ls.Value{}, errors.Errorf("unknown operator %s", strconv.Quote(args[1]))
}
