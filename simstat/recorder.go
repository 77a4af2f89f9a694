// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package simstat collects evaluation timings from a logicsim.Model.
//
// A Recorder is installed with logicsim.WithObserver. It keeps a rolling
// window of node evaluation and drain durations and summarizes them on demand:
//
//	rec := simstat.NewRecorder(4096)
//	m := logicsim.NewModel(logicsim.WithObserver(rec))
//	...
//	rec.Table(os.Stdout)
//
package simstat

import (
	"fmt"
	"io"
	"sync"
	"time"

	ls "github.com/db47h/logicsim"
	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
)

// DefaultSize is the default sample window of a Recorder.
//
const DefaultSize = 4096

// Recorder implements logicsim.Observer with tachymeter histograms. It is
// safe for concurrent use so that stats can be read while a simulation runs
// on another goroutine.
//
type Recorder struct {
	mu     sync.Mutex
	nodes  *tachymeter.Tachymeter
	drains map[ls.Phase]*tachymeter.Tachymeter
	size   int
	evals  uint64
	counts map[ls.Phase]uint64
	byNode map[ls.NodeID]uint64
}

// NewRecorder returns a Recorder keeping the last size samples of each kind.
// If size <= 0, DefaultSize is used.
//
func NewRecorder(size int) *Recorder {
	if size <= 0 {
		size = DefaultSize
	}
	return &Recorder{
		nodes:  tachymeter.New(&tachymeter.Config{Size: size}),
		drains: make(map[ls.Phase]*tachymeter.Tachymeter),
		size:   size,
		counts: make(map[ls.Phase]uint64),
		byNode: make(map[ls.NodeID]uint64),
	}
}

// NodeEvaluated implements logicsim.Observer.
//
func (r *Recorder) NodeEvaluated(n ls.NodeID, d time.Duration) {
	r.mu.Lock()
	r.nodes.AddTime(d)
	r.evals++
	r.byNode[n]++
	r.mu.Unlock()
}

// DrainDone implements logicsim.Observer.
//
func (r *Recorder) DrainDone(phase ls.Phase, _ int, d time.Duration) {
	r.mu.Lock()
	t := r.drains[phase]
	if t == nil {
		t = tachymeter.New(&tachymeter.Config{Size: r.size})
		r.drains[phase] = t
	}
	t.AddTime(d)
	r.counts[phase]++
	r.mu.Unlock()
}

// Evaluations returns the number of node evaluations recorded.
//
func (r *Recorder) Evaluations() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.evals
}

// Drains returns the number of drains recorded for the given phase.
//
func (r *Recorder) Drains(phase ls.Phase) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[phase]
}

// NodeCount returns the number of recorded evaluations of node n.
//
func (r *Recorder) NodeCount(n ls.NodeID) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byNode[n]
}

// A Summary is a snapshot of timing statistics.
//
type Summary struct {
	Name  string
	Count uint64
	Avg   time.Duration
	Min   time.Duration
	P75   time.Duration
	P99   time.Duration
	Max   time.Duration
}

func summarize(name string, count uint64, t *tachymeter.Tachymeter) Summary {
	c := t.Calc()
	return Summary{
		Name:  name,
		Count: count,
		Avg:   c.Time.Avg,
		Min:   c.Time.Min,
		P75:   c.Time.P75,
		P99:   c.Time.P99,
		Max:   c.Time.Max,
	}
}

// Summaries returns node evaluation stats followed by drain stats for each
// phase seen, in phase order.
//
func (r *Recorder) Summaries() []Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	var s []Summary
	if r.evals > 0 {
		s = append(s, summarize("node", r.evals, r.nodes))
	}
	for _, p := range []ls.Phase{ls.PhaseNormal, ls.PhaseRising, ls.PhaseFalling} {
		if t := r.drains[p]; t != nil {
			s = append(s, summarize("drain "+p.String(), r.counts[p], t))
		}
	}
	return s
}

// Reset drops all samples.
//
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.nodes.Reset()
	r.drains = make(map[ls.Phase]*tachymeter.Tachymeter)
	r.evals = 0
	r.counts = make(map[ls.Phase]uint64)
	r.byNode = make(map[ls.NodeID]uint64)
	r.mu.Unlock()
}

// Table renders the summaries as a table to w.
//
func (r *Recorder) Table(w io.Writer) {
	tbl := table.NewWriter()
	tbl.SetTitle("Timings")
	tbl.SetOutputMirror(w)
	tbl.AppendHeader(table.Row{"what", "count", "avg", "min", "p75", "p99", "max"})
	for _, s := range r.Summaries() {
		tbl.AppendRow(table.Row{
			s.Name,
			humanize.Comma(int64(s.Count)),
			s.Avg, s.Min, s.P75, s.P99, s.Max,
		})
	}
	tbl.Render()
}

func (s Summary) String() string {
	return fmt.Sprintf("%s: %s samples, avg %v, max %v", s.Name, humanize.Comma(int64(s.Count)), s.Avg, s.Max)
}
