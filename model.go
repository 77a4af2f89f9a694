// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DefaultBudget is the default maximum number of node evaluations per drain
// or settle loop.
//
const DefaultBudget = 1 << 16

// NodeID is a stable handle to a component in a Model. IDs are never reused.
//
type NodeID int

// EdgeID is a stable handle to an edge in a Model. IDs are never reused.
//
type EdgeID int

// An Edge carries the last value written by its source component from output
// pin SrcPin to input pin DstPin of its destination.
//
type Edge struct {
	Src    NodeID
	SrcPin int
	Dst    NodeID
	DstPin int
	Value  Value
}

type node struct {
	c   Component
	out []Value  // last produced outputs
	in  []EdgeID // incoming edges in connection order
	fwd []EdgeID // outgoing edges in connection order
}

// Option configures a Model.
//
type Option func(*Model)

// WithLogger sets the logger used by the Model. Drains are logged at debug
// level and faults at warn level.
//
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

// WithBudget sets the maximum number of node evaluations per drain or settle
// loop. Values <= 0 select DefaultBudget.
//
func WithBudget(n int) Option {
	return func(m *Model) {
		if n <= 0 {
			n = DefaultBudget
		}
		m.budget = n
	}
}

// WithObserver installs timing hooks.
//
func WithObserver(o Observer) Option {
	return func(m *Model) {
		if o != nil {
			m.obs = o
		}
	}
}

// Model is a circuit graph: it owns its components and the edges between
// them, and evaluates queued components on request.
//
// A Model is not safe for concurrent use.
//
// Evaluation faults abort the running drain and clear the queue. Edge values
// written before the fault are kept: the graph is left as it was when the
// faulting node was reached, not as it was when the drain started.
//
type Model struct {
	nodes  []*node
	edges  []*Edge
	live   int
	q      *queue
	log    *slog.Logger
	obs    Observer
	budget int
	evals  uint64
}

// NewModel returns a new empty Model.
//
func NewModel(opts ...Option) *Model {
	m := &Model{
		q:      newQueue(),
		log:    slog.New(slog.DiscardHandler),
		obs:    nopObserver{},
		budget: DefaultBudget,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *Model) node(n NodeID) (*node, error) {
	if n < 0 || int(n) >= len(m.nodes) || m.nodes[n] == nil {
		return nil, errors.Wrapf(ErrNoSuchNode, "node %d", n)
	}
	return m.nodes[n], nil
}

func (m *Model) edge(e EdgeID) (*Edge, error) {
	if e < 0 || int(e) >= len(m.edges) || m.edges[e] == nil {
		return nil, errors.Wrapf(ErrNoSuchEdge, "edge %d", e)
	}
	return m.edges[e], nil
}

// Add mounts component c and returns its handle. The component's initial
// outputs are taken from its Init method.
//
func (m *Model) Add(c Component) NodeID {
	id := NodeID(len(m.nodes))
	m.nodes = append(m.nodes, &node{c: c, out: c.Init()})
	m.live++
	return id
}

// Remove unmounts node n together with all its edges and drops it from the
// queue.
//
func (m *Model) Remove(n NodeID) error {
	nd, err := m.node(n)
	if err != nil {
		return err
	}
	for _, e := range append(append([]EdgeID(nil), nd.in...), nd.fwd...) {
		if m.edges[e] != nil {
			m.disconnect(e)
		}
	}
	m.q.remove(n)
	m.nodes[n] = nil
	m.live--
	return nil
}

// Connect adds an edge from output pin srcPin of src to input pin dstPin of
// dst, carrying initial until src is next evaluated.
//
// Pins are checked against the arity declared by each component, unless the
// component reports an arity of 0. An input pin of a fixed arity component can
// be driven by a single edge: use a wire component for fan-in.
//
// If the source already has a value on srcPin, initial must have the same
// width. The zero Value is always accepted: the edge then carries no value
// until src is evaluated, and the destination sees the pin as unconnected.
// Widths are otherwise checked by the destination when it is evaluated.
//
func (m *Model) Connect(src NodeID, srcPin int, dst NodeID, dstPin int, initial Value) (EdgeID, error) {
	sn, err := m.node(src)
	if err != nil {
		return -1, err
	}
	dn, err := m.node(dst)
	if err != nil {
		return -1, err
	}
	if no := sn.c.NumOutputs(); srcPin < 0 || no > 0 && srcPin >= no {
		return -1, &PinError{Node: src, Pin: srcPin, Arity: no, Err: ErrPinRange}
	}
	ni := dn.c.NumInputs()
	if dstPin < 0 || ni > 0 && dstPin >= ni {
		return -1, &PinError{Node: dst, Pin: dstPin, Arity: ni, Input: true, Err: ErrPinRange}
	}
	if ni > 0 {
		for _, e := range dn.in {
			if m.edges[e].DstPin == dstPin {
				return -1, &PinError{Node: dst, Pin: dstPin, Arity: ni, Input: true, Err: ErrPinInUse}
			}
		}
	}
	if initial.IsConnected() && srcPin < len(sn.out) {
		if cur := sn.out[srcPin]; cur.IsConnected() && cur.Width() != initial.Width() {
			return -1, errors.Wrapf(&WidthMismatchError{Op: "connect", Left: cur.Width(), Right: initial.Width()},
				"edge from node %d pin %d", src, srcPin)
		}
	}
	id := EdgeID(len(m.edges))
	m.edges = append(m.edges, &Edge{Src: src, SrcPin: srcPin, Dst: dst, DstPin: dstPin, Value: initial})
	sn.fwd = append(sn.fwd, id)
	dn.in = append(dn.in, id)
	return id, nil
}

// Disconnect removes edge e.
//
func (m *Model) Disconnect(e EdgeID) error {
	if _, err := m.edge(e); err != nil {
		return err
	}
	m.disconnect(e)
	return nil
}

func (m *Model) disconnect(e EdgeID) {
	ed := m.edges[e]
	if sn := m.nodes[ed.Src]; sn != nil {
		sn.fwd = removeEdge(sn.fwd, e)
	}
	if dn := m.nodes[ed.Dst]; dn != nil {
		dn.in = removeEdge(dn.in, e)
	}
	m.edges[e] = nil
}

func removeEdge(es []EdgeID, e EdgeID) []EdgeID {
	for i, x := range es {
		if x == e {
			return append(es[:i], es[i+1:]...)
		}
	}
	return es
}

// Enqueue schedules nodes for evaluation by the next drain. Nodes already
// queued keep their position.
//
func (m *Model) Enqueue(nodes ...NodeID) error {
	for _, n := range nodes {
		if _, err := m.node(n); err != nil {
			return err
		}
	}
	for _, n := range nodes {
		m.q.push(n)
	}
	return nil
}

// ClearQueue drops all pending work.
//
func (m *Model) ClearQueue() { m.q.clear() }

// Pending returns the number of queued nodes.
//
func (m *Model) Pending() int { return m.q.len() }

// RunNormal drains the queue with combinational updates.
//
func (m *Model) RunNormal() error { return m.Run(PhaseNormal) }

// RunRisingEdge drains the queue with rising clock edge updates.
//
func (m *Model) RunRisingEdge() error { return m.Run(PhaseRising) }

// RunFallingEdge drains the queue with falling clock edge updates.
//
func (m *Model) RunFallingEdge() error { return m.Run(PhaseFalling) }

// Run evaluates every queued node once, in FIFO order, for the given phase,
// until the queue is empty. Successors of evaluated nodes are not scheduled.
//
// If the number of evaluations reaches the Model's budget, Run stops with a
// NoConvergenceError. Other faults are returned as an *EvalError.
//
func (m *Model) Run(phase Phase) error {
	start := time.Now()
	evals := 0
	m.log.Debug("drain started", "phase", phase, "queued", m.q.len())
	for {
		n, ok := m.q.pop()
		if !ok {
			break
		}
		if evals >= m.budget {
			err := &NoConvergenceError{Phase: phase, Budget: m.budget, Pending: append([]NodeID{n}, m.q.pending()...)}
			return m.abort(phase, evals, start, err)
		}
		nd := m.nodes[n]
		if _, err := m.eval(n, nd, phase, m.inputs(nd)); err != nil {
			return m.abort(phase, evals, start, err)
		}
		evals++
	}
	d := time.Since(start)
	m.obs.DrainDone(phase, evals, d)
	m.log.Debug("drain done", "phase", phase, "evaluations", evals, "elapsed", d)
	return nil
}

func (m *Model) abort(phase Phase, evals int, start time.Time, err error) error {
	m.q.clear()
	m.obs.DrainDone(phase, evals, time.Since(start))
	m.log.Warn("drain aborted", "phase", phase, "evaluations", evals, "error", err)
	return err
}

// Settle evaluates every node for the given phase, then keeps propagating
// combinational updates to the successors of nodes whose outputs changed
// until no output changes anymore. Each node sees the given phase once; later
// re-evaluations run in PhaseNormal.
//
// A node whose inputs are identical to those of its previous evaluation in the
// same Settle call is not evaluated again. Settle returns the number of node
// evaluations performed, or a NoConvergenceError if the budget is exhausted
// (typically because of an oscillating loop).
//
func (m *Model) Settle(phase Phase) (int, error) {
	start := time.Now()
	g := newGuard()
	first := make(map[NodeID]bool, m.live)
	m.q.clear()
	for i, nd := range m.nodes {
		if nd != nil {
			m.q.push(NodeID(i))
			first[NodeID(i)] = true
		}
	}
	evals := 0
	m.log.Debug("settle started", "phase", phase, "nodes", m.live)
	for {
		n, ok := m.q.pop()
		if !ok {
			break
		}
		nd := m.nodes[n]
		p := PhaseNormal
		if first[n] {
			p = phase
			delete(first, n)
		}
		in := m.inputs(nd)
		if !g.changed(n, fingerprint(p, in)) {
			continue
		}
		if evals >= m.budget {
			err := &NoConvergenceError{Phase: phase, Budget: m.budget, Pending: append([]NodeID{n}, m.q.pending()...)}
			return evals, m.abort(phase, evals, start, err)
		}
		changed, err := m.eval(n, nd, p, in)
		if err != nil {
			return evals, m.abort(phase, evals, start, err)
		}
		evals++
		if changed {
			for _, e := range nd.fwd {
				m.q.push(m.edges[e].Dst)
			}
		}
	}
	d := time.Since(start)
	m.obs.DrainDone(phase, evals, d)
	m.log.Debug("settle done", "phase", phase, "evaluations", evals, "elapsed", d)
	return evals, nil
}

// inputs collects the input vector of a node from its incoming edges.
//
func (m *Model) inputs(nd *node) []Value {
	ni := nd.c.NumInputs()
	if ni == 0 {
		in := make([]Value, len(nd.in))
		for i, e := range nd.in {
			in[i] = m.edges[e].Value
		}
		return in
	}
	in := make([]Value, ni)
	for _, e := range nd.in {
		ed := m.edges[e]
		in[ed.DstPin] = ed.Value
	}
	return in
}

// eval updates a node and writes its outputs to its outgoing edges. It
// reports whether any output differs from the previous ones.
//
func (m *Model) eval(n NodeID, nd *node, phase Phase, in []Value) (bool, error) {
	start := time.Now()
	out, err := nd.c.Update(phase, in)
	m.evals++
	if err != nil {
		return false, &EvalError{Node: n, Phase: phase, Err: err}
	}
	changed := !sameValues(nd.out, out)
	nd.out = out
	for _, e := range nd.fwd {
		ed := m.edges[e]
		if ed.SrcPin >= len(out) {
			return changed, &EvalError{Node: n, Phase: phase,
				Err: &MissingOutputError{Node: n, Edge: e, Pin: ed.SrcPin, Outputs: len(out)}}
		}
		ed.Value = out[ed.SrcPin]
	}
	m.obs.NodeEvaluated(n, time.Since(start))
	return changed, nil
}

func sameValues(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Evaluations returns the total number of node evaluations performed by the
// Model since its creation.
//
func (m *Model) Evaluations() uint64 { return m.evals }

// Len returns the number of components in the Model.
//
func (m *Model) Len() int { return m.live }

// Nodes returns the handles of all components in insertion order.
//
func (m *Model) Nodes() []NodeID {
	ns := make([]NodeID, 0, m.live)
	for i, nd := range m.nodes {
		if nd != nil {
			ns = append(ns, NodeID(i))
		}
	}
	return ns
}

// Edges returns the handles of all edges in creation order.
//
func (m *Model) Edges() []EdgeID {
	var es []EdgeID
	for i, e := range m.edges {
		if e != nil {
			es = append(es, EdgeID(i))
		}
	}
	return es
}

// Component returns the component mounted as node n.
//
func (m *Model) Component(n NodeID) (Component, error) {
	nd, err := m.node(n)
	if err != nil {
		return nil, err
	}
	return nd.c, nil
}

// Outputs returns the outputs produced by the last evaluation of node n, or
// its initial outputs if it has not been evaluated yet.
//
func (m *Model) Outputs(n NodeID) ([]Value, error) {
	nd, err := m.node(n)
	if err != nil {
		return nil, err
	}
	return append([]Value(nil), nd.out...), nil
}

// Inputs returns the input vector node n would see if evaluated now.
//
func (m *Model) Inputs(n NodeID) ([]Value, error) {
	nd, err := m.node(n)
	if err != nil {
		return nil, err
	}
	return m.inputs(nd), nil
}

// Incoming returns the edges driving node n.
//
func (m *Model) Incoming(n NodeID) ([]EdgeID, error) {
	nd, err := m.node(n)
	if err != nil {
		return nil, err
	}
	return append([]EdgeID(nil), nd.in...), nil
}

// Outgoing returns the edges driven by node n.
//
func (m *Model) Outgoing(n NodeID) ([]EdgeID, error) {
	nd, err := m.node(n)
	if err != nil {
		return nil, err
	}
	return append([]EdgeID(nil), nd.fwd...), nil
}

// Successors returns the distinct nodes driven by node n, in edge order.
//
func (m *Model) Successors(n NodeID) ([]NodeID, error) {
	nd, err := m.node(n)
	if err != nil {
		return nil, err
	}
	var ns []NodeID
	seen := make(map[NodeID]bool, len(nd.fwd))
	for _, e := range nd.fwd {
		d := m.edges[e].Dst
		if !seen[d] {
			seen[d] = true
			ns = append(ns, d)
		}
	}
	return ns, nil
}

// Edge returns a copy of edge e.
//
func (m *Model) Edge(e EdgeID) (Edge, error) {
	ed, err := m.edge(e)
	if err != nil {
		return Edge{}, err
	}
	return *ed, nil
}

// EdgeValue returns the value currently carried by edge e.
//
func (m *Model) EdgeValue(e EdgeID) (Value, error) {
	ed, err := m.edge(e)
	if err != nil {
		return Value{}, err
	}
	return ed.Value, nil
}

// State returns a human readable description of node n. Components
// implementing fmt.Stringer describe themselves, others are described by their
// current outputs.
//
func (m *Model) State(n NodeID) (string, error) {
	nd, err := m.node(n)
	if err != nil {
		return "", err
	}
	if s, ok := nd.c.(fmt.Stringer); ok {
		return s.String(), nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%T out=", nd.c)
	for i, v := range nd.out {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(v.String())
	}
	return b.String(), nil
}
