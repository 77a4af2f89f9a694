/*
Package logicsim provides a four-state digital logic simulation engine.

Signals are represented by Value, an immutable bit vector of up to 32 bits
where each bit is either 0, 1, floating (Z) or unknown (X). Components (gates,
registers, wires, see package parts) consume and produce Values.

A Model owns a graph of components connected by edges. Each edge carries the
last value written by its source output pin to an input pin of its
destination. The caller schedules components with Enqueue and evaluates them
with one of RunNormal, RunRisingEdge or RunFallingEdge; every queued component
is evaluated exactly once per drain, in FIFO order, and its outputs are
written onto its outgoing edges. Scheduling successors is left to the caller,
or to Settle, which propagates changes until the circuit is stable and
reports oscillating loops instead of running forever.

Basic usage:

	m := logicsim.NewModel()
	a := m.Add(parts.NewConstant(logicsim.New(0b1100, 4)))
	b := m.Add(parts.NewConstant(logicsim.New(0b1010, 4)))
	and, _ := parts.NewAnd(4, 2)
	g := m.Add(and)
	m.Connect(a, 0, g, 0, logicsim.Floating(4))
	m.Connect(b, 0, g, 1, logicsim.Floating(4))
	m.Enqueue(a, b, g)
	if err := m.RunNormal(); err != nil {
		// handle fault
	}
	out, _ := m.Outputs(g) // out[0] is 1000
*/
package logicsim
