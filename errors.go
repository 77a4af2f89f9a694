// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Sentinel errors. Every typed error below matches one of these with errors.Is.
//
var (
	ErrWidthMismatch = errors.New("width mismatch")
	ErrBitIndex      = errors.New("bit index out of range")
	ErrMissingOutput = errors.New("missing output for pin")
	ErrNoConvergence = errors.New("did not converge")
	ErrNoSuchNode    = errors.New("no such node")
	ErrNoSuchEdge    = errors.New("no such edge")
	ErrPinRange      = errors.New("pin out of range")
	ErrPinInUse      = errors.New("input pin already driven")
)

// WidthMismatchError is returned when combining values of different widths.
//
type WidthMismatchError struct {
	Op          string
	Left, Right int
}

func (e *WidthMismatchError) Error() string {
	return fmt.Sprintf("%s: %s (%d != %d)", e.Op, ErrWidthMismatch, e.Left, e.Right)
}

func (e *WidthMismatchError) Is(target error) bool { return target == ErrWidthMismatch }

// BitIndexError is returned when accessing a bit at or above a value's width.
//
type BitIndexError struct {
	Index, Width int
}

func (e *BitIndexError) Error() string {
	return fmt.Sprintf("bit %d: %s (width %d)", e.Index, ErrBitIndex, e.Width)
}

func (e *BitIndexError) Is(target error) bool { return target == ErrBitIndex }

// MissingOutputError reports an edge wired from an output pin for which the
// source component did not produce a value.
//
type MissingOutputError struct {
	Node    NodeID
	Edge    EdgeID
	Pin     int
	Outputs int // number of outputs actually produced
}

func (e *MissingOutputError) Error() string {
	return fmt.Sprintf("node %d: %s %d on edge %d (produced %d outputs)", e.Node, ErrMissingOutput, e.Pin, e.Edge, e.Outputs)
}

func (e *MissingOutputError) Is(target error) bool { return target == ErrMissingOutput }

// NoConvergenceError is returned when a drain or a settle loop exhausts its
// evaluation budget. Pending lists the nodes that were still scheduled.
//
type NoConvergenceError struct {
	Phase   Phase
	Budget  int
	Pending []NodeID
}

func (e *NoConvergenceError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s phase %s after %d evaluations", e.Phase, ErrNoConvergence, e.Budget)
	if len(e.Pending) > 0 {
		b.WriteString(", pending nodes:")
		for i, n := range e.Pending {
			if i == 8 {
				fmt.Fprintf(&b, " ... (%d more)", len(e.Pending)-i)
				break
			}
			fmt.Fprintf(&b, " %d", n)
		}
	}
	return b.String()
}

func (e *NoConvergenceError) Is(target error) bool { return target == ErrNoConvergence }

// PinError reports an invalid connection request.
//
type PinError struct {
	Node  NodeID
	Pin   int
	Arity int
	Input bool
	Err   error // ErrPinRange or ErrPinInUse
}

func (e *PinError) Error() string {
	dir := "output"
	if e.Input {
		dir = "input"
	}
	if e.Err == ErrPinInUse {
		return fmt.Sprintf("node %d: %s %d: %s", e.Node, dir, e.Pin, e.Err)
	}
	return fmt.Sprintf("node %d: %s %d: %s (arity %d)", e.Node, dir, e.Pin, e.Err, e.Arity)
}

func (e *PinError) Unwrap() error { return e.Err }

// EvalError wraps a fault raised while evaluating a node. The drain that
// raised it has been aborted; edges written before the fault keep their new
// values.
//
type EvalError struct {
	Node  NodeID
	Phase Phase
	Err   error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%s phase: node %d: %v", e.Phase, e.Node, e.Err)
}

func (e *EvalError) Unwrap() error { return e.Err }
