// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import "time"

// An Observer receives timing information from a Model. It is called
// synchronously from the evaluation loop and must not modify the Model.
//
type Observer interface {
	// NodeEvaluated is called after each successful node evaluation.
	NodeEvaluated(n NodeID, d time.Duration)
	// DrainDone is called after a drain completes or aborts.
	DrainDone(phase Phase, evaluations int, d time.Duration)
}

type nopObserver struct{}

func (nopObserver) NodeEvaluated(NodeID, time.Duration)   {}
func (nopObserver) DrainDone(Phase, int, time.Duration) {}
