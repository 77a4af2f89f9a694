// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import mapset "github.com/deckarep/golang-set/v2"

// queue is a FIFO of nodes where each node appears at most once.
//
type queue struct {
	items []NodeID
	head  int
	in    mapset.Set[NodeID]
}

func newQueue() *queue {
	return &queue{in: mapset.NewThreadUnsafeSet[NodeID]()}
}

// push appends n unless it is already queued. It returns false if n was
// already present.
func (q *queue) push(n NodeID) bool {
	if !q.in.Add(n) {
		return false
	}
	q.items = append(q.items, n)
	return true
}

func (q *queue) pop() (NodeID, bool) {
	if q.head == len(q.items) {
		return 0, false
	}
	n := q.items[q.head]
	q.head++
	q.in.Remove(n)
	if q.head == len(q.items) {
		q.items, q.head = q.items[:0], 0
	}
	return n, true
}

func (q *queue) remove(n NodeID) {
	if !q.in.Contains(n) {
		return
	}
	q.in.Remove(n)
	for i := q.head; i < len(q.items); i++ {
		if q.items[i] == n {
			q.items = append(q.items[:i], q.items[i+1:]...)
			break
		}
	}
}

func (q *queue) len() int { return len(q.items) - q.head }

// pending returns a copy of the queued nodes in FIFO order.
func (q *queue) pending() []NodeID {
	return append([]NodeID(nil), q.items[q.head:]...)
}

func (q *queue) clear() {
	q.items, q.head = q.items[:0], 0
	q.in.Clear()
}
