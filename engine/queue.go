package engine

import "container/heap"

// eventQueue is a min-heap of events keyed on predicted time, ties broken
// by (i, j) lexicographically. Stale entries are never deleted; staleness
// is detected lazily at pop time by fingerprint comparison (see engine.go).
type eventQueue struct {
	items []event
}

func newEventQueue() *eventQueue {
	q := &eventQueue{}
	heap.Init(q)
	return q
}

func (q *eventQueue) push(e event) {
	heap.Push(q, e)
}

// popOne removes and returns the single soonest event, without any
// staleness filtering. Returns ok=false if the queue is empty.
func (q *eventQueue) popOne() (event, bool) {
	if q.Len() == 0 {
		return event{}, false
	}
	return heap.Pop(q).(event), true
}

// heap.Interface implementation.

func (q *eventQueue) Len() int { return len(q.items) }

func (q *eventQueue) Less(a, b int) bool {
	ea, eb := q.items[a], q.items[b]
	if ea.t != eb.t {
		return ea.t < eb.t
	}
	if ea.i != eb.i {
		return ea.i < eb.i
	}
	return ea.j < eb.j
}

func (q *eventQueue) Swap(a, b int) {
	q.items[a], q.items[b] = q.items[b], q.items[a]
}

func (q *eventQueue) Push(x any) {
	q.items = append(q.items, x.(event))
}

func (q *eventQueue) Pop() any {
	old := q.items
	n := len(old)
	e := old[n-1]
	q.items = old[:n-1]
	return e
}
