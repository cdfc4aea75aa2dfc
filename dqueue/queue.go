// Package dqueue provides a work queue for dividing up work inside a dpool broadcast function.
//
// Every worker runs the same loop: Recv an item, process it (possibly Sending new items), and call
// Done.  Recv tells the workers to stop once every item that was ever sent has been marked Done,
// which is what lets recursive work (like quicksort partitions) finish without any one worker
// knowing how much work there will be.
package dqueue

import (
	"sync"
)

// A Queue is a blocking, counting collection of work items.  Items are handed out most recently
// sent first, which keeps recursive work depth-first.
//
// The zero value is not usable; use New.
type Queue[T any] struct {
	mu    sync.Mutex
	cond  *sync.Cond
	items []T
	sent  int
	done  int
}

// New returns an empty Queue.
func New[T any]() *Queue[T] {
	q := &Queue[T]{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Send adds an item to the queue, waking one blocked Recv.
func (q *Queue[T]) Send(v T) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.sent++
	q.items = append(q.items, v)
	q.cond.Signal()
}

// Done marks one previously received item as fully processed.  Any items the processing produced
// must be Sent before calling Done.
//
// It is a runtime error (panic) to call Done more times than Send.
func (q *Queue[T]) Done() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.done >= q.sent {
		panic("dqueue.Queue.Done: more calls to Done than to Send")
	}
	q.done++
	if q.done == q.sent {
		q.cond.Broadcast()
	}
}

// Recv blocks until either an item is available, returning it and true; or every item that was
// sent has been marked Done, returning the zero value and false.
func (q *Queue[T]) Recv() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for {
		if n := len(q.items); n > 0 {
			v := q.items[n-1]
			var zero T
			q.items[n-1] = zero
			q.items = q.items[:n-1]
			return v, true
		}
		if q.sent == q.done {
			var zero T
			return zero, false
		}
		q.cond.Wait()
	}
}

// Len returns the number of items waiting to be received.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
