// Package dsync provides the completion barrier that dpool uses to keep Broadcast from returning
// while any worker is still running the broadcast callback.
//
// A Barrier counts in-flight units of work.  Whoever hands work to another goroutine first takes a
// Handle from the Barrier (incrementing the count), then makes the work visible; whoever performs
// the work releases the Handle when it is finished (decrementing the count).  The goroutine that
// owns the Barrier then calls JoinAndDispose, which cannot return until every Handle has been
// released.
//
// That ordering is what makes it safe to give other goroutines a reference to something that is
// only valid for the duration of one call (a closure over the caller's locals, a slice the caller
// is about to reuse, ...):
//
//	var barrier dsync.Barrier
//	for _, ch := range workers {
//		h := barrier.Issue() // before the work is visible
//		ch <- task{fn, h}    // worker calls h.Release() after fn returns
//	}
//	barrier.JoinAndDispose() // nothing can still be touching fn after this
//
// The compiler does not enforce this; the only thing that does is never letting a function that
// handed out Handles return before it has called JoinAndDispose.
//
// There is deliberately no timeout and no Context on Wait: giving up early would let the caller
// return while borrowers still hold its references.
package dsync

import (
	"sync"
	"sync/atomic"
)

// A Barrier is a count of in-flight units of work that can be waited on until it drops to zero.
//
// The zero value for a Barrier is ready to use with a count of zero.
//
// A Barrier must not be copied after first use.
type Barrier struct {
	mu       sync.Mutex
	cond     sync.Cond
	count    uint
	disposed bool

	noCopy    noCopyRuntime
	noCopyVet noCopyVet //nolint:structcheck,unused // embedded for `go vet` purposes, not actually used
}

func (b *Barrier) lock(method string) {
	if !b.noCopy.check() {
		panic("dsync.Barrier." + method + ": barrier was copied after first use")
	}
	b.mu.Lock()
	if b.cond.L == nil {
		b.cond.L = &b.mu
	}
}

// Increment registers one new in-flight unit of work.
//
// It is a runtime error (panic) to call Increment on a Barrier that has been disposed.
func (b *Barrier) Increment() {
	b.lock("Increment")
	defer b.mu.Unlock()
	if b.disposed {
		panic("dsync.Barrier.Increment: barrier has been disposed")
	}
	b.count++
}

// Decrement marks one in-flight unit of work as finished, waking every goroutine blocked in Wait
// or JoinAndDispose if that was the last one.
//
// It is a runtime error (panic) to call Decrement more times than Increment; a count that would go
// negative means the Barrier can no longer be trusted.
func (b *Barrier) Decrement() {
	b.lock("Decrement")
	defer b.mu.Unlock()
	if b.count == 0 {
		panic("dsync.Barrier.Decrement: counter underflow")
	}
	b.count--
	if b.count == 0 {
		b.cond.Broadcast()
	}
}

// Count returns the number of in-flight units of work.  The result may be stale by the time the
// caller looks at it, unless the caller otherwise knows that nothing is concurrently issuing or
// releasing work.
func (b *Barrier) Count() uint {
	b.lock("Count")
	defer b.mu.Unlock()
	return b.count
}

// Wait blocks the calling goroutine until the count is zero.  If the count is already zero, it
// returns immediately.
//
// Wait does not prevent further calls to Increment; it simply returns once it observes zero.
func (b *Barrier) Wait() {
	b.lock("Wait")
	defer b.mu.Unlock()
	for b.count > 0 {
		b.cond.Wait()
	}
}

// JoinAndDispose waits for the count to reach zero, then retires the Barrier; any later Increment
// or Issue panics.  This is the operation that ends the lifetime of whatever the released Handles
// were borrowing.
//
// JoinAndDispose may be called more than once; later calls return immediately.
func (b *Barrier) JoinAndDispose() {
	b.lock("JoinAndDispose")
	defer b.mu.Unlock()
	for b.count > 0 {
		b.cond.Wait()
	}
	b.disposed = true
}

// Issue increments the count and returns a Handle that owns the new unit of work.
func (b *Barrier) Issue() *Handle {
	b.Increment()
	return &Handle{barrier: b}
}

// A Handle is one in-flight unit of work issued by a Barrier.  The Barrier is borrowed, not
// owned: it cannot finish JoinAndDispose until the Handle is released.
type Handle struct {
	barrier  *Barrier
	released atomic.Bool
}

// Release decrements the Barrier that issued h.  It is meant to be deferred by whoever performs
// the work, so that it runs on every exit path, including a panic.
//
// It is a runtime error (panic) to Release a Handle more than once.
func (h *Handle) Release() {
	if !h.released.CompareAndSwap(false, true) {
		panic("dsync.Handle.Release: handle released more than once")
	}
	h.barrier.Decrement()
}
