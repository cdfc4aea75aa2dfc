// Package dpool is a broadcast-execution worker pool: a fixed set of workers, each on its own OS
// thread, that can be asked over and over to all run the same function at once.
//
//	pool := dpool.NewPool(ctx, runtime.NumCPU())
//	defer pool.Close()
//
//	queue := dqueue.New[job]()
//	queue.Send(firstJob)
//	pool.Broadcast(func() {
//		for j, ok := queue.Recv(); ok; j, ok = queue.Recv() {
//			process(j, queue) // may queue.Send more work
//			queue.Done()
//		}
//	})
//	// every worker has returned from the callback by now
//
// The pool does not divide work; the callback does, by pulling from whatever shared structure it
// closes over.  What the pool guarantees is that Broadcast does not return until every invocation
// of the callback has returned, so the callback may freely close over the caller's locals, and the
// caller may read, reset, or discard them as soon as Broadcast returns.
//
// The callback runs concurrently on every worker; any state it shares must be synchronized by the
// caller.
package dpool

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/datawire/dthread/derror"
	"github.com/datawire/dthread/dlog"
	"github.com/datawire/dthread/dsync"
)

// A Pool runs broadcast callbacks either on a fixed set of workers (NewPool) or directly on the
// calling goroutine (NewInlinePool).
//
// A Pool must be shut down with Close.
type Pool struct {
	ctx    context.Context
	inline bool

	// one of each per worker; both empty for an inline Pool
	tasks   []chan task
	workers []*worker

	// Broadcast holds mu for reading, Close holds it for writing.
	mu       sync.RWMutex
	closed   bool
	closeErr error
}

// NewPool starts a Pool of exactly n workers.  Each worker is a goroutine locked to its own OS
// thread for its entire life, with its own task channel.
//
// The Context is used for logging (see dlog); canceling it does not stop the Pool.
//
// It is a runtime error (panic) for n to be less than 1.
func NewPool(ctx context.Context, n int) *Pool {
	if n < 1 {
		panic(errors.Errorf("dpool.NewPool: invalid worker count: %d", n))
	}
	p := &Pool{
		ctx:     ctx,
		tasks:   make([]chan task, 0, n),
		workers: make([]*worker, 0, n),
	}
	for i := 0; i < n; i++ {
		ch := make(chan task, 1)
		w := &worker{
			idx:    i,
			tasks:  ch,
			exited: make(chan struct{}),
		}
		go w.loop(ctx)
		p.tasks = append(p.tasks, ch)
		p.workers = append(p.workers, w)
	}
	dlog.Debugf(ctx, "dpool: started %d workers", n)
	return p
}

// NewInlinePool returns a Pool with no workers at all: Broadcast calls the function exactly once,
// synchronously, on the calling goroutine.  It is meant for single-threaded callers and for tests
// that want a deterministic execution order.
func NewInlinePool(ctx context.Context) *Pool {
	return &Pool{
		ctx:    ctx,
		inline: true,
	}
}

// Size returns the number of times each Broadcast calls its function: the worker count, or 1 for
// an inline Pool.
func (p *Pool) Size() int {
	if p.inline {
		return 1
	}
	return len(p.workers)
}

// Broadcast calls fn once on every worker, concurrently, and blocks until every one of those calls
// has returned.
//
// fn must be safe to call from several goroutines at once.  There is no ordering between workers:
// they may start and finish in any order.  Concurrent Broadcasts from different goroutines are
// allowed; each worker runs the functions it is handed in the order they were sent to it.
//
// If fn panics on a worker, that invocation still counts as finished; the other workers are not
// interrupted, Broadcast still returns once they are done, and the panic is reported by Close.  On
// an inline Pool, a panic in fn propagates out of Broadcast.
//
// Calling Broadcast on the same Pool from inside fn deadlocks.  It is a runtime error (panic) to
// Broadcast on a Pool that has been closed, or to Broadcast a nil function.
func (p *Pool) Broadcast(fn func()) {
	if fn == nil {
		panic("dpool.Pool.Broadcast: nil function")
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		panic("dpool.Pool.Broadcast: pool is closed")
	}

	if p.inline {
		fn()
		return
	}

	// fn is only guaranteed to be valid until we return.  Deferring JoinAndDispose right here
	// means that once any worker can see fn, there is no path out of this function that does
	// not first wait for every worker to let go of it.
	var barrier dsync.Barrier
	defer barrier.JoinAndDispose()
	for _, ch := range p.tasks {
		// Issue before sending: the handle must exist before the worker can possibly release it.
		ch <- task{fn: fn, handle: barrier.Issue()}
	}
}

// Close shuts down the Pool: it closes every worker's task channel, then waits for every worker to
// drain what it has already been sent and exit.  If any Broadcasts are in progress, Close first
// waits for them to return.
//
// The error returned is a derror.MultiError of every panic (see derror.PanicToError) that escaped a
// broadcast function over the life of the Pool, or nil if there were none.
//
// Close may be called more than once; later calls return the same result.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return p.closeErr
	}
	p.closed = true
	if p.inline {
		return nil
	}

	// Close every channel before joining any worker; a worker only exits once its channel is
	// closed.
	for _, ch := range p.tasks {
		close(ch)
	}
	var crashes derror.MultiError
	for _, w := range p.workers {
		<-w.exited
		crashes = append(crashes, w.crashes...)
	}
	dlog.Debugf(p.ctx, "dpool: all %d workers exited", len(p.workers))

	if len(crashes) > 0 {
		p.closeErr = crashes
	}
	return p.closeErr
}
