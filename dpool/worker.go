package dpool

import (
	"context"
	"runtime"

	"github.com/pkg/errors"

	"github.com/datawire/dthread/derror"
	"github.com/datawire/dthread/dlog"
	"github.com/datawire/dthread/dsync"
)

// A task is one worker's share of one Broadcast.  fn belongs to the broadcasting goroutine and is
// only valid until handle is released.
type task struct {
	fn     func()
	handle *dsync.Handle
}

// errGoexit is recorded when a broadcast function calls runtime.Goexit on a worker.
var errGoexit = errors.New("broadcast function called runtime.Goexit")

type worker struct {
	idx    int
	tasks  <-chan task
	exited chan struct{} // closed once the worker has seen its channel closed

	// Only touched by the worker goroutine until exited is closed.
	crashes []error
}

// loop is the worker's life: idle in the receive, running in w.run, terminated once the channel is
// closed and drained.
func (w *worker) loop(ctx context.Context) {
	// No matching UnlockOSThread: the thread exits along with the worker.
	runtime.LockOSThread()

	ctx = dlog.WithField(ctx, "WORKER", w.idx)
	if tid := gettid(); tid != 0 {
		ctx = dlog.WithField(ctx, "TID", tid)
	}

	drained := false
	defer func() {
		if !drained {
			// Only runtime.Goexit gets us here; w.run recovers panics.  Put a fresh
			// goroutine on the channel so that later Broadcasts are not stranded.
			dlog.Errorln(ctx, "dpool: worker exited mid-task, restarting it")
			w.crashes = append(w.crashes, errGoexit)
			go w.loop(ctx)
			return
		}
		dlog.Debugln(ctx, "dpool: worker terminated")
		close(w.exited)
	}()

	dlog.Debugln(ctx, "dpool: worker idle")
	for t := range w.tasks {
		w.run(ctx, t)
	}
	drained = true
}

func (w *worker) run(ctx context.Context, t task) {
	defer t.handle.Release()
	defer func() {
		if err := derror.PanicToError(recover()); err != nil {
			dlog.Errorf(ctx, "dpool: broadcast function crashed: %+v", err)
			w.crashes = append(w.crashes, err)
		}
	}()
	dlog.Tracef(ctx, "dpool: worker running")
	t.fn()
}
