package derror

import (
	"fmt"
	"io"
	"runtime"

	"github.com/pkg/errors"
)

type panicError struct {
	err   error
	stack errors.StackTrace
}

func (pe *panicError) Error() string { return "PANIC: " + pe.err.Error() }

// Cause lets github.com/pkg/errors.Cause see through to the value that was passed to panic().
func (pe *panicError) Cause() error { return pe.err }
func (pe *panicError) Unwrap() error { return pe.err }

// StackTrace returns the stack of the goroutine that panicked, starting at the frame that called
// PanicToError.
func (pe *panicError) StackTrace() errors.StackTrace { return pe.stack }

func (pe *panicError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = io.WriteString(s, pe.Error())
			pe.stack.Format(s, verb)
			return
		}
		fallthrough
	case 's':
		_, _ = io.WriteString(s, pe.Error())
	case 'q':
		fmt.Fprintf(s, "%q", pe.Error())
	}
}

// PanicToError takes an arbitrary object returned from recover(), and returns an appropriate
// error.
//
// If the input is nil, then nil is returned.
//
// If the input is an error returned from a previous call to PanicToError, then it is returned
// verbatim.
//
// If the input is an error, it is wrapped with "PANIC: " and has a stack trace attached; the
// original error is still reachable with errors.Cause or errors.Unwrap.
//
// If the input is anything else, it is formatted with "%+v" and turned in to an error in the same
// way.
func PanicToError(rec interface{}) error {
	if rec == nil {
		return nil
	}
	var err error
	switch rec := rec.(type) {
	case *panicError:
		return rec
	case error:
		err = rec
	default:
		err = fmt.Errorf("%+v", rec)
	}
	return &panicError{
		err:   err,
		stack: callers(),
	}
}

const maxStackDepth = 32

func callers() errors.StackTrace {
	var pcs [maxStackDepth]uintptr
	// skip runtime.Callers, callers, and PanicToError
	n := runtime.Callers(3, pcs[:])
	stack := make(errors.StackTrace, n)
	for i, pc := range pcs[:n] {
		stack[i] = errors.Frame(pc)
	}
	return stack
}
