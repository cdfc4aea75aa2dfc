package dlog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
)

type tbWrapper struct {
	testing.TB
	failOnError bool
	fields      map[string]interface{}
}

func (w tbWrapper) WithField(key string, value interface{}) Logger {
	ret := tbWrapper{
		TB:          w.TB,
		failOnError: w.failOnError,
		fields:      make(map[string]interface{}, len(w.fields)+1),
	}
	for k, v := range w.fields {
		ret.fields[k] = v
	}
	ret.fields[key] = value
	return ret
}

func (w tbWrapper) Log(level LogLevel, msg string) {
	w.Helper()

	keys := make([]string, 0, len(w.fields))
	for k := range w.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("[%s] %s", levelName(level), msg))
	for _, k := range keys {
		buf.WriteString(fmt.Sprintf(" %s=%#v", k, w.fields[k]))
	}

	if level == LogLevelError && w.failOnError {
		w.TB.Error(buf.String())
	} else {
		w.TB.Log(buf.String())
	}
}

func levelName(level LogLevel) string {
	switch level {
	case LogLevelError:
		return "error"
	case LogLevelWarn:
		return "warn"
	case LogLevelInfo:
		return "info"
	case LogLevelDebug:
		return "debug"
	case LogLevelTrace:
		return "trace"
	default:
		return fmt.Sprintf("level(%d)", level)
	}
}

// NewTestContext returns a Context whose Logger writes to the test's log (t.Log), so that log
// output is attributed to the test that produced it and is shown only when the test fails or
// `go test -v` is used.
//
// If failOnError is true, then entries at LogLevelError are written with t.Error, failing the test.
// Tests that expect errors to be logged (for example a test of a crashing worker) should pass
// false.
//
// The Context is canceled when the test finishes.
func NewTestContext(t testing.TB, failOnError bool) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return WithLogger(ctx, tbWrapper{TB: t, failOnError: failOnError})
}
