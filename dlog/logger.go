// Package dlog implements a generic logger facade that travels in a context.Context.
//
// Library code (like dpool's worker loop) should never pick a logging backend itself; it asks the
// Context it was given for a Logger, and the program's main() decides what that Logger is:
//
//	ctx = dlog.WithLogger(ctx, dlog.WrapLogrus(logrus.New()))
//	pool := dpool.NewPool(ctx, 4)
//
// A Context that has no Logger associated with it logs to the fallback logger; see
// SetFallbackLogger.
package dlog

import (
	"context"
	"fmt"
)

// Logger is a generic logging interface that is easy to implement on top of any backend.
type Logger interface {
	// Helper marks the calling function as a logging helper, so that the backend can report the
	// correct caller.  Backends that don't track callers may implement it as a no-op.
	Helper()
	// WithField returns a copy of the Logger that attaches the given key/value to every entry.
	WithField(key string, value interface{}) Logger
	// Log writes a single log entry.  Implementations must be safe for concurrent use.
	Log(level LogLevel, msg string)
}

// LogLevel is an abstracted common log-level type for Logger.Log.
type LogLevel uint32

const (
	// LogLevelError is for errors that should definitely be noted.
	LogLevelError LogLevel = iota
	// LogLevelWarn is for non-critical entries that deserve eyes.
	LogLevelWarn
	// LogLevelInfo is for general operational entries about what's going on inside the
	// application.
	LogLevelInfo
	// LogLevelDebug is for debugging-level logging.
	LogLevelDebug
	// LogLevelTrace is for extremely detailed logging, even finer-grained than LogLevelDebug.
	LogLevelTrace
)

type loggerContextKey struct{}

// WithLogger returns a copy of ctx with logger associated with it, for future calls to
// {Error,Warn,Info,Debug,Trace}{f,ln}.
func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

// WithField returns a copy of ctx with the logger field key=value associated with it, for future
// log entries written with that Context.
func WithField(ctx context.Context, key string, value interface{}) context.Context {
	return WithLogger(ctx, getLogger(ctx).WithField(key, value))
}

func getLogger(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerContextKey{}).(Logger); ok && logger != nil {
		return logger
	}
	return getFallbackLogger()
}

func logf(ctx context.Context, level LogLevel, format string, args ...interface{}) {
	l := getLogger(ctx)
	l.Helper()
	l.Log(level, fmt.Sprintf(format, args...))
}

func logln(ctx context.Context, level LogLevel, args ...interface{}) {
	l := getLogger(ctx)
	l.Helper()
	msg := fmt.Sprintln(args...)
	l.Log(level, msg[:len(msg)-1])
}

// Errorf formats a message and logs it at LogLevelError with the Context's Logger.
func Errorf(ctx context.Context, format string, args ...interface{}) {
	logf(ctx, LogLevelError, format, args...)
}

// Warnf formats a message and logs it at LogLevelWarn with the Context's Logger.
func Warnf(ctx context.Context, format string, args ...interface{}) {
	logf(ctx, LogLevelWarn, format, args...)
}

// Infof formats a message and logs it at LogLevelInfo with the Context's Logger.
func Infof(ctx context.Context, format string, args ...interface{}) {
	logf(ctx, LogLevelInfo, format, args...)
}

// Debugf formats a message and logs it at LogLevelDebug with the Context's Logger.
func Debugf(ctx context.Context, format string, args ...interface{}) {
	logf(ctx, LogLevelDebug, format, args...)
}

// Tracef formats a message and logs it at LogLevelTrace with the Context's Logger.
func Tracef(ctx context.Context, format string, args ...interface{}) {
	logf(ctx, LogLevelTrace, format, args...)
}

// Errorln logs its operands, separated by spaces, at LogLevelError.
func Errorln(ctx context.Context, args ...interface{}) {
	logln(ctx, LogLevelError, args...)
}

// Infoln logs its operands, separated by spaces, at LogLevelInfo.
func Infoln(ctx context.Context, args ...interface{}) {
	logln(ctx, LogLevelInfo, args...)
}

// Debugln logs its operands, separated by spaces, at LogLevelDebug.
func Debugln(ctx context.Context, args ...interface{}) {
	logln(ctx, LogLevelDebug, args...)
}
