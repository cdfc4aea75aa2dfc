package dlog

import (
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Both *logrus.Logger and *logrus.Entry satisfy this.
type logrusLogger interface {
	WithField(key string, value interface{}) *logrus.Entry
	Log(level logrus.Level, args ...interface{})
}

type logrusWrapper struct {
	logrusLogger
}

var _ Logger = logrusWrapper{}

// Helper does nothing--we use a Logrus Hook instead (see below).
func (l logrusWrapper) Helper() {}

func (l logrusWrapper) WithField(key string, value interface{}) Logger {
	return logrusWrapper{l.logrusLogger.WithField(key, value)}
}

var dlogLevel2logrusLevel = [5]logrus.Level{
	logrus.ErrorLevel,
	logrus.WarnLevel,
	logrus.InfoLevel,
	logrus.DebugLevel,
	logrus.TraceLevel,
}

func (l logrusWrapper) Log(level LogLevel, msg string) {
	if level > LogLevelTrace {
		panic(errors.Errorf("invalid LogLevel: %d", level))
	}
	l.logrusLogger.Log(dlogLevel2logrusLevel[level], msg)
}

// WrapLogrus converts a logrus *Logger into a generic Logger.
//
// You should only really ever call WrapLogrus from the initial process set up (i.e. directly
// inside your 'main()' function), and you should pass the result directly to WithLogger.
func WrapLogrus(in *logrus.Logger) Logger {
	in.AddHook(logrusFixCallerHook{})
	return logrusWrapper{in}
}

type logrusFixCallerHook struct{}

func (logrusFixCallerHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (logrusFixCallerHook) Fire(entry *logrus.Entry) error {
	if entry.Caller != nil && strings.HasPrefix(entry.Caller.Function, dlogPackage+".") {
		entry.Caller = getCaller()
	}
	return nil
}

const (
	dlogPackage            = "github.com/datawire/dthread/dlog"
	logrusPackage          = "github.com/sirupsen/logrus"
	maximumCallerDepth int = 25
	minimumCallerDepth int = 2 // runtime.Callers + getCaller
)

// Duplicate of logrus.getCaller() because Logrus doesn't have the kind of skip/.Helper()
// functionality that testing.TB has.
//
// https://github.com/sirupsen/logrus/issues/972
func getCaller() *runtime.Frame {
	pcs := make([]uintptr, maximumCallerDepth)
	depth := runtime.Callers(minimumCallerDepth, pcs)
	frames := runtime.CallersFrames(pcs[:depth])

	for f, again := frames.Next(); again; f, again = frames.Next() {
		if strings.HasPrefix(f.Function, logrusPackage+".") || strings.HasPrefix(f.Function, dlogPackage+".") {
			continue
		}
		return &f
	}
	return nil
}
