package dlog

import (
	"sync"

	"github.com/sirupsen/logrus"
)

var globals = struct { //nolint:gochecknoglobals // this is a place where we really do want a global
	fallbackLogger   Logger
	fallbackLoggerMu sync.RWMutex
}{
	fallbackLogger: WrapLogrus(logrus.New()),
}

func getFallbackLogger() Logger {
	globals.fallbackLoggerMu.RLock()
	defer globals.fallbackLoggerMu.RUnlock()
	return globals.fallbackLogger
}

// SetFallbackLogger sets the Logger that is used for a Context that doesn't have a Logger
// associated with it.  The default is a plain Logrus logger at InfoLevel, so a dpool.Pool that was
// built from context.Background() still reports crashed workers somewhere sensible.
//
// A nil fallback Logger makes logging through a Context without a Logger panic, which is useful
// for finding places that fail to pass the Context along.
func SetFallbackLogger(l Logger) {
	globals.fallbackLoggerMu.Lock()
	defer globals.fallbackLoggerMu.Unlock()
	globals.fallbackLogger = l
}
