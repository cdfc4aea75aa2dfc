package dlog_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/datawire/dthread/dlog"
)

func newBufferLogger(level logrus.Level) (*bytes.Buffer, dlog.Logger) {
	buf := new(bytes.Buffer)
	logger := logrus.New()
	logger.SetOutput(buf)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})
	return buf, dlog.WrapLogrus(logger)
}

func TestLogrusLevels(t *testing.T) {
	buf, logger := newBufferLogger(logrus.InfoLevel)
	ctx := dlog.WithLogger(context.Background(), logger)

	dlog.Errorf(ctx, "e%d", 1)
	dlog.Warnf(ctx, "w%d", 2)
	dlog.Infoln(ctx, "i", 3)
	dlog.Debugf(ctx, "d%d", 4)
	dlog.Tracef(ctx, "t%d", 5)
	dlog.Errorln(ctx, "e", 6)

	out := buf.String()
	assert.Contains(t, out, `level=error msg=e1`)
	assert.Contains(t, out, `level=warning msg=w2`)
	assert.Contains(t, out, `level=info msg="i 3"`)
	assert.Contains(t, out, `level=error msg="e 6"`)
	assert.NotContains(t, out, "d4")
	assert.NotContains(t, out, "t5")
}

func TestWithField(t *testing.T) {
	buf, logger := newBufferLogger(logrus.DebugLevel)
	ctx := dlog.WithLogger(context.Background(), logger)
	ctx = dlog.WithField(ctx, "WORKER", 3)

	dlog.Debugln(ctx, "idle")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if assert.Len(t, lines, 1) {
		assert.Contains(t, lines[0], "WORKER=3")
		assert.Contains(t, lines[0], "msg=idle")
	}
}

func TestFallbackLogger(t *testing.T) {
	buf, logger := newBufferLogger(logrus.InfoLevel)
	dlog.SetFallbackLogger(logger)
	defer dlog.SetFallbackLogger(dlog.WrapLogrus(logrus.New()))

	dlog.Infof(context.Background(), "no logger in this context")
	assert.Contains(t, buf.String(), "no logger in this context")
}

func TestInvalidLevel(t *testing.T) {
	_, logger := newBufferLogger(logrus.InfoLevel)
	assert.Panics(t, func() {
		logger.Log(dlog.LogLevelTrace+1, "nope")
	})
}
