package common

import (
	"testing"

	"github.com/sirupsen/logrus"
)

// testLoggerAdapter is an io.Writer that forwards each log line to t.Log, so
// logs only show for failed or verbose tests.
type testLoggerAdapter struct {
	t testing.TB
}

// Write implements io.Writer. The trailing newline is dropped because t.Log
// adds its own.
func (a *testLoggerAdapter) Write(d []byte) (int, error) {
	n := len(d)
	if n > 0 && d[n-1] == '\n' {
		d = d[:n-1]
	}
	a.t.Log(string(d))
	return n, nil
}

// NewTestLogger returns a logrus Logger that writes to t.Log at the given
// level.
func NewTestLogger(t testing.TB, level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.Out = &testLoggerAdapter{t: t}
	logger.Level = level
	return logger
}

// NewTestEntry is a debug-level NewTestLogger wrapped in an Entry.
func NewTestEntry(t testing.TB) *logrus.Entry {
	return logrus.NewEntry(NewTestLogger(t, logrus.DebugLevel))
}
