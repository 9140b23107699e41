package common

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestTestLoggerAdapterWrite(t *testing.T) {
	a := &testLoggerAdapter{t: t}

	for _, line := range []string{"event inserted\n", "no newline", ""} {
		n, err := a.Write([]byte(line))
		if err != nil {
			t.Fatal(err)
		}
		if n != len(line) {
			t.Fatalf("Write(%q) should report %d bytes, not %d", line, len(line), n)
		}
	}

	entry := NewTestEntry(t)
	if entry.Logger.Level != logrus.DebugLevel {
		t.Fatalf("test entry should log at debug level, not %s", entry.Logger.Level)
	}
	entry.WithField("event", 1).Debug("AddEvent")
}
