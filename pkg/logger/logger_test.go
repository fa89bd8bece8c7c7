package logger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriberReceivesEntries(t *testing.T) {
	l := New("test")
	l.DisableConsoleOutput()
	ch := l.Subscribe()

	l.Infof("hello %s", "world")

	select {
	case entry := <-ch:
		assert.Equal(t, "INFO", entry.Level)
		assert.Equal(t, "hello world", entry.Message)
	case <-time.After(time.Second):
		t.Fatal("no entry received")
	}
}

func TestDebugIsOffByDefault(t *testing.T) {
	l := New("test")
	l.DisableConsoleOutput()
	ch := l.Subscribe()

	l.Debugf("hidden")
	l.EnableDebug()
	l.Debugf("visible")

	select {
	case entry := <-ch:
		assert.Equal(t, "visible", entry.Message)
	case <-time.After(time.Second):
		t.Fatal("no entry received")
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	require.NotPanics(t, func() {
		l.Infof("ignored")
		l.Errorf("ignored")
	})
}
