package logging

import (
	"fmt"
	"sync"
)

// NullLogger discards all messages. Safe for concurrent use.
type NullLogger struct{}

// NewNullLogger creates a new NullLogger.
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Verbose(format string, args ...interface{}) {}
func (l *NullLogger) Info(format string, args ...interface{}) {}
func (l *NullLogger) Error(format string, args ...interface{}) {}

// Entry is one message captured by a RecordingLogger.
type Entry struct {
	Level   string
	Message string
}

// RecordingLogger keeps every message in memory, verbose ones included,
// so tests can assert on what a component reported.
type RecordingLogger struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecordingLogger creates an empty RecordingLogger.
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{}
}

func (l *RecordingLogger) record(level, format string, args []interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	l.mu.Lock()
	l.entries = append(l.entries, Entry{Level: level, Message: msg})
	l.mu.Unlock()
}

func (l *RecordingLogger) Verbose(format string, args ...interface{}) {
	l.record("verbose", format, args)
}

func (l *RecordingLogger) Info(format string, args ...interface{}) {
	l.record("info", format, args)
}

func (l *RecordingLogger) Error(format string, args ...interface{}) {
	l.record("error", format, args)
}

// Entries returns a copy of the captured messages in order.
func (l *RecordingLogger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), l.entries...)
}

// Errors returns the messages logged at error level.
func (l *RecordingLogger) Errors() []string {
	var errs []string
	for _, e := range l.Entries() {
		if e.Level == "error" {
			errs = append(errs, e.Message)
		}
	}
	return errs
}
