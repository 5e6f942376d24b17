// Package logging provides concrete implementations of the tierdocs.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: writes to stderr (or any writer) with [VERBOSE]/[ERROR] prefixes
//   - NullLogger: discards all messages
//   - RecordingLogger: keeps messages in memory for assertions in tests
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
