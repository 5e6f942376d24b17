package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/tierdocs/internal/tui"
)

// ConsoleLogger writes log messages to stderr.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	out     io.Writer
	verbose bool
	styled  bool
	mu      sync.Mutex
}

// NewConsoleLogger creates a ConsoleLogger on stderr. Prefixes are colored
// when stderr is a terminal and NO_COLOR is unset.
// If verbose is false, Verbose() calls are no-ops.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return &ConsoleLogger{
		out:     os.Stderr,
		verbose: verbose,
		styled:  tui.ColorEnabled(os.Stderr),
	}
}

// NewWriterLogger creates an unstyled ConsoleLogger writing to w.
func NewWriterLogger(w io.Writer, verbose bool) *ConsoleLogger {
	return &ConsoleLogger{out: w, verbose: verbose}
}

func (l *ConsoleLogger) write(prefix string, style lipgloss.Style, format string, args []interface{}) {
	if prefix != "" && l.styled {
		prefix = style.Render(prefix)
	}

	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if prefix != "" {
		fmt.Fprint(l.out, prefix+" ")
	}
	fmt.Fprintln(l.out, msg)
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write("[VERBOSE]", tui.MutedStyle, format, args)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.write("", lipgloss.Style{}, format, args)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write("[ERROR]", tui.ErrorStyle, format, args)
}
