package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Status prints one-line outcomes of a command, styled when the output is a
// color-capable terminal.
type Status struct {
	out    io.Writer
	styled bool
}

// NewStatus creates a Status writing to f.
func NewStatus(f *os.File) *Status {
	return &Status{out: f, styled: ColorEnabled(f)}
}

// NewPlainStatus creates an unstyled Status writing to w.
func NewPlainStatus(w io.Writer) *Status {
	return &Status{out: w}
}

func (s *Status) line(style lipgloss.Style, symbol, format string, args ...interface{}) {
	msg := symbol + " " + fmt.Sprintf(format, args...)
	if s.styled {
		msg = style.Render(msg)
	}
	fmt.Fprintln(s.out, msg)
}

// Success prints a check line.
func (s *Status) Success(format string, args ...interface{}) {
	s.line(SuccessStyle, SymbolCheck, format, args...)
}

// Fail prints a cross line.
func (s *Status) Fail(format string, args ...interface{}) {
	s.line(ErrorStyle, SymbolCross, format, args...)
}

// Item prints a bulleted detail line.
func (s *Status) Item(format string, args ...interface{}) {
	s.line(MutedStyle, "  "+SymbolBullet, format, args...)
}

// Plain prints format without decoration.
func (s *Status) Plain(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format+"\n", args...)
}
