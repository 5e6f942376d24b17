package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/tierdocs/internal/tui"
)

// TextField is a labeled single-line text input.
type TextField struct {
	label     string
	input     textinput.Model
	focused   bool
	validator func(string) error
	err       error
	styles    textFieldStyles
}

type textFieldStyles struct {
	Label        lipgloss.Style
	Input        lipgloss.Style
	FocusedInput lipgloss.Style
	Error        lipgloss.Style
}

func defaultTextFieldStyles() textFieldStyles {
	return textFieldStyles{
		Label:        lipgloss.NewStyle().Foreground(tui.ColorSecondary),
		Input:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		FocusedInput: lipgloss.NewStyle().Foreground(tui.ColorPrimary),
		Error:        tui.ErrorStyle,
	}
}

// NewTextField creates a new text field.
func NewTextField(label, placeholder string) TextField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 60

	return TextField{
		label:  label,
		input:  ti,
		styles: defaultTextFieldStyles(),
	}
}

// WithValidator sets a validation function, run on every change.
func (t TextField) WithValidator(fn func(string) error) TextField {
	t.validator = fn
	return t
}

// Focus focuses the text field.
func (t *TextField) Focus() tea.Cmd {
	t.focused = true
	return t.input.Focus()
}

// Update forwards msg to the input and revalidates.
func (t TextField) Update(msg tea.Msg) (TextField, tea.Cmd) {
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)

	if t.validator != nil {
		t.err = t.validator(t.input.Value())
	}

	return t, cmd
}

// View renders the label, the input and the current validation error.
func (t TextField) View() string {
	var b strings.Builder

	b.WriteString(t.styles.Label.Render(t.label))
	b.WriteString("\n")

	inputStyle := t.styles.Input
	if t.focused {
		inputStyle = t.styles.FocusedInput
	}
	b.WriteString(inputStyle.Render(t.input.View()))

	if t.err != nil {
		b.WriteString("\n")
		b.WriteString(t.styles.Error.Render(t.err.Error()))
	}

	return b.String()
}

// Value returns the current value.
func (t TextField) Value() string {
	return t.input.Value()
}

// Validate runs validation and returns any error.
func (t *TextField) Validate() error {
	if t.validator != nil {
		t.err = t.validator(t.input.Value())
		return t.err
	}
	t.err = nil
	return nil
}
