package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/tierdocs/internal/tui"
)

// Option represents a selectable option in the selector.
type Option struct {
	Label       string
	Description string
	Value       string
}

// Selector is a component for selecting one of a list of options.
type Selector struct {
	title     string
	options   []Option
	cursor    int
	selected  int
	showHelp  bool
	keyMap    selectorKeyMap
	styles    selectorStyles
	submitted bool
	cancelled bool
}

type selectorKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

type selectorStyles struct {
	Title       lipgloss.Style
	Selected    lipgloss.Style
	Unselected  lipgloss.Style
	Description lipgloss.Style
	Help        lipgloss.Style
}

func defaultSelectorStyles() selectorStyles {
	return selectorStyles{
		Title:       tui.TitleStyle,
		Selected:    lipgloss.NewStyle().Foreground(tui.ColorPrimary).Bold(true),
		Unselected:  lipgloss.NewStyle().Foreground(tui.ColorSecondary),
		Description: tui.DescriptionStyle,
		Help:        tui.HelpStyle,
	}
}

func defaultSelectorKeyMap() selectorKeyMap {
	return selectorKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// NewSelector creates a new selector component.
func NewSelector(title string, options []Option) Selector {
	return Selector{
		title:    title,
		options:  options,
		selected: -1,
		showHelp: true,
		keyMap:   defaultSelectorKeyMap(),
		styles:   defaultSelectorStyles(),
	}
}

// WithShowHelp enables or disables the help text.
func (s Selector) WithShowHelp(show bool) Selector {
	s.showHelp = show
	return s
}

// Init implements tea.Model.
func (s Selector) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (s Selector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch {
	case key.Matches(keyMsg, s.keyMap.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(keyMsg, s.keyMap.Down):
		if s.cursor < len(s.options)-1 {
			s.cursor++
		}
	case key.Matches(keyMsg, s.keyMap.Select):
		s.selected = s.cursor
		s.submitted = true
		return s, tea.Quit
	case key.Matches(keyMsg, s.keyMap.Quit):
		s.cancelled = true
		return s, tea.Quit
	}
	return s, nil
}

// View implements tea.Model.
func (s Selector) View() string {
	var b strings.Builder

	b.WriteString(s.styles.Title.Render(s.title))
	b.WriteString("\n\n")

	for i, opt := range s.options {
		cursor, style, symbol := "  ", s.styles.Unselected, "○"
		if i == s.cursor {
			cursor, style, symbol = "", s.styles.Selected, "●"
		}

		b.WriteString(cursor)
		b.WriteString(style.Render(symbol + " " + opt.Label))
		b.WriteString("\n")

		if opt.Description != "" {
			b.WriteString(s.styles.Description.Render(opt.Description))
			b.WriteString("\n")
		}
	}

	if s.showHelp {
		b.WriteString(s.styles.Help.Render("\n↑/↓ navigate • enter select • q quit"))
	}

	return b.String()
}

// SelectedOption returns the selected option, or nil if none selected.
func (s Selector) SelectedOption() *Option {
	if s.selected >= 0 && s.selected < len(s.options) {
		return &s.options[s.selected]
	}
	return nil
}

// Cancelled returns true if the user cancelled the selection.
func (s Selector) Cancelled() bool {
	return s.cancelled
}

// Submitted returns true if the user made a selection.
func (s Selector) Submitted() bool {
	return s.submitted
}

// Value returns the value of the selected option.
func (s Selector) Value() string {
	if opt := s.SelectedOption(); opt != nil {
		return opt.Value
	}
	return ""
}
