package wizards

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/tierdocs/internal/tui"
	"github.com/vvka-141/tierdocs/internal/tui/components"
	"github.com/vvka-141/tierdocs/pkg/tierdocs"
)

// TargetResult holds the answers of the target wizard.
type TargetResult struct {
	Cancelled   bool
	Tier        *tierdocs.Tier
	Maintainers []string
}

// TargetWizard asks for the tier and maintainers of a new target info document.
type TargetWizard struct {
	pattern string
	step    targetStep

	tier        components.Selector
	maintainers components.TextField

	result TargetResult
	styles wizardStyles
	keys   wizardKeys
}

type targetStep int

const (
	targetStepTier targetStep = iota
	targetStepMaintainers
	targetStepConfirm
)

type wizardStyles struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Description lipgloss.Style
	Help        lipgloss.Style
	Success     lipgloss.Style
}

type wizardKeys struct {
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func defaultWizardStyles() wizardStyles {
	return wizardStyles{
		Title:       tui.TitleStyle,
		Subtitle:    tui.SubtitleStyle,
		Description: tui.DescriptionStyle,
		Help:        tui.HelpStyle,
		Success:     tui.SuccessStyle,
	}
}

func defaultWizardKeys() wizardKeys {
	return wizardKeys{
		Select: key.NewBinding(key.WithKeys("enter")),
		Back:   key.NewBinding(key.WithKeys("esc")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// TierOptions are the choices offered for the tier of a new document.
// The empty value leaves the tier unset.
func TierOptions() []components.Option {
	return []components.Option{
		{Label: "Unset", Description: "Another document declares the tier", Value: ""},
		{Label: "Tier 1", Description: "Guaranteed to work", Value: "1"},
		{Label: "Tier 2", Description: "Guaranteed to build", Value: "2"},
		{Label: "Tier 3", Description: "Supported in the codebase, not built or tested by CI", Value: "3"},
	}
}

// NewTargetWizard creates a wizard for the document of pattern.
func NewTargetWizard(pattern string) TargetWizard {
	maintainers := components.NewTextField("Maintainers (comma separated, @handle for GitHub users)", "@ferris").
		WithValidator(validateMaintainers)
	maintainers.Focus()

	return TargetWizard{
		pattern:     pattern,
		step:        targetStepTier,
		tier:        components.NewSelector("Which tier is "+pattern+"?", TierOptions()).WithShowHelp(false),
		maintainers: maintainers,
		styles:      defaultWizardStyles(),
		keys:        defaultWizardKeys(),
	}
}

func validateMaintainers(value string) error {
	for _, m := range SplitMaintainers(value) {
		if strings.HasPrefix(m, "@") && len(m) == 1 {
			return fmt.Errorf("a GitHub handle needs a name after @")
		}
	}
	return nil
}

// SplitMaintainers splits a comma separated list and drops empty entries.
func SplitMaintainers(value string) []string {
	var out []string
	for _, m := range strings.Split(value, ",") {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}

// Init implements tea.Model.
func (w TargetWizard) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (w TargetWizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return w, nil
	}

	if key.Matches(keyMsg, w.keys.Quit) {
		w.result.Cancelled = true
		return w, tea.Quit
	}

	switch w.step {
	case targetStepTier:
		return w.updateTier(keyMsg)
	case targetStepMaintainers:
		return w.updateMaintainers(keyMsg)
	case targetStepConfirm:
		return w.updateConfirm(keyMsg)
	}
	return w, nil
}

func (w TargetWizard) updateTier(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, w.keys.Back) {
		w.result.Cancelled = true
		return w, tea.Quit
	}

	model, _ := w.tier.Update(msg)
	w.tier = model.(components.Selector)

	if w.tier.Cancelled() {
		w.result.Cancelled = true
		return w, tea.Quit
	}
	if w.tier.Submitted() {
		w.result.Tier = nil
		if v := w.tier.Value(); v != "" {
			tier, err := tierdocs.ParseTier(v)
			if err == nil {
				w.result.Tier = &tier
			}
		}
		w.step = targetStepMaintainers
	}
	return w, nil
}

func (w TargetWizard) updateMaintainers(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Back):
		w.tier = components.NewSelector("Which tier is "+w.pattern+"?", TierOptions()).WithShowHelp(false)
		w.step = targetStepTier
		return w, nil
	case key.Matches(msg, w.keys.Select):
		if err := w.maintainers.Validate(); err != nil {
			return w, nil
		}
		w.result.Maintainers = SplitMaintainers(w.maintainers.Value())
		w.step = targetStepConfirm
		return w, nil
	}

	var cmd tea.Cmd
	w.maintainers, cmd = w.maintainers.Update(msg)
	return w, cmd
}

func (w TargetWizard) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Select):
		return w, tea.Quit
	case key.Matches(msg, w.keys.Back):
		w.step = targetStepMaintainers
	}
	return w, nil
}

// View implements tea.Model.
func (w TargetWizard) View() string {
	var b strings.Builder

	b.WriteString(w.styles.Title.Render("tierdocs new - " + w.pattern))
	b.WriteString("\n")

	switch w.step {
	case targetStepTier:
		b.WriteString(w.tier.View())
		b.WriteString(w.styles.Help.Render("\n↑/↓ navigate • enter select • esc cancel"))
	case targetStepMaintainers:
		b.WriteString(w.maintainers.View())
		b.WriteString(w.styles.Help.Render("\nenter continue • esc back"))
	case targetStepConfirm:
		b.WriteString(w.styles.Success.Render(tui.SymbolCheck + " Ready to create the document"))
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "Tier:        %s\n", tierdocs.TierLabel(w.result.Tier))
		if len(w.result.Maintainers) == 0 {
			b.WriteString("Maintainers: none\n")
		} else {
			fmt.Fprintf(&b, "Maintainers: %s\n", strings.Join(w.result.Maintainers, ", "))
		}
		b.WriteString(w.styles.Help.Render("\nenter create • esc back • ctrl+c cancel"))
	}

	return b.String()
}

// Result returns the wizard result.
func (w TargetWizard) Result() TargetResult {
	return w.result
}

// RunTargetWizard runs the wizard on the terminal.
func RunTargetWizard(pattern string) (TargetResult, error) {
	p := tea.NewProgram(NewTargetWizard(pattern))

	model, err := p.Run()
	if err != nil {
		return TargetResult{Cancelled: true}, err
	}
	return model.(TargetWizard).Result(), nil
}
