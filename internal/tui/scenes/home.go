package scenes

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/tui/tuimsg"
	"github.com/rgehrsitz/itrgo/internal/tui/tuistyles"
)

// HomeModel lets the user pick the regime to answer questions for
type HomeModel struct {
	cursor int
	width  int
	height int
}

// NewHomeModel creates a new home scene model
func NewHomeModel() *HomeModel {
	return &HomeModel{}
}

// SetSize updates the model dimensions
func (m *HomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Selected returns the highlighted regime
func (m *HomeModel) Selected() domain.Regime {
	return domain.Regimes[m.cursor]
}

// Update handles messages for the home scene
func (m *HomeModel) Update(msg tea.Msg) (*HomeModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(domain.Regimes)-1 {
			m.cursor++
		}
	case "enter", " ":
		regime := m.Selected()
		return m, func() tea.Msg { return tuimsg.RegimeChosenMsg{Regime: regime} }
	}
	return m, nil
}

// View renders the regime chooser
func (m *HomeModel) View() string {
	var content strings.Builder

	content.WriteString(tuistyles.TitleStyle.Render("Income Tax Calculator (FY 2024-25)"))
	content.WriteString("\n\n")
	content.WriteString("Answer a few questions and both regimes will be\n")
	content.WriteString("computed side by side. Which regime should we ask about?\n\n")

	descriptions := map[domain.Regime]string{
		domain.RegimeNew: "lower slab rates, standard deduction and professional tax only",
		domain.RegimeOld: "higher slab rates, 80C / 80D / HRA deductions",
	}
	for i, r := range domain.Regimes {
		prefix := "  "
		style := tuistyles.UnselectedItemStyle
		if i == m.cursor {
			prefix = "▸ "
			style = tuistyles.SelectedItemStyle
		}
		content.WriteString(style.Render(prefix + r.Title()))
		content.WriteString(" ")
		content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(descriptions[r]))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(tuistyles.HelpDescStyle.Render("↑/↓ choose • enter start"))

	return tuistyles.BorderStyle.Render(content.String())
}
