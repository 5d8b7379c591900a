package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/itrgo/internal/compare"
	"github.com/rgehrsitz/itrgo/internal/transform"
	"github.com/rgehrsitz/itrgo/internal/tui/components"
	"github.com/rgehrsitz/itrgo/internal/tui/tuimsg"
	"github.com/rgehrsitz/itrgo/internal/tui/tuistyles"
)

// CompareModel selects what-if templates and shows the comparison
type CompareModel struct {
	templates *transform.TemplateRegistry
	names     []string
	selected  map[string]bool
	cursor    int
	results   *compare.ComparisonSet
	width     int
	height    int
}

// NewCompareModel creates a compare scene over the given templates
func NewCompareModel(templates *transform.TemplateRegistry) *CompareModel {
	return &CompareModel{
		templates: templates,
		names:     templates.List(),
		selected:  make(map[string]bool),
	}
}

// SetSize updates the scene dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetResults stores a finished comparison
func (m *CompareModel) SetResults(set *compare.ComparisonSet) {
	m.results = set
}

// Selected returns the chosen template names in list order
func (m *CompareModel) Selected() []string {
	var out []string
	for _, name := range m.names {
		if m.selected[name] {
			out = append(out, name)
		}
	}
	return out
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
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
		if m.cursor < len(m.names)-1 {
			m.cursor++
		}
	case " ", "x":
		if len(m.names) > 0 {
			name := m.names[m.cursor]
			m.selected[name] = !m.selected[name]
		}
	case "enter":
		templates := m.Selected()
		if len(templates) == 0 && len(m.names) > 0 {
			templates = []string{m.names[m.cursor]}
		}
		return m, func() tea.Msg { return tuimsg.ComparisonRequestedMsg{Templates: templates} }
	}
	return m, nil
}

// View renders the template list and the latest comparison
func (m *CompareModel) View() string {
	list := m.renderTemplateList()
	if m.results == nil {
		return list
	}
	return lipgloss.JoinVertical(lipgloss.Left, list, "", m.renderResults())
}

func (m *CompareModel) renderTemplateList() string {
	var content strings.Builder
	content.WriteString(tuistyles.TitleStyle.Render("What-if scenarios"))
	content.WriteString("\n\n")

	for i, name := range m.names {
		tmpl, _ := m.templates.Get(name)
		check := "[ ]"
		if m.selected[name] {
			check = "[x]"
		}
		prefix := "  "
		style := tuistyles.UnselectedItemStyle
		if i == m.cursor {
			prefix = "▸ "
			style = tuistyles.SelectedItemStyle
		}
		content.WriteString(style.Render(fmt.Sprintf("%s%s %-22s", prefix, check, name)))
		content.WriteString(tuistyles.HelpDescStyle.Render(tmpl.Description))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(tuistyles.HelpDescStyle.Render("↑/↓ move • space toggle • enter compare • esc back"))
	return tuistyles.BorderStyle.Render(content.String())
}

func (m *CompareModel) renderResults() string {
	set := m.results
	chart := components.NewBarChart("Total tax by scenario").WithWidth(30)
	chart.AddRow(set.BaseResult.ScenarioName, set.BaseResult.NewRegimeTax, set.BaseResult.OldRegimeTax)
	for _, alt := range set.AlternativeResults {
		chart.AddRow(alt.ScenarioName, alt.NewRegimeTax, alt.OldRegimeTax)
	}

	var recs strings.Builder
	recs.WriteString(tuistyles.TableHeaderStyle.Render("Recommendations"))
	recs.WriteString("\n")
	for _, r := range set.Recommendations {
		recs.WriteString("• " + r + "\n")
	}

	return lipgloss.JoinVertical(lipgloss.Left, chart.Render(), "", strings.TrimRight(recs.String(), "\n"))
}
