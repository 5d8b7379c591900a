package scenes

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/tui/components"
	"github.com/rgehrsitz/itrgo/internal/tui/tuistyles"
)

// ResultsModel shows both regimes side by side
type ResultsModel struct {
	analysis *domain.RegimeAnalysis
	width    int
	height   int
}

// NewResultsModel creates a new results scene model
func NewResultsModel() *ResultsModel {
	return &ResultsModel{}
}

// SetResults updates the analysis to display
func (m *ResultsModel) SetResults(analysis *domain.RegimeAnalysis) {
	m.analysis = analysis
}

// Analysis returns the displayed analysis, if any
func (m *ResultsModel) Analysis() *domain.RegimeAnalysis {
	return m.analysis
}

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the results scene
func (m *ResultsModel) Update(tea.Msg) (*ResultsModel, tea.Cmd) {
	return m, nil
}

// View renders the results scene
func (m *ResultsModel) View() string {
	if m.analysis == nil {
		return tuistyles.BorderStyle.Render("No results to display.\n\nAnswer the interview first.\n\nPress ESC to go back.")
	}

	a := m.analysis
	title := tuistyles.TitleStyle.Render("Tax Calculation Summary")

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		components.RegimeCard(a.NewRegime, a.Comparison.Best == domain.RegimeNew, 36),
		components.RegimeCard(a.OldRegime, a.Comparison.Best == domain.RegimeOld, 36),
	)

	best := a.Best()
	verdict := components.NewMetricCard("Recommended", best.Regime.Title()).
		WithWidth(36).
		WithDescription(fmt.Sprintf("effective rate %s%%", best.EffectiveRate().StringFixed(2)))
	if a.Comparison.Savings.IsPositive() {
		verdict.WithTrend(true, tuistyles.FormatCurrency(a.Comparison.Savings)+" saved")
	} else {
		verdict.WithDescription("both regimes cost the same")
	}

	sections := []string{title, "", cards, "", verdict.Render()}
	for _, s := range []domain.TaxSummary{a.NewRegime, a.OldRegime} {
		if s.IsRebated() && s.TaxableIncome.IsPositive() {
			sections = append(sections, tuistyles.InfoStyle.Render(
				fmt.Sprintf("%s: Section 87A rebate applies, no tax payable.", s.Regime.Title())))
		}
	}
	sections = append(sections, "",
		tuistyles.HelpDescStyle.Render("c what-if comparison • a AI suggestions • n new interview • esc back"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
