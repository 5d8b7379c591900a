package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/tui/tuistyles"
)

// MetricCard displays a single metric with label, value, and optional trend
type MetricCard struct {
	Label       string
	Value       string
	Trend       *Trend
	Description string
	Width       int
}

// Trend represents a metric's change direction and amount
type Trend struct {
	IsPositive bool
	Change     string // e.g. "₹62,400 saved"
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 30,
	}
}

// WithTrend adds a trend indicator to the metric card
func (m *MetricCard) WithTrend(isPositive bool, change string) *MetricCard {
	m.Trend = &Trend{
		IsPositive: isPositive,
		Change:     change,
	}
	return m
}

// WithDescription adds a description/subtitle
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the styled metric card
func (m *MetricCard) Render() string {
	label := tuistyles.MetricLabelStyle.Render(m.Label)
	value := tuistyles.MetricValueStyle.Render(m.Value)

	var trend string
	if m.Trend != nil {
		arrow := tuistyles.TrendIndicator(m.Trend.IsPositive)
		trendStyle := tuistyles.MetricTrendStyle(m.Trend.IsPositive)
		trend = "\n" + trendStyle.Render(fmt.Sprintf("%s %s", arrow, m.Trend.Change))
	}

	var desc string
	if m.Description != "" {
		desc = "\n" + tuistyles.SubtitleStyle.Render(m.Description)
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width)

	return cardStyle.Render(label + "\n" + value + trend + desc)
}

// MetricGrid renders multiple metric cards in a grid layout
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}

	var rows, currentRow []string
	for i, card := range cards {
		currentRow = append(currentRow, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, currentRow...))
			currentRow = nil
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// RegimeCard renders one regime's summary as a bordered column. The best
// regime gets a highlighted border.
func RegimeCard(s domain.TaxSummary, best bool, width int) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.RegimeColor(s.Regime)).
		Render(s.Regime.Title())
	if best {
		title += " " + tuistyles.TableHighlightStyle.Render("✓ best")
	}

	rows := [][2]string{
		{"Gross Income", tuistyles.FormatCurrency(s.GrossTotalIncome)},
		{"Deductions", tuistyles.FormatCurrency(s.TotalDeductions)},
		{"Taxable Income", tuistyles.FormatCurrency(s.TaxableIncome)},
		{"Tax", tuistyles.FormatCurrency(s.TaxBeforeCess)},
		{"Cess (4%)", tuistyles.FormatCurrency(s.Cess)},
	}

	content := title + "\n\n"
	for _, r := range rows {
		content += fmt.Sprintf("%s %s\n",
			tuistyles.MetricLabelStyle.Width(16).Render(r[0]),
			tuistyles.TableCellStyle.Render(r[1]))
	}
	content += "\n" + fmt.Sprintf("%s %s",
		tuistyles.MetricLabelStyle.Width(16).Render("Total Payable"),
		tuistyles.MetricValueStyle.Render(tuistyles.FormatCurrency(s.TotalTaxPayable)))

	border := tuistyles.ColorBorder
	if best {
		border = tuistyles.ColorSuccess
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(width).
		Render(content)
}
