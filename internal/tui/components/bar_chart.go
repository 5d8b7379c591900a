package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/itrgo/internal/tui/tuistyles"
)

// BarRow is one labelled pair of bars, new regime above old regime
type BarRow struct {
	Label string
	New   decimal.Decimal
	Old   decimal.Decimal
}

// BarChart renders horizontal bars scaled to the largest value
type BarChart struct {
	Title string
	Rows  []BarRow
	Width int
}

// NewBarChart creates a new bar chart
func NewBarChart(title string) *BarChart {
	return &BarChart{Title: title, Width: 40}
}

// AddRow appends a row
func (c *BarChart) AddRow(label string, newTax, oldTax decimal.Decimal) *BarChart {
	c.Rows = append(c.Rows, BarRow{Label: label, New: newTax, Old: oldTax})
	return c
}

// WithWidth sets the maximum bar width
func (c *BarChart) WithWidth(width int) *BarChart {
	c.Width = width
	return c
}

// Render returns the chart
func (c *BarChart) Render() string {
	if len(c.Rows) == 0 {
		return tuistyles.InfoStyle.Render("No data")
	}

	maxVal := decimal.Zero
	labelWidth := 0
	for _, r := range c.Rows {
		maxVal = decimal.Max(maxVal, r.New, r.Old)
		labelWidth = max(labelWidth, lipgloss.Width(r.Label))
	}

	newStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorNewRegime)
	oldStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorOldRegime)
	labelStyle := lipgloss.NewStyle().Width(labelWidth).Foreground(tuistyles.ColorForeground)
	pad := strings.Repeat(" ", labelWidth)

	var b strings.Builder
	if c.Title != "" {
		b.WriteString(tuistyles.TableHeaderStyle.Render(c.Title))
		b.WriteString("\n\n")
	}
	for i, r := range c.Rows {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s N %s %s\n", labelStyle.Render(r.Label),
			newStyle.Render(strings.Repeat("█", c.barLength(r.New, maxVal))),
			tuistyles.FormatCurrency(r.New))
		fmt.Fprintf(&b, "%s O %s %s\n", pad,
			oldStyle.Render(strings.Repeat("█", c.barLength(r.Old, maxVal))),
			tuistyles.FormatCurrency(r.Old))
	}
	b.WriteString("\n")
	b.WriteString(newStyle.Render("█") + " New Regime  " + oldStyle.Render("█") + " Old Regime")
	return b.String()
}

func (c *BarChart) barLength(v, maxVal decimal.Decimal) int {
	if maxVal.IsZero() || !v.IsPositive() {
		return 0
	}
	n := int(v.Div(maxVal).Mul(decimal.NewFromInt(int64(c.Width))).Round(0).IntPart())
	if n == 0 {
		n = 1
	}
	return n
}
