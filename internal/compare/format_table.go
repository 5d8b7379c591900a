package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("INCOME TAX REGIME COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Facts File: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 24
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Old Regime",
		numWidth, "New Regime",
		numWidth, "Best",
		numWidth, "Savings"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	base := compSet.BaseResult
	sb.WriteString(tf.formatRow(base, nameWidth, numWidth, true))

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s: %s\n", alt.ScenarioName, alt.Description))

			if alt.TaxDiffFromBase.IsZero() {
				sb.WriteString("  Tax Impact:       no change\n")
				continue
			}
			sb.WriteString(fmt.Sprintf("  Tax Impact:       %s%s (%s%%)\n",
				tf.deltaSymbol(alt.TaxDiffFromBase),
				tf.formatDecimal(alt.TaxDiffFromBase.Abs()),
				alt.TaxPctFromBase.StringFixed(1)))
			if alt.BestRegime != base.BestRegime {
				sb.WriteString(fmt.Sprintf("  Best Regime:      %s (was %s)\n",
					alt.BestRegime.Title(), base.BestRegime.Title()))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, tf.formatDecimal(result.OldRegimeTax),
		numWidth, tf.formatDecimal(result.NewRegimeTax),
		numWidth, string(result.BestRegime),
		numWidth, tf.formatDecimal(result.Savings))
}

// formatDecimal formats an amount with Indian grouping. The rupee sign is
// left out so columns stay aligned.
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	return domain.GroupIndian(d.Round(0))
}

// deltaSymbol returns a sign for tax deltas; higher tax is "+"
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s %s (%s)", compSet.BaseScenarioName,
		tf.formatDecimal(compSet.BaseResult.BestTax), compSet.BaseResult.BestRegime))

	for _, alt := range compSet.AlternativeResults {
		sb.WriteString(" | ")
		taxChange := "="
		if !alt.TaxDiffFromBase.IsZero() {
			taxChange = tf.deltaSymbol(alt.TaxDiffFromBase) + tf.formatDecimal(alt.TaxDiffFromBase.Abs())
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, taxChange))
	}

	return sb.String()
}
