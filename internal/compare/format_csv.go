package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Old Regime Tax",
		"New Regime Tax",
		"Best Regime",
		"Best Tax",
		"Savings",
		"Effective Rate %",
		"Tax Diff from Base",
		"Tax % Change",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.OldRegimeTax.StringFixed(0),
		result.NewRegimeTax.StringFixed(0),
		string(result.BestRegime),
		result.BestTax.StringFixed(0),
		result.Savings.StringFixed(0),
		result.EffectiveRate.StringFixed(2),
		result.TaxDiffFromBase.StringFixed(0),
		result.TaxPctFromBase.StringFixed(2),
	}
}
