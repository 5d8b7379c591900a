package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/itrgo/internal/domain"
)

// TableFormatter formats break-even results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a single search
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("REGIME BREAK-EVEN ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Deduction raised:    %s\n", result.Request.Field))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Reachable)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("DECLARED FIGURES\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	tf.writeTaxes(&sb, result.Base)
	sb.WriteString("\n")

	if result.Reachable {
		sb.WriteString("BREAK-EVEN POINT\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		sb.WriteString(fmt.Sprintf("Additional %-10s %s\n", result.Request.Field+":", domain.FormatRupees(result.ExtraDeduction)))
		sb.WriteString(fmt.Sprintf("%-21s %s\n", result.Request.Field+" total:", domain.FormatRupees(result.TargetAmount)))
		if result.AtPoint != nil && result.AtPoint != result.Base {
			tf.writeTaxes(&sb, result.AtPoint)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatSweep formats a salary sweep
func (tf *TableFormatter) FormatSweep(sweep *SweepResult) string {
	var sb strings.Builder

	sb.WriteString("REGIME BREAK-EVEN BY SALARY\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("%-14s %14s %14s %6s %18s\n",
		"Salary", "New Regime", "Old Regime", "Best", "Extra "+sweep.Field))
	sb.WriteString(strings.Repeat("-", 72) + "\n")

	for _, row := range sweep.Rows {
		extra := "n/a"
		if row.Reachable {
			extra = tf.formatShort(row.ExtraDeduction)
		}
		sb.WriteString(fmt.Sprintf("%-14s %14s %14s %6s %18s\n",
			tf.formatShort(row.GrossSalary),
			domain.FormatRupees(row.NewRegimeTax),
			domain.FormatRupees(row.OldRegimeTax),
			string(row.Best),
			extra))
	}
	sb.WriteString("\n")

	if len(sweep.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		for _, rec := range sweep.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for a single search
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	return jf.marshal(result)
}

// FormatSweep generates JSON output for a sweep
func (jf *JSONFormatter) FormatSweep(sweep *SweepResult) (string, error) {
	return jf.marshal(sweep)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) writeTaxes(sb *strings.Builder, a *domain.RegimeAnalysis) {
	sb.WriteString(fmt.Sprintf("New regime tax:      %s\n", domain.FormatRupees(a.NewRegime.TotalTaxPayable)))
	sb.WriteString(fmt.Sprintf("Old regime tax:      %s\n", domain.FormatRupees(a.OldRegime.TotalTaxPayable)))
	sb.WriteString(fmt.Sprintf("Cheaper regime:      %s\n", a.Comparison.Best.Title()))
}

func (tf *TableFormatter) formatStatus(reachable bool) string {
	if reachable {
		return "✓ Break-even found"
	}
	return "⚠ Not reachable"
}

// formatShort abbreviates to lakhs and crores
func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	crore := decimal.NewFromInt(10000000)
	lakh := decimal.NewFromInt(100000)
	if d.Abs().GreaterThanOrEqual(crore) {
		return "₹" + d.Div(crore).StringFixed(2) + " Cr"
	} else if d.Abs().GreaterThanOrEqual(lakh) {
		return "₹" + d.Div(lakh).StringFixed(2) + " L"
	}
	return domain.FormatRupees(d)
}
