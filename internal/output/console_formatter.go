package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter prints both regimes side by side.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(analysis *domain.RegimeAnalysis) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "INCOME TAX SUMMARY (FY 2024-25)")
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintf(&buf, "%-26s %16s %16s\n", "", domain.RegimeNew.Title(), domain.RegimeOld.Title())
	fmt.Fprintln(&buf, strings.Repeat("-", 60))

	row := func(label string, pick func(domain.TaxSummary) decimal.Decimal) {
		fmt.Fprintf(&buf, "%-26s %16s %16s\n", label,
			FormatCurrency(pick(analysis.NewRegime)),
			FormatCurrency(pick(analysis.OldRegime)))
	}
	row("Gross Total Income", func(s domain.TaxSummary) decimal.Decimal { return s.GrossTotalIncome })
	row("Total Deductions", func(s domain.TaxSummary) decimal.Decimal { return s.TotalDeductions })
	row("Net Taxable Income", func(s domain.TaxSummary) decimal.Decimal { return s.TaxableIncome })
	row("Income Tax", func(s domain.TaxSummary) decimal.Decimal { return s.TaxBeforeCess })
	row("Health & Edu Cess (4%)", func(s domain.TaxSummary) decimal.Decimal { return s.Cess })
	fmt.Fprintln(&buf, strings.Repeat("-", 60))
	row("Total Tax Payable", func(s domain.TaxSummary) decimal.Decimal { return s.TotalTaxPayable })
	fmt.Fprintln(&buf, strings.Repeat("=", 60))

	writeVerdict(&buf, analysis)
	return buf.Bytes(), nil
}

func writeVerdict(buf *bytes.Buffer, analysis *domain.RegimeAnalysis) {
	best := analysis.Comparison.Best
	if analysis.Comparison.Savings.IsZero() {
		fmt.Fprintf(buf, "Best Option: %s (both regimes cost the same)\n", best.Title())
	} else {
		fmt.Fprintf(buf, "Best Option: %s (saves %s)\n", best.Title(), FormatCurrency(analysis.Comparison.Savings))
	}
	if analysis.Best().IsRebated() {
		fmt.Fprintln(buf, "Congrats! Your total tax is zero due to the tax rebate.")
	}
}
