package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleVerboseFormatter renders the detailed report: declared facts, the
// deduction breakdown and slab-by-slab tax for each regime.
type ConsoleVerboseFormatter struct {
	Calculator *calculation.TaxCalculator
}

func (c ConsoleVerboseFormatter) Name() string { return "verbose" }

func (c ConsoleVerboseFormatter) Format(analysis *domain.RegimeAnalysis) ([]byte, error) {
	calc := c.Calculator
	if calc == nil {
		calc = calculation.NewTaxCalculator()
	}
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintf(&buf, "DETAILED INCOME TAX ANALYSIS (AY %s)\n", calc.Rules.AssessmentYear)
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "DECLARED FIGURES")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	for _, field := range analysis.Facts.Fields() {
		fmt.Fprintf(&buf, "  %-18s %18s\n", field.Name, FormatCurrency(field.Value))
	}
	fmt.Fprintln(&buf)

	for _, regime := range domain.Regimes {
		summary := analysis.Summary(regime)
		rules := calc.Rules.For(regime)

		title := strings.ToUpper(regime.Title())
		if regime == analysis.Comparison.Best {
			title += " (Best Option)"
		}
		fmt.Fprintln(&buf, title)
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		fmt.Fprintf(&buf, "Gross Total Income:       %s\n", FormatCurrency(summary.GrossTotalIncome))
		fmt.Fprintln(&buf, "DEDUCTIONS:")
		for _, item := range calc.DeductionItems(analysis.Facts, regime) {
			if item.Allowed.IsZero() && item.Declared.IsZero() {
				continue
			}
			line := fmt.Sprintf("  %-22s %s", item.Label+":", FormatCurrency(item.Allowed))
			if !item.Allowed.Equal(item.Declared) {
				line += fmt.Sprintf(" (declared %s, capped)", FormatCurrency(item.Declared))
			}
			fmt.Fprintln(&buf, line)
		}
		fmt.Fprintf(&buf, "  %-22s %s\n", "Total:", FormatCurrency(summary.TotalDeductions))
		fmt.Fprintf(&buf, "Net Taxable Income:       %s\n", FormatCurrency(summary.TaxableIncome))
		fmt.Fprintln(&buf)

		lines := rules.Slabs.Breakdown(summary.TaxableIncome)
		if len(lines) > 0 {
			fmt.Fprintln(&buf, "SLAB BREAKDOWN:")
			for _, l := range lines {
				fmt.Fprintf(&buf, "  %-28s %5s of %-14s = %s\n",
					slabRange(l), FormatPercentage(l.Rate.Mul(decimal.NewFromInt(100)).Round(0)),
					FormatCurrency(l.Amount), FormatCurrency(l.Tax.Round(0)))
			}
		}
		if summary.TaxableIncome.LessThanOrEqual(rules.RebateThreshold) {
			fmt.Fprintf(&buf, "  Section 87A rebate: taxable income within %s, tax reduced to zero\n",
				FormatCurrency(rules.RebateThreshold))
		}
		fmt.Fprintf(&buf, "Income Tax:               %s\n", FormatCurrency(summary.TaxBeforeCess))
		fmt.Fprintf(&buf, "Health & Edu Cess:        %s\n", FormatCurrency(summary.Cess))
		fmt.Fprintf(&buf, "TOTAL TAX PAYABLE:        %s\n", FormatCurrency(summary.TotalTaxPayable))
		fmt.Fprintf(&buf, "Effective Rate:           %s\n", FormatPercentage(summary.EffectiveRate()))
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, strings.Repeat("=", 50))
	writeVerdict(&buf, analysis)
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "Disclaimer: This is an estimate. Please consult a professional.")

	return buf.Bytes(), nil
}

func slabRange(l calculation.SlabLine) string {
	if l.Open {
		return "Above " + FormatCurrency(l.From)
	}
	return FormatCurrency(l.From) + " - " + FormatCurrency(l.To)
}
