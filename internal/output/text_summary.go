package output

import (
	"bytes"
	"fmt"

	"github.com/rgehrsitz/itrgo/internal/domain"
)

// TextSummaryFormatter renders the plain-text summaries offered for
// download, one block per regime.
type TextSummaryFormatter struct{}

func (t TextSummaryFormatter) Name() string { return "text" }

func (t TextSummaryFormatter) Format(analysis *domain.RegimeAnalysis) ([]byte, error) {
	var buf bytes.Buffer
	for i, regime := range domain.Regimes {
		if i > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(SummaryText(analysis.Summary(regime), regime == analysis.Comparison.Best))
	}
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

// SummaryFileName is the download name for a regime's summary
func SummaryFileName(regime domain.Regime) string {
	return fmt.Sprintf("Tax_Summary_%s_Regime.txt", regime)
}

// SummaryText renders one regime's summary
func SummaryText(s domain.TaxSummary, isBest bool) string {
	var buf bytes.Buffer
	rule := "--------------------------------------"

	regimeName := s.Regime.Title()
	if isBest {
		regimeName += " (Best Option)"
	}

	fmt.Fprintln(&buf, "TAX CALCULATION SUMMARY (FY 2024-25)")
	fmt.Fprintln(&buf, rule)
	fmt.Fprintf(&buf, "Tax Regime: %s\n", regimeName)
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "INCOME")
	fmt.Fprintf(&buf, "+ Gross Total Income:   ₹ %s\n", domain.GroupIndian(s.GrossTotalIncome))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "DEDUCTIONS")
	fmt.Fprintf(&buf, "- Total Deductions:     ₹ %s\n", domain.GroupIndian(s.TotalDeductions))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "TAXABLE INCOME")
	fmt.Fprintf(&buf, "= Net Taxable Income:   ₹ %s\n", domain.GroupIndian(s.TaxableIncome))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "CALCULATION")
	fmt.Fprintf(&buf, "  Income Tax:           ₹ %s\n", domain.GroupIndian(s.TaxBeforeCess))
	fmt.Fprintf(&buf, "+ Health & Edu Cess (4%%): ₹ %s\n", domain.GroupIndian(s.Cess))
	fmt.Fprintln(&buf, rule)
	fmt.Fprintf(&buf, "= TOTAL TAX PAYABLE:    ₹ %s\n", domain.GroupIndian(s.TotalTaxPayable))
	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf)
	fmt.Fprint(&buf, "Disclaimer: This is an estimate. Please consult a professional.")

	return buf.String()
}
