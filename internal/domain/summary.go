package domain

import (
	"github.com/shopspring/decimal"
)

// TaxSummary is the result of applying one regime to a set of facts.
// Values are produced by the calculation package and never modified.
type TaxSummary struct {
	GrossTotalIncome decimal.Decimal `json:"grossTotalIncome"`
	TotalDeductions  decimal.Decimal `json:"totalDeductions"`
	TaxableIncome    decimal.Decimal `json:"taxableIncome"`
	TaxBeforeCess    decimal.Decimal `json:"taxBeforeCess"`
	Cess             decimal.Decimal `json:"cess"`
	TotalTaxPayable  decimal.Decimal `json:"totalTaxPayable"`
	Regime           Regime          `json:"regime"`
}

// IsRebated reports whether no tax is payable at all
func (s TaxSummary) IsRebated() bool {
	return s.TotalTaxPayable.IsZero()
}

// EffectiveRate returns total tax payable as a percentage of gross income.
func (s TaxSummary) EffectiveRate() decimal.Decimal {
	if s.GrossTotalIncome.IsZero() {
		return decimal.Zero
	}
	return s.TotalTaxPayable.Div(s.GrossTotalIncome).Mul(decimal.NewFromInt(100))
}

// RegimeComparison picks the cheaper regime. Savings is never negative.
type RegimeComparison struct {
	Best    Regime          `json:"best"`
	Savings decimal.Decimal `json:"savings"`
}

// RegimeAnalysis bundles both regime summaries for the same facts
type RegimeAnalysis struct {
	Facts      FinancialFacts   `json:"facts"`
	NewRegime  TaxSummary       `json:"newRegime"`
	OldRegime  TaxSummary       `json:"oldRegime"`
	Comparison RegimeComparison `json:"comparison"`
}

// Summary returns the summary for the given regime.
func (a RegimeAnalysis) Summary(r Regime) TaxSummary {
	if r == RegimeOld {
		return a.OldRegime
	}
	return a.NewRegime
}

// Best returns the summary of the cheaper regime
func (a RegimeAnalysis) Best() TaxSummary {
	return a.Summary(a.Comparison.Best)
}
