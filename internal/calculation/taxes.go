package calculation

import (
	"fmt"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Slabs, standard deduction (50,000), 80C cap (1,50,000) and cess (4%)
//    are the FY 2024-25 figures for both regimes.
//
// 2. Section 87A is modelled as a cliff: at or below the rebate threshold
//    (5,00,000 old / 7,00,000 new) the slab tax is replaced by zero. There is
//    no marginal relief just above the threshold.
//
// 3. 80D and HRA exemption are taken as declared; only 80C is capped.
//
// 4. Rounding uses decimal.Round(0) (half away from zero). Tax and cess are
//    rounded separately and then summed.

// TaxCalculator applies a pair of regime rules to financial facts. It holds
// no mutable state and is safe for concurrent use.
type TaxCalculator struct {
	Rules RulesSet
}

// NewTaxCalculator creates a calculator with the built-in FY 2024-25 rules
func NewTaxCalculator() *TaxCalculator {
	return &TaxCalculator{Rules: DefaultRulesSet()}
}

// NewTaxCalculatorWithRules creates a calculator with custom rules
func NewTaxCalculatorWithRules(rules RulesSet) (*TaxCalculator, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	return &TaxCalculator{Rules: rules}, nil
}

var defaultCalculator = NewTaxCalculator()

// ComputeTaxSummary applies the built-in rules for regime to facts.
func ComputeTaxSummary(facts domain.FinancialFacts, regime domain.Regime) (domain.TaxSummary, error) {
	return defaultCalculator.Compute(facts, regime)
}

// CompareRegimes picks the regime with the lower total payable. Ties go to
// the new regime.
func CompareRegimes(oldSummary, newSummary domain.TaxSummary) domain.RegimeComparison {
	best := domain.RegimeOld
	if newSummary.TotalTaxPayable.LessThanOrEqual(oldSummary.TotalTaxPayable) {
		best = domain.RegimeNew
	}
	return domain.RegimeComparison{
		Best:    best,
		Savings: newSummary.TotalTaxPayable.Sub(oldSummary.TotalTaxPayable).Abs(),
	}
}

// Compute produces the tax summary of facts under regime
func (tc *TaxCalculator) Compute(facts domain.FinancialFacts, regime domain.Regime) (domain.TaxSummary, error) {
	if !regime.Valid() {
		return domain.TaxSummary{}, fmt.Errorf("%w: unknown regime %q", domain.ErrInvalidInput, regime)
	}
	if err := facts.Validate(); err != nil {
		return domain.TaxSummary{}, err
	}
	rules := tc.Rules.For(regime)

	grossTotalIncome := facts.GrossSalary.Add(facts.OtherIncome)
	totalDeductions := tc.Deductions(facts, regime)

	taxableIncome := grossTotalIncome.Sub(totalDeductions)
	if taxableIncome.IsNegative() {
		taxableIncome = decimal.Zero
	}

	tax := rules.Slabs.Apply(taxableIncome)

	// Section 87A rebate
	if taxableIncome.LessThanOrEqual(rules.RebateThreshold) {
		tax = decimal.Zero
	}

	taxBeforeCess := tax.Round(0)
	cess := taxBeforeCess.Mul(rules.CessRate).Round(0)

	return domain.TaxSummary{
		GrossTotalIncome: grossTotalIncome,
		TotalDeductions:  totalDeductions,
		TaxableIncome:    taxableIncome,
		TaxBeforeCess:    taxBeforeCess,
		Cess:             cess,
		TotalTaxPayable:  taxBeforeCess.Add(cess).Round(0),
		Regime:           regime,
	}, nil
}

// DeductionItem is one line of a regime's deduction breakdown. Allowed
// differs from Declared only where a cap applies.
type DeductionItem struct {
	Label    string          `json:"label"`
	Declared decimal.Decimal `json:"declared"`
	Allowed  decimal.Decimal `json:"allowed"`
}

// DeductionItems lists the deductions regime allows, in report order.
// Old: standard, 80C (capped), 80D, HRA. New: standard, professional tax.
func (tc *TaxCalculator) DeductionItems(facts domain.FinancialFacts, regime domain.Regime) []DeductionItem {
	rules := tc.Rules.For(regime)
	items := []DeductionItem{
		{Label: "Standard Deduction", Declared: rules.StandardDeduction, Allowed: rules.StandardDeduction},
	}
	if regime == domain.RegimeOld {
		return append(items,
			DeductionItem{Label: "Section 80C", Declared: facts.Deduction80C, Allowed: decimal.Min(facts.Deduction80C, rules.Section80CCap)},
			DeductionItem{Label: "Section 80D", Declared: facts.Deduction80D, Allowed: facts.Deduction80D},
			DeductionItem{Label: "HRA Exemption", Declared: facts.HRAExemption, Allowed: facts.HRAExemption},
		)
	}
	return append(items,
		DeductionItem{Label: "Professional Tax", Declared: facts.ProfessionalTax, Allowed: facts.ProfessionalTax},
	)
}

// Deductions returns the total deductions allowed under regime.
func (tc *TaxCalculator) Deductions(facts domain.FinancialFacts, regime domain.Regime) decimal.Decimal {
	total := decimal.Zero
	for _, item := range tc.DeductionItems(facts, regime) {
		total = total.Add(item.Allowed)
	}
	return total
}
