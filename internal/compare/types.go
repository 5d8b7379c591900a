package compare

import (
	"fmt"

	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// rebateCliffWindow is how far above a rebate threshold taxable income may
// sit before the cliff warning is dropped.
var rebateCliffWindow = decimal.NewFromInt(10000)

// ComparisonResult represents a single scenario with both regime outcomes
type ComparisonResult struct {
	ScenarioName string                 `json:"scenarioName"`
	Description  string                 `json:"description"`
	Analysis     *domain.RegimeAnalysis `json:"analysis"`

	// Key Metrics
	OldRegimeTax  decimal.Decimal `json:"oldRegimeTax"`
	NewRegimeTax  decimal.Decimal `json:"newRegimeTax"`
	BestRegime    domain.Regime   `json:"bestRegime"`
	BestTax       decimal.Decimal `json:"bestTax"`
	Savings       decimal.Decimal `json:"savings"`
	EffectiveRate decimal.Decimal `json:"effectiveRate"` // percent of gross income

	// Comparison to Base
	TaxDiffFromBase decimal.Decimal `json:"taxDiffFromBase"`
	TaxPctFromBase  decimal.Decimal `json:"taxPctFromBase"`
}

// ComparisonSet represents the base facts and every what-if scenario
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`

	// Rules used for the headroom and cliff recommendations
	Rules calculation.RulesSet `json:"-"`
}

// MetricsCalculator extracts key metrics from regime analyses
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics for one scenario
func (mc *MetricsCalculator) CalculateMetrics(name string, analysis *domain.RegimeAnalysis) ComparisonResult {
	best := analysis.Best()
	return ComparisonResult{
		ScenarioName:  name,
		Analysis:      analysis,
		OldRegimeTax:  analysis.OldRegime.TotalTaxPayable,
		NewRegimeTax:  analysis.NewRegime.TotalTaxPayable,
		BestRegime:    analysis.Comparison.Best,
		BestTax:       best.TotalTaxPayable,
		Savings:       analysis.Comparison.Savings,
		EffectiveRate: best.EffectiveRate().Round(2),
	}
}

// CalculateComparison computes the change in best-regime tax against a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.TaxDiffFromBase = scenario.BestTax.Sub(base.BestTax)

	if !base.BestTax.IsZero() {
		scenario.TaxPctFromBase = scenario.TaxDiffFromBase.
			Div(base.BestTax).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	base := compSet.BaseResult
	if base == nil || base.Analysis == nil {
		return recommendations
	}
	analysis := base.Analysis
	oldRules := compSet.Rules.Old
	newRules := compSet.Rules.New

	// Best regime
	if base.Savings.IsZero() {
		recommendations = append(recommendations,
			"Both regimes cost "+domain.FormatRupees(base.BestTax)+"; the New Regime is the default and needs no declarations")
	} else {
		other := domain.RegimeOld
		if base.BestRegime == domain.RegimeOld {
			other = domain.RegimeNew
		}
		recommendations = append(recommendations,
			fmt.Sprintf("Best Regime: the %s saves %s compared to the %s",
				base.BestRegime.Title(), domain.FormatRupees(base.Savings), other.Title()))
	}

	// Section 80C
	claimed := analysis.Facts.Deduction80C
	switch {
	case claimed.GreaterThan(oldRules.Section80CCap):
		recommendations = append(recommendations,
			fmt.Sprintf("Section 80C: %s of the declared %s exceeds the %s limit and is ignored",
				domain.FormatRupees(claimed.Sub(oldRules.Section80CCap)),
				domain.FormatRupees(claimed),
				domain.FormatRupees(oldRules.Section80CCap)))
	case claimed.LessThan(oldRules.Section80CCap) && !analysis.OldRegime.IsRebated():
		recommendations = append(recommendations,
			fmt.Sprintf("Section 80C: %s of unused headroom would lower Old Regime taxable income",
				domain.FormatRupees(oldRules.Section80CCap.Sub(claimed))))
	}

	// Rebate cliff
	for _, regime := range domain.Regimes {
		threshold := newRules.RebateThreshold
		if regime == domain.RegimeOld {
			threshold = oldRules.RebateThreshold
		}
		summary := analysis.Summary(regime)
		over := summary.TaxableIncome.Sub(threshold)
		if over.IsPositive() && over.LessThanOrEqual(rebateCliffWindow) {
			recommendations = append(recommendations,
				fmt.Sprintf("Rebate Cliff: %s taxable income is %s above the Section 87A limit of %s; reducing it by that much cuts tax from %s to zero",
					regime.Title(), domain.FormatRupees(over), domain.FormatRupees(threshold),
					domain.FormatRupees(summary.TotalTaxPayable)))
		}
	}

	// Lowest tax among what-if scenarios
	var lowest *ComparisonResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.BestTax.LessThan(base.BestTax) && (lowest == nil || alt.BestTax.LessThan(lowest.BestTax)) {
			lowest = alt
		}
	}
	if lowest != nil {
		recommendations = append(recommendations,
			"Lowest Tax: "+lowest.ScenarioName+" saves "+
				domain.FormatRupees(base.BestTax.Sub(lowest.BestTax))+" under the "+lowest.BestRegime.Title())
	}

	return recommendations
}
