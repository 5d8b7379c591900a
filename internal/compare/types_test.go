package compare

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

func analyze(t *testing.T, facts domain.FinancialFacts) *domain.RegimeAnalysis {
	t.Helper()
	analysis, err := calculation.NewCalculationEngine().Analyze(facts)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	return analysis
}

func baseSet(t *testing.T, facts domain.FinancialFacts) *ComparisonSet {
	t.Helper()
	result := NewMetricsCalculator().CalculateMetrics("declared", analyze(t, facts))
	return &ComparisonSet{
		BaseScenarioName: "declared",
		BaseResult:       &result,
		Rules:            calculation.DefaultRulesSet(),
	}
}

func TestMetricsCalculator_CalculateMetrics(t *testing.T) {
	calc := NewMetricsCalculator()

	result := calc.CalculateMetrics("Test Scenario", analyze(t, domain.FinancialFacts{GrossSalary: decimal.NewFromInt(1500000)}))

	if result.ScenarioName != "Test Scenario" {
		t.Errorf("Expected scenario name 'Test Scenario', got %s", result.ScenarioName)
	}
	if !result.NewRegimeTax.Equal(decimal.NewFromInt(145600)) {
		t.Errorf("Expected new regime tax 145600, got %s", result.NewRegimeTax)
	}
	if result.BestRegime != domain.RegimeNew {
		t.Errorf("Expected new regime to win, got %s", result.BestRegime)
	}
	// 145600 / 1500000 = 9.7066..%
	if !result.EffectiveRate.Equal(decimal.RequireFromString("9.71")) {
		t.Errorf("Expected effective rate 9.71, got %s", result.EffectiveRate)
	}
}

func TestMetricsCalculator_CalculateComparison(t *testing.T) {
	calc := NewMetricsCalculator()

	base := ComparisonResult{ScenarioName: "Base", BestTax: decimal.NewFromInt(100000)}
	scenario := ComparisonResult{ScenarioName: "Alternative", BestTax: decimal.NewFromInt(80000)}

	result := calc.CalculateComparison(scenario, base)

	if !result.TaxDiffFromBase.Equal(decimal.NewFromInt(-20000)) {
		t.Errorf("Expected tax diff -20000, got %s", result.TaxDiffFromBase)
	}
	if !result.TaxPctFromBase.Equal(decimal.NewFromInt(-20)) {
		t.Errorf("Expected tax pct -20, got %s", result.TaxPctFromBase)
	}

	zeroBase := ComparisonResult{BestTax: decimal.Zero}
	result = calc.CalculateComparison(scenario, zeroBase)
	if !result.TaxPctFromBase.IsZero() {
		t.Errorf("Expected zero pct against a zero base, got %s", result.TaxPctFromBase)
	}
}

func TestGenerateRecommendations_Tie(t *testing.T) {
	recs := GenerateRecommendations(baseSet(t, domain.FinancialFacts{GrossSalary: decimal.Zero}))

	if len(recs) != 1 {
		t.Fatalf("Expected 1 recommendation, got %v", recs)
	}
	if !strings.Contains(recs[0], "Both regimes cost ₹0") {
		t.Errorf("Unexpected tie recommendation: %s", recs[0])
	}
}

func TestGenerateRecommendations_Excess80C(t *testing.T) {
	recs := GenerateRecommendations(baseSet(t, domain.FinancialFacts{
		GrossSalary:  decimal.NewFromInt(1500000),
		Deduction80C: decimal.NewFromInt(200000),
	}))

	found := false
	for _, rec := range recs {
		if strings.Contains(rec, "₹50,000 of the declared ₹2,00,000 exceeds the ₹1,50,000 limit") {
			found = true
		}
		if strings.Contains(rec, "headroom") {
			t.Errorf("Did not expect a headroom recommendation: %s", rec)
		}
	}
	if !found {
		t.Errorf("Expected excess 80C recommendation, got %v", recs)
	}
}

func TestGenerateRecommendations_RebateCliff(t *testing.T) {
	// New regime taxable income 710,000: 10,000 over the 87A limit
	recs := GenerateRecommendations(baseSet(t, domain.FinancialFacts{GrossSalary: decimal.NewFromInt(760000)}))

	found := false
	for _, rec := range recs {
		if strings.HasPrefix(rec, "Rebate Cliff: New Regime") {
			found = true
			if !strings.Contains(rec, "₹10,000 above") || !strings.Contains(rec, "from ₹27,040 to zero") {
				t.Errorf("Unexpected cliff text: %s", rec)
			}
		}
		if strings.HasPrefix(rec, "Rebate Cliff: Old Regime") {
			t.Errorf("Old regime is not near its limit: %s", rec)
		}
	}
	if !found {
		t.Errorf("Expected rebate cliff recommendation, got %v", recs)
	}

	// 10,001 over is outside the window
	recs = GenerateRecommendations(baseSet(t, domain.FinancialFacts{GrossSalary: decimal.NewFromInt(760001)}))
	for _, rec := range recs {
		if strings.HasPrefix(rec, "Rebate Cliff") {
			t.Errorf("Did not expect cliff recommendation: %s", rec)
		}
	}
}

func TestGenerateRecommendations_NoBase(t *testing.T) {
	if recs := GenerateRecommendations(&ComparisonSet{}); len(recs) != 0 {
		t.Errorf("Expected no recommendations, got %v", recs)
	}
}
