package compare

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

func testComparisonSet() *ComparisonSet {
	return &ComparisonSet{
		BaseScenarioName: "declared",
		ConfigPath:       "/path/to/facts.yaml",
		BaseResult: &ComparisonResult{
			ScenarioName: "declared",
			OldRegimeTax: decimal.NewFromInt(148200),
			NewRegimeTax: decimal.NewFromInt(85800),
			BestRegime:   domain.RegimeNew,
			BestTax:      decimal.NewFromInt(85800),
			Savings:      decimal.NewFromInt(62400),
		},
		AlternativeResults: []ComparisonResult{
			{
				ScenarioName:    "raise_10pct",
				Description:     "A 10% raise in gross salary",
				OldRegimeTax:    decimal.NewFromInt(185640),
				NewRegimeTax:    decimal.NewFromInt(108160),
				BestRegime:      domain.RegimeNew,
				BestTax:         decimal.NewFromInt(108160),
				Savings:         decimal.NewFromInt(77480),
				TaxDiffFromBase: decimal.NewFromInt(22360),
				TaxPctFromBase:  decimal.RequireFromString("26.06"),
			},
		},
		Recommendations: []string{
			"Best Regime: the New Regime saves ₹62,400 compared to the Old Regime",
		},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{}

	result := formatter.Format(testComparisonSet())

	if result == "" {
		t.Fatal("Expected formatted output, got empty string")
	}

	for _, want := range []string{
		"INCOME TAX REGIME COMPARISON",
		"Base Scenario: declared",
		"Facts File: /path/to/facts.yaml",
		"declared (base)",
		"1,48,200",
		"raise_10pct",
		"+22,360 (26.1%)",
		"RECOMMENDATIONS",
	} {
		if !contains(result, want) {
			t.Errorf("Expected %q in output:\n%s", want, result)
		}
	}
}

func TestTableFormatter_Format_EmptyAlternatives(t *testing.T) {
	formatter := &TableFormatter{}

	compSet := testComparisonSet()
	compSet.AlternativeResults = nil
	compSet.Recommendations = nil
	compSet.ConfigPath = ""

	result := formatter.Format(compSet)

	if !contains(result, "declared (base)") {
		t.Error("Expected base scenario in table")
	}
	if contains(result, "COMPARISON TO BASE") {
		t.Error("Should not have comparison section without alternatives")
	}
	if contains(result, "RECOMMENDATIONS") {
		t.Error("Should not have recommendations section")
	}
	if contains(result, "Facts File") {
		t.Error("Should omit the facts file line when unknown")
	}
}

func TestTableFormatter_BestRegimeChange(t *testing.T) {
	formatter := &TableFormatter{}

	compSet := testComparisonSet()
	compSet.AlternativeResults[0].BestRegime = domain.RegimeOld
	compSet.AlternativeResults[0].TaxDiffFromBase = decimal.NewFromInt(-1000)

	result := formatter.Format(compSet)
	if !contains(result, "Best Regime:      Old Regime (was New Regime)") {
		t.Errorf("Expected regime change line:\n%s", result)
	}
	if !contains(result, "-1,000") {
		t.Errorf("Expected negative delta:\n%s", result)
	}
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	formatter := &TableFormatter{}

	compSet := testComparisonSet()
	compSet.AlternativeResults = append(compSet.AlternativeResults, ComparisonResult{ScenarioName: "max_80c"})

	got := formatter.FormatCompact(compSet)
	expected := "Base: declared 85,800 (new) | raise_10pct: +22,360 | max_80c: ="
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestTableFormatter_truncate(t *testing.T) {
	formatter := &TableFormatter{}

	if got := formatter.truncate("short", 10); got != "short" {
		t.Errorf("Expected 'short', got %q", got)
	}
	if got := formatter.truncate("health_cover_parents_and_more", 12); got != "health_co..." {
		t.Errorf("Expected 'health_co...', got %q", got)
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	formatter := &CSVFormatter{}

	result, err := formatter.Format(testComparisonSet())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(result), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header and 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Scenario,Type,Old Regime Tax") {
		t.Errorf("Unexpected header: %s", lines[0])
	}
	if lines[1] != "declared,base,148200,85800,new,85800,62400,0.00,0,0.00" {
		t.Errorf("Unexpected base row: %s", lines[1])
	}
	if !contains(lines[2], "raise_10pct,alternative,185640,108160,new,108160,77480") {
		t.Errorf("Unexpected alternative row: %s", lines[2])
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		formatter := &JSONFormatter{Pretty: pretty}

		result, err := formatter.Format(testComparisonSet())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if !contains(result, "\"baseScenarioName\"") {
			t.Error("Expected baseScenarioName field in JSON")
		}
		if pretty != contains(result, "\n  ") {
			t.Errorf("Indentation mismatch for pretty=%v", pretty)
		}

		var decoded map[string]any
		if err := json.Unmarshal([]byte(result), &decoded); err != nil {
			t.Fatalf("Output is not valid JSON: %v", err)
		}
		if _, ok := decoded["Rules"]; ok {
			t.Error("Rules should not be serialized")
		}
	}
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
