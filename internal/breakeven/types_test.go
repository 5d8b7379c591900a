package breakeven

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/itrgo/internal/calculation"
)

func TestDefaultSolverOptions(t *testing.T) {
	opts := DefaultSolverOptions()

	if !opts.Tolerance.Equal(decimal.NewFromInt(1)) {
		t.Errorf("Expected tolerance of one rupee, got %s", opts.Tolerance)
	}
	if opts.MaxIterations <= 0 {
		t.Errorf("Expected positive max iterations, got %d", opts.MaxIterations)
	}
}

func TestBreakEvenError(t *testing.T) {
	cause := errors.New("boom")
	err := &BreakEvenError{Operation: "solve", Message: "failed", Cause: cause}

	if err.Error() != "solve: failed: boom" {
		t.Errorf("Unexpected error text %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("Expected error to unwrap to its cause")
	}

	plain := &BreakEvenError{Operation: "sweep", Message: "empty"}
	if plain.Error() != "sweep: empty" {
		t.Errorf("Unexpected error text %q", plain.Error())
	}
}

func TestTableFormatter(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())
	result, err := solver.Solve(context.Background(), Request{Facts: baseFacts()})
	if err != nil {
		t.Fatal(err)
	}

	out := (&TableFormatter{}).Format(result)
	for _, want := range []string{"REGIME BREAK-EVEN ANALYSIS", "BREAK-EVEN POINT", "₹2,49,998", "₹1,48,200", "New Regime"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q\n%s", want, out)
		}
	}

	unreachable, err := solver.Solve(context.Background(), Request{Facts: baseFacts(), Field: "deduction80C"})
	if err != nil {
		t.Fatal(err)
	}
	out = (&TableFormatter{}).Format(unreachable)
	if strings.Contains(out, "BREAK-EVEN POINT") || !strings.Contains(out, "Not reachable") {
		t.Errorf("Unexpected output for unreachable result\n%s", out)
	}
}

func TestTableFormatter_Sweep(t *testing.T) {
	sweep := &SweepResult{
		Field: "deduction80D",
		Rows: []SweepRow{
			{GrossSalary: decimal.NewFromInt(1500000), NewRegimeTax: decimal.NewFromInt(140400), OldRegimeTax: decimal.NewFromInt(241800), Best: "new", Reachable: true, ExtraDeduction: decimal.NewFromInt(310000)},
			{GrossSalary: decimal.NewFromInt(25000000), Best: "new"},
		},
		Recommendations: []string{"The new regime is cheaper at every salary tested with the current deductions"},
	}

	out := (&TableFormatter{}).FormatSweep(sweep)
	for _, want := range []string{"₹15.00 L", "₹2.50 Cr", "₹3.10 L", "n/a", "RECOMMENDATIONS"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected sweep output to contain %q\n%s", want, out)
		}
	}
}

func TestJSONFormatter(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())
	result, err := solver.Solve(context.Background(), Request{Facts: baseFacts()})
	if err != nil {
		t.Fatal(err)
	}

	out, err := (&JSONFormatter{Pretty: true}).Format(result)
	if err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		Reachable      bool            `json:"reachable"`
		ExtraDeduction decimal.Decimal `json:"extraDeduction"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !decoded.Reachable || !decoded.ExtraDeduction.Equal(decimal.NewFromInt(249998)) {
		t.Errorf("Unexpected decoded result %+v", decoded)
	}
}
