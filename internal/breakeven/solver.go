package breakeven

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/domain"
)

// Solver finds how far an old-regime deduction must rise before the old
// regime stops costing more than the new one
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Solve runs the search described by req.
//
// Old-regime tax never rises as a deduction grows and new-regime tax does
// not depend on the fields in DeductionFields, so "old <= new" flips at most
// once and bisection over whole rupees finds the first amount where it holds.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if req.Field == "" {
		req.Field = DefaultField
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}
	// the search runs on whole rupees
	if req.Tolerance.LessThan(decimal.NewFromInt(1)) {
		req.Tolerance = decimal.NewFromInt(1)
	}
	if s.CalcEngine == nil || s.CalcEngine.TaxCalc == nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "calculation engine is not configured"}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := s.CalcEngine.Analyze(req.Facts)
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "failed to analyze base facts", Cause: err}
	}
	start, _ := req.Facts.Get(req.Field)

	result := &Result{Request: req, Base: base}

	if oldWithin(base) {
		result.Reachable = true
		result.ExtraDeduction = decimal.Zero
		result.TargetAmount = start
		result.AtPoint = base
		result.ConvergenceInfo = "Old regime already costs no more than the new regime"
		return result, nil
	}

	// Beyond gross income the taxable income is already zero.
	lo := decimal.Zero
	hi := base.OldRegime.GrossTotalIncome.Ceil()

	atHi, err := s.evaluate(req, start, hi)
	if err != nil {
		return nil, err
	}
	if !oldWithin(atHi) {
		result.Reachable = false
		result.AtPoint = atHi
		result.ConvergenceInfo = fmt.Sprintf("Raising %s cannot bring the old regime below the new regime", req.Field)
		return result, nil
	}
	best := atHi

	for result.Iterations < req.MaxIterations && hi.Sub(lo).GreaterThan(req.Tolerance) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result.Iterations++

		mid := lo.Add(hi).Div(decimal.NewFromInt(2)).Floor()
		analysis, err := s.evaluate(req, start, mid)
		if err != nil {
			return nil, err
		}
		if oldWithin(analysis) {
			hi = mid
			best = analysis
		} else {
			lo = mid
		}
	}

	result.Reachable = true
	result.ExtraDeduction = hi
	result.TargetAmount = start.Add(hi)
	result.AtPoint = best
	if hi.Sub(lo).GreaterThan(req.Tolerance) {
		result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached; amount is an upper bound", req.MaxIterations)
	} else {
		result.ConvergenceInfo = fmt.Sprintf("Converged within ₹%s", req.Tolerance.StringFixed(0))
	}
	return result, nil
}

func (s *Solver) evaluate(req Request, start, extra decimal.Decimal) (*domain.RegimeAnalysis, error) {
	facts := req.Facts
	if err := facts.Set(req.Field, start.Add(extra)); err != nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "failed to adjust facts", Cause: err}
	}
	analysis, err := s.CalcEngine.Analyze(facts)
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "failed to calculate taxes", Cause: err}
	}
	return analysis, nil
}

func oldWithin(a *domain.RegimeAnalysis) bool {
	return a.OldRegime.TotalTaxPayable.LessThanOrEqual(a.NewRegime.TotalTaxPayable)
}
