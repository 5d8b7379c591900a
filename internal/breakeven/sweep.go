package breakeven

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/itrgo/internal/domain"
)

// Sweep runs Solve once per salary, keeping every other fact as given
func (s *Solver) Sweep(ctx context.Context, facts domain.FinancialFacts, field string, salaries []decimal.Decimal) (*SweepResult, error) {
	if len(salaries) == 0 {
		return nil, &BreakEvenError{
			Operation: "sweep",
			Message:   "at least one salary is required",
			Cause:     domain.ErrInvalidInput,
		}
	}
	if field == "" {
		field = DefaultField
	}

	sweep := &SweepResult{Field: field}
	for _, salary := range salaries {
		f := facts
		f.GrossSalary = salary

		res, err := s.Solve(ctx, Request{Facts: f, Field: field})
		if err != nil {
			return nil, fmt.Errorf("salary %s: %w", salary.StringFixed(0), err)
		}

		sweep.Rows = append(sweep.Rows, SweepRow{
			GrossSalary:    salary,
			NewRegimeTax:   res.Base.NewRegime.TotalTaxPayable,
			OldRegimeTax:   res.Base.OldRegime.TotalTaxPayable,
			Best:           res.Base.Comparison.Best,
			Reachable:      res.Reachable,
			ExtraDeduction: res.ExtraDeduction,
		})
	}

	sweep.Recommendations = recommendations(sweep)
	return sweep, nil
}

func recommendations(sweep *SweepResult) []string {
	var recs []string
	var oldWins, unreachable int
	for _, row := range sweep.Rows {
		if row.Best == domain.RegimeOld {
			oldWins++
		}
		if !row.Reachable {
			unreachable++
		}
	}

	switch {
	case oldWins == len(sweep.Rows):
		recs = append(recs, "The old regime is cheaper at every salary tested with the current deductions")
	case oldWins == 0:
		recs = append(recs, "The new regime is cheaper at every salary tested with the current deductions")
	default:
		recs = append(recs, fmt.Sprintf("The cheaper regime changes within the tested range (old regime wins at %d of %d salaries)", oldWins, len(sweep.Rows)))
	}
	if unreachable > 0 {
		recs = append(recs, fmt.Sprintf("At %d salaries no increase of %s makes the old regime worthwhile", unreachable, sweep.Field))
	}
	return recs
}
