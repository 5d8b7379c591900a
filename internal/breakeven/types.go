package breakeven

import (
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/itrgo/internal/domain"
)

// DeductionFields lists the deductions the solver may raise. Only fields
// that the old regime honours and the new regime ignores qualify, so the
// new-regime tax stays fixed while the old-regime tax falls.
var DeductionFields = []string{"deduction80C", "deduction80D", "hraExemption"}

// DefaultField is raised when a request names none
const DefaultField = "deduction80D"

// Request defines one break-even search
type Request struct {
	Facts         domain.FinancialFacts `json:"facts"`
	Field         string                `json:"field"`
	MaxIterations int                   `json:"maxIterations,omitempty"`
	Tolerance     decimal.Decimal       `json:"tolerance"` // search stops once the bracket is this narrow (rupees)
}

// Validate checks the request before any tax is computed
func (r *Request) Validate() error {
	if err := r.Facts.Validate(); err != nil {
		return &BreakEvenError{Operation: "validate_request", Message: "invalid facts", Cause: err}
	}
	for _, f := range DeductionFields {
		if r.Field == f {
			return nil
		}
	}
	return &BreakEvenError{
		Operation: "validate_request",
		Message:   "field must be one of deduction80C, deduction80D, hraExemption (got " + r.Field + ")",
		Cause:     domain.ErrInvalidInput,
	}
}

// Result is the outcome of a break-even search.
//
// ExtraDeduction is the smallest whole-rupee increase of Field at which the
// old regime costs no more than the new one. Reachable is false when no
// increase gets there, typically because the 80C cap is already used up.
type Result struct {
	Request         Request         `json:"request"`
	Reachable       bool            `json:"reachable"`
	Iterations      int             `json:"iterations"`
	ConvergenceInfo string          `json:"convergenceInfo"`
	ExtraDeduction  decimal.Decimal `json:"extraDeduction"`
	TargetAmount    decimal.Decimal `json:"targetAmount"` // Field's value at break-even

	Base    *domain.RegimeAnalysis `json:"base"`
	AtPoint *domain.RegimeAnalysis `json:"atPoint,omitempty"`
}

// SweepRow is one salary level of a sweep
type SweepRow struct {
	GrossSalary    decimal.Decimal `json:"grossSalary"`
	NewRegimeTax   decimal.Decimal `json:"newRegimeTax"`
	OldRegimeTax   decimal.Decimal `json:"oldRegimeTax"`
	Best           domain.Regime   `json:"best"`
	Reachable      bool            `json:"reachable"`
	ExtraDeduction decimal.Decimal `json:"extraDeduction"`
}

// SweepResult repeats the search over several salaries with the other
// facts held fixed
type SweepResult struct {
	Field           string     `json:"field"`
	Rows            []SweepRow `json:"rows"`
	Recommendations []string   `json:"recommendations"`
}

// SolverOptions configures the bisection
type SolverOptions struct {
	Tolerance     decimal.Decimal
	MaxIterations int
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1), // whole rupees
		MaxIterations: 64,
	}
}

// BreakEvenError represents errors from the break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
