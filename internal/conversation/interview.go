package conversation

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Interview walks a user through a Flow one answer at a time. It is not
// safe for concurrent use.
type Interview struct {
	flow     Flow
	current  StepID
	answered int
	facts    domain.FinancialFacts
}

// NewInterview starts an interview for regime
func NewInterview(regime domain.Regime) (*Interview, error) {
	flow, err := FlowFor(regime)
	if err != nil {
		return nil, err
	}
	return &Interview{flow: flow, current: StepStart}, nil
}

// Regime returns the regime being interviewed for
func (iv *Interview) Regime() domain.Regime { return iv.flow.Regime }

// Step returns the current step ID
func (iv *Interview) Step() StepID { return iv.current }

// Prompt returns the current question, or the closing line once done.
func (iv *Interview) Prompt() string {
	if iv.Done() {
		return iv.flow.EndText
	}
	return iv.flow.Steps[iv.current].Text
}

// Answer records the reply to the current question and advances. Invalid
// replies leave the interview on the same step.
func (iv *Interview) Answer(reply string) error {
	if iv.Done() {
		return fmt.Errorf("interview already complete")
	}
	amount, err := ParseAmount(reply)
	if err != nil {
		return err
	}
	step := iv.flow.Steps[iv.current]
	if err := iv.facts.Set(step.Field, amount); err != nil {
		return err
	}
	iv.answered++
	iv.current = step.Next
	return nil
}

// Done reports whether every question has been answered
func (iv *Interview) Done() bool {
	return iv.current == StepEnd
}

// Progress returns answered and total question counts
func (iv *Interview) Progress() (answered, total int) {
	return iv.answered, iv.flow.Len()
}

// Facts returns the figures collected so far. Unasked fields are zero.
func (iv *Interview) Facts() domain.FinancialFacts {
	return iv.facts
}

var amountMultipliers = []struct {
	suffix string
	factor decimal.Decimal
}{
	{"crores", decimal.NewFromInt(10000000)},
	{"crore", decimal.NewFromInt(10000000)},
	{"cr", decimal.NewFromInt(10000000)},
	{"lakhs", decimal.NewFromInt(100000)},
	{"lakh", decimal.NewFromInt(100000)},
	{"lacs", decimal.NewFromInt(100000)},
	{"lac", decimal.NewFromInt(100000)},
	{"l", decimal.NewFromInt(100000)},
	{"k", decimal.NewFromInt(1000)},
}

// ParseAmount reads a rupee amount as typed by a user: "15,00,000",
// "₹ 50000", "Rs. 2500", "12 lakh" or "50k". Negative or non-numeric
// replies are rejected with domain.ErrInvalidInput.
func ParseAmount(reply string) (decimal.Decimal, error) {
	s := strings.ToLower(strings.TrimSpace(reply))
	for _, prefix := range []string{"₹", "rs.", "rs", "inr"} {
		s = strings.TrimPrefix(s, prefix)
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	factor := decimal.NewFromInt(1)
	for _, m := range amountMultipliers {
		if strings.HasSuffix(s, m.suffix) {
			s = strings.TrimSpace(strings.TrimSuffix(s, m.suffix))
			factor = m.factor
			break
		}
	}
	s = strings.ReplaceAll(s, " ", "")

	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: please enter an amount (or 0)", domain.ErrInvalidInput)
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidInput, reply)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: amount cannot be negative", domain.ErrInvalidInput)
	}
	return amount.Mul(factor), nil
}
