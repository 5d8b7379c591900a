package transform

import (
	"fmt"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// SetDeduction sets one fact to an absolute amount. Despite the name it
// accepts any fact field, income included.
type SetDeduction struct {
	Field  string          // Wire name, e.g. "deduction80D"
	Amount decimal.Decimal // New amount (non-negative)
}

func (sd *SetDeduction) Name() string {
	return "set_deduction"
}

func (sd *SetDeduction) Description() string {
	return fmt.Sprintf("Set %s to %s", sd.Field, domain.FormatRupees(sd.Amount))
}

func (sd *SetDeduction) Validate(base domain.FinancialFacts) error {
	if _, err := base.Get(sd.Field); err != nil {
		return NewTransformError(sd.Name(), "validate", "unknown field", err)
	}
	if sd.Amount.IsNegative() {
		return NewTransformError(sd.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %s", sd.Amount), nil)
	}
	return nil
}

func (sd *SetDeduction) Apply(base domain.FinancialFacts) (domain.FinancialFacts, error) {
	modified := base
	if err := modified.Set(sd.Field, sd.Amount); err != nil {
		return domain.FinancialFacts{}, err
	}
	return modified, nil
}

// AddDeduction adds a (possibly negative) amount to one fact. The result
// must stay non-negative.
type AddDeduction struct {
	Field  string
	Amount decimal.Decimal
}

func (ad *AddDeduction) Name() string {
	return "add_deduction"
}

func (ad *AddDeduction) Description() string {
	if ad.Amount.IsNegative() {
		return fmt.Sprintf("Reduce %s by %s", ad.Field, domain.FormatRupees(ad.Amount.Abs()))
	}
	return fmt.Sprintf("Increase %s by %s", ad.Field, domain.FormatRupees(ad.Amount))
}

func (ad *AddDeduction) Validate(base domain.FinancialFacts) error {
	current, err := base.Get(ad.Field)
	if err != nil {
		return NewTransformError(ad.Name(), "validate", "unknown field", err)
	}
	if current.Add(ad.Amount).IsNegative() {
		return NewTransformError(ad.Name(), "validate",
			fmt.Sprintf("%s would become negative (%s + %s)", ad.Field, current, ad.Amount), nil)
	}
	return nil
}

func (ad *AddDeduction) Apply(base domain.FinancialFacts) (domain.FinancialFacts, error) {
	current, err := base.Get(ad.Field)
	if err != nil {
		return domain.FinancialFacts{}, err
	}
	modified := base
	if err := modified.Set(ad.Field, current.Add(ad.Amount)); err != nil {
		return domain.FinancialFacts{}, err
	}
	return modified, nil
}

// Maximize80C raises the Section 80C claim to the cap. Claims already at
// or above the cap are left alone.
type Maximize80C struct {
	Cap decimal.Decimal
}

func (m *Maximize80C) Name() string {
	return "maximize_80c"
}

func (m *Maximize80C) Description() string {
	return fmt.Sprintf("Invest up to the Section 80C limit of %s", domain.FormatRupees(m.Cap))
}

func (m *Maximize80C) Validate(base domain.FinancialFacts) error {
	if !m.Cap.IsPositive() {
		return NewTransformError(m.Name(), "validate", fmt.Sprintf("cap must be positive, got %s", m.Cap), nil)
	}
	return nil
}

func (m *Maximize80C) Apply(base domain.FinancialFacts) (domain.FinancialFacts, error) {
	modified := base
	if modified.Deduction80C.LessThan(m.Cap) {
		modified.Deduction80C = m.Cap
	}
	return modified, nil
}

// AdjustIncome scales gross salary by a percentage, rounded to the rupee.
type AdjustIncome struct {
	Percent decimal.Decimal // 10 means +10%
}

func (ai *AdjustIncome) Name() string {
	return "adjust_income"
}

func (ai *AdjustIncome) Description() string {
	return fmt.Sprintf("Change gross salary by %s%%", ai.Percent.StringFixed(1))
}

func (ai *AdjustIncome) Validate(base domain.FinancialFacts) error {
	if ai.Percent.LessThanOrEqual(decimal.NewFromInt(-100)) {
		return NewTransformError(ai.Name(), "validate", fmt.Sprintf("percent must be greater than -100, got %s", ai.Percent), nil)
	}
	return nil
}

func (ai *AdjustIncome) Apply(base domain.FinancialFacts) (domain.FinancialFacts, error) {
	factor := decimal.NewFromInt(1).Add(ai.Percent.Div(decimal.NewFromInt(100)))
	modified := base
	modified.GrossSalary = base.GrossSalary.Mul(factor).Round(0)
	return modified, nil
}
