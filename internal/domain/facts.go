package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput is returned for negative, non-numeric or missing required
// values and for unknown regime selectors.
var ErrInvalidInput = errors.New("invalid input")

// Regime selects one of the two income-tax rule sets.
type Regime string

const (
	RegimeOld Regime = "old"
	RegimeNew Regime = "new"
)

// Regimes lists every supported regime in display order.
var Regimes = []Regime{RegimeNew, RegimeOld}

// ParseRegime converts a user supplied selector into a Regime
func ParseRegime(s string) (Regime, error) {
	switch Regime(strings.ToLower(strings.TrimSpace(s))) {
	case RegimeOld:
		return RegimeOld, nil
	case RegimeNew:
		return RegimeNew, nil
	default:
		return "", fmt.Errorf("%w: unknown regime %q (valid: old, new)", ErrInvalidInput, s)
	}
}

// Valid reports whether r is one of the supported regimes
func (r Regime) Valid() bool {
	return r == RegimeOld || r == RegimeNew
}

// Title returns the display name used in reports ("New Regime")
func (r Regime) Title() string {
	switch r {
	case RegimeOld:
		return "Old Regime"
	case RegimeNew:
		return "New Regime"
	default:
		return string(r)
	}
}

// FinancialFacts holds the annual income and deduction figures for one
// taxpayer. Amounts are in rupees.
type FinancialFacts struct {
	GrossSalary     decimal.Decimal `yaml:"grossSalary" json:"grossSalary"`
	OtherIncome     decimal.Decimal `yaml:"otherIncome" json:"otherIncome"`
	Deduction80C    decimal.Decimal `yaml:"deduction80C" json:"deduction80C"`       // old regime only
	Deduction80D    decimal.Decimal `yaml:"deduction80D" json:"deduction80D"`       // old regime only
	HRAExemption    decimal.Decimal `yaml:"hraExemption" json:"hraExemption"`       // old regime only
	ProfessionalTax decimal.Decimal `yaml:"professionalTax" json:"professionalTax"` // new regime only
}

// Fields returns the facts keyed by their wire names, in declaration order.
func (f FinancialFacts) Fields() []FactField {
	return []FactField{
		{Name: "grossSalary", Value: f.GrossSalary},
		{Name: "otherIncome", Value: f.OtherIncome},
		{Name: "deduction80C", Value: f.Deduction80C},
		{Name: "deduction80D", Value: f.Deduction80D},
		{Name: "hraExemption", Value: f.HRAExemption},
		{Name: "professionalTax", Value: f.ProfessionalTax},
	}
}

// FactField is a single named amount of FinancialFacts
type FactField struct {
	Name  string
	Value decimal.Decimal
}

// MaxAmount is the largest amount accepted for any fact (1e15 rupees)
var MaxAmount = decimal.New(1, 15)

// Amounts may carry at most this many decimal places
const maxFractionDigits = 10

// Validate rejects negative amounts and amounts outside the supported
// magnitude. The exponent is checked before any comparison so that inputs
// such as 1e2000000 are refused without being expanded.
func (f FinancialFacts) Validate() error {
	for _, field := range f.Fields() {
		v := field.Value
		if v.IsNegative() {
			return fmt.Errorf("%w: %s cannot be negative (got %s)", ErrInvalidInput, field.Name, v.String())
		}
		if v.IsZero() {
			continue
		}
		if exp := v.Exponent(); exp > 15 || exp < -maxFractionDigits {
			return fmt.Errorf("%w: %s is out of range (exponent %d)", ErrInvalidInput, field.Name, exp)
		}
		if v.GreaterThan(MaxAmount) {
			return fmt.Errorf("%w: %s exceeds the maximum of %s", ErrInvalidInput, field.Name, MaxAmount.String())
		}
	}
	return nil
}

// Set assigns value to the field with the given wire name.
func (f *FinancialFacts) Set(name string, value decimal.Decimal) error {
	switch name {
	case "grossSalary":
		f.GrossSalary = value
	case "otherIncome":
		f.OtherIncome = value
	case "deduction80C":
		f.Deduction80C = value
	case "deduction80D":
		f.Deduction80D = value
	case "hraExemption":
		f.HRAExemption = value
	case "professionalTax":
		f.ProfessionalTax = value
	default:
		return fmt.Errorf("%w: unknown field %q", ErrInvalidInput, name)
	}
	return nil
}

// Get returns the field with the given wire name.
func (f FinancialFacts) Get(name string) (decimal.Decimal, error) {
	for _, field := range f.Fields() {
		if field.Name == name {
			return field.Value, nil
		}
	}
	return decimal.Zero, fmt.Errorf("%w: unknown field %q", ErrInvalidInput, name)
}
