package calculation

import (
	"fmt"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// RegimeRules holds the statutory figures for one regime. DefaultRules
// carries the FY 2024-25 values; a rules file may replace them.
type RegimeRules struct {
	Regime            domain.Regime   `yaml:"regime" json:"regime"`
	Slabs             SlabTable       `yaml:"slabs" json:"slabs"`
	StandardDeduction decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction"`
	Section80CCap     decimal.Decimal `yaml:"section_80c_cap" json:"section_80c_cap"` // old regime only
	RebateThreshold   decimal.Decimal `yaml:"rebate_threshold" json:"rebate_threshold"`
	CessRate          decimal.Decimal `yaml:"cess_rate" json:"cess_rate"`
}

// RulesSet is the on-disk shape of a rules file
type RulesSet struct {
	AssessmentYear string      `yaml:"assessment_year" json:"assessment_year"`
	Old            RegimeRules `yaml:"old" json:"old"`
	New            RegimeRules `yaml:"new" json:"new"`
}

var (
	standardDeduction = decimal.NewFromInt(50000)
	section80CCap     = decimal.NewFromInt(150000)
	cessRate          = decimal.RequireFromString("0.04")
)

// DefaultRules returns the built-in rules for a regime.
func DefaultRules(regime domain.Regime) RegimeRules {
	if regime == domain.RegimeOld {
		return RegimeRules{
			Regime:            domain.RegimeOld,
			Slabs:             OldRegimeSlabs(),
			StandardDeduction: standardDeduction,
			Section80CCap:     section80CCap,
			RebateThreshold:   decimal.NewFromInt(500000),
			CessRate:          cessRate,
		}
	}
	return RegimeRules{
		Regime:            domain.RegimeNew,
		Slabs:             NewRegimeSlabs(),
		StandardDeduction: standardDeduction,
		RebateThreshold:   decimal.NewFromInt(700000),
		CessRate:          cessRate,
	}
}

// DefaultRulesSet returns both built-in regimes
func DefaultRulesSet() RulesSet {
	return RulesSet{
		AssessmentYear: "2025-26",
		Old:            DefaultRules(domain.RegimeOld),
		New:            DefaultRules(domain.RegimeNew),
	}
}

// Validate checks a single regime's rules
func (r RegimeRules) Validate() error {
	if !r.Regime.Valid() {
		return fmt.Errorf("%w: unknown regime %q", domain.ErrInvalidInput, r.Regime)
	}
	if err := r.Slabs.Validate(); err != nil {
		return fmt.Errorf("%s regime slabs: %w", r.Regime, err)
	}
	if r.StandardDeduction.IsNegative() {
		return fmt.Errorf("%s regime: standard deduction cannot be negative", r.Regime)
	}
	if r.Section80CCap.IsNegative() {
		return fmt.Errorf("%s regime: 80C cap cannot be negative", r.Regime)
	}
	if r.RebateThreshold.IsNegative() {
		return fmt.Errorf("%s regime: rebate threshold cannot be negative", r.Regime)
	}
	if r.CessRate.IsNegative() || r.CessRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%s regime: cess rate must be between 0 and 1", r.Regime)
	}
	return nil
}

// Validate checks both regimes and that each sits under its own key
func (rs RulesSet) Validate() error {
	if rs.Old.Regime != domain.RegimeOld {
		return fmt.Errorf("old: regime must be %q", domain.RegimeOld)
	}
	if rs.New.Regime != domain.RegimeNew {
		return fmt.Errorf("new: regime must be %q", domain.RegimeNew)
	}
	if err := rs.Old.Validate(); err != nil {
		return err
	}
	return rs.New.Validate()
}

// For returns the rules for regime
func (rs RulesSet) For(regime domain.Regime) RegimeRules {
	if regime == domain.RegimeOld {
		return rs.Old
	}
	return rs.New
}
