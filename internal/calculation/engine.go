package calculation

import (
	"fmt"

	"github.com/rgehrsitz/itrgo/internal/domain"
)

// Logger is the minimal logging interface used by the engine. A zap
// SugaredLogger satisfies it.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// CalculationEngine runs both regimes for a set of facts
type CalculationEngine struct {
	TaxCalc *TaxCalculator
	Logger  Logger
}

// NewCalculationEngine creates an engine with the built-in rules
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		TaxCalc: NewTaxCalculator(),
		Logger:  NopLogger{},
	}
}

// NewCalculationEngineWithRules creates an engine with custom regime rules
func NewCalculationEngineWithRules(rules RulesSet) (*CalculationEngine, error) {
	tc, err := NewTaxCalculatorWithRules(rules)
	if err != nil {
		return nil, err
	}
	return &CalculationEngine{TaxCalc: tc, Logger: NopLogger{}}, nil
}

// SetLogger replaces the logger; nil restores the no-op logger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Analyze computes the summary for each regime and compares them.
func (ce *CalculationEngine) Analyze(facts domain.FinancialFacts) (*domain.RegimeAnalysis, error) {
	newSummary, err := ce.TaxCalc.Compute(facts, domain.RegimeNew)
	if err != nil {
		return nil, fmt.Errorf("new regime: %w", err)
	}
	oldSummary, err := ce.TaxCalc.Compute(facts, domain.RegimeOld)
	if err != nil {
		return nil, fmt.Errorf("old regime: %w", err)
	}

	for _, s := range []domain.TaxSummary{newSummary, oldSummary} {
		ce.Logger.Debugf("%s regime: gross=%s deductions=%s taxable=%s tax=%s cess=%s total=%s",
			s.Regime, s.GrossTotalIncome, s.TotalDeductions, s.TaxableIncome,
			s.TaxBeforeCess, s.Cess, s.TotalTaxPayable)
	}

	comparison := CompareRegimes(oldSummary, newSummary)
	ce.Logger.Infof("best regime: %s (saves %s)", comparison.Best, comparison.Savings)

	return &domain.RegimeAnalysis{
		Facts:      facts,
		NewRegime:  newSummary,
		OldRegime:  oldSummary,
		Comparison: comparison,
	}, nil
}
