package tuimsg

import (
	"github.com/rgehrsitz/itrgo/internal/compare"
	"github.com/rgehrsitz/itrgo/internal/domain"
)

// RegimeChosenMsg signals the user picked the regime to be interviewed for
type RegimeChosenMsg struct {
	Regime domain.Regime
}

// InterviewCompleteMsg carries the facts gathered by the interview
type InterviewCompleteMsg struct {
	Facts domain.FinancialFacts
}

// FactsLoadedMsg signals facts were read from a file
type FactsLoadedMsg struct {
	Facts *domain.FinancialFacts
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// CalculationCompleteMsg signals both regimes have been computed
type CalculationCompleteMsg struct {
	Analysis *domain.RegimeAnalysis
	Err      error
}

// ComparisonRequestedMsg asks for the facts to be run against templates
type ComparisonRequestedMsg struct {
	Templates []string
}

// ComparisonCompleteMsg signals a comparison has finished
type ComparisonCompleteMsg struct {
	Set *compare.ComparisonSet
	Err error
}

// AdviceRequestedMsg asks for generated tax-saving suggestions
type AdviceRequestedMsg struct{}

// AdviceCompleteMsg carries generated markdown
type AdviceCompleteMsg struct {
	Markdown string
	Err      error
}
