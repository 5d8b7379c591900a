package conversation

import (
	"fmt"

	"github.com/rgehrsitz/itrgo/internal/domain"
)

// StepID names a position in an interview flow
type StepID string

const (
	StepStart           StepID = "START"
	StepOtherIncome     StepID = "OTHER_INCOME"
	StepProfessionalTax StepID = "PROFESSIONAL_TAX"
	StepDeduction80C    StepID = "DEDUCTION_80C"
	StepDeduction80D    StepID = "DEDUCTION_80D"
	StepHRAExemption    StepID = "HRA_EXEMPTION"
	StepEnd             StepID = "END"
)

// Step is one question. Field is the FinancialFacts wire name the answer
// is stored under; Next is StepEnd on the last question.
type Step struct {
	ID    StepID
	Text  string
	Field string
	Next  StepID
}

// Flow is the ordered question set for one regime
type Flow struct {
	Regime  domain.Regime
	Steps   map[StepID]Step
	EndText string
}

// NewRegimeFlow asks only for what the new regime uses
func NewRegimeFlow() Flow {
	return Flow{
		Regime: domain.RegimeNew,
		Steps: map[StepID]Step{
			StepStart: {
				ID:    StepStart,
				Text:  "You've selected the New Tax Regime. Let's start. What is your total gross annual salary?",
				Field: "grossSalary",
				Next:  StepOtherIncome,
			},
			StepOtherIncome: {
				ID:    StepOtherIncome,
				Text:  "Do you have any other income to declare, like interest from savings accounts? (Enter amount or 0)",
				Field: "otherIncome",
				Next:  StepProfessionalTax,
			},
			StepProfessionalTax: {
				ID:    StepProfessionalTax,
				Text:  "Did you pay any Professional Tax? (This is one of the few deductions allowed in the new regime. Enter amount or 0)",
				Field: "professionalTax",
				Next:  StepEnd,
			},
		},
		EndText: "Great! Calculating your tax summary based on the New Regime...",
	}
}

// OldRegimeFlow asks for the old-regime deductions
func OldRegimeFlow() Flow {
	return Flow{
		Regime: domain.RegimeOld,
		Steps: map[StepID]Step{
			StepStart: {
				ID:    StepStart,
				Text:  "You've selected the Old Tax Regime. Let's start. What is your total gross annual salary?",
				Field: "grossSalary",
				Next:  StepDeduction80C,
			},
			StepDeduction80C: {
				ID:    StepDeduction80C,
				Text:  "What is your total investment under Section 80C? (e.g., PPF, ELSS, LIC premium). The maximum is ₹1,50,000.",
				Field: "deduction80C",
				Next:  StepDeduction80D,
			},
			StepDeduction80D: {
				ID:    StepDeduction80D,
				Text:  "How much did you pay for health insurance premiums (Section 80D)?",
				Field: "deduction80D",
				Next:  StepHRAExemption,
			},
			StepHRAExemption: {
				ID:    StepHRAExemption,
				Text:  "What is your total exempted House Rent Allowance (HRA)? If you're not sure, you can enter 0 for now.",
				Field: "hraExemption",
				Next:  StepEnd,
			},
		},
		EndText: "Perfect! Calculating your tax summary based on the Old Regime...",
	}
}

// FlowFor returns the flow for regime
func FlowFor(regime domain.Regime) (Flow, error) {
	switch regime {
	case domain.RegimeNew:
		return NewRegimeFlow(), nil
	case domain.RegimeOld:
		return OldRegimeFlow(), nil
	}
	return Flow{}, fmt.Errorf("%w: unknown regime %q", domain.ErrInvalidInput, regime)
}

// Len counts the questions reachable from StepStart
func (f Flow) Len() int {
	n := 0
	for id := StepStart; id != StepEnd; id = f.Steps[id].Next {
		if _, ok := f.Steps[id]; !ok {
			break
		}
		n++
	}
	return n
}
