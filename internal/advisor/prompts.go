package advisor

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/itrgo/internal/domain"
)

// ExtractionPrompt turns free text into the six financial facts.
const ExtractionPrompt = `You are an expert tax preparation assistant in India. Your task is to extract specific financial details from the user's text and return them as a structured JSON object. Extract: grossSalary, otherIncome, deduction80C, deduction80D, hraExemption, professionalTax. Rules: If a value is not mentioned, set it to 0. The final output MUST be only a valid JSON object.`

// Disclaimer closes every piece of generated advice.
const Disclaimer = `**Disclaimer:** These are AI-generated suggestions and not professional financial advice. Please consult with a qualified financial advisor.`

// RecommendationPrompt asks for tax-saving suggestions for a calculation.
const RecommendationPrompt = `You are a helpful and cautious financial assistant in India. Your goal is to provide actionable tax-saving recommendations based on the user's financial data. Provide 2-3 clear, concise, and actionable recommendations in markdown format. Always include a disclaimer at the end: "` + Disclaimer + `"`

const (
	retirementPrompt = `You are a careful retirement planning assistant in India. Using the user's age, target retirement age, annual salary and existing savings (amounts in lakhs of rupees), estimate the corpus they will need and the monthly saving required to reach it. Suggest a mix of Indian instruments such as EPF, PPF, NPS and equity mutual funds. Answer in markdown with short sections. Always include a disclaimer at the end: "` + Disclaimer + `"`

	insurancePrompt = `You are a careful insurance planning assistant in India. Using the user's age, annual income, number of dependents and outstanding loans (amounts in lakhs of rupees), recommend an adequate term life cover and a health insurance cover, and explain briefly how each figure was reached. Answer in markdown. Always include a disclaimer at the end: "` + Disclaimer + `"`

	investmentPrompt = `You are a careful investment assistant in India. Using the amount to invest (in lakhs of rupees), the investment duration in years and the user's risk tolerance, propose an asset allocation across Indian instruments with expected return ranges. Answer in markdown with a small table. Always include a disclaimer at the end: "` + Disclaimer + `"`

	loanPrompt = `You are a careful loan advisor in India. Using the loan amount (in lakhs of rupees), the annual interest rate and the tenure in years, compute the EMI and the total interest payable, and suggest ways to reduce the interest cost such as prepayment or a shorter tenure. Answer the user's question if one is given. Answer in markdown. Always include a disclaimer at the end: "` + Disclaimer + `"`
)

// promptFor returns the system instruction for an advice kind
func promptFor(kind domain.AdviceKind) string {
	switch kind {
	case domain.AdviceExtract:
		return ExtractionPrompt
	case domain.AdviceTax:
		return RecommendationPrompt
	case domain.AdviceRetirement:
		return retirementPrompt
	case domain.AdviceInsurance:
		return insurancePrompt
	case domain.AdviceInvestment:
		return investmentPrompt
	case domain.AdviceLoan:
		return loanPrompt
	}
	return ""
}

// formInput renders labelled form values one per line, skipping blanks
func formInput(fields ...[2]string) string {
	var b strings.Builder
	for _, f := range fields {
		value := strings.TrimSpace(f[1])
		if value == "" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", f[0], value)
	}
	return b.String()
}

func retirementInput(req domain.RetirementRequest) string {
	return formInput(
		[2]string{"Current age", req.Age},
		[2]string{"Desired retirement age", req.RetireAge},
		[2]string{"Annual salary (lakhs)", req.Salary},
		[2]string{"Existing retirement savings (lakhs)", req.Savings},
		[2]string{"Notes", req.Notes},
	)
}

func insuranceInput(req domain.InsuranceRequest) string {
	return formInput(
		[2]string{"Age", req.Age},
		[2]string{"Annual income (lakhs)", req.AnnualIncome},
		[2]string{"Financial dependents", req.Dependents},
		[2]string{"Outstanding loans (lakhs)", req.Liabilities},
		[2]string{"Notes", req.Notes},
	)
}

func investmentInput(req domain.InvestmentRequest) string {
	return formInput(
		[2]string{"Amount to invest (lakhs)", req.Amount},
		[2]string{"Duration (years)", req.Duration},
		[2]string{"Risk tolerance", req.Risk},
		[2]string{"Notes", req.Notes},
	)
}

func loanInput(req domain.LoanRequest) string {
	return formInput(
		[2]string{"Loan amount (lakhs)", req.LoanAmount},
		[2]string{"Annual interest rate (%)", req.InterestRate},
		[2]string{"Tenure (years)", req.LoanTenure},
		[2]string{"Questions", req.Notes},
	)
}
