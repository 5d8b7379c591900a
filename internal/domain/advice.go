package domain

// The advice requests mirror the web forms. Values stay as the strings the
// user typed; they are forwarded to the advisor without interpretation.

// RetirementRequest is the retirement planner form
type RetirementRequest struct {
	Age       string `json:"age" yaml:"age" binding:"required"`
	RetireAge string `json:"retireAge" yaml:"retireAge" binding:"required"`
	Salary    string `json:"salary" yaml:"salary" binding:"required"`   // lakhs per year
	Savings   string `json:"savings" yaml:"savings" binding:"required"` // lakhs
	Notes     string `json:"notes,omitempty" yaml:"notes"`
}

// InsuranceRequest is the insurance cover form
type InsuranceRequest struct {
	Age          string `json:"age" yaml:"age" binding:"required"`
	AnnualIncome string `json:"annualIncome" yaml:"annualIncome" binding:"required"`
	Dependents   string `json:"dependents" yaml:"dependents" binding:"required"`
	Liabilities  string `json:"liabilities" yaml:"liabilities" binding:"required"`
	Notes        string `json:"notes,omitempty" yaml:"notes"`
}

// InvestmentRequest is the investment recommender form
type InvestmentRequest struct {
	Amount   string `json:"amount" yaml:"amount" binding:"required"`
	Duration string `json:"duration" yaml:"duration" binding:"required"`
	Risk     string `json:"risk" yaml:"risk"`
	Notes    string `json:"notes,omitempty" yaml:"notes"`
}

// LoanRequest is the loan advisor form
type LoanRequest struct {
	LoanAmount   string `json:"loanAmount" yaml:"loanAmount" binding:"required"`
	InterestRate string `json:"interestRate" yaml:"interestRate" binding:"required"`
	LoanTenure   string `json:"loanTenure" yaml:"loanTenure" binding:"required"`
	Notes        string `json:"notes,omitempty" yaml:"notes"`
}

// AdviceKind identifies one of the advisory prompts.
type AdviceKind string

const (
	AdviceTax        AdviceKind = "tax"
	AdviceRetirement AdviceKind = "retirement"
	AdviceInsurance  AdviceKind = "insurance"
	AdviceInvestment AdviceKind = "investment"
	AdviceLoan       AdviceKind = "loan"
	AdviceExtract    AdviceKind = "extract"
)
