package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Slab rates and rebate limits for FY 2024-25 (AY 2025-26)",
	"Section 87A rebate applied as a cliff: no marginal relief above the limit",
	"Health & Education Cess at 4% of income tax",
	"Surcharge (income above ₹50,00,000) is not modelled",
	"80D and HRA exemption taken as declared; only 80C is capped",
}
