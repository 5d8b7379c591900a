package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxSlab is one income bracket. Limit is the inclusive upper bound; the
// top slab of a table is Unbounded and its Limit is ignored.
type TaxSlab struct {
	Limit     decimal.Decimal `yaml:"limit" json:"limit"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
	Unbounded bool            `yaml:"unbounded" json:"unbounded"`
}

// SlabTable is an ordered set of slabs with strictly increasing limits
type SlabTable []TaxSlab

// SlabLine describes the portion of income taxed within one slab
type SlabLine struct {
	From   decimal.Decimal
	To     decimal.Decimal // zero for the unbounded slab
	Open   bool
	Amount decimal.Decimal
	Rate   decimal.Decimal
	Tax    decimal.Decimal
}

// NewRegimeSlabs returns the new-regime table for FY 2024-25
func NewRegimeSlabs() SlabTable {
	return SlabTable{
		{Limit: decimal.NewFromInt(300000), Rate: decimal.Zero},
		{Limit: decimal.NewFromInt(600000), Rate: decimal.RequireFromString("0.05")},
		{Limit: decimal.NewFromInt(900000), Rate: decimal.RequireFromString("0.10")},
		{Limit: decimal.NewFromInt(1200000), Rate: decimal.RequireFromString("0.15")},
		{Limit: decimal.NewFromInt(1500000), Rate: decimal.RequireFromString("0.20")},
		{Rate: decimal.RequireFromString("0.30"), Unbounded: true},
	}
}

// OldRegimeSlabs returns the old-regime table for FY 2024-25
func OldRegimeSlabs() SlabTable {
	return SlabTable{
		{Limit: decimal.NewFromInt(250000), Rate: decimal.Zero},
		{Limit: decimal.NewFromInt(500000), Rate: decimal.RequireFromString("0.05")},
		{Limit: decimal.NewFromInt(1000000), Rate: decimal.RequireFromString("0.20")},
		{Rate: decimal.RequireFromString("0.30"), Unbounded: true},
	}
}

// Validate checks ordering, rates and the unbounded top slab.
func (t SlabTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("slab table is empty")
	}
	last := decimal.Zero
	for i, slab := range t {
		if slab.Rate.IsNegative() || slab.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("slab %d: rate must be between 0 and 1", i)
		}
		if slab.Unbounded {
			if i != len(t)-1 {
				return fmt.Errorf("slab %d: only the last slab may be unbounded", i)
			}
			continue
		}
		if !slab.Limit.GreaterThan(last) {
			return fmt.Errorf("slab %d: limit %s must be greater than %s", i, slab.Limit, last)
		}
		last = slab.Limit
	}
	if !t[len(t)-1].Unbounded {
		return fmt.Errorf("last slab must be unbounded")
	}
	return nil
}

// Apply computes the unrounded slab tax on income. Each slab consumes
// min(remaining, limit-lastLimit) in ascending order; the unbounded slab
// takes whatever remains.
func (t SlabTable) Apply(income decimal.Decimal) decimal.Decimal {
	tax := decimal.Zero
	for _, line := range t.Breakdown(income) {
		tax = tax.Add(line.Tax)
	}
	return tax
}

// Breakdown returns the per-slab lines that make up Apply(income).
// Slabs that receive no income are omitted.
func (t SlabTable) Breakdown(income decimal.Decimal) []SlabLine {
	var lines []SlabLine
	remaining := income
	lastLimit := decimal.Zero
	for _, slab := range t {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		inSlab := remaining
		if !slab.Unbounded {
			inSlab = decimal.Min(remaining, slab.Limit.Sub(lastLimit))
		}
		line := SlabLine{
			From:   lastLimit,
			Open:   slab.Unbounded,
			Amount: inSlab,
			Rate:   slab.Rate,
			Tax:    inSlab.Mul(slab.Rate),
		}
		if !slab.Unbounded {
			line.To = slab.Limit
		}
		lines = append(lines, line)
		remaining = remaining.Sub(inSlab)
		lastLimit = slab.Limit
	}
	return lines
}
