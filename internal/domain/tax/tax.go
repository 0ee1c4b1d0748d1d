// Package tax implements the progressive slab schedule used for income tax.
// A schedule is immutable once built; alternate year or jurisdiction tables
// are supplied at construction rather than patched in place.
package tax

import (
	"fmt"

	"github.com/shopspring/decimal"

	"paydesk/internal/domain/money"
)

// Slab taxes the income portion between the previous slab's ceiling and its
// own ceiling at Rate. Rate is a fraction in [0,1].
type Slab struct {
	Ceiling decimal.Decimal
	Rate    decimal.Decimal
}

// DefaultSlabs is the annual schedule the original record keeper shipped
// with. The final ceiling acts as a catch-all for any realistic income.
func DefaultSlabs() []Slab {
	return []Slab{
		{Ceiling: decimal.NewFromInt(250000), Rate: decimal.Zero},
		{Ceiling: decimal.NewFromInt(500000), Rate: money.MustParse("0.05")},
		{Ceiling: decimal.NewFromInt(1000000), Rate: money.MustParse("0.20")},
		{Ceiling: decimal.NewFromInt(999999999), Rate: money.MustParse("0.30")},
	}
}

type Calculator struct {
	slabs []Slab
}

// NewCalculator validates that the schedule is non-empty with strictly
// ascending ceilings and rates in [0,1].
func NewCalculator(slabs []Slab) (*Calculator, error) {
	if len(slabs) == 0 {
		return nil, fmt.Errorf("tax: empty slab table")
	}
	prev := decimal.Zero
	one := decimal.NewFromInt(1)
	for i, slab := range slabs {
		if slab.Ceiling.LessThanOrEqual(prev) {
			return nil, fmt.Errorf("tax: slab %d ceiling %s not above previous %s", i, slab.Ceiling, prev)
		}
		if slab.Rate.IsNegative() || slab.Rate.GreaterThan(one) {
			return nil, fmt.Errorf("tax: slab %d rate %s outside [0,1]", i, slab.Rate)
		}
		prev = slab.Ceiling
	}
	owned := make([]Slab, len(slabs))
	copy(owned, slabs)
	return &Calculator{slabs: owned}, nil
}

// Annual computes the total annual tax on taxableIncome by applying each
// slab's marginal rate to the income falling inside that slab only. The
// caller must clamp negative incomes to zero before calling. The accumulated
// tax is rounded once on return.
func (c *Calculator) Annual(taxableIncome decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	prevLimit := decimal.Zero
	for _, slab := range c.slabs {
		portion := decimal.Min(slab.Ceiling, taxableIncome).Sub(prevLimit)
		if portion.Sign() <= 0 {
			prevLimit = slab.Ceiling
			continue
		}
		total = total.Add(portion.Mul(slab.Rate))
		prevLimit = slab.Ceiling
		if taxableIncome.LessThanOrEqual(slab.Ceiling) {
			break
		}
	}
	return money.Round(total)
}
