package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"

	"paydesk/internal/domain/money"
	"paydesk/internal/domain/tax"
)

// Rules is the injectable pay policy: the flat PF contribution percent on
// basic, the annual standard deduction, and the progressive tax schedule.
type Rules struct {
	PFPercent         decimal.Decimal
	StandardDeduction decimal.Decimal
	calc              *tax.Calculator
}

func NewRules(pfPercent, standardDeduction decimal.Decimal, slabs []tax.Slab) (Rules, error) {
	if pfPercent.IsNegative() {
		return Rules{}, fmt.Errorf("payroll: pf percent %s is negative", pfPercent)
	}
	if standardDeduction.IsNegative() {
		return Rules{}, fmt.Errorf("payroll: standard deduction %s is negative", standardDeduction)
	}
	calc, err := tax.NewCalculator(slabs)
	if err != nil {
		return Rules{}, err
	}
	return Rules{PFPercent: pfPercent, StandardDeduction: standardDeduction, calc: calc}, nil
}

// DefaultRules matches the original record keeper: 12% PF on basic and a
// 50000 annual standard deduction over the default slab table.
func DefaultRules() Rules {
	rules, err := NewRules(money.MustParse("12"), decimal.NewFromInt(50000), tax.DefaultSlabs())
	if err != nil {
		panic(err)
	}
	return rules
}
