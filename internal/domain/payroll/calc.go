package payroll

import (
	"github.com/shopspring/decimal"

	"paydesk/internal/domain/money"
)

// Compute turns a profile into a monthly breakdown under the given rules.
// Every stage is rounded independently before feeding the next one; the
// repeated rounding is part of the observable contract, not an optimization
// target.
func Compute(emp Employee, rules Rules) Breakdown {
	basic := money.Round(emp.Basic)
	hra := money.Round(basic.Mul(emp.HRAPercent).Div(money.Hundred))
	da := money.Round(basic.Mul(emp.DAPercent).Div(money.Hundred))
	other := money.Round(emp.OtherAllowances)
	gross := money.Round(basic.Add(hra).Add(da).Add(other))

	pf := money.Round(basic.Mul(rules.PFPercent).Div(money.Hundred))

	annualGross := gross.Mul(money.Twelve)
	taxableAnnual := annualGross.Sub(rules.StandardDeduction)
	if taxableAnnual.IsNegative() {
		// The calculator's contract excludes negative income.
		taxableAnnual = decimal.Zero
	}
	annualTax := rules.calc.Annual(taxableAnnual)
	monthlyTax := money.Round(annualTax.Div(money.Twelve))

	totalDeductions := money.Round(pf.Add(monthlyTax))
	net := money.Round(gross.Sub(totalDeductions))

	return Breakdown{
		Basic:           basic,
		HRA:             hra,
		DA:              da,
		OtherAllowances: other,
		Gross:           gross,
		PF:              pf,
		Tax:             monthlyTax,
		TotalDeductions: totalDeductions,
		Net:             net,
	}
}
