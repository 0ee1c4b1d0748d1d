package payroll

import (
	"testing"

	"paydesk/internal/domain/money"
)

func TestComputeStandardScenario(t *testing.T) {
	emp := Employee{
		Code:            "E001",
		Name:            "Asha Rao",
		Designation:     "Engineer",
		Basic:           money.MustParse("30000"),
		HRAPercent:      money.MustParse("20"),
		DAPercent:       money.MustParse("0"),
		OtherAllowances: money.MustParse("0"),
	}

	b := Compute(emp, DefaultRules())

	checks := []struct {
		field string
		got   string
		want  string
	}{
		{"basic", money.Format(b.Basic), "30000.00"},
		{"hra", money.Format(b.HRA), "6000.00"},
		{"da", money.Format(b.DA), "0.00"},
		{"gross", money.Format(b.Gross), "36000.00"},
		{"pf", money.Format(b.PF), "3600.00"},
		{"tax", money.Format(b.Tax), "550.00"},
		{"total deductions", money.Format(b.TotalDeductions), "4150.00"},
		{"net", money.Format(b.Net), "31850.00"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %s, want %s", c.field, c.got, c.want)
		}
	}
}

func TestComputeZeroSalary(t *testing.T) {
	emp := Employee{
		Code:  "E000",
		Basic: money.MustParse("0"),
	}

	b := Compute(emp, DefaultRules())

	if !b.Gross.IsZero() {
		t.Fatalf("gross = %s, want 0", b.Gross)
	}
	if !b.PF.IsZero() {
		t.Fatalf("pf = %s, want 0", b.PF)
	}
	if !b.Tax.IsZero() {
		t.Fatalf("tax = %s, want 0", b.Tax)
	}
	if b.Net.IsNegative() {
		t.Fatalf("net = %s, want non-negative", b.Net)
	}
}

func TestComputeInvariants(t *testing.T) {
	tests := []struct {
		name                  string
		basic, hra, da, other string
	}{
		{name: "fractional percents", basic: "12345.67", hra: "17.5", da: "8.25", other: "999.99"},
		{name: "high earner", basic: "250000", hra: "40", da: "10", other: "15000"},
		{name: "tiny salary", basic: "0.01", hra: "20", da: "0", other: "0"},
		{name: "odd cents", basic: "30000.05", hra: "20", da: "3.33", other: "1.01"},
	}

	rules := DefaultRules()
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			emp := Employee{
				Basic:           money.MustParse(tc.basic),
				HRAPercent:      money.MustParse(tc.hra),
				DAPercent:       money.MustParse(tc.da),
				OtherAllowances: money.MustParse(tc.other),
			}
			b := Compute(emp, rules)

			gross := b.Basic.Add(b.HRA).Add(b.DA).Add(b.OtherAllowances)
			if !b.Gross.Equal(gross) {
				t.Errorf("gross %s != basic+hra+da+other %s", b.Gross, gross)
			}
			deductions := b.PF.Add(b.Tax)
			if !b.TotalDeductions.Equal(deductions) {
				t.Errorf("total deductions %s != pf+tax %s", b.TotalDeductions, deductions)
			}
			net := b.Gross.Sub(b.TotalDeductions)
			if !b.Net.Equal(net) {
				t.Errorf("net %s != gross-deductions %s", b.Net, net)
			}
			if b.Basic.Exponent() < -2 || b.Net.Exponent() < -2 {
				t.Errorf("breakdown carries more than 2 fractional digits: %+v", b)
			}
		})
	}
}

func TestComputeNegativeTaxableClampsToZero(t *testing.T) {
	// Annual gross below the standard deduction must never hand a negative
	// income to the tax schedule.
	emp := Employee{Basic: money.MustParse("1000")}
	b := Compute(emp, DefaultRules())
	if !b.Tax.IsZero() {
		t.Fatalf("tax = %s, want 0", b.Tax)
	}
	if money.Format(b.Net) != "880.00" {
		t.Fatalf("net = %s, want 880.00", money.Format(b.Net))
	}
}
