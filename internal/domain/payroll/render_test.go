package payroll

import (
	"strings"
	"testing"

	"paydesk/internal/domain/money"
)

func TestRenderText(t *testing.T) {
	slip := Payslip{
		EmpCode:     "E001",
		Name:        "Asha Rao",
		Designation: "Engineer",
		Month:       "2025-02",
		Breakdown: Breakdown{
			Basic:           money.MustParse("30000"),
			HRA:             money.MustParse("6000"),
			DA:              money.MustParse("0"),
			OtherAllowances: money.MustParse("0"),
			Gross:           money.MustParse("36000"),
			PF:              money.MustParse("3600"),
			Tax:             money.MustParse("550"),
			TotalDeductions: money.MustParse("4150"),
			Net:             money.MustParse("31850"),
		},
	}

	want := strings.Join([]string{
		"--- PAYSLIP ---",
		"Employee Code: E001",
		"Name: Asha Rao",
		"Designation: Engineer",
		"Month: 2025-02",
		"",
		"Basic: 30000.00",
		"HRA: 6000.00",
		"DA: 0.00",
		"Other Allowances: 0.00",
		"Gross Salary: 36000.00",
		"",
		"Deductions:",
		"PF: 3600.00",
		"Tax: 550.00",
		"Total Deductions: 4150.00",
		"",
		"NET PAY: 31850.00",
	}, "\n")

	if got := RenderText(slip); got != want {
		t.Fatalf("payslip text mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}
