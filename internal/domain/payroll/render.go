package payroll

import (
	"strings"

	"paydesk/internal/domain/money"
)

// RenderText produces the fixed plain-text payslip. Label wording and line
// order are a user-visible contract: auditors diff printed payslips, so any
// change here is a breaking one.
func RenderText(slip Payslip) string {
	b := slip.Breakdown
	lines := []string{
		"--- PAYSLIP ---",
		"Employee Code: " + slip.EmpCode,
		"Name: " + slip.Name,
		"Designation: " + slip.Designation,
		"Month: " + slip.Month,
		"",
		"Basic: " + money.Format(b.Basic),
		"HRA: " + money.Format(b.HRA),
		"DA: " + money.Format(b.DA),
		"Other Allowances: " + money.Format(b.OtherAllowances),
		"Gross Salary: " + money.Format(b.Gross),
		"",
		"Deductions:",
		"PF: " + money.Format(b.PF),
		"Tax: " + money.Format(b.Tax),
		"Total Deductions: " + money.Format(b.TotalDeductions),
		"",
		"NET PAY: " + money.Format(b.Net),
	}
	return strings.Join(lines, "\n")
}
