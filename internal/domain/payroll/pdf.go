package payroll

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"paydesk/internal/domain/money"
)

// RenderPDF builds a one-page payslip PDF mirroring the plain-text layout.
func RenderPDF(slip Payslip) ([]byte, error) {
	b := slip.Breakdown

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	line := func(text string) {
		pdf.Cell(0, 8, text)
		pdf.Ln(7)
	}
	line(fmt.Sprintf("Employee Code: %s", slip.EmpCode))
	line(fmt.Sprintf("Name: %s", slip.Name))
	line(fmt.Sprintf("Designation: %s", slip.Designation))
	line(fmt.Sprintf("Month: %s", slip.Month))
	pdf.Ln(3)

	line(fmt.Sprintf("Basic: %s", money.Format(b.Basic)))
	line(fmt.Sprintf("HRA: %s", money.Format(b.HRA)))
	line(fmt.Sprintf("DA: %s", money.Format(b.DA)))
	line(fmt.Sprintf("Other Allowances: %s", money.Format(b.OtherAllowances)))
	line(fmt.Sprintf("Gross Salary: %s", money.Format(b.Gross)))
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	line("Deductions")
	pdf.SetFont("Helvetica", "", 12)
	line(fmt.Sprintf("PF: %s", money.Format(b.PF)))
	line(fmt.Sprintf("Tax: %s", money.Format(b.Tax)))
	line(fmt.Sprintf("Total Deductions: %s", money.Format(b.TotalDeductions)))
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 13)
	line(fmt.Sprintf("NET PAY: %s", money.Format(b.Net)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payslip pdf: %w", err)
	}
	return buf.Bytes(), nil
}
