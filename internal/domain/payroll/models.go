package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is a compensation profile, keyed by its unique code. Percent
// fields apply to Basic; OtherAllowances is a flat monthly amount.
type Employee struct {
	ID              string
	Code            string
	Name            string
	Designation     string
	Basic           decimal.Decimal
	HRAPercent      decimal.Decimal
	DAPercent       decimal.Decimal
	OtherAllowances decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EmployeePatch lists every updatable field; nil means "keep current value".
type EmployeePatch struct {
	Name            *string
	Designation     *string
	Basic           *decimal.Decimal
	HRAPercent      *decimal.Decimal
	DAPercent       *decimal.Decimal
	OtherAllowances *decimal.Decimal
}

func (p EmployeePatch) Empty() bool {
	return p.Name == nil && p.Designation == nil && p.Basic == nil &&
		p.HRAPercent == nil && p.DAPercent == nil && p.OtherAllowances == nil
}

// Breakdown is the result of one pay computation. Each field is already
// rounded to 2 decimals at its own stage, so gross = basic+hra+da+other,
// totalDeductions = pf+tax and net = gross-totalDeductions hold exactly.
type Breakdown struct {
	Basic           decimal.Decimal
	HRA             decimal.Decimal
	DA              decimal.Decimal
	OtherAllowances decimal.Decimal
	Gross           decimal.Decimal
	PF              decimal.Decimal
	Tax             decimal.Decimal
	TotalDeductions decimal.Decimal
	Net             decimal.Decimal
}

// Payslip is one append-only ledger row: a breakdown plus the employee
// identity it was computed from and the generation timestamp. Identity
// fields are copied so the row stays renderable if the profile is later
// deleted.
type Payslip struct {
	ID          string
	EmployeeID  string
	EmpCode     string
	Name        string
	Designation string
	Month       string
	Breakdown   Breakdown
	GeneratedOn time.Time
}
