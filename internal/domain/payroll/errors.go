package payroll

import "errors"

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrDuplicateEmployeeCode = errors.New("employee code already exists")
	ErrNothingToUpdate       = errors.New("no fields to update")
	ErrPayslipNotFound       = errors.New("payslip not found")
)
