package payroll

import "context"

// StoreAPI is the persistence contract the service runs against: the
// employee directory plus the append-only payslip ledger. WithTx runs fn
// against a transactional view of the same store; the pay computation uses
// it so a concurrently deleted employee can never leave a dangling ledger
// row.
type StoreAPI interface {
	WithTx(ctx context.Context, fn func(tx StoreAPI) error) error

	CreateEmployee(ctx context.Context, emp Employee) (Employee, error)
	FindEmployeeByCode(ctx context.Context, code string) (*Employee, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
	UpdateEmployee(ctx context.Context, code string, patch EmployeePatch) (Employee, error)
	DeleteEmployee(ctx context.Context, code string) error

	AppendPayslip(ctx context.Context, slip Payslip) (string, error)
	GetPayslip(ctx context.Context, id string) (*Payslip, error)
	ListPayslips(ctx context.Context) ([]Payslip, error)
}
