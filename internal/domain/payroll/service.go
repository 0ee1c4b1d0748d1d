package payroll

import (
	"context"
	"time"
)

// MonthFormat is the year-month layout a payslip is keyed by.
const MonthFormat = "2006-01"

// Service owns the pay computation pipeline and fronts the directory and
// ledger stores. Two payslips for the same employee and month are allowed;
// the ledger is append-only and the clerk decides whether to regenerate.
type Service struct {
	store StoreAPI
	rules Rules
	now   func() time.Time
}

func NewService(store StoreAPI, rules Rules) *Service {
	return &Service{store: store, rules: rules, now: time.Now}
}

func (s *Service) AddEmployee(ctx context.Context, emp Employee) (Employee, error) {
	return s.store.CreateEmployee(ctx, emp)
}

func (s *Service) GetEmployee(ctx context.Context, code string) (*Employee, error) {
	return s.store.FindEmployeeByCode(ctx, code)
}

func (s *Service) ListEmployees(ctx context.Context) ([]Employee, error) {
	return s.store.ListEmployees(ctx)
}

// UpdateEmployee applies a partial update; unset patch fields keep their
// stored value. An all-nil patch is reported as ErrNothingToUpdate instead
// of silently succeeding.
func (s *Service) UpdateEmployee(ctx context.Context, code string, patch EmployeePatch) (Employee, error) {
	if patch.Empty() {
		return Employee{}, ErrNothingToUpdate
	}
	return s.store.UpdateEmployee(ctx, code, patch)
}

func (s *Service) DeleteEmployee(ctx context.Context, code string) error {
	return s.store.DeleteEmployee(ctx, code)
}

// ComputePay generates the payslip for one employee and month and appends
// it to the ledger. Lookup and append run in a single transaction so a
// concurrent delete cannot strand a ledger row against a vanished profile.
// The month string is used verbatim; an empty month defaults to the current
// calendar year-month.
func (s *Service) ComputePay(ctx context.Context, code, month string) (*Payslip, error) {
	if month == "" {
		month = s.now().Format(MonthFormat)
	}

	var slip Payslip
	err := s.store.WithTx(ctx, func(tx StoreAPI) error {
		emp, err := tx.FindEmployeeByCode(ctx, code)
		if err != nil {
			return err
		}
		slip = Payslip{
			EmployeeID:  emp.ID,
			EmpCode:     emp.Code,
			Name:        emp.Name,
			Designation: emp.Designation,
			Month:       month,
			Breakdown:   Compute(*emp, s.rules),
			GeneratedOn: s.now().UTC(),
		}
		id, err := tx.AppendPayslip(ctx, slip)
		if err != nil {
			return err
		}
		slip.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &slip, nil
}

func (s *Service) GetPayslip(ctx context.Context, id string) (*Payslip, error) {
	return s.store.GetPayslip(ctx, id)
}

// ListPayslips returns the ledger in generation order.
func (s *Service) ListPayslips(ctx context.Context) ([]Payslip, error) {
	return s.store.ListPayslips(ctx)
}
