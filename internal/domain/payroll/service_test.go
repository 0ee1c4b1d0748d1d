package payroll

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"paydesk/internal/domain/money"
)

type fakeStore struct {
	employees []Employee
	payslips  []Payslip
	appendErr error
	nextID    int
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(tx StoreAPI) error) error {
	return fn(f)
}

func (f *fakeStore) CreateEmployee(ctx context.Context, emp Employee) (Employee, error) {
	for _, existing := range f.employees {
		if existing.Code == emp.Code {
			return Employee{}, ErrDuplicateEmployeeCode
		}
	}
	f.employees = append(f.employees, emp)
	return emp, nil
}

func (f *fakeStore) FindEmployeeByCode(ctx context.Context, code string) (*Employee, error) {
	for i := range f.employees {
		if f.employees[i].Code == code {
			emp := f.employees[i]
			return &emp, nil
		}
	}
	return nil, ErrEmployeeNotFound
}

func (f *fakeStore) ListEmployees(ctx context.Context) ([]Employee, error) {
	return f.employees, nil
}

func (f *fakeStore) UpdateEmployee(ctx context.Context, code string, patch EmployeePatch) (Employee, error) {
	for i := range f.employees {
		if f.employees[i].Code != code {
			continue
		}
		emp := &f.employees[i]
		if patch.Name != nil {
			emp.Name = *patch.Name
		}
		if patch.Designation != nil {
			emp.Designation = *patch.Designation
		}
		if patch.Basic != nil {
			emp.Basic = *patch.Basic
		}
		if patch.HRAPercent != nil {
			emp.HRAPercent = *patch.HRAPercent
		}
		if patch.DAPercent != nil {
			emp.DAPercent = *patch.DAPercent
		}
		if patch.OtherAllowances != nil {
			emp.OtherAllowances = *patch.OtherAllowances
		}
		return *emp, nil
	}
	return Employee{}, ErrEmployeeNotFound
}

func (f *fakeStore) DeleteEmployee(ctx context.Context, code string) error {
	for i := range f.employees {
		if f.employees[i].Code == code {
			f.employees = append(f.employees[:i], f.employees[i+1:]...)
			return nil
		}
	}
	return ErrEmployeeNotFound
}

func (f *fakeStore) AppendPayslip(ctx context.Context, slip Payslip) (string, error) {
	if f.appendErr != nil {
		return "", f.appendErr
	}
	f.nextID++
	slip.ID = "slip-" + strconv.Itoa(f.nextID)
	f.payslips = append(f.payslips, slip)
	return slip.ID, nil
}

func (f *fakeStore) GetPayslip(ctx context.Context, id string) (*Payslip, error) {
	for i := range f.payslips {
		if f.payslips[i].ID == id {
			slip := f.payslips[i]
			return &slip, nil
		}
	}
	return nil, ErrPayslipNotFound
}

func (f *fakeStore) ListPayslips(ctx context.Context) ([]Payslip, error) {
	return f.payslips, nil
}

func testEmployee() Employee {
	return Employee{
		ID:          "emp-1",
		Code:        "E001",
		Name:        "Asha Rao",
		Designation: "Engineer",
		Basic:       money.MustParse("30000"),
		HRAPercent:  money.MustParse("20"),
	}
}

func newTestService(store *fakeStore) *Service {
	svc := NewService(store, DefaultRules())
	svc.now = func() time.Time {
		return time.Date(2025, time.March, 14, 10, 30, 0, 0, time.UTC)
	}
	return svc
}

func TestComputePayAppendsToLedger(t *testing.T) {
	store := &fakeStore{employees: []Employee{testEmployee()}}
	svc := newTestService(store)

	slip, err := svc.ComputePay(context.Background(), "E001", "2025-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slip.Month != "2025-02" {
		t.Fatalf("month = %s, want 2025-02", slip.Month)
	}
	if money.Format(slip.Breakdown.Net) != "31850.00" {
		t.Fatalf("net = %s, want 31850.00", money.Format(slip.Breakdown.Net))
	}
	if len(store.payslips) != 1 {
		t.Fatalf("ledger rows = %d, want 1", len(store.payslips))
	}
	if store.payslips[0].EmployeeID != "emp-1" {
		t.Fatalf("employee id = %s, want emp-1", store.payslips[0].EmployeeID)
	}
}

func TestComputePayDefaultsMonth(t *testing.T) {
	store := &fakeStore{employees: []Employee{testEmployee()}}
	svc := newTestService(store)

	slip, err := svc.ComputePay(context.Background(), "E001", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slip.Month != "2025-03" {
		t.Fatalf("month = %s, want 2025-03", slip.Month)
	}
}

func TestComputePayUnknownEmployee(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	_, err := svc.ComputePay(context.Background(), "NOPE", "2025-02")
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("err = %v, want ErrEmployeeNotFound", err)
	}
	if len(store.payslips) != 0 {
		t.Fatalf("ledger rows = %d, want 0", len(store.payslips))
	}
}

func TestComputePayPersistenceFailure(t *testing.T) {
	persistErr := errors.New("connection reset")
	store := &fakeStore{employees: []Employee{testEmployee()}, appendErr: persistErr}
	svc := newTestService(store)

	slip, err := svc.ComputePay(context.Background(), "E001", "2025-02")
	if !errors.Is(err, persistErr) {
		t.Fatalf("err = %v, want wrapped persistence error", err)
	}
	if slip != nil {
		t.Fatal("expected no payslip on persistence failure")
	}
}

func TestComputePayAllowsDuplicateMonth(t *testing.T) {
	store := &fakeStore{employees: []Employee{testEmployee()}}
	svc := newTestService(store)

	for i := 0; i < 2; i++ {
		if _, err := svc.ComputePay(context.Background(), "E001", "2025-02"); err != nil {
			t.Fatalf("run %d: unexpected error: %v", i, err)
		}
	}
	if len(store.payslips) != 2 {
		t.Fatalf("ledger rows = %d, want 2", len(store.payslips))
	}
}

func TestUpdateEmployeeEmptyPatch(t *testing.T) {
	store := &fakeStore{employees: []Employee{testEmployee()}}
	svc := newTestService(store)

	_, err := svc.UpdateEmployee(context.Background(), "E001", EmployeePatch{})
	if !errors.Is(err, ErrNothingToUpdate) {
		t.Fatalf("err = %v, want ErrNothingToUpdate", err)
	}
}

func TestUpdateEmployeeKeepsUnsetFields(t *testing.T) {
	store := &fakeStore{employees: []Employee{testEmployee()}}
	svc := newTestService(store)

	newBasic := money.MustParse("45000")
	updated, err := svc.UpdateEmployee(context.Background(), "E001", EmployeePatch{Basic: &newBasic})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if money.Format(updated.Basic) != "45000.00" {
		t.Fatalf("basic = %s, want 45000.00", money.Format(updated.Basic))
	}
	if updated.Name != "Asha Rao" {
		t.Fatalf("name = %s, want unchanged", updated.Name)
	}
	if money.Format(updated.HRAPercent) != "20.00" {
		t.Fatalf("hra percent = %s, want unchanged", money.Format(updated.HRAPercent))
	}
}
