package payroll

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"paydesk/internal/domain/money"
)

// Monetary columns travel as text in both directions so no value ever
// passes through a binary float between Go and Postgres.

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	pool *pgxpool.Pool
	q    querier
	inTx bool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, q: pool}
}

func (s *Store) WithTx(ctx context.Context, fn func(tx StoreAPI) error) error {
	if s.inTx {
		return fn(s)
	}
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	txStore := &Store{pool: s.pool, q: tx, inTx: true}
	if err := fn(txStore); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

const employeeColumns = `
    id, emp_code, name, designation,
    basic::text, hra_percent::text, da_percent::text, other_allowances::text,
    created_at, updated_at`

func (s *Store) CreateEmployee(ctx context.Context, emp Employee) (Employee, error) {
	row := s.q.QueryRow(ctx, `
    INSERT INTO employees (emp_code, name, designation, basic, hra_percent, da_percent, other_allowances)
    VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6::numeric, $7::numeric)
    RETURNING`+employeeColumns,
		emp.Code, emp.Name, emp.Designation,
		emp.Basic.String(), emp.HRAPercent.String(), emp.DAPercent.String(), emp.OtherAllowances.String())

	created, err := scanEmployee(row)
	if err != nil {
		if isUniqueViolation(err) {
			return Employee{}, ErrDuplicateEmployeeCode
		}
		return Employee{}, fmt.Errorf("create employee: %w", err)
	}
	return *created, nil
}

func (s *Store) FindEmployeeByCode(ctx context.Context, code string) (*Employee, error) {
	row := s.q.QueryRow(ctx, `
    SELECT`+employeeColumns+`
    FROM employees
    WHERE emp_code = $1
  `, code)
	emp, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("find employee %s: %w", code, err)
	}
	return emp, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.q.Query(ctx, `
    SELECT`+employeeColumns+`
    FROM employees
    ORDER BY name, emp_code
  `)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("list employees: %w", err)
		}
		employees = append(employees, *emp)
	}
	return employees, rows.Err()
}

func (s *Store) UpdateEmployee(ctx context.Context, code string, patch EmployeePatch) (Employee, error) {
	if patch.Empty() {
		return Employee{}, ErrNothingToUpdate
	}

	sets := make([]string, 0, 6)
	args := make([]any, 0, 7)
	add := func(column, cast string, value any) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args))+cast)
	}
	if patch.Name != nil {
		add("name", "", *patch.Name)
	}
	if patch.Designation != nil {
		add("designation", "", *patch.Designation)
	}
	if patch.Basic != nil {
		add("basic", "::numeric", patch.Basic.String())
	}
	if patch.HRAPercent != nil {
		add("hra_percent", "::numeric", patch.HRAPercent.String())
	}
	if patch.DAPercent != nil {
		add("da_percent", "::numeric", patch.DAPercent.String())
	}
	if patch.OtherAllowances != nil {
		add("other_allowances", "::numeric", patch.OtherAllowances.String())
	}
	args = append(args, code)

	row := s.q.QueryRow(ctx, `
    UPDATE employees
    SET `+strings.Join(sets, ", ")+`, updated_at = now()
    WHERE emp_code = $`+strconv.Itoa(len(args))+`
    RETURNING`+employeeColumns, args...)

	emp, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Employee{}, ErrEmployeeNotFound
		}
		return Employee{}, fmt.Errorf("update employee %s: %w", code, err)
	}
	return *emp, nil
}

func (s *Store) DeleteEmployee(ctx context.Context, code string) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM employees WHERE emp_code = $1`, code)
	if err != nil {
		return fmt.Errorf("delete employee %s: %w", code, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

const payslipColumns = `
    id, COALESCE(employee_id::text, ''), emp_code, name, designation, month,
    basic::text, hra::text, da::text, other_allowances::text, gross_salary::text,
    pf::text, tax::text, total_deductions::text, net_salary::text,
    generated_on`

func (s *Store) AppendPayslip(ctx context.Context, slip Payslip) (string, error) {
	b := slip.Breakdown
	var id string
	err := s.q.QueryRow(ctx, `
    INSERT INTO payslips (
      employee_id, emp_code, name, designation, month,
      basic, hra, da, other_allowances, gross_salary,
      pf, tax, total_deductions, net_salary, generated_on
    ) VALUES (
      NULLIF($1, '')::uuid, $2, $3, $4, $5,
      $6::numeric, $7::numeric, $8::numeric, $9::numeric, $10::numeric,
      $11::numeric, $12::numeric, $13::numeric, $14::numeric, $15
    )
    RETURNING id
  `,
		slip.EmployeeID, slip.EmpCode, slip.Name, slip.Designation, slip.Month,
		b.Basic.String(), b.HRA.String(), b.DA.String(), b.OtherAllowances.String(), b.Gross.String(),
		b.PF.String(), b.Tax.String(), b.TotalDeductions.String(), b.Net.String(), slip.GeneratedOn).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("append payslip for %s: %w", slip.EmpCode, err)
	}
	return id, nil
}

func (s *Store) GetPayslip(ctx context.Context, id string) (*Payslip, error) {
	row := s.q.QueryRow(ctx, `
    SELECT`+payslipColumns+`
    FROM payslips
    WHERE id = $1
  `, id)
	slip, err := scanPayslip(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPayslipNotFound
		}
		return nil, fmt.Errorf("get payslip %s: %w", id, err)
	}
	return slip, nil
}

func (s *Store) ListPayslips(ctx context.Context) ([]Payslip, error) {
	rows, err := s.q.Query(ctx, `
    SELECT`+payslipColumns+`
    FROM payslips
    ORDER BY generated_on, id
  `)
	if err != nil {
		return nil, fmt.Errorf("list payslips: %w", err)
	}
	defer rows.Close()

	var slips []Payslip
	for rows.Next() {
		slip, err := scanPayslip(rows)
		if err != nil {
			return nil, fmt.Errorf("list payslips: %w", err)
		}
		slips = append(slips, *slip)
	}
	return slips, rows.Err()
}

func scanEmployee(row pgx.Row) (*Employee, error) {
	var emp Employee
	var basic, hra, da, other string
	if err := row.Scan(
		&emp.ID, &emp.Code, &emp.Name, &emp.Designation,
		&basic, &hra, &da, &other,
		&emp.CreatedAt, &emp.UpdatedAt,
	); err != nil {
		return nil, err
	}
	var err error
	if emp.Basic, err = money.Parse(basic); err != nil {
		return nil, err
	}
	if emp.HRAPercent, err = money.Parse(hra); err != nil {
		return nil, err
	}
	if emp.DAPercent, err = money.Parse(da); err != nil {
		return nil, err
	}
	if emp.OtherAllowances, err = money.Parse(other); err != nil {
		return nil, err
	}
	return &emp, nil
}

func scanPayslip(row pgx.Row) (*Payslip, error) {
	var slip Payslip
	var basic, hra, da, other, gross, pf, taxAmt, total, net string
	if err := row.Scan(
		&slip.ID, &slip.EmployeeID, &slip.EmpCode, &slip.Name, &slip.Designation, &slip.Month,
		&basic, &hra, &da, &other, &gross,
		&pf, &taxAmt, &total, &net,
		&slip.GeneratedOn,
	); err != nil {
		return nil, err
	}
	b := &slip.Breakdown
	for _, pair := range []struct {
		raw string
		dst *decimal.Decimal
	}{
		{basic, &b.Basic}, {hra, &b.HRA}, {da, &b.DA}, {other, &b.OtherAllowances},
		{gross, &b.Gross}, {pf, &b.PF}, {taxAmt, &b.Tax}, {total, &b.TotalDeductions}, {net, &b.Net},
	} {
		d, err := money.Parse(pair.raw)
		if err != nil {
			return nil, err
		}
		*pair.dst = d
	}
	return &slip, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
