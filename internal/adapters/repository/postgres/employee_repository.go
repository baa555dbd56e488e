package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/ogurasousui/codex-rest-clean-arch/internal/core/employee"
	pgdb "github.com/ogurasousui/codex-rest-clean-arch/internal/platform/db/postgres"
)

// EmployeeRepository は PostgreSQL を利用した社員永続化の実装です。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// FindAll は全社員を取得します。並び順は識別子の昇順です。
func (r *EmployeeRepository) FindAll(ctx context.Context) ([]*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT id, employee_name, department_code, salary
          FROM employees
         ORDER BY id
    `)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	defer rows.Close()

	employees := make([]*employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, translateEmployeePgError(err)
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, translateEmployeePgError(err)
	}

	return employees, nil
}

// FindByID は識別子で社員を取得します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, employee_name, department_code, salary
          FROM employees
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return found, nil
}

// Save は社員を保存します。識別子が未採番の場合は INSERT で採番し、
// 採番済みの場合は UPDATE します。採番済みでも行が存在しなければ
// ErrEmployeeNotFound を返します。
func (r *EmployeeRepository) Save(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	var row pgx.Row
	if e.ID == 0 {
		row = exec.QueryRow(ctx, `
        INSERT INTO employees (employee_name, department_code, salary)
        VALUES ($1, $2, $3)
        RETURNING id, employee_name, department_code, salary
    `, e.Name, e.DepartmentCode, e.Salary)
	} else {
		row = exec.QueryRow(ctx, `
        UPDATE employees
           SET employee_name = $1,
               department_code = $2,
               salary = $3
         WHERE id = $4
        RETURNING id, employee_name, department_code, salary
    `, e.Name, e.DepartmentCode, e.Salary, e.ID)
	}

	saved, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return saved, nil
}

// Delete は社員を削除します。対象が存在しない場合は ErrEmployeeNotFound を返します。
func (r *EmployeeRepository) Delete(ctx context.Context, e *employee.Employee) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM employees WHERE id = $1`, e.ID)
	if err != nil {
		return translateEmployeePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var (
		id             int64
		name           string
		departmentCode string
		salary         float64
	)

	if err := row.Scan(&id, &name, &departmentCode, &salary); err != nil {
		return nil, err
	}

	return &employee.Employee{
		ID:             id,
		Name:           name,
		DepartmentCode: departmentCode,
		Salary:         salary,
	}, nil
}

func translateEmployeePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrEmployeeNotFound
	}
	return err
}
