package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/planillapro/planilla-backend-go/internal/domain/employee"
	"github.com/planillapro/planilla-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (headquarters_id, employee_code, full_name, email, phone_number, bank_name, bank_account)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		e.HeadquartersID, e.EmployeeCode, e.FullName, e.Email, e.PhoneNumber, e.BankName, e.BankAccount,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "uk_employee_code") {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.headquarters_id, e.employee_code, e.full_name, e.email, e.phone_number,
			   e.bank_name, e.bank_account, e.created_at, e.updated_at, e.deleted_at, h.name
		FROM employees e
		LEFT JOIN headquarters h ON h.id = e.headquarters_id
		WHERE e.id = $1 AND e.deleted_at IS NULL
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.HeadquartersID, &e.EmployeeCode, &e.FullName, &e.Email, &e.PhoneNumber,
		&e.BankName, &e.BankAccount, &e.CreatedAt, &e.UpdatedAt, &e.DeletedAt, &e.HeadquartersName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.headquarters_id, e.employee_code, e.full_name, e.email, e.phone_number,
			   e.bank_name, e.bank_account, e.created_at, e.updated_at, e.deleted_at, h.name
		FROM employees e
		LEFT JOIN headquarters h ON h.id = e.headquarters_id
		WHERE e.deleted_at IS NULL
		ORDER BY e.full_name
	`

	return r.queryEmployees(ctx, q, query)
}

func (r *employeeRepository) ListWithActiveContract(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.headquarters_id, e.employee_code, e.full_name, e.email, e.phone_number,
			   e.bank_name, e.bank_account, e.created_at, e.updated_at, e.deleted_at, h.name
		FROM employees e
		LEFT JOIN headquarters h ON h.id = e.headquarters_id
		WHERE e.deleted_at IS NULL
		  AND EXISTS (SELECT 1 FROM contracts c WHERE c.employee_id = e.id AND c.status = 'active')
		ORDER BY e.full_name
	`

	return r.queryEmployees(ctx, q, query)
}

func (r *employeeRepository) queryEmployees(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]employee.Employee, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.ID, &e.HeadquartersID, &e.EmployeeCode, &e.FullName, &e.Email, &e.PhoneNumber,
			&e.BankName, &e.BankAccount, &e.CreatedAt, &e.UpdatedAt, &e.DeletedAt, &e.HeadquartersName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}
