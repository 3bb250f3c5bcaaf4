package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/planillapro/planilla-backend-go/internal/domain/contract"
	"github.com/planillapro/planilla-backend-go/internal/pkg/database"
)

type contractRepository struct {
	db *database.DB
}

func NewContractRepository(db *database.DB) contract.ContractRepository {
	return &contractRepository{db: db}
}

// Suspension ranges are stored as a jsonb array on the contract row.
func scanSuspensions(raw []byte) ([]contract.SuspensionPeriod, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var suspensions []contract.SuspensionPeriod
	if err := json.Unmarshal(raw, &suspensions); err != nil {
		return nil, fmt.Errorf("failed to decode suspensions: %w", err)
	}
	return suspensions, nil
}

func (r *contractRepository) Create(ctx context.Context, c contract.Contract) (contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO contracts (employee_id, hire_date, accounting_salary, real_salary, frequency, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		c.EmployeeID, c.HireDate, c.AccountingSalary, c.RealSalary, c.Frequency, c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return contract.Contract{}, fmt.Errorf("failed to create contract: %w", err)
	}

	return c, nil
}

func (r *contractRepository) GetByID(ctx context.Context, id string) (contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, hire_date, accounting_salary, real_salary, frequency, status,
			   termination_date, termination_reason, suspensions, created_at, updated_at
		FROM contracts
		WHERE id = $1
	`

	var c contract.Contract
	var suspensions []byte
	err := q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.EmployeeID, &c.HireDate, &c.AccountingSalary, &c.RealSalary,
		&c.Frequency, &c.Status, &c.TerminationDate, &c.TerminationReason,
		&suspensions, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return contract.Contract{}, contract.ErrContractNotFound
		}
		return contract.Contract{}, fmt.Errorf("failed to get contract: %w", err)
	}

	if c.Suspensions, err = scanSuspensions(suspensions); err != nil {
		return contract.Contract{}, err
	}
	return c, nil
}

func (r *contractRepository) GetActiveByEmployee(ctx context.Context, employeeID string) (contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, hire_date, accounting_salary, real_salary, frequency, status,
			   termination_date, termination_reason, suspensions, created_at, updated_at
		FROM contracts
		WHERE employee_id = $1 AND status = 'active'
	`

	var c contract.Contract
	var suspensions []byte
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&c.ID, &c.EmployeeID, &c.HireDate, &c.AccountingSalary, &c.RealSalary,
		&c.Frequency, &c.Status, &c.TerminationDate, &c.TerminationReason,
		&suspensions, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return contract.Contract{}, contract.ErrNoActiveContract
		}
		return contract.Contract{}, fmt.Errorf("failed to get active contract: %w", err)
	}

	if c.Suspensions, err = scanSuspensions(suspensions); err != nil {
		return contract.Contract{}, err
	}
	return c, nil
}

func (r *contractRepository) ListByEmployee(ctx context.Context, employeeID string) ([]contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, hire_date, accounting_salary, real_salary, frequency, status,
			   termination_date, termination_reason, suspensions, created_at, updated_at
		FROM contracts
		WHERE employee_id = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	defer rows.Close()

	var contracts []contract.Contract
	for rows.Next() {
		var c contract.Contract
		var suspensions []byte
		if err := rows.Scan(
			&c.ID, &c.EmployeeID, &c.HireDate, &c.AccountingSalary, &c.RealSalary,
			&c.Frequency, &c.Status, &c.TerminationDate, &c.TerminationReason,
			&suspensions, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		if c.Suspensions, err = scanSuspensions(suspensions); err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}

	return contracts, rows.Err()
}

func (r *contractRepository) TerminateActiveByEmployee(ctx context.Context, employeeID string, terminatedAt time.Time, reason string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE contracts
		SET status = 'terminated', termination_date = $2, termination_reason = $3, updated_at = NOW()
		WHERE employee_id = $1 AND status = 'active'
	`

	if _, err := q.Exec(ctx, query, employeeID, terminatedAt, reason); err != nil {
		return fmt.Errorf("failed to terminate active contracts: %w", err)
	}

	return nil
}

func (r *contractRepository) UpdateStatus(ctx context.Context, id string, status contract.ContractStatus, terminationDate *time.Time, reason *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE contracts
		SET status = $2, termination_date = $3, termination_reason = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, status, terminationDate, reason)
	if err != nil {
		return fmt.Errorf("failed to update contract status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return contract.ErrContractNotFound
	}

	return nil
}

func (r *contractRepository) AddSuspension(ctx context.Context, id string, p contract.SuspensionPeriod) error {
	q := GetQuerier(ctx, r.db)

	encoded, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode suspension: %w", err)
	}

	query := `
		UPDATE contracts
		SET suspensions = COALESCE(suspensions, '[]'::jsonb) || $2::jsonb, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, encoded)
	if err != nil {
		return fmt.Errorf("failed to add suspension: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return contract.ErrContractNotFound
	}

	return nil
}
