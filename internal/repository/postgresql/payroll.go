package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/planillapro/planilla-backend-go/internal/domain/payroll"
	"github.com/planillapro/planilla-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== PAYROLL MONTHS ==========

func (r *payrollRepository) CreatePayroll(ctx context.Context, p payroll.PayRoll) (payroll.PayRoll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payrolls (employee_id, period_year, period_month, accounting_salary, real_salary,
			status, period_start, period_end, loan_id, campaign_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, employee_id, period_year, period_month, accounting_salary, real_salary,
			status, period_start, period_end, loan_id, campaign_id, created_at, updated_at
	`

	var created payroll.PayRoll
	err := q.QueryRow(ctx, query,
		p.EmployeeID, p.PeriodYear, p.PeriodMonth, p.AccountingSalary, p.RealSalary,
		p.Status, p.PeriodStart, p.PeriodEnd, p.LoanID, p.CampaignID,
	).Scan(
		&created.ID, &created.EmployeeID, &created.PeriodYear, &created.PeriodMonth,
		&created.AccountingSalary, &created.RealSalary, &created.Status,
		&created.PeriodStart, &created.PeriodEnd, &created.LoanID, &created.CampaignID,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_employee_period") {
			return payroll.PayRoll{}, payroll.ErrPayrollAlreadyExists
		}
		return payroll.PayRoll{}, fmt.Errorf("failed to create payroll: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) GetPayrollByID(ctx context.Context, id string) (payroll.PayRoll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.employee_id, p.period_year, p.period_month, p.accounting_salary, p.real_salary,
			   p.status, p.period_start, p.period_end, p.loan_id, p.campaign_id,
			   p.created_at, p.updated_at, e.full_name
		FROM payrolls p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1
	`

	var p payroll.PayRoll
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.EmployeeID, &p.PeriodYear, &p.PeriodMonth, &p.AccountingSalary, &p.RealSalary,
		&p.Status, &p.PeriodStart, &p.PeriodEnd, &p.LoanID, &p.CampaignID,
		&p.CreatedAt, &p.UpdatedAt, &p.EmployeeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayRoll{}, payroll.ErrPayrollNotFound
		}
		return payroll.PayRoll{}, fmt.Errorf("failed to get payroll: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) GetPayrollByEmployeePeriod(ctx context.Context, employeeID string, year, month int) (payroll.PayRoll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, period_year, period_month, accounting_salary, real_salary,
			   status, period_start, period_end, loan_id, campaign_id, created_at, updated_at
		FROM payrolls
		WHERE employee_id = $1 AND period_year = $2 AND period_month = $3
	`

	var p payroll.PayRoll
	err := q.QueryRow(ctx, query, employeeID, year, month).Scan(
		&p.ID, &p.EmployeeID, &p.PeriodYear, &p.PeriodMonth, &p.AccountingSalary, &p.RealSalary,
		&p.Status, &p.PeriodStart, &p.PeriodEnd, &p.LoanID, &p.CampaignID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayRoll{}, payroll.ErrPayrollNotFound
		}
		return payroll.PayRoll{}, fmt.Errorf("failed to get payroll by period: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) ListPayrollsByPeriod(ctx context.Context, year, month int) ([]payroll.PayRoll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.employee_id, p.period_year, p.period_month, p.accounting_salary, p.real_salary,
			   p.status, p.period_start, p.period_end, p.loan_id, p.campaign_id,
			   p.created_at, p.updated_at, e.full_name
		FROM payrolls p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE p.period_year = $1 AND p.period_month = $2
		ORDER BY e.full_name
	`

	rows, err := q.Query(ctx, query, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list payrolls: %w", err)
	}
	defer rows.Close()

	var payrolls []payroll.PayRoll
	for rows.Next() {
		var p payroll.PayRoll
		if err := rows.Scan(
			&p.ID, &p.EmployeeID, &p.PeriodYear, &p.PeriodMonth, &p.AccountingSalary, &p.RealSalary,
			&p.Status, &p.PeriodStart, &p.PeriodEnd, &p.LoanID, &p.CampaignID,
			&p.CreatedAt, &p.UpdatedAt, &p.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll: %w", err)
		}
		payrolls = append(payrolls, p)
	}

	return payrolls, rows.Err()
}

func (r *payrollRepository) UpdatePayrollStatus(ctx context.Context, id string, status payroll.PayrollStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE payrolls SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update payroll status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollNotFound
	}

	return nil
}

// ========== BIWEEKLY PAYMENTS ==========

func (r *payrollRepository) UpsertBiweeklyPayment(ctx context.Context, bp payroll.BiweeklyPayment) (payroll.BiweeklyPayment, error) {
	q := GetQuerier(ctx, r.db)

	// Serialize concurrent regeneration of the same payroll: the parent row
	// is locked for the duration of the surrounding transaction.
	if _, err := q.Exec(ctx, `SELECT id FROM payrolls WHERE id = $1 FOR UPDATE`, bp.PayrollID); err != nil {
		return payroll.BiweeklyPayment{}, fmt.Errorf("failed to lock payroll: %w", err)
	}

	query := `
		INSERT INTO biweekly_payments (payroll_id, number, settlement_date, accounting_amount,
			real_amount, total_discounts, total_additionals, worked_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (payroll_id, number) DO UPDATE SET
			settlement_date = EXCLUDED.settlement_date,
			accounting_amount = EXCLUDED.accounting_amount,
			real_amount = EXCLUDED.real_amount,
			total_discounts = EXCLUDED.total_discounts,
			total_additionals = EXCLUDED.total_additionals,
			worked_days = EXCLUDED.worked_days,
			updated_at = NOW()
		RETURNING id, payroll_id, number, settlement_date, accounting_amount, real_amount,
			total_discounts, total_additionals, worked_days, created_at, updated_at
	`

	var stored payroll.BiweeklyPayment
	err := q.QueryRow(ctx, query,
		bp.PayrollID, bp.Number, bp.SettlementDate, bp.AccountingAmount,
		bp.RealAmount, bp.TotalDiscounts, bp.TotalAdditionals, bp.WorkedDays,
	).Scan(
		&stored.ID, &stored.PayrollID, &stored.Number, &stored.SettlementDate,
		&stored.AccountingAmount, &stored.RealAmount, &stored.TotalDiscounts,
		&stored.TotalAdditionals, &stored.WorkedDays, &stored.CreatedAt, &stored.UpdatedAt,
	)
	if err != nil {
		return payroll.BiweeklyPayment{}, fmt.Errorf("failed to upsert biweekly payment: %w", err)
	}

	return stored, nil
}

func (r *payrollRepository) GetBiweeklyPaymentByID(ctx context.Context, id string) (payroll.BiweeklyPayment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, payroll_id, number, settlement_date, accounting_amount, real_amount,
			   total_discounts, total_additionals, worked_days, created_at, updated_at
		FROM biweekly_payments
		WHERE id = $1
	`

	var bp payroll.BiweeklyPayment
	err := q.QueryRow(ctx, query, id).Scan(
		&bp.ID, &bp.PayrollID, &bp.Number, &bp.SettlementDate, &bp.AccountingAmount,
		&bp.RealAmount, &bp.TotalDiscounts, &bp.TotalAdditionals, &bp.WorkedDays,
		&bp.CreatedAt, &bp.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.BiweeklyPayment{}, payroll.ErrBiweeklyPaymentNotFound
		}
		return payroll.BiweeklyPayment{}, fmt.Errorf("failed to get biweekly payment: %w", err)
	}

	return bp, nil
}

func (r *payrollRepository) GetBiweeklyPayments(ctx context.Context, payrollID string) ([]payroll.BiweeklyPayment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, payroll_id, number, settlement_date, accounting_amount, real_amount,
			   total_discounts, total_additionals, worked_days, created_at, updated_at
		FROM biweekly_payments
		WHERE payroll_id = $1
		ORDER BY number
	`

	rows, err := q.Query(ctx, query, payrollID)
	if err != nil {
		return nil, fmt.Errorf("failed to list biweekly payments: %w", err)
	}
	defer rows.Close()

	var payments []payroll.BiweeklyPayment
	for rows.Next() {
		var bp payroll.BiweeklyPayment
		if err := rows.Scan(
			&bp.ID, &bp.PayrollID, &bp.Number, &bp.SettlementDate, &bp.AccountingAmount,
			&bp.RealAmount, &bp.TotalDiscounts, &bp.TotalAdditionals, &bp.WorkedDays,
			&bp.CreatedAt, &bp.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan biweekly payment: %w", err)
		}
		payments = append(payments, bp)
	}

	return payments, rows.Err()
}

func (r *payrollRepository) DeleteBiweeklyPayment(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM biweekly_payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete biweekly payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrBiweeklyPaymentNotFound
	}

	return nil
}

// ========== ADDITIONAL PAYMENTS ==========

func (r *payrollRepository) CreateAdditional(ctx context.Context, a payroll.AdditionalPayment) (payroll.AdditionalPayment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO additional_payments (payroll_id, description, amount, quantity, biweekly, pay_card)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, payroll_id, description, amount, quantity, biweekly, pay_card, created_at, updated_at
	`

	var created payroll.AdditionalPayment
	err := q.QueryRow(ctx, query,
		a.PayrollID, a.Description, a.Amount, a.Quantity, a.Biweekly, a.PayCard,
	).Scan(
		&created.ID, &created.PayrollID, &created.Description, &created.Amount,
		&created.Quantity, &created.Biweekly, &created.PayCard, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return payroll.AdditionalPayment{}, fmt.Errorf("failed to create additional payment: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) GetAdditionalByID(ctx context.Context, id string) (payroll.AdditionalPayment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, payroll_id, description, amount, quantity, biweekly, pay_card, created_at, updated_at
		FROM additional_payments
		WHERE id = $1
	`

	var a payroll.AdditionalPayment
	err := q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.PayrollID, &a.Description, &a.Amount, &a.Quantity, &a.Biweekly,
		&a.PayCard, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.AdditionalPayment{}, payroll.ErrAdditionalNotFound
		}
		return payroll.AdditionalPayment{}, fmt.Errorf("failed to get additional payment: %w", err)
	}

	return a, nil
}

func (r *payrollRepository) ListAdditionals(ctx context.Context, payrollID string) ([]payroll.AdditionalPayment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, payroll_id, description, amount, quantity, biweekly, pay_card, created_at, updated_at
		FROM additional_payments
		WHERE payroll_id = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, payrollID)
	if err != nil {
		return nil, fmt.Errorf("failed to list additional payments: %w", err)
	}
	defer rows.Close()

	var additionals []payroll.AdditionalPayment
	for rows.Next() {
		var a payroll.AdditionalPayment
		if err := rows.Scan(
			&a.ID, &a.PayrollID, &a.Description, &a.Amount, &a.Quantity, &a.Biweekly,
			&a.PayCard, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan additional payment: %w", err)
		}
		additionals = append(additionals, a)
	}

	return additionals, rows.Err()
}

func (r *payrollRepository) UpdateAdditional(ctx context.Context, a payroll.AdditionalPayment) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE additional_payments
		SET description = $2, amount = $3, quantity = $4, biweekly = $5, pay_card = $6, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, a.ID, a.Description, a.Amount, a.Quantity, a.Biweekly, a.PayCard)
	if err != nil {
		return fmt.Errorf("failed to update additional payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrAdditionalNotFound
	}

	return nil
}

func (r *payrollRepository) DeleteAdditional(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM additional_payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete additional payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrAdditionalNotFound
	}

	return nil
}

// ========== DISCOUNT PAYMENTS ==========

func (r *payrollRepository) CreateDiscount(ctx context.Context, d payroll.DiscountPayment) (payroll.DiscountPayment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO discount_payments (payroll_id, description, amount, quantity, biweekly, pay_card,
			is_advance, advance_date, deducted_in_biweekly_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, payroll_id, description, amount, quantity, biweekly, pay_card,
			is_advance, advance_date, deducted_in_biweekly_id, created_at, updated_at
	`

	var created payroll.DiscountPayment
	err := q.QueryRow(ctx, query,
		d.PayrollID, d.Description, d.Amount, d.Quantity, d.Biweekly, d.PayCard,
		d.IsAdvance, d.AdvanceDate, d.DeductedInBiweeklyID,
	).Scan(
		&created.ID, &created.PayrollID, &created.Description, &created.Amount,
		&created.Quantity, &created.Biweekly, &created.PayCard, &created.IsAdvance,
		&created.AdvanceDate, &created.DeductedInBiweeklyID, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return payroll.DiscountPayment{}, fmt.Errorf("failed to create discount payment: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) GetDiscountByID(ctx context.Context, id string) (payroll.DiscountPayment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, payroll_id, description, amount, quantity, biweekly, pay_card,
			   is_advance, advance_date, deducted_in_biweekly_id, created_at, updated_at
		FROM discount_payments
		WHERE id = $1
	`

	var d payroll.DiscountPayment
	err := q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.PayrollID, &d.Description, &d.Amount, &d.Quantity, &d.Biweekly,
		&d.PayCard, &d.IsAdvance, &d.AdvanceDate, &d.DeductedInBiweeklyID,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.DiscountPayment{}, payroll.ErrDiscountNotFound
		}
		return payroll.DiscountPayment{}, fmt.Errorf("failed to get discount payment: %w", err)
	}

	return d, nil
}

func (r *payrollRepository) ListDiscounts(ctx context.Context, payrollID string) ([]payroll.DiscountPayment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, payroll_id, description, amount, quantity, biweekly, pay_card,
			   is_advance, advance_date, deducted_in_biweekly_id, created_at, updated_at
		FROM discount_payments
		WHERE payroll_id = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, payrollID)
	if err != nil {
		return nil, fmt.Errorf("failed to list discount payments: %w", err)
	}
	defer rows.Close()

	var discounts []payroll.DiscountPayment
	for rows.Next() {
		var d payroll.DiscountPayment
		if err := rows.Scan(
			&d.ID, &d.PayrollID, &d.Description, &d.Amount, &d.Quantity, &d.Biweekly,
			&d.PayCard, &d.IsAdvance, &d.AdvanceDate, &d.DeductedInBiweeklyID,
			&d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan discount payment: %w", err)
		}
		discounts = append(discounts, d)
	}

	return discounts, rows.Err()
}

func (r *payrollRepository) UpdateDiscount(ctx context.Context, d payroll.DiscountPayment) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE discount_payments
		SET description = $2, amount = $3, quantity = $4, biweekly = $5, pay_card = $6,
			is_advance = $7, advance_date = $8, deducted_in_biweekly_id = $9, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, d.ID, d.Description, d.Amount, d.Quantity, d.Biweekly,
		d.PayCard, d.IsAdvance, d.AdvanceDate, d.DeductedInBiweeklyID)
	if err != nil {
		return fmt.Errorf("failed to update discount payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrDiscountNotFound
	}

	return nil
}

func (r *payrollRepository) DeleteDiscount(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM discount_payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete discount payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrDiscountNotFound
	}

	return nil
}

// ========== LOANS, CAMPAIGNS, AFFILIATIONS ==========

func (r *payrollRepository) GetLoanByID(ctx context.Context, id string) (payroll.Loan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, amount, biweekly, pay_card, created_at
		FROM loans
		WHERE id = $1
	`

	var l payroll.Loan
	err := q.QueryRow(ctx, query, id).Scan(&l.ID, &l.EmployeeID, &l.Amount, &l.Biweekly, &l.PayCard, &l.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Loan{}, payroll.ErrLoanNotFound
		}
		return payroll.Loan{}, fmt.Errorf("failed to get loan: %w", err)
	}

	return l, nil
}

func (r *payrollRepository) GetCampaignByID(ctx context.Context, id string) (payroll.Campaign, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, amount, biweekly, pay_card, created_at
		FROM campaigns
		WHERE id = $1
	`

	var c payroll.Campaign
	err := q.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Amount, &c.Biweekly, &c.PayCard, &c.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Campaign{}, payroll.ErrCampaignNotFound
		}
		return payroll.Campaign{}, fmt.Errorf("failed to get campaign: %w", err)
	}

	return c, nil
}

func (r *payrollRepository) GetEmployeeAffiliations(ctx context.Context, employeeID string) ([]payroll.EmployeeAffiliation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, name, percent, created_at
		FROM employee_affiliations
		WHERE employee_id = $1
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list affiliations: %w", err)
	}
	defer rows.Close()

	var affiliations []payroll.EmployeeAffiliation
	for rows.Next() {
		var a payroll.EmployeeAffiliation
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Name, &a.Percent, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan affiliation: %w", err)
		}
		affiliations = append(affiliations, a)
	}

	return affiliations, rows.Err()
}

// ========== AGGREGATIONS ==========

func (r *payrollRepository) GetPayrollSummary(ctx context.Context, year, month int) (payroll.PayrollSummaryResponse, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(DISTINCT p.id),
			   COUNT(DISTINCT p.id) FILTER (WHERE p.status = 'open'),
			   COUNT(DISTINCT p.id) FILTER (WHERE p.status = 'closed'),
			   COALESCE(SUM(bp.accounting_amount), 0),
			   COALESCE(SUM(bp.real_amount), 0),
			   COALESCE(SUM(bp.total_discounts), 0),
			   COALESCE(SUM(bp.total_additionals), 0)
		FROM payrolls p
		LEFT JOIN biweekly_payments bp ON bp.payroll_id = p.id
		WHERE p.period_year = $1 AND p.period_month = $2
	`

	summary := payroll.PayrollSummaryResponse{
		PeriodYear:        year,
		PeriodMonth:       month,
		TotalBankTransfer: decimal.Zero,
		TotalCash:         decimal.Zero,
		TotalDiscounts:    decimal.Zero,
		TotalAdditionals:  decimal.Zero,
	}
	err := q.QueryRow(ctx, query, year, month).Scan(
		&summary.TotalEmployees, &summary.OpenCount, &summary.ClosedCount,
		&summary.TotalBankTransfer, &summary.TotalCash,
		&summary.TotalDiscounts, &summary.TotalAdditionals,
	)
	if err != nil {
		return payroll.PayrollSummaryResponse{}, fmt.Errorf("failed to get payroll summary: %w", err)
	}

	return summary, nil
}
