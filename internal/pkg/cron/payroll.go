package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/planillapro/planilla-backend-go/internal/domain/contract"
	"github.com/planillapro/planilla-backend-go/internal/domain/employee"
	"github.com/planillapro/planilla-backend-go/internal/domain/payroll"
	"github.com/planillapro/planilla-backend-go/internal/pkg/clock"
)

type PayrollJobs struct {
	payrollSvc   payroll.PayrollService
	employeeRepo employee.EmployeeRepository
	contractRepo contract.ContractRepository
	clk          clock.Clock
}

func NewPayrollJobs(
	payrollSvc payroll.PayrollService,
	employeeRepo employee.EmployeeRepository,
	contractRepo contract.ContractRepository,
	clk clock.Clock,
) *PayrollJobs {
	return &PayrollJobs{
		payrollSvc:   payrollSvc,
		employeeRepo: employeeRepo,
		contractRepo: contractRepo,
		clk:          clk,
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("create_monthly_payrolls", 1*time.Hour, j.CreateMonthlyPayrolls)
	scheduler.AddJob("generate_biweekly_payments", 1*time.Hour, j.GenerateBiweeklyPayments)
}

// CreateMonthlyPayrolls opens the payroll month for every employee with an
// active contract on the first day of the month.
func (j *PayrollJobs) CreateMonthlyPayrolls(ctx context.Context) error {
	now := j.clk.Now().UTC()

	// Only run at midnight (00:00-00:59 UTC) on day 1
	if now.Day() != 1 || now.Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting monthly payroll creation job")

	result, err := j.payrollSvc.CreatePayrolls(ctx, payroll.GeneratePayrollsRequest{
		PeriodYear:  now.Year(),
		PeriodMonth: int(now.Month()),
	})
	if err != nil {
		return fmt.Errorf("failed to create payrolls: %w", err)
	}

	for _, item := range result.Items {
		if item.Status == payroll.BatchItemFailed {
			slog.Error("Cron: Payroll creation failed",
				"employee_id", item.EmployeeID,
				"reason", item.Reason)
		}
	}

	slog.Info("Cron: Monthly payrolls created",
		"created", result.Created,
		"skipped", result.Skipped,
		"failed", result.Failed)
	return nil
}

// GenerateBiweeklyPayments settles payments on the 14th (first half) and the
// last day of the month (second half and monthly contracts).
func (j *PayrollJobs) GenerateBiweeklyPayments(ctx context.Context) error {
	now := j.clk.Now().UTC()

	// Only run at midnight (00:00-00:59 UTC)
	if now.Hour() != 0 {
		return nil
	}

	lastDay := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()

	var biweekly *int
	switch now.Day() {
	case 14:
		half := 1
		biweekly = &half
	case lastDay:
		// Generate everything still pending for the month.
	default:
		return nil
	}

	slog.Info("Cron: Starting biweekly payment generation job")

	employees, err := j.employeeRepo.ListWithActiveContract(ctx)
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}

	generated := 0
	for _, emp := range employees {
		// Monthly contracts only settle on the last day of the month.
		if biweekly != nil {
			c, err := j.contractRepo.GetActiveByEmployee(ctx, emp.ID)
			if err != nil || c.Frequency != contract.PayFrequencyBiweekly {
				continue
			}
		}

		_, err := j.payrollSvc.GenerateBiweeklyPayment(ctx, payroll.GenerateBiweeklyPaymentRequest{
			EmployeeID:  emp.ID,
			PeriodYear:  now.Year(),
			PeriodMonth: int(now.Month()),
			Biweekly:    biweekly,
		})
		if err != nil {
			slog.Error("Cron: Failed to generate payment",
				"employee_id", emp.ID,
				"error", err)
			continue
		}
		generated++
	}

	slog.Info("Cron: Biweekly payments generated", "count", generated)
	return nil
}
