package cron

import (
	"context"
	"testing"
	"time"

	"github.com/planillapro/planilla-backend-go/internal/domain/contract"
	"github.com/planillapro/planilla-backend-go/internal/domain/employee"
	"github.com/planillapro/planilla-backend-go/internal/domain/payroll"
	"github.com/planillapro/planilla-backend-go/internal/pkg/clock"
	"github.com/planillapro/planilla-backend-go/internal/pkg/database"
	"github.com/planillapro/planilla-backend-go/internal/repository/memory"
	payrollService "github.com/planillapro/planilla-backend-go/internal/service/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jobFixture struct {
	jobs      *PayrollJobs
	svc       payroll.PayrollService
	payrolls  *memory.PayrollStore
	contracts *memory.ContractStore
}

func newJobFixture(t *testing.T, now time.Time, frequency contract.PayFrequency) (jobFixture, string) {
	t.Helper()

	contracts := memory.NewContractStore()
	employees := memory.NewEmployeeStore(contracts)
	payrolls := memory.NewPayrollStore()
	clk := clock.Fixed{T: now}

	e, err := employees.Create(context.Background(), employee.Employee{
		HeadquartersID: "hq-1",
		EmployeeCode:   "EMP-001",
		FullName:       "Test Employee",
	})
	require.NoError(t, err)

	_, err = contracts.Create(context.Background(), contract.Contract{
		EmployeeID:       e.ID,
		HireDate:         time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC),
		AccountingSalary: decimal.RequireFromString("1000"),
		RealSalary:       decimal.RequireFromString("1200"),
		Frequency:        frequency,
		Status:           contract.ContractStatusActive,
	})
	require.NoError(t, err)

	svc := payrollService.NewPayrollService(database.PassthroughTx{}, payrolls, contracts, employees, clk, true)
	jobs := NewPayrollJobs(svc, employees, contracts, clk)
	return jobFixture{jobs: jobs, svc: svc, payrolls: payrolls, contracts: contracts}, e.ID
}

func TestCreateMonthlyPayrolls_RunsOnDayOne(t *testing.T) {
	fx, employeeID := newJobFixture(t,
		time.Date(2024, time.April, 1, 0, 30, 0, 0, time.UTC),
		contract.PayFrequencyBiweekly)
	ctx := context.Background()

	require.NoError(t, fx.jobs.CreateMonthlyPayrolls(ctx))

	p, err := fx.payrolls.GetPayrollByEmployeePeriod(ctx, employeeID, 2024, 4)
	require.NoError(t, err)
	assert.Equal(t, payroll.PayrollStatusOpen, p.Status)

	// A second run is a no-op, not a failure.
	require.NoError(t, fx.jobs.CreateMonthlyPayrolls(ctx))
}

func TestCreateMonthlyPayrolls_SkipsOutsideGate(t *testing.T) {
	fx, employeeID := newJobFixture(t,
		time.Date(2024, time.April, 15, 0, 30, 0, 0, time.UTC),
		contract.PayFrequencyBiweekly)
	ctx := context.Background()

	require.NoError(t, fx.jobs.CreateMonthlyPayrolls(ctx))

	_, err := fx.payrolls.GetPayrollByEmployeePeriod(ctx, employeeID, 2024, 4)
	assert.ErrorIs(t, err, payroll.ErrPayrollNotFound)
}

func TestGenerateBiweeklyPayments_FirstHalfOnThe14th(t *testing.T) {
	fx, employeeID := newJobFixture(t,
		time.Date(2024, time.April, 14, 0, 30, 0, 0, time.UTC),
		contract.PayFrequencyBiweekly)
	ctx := context.Background()

	_, err := fx.svc.CreatePayrolls(ctx, payroll.GeneratePayrollsRequest{
		PeriodYear:  2024,
		PeriodMonth: 4,
		EmployeeIDs: []string{employeeID},
	})
	require.NoError(t, err)

	require.NoError(t, fx.jobs.GenerateBiweeklyPayments(ctx))

	p, err := fx.payrolls.GetPayrollByEmployeePeriod(ctx, employeeID, 2024, 4)
	require.NoError(t, err)
	payments, err := fx.payrolls.GetBiweeklyPayments(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, 1, payments[0].Number)
}

func TestGenerateBiweeklyPayments_SkipsMonthlyOnThe14th(t *testing.T) {
	fx, employeeID := newJobFixture(t,
		time.Date(2024, time.April, 14, 0, 30, 0, 0, time.UTC),
		contract.PayFrequencyMonthly)
	ctx := context.Background()

	_, err := fx.svc.CreatePayrolls(ctx, payroll.GeneratePayrollsRequest{
		PeriodYear:  2024,
		PeriodMonth: 4,
		EmployeeIDs: []string{employeeID},
	})
	require.NoError(t, err)

	require.NoError(t, fx.jobs.GenerateBiweeklyPayments(ctx))

	p, err := fx.payrolls.GetPayrollByEmployeePeriod(ctx, employeeID, 2024, 4)
	require.NoError(t, err)
	payments, err := fx.payrolls.GetBiweeklyPayments(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestGenerateBiweeklyPayments_MonthEndSettlesEverything(t *testing.T) {
	fx, employeeID := newJobFixture(t,
		time.Date(2024, time.April, 30, 0, 30, 0, 0, time.UTC),
		contract.PayFrequencyBiweekly)
	ctx := context.Background()

	_, err := fx.svc.CreatePayrolls(ctx, payroll.GeneratePayrollsRequest{
		PeriodYear:  2024,
		PeriodMonth: 4,
		EmployeeIDs: []string{employeeID},
	})
	require.NoError(t, err)

	require.NoError(t, fx.jobs.GenerateBiweeklyPayments(ctx))

	p, err := fx.payrolls.GetPayrollByEmployeePeriod(ctx, employeeID, 2024, 4)
	require.NoError(t, err)
	payments, err := fx.payrolls.GetBiweeklyPayments(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 2)
}
