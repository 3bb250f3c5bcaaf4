package contract

import (
	"context"
	"testing"
	"time"

	"github.com/planillapro/planilla-backend-go/internal/domain/contract"
	"github.com/planillapro/planilla-backend-go/internal/domain/employee"
	"github.com/planillapro/planilla-backend-go/internal/pkg/clock"
	"github.com/planillapro/planilla-backend-go/internal/pkg/database"
	"github.com/planillapro/planilla-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (contract.ContractService, *memory.ContractStore, string) {
	t.Helper()

	contracts := memory.NewContractStore()
	employees := memory.NewEmployeeStore(contracts)

	e, err := employees.Create(context.Background(), employee.Employee{
		HeadquartersID: "hq-1",
		EmployeeCode:   "EMP-001",
		FullName:       "Test Employee",
	})
	require.NoError(t, err)

	svc := NewContractService(
		database.PassthroughTx{},
		contracts,
		employees,
		clock.Fixed{T: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)},
	)
	return svc, contracts, e.ID
}

func hireRequest(employeeID string) contract.HireRequest {
	return contract.HireRequest{
		EmployeeID:       employeeID,
		HireDate:         "2024-01-15",
		AccountingSalary: decimal.RequireFromString("1000.00"),
		RealSalary:       decimal.RequireFromString("1400.00"),
		Frequency:        string(contract.PayFrequencyBiweekly),
	}
}

func TestHire(t *testing.T) {
	svc, _, employeeID := newService(t)

	created, err := svc.Hire(context.Background(), hireRequest(employeeID))
	require.NoError(t, err)
	assert.Equal(t, string(contract.ContractStatusActive), created.Status)
	assert.Equal(t, "2024-01-15", created.HireDate)

	// A second hire while a contract is active is refused.
	_, err = svc.Hire(context.Background(), hireRequest(employeeID))
	assert.ErrorIs(t, err, contract.ErrContractAlreadyActive)
}

func TestHire_RejectsSalaryBelowAccounting(t *testing.T) {
	svc, _, employeeID := newService(t)

	req := hireRequest(employeeID)
	req.RealSalary = decimal.RequireFromString("900.00")
	_, err := svc.Hire(context.Background(), req)
	assert.ErrorIs(t, err, contract.ErrSalaryBelowAccounting)
}

func TestActivate_TerminatesOtherActiveContract(t *testing.T) {
	svc, contracts, employeeID := newService(t)
	ctx := context.Background()

	first, err := svc.Hire(ctx, hireRequest(employeeID))
	require.NoError(t, err)

	// Seed a second, inactive contract directly.
	second, err := contracts.Create(ctx, contract.Contract{
		EmployeeID:       employeeID,
		HireDate:         time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		AccountingSalary: decimal.RequireFromString("1200.00"),
		RealSalary:       decimal.RequireFromString("1500.00"),
		Frequency:        contract.PayFrequencyMonthly,
		Status:           contract.ContractStatusTerminated,
	})
	require.NoError(t, err)

	activated, err := svc.Activate(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, string(contract.ContractStatusActive), activated.Status)

	// The previously active contract must end up terminated.
	old, err := contracts.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, contract.ContractStatusTerminated, old.Status)
	require.NotNil(t, old.TerminationDate)

	active, err := contracts.GetActiveByEmployee(ctx, employeeID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)
}

func TestActivate_AlreadyActive(t *testing.T) {
	svc, _, employeeID := newService(t)
	ctx := context.Background()

	created, err := svc.Hire(ctx, hireRequest(employeeID))
	require.NoError(t, err)

	_, err = svc.Activate(ctx, created.ID)
	assert.ErrorIs(t, err, contract.ErrContractAlreadyActive)
}

func TestTerminate(t *testing.T) {
	svc, _, employeeID := newService(t)
	ctx := context.Background()

	created, err := svc.Hire(ctx, hireRequest(employeeID))
	require.NoError(t, err)

	reason := "resignation"
	terminated, err := svc.Terminate(ctx, contract.TerminateRequest{
		ContractID:      created.ID,
		TerminationDate: "2024-06-30",
		Reason:          &reason,
	})
	require.NoError(t, err)
	assert.Equal(t, string(contract.ContractStatusTerminated), terminated.Status)
	require.NotNil(t, terminated.TerminationDate)
	assert.Equal(t, "2024-06-30", *terminated.TerminationDate)

	// Terminating twice fails.
	_, err = svc.Terminate(ctx, contract.TerminateRequest{
		ContractID:      created.ID,
		TerminationDate: "2024-07-01",
	})
	assert.ErrorIs(t, err, contract.ErrContractTerminated)
}

func TestSuspendAndReactivate(t *testing.T) {
	svc, _, employeeID := newService(t)
	ctx := context.Background()

	created, err := svc.Hire(ctx, hireRequest(employeeID))
	require.NoError(t, err)

	suspended, err := svc.Suspend(ctx, contract.SuspendRequest{
		ContractID: created.ID,
		From:       "2024-07-01",
		To:         "2024-07-15",
	})
	require.NoError(t, err)
	assert.Equal(t, string(contract.ContractStatusSuspended), suspended.Status)
	require.Len(t, suspended.Suspensions, 1)

	// Reactivate only works from suspended.
	reactivated, err := svc.Reactivate(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(contract.ContractStatusActive), reactivated.Status)

	_, err = svc.Reactivate(ctx, created.ID)
	assert.ErrorIs(t, err, contract.ErrContractNotSuspended)
}

func TestSuspend_InvalidRange(t *testing.T) {
	svc, _, employeeID := newService(t)
	ctx := context.Background()

	created, err := svc.Hire(ctx, hireRequest(employeeID))
	require.NoError(t, err)

	_, err = svc.Suspend(ctx, contract.SuspendRequest{
		ContractID: created.ID,
		From:       "2024-07-15",
		To:         "2024-07-01",
	})
	assert.ErrorIs(t, err, contract.ErrInvalidSuspensionRange)
}
