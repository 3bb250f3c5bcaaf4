package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/planillapro/planilla-backend-go/internal/domain/contract"
	"github.com/planillapro/planilla-backend-go/internal/domain/employee"
	"github.com/planillapro/planilla-backend-go/internal/domain/payroll"
	"github.com/planillapro/planilla-backend-go/internal/pkg/clock"
	"github.com/planillapro/planilla-backend-go/internal/pkg/database"
	"github.com/planillapro/planilla-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertDec(t *testing.T, expected string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(expected).Equal(got), "expected %s, got %s", expected, got.String())
}

type fixture struct {
	svc       payroll.PayrollService
	payrolls  *memory.PayrollStore
	contracts *memory.ContractStore
	employees *memory.EmployeeStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	contracts := memory.NewContractStore()
	f := &fixture{
		payrolls:  memory.NewPayrollStore(),
		contracts: contracts,
		employees: memory.NewEmployeeStore(contracts),
	}
	f.svc = NewPayrollService(
		database.PassthroughTx{},
		f.payrolls,
		f.contracts,
		f.employees,
		clock.Fixed{T: time.Date(2024, time.April, 20, 12, 0, 0, 0, time.UTC)},
		true, // Sundays count
	)
	return f
}

func (f *fixture) seedEmployee(t *testing.T, accounting, real string, freq contract.PayFrequency) string {
	t.Helper()
	ctx := context.Background()

	e, err := f.employees.Create(ctx, employee.Employee{
		HeadquartersID: "hq-1",
		EmployeeCode:   "EMP-" + uuid.NewString()[:8],
		FullName:       "Test Employee",
	})
	require.NoError(t, err)

	_, err = f.contracts.Create(ctx, contract.Contract{
		EmployeeID:       e.ID,
		HireDate:         time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC),
		AccountingSalary: decimal.RequireFromString(accounting),
		RealSalary:       decimal.RequireFromString(real),
		Frequency:        freq,
		Status:           contract.ContractStatusActive,
	})
	require.NoError(t, err)
	return e.ID
}

func (f *fixture) seedPayroll(t *testing.T, employeeID string, year, month int) payroll.PayRoll {
	t.Helper()

	result, err := f.svc.CreatePayrolls(context.Background(), payroll.GeneratePayrollsRequest{
		PeriodYear:  year,
		PeriodMonth: month,
		EmployeeIDs: []string{employeeID},
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Created)

	p, err := f.payrolls.GetPayrollByID(context.Background(), result.Items[0].PayrollID)
	require.NoError(t, err)
	return p
}

// ===== GENERATION =====

func TestGenerateBiweeklyPayment_Monthly(t *testing.T) {
	f := newFixture(t)
	employeeID := f.seedEmployee(t, "1130.00", "1600.00", contract.PayFrequencyMonthly)
	f.seedPayroll(t, employeeID, 2024, 4)

	responses, err := f.svc.GenerateBiweeklyPayment(context.Background(), payroll.GenerateBiweeklyPaymentRequest{
		EmployeeID:  employeeID,
		PeriodYear:  2024,
		PeriodMonth: 4,
	})
	require.NoError(t, err)
	require.Len(t, responses, 1)

	assert.Equal(t, 1, responses[0].Number)
	assertDec(t, "1130.00", responses[0].AccountingAmount)
	assertDec(t, "470.00", responses[0].RealAmount)
	assert.Equal(t, "2024-04-30", responses[0].SettlementDate)
}

func TestGenerateBiweeklyPayment_BiweeklyBothHalves(t *testing.T) {
	f := newFixture(t)
	employeeID := f.seedEmployee(t, "1000.00", "1200.00", contract.PayFrequencyBiweekly)
	f.seedPayroll(t, employeeID, 2024, 4)

	responses, err := f.svc.GenerateBiweeklyPayment(context.Background(), payroll.GenerateBiweeklyPaymentRequest{
		EmployeeID:  employeeID,
		PeriodYear:  2024,
		PeriodMonth: 4,
	})
	require.NoError(t, err)
	require.Len(t, responses, 2)

	assertDec(t, "400.00", responses[0].AccountingAmount)
	assertDec(t, "80.00", responses[0].RealAmount)
	assertDec(t, "600.00", responses[1].AccountingAmount)
	assertDec(t, "120.00", responses[1].RealAmount)
}

func TestGenerateBiweeklyPayment_SingleHalf(t *testing.T) {
	f := newFixture(t)
	employeeID := f.seedEmployee(t, "1000.00", "1200.00", contract.PayFrequencyBiweekly)
	f.seedPayroll(t, employeeID, 2024, 4)

	second := 2
	responses, err := f.svc.GenerateBiweeklyPayment(context.Background(), payroll.GenerateBiweeklyPaymentRequest{
		EmployeeID:  employeeID,
		PeriodYear:  2024,
		PeriodMonth: 4,
		Biweekly:    &second,
	})
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, 2, responses[0].Number)
	assertDec(t, "600.00", responses[0].AccountingAmount)
}

func TestGenerateBiweeklyPayment_MonthlyRejectsSecondHalf(t *testing.T) {
	f := newFixture(t)
	employeeID := f.seedEmployee(t, "1130.00", "1600.00", contract.PayFrequencyMonthly)
	f.seedPayroll(t, employeeID, 2024, 4)

	second := 2
	_, err := f.svc.GenerateBiweeklyPayment(context.Background(), payroll.GenerateBiweeklyPaymentRequest{
		EmployeeID:  employeeID,
		PeriodYear:  2024,
		PeriodMonth: 4,
		Biweekly:    &second,
	})
	assert.ErrorIs(t, err, payroll.ErrInvalidBiweeklyNumber)
}

func TestGenerateBiweeklyPayment_MissingPayroll(t *testing.T) {
	f := newFixture(t)
	employeeID := f.seedEmployee(t, "1000.00", "1200.00", contract.PayFrequencyMonthly)

	_, err := f.svc.GenerateBiweeklyPayment(context.Background(), payroll.GenerateBiweeklyPaymentRequest{
		EmployeeID:  employeeID,
		PeriodYear:  2024,
		PeriodMonth: 4,
	})
	assert.ErrorIs(t, err, payroll.ErrPayrollNotFound)
}

// ===== CALCULATE (NON-PERSISTING) =====

func TestCalculatePayment_WithoutStoredPayroll(t *testing.T) {
	f := newFixture(t)
	employeeID := f.seedEmployee(t, "1130.00", "1600.00", contract.PayFrequencyMonthly)

	resp, err := f.svc.CalculatePayment(context.Background(), employeeID, 2024, 4, nil)
	require.NoError(t, err)

	require.Len(t, resp.Breakdown, 1)
	assertDec(t, "1130.00", resp.BankTransfer)
	assertDec(t, "470.00", resp.Cash)
	assertDec(t, "1600.00", resp.Total)
}

func TestCalculatePayment_PeriodTypeFilter(t *testing.T) {
	f := newFixture(t)
	employeeID := f.seedEmployee(t, "1000.00", "1200.00", contract.PayFrequencyBiweekly)

	periodType := string(payroll.PeriodSecondHalf)
	resp, err := f.svc.CalculatePayment(context.Background(), employeeID, 2024, 4, &periodType)
	require.NoError(t, err)

	require.Len(t, resp.Breakdown, 1)
	assertDec(t, "600.00", resp.BankTransfer)
	assertDec(t, "120.00", resp.Cash)

	bogus := "weekly"
	_, err = f.svc.CalculatePayment(context.Background(), employeeID, 2024, 4, &bogus)
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}

// ===== BATCH CREATION =====

func TestCreatePayrolls_SkipsAndCreates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	withContract := f.seedEmployee(t, "1000.00", "1200.00", contract.PayFrequencyMonthly)

	noContract, err := f.employees.Create(ctx, employee.Employee{
		HeadquartersID: "hq-1",
		EmployeeCode:   "EMP-NOCONTRACT",
		FullName:       "No Contract",
	})
	require.NoError(t, err)

	result, err := f.svc.CreatePayrolls(ctx, payroll.GeneratePayrollsRequest{
		PeriodYear:  2024,
		PeriodMonth: 4,
		EmployeeIDs: []string{withContract, noContract.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Failed)

	// Running again skips the existing payroll instead of duplicating it.
	result, err = f.svc.CreatePayrolls(ctx, payroll.GeneratePayrollsRequest{
		PeriodYear:  2024,
		PeriodMonth: 4,
		EmployeeIDs: []string{withContract},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 1, result.Skipped)
}

func TestCreatePayrolls_SnapshotsContractSalary(t *testing.T) {
	f := newFixture(t)

	employeeID := f.seedEmployee(t, "900.00", "1100.00", contract.PayFrequencyMonthly)
	p := f.seedPayroll(t, employeeID, 2024, 4)

	assertDec(t, "900.00", p.AccountingSalary)
	assertDec(t, "1100.00", p.RealSalary)
	assert.Equal(t, payroll.PayrollStatusOpen, p.Status)
	assert.Equal(t, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), p.PeriodStart)
	assert.Equal(t, time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC), p.PeriodEnd)
}

// ===== ADJUSTMENTS & REGENERATION =====

func TestAddAdditional_RegeneratesAffectedHalf(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	employeeID := f.seedEmployee(t, "1000.00", "1200.00", contract.PayFrequencyBiweekly)
	p := f.seedPayroll(t, employeeID, 2024, 4)

	_, err := f.svc.GenerateBiweeklyPayment(ctx, payroll.GenerateBiweeklyPaymentRequest{
		EmployeeID: employeeID, PeriodYear: 2024, PeriodMonth: 4,
	})
	require.NoError(t, err)

	first := 1
	_, err = f.svc.AddAdditional(ctx, payroll.CreateAdditionalRequest{
		PayrollID:   p.ID,
		Description: "overtime",
		Amount:      decimal.RequireFromString("100"),
		Quantity:    1,
		Biweekly:    &first,
		PayCard:     int(payroll.ChannelBank),
	})
	require.NoError(t, err)

	payments, err := f.svc.GetBiweeklyPayments(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, payments, 2)

	assertDec(t, "500.00", payments[0].AccountingAmount) // 400 + 100
	assertDec(t, "600.00", payments[1].AccountingAmount) // untouched
}

func TestDeleteDiscount_RestoresOriginalAmounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	employeeID := f.seedEmployee(t, "1130.00", "1600.00", contract.PayFrequencyMonthly)
	p := f.seedPayroll(t, employeeID, 2024, 4)

	_, err := f.svc.GenerateBiweeklyPayment(ctx, payroll.GenerateBiweeklyPaymentRequest{
		EmployeeID: employeeID, PeriodYear: 2024, PeriodMonth: 4,
	})
	require.NoError(t, err)

	d, err := f.svc.AddDiscount(ctx, payroll.CreateDiscountRequest{
		PayrollID:   p.ID,
		Description: "uniform",
		Amount:      decimal.RequireFromString("50"),
		Quantity:    1,
		PayCard:     int(payroll.ChannelBank),
	})
	require.NoError(t, err)

	payments, err := f.svc.GetBiweeklyPayments(ctx, p.ID)
	require.NoError(t, err)
	assertDec(t, "1080.00", payments[0].AccountingAmount)

	require.NoError(t, f.svc.DeleteDiscount(ctx, p.ID, d.ID))

	payments, err = f.svc.GetBiweeklyPayments(ctx, p.ID)
	require.NoError(t, err)
	assertDec(t, "1130.00", payments[0].AccountingAmount)
}

func TestAffiliation_AppliedInSettlementHalf(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	employeeID := f.seedEmployee(t, "1000.00", "1200.00", contract.PayFrequencyBiweekly)
	f.payrolls.PutAffiliation(payroll.EmployeeAffiliation{
		EmployeeID: employeeID,
		Name:       "pension",
		Percent:    decimal.RequireFromString("10"),
	})
	f.seedPayroll(t, employeeID, 2024, 4)

	responses, err := f.svc.GenerateBiweeklyPayment(ctx, payroll.GenerateBiweeklyPaymentRequest{
		EmployeeID: employeeID, PeriodYear: 2024, PeriodMonth: 4,
	})
	require.NoError(t, err)
	require.Len(t, responses, 2)

	// 10% of 1200 lands on the second half's bank channel only.
	assertDec(t, "400.00", responses[0].AccountingAmount)
	assertDec(t, "480.00", responses[1].AccountingAmount) // 600 - 120
}

// ===== LIFECYCLE =====

func TestClosedPayroll_GuardsMutations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	employeeID := f.seedEmployee(t, "1000.00", "1200.00", contract.PayFrequencyMonthly)
	p := f.seedPayroll(t, employeeID, 2024, 4)

	require.NoError(t, f.svc.ClosePayroll(ctx, p.ID))

	_, err := f.svc.AddAdditional(ctx, payroll.CreateAdditionalRequest{
		PayrollID:   p.ID,
		Description: "bonus",
		Amount:      decimal.RequireFromString("10"),
		Quantity:    1,
		PayCard:     int(payroll.ChannelBank),
	})
	assert.ErrorIs(t, err, payroll.ErrPayrollClosed)

	check, err := f.svc.CanEditPayroll(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, check.CanEdit)
	assert.True(t, check.CanReopen)
	assert.NotEmpty(t, check.Reason)

	// Reopening flips the guard back.
	require.NoError(t, f.svc.ReopenPayroll(ctx, p.ID))
	check, err = f.svc.CanEditPayroll(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, check.CanEdit)

	_, err = f.svc.AddAdditional(ctx, payroll.CreateAdditionalRequest{
		PayrollID:   p.ID,
		Description: "bonus",
		Amount:      decimal.RequireFromString("10"),
		Quantity:    1,
		PayCard:     int(payroll.ChannelBank),
	})
	assert.NoError(t, err)
}

func TestRegenerate_ClosedPayrollIsSilentNoop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	employeeID := f.seedEmployee(t, "1000.00", "1200.00", contract.PayFrequencyMonthly)
	p := f.seedPayroll(t, employeeID, 2024, 4)

	responses, err := f.svc.GenerateBiweeklyPayment(ctx, payroll.GenerateBiweeklyPaymentRequest{
		EmployeeID: employeeID, PeriodYear: 2024, PeriodMonth: 4,
	})
	require.NoError(t, err)
	require.NoError(t, f.svc.ClosePayroll(ctx, p.ID))

	assert.NoError(t, f.svc.RegenerateBiweeklyPayment(ctx, p.ID, responses[0].ID))

	payments, err := f.svc.GetBiweeklyPayments(ctx, p.ID)
	require.NoError(t, err)
	assertDec(t, "1000.00", payments[0].AccountingAmount)
}

func TestCloseReopen_Transitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	employeeID := f.seedEmployee(t, "1000.00", "1200.00", contract.PayFrequencyMonthly)
	p := f.seedPayroll(t, employeeID, 2024, 4)

	assert.ErrorIs(t, f.svc.ReopenPayroll(ctx, p.ID), payroll.ErrPayrollAlreadyOpen)
	require.NoError(t, f.svc.ClosePayroll(ctx, p.ID))
	assert.ErrorIs(t, f.svc.ClosePayroll(ctx, p.ID), payroll.ErrPayrollClosed)
	require.NoError(t, f.svc.ReopenPayroll(ctx, p.ID))
}

// ===== ADVANCES =====

func TestCreateAdvance_EnforcesCeiling(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	employeeID := f.seedEmployee(t, "1000.00", "1600.00", contract.PayFrequencyMonthly)
	p := f.seedPayroll(t, employeeID, 2024, 4)

	// Monthly bank ceiling: min(1000/2, 30% of 1600) = 480.
	_, err := f.svc.CreateAdvance(ctx, payroll.CreateAdvanceRequest{
		PayrollID:   p.ID,
		Description: "advance",
		Amount:      decimal.RequireFromString("500"),
		PayCard:     int(payroll.ChannelBank),
	})
	assert.ErrorIs(t, err, payroll.ErrAdvanceExceedsCeiling)

	created, err := f.svc.CreateAdvance(ctx, payroll.CreateAdvanceRequest{
		PayrollID:   p.ID,
		Description: "advance",
		Amount:      decimal.RequireFromString("400"),
		PayCard:     int(payroll.ChannelBank),
	})
	require.NoError(t, err)
	assert.True(t, created.IsAdvance)
	require.NotNil(t, created.AdvanceDate)
	assert.Equal(t, "2024-04-20", created.AdvanceDate.Format("2006-01-02"))
}

func TestCreateAdvance_UpdateExisting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	employeeID := f.seedEmployee(t, "1000.00", "1600.00", contract.PayFrequencyMonthly)
	p := f.seedPayroll(t, employeeID, 2024, 4)

	created, err := f.svc.CreateAdvance(ctx, payroll.CreateAdvanceRequest{
		PayrollID:   p.ID,
		Description: "advance",
		Amount:      decimal.RequireFromString("100"),
		PayCard:     int(payroll.ChannelBank),
	})
	require.NoError(t, err)

	updated, err := f.svc.CreateAdvance(ctx, payroll.CreateAdvanceRequest{
		PayrollID:   p.ID,
		AdvanceID:   &created.ID,
		Description: "advance adjusted",
		Amount:      decimal.RequireFromString("200"),
		PayCard:     int(payroll.ChannelBank),
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assertDec(t, "200", updated.Amount)

	// A plain discount cannot be updated through the advance path.
	plain, err := f.svc.AddDiscount(ctx, payroll.CreateDiscountRequest{
		PayrollID:   p.ID,
		Description: "uniform",
		Amount:      decimal.RequireFromString("10"),
		Quantity:    1,
		PayCard:     int(payroll.ChannelBank),
	})
	require.NoError(t, err)

	_, err = f.svc.CreateAdvance(ctx, payroll.CreateAdvanceRequest{
		PayrollID:   p.ID,
		AdvanceID:   &plain.ID,
		Description: "advance",
		Amount:      decimal.RequireFromString("50"),
		PayCard:     int(payroll.ChannelBank),
	})
	assert.ErrorIs(t, err, payroll.ErrNotAnAdvance)
}

func TestGetMaxAdvance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	employeeID := f.seedEmployee(t, "1000.00", "1200.00", contract.PayFrequencyBiweekly)
	p := f.seedPayroll(t, employeeID, 2024, 4)

	// First half: bank min(400, 360) = 360, cash min(80, 360) = 80.
	resp, err := f.svc.GetMaxAdvance(ctx, p.ID, 1, nil)
	require.NoError(t, err)
	assert.True(t, resp.Found)
	assertDec(t, "440.00", resp.MaxAdvance)

	bank := int(payroll.ChannelBank)
	resp, err = f.svc.GetMaxAdvance(ctx, p.ID, 1, &bank)
	require.NoError(t, err)
	assertDec(t, "360.00", resp.MaxAdvance)

	// Missing payroll: Found=false with a zero ceiling, not an error.
	resp, err = f.svc.GetMaxAdvance(ctx, "no-such-payroll", 1, nil)
	require.NoError(t, err)
	assert.False(t, resp.Found)
	assert.True(t, resp.MaxAdvance.IsZero())
}
