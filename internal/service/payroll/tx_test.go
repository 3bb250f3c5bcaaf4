package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/planillapro/planilla-backend-go/internal/domain/contract"
	"github.com/planillapro/planilla-backend-go/internal/domain/payroll"
	"github.com/planillapro/planilla-backend-go/internal/pkg/clock"
	"github.com/planillapro/planilla-backend-go/internal/pkg/database"
	"github.com/planillapro/planilla-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTxKey struct{}

// countingTxRunner mirrors the postgres transaction manager: a nested RunTx
// joins the transaction already on the context, and only top-level calls
// begin one. The counter exposes how many database transactions a service
// operation would really open.
type countingTxRunner struct {
	began int
}

func (r *countingTxRunner) RunTx(ctx context.Context, fn database.TxFunc) error {
	if ctx.Value(countingTxKey{}) != nil {
		return fn(ctx)
	}
	r.began++
	return fn(context.WithValue(ctx, countingTxKey{}, struct{}{}))
}

func TestAdjustmentMutations_SingleTransaction(t *testing.T) {
	runner := &countingTxRunner{}
	contracts := memory.NewContractStore()
	employees := memory.NewEmployeeStore(contracts)
	payrolls := memory.NewPayrollStore()

	svc := NewPayrollService(runner, payrolls, contracts, employees,
		clock.Fixed{T: time.Date(2024, time.April, 20, 12, 0, 0, 0, time.UTC)}, true)

	ctx := context.Background()
	f := &fixture{svc: svc, payrolls: payrolls, contracts: contracts, employees: employees}
	employeeID := f.seedEmployee(t, "1000.00", "1600.00", contract.PayFrequencyMonthly)
	p := f.seedPayroll(t, employeeID, 2024, 4)

	_, err := svc.GenerateBiweeklyPayment(ctx, payroll.GenerateBiweeklyPaymentRequest{
		EmployeeID:  employeeID,
		PeriodYear:  2024,
		PeriodMonth: 4,
	})
	require.NoError(t, err)

	// The adjustment write and the settlement regeneration it triggers must
	// commit or roll back together.
	runner.began = 0
	created, err := svc.AddAdditional(ctx, payroll.CreateAdditionalRequest{
		PayrollID:   p.ID,
		Description: "bonus",
		Amount:      decimal.RequireFromString("100.00"),
		Quantity:    1,
		PayCard:     int(payroll.ChannelBank),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, runner.began)

	runner.began = 0
	newAmount := decimal.RequireFromString("150.00")
	require.NoError(t, svc.UpdateAdditional(ctx, payroll.UpdateAdditionalRequest{
		ID:        created.ID,
		PayrollID: p.ID,
		Amount:    &newAmount,
	}))
	assert.Equal(t, 1, runner.began)

	runner.began = 0
	require.NoError(t, svc.DeleteAdditional(ctx, p.ID, created.ID))
	assert.Equal(t, 1, runner.began)

	runner.began = 0
	discount, err := svc.AddDiscount(ctx, payroll.CreateDiscountRequest{
		PayrollID:   p.ID,
		Description: "uniform",
		Amount:      decimal.RequireFromString("50.00"),
		Quantity:    1,
		PayCard:     int(payroll.ChannelCash),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, runner.began)

	runner.began = 0
	require.NoError(t, svc.DeleteDiscount(ctx, p.ID, discount.ID))
	assert.Equal(t, 1, runner.began)

	runner.began = 0
	_, err = svc.CreateAdvance(ctx, payroll.CreateAdvanceRequest{
		PayrollID:   p.ID,
		Description: "advance",
		Amount:      decimal.RequireFromString("100.00"),
		PayCard:     int(payroll.ChannelBank),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, runner.began)
}
