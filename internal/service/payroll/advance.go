package payroll

import (
	"context"
	"errors"
	"time"

	"github.com/planillapro/planilla-backend-go/internal/domain/contract"
	"github.com/planillapro/planilla-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

func (s *PayrollServiceImpl) CreateAdvance(ctx context.Context, req payroll.CreateAdvanceRequest) (payroll.DiscountPayment, error) {
	if err := req.Validate(); err != nil {
		return payroll.DiscountPayment{}, err
	}

	p, err := s.ensureEditable(ctx, req.PayrollID)
	if err != nil {
		return payroll.DiscountPayment{}, err
	}

	c, err := s.contractRepo.GetActiveByEmployee(ctx, p.EmployeeID)
	if err != nil {
		return payroll.DiscountPayment{}, err
	}

	adj, err := s.loadAdjustments(ctx, p, c)
	if err != nil {
		return payroll.DiscountPayment{}, err
	}

	channel := payroll.Channel(req.PayCard)
	ceiling := payroll.AdvanceCeiling(payroll.AdvanceCeilingInput{
		AccountingSalary: p.AccountingSalary,
		RealSalary:       p.RealSalary,
		Monthly:          c.Frequency == contract.PayFrequencyMonthly,
		Half:             req.Biweekly,
		Additionals:      payroll.Aggregate(adj.additionals, req.Biweekly),
		RegularDiscounts: payroll.Aggregate(adj.regular, req.Biweekly),
		Channel:          &channel,
	})
	if req.Amount.GreaterThan(ceiling) {
		return payroll.DiscountPayment{}, payroll.ErrAdvanceExceedsCeiling
	}

	advanceDate := s.clock.Now()
	if req.AdvanceDate != nil {
		advanceDate, _ = time.Parse(dateLayout, *req.AdvanceDate)
	}

	if req.AdvanceID != nil {
		return s.updateAdvance(ctx, p, req, advanceDate)
	}

	var created payroll.DiscountPayment
	err = s.tx.RunTx(ctx, func(txCtx context.Context) error {
		created, err = s.payrollRepo.CreateDiscount(txCtx, payroll.DiscountPayment{
			PayrollID:   p.ID,
			Description: req.Description,
			Amount:      req.Amount,
			Quantity:    1,
			Biweekly:    req.Biweekly,
			PayCard:     channel,
			IsAdvance:   true,
			AdvanceDate: &advanceDate,
		})
		if err != nil {
			return err
		}
		return s.regenerateStored(txCtx, p, req.Biweekly)
	})
	if err != nil {
		return payroll.DiscountPayment{}, err
	}
	return created, nil
}

func (s *PayrollServiceImpl) updateAdvance(ctx context.Context, p payroll.PayRoll, req payroll.CreateAdvanceRequest, advanceDate time.Time) (payroll.DiscountPayment, error) {
	d, err := s.payrollRepo.GetDiscountByID(ctx, *req.AdvanceID)
	if err != nil {
		return payroll.DiscountPayment{}, err
	}
	if d.PayrollID != p.ID {
		return payroll.DiscountPayment{}, payroll.ErrDiscountNotFound
	}
	if !d.IsAdvance {
		return payroll.DiscountPayment{}, payroll.ErrNotAnAdvance
	}

	d.Description = req.Description
	d.Amount = req.Amount
	d.Quantity = 1
	d.Biweekly = req.Biweekly
	d.PayCard = payroll.Channel(req.PayCard)
	d.AdvanceDate = &advanceDate

	err = s.tx.RunTx(ctx, func(txCtx context.Context) error {
		if err := s.payrollRepo.UpdateDiscount(txCtx, d); err != nil {
			return err
		}
		return s.regenerateStored(txCtx, p, nil)
	})
	if err != nil {
		return payroll.DiscountPayment{}, err
	}
	return d, nil
}

// GetMaxAdvance reports the advance ceiling for a payroll half. A missing
// payroll or contract yields Found=false with a zero ceiling instead of an
// error, so callers can tell "nothing to advance against" apart from a
// legitimately zero allowance.
func (s *PayrollServiceImpl) GetMaxAdvance(ctx context.Context, payrollID string, biweekly int, payCard *int) (payroll.MaxAdvanceResponse, error) {
	resp := payroll.MaxAdvanceResponse{
		PayrollID:  payrollID,
		Biweekly:   biweekly,
		PayCard:    payCard,
		MaxAdvance: decimal.Zero,
	}

	if biweekly != 1 && biweekly != 2 {
		return payroll.MaxAdvanceResponse{}, payroll.ErrInvalidBiweeklyNumber
	}

	p, err := s.payrollRepo.GetPayrollByID(ctx, payrollID)
	if err != nil {
		if errors.Is(err, payroll.ErrPayrollNotFound) {
			return resp, nil
		}
		return payroll.MaxAdvanceResponse{}, err
	}

	c, err := s.contractRepo.GetActiveByEmployee(ctx, p.EmployeeID)
	if err != nil {
		if errors.Is(err, contract.ErrNoActiveContract) || errors.Is(err, contract.ErrContractNotFound) {
			return resp, nil
		}
		return payroll.MaxAdvanceResponse{}, err
	}

	adj, err := s.loadAdjustments(ctx, p, c)
	if err != nil {
		return payroll.MaxAdvanceResponse{}, err
	}

	var channel *payroll.Channel
	if payCard != nil {
		ch := payroll.Channel(*payCard)
		channel = &ch
	}

	resp.MaxAdvance = payroll.AdvanceCeiling(payroll.AdvanceCeilingInput{
		AccountingSalary: p.AccountingSalary,
		RealSalary:       p.RealSalary,
		Monthly:          c.Frequency == contract.PayFrequencyMonthly,
		Half:             &biweekly,
		Additionals:      payroll.Aggregate(adj.additionals, &biweekly),
		RegularDiscounts: payroll.Aggregate(adj.regular, &biweekly),
		Channel:          channel,
	})
	resp.Found = true
	return resp, nil
}
