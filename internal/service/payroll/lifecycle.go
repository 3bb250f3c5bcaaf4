package payroll

import (
	"context"

	"github.com/planillapro/planilla-backend-go/internal/domain/payroll"
)

// ensureEditable gates every mutation: only an open payroll may be edited.
func (s *PayrollServiceImpl) ensureEditable(ctx context.Context, payrollID string) (payroll.PayRoll, error) {
	p, err := s.payrollRepo.GetPayrollByID(ctx, payrollID)
	if err != nil {
		return payroll.PayRoll{}, err
	}
	if p.Status != payroll.PayrollStatusOpen {
		return payroll.PayRoll{}, payroll.ErrPayrollClosed
	}
	return p, nil
}

func (s *PayrollServiceImpl) CanEditPayroll(ctx context.Context, payrollID string) (payroll.EditCheckResponse, error) {
	p, err := s.payrollRepo.GetPayrollByID(ctx, payrollID)
	if err != nil {
		return payroll.EditCheckResponse{}, err
	}

	resp := payroll.EditCheckResponse{PayrollID: p.ID}
	if p.Status == payroll.PayrollStatusOpen {
		resp.CanEdit = true
		return resp, nil
	}

	// Closed is never terminal: reopening is always available.
	resp.Reason = "payroll is closed"
	resp.CanReopen = true
	return resp, nil
}

func (s *PayrollServiceImpl) ClosePayroll(ctx context.Context, payrollID string) error {
	p, err := s.payrollRepo.GetPayrollByID(ctx, payrollID)
	if err != nil {
		return err
	}
	if p.Status == payroll.PayrollStatusClosed {
		return payroll.ErrPayrollClosed
	}
	return s.payrollRepo.UpdatePayrollStatus(ctx, p.ID, payroll.PayrollStatusClosed)
}

func (s *PayrollServiceImpl) ReopenPayroll(ctx context.Context, payrollID string) error {
	p, err := s.payrollRepo.GetPayrollByID(ctx, payrollID)
	if err != nil {
		return err
	}
	if p.Status == payroll.PayrollStatusOpen {
		return payroll.ErrPayrollAlreadyOpen
	}
	return s.payrollRepo.UpdatePayrollStatus(ctx, p.ID, payroll.PayrollStatusOpen)
}
