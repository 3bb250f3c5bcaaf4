package contract

import (
	"context"
	"errors"

	"github.com/planillapro/planilla-backend-go/internal/domain/contract"
	"github.com/planillapro/planilla-backend-go/internal/domain/employee"
	"github.com/planillapro/planilla-backend-go/internal/pkg/clock"
	"github.com/planillapro/planilla-backend-go/internal/pkg/database"
	"github.com/planillapro/planilla-backend-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

type ContractServiceImpl struct {
	tx           database.TxRunner
	contractRepo contract.ContractRepository
	employeeRepo employee.EmployeeRepository
	clock        clock.Clock
}

func NewContractService(
	tx database.TxRunner,
	contractRepo contract.ContractRepository,
	employeeRepo employee.EmployeeRepository,
	clk clock.Clock,
) contract.ContractService {
	return &ContractServiceImpl{
		tx:           tx,
		contractRepo: contractRepo,
		employeeRepo: employeeRepo,
		clock:        clk,
	}
}

func (s *ContractServiceImpl) Hire(ctx context.Context, req contract.HireRequest) (contract.ContractResponse, error) {
	if err := req.Validate(); err != nil {
		return contract.ContractResponse{}, err
	}
	if req.RealSalary.LessThan(req.AccountingSalary) {
		return contract.ContractResponse{}, contract.ErrSalaryBelowAccounting
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return contract.ContractResponse{}, err
	}

	// Hiring never displaces an existing active contract; that path goes
	// through Activate explicitly.
	_, err := s.contractRepo.GetActiveByEmployee(ctx, req.EmployeeID)
	if err == nil {
		return contract.ContractResponse{}, contract.ErrContractAlreadyActive
	}
	if !errors.Is(err, contract.ErrNoActiveContract) && !errors.Is(err, contract.ErrContractNotFound) {
		return contract.ContractResponse{}, err
	}

	hireDate, _ := validator.IsValidDate(req.HireDate)
	created, err := s.contractRepo.Create(ctx, contract.Contract{
		EmployeeID:       req.EmployeeID,
		HireDate:         hireDate,
		AccountingSalary: req.AccountingSalary,
		RealSalary:       req.RealSalary,
		Frequency:        contract.PayFrequency(req.Frequency),
		Status:           contract.ContractStatusActive,
	})
	if err != nil {
		return contract.ContractResponse{}, err
	}
	return toContractResponse(created), nil
}

func (s *ContractServiceImpl) Get(ctx context.Context, id string) (contract.ContractResponse, error) {
	c, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return contract.ContractResponse{}, err
	}
	return toContractResponse(c), nil
}

func (s *ContractServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]contract.ContractResponse, error) {
	contracts, err := s.contractRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]contract.ContractResponse, 0, len(contracts))
	for _, c := range contracts {
		responses = append(responses, toContractResponse(c))
	}
	return responses, nil
}

// Activate terminates every other active contract of the employee and
// activates this one inside a single transaction, so the one-active-contract
// invariant holds even under concurrent activations.
func (s *ContractServiceImpl) Activate(ctx context.Context, id string) (contract.ContractResponse, error) {
	c, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return contract.ContractResponse{}, err
	}
	if c.Status == contract.ContractStatusActive {
		return contract.ContractResponse{}, contract.ErrContractAlreadyActive
	}

	err = s.tx.RunTx(ctx, func(txCtx context.Context) error {
		if err := s.contractRepo.TerminateActiveByEmployee(txCtx, c.EmployeeID, s.clock.Now(), "superseded by contract activation"); err != nil {
			return err
		}
		return s.contractRepo.UpdateStatus(txCtx, c.ID, contract.ContractStatusActive, nil, nil)
	})
	if err != nil {
		return contract.ContractResponse{}, err
	}

	c.Status = contract.ContractStatusActive
	c.TerminationDate = nil
	c.TerminationReason = nil
	return toContractResponse(c), nil
}

func (s *ContractServiceImpl) Terminate(ctx context.Context, req contract.TerminateRequest) (contract.ContractResponse, error) {
	if err := req.Validate(); err != nil {
		return contract.ContractResponse{}, err
	}

	c, err := s.contractRepo.GetByID(ctx, req.ContractID)
	if err != nil {
		return contract.ContractResponse{}, err
	}
	if c.Status == contract.ContractStatusTerminated {
		return contract.ContractResponse{}, contract.ErrContractTerminated
	}

	terminationDate, _ := validator.IsValidDate(req.TerminationDate)
	if err := s.contractRepo.UpdateStatus(ctx, c.ID, contract.ContractStatusTerminated, &terminationDate, req.Reason); err != nil {
		return contract.ContractResponse{}, err
	}

	c.Status = contract.ContractStatusTerminated
	c.TerminationDate = &terminationDate
	c.TerminationReason = req.Reason
	return toContractResponse(c), nil
}

func (s *ContractServiceImpl) Suspend(ctx context.Context, req contract.SuspendRequest) (contract.ContractResponse, error) {
	if err := req.Validate(); err != nil {
		return contract.ContractResponse{}, err
	}

	c, err := s.contractRepo.GetByID(ctx, req.ContractID)
	if err != nil {
		return contract.ContractResponse{}, err
	}
	if c.Status == contract.ContractStatusTerminated {
		return contract.ContractResponse{}, contract.ErrContractTerminated
	}

	from, _ := validator.IsValidDate(req.From)
	to, _ := validator.IsValidDate(req.To)
	if to.Before(from) {
		return contract.ContractResponse{}, contract.ErrInvalidSuspensionRange
	}
	period := contract.SuspensionPeriod{From: from, To: to}

	err = s.tx.RunTx(ctx, func(txCtx context.Context) error {
		if err := s.contractRepo.AddSuspension(txCtx, c.ID, period); err != nil {
			return err
		}
		return s.contractRepo.UpdateStatus(txCtx, c.ID, contract.ContractStatusSuspended, nil, nil)
	})
	if err != nil {
		return contract.ContractResponse{}, err
	}

	c.Status = contract.ContractStatusSuspended
	c.Suspensions = append(c.Suspensions, period)
	return toContractResponse(c), nil
}

func (s *ContractServiceImpl) Reactivate(ctx context.Context, id string) (contract.ContractResponse, error) {
	c, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return contract.ContractResponse{}, err
	}
	if c.Status != contract.ContractStatusSuspended {
		return contract.ContractResponse{}, contract.ErrContractNotSuspended
	}

	if err := s.contractRepo.UpdateStatus(ctx, c.ID, contract.ContractStatusActive, nil, nil); err != nil {
		return contract.ContractResponse{}, err
	}

	c.Status = contract.ContractStatusActive
	return toContractResponse(c), nil
}

func toContractResponse(c contract.Contract) contract.ContractResponse {
	resp := contract.ContractResponse{
		ID:                c.ID,
		EmployeeID:        c.EmployeeID,
		HireDate:          c.HireDate.Format(dateLayout),
		AccountingSalary:  c.AccountingSalary,
		RealSalary:        c.RealSalary,
		Frequency:         string(c.Frequency),
		Status:            string(c.Status),
		TerminationReason: c.TerminationReason,
		Suspensions:       c.Suspensions,
	}
	if c.TerminationDate != nil {
		formatted := c.TerminationDate.Format(dateLayout)
		resp.TerminationDate = &formatted
	}
	return resp
}
