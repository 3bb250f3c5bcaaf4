package master

import (
	"context"
	"fmt"

	"github.com/planillapro/planilla-backend-go/internal/domain/employee"
	"github.com/planillapro/planilla-backend-go/internal/domain/headquarters"
)

// MasterService manages the reference data payrolls hang off of.
type MasterService interface {
	// Headquarters operations
	CreateHeadquarters(ctx context.Context, req headquarters.CreateHeadquartersRequest) (headquarters.HeadquartersResponse, error)
	GetHeadquarters(ctx context.Context, id string) (headquarters.HeadquartersResponse, error)
	ListHeadquarters(ctx context.Context) ([]headquarters.HeadquartersResponse, error)

	// Employee operations
	CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error)
	ListEmployees(ctx context.Context, activeOnly bool) ([]employee.EmployeeResponse, error)
}

type masterServiceImpl struct {
	headquartersRepo headquarters.HeadquartersRepository
	employeeRepo     employee.EmployeeRepository
}

func NewMasterService(
	headquartersRepo headquarters.HeadquartersRepository,
	employeeRepo employee.EmployeeRepository,
) MasterService {
	return &masterServiceImpl{
		headquartersRepo: headquartersRepo,
		employeeRepo:     employeeRepo,
	}
}

// ========== HEADQUARTERS OPERATIONS ==========

func (s *masterServiceImpl) CreateHeadquarters(ctx context.Context, req headquarters.CreateHeadquartersRequest) (headquarters.HeadquartersResponse, error) {
	if err := req.Validate(); err != nil {
		return headquarters.HeadquartersResponse{}, err
	}

	created, err := s.headquartersRepo.Create(ctx, headquarters.Headquarters{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		return headquarters.HeadquartersResponse{}, fmt.Errorf("failed to create headquarters: %w", err)
	}

	return toHeadquartersResponse(created), nil
}

func (s *masterServiceImpl) GetHeadquarters(ctx context.Context, id string) (headquarters.HeadquartersResponse, error) {
	h, err := s.headquartersRepo.GetByID(ctx, id)
	if err != nil {
		return headquarters.HeadquartersResponse{}, err
	}
	return toHeadquartersResponse(h), nil
}

func (s *masterServiceImpl) ListHeadquarters(ctx context.Context) ([]headquarters.HeadquartersResponse, error) {
	list, err := s.headquartersRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list headquarters: %w", err)
	}

	responses := make([]headquarters.HeadquartersResponse, 0, len(list))
	for _, h := range list {
		responses = append(responses, toHeadquartersResponse(h))
	}
	return responses, nil
}

// ========== EMPLOYEE OPERATIONS ==========

func (s *masterServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if _, err := s.headquartersRepo.GetByID(ctx, req.HeadquartersID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		HeadquartersID: req.HeadquartersID,
		EmployeeCode:   req.EmployeeCode,
		FullName:       req.FullName,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		BankName:       req.BankName,
		BankAccount:    req.BankAccount,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toEmployeeResponse(created), nil
}

func (s *masterServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toEmployeeResponse(e), nil
}

func (s *masterServiceImpl) ListEmployees(ctx context.Context, activeOnly bool) ([]employee.EmployeeResponse, error) {
	var (
		list []employee.Employee
		err  error
	)
	if activeOnly {
		list, err = s.employeeRepo.ListWithActiveContract(ctx)
	} else {
		list, err = s.employeeRepo.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(list))
	for _, e := range list {
		responses = append(responses, toEmployeeResponse(e))
	}
	return responses, nil
}

// ========== MAPPERS ==========

func toHeadquartersResponse(h headquarters.Headquarters) headquarters.HeadquartersResponse {
	return headquarters.HeadquartersResponse{
		ID:      h.ID,
		Name:    h.Name,
		Address: h.Address,
	}
}

func toEmployeeResponse(e employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:               e.ID,
		HeadquartersID:   e.HeadquartersID,
		HeadquartersName: e.HeadquartersName,
		EmployeeCode:     e.EmployeeCode,
		FullName:         e.FullName,
		Email:            e.Email,
		PhoneNumber:      e.PhoneNumber,
		BankName:         e.BankName,
		BankAccount:      e.BankAccount,
	}
}
