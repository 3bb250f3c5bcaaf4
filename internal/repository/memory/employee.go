package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/planillapro/planilla-backend-go/internal/domain/contract"
	"github.com/planillapro/planilla-backend-go/internal/domain/employee"
)

type EmployeeStore struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee

	// Contracts back the ListWithActiveContract query.
	contracts *ContractStore
}

func NewEmployeeStore(contracts *ContractStore) *EmployeeStore {
	return &EmployeeStore{
		employees: make(map[string]employee.Employee),
		contracts: contracts,
	}
}

func (s *EmployeeStore) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.employees {
		if existing.EmployeeCode == e.EmployeeCode && existing.DeletedAt == nil {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
	}

	e.ID = uuid.NewString()
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	s.employees[e.ID] = e
	return e, nil
}

func (s *EmployeeStore) GetByID(_ context.Context, id string) (employee.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.employees[id]
	if !ok || e.DeletedAt != nil {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (s *EmployeeStore) List(_ context.Context) ([]employee.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []employee.Employee
	for _, e := range s.employees {
		if e.DeletedAt == nil {
			result = append(result, e)
		}
	}
	return result, nil
}

func (s *EmployeeStore) ListWithActiveContract(ctx context.Context) ([]employee.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []employee.Employee
	for _, e := range s.employees {
		if e.DeletedAt != nil {
			continue
		}
		if c, err := s.contracts.GetActiveByEmployee(ctx, e.ID); err == nil && c.Status == contract.ContractStatusActive {
			result = append(result, e)
		}
	}
	return result, nil
}
