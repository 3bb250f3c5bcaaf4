package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/planillapro/planilla-backend-go/internal/domain/contract"
)

type ContractStore struct {
	mu        sync.RWMutex
	contracts map[string]contract.Contract
}

func NewContractStore() *ContractStore {
	return &ContractStore{contracts: make(map[string]contract.Contract)}
}

func (s *ContractStore) Create(_ context.Context, c contract.Contract) (contract.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	s.contracts[c.ID] = c
	return c, nil
}

func (s *ContractStore) GetByID(_ context.Context, id string) (contract.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contracts[id]
	if !ok {
		return contract.Contract{}, contract.ErrContractNotFound
	}
	return c, nil
}

func (s *ContractStore) GetActiveByEmployee(_ context.Context, employeeID string) (contract.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.contracts {
		if c.EmployeeID == employeeID && c.Status == contract.ContractStatusActive {
			return c, nil
		}
	}
	return contract.Contract{}, contract.ErrNoActiveContract
}

func (s *ContractStore) ListByEmployee(_ context.Context, employeeID string) ([]contract.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []contract.Contract
	for _, c := range s.contracts {
		if c.EmployeeID == employeeID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (s *ContractStore) TerminateActiveByEmployee(_ context.Context, employeeID string, terminatedAt time.Time, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, c := range s.contracts {
		if c.EmployeeID == employeeID && c.Status == contract.ContractStatusActive {
			c.Status = contract.ContractStatusTerminated
			c.TerminationDate = &terminatedAt
			c.TerminationReason = &reason
			c.UpdatedAt = time.Now()
			s.contracts[id] = c
		}
	}
	return nil
}

func (s *ContractStore) UpdateStatus(_ context.Context, id string, status contract.ContractStatus, terminationDate *time.Time, reason *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contracts[id]
	if !ok {
		return contract.ErrContractNotFound
	}
	c.Status = status
	c.TerminationDate = terminationDate
	c.TerminationReason = reason
	c.UpdatedAt = time.Now()
	s.contracts[id] = c
	return nil
}

func (s *ContractStore) AddSuspension(_ context.Context, id string, p contract.SuspensionPeriod) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contracts[id]
	if !ok {
		return contract.ErrContractNotFound
	}
	c.Suspensions = append(c.Suspensions, p)
	c.UpdatedAt = time.Now()
	s.contracts[id] = c
	return nil
}
