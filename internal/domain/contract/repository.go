package contract

import (
	"context"
	"time"
)

// ContractRepository defines data access for employment contracts.
type ContractRepository interface {
	Create(ctx context.Context, c Contract) (Contract, error)
	GetByID(ctx context.Context, id string) (Contract, error)
	GetActiveByEmployee(ctx context.Context, employeeID string) (Contract, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Contract, error)

	// TerminateActiveByEmployee terminates every active contract of the
	// employee; used inside the activation transaction so the
	// one-active-contract invariant holds atomically.
	TerminateActiveByEmployee(ctx context.Context, employeeID string, terminatedAt time.Time, reason string) error

	UpdateStatus(ctx context.Context, id string, status ContractStatus, terminationDate *time.Time, reason *string) error
	AddSuspension(ctx context.Context, id string, p SuspensionPeriod) error
}

// ContractService defines contract lifecycle operations.
type ContractService interface {
	Hire(ctx context.Context, req HireRequest) (ContractResponse, error)
	Get(ctx context.Context, id string) (ContractResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]ContractResponse, error)

	// Activate makes the contract active, terminating any other active
	// contract of the same employee in the same transaction.
	Activate(ctx context.Context, id string) (ContractResponse, error)
	Terminate(ctx context.Context, req TerminateRequest) (ContractResponse, error)
	Suspend(ctx context.Context, req SuspendRequest) (ContractResponse, error)
	Reactivate(ctx context.Context, id string) (ContractResponse, error)
}
