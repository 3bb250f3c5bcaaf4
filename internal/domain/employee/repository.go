package employee

import "context"

// EmployeeRepository defines data access for employees.
type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)

	// ListWithActiveContract returns employees that currently hold an
	// active contract; the batch payroll jobs iterate this set.
	ListWithActiveContract(ctx context.Context) ([]Employee, error)
}
