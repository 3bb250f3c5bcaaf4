package master

import (
	"context"
	"testing"

	"github.com/planillapro/planilla-backend-go/internal/domain/employee"
	"github.com/planillapro/planilla-backend-go/internal/domain/headquarters"
	"github.com/planillapro/planilla-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (MasterService, string) {
	t.Helper()

	contracts := memory.NewContractStore()
	employees := memory.NewEmployeeStore(contracts)
	hqs := memory.NewHeadquartersStore()
	svc := NewMasterService(hqs, employees)

	hq, err := svc.CreateHeadquarters(context.Background(), headquarters.CreateHeadquartersRequest{
		Name: "Main Office",
	})
	require.NoError(t, err)
	return svc, hq.ID
}

func TestCreateEmployee(t *testing.T) {
	svc, hqID := newService(t)
	ctx := context.Background()

	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		HeadquartersID: hqID,
		EmployeeCode:   "EMP-001",
		FullName:       "Maria Lopez",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	// Duplicate employee code is rejected.
	_, err = svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		HeadquartersID: hqID,
		EmployeeCode:   "EMP-001",
		FullName:       "Other Person",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)
}

func TestCreateEmployee_UnknownHeadquarters(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		HeadquartersID: "missing",
		EmployeeCode:   "EMP-002",
		FullName:       "Maria Lopez",
	})
	assert.ErrorIs(t, err, headquarters.ErrHeadquartersNotFound)
}

func TestCreateHeadquarters_DuplicateName(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.CreateHeadquarters(context.Background(), headquarters.CreateHeadquartersRequest{
		Name: "Main Office",
	})
	assert.ErrorIs(t, err, headquarters.ErrHeadquartersNameExists)
}

func TestListEmployees(t *testing.T) {
	svc, hqID := newService(t)
	ctx := context.Background()

	for _, code := range []string{"EMP-001", "EMP-002"} {
		_, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
			HeadquartersID: hqID,
			EmployeeCode:   code,
			FullName:       "Employee " + code,
		})
		require.NoError(t, err)
	}

	all, err := svc.ListEmployees(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Nobody has a contract yet.
	active, err := svc.ListEmployees(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)
}
