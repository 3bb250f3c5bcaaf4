package response

import (
	"errors"
	"net/http"

	"github.com/planillapro/planilla-backend-go/internal/domain/contract"
	"github.com/planillapro/planilla-backend-go/internal/domain/employee"
	"github.com/planillapro/planilla-backend-go/internal/domain/headquarters"
	"github.com/planillapro/planilla-backend-go/internal/domain/payroll"
	"github.com/planillapro/planilla-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, payroll.ErrPayrollNotFound),
		errors.Is(err, payroll.ErrBiweeklyPaymentNotFound),
		errors.Is(err, payroll.ErrAdditionalNotFound),
		errors.Is(err, payroll.ErrDiscountNotFound),
		errors.Is(err, payroll.ErrLoanNotFound),
		errors.Is(err, payroll.ErrCampaignNotFound),
		errors.Is(err, contract.ErrContractNotFound),
		errors.Is(err, contract.ErrNoActiveContract),
		errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, headquarters.ErrHeadquartersNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, payroll.ErrPayrollAlreadyExists),
		errors.Is(err, payroll.ErrPayrollClosed),
		errors.Is(err, payroll.ErrPayrollAlreadyOpen),
		errors.Is(err, payroll.ErrAdvanceExceedsCeiling),
		errors.Is(err, payroll.ErrNotAnAdvance),
		errors.Is(err, contract.ErrContractAlreadyActive),
		errors.Is(err, contract.ErrContractTerminated),
		errors.Is(err, contract.ErrContractNotSuspended),
		errors.Is(err, employee.ErrEmployeeCodeExists),
		errors.Is(err, headquarters.ErrHeadquartersNameExists):
		Conflict(w, err.Error())
	case errors.Is(err, payroll.ErrInvalidPeriod),
		errors.Is(err, payroll.ErrInvalidBiweeklyNumber),
		errors.Is(err, contract.ErrSalaryBelowAccounting),
		errors.Is(err, contract.ErrInvalidSuspensionRange):
		BadRequest(w, err.Error(), nil)
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
