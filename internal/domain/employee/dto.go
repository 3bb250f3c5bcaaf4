package employee

import (
	"github.com/planillapro/planilla-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	HeadquartersID string  `json:"headquarters_id"`
	EmployeeCode   string  `json:"employee_code"`
	FullName       string  `json:"full_name"`
	Email          *string `json:"email,omitempty"`
	PhoneNumber    *string `json:"phone_number,omitempty"`
	BankName       *string `json:"bank_name,omitempty"`
	BankAccount    *string `json:"bank_account,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.HeadquartersID) {
		errs = append(errs, validator.ValidationError{Field: "headquarters_id", Message: "is required"})
	}
	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "is required"})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID               string  `json:"id"`
	HeadquartersID   string  `json:"headquarters_id"`
	HeadquartersName *string `json:"headquarters_name,omitempty"`
	EmployeeCode     string  `json:"employee_code"`
	FullName         string  `json:"full_name"`
	Email            *string `json:"email,omitempty"`
	PhoneNumber      *string `json:"phone_number,omitempty"`
	BankName         *string `json:"bank_name,omitempty"`
	BankAccount      *string `json:"bank_account,omitempty"`
}
