package contract

import (
	"github.com/planillapro/planilla-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type HireRequest struct {
	EmployeeID       string          `json:"employee_id"`
	HireDate         string          `json:"hire_date"` // YYYY-MM-DD
	AccountingSalary decimal.Decimal `json:"accounting_salary"`
	RealSalary       decimal.Decimal `json:"real_salary"`
	Frequency        string          `json:"frequency"` // "monthly" or "biweekly"
}

func (r *HireRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "must be YYYY-MM-DD"})
	}
	if !r.AccountingSalary.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "accounting_salary", Message: "must be positive"})
	}
	if r.Frequency != string(PayFrequencyMonthly) && r.Frequency != string(PayFrequencyBiweekly) {
		errs = append(errs, validator.ValidationError{Field: "frequency", Message: "must be 'monthly' or 'biweekly'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TerminateRequest struct {
	ContractID      string  `json:"-"`
	TerminationDate string  `json:"termination_date"` // YYYY-MM-DD
	Reason          *string `json:"reason,omitempty"`
}

func (r *TerminateRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.TerminationDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "termination_date", Message: "must be YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SuspendRequest struct {
	ContractID string `json:"-"`
	From       string `json:"from"` // YYYY-MM-DD
	To         string `json:"to"`   // YYYY-MM-DD
}

func (r *SuspendRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.From); !ok {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "must be YYYY-MM-DD"})
	}
	if _, ok := validator.IsValidDate(r.To); !ok {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "must be YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ContractResponse struct {
	ID                string             `json:"id"`
	EmployeeID        string             `json:"employee_id"`
	HireDate          string             `json:"hire_date"`
	AccountingSalary  decimal.Decimal    `json:"accounting_salary"`
	RealSalary        decimal.Decimal    `json:"real_salary"`
	Frequency         string             `json:"frequency"`
	Status            string             `json:"status"`
	TerminationDate   *string            `json:"termination_date,omitempty"`
	TerminationReason *string            `json:"termination_reason,omitempty"`
	Suspensions       []SuspensionPeriod `json:"suspensions,omitempty"`
}
