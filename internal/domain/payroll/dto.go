package payroll

import (
	"github.com/planillapro/planilla-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== GENERATION DTOs ==========

type GeneratePayrollsRequest struct {
	PeriodYear  int      `json:"period_year"`
	PeriodMonth int      `json:"period_month"`
	EmployeeIDs []string `json:"employee_ids,omitempty"` // Empty = all employees with an active contract
}

func (r *GeneratePayrollsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "must be between 1 and 12"})
	}
	if r.PeriodYear < 2000 || r.PeriodYear > 2100 {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "must be between 2000 and 2100"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BatchItemStatus enum
type BatchItemStatus string

const (
	BatchItemCreated BatchItemStatus = "created"
	BatchItemSkipped BatchItemStatus = "skipped"
	BatchItemFailed  BatchItemStatus = "failed"
)

type BatchItemResult struct {
	EmployeeID string          `json:"employee_id"`
	PayrollID  string          `json:"payroll_id,omitempty"`
	Status     BatchItemStatus `json:"status"`
	Reason     string          `json:"reason,omitempty"`
}

type BatchResult struct {
	Created int               `json:"created"`
	Skipped int               `json:"skipped"`
	Failed  int               `json:"failed"`
	Items   []BatchItemResult `json:"items"`
}

type GenerateBiweeklyPaymentRequest struct {
	EmployeeID  string `json:"employee_id"`
	PeriodYear  int    `json:"period_year"`
	PeriodMonth int    `json:"period_month"`
	Biweekly    *int   `json:"biweekly,omitempty"`
}

func (r *GenerateBiweeklyPaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "must be between 1 and 12"})
	}
	if r.PeriodYear < 2000 || r.PeriodYear > 2100 {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "must be between 2000 and 2100"})
	}
	if r.Biweekly != nil && *r.Biweekly != 1 && *r.Biweekly != 2 {
		errs = append(errs, validator.ValidationError{Field: "biweekly", Message: "must be 1 or 2"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== ADJUSTMENT DTOs ==========

type CreateAdditionalRequest struct {
	PayrollID   string          `json:"-"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Quantity    int             `json:"quantity"`
	Biweekly    *int            `json:"biweekly,omitempty"`
	PayCard     int             `json:"pay_card"`
}

func (r *CreateAdditionalRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "is required"})
	}
	if r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}
	if r.Quantity < 1 {
		errs = append(errs, validator.ValidationError{Field: "quantity", Message: "must be at least 1"})
	}
	if r.Biweekly != nil && *r.Biweekly != 1 && *r.Biweekly != 2 {
		errs = append(errs, validator.ValidationError{Field: "biweekly", Message: "must be 1 or 2"})
	}
	if r.PayCard != int(ChannelBank) && r.PayCard != int(ChannelCash) {
		errs = append(errs, validator.ValidationError{Field: "pay_card", Message: "must be 1 (bank) or 2 (cash)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateAdditionalRequest struct {
	ID          string
	PayrollID   string           `json:"-"`
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Quantity    *int             `json:"quantity,omitempty"`
	Biweekly    *int             `json:"biweekly,omitempty"`
	PayCard     *int             `json:"pay_card,omitempty"`
}

type CreateDiscountRequest struct {
	PayrollID   string          `json:"-"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Quantity    int             `json:"quantity"`
	Biweekly    *int            `json:"biweekly,omitempty"`
	PayCard     int             `json:"pay_card"`
}

func (r *CreateDiscountRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "is required"})
	}
	if r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}
	if r.Quantity < 1 {
		errs = append(errs, validator.ValidationError{Field: "quantity", Message: "must be at least 1"})
	}
	if r.Biweekly != nil && *r.Biweekly != 1 && *r.Biweekly != 2 {
		errs = append(errs, validator.ValidationError{Field: "biweekly", Message: "must be 1 or 2"})
	}
	if r.PayCard != int(ChannelBank) && r.PayCard != int(ChannelCash) {
		errs = append(errs, validator.ValidationError{Field: "pay_card", Message: "must be 1 (bank) or 2 (cash)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateDiscountRequest struct {
	ID          string
	PayrollID   string           `json:"-"`
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Quantity    *int             `json:"quantity,omitempty"`
	Biweekly    *int             `json:"biweekly,omitempty"`
	PayCard     *int             `json:"pay_card,omitempty"`
}

// ========== ADVANCE DTOs ==========

type CreateAdvanceRequest struct {
	PayrollID   string          `json:"-"`
	AdvanceID   *string         `json:"advance_id,omitempty"` // set to update an existing advance
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Biweekly    *int            `json:"biweekly,omitempty"`
	PayCard     int             `json:"pay_card"`
	AdvanceDate *string         `json:"advance_date,omitempty"` // YYYY-MM-DD, defaults to today
}

func (r *CreateAdvanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "is required"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}
	if r.Biweekly != nil && *r.Biweekly != 1 && *r.Biweekly != 2 {
		errs = append(errs, validator.ValidationError{Field: "biweekly", Message: "must be 1 or 2"})
	}
	if r.PayCard != int(ChannelBank) && r.PayCard != int(ChannelCash) {
		errs = append(errs, validator.ValidationError{Field: "pay_card", Message: "must be 1 (bank) or 2 (cash)"})
	}
	if r.AdvanceDate != nil {
		if _, ok := validator.IsValidDate(*r.AdvanceDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "advance_date", Message: "must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MaxAdvanceResponse carries Found so a missing payroll/contract is
// distinguishable from a legitimately zero ceiling.
type MaxAdvanceResponse struct {
	PayrollID  string          `json:"payroll_id"`
	Biweekly   int             `json:"biweekly"`
	PayCard    *int            `json:"pay_card,omitempty"`
	MaxAdvance decimal.Decimal `json:"max_advance"`
	Found      bool            `json:"found"`
}

// ========== LIFECYCLE DTOs ==========

type EditCheckResponse struct {
	PayrollID string `json:"payroll_id"`
	CanEdit   bool   `json:"can_edit"`
	Reason    string `json:"reason,omitempty"`
	CanReopen bool   `json:"can_reopen"`
}

// ========== RESPONSES ==========

type PayRollResponse struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employee_id"`
	EmployeeName     *string         `json:"employee_name,omitempty"`
	PeriodYear       int             `json:"period_year"`
	PeriodMonth      int             `json:"period_month"`
	AccountingSalary decimal.Decimal `json:"accounting_salary"`
	RealSalary       decimal.Decimal `json:"real_salary"`
	Status           string          `json:"status"`
	PeriodStart      string          `json:"period_start"`
	PeriodEnd        string          `json:"period_end"`
	LoanID           *string         `json:"loan_id,omitempty"`
	CampaignID       *string         `json:"campaign_id,omitempty"`
}

type BiweeklyPaymentResponse struct {
	ID               string          `json:"id"`
	PayrollID        string          `json:"payroll_id"`
	Number           int             `json:"biweekly"`
	SettlementDate   string          `json:"settlement_date"`
	AccountingAmount decimal.Decimal `json:"accounting_amount"`
	RealAmount       decimal.Decimal `json:"real_amount"`
	TotalDiscounts   decimal.Decimal `json:"total_discounts"`
	TotalAdditionals decimal.Decimal `json:"total_additionals"`
	WorkedDays       int             `json:"worked_days"`
}

// PaymentBreakdown is the non-persisting calculation result for one period.
type PaymentBreakdown struct {
	PeriodKind         string          `json:"period_kind"`
	PeriodStart        string          `json:"period_start"`
	PeriodEnd          string          `json:"period_end"`
	BankTransferAmount decimal.Decimal `json:"bank_transfer_amount"`
	CashAmount         decimal.Decimal `json:"cash_amount"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	WorkedDays         int             `json:"worked_days"`
	NeedsProportional  bool            `json:"needs_proportional"`
	AdditionalsTotal   decimal.Decimal `json:"additionals_total"`
	DiscountsTotal     decimal.Decimal `json:"discounts_total"`
	CampaignTotal      decimal.Decimal `json:"campaign_total"`
}

type CalculatePaymentResponse struct {
	EmployeeID   string             `json:"employee_id"`
	PeriodYear   int                `json:"period_year"`
	PeriodMonth  int                `json:"period_month"`
	BankTransfer decimal.Decimal    `json:"bank_transfer"`
	Cash         decimal.Decimal    `json:"cash"`
	Total        decimal.Decimal    `json:"total"`
	Breakdown    []PaymentBreakdown `json:"breakdown"`
}

type PayrollSummaryResponse struct {
	PeriodYear        int             `json:"period_year"`
	PeriodMonth       int             `json:"period_month"`
	TotalEmployees    int             `json:"total_employees"`
	TotalBankTransfer decimal.Decimal `json:"total_bank_transfer"`
	TotalCash         decimal.Decimal `json:"total_cash"`
	TotalDiscounts    decimal.Decimal `json:"total_discounts"`
	TotalAdditionals  decimal.Decimal `json:"total_additionals"`
	OpenCount         int             `json:"open_count"`
	ClosedCount       int             `json:"closed_count"`
}
