package payroll

import "errors"

var (
	ErrPayrollNotFound         = errors.New("payroll not found")
	ErrPayrollAlreadyExists    = errors.New("payroll already exists for this period")
	ErrPayrollClosed           = errors.New("payroll is closed, reopen it to edit")
	ErrPayrollAlreadyOpen      = errors.New("payroll is already open")
	ErrBiweeklyPaymentNotFound = errors.New("biweekly payment not found")
	ErrAdditionalNotFound      = errors.New("additional payment not found")
	ErrDiscountNotFound        = errors.New("discount payment not found")
	ErrLoanNotFound            = errors.New("loan not found")
	ErrCampaignNotFound        = errors.New("campaign not found")
	ErrInvalidPeriod           = errors.New("invalid payroll period")
	ErrInvalidBiweeklyNumber   = errors.New("biweekly number must be 1 or 2")
	ErrAdvanceExceedsCeiling   = errors.New("advance amount exceeds the allowed ceiling")
	ErrNotAnAdvance            = errors.New("discount payment is not a salary advance")
)
