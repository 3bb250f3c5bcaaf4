package payroll

import (
	"context"
)

// PayrollService defines business logic for payroll generation, adjustment
// editing, salary advances and the open/closed lifecycle.
type PayrollService interface {
	// CalculatePayment computes the payment breakdown for an employee's
	// period without persisting anything
	CalculatePayment(ctx context.Context, employeeID string, year, month int, periodType *string) (CalculatePaymentResponse, error)

	// GenerateBiweeklyPayment computes and stores the settlement row(s) for
	// an employee's payroll month
	GenerateBiweeklyPayment(ctx context.Context, req GenerateBiweeklyPaymentRequest) ([]BiweeklyPaymentResponse, error)

	// CreatePayrolls creates payroll months in batch; failures are collected
	// per employee instead of aborting the batch
	CreatePayrolls(ctx context.Context, req GeneratePayrollsRequest) (BatchResult, error)

	// GetPayroll retrieves one payroll month with its settlements
	GetPayroll(ctx context.Context, id string) (PayRollResponse, error)
	GetBiweeklyPayments(ctx context.Context, payrollID string) ([]BiweeklyPaymentResponse, error)

	// RegenerateBiweeklyPayment recomputes a stored settlement from the live
	// adjustment set; a closed payroll is silently left untouched
	RegenerateBiweeklyPayment(ctx context.Context, payrollID, biweeklyID string) error
	DeleteBiweeklyPayment(ctx context.Context, payrollID, biweeklyID string) error

	// Adjustment lines; every mutation passes the edit guard first and
	// regenerates the affected settlement(s)
	AddAdditional(ctx context.Context, req CreateAdditionalRequest) (AdditionalPayment, error)
	UpdateAdditional(ctx context.Context, req UpdateAdditionalRequest) error
	DeleteAdditional(ctx context.Context, payrollID, additionalID string) error
	AddDiscount(ctx context.Context, req CreateDiscountRequest) (DiscountPayment, error)
	UpdateDiscount(ctx context.Context, req UpdateDiscountRequest) error
	DeleteDiscount(ctx context.Context, payrollID, discountID string) error

	// Salary advances
	CreateAdvance(ctx context.Context, req CreateAdvanceRequest) (DiscountPayment, error)
	GetMaxAdvance(ctx context.Context, payrollID string, biweekly int, payCard *int) (MaxAdvanceResponse, error)

	// Lifecycle
	CanEditPayroll(ctx context.Context, payrollID string) (EditCheckResponse, error)
	ClosePayroll(ctx context.Context, payrollID string) error
	ReopenPayroll(ctx context.Context, payrollID string) error

	// Summary
	GetPayrollSummary(ctx context.Context, year, month int) (PayrollSummaryResponse, error)
}
