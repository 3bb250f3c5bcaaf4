package payroll

import "context"

// PayrollRepository defines data access for payroll months, their stored
// biweekly settlements and adjustment line items.
type PayrollRepository interface {
	// Payroll months
	CreatePayroll(ctx context.Context, p PayRoll) (PayRoll, error)
	GetPayrollByID(ctx context.Context, id string) (PayRoll, error)
	GetPayrollByEmployeePeriod(ctx context.Context, employeeID string, year, month int) (PayRoll, error)
	ListPayrollsByPeriod(ctx context.Context, year, month int) ([]PayRoll, error)
	UpdatePayrollStatus(ctx context.Context, id string, status PayrollStatus) error

	// Biweekly payments. Upsert replaces the whole row keyed by
	// (payroll_id, number) so regeneration is atomic.
	UpsertBiweeklyPayment(ctx context.Context, bp BiweeklyPayment) (BiweeklyPayment, error)
	GetBiweeklyPaymentByID(ctx context.Context, id string) (BiweeklyPayment, error)
	GetBiweeklyPayments(ctx context.Context, payrollID string) ([]BiweeklyPayment, error)
	DeleteBiweeklyPayment(ctx context.Context, id string) error

	// Additional payments
	CreateAdditional(ctx context.Context, a AdditionalPayment) (AdditionalPayment, error)
	GetAdditionalByID(ctx context.Context, id string) (AdditionalPayment, error)
	ListAdditionals(ctx context.Context, payrollID string) ([]AdditionalPayment, error)
	UpdateAdditional(ctx context.Context, a AdditionalPayment) error
	DeleteAdditional(ctx context.Context, id string) error

	// Discount payments (salary advances included)
	CreateDiscount(ctx context.Context, d DiscountPayment) (DiscountPayment, error)
	GetDiscountByID(ctx context.Context, id string) (DiscountPayment, error)
	ListDiscounts(ctx context.Context, payrollID string) ([]DiscountPayment, error)
	UpdateDiscount(ctx context.Context, d DiscountPayment) error
	DeleteDiscount(ctx context.Context, id string) error

	// Optional per-payroll adjustments
	GetLoanByID(ctx context.Context, id string) (Loan, error)
	GetCampaignByID(ctx context.Context, id string) (Campaign, error)

	// Affiliations
	GetEmployeeAffiliations(ctx context.Context, employeeID string) ([]EmployeeAffiliation, error)

	// Aggregations
	GetPayrollSummary(ctx context.Context, year, month int) (PayrollSummaryResponse, error)
}
