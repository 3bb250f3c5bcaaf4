package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusOpen   PayrollStatus = "open"
	PayrollStatusClosed PayrollStatus = "closed"
)

// Channel is the disbursement channel for a payment or adjustment.
// 1 pays through the declared bank transfer, 2 pays in cash.
type Channel int

const (
	ChannelBank Channel = 1
	ChannelCash Channel = 2
)

// PeriodKind enum
type PeriodKind string

const (
	PeriodMonthly    PeriodKind = "monthly"
	PeriodFirstHalf  PeriodKind = "first_half"
	PeriodSecondHalf PeriodKind = "second_half"
)

// Period is a concrete settlement date range within a calendar month.
type Period struct {
	Start time.Time
	End   time.Time
	Kind  PeriodKind
}

// PayRoll - one record per employee per calendar month. The salary fields
// are a snapshot copied from the active contract at creation time so later
// contract changes do not rewrite history.
type PayRoll struct {
	ID               string
	EmployeeID       string
	PeriodYear       int
	PeriodMonth      int
	AccountingSalary decimal.Decimal
	RealSalary       decimal.Decimal
	Status           PayrollStatus
	PeriodStart      time.Time
	PeriodEnd        time.Time
	LoanID           *string
	CampaignID       *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined fields
	EmployeeName *string
}

// BiweeklyPayment - the stored settlement result for one half of a payroll
// month (or the single monthly settlement, kept as number 1). The amounts are
// always the net result after adjustments; rows are replaced wholesale by
// regeneration, never patched field by field.
type BiweeklyPayment struct {
	ID               string
	PayrollID        string
	Number           int
	SettlementDate   time.Time
	AccountingAmount decimal.Decimal
	RealAmount       decimal.Decimal
	TotalDiscounts   decimal.Decimal
	TotalAdditionals decimal.Decimal
	WorkedDays       int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// AdditionalPayment - an extra payment line tied to a payroll month.
// Biweekly nil means the line applies to both halves.
type AdditionalPayment struct {
	ID          string
	PayrollID   string
	Description string
	Amount      decimal.Decimal
	Quantity    int
	Biweekly    *int
	PayCard     Channel
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DiscountPayment - a deduction line tied to a payroll month. A line flagged
// IsAdvance is a salary advance: paid out early and settled against a later
// biweekly payment, recorded through DeductedInBiweeklyID.
type DiscountPayment struct {
	ID                   string
	PayrollID            string
	Description          string
	Amount               decimal.Decimal
	Quantity             int
	Biweekly             *int
	PayCard              Channel
	IsAdvance            bool
	AdvanceDate          *time.Time
	DeductedInBiweeklyID *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Loan - an employee loan whose installment is deducted from the linked
// payroll month.
type Loan struct {
	ID         string
	EmployeeID string
	Amount     decimal.Decimal
	Biweekly   *int
	PayCard    Channel
	CreatedAt  time.Time
}

// Campaign - a bonus campaign paid on top of the linked payroll month.
type Campaign struct {
	ID        string
	Name      string
	Amount    decimal.Decimal
	Biweekly  *int
	PayCard   Channel
	CreatedAt time.Time
}

// EmployeeAffiliation - a percentage-of-real-salary deduction such as pension
// or insurance. All of an employee's affiliations are summed and applied
// during the settlement half of the contract's schedule.
type EmployeeAffiliation struct {
	ID         string
	EmployeeID string
	Name       string
	Percent    decimal.Decimal
	CreatedAt  time.Time
}

// AdjustmentLine is the single typed shape every adjustment is reduced to
// before aggregation: additionals, discounts, loan installments and campaign
// bonuses all flow through it.
type AdjustmentLine struct {
	Amount     decimal.Decimal
	Quantity   int
	TargetHalf *int
	Channel    Channel
}

// Value is amount times quantity.
func (l AdjustmentLine) Value() decimal.Decimal {
	return l.Amount.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// AppliesTo reports whether the line counts toward the requested half.
// A nil target applies unconditionally; a nil request (monthly settlement)
// takes every line.
func (l AdjustmentLine) AppliesTo(half *int) bool {
	if l.TargetHalf == nil || half == nil {
		return true
	}
	return *l.TargetHalf == *half
}

// ChannelTotals holds per-channel sums of adjustment lines.
type ChannelTotals struct {
	Bank decimal.Decimal
	Cash decimal.Decimal
}

// Total is the combined sum over both channels.
func (t ChannelTotals) Total() decimal.Decimal {
	return t.Bank.Add(t.Cash)
}

// ForChannel picks one channel's total.
func (t ChannelTotals) ForChannel(c Channel) decimal.Decimal {
	if c == ChannelCash {
		return t.Cash
	}
	return t.Bank
}

// ZeroChannelTotals returns totals initialized to decimal zero so results are
// safe to use without further nil checks.
func ZeroChannelTotals() ChannelTotals {
	return ChannelTotals{Bank: decimal.Zero, Cash: decimal.Zero}
}

// CalcInput is everything the payroll calculator needs for one period.
// It is assembled by the service from the contract snapshot, the resolved
// period and the aggregated adjustments.
type CalcInput struct {
	AccountingSalary  decimal.Decimal
	RealSalary        decimal.Decimal
	PeriodKind        PeriodKind
	WorkedDays        int
	NeedsProportional bool
	Additionals       ChannelTotals
	Discounts         ChannelTotals
	Loan              ChannelTotals
	Campaign          ChannelTotals
}

// CalcResult is the deterministic output of the payroll calculator.
type CalcResult struct {
	BankTransferAmount decimal.Decimal
	CashAmount         decimal.Decimal
	TotalAmount        decimal.Decimal
	WorkedDays         int
	NeedsProportional  bool
	AdditionalsTotal   decimal.Decimal
	DiscountsTotal     decimal.Decimal
	CampaignTotal      decimal.Decimal
}
