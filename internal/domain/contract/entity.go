package contract

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayFrequency enum
type PayFrequency string

const (
	PayFrequencyMonthly  PayFrequency = "monthly"
	PayFrequencyBiweekly PayFrequency = "biweekly"
)

// ContractStatus enum
type ContractStatus string

const (
	ContractStatusActive     ContractStatus = "active"
	ContractStatusSuspended  ContractStatus = "suspended"
	ContractStatusTerminated ContractStatus = "terminated"
)

// SuspensionPeriod is a date range during which the contract was suspended.
type SuspensionPeriod struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contract - an employment contract. AccountingSalary is the declared,
// bank-reported salary; RealSalary is the actual total compensation and is
// never below AccountingSalary. An employee has at most one active contract
// at any time.
type Contract struct {
	ID                string
	EmployeeID        string
	HireDate          time.Time
	AccountingSalary  decimal.Decimal
	RealSalary        decimal.Decimal
	Frequency         PayFrequency
	Status            ContractStatus
	TerminationDate   *time.Time
	TerminationReason *string
	Suspensions       []SuspensionPeriod
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
