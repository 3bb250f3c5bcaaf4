package employee

import (
	"time"
)

type Employee struct {
	ID             string
	HeadquartersID string
	EmployeeCode   string
	FullName       string
	Email          *string
	PhoneNumber    *string
	BankName       *string
	BankAccount    *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time

	// Joined fields
	HeadquartersName *string
}
