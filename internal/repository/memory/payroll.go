// Package memory holds mutex-guarded in-memory implementations of the
// repository interfaces, used by service tests and local tooling.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/planillapro/planilla-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

type PayrollStore struct {
	mu           sync.RWMutex
	payrolls     map[string]payroll.PayRoll
	biweeklies   map[string]payroll.BiweeklyPayment
	additionals  map[string]payroll.AdditionalPayment
	discounts    map[string]payroll.DiscountPayment
	loans        map[string]payroll.Loan
	campaigns    map[string]payroll.Campaign
	affiliations map[string][]payroll.EmployeeAffiliation
}

func NewPayrollStore() *PayrollStore {
	return &PayrollStore{
		payrolls:     make(map[string]payroll.PayRoll),
		biweeklies:   make(map[string]payroll.BiweeklyPayment),
		additionals:  make(map[string]payroll.AdditionalPayment),
		discounts:    make(map[string]payroll.DiscountPayment),
		loans:        make(map[string]payroll.Loan),
		campaigns:    make(map[string]payroll.Campaign),
		affiliations: make(map[string][]payroll.EmployeeAffiliation),
	}
}

func (s *PayrollStore) CreatePayroll(_ context.Context, p payroll.PayRoll) (payroll.PayRoll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.payrolls {
		if existing.EmployeeID == p.EmployeeID && existing.PeriodYear == p.PeriodYear && existing.PeriodMonth == p.PeriodMonth {
			return payroll.PayRoll{}, payroll.ErrPayrollAlreadyExists
		}
	}

	p.ID = uuid.NewString()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	s.payrolls[p.ID] = p
	return p, nil
}

func (s *PayrollStore) GetPayrollByID(_ context.Context, id string) (payroll.PayRoll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.payrolls[id]
	if !ok {
		return payroll.PayRoll{}, payroll.ErrPayrollNotFound
	}
	return p, nil
}

func (s *PayrollStore) GetPayrollByEmployeePeriod(_ context.Context, employeeID string, year, month int) (payroll.PayRoll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.payrolls {
		if p.EmployeeID == employeeID && p.PeriodYear == year && p.PeriodMonth == month {
			return p, nil
		}
	}
	return payroll.PayRoll{}, payroll.ErrPayrollNotFound
}

func (s *PayrollStore) ListPayrollsByPeriod(_ context.Context, year, month int) ([]payroll.PayRoll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []payroll.PayRoll
	for _, p := range s.payrolls {
		if p.PeriodYear == year && p.PeriodMonth == month {
			result = append(result, p)
		}
	}
	return result, nil
}

func (s *PayrollStore) UpdatePayrollStatus(_ context.Context, id string, status payroll.PayrollStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payrolls[id]
	if !ok {
		return payroll.ErrPayrollNotFound
	}
	p.Status = status
	p.UpdatedAt = time.Now()
	s.payrolls[id] = p
	return nil
}

func (s *PayrollStore) UpsertBiweeklyPayment(_ context.Context, bp payroll.BiweeklyPayment) (payroll.BiweeklyPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.biweeklies {
		if existing.PayrollID == bp.PayrollID && existing.Number == bp.Number {
			bp.ID = id
			bp.CreatedAt = existing.CreatedAt
			bp.UpdatedAt = time.Now()
			s.biweeklies[id] = bp
			return bp, nil
		}
	}

	bp.ID = uuid.NewString()
	bp.CreatedAt = time.Now()
	bp.UpdatedAt = bp.CreatedAt
	s.biweeklies[bp.ID] = bp
	return bp, nil
}

func (s *PayrollStore) GetBiweeklyPaymentByID(_ context.Context, id string) (payroll.BiweeklyPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bp, ok := s.biweeklies[id]
	if !ok {
		return payroll.BiweeklyPayment{}, payroll.ErrBiweeklyPaymentNotFound
	}
	return bp, nil
}

func (s *PayrollStore) GetBiweeklyPayments(_ context.Context, payrollID string) ([]payroll.BiweeklyPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []payroll.BiweeklyPayment
	for _, bp := range s.biweeklies {
		if bp.PayrollID == payrollID {
			result = append(result, bp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Number < result[j].Number })
	return result, nil
}

func (s *PayrollStore) DeleteBiweeklyPayment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.biweeklies[id]; !ok {
		return payroll.ErrBiweeklyPaymentNotFound
	}
	delete(s.biweeklies, id)
	return nil
}

func (s *PayrollStore) CreateAdditional(_ context.Context, a payroll.AdditionalPayment) (payroll.AdditionalPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = uuid.NewString()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	s.additionals[a.ID] = a
	return a, nil
}

func (s *PayrollStore) GetAdditionalByID(_ context.Context, id string) (payroll.AdditionalPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.additionals[id]
	if !ok {
		return payroll.AdditionalPayment{}, payroll.ErrAdditionalNotFound
	}
	return a, nil
}

func (s *PayrollStore) ListAdditionals(_ context.Context, payrollID string) ([]payroll.AdditionalPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []payroll.AdditionalPayment
	for _, a := range s.additionals {
		if a.PayrollID == payrollID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (s *PayrollStore) UpdateAdditional(_ context.Context, a payroll.AdditionalPayment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.additionals[a.ID]; !ok {
		return payroll.ErrAdditionalNotFound
	}
	a.UpdatedAt = time.Now()
	s.additionals[a.ID] = a
	return nil
}

func (s *PayrollStore) DeleteAdditional(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.additionals[id]; !ok {
		return payroll.ErrAdditionalNotFound
	}
	delete(s.additionals, id)
	return nil
}

func (s *PayrollStore) CreateDiscount(_ context.Context, d payroll.DiscountPayment) (payroll.DiscountPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d.ID = uuid.NewString()
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	s.discounts[d.ID] = d
	return d, nil
}

func (s *PayrollStore) GetDiscountByID(_ context.Context, id string) (payroll.DiscountPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.discounts[id]
	if !ok {
		return payroll.DiscountPayment{}, payroll.ErrDiscountNotFound
	}
	return d, nil
}

func (s *PayrollStore) ListDiscounts(_ context.Context, payrollID string) ([]payroll.DiscountPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []payroll.DiscountPayment
	for _, d := range s.discounts {
		if d.PayrollID == payrollID {
			result = append(result, d)
		}
	}
	return result, nil
}

func (s *PayrollStore) UpdateDiscount(_ context.Context, d payroll.DiscountPayment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.discounts[d.ID]; !ok {
		return payroll.ErrDiscountNotFound
	}
	d.UpdatedAt = time.Now()
	s.discounts[d.ID] = d
	return nil
}

func (s *PayrollStore) DeleteDiscount(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.discounts[id]; !ok {
		return payroll.ErrDiscountNotFound
	}
	delete(s.discounts, id)
	return nil
}

func (s *PayrollStore) GetLoanByID(_ context.Context, id string) (payroll.Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.loans[id]
	if !ok {
		return payroll.Loan{}, payroll.ErrLoanNotFound
	}
	return l, nil
}

func (s *PayrollStore) GetCampaignByID(_ context.Context, id string) (payroll.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.campaigns[id]
	if !ok {
		return payroll.Campaign{}, payroll.ErrCampaignNotFound
	}
	return c, nil
}

func (s *PayrollStore) GetEmployeeAffiliations(_ context.Context, employeeID string) ([]payroll.EmployeeAffiliation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.affiliations[employeeID], nil
}

func (s *PayrollStore) GetPayrollSummary(_ context.Context, year, month int) (payroll.PayrollSummaryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := payroll.PayrollSummaryResponse{
		PeriodYear:        year,
		PeriodMonth:       month,
		TotalBankTransfer: decimal.Zero,
		TotalCash:         decimal.Zero,
		TotalDiscounts:    decimal.Zero,
		TotalAdditionals:  decimal.Zero,
	}

	for _, p := range s.payrolls {
		if p.PeriodYear != year || p.PeriodMonth != month {
			continue
		}
		summary.TotalEmployees++
		if p.Status == payroll.PayrollStatusClosed {
			summary.ClosedCount++
		} else {
			summary.OpenCount++
		}
		for _, bp := range s.biweeklies {
			if bp.PayrollID != p.ID {
				continue
			}
			summary.TotalBankTransfer = summary.TotalBankTransfer.Add(bp.AccountingAmount)
			summary.TotalCash = summary.TotalCash.Add(bp.RealAmount)
			summary.TotalDiscounts = summary.TotalDiscounts.Add(bp.TotalDiscounts)
			summary.TotalAdditionals = summary.TotalAdditionals.Add(bp.TotalAdditionals)
		}
	}
	return summary, nil
}

// ========== SEEDING ==========

// PutLoan stores a loan with a generated ID and returns it.
func (s *PayrollStore) PutLoan(l payroll.Loan) payroll.Loan {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	s.loans[l.ID] = l
	return l
}

// PutCampaign stores a campaign with a generated ID and returns it.
func (s *PayrollStore) PutCampaign(c payroll.Campaign) payroll.Campaign {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	s.campaigns[c.ID] = c
	return c
}

// PutAffiliation appends an affiliation for the employee.
func (s *PayrollStore) PutAffiliation(a payroll.EmployeeAffiliation) payroll.EmployeeAffiliation {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	s.affiliations[a.EmployeeID] = append(s.affiliations[a.EmployeeID], a)
	return a
}
