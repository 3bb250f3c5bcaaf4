package payroll

import (
	"context"
	"errors"
	"fmt"

	"github.com/planillapro/planilla-backend-go/internal/domain/contract"
	"github.com/planillapro/planilla-backend-go/internal/domain/employee"
	"github.com/planillapro/planilla-backend-go/internal/domain/payroll"
	"github.com/planillapro/planilla-backend-go/internal/pkg/clock"
	"github.com/planillapro/planilla-backend-go/internal/pkg/database"
	"github.com/planillapro/planilla-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type PayrollServiceImpl struct {
	tx           database.TxRunner
	payrollRepo  payroll.PayrollRepository
	contractRepo contract.ContractRepository
	employeeRepo employee.EmployeeRepository
	clock        clock.Clock

	// Sundays count as worked days when set; a deployment-level rule.
	includeSundays bool
}

func NewPayrollService(
	tx database.TxRunner,
	payrollRepo payroll.PayrollRepository,
	contractRepo contract.ContractRepository,
	employeeRepo employee.EmployeeRepository,
	clk clock.Clock,
	includeSundays bool,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		tx:             tx,
		payrollRepo:    payrollRepo,
		contractRepo:   contractRepo,
		employeeRepo:   employeeRepo,
		clock:          clk,
		includeSundays: includeSundays,
	}
}

// ========== ADJUSTMENT LOADING ==========

// adjustmentSet is the live set of adjustment lines for one payroll month,
// already reduced to typed lines. regular mirrors discounts minus advance
// lines; the advance ceiling works off that subset.
type adjustmentSet struct {
	additionals []payroll.AdjustmentLine
	discounts   []payroll.AdjustmentLine
	regular     []payroll.AdjustmentLine
	loan        []payroll.AdjustmentLine
	campaign    []payroll.AdjustmentLine
}

func (s *PayrollServiceImpl) loadAdjustments(ctx context.Context, p payroll.PayRoll, c contract.Contract) (adjustmentSet, error) {
	var set adjustmentSet

	additionals, err := s.payrollRepo.ListAdditionals(ctx, p.ID)
	if err != nil {
		return set, fmt.Errorf("list additionals: %w", err)
	}
	for _, a := range additionals {
		set.additionals = append(set.additionals, payroll.AdjustmentLine{
			Amount:     a.Amount,
			Quantity:   a.Quantity,
			TargetHalf: a.Biweekly,
			Channel:    a.PayCard,
		})
	}

	discounts, err := s.payrollRepo.ListDiscounts(ctx, p.ID)
	if err != nil {
		return set, fmt.Errorf("list discounts: %w", err)
	}
	for _, d := range discounts {
		line := payroll.AdjustmentLine{
			Amount:     d.Amount,
			Quantity:   d.Quantity,
			TargetHalf: d.Biweekly,
			Channel:    d.PayCard,
		}
		set.discounts = append(set.discounts, line)
		if !d.IsAdvance {
			set.regular = append(set.regular, line)
		}
	}

	if p.LoanID != nil {
		loan, err := s.payrollRepo.GetLoanByID(ctx, *p.LoanID)
		if err != nil {
			return set, fmt.Errorf("get loan: %w", err)
		}
		set.loan = append(set.loan, payroll.AdjustmentLine{
			Amount:     loan.Amount,
			Quantity:   1,
			TargetHalf: loan.Biweekly,
			Channel:    loan.PayCard,
		})
	}

	if p.CampaignID != nil {
		campaign, err := s.payrollRepo.GetCampaignByID(ctx, *p.CampaignID)
		if err != nil {
			return set, fmt.Errorf("get campaign: %w", err)
		}
		set.campaign = append(set.campaign, payroll.AdjustmentLine{
			Amount:     campaign.Amount,
			Quantity:   1,
			TargetHalf: campaign.Biweekly,
			Channel:    campaign.PayCard,
		})
	}

	affLine, err := s.affiliationLine(ctx, p, c)
	if err != nil {
		return set, err
	}
	if affLine != nil {
		set.discounts = append(set.discounts, *affLine)
		set.regular = append(set.regular, *affLine)
	}

	return set, nil
}

// affiliationLine sums all affiliation percentages of the employee into a
// single bank-channel deduction applied in the settlement half: quincenal
// contracts settle affiliations in the second half, monthly contracts in
// their single settlement.
func (s *PayrollServiceImpl) affiliationLine(ctx context.Context, p payroll.PayRoll, c contract.Contract) (*payroll.AdjustmentLine, error) {
	affiliations, err := s.payrollRepo.GetEmployeeAffiliations(ctx, p.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("get affiliations: %w", err)
	}
	if len(affiliations) == 0 {
		return nil, nil
	}

	percent := decimal.Zero
	for _, a := range affiliations {
		percent = percent.Add(a.Percent)
	}
	if !percent.IsPositive() {
		return nil, nil
	}

	var targetHalf *int
	if c.Frequency == contract.PayFrequencyBiweekly {
		second := 2
		targetHalf = &second
	}

	return &payroll.AdjustmentLine{
		Amount:     percent.Div(decimal.NewFromInt(100)).Mul(p.RealSalary),
		Quantity:   1,
		TargetHalf: targetHalf,
		Channel:    payroll.ChannelBank,
	}, nil
}

// ========== CALCULATION ==========

func halfOf(kind payroll.PeriodKind) *int {
	switch kind {
	case payroll.PeriodFirstHalf:
		first := 1
		return &first
	case payroll.PeriodSecondHalf:
		second := 2
		return &second
	default:
		return nil
	}
}

func settlementNumber(kind payroll.PeriodKind) int {
	if kind == payroll.PeriodSecondHalf {
		return 2
	}
	return 1
}

func (s *PayrollServiceImpl) computeSettlement(p payroll.PayRoll, c contract.Contract, adj adjustmentSet, period payroll.Period) payroll.CalcResult {
	half := halfOf(period.Kind)
	return payroll.Calculate(payroll.CalcInput{
		AccountingSalary:  p.AccountingSalary,
		RealSalary:        p.RealSalary,
		PeriodKind:        period.Kind,
		WorkedDays:        payroll.WorkedDays(c.HireDate, period.Start, period.End, s.includeSundays),
		NeedsProportional: payroll.NeedsProportional(c.HireDate, period.Start),
		Additionals:       payroll.Aggregate(adj.additionals, half),
		Discounts:         payroll.Aggregate(adj.discounts, half),
		Loan:              payroll.Aggregate(adj.loan, half),
		Campaign:          payroll.Aggregate(adj.campaign, half),
	})
}

func (s *PayrollServiceImpl) CalculatePayment(ctx context.Context, employeeID string, year, month int, periodType *string) (payroll.CalculatePaymentResponse, error) {
	if validator.IsEmpty(employeeID) {
		return payroll.CalculatePaymentResponse{}, validator.ValidationErrors{
			{Field: "employee_id", Message: "is required"},
		}
	}

	c, err := s.contractRepo.GetActiveByEmployee(ctx, employeeID)
	if err != nil {
		return payroll.CalculatePaymentResponse{}, err
	}

	periods, err := payroll.ResolvePeriods(c.Frequency, year, month)
	if err != nil {
		return payroll.CalculatePaymentResponse{}, err
	}
	if periodType != nil {
		filtered := periods[:0]
		for _, period := range periods {
			if string(period.Kind) == *periodType {
				filtered = append(filtered, period)
			}
		}
		if len(filtered) == 0 {
			return payroll.CalculatePaymentResponse{}, payroll.ErrInvalidPeriod
		}
		periods = filtered
	}

	p, adj, err := s.snapshotForCalculation(ctx, employeeID, year, month, c)
	if err != nil {
		return payroll.CalculatePaymentResponse{}, err
	}

	resp := payroll.CalculatePaymentResponse{
		EmployeeID:   employeeID,
		PeriodYear:   year,
		PeriodMonth:  month,
		BankTransfer: decimal.Zero,
		Cash:         decimal.Zero,
		Total:        decimal.Zero,
	}
	for _, period := range periods {
		result := s.computeSettlement(p, c, adj, period)
		resp.Breakdown = append(resp.Breakdown, payroll.PaymentBreakdown{
			PeriodKind:         string(period.Kind),
			PeriodStart:        period.Start.Format(dateLayout),
			PeriodEnd:          period.End.Format(dateLayout),
			BankTransferAmount: result.BankTransferAmount,
			CashAmount:         result.CashAmount,
			TotalAmount:        result.TotalAmount,
			WorkedDays:         result.WorkedDays,
			NeedsProportional:  result.NeedsProportional,
			AdditionalsTotal:   result.AdditionalsTotal,
			DiscountsTotal:     result.DiscountsTotal,
			CampaignTotal:      result.CampaignTotal,
		})
		resp.BankTransfer = resp.BankTransfer.Add(result.BankTransferAmount)
		resp.Cash = resp.Cash.Add(result.CashAmount)
		resp.Total = resp.Total.Add(result.TotalAmount)
	}

	return resp, nil
}

// snapshotForCalculation prefers the stored payroll month (salary freeze plus
// its adjustments). Without one the contract salaries stand in and only
// employee-level affiliations apply, so the preview works before generation.
func (s *PayrollServiceImpl) snapshotForCalculation(ctx context.Context, employeeID string, year, month int, c contract.Contract) (payroll.PayRoll, adjustmentSet, error) {
	p, err := s.payrollRepo.GetPayrollByEmployeePeriod(ctx, employeeID, year, month)
	if err == nil {
		adj, adjErr := s.loadAdjustments(ctx, p, c)
		return p, adj, adjErr
	}
	if !errors.Is(err, payroll.ErrPayrollNotFound) {
		return payroll.PayRoll{}, adjustmentSet{}, err
	}

	p = payroll.PayRoll{
		EmployeeID:       employeeID,
		PeriodYear:       year,
		PeriodMonth:      month,
		AccountingSalary: c.AccountingSalary,
		RealSalary:       c.RealSalary,
		Status:           payroll.PayrollStatusOpen,
	}
	var adj adjustmentSet
	affLine, err := s.affiliationLine(ctx, p, c)
	if err != nil {
		return payroll.PayRoll{}, adjustmentSet{}, err
	}
	if affLine != nil {
		adj.discounts = append(adj.discounts, *affLine)
		adj.regular = append(adj.regular, *affLine)
	}
	return p, adj, nil
}

// ========== GENERATION ==========

func (s *PayrollServiceImpl) GenerateBiweeklyPayment(ctx context.Context, req payroll.GenerateBiweeklyPaymentRequest) ([]payroll.BiweeklyPaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.payrollRepo.GetPayrollByEmployeePeriod(ctx, req.EmployeeID, req.PeriodYear, req.PeriodMonth)
	if err != nil {
		return nil, err
	}
	if p.Status != payroll.PayrollStatusOpen {
		return nil, payroll.ErrPayrollClosed
	}

	c, err := s.contractRepo.GetActiveByEmployee(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	periods, err := payroll.ResolvePeriods(c.Frequency, req.PeriodYear, req.PeriodMonth)
	if err != nil {
		return nil, err
	}
	if req.Biweekly != nil {
		filtered := periods[:0]
		for _, period := range periods {
			if settlementNumber(period.Kind) == *req.Biweekly {
				filtered = append(filtered, period)
			}
		}
		if len(filtered) == 0 {
			return nil, payroll.ErrInvalidBiweeklyNumber
		}
		periods = filtered
	}

	adj, err := s.loadAdjustments(ctx, p, c)
	if err != nil {
		return nil, err
	}

	var stored []payroll.BiweeklyPayment
	err = s.tx.RunTx(ctx, func(txCtx context.Context) error {
		for _, period := range periods {
			result := s.computeSettlement(p, c, adj, period)
			bp, err := s.payrollRepo.UpsertBiweeklyPayment(txCtx, payroll.BiweeklyPayment{
				PayrollID:        p.ID,
				Number:           settlementNumber(period.Kind),
				SettlementDate:   period.End,
				AccountingAmount: result.BankTransferAmount,
				RealAmount:       result.CashAmount,
				TotalDiscounts:   result.DiscountsTotal,
				TotalAdditionals: result.AdditionalsTotal.Add(result.CampaignTotal),
				WorkedDays:       result.WorkedDays,
			})
			if err != nil {
				return err
			}
			stored = append(stored, bp)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.BiweeklyPaymentResponse, 0, len(stored))
	for _, bp := range stored {
		responses = append(responses, toBiweeklyResponse(bp))
	}
	return responses, nil
}

func (s *PayrollServiceImpl) CreatePayrolls(ctx context.Context, req payroll.GeneratePayrollsRequest) (payroll.BatchResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.BatchResult{}, err
	}

	employeeIDs := req.EmployeeIDs
	if len(employeeIDs) == 0 {
		employees, err := s.employeeRepo.ListWithActiveContract(ctx)
		if err != nil {
			return payroll.BatchResult{}, err
		}
		for _, e := range employees {
			employeeIDs = append(employeeIDs, e.ID)
		}
	}

	var result payroll.BatchResult
	for _, employeeID := range employeeIDs {
		item := s.createPayrollForEmployee(ctx, employeeID, req.PeriodYear, req.PeriodMonth)
		switch item.Status {
		case payroll.BatchItemCreated:
			result.Created++
		case payroll.BatchItemSkipped:
			result.Skipped++
		default:
			result.Failed++
		}
		result.Items = append(result.Items, item)
	}

	return result, nil
}

func (s *PayrollServiceImpl) createPayrollForEmployee(ctx context.Context, employeeID string, year, month int) payroll.BatchItemResult {
	item := payroll.BatchItemResult{EmployeeID: employeeID}

	c, err := s.contractRepo.GetActiveByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, contract.ErrNoActiveContract) || errors.Is(err, contract.ErrContractNotFound) {
			item.Status = payroll.BatchItemSkipped
			item.Reason = "no active contract"
			return item
		}
		item.Status = payroll.BatchItemFailed
		item.Reason = err.Error()
		return item
	}

	if _, err := s.payrollRepo.GetPayrollByEmployeePeriod(ctx, employeeID, year, month); err == nil {
		item.Status = payroll.BatchItemSkipped
		item.Reason = "payroll already exists for the period"
		return item
	} else if !errors.Is(err, payroll.ErrPayrollNotFound) {
		item.Status = payroll.BatchItemFailed
		item.Reason = err.Error()
		return item
	}

	periods, err := payroll.ResolvePeriods(c.Frequency, year, month)
	if err != nil {
		item.Status = payroll.BatchItemFailed
		item.Reason = err.Error()
		return item
	}

	created, err := s.payrollRepo.CreatePayroll(ctx, payroll.PayRoll{
		EmployeeID:       employeeID,
		PeriodYear:       year,
		PeriodMonth:      month,
		AccountingSalary: c.AccountingSalary,
		RealSalary:       c.RealSalary,
		Status:           payroll.PayrollStatusOpen,
		PeriodStart:      periods[0].Start,
		PeriodEnd:        periods[len(periods)-1].End,
	})
	if err != nil {
		item.Status = payroll.BatchItemFailed
		item.Reason = err.Error()
		return item
	}

	item.Status = payroll.BatchItemCreated
	item.PayrollID = created.ID
	return item
}

// ========== RETRIEVAL ==========

func (s *PayrollServiceImpl) GetPayroll(ctx context.Context, id string) (payroll.PayRollResponse, error) {
	p, err := s.payrollRepo.GetPayrollByID(ctx, id)
	if err != nil {
		return payroll.PayRollResponse{}, err
	}
	return toPayrollResponse(p), nil
}

func (s *PayrollServiceImpl) GetBiweeklyPayments(ctx context.Context, payrollID string) ([]payroll.BiweeklyPaymentResponse, error) {
	if _, err := s.payrollRepo.GetPayrollByID(ctx, payrollID); err != nil {
		return nil, err
	}

	payments, err := s.payrollRepo.GetBiweeklyPayments(ctx, payrollID)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.BiweeklyPaymentResponse, 0, len(payments))
	for _, bp := range payments {
		responses = append(responses, toBiweeklyResponse(bp))
	}
	return responses, nil
}

func (s *PayrollServiceImpl) GetPayrollSummary(ctx context.Context, year, month int) (payroll.PayrollSummaryResponse, error) {
	if !validator.IsValidPeriod(year, month) {
		return payroll.PayrollSummaryResponse{}, payroll.ErrInvalidPeriod
	}
	return s.payrollRepo.GetPayrollSummary(ctx, year, month)
}

// ========== REGENERATION ==========

func (s *PayrollServiceImpl) RegenerateBiweeklyPayment(ctx context.Context, payrollID, biweeklyID string) error {
	p, err := s.payrollRepo.GetPayrollByID(ctx, payrollID)
	if err != nil {
		return err
	}
	// A closed payroll is never regenerated; skipping silently keeps the
	// operation idempotent for cascading callers.
	if p.Status != payroll.PayrollStatusOpen {
		return nil
	}

	bp, err := s.payrollRepo.GetBiweeklyPaymentByID(ctx, biweeklyID)
	if err != nil {
		return err
	}
	if bp.PayrollID != payrollID {
		return payroll.ErrBiweeklyPaymentNotFound
	}

	half := bp.Number
	return s.regenerateStored(ctx, p, &half)
}

func (s *PayrollServiceImpl) DeleteBiweeklyPayment(ctx context.Context, payrollID, biweeklyID string) error {
	p, err := s.ensureEditable(ctx, payrollID)
	if err != nil {
		return err
	}

	bp, err := s.payrollRepo.GetBiweeklyPaymentByID(ctx, biweeklyID)
	if err != nil {
		return err
	}
	if bp.PayrollID != p.ID {
		return payroll.ErrBiweeklyPaymentNotFound
	}

	return s.payrollRepo.DeleteBiweeklyPayment(ctx, biweeklyID)
}

// regenerateStored recomputes the stored settlement rows of the payroll from
// the live adjustment set and replaces them wholesale. A non-nil half limits
// the rewrite to that settlement number; nil rewrites every stored row.
func (s *PayrollServiceImpl) regenerateStored(ctx context.Context, p payroll.PayRoll, half *int) error {
	if p.Status != payroll.PayrollStatusOpen {
		return nil
	}

	c, err := s.contractRepo.GetActiveByEmployee(ctx, p.EmployeeID)
	if err != nil {
		return err
	}

	stored, err := s.payrollRepo.GetBiweeklyPayments(ctx, p.ID)
	if err != nil {
		return err
	}
	if len(stored) == 0 {
		return nil
	}

	periods, err := payroll.ResolvePeriods(c.Frequency, p.PeriodYear, p.PeriodMonth)
	if err != nil {
		return err
	}
	byNumber := make(map[int]payroll.Period, len(periods))
	for _, period := range periods {
		byNumber[settlementNumber(period.Kind)] = period
	}

	adj, err := s.loadAdjustments(ctx, p, c)
	if err != nil {
		return err
	}

	return s.tx.RunTx(ctx, func(txCtx context.Context) error {
		for _, bp := range stored {
			if half != nil && bp.Number != *half {
				continue
			}
			period, ok := byNumber[bp.Number]
			if !ok {
				return payroll.ErrInvalidBiweeklyNumber
			}
			result := s.computeSettlement(p, c, adj, period)
			if _, err := s.payrollRepo.UpsertBiweeklyPayment(txCtx, payroll.BiweeklyPayment{
				PayrollID:        p.ID,
				Number:           bp.Number,
				SettlementDate:   period.End,
				AccountingAmount: result.BankTransferAmount,
				RealAmount:       result.CashAmount,
				TotalDiscounts:   result.DiscountsTotal,
				TotalAdditionals: result.AdditionalsTotal.Add(result.CampaignTotal),
				WorkedDays:       result.WorkedDays,
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

// ========== ADDITIONAL PAYMENTS ==========

func (s *PayrollServiceImpl) AddAdditional(ctx context.Context, req payroll.CreateAdditionalRequest) (payroll.AdditionalPayment, error) {
	if err := req.Validate(); err != nil {
		return payroll.AdditionalPayment{}, err
	}

	p, err := s.ensureEditable(ctx, req.PayrollID)
	if err != nil {
		return payroll.AdditionalPayment{}, err
	}

	var created payroll.AdditionalPayment
	err = s.tx.RunTx(ctx, func(txCtx context.Context) error {
		created, err = s.payrollRepo.CreateAdditional(txCtx, payroll.AdditionalPayment{
			PayrollID:   p.ID,
			Description: req.Description,
			Amount:      req.Amount,
			Quantity:    req.Quantity,
			Biweekly:    req.Biweekly,
			PayCard:     payroll.Channel(req.PayCard),
		})
		if err != nil {
			return err
		}
		return s.regenerateStored(txCtx, p, req.Biweekly)
	})
	if err != nil {
		return payroll.AdditionalPayment{}, err
	}
	return created, nil
}

func (s *PayrollServiceImpl) UpdateAdditional(ctx context.Context, req payroll.UpdateAdditionalRequest) error {
	p, err := s.ensureEditable(ctx, req.PayrollID)
	if err != nil {
		return err
	}

	a, err := s.payrollRepo.GetAdditionalByID(ctx, req.ID)
	if err != nil {
		return err
	}
	if a.PayrollID != p.ID {
		return payroll.ErrAdditionalNotFound
	}

	if err := applyAdjustmentPatch(&a.Description, &a.Amount, &a.Quantity, &a.Biweekly, &a.PayCard,
		req.Description, req.Amount, req.Quantity, req.Biweekly, req.PayCard); err != nil {
		return err
	}

	return s.tx.RunTx(ctx, func(txCtx context.Context) error {
		if err := s.payrollRepo.UpdateAdditional(txCtx, a); err != nil {
			return err
		}
		// Moving a line between halves touches both; rewrite everything.
		return s.regenerateStored(txCtx, p, nil)
	})
}

func (s *PayrollServiceImpl) DeleteAdditional(ctx context.Context, payrollID, additionalID string) error {
	p, err := s.ensureEditable(ctx, payrollID)
	if err != nil {
		return err
	}

	a, err := s.payrollRepo.GetAdditionalByID(ctx, additionalID)
	if err != nil {
		return err
	}
	if a.PayrollID != p.ID {
		return payroll.ErrAdditionalNotFound
	}

	return s.tx.RunTx(ctx, func(txCtx context.Context) error {
		if err := s.payrollRepo.DeleteAdditional(txCtx, additionalID); err != nil {
			return err
		}
		return s.regenerateStored(txCtx, p, a.Biweekly)
	})
}

// ========== DISCOUNT PAYMENTS ==========

func (s *PayrollServiceImpl) AddDiscount(ctx context.Context, req payroll.CreateDiscountRequest) (payroll.DiscountPayment, error) {
	if err := req.Validate(); err != nil {
		return payroll.DiscountPayment{}, err
	}

	p, err := s.ensureEditable(ctx, req.PayrollID)
	if err != nil {
		return payroll.DiscountPayment{}, err
	}

	var created payroll.DiscountPayment
	err = s.tx.RunTx(ctx, func(txCtx context.Context) error {
		created, err = s.payrollRepo.CreateDiscount(txCtx, payroll.DiscountPayment{
			PayrollID:   p.ID,
			Description: req.Description,
			Amount:      req.Amount,
			Quantity:    req.Quantity,
			Biweekly:    req.Biweekly,
			PayCard:     payroll.Channel(req.PayCard),
		})
		if err != nil {
			return err
		}
		return s.regenerateStored(txCtx, p, req.Biweekly)
	})
	if err != nil {
		return payroll.DiscountPayment{}, err
	}
	return created, nil
}

func (s *PayrollServiceImpl) UpdateDiscount(ctx context.Context, req payroll.UpdateDiscountRequest) error {
	p, err := s.ensureEditable(ctx, req.PayrollID)
	if err != nil {
		return err
	}

	d, err := s.payrollRepo.GetDiscountByID(ctx, req.ID)
	if err != nil {
		return err
	}
	if d.PayrollID != p.ID {
		return payroll.ErrDiscountNotFound
	}

	if err := applyAdjustmentPatch(&d.Description, &d.Amount, &d.Quantity, &d.Biweekly, &d.PayCard,
		req.Description, req.Amount, req.Quantity, req.Biweekly, req.PayCard); err != nil {
		return err
	}

	return s.tx.RunTx(ctx, func(txCtx context.Context) error {
		if err := s.payrollRepo.UpdateDiscount(txCtx, d); err != nil {
			return err
		}
		return s.regenerateStored(txCtx, p, nil)
	})
}

func (s *PayrollServiceImpl) DeleteDiscount(ctx context.Context, payrollID, discountID string) error {
	p, err := s.ensureEditable(ctx, payrollID)
	if err != nil {
		return err
	}

	d, err := s.payrollRepo.GetDiscountByID(ctx, discountID)
	if err != nil {
		return err
	}
	if d.PayrollID != p.ID {
		return payroll.ErrDiscountNotFound
	}

	return s.tx.RunTx(ctx, func(txCtx context.Context) error {
		if err := s.payrollRepo.DeleteDiscount(txCtx, discountID); err != nil {
			return err
		}
		return s.regenerateStored(txCtx, p, d.Biweekly)
	})
}

// applyAdjustmentPatch applies the optional fields of an update request onto
// an adjustment line, validating each patched value.
func applyAdjustmentPatch(
	description *string, amount *decimal.Decimal, quantity *int, biweekly **int, payCard *payroll.Channel,
	newDescription *string, newAmount *decimal.Decimal, newQuantity, newBiweekly, newPayCard *int,
) error {
	var errs validator.ValidationErrors

	if newDescription != nil {
		if validator.IsEmpty(*newDescription) {
			errs = append(errs, validator.ValidationError{Field: "description", Message: "must not be empty"})
		} else {
			*description = *newDescription
		}
	}
	if newAmount != nil {
		if newAmount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
		} else {
			*amount = *newAmount
		}
	}
	if newQuantity != nil {
		if *newQuantity < 1 {
			errs = append(errs, validator.ValidationError{Field: "quantity", Message: "must be at least 1"})
		} else {
			*quantity = *newQuantity
		}
	}
	if newBiweekly != nil {
		if *newBiweekly != 1 && *newBiweekly != 2 {
			errs = append(errs, validator.ValidationError{Field: "biweekly", Message: "must be 1 or 2"})
		} else {
			*biweekly = newBiweekly
		}
	}
	if newPayCard != nil {
		if *newPayCard != int(payroll.ChannelBank) && *newPayCard != int(payroll.ChannelCash) {
			errs = append(errs, validator.ValidationError{Field: "pay_card", Message: "must be 1 (bank) or 2 (cash)"})
		} else {
			*payCard = payroll.Channel(*newPayCard)
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== MAPPING ==========

func toPayrollResponse(p payroll.PayRoll) payroll.PayRollResponse {
	return payroll.PayRollResponse{
		ID:               p.ID,
		EmployeeID:       p.EmployeeID,
		EmployeeName:     p.EmployeeName,
		PeriodYear:       p.PeriodYear,
		PeriodMonth:      p.PeriodMonth,
		AccountingSalary: p.AccountingSalary,
		RealSalary:       p.RealSalary,
		Status:           string(p.Status),
		PeriodStart:      p.PeriodStart.Format(dateLayout),
		PeriodEnd:        p.PeriodEnd.Format(dateLayout),
		LoanID:           p.LoanID,
		CampaignID:       p.CampaignID,
	}
}

func toBiweeklyResponse(bp payroll.BiweeklyPayment) payroll.BiweeklyPaymentResponse {
	return payroll.BiweeklyPaymentResponse{
		ID:               bp.ID,
		PayrollID:        bp.PayrollID,
		Number:           bp.Number,
		SettlementDate:   bp.SettlementDate.Format(dateLayout),
		AccountingAmount: bp.AccountingAmount,
		RealAmount:       bp.RealAmount,
		TotalDiscounts:   bp.TotalDiscounts,
		TotalAdditionals: bp.TotalAdditionals,
		WorkedDays:       bp.WorkedDays,
	}
}
