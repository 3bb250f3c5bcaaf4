package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/planillapro/planilla-backend-go/internal/domain/payroll"
	"github.com/planillapro/planilla-backend-go/internal/handler/http/response"
	"github.com/planillapro/planilla-backend-go/internal/pkg/payslip"
)

type PayrollHandler interface {
	// Generation
	CreatePayrolls(w http.ResponseWriter, r *http.Request)
	GenerateBiweeklyPayment(w http.ResponseWriter, r *http.Request)
	CalculatePayment(w http.ResponseWriter, r *http.Request)

	// Payroll months
	GetPayroll(w http.ResponseWriter, r *http.Request)
	GetBiweeklyPayments(w http.ResponseWriter, r *http.Request)
	RegenerateBiweeklyPayment(w http.ResponseWriter, r *http.Request)
	DeleteBiweeklyPayment(w http.ResponseWriter, r *http.Request)

	// Adjustments
	AddAdditional(w http.ResponseWriter, r *http.Request)
	UpdateAdditional(w http.ResponseWriter, r *http.Request)
	DeleteAdditional(w http.ResponseWriter, r *http.Request)
	AddDiscount(w http.ResponseWriter, r *http.Request)
	UpdateDiscount(w http.ResponseWriter, r *http.Request)
	DeleteDiscount(w http.ResponseWriter, r *http.Request)

	// Advances
	CreateAdvance(w http.ResponseWriter, r *http.Request)
	GetMaxAdvance(w http.ResponseWriter, r *http.Request)

	// Lifecycle
	CanEditPayroll(w http.ResponseWriter, r *http.Request)
	ClosePayroll(w http.ResponseWriter, r *http.Request)
	ReopenPayroll(w http.ResponseWriter, r *http.Request)

	// Reporting
	GetPayrollSummary(w http.ResponseWriter, r *http.Request)
	DownloadPayslip(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== GENERATION ==========

func (h *payrollHandlerImpl) CreatePayrolls(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePayrollsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CreatePayrolls(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payrolls generated", result)
}

func (h *payrollHandlerImpl) GenerateBiweeklyPayment(w http.ResponseWriter, r *http.Request) {
	var req payroll.GenerateBiweeklyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.GenerateBiweeklyPayment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Biweekly payment generated", result)
}

func (h *payrollHandlerImpl) CalculatePayment(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		response.BadRequest(w, "employee_id is required", nil)
		return
	}

	year, month, ok := parsePeriodQuery(w, r)
	if !ok {
		return
	}

	var periodType *string
	if pt := r.URL.Query().Get("period_type"); pt != "" {
		periodType = &pt
	}

	result, err := h.payrollService.CalculatePayment(r.Context(), employeeID, year, month, periodType)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== PAYROLL MONTHS ==========

func (h *payrollHandlerImpl) GetPayroll(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "payrollId")
	if id == "" {
		response.BadRequest(w, "Payroll ID is required", nil)
		return
	}

	result, err := h.payrollService.GetPayroll(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) GetBiweeklyPayments(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "payrollId")
	if id == "" {
		response.BadRequest(w, "Payroll ID is required", nil)
		return
	}

	result, err := h.payrollService.GetBiweeklyPayments(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) RegenerateBiweeklyPayment(w http.ResponseWriter, r *http.Request) {
	payrollID := chi.URLParam(r, "payrollId")
	biweeklyID := chi.URLParam(r, "biweeklyId")
	if payrollID == "" || biweeklyID == "" {
		response.BadRequest(w, "Payroll ID and biweekly payment ID are required", nil)
		return
	}

	if err := h.payrollService.RegenerateBiweeklyPayment(r.Context(), payrollID, biweeklyID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Biweekly payment regenerated", nil)
}

func (h *payrollHandlerImpl) DeleteBiweeklyPayment(w http.ResponseWriter, r *http.Request) {
	payrollID := chi.URLParam(r, "payrollId")
	biweeklyID := chi.URLParam(r, "biweeklyId")
	if payrollID == "" || biweeklyID == "" {
		response.BadRequest(w, "Payroll ID and biweekly payment ID are required", nil)
		return
	}

	if err := h.payrollService.DeleteBiweeklyPayment(r.Context(), payrollID, biweeklyID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Biweekly payment deleted successfully", nil)
}

// ========== ADJUSTMENTS ==========

func (h *payrollHandlerImpl) AddAdditional(w http.ResponseWriter, r *http.Request) {
	payrollID := chi.URLParam(r, "payrollId")
	if payrollID == "" {
		response.BadRequest(w, "Payroll ID is required", nil)
		return
	}

	var req payroll.CreateAdditionalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.PayrollID = payrollID

	result, err := h.payrollService.AddAdditional(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Additional payment created", result)
}

func (h *payrollHandlerImpl) UpdateAdditional(w http.ResponseWriter, r *http.Request) {
	payrollID := chi.URLParam(r, "payrollId")
	id := chi.URLParam(r, "id")
	if payrollID == "" || id == "" {
		response.BadRequest(w, "Payroll ID and additional ID are required", nil)
		return
	}

	var req payroll.UpdateAdditionalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id
	req.PayrollID = payrollID

	if err := h.payrollService.UpdateAdditional(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, nil)
}

func (h *payrollHandlerImpl) DeleteAdditional(w http.ResponseWriter, r *http.Request) {
	payrollID := chi.URLParam(r, "payrollId")
	id := chi.URLParam(r, "id")
	if payrollID == "" || id == "" {
		response.BadRequest(w, "Payroll ID and additional ID are required", nil)
		return
	}

	if err := h.payrollService.DeleteAdditional(r.Context(), payrollID, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Additional payment deleted successfully", nil)
}

func (h *payrollHandlerImpl) AddDiscount(w http.ResponseWriter, r *http.Request) {
	payrollID := chi.URLParam(r, "payrollId")
	if payrollID == "" {
		response.BadRequest(w, "Payroll ID is required", nil)
		return
	}

	var req payroll.CreateDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.PayrollID = payrollID

	result, err := h.payrollService.AddDiscount(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Discount payment created", result)
}

func (h *payrollHandlerImpl) UpdateDiscount(w http.ResponseWriter, r *http.Request) {
	payrollID := chi.URLParam(r, "payrollId")
	id := chi.URLParam(r, "id")
	if payrollID == "" || id == "" {
		response.BadRequest(w, "Payroll ID and discount ID are required", nil)
		return
	}

	var req payroll.UpdateDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id
	req.PayrollID = payrollID

	if err := h.payrollService.UpdateDiscount(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, nil)
}

func (h *payrollHandlerImpl) DeleteDiscount(w http.ResponseWriter, r *http.Request) {
	payrollID := chi.URLParam(r, "payrollId")
	id := chi.URLParam(r, "id")
	if payrollID == "" || id == "" {
		response.BadRequest(w, "Payroll ID and discount ID are required", nil)
		return
	}

	if err := h.payrollService.DeleteDiscount(r.Context(), payrollID, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Discount payment deleted successfully", nil)
}

// ========== ADVANCES ==========

func (h *payrollHandlerImpl) CreateAdvance(w http.ResponseWriter, r *http.Request) {
	payrollID := chi.URLParam(r, "payrollId")
	if payrollID == "" {
		response.BadRequest(w, "Payroll ID is required", nil)
		return
	}

	var req payroll.CreateAdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.PayrollID = payrollID

	result, err := h.payrollService.CreateAdvance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary advance registered", result)
}

func (h *payrollHandlerImpl) GetMaxAdvance(w http.ResponseWriter, r *http.Request) {
	payrollID := chi.URLParam(r, "payrollId")
	if payrollID == "" {
		response.BadRequest(w, "Payroll ID is required", nil)
		return
	}

	biweekly, err := strconv.Atoi(r.URL.Query().Get("biweekly"))
	if err != nil {
		response.BadRequest(w, "biweekly must be 1 or 2", nil)
		return
	}

	var payCard *int
	if cardStr := r.URL.Query().Get("pay_card"); cardStr != "" {
		card, err := strconv.Atoi(cardStr)
		if err != nil {
			response.BadRequest(w, "Invalid pay_card", nil)
			return
		}
		payCard = &card
	}

	result, err := h.payrollService.GetMaxAdvance(r.Context(), payrollID, biweekly, payCard)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== LIFECYCLE ==========

func (h *payrollHandlerImpl) CanEditPayroll(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "payrollId")
	if id == "" {
		response.BadRequest(w, "Payroll ID is required", nil)
		return
	}

	result, err := h.payrollService.CanEditPayroll(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ClosePayroll(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "payrollId")
	if id == "" {
		response.BadRequest(w, "Payroll ID is required", nil)
		return
	}

	if err := h.payrollService.ClosePayroll(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll closed", nil)
}

func (h *payrollHandlerImpl) ReopenPayroll(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "payrollId")
	if id == "" {
		response.BadRequest(w, "Payroll ID is required", nil)
		return
	}

	if err := h.payrollService.ReopenPayroll(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll reopened", nil)
}

// ========== REPORTING ==========

func (h *payrollHandlerImpl) GetPayrollSummary(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parsePeriodQuery(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.GetPayrollSummary(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) DownloadPayslip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "payrollId")
	if id == "" {
		response.BadRequest(w, "Payroll ID is required", nil)
		return
	}

	p, err := h.payrollService.GetPayroll(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	payments, err := h.payrollService.GetBiweeklyPayments(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var biweekly *int
	if bwStr := r.URL.Query().Get("biweekly"); bwStr != "" {
		bw, err := strconv.Atoi(bwStr)
		if err != nil || (bw != 1 && bw != 2) {
			response.BadRequest(w, "biweekly must be 1 or 2", nil)
			return
		}
		biweekly = &bw
	}

	employeeName := p.EmployeeID
	if p.EmployeeName != nil {
		employeeName = *p.EmployeeName
	}

	slip := payslip.Payslip{
		EmployeeName: employeeName,
		PeriodYear:   p.PeriodYear,
		PeriodMonth:  p.PeriodMonth,
	}
	for _, payment := range payments {
		if biweekly != nil && payment.Number != *biweekly {
			continue
		}
		slip.Lines = append(slip.Lines, payslip.Line{
			Number:           payment.Number,
			SettlementDate:   payment.SettlementDate,
			BankTransfer:     payment.AccountingAmount,
			Cash:             payment.RealAmount,
			TotalDiscounts:   payment.TotalDiscounts,
			TotalAdditionals: payment.TotalAdditionals,
			WorkedDays:       payment.WorkedDays,
		})
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="payslip-%04d-%02d.pdf"`, p.PeriodYear, p.PeriodMonth))
	if err := payslip.Render(slip, w); err != nil {
		response.InternalServerError(w, "Failed to render payslip")
		return
	}
}

func parsePeriodQuery(w http.ResponseWriter, r *http.Request) (year, month int, ok bool) {
	yearStr := r.URL.Query().Get("period_year")
	monthStr := r.URL.Query().Get("period_month")
	if yearStr == "" || monthStr == "" {
		response.BadRequest(w, "period_year and period_month are required", nil)
		return 0, 0, false
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		response.BadRequest(w, "Invalid period_year", nil)
		return 0, 0, false
	}

	month, err = strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		response.BadRequest(w, "Invalid period_month", nil)
		return 0, 0, false
	}

	return year, month, true
}
