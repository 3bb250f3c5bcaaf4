package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/planillapro/planilla-backend-go/internal/domain/employee"
	"github.com/planillapro/planilla-backend-go/internal/domain/headquarters"
	"github.com/planillapro/planilla-backend-go/internal/handler/http/response"
	"github.com/planillapro/planilla-backend-go/internal/service/master"
)

type MasterHandler interface {
	// Headquarters handlers
	CreateHeadquarters(w http.ResponseWriter, r *http.Request)
	GetHeadquarters(w http.ResponseWriter, r *http.Request)
	ListHeadquarters(w http.ResponseWriter, r *http.Request)

	// Employee handlers
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	ListEmployees(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	masterService master.MasterService
}

func NewMasterHandler(masterService master.MasterService) MasterHandler {
	return &masterHandlerImpl{masterService: masterService}
}

// ========== HEADQUARTERS HANDLERS ==========

func (h *masterHandlerImpl) CreateHeadquarters(w http.ResponseWriter, r *http.Request) {
	var req headquarters.CreateHeadquartersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.masterService.CreateHeadquarters(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Headquarters created", result)
}

func (h *masterHandlerImpl) GetHeadquarters(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Headquarters ID is required", nil)
		return
	}

	result, err := h.masterService.GetHeadquarters(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListHeadquarters(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.ListHeadquarters(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== EMPLOYEE HANDLERS ==========

func (h *masterHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.masterService.CreateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created", result)
}

func (h *masterHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	result, err := h.masterService.GetEmployee(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active_only") == "true"

	result, err := h.masterService.ListEmployees(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
