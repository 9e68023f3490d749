package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/workline-hq/hrms-backend-go/internal/domain/payroll"
	"github.com/workline-hq/hrms-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	// Salary item handlers
	CreateItemType(w http.ResponseWriter, r *http.Request)
	ListItemTypes(w http.ResponseWriter, r *http.Request)
	CreateItem(w http.ResponseWriter, r *http.Request)
	UpdateItem(w http.ResponseWriter, r *http.Request)
	DeleteItem(w http.ResponseWriter, r *http.Request)
	ListItems(w http.ResponseWriter, r *http.Request)

	// Salary structure handlers
	CreateStructure(w http.ResponseWriter, r *http.Request)
	GetStructure(w http.ResponseWriter, r *http.Request)
	ListStructures(w http.ResponseWriter, r *http.Request)
	DeleteStructure(w http.ResponseWriter, r *http.Request)

	// Salary config handlers
	UpsertConfig(w http.ResponseWriter, r *http.Request)
	GetConfigByEmployee(w http.ResponseWriter, r *http.Request)

	// Payment handlers
	GeneratePayments(w http.ResponseWriter, r *http.Request)
	GetPayment(w http.ResponseWriter, r *http.Request)
	ListPayments(w http.ResponseWriter, r *http.Request)
	ConfirmPayment(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
	CancelPayment(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	itemService      payroll.ItemService
	structureService payroll.StructureService
	configService    payroll.ConfigService
	paymentService   payroll.PaymentService
}

func NewPayrollHandler(
	itemService payroll.ItemService,
	structureService payroll.StructureService,
	configService payroll.ConfigService,
	paymentService payroll.PaymentService,
) PayrollHandler {
	return &payrollHandlerImpl{
		itemService:      itemService,
		structureService: structureService,
		configService:    configService,
		paymentService:   paymentService,
	}
}

// ==================== SALARY ITEM HANDLERS ====================

func (h *payrollHandlerImpl) CreateItemType(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateSalaryItemTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.itemService.CreateItemType(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary item type created", result)
}

func (h *payrollHandlerImpl) ListItemTypes(w http.ResponseWriter, r *http.Request) {
	results, err := h.itemService.ListItemTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *payrollHandlerImpl) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateSalaryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.itemService.CreateItem(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary item created", result)
}

func (h *payrollHandlerImpl) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateSalaryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.itemService.UpdateItem(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary item updated", result)
}

func (h *payrollHandlerImpl) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.itemService.DeactivateItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary item deactivated", nil)
}

func (h *payrollHandlerImpl) ListItems(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active_only") == "true"

	results, err := h.itemService.ListItems(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ==================== SALARY STRUCTURE HANDLERS ====================

func (h *payrollHandlerImpl) CreateStructure(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateSalaryStructureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.structureService.CreateStructure(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary structure created", result)
}

func (h *payrollHandlerImpl) GetStructure(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.structureService.GetStructure(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListStructures(w http.ResponseWriter, r *http.Request) {
	results, err := h.structureService.ListStructures(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *payrollHandlerImpl) DeleteStructure(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.structureService.DeleteStructure(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary structure deleted", nil)
}

// ==================== SALARY CONFIG HANDLERS ====================

func (h *payrollHandlerImpl) UpsertConfig(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpsertSalaryConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")

	result, err := h.configService.UpsertConfig(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary configuration saved", result)
}

func (h *payrollHandlerImpl) GetConfigByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.configService.GetConfigByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ==================== PAYMENT HANDLERS ====================

func (h *payrollHandlerImpl) GeneratePayments(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePaymentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.paymentService.GeneratePayments(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payments generated", result)
}

func (h *payrollHandlerImpl) GetPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.paymentService.GetPayment(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListPayments(w http.ResponseWriter, r *http.Request) {
	filter := payroll.PaymentFilter{
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 20),
	}
	if v := r.URL.Query().Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := r.URL.Query().Get("month"); v != "" {
		filter.Month = &v
	}
	if v := r.URL.Query().Get("status"); v != "" {
		filter.Status = &v
	}

	result, err := h.paymentService.ListPayments(r.Context(), &filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Payments, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

func (h *payrollHandlerImpl) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.paymentService.ConfirmPayment(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment confirmed", result)
}

func (h *payrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdatePaymentStatusRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.paymentService.MarkPaid(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment marked as paid", result)
}

func (h *payrollHandlerImpl) CancelPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.paymentService.CancelPayment(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment canceled", result)
}
