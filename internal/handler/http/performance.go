package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/workline-hq/hrms-backend-go/internal/domain/performance"
	"github.com/workline-hq/hrms-backend-go/internal/handler/http/response"
)

type PerformanceHandler interface {
	// Indicator handlers
	CreateIndicator(w http.ResponseWriter, r *http.Request)
	ListIndicators(w http.ResponseWriter, r *http.Request)

	// Appraisal handlers
	CreateAppraisal(w http.ResponseWriter, r *http.Request)
	GetAppraisal(w http.ResponseWriter, r *http.Request)
	ListAppraisals(w http.ResponseWriter, r *http.Request)
	SubmitSelfAssessment(w http.ResponseWriter, r *http.Request)
	SubmitAssessment(w http.ResponseWriter, r *http.Request)
	ReviewAppraisal(w http.ResponseWriter, r *http.Request)
}

type performanceHandlerImpl struct {
	indicatorService performance.IndicatorService
	appraisalService performance.AppraisalService
}

func NewPerformanceHandler(
	indicatorService performance.IndicatorService,
	appraisalService performance.AppraisalService,
) PerformanceHandler {
	return &performanceHandlerImpl{
		indicatorService: indicatorService,
		appraisalService: appraisalService,
	}
}

func (h *performanceHandlerImpl) CreateIndicator(w http.ResponseWriter, r *http.Request) {
	var req performance.CreateIndicatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.indicatorService.CreateIndicator(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Performance indicator created", result)
}

func (h *performanceHandlerImpl) ListIndicators(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	results, err := h.indicatorService.ListIndicators(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *performanceHandlerImpl) CreateAppraisal(w http.ResponseWriter, r *http.Request) {
	var req performance.CreateAppraisalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.appraisalService.CreateAppraisal(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Appraisal created", result)
}

func (h *performanceHandlerImpl) GetAppraisal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.appraisalService.GetAppraisal(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *performanceHandlerImpl) ListAppraisals(w http.ResponseWriter, r *http.Request) {
	filter := performance.AppraisalFilter{
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 20),
	}
	if v := r.URL.Query().Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status := performance.AppraisalStatus(v)
		filter.Status = &status
	}

	result, err := h.appraisalService.ListAppraisals(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Appraisals, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

func (h *performanceHandlerImpl) SubmitSelfAssessment(w http.ResponseWriter, r *http.Request) {
	var req performance.SubmitSelfAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.appraisalService.SubmitSelfAssessment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *performanceHandlerImpl) SubmitAssessment(w http.ResponseWriter, r *http.Request) {
	var req performance.SubmitAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.appraisalService.SubmitAssessment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *performanceHandlerImpl) ReviewAppraisal(w http.ResponseWriter, r *http.Request) {
	var req performance.ReviewAppraisalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.appraisalService.ReviewAppraisal(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
