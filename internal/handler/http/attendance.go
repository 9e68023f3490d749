package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/workline-hq/hrms-backend-go/internal/domain/attendance"
	"github.com/workline-hq/hrms-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	// Record handlers
	UpsertRecord(w http.ResponseWriter, r *http.Request)
	GetRecord(w http.ResponseWriter, r *http.Request)
	ListRecords(w http.ResponseWriter, r *http.Request)
	DeleteRecord(w http.ResponseWriter, r *http.Request)

	// Leave request handlers
	CreateLeaveRequest(w http.ResponseWriter, r *http.Request)
	ApproveLeaveRequest(w http.ResponseWriter, r *http.Request)
	RejectLeaveRequest(w http.ResponseWriter, r *http.Request)
	CancelLeaveRequest(w http.ResponseWriter, r *http.Request)
	ListLeaveRequests(w http.ResponseWriter, r *http.Request)

	// Overtime request handlers
	CreateOvertimeRequest(w http.ResponseWriter, r *http.Request)
	ApproveOvertimeRequest(w http.ResponseWriter, r *http.Request)
	RejectOvertimeRequest(w http.ResponseWriter, r *http.Request)
	CancelOvertimeRequest(w http.ResponseWriter, r *http.Request)
	ListOvertimeRequests(w http.ResponseWriter, r *http.Request)

	// Summary handlers
	RecomputeSummaries(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)
	ListSummaries(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	recordService  attendance.RecordService
	requestService attendance.RequestService
	summaryService attendance.SummaryService
}

func NewAttendanceHandler(
	recordService attendance.RecordService,
	requestService attendance.RequestService,
	summaryService attendance.SummaryService,
) AttendanceHandler {
	return &attendanceHandlerImpl{
		recordService:  recordService,
		requestService: requestService,
		summaryService: summaryService,
	}
}

// ==================== RECORD HANDLERS ====================

func (h *attendanceHandlerImpl) UpsertRecord(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpsertRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.recordService.UpsertRecord(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record saved", result)
}

func (h *attendanceHandlerImpl) GetRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.recordService.GetRecord(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) ListRecords(w http.ResponseWriter, r *http.Request) {
	filter := attendance.RecordFilter{
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 20),
	}
	if v := r.URL.Query().Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := r.URL.Query().Get("from"); v != "" {
		filter.From = &v
	}
	if v := r.URL.Query().Get("to"); v != "" {
		filter.To = &v
	}
	if v := r.URL.Query().Get("status"); v != "" {
		filter.Status = &v
	}

	result, err := h.recordService.ListRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Records, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

func (h *attendanceHandlerImpl) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.recordService.DeleteRecord(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record deleted", nil)
}

// ==================== LEAVE REQUEST HANDLERS ====================

func (h *attendanceHandlerImpl) CreateLeaveRequest(w http.ResponseWriter, r *http.Request) {
	var req attendance.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.requestService.CreateLeaveRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", result)
}

func (h *attendanceHandlerImpl) ApproveLeaveRequest(w http.ResponseWriter, r *http.Request) {
	h.decideLeave(w, r, h.requestService.ApproveLeaveRequest, "Leave request approved")
}

func (h *attendanceHandlerImpl) RejectLeaveRequest(w http.ResponseWriter, r *http.Request) {
	h.decideLeave(w, r, h.requestService.RejectLeaveRequest, "Leave request rejected")
}

func (h *attendanceHandlerImpl) CancelLeaveRequest(w http.ResponseWriter, r *http.Request) {
	h.decideLeave(w, r, h.requestService.CancelLeaveRequest, "Leave request canceled")
}

func (h *attendanceHandlerImpl) decideLeave(
	w http.ResponseWriter,
	r *http.Request,
	decide func(ctx context.Context, req attendance.DecideRequest) (attendance.LeaveRequestResponse, error),
	message string,
) {
	var req attendance.DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := decide(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, result)
}

func (h *attendanceHandlerImpl) ListLeaveRequests(w http.ResponseWriter, r *http.Request) {
	filter := requestFilterFromQuery(r)

	result, err := h.requestService.ListLeaveRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Requests, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// ==================== OVERTIME REQUEST HANDLERS ====================

func (h *attendanceHandlerImpl) CreateOvertimeRequest(w http.ResponseWriter, r *http.Request) {
	var req attendance.CreateOvertimeRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.requestService.CreateOvertimeRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime request submitted", result)
}

func (h *attendanceHandlerImpl) ApproveOvertimeRequest(w http.ResponseWriter, r *http.Request) {
	h.decideOvertime(w, r, h.requestService.ApproveOvertimeRequest, "Overtime request approved")
}

func (h *attendanceHandlerImpl) RejectOvertimeRequest(w http.ResponseWriter, r *http.Request) {
	h.decideOvertime(w, r, h.requestService.RejectOvertimeRequest, "Overtime request rejected")
}

func (h *attendanceHandlerImpl) CancelOvertimeRequest(w http.ResponseWriter, r *http.Request) {
	h.decideOvertime(w, r, h.requestService.CancelOvertimeRequest, "Overtime request canceled")
}

func (h *attendanceHandlerImpl) decideOvertime(
	w http.ResponseWriter,
	r *http.Request,
	decide func(ctx context.Context, req attendance.DecideRequest) (attendance.OvertimeRequestResponse, error),
	message string,
) {
	var req attendance.DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := decide(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, result)
}

func (h *attendanceHandlerImpl) ListOvertimeRequests(w http.ResponseWriter, r *http.Request) {
	filter := requestFilterFromQuery(r)

	result, err := h.requestService.ListOvertimeRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Requests, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

func requestFilterFromQuery(r *http.Request) attendance.RequestFilter {
	filter := attendance.RequestFilter{
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 20),
	}
	if v := r.URL.Query().Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := r.URL.Query().Get("status"); v != "" {
		filter.Status = &v
	}
	if v := r.URL.Query().Get("from"); v != "" {
		filter.From = &v
	}
	if v := r.URL.Query().Get("to"); v != "" {
		filter.To = &v
	}
	return filter
}

// ==================== SUMMARY HANDLERS ====================

func (h *attendanceHandlerImpl) RecomputeSummaries(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecomputeSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	results, err := h.summaryService.Recompute(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Summaries recomputed", results)
}

func (h *attendanceHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	year := queryInt(r, "year", 0)
	month := queryInt(r, "month", 0)

	result, err := h.summaryService.GetSummary(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) ListSummaries(w http.ResponseWriter, r *http.Request) {
	year := queryInt(r, "year", 0)
	month := queryInt(r, "month", 0)

	results, err := h.summaryService.ListSummaries(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}
