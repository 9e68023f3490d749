package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/workline-hq/hrms-backend-go/internal/domain/attendance"
	"github.com/workline-hq/hrms-backend-go/internal/domain/employee"
	"github.com/workline-hq/hrms-backend-go/internal/pkg/cache"
	"github.com/workline-hq/hrms-backend-go/internal/pkg/validator"
)

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

func decimalPtrToString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.StringFixed(1)
	return &s
}

func totalPages(count int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(count) / float64(limit)))
}

// ========================================
// RECORD SERVICE
// ========================================

type RecordServiceImpl struct {
	attendance.RecordRepository
	employee.EmployeeRepository
	policy   PolicyWindows
	calendar WorkCalendar
}

func NewRecordService(
	recordRepository attendance.RecordRepository,
	employeeRepository employee.EmployeeRepository,
	policy PolicyWindows,
	calendar WorkCalendar,
) *RecordServiceImpl {
	return &RecordServiceImpl{
		RecordRepository:   recordRepository,
		EmployeeRepository: employeeRepository,
		policy:             policy,
		calendar:           calendar,
	}
}

// UpsertRecord implements attendance.RecordService.
func (s *RecordServiceImpl) UpsertRecord(ctx context.Context, req attendance.UpsertRecordRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.RecordResponse{}, err
	}

	workDate, _ := validator.IsValidDate(req.WorkDate)

	var checkIn, checkOut *time.Time
	if req.CheckIn != nil {
		t, _ := validator.IsValidDateTime(*req.CheckIn)
		checkIn = &t
	}
	if req.CheckOut != nil {
		t, _ := validator.IsValidDateTime(*req.CheckOut)
		checkOut = &t
	}

	// A punch the request omits is kept from the existing record, so a
	// check-in and a later check-out arrive as two separate writes.
	existing, err := s.RecordRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, workDate)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to load attendance record: %w", err)
	}
	if existing != nil {
		if checkIn == nil {
			checkIn = existing.CheckIn
		}
		if checkOut == nil {
			checkOut = existing.CheckOut
		}
	}

	if checkIn == nil && checkOut != nil {
		return attendance.RecordResponse{}, attendance.ErrMissingCheckIn
	}

	var hoursWorked *decimal.Decimal
	if checkIn != nil && checkOut != nil {
		if checkOut.Before(*checkIn) {
			return attendance.RecordResponse{}, validator.ValidationErrors{{
				Field:   "check_out",
				Message: "check_out must not be before check_in",
			}}
		}
		h := HoursBetween(*checkIn, *checkOut)
		hoursWorked = &h
	}

	record := attendance.Record{
		ID:          uuid.NewString(),
		EmployeeID:  req.EmployeeID,
		WorkDate:    workDate,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		HoursWorked: hoursWorked,
		Status:      ClassifyAttendance(checkIn, checkOut, req.WorkFromHome, s.calendar.IsWorkday(workDate), s.policy),
		Note:        req.Note,
	}

	stored, err := s.RecordRepository.Upsert(ctx, record)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to upsert attendance record: %w", err)
	}

	return toRecordResponse(stored), nil
}

// GetRecord implements attendance.RecordService.
func (s *RecordServiceImpl) GetRecord(ctx context.Context, id string) (attendance.RecordResponse, error) {
	record, err := s.RecordRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	return toRecordResponse(record), nil
}

// ListRecords implements attendance.RecordService.
func (s *RecordServiceImpl) ListRecords(ctx context.Context, filter attendance.RecordFilter) (attendance.ListRecordResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, count, err := s.RecordRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListRecordResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	resp := attendance.ListRecordResponse{
		TotalCount: count,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(count, filter.Limit),
		Records:    make([]attendance.RecordResponse, 0, len(records)),
	}
	for _, r := range records {
		resp.Records = append(resp.Records, toRecordResponse(r))
	}

	return resp, nil
}

// DeleteRecord implements attendance.RecordService.
func (s *RecordServiceImpl) DeleteRecord(ctx context.Context, id string) error {
	return s.RecordRepository.Delete(ctx, id)
}

func toRecordResponse(r attendance.Record) attendance.RecordResponse {
	return attendance.RecordResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		WorkDate:     r.WorkDate.Format("2006-01-02"),
		CheckIn:      timePtrToString(r.CheckIn),
		CheckOut:     timePtrToString(r.CheckOut),
		HoursWorked:  decimalPtrToString(r.HoursWorked),
		Status:       string(r.Status),
		Note:         r.Note,
	}
}

// ========================================
// REQUEST SERVICE
// ========================================

type RequestServiceImpl struct {
	attendance.LeaveRequestRepository
	attendance.OvertimeRequestRepository
	attendance.LeaveTypeRepository
	attendance.OvertimeTypeRepository
	employee.EmployeeRepository
}

func NewRequestService(
	leaveRequestRepository attendance.LeaveRequestRepository,
	overtimeRequestRepository attendance.OvertimeRequestRepository,
	leaveTypeRepository attendance.LeaveTypeRepository,
	overtimeTypeRepository attendance.OvertimeTypeRepository,
	employeeRepository employee.EmployeeRepository,
) *RequestServiceImpl {
	return &RequestServiceImpl{
		LeaveRequestRepository:    leaveRequestRepository,
		OvertimeRequestRepository: overtimeRequestRepository,
		LeaveTypeRepository:       leaveTypeRepository,
		OvertimeTypeRepository:    overtimeTypeRepository,
		EmployeeRepository:        employeeRepository,
	}
}

// CreateLeaveRequest implements attendance.RequestService.
func (s *RequestServiceImpl) CreateLeaveRequest(ctx context.Context, req attendance.CreateLeaveRequestRequest) (attendance.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.LeaveRequestResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.LeaveRequestResponse{}, err
	}
	if emp.Status == employee.StatusResigned {
		return attendance.LeaveRequestResponse{}, employee.ErrEmployeeResigned
	}

	if _, err := s.LeaveTypeRepository.GetByID(ctx, req.LeaveTypeID); err != nil {
		return attendance.LeaveRequestResponse{}, err
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	endDate, _ := validator.IsValidDate(req.EndDate)
	days, _ := validator.IsValidAmount(req.Days)

	lr := attendance.LeaveRequest{
		ID:          uuid.NewString(),
		EmployeeID:  req.EmployeeID,
		LeaveTypeID: req.LeaveTypeID,
		StartDate:   startDate,
		EndDate:     endDate,
		Days:        days,
		Reason:      req.Reason,
		Status:      attendance.RequestPending,
	}

	stored, err := s.LeaveRequestRepository.Create(ctx, lr)
	if err != nil {
		return attendance.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return toLeaveRequestResponse(stored), nil
}

// ApproveLeaveRequest implements attendance.RequestService.
func (s *RequestServiceImpl) ApproveLeaveRequest(ctx context.Context, req attendance.DecideRequest) (attendance.LeaveRequestResponse, error) {
	return s.decideLeave(ctx, req, attendance.RequestApproved)
}

// RejectLeaveRequest implements attendance.RequestService.
func (s *RequestServiceImpl) RejectLeaveRequest(ctx context.Context, req attendance.DecideRequest) (attendance.LeaveRequestResponse, error) {
	return s.decideLeave(ctx, req, attendance.RequestRejected)
}

// CancelLeaveRequest implements attendance.RequestService.
func (s *RequestServiceImpl) CancelLeaveRequest(ctx context.Context, req attendance.DecideRequest) (attendance.LeaveRequestResponse, error) {
	return s.decideLeave(ctx, req, attendance.RequestCanceled)
}

func (s *RequestServiceImpl) decideLeave(ctx context.Context, req attendance.DecideRequest, status attendance.RequestStatus) (attendance.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.LeaveRequestResponse{}, err
	}

	current, err := s.LeaveRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.LeaveRequestResponse{}, err
	}
	if current.Status.Terminal() {
		return attendance.LeaveRequestResponse{}, attendance.ErrRequestAlreadyProcessed
	}

	if err := s.LeaveRequestRepository.UpdateStatus(ctx, req.ID, status, req.ApproverID, time.Now().UTC()); err != nil {
		return attendance.LeaveRequestResponse{}, err
	}

	updated, err := s.LeaveRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.LeaveRequestResponse{}, err
	}

	return toLeaveRequestResponse(updated), nil
}

// ListLeaveRequests implements attendance.RequestService.
func (s *RequestServiceImpl) ListLeaveRequests(ctx context.Context, filter attendance.RequestFilter) (attendance.ListLeaveRequestResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	requests, count, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	resp := attendance.ListLeaveRequestResponse{
		TotalCount: count,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(count, filter.Limit),
		Requests:   make([]attendance.LeaveRequestResponse, 0, len(requests)),
	}
	for _, lr := range requests {
		resp.Requests = append(resp.Requests, toLeaveRequestResponse(lr))
	}

	return resp, nil
}

// CreateOvertimeRequest implements attendance.RequestService.
func (s *RequestServiceImpl) CreateOvertimeRequest(ctx context.Context, req attendance.CreateOvertimeRequestRequest) (attendance.OvertimeRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.OvertimeRequestResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.OvertimeRequestResponse{}, err
	}
	if emp.Status == employee.StatusResigned {
		return attendance.OvertimeRequestResponse{}, employee.ErrEmployeeResigned
	}

	if _, err := s.OvertimeTypeRepository.GetByID(ctx, req.OvertimeTypeID); err != nil {
		return attendance.OvertimeRequestResponse{}, err
	}

	workDate, _ := validator.IsValidDate(req.WorkDate)
	startClock, _ := validator.IsValidTimeOfDay(req.StartTime)
	endClock, _ := validator.IsValidTimeOfDay(req.EndTime)

	// An end clock time at or before the start means the shift crosses
	// midnight and ends on the next day.
	hours, err := ResolveInterval(workDate, startClock, endClock, true)
	if err != nil {
		return attendance.OvertimeRequestResponse{}, err
	}

	or := attendance.OvertimeRequest{
		ID:             uuid.NewString(),
		EmployeeID:     req.EmployeeID,
		OvertimeTypeID: req.OvertimeTypeID,
		WorkDate:       workDate,
		StartTime:      onDate(workDate, startClock),
		EndTime:        resolveEnd(workDate, startClock, endClock),
		Hours:          hours,
		Reason:         req.Reason,
		Status:         attendance.RequestPending,
	}

	stored, err := s.OvertimeRequestRepository.Create(ctx, or)
	if err != nil {
		return attendance.OvertimeRequestResponse{}, fmt.Errorf("failed to create overtime request: %w", err)
	}

	return toOvertimeRequestResponse(stored), nil
}

// ApproveOvertimeRequest implements attendance.RequestService.
func (s *RequestServiceImpl) ApproveOvertimeRequest(ctx context.Context, req attendance.DecideRequest) (attendance.OvertimeRequestResponse, error) {
	return s.decideOvertime(ctx, req, attendance.RequestApproved)
}

// RejectOvertimeRequest implements attendance.RequestService.
func (s *RequestServiceImpl) RejectOvertimeRequest(ctx context.Context, req attendance.DecideRequest) (attendance.OvertimeRequestResponse, error) {
	return s.decideOvertime(ctx, req, attendance.RequestRejected)
}

// CancelOvertimeRequest implements attendance.RequestService.
func (s *RequestServiceImpl) CancelOvertimeRequest(ctx context.Context, req attendance.DecideRequest) (attendance.OvertimeRequestResponse, error) {
	return s.decideOvertime(ctx, req, attendance.RequestCanceled)
}

func (s *RequestServiceImpl) decideOvertime(ctx context.Context, req attendance.DecideRequest, status attendance.RequestStatus) (attendance.OvertimeRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.OvertimeRequestResponse{}, err
	}

	current, err := s.OvertimeRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.OvertimeRequestResponse{}, err
	}
	if current.Status.Terminal() {
		return attendance.OvertimeRequestResponse{}, attendance.ErrRequestAlreadyProcessed
	}

	if err := s.OvertimeRequestRepository.UpdateStatus(ctx, req.ID, status, req.ApproverID, time.Now().UTC()); err != nil {
		return attendance.OvertimeRequestResponse{}, err
	}

	updated, err := s.OvertimeRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.OvertimeRequestResponse{}, err
	}

	return toOvertimeRequestResponse(updated), nil
}

// ListOvertimeRequests implements attendance.RequestService.
func (s *RequestServiceImpl) ListOvertimeRequests(ctx context.Context, filter attendance.RequestFilter) (attendance.ListOvertimeRequestResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	requests, count, err := s.OvertimeRequestRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListOvertimeRequestResponse{}, fmt.Errorf("failed to list overtime requests: %w", err)
	}

	resp := attendance.ListOvertimeRequestResponse{
		TotalCount: count,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(count, filter.Limit),
		Requests:   make([]attendance.OvertimeRequestResponse, 0, len(requests)),
	}
	for _, or := range requests {
		resp.Requests = append(resp.Requests, toOvertimeRequestResponse(or))
	}

	return resp, nil
}

func resolveEnd(anchor, start, end time.Time) time.Time {
	e := onDate(anchor, end)
	if !e.After(onDate(anchor, start)) {
		e = e.AddDate(0, 0, 1)
	}
	return e
}

func toLeaveRequestResponse(lr attendance.LeaveRequest) attendance.LeaveRequestResponse {
	return attendance.LeaveRequestResponse{
		ID:            lr.ID,
		EmployeeID:    lr.EmployeeID,
		EmployeeName:  lr.EmployeeName,
		LeaveTypeID:   lr.LeaveTypeID,
		LeaveTypeName: lr.LeaveTypeName,
		StartDate:     lr.StartDate.Format("2006-01-02"),
		EndDate:       lr.EndDate.Format("2006-01-02"),
		Days:          lr.Days.StringFixed(1),
		Reason:        lr.Reason,
		Status:        string(lr.Status),
		ApproverID:    lr.ApproverID,
		ApprovalTime:  timePtrToString(lr.ApprovalTime),
	}
}

func toOvertimeRequestResponse(or attendance.OvertimeRequest) attendance.OvertimeRequestResponse {
	return attendance.OvertimeRequestResponse{
		ID:               or.ID,
		EmployeeID:       or.EmployeeID,
		EmployeeName:     or.EmployeeName,
		OvertimeTypeID:   or.OvertimeTypeID,
		OvertimeTypeName: or.OvertimeTypeName,
		WorkDate:         or.WorkDate.Format("2006-01-02"),
		StartTime:        or.StartTime.Format("15:04"),
		EndTime:          or.EndTime.Format("15:04"),
		Hours:            or.Hours.StringFixed(1),
		Reason:           or.Reason,
		Status:           string(or.Status),
		ApproverID:       or.ApproverID,
		ApprovalTime:     timePtrToString(or.ApprovalTime),
	}
}

// ========================================
// SUMMARY SERVICE
// ========================================

type SummaryServiceImpl struct {
	aggregator *Aggregator
	attendance.SummaryRepository
	cache  cache.Store
	ttl    time.Duration
	logger *slog.Logger
}

func NewSummaryService(
	aggregator *Aggregator,
	summaryRepository attendance.SummaryRepository,
	cacheStore cache.Store,
	summaryTTL time.Duration,
	logger *slog.Logger,
) *SummaryServiceImpl {
	return &SummaryServiceImpl{
		aggregator:        aggregator,
		SummaryRepository: summaryRepository,
		cache:             cacheStore,
		ttl:               summaryTTL,
		logger:            logger,
	}
}

func summaryCacheKey(employeeID string, year, month int) string {
	return fmt.Sprintf("summary:%s:%04d-%02d", employeeID, year, month)
}

// Recompute implements attendance.SummaryService. A single-employee run
// invalidates that employee's cached month; a company-wide run sweeps every
// cached summary in one pattern delete.
func (s *SummaryServiceImpl) Recompute(ctx context.Context, req attendance.RecomputeSummaryRequest) ([]attendance.SummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.EmployeeID != nil {
		summary, err := s.aggregator.RecomputeEmployee(ctx, *req.EmployeeID, req.Year, req.Month)
		if err != nil {
			return nil, err
		}

		key := summaryCacheKey(*req.EmployeeID, req.Year, req.Month)
		if err := s.cache.Invalidate(ctx, key); err != nil {
			s.logger.Warn("summary cache invalidation failed",
				slog.String("key", key), slog.String("error", err.Error()))
		}

		return []attendance.SummaryResponse{toSummaryResponse(summary)}, nil
	}

	if _, err := s.aggregator.RecomputeAll(ctx, req.Year, req.Month); err != nil {
		return nil, err
	}

	if err := s.cache.InvalidatePattern(ctx, "summary:*"); err != nil {
		s.logger.Warn("summary cache sweep failed", slog.String("error", err.Error()))
	}

	return s.ListSummaries(ctx, req.Year, req.Month)
}

// GetSummary implements attendance.SummaryService.
func (s *SummaryServiceImpl) GetSummary(ctx context.Context, employeeID string, year, month int) (attendance.SummaryResponse, error) {
	key := summaryCacheKey(employeeID, year, month)

	var cached attendance.SummaryResponse
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("summary cache read failed", slog.String("error", err.Error()))
	}

	summary, err := s.SummaryRepository.GetByEmployeeMonth(ctx, employeeID, year, month)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	resp := toSummaryResponse(summary)
	if err := s.cache.Set(ctx, key, resp, s.ttl); err != nil {
		s.logger.Warn("summary cache write failed", slog.String("error", err.Error()))
	}

	return resp, nil
}

// ListSummaries implements attendance.SummaryService.
func (s *SummaryServiceImpl) ListSummaries(ctx context.Context, year, month int) ([]attendance.SummaryResponse, error) {
	summaries, err := s.SummaryRepository.ListByMonth(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance summaries: %w", err)
	}

	responses := make([]attendance.SummaryResponse, 0, len(summaries))
	for _, sum := range summaries {
		responses = append(responses, toSummaryResponse(sum))
	}

	return responses, nil
}

func toSummaryResponse(s attendance.Summary) attendance.SummaryResponse {
	return attendance.SummaryResponse{
		EmployeeID:       s.EmployeeID,
		EmployeeName:     s.EmployeeName,
		Year:             s.Year,
		Month:            s.Month,
		NormalDays:       s.NormalDays,
		LateCount:        s.LateCount,
		EarlyLeaveCount:  s.EarlyLeaveCount,
		AbsentDays:       s.AbsentDays,
		WorkFromHomeDays: s.WorkFromHomeDays,
		LeaveDays:        s.LeaveDays.StringFixed(1),
		OvertimeHours:    s.OvertimeHours.StringFixed(1),
	}
}
