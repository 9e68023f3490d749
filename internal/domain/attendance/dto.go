package attendance

import (
	"github.com/workline-hq/hrms-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE RECORD DTOs
// ========================================

// UpsertRecordRequest records or corrects one employee-day. Hours worked and
// the normal/late/early_leave/absent classification are always derived before
// persistence; only work_from_home is declared by the caller.
type UpsertRecordRequest struct {
	EmployeeID   string  `json:"employee_id"`
	WorkDate     string  `json:"work_date"`
	CheckIn      *string `json:"check_in"`
	CheckOut     *string `json:"check_out"`
	WorkFromHome bool    `json:"work_from_home"`
	Note         *string `json:"note"`
}

func (r *UpsertRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.WorkDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "work_date",
			Message: "work_date must be a valid date (YYYY-MM-DD)",
		})
	}

	if r.CheckIn != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in must be a valid timestamp",
			})
		}
	}

	if r.CheckOut != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be a valid timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecordFilter struct {
	EmployeeID *string
	From       *string
	To         *string
	Status     *string
	Page       int
	Limit      int
}

type RecordResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	WorkDate     string  `json:"work_date"`
	CheckIn      *string `json:"check_in,omitempty"`
	CheckOut     *string `json:"check_out,omitempty"`
	HoursWorked  *string `json:"hours_worked,omitempty"`
	Status       string  `json:"status"`
	Note         *string `json:"note,omitempty"`
}

type ListRecordResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Records    []RecordResponse `json:"records"`
}

// ========================================
// REFERENCE TYPE DTOs
// ========================================

type CreateLeaveTypeRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IsPaid      bool    `json:"is_paid"`
	AnnualQuota string  `json:"annual_quota"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if r.AnnualQuota != "" {
		if _, ok := validator.IsValidAmount(r.AnnualQuota); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "annual_quota",
				Message: "annual_quota must be a non-negative number",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateLeaveTypeRequest struct {
	ID          string  `json:"-"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsPaid      *bool   `json:"is_paid"`
	AnnualQuota *string `json:"annual_quota"`
}

type LeaveTypeResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	IsPaid      bool    `json:"is_paid"`
	AnnualQuota string  `json:"annual_quota"`
}

type CreateOvertimeTypeRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Multiplier  string  `json:"multiplier"`
}

func (r *CreateOvertimeTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if r.Multiplier != "" {
		if m, ok := validator.IsValidAmount(r.Multiplier); !ok || m.IsZero() {
			errs = append(errs, validator.ValidationError{
				Field:   "multiplier",
				Message: "multiplier must be a positive number",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateOvertimeTypeRequest struct {
	ID          string  `json:"-"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Multiplier  *string `json:"multiplier"`
}

type OvertimeTypeResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Multiplier  string  `json:"multiplier"`
}

// ========================================
// LEAVE / OVERTIME REQUEST DTOs
// ========================================

type CreateLeaveRequestRequest struct {
	EmployeeID  string `json:"employee_id"`
	LeaveTypeID string `json:"leave_type_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Days        string `json:"days"`
	Reason      string `json:"reason"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date (YYYY-MM-DD)",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if d, ok := validator.IsValidAmount(r.Days); !ok || d.IsZero() {
		errs = append(errs, validator.ValidationError{
			Field:   "days",
			Message: "days must be a positive number",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateOvertimeRequestRequest struct {
	EmployeeID     string `json:"employee_id"`
	OvertimeTypeID string `json:"overtime_type_id"`
	WorkDate       string `json:"work_date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	Reason         string `json:"reason"`
}

func (r *CreateOvertimeRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.OvertimeTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime_type_id",
			Message: "overtime_type_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.WorkDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "work_date",
			Message: "work_date must be a valid date (YYYY-MM-DD)",
		})
	}

	if _, ok := validator.IsValidTimeOfDay(r.StartTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be a clock time (HH:MM)",
		})
	}

	if _, ok := validator.IsValidTimeOfDay(r.EndTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be a clock time (HH:MM)",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DecideRequest approves or rejects a pending leave/overtime request.
type DecideRequest struct {
	ID         string  `json:"-"`
	ApproverID string  `json:"approver_id"`
	Note       *string `json:"note"`
}

func (r *DecideRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if validator.IsEmpty(r.ApproverID) {
		errs = append(errs, validator.ValidationError{
			Field:   "approver_id",
			Message: "approver_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RequestFilter struct {
	EmployeeID *string
	Status     *string
	From       *string
	To         *string
	Page       int
	Limit      int
}

type LeaveRequestResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  *string `json:"employee_name,omitempty"`
	LeaveTypeID   string  `json:"leave_type_id"`
	LeaveTypeName *string `json:"leave_type_name,omitempty"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Days          string  `json:"days"`
	Reason        string  `json:"reason"`
	Status        string  `json:"status"`
	ApproverID    *string `json:"approver_id,omitempty"`
	ApprovalTime  *string `json:"approval_time,omitempty"`
}

type ListLeaveRequestResponse struct {
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
	Requests   []LeaveRequestResponse `json:"requests"`
}

type OvertimeRequestResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     *string `json:"employee_name,omitempty"`
	OvertimeTypeID   string  `json:"overtime_type_id"`
	OvertimeTypeName *string `json:"overtime_type_name,omitempty"`
	WorkDate         string  `json:"work_date"`
	StartTime        string  `json:"start_time"`
	EndTime          string  `json:"end_time"`
	Hours            string  `json:"hours"`
	Reason           string  `json:"reason"`
	Status           string  `json:"status"`
	ApproverID       *string `json:"approver_id,omitempty"`
	ApprovalTime     *string `json:"approval_time,omitempty"`
}

type ListOvertimeRequestResponse struct {
	TotalCount int64                     `json:"total_count"`
	Page       int                       `json:"page"`
	Limit      int                       `json:"limit"`
	TotalPages int                       `json:"total_pages"`
	Requests   []OvertimeRequestResponse `json:"requests"`
}

// ========================================
// SUMMARY DTOs
// ========================================

type RecomputeSummaryRequest struct {
	EmployeeID *string `json:"employee_id"`
	Year       int     `json:"year"`
	Month      int     `json:"month"`
}

func (r *RecomputeSummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidYearMonth(r.Year, r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "year and month must form a valid period",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SummaryResponse struct {
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     *string `json:"employee_name,omitempty"`
	Year             int     `json:"year"`
	Month            int     `json:"month"`
	NormalDays       int     `json:"normal_days"`
	LateCount        int     `json:"late_count"`
	EarlyLeaveCount  int     `json:"early_leave_count"`
	AbsentDays       int     `json:"absent_days"`
	WorkFromHomeDays int     `json:"work_from_home_days"`
	LeaveDays        string  `json:"leave_days"`
	OvertimeHours    string  `json:"overtime_hours"`
}
