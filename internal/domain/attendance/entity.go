package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum for a daily attendance record.
type Status string

const (
	StatusNormal       Status = "normal"
	StatusLate         Status = "late"
	StatusEarlyLeave   Status = "early_leave"
	StatusAbsent       Status = "absent"
	StatusLeave        Status = "leave"
	StatusWorkFromHome Status = "work_from_home"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNormal, StatusLate, StatusEarlyLeave, StatusAbsent, StatusLeave, StatusWorkFromHome:
		return true
	}
	return false
}

// RequestStatus is the shared approval lifecycle for leave and overtime
// requests. A request leaves pending exactly once.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
	RequestCanceled RequestStatus = "canceled"
)

func (s RequestStatus) Terminal() bool {
	return s != RequestPending
}

// Record is one employee-day of attendance. HoursWorked is always derived from
// the two timestamps, never set directly.
type Record struct {
	ID          string
	EmployeeID  string
	WorkDate    time.Time
	CheckIn     *time.Time
	CheckOut    *time.Time
	HoursWorked *decimal.Decimal
	Status      Status
	Note        *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	EmployeeName *string
}

// LeaveType is cached reference data.
type LeaveType struct {
	ID          string
	Name        string
	Description *string
	IsPaid      bool
	AnnualQuota decimal.Decimal
}

// OvertimeType is cached reference data. Multiplier feeds overtime pay.
type OvertimeType struct {
	ID          string
	Name        string
	Description *string
	Multiplier  decimal.Decimal
}

type LeaveRequest struct {
	ID           string
	EmployeeID   string
	LeaveTypeID  string
	StartDate    time.Time
	EndDate      time.Time
	Days         decimal.Decimal
	Reason       string
	Status       RequestStatus
	ApproverID   *string
	ApprovalTime *time.Time
	Note         *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	EmployeeName  *string
	LeaveTypeName *string
}

type OvertimeRequest struct {
	ID             string
	EmployeeID     string
	OvertimeTypeID string
	WorkDate       time.Time
	StartTime      time.Time
	EndTime        time.Time
	Hours          decimal.Decimal
	Reason         string
	Status         RequestStatus
	ApproverID     *string
	ApprovalTime   *time.Time
	Note           *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined fields
	EmployeeName     *string
	OvertimeTypeName *string
}

// Summary is the monthly rollup, unique per (employee, year, month). Only the
// aggregator writes it.
type Summary struct {
	ID               string
	EmployeeID       string
	Year             int
	Month            int
	NormalDays       int
	LateCount        int
	EarlyLeaveCount  int
	AbsentDays       int
	WorkFromHomeDays int
	LeaveDays        decimal.Decimal
	OvertimeHours    decimal.Decimal
	Note             *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined fields
	EmployeeName *string
}
