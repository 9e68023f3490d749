package attendance

import "errors"

// Attendance domain errors
var (
	ErrRecordNotFound = errors.New("attendance record not found")
	ErrMissingCheckIn = errors.New("check-in time is required when check-out is present")

	ErrLeaveTypeNotFound      = errors.New("leave type not found")
	ErrLeaveTypeNameExists    = errors.New("leave type with this name already exists")
	ErrOvertimeTypeNotFound   = errors.New("overtime type not found")
	ErrOvertimeTypeNameExists = errors.New("overtime type with this name already exists")

	ErrLeaveRequestNotFound    = errors.New("leave request not found")
	ErrOvertimeRequestNotFound = errors.New("overtime request not found")
	ErrRequestAlreadyProcessed = errors.New("request has already been approved, rejected or canceled")

	ErrSummaryNotFound = errors.New("attendance summary not found")
)
