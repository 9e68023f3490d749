package attendance

import "context"

// RecordService defines business logic for attendance records. Derived fields
// (hours worked, classification) are computed explicitly here before
// persistence, never inside a save hook.
type RecordService interface {
	UpsertRecord(ctx context.Context, req UpsertRecordRequest) (RecordResponse, error)
	GetRecord(ctx context.Context, id string) (RecordResponse, error)
	ListRecords(ctx context.Context, filter RecordFilter) (ListRecordResponse, error)
	DeleteRecord(ctx context.Context, id string) error
}

// RequestService covers the shared approval lifecycle of leave and overtime
// requests.
type RequestService interface {
	CreateLeaveRequest(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	ApproveLeaveRequest(ctx context.Context, req DecideRequest) (LeaveRequestResponse, error)
	RejectLeaveRequest(ctx context.Context, req DecideRequest) (LeaveRequestResponse, error)
	CancelLeaveRequest(ctx context.Context, req DecideRequest) (LeaveRequestResponse, error)
	ListLeaveRequests(ctx context.Context, filter RequestFilter) (ListLeaveRequestResponse, error)

	CreateOvertimeRequest(ctx context.Context, req CreateOvertimeRequestRequest) (OvertimeRequestResponse, error)
	ApproveOvertimeRequest(ctx context.Context, req DecideRequest) (OvertimeRequestResponse, error)
	RejectOvertimeRequest(ctx context.Context, req DecideRequest) (OvertimeRequestResponse, error)
	CancelOvertimeRequest(ctx context.Context, req DecideRequest) (OvertimeRequestResponse, error)
	ListOvertimeRequests(ctx context.Context, filter RequestFilter) (ListOvertimeRequestResponse, error)
}

// TypeService manages leave and overtime reference types. List reads go
// through the reference cache; writes invalidate it eagerly.
type TypeService interface {
	CreateLeaveType(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	ListLeaveTypes(ctx context.Context) ([]LeaveTypeResponse, error)
	UpdateLeaveType(ctx context.Context, req UpdateLeaveTypeRequest) error
	DeleteLeaveType(ctx context.Context, id string) error

	CreateOvertimeType(ctx context.Context, req CreateOvertimeTypeRequest) (OvertimeTypeResponse, error)
	ListOvertimeTypes(ctx context.Context) ([]OvertimeTypeResponse, error)
	UpdateOvertimeType(ctx context.Context, req UpdateOvertimeTypeRequest) error
	DeleteOvertimeType(ctx context.Context, id string) error
}

// SummaryService recomputes and serves monthly attendance summaries.
type SummaryService interface {
	// Recompute rebuilds the summary for one employee, or for every active
	// employee when req.EmployeeID is nil. Idempotent upsert per employee.
	Recompute(ctx context.Context, req RecomputeSummaryRequest) ([]SummaryResponse, error)

	GetSummary(ctx context.Context, employeeID string, year, month int) (SummaryResponse, error)
	ListSummaries(ctx context.Context, year, month int) ([]SummaryResponse, error)
}
