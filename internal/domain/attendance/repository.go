package attendance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type RecordRepository interface {
	// Upsert creates or replaces the record for (employee_id, work_date).
	Upsert(ctx context.Context, record Record) (Record, error)

	GetByID(ctx context.Context, id string) (Record, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (*Record, error)

	// ListByEmployeeMonth returns all records for one employee within a month,
	// ordered by work date. Used by the summary aggregator.
	ListByEmployeeMonth(ctx context.Context, employeeID string, year, month int) ([]Record, error)

	List(ctx context.Context, filter RecordFilter) ([]Record, int64, error)
	Delete(ctx context.Context, id string) error
}

type LeaveTypeRepository interface {
	Create(ctx context.Context, lt LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string) (LeaveType, error)
	List(ctx context.Context) ([]LeaveType, error)
	Update(ctx context.Context, req UpdateLeaveTypeRequest) error
	Delete(ctx context.Context, id string) error
}

type OvertimeTypeRepository interface {
	Create(ctx context.Context, ot OvertimeType) (OvertimeType, error)
	GetByID(ctx context.Context, id string) (OvertimeType, error)
	List(ctx context.Context) ([]OvertimeType, error)
	Update(ctx context.Context, req UpdateOvertimeTypeRequest) error
	Delete(ctx context.Context, id string) error
}

type LeaveRequestRepository interface {
	Create(ctx context.Context, lr LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter RequestFilter) ([]LeaveRequest, int64, error)

	// ListApprovedIntersecting returns approved requests whose date range
	// intersects [from, to] for one employee.
	ListApprovedIntersecting(ctx context.Context, employeeID string, from, to time.Time) ([]LeaveRequest, error)

	// UpdateStatus transitions a pending request exactly once. Implementations
	// must guard the transition with a status = 'pending' predicate and report
	// ErrRequestAlreadyProcessed when no row matched.
	UpdateStatus(ctx context.Context, id string, status RequestStatus, approverID string, approvalTime time.Time) error
}

type OvertimeRequestRepository interface {
	Create(ctx context.Context, or OvertimeRequest) (OvertimeRequest, error)
	GetByID(ctx context.Context, id string) (OvertimeRequest, error)
	List(ctx context.Context, filter RequestFilter) ([]OvertimeRequest, int64, error)

	// SumApprovedHours sums hours over approved requests with work_date inside
	// [from, to] for one employee.
	SumApprovedHours(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error)

	UpdateStatus(ctx context.Context, id string, status RequestStatus, approverID string, approvalTime time.Time) error
}

type SummaryRepository interface {
	// Upsert atomically writes the whole summary row keyed on
	// (employee_id, year, month).
	Upsert(ctx context.Context, summary Summary) (Summary, error)

	GetByEmployeeMonth(ctx context.Context, employeeID string, year, month int) (Summary, error)
	ListByMonth(ctx context.Context, year, month int) ([]Summary, error)
}
