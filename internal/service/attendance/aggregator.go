package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/workline-hq/hrms-backend-go/internal/domain/attendance"
	"github.com/workline-hq/hrms-backend-go/internal/domain/employee"
)

// Aggregator recomputes monthly attendance summaries. Each run reads the
// month's records and approved requests, folds them in memory, and writes
// the result with a single atomic upsert, so re-running is always safe.
type Aggregator struct {
	recordRepo   attendance.RecordRepository
	leaveReqRepo attendance.LeaveRequestRepository
	otReqRepo    attendance.OvertimeRequestRepository
	summaryRepo  attendance.SummaryRepository
	employeeRepo employee.EmployeeRepository
	logger       *slog.Logger

	// concurrency bound for whole-company runs
	parallelism int
}

func NewAggregator(
	recordRepo attendance.RecordRepository,
	leaveReqRepo attendance.LeaveRequestRepository,
	otReqRepo attendance.OvertimeRequestRepository,
	summaryRepo attendance.SummaryRepository,
	employeeRepo employee.EmployeeRepository,
	logger *slog.Logger,
) *Aggregator {
	return &Aggregator{
		recordRepo:   recordRepo,
		leaveReqRepo: leaveReqRepo,
		otReqRepo:    otReqRepo,
		summaryRepo:  summaryRepo,
		employeeRepo: employeeRepo,
		logger:       logger,
		parallelism:  8,
	}
}

// RecomputeEmployee rebuilds one (employee, year, month) summary.
func (a *Aggregator) RecomputeEmployee(ctx context.Context, employeeID string, year, month int) (attendance.Summary, error) {
	from, to := monthBounds(year, month)

	records, err := a.recordRepo.ListByEmployeeMonth(ctx, employeeID, year, month)
	if err != nil {
		return attendance.Summary{}, fmt.Errorf("list records: %w", err)
	}

	leaveReqs, err := a.leaveReqRepo.ListApprovedIntersecting(ctx, employeeID, from, to)
	if err != nil {
		return attendance.Summary{}, fmt.Errorf("list approved leave: %w", err)
	}

	overtimeHours, err := a.otReqRepo.SumApprovedHours(ctx, employeeID, from, to)
	if err != nil {
		return attendance.Summary{}, fmt.Errorf("sum approved overtime: %w", err)
	}

	summary := buildSummary(employeeID, year, month, records, leaveReqs, overtimeHours)

	stored, err := a.summaryRepo.Upsert(ctx, summary)
	if err != nil {
		return attendance.Summary{}, fmt.Errorf("upsert summary: %w", err)
	}

	return stored, nil
}

// RecomputeAll rebuilds the month's summary for every active employee.
// Per-employee runs are independent, so they execute in parallel.
func (a *Aggregator) RecomputeAll(ctx context.Context, year, month int) (int, error) {
	employees, err := a.employeeRepo.GetActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("list active employees: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.parallelism)

	for _, emp := range employees {
		emp := emp
		g.Go(func() error {
			if _, err := a.RecomputeEmployee(ctx, emp.ID, year, month); err != nil {
				return fmt.Errorf("employee %s: %w", emp.ID, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	a.logger.Info("attendance summaries recomputed",
		slog.Int("year", year),
		slog.Int("month", month),
		slog.Int("employees", len(employees)),
	)

	return len(employees), nil
}

// buildSummary folds one month into a summary row. Absent workdays covered
// by an approved leave request are reclassified as leave days.
func buildSummary(
	employeeID string,
	year, month int,
	records []attendance.Record,
	leaveReqs []attendance.LeaveRequest,
	overtimeHours decimal.Decimal,
) attendance.Summary {
	summary := attendance.Summary{
		EmployeeID:    employeeID,
		Year:          year,
		Month:         month,
		LeaveDays:     ProratedLeaveDays(leaveReqs, year, month),
		OvertimeHours: overtimeHours.Round(1),
	}

	for _, rec := range records {
		status := rec.Status
		if status == attendance.StatusAbsent && coveredByLeave(rec.WorkDate, leaveReqs) {
			status = attendance.StatusLeave
		}

		switch status {
		case attendance.StatusNormal:
			summary.NormalDays++
		case attendance.StatusLate:
			summary.LateCount++
		case attendance.StatusEarlyLeave:
			summary.EarlyLeaveCount++
		case attendance.StatusAbsent:
			summary.AbsentDays++
		case attendance.StatusWorkFromHome:
			summary.WorkFromHomeDays++
		}
	}

	return summary
}

// ProratedLeaveDays sums approved leave over one month. A request spanning a
// month boundary contributes in proportion to the calendar days that fall
// inside the month, so no day is counted twice across months.
func ProratedLeaveDays(leaveReqs []attendance.LeaveRequest, year, month int) decimal.Decimal {
	from, to := monthBounds(year, month)

	total := decimal.Zero
	for _, lr := range leaveReqs {
		span := calendarDays(lr.StartDate, lr.EndDate)
		if span <= 0 {
			continue
		}

		overlap := calendarDays(maxDate(lr.StartDate, from), minDate(lr.EndDate, to))
		if overlap <= 0 {
			continue
		}

		fraction := decimal.NewFromInt(int64(overlap)).Div(decimal.NewFromInt(int64(span)))
		total = total.Add(lr.Days.Mul(fraction))
	}

	return total.Round(1)
}

func coveredByLeave(day time.Time, leaveReqs []attendance.LeaveRequest) bool {
	d := truncateDay(day)
	for _, lr := range leaveReqs {
		if !d.Before(truncateDay(lr.StartDate)) && !d.After(truncateDay(lr.EndDate)) {
			return true
		}
	}
	return false
}

func monthBounds(year, month int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	return from, to
}

// calendarDays counts inclusive days between two dates, ignoring clock time.
func calendarDays(start, end time.Time) int {
	s, e := truncateDay(start), truncateDay(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
