package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/workline-hq/hrms-backend-go/internal/domain/attendance"
	"github.com/workline-hq/hrms-backend-go/internal/pkg/database"
)

const summaryColumns = `
	s.id, s.employee_id, s.year, s.month,
	s.normal_days, s.late_count, s.early_leave_count, s.absent_days,
	s.work_from_home_days, s.leave_days, s.overtime_hours,
	s.note, s.created_at, s.updated_at,
	e.name AS employee_name
`

type summaryRepositoryImpl struct {
	db *database.DB
}

func NewSummaryRepository(db *database.DB) attendance.SummaryRepository {
	return &summaryRepositoryImpl{db: db}
}

func scanSummary(row pgx.Row) (attendance.Summary, error) {
	var s attendance.Summary
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.Year, &s.Month,
		&s.NormalDays, &s.LateCount, &s.EarlyLeaveCount, &s.AbsentDays,
		&s.WorkFromHomeDays, &s.LeaveDays, &s.OvertimeHours,
		&s.Note, &s.CreatedAt, &s.UpdatedAt,
		&s.EmployeeName,
	)
	return s, err
}

// Upsert implements attendance.SummaryRepository. The whole row is replaced
// in one statement keyed on (employee_id, year, month), so concurrent
// recomputes can interleave without tearing a summary.
func (r *summaryRepositoryImpl) Upsert(ctx context.Context, summary attendance.Summary) (attendance.Summary, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO attendance_summaries (
			id, employee_id, year, month,
			normal_days, late_count, early_leave_count, absent_days,
			work_from_home_days, leave_days, overtime_hours, note,
			created_at, updated_at
		) VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		ON CONFLICT (employee_id, year, month) DO UPDATE SET
			normal_days = EXCLUDED.normal_days,
			late_count = EXCLUDED.late_count,
			early_leave_count = EXCLUDED.early_leave_count,
			absent_days = EXCLUDED.absent_days,
			work_from_home_days = EXCLUDED.work_from_home_days,
			leave_days = EXCLUDED.leave_days,
			overtime_hours = EXCLUDED.overtime_hours,
			note = EXCLUDED.note,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		summary.EmployeeID, summary.Year, summary.Month,
		summary.NormalDays, summary.LateCount, summary.EarlyLeaveCount, summary.AbsentDays,
		summary.WorkFromHomeDays, summary.LeaveDays, summary.OvertimeHours, summary.Note,
	).Scan(&summary.ID, &summary.CreatedAt, &summary.UpdatedAt)
	if err != nil {
		return attendance.Summary{}, err
	}
	return summary, nil
}

// GetByEmployeeMonth implements attendance.SummaryRepository.
func (r *summaryRepositoryImpl) GetByEmployeeMonth(ctx context.Context, employeeID string, year, month int) (attendance.Summary, error) {
	q := GetQuerier(ctx, r.db)
	query := "SELECT " + summaryColumns + `
		FROM attendance_summaries s
		JOIN employees e ON s.employee_id = e.id
		WHERE s.employee_id = $1 AND s.year = $2 AND s.month = $3
	`
	summary, err := scanSummary(q.QueryRow(ctx, query, employeeID, year, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Summary{}, attendance.ErrSummaryNotFound
		}
		return attendance.Summary{}, err
	}
	return summary, nil
}

// ListByMonth implements attendance.SummaryRepository.
func (r *summaryRepositoryImpl) ListByMonth(ctx context.Context, year, month int) ([]attendance.Summary, error) {
	q := GetQuerier(ctx, r.db)
	query := "SELECT " + summaryColumns + `
		FROM attendance_summaries s
		JOIN employees e ON s.employee_id = e.id
		WHERE s.year = $1 AND s.month = $2
		ORDER BY e.code
	`
	rows, err := q.Query(ctx, query, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance summaries: %w", err)
	}
	defer rows.Close()

	var summaries []attendance.Summary
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance summary: %w", err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}
