package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/workline-hq/hrms-backend-go/internal/domain/attendance"
	"github.com/workline-hq/hrms-backend-go/internal/pkg/database"
)

const recordColumns = `
	r.id, r.employee_id, r.work_date, r.check_in, r.check_out,
	r.hours_worked, r.status, r.note, r.created_at, r.updated_at,
	e.name AS employee_name
`

type recordRepositoryImpl struct {
	db *database.DB
}

func NewRecordRepository(db *database.DB) attendance.RecordRepository {
	return &recordRepositoryImpl{db: db}
}

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.WorkDate, &rec.CheckIn, &rec.CheckOut,
		&rec.HoursWorked, &rec.Status, &rec.Note, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName,
	)
	return rec, err
}

// Upsert implements attendance.RecordRepository. A second write for the same
// (employee_id, work_date) replaces the first in one statement.
func (r *recordRepositoryImpl) Upsert(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO attendance_records (
			id, employee_id, work_date, check_in, check_out,
			hours_worked, status, note, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		ON CONFLICT (employee_id, work_date) DO UPDATE SET
			check_in = EXCLUDED.check_in,
			check_out = EXCLUDED.check_out,
			hours_worked = EXCLUDED.hours_worked,
			status = EXCLUDED.status,
			note = EXCLUDED.note,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.WorkDate, record.CheckIn, record.CheckOut,
		record.HoursWorked, record.Status, record.Note,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return attendance.Record{}, err
	}
	return record, nil
}

// GetByID implements attendance.RecordRepository.
func (r *recordRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)
	query := "SELECT " + recordColumns + `
		FROM attendance_records r
		JOIN employees e ON r.employee_id = e.id
		WHERE r.id = $1
	`
	rec, err := scanRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, err
	}
	return rec, nil
}

// GetByEmployeeAndDate implements attendance.RecordRepository.
func (r *recordRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, r.db)
	query := "SELECT " + recordColumns + `
		FROM attendance_records r
		JOIN employees e ON r.employee_id = e.id
		WHERE r.employee_id = $1 AND r.work_date = $2
	`
	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, workDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// ListByEmployeeMonth implements attendance.RecordRepository.
func (r *recordRepositoryImpl) ListByEmployeeMonth(ctx context.Context, employeeID string, year, month int) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)
	query := "SELECT " + recordColumns + `
		FROM attendance_records r
		JOIN employees e ON r.employee_id = e.id
		WHERE r.employee_id = $1
		  AND EXTRACT(YEAR FROM r.work_date) = $2
		  AND EXTRACT(MONTH FROM r.work_date) = $3
		ORDER BY r.work_date
	`
	rows, err := q.Query(ctx, query, employeeID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// List implements attendance.RecordRepository.
func (r *recordRepositoryImpl) List(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("r.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.From != nil && *filter.From != "" {
		conditions = append(conditions, fmt.Sprintf("r.work_date >= $%d", argIdx))
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil && *filter.To != "" {
		conditions = append(conditions, fmt.Sprintf("r.work_date <= $%d", argIdx))
		args = append(args, *filter.To)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("r.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM attendance_records r WHERE %s", whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT %s
		FROM attendance_records r
		JOIN employees e ON r.employee_id = e.id
		WHERE %s
		ORDER BY r.work_date DESC
		LIMIT $%d OFFSET $%d
	`, recordColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	return records, total, rows.Err()
}

// Delete implements attendance.RecordRepository.
func (r *recordRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}
