package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/workline-hq/hrms-backend-go/internal/domain/attendance"
	"github.com/workline-hq/hrms-backend-go/internal/pkg/database"
)

type overtimeTypeRepositoryImpl struct {
	db *database.DB
}

func NewOvertimeTypeRepository(db *database.DB) attendance.OvertimeTypeRepository {
	return &overtimeTypeRepositoryImpl{db: db}
}

// Create implements attendance.OvertimeTypeRepository.
func (r *overtimeTypeRepositoryImpl) Create(ctx context.Context, ot attendance.OvertimeType) (attendance.OvertimeType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO overtime_types (id, name, description, multiplier)
		VALUES ($1, $2, $3, $4)
	`
	_, err := q.Exec(ctx, query, ot.ID, ot.Name, ot.Description, ot.Multiplier)
	if err != nil {
		if isUniqueViolation(err, "") {
			return attendance.OvertimeType{}, attendance.ErrOvertimeTypeNameExists
		}
		return attendance.OvertimeType{}, err
	}
	return ot, nil
}

// GetByID implements attendance.OvertimeTypeRepository.
func (r *overtimeTypeRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.OvertimeType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, description, multiplier
		FROM overtime_types
		WHERE id = $1
	`
	var ot attendance.OvertimeType
	err := q.QueryRow(ctx, query, id).Scan(&ot.ID, &ot.Name, &ot.Description, &ot.Multiplier)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.OvertimeType{}, attendance.ErrOvertimeTypeNotFound
		}
		return attendance.OvertimeType{}, err
	}
	return ot, nil
}

// List implements attendance.OvertimeTypeRepository.
func (r *overtimeTypeRepositoryImpl) List(ctx context.Context) ([]attendance.OvertimeType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, description, multiplier
		FROM overtime_types
		ORDER BY name
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime types: %w", err)
	}
	defer rows.Close()

	var types []attendance.OvertimeType
	for rows.Next() {
		var ot attendance.OvertimeType
		if err := rows.Scan(&ot.ID, &ot.Name, &ot.Description, &ot.Multiplier); err != nil {
			return nil, fmt.Errorf("failed to scan overtime type: %w", err)
		}
		types = append(types, ot)
	}
	return types, rows.Err()
}

// Update implements attendance.OvertimeTypeRepository.
func (r *overtimeTypeRepositoryImpl) Update(ctx context.Context, req attendance.UpdateOvertimeTypeRequest) error {
	q := GetQuerier(ctx, r.db)

	sets := []string{}
	args := []interface{}{}
	argIdx := 1

	if req.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.Description != nil {
		sets = append(sets, fmt.Sprintf("description = $%d", argIdx))
		args = append(args, *req.Description)
		argIdx++
	}
	if req.Multiplier != nil {
		sets = append(sets, fmt.Sprintf("multiplier = $%d", argIdx))
		args = append(args, *req.Multiplier)
		argIdx++
	}
	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf("UPDATE overtime_types SET %s WHERE id = $%d", strings.Join(sets, ", "), argIdx)
	args = append(args, req.ID)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, "") {
			return attendance.ErrOvertimeTypeNameExists
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrOvertimeTypeNotFound
	}
	return nil
}

// Delete implements attendance.OvertimeTypeRepository.
func (r *overtimeTypeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM overtime_types WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrOvertimeTypeNotFound
	}
	return nil
}

const overtimeRequestColumns = `
	ovr.id, ovr.employee_id, ovr.overtime_type_id, ovr.work_date,
	ovr.start_time, ovr.end_time, ovr.hours, ovr.reason, ovr.status,
	ovr.approver_id, ovr.approval_time, ovr.note, ovr.created_at, ovr.updated_at,
	e.name AS employee_name,
	ot.name AS overtime_type_name
`

const overtimeRequestJoins = `
	FROM overtime_requests ovr
	JOIN employees e ON ovr.employee_id = e.id
	JOIN overtime_types ot ON ovr.overtime_type_id = ot.id
`

type overtimeRequestRepositoryImpl struct {
	db *database.DB
}

func NewOvertimeRequestRepository(db *database.DB) attendance.OvertimeRequestRepository {
	return &overtimeRequestRepositoryImpl{db: db}
}

func scanOvertimeRequest(row pgx.Row) (attendance.OvertimeRequest, error) {
	var or attendance.OvertimeRequest
	err := row.Scan(
		&or.ID, &or.EmployeeID, &or.OvertimeTypeID, &or.WorkDate,
		&or.StartTime, &or.EndTime, &or.Hours, &or.Reason, &or.Status,
		&or.ApproverID, &or.ApprovalTime, &or.Note, &or.CreatedAt, &or.UpdatedAt,
		&or.EmployeeName, &or.OvertimeTypeName,
	)
	return or, err
}

// Create implements attendance.OvertimeRequestRepository.
func (r *overtimeRequestRepositoryImpl) Create(ctx context.Context, or attendance.OvertimeRequest) (attendance.OvertimeRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO overtime_requests (
			id, employee_id, overtime_type_id, work_date,
			start_time, end_time, hours, reason, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		or.ID, or.EmployeeID, or.OvertimeTypeID, or.WorkDate,
		or.StartTime, or.EndTime, or.Hours, or.Reason, or.Status,
	).Scan(&or.CreatedAt, &or.UpdatedAt)
	if err != nil {
		return attendance.OvertimeRequest{}, err
	}
	return or, nil
}

// GetByID implements attendance.OvertimeRequestRepository.
func (r *overtimeRequestRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.OvertimeRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := "SELECT " + overtimeRequestColumns + overtimeRequestJoins + " WHERE ovr.id = $1"

	or, err := scanOvertimeRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.OvertimeRequest{}, attendance.ErrOvertimeRequestNotFound
		}
		return attendance.OvertimeRequest{}, err
	}
	return or, nil
}

// List implements attendance.OvertimeRequestRepository.
func (r *overtimeRequestRepositoryImpl) List(ctx context.Context, filter attendance.RequestFilter) ([]attendance.OvertimeRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("ovr.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("ovr.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.From != nil && *filter.From != "" {
		conditions = append(conditions, fmt.Sprintf("ovr.work_date >= $%d", argIdx))
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil && *filter.To != "" {
		conditions = append(conditions, fmt.Sprintf("ovr.work_date <= $%d", argIdx))
		args = append(args, *filter.To)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM overtime_requests ovr WHERE %s", whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count overtime requests: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(
		"SELECT %s %s WHERE %s ORDER BY ovr.work_date DESC LIMIT $%d OFFSET $%d",
		overtimeRequestColumns, overtimeRequestJoins, whereClause, argIdx, argIdx+1,
	)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list overtime requests: %w", err)
	}
	defer rows.Close()

	var requests []attendance.OvertimeRequest
	for rows.Next() {
		or, err := scanOvertimeRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan overtime request: %w", err)
		}
		requests = append(requests, or)
	}
	return requests, total, rows.Err()
}

// SumApprovedHours implements attendance.OvertimeRequestRepository.
func (r *overtimeRequestRepositoryImpl) SumApprovedHours(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT COALESCE(SUM(hours), 0)
		FROM overtime_requests
		WHERE employee_id = $1
		  AND status = 'approved'
		  AND work_date BETWEEN $2 AND $3
	`
	var sum decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID, from, to).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum approved overtime hours: %w", err)
	}
	return sum, nil
}

// UpdateStatus implements attendance.OvertimeRequestRepository.
func (r *overtimeRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status attendance.RequestStatus, approverID string, approvalTime time.Time) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE overtime_requests
		SET status = $2, approver_id = $3, approval_time = $4, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`
	tag, err := q.Exec(ctx, query, id, status, approverID, approvalTime)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRequestAlreadyProcessed
	}
	return nil
}
