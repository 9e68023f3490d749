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

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) attendance.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

// Create implements attendance.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Create(ctx context.Context, lt attendance.LeaveType) (attendance.LeaveType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO leave_types (id, name, description, is_paid, annual_quota)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := q.Exec(ctx, query, lt.ID, lt.Name, lt.Description, lt.IsPaid, lt.AnnualQuota)
	if err != nil {
		if isUniqueViolation(err, "") {
			return attendance.LeaveType{}, attendance.ErrLeaveTypeNameExists
		}
		return attendance.LeaveType{}, err
	}
	return lt, nil
}

// GetByID implements attendance.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.LeaveType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, description, is_paid, annual_quota
		FROM leave_types
		WHERE id = $1
	`
	var lt attendance.LeaveType
	err := q.QueryRow(ctx, query, id).Scan(&lt.ID, &lt.Name, &lt.Description, &lt.IsPaid, &lt.AnnualQuota)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.LeaveType{}, attendance.ErrLeaveTypeNotFound
		}
		return attendance.LeaveType{}, err
	}
	return lt, nil
}

// List implements attendance.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) List(ctx context.Context) ([]attendance.LeaveType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, description, is_paid, annual_quota
		FROM leave_types
		ORDER BY name
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	defer rows.Close()

	var types []attendance.LeaveType
	for rows.Next() {
		var lt attendance.LeaveType
		if err := rows.Scan(&lt.ID, &lt.Name, &lt.Description, &lt.IsPaid, &lt.AnnualQuota); err != nil {
			return nil, fmt.Errorf("failed to scan leave type: %w", err)
		}
		types = append(types, lt)
	}
	return types, rows.Err()
}

// Update implements attendance.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Update(ctx context.Context, req attendance.UpdateLeaveTypeRequest) error {
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
	if req.IsPaid != nil {
		sets = append(sets, fmt.Sprintf("is_paid = $%d", argIdx))
		args = append(args, *req.IsPaid)
		argIdx++
	}
	if req.AnnualQuota != nil {
		sets = append(sets, fmt.Sprintf("annual_quota = $%d", argIdx))
		args = append(args, *req.AnnualQuota)
		argIdx++
	}
	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf("UPDATE leave_types SET %s WHERE id = $%d", strings.Join(sets, ", "), argIdx)
	args = append(args, req.ID)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, "") {
			return attendance.ErrLeaveTypeNameExists
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrLeaveTypeNotFound
	}
	return nil
}

// Delete implements attendance.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_types WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrLeaveTypeNotFound
	}
	return nil
}

const leaveRequestColumns = `
	lr.id, lr.employee_id, lr.leave_type_id, lr.start_date, lr.end_date,
	lr.days, lr.reason, lr.status, lr.approver_id, lr.approval_time, lr.note,
	lr.created_at, lr.updated_at,
	e.name AS employee_name,
	lt.name AS leave_type_name
`

const leaveRequestJoins = `
	FROM leave_requests lr
	JOIN employees e ON lr.employee_id = e.id
	JOIN leave_types lt ON lr.leave_type_id = lt.id
`

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) attendance.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func scanLeaveRequest(row pgx.Row) (attendance.LeaveRequest, error) {
	var lr attendance.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.LeaveTypeID, &lr.StartDate, &lr.EndDate,
		&lr.Days, &lr.Reason, &lr.Status, &lr.ApproverID, &lr.ApprovalTime, &lr.Note,
		&lr.CreatedAt, &lr.UpdatedAt,
		&lr.EmployeeName, &lr.LeaveTypeName,
	)
	return lr, err
}

// Create implements attendance.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, lr attendance.LeaveRequest) (attendance.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO leave_requests (
			id, employee_id, leave_type_id, start_date, end_date,
			days, reason, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		lr.ID, lr.EmployeeID, lr.LeaveTypeID, lr.StartDate, lr.EndDate,
		lr.Days, lr.Reason, lr.Status,
	).Scan(&lr.CreatedAt, &lr.UpdatedAt)
	if err != nil {
		return attendance.LeaveRequest{}, err
	}
	return lr, nil
}

// GetByID implements attendance.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := "SELECT " + leaveRequestColumns + leaveRequestJoins + " WHERE lr.id = $1"

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.LeaveRequest{}, attendance.ErrLeaveRequestNotFound
		}
		return attendance.LeaveRequest{}, err
	}
	return lr, nil
}

// List implements attendance.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter attendance.RequestFilter) ([]attendance.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("lr.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("lr.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.From != nil && *filter.From != "" {
		conditions = append(conditions, fmt.Sprintf("lr.end_date >= $%d", argIdx))
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil && *filter.To != "" {
		conditions = append(conditions, fmt.Sprintf("lr.start_date <= $%d", argIdx))
		args = append(args, *filter.To)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM leave_requests lr WHERE %s", whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(
		"SELECT %s %s WHERE %s ORDER BY lr.created_at DESC LIMIT $%d OFFSET $%d",
		leaveRequestColumns, leaveRequestJoins, whereClause, argIdx, argIdx+1,
	)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []attendance.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}
	return requests, total, rows.Err()
}

// ListApprovedIntersecting implements attendance.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListApprovedIntersecting(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := "SELECT " + leaveRequestColumns + leaveRequestJoins + `
		WHERE lr.employee_id = $1
		  AND lr.status = 'approved'
		  AND lr.start_date <= $3
		  AND lr.end_date >= $2
		ORDER BY lr.start_date
	`
	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave requests: %w", err)
	}
	defer rows.Close()

	var requests []attendance.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

// UpdateStatus implements attendance.LeaveRequestRepository. The pending
// predicate makes the transition happen at most once even under concurrent
// decisions.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status attendance.RequestStatus, approverID string, approvalTime time.Time) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_requests
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
