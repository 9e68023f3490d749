package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/workline-hq/hrms-backend-go/internal/domain/master"
	"github.com/workline-hq/hrms-backend-go/internal/pkg/database"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) master.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

// Create implements master.DepartmentRepository.
func (r *departmentRepositoryImpl) Create(ctx context.Context, department master.Department) (master.Department, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO departments (id, name, description, manager_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		department.ID, department.Name, department.Description, department.ManagerID,
	).Scan(&department.CreatedAt, &department.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return master.Department{}, master.ErrDepartmentNameExists
		}
		return master.Department{}, err
	}
	return department, nil
}

// GetByID implements master.DepartmentRepository.
func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id string) (master.Department, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT d.id, d.name, d.description, d.manager_id, d.created_at, d.updated_at,
			   m.name AS manager_name,
			   (SELECT COUNT(*) FROM employees e WHERE e.department_id = d.id AND e.status <> 'resigned') AS headcount
		FROM departments d
		LEFT JOIN employees m ON d.manager_id = m.id
		WHERE d.id = $1
	`
	var d master.Department
	var headcount int
	err := q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Name, &d.Description, &d.ManagerID, &d.CreatedAt, &d.UpdatedAt,
		&d.ManagerName, &headcount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return master.Department{}, master.ErrDepartmentNotFound
		}
		return master.Department{}, err
	}
	d.Headcount = &headcount
	return d, nil
}

// List implements master.DepartmentRepository.
func (r *departmentRepositoryImpl) List(ctx context.Context) ([]master.Department, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT d.id, d.name, d.description, d.manager_id, d.created_at, d.updated_at,
			   m.name AS manager_name,
			   (SELECT COUNT(*) FROM employees e WHERE e.department_id = d.id AND e.status <> 'resigned') AS headcount
		FROM departments d
		LEFT JOIN employees m ON d.manager_id = m.id
		ORDER BY d.name
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var departments []master.Department
	for rows.Next() {
		var d master.Department
		var headcount int
		if err := rows.Scan(
			&d.ID, &d.Name, &d.Description, &d.ManagerID, &d.CreatedAt, &d.UpdatedAt,
			&d.ManagerName, &headcount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		d.Headcount = &headcount
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

// Update implements master.DepartmentRepository.
func (r *departmentRepositoryImpl) Update(ctx context.Context, req master.UpdateDepartmentRequest) error {
	q := GetQuerier(ctx, r.db)

	sets := []string{"updated_at = NOW()"}
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
	if req.ManagerID != nil {
		sets = append(sets, fmt.Sprintf("manager_id = $%d", argIdx))
		args = append(args, *req.ManagerID)
		argIdx++
	}

	query := fmt.Sprintf("UPDATE departments SET %s WHERE id = $%d", strings.Join(sets, ", "), argIdx)
	args = append(args, req.ID)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, "") {
			return master.ErrDepartmentNameExists
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return master.ErrDepartmentNotFound
	}
	return nil
}

// Delete implements master.DepartmentRepository. Employee references are
// nulled first so the delete never cascades into employee rows.
func (r *departmentRepositoryImpl) Delete(ctx context.Context, id string) error {
	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		if _, err := q.Exec(ctx, `UPDATE employees SET department_id = NULL WHERE department_id = $1`, id); err != nil {
			return err
		}

		tag, err := q.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return master.ErrDepartmentNotFound
		}
		return nil
	})
}

type positionRepositoryImpl struct {
	db *database.DB
}

func NewPositionRepository(db *database.DB) master.PositionRepository {
	return &positionRepositoryImpl{db: db}
}

// Create implements master.PositionRepository.
func (r *positionRepositoryImpl) Create(ctx context.Context, position master.Position) (master.Position, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO positions (id, name, level, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		position.ID, position.Name, position.Level, position.Description,
	).Scan(&position.CreatedAt, &position.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return master.Position{}, master.ErrPositionNameExists
		}
		return master.Position{}, err
	}
	return position, nil
}

// GetByID implements master.PositionRepository.
func (r *positionRepositoryImpl) GetByID(ctx context.Context, id string) (master.Position, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, level, description, created_at, updated_at
		FROM positions
		WHERE id = $1
	`
	var p master.Position
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Level, &p.Description, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return master.Position{}, master.ErrPositionNotFound
		}
		return master.Position{}, err
	}
	return p, nil
}

// List implements master.PositionRepository.
func (r *positionRepositoryImpl) List(ctx context.Context) ([]master.Position, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, level, description, created_at, updated_at
		FROM positions
		ORDER BY level, name
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	defer rows.Close()

	var positions []master.Position
	for rows.Next() {
		var p master.Position
		if err := rows.Scan(&p.ID, &p.Name, &p.Level, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// Update implements master.PositionRepository.
func (r *positionRepositoryImpl) Update(ctx context.Context, req master.UpdatePositionRequest) error {
	q := GetQuerier(ctx, r.db)

	sets := []string{"updated_at = NOW()"}
	args := []interface{}{}
	argIdx := 1

	if req.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.Level != nil {
		sets = append(sets, fmt.Sprintf("level = $%d", argIdx))
		args = append(args, *req.Level)
		argIdx++
	}
	if req.Description != nil {
		sets = append(sets, fmt.Sprintf("description = $%d", argIdx))
		args = append(args, *req.Description)
		argIdx++
	}

	query := fmt.Sprintf("UPDATE positions SET %s WHERE id = $%d", strings.Join(sets, ", "), argIdx)
	args = append(args, req.ID)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, "") {
			return master.ErrPositionNameExists
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return master.ErrPositionNotFound
	}
	return nil
}

// Delete implements master.PositionRepository.
func (r *positionRepositoryImpl) Delete(ctx context.Context, id string) error {
	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		if _, err := q.Exec(ctx, `UPDATE employees SET position_id = NULL WHERE position_id = $1`, id); err != nil {
			return err
		}

		tag, err := q.Exec(ctx, `DELETE FROM positions WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return master.ErrPositionNotFound
		}
		return nil
	})
}
