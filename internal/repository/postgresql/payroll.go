package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/workline-hq/hrms-backend-go/internal/domain/payroll"
	"github.com/workline-hq/hrms-backend-go/internal/pkg/database"
)

type itemRepositoryImpl struct {
	db *database.DB
}

func NewItemRepository(db *database.DB) payroll.ItemRepository {
	return &itemRepositoryImpl{db: db}
}

// CreateItemType implements payroll.ItemRepository.
func (r *itemRepositoryImpl) CreateItemType(ctx context.Context, it payroll.SalaryItemType) (payroll.SalaryItemType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO salary_item_types (id, name, code, is_taxable, is_benefit, is_deduction, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := q.Exec(ctx, query,
		it.ID, it.Name, it.Code, it.IsTaxable, it.IsBenefit, it.IsDeduction, it.Description,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return payroll.SalaryItemType{}, payroll.ErrItemTypeCodeExists
		}
		return payroll.SalaryItemType{}, err
	}
	return it, nil
}

// ListItemTypes implements payroll.ItemRepository.
func (r *itemRepositoryImpl) ListItemTypes(ctx context.Context) ([]payroll.SalaryItemType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, code, is_taxable, is_benefit, is_deduction, description
		FROM salary_item_types
		ORDER BY code
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary item types: %w", err)
	}
	defer rows.Close()

	var types []payroll.SalaryItemType
	for rows.Next() {
		var it payroll.SalaryItemType
		if err := rows.Scan(&it.ID, &it.Name, &it.Code, &it.IsTaxable, &it.IsBenefit, &it.IsDeduction, &it.Description); err != nil {
			return nil, fmt.Errorf("failed to scan salary item type: %w", err)
		}
		types = append(types, it)
	}
	return types, rows.Err()
}

const itemColumns = `
	i.id, i.name, i.code, i.item_type_id, i.default_amount, i.is_active, i.description,
	t.code AS type_code, t.is_benefit, t.is_deduction, t.is_taxable
`

const itemJoins = `
	FROM salary_items i
	JOIN salary_item_types t ON i.item_type_id = t.id
`

func scanItem(row pgx.Row) (payroll.SalaryItem, error) {
	var item payroll.SalaryItem
	err := row.Scan(
		&item.ID, &item.Name, &item.Code, &item.ItemTypeID, &item.DefaultAmount,
		&item.IsActive, &item.Description,
		&item.TypeCode, &item.IsBenefit, &item.IsDeduction, &item.IsTaxable,
	)
	return item, err
}

// CreateItem implements payroll.ItemRepository.
func (r *itemRepositoryImpl) CreateItem(ctx context.Context, item payroll.SalaryItem) (payroll.SalaryItem, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO salary_items (id, name, code, item_type_id, default_amount, is_active, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := q.Exec(ctx, query,
		item.ID, item.Name, item.Code, item.ItemTypeID, item.DefaultAmount, item.IsActive, item.Description,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return payroll.SalaryItem{}, payroll.ErrItemCodeExists
		}
		return payroll.SalaryItem{}, err
	}
	return item, nil
}

// GetItemByID implements payroll.ItemRepository.
func (r *itemRepositoryImpl) GetItemByID(ctx context.Context, id string) (payroll.SalaryItem, error) {
	q := GetQuerier(ctx, r.db)
	query := "SELECT " + itemColumns + itemJoins + " WHERE i.id = $1"

	item, err := scanItem(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SalaryItem{}, payroll.ErrItemNotFound
		}
		return payroll.SalaryItem{}, err
	}
	return item, nil
}

// ListItems implements payroll.ItemRepository.
func (r *itemRepositoryImpl) ListItems(ctx context.Context, activeOnly bool) ([]payroll.SalaryItem, error) {
	q := GetQuerier(ctx, r.db)

	query := "SELECT " + itemColumns + itemJoins
	if activeOnly {
		query += " WHERE i.is_active"
	}
	query += " ORDER BY i.code"

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary items: %w", err)
	}
	defer rows.Close()

	var items []payroll.SalaryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateItem implements payroll.ItemRepository.
func (r *itemRepositoryImpl) UpdateItem(ctx context.Context, req payroll.UpdateSalaryItemRequest) error {
	q := GetQuerier(ctx, r.db)

	sets := []string{}
	args := []interface{}{}
	argIdx := 1

	if req.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.DefaultAmount != nil {
		sets = append(sets, fmt.Sprintf("default_amount = $%d", argIdx))
		args = append(args, *req.DefaultAmount)
		argIdx++
	}
	if req.IsActive != nil {
		sets = append(sets, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *req.IsActive)
		argIdx++
	}
	if req.Description != nil {
		sets = append(sets, fmt.Sprintf("description = $%d", argIdx))
		args = append(args, *req.Description)
		argIdx++
	}
	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf("UPDATE salary_items SET %s WHERE id = $%d", strings.Join(sets, ", "), argIdx)
	args = append(args, req.ID)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrItemNotFound
	}
	return nil
}

// DeleteItem implements payroll.ItemRepository. Items referenced by history
// are deactivated instead of removed.
func (r *itemRepositoryImpl) DeleteItem(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE salary_items SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrItemNotFound
	}
	return nil
}

type structureRepositoryImpl struct {
	db *database.DB
}

func NewStructureRepository(db *database.DB) payroll.StructureRepository {
	return &structureRepositoryImpl{db: db}
}

// Create implements payroll.StructureRepository. The structure and its
// details are written in one transaction; marking a structure default
// clears the previous default.
func (r *structureRepositoryImpl) Create(ctx context.Context, structure payroll.SalaryStructure) (payroll.SalaryStructure, error) {
	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		if structure.IsDefault {
			if _, err := q.Exec(ctx, `UPDATE salary_structures SET is_default = FALSE WHERE is_default`); err != nil {
				return err
			}
		}

		query := `
			INSERT INTO salary_structures (id, name, description, is_default, created_at, updated_at)
			VALUES ($1, $2, $3, $4, NOW(), NOW())
			RETURNING created_at, updated_at
		`
		if err := q.QueryRow(ctx, query,
			structure.ID, structure.Name, structure.Description, structure.IsDefault,
		).Scan(&structure.CreatedAt, &structure.UpdatedAt); err != nil {
			return err
		}

		for _, d := range structure.Details {
			detailQuery := `
				INSERT INTO salary_structure_details (id, structure_id, item_id, amount, sort_order, formula, is_fixed)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			`
			if _, err := q.Exec(ctx, detailQuery,
				d.ID, d.StructureID, d.ItemID, d.Amount, d.SortOrder, d.Formula, d.IsFixed,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return payroll.SalaryStructure{}, err
	}
	return structure, nil
}

// GetByID implements payroll.StructureRepository.
func (r *structureRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.SalaryStructure, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, description, is_default, created_at, updated_at
		FROM salary_structures
		WHERE id = $1
	`
	var structure payroll.SalaryStructure
	err := q.QueryRow(ctx, query, id).Scan(
		&structure.ID, &structure.Name, &structure.Description, &structure.IsDefault,
		&structure.CreatedAt, &structure.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SalaryStructure{}, payroll.ErrStructureNotFound
		}
		return payroll.SalaryStructure{}, err
	}

	details, err := r.listDetails(ctx, structure.ID)
	if err != nil {
		return payroll.SalaryStructure{}, err
	}
	structure.Details = details
	return structure, nil
}

// GetDefault implements payroll.StructureRepository.
func (r *structureRepositoryImpl) GetDefault(ctx context.Context) (payroll.SalaryStructure, error) {
	q := GetQuerier(ctx, r.db)

	var id string
	err := q.QueryRow(ctx, `SELECT id FROM salary_structures WHERE is_default`).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SalaryStructure{}, payroll.ErrStructureNotFound
		}
		return payroll.SalaryStructure{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *structureRepositoryImpl) listDetails(ctx context.Context, structureID string) ([]payroll.SalaryStructureDetail, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT d.id, d.structure_id, d.item_id, d.amount, d.sort_order, d.formula, d.is_fixed,
			   i.name AS item_name, i.code AS item_code,
			   t.is_benefit, t.is_deduction
		FROM salary_structure_details d
		JOIN salary_items i ON d.item_id = i.id
		JOIN salary_item_types t ON i.item_type_id = t.id
		WHERE d.structure_id = $1
		ORDER BY d.sort_order
	`
	rows, err := q.Query(ctx, query, structureID)
	if err != nil {
		return nil, fmt.Errorf("failed to list structure details: %w", err)
	}
	defer rows.Close()

	var details []payroll.SalaryStructureDetail
	for rows.Next() {
		var d payroll.SalaryStructureDetail
		if err := rows.Scan(
			&d.ID, &d.StructureID, &d.ItemID, &d.Amount, &d.SortOrder, &d.Formula, &d.IsFixed,
			&d.ItemName, &d.ItemCode, &d.IsBenefit, &d.IsDeduction,
		); err != nil {
			return nil, fmt.Errorf("failed to scan structure detail: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// List implements payroll.StructureRepository.
func (r *structureRepositoryImpl) List(ctx context.Context) ([]payroll.SalaryStructure, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, description, is_default, created_at, updated_at
		FROM salary_structures
		ORDER BY name
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary structures: %w", err)
	}
	defer rows.Close()

	var structures []payroll.SalaryStructure
	for rows.Next() {
		var s payroll.SalaryStructure
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.IsDefault, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan salary structure: %w", err)
		}
		structures = append(structures, s)
	}
	return structures, rows.Err()
}

// Delete implements payroll.StructureRepository.
func (r *structureRepositoryImpl) Delete(ctx context.Context, id string) error {
	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		if _, err := q.Exec(ctx, `DELETE FROM salary_structure_details WHERE structure_id = $1`, id); err != nil {
			return err
		}

		tag, err := q.Exec(ctx, `DELETE FROM salary_structures WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return payroll.ErrStructureNotFound
		}
		return nil
	})
}
