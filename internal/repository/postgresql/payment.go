package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/workline-hq/hrms-backend-go/internal/domain/payroll"
	"github.com/workline-hq/hrms-backend-go/internal/pkg/database"
)

type configRepositoryImpl struct {
	db *database.DB
}

func NewConfigRepository(db *database.DB) payroll.ConfigRepository {
	return &configRepositoryImpl{db: db}
}

// Upsert implements payroll.ConfigRepository. The config row and its item
// overrides are replaced together inside one transaction.
func (r *configRepositoryImpl) Upsert(ctx context.Context, config payroll.SalaryConfig) (payroll.SalaryConfig, error) {
	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		query := `
			INSERT INTO employee_salary_configs (
				id, employee_id, structure_id, basic_salary, position_salary,
				performance_salary, bonus, social_insurance_base, medical_insurance_base,
				housing_fund_base, tax_exemption, effective_date, note
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			ON CONFLICT (employee_id) DO UPDATE SET
				structure_id = EXCLUDED.structure_id,
				basic_salary = EXCLUDED.basic_salary,
				position_salary = EXCLUDED.position_salary,
				performance_salary = EXCLUDED.performance_salary,
				bonus = EXCLUDED.bonus,
				social_insurance_base = EXCLUDED.social_insurance_base,
				medical_insurance_base = EXCLUDED.medical_insurance_base,
				housing_fund_base = EXCLUDED.housing_fund_base,
				tax_exemption = EXCLUDED.tax_exemption,
				effective_date = EXCLUDED.effective_date,
				note = EXCLUDED.note
			RETURNING id
		`
		if err := q.QueryRow(ctx, query,
			config.ID, config.EmployeeID, config.StructureID, config.BasicSalary, config.PositionSalary,
			config.PerformanceSalary, config.Bonus, config.SocialInsuranceBase, config.MedicalInsuranceBase,
			config.HousingFundBase, config.TaxExemption, config.EffectiveDate, config.Note,
		).Scan(&config.ID); err != nil {
			return err
		}

		if _, err := q.Exec(ctx, `DELETE FROM employee_salary_config_items WHERE config_id = $1`, config.ID); err != nil {
			return err
		}

		for i := range config.Items {
			config.Items[i].ConfigID = config.ID
			itemQuery := `
				INSERT INTO employee_salary_config_items (id, config_id, item_id, amount, is_fixed, effective_date)
				VALUES ($1, $2, $3, $4, $5, $6)
			`
			if _, err := q.Exec(ctx, itemQuery,
				config.Items[i].ID, config.ID, config.Items[i].ItemID,
				config.Items[i].Amount, config.Items[i].IsFixed, config.Items[i].EffectiveDate,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return payroll.SalaryConfig{}, err
	}
	return config, nil
}

// GetByEmployeeID implements payroll.ConfigRepository. The config and its
// overrides are read inside one transaction so the composer always sees a
// consistent snapshot.
func (r *configRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (payroll.SalaryConfig, error) {
	var config payroll.SalaryConfig

	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		query := `
			SELECT id, employee_id, structure_id, basic_salary, position_salary,
				   performance_salary, bonus, social_insurance_base, medical_insurance_base,
				   housing_fund_base, tax_exemption, effective_date, note
			FROM employee_salary_configs
			WHERE employee_id = $1
		`
		err := q.QueryRow(ctx, query, employeeID).Scan(
			&config.ID, &config.EmployeeID, &config.StructureID, &config.BasicSalary, &config.PositionSalary,
			&config.PerformanceSalary, &config.Bonus, &config.SocialInsuranceBase, &config.MedicalInsuranceBase,
			&config.HousingFundBase, &config.TaxExemption, &config.EffectiveDate, &config.Note,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return payroll.ErrConfigNotFound
			}
			return err
		}

		itemQuery := `
			SELECT ci.id, ci.config_id, ci.item_id, ci.amount, ci.is_fixed, ci.effective_date,
				   i.name AS item_name, i.code AS item_code,
				   t.is_benefit, t.is_deduction, t.is_taxable
			FROM employee_salary_config_items ci
			JOIN salary_items i ON ci.item_id = i.id
			JOIN salary_item_types t ON i.item_type_id = t.id
			WHERE ci.config_id = $1
			ORDER BY i.code
		`
		rows, err := q.Query(ctx, itemQuery, config.ID)
		if err != nil {
			return fmt.Errorf("failed to list config items: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var item payroll.SalaryConfigItem
			if err := rows.Scan(
				&item.ID, &item.ConfigID, &item.ItemID, &item.Amount, &item.IsFixed, &item.EffectiveDate,
				&item.ItemName, &item.ItemCode,
				&item.IsBenefit, &item.IsDeduction, &item.IsTaxable,
			); err != nil {
				return fmt.Errorf("failed to scan config item: %w", err)
			}
			config.Items = append(config.Items, item)
		}
		return rows.Err()
	})
	if err != nil {
		return payroll.SalaryConfig{}, err
	}
	return config, nil
}

const paymentColumns = `
	p.id, p.employee_id, p.payment_month, p.payment_date,
	p.basic_salary, p.position_salary, p.performance_salary, p.bonus,
	p.allowance_total, p.other_income_total, p.gross_salary,
	p.social_insurance_deduction, p.medical_insurance_deduction, p.housing_fund_deduction,
	p.tax_deduction, p.other_deduction_total, p.net_salary,
	p.status, p.calculator_id, p.confirm_time, p.note, p.created_at, p.updated_at,
	e.name AS employee_name, e.code AS employee_code
`

type paymentRepositoryImpl struct {
	db *database.DB
}

func NewPaymentRepository(db *database.DB) payroll.PaymentRepository {
	return &paymentRepositoryImpl{db: db}
}

func scanPayment(row pgx.Row) (payroll.Payment, error) {
	var p payroll.Payment
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.PaymentMonth, &p.PaymentDate,
		&p.BasicSalary, &p.PositionSalary, &p.PerformanceSalary, &p.Bonus,
		&p.AllowanceTotal, &p.OtherIncomeTotal, &p.GrossSalary,
		&p.SocialInsuranceDeduction, &p.MedicalInsuranceDeduction, &p.HousingFundDeduction,
		&p.TaxDeduction, &p.OtherDeductionTotal, &p.NetSalary,
		&p.Status, &p.CalculatorID, &p.ConfirmTime, &p.Note, &p.CreatedAt, &p.UpdatedAt,
		&p.EmployeeName, &p.EmployeeCode,
	)
	return p, err
}

// Upsert implements payroll.PaymentRepository. The snapshot and its details
// are replaced together keyed on (employee_id, payment_month); a payment
// already confirmed or paid is left untouched and the guard surfaces as
// ErrPaymentFinalized.
func (r *paymentRepositoryImpl) Upsert(ctx context.Context, payment payroll.Payment) (payroll.Payment, error) {
	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		query := `
			INSERT INTO salary_payments (
				id, employee_id, payment_month, payment_date,
				basic_salary, position_salary, performance_salary, bonus,
				allowance_total, other_income_total, gross_salary,
				social_insurance_deduction, medical_insurance_deduction, housing_fund_deduction,
				tax_deduction, other_deduction_total, net_salary,
				status, calculator_id, note, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, NOW(), NOW())
			ON CONFLICT (employee_id, payment_month) DO UPDATE SET
				payment_date = EXCLUDED.payment_date,
				basic_salary = EXCLUDED.basic_salary,
				position_salary = EXCLUDED.position_salary,
				performance_salary = EXCLUDED.performance_salary,
				bonus = EXCLUDED.bonus,
				allowance_total = EXCLUDED.allowance_total,
				other_income_total = EXCLUDED.other_income_total,
				gross_salary = EXCLUDED.gross_salary,
				social_insurance_deduction = EXCLUDED.social_insurance_deduction,
				medical_insurance_deduction = EXCLUDED.medical_insurance_deduction,
				housing_fund_deduction = EXCLUDED.housing_fund_deduction,
				tax_deduction = EXCLUDED.tax_deduction,
				other_deduction_total = EXCLUDED.other_deduction_total,
				net_salary = EXCLUDED.net_salary,
				status = EXCLUDED.status,
				calculator_id = EXCLUDED.calculator_id,
				note = EXCLUDED.note,
				updated_at = NOW()
			WHERE salary_payments.status NOT IN ('confirmed', 'paid')
			RETURNING id
		`
		err := q.QueryRow(ctx, query,
			payment.ID, payment.EmployeeID, payment.PaymentMonth, payment.PaymentDate,
			payment.BasicSalary, payment.PositionSalary, payment.PerformanceSalary, payment.Bonus,
			payment.AllowanceTotal, payment.OtherIncomeTotal, payment.GrossSalary,
			payment.SocialInsuranceDeduction, payment.MedicalInsuranceDeduction, payment.HousingFundDeduction,
			payment.TaxDeduction, payment.OtherDeductionTotal, payment.NetSalary,
			payment.Status, payment.CalculatorID, payment.Note,
		).Scan(&payment.ID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return payroll.ErrPaymentFinalized
			}
			return err
		}

		if _, err := q.Exec(ctx, `DELETE FROM salary_payment_details WHERE payment_id = $1`, payment.ID); err != nil {
			return err
		}

		for i := range payment.Details {
			payment.Details[i].PaymentID = payment.ID
			detailQuery := `
				INSERT INTO salary_payment_details (id, payment_id, item_id, amount, note)
				VALUES (gen_random_uuid(), $1, $2, $3, $4)
			`
			if _, err := q.Exec(ctx, detailQuery,
				payment.ID, payment.Details[i].ItemID, payment.Details[i].Amount, payment.Details[i].Note,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return payroll.Payment{}, err
	}
	return payment, nil
}

// GetByID implements payroll.PaymentRepository.
func (r *paymentRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.Payment, error) {
	q := GetQuerier(ctx, r.db)
	query := "SELECT " + paymentColumns + `
		FROM salary_payments p
		JOIN employees e ON p.employee_id = e.id
		WHERE p.id = $1
	`
	payment, err := scanPayment(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payment{}, payroll.ErrPaymentNotFound
		}
		return payroll.Payment{}, err
	}

	details, err := r.listDetails(ctx, payment.ID)
	if err != nil {
		return payroll.Payment{}, err
	}
	payment.Details = details
	return payment, nil
}

// GetByEmployeeMonth implements payroll.PaymentRepository.
func (r *paymentRepositoryImpl) GetByEmployeeMonth(ctx context.Context, employeeID string, month time.Time) (payroll.Payment, error) {
	q := GetQuerier(ctx, r.db)
	query := "SELECT " + paymentColumns + `
		FROM salary_payments p
		JOIN employees e ON p.employee_id = e.id
		WHERE p.employee_id = $1 AND p.payment_month = $2
	`
	payment, err := scanPayment(q.QueryRow(ctx, query, employeeID, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payment{}, payroll.ErrPaymentNotFound
		}
		return payroll.Payment{}, err
	}
	return payment, nil
}

func (r *paymentRepositoryImpl) listDetails(ctx context.Context, paymentID string) ([]payroll.PaymentDetail, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT d.id, d.payment_id, d.item_id, d.amount, d.note,
			   i.name AS item_name, i.code AS item_code
		FROM salary_payment_details d
		JOIN salary_items i ON d.item_id = i.id
		WHERE d.payment_id = $1
		ORDER BY i.code
	`
	rows, err := q.Query(ctx, query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment details: %w", err)
	}
	defer rows.Close()

	var details []payroll.PaymentDetail
	for rows.Next() {
		var d payroll.PaymentDetail
		if err := rows.Scan(&d.ID, &d.PaymentID, &d.ItemID, &d.Amount, &d.Note, &d.ItemName, &d.ItemCode); err != nil {
			return nil, fmt.Errorf("failed to scan payment detail: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// List implements payroll.PaymentRepository.
func (r *paymentRepositoryImpl) List(ctx context.Context, filter payroll.PaymentFilter) ([]payroll.Payment, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("p.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Month != nil && *filter.Month != "" {
		conditions = append(conditions, fmt.Sprintf("p.payment_month = $%d", argIdx))
		args = append(args, *filter.Month+"-01")
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM salary_payments p WHERE %s", whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT %s
		FROM salary_payments p
		JOIN employees e ON p.employee_id = e.id
		WHERE %s
		ORDER BY p.payment_month DESC, e.code
		LIMIT $%d OFFSET $%d
	`, paymentColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []payroll.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, total, rows.Err()
}

// UpdateStatus implements payroll.PaymentRepository. The fromStatuses guard
// turns an invalid transition into ErrPaymentFinalized instead of a silent
// overwrite.
func (r *paymentRepositoryImpl) UpdateStatus(ctx context.Context, id string, status payroll.PaymentStatus, fromStatuses []payroll.PaymentStatus, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	from := make([]string, 0, len(fromStatuses))
	for _, s := range fromStatuses {
		from = append(from, string(s))
	}

	var query string
	switch status {
	case payroll.PaymentConfirmed:
		query = `UPDATE salary_payments SET status = $2, confirm_time = $3, updated_at = NOW() WHERE id = $1 AND status = ANY($4)`
	case payroll.PaymentPaid:
		query = `UPDATE salary_payments SET status = $2, payment_date = $3, updated_at = NOW() WHERE id = $1 AND status = ANY($4)`
	default:
		query = `UPDATE salary_payments SET status = $2, updated_at = $3 WHERE id = $1 AND status = ANY($4)`
	}

	tag, err := q.Exec(ctx, query, id, status, at, from)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return payroll.ErrPaymentFinalized
	}
	return nil
}
