package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/workline-hq/hrms-backend-go/internal/domain/performance"
	"github.com/workline-hq/hrms-backend-go/internal/pkg/database"
)

type indicatorRepositoryImpl struct {
	db *database.DB
}

func NewIndicatorRepository(db *database.DB) performance.IndicatorRepository {
	return &indicatorRepositoryImpl{db: db}
}

// Create implements performance.IndicatorRepository.
func (r *indicatorRepositoryImpl) Create(ctx context.Context, indicator performance.Indicator) (performance.Indicator, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO performance_indicators (id, name, code, kind, weight, description, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		indicator.ID, indicator.Name, indicator.Code, indicator.Kind,
		indicator.Weight, indicator.Description, indicator.IsActive,
	).Scan(&indicator.CreatedAt, &indicator.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return performance.Indicator{}, performance.ErrIndicatorCodeExists
		}
		return performance.Indicator{}, fmt.Errorf("failed to create indicator: %w", err)
	}
	return indicator, nil
}

// GetByID implements performance.IndicatorRepository.
func (r *indicatorRepositoryImpl) GetByID(ctx context.Context, id string) (performance.Indicator, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, code, kind, weight, description, is_active, created_at, updated_at
		FROM performance_indicators
		WHERE id = $1
	`
	var indicator performance.Indicator
	err := q.QueryRow(ctx, query, id).Scan(
		&indicator.ID, &indicator.Name, &indicator.Code, &indicator.Kind,
		&indicator.Weight, &indicator.Description, &indicator.IsActive,
		&indicator.CreatedAt, &indicator.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return performance.Indicator{}, performance.ErrIndicatorNotFound
		}
		return performance.Indicator{}, fmt.Errorf("failed to get indicator: %w", err)
	}
	return indicator, nil
}

// List implements performance.IndicatorRepository.
func (r *indicatorRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]performance.Indicator, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, code, kind, weight, description, is_active, created_at, updated_at
		FROM performance_indicators
	`
	if activeOnly {
		query += " WHERE is_active = TRUE"
	}
	query += " ORDER BY code"

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list indicators: %w", err)
	}
	defer rows.Close()

	var indicators []performance.Indicator
	for rows.Next() {
		var indicator performance.Indicator
		if err := rows.Scan(
			&indicator.ID, &indicator.Name, &indicator.Code, &indicator.Kind,
			&indicator.Weight, &indicator.Description, &indicator.IsActive,
			&indicator.CreatedAt, &indicator.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan indicator: %w", err)
		}
		indicators = append(indicators, indicator)
	}
	return indicators, rows.Err()
}

type appraisalRepositoryImpl struct {
	db *database.DB
}

func NewAppraisalRepository(db *database.DB) performance.AppraisalRepository {
	return &appraisalRepositoryImpl{db: db}
}

const appraisalColumns = `
	a.id, a.employee_id, a.appraiser_id, a.period_start, a.period_end,
	a.self_score, a.appraiser_score, a.final_score, a.grade, a.status,
	a.self_comment, a.appraiser_comment, a.review_comment,
	a.created_at, a.updated_at,
	e.name AS employee_name, ap.name AS appraiser_name
`

func scanAppraisal(row pgx.Row) (performance.Appraisal, error) {
	var a performance.Appraisal
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.AppraiserID, &a.PeriodStart, &a.PeriodEnd,
		&a.SelfScore, &a.AppraiserScore, &a.FinalScore, &a.Grade, &a.Status,
		&a.SelfComment, &a.AppraiserComment, &a.ReviewComment,
		&a.CreatedAt, &a.UpdatedAt,
		&a.EmployeeName, &a.AppraiserName,
	)
	return a, err
}

// Create implements performance.AppraisalRepository. The appraisal header
// and its snapshotted score rows are written in one transaction.
func (r *appraisalRepositoryImpl) Create(ctx context.Context, appraisal performance.Appraisal) (performance.Appraisal, error) {
	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		query := `
			INSERT INTO appraisals (id, employee_id, period_start, period_end, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at, updated_at
		`
		if err := q.QueryRow(ctx, query,
			appraisal.ID, appraisal.EmployeeID, appraisal.PeriodStart,
			appraisal.PeriodEnd, appraisal.Status,
		).Scan(&appraisal.CreatedAt, &appraisal.UpdatedAt); err != nil {
			if isUniqueViolation(err, "") {
				return performance.ErrAppraisalExists
			}
			return err
		}

		for _, row := range appraisal.Scores {
			scoreQuery := `
				INSERT INTO appraisal_indicator_scores (id, appraisal_id, indicator_id, weight)
				VALUES ($1, $2, $3, $4)
			`
			if _, err := q.Exec(ctx, scoreQuery, row.ID, appraisal.ID, row.IndicatorID, row.Weight); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, performance.ErrAppraisalExists) {
			return performance.Appraisal{}, err
		}
		return performance.Appraisal{}, fmt.Errorf("failed to create appraisal: %w", err)
	}
	return appraisal, nil
}

// GetByID implements performance.AppraisalRepository. The header and its
// score rows are read inside one transaction so stage decisions always see
// a consistent appraisal.
func (r *appraisalRepositoryImpl) GetByID(ctx context.Context, id string) (performance.Appraisal, error) {
	var appraisal performance.Appraisal

	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		query := fmt.Sprintf(`
			SELECT %s
			FROM appraisals a
			JOIN employees e ON a.employee_id = e.id
			LEFT JOIN employees ap ON a.appraiser_id = ap.id
			WHERE a.id = $1
		`, appraisalColumns)

		var err error
		appraisal, err = scanAppraisal(q.QueryRow(ctx, query, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return performance.ErrAppraisalNotFound
			}
			return err
		}

		scoreQuery := `
			SELECT s.id, s.appraisal_id, s.indicator_id, s.weight,
				   s.self_score, s.appraiser_score, s.final_score,
				   i.name AS indicator_name, i.code AS indicator_code
			FROM appraisal_indicator_scores s
			JOIN performance_indicators i ON s.indicator_id = i.id
			WHERE s.appraisal_id = $1
			ORDER BY i.code
		`
		rows, err := q.Query(ctx, scoreQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var row performance.IndicatorScore
			if err := rows.Scan(
				&row.ID, &row.AppraisalID, &row.IndicatorID, &row.Weight,
				&row.SelfScore, &row.AppraiserScore, &row.FinalScore,
				&row.IndicatorName, &row.IndicatorCode,
			); err != nil {
				return err
			}
			appraisal.Scores = append(appraisal.Scores, row)
		}
		return rows.Err()
	})
	if err != nil {
		if errors.Is(err, performance.ErrAppraisalNotFound) {
			return performance.Appraisal{}, err
		}
		return performance.Appraisal{}, fmt.Errorf("failed to get appraisal: %w", err)
	}
	return appraisal, nil
}

// List implements performance.AppraisalRepository. Score rows are not
// loaded in list views.
func (r *appraisalRepositoryImpl) List(ctx context.Context, filter performance.AppraisalFilter) ([]performance.Appraisal, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM appraisals a WHERE %s", whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count appraisals: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT %s
		FROM appraisals a
		JOIN employees e ON a.employee_id = e.id
		LEFT JOIN employees ap ON a.appraiser_id = ap.id
		WHERE %s
		ORDER BY a.period_end DESC, e.code
		LIMIT $%d OFFSET $%d
	`, appraisalColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list appraisals: %w", err)
	}
	defer rows.Close()

	var appraisals []performance.Appraisal
	for rows.Next() {
		a, err := scanAppraisal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan appraisal: %w", err)
		}
		appraisals = append(appraisals, a)
	}
	return appraisals, total, rows.Err()
}

// Transition implements performance.AppraisalRepository. The status guard
// makes each stage change happen at most once even under concurrent
// submissions.
func (r *appraisalRepositoryImpl) Transition(ctx context.Context, appraisal performance.Appraisal, from performance.AppraisalStatus) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE appraisals
		SET appraiser_id = $2, self_score = $3, appraiser_score = $4,
			final_score = $5, grade = $6, status = $7,
			self_comment = $8, appraiser_comment = $9, review_comment = $10,
			updated_at = NOW()
		WHERE id = $1 AND status = $11
	`
	tag, err := q.Exec(ctx, query,
		appraisal.ID, appraisal.AppraiserID, appraisal.SelfScore, appraisal.AppraiserScore,
		appraisal.FinalScore, appraisal.Grade, appraisal.Status,
		appraisal.SelfComment, appraisal.AppraiserComment, appraisal.ReviewComment,
		from,
	)
	if err != nil {
		return fmt.Errorf("failed to transition appraisal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return performance.ErrAppraisalWrongStage
	}
	return nil
}

// SaveScores implements performance.AppraisalRepository. All score rows of
// the appraisal are updated in one transaction.
func (r *appraisalRepositoryImpl) SaveScores(ctx context.Context, appraisalID string, scores []performance.IndicatorScore) error {
	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)
		query := `
			UPDATE appraisal_indicator_scores
			SET self_score = $3, appraiser_score = $4, final_score = $5
			WHERE appraisal_id = $1 AND indicator_id = $2
		`
		for _, row := range scores {
			if _, err := q.Exec(ctx, query,
				appraisalID, row.IndicatorID,
				row.SelfScore, row.AppraiserScore, row.FinalScore,
			); err != nil {
				return fmt.Errorf("failed to save score: %w", err)
			}
		}
		return nil
	})
}

// CompletedScore implements performance.AppraisalRepository.
func (r *appraisalRepositoryImpl) CompletedScore(ctx context.Context, employeeID string, from, to time.Time) (*decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT final_score
		FROM appraisals
		WHERE employee_id = $1 AND status = 'completed'
		  AND period_start <= $3 AND period_end >= $2
		ORDER BY period_end DESC
		LIMIT 1
	`
	var score *decimal.Decimal
	err := q.QueryRow(ctx, query, employeeID, from, to).Scan(&score)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up completed score: %w", err)
	}
	return score, nil
}
