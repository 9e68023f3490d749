package performance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type IndicatorRepository interface {
	Create(ctx context.Context, indicator Indicator) (Indicator, error)
	GetByID(ctx context.Context, id string) (Indicator, error)
	List(ctx context.Context, activeOnly bool) ([]Indicator, error)
}

type AppraisalRepository interface {
	// Create inserts the appraisal and its snapshotted indicator score rows
	// in one transaction.
	Create(ctx context.Context, appraisal Appraisal) (Appraisal, error)
	GetByID(ctx context.Context, id string) (Appraisal, error)
	List(ctx context.Context, filter AppraisalFilter) ([]Appraisal, int64, error)

	// Transition updates the appraisal header exactly once: the write is
	// guarded on the current status and reports ErrAppraisalWrongStage when
	// the appraisal has already moved on.
	Transition(ctx context.Context, appraisal Appraisal, from AppraisalStatus) error
	SaveScores(ctx context.Context, appraisalID string, scores []IndicatorScore) error

	// CompletedScore returns the final score of the most recent completed
	// appraisal whose period overlaps [from, to], or nil when there is none.
	CompletedScore(ctx context.Context, employeeID string, from, to time.Time) (*decimal.Decimal, error)
}
