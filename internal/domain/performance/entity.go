package performance

import (
	"time"

	"github.com/shopspring/decimal"
)

// IndicatorKind distinguishes metrics scored against measurable targets from
// ones scored by judgement.
type IndicatorKind string

const (
	IndicatorQuantitative IndicatorKind = "quantitative"
	IndicatorQualitative  IndicatorKind = "qualitative"
)

func (k IndicatorKind) Valid() bool {
	switch k {
	case IndicatorQuantitative, IndicatorQualitative:
		return true
	}
	return false
}

// Indicator is a reusable scoring dimension. Weight is a percentage; the
// weights snapshotted into an appraisal decide how much each dimension
// contributes to the final score.
type Indicator struct {
	ID          string
	Name        string
	Code        string
	Kind        IndicatorKind
	Weight      decimal.Decimal
	Description *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AppraisalStatus is the appraisal lifecycle. It only moves forward:
// self_assessment -> appraisal -> review -> completed or rejected.
type AppraisalStatus string

const (
	AppraisalSelfAssessment AppraisalStatus = "self_assessment"
	AppraisalAssessment     AppraisalStatus = "appraisal"
	AppraisalReview         AppraisalStatus = "review"
	AppraisalCompleted      AppraisalStatus = "completed"
	AppraisalRejected       AppraisalStatus = "rejected"
)

func (s AppraisalStatus) Terminal() bool {
	return s == AppraisalCompleted || s == AppraisalRejected
}

// Appraisal is one employee's evaluation over a period. Indicator weights
// are snapshotted at creation, so later indicator edits never change an
// appraisal already underway.
type Appraisal struct {
	ID               string
	EmployeeID       string
	AppraiserID      *string
	PeriodStart      time.Time
	PeriodEnd        time.Time
	SelfScore        *decimal.Decimal
	AppraiserScore   *decimal.Decimal
	FinalScore       *decimal.Decimal
	Grade            *string
	Status           AppraisalStatus
	SelfComment      *string
	AppraiserComment *string
	ReviewComment    *string
	Scores           []IndicatorScore
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined fields
	EmployeeName  *string
	AppraiserName *string
}

// IndicatorScore is one indicator's scores within one appraisal. Weight is
// copied from the indicator when the appraisal is created.
type IndicatorScore struct {
	ID             string
	AppraisalID    string
	IndicatorID    string
	Weight         decimal.Decimal
	SelfScore      *decimal.Decimal
	AppraiserScore *decimal.Decimal
	FinalScore     *decimal.Decimal

	// Joined fields
	IndicatorName string
	IndicatorCode string
}
