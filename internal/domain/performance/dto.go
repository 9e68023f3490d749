package performance

import (
	"github.com/shopspring/decimal"

	"github.com/workline-hq/hrms-backend-go/internal/pkg/validator"
)

type CreateIndicatorRequest struct {
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Kind        string  `json:"kind"`
	Weight      string  `json:"weight"`
	Description *string `json:"description"`
}

func (r *CreateIndicatorRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code is required",
		})
	}

	if !IndicatorKind(r.Kind).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be quantitative or qualitative",
		})
	}

	if w, ok := validator.IsValidAmount(r.Weight); !ok || !w.IsPositive() || w.GreaterThan(decimal.NewFromInt(100)) {
		errs = append(errs, validator.ValidationError{
			Field:   "weight",
			Message: "weight must be a percentage between 0 and 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type IndicatorResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Kind        string  `json:"kind"`
	Weight      string  `json:"weight"`
	Description *string `json:"description,omitempty"`
	IsActive    bool    `json:"is_active"`
}

type CreateAppraisalRequest struct {
	EmployeeID  string `json:"employee_id"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

func (r *CreateAppraisalRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	start, startOK := validator.IsValidDate(r.PeriodStart)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "period_start",
			Message: "period_start must be a valid date (YYYY-MM-DD)",
		})
	}

	end, endOK := validator.IsValidDate(r.PeriodEnd)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "period_end",
			Message: "period_end must be a valid date (YYYY-MM-DD)",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "period_end",
			Message: "period_end must not be before period_start",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ScoreEntry is one indicator's score in a submission. Scores are on a
// 0-100 scale.
type ScoreEntry struct {
	IndicatorID string `json:"indicator_id"`
	Score       string `json:"score"`
}

func validateScores(scores []ScoreEntry) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if len(scores) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "scores",
			Message: "at least one score is required",
		})
		return errs
	}

	seen := make(map[string]bool, len(scores))
	for _, entry := range scores {
		if validator.IsEmpty(entry.IndicatorID) {
			errs = append(errs, validator.ValidationError{
				Field:   "scores",
				Message: "indicator_id is required on every score",
			})
			continue
		}
		if seen[entry.IndicatorID] {
			errs = append(errs, validator.ValidationError{
				Field:   "scores",
				Message: "indicator " + entry.IndicatorID + " is scored more than once",
			})
		}
		seen[entry.IndicatorID] = true

		if s, ok := validator.IsValidAmount(entry.Score); !ok || s.GreaterThan(decimal.NewFromInt(100)) {
			errs = append(errs, validator.ValidationError{
				Field:   "scores",
				Message: "score must be a number between 0 and 100",
			})
		}
	}

	return errs
}

type SubmitSelfAssessmentRequest struct {
	ID      string       `json:"-"`
	Scores  []ScoreEntry `json:"scores"`
	Comment *string      `json:"comment"`
}

func (r *SubmitSelfAssessmentRequest) Validate() error {
	errs := validateScores(r.Scores)

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SubmitAssessmentRequest struct {
	ID          string       `json:"-"`
	AppraiserID string       `json:"appraiser_id"`
	Scores      []ScoreEntry `json:"scores"`
	Comment     *string      `json:"comment"`
}

func (r *SubmitAssessmentRequest) Validate() error {
	errs := validateScores(r.Scores)

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if validator.IsEmpty(r.AppraiserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "appraiser_id",
			Message: "appraiser_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReviewAppraisalRequest struct {
	ID      string  `json:"-"`
	Approve bool    `json:"approve"`
	Comment *string `json:"comment"`
}

func (r *ReviewAppraisalRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AppraisalFilter struct {
	EmployeeID *string
	Status     *AppraisalStatus
	Page       int
	Limit      int
}

type IndicatorScoreResponse struct {
	IndicatorID    string  `json:"indicator_id"`
	IndicatorName  string  `json:"indicator_name"`
	IndicatorCode  string  `json:"indicator_code"`
	Weight         string  `json:"weight"`
	SelfScore      *string `json:"self_score,omitempty"`
	AppraiserScore *string `json:"appraiser_score,omitempty"`
	FinalScore     *string `json:"final_score,omitempty"`
}

type AppraisalResponse struct {
	ID               string                   `json:"id"`
	EmployeeID       string                   `json:"employee_id"`
	EmployeeName     *string                  `json:"employee_name,omitempty"`
	AppraiserID      *string                  `json:"appraiser_id,omitempty"`
	AppraiserName    *string                  `json:"appraiser_name,omitempty"`
	PeriodStart      string                   `json:"period_start"`
	PeriodEnd        string                   `json:"period_end"`
	Status           AppraisalStatus          `json:"status"`
	SelfScore        *string                  `json:"self_score,omitempty"`
	AppraiserScore   *string                  `json:"appraiser_score,omitempty"`
	FinalScore       *string                  `json:"final_score,omitempty"`
	Grade            *string                  `json:"grade,omitempty"`
	SelfComment      *string                  `json:"self_comment,omitempty"`
	AppraiserComment *string                  `json:"appraiser_comment,omitempty"`
	ReviewComment    *string                  `json:"review_comment,omitempty"`
	Scores           []IndicatorScoreResponse `json:"scores,omitempty"`
}

type ListAppraisalResponse struct {
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
	Appraisals []AppraisalResponse `json:"appraisals"`
}
