package performance

import "errors"

var (
	ErrIndicatorNotFound     = errors.New("performance indicator not found")
	ErrIndicatorCodeExists   = errors.New("performance indicator with this code already exists")
	ErrNoActiveIndicators    = errors.New("no active performance indicators to appraise against")
	ErrAppraisalNotFound     = errors.New("appraisal not found")
	ErrAppraisalExists       = errors.New("appraisal for this employee and period already exists")
	ErrAppraisalWrongStage   = errors.New("appraisal is not in the required stage for this action")
	ErrScoreUnknownIndicator = errors.New("score references an indicator outside this appraisal")
	ErrGradeBandsInvalid     = errors.New("grade band table is invalid")
)
