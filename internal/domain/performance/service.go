package performance

import "context"

type IndicatorService interface {
	CreateIndicator(ctx context.Context, req CreateIndicatorRequest) (IndicatorResponse, error)
	ListIndicators(ctx context.Context, activeOnly bool) ([]IndicatorResponse, error)
}

// AppraisalService runs the appraisal lifecycle. Creating an appraisal
// snapshots the active indicators; each submission moves the appraisal one
// stage forward and a review either completes it with a final score and
// grade or rejects it.
type AppraisalService interface {
	CreateAppraisal(ctx context.Context, req CreateAppraisalRequest) (AppraisalResponse, error)
	GetAppraisal(ctx context.Context, id string) (AppraisalResponse, error)
	ListAppraisals(ctx context.Context, filter AppraisalFilter) (ListAppraisalResponse, error)
	SubmitSelfAssessment(ctx context.Context, req SubmitSelfAssessmentRequest) (AppraisalResponse, error)
	SubmitAssessment(ctx context.Context, req SubmitAssessmentRequest) (AppraisalResponse, error)
	ReviewAppraisal(ctx context.Context, req ReviewAppraisalRequest) (AppraisalResponse, error)
}
