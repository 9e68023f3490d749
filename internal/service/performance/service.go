package performance

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/workline-hq/hrms-backend-go/internal/domain/employee"
	"github.com/workline-hq/hrms-backend-go/internal/domain/performance"
	"github.com/workline-hq/hrms-backend-go/internal/pkg/validator"
)

// ========================================
// INDICATOR SERVICE
// ========================================

type IndicatorServiceImpl struct {
	performance.IndicatorRepository
}

func NewIndicatorService(indicatorRepository performance.IndicatorRepository) *IndicatorServiceImpl {
	return &IndicatorServiceImpl{IndicatorRepository: indicatorRepository}
}

// CreateIndicator implements performance.IndicatorService.
func (s *IndicatorServiceImpl) CreateIndicator(ctx context.Context, req performance.CreateIndicatorRequest) (performance.IndicatorResponse, error) {
	if err := req.Validate(); err != nil {
		return performance.IndicatorResponse{}, err
	}

	weight, _ := validator.IsValidAmount(req.Weight)

	indicator, err := s.IndicatorRepository.Create(ctx, performance.Indicator{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Code:        req.Code,
		Kind:        performance.IndicatorKind(req.Kind),
		Weight:      weight,
		Description: req.Description,
		IsActive:    true,
	})
	if err != nil {
		return performance.IndicatorResponse{}, err
	}

	return toIndicatorResponse(indicator), nil
}

// ListIndicators implements performance.IndicatorService.
func (s *IndicatorServiceImpl) ListIndicators(ctx context.Context, activeOnly bool) ([]performance.IndicatorResponse, error) {
	indicators, err := s.IndicatorRepository.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list indicators: %w", err)
	}

	responses := make([]performance.IndicatorResponse, 0, len(indicators))
	for _, indicator := range indicators {
		responses = append(responses, toIndicatorResponse(indicator))
	}
	return responses, nil
}

func toIndicatorResponse(i performance.Indicator) performance.IndicatorResponse {
	return performance.IndicatorResponse{
		ID:          i.ID,
		Name:        i.Name,
		Code:        i.Code,
		Kind:        string(i.Kind),
		Weight:      i.Weight.StringFixed(2),
		Description: i.Description,
		IsActive:    i.IsActive,
	}
}

// ========================================
// APPRAISAL SERVICE
// ========================================

type AppraisalServiceImpl struct {
	performance.AppraisalRepository
	performance.IndicatorRepository
	employee.EmployeeRepository
	bands []GradeBand
}

func NewAppraisalService(
	appraisalRepository performance.AppraisalRepository,
	indicatorRepository performance.IndicatorRepository,
	employeeRepository employee.EmployeeRepository,
	bands []GradeBand,
) *AppraisalServiceImpl {
	return &AppraisalServiceImpl{
		AppraisalRepository: appraisalRepository,
		IndicatorRepository: indicatorRepository,
		EmployeeRepository:  employeeRepository,
		bands:               bands,
	}
}

// CreateAppraisal implements performance.AppraisalService. The active
// indicators and their weights are snapshotted into the appraisal so later
// indicator edits never disturb it.
func (s *AppraisalServiceImpl) CreateAppraisal(ctx context.Context, req performance.CreateAppraisalRequest) (performance.AppraisalResponse, error) {
	if err := req.Validate(); err != nil {
		return performance.AppraisalResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return performance.AppraisalResponse{}, err
	}

	indicators, err := s.IndicatorRepository.List(ctx, true)
	if err != nil {
		return performance.AppraisalResponse{}, fmt.Errorf("failed to list indicators: %w", err)
	}
	if len(indicators) == 0 {
		return performance.AppraisalResponse{}, performance.ErrNoActiveIndicators
	}

	periodStart, _ := validator.IsValidDate(req.PeriodStart)
	periodEnd, _ := validator.IsValidDate(req.PeriodEnd)

	appraisal := performance.Appraisal{
		ID:          uuid.NewString(),
		EmployeeID:  req.EmployeeID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Status:      performance.AppraisalSelfAssessment,
		Scores:      make([]performance.IndicatorScore, 0, len(indicators)),
	}
	for _, indicator := range indicators {
		appraisal.Scores = append(appraisal.Scores, performance.IndicatorScore{
			ID:            uuid.NewString(),
			AppraisalID:   appraisal.ID,
			IndicatorID:   indicator.ID,
			Weight:        indicator.Weight,
			IndicatorName: indicator.Name,
			IndicatorCode: indicator.Code,
		})
	}

	created, err := s.AppraisalRepository.Create(ctx, appraisal)
	if err != nil {
		return performance.AppraisalResponse{}, err
	}

	return toAppraisalResponse(created), nil
}

// GetAppraisal implements performance.AppraisalService.
func (s *AppraisalServiceImpl) GetAppraisal(ctx context.Context, id string) (performance.AppraisalResponse, error) {
	appraisal, err := s.AppraisalRepository.GetByID(ctx, id)
	if err != nil {
		return performance.AppraisalResponse{}, err
	}
	return toAppraisalResponse(appraisal), nil
}

// ListAppraisals implements performance.AppraisalService.
func (s *AppraisalServiceImpl) ListAppraisals(ctx context.Context, filter performance.AppraisalFilter) (performance.ListAppraisalResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	appraisals, count, err := s.AppraisalRepository.List(ctx, filter)
	if err != nil {
		return performance.ListAppraisalResponse{}, fmt.Errorf("failed to list appraisals: %w", err)
	}

	resp := performance.ListAppraisalResponse{
		TotalCount: count,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(count) / float64(filter.Limit))),
		Appraisals: make([]performance.AppraisalResponse, 0, len(appraisals)),
	}
	for _, a := range appraisals {
		resp.Appraisals = append(resp.Appraisals, toAppraisalResponse(a))
	}
	return resp, nil
}

// SubmitSelfAssessment implements performance.AppraisalService.
func (s *AppraisalServiceImpl) SubmitSelfAssessment(ctx context.Context, req performance.SubmitSelfAssessmentRequest) (performance.AppraisalResponse, error) {
	if err := req.Validate(); err != nil {
		return performance.AppraisalResponse{}, err
	}

	appraisal, err := s.AppraisalRepository.GetByID(ctx, req.ID)
	if err != nil {
		return performance.AppraisalResponse{}, err
	}
	if appraisal.Status != performance.AppraisalSelfAssessment {
		return performance.AppraisalResponse{}, performance.ErrAppraisalWrongStage
	}

	if err := applyScores(appraisal.Scores, req.Scores, func(row *performance.IndicatorScore, score decimal.Decimal) {
		row.SelfScore = &score
	}); err != nil {
		return performance.AppraisalResponse{}, err
	}

	appraisal.SelfScore = WeightedScore(appraisal.Scores, func(row performance.IndicatorScore) *decimal.Decimal {
		return row.SelfScore
	})
	appraisal.SelfComment = req.Comment
	appraisal.Status = performance.AppraisalAssessment

	return s.persistStage(ctx, appraisal, performance.AppraisalSelfAssessment)
}

// SubmitAssessment implements performance.AppraisalService.
func (s *AppraisalServiceImpl) SubmitAssessment(ctx context.Context, req performance.SubmitAssessmentRequest) (performance.AppraisalResponse, error) {
	if err := req.Validate(); err != nil {
		return performance.AppraisalResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.AppraiserID); err != nil {
		return performance.AppraisalResponse{}, err
	}

	appraisal, err := s.AppraisalRepository.GetByID(ctx, req.ID)
	if err != nil {
		return performance.AppraisalResponse{}, err
	}
	if appraisal.Status != performance.AppraisalAssessment {
		return performance.AppraisalResponse{}, performance.ErrAppraisalWrongStage
	}

	if err := applyScores(appraisal.Scores, req.Scores, func(row *performance.IndicatorScore, score decimal.Decimal) {
		row.AppraiserScore = &score
	}); err != nil {
		return performance.AppraisalResponse{}, err
	}

	appraisal.AppraiserID = &req.AppraiserID
	appraisal.AppraiserScore = WeightedScore(appraisal.Scores, func(row performance.IndicatorScore) *decimal.Decimal {
		return row.AppraiserScore
	})
	appraisal.AppraiserComment = req.Comment
	appraisal.Status = performance.AppraisalReview

	return s.persistStage(ctx, appraisal, performance.AppraisalAssessment)
}

// ReviewAppraisal implements performance.AppraisalService. Approval fixes
// the final scores and the grade; rejection is terminal and keeps whatever
// was scored so far.
func (s *AppraisalServiceImpl) ReviewAppraisal(ctx context.Context, req performance.ReviewAppraisalRequest) (performance.AppraisalResponse, error) {
	if err := req.Validate(); err != nil {
		return performance.AppraisalResponse{}, err
	}

	appraisal, err := s.AppraisalRepository.GetByID(ctx, req.ID)
	if err != nil {
		return performance.AppraisalResponse{}, err
	}
	if appraisal.Status != performance.AppraisalReview {
		return performance.AppraisalResponse{}, performance.ErrAppraisalWrongStage
	}

	appraisal.ReviewComment = req.Comment
	if req.Approve {
		appraisal.Scores, appraisal.FinalScore = FinalizeScores(appraisal.Scores)
		if appraisal.FinalScore != nil {
			grade := GradeFor(*appraisal.FinalScore, s.bands)
			appraisal.Grade = &grade
		}
		appraisal.Status = performance.AppraisalCompleted
	} else {
		appraisal.Status = performance.AppraisalRejected
	}

	return s.persistStage(ctx, appraisal, performance.AppraisalReview)
}

func (s *AppraisalServiceImpl) persistStage(ctx context.Context, appraisal performance.Appraisal, from performance.AppraisalStatus) (performance.AppraisalResponse, error) {
	if err := s.AppraisalRepository.SaveScores(ctx, appraisal.ID, appraisal.Scores); err != nil {
		return performance.AppraisalResponse{}, fmt.Errorf("failed to save scores: %w", err)
	}
	if err := s.AppraisalRepository.Transition(ctx, appraisal, from); err != nil {
		return performance.AppraisalResponse{}, err
	}
	return toAppraisalResponse(appraisal), nil
}

// applyScores writes submitted scores onto the snapshotted rows. Every
// submitted indicator must belong to the appraisal; unsubmitted rows keep
// their previous value.
func applyScores(rows []performance.IndicatorScore, entries []performance.ScoreEntry, set func(*performance.IndicatorScore, decimal.Decimal)) error {
	byIndicator := make(map[string]*performance.IndicatorScore, len(rows))
	for i := range rows {
		byIndicator[rows[i].IndicatorID] = &rows[i]
	}

	for _, entry := range entries {
		row, ok := byIndicator[entry.IndicatorID]
		if !ok {
			return fmt.Errorf("%w: %s", performance.ErrScoreUnknownIndicator, entry.IndicatorID)
		}
		score, _ := validator.IsValidAmount(entry.Score)
		set(row, score)
	}
	return nil
}

func decimalPtrToString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.StringFixed(2)
	return &s
}

func toAppraisalResponse(a performance.Appraisal) performance.AppraisalResponse {
	resp := performance.AppraisalResponse{
		ID:               a.ID,
		EmployeeID:       a.EmployeeID,
		EmployeeName:     a.EmployeeName,
		AppraiserID:      a.AppraiserID,
		AppraiserName:    a.AppraiserName,
		PeriodStart:      a.PeriodStart.Format("2006-01-02"),
		PeriodEnd:        a.PeriodEnd.Format("2006-01-02"),
		Status:           a.Status,
		SelfScore:        decimalPtrToString(a.SelfScore),
		AppraiserScore:   decimalPtrToString(a.AppraiserScore),
		FinalScore:       decimalPtrToString(a.FinalScore),
		Grade:            a.Grade,
		SelfComment:      a.SelfComment,
		AppraiserComment: a.AppraiserComment,
		ReviewComment:    a.ReviewComment,
	}
	for _, row := range a.Scores {
		resp.Scores = append(resp.Scores, performance.IndicatorScoreResponse{
			IndicatorID:    row.IndicatorID,
			IndicatorName:  row.IndicatorName,
			IndicatorCode:  row.IndicatorCode,
			Weight:         row.Weight.StringFixed(2),
			SelfScore:      decimalPtrToString(row.SelfScore),
			AppraiserScore: decimalPtrToString(row.AppraiserScore),
			FinalScore:     decimalPtrToString(row.FinalScore),
		})
	}
	return resp
}
