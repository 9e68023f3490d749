package performance

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workline-hq/hrms-backend-go/internal/domain/employee"
	"github.com/workline-hq/hrms-backend-go/internal/domain/performance"
)

type fakeIndicatorRepository struct {
	indicators []performance.Indicator
}

func (r *fakeIndicatorRepository) Create(_ context.Context, indicator performance.Indicator) (performance.Indicator, error) {
	for _, existing := range r.indicators {
		if existing.Code == indicator.Code {
			return performance.Indicator{}, performance.ErrIndicatorCodeExists
		}
	}
	r.indicators = append(r.indicators, indicator)
	return indicator, nil
}

func (r *fakeIndicatorRepository) GetByID(_ context.Context, id string) (performance.Indicator, error) {
	for _, indicator := range r.indicators {
		if indicator.ID == id {
			return indicator, nil
		}
	}
	return performance.Indicator{}, performance.ErrIndicatorNotFound
}

func (r *fakeIndicatorRepository) List(_ context.Context, activeOnly bool) ([]performance.Indicator, error) {
	out := make([]performance.Indicator, 0, len(r.indicators))
	for _, indicator := range r.indicators {
		if activeOnly && !indicator.IsActive {
			continue
		}
		out = append(out, indicator)
	}
	return out, nil
}

type fakeAppraisalRepository struct {
	appraisals map[string]performance.Appraisal
}

func (r *fakeAppraisalRepository) Create(_ context.Context, appraisal performance.Appraisal) (performance.Appraisal, error) {
	for _, existing := range r.appraisals {
		if existing.EmployeeID == appraisal.EmployeeID &&
			existing.PeriodStart.Equal(appraisal.PeriodStart) &&
			existing.PeriodEnd.Equal(appraisal.PeriodEnd) {
			return performance.Appraisal{}, performance.ErrAppraisalExists
		}
	}
	r.appraisals[appraisal.ID] = appraisal
	return appraisal, nil
}

func (r *fakeAppraisalRepository) GetByID(_ context.Context, id string) (performance.Appraisal, error) {
	appraisal, ok := r.appraisals[id]
	if !ok {
		return performance.Appraisal{}, performance.ErrAppraisalNotFound
	}
	return appraisal, nil
}

func (r *fakeAppraisalRepository) List(context.Context, performance.AppraisalFilter) ([]performance.Appraisal, int64, error) {
	return nil, 0, nil
}

func (r *fakeAppraisalRepository) Transition(_ context.Context, appraisal performance.Appraisal, from performance.AppraisalStatus) error {
	stored, ok := r.appraisals[appraisal.ID]
	if !ok || stored.Status != from {
		return performance.ErrAppraisalWrongStage
	}
	scores := stored.Scores
	appraisal.Scores = scores
	r.appraisals[appraisal.ID] = appraisal
	return nil
}

func (r *fakeAppraisalRepository) SaveScores(_ context.Context, appraisalID string, scores []performance.IndicatorScore) error {
	appraisal, ok := r.appraisals[appraisalID]
	if !ok {
		return performance.ErrAppraisalNotFound
	}
	appraisal.Scores = scores
	r.appraisals[appraisalID] = appraisal
	return nil
}

func (r *fakeAppraisalRepository) CompletedScore(_ context.Context, employeeID string, from, to time.Time) (*decimal.Decimal, error) {
	for _, appraisal := range r.appraisals {
		if appraisal.EmployeeID != employeeID || appraisal.Status != performance.AppraisalCompleted {
			continue
		}
		if appraisal.PeriodStart.After(to) || appraisal.PeriodEnd.Before(from) {
			continue
		}
		return appraisal.FinalScore, nil
	}
	return nil, nil
}

type fakeEmployeeRepository struct {
	known map[string]bool
}

func (r *fakeEmployeeRepository) GetByID(_ context.Context, id string) (employee.Employee, error) {
	if r.known[id] {
		return employee.Employee{ID: id}, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepository) GetByCode(context.Context, string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepository) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}

func (r *fakeEmployeeRepository) List(context.Context, employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (r *fakeEmployeeRepository) GetActive(context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (r *fakeEmployeeRepository) Update(context.Context, employee.UpdateEmployeeRequest) error {
	return nil
}

func (r *fakeEmployeeRepository) Delete(context.Context, string) error {
	return nil
}

func newAppraisalServiceForTest(t *testing.T) (*AppraisalServiceImpl, *fakeAppraisalRepository) {
	t.Helper()

	bands, err := ParseGradeBands(defaultGradeTable)
	require.NoError(t, err)

	indicators := &fakeIndicatorRepository{indicators: []performance.Indicator{
		{ID: "i-quality", Name: "Work Quality", Code: "QUAL", Kind: performance.IndicatorQualitative, Weight: score("60"), IsActive: true},
		{ID: "i-output", Name: "Output", Code: "OUT", Kind: performance.IndicatorQuantitative, Weight: score("40"), IsActive: true},
		{ID: "i-retired", Name: "Retired", Code: "RET", Kind: performance.IndicatorQualitative, Weight: score("100"), IsActive: false},
	}}
	appraisals := &fakeAppraisalRepository{appraisals: make(map[string]performance.Appraisal)}
	employees := &fakeEmployeeRepository{known: map[string]bool{"emp-1": true, "mgr-1": true}}

	return NewAppraisalService(appraisals, indicators, employees, bands), appraisals
}

func TestCreateAppraisal(t *testing.T) {
	ctx := context.Background()
	service, _ := newAppraisalServiceForTest(t)

	t.Run("snapshots the active indicators", func(t *testing.T) {
		resp, err := service.CreateAppraisal(ctx, performance.CreateAppraisalRequest{
			EmployeeID:  "emp-1",
			PeriodStart: "2026-01-01",
			PeriodEnd:   "2026-06-30",
		})
		require.NoError(t, err)
		assert.Equal(t, performance.AppraisalSelfAssessment, resp.Status)
		require.Len(t, resp.Scores, 2)
		assert.Equal(t, "QUAL", resp.Scores[0].IndicatorCode)
		assert.Equal(t, "60.00", resp.Scores[0].Weight)
	})

	t.Run("duplicate period is rejected", func(t *testing.T) {
		_, err := service.CreateAppraisal(ctx, performance.CreateAppraisalRequest{
			EmployeeID:  "emp-1",
			PeriodStart: "2026-01-01",
			PeriodEnd:   "2026-06-30",
		})
		assert.ErrorIs(t, err, performance.ErrAppraisalExists)
	})

	t.Run("unknown employee is rejected", func(t *testing.T) {
		_, err := service.CreateAppraisal(ctx, performance.CreateAppraisalRequest{
			EmployeeID:  "ghost",
			PeriodStart: "2026-01-01",
			PeriodEnd:   "2026-06-30",
		})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})
}

func TestAppraisalLifecycle(t *testing.T) {
	ctx := context.Background()
	service, repo := newAppraisalServiceForTest(t)

	created, err := service.CreateAppraisal(ctx, performance.CreateAppraisalRequest{
		EmployeeID:  "emp-1",
		PeriodStart: "2026-01-01",
		PeriodEnd:   "2026-06-30",
	})
	require.NoError(t, err)

	t.Run("assessment before self assessment is refused", func(t *testing.T) {
		_, err := service.SubmitAssessment(ctx, performance.SubmitAssessmentRequest{
			ID:          created.ID,
			AppraiserID: "mgr-1",
			Scores:      []performance.ScoreEntry{{IndicatorID: "i-quality", Score: "70"}},
		})
		assert.ErrorIs(t, err, performance.ErrAppraisalWrongStage)
	})

	t.Run("self assessment moves to appraisal stage", func(t *testing.T) {
		resp, err := service.SubmitSelfAssessment(ctx, performance.SubmitSelfAssessmentRequest{
			ID: created.ID,
			Scores: []performance.ScoreEntry{
				{IndicatorID: "i-quality", Score: "90"},
				{IndicatorID: "i-output", Score: "80"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, performance.AppraisalAssessment, resp.Status)
		require.NotNil(t, resp.SelfScore)
		assert.Equal(t, "86.00", *resp.SelfScore)
	})

	t.Run("score for an indicator outside the snapshot is refused", func(t *testing.T) {
		_, err := service.SubmitAssessment(ctx, performance.SubmitAssessmentRequest{
			ID:          created.ID,
			AppraiserID: "mgr-1",
			Scores:      []performance.ScoreEntry{{IndicatorID: "i-retired", Score: "50"}},
		})
		assert.ErrorIs(t, err, performance.ErrScoreUnknownIndicator)
	})

	t.Run("appraiser assessment moves to review stage", func(t *testing.T) {
		resp, err := service.SubmitAssessment(ctx, performance.SubmitAssessmentRequest{
			ID:          created.ID,
			AppraiserID: "mgr-1",
			Scores: []performance.ScoreEntry{
				{IndicatorID: "i-quality", Score: "80"},
				{IndicatorID: "i-output", Score: "70"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, performance.AppraisalReview, resp.Status)
		require.NotNil(t, resp.AppraiserScore)
		assert.Equal(t, "76.00", *resp.AppraiserScore)
	})

	t.Run("approval completes with final score and grade", func(t *testing.T) {
		resp, err := service.ReviewAppraisal(ctx, performance.ReviewAppraisalRequest{
			ID:      created.ID,
			Approve: true,
		})
		require.NoError(t, err)
		assert.Equal(t, performance.AppraisalCompleted, resp.Status)
		require.NotNil(t, resp.FinalScore)
		assert.Equal(t, "76.00", *resp.FinalScore)
		require.NotNil(t, resp.Grade)
		assert.Equal(t, "B", *resp.Grade)
	})

	t.Run("completed appraisal feeds the payroll lookup", func(t *testing.T) {
		from := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 1, -1)
		got, err := repo.CompletedScore(ctx, "emp-1", from, to)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "76.00", got.StringFixed(2))
	})

	t.Run("a completed appraisal cannot be reviewed again", func(t *testing.T) {
		_, err := service.ReviewAppraisal(ctx, performance.ReviewAppraisalRequest{
			ID:      created.ID,
			Approve: false,
		})
		assert.ErrorIs(t, err, performance.ErrAppraisalWrongStage)
	})
}

func TestReviewRejection(t *testing.T) {
	ctx := context.Background()
	service, _ := newAppraisalServiceForTest(t)

	created, err := service.CreateAppraisal(ctx, performance.CreateAppraisalRequest{
		EmployeeID:  "emp-1",
		PeriodStart: "2026-07-01",
		PeriodEnd:   "2026-12-31",
	})
	require.NoError(t, err)

	_, err = service.SubmitSelfAssessment(ctx, performance.SubmitSelfAssessmentRequest{
		ID:     created.ID,
		Scores: []performance.ScoreEntry{{IndicatorID: "i-quality", Score: "95"}},
	})
	require.NoError(t, err)

	_, err = service.SubmitAssessment(ctx, performance.SubmitAssessmentRequest{
		ID:          created.ID,
		AppraiserID: "mgr-1",
		Scores:      []performance.ScoreEntry{{IndicatorID: "i-quality", Score: "90"}},
	})
	require.NoError(t, err)

	note := "targets not evidenced"
	resp, err := service.ReviewAppraisal(ctx, performance.ReviewAppraisalRequest{
		ID:      created.ID,
		Approve: false,
		Comment: &note,
	})
	require.NoError(t, err)
	assert.Equal(t, performance.AppraisalRejected, resp.Status)
	assert.Nil(t, resp.FinalScore)
	assert.Nil(t, resp.Grade)
}
