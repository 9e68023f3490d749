package attendance

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workline-hq/hrms-backend-go/internal/domain/attendance"
	"github.com/workline-hq/hrms-backend-go/internal/domain/employee"
	"github.com/workline-hq/hrms-backend-go/internal/pkg/cache"
)

type fakeRecordRepository struct {
	byDay map[string]attendance.Record
	last  attendance.Record
}

func newFakeRecordRepository() *fakeRecordRepository {
	return &fakeRecordRepository{byDay: make(map[string]attendance.Record)}
}

func dayKey(employeeID string, workDate time.Time) string {
	return employeeID + "|" + workDate.Format("2006-01-02")
}

func (r *fakeRecordRepository) Upsert(_ context.Context, record attendance.Record) (attendance.Record, error) {
	r.byDay[dayKey(record.EmployeeID, record.WorkDate)] = record
	r.last = record
	return record, nil
}

func (r *fakeRecordRepository) GetByID(_ context.Context, id string) (attendance.Record, error) {
	for _, rec := range r.byDay {
		if rec.ID == id {
			return rec, nil
		}
	}
	return attendance.Record{}, attendance.ErrRecordNotFound
}

func (r *fakeRecordRepository) GetByEmployeeAndDate(_ context.Context, employeeID string, workDate time.Time) (*attendance.Record, error) {
	if rec, ok := r.byDay[dayKey(employeeID, workDate)]; ok {
		return &rec, nil
	}
	return nil, nil
}

func (r *fakeRecordRepository) ListByEmployeeMonth(context.Context, string, int, int) ([]attendance.Record, error) {
	return nil, nil
}

func (r *fakeRecordRepository) List(context.Context, attendance.RecordFilter) ([]attendance.Record, int64, error) {
	return nil, 0, nil
}

func (r *fakeRecordRepository) Delete(context.Context, string) error {
	return nil
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

func newRecordServiceForTest(t *testing.T, records *fakeRecordRepository) *RecordServiceImpl {
	t.Helper()

	policy, err := ParsePolicyWindows("09:00", "18:00")
	require.NoError(t, err)

	calendar, err := ParseWorkCalendar("MON,TUE,WED,THU,FRI")
	require.NoError(t, err)

	employees := &fakeEmployeeRepository{known: map[string]bool{"emp-1": true}}
	return NewRecordService(records, employees, policy, calendar)
}

func TestUpsertRecordWorkCalendar(t *testing.T) {
	ctx := context.Background()

	t.Run("no punches on a workday is absent", func(t *testing.T) {
		records := newFakeRecordRepository()
		svc := newRecordServiceForTest(t, records)

		// 2026-03-02 is a Monday.
		resp, err := svc.UpsertRecord(ctx, attendance.UpsertRecordRequest{
			EmployeeID: "emp-1",
			WorkDate:   "2026-03-02",
		})
		require.NoError(t, err)
		assert.Equal(t, string(attendance.StatusAbsent), resp.Status)
	})

	t.Run("no punches on a non-workday is not absent", func(t *testing.T) {
		records := newFakeRecordRepository()
		svc := newRecordServiceForTest(t, records)

		// 2026-03-07 is a Saturday.
		resp, err := svc.UpsertRecord(ctx, attendance.UpsertRecordRequest{
			EmployeeID: "emp-1",
			WorkDate:   "2026-03-07",
		})
		require.NoError(t, err)
		assert.Equal(t, string(attendance.StatusNormal), resp.Status)
	})

	t.Run("unknown employee is rejected", func(t *testing.T) {
		records := newFakeRecordRepository()
		svc := newRecordServiceForTest(t, records)

		_, err := svc.UpsertRecord(ctx, attendance.UpsertRecordRequest{
			EmployeeID: "emp-9",
			WorkDate:   "2026-03-02",
		})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})
}

func TestUpsertRecordPunchMerge(t *testing.T) {
	ctx := context.Background()

	checkIn := "2026-03-02 08:45:00"
	checkOut := "2026-03-02 17:45:00"

	t.Run("check-out alone without a prior check-in is rejected", func(t *testing.T) {
		records := newFakeRecordRepository()
		svc := newRecordServiceForTest(t, records)

		_, err := svc.UpsertRecord(ctx, attendance.UpsertRecordRequest{
			EmployeeID: "emp-1",
			WorkDate:   "2026-03-02",
			CheckOut:   &checkOut,
		})
		assert.ErrorIs(t, err, attendance.ErrMissingCheckIn)
	})

	t.Run("check-out merges with the morning check-in", func(t *testing.T) {
		records := newFakeRecordRepository()
		svc := newRecordServiceForTest(t, records)

		_, err := svc.UpsertRecord(ctx, attendance.UpsertRecordRequest{
			EmployeeID: "emp-1",
			WorkDate:   "2026-03-02",
			CheckIn:    &checkIn,
		})
		require.NoError(t, err)

		resp, err := svc.UpsertRecord(ctx, attendance.UpsertRecordRequest{
			EmployeeID: "emp-1",
			WorkDate:   "2026-03-02",
			CheckOut:   &checkOut,
		})
		require.NoError(t, err)

		require.NotNil(t, records.last.CheckIn)
		require.NotNil(t, records.last.CheckOut)
		require.NotNil(t, resp.HoursWorked)
		assert.Equal(t, "9.0", *resp.HoursWorked)
		assert.Equal(t, string(attendance.StatusEarlyLeave), resp.Status)
	})
}

type fakeSummaryRepository struct {
	summary attendance.Summary
	reads   int
}

func (r *fakeSummaryRepository) Upsert(_ context.Context, s attendance.Summary) (attendance.Summary, error) {
	r.summary = s
	return s, nil
}

func (r *fakeSummaryRepository) GetByEmployeeMonth(_ context.Context, employeeID string, year, month int) (attendance.Summary, error) {
	r.reads++
	return r.summary, nil
}

func (r *fakeSummaryRepository) ListByMonth(context.Context, int, int) ([]attendance.Summary, error) {
	return nil, nil
}

type fakeLeaveRequestRepository struct{}

func (fakeLeaveRequestRepository) Create(_ context.Context, lr attendance.LeaveRequest) (attendance.LeaveRequest, error) {
	return lr, nil
}

func (fakeLeaveRequestRepository) GetByID(context.Context, string) (attendance.LeaveRequest, error) {
	return attendance.LeaveRequest{}, attendance.ErrLeaveRequestNotFound
}

func (fakeLeaveRequestRepository) List(context.Context, attendance.RequestFilter) ([]attendance.LeaveRequest, int64, error) {
	return nil, 0, nil
}

func (fakeLeaveRequestRepository) ListApprovedIntersecting(context.Context, string, time.Time, time.Time) ([]attendance.LeaveRequest, error) {
	return nil, nil
}

func (fakeLeaveRequestRepository) UpdateStatus(context.Context, string, attendance.RequestStatus, string, time.Time) error {
	return nil
}

type fakeOvertimeRequestRepository struct{}

func (fakeOvertimeRequestRepository) Create(_ context.Context, or attendance.OvertimeRequest) (attendance.OvertimeRequest, error) {
	return or, nil
}

func (fakeOvertimeRequestRepository) GetByID(context.Context, string) (attendance.OvertimeRequest, error) {
	return attendance.OvertimeRequest{}, attendance.ErrOvertimeRequestNotFound
}

func (fakeOvertimeRequestRepository) List(context.Context, attendance.RequestFilter) ([]attendance.OvertimeRequest, int64, error) {
	return nil, 0, nil
}

func (fakeOvertimeRequestRepository) SumApprovedHours(context.Context, string, time.Time, time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (fakeOvertimeRequestRepository) UpdateStatus(context.Context, string, attendance.RequestStatus, string, time.Time) error {
	return nil
}

type fakeCacheStore struct {
	values  map[string]interface{}
	sweeps  []string
	deletes []string
}

func newFakeCacheStore() *fakeCacheStore {
	return &fakeCacheStore{values: make(map[string]interface{})}
}

func (c *fakeCacheStore) Get(_ context.Context, key string, target interface{}) error {
	value, ok := c.values[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, target)
}

func (c *fakeCacheStore) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.values[key] = value
	return nil
}

func (c *fakeCacheStore) Invalidate(_ context.Context, key string) error {
	c.deletes = append(c.deletes, key)
	delete(c.values, key)
	return nil
}

func (c *fakeCacheStore) InvalidatePattern(_ context.Context, pattern string) error {
	c.sweeps = append(c.sweeps, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range c.values {
		if strings.HasPrefix(key, prefix) {
			delete(c.values, key)
		}
	}
	return nil
}

func newSummaryServiceForTest(t *testing.T, summaries *fakeSummaryRepository, store *fakeCacheStore) *SummaryServiceImpl {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	aggregator := NewAggregator(
		newFakeRecordRepository(),
		fakeLeaveRequestRepository{},
		fakeOvertimeRequestRepository{},
		summaries,
		&fakeEmployeeRepository{},
		logger,
	)
	return NewSummaryService(aggregator, summaries, store, time.Minute, logger)
}

func TestSummaryServiceCache(t *testing.T) {
	ctx := context.Background()

	t.Run("second read is served from cache", func(t *testing.T) {
		summaries := &fakeSummaryRepository{summary: attendance.Summary{
			EmployeeID: "emp-1", Year: 2026, Month: 3, NormalDays: 20,
		}}
		store := newFakeCacheStore()
		svc := newSummaryServiceForTest(t, summaries, store)

		first, err := svc.GetSummary(ctx, "emp-1", 2026, 3)
		require.NoError(t, err)
		second, err := svc.GetSummary(ctx, "emp-1", 2026, 3)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, summaries.reads)
	})

	t.Run("company-wide recompute sweeps all cached summaries", func(t *testing.T) {
		summaries := &fakeSummaryRepository{}
		store := newFakeCacheStore()
		svc := newSummaryServiceForTest(t, summaries, store)

		_, err := svc.GetSummary(ctx, "emp-1", 2026, 3)
		require.NoError(t, err)
		require.NotEmpty(t, store.values)

		_, err = svc.Recompute(ctx, attendance.RecomputeSummaryRequest{Year: 2026, Month: 3})
		require.NoError(t, err)

		assert.Equal(t, []string{"summary:*"}, store.sweeps)
		assert.Empty(t, store.values)
	})

	t.Run("single recompute drops only that employee's key", func(t *testing.T) {
		summaries := &fakeSummaryRepository{}
		store := newFakeCacheStore()
		svc := newSummaryServiceForTest(t, summaries, store)

		employeeID := "emp-1"
		_, err := svc.Recompute(ctx, attendance.RecomputeSummaryRequest{
			EmployeeID: &employeeID, Year: 2026, Month: 3,
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"summary:emp-1:2026-03"}, store.deletes)
		assert.Empty(t, store.sweeps)
	})
}
