package attendance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/workline-hq/hrms-backend-go/internal/domain/attendance"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func approvedLeave(start, end time.Time, days string) attendance.LeaveRequest {
	return attendance.LeaveRequest{
		ID:         "lr-1",
		EmployeeID: "emp-1",
		StartDate:  start,
		EndDate:    end,
		Days:       decimal.RequireFromString(days),
		Status:     attendance.RequestApproved,
	}
}

func TestProratedLeaveDays(t *testing.T) {
	tests := []struct {
		name     string
		requests []attendance.LeaveRequest
		year     int
		month    int
		expected string
	}{
		{
			name: "fully inside the month",
			requests: []attendance.LeaveRequest{
				approvedLeave(date(2026, 3, 1), date(2026, 3, 3), "3"),
			},
			year:     2026,
			month:    3,
			expected: "3",
		},
		{
			name: "spanning into next month counts only the overlap",
			requests: []attendance.LeaveRequest{
				approvedLeave(date(2026, 3, 30), date(2026, 4, 2), "4"),
			},
			year:     2026,
			month:    3,
			expected: "2",
		},
		{
			name: "same request seen from the next month",
			requests: []attendance.LeaveRequest{
				approvedLeave(date(2026, 3, 30), date(2026, 4, 2), "4"),
			},
			year:     2026,
			month:    4,
			expected: "2",
		},
		{
			name: "half-day request prorated across the boundary",
			requests: []attendance.LeaveRequest{
				approvedLeave(date(2026, 1, 31), date(2026, 2, 1), "1.5"),
			},
			year:     2026,
			month:    1,
			expected: "0.8",
		},
		{
			name: "multiple requests accumulate",
			requests: []attendance.LeaveRequest{
				approvedLeave(date(2026, 3, 2), date(2026, 3, 4), "3"),
				approvedLeave(date(2026, 3, 16), date(2026, 3, 16), "0.5"),
			},
			year:     2026,
			month:    3,
			expected: "3.5",
		},
		{
			name: "no overlap at all",
			requests: []attendance.LeaveRequest{
				approvedLeave(date(2026, 5, 4), date(2026, 5, 6), "3"),
			},
			year:     2026,
			month:    3,
			expected: "0",
		},
		{
			name:     "no requests",
			requests: nil,
			year:     2026,
			month:    3,
			expected: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProratedLeaveDays(tt.requests, tt.year, tt.month)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)),
				"expected %s, got %s", tt.expected, got)
		})
	}
}

func TestBuildSummary(t *testing.T) {
	record := func(day int, status attendance.Status) attendance.Record {
		return attendance.Record{
			EmployeeID: "emp-1",
			WorkDate:   date(2026, 3, day),
			Status:     status,
		}
	}

	t.Run("counts each status bucket", func(t *testing.T) {
		records := []attendance.Record{
			record(2, attendance.StatusNormal),
			record(3, attendance.StatusNormal),
			record(4, attendance.StatusLate),
			record(5, attendance.StatusEarlyLeave),
			record(6, attendance.StatusAbsent),
			record(9, attendance.StatusWorkFromHome),
		}

		summary := buildSummary("emp-1", 2026, 3, records, nil, decimal.RequireFromString("2.5"))

		assert.Equal(t, "emp-1", summary.EmployeeID)
		assert.Equal(t, 2026, summary.Year)
		assert.Equal(t, 3, summary.Month)
		assert.Equal(t, 2, summary.NormalDays)
		assert.Equal(t, 1, summary.LateCount)
		assert.Equal(t, 1, summary.EarlyLeaveCount)
		assert.Equal(t, 1, summary.AbsentDays)
		assert.Equal(t, 1, summary.WorkFromHomeDays)
		assert.True(t, summary.OvertimeHours.Equal(decimal.RequireFromString("2.5")))
	})

	t.Run("absent day covered by approved leave becomes leave", func(t *testing.T) {
		records := []attendance.Record{
			record(2, attendance.StatusNormal),
			record(3, attendance.StatusAbsent),
			record(4, attendance.StatusAbsent),
		}
		leaves := []attendance.LeaveRequest{
			approvedLeave(date(2026, 3, 3), date(2026, 3, 3), "1"),
		}

		summary := buildSummary("emp-1", 2026, 3, records, leaves, decimal.Zero)

		assert.Equal(t, 1, summary.NormalDays)
		assert.Equal(t, 1, summary.AbsentDays)
		assert.True(t, summary.LeaveDays.Equal(decimal.RequireFromString("1")),
			"leave days %s", summary.LeaveDays)
	})

	t.Run("overtime hours are rounded to one digit", func(t *testing.T) {
		summary := buildSummary("emp-1", 2026, 3, nil, nil, decimal.RequireFromString("3.25"))
		assert.Equal(t, "3.3", summary.OvertimeHours.String())
	})
}

func TestCalendarDays(t *testing.T) {
	assert.Equal(t, 1, calendarDays(date(2026, 3, 2), date(2026, 3, 2)))
	assert.Equal(t, 3, calendarDays(date(2026, 3, 1), date(2026, 3, 3)))
	assert.Equal(t, 31, calendarDays(date(2026, 3, 1), date(2026, 3, 31)))
	assert.Equal(t, 0, calendarDays(date(2026, 3, 3), date(2026, 3, 2)))
}

func TestMonthBounds(t *testing.T) {
	from, to := monthBounds(2026, 2)
	assert.Equal(t, date(2026, 2, 1), from)
	assert.Equal(t, date(2026, 2, 28), to)

	from, to = monthBounds(2024, 2)
	assert.Equal(t, date(2024, 2, 1), from)
	assert.Equal(t, date(2024, 2, 29), to)
}
