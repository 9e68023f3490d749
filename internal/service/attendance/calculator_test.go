package attendance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workline-hq/hrms-backend-go/internal/domain/attendance"
)

func mustClock(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("15:04", value)
	require.NoError(t, err)
	return parsed
}

func TestHoursBetween(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected string
	}{
		{
			name:     "exact eight hours",
			start:    day.Add(9 * time.Hour),
			end:      day.Add(17 * time.Hour),
			expected: "8",
		},
		{
			name:     "eight hours forty five minutes rounds up",
			start:    day.Add(9 * time.Hour),
			end:      day.Add(17*time.Hour + 45*time.Minute),
			expected: "8.8",
		},
		{
			name:     "ninety minutes",
			start:    day.Add(9 * time.Hour),
			end:      day.Add(10*time.Hour + 30*time.Minute),
			expected: "1.5",
		},
		{
			name:     "seven hours twenty minutes rounds to one digit",
			start:    day.Add(9 * time.Hour),
			end:      day.Add(16*time.Hour + 20*time.Minute),
			expected: "7.3",
		},
		{
			name:     "zero duration",
			start:    day,
			end:      day,
			expected: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HoursBetween(tt.start, tt.end)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)),
				"expected %s, got %s", tt.expected, got)
		})
	}
}

func TestResolveInterval(t *testing.T) {
	anchor := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	t.Run("same day interval", func(t *testing.T) {
		got, err := ResolveInterval(anchor, mustClock(t, "18:00"), mustClock(t, "20:30"), true)
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.RequireFromString("2.5")), "got %s", got)
	})

	t.Run("rollover past midnight", func(t *testing.T) {
		got, err := ResolveInterval(anchor, mustClock(t, "23:30"), mustClock(t, "00:30"), true)
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.RequireFromString("1")), "got %s", got)
	})

	t.Run("long rollover", func(t *testing.T) {
		got, err := ResolveInterval(anchor, mustClock(t, "22:00"), mustClock(t, "02:00"), true)
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.RequireFromString("4")), "got %s", got)
	})

	t.Run("equal times are zero length, not a full day", func(t *testing.T) {
		got, err := ResolveInterval(anchor, mustClock(t, "09:00"), mustClock(t, "09:00"), true)
		require.NoError(t, err)
		assert.True(t, got.IsZero(), "got %s", got)
	})

	t.Run("equal times without rollover are zero length", func(t *testing.T) {
		got, err := ResolveInterval(anchor, mustClock(t, "09:00"), mustClock(t, "09:00"), false)
		require.NoError(t, err)
		assert.True(t, got.IsZero(), "got %s", got)
	})

	t.Run("inverted interval without rollover fails", func(t *testing.T) {
		_, err := ResolveInterval(anchor, mustClock(t, "23:30"), mustClock(t, "00:30"), false)
		require.Error(t, err)
	})
}

func TestParseWorkCalendar(t *testing.T) {
	t.Run("weekday calendar", func(t *testing.T) {
		calendar, err := ParseWorkCalendar("MON,TUE,WED,THU,FRI")
		require.NoError(t, err)

		monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
		saturday := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
		sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

		assert.True(t, calendar.IsWorkday(monday))
		assert.False(t, calendar.IsWorkday(saturday))
		assert.False(t, calendar.IsWorkday(sunday))
	})

	t.Run("case and spacing tolerated", func(t *testing.T) {
		calendar, err := ParseWorkCalendar(" mon , Sat ")
		require.NoError(t, err)
		assert.True(t, calendar.IsWorkday(time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("unknown weekday", func(t *testing.T) {
		_, err := ParseWorkCalendar("MON,FUNDAY")
		require.Error(t, err)
	})

	t.Run("empty calendar", func(t *testing.T) {
		_, err := ParseWorkCalendar(" , ")
		require.Error(t, err)
	})
}

func TestParsePolicyWindows(t *testing.T) {
	t.Run("valid windows", func(t *testing.T) {
		policy, err := ParsePolicyWindows("09:00", "18:00")
		require.NoError(t, err)
		assert.Equal(t, 9, policy.CheckInCutoff.Hour())
		assert.Equal(t, 18, policy.CheckOutFloor.Hour())
	})

	t.Run("malformed cutoff", func(t *testing.T) {
		_, err := ParsePolicyWindows("9am", "18:00")
		require.Error(t, err)
	})

	t.Run("malformed floor", func(t *testing.T) {
		_, err := ParsePolicyWindows("09:00", "six")
		require.Error(t, err)
	})
}

func TestClassifyAttendance(t *testing.T) {
	policy, err := ParsePolicyWindows("09:00", "18:00")
	require.NoError(t, err)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	at := func(hour, minute int) *time.Time {
		ts := day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
		return &ts
	}

	tests := []struct {
		name         string
		checkIn      *time.Time
		checkOut     *time.Time
		workFromHome bool
		offDay       bool
		expected     attendance.Status
	}{
		{
			name:     "on time both ways",
			checkIn:  at(8, 55),
			checkOut: at(18, 5),
			expected: attendance.StatusNormal,
		},
		{
			name:     "check-in exactly at cutoff is on time",
			checkIn:  at(9, 0),
			checkOut: at(18, 0),
			expected: attendance.StatusNormal,
		},
		{
			name:     "one minute past cutoff is late",
			checkIn:  at(9, 1),
			checkOut: at(18, 0),
			expected: attendance.StatusLate,
		},
		{
			name:     "left before floor",
			checkIn:  at(8, 30),
			checkOut: at(17, 30),
			expected: attendance.StatusEarlyLeave,
		},
		{
			name:     "late wins over early leave",
			checkIn:  at(9, 30),
			checkOut: at(17, 0),
			expected: attendance.StatusLate,
		},
		{
			name:     "no punches at all",
			checkIn:  nil,
			checkOut: nil,
			expected: attendance.StatusAbsent,
		},
		{
			name:     "missing check-out on punctual check-in",
			checkIn:  at(8, 45),
			checkOut: nil,
			expected: attendance.StatusNormal,
		},
		{
			name:         "work from home overrides punches",
			checkIn:      at(11, 0),
			checkOut:     at(15, 0),
			workFromHome: true,
			expected:     attendance.StatusWorkFromHome,
		},
		{
			name:     "no punches on a day off is not absent",
			checkIn:  nil,
			checkOut: nil,
			offDay:   true,
			expected: attendance.StatusNormal,
		},
		{
			name:     "policy windows do not apply on a day off",
			checkIn:  at(11, 0),
			checkOut: at(13, 0),
			offDay:   true,
			expected: attendance.StatusNormal,
		},
		{
			name:         "work from home on a day off stays work from home",
			workFromHome: true,
			offDay:       true,
			expected:     attendance.StatusWorkFromHome,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyAttendance(tt.checkIn, tt.checkOut, tt.workFromHome, !tt.offDay, policy)
			assert.Equal(t, tt.expected, got)
		})
	}
}
