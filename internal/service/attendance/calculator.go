package attendance

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/workline-hq/hrms-backend-go/internal/domain/attendance"
)

var secondsPerHour = decimal.NewFromInt(3600)

// HoursBetween returns the duration between two instants as decimal hours
// rounded to one fractional digit, half away from zero. 8h45m yields 8.8.
func HoursBetween(start, end time.Time) decimal.Decimal {
	seconds := decimal.NewFromFloat(end.Sub(start).Seconds())
	return seconds.Div(secondsPerHour).Round(1)
}

// ResolveInterval places two clock times on the anchor date and returns the
// interval length in decimal hours. When allowRollover is set and the end
// clock time comes before the start, the end lands on the day after the
// anchor, so 23:30-00:30 resolves to 1.0 and 22:00-02:00 to 4.0. Equal clock
// times are a zero-length interval, never a full day. Without rollover an
// inverted interval is an error.
func ResolveInterval(anchor time.Time, start, end time.Time, allowRollover bool) (decimal.Decimal, error) {
	s := onDate(anchor, start)
	e := onDate(anchor, end)

	if e.Before(s) {
		if !allowRollover {
			return decimal.Zero, fmt.Errorf("interval end %s is before start %s", end.Format("15:04"), start.Format("15:04"))
		}
		e = e.AddDate(0, 0, 1)
	}

	return HoursBetween(s, e), nil
}

// WorkCalendar reports which weekdays are designated workdays.
type WorkCalendar map[time.Weekday]bool

func (c WorkCalendar) IsWorkday(d time.Time) bool {
	return c[d.Weekday()]
}

var weekdayNames = map[string]time.Weekday{
	"SUN": time.Sunday,
	"MON": time.Monday,
	"TUE": time.Tuesday,
	"WED": time.Wednesday,
	"THU": time.Thursday,
	"FRI": time.Friday,
	"SAT": time.Saturday,
}

// ParseWorkCalendar parses a comma-separated list of weekday abbreviations,
// e.g. "MON,TUE,WED,THU,FRI".
func ParseWorkCalendar(days string) (WorkCalendar, error) {
	calendar := make(WorkCalendar)
	for _, name := range strings.Split(days, ",") {
		name = strings.ToUpper(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		day, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q in work calendar", name)
		}
		calendar[day] = true
	}
	if len(calendar) == 0 {
		return nil, fmt.Errorf("work calendar %q names no weekdays", days)
	}
	return calendar, nil
}

// PolicyWindows holds the clock-time boundaries used to classify a day.
type PolicyWindows struct {
	CheckInCutoff time.Time
	CheckOutFloor time.Time
}

// ParsePolicyWindows parses "HH:MM" boundaries, e.g. "09:00" and "18:00".
func ParsePolicyWindows(checkInCutoff, checkOutFloor string) (PolicyWindows, error) {
	cutoff, err := time.Parse("15:04", checkInCutoff)
	if err != nil {
		return PolicyWindows{}, fmt.Errorf("parse check-in cutoff %q: %w", checkInCutoff, err)
	}

	floor, err := time.Parse("15:04", checkOutFloor)
	if err != nil {
		return PolicyWindows{}, fmt.Errorf("parse check-out floor %q: %w", checkOutFloor, err)
	}

	return PolicyWindows{CheckInCutoff: cutoff, CheckOutFloor: floor}, nil
}

// ClassifyAttendance derives the status of a single day from its punches.
// Missing punches count as absent only on a designated workday; the policy
// windows likewise only apply to workdays. Leave linkage is not decided
// here: an absent workday later covered by an approved leave request is
// reclassified by the summary aggregator.
func ClassifyAttendance(checkIn, checkOut *time.Time, workFromHome, workday bool, policy PolicyWindows) attendance.Status {
	if workFromHome {
		return attendance.StatusWorkFromHome
	}

	if !workday {
		return attendance.StatusNormal
	}

	if checkIn == nil && checkOut == nil {
		return attendance.StatusAbsent
	}

	if checkIn != nil && clockAfter(*checkIn, policy.CheckInCutoff) {
		return attendance.StatusLate
	}

	if checkOut != nil && clockBefore(*checkOut, policy.CheckOutFloor) {
		return attendance.StatusEarlyLeave
	}

	return attendance.StatusNormal
}

func onDate(anchor, clock time.Time) time.Time {
	return time.Date(anchor.Year(), anchor.Month(), anchor.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, anchor.Location())
}

func clockAfter(t, boundary time.Time) bool {
	return minuteOfDay(t) > minuteOfDay(boundary)
}

func clockBefore(t, boundary time.Time) bool {
	return minuteOfDay(t) < minuteOfDay(boundary)
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
