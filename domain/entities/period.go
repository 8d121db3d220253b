package entities

import (
	"fmt"
	"time"
)

// Period identifies a rolling leaderboard window
type Period string

const (
	PeriodDay     Period = "day"
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodYear    Period = "year"
	PeriodAllTime Period = "alltime"
)

// ParsePeriod converts a user-supplied string into a Period
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear, PeriodAllTime:
		return Period(s), nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// TimeRange is a half-open interval [Start, End)
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the interval
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Window maps now to the period's half-open interval in now's location.
// The second return is false for the unbounded alltime period.
//
// Boundaries follow the calendar of now's location: the day starts at local
// midnight, weeks start on Monday (ISO), months on the 1st and years on
// January 1st. December rolls into January of the next year.
func (p Period) Window(now time.Time) (TimeRange, bool) {
	loc := now.Location()
	year, month, day := now.Date()

	switch p {
	case PeriodDay:
		start := time.Date(year, month, day, 0, 0, 0, 0, loc)
		return TimeRange{Start: start, End: start.AddDate(0, 0, 1)}, true
	case PeriodWeek:
		// Monday == offset 0
		offset := (int(now.Weekday()) + 6) % 7
		start := time.Date(year, month, day-offset, 0, 0, 0, 0, loc)
		return TimeRange{Start: start, End: start.AddDate(0, 0, 7)}, true
	case PeriodMonth:
		start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
		return TimeRange{Start: start, End: start.AddDate(0, 1, 0)}, true
	case PeriodYear:
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
		return TimeRange{Start: start, End: start.AddDate(1, 0, 0)}, true
	}
	return TimeRange{}, false
}

// DateOf returns the canonical calendar date of t in loc: local midnight of
// the day t falls on. Two instants map to the same date iff they share a
// local calendar day. This is the inverse the streak calculator relies on.
func DateOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	year, month, day := local.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// NextMidnight returns midnight of the calendar day after t in loc
func NextMidnight(t time.Time, loc *time.Location) time.Time {
	return DateOf(t, loc).AddDate(0, 0, 1)
}
