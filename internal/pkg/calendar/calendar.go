package calendar

import (
	"time"

	"github.com/jinzhu/now"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
	TimeLayout  = "15:04:05"
)

// Clock is the source of "now" for every date-sensitive operation.
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

// NewSystemClock returns a wall clock reporting times in loc.
func NewSystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// FixedClock always reports the same instant. Used by tests and seeding.
type FixedClock time.Time

func (c FixedClock) Now() time.Time {
	return time.Time(c)
}

// ParseDate parses a canonical YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseMonth parses a YYYY-MM month into the first day of that month.
func ParseMonth(s string) (time.Time, error) {
	return time.Parse(MonthLayout, s)
}

// Today returns the calendar date reported by clock.
func Today(clock Clock) string {
	return FormatDate(clock.Now())
}

// MonthBounds returns the first and last calendar day of the month containing t.
func MonthBounds(t time.Time) (string, string) {
	n := now.With(t)
	return FormatDate(n.BeginningOfMonth()), FormatDate(n.EndOfMonth())
}

// DaysInRange enumerates every date between start and end inclusive.
// It returns nil when end is before start.
func DaysInRange(start, end time.Time) []string {
	start = truncateDay(start)
	end = truncateDay(end)
	if end.Before(start) {
		return nil
	}

	var days []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, FormatDate(d))
	}
	return days
}

// DaysInMonth enumerates every date of the month containing t, ascending.
func DaysInMonth(t time.Time) []string {
	n := now.With(t)
	return DaysInRange(n.BeginningOfMonth(), n.EndOfMonth())
}

// LastNDays returns the n calendar days ending with today, oldest first.
func LastNDays(today time.Time, n int) []string {
	if n <= 0 {
		return nil
	}
	return DaysInRange(today.AddDate(0, 0, -(n-1)), today)
}

// IsSameDay reports whether a and b fall on the same calendar date.
func IsSameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsBusinessDay reports whether t is a Monday through Friday.
func IsBusinessDay(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	default:
		return true
	}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
