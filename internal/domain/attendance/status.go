package attendance

import (
	"fmt"
	"math"
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half-day"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusPresent, StatusAbsent, StatusLate, StatusHalfDay}

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusHalfDay:
		return true
	}
	return false
}

// Check-in cut-offs in minutes since midnight. Both bounds are inclusive
// for the lower bracket.
const (
	onTimeCutoffMinutes = 9*60 + 30
	lateCutoffMinutes   = 12 * 60
)

// halfDayThreshold is the shortest working span that keeps the arrival status.
const halfDayThreshold Hours = 400

// TimeOfDay is a wall-clock time within a single day, in seconds since midnight.
type TimeOfDay int

// ParseTimeOfDay parses an HH:MM:SS string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second()), nil
}

// TimeOfDayFrom extracts the wall-clock time of t.
func TimeOfDayFrom(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

func (t TimeOfDay) Minutes() int {
	return int(t) / 60
}

func (t TimeOfDay) String() string {
	s := int(t)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}

// Hours is a worked duration in hundredths of an hour.
type Hours int64

func (h Hours) Float64() float64 {
	return float64(h) / 100
}

// String renders h with exactly two fractional digits, e.g. "8.50".
func (h Hours) String() string {
	sign := ""
	v := int64(h)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// DeriveCheckInStatus classifies an arrival time.
func DeriveCheckInStatus(checkIn TimeOfDay) Status {
	m := checkIn.Minutes()
	switch {
	case m <= onTimeCutoffMinutes:
		return StatusPresent
	case m <= lateCutoffMinutes:
		return StatusLate
	default:
		return StatusHalfDay
	}
}

// DeriveDuration returns the span between check-in and check-out truncated
// (not rounded) to hundredths of an hour. A check-out earlier than the
// check-in yields a negative duration; callers reject it.
func DeriveDuration(checkIn, checkOut TimeOfDay) Hours {
	return Hours(int64(checkOut-checkIn) * 100 / 3600)
}

// ReconcileStatusOnCheckout downgrades short days to half-day. A late
// arrival is never upgraded.
func ReconcileStatusOnCheckout(existing Status, hours Hours) Status {
	if hours < halfDayThreshold {
		return StatusHalfDay
	}
	return existing
}

// ParseHours parses a stored total-hours value. Missing or malformed values
// count as zero.
func ParseHours(s *string) float64 {
	if s == nil {
		return 0
	}
	var f float64
	if _, err := fmt.Sscanf(*s, "%g", &f); err != nil {
		return 0
	}
	return f
}

// HoursOf converts a stored total-hours value to hundredths for exact
// summation. Missing or malformed values count as zero.
func HoursOf(s *string) Hours {
	return Hours(math.Round(ParseHours(s) * 100))
}
