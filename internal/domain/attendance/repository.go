package attendance

import (
	"context"
)

// AttendanceRepository is the attendance record store. Dates are canonical
// YYYY-MM-DD strings and every range is inclusive on both ends. Range results
// are sorted by date descending.
type AttendanceRepository interface {
	// GetByID retrieves a record by its ID, or ErrAttendanceNotFound
	GetByID(ctx context.Context, id string) (Attendance, error)

	// FindByUserAndDate returns nil, nil when the user has no record for date
	FindByUserAndDate(ctx context.Context, userID, date string) (*Attendance, error)

	// UpsertCheckIn creates the day's record, or fills a check-in-less placeholder.
	// Fails with ErrAlreadyCheckedIn when a check-in exists.
	UpsertCheckIn(ctx context.Context, userID, date string, checkIn TimeOfDay) (Attendance, error)

	// ApplyCheckOut writes check-out time, total hours and the reconciled status.
	// Fails with ErrNotCheckedIn, ErrAlreadyCheckedOut or ErrCheckOutBeforeCheckIn.
	ApplyCheckOut(ctx context.Context, userID, date string, checkOut TimeOfDay) (Attendance, error)

	// RangeByUser lists one user's records between startDate and endDate
	RangeByUser(ctx context.Context, userID, startDate, endDate string) ([]Attendance, error)

	// RangeAll lists records of all users (or only userID when non-nil), joined with profiles
	RangeAll(ctx context.Context, startDate, endDate string, userID *string) ([]Attendance, error)

	// ForDate lists every user's record on date, joined with profiles
	ForDate(ctx context.Context, date string) ([]Attendance, error)

	// Import bulk-writes records keyed by (UserID, Date), replacing existing ones.
	// Only used for seeding.
	Import(ctx context.Context, records []Attendance) error
}
