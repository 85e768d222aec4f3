package attendance

import (
	"context"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/user"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn records the caller's arrival for today
	CheckIn(ctx context.Context, userID string) (AttendanceResponse, error)

	// CheckOut records the caller's departure for today
	CheckOut(ctx context.Context, userID string) (AttendanceResponse, error)

	// Today returns the caller's record for today, nil when none exists
	Today(ctx context.Context, userID string) (*AttendanceResponse, error)

	// History lists the caller's records in a range (default: current month)
	History(ctx context.Context, userID string, filter HistoryFilter) ([]AttendanceResponse, error)

	// Get retrieves a single record. Employees may only read their own.
	Get(ctx context.Context, id string, caller user.Identity) (AttendanceResponse, error)

	// ForDate lists every record on a date (manager view)
	ForDate(ctx context.Context, date string) ([]AttendanceResponse, error)
}
