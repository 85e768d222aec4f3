package attendance

import (
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/user"
)

// Attendance is one user's record for one calendar date. (UserID, Date) is unique.
type Attendance struct {
	ID           string
	UserID       string
	Date         string  // YYYY-MM-DD
	CheckInTime  *string // HH:MM:SS
	CheckOutTime *string // HH:MM:SS
	Status       Status
	TotalHours   *string // two fractional digits, e.g. "7.75"
	CreatedAt    time.Time

	// Join
	User *user.Profile
}

// HasCheckedIn reports whether the check-in half of the day has been written.
func (a *Attendance) HasCheckedIn() bool {
	return a.CheckInTime != nil
}

// HasCheckedOut reports whether the check-out half of the day has been written.
func (a *Attendance) HasCheckedOut() bool {
	return a.CheckOutTime != nil
}

// Hours returns the parsed total hours, zero when missing or malformed.
func (a *Attendance) Hours() float64 {
	return ParseHours(a.TotalHours)
}
