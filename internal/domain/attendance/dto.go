package attendance

import (
	"fmt"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type AttendanceResponse struct {
	ID           string                `json:"id"`
	UserID       string                `json:"user_id"`
	Date         string                `json:"date"`
	CheckInTime  *string               `json:"check_in_time"`
	CheckOutTime *string               `json:"check_out_time"`
	Status       Status                `json:"status"`
	TotalHours   *string               `json:"total_hours"`
	User         *user.ProfileResponse `json:"user,omitempty"`
}

// NewAttendanceResponse maps a record to its outbound shape.
func NewAttendanceResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:           a.ID,
		UserID:       a.UserID,
		Date:         a.Date,
		CheckInTime:  a.CheckInTime,
		CheckOutTime: a.CheckOutTime,
		Status:       a.Status,
		TotalHours:   a.TotalHours,
	}
	if a.User != nil {
		p := user.NewProfileResponse(*a.User)
		resp.User = &p
	}
	return resp
}

// NewAttendanceResponses maps a slice of records, never returning nil.
func NewAttendanceResponses(records []Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(records))
	for _, r := range records {
		out = append(out, NewAttendanceResponse(r))
	}
	return out
}

type HistoryFilter struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

// ValidateRange checks that both bounds are canonical dates and start <= end.
// Failures wrap ErrInvalidRange.
func ValidateRange(startDate, endDate string) error {
	start, ok := validator.IsValidDate(startDate)
	if !ok {
		return fmt.Errorf("%w: start_date must be in YYYY-MM-DD format", ErrInvalidRange)
	}
	end, ok := validator.IsValidDate(endDate)
	if !ok {
		return fmt.Errorf("%w: end_date must be in YYYY-MM-DD format", ErrInvalidRange)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end_date must not be before start_date", ErrInvalidRange)
	}
	return nil
}
