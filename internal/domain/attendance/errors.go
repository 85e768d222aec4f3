package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out errors
	ErrAlreadyCheckedIn      = errors.New("you have already checked in today")
	ErrNotCheckedIn          = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut     = errors.New("you have already checked out")
	ErrCheckOutBeforeCheckIn = errors.New("check-out time cannot be earlier than check-in time")

	// Query errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidRange       = errors.New("invalid date range")
	ErrUnauthorized       = errors.New("unauthorized to access this attendance record")

	// Storage errors
	ErrStorageUnavailable = errors.New("attendance storage unavailable")
)
