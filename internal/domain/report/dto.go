package report

import (
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/validator"
)

// AllEmployees is the employee filter value that disables per-user filtering.
const AllEmployees = "all"

// ========================================
// ATTENDANCE REPORT
// ========================================

type AttendanceReportRequest struct {
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	EmployeeID string `json:"employee_id"` // user id or "all"
}

// UserFilter returns the user id to filter on, or nil for every employee.
func (r *AttendanceReportRequest) UserFilter() *string {
	if r.EmployeeID == "" || r.EmployeeID == AllEmployees {
		return nil
	}
	id := r.EmployeeID
	return &id
}

// Validate checks the employee filter. Range errors are reported separately
// as attendance.ErrInvalidRange.
func (r *AttendanceReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if f := r.UserFilter(); f != nil && !validator.IsValidUUID(*f) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid user id or \"all\"",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return attendance.ValidateRange(r.StartDate, r.EndDate)
}

type AttendanceReport struct {
	StartDate   string                          `json:"start_date"`
	EndDate     string                          `json:"end_date"`
	EmployeeID  string                          `json:"employee_id"`
	GeneratedAt string                          `json:"generated_at"`
	Records     []attendance.AttendanceResponse `json:"records"`
	Summary     ReportSummary                   `json:"summary"`
}

type ReportSummary struct {
	TotalRecords int     `json:"total_records"`
	Present      int     `json:"present"`
	Absent       int     `json:"absent"`
	Late         int     `json:"late"`
	HalfDay      int     `json:"half_day"`
	TotalHours   float64 `json:"total_hours"`
}

// Summarize counts records per status and sums their hours.
func Summarize(records []attendance.Attendance) ReportSummary {
	var (
		s     ReportSummary
		hours attendance.Hours
	)
	for i := range records {
		switch records[i].Status {
		case attendance.StatusPresent:
			s.Present++
		case attendance.StatusAbsent:
			s.Absent++
		case attendance.StatusLate:
			s.Late++
		case attendance.StatusHalfDay:
			s.HalfDay++
		}
		hours += attendance.HoursOf(records[i].TotalHours)
	}
	s.TotalRecords = len(records)
	s.TotalHours = hours.Float64()
	return s
}
