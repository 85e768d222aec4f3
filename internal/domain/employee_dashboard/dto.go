package employee_dashboard

import (
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/dashboard"
)

// RecentHistoryDays is how far back the dashboard's recent list reaches.
const RecentHistoryDays = 7

// ========== COMBINED EMPLOYEE DASHBOARD ==========

// EmployeeDashboardResponse is the combined response for employee dashboard
type EmployeeDashboardResponse struct {
	Date    string                           `json:"date"`
	Today   *attendance.AttendanceResponse   `json:"today"` // null before check-in
	Summary dashboard.MonthlySummaryResponse `json:"summary"`
	Recent  []attendance.AttendanceResponse  `json:"recent"` // newest first
}
