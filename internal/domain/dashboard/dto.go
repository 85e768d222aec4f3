package dashboard

import (
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/user"
)

// ========== COMBINED DASHBOARD ==========

// DashboardResponse is the combined response for the manager dashboard endpoint
type DashboardResponse struct {
	Stats       StatsResponse            `json:"stats"`
	WeeklyTrend []TrendPoint             `json:"weekly_trend"`
	Departments []DepartmentStatResponse `json:"departments"`
}

// ========== TODAY'S STATS ==========

type StatsResponse struct {
	Date            string                 `json:"date"`
	TotalEmployees  int                    `json:"total_employees"`
	PresentToday    int                    `json:"present_today"`    // present, late or half-day
	AbsentToday     int                    `json:"absent_today"`     // no record + explicit absent
	LateToday       int                    `json:"late_today"`
	AbsentEmployees []user.ProfileResponse `json:"absent_employees"` // no record only
}

// ========== WEEKLY TREND ==========

type TrendPoint struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
	Late    int    `json:"late"`
	Absent  int    `json:"absent"`
}

// ========== DEPARTMENTS ==========

type DepartmentStatResponse struct {
	Department string `json:"department"`
	Present    int    `json:"present"`
	Absent     int    `json:"absent"`
}

// ========== CALENDAR ==========

type CalendarResponse struct {
	Month string        `json:"month"` // Format: "YYYY-MM"
	Days  []CalendarDay `json:"days"`
}

type CalendarDay struct {
	Date    string                          `json:"date"`
	Present int                             `json:"present"`
	Absent  int                             `json:"absent"`
	Late    int                             `json:"late"`
	HalfDay int                             `json:"half_day"`
	Total   int                             `json:"total"`
	Records []attendance.AttendanceResponse `json:"records"`
}

// ========== MONTHLY SUMMARY ==========

type MonthlySummaryResponse struct {
	Month       string  `json:"month"` // Format: "YYYY-MM"
	PresentDays int     `json:"present_days"`
	AbsentDays  int     `json:"absent_days"`
	LateDays    int     `json:"late_days"`
	HalfDays    int     `json:"half_days"`
	TotalHours  float64 `json:"total_hours"`
}
