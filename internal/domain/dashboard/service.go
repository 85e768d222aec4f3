package dashboard

import "context"

// DashboardService defines the interface for manager dashboard operations
type DashboardService interface {
	// GetDashboard returns stats, weekly trend and departments fetched concurrently
	GetDashboard(ctx context.Context) (*DashboardResponse, error)

	// GetStats returns today's attendance stats
	GetStats(ctx context.Context) (*StatsResponse, error)

	// GetWeeklyTrend returns the trailing 7 days ending today, oldest first
	GetWeeklyTrend(ctx context.Context) ([]TrendPoint, error)

	// GetDepartmentBreakdown returns today's attendance per department
	GetDepartmentBreakdown(ctx context.Context) ([]DepartmentStatResponse, error)

	// GetCalendar returns one entry per day of month (format "YYYY-MM", default: current month)
	GetCalendar(ctx context.Context, month string) (*CalendarResponse, error)

	// GetEmployeeSummary returns one employee's monthly summary
	GetEmployeeSummary(ctx context.Context, userID, month string) (*MonthlySummaryResponse, error)
}
