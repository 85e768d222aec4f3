package employee_dashboard

import (
	"context"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/dashboard"
)

// EmployeeDashboardService defines the interface for employee dashboard operations
type EmployeeDashboardService interface {
	// GetDashboard returns today's record, this month's summary and recent history
	GetDashboard(ctx context.Context, userID string) (*EmployeeDashboardResponse, error)

	// GetMonthlySummary returns the caller's summary for a month
	// month format: "YYYY-MM" (default: current month)
	GetMonthlySummary(ctx context.Context, userID, month string) (*dashboard.MonthlySummaryResponse, error)
}
