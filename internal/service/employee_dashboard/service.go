package employee_dashboard

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/employee_dashboard"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/calendar"
	dashboardService "github.com/cmlabs-hris/presence-backend-go/internal/service/dashboard"
	"golang.org/x/sync/errgroup"
)

type EmployeeDashboardServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	clock          calendar.Clock
}

func NewEmployeeDashboardService(attendanceRepo attendance.AttendanceRepository, clock calendar.Clock) employee_dashboard.EmployeeDashboardService {
	return &EmployeeDashboardServiceImpl{
		attendanceRepo: attendanceRepo,
		clock:          clock,
	}
}

// GetDashboard returns combined employee dashboard data
func (s *EmployeeDashboardServiceImpl) GetDashboard(ctx context.Context, userID string) (*employee_dashboard.EmployeeDashboardResponse, error) {
	now := s.clock.Now()
	today := calendar.FormatDate(now)
	days := calendar.LastNDays(now, employee_dashboard.RecentHistoryDays)

	var (
		todayRecord *attendance.Attendance
		summary     dashboard.MonthlySummaryResponse
		recent      []attendance.Attendance
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		todayRecord, err = s.attendanceRepo.FindByUserAndDate(gCtx, userID, today)
		if err != nil {
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		summary, err = dashboardService.MonthlySummary(gCtx, s.attendanceRepo, userID, now)
		return err
	})

	g.Go(func() error {
		var err error
		recent, err = s.attendanceRepo.RangeByUser(gCtx, userID, days[0], days[len(days)-1])
		if err != nil {
			return fmt.Errorf("failed to get recent attendance: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := &employee_dashboard.EmployeeDashboardResponse{
		Date:    today,
		Summary: summary,
		Recent:  attendance.NewAttendanceResponses(recent),
	}
	if todayRecord != nil {
		r := attendance.NewAttendanceResponse(*todayRecord)
		resp.Today = &r
	}
	return resp, nil
}

// GetMonthlySummary returns the caller's summary for a month
func (s *EmployeeDashboardServiceImpl) GetMonthlySummary(ctx context.Context, userID, month string) (*dashboard.MonthlySummaryResponse, error) {
	first, err := dashboardService.ParseMonth(month, s.clock.Now())
	if err != nil {
		return nil, err
	}

	summary, err := dashboardService.MonthlySummary(ctx, s.attendanceRepo, userID, first)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
