package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

// trendWindow is the number of days in the weekly trend.
const trendWindow = 7

type DashboardServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	userRepo       user.UserRepository
	clock          calendar.Clock
}

func NewDashboardService(attendanceRepo attendance.AttendanceRepository, userRepo user.UserRepository, clock calendar.Clock) dashboard.DashboardService {
	return &DashboardServiceImpl{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		clock:          clock,
	}
}

// ParseMonth parses YYYY-MM format, defaults to the month of now.
func ParseMonth(month string, now time.Time) (time.Time, error) {
	if month == "" {
		y, m, _ := now.Date()
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC), nil
	}

	parsed, ok := validator.IsValidMonth(month)
	if !ok {
		return time.Time{}, validator.ValidationErrors{{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		}}
	}
	return parsed, nil
}

// GetDashboard returns combined dashboard data using parallel goroutines
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context) (*dashboard.DashboardResponse, error) {
	var (
		stats       *dashboard.StatsResponse
		trend       []dashboard.TrendPoint
		departments []dashboard.DepartmentStatResponse
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Today's stats
	g.Go(func() error {
		var err error
		stats, err = s.GetStats(gCtx)
		return err
	})

	// 2. Weekly trend
	g.Go(func() error {
		var err error
		trend, err = s.GetWeeklyTrend(gCtx)
		return err
	})

	// 3. Department breakdown
	g.Go(func() error {
		var err error
		departments, err = s.GetDepartmentBreakdown(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dashboard.DashboardResponse{
		Stats:       *stats,
		WeeklyTrend: trend,
		Departments: departments,
	}, nil
}

// GetStats implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetStats(ctx context.Context) (*dashboard.StatsResponse, error) {
	today := calendar.Today(s.clock)
	employees, todays, err := s.employeesAndRecords(ctx, today)
	if err != nil {
		return nil, err
	}

	stats := dashboard.BuildManagerStats(today, employees, todays)
	return &stats, nil
}

// GetWeeklyTrend implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetWeeklyTrend(ctx context.Context) ([]dashboard.TrendPoint, error) {
	days := calendar.LastNDays(s.clock.Now(), trendWindow)

	employees, err := s.userRepo.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	records, err := s.attendanceRepo.RangeAll(ctx, days[0], days[len(days)-1], nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance for trend: %w", err)
	}

	return dashboard.BuildWeeklyTrend(days, employees, records), nil
}

// GetDepartmentBreakdown implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetDepartmentBreakdown(ctx context.Context) ([]dashboard.DepartmentStatResponse, error) {
	employees, todays, err := s.employeesAndRecords(ctx, calendar.Today(s.clock))
	if err != nil {
		return nil, err
	}
	return dashboard.BuildDepartmentBreakdown(employees, todays), nil
}

// GetCalendar implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetCalendar(ctx context.Context, month string) (*dashboard.CalendarResponse, error) {
	first, err := ParseMonth(month, s.clock.Now())
	if err != nil {
		return nil, err
	}

	start, end := calendar.MonthBounds(first)
	records, err := s.attendanceRepo.RangeAll(ctx, start, end, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance for calendar: %w", err)
	}

	return &dashboard.CalendarResponse{
		Month: first.Format(calendar.MonthLayout),
		Days:  dashboard.BuildCalendar(calendar.DaysInMonth(first), records),
	}, nil
}

// GetEmployeeSummary implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetEmployeeSummary(ctx context.Context, userID, month string) (*dashboard.MonthlySummaryResponse, error) {
	first, err := ParseMonth(month, s.clock.Now())
	if err != nil {
		return nil, err
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	summary, err := MonthlySummary(ctx, s.attendanceRepo, u.ID, first)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// MonthlySummary loads one user's records for the month containing first
// and aggregates them.
func MonthlySummary(ctx context.Context, repo attendance.AttendanceRepository, userID string, first time.Time) (dashboard.MonthlySummaryResponse, error) {
	start, end := calendar.MonthBounds(first)
	records, err := repo.RangeByUser(ctx, userID, start, end)
	if err != nil {
		return dashboard.MonthlySummaryResponse{}, fmt.Errorf("failed to get monthly attendance: %w", err)
	}
	return dashboard.SummarizeMonth(first.Format(calendar.MonthLayout), records), nil
}

func (s *DashboardServiceImpl) employeesAndRecords(ctx context.Context, date string) ([]user.Profile, []attendance.Attendance, error) {
	employees, err := s.userRepo.ListEmployees(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list employees: %w", err)
	}
	records, err := s.attendanceRepo.ForDate(ctx, date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get attendance for %s: %w", date, err)
	}
	return employees, records, nil
}
