package employee_dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/presence-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (attendance.AttendanceRepository, *EmployeeDashboardServiceImpl) {
	t.Helper()
	clock := calendar.FixedClock(time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC))
	users := memory.NewUserRepository(clock)
	repo := memory.NewAttendanceRepository(users, clock)
	svc := NewEmployeeDashboardService(repo, clock).(*EmployeeDashboardServiceImpl)
	return repo, svc
}

func importRecords(t *testing.T, repo attendance.AttendanceRepository, userID string, entries map[string]attendance.Status) {
	t.Helper()
	var records []attendance.Attendance
	for date, status := range entries {
		in, hours := "09:00:00", "8.00"
		records = append(records, attendance.Attendance{
			UserID: userID, Date: date, Status: status, CheckInTime: &in, TotalHours: &hours,
		})
	}
	require.NoError(t, repo.Import(context.Background(), records))
}

func TestGetDashboard_NoRecords(t *testing.T) {
	_, svc := setup(t)

	got, err := svc.GetDashboard(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-10", got.Date)
	assert.Nil(t, got.Today)
	assert.Equal(t, dashboard.MonthlySummaryResponse{Month: "2024-06"}, got.Summary)
	assert.NotNil(t, got.Recent)
	assert.Empty(t, got.Recent)
}

func TestGetDashboard(t *testing.T) {
	repo, svc := setup(t)
	importRecords(t, repo, "u1", map[string]attendance.Status{
		"2024-06-10": attendance.StatusPresent,
		"2024-06-07": attendance.StatusLate,
		"2024-06-01": attendance.StatusPresent, // in month, outside recent window
		"2024-05-31": attendance.StatusPresent, // previous month
	})

	got, err := svc.GetDashboard(context.Background(), "u1")
	require.NoError(t, err)

	require.NotNil(t, got.Today)
	assert.Equal(t, "2024-06-10", got.Today.Date)

	assert.Equal(t, 2, got.Summary.PresentDays)
	assert.Equal(t, 1, got.Summary.LateDays)
	assert.Equal(t, 24.0, got.Summary.TotalHours)

	require.Len(t, got.Recent, 2)
	assert.Equal(t, "2024-06-10", got.Recent[0].Date)
	assert.Equal(t, "2024-06-07", got.Recent[1].Date)
}

func TestGetMonthlySummary(t *testing.T) {
	repo, svc := setup(t)
	importRecords(t, repo, "u1", map[string]attendance.Status{
		"2024-05-02": attendance.StatusHalfDay,
		"2024-05-03": attendance.StatusAbsent,
	})

	got, err := svc.GetMonthlySummary(context.Background(), "u1", "2024-05")
	require.NoError(t, err)
	assert.Equal(t, "2024-05", got.Month)
	assert.Equal(t, 1, got.HalfDays)
	assert.Equal(t, 1, got.AbsentDays)
	assert.Equal(t, 16.0, got.TotalHours)

	_, err = svc.GetMonthlySummary(context.Background(), "u1", "2024-13")
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}
