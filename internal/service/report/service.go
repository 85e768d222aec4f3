package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/export"
)

type ReportServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	clock          calendar.Clock
}

func NewReportService(attendanceRepo attendance.AttendanceRepository, clock calendar.Clock) report.ReportService {
	return &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		clock:          clock,
	}
}

// AttendanceReport generates the attendance report
func (s *ReportServiceImpl) AttendanceReport(ctx context.Context, req report.AttendanceReportRequest) (report.AttendanceReport, error) {
	if req.StartDate == "" && req.EndDate == "" {
		req.StartDate, req.EndDate = calendar.MonthBounds(s.clock.Now())
	}
	if err := req.Validate(); err != nil {
		return report.AttendanceReport{}, err
	}

	records, err := s.attendanceRepo.RangeAll(ctx, req.StartDate, req.EndDate, req.UserFilter())
	if err != nil {
		return report.AttendanceReport{}, fmt.Errorf("failed to get attendance data: %w", err)
	}

	employeeID := report.AllEmployees
	if f := req.UserFilter(); f != nil {
		employeeID = *f
	}

	return report.AttendanceReport{
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		EmployeeID:  employeeID,
		GeneratedAt: s.clock.Now().Format(time.RFC3339),
		Records:     attendance.NewAttendanceResponses(records),
		Summary:     report.Summarize(records),
	}, nil
}

// ExportAttendanceReport renders the attendance report as XLSX
func (s *ReportServiceImpl) ExportAttendanceReport(ctx context.Context, req report.AttendanceReportRequest) (string, []byte, error) {
	rep, err := s.AttendanceReport(ctx, req)
	if err != nil {
		return "", nil, err
	}

	content, err := export.AttendanceReportXLSX(rep)
	if err != nil {
		slog.Error("Failed to render attendance report", "start_date", rep.StartDate, "end_date", rep.EndDate, "error", err)
		return "", nil, errors.Join(report.ErrReportGenerationFailed, err)
	}

	return export.Filename(rep), content, nil
}
