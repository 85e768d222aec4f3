package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	// AttendanceReport filters records by range and optional employee
	AttendanceReport(ctx context.Context, req AttendanceReportRequest) (AttendanceReport, error)

	// ExportAttendanceReport renders the same report as an XLSX workbook
	ExportAttendanceReport(ctx context.Context, req AttendanceReportRequest) (filename string, content []byte, err error)
}
