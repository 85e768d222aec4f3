// Package export renders attendance reports as spreadsheets.
package export

import (
	"fmt"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const (
	RecordsSheet = "Records"
	SummarySheet = "Summary"

	// ContentTypeXLSX is the MIME type of the generated workbook.
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var recordHeaders = []string{
	"Date", "Employee Code", "Name", "Department", "Check In", "Check Out", "Status", "Total Hours",
}

// AttendanceReportXLSX writes rep to a workbook with a records sheet and a
// summary sheet.
func AttendanceReportXLSX(rep report.AttendanceReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", RecordsSheet); err != nil {
		return nil, fmt.Errorf("error renaming sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("error creating header style: %w", err)
	}

	// Records
	if err := writeRow(f, RecordsSheet, 1, toRow(recordHeaders)); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(RecordsSheet, "A1", "H1", headerStyle); err != nil {
		return nil, fmt.Errorf("error styling header: %w", err)
	}

	for i, rec := range rep.Records {
		var code, name, dept string
		if rec.User != nil {
			code, name, dept = rec.User.EmployeeCode, rec.User.Name, rec.User.Department
		}
		row := []interface{}{
			rec.Date,
			code,
			name,
			dept,
			deref(rec.CheckInTime),
			deref(rec.CheckOutTime),
			string(rec.Status),
			deref(rec.TotalHours),
		}
		if err := writeRow(f, RecordsSheet, i+2, row); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(RecordsSheet, "A", "H", 16); err != nil {
		return nil, fmt.Errorf("error setting column width: %w", err)
	}

	// Summary
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return nil, fmt.Errorf("error creating summary sheet: %w", err)
	}
	employee := rep.EmployeeID
	if employee == "" {
		employee = report.AllEmployees
	}
	summaryRows := [][]interface{}{
		{"Start Date", rep.StartDate},
		{"End Date", rep.EndDate},
		{"Employee", employee},
		{"Total Records", rep.Summary.TotalRecords},
		{"Present", rep.Summary.Present},
		{"Late", rep.Summary.Late},
		{"Half Day", rep.Summary.HalfDay},
		{"Absent", rep.Summary.Absent},
		{"Total Hours", rep.Summary.TotalHours},
	}
	for i, row := range summaryRows {
		if err := writeRow(f, SummarySheet, i+1, row); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(SummarySheet, "A1", fmt.Sprintf("A%d", len(summaryRows)), headerStyle); err != nil {
		return nil, fmt.Errorf("error styling summary: %w", err)
	}
	if err := f.SetColWidth(SummarySheet, "A", "B", 18); err != nil {
		return nil, fmt.Errorf("error setting column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename names the workbook after the report range.
func Filename(rep report.AttendanceReport) string {
	return fmt.Sprintf("attendance_%s_%s.xlsx", rep.StartDate, rep.EndDate)
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("error writing row %d of %s: %w", row, sheet, err)
	}
	return nil
}

func toRow(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
