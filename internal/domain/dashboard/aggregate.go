package dashboard

import (
	"sort"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/user"
)

// AbsencePolicy says whether a metric treats an employee with no record for
// a day as absent. An explicit absent record always counts.
type AbsencePolicy int

const (
	// ExplicitAbsenceOnly counts stored absent records only.
	ExplicitAbsenceOnly AbsencePolicy = iota
	// FoldMissingRecords also counts every employee without a record.
	FoldMissingRecords
)

// Policies of each metric. They differ on purpose and must not be unified.
const (
	MonthlySummaryPolicy      = ExplicitAbsenceOnly
	CalendarPolicy            = ExplicitAbsenceOnly
	WeeklyTrendPolicy         = FoldMissingRecords
	DepartmentBreakdownPolicy = FoldMissingRecords
	ManagerStatsPolicy        = FoldMissingRecords
)

// UnassignedDepartment labels employees with an empty department.
const UnassignedDepartment = "Unassigned"

func (p AbsencePolicy) absent(explicit, missing int) int {
	if p == FoldMissingRecords {
		return explicit + missing
	}
	return explicit
}

// SummarizeMonth aggregates one user's records for a month.
func SummarizeMonth(month string, records []attendance.Attendance) MonthlySummaryResponse {
	out := MonthlySummaryResponse{Month: month}
	var hours attendance.Hours
	explicitAbsent := 0
	for i := range records {
		switch records[i].Status {
		case attendance.StatusPresent:
			out.PresentDays++
		case attendance.StatusAbsent:
			explicitAbsent++
		case attendance.StatusLate:
			out.LateDays++
		case attendance.StatusHalfDay:
			out.HalfDays++
		}
		hours += attendance.HoursOf(records[i].TotalHours)
	}
	out.AbsentDays = MonthlySummaryPolicy.absent(explicitAbsent, 0)
	out.TotalHours = hours.Float64()
	return out
}

// BuildCalendar returns one entry per day, in the order given, with the
// records of that day.
func BuildCalendar(days []string, records []attendance.Attendance) []CalendarDay {
	byDate := groupByDate(records)
	out := make([]CalendarDay, 0, len(days))
	for _, day := range days {
		recs := byDate[day]
		entry := CalendarDay{
			Date:    day,
			Total:   len(recs),
			Records: attendance.NewAttendanceResponses(recs),
		}
		explicitAbsent := 0
		for i := range recs {
			switch recs[i].Status {
			case attendance.StatusPresent:
				entry.Present++
			case attendance.StatusAbsent:
				explicitAbsent++
			case attendance.StatusLate:
				entry.Late++
			case attendance.StatusHalfDay:
				entry.HalfDay++
			}
		}
		entry.Absent = CalendarPolicy.absent(explicitAbsent, 0)
		out = append(out, entry)
	}
	return out
}

// BuildWeeklyTrend computes present, late and absent counts for each day.
// Employees without a record that day are folded into absent.
func BuildWeeklyTrend(days []string, employees []user.Profile, records []attendance.Attendance) []TrendPoint {
	byDate := groupByDate(ownedBy(employees, records))
	out := make([]TrendPoint, 0, len(days))
	for _, day := range days {
		recs := byDate[day]
		point := TrendPoint{Date: day}
		explicitAbsent := 0
		for i := range recs {
			switch recs[i].Status {
			case attendance.StatusPresent:
				point.Present++
			case attendance.StatusLate:
				point.Late++
			case attendance.StatusAbsent:
				explicitAbsent++
			}
		}
		point.Absent = WeeklyTrendPolicy.absent(explicitAbsent, len(employees)-len(recs))
		out = append(out, point)
	}
	return out
}

// BuildDepartmentBreakdown splits one day's attendance by department. Any
// non-absent record counts as present.
func BuildDepartmentBreakdown(employees []user.Profile, todays []attendance.Attendance) []DepartmentStatResponse {
	stats := make(map[string]*DepartmentStatResponse)
	deptOf := make(map[string]string, len(employees))
	for _, e := range employees {
		dept := departmentLabel(e.Department)
		deptOf[e.ID] = dept
		if _, ok := stats[dept]; !ok {
			stats[dept] = &DepartmentStatResponse{Department: dept}
		}
	}

	hasRecord := make(map[string]bool, len(todays))
	explicitAbsent := make(map[string]int)
	missing := make(map[string]int)
	for _, rec := range ownedBy(employees, todays) {
		hasRecord[rec.UserID] = true
		dept := deptOf[rec.UserID]
		if rec.Status == attendance.StatusAbsent {
			explicitAbsent[dept]++
		} else {
			stats[dept].Present++
		}
	}
	for _, e := range employees {
		if !hasRecord[e.ID] {
			missing[deptOf[e.ID]]++
		}
	}

	out := make([]DepartmentStatResponse, 0, len(stats))
	for dept, s := range stats {
		s.Absent = DepartmentBreakdownPolicy.absent(explicitAbsent[dept], missing[dept])
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Department < out[j].Department })
	return out
}

// BuildManagerStats summarizes one day for the manager dashboard.
func BuildManagerStats(date string, employees []user.Profile, todays []attendance.Attendance) StatsResponse {
	out := StatsResponse{
		Date:           date,
		TotalEmployees: len(employees),
	}

	hasRecord := make(map[string]bool, len(todays))
	explicitAbsent := 0
	for _, rec := range ownedBy(employees, todays) {
		hasRecord[rec.UserID] = true
		switch rec.Status {
		case attendance.StatusAbsent:
			explicitAbsent++
		case attendance.StatusLate:
			out.LateToday++
			out.PresentToday++
		case attendance.StatusPresent, attendance.StatusHalfDay:
			out.PresentToday++
		}
	}

	var noRecord []user.Profile
	for _, e := range employees {
		if !hasRecord[e.ID] {
			noRecord = append(noRecord, e)
		}
	}
	out.AbsentToday = ManagerStatsPolicy.absent(explicitAbsent, len(noRecord))
	out.AbsentEmployees = user.NewProfileResponses(noRecord)
	return out
}

// ownedBy keeps records whose owner is one of employees.
func ownedBy(employees []user.Profile, records []attendance.Attendance) []attendance.Attendance {
	ids := make(map[string]struct{}, len(employees))
	for _, e := range employees {
		ids[e.ID] = struct{}{}
	}
	out := make([]attendance.Attendance, 0, len(records))
	for _, rec := range records {
		if _, ok := ids[rec.UserID]; ok {
			out = append(out, rec)
		}
	}
	return out
}

func groupByDate(records []attendance.Attendance) map[string][]attendance.Attendance {
	out := make(map[string][]attendance.Attendance)
	for _, rec := range records {
		out[rec.Date] = append(out[rec.Date], rec)
	}
	return out
}

func departmentLabel(dept string) string {
	if dept == "" {
		return UnassignedDepartment
	}
	return dept
}
