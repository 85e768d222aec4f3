package fixtures

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/calendar"
	"golang.org/x/crypto/bcrypt"
)

// DemoPassword is shared by every seeded account.
const DemoPassword = "password123"

// HistoryDays is how far back seeded attendance reaches, excluding today.
const HistoryDays = 30

type demoUser struct {
	Name         string
	Email        string
	Role         user.Role
	EmployeeCode string
	Department   string
}

var demoUsers = []demoUser{
	{"Maya Putri", "manager@presence.local", user.RoleManager, "MGR0001", "Management"},
	{"Andi Saputra", "andi@presence.local", user.RoleEmployee, "EMP0001", "Engineering"},
	{"Budi Santoso", "budi@presence.local", user.RoleEmployee, "EMP0002", "Engineering"},
	{"Citra Lestari", "citra@presence.local", user.RoleEmployee, "EMP0003", "Sales"},
	{"Dewi Anggraini", "dewi@presence.local", user.RoleEmployee, "EMP0004", "Finance"},
	{"Eko Prasetyo", "eko@presence.local", user.RoleEmployee, "EMP0005", ""},
}

// SeededData reports what SeedDemoData wrote.
type SeededData struct {
	UserIDs map[string]string // email -> id
	Records int
}

// SeedDemoData creates the demo directory and a month of attendance history
// on business days. It is a no-op when the manager account already exists.
func SeedDemoData(ctx context.Context, users user.UserRepository, records attendance.AttendanceRepository, clock calendar.Clock) (*SeededData, error) {
	if _, err := users.GetByEmail(ctx, demoUsers[0].Email); err == nil {
		slog.Info("Demo data already present, skipping seed")
		return &SeededData{UserIDs: map[string]string{}}, nil
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check demo manager: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", err)
	}

	seeded := &SeededData{UserIDs: make(map[string]string, len(demoUsers))}
	var employees []user.User
	for _, du := range demoUsers {
		created, err := users.Create(ctx, user.User{
			Name:         du.Name,
			Email:        du.Email,
			PasswordHash: string(hash),
			Role:         du.Role,
			EmployeeCode: du.EmployeeCode,
			Department:   du.Department,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create demo user %s: %w", du.Email, err)
		}
		seeded.UserIDs[created.Email] = created.ID
		if created.Role == user.RoleEmployee {
			employees = append(employees, created)
		}
	}

	// LastNDays includes today; the live day is left for real check-ins.
	days := calendar.LastNDays(clock.Now(), HistoryDays+1)
	days = days[:len(days)-1]

	var history []attendance.Attendance
	for i, emp := range employees {
		for d, day := range days {
			date, err := calendar.ParseDate(day)
			if err != nil {
				return nil, err
			}
			if !calendar.IsBusinessDay(date) {
				continue
			}
			history = append(history, demoRecord(emp.ID, day, i*7+d))
		}
	}

	if err := records.Import(ctx, history); err != nil {
		return nil, fmt.Errorf("failed to import demo attendance: %w", err)
	}
	seeded.Records = len(history)

	slog.Info("Seeded demo data", "users", len(seeded.UserIDs), "attendance_records", seeded.Records)
	return seeded, nil
}

// demoRecord picks a deterministic day shape from seq and classifies it the
// same way a live check-in/check-out would.
func demoRecord(userID, date string, seq int) attendance.Attendance {
	var in, out string
	switch seq % 10 {
	case 0:
		return attendance.Attendance{UserID: userID, Date: date, Status: attendance.StatusAbsent}
	case 1:
		in, out = "10:15:00", "18:00:00"
	case 2:
		in, out = "12:30:00", "16:30:00"
	case 3:
		in, out = "09:20:00", "12:45:00"
	default:
		in, out = "08:45:00", "17:30:00"
	}

	checkIn, _ := attendance.ParseTimeOfDay(in)
	checkOut, _ := attendance.ParseTimeOfDay(out)
	hours := attendance.DeriveDuration(checkIn, checkOut)
	status := attendance.ReconcileStatusOnCheckout(attendance.DeriveCheckInStatus(checkIn), hours)
	total := hours.String()

	return attendance.Attendance{
		UserID:       userID,
		Date:         date,
		CheckInTime:  &in,
		CheckOutTime: &out,
		Status:       status,
		TotalHours:   &total,
	}
}
