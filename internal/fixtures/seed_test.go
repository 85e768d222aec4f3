package fixtures

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/presence-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedDemoData(t *testing.T) {
	ctx := context.Background()
	// Monday
	clock := calendar.FixedClock(time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC))
	users := memory.NewUserRepository(clock)
	records := memory.NewAttendanceRepository(users, clock)

	seeded, err := SeedDemoData(ctx, users, records, clock)
	require.NoError(t, err)
	assert.Len(t, seeded.UserIDs, len(demoUsers))

	employees, err := users.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Len(t, employees, 5)

	manager, err := users.GetByEmail(ctx, "manager@presence.local")
	require.NoError(t, err)
	assert.Equal(t, user.RoleManager, manager.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(manager.PasswordHash), []byte(DemoPassword)))

	// 2024-05-11 .. 2024-06-09 holds 20 business days.
	assert.Equal(t, 5*20, seeded.Records)

	all, err := records.RangeAll(ctx, "2024-05-11", "2024-06-10", nil)
	require.NoError(t, err)
	assert.Len(t, all, seeded.Records)
	for _, rec := range all {
		assert.NotEqual(t, "2024-06-10", rec.Date)
		assert.True(t, rec.Status.Valid())
		if rec.Status == attendance.StatusAbsent {
			assert.Nil(t, rec.CheckInTime)
		} else {
			require.NotNil(t, rec.TotalHours)
		}
	}

	again, err := SeedDemoData(ctx, users, records, clock)
	require.NoError(t, err)
	assert.Zero(t, again.Records)
}

func TestDemoRecord(t *testing.T) {
	cases := []struct {
		seq    int
		status attendance.Status
		hours  string
	}{
		{0, attendance.StatusAbsent, ""},
		{1, attendance.StatusLate, "7.75"},
		{2, attendance.StatusHalfDay, "4.00"},
		{3, attendance.StatusHalfDay, "3.41"},
		{4, attendance.StatusPresent, "8.75"},
	}
	for _, tc := range cases {
		rec := demoRecord("u1", "2024-06-03", tc.seq)
		assert.Equal(t, tc.status, rec.Status, "seq %d", tc.seq)
		if tc.hours == "" {
			assert.Nil(t, rec.TotalHours)
			continue
		}
		require.NotNil(t, rec.TotalHours)
		assert.Equal(t, tc.hours, *rec.TotalHours)
	}
}
