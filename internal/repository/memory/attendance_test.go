package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testClock = calendar.FixedClock(time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC))

func setupStore(t *testing.T) (user.UserRepository, attendance.AttendanceRepository) {
	t.Helper()
	users := NewUserRepository(testClock)
	return users, NewAttendanceRepository(users, testClock)
}

func createEmployee(t *testing.T, users user.UserRepository, name, code, dept string) user.User {
	t.Helper()
	u, err := users.Create(context.Background(), user.User{
		Name:         name,
		Email:        code + "@example.com",
		PasswordHash: "x",
		Role:         user.RoleEmployee,
		EmployeeCode: code,
		Department:   dept,
	})
	require.NoError(t, err)
	return u
}

func tod(t *testing.T, s string) attendance.TimeOfDay {
	t.Helper()
	v, err := attendance.ParseTimeOfDay(s)
	require.NoError(t, err)
	return v
}

func TestAttendanceRepository_CheckInThenCheckOut(t *testing.T) {
	ctx := context.Background()
	users, repo := setupStore(t)
	u := createEmployee(t, users, "Ana", "EMP0001", "Engineering")

	rec, err := repo.UpsertCheckIn(ctx, u.ID, "2024-06-10", tod(t, "09:00:00"))
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, attendance.StatusPresent, rec.Status)
	require.NotNil(t, rec.CheckInTime)
	assert.Equal(t, "09:00:00", *rec.CheckInTime)
	assert.Nil(t, rec.CheckOutTime)
	assert.Nil(t, rec.TotalHours)

	rec, err = repo.ApplyCheckOut(ctx, u.ID, "2024-06-10", tod(t, "17:30:00"))
	require.NoError(t, err)
	require.NotNil(t, rec.TotalHours)
	assert.Equal(t, "8.50", *rec.TotalHours)
	assert.Equal(t, "17:30:00", *rec.CheckOutTime)
	assert.Equal(t, attendance.StatusPresent, rec.Status)

	byID, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, byID.ID)
	assert.Equal(t, "8.50", *byID.TotalHours)
}

func TestAttendanceRepository_ShortLateDayBecomesHalfDay(t *testing.T) {
	ctx := context.Background()
	users, repo := setupStore(t)
	u := createEmployee(t, users, "Ben", "EMP0002", "Sales")

	rec, err := repo.UpsertCheckIn(ctx, u.ID, "2024-06-10", tod(t, "11:00:00"))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, rec.Status)

	rec, err = repo.ApplyCheckOut(ctx, u.ID, "2024-06-10", tod(t, "12:30:00"))
	require.NoError(t, err)
	assert.Equal(t, "1.50", *rec.TotalHours)
	assert.Equal(t, attendance.StatusHalfDay, rec.Status)
}

func TestAttendanceRepository_DuplicateTransitions(t *testing.T) {
	ctx := context.Background()
	users, repo := setupStore(t)
	u := createEmployee(t, users, "Cy", "EMP0003", "Sales")

	_, err := repo.ApplyCheckOut(ctx, u.ID, "2024-06-10", tod(t, "17:00:00"))
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)

	found, err := repo.FindByUserAndDate(ctx, u.ID, "2024-06-10")
	require.NoError(t, err)
	assert.Nil(t, found, "failed checkout must not create a record")

	_, err = repo.UpsertCheckIn(ctx, u.ID, "2024-06-10", tod(t, "09:00:00"))
	require.NoError(t, err)
	_, err = repo.UpsertCheckIn(ctx, u.ID, "2024-06-10", tod(t, "09:05:00"))
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	_, err = repo.ApplyCheckOut(ctx, u.ID, "2024-06-10", tod(t, "08:00:00"))
	assert.ErrorIs(t, err, attendance.ErrCheckOutBeforeCheckIn)

	_, err = repo.ApplyCheckOut(ctx, u.ID, "2024-06-10", tod(t, "17:00:00"))
	require.NoError(t, err)
	_, err = repo.ApplyCheckOut(ctx, u.ID, "2024-06-10", tod(t, "18:00:00"))
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)

	found, err = repo.FindByUserAndDate(ctx, u.ID, "2024-06-10")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "17:00:00", *found.CheckOutTime)
}

func TestAttendanceRepository_ConcurrentCheckIn(t *testing.T) {
	ctx := context.Background()
	users, repo := setupStore(t)
	u := createEmployee(t, users, "Dee", "EMP0004", "Ops")

	const workers = 32
	at := tod(t, "09:00:00")
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.UpsertCheckIn(ctx, u.ID, "2024-06-10", at)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn) {
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)

	records, err := repo.RangeByUser(ctx, u.ID, "2024-06-01", "2024-06-30")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestAttendanceRepository_RangesAreInclusiveAndNewestFirst(t *testing.T) {
	ctx := context.Background()
	users, repo := setupStore(t)
	a := createEmployee(t, users, "Ana", "EMP0001", "Engineering")
	b := createEmployee(t, users, "Ben", "EMP0002", "Sales")

	// Inserted out of order on purpose.
	for _, d := range []string{"2024-06-05", "2024-05-31", "2024-06-01", "2024-06-30", "2024-07-01"} {
		_, err := repo.UpsertCheckIn(ctx, a.ID, d, tod(t, "09:00:00"))
		require.NoError(t, err)
	}
	_, err := repo.UpsertCheckIn(ctx, b.ID, "2024-06-05", tod(t, "10:00:00"))
	require.NoError(t, err)

	mine, err := repo.RangeByUser(ctx, a.ID, "2024-06-01", "2024-06-30")
	require.NoError(t, err)
	var dates []string
	for _, r := range mine {
		dates = append(dates, r.Date)
		assert.Nil(t, r.User, "RangeByUser does not join")
	}
	assert.Equal(t, []string{"2024-06-30", "2024-06-05", "2024-06-01"}, dates)

	all, err := repo.RangeAll(ctx, "2024-06-01", "2024-06-30", nil)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].Date, all[i].Date)
	}
	for _, r := range all {
		require.NotNil(t, r.User)
		assert.Equal(t, r.UserID, r.User.ID)
	}

	onlyB, err := repo.RangeAll(ctx, "2024-06-01", "2024-06-30", &b.ID)
	require.NoError(t, err)
	require.Len(t, onlyB, 1)
	assert.Equal(t, "Ben", onlyB[0].User.Name)

	empty, err := repo.RangeByUser(ctx, a.ID, "2024-08-01", "2024-08-31")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestAttendanceRepository_ForDateKeepsRecordsOfUnknownUsers(t *testing.T) {
	ctx := context.Background()
	users, repo := setupStore(t)
	a := createEmployee(t, users, "Ana", "EMP0001", "Engineering")

	_, err := repo.UpsertCheckIn(ctx, a.ID, "2024-06-10", tod(t, "09:00:00"))
	require.NoError(t, err)
	_, err = repo.UpsertCheckIn(ctx, "ghost", "2024-06-10", tod(t, "09:10:00"))
	require.NoError(t, err)

	records, err := repo.ForDate(ctx, "2024-06-10")
	require.NoError(t, err)
	require.Len(t, records, 2)

	byUser := map[string]attendance.Attendance{}
	for _, r := range records {
		byUser[r.UserID] = r
	}
	assert.NotNil(t, byUser[a.ID].User)
	assert.Nil(t, byUser["ghost"].User)
}

func TestAttendanceRepository_ReturnedRecordsAreCopies(t *testing.T) {
	ctx := context.Background()
	users, repo := setupStore(t)
	a := createEmployee(t, users, "Ana", "EMP0001", "Engineering")

	rec, err := repo.UpsertCheckIn(ctx, a.ID, "2024-06-10", tod(t, "09:00:00"))
	require.NoError(t, err)
	*rec.CheckInTime = "23:59:59"

	again, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "09:00:00", *again.CheckInTime)
}

func TestAttendanceRepository_Import(t *testing.T) {
	ctx := context.Background()
	users, repo := setupStore(t)
	a := createEmployee(t, users, "Ana", "EMP0001", "Engineering")

	in, out, hours := "09:00:00", "17:00:00", "8.00"
	err := repo.Import(ctx, []attendance.Attendance{
		{UserID: a.ID, Date: "2024-06-07", CheckInTime: &in, CheckOutTime: &out, TotalHours: &hours, Status: attendance.StatusPresent},
		{UserID: a.ID, Date: "2024-06-10", Status: attendance.StatusAbsent},
	})
	require.NoError(t, err)

	// An imported placeholder without a check-in accepts the arrival.
	rec, err := repo.UpsertCheckIn(ctx, a.ID, "2024-06-10", tod(t, "10:00:00"))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, rec.Status)

	records, err := repo.RangeByUser(ctx, a.ID, "2024-06-01", "2024-06-30")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2024-06-10", records[0].Date)

	// Re-importing the same key replaces the record and its id.
	err = repo.Import(ctx, []attendance.Attendance{{ID: "fixed-id", UserID: a.ID, Date: "2024-06-07", Status: attendance.StatusAbsent}})
	require.NoError(t, err)
	got, err := repo.GetByID(ctx, "fixed-id")
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, got.Status)
	_, err = repo.GetByID(ctx, records[1].ID)
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	err = repo.Import(ctx, []attendance.Attendance{{UserID: a.ID, Date: "2024-06-11", Status: "sick"}})
	assert.Error(t, err)
}

func TestAttendanceRepository_GetByIDNotFound(t *testing.T) {
	_, repo := setupStore(t)
	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}
