package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/lock"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/presence-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualClock is a settable clock.
type manualClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *manualClock) Set(hhmmss string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tod, err := time.Parse("15:04:05", hhmmss)
	if err != nil {
		panic(err)
	}
	y, m, d := c.t.Date()
	c.t = time.Date(y, m, d, tod.Hour(), tod.Minute(), tod.Second(), 0, time.UTC)
}

type fixture struct {
	clock   *manualClock
	users   user.UserRepository
	service attendance.AttendanceService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := &manualClock{t: time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)}
	users := memory.NewUserRepository(clock)
	repo := memory.NewAttendanceRepository(users, clock)
	return &fixture{
		clock:   clock,
		users:   users,
		service: NewAttendanceService(repo, users, clock, lock.NewStripedLocker(16)),
	}
}

func (f *fixture) addUser(t *testing.T, name, code string, role user.Role) user.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), user.User{
		Name:         name,
		Email:        code + "@example.com",
		PasswordHash: "x",
		Role:         role,
		EmployeeCode: code,
		Department:   "Engineering",
	})
	require.NoError(t, err)
	return u
}

func TestCheckInCheckOut_FullDay(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.addUser(t, "Ana", "EMP0001", user.RoleEmployee)

	f.clock.Set("09:15:00")
	rec, err := f.service.CheckIn(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, rec.Status)
	assert.Equal(t, "2024-06-10", rec.Date)
	assert.Equal(t, "09:15:00", *rec.CheckInTime)
	assert.Nil(t, rec.CheckOutTime)

	f.clock.Set("17:00:00")
	rec, err = f.service.CheckOut(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "7.75", *rec.TotalHours)
	assert.Equal(t, attendance.StatusPresent, rec.Status)

	f.clock.Set("17:05:00")
	_, err = f.service.CheckOut(ctx, a.ID)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCheckInCheckOut_LateShortDay(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := f.addUser(t, "Ben", "EMP0002", user.RoleEmployee)

	f.clock.Set("11:00:00")
	rec, err := f.service.CheckIn(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, rec.Status)

	f.clock.Set("12:30:00")
	rec, err = f.service.CheckOut(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "1.50", *rec.TotalHours)
	assert.Equal(t, attendance.StatusHalfDay, rec.Status)
}

func TestCheckIn_Twice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.addUser(t, "Ana", "EMP0001", user.RoleEmployee)

	f.clock.Set("09:00:00")
	_, err := f.service.CheckIn(ctx, a.ID)
	require.NoError(t, err)
	_, err = f.service.CheckIn(ctx, a.ID)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckOut_WithoutCheckIn(t *testing.T) {
	f := newFixture(t)
	a := f.addUser(t, "Ana", "EMP0001", user.RoleEmployee)

	_, err := f.service.CheckOut(context.Background(), a.ID)
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckIn_ManagerRejected(t *testing.T) {
	f := newFixture(t)
	m := f.addUser(t, "Boss", "MGR0001", user.RoleManager)

	_, err := f.service.CheckIn(context.Background(), m.ID)
	assert.ErrorIs(t, err, user.ErrEmployeeAccessRequired)
}

func TestCheckIn_ConcurrentRequests(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.addUser(t, "Ana", "EMP0001", user.RoleEmployee)
	f.clock.Set("09:00:00")

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.service.CheckIn(ctx, a.ID); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, successes)
}

func TestToday(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.addUser(t, "Ana", "EMP0001", user.RoleEmployee)

	rec, err := f.service.Today(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, rec)

	f.clock.Set("09:45:00")
	_, err = f.service.CheckIn(ctx, a.ID)
	require.NoError(t, err)

	rec, err = f.service.Today(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, attendance.StatusLate, rec.Status)
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.addUser(t, "Ana", "EMP0001", user.RoleEmployee)

	f.clock.Set("09:00:00")
	_, err := f.service.CheckIn(ctx, a.ID)
	require.NoError(t, err)

	// Defaults to the current month.
	recs, err := f.service.History(ctx, a.ID, attendance.HistoryFilter{})
	require.NoError(t, err)
	assert.Len(t, recs, 1)

	recs, err = f.service.History(ctx, a.ID, attendance.HistoryFilter{StartDate: "2024-05-01", EndDate: "2024-05-31"})
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)

	_, err = f.service.History(ctx, a.ID, attendance.HistoryFilter{StartDate: "2024-06-30", EndDate: "2024-06-01"})
	assert.ErrorIs(t, err, attendance.ErrInvalidRange)

	_, err = f.service.History(ctx, a.ID, attendance.HistoryFilter{StartDate: "2024-06-01"})
	assert.ErrorIs(t, err, attendance.ErrInvalidRange)
}

func TestGet_AccessControl(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.addUser(t, "Ana", "EMP0001", user.RoleEmployee)
	b := f.addUser(t, "Ben", "EMP0002", user.RoleEmployee)
	m := f.addUser(t, "Boss", "MGR0001", user.RoleManager)

	f.clock.Set("09:00:00")
	rec, err := f.service.CheckIn(ctx, a.ID)
	require.NoError(t, err)

	got, err := f.service.Get(ctx, rec.ID, user.Identity{UserID: a.ID, Role: user.RoleEmployee})
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)

	_, err = f.service.Get(ctx, rec.ID, user.Identity{UserID: b.ID, Role: user.RoleEmployee})
	assert.ErrorIs(t, err, attendance.ErrUnauthorized)

	_, err = f.service.Get(ctx, rec.ID, user.Identity{UserID: m.ID, Role: user.RoleManager})
	assert.NoError(t, err)

	_, err = f.service.Get(ctx, "missing", user.Identity{UserID: m.ID, Role: user.RoleManager})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestForDate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.addUser(t, "Ana", "EMP0001", user.RoleEmployee)

	f.clock.Set("09:00:00")
	_, err := f.service.CheckIn(ctx, a.ID)
	require.NoError(t, err)

	recs, err := f.service.ForDate(ctx, "2024-06-10")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.NotNil(t, recs[0].User)
	assert.Equal(t, "Ana", recs[0].User.Name)

	_, err = f.service.ForDate(ctx, "10-06-2024")
	assert.ErrorIs(t, err, attendance.ErrInvalidRange)
}

func TestCheckInCheckOut_PublishesEvents(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	hub := sse.NewHub()
	repo := memory.NewAttendanceRepository(f.users, f.clock)
	svc := NewAttendanceService(repo, f.users, f.clock, lock.NewStripedLocker(16), WithPublisher(hub))
	a := f.addUser(t, "Ana", "EMP0001", user.RoleEmployee)

	events, cancel := hub.Subscribe(sse.TopicAttendance)
	defer cancel()

	f.clock.Set("09:00:00")
	_, err := svc.CheckIn(ctx, a.ID)
	require.NoError(t, err)

	// Failed transitions publish nothing.
	_, err = svc.CheckIn(ctx, a.ID)
	require.Error(t, err)

	f.clock.Set("17:00:00")
	_, err = svc.CheckOut(ctx, a.ID)
	require.NoError(t, err)

	require.Len(t, events, 2)
	first := <-events
	assert.Equal(t, EventCheckedIn, first.Name)
	rec, ok := first.Data.(attendance.AttendanceResponse)
	require.True(t, ok)
	require.NotNil(t, rec.User)
	assert.Equal(t, "Ana", rec.User.Name)
	assert.Equal(t, EventCheckedOut, (<-events).Name)
}
