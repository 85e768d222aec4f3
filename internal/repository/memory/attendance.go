package memory

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"sync"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/calendar"
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
)

type recordKey struct {
	userID string
	date   string
}

type attendanceRepository struct {
	users   user.UserRepository
	clock   calendar.Clock
	records *xsync.MapOf[recordKey, attendance.Attendance]
	byID    *xsync.MapOf[string, recordKey]
	index   *dateIndex
}

func NewAttendanceRepository(users user.UserRepository, clock calendar.Clock) attendance.AttendanceRepository {
	return &attendanceRepository{
		users:   users,
		clock:   clock,
		records: xsync.NewMapOf[recordKey, attendance.Attendance](),
		byID:    xsync.NewMapOf[string, recordKey](),
		index:   newDateIndex(),
	}
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	key, ok := r.byID.Load(id)
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	rec, ok := r.records.Load(key)
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return clone(rec), nil
}

// FindByUserAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) FindByUserAndDate(ctx context.Context, userID, date string) (*attendance.Attendance, error) {
	rec, ok := r.records.Load(recordKey{userID: userID, date: date})
	if !ok {
		return nil, nil
	}
	out := clone(rec)
	return &out, nil
}

// UpsertCheckIn implements attendance.AttendanceRepository.
func (r *attendanceRepository) UpsertCheckIn(ctx context.Context, userID, date string, checkIn attendance.TimeOfDay) (attendance.Attendance, error) {
	var (
		opErr   error
		created bool
	)
	key := recordKey{userID: userID, date: date}
	checkInStr := checkIn.String()
	status := attendance.DeriveCheckInStatus(checkIn)

	rec, _ := r.records.Compute(key, func(old attendance.Attendance, loaded bool) (attendance.Attendance, bool) {
		if loaded {
			if old.HasCheckedIn() {
				opErr = attendance.ErrAlreadyCheckedIn
				return old, false
			}
			// Placeholder written by an import: fill in the arrival.
			old.CheckInTime = &checkInStr
			old.Status = status
			return old, false
		}

		created = true
		return attendance.Attendance{
			ID:          uuid.Must(uuid.NewV7()).String(),
			UserID:      userID,
			Date:        date,
			CheckInTime: &checkInStr,
			Status:      status,
			CreatedAt:   r.clock.Now(),
		}, false
	})
	if opErr != nil {
		return attendance.Attendance{}, opErr
	}

	if created {
		r.byID.Store(rec.ID, key)
		r.index.add(userID, date)
	}
	return clone(rec), nil
}

// ApplyCheckOut implements attendance.AttendanceRepository.
func (r *attendanceRepository) ApplyCheckOut(ctx context.Context, userID, date string, checkOut attendance.TimeOfDay) (attendance.Attendance, error) {
	var opErr error
	key := recordKey{userID: userID, date: date}

	rec, _ := r.records.Compute(key, func(old attendance.Attendance, loaded bool) (attendance.Attendance, bool) {
		if !loaded {
			opErr = attendance.ErrNotCheckedIn
			return old, true
		}
		if !old.HasCheckedIn() {
			opErr = attendance.ErrNotCheckedIn
			return old, false
		}
		if old.HasCheckedOut() {
			opErr = attendance.ErrAlreadyCheckedOut
			return old, false
		}

		checkIn, err := attendance.ParseTimeOfDay(*old.CheckInTime)
		if err != nil {
			opErr = fmt.Errorf("stored check-in time is corrupt: %w", err)
			return old, false
		}
		hours := attendance.DeriveDuration(checkIn, checkOut)
		if hours < 0 {
			opErr = attendance.ErrCheckOutBeforeCheckIn
			return old, false
		}

		checkOutStr := checkOut.String()
		hoursStr := hours.String()
		old.CheckOutTime = &checkOutStr
		old.TotalHours = &hoursStr
		old.Status = attendance.ReconcileStatusOnCheckout(old.Status, hours)
		return old, false
	})
	if opErr != nil {
		return attendance.Attendance{}, opErr
	}
	return clone(rec), nil
}

// RangeByUser implements attendance.AttendanceRepository.
func (r *attendanceRepository) RangeByUser(ctx context.Context, userID, startDate, endDate string) ([]attendance.Attendance, error) {
	dates := r.index.userDates(userID, startDate, endDate)

	out := make([]attendance.Attendance, 0, len(dates))
	// Index is ascending; walk it backwards for newest first.
	for i := len(dates) - 1; i >= 0; i-- {
		if rec, ok := r.records.Load(recordKey{userID: userID, date: dates[i]}); ok {
			out = append(out, clone(rec))
		}
	}
	return out, nil
}

// RangeAll implements attendance.AttendanceRepository.
func (r *attendanceRepository) RangeAll(ctx context.Context, startDate, endDate string, userID *string) ([]attendance.Attendance, error) {
	if userID != nil {
		records, err := r.RangeByUser(ctx, *userID, startDate, endDate)
		if err != nil {
			return nil, err
		}
		r.join(ctx, records)
		return records, nil
	}

	var out []attendance.Attendance
	for _, day := range r.index.datesBetween(startDate, endDate) {
		out = append(out, r.collectDate(day)...)
	}
	r.join(ctx, out)
	return out, nil
}

// ForDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) ForDate(ctx context.Context, date string) ([]attendance.Attendance, error) {
	out := r.collectDate(date)
	r.join(ctx, out)
	return out, nil
}

// Import implements attendance.AttendanceRepository.
func (r *attendanceRepository) Import(ctx context.Context, records []attendance.Attendance) error {
	for _, rec := range records {
		if rec.UserID == "" || rec.Date == "" {
			return fmt.Errorf("import: record requires user id and date")
		}
		if !rec.Status.Valid() {
			return fmt.Errorf("import: invalid status %q for %s on %s", rec.Status, rec.UserID, rec.Date)
		}
		if rec.ID == "" {
			rec.ID = uuid.Must(uuid.NewV7()).String()
		}
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = r.clock.Now()
		}
		rec.User = nil

		key := recordKey{userID: rec.UserID, date: rec.Date}
		stored := clone(rec)
		var replacedID string
		r.records.Compute(key, func(old attendance.Attendance, loaded bool) (attendance.Attendance, bool) {
			if loaded {
				replacedID = old.ID
			}
			return stored, false
		})
		if replacedID != "" && replacedID != stored.ID {
			r.byID.Delete(replacedID)
		}
		r.byID.Store(stored.ID, key)
		r.index.add(rec.UserID, rec.Date)
	}
	return nil
}

// collectDate loads the records of one date in insertion order.
func (r *attendanceRepository) collectDate(date string) []attendance.Attendance {
	userIDs := r.index.usersOn(date)
	out := make([]attendance.Attendance, 0, len(userIDs))
	for _, id := range userIDs {
		if rec, ok := r.records.Load(recordKey{userID: id, date: date}); ok {
			out = append(out, clone(rec))
		}
	}
	return out
}

// join attaches owner profiles. A failed or partial lookup leaves User nil;
// records are never dropped.
func (r *attendanceRepository) join(ctx context.Context, records []attendance.Attendance) {
	if len(records) == 0 {
		return
	}
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.UserID)
	}
	profiles, err := r.users.ListProfiles(ctx, ids)
	if err != nil {
		slog.Warn("attendance join: user lookup failed", "error", err)
		return
	}
	for i := range records {
		if p, ok := profiles[records[i].UserID]; ok {
			records[i].User = &p
		}
	}
}

func clone(a attendance.Attendance) attendance.Attendance {
	out := a
	out.CheckInTime = copyStr(a.CheckInTime)
	out.CheckOutTime = copyStr(a.CheckOutTime)
	out.TotalHours = copyStr(a.TotalHours)
	if a.User != nil {
		p := *a.User
		out.User = &p
	}
	return out
}

func copyStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// dateIndex keeps sorted secondary indexes over record keys so range
// queries binary-search instead of scanning every record.
type dateIndex struct {
	mu     sync.RWMutex
	byUser map[string][]string // user id -> ascending dates
	byDate map[string][]string // date -> user ids in insertion order
	dates  []string            // ascending distinct dates
}

func newDateIndex() *dateIndex {
	return &dateIndex{
		byUser: make(map[string][]string),
		byDate: make(map[string][]string),
	}
}

func (x *dateIndex) add(userID, date string) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if dates, inserted := insertSorted(x.byUser[userID], date); inserted {
		x.byUser[userID] = dates
		x.byDate[date] = append(x.byDate[date], userID)
		x.dates, _ = insertSorted(x.dates, date)
	}
}

func (x *dateIndex) userDates(userID, start, end string) []string {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return slices.Clone(between(x.byUser[userID], start, end))
}

func (x *dateIndex) datesBetween(start, end string) []string {
	x.mu.RLock()
	defer x.mu.RUnlock()
	// Newest first.
	out := slices.Clone(between(x.dates, start, end))
	slices.Reverse(out)
	return out
}

func (x *dateIndex) usersOn(date string) []string {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return slices.Clone(x.byDate[date])
}

// insertSorted inserts v into the ascending slice s unless already present.
func insertSorted(s []string, v string) ([]string, bool) {
	i := sort.SearchStrings(s, v)
	if i < len(s) && s[i] == v {
		return s, false
	}
	return slices.Insert(s, i, v), true
}

// between returns the sub-slice of ascending s within [start, end].
func between(s []string, start, end string) []string {
	lo := sort.SearchStrings(s, start)
	hi := sort.Search(len(s), func(i int) bool { return s[i] > end })
	if lo >= hi {
		return nil
	}
	return s[lo:hi]
}
