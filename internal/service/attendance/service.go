package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/lock"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/sse"
)

// Live feed event names
const (
	EventCheckedIn  = "attendance.checked_in"
	EventCheckedOut = "attendance.checked_out"
)

// Publisher receives an event after every successful check-in or check-out.
type Publisher interface {
	Publish(topic string, event sse.Event)
}

type Option func(*AttendanceServiceImpl)

// WithPublisher streams check-in/check-out events to p.
func WithPublisher(p Publisher) Option {
	return func(s *AttendanceServiceImpl) { s.publisher = p }
}

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	userRepo  user.UserRepository
	clock     calendar.Clock
	locker    lock.Locker
	publisher Publisher
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	clock calendar.Clock,
	locker lock.Locker,
	opts ...Option,
) attendance.AttendanceService {
	s := &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		userRepo:             userRepo,
		clock:                clock,
		locker:               locker,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func lockKey(userID, date string) string {
	return "attendance:" + userID + ":" + date
}

// requireEmployee rejects callers that are not employees in the directory.
func (s *AttendanceServiceImpl) requireEmployee(ctx context.Context, userID string) (user.User, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, attendance.ErrUnauthorized
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	if u.Role != user.RoleEmployee {
		return user.User{}, user.ErrEmployeeAccessRequired
	}
	return u, nil
}

func (s *AttendanceServiceImpl) publish(name string, record attendance.Attendance, owner user.User) {
	if s.publisher == nil {
		return
	}
	profile := owner.Profile()
	record.User = &profile
	s.publisher.Publish(sse.TopicAttendance, sse.Event{Name: name, Data: attendance.NewAttendanceResponse(record)})
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, userID string) (attendance.AttendanceResponse, error) {
	owner, err := s.requireEmployee(ctx, userID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.clock.Now()
	date := calendar.FormatDate(now)

	unlock, err := s.locker.Lock(ctx, lockKey(userID, date))
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to lock attendance: %w", err)
	}
	defer unlock()

	record, err := s.AttendanceRepository.UpsertCheckIn(ctx, userID, date, attendance.TimeOfDayFrom(now))
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Checked in", "user_id", userID, "date", date, "status", record.Status)
	s.publish(EventCheckedIn, record, owner)
	return attendance.NewAttendanceResponse(record), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, userID string) (attendance.AttendanceResponse, error) {
	owner, err := s.requireEmployee(ctx, userID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.clock.Now()
	date := calendar.FormatDate(now)

	unlock, err := s.locker.Lock(ctx, lockKey(userID, date))
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to lock attendance: %w", err)
	}
	defer unlock()

	record, err := s.AttendanceRepository.ApplyCheckOut(ctx, userID, date, attendance.TimeOfDayFrom(now))
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Checked out", "user_id", userID, "date", date, "status", record.Status, "total_hours", record.TotalHours)
	s.publish(EventCheckedOut, record, owner)
	return attendance.NewAttendanceResponse(record), nil
}

// Today implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Today(ctx context.Context, userID string) (*attendance.AttendanceResponse, error) {
	record, err := s.AttendanceRepository.FindByUserAndDate(ctx, userID, calendar.Today(s.clock))
	if err != nil {
		return nil, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil {
		return nil, nil
	}
	resp := attendance.NewAttendanceResponse(*record)
	return &resp, nil
}

// History implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) History(ctx context.Context, userID string, filter attendance.HistoryFilter) ([]attendance.AttendanceResponse, error) {
	if filter.StartDate == "" && filter.EndDate == "" {
		filter.StartDate, filter.EndDate = calendar.MonthBounds(s.clock.Now())
	}
	if err := attendance.ValidateRange(filter.StartDate, filter.EndDate); err != nil {
		return nil, err
	}

	records, err := s.AttendanceRepository.RangeByUser(ctx, userID, filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance history: %w", err)
	}
	return attendance.NewAttendanceResponses(records), nil
}

// Get implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Get(ctx context.Context, id string, caller user.Identity) (attendance.AttendanceResponse, error) {
	record, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if !caller.IsManager() && record.UserID != caller.UserID {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
	}

	return attendance.NewAttendanceResponse(record), nil
}

// ForDate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ForDate(ctx context.Context, date string) ([]attendance.AttendanceResponse, error) {
	if date == "" {
		date = calendar.Today(s.clock)
	}
	if err := attendance.ValidateRange(date, date); err != nil {
		return nil, err
	}

	records, err := s.AttendanceRepository.ForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance for date: %w", err)
	}
	return attendance.NewAttendanceResponses(records), nil
}
