package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `
	a.id::text, a.user_id::text, to_char(a.date, 'YYYY-MM-DD'),
	to_char(a.check_in_time, 'HH24:MI:SS'), to_char(a.check_out_time, 'HH24:MI:SS'),
	a.status, a.total_hours::text, a.created_at`

// Owner columns come from a LEFT JOIN, so records without a directory entry
// scan with a nil profile.
const joinedColumns = attendanceColumns + `,
	u.id::text, u.name, u.email, u.role, u.employee_code, u.department, u.created_at`

const joinedFrom = `FROM attendances a LEFT JOIN users u ON u.id = a.user_id`

const orderNewestFirst = `ORDER BY a.date DESC, a.created_at, a.id`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Date,
		&a.CheckInTime,
		&a.CheckOutTime,
		&a.Status,
		&a.TotalHours,
		&a.CreatedAt,
	)
	return a, err
}

func scanJoinedAttendance(row pgx.Row) (attendance.Attendance, error) {
	var (
		a            attendance.Attendance
		ownerID      *string
		name         *string
		email        *string
		role         *string
		employeeCode *string
		department   *string
		createdAt    *time.Time
	)
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Date,
		&a.CheckInTime,
		&a.CheckOutTime,
		&a.Status,
		&a.TotalHours,
		&a.CreatedAt,
		&ownerID,
		&name,
		&email,
		&role,
		&employeeCode,
		&department,
		&createdAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}

	if ownerID != nil {
		a.User = &user.Profile{
			ID:           *ownerID,
			Name:         deref(name),
			Email:        deref(email),
			Role:         user.Role(deref(role)),
			EmployeeCode: deref(employeeCode),
			Department:   deref(department),
		}
		if createdAt != nil {
			a.User.CreatedAt = *createdAt
		}
	}
	return a, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r *attendanceRepository) queryJoined(ctx context.Context, op, query string, args ...interface{}) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageError(op, err)
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		rec, err := scanJoinedAttendance(rows)
		if err != nil {
			return nil, storageError(op, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(op, err)
	}
	return records, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	if _, err := uuid.Parse(id); err != nil {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}

	rec, err := scanJoinedAttendance(q.QueryRow(ctx, `SELECT `+joinedColumns+` `+joinedFrom+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, storageError("get attendance by id", err)
	}
	return rec, nil
}

// FindByUserAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) FindByUserAndDate(ctx context.Context, userID, date string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances a WHERE a.user_id = $1 AND a.date = $2::date`
	rec, err := scanAttendance(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageError("find attendance", err)
	}
	return &rec, nil
}

// UpsertCheckIn implements attendance.AttendanceRepository.
//
// The conflict branch only fires for rows without a check-in, so a
// concurrent second check-in returns no row instead of overwriting.
func (r *attendanceRepository) UpsertCheckIn(ctx context.Context, userID, date string, checkIn attendance.TimeOfDay) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, err
	}

	query := `
		INSERT INTO attendances AS a (id, user_id, date, check_in_time, status)
		VALUES ($1, $2, $3::date, $4::time, $5)
		ON CONFLICT (user_id, date) DO UPDATE
		SET check_in_time = EXCLUDED.check_in_time, status = EXCLUDED.status
		WHERE a.check_in_time IS NULL
		RETURNING ` + attendanceColumns

	rec, err := scanAttendance(q.QueryRow(ctx, query,
		id.String(),
		userID,
		date,
		checkIn.String(),
		attendance.DeriveCheckInStatus(checkIn),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, storageError("upsert check-in", err)
	}
	return rec, nil
}

// ApplyCheckOut implements attendance.AttendanceRepository.
func (r *attendanceRepository) ApplyCheckOut(ctx context.Context, userID, date string, checkOut attendance.TimeOfDay) (attendance.Attendance, error) {
	var updated attendance.Attendance

	err := WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		lockQuery := `
			SELECT ` + attendanceColumns + `
			FROM attendances a
			WHERE a.user_id = $1 AND a.date = $2::date
			FOR UPDATE`

		current, err := scanAttendance(tx.QueryRow(ctx, lockQuery, userID, date))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return attendance.ErrNotCheckedIn
			}
			return storageError("lock attendance", err)
		}
		if !current.HasCheckedIn() {
			return attendance.ErrNotCheckedIn
		}
		if current.HasCheckedOut() {
			return attendance.ErrAlreadyCheckedOut
		}

		checkIn, err := attendance.ParseTimeOfDay(*current.CheckInTime)
		if err != nil {
			return fmt.Errorf("stored check-in time is corrupt: %w", err)
		}
		hours := attendance.DeriveDuration(checkIn, checkOut)
		if hours < 0 {
			return attendance.ErrCheckOutBeforeCheckIn
		}

		updateQuery := `
			UPDATE attendances AS a
			SET check_out_time = $2::time, total_hours = $3::numeric, status = $4
			WHERE a.id = $1
			RETURNING ` + attendanceColumns

		updated, err = scanAttendance(tx.QueryRow(ctx, updateQuery,
			current.ID,
			checkOut.String(),
			hours.String(),
			attendance.ReconcileStatusOnCheckout(current.Status, hours),
		))
		if err != nil {
			return storageError("apply check-out", err)
		}
		return nil
	})
	if err != nil {
		return attendance.Attendance{}, err
	}
	return updated, nil
}

// RangeByUser implements attendance.AttendanceRepository.
func (r *attendanceRepository) RangeByUser(ctx context.Context, userID, startDate, endDate string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.user_id = $1 AND a.date BETWEEN $2::date AND $3::date
		` + orderNewestFirst

	rows, err := q.Query(ctx, query, userID, startDate, endDate)
	if err != nil {
		return nil, storageError("range by user", err)
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, storageError("range by user", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("range by user", err)
	}
	return records, nil
}

// RangeAll implements attendance.AttendanceRepository.
func (r *attendanceRepository) RangeAll(ctx context.Context, startDate, endDate string, userID *string) ([]attendance.Attendance, error) {
	if userID != nil {
		query := `SELECT ` + joinedColumns + ` ` + joinedFrom + `
			WHERE a.user_id = $1 AND a.date BETWEEN $2::date AND $3::date
			` + orderNewestFirst
		return r.queryJoined(ctx, "range all", query, *userID, startDate, endDate)
	}

	query := `SELECT ` + joinedColumns + ` ` + joinedFrom + `
		WHERE a.date BETWEEN $1::date AND $2::date
		` + orderNewestFirst
	return r.queryJoined(ctx, "range all", query, startDate, endDate)
}

// ForDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) ForDate(ctx context.Context, date string) ([]attendance.Attendance, error) {
	query := `SELECT ` + joinedColumns + ` ` + joinedFrom + `
		WHERE a.date = $1::date
		` + orderNewestFirst
	return r.queryJoined(ctx, "attendance for date", query, date)
}

// Import implements attendance.AttendanceRepository.
func (r *attendanceRepository) Import(ctx context.Context, records []attendance.Attendance) error {
	query := `
		INSERT INTO attendances (id, user_id, date, check_in_time, check_out_time, status, total_hours, created_at)
		VALUES ($1, $2, $3::date, $4::time, $5::time, $6, $7::numeric, COALESCE($8, NOW()))
		ON CONFLICT (user_id, date) DO UPDATE
		SET id = EXCLUDED.id,
			check_in_time = EXCLUDED.check_in_time,
			check_out_time = EXCLUDED.check_out_time,
			status = EXCLUDED.status,
			total_hours = EXCLUDED.total_hours,
			created_at = EXCLUDED.created_at`

	return WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		batch := &pgx.Batch{}
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
			var createdAt *time.Time
			if !rec.CreatedAt.IsZero() {
				createdAt = &rec.CreatedAt
			}
			batch.Queue(query,
				rec.ID,
				rec.UserID,
				rec.Date,
				rec.CheckInTime,
				rec.CheckOutTime,
				rec.Status,
				rec.TotalHours,
				createdAt,
			)
		}

		results := tx.SendBatch(ctx, batch)
		for range records {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return storageError("import attendance", err)
			}
		}
		return results.Close()
	})
}
