package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id::text, name, email, password_hash, role, employee_code, department, created_at`

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.EmployeeCode,
		&u.Department,
		&u.CreatedAt,
	)
	return u, err
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	if _, err := uuid.Parse(id); err != nil {
		return user.User{}, user.ErrUserNotFound
	}

	u, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, storageError("get user by id", err)
	}
	return u, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, storageError("get user by email", err)
	}
	return u, nil
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return user.User{}, err
	}

	query := `
		INSERT INTO users (id, name, email, password_hash, role, employee_code, department)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns

	created, err := scanUser(q.QueryRow(ctx, query,
		id.String(),
		newUser.Name,
		newUser.Email,
		newUser.PasswordHash,
		newUser.Role,
		newUser.EmployeeCode,
		newUser.Department,
	))
	if err != nil {
		switch {
		case isUniqueViolation(err, "users_email_key"):
			return user.User{}, user.ErrDuplicateUser
		case isUniqueViolation(err, "users_employee_code_key"):
			return user.User{}, user.ErrDuplicateEmployeeCode
		}
		return user.User{}, storageError("create user", err)
	}
	return created, nil
}

// ListEmployees implements user.UserRepository.
func (r *userRepositoryImpl) ListEmployees(ctx context.Context) ([]user.Profile, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY name, id`, user.RoleEmployee)
	if err != nil {
		return nil, storageError("list employees", err)
	}
	defer rows.Close()

	profiles := make([]user.Profile, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, storageError("scan employee", err)
		}
		profiles = append(profiles, u.Profile())
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("list employees", err)
	}
	return profiles, nil
}

// ListProfiles implements user.UserRepository.
func (r *userRepositoryImpl) ListProfiles(ctx context.Context, ids []string) (map[string]user.Profile, error) {
	q := GetQuerier(ctx, r.db)

	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	out := make(map[string]user.Profile, len(valid))
	if len(valid) == 0 {
		return out, nil
	}

	rows, err := q.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1::uuid[])`, valid)
	if err != nil {
		return nil, storageError("list profiles", err)
	}
	defer rows.Close()

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, storageError("scan profile", err)
		}
		out[u.ID] = u.Profile()
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("list profiles", err)
	}
	return out, nil
}
