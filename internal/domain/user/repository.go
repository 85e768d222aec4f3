package user

import (
	"context"
)

// UserRepository is the user directory. Lookups return ErrUserNotFound when
// nothing matches; Create returns ErrDuplicateUser / ErrDuplicateEmployeeCode
// on uniqueness violations.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	// ListEmployees returns every role=employee profile ordered by name
	ListEmployees(ctx context.Context) ([]Profile, error)
	// ListProfiles returns profiles for the given IDs; unknown IDs are skipped
	ListProfiles(ctx context.Context, ids []string) (map[string]Profile, error)
}
