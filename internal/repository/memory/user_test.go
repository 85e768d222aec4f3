package memory

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(testClock)

	u, err := repo.Create(ctx, user.User{
		Name:         "Ana",
		Email:        "Ana@Example.com",
		PasswordHash: "hash",
		Role:         user.RoleEmployee,
		EmployeeCode: "EMP0001",
		Department:   "Engineering",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	byEmail, err := repo.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	_, err = repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
	_, err = repo.GetByEmail(ctx, "nope@example.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_Uniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(testClock)

	_, err := repo.Create(ctx, user.User{Name: "Ana", Email: "ana@example.com", Role: user.RoleEmployee, EmployeeCode: "EMP0001"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, user.User{Name: "Ana 2", Email: "ANA@example.com", Role: user.RoleEmployee, EmployeeCode: "EMP0002"})
	assert.ErrorIs(t, err, user.ErrDuplicateUser)

	_, err = repo.Create(ctx, user.User{Name: "Ben", Email: "ben@example.com", Role: user.RoleEmployee, EmployeeCode: "EMP0001"})
	assert.ErrorIs(t, err, user.ErrDuplicateEmployeeCode)

	// The failed code reservation must release the email.
	_, err = repo.Create(ctx, user.User{Name: "Ben", Email: "ben@example.com", Role: user.RoleEmployee, EmployeeCode: "EMP0003"})
	assert.NoError(t, err)
}

func TestUserRepository_ListEmployees(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(testClock)

	for _, u := range []user.User{
		{Name: "Zed", Email: "zed@example.com", Role: user.RoleEmployee, EmployeeCode: "EMP0003"},
		{Name: "Boss", Email: "boss@example.com", Role: user.RoleManager, EmployeeCode: "MGR0001"},
		{Name: "Ana", Email: "ana@example.com", Role: user.RoleEmployee, EmployeeCode: "EMP0001"},
	} {
		_, err := repo.Create(ctx, u)
		require.NoError(t, err)
	}

	employees, err := repo.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, employees, 2)
	assert.Equal(t, "Ana", employees[0].Name)
	assert.Equal(t, "Zed", employees[1].Name)

	profiles, err := repo.ListProfiles(ctx, []string{employees[0].ID, employees[0].ID, "unknown"})
	require.NoError(t, err)
	assert.Len(t, profiles, 1)
	assert.Equal(t, "Ana", profiles[employees[0].ID].Name)
}
