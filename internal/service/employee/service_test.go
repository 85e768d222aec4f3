package employee

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/presence-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (map[string]string, employee.EmployeeService) {
	t.Helper()
	users := memory.NewUserRepository(calendar.FixedClock(time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)))
	ids := map[string]string{}
	for _, u := range []user.User{
		{Name: "Cy", Email: "cy@example.com", EmployeeCode: "EMP0003", Department: "Sales", Role: user.RoleEmployee},
		{Name: "Ana", Email: "ana@example.com", EmployeeCode: "EMP0001", Department: "Engineering", Role: user.RoleEmployee},
		{Name: "Ben", Email: "ben@example.com", EmployeeCode: "EMP0002", Department: "engineering", Role: user.RoleEmployee},
		{Name: "Boss", Email: "boss@example.com", EmployeeCode: "MGR0001", Department: "Management", Role: user.RoleManager},
	} {
		created, err := users.Create(context.Background(), u)
		require.NoError(t, err)
		ids[u.Name] = created.ID
	}
	return ids, NewEmployeeService(users)
}

func names(resp employee.ListEmployeeResponse) []string {
	var out []string
	for _, e := range resp.Employees {
		out = append(out, e.Name)
	}
	return out
}

func TestListEmployees(t *testing.T) {
	_, svc := setup(t)
	ctx := context.Background()

	all, err := svc.ListEmployees(ctx, employee.EmployeeFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)
	assert.Equal(t, []string{"Ana", "Ben", "Cy"}, names(all))
	assert.Equal(t, []string{"Engineering", "Sales", "engineering"}, all.Departments)

	eng, err := svc.ListEmployees(ctx, employee.EmployeeFilter{Department: "ENGINEERING"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana", "Ben"}, names(eng))

	byCode, err := svc.ListEmployees(ctx, employee.EmployeeFilter{Search: "emp0003"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cy"}, names(byCode))

	none, err := svc.ListEmployees(ctx, employee.EmployeeFilter{Search: "zzz"})
	require.NoError(t, err)
	assert.NotNil(t, none.Employees)
	assert.Zero(t, none.Total)
}

func TestGetProfile(t *testing.T) {
	ids, svc := setup(t)

	p, err := svc.GetProfile(context.Background(), ids["Boss"])
	require.NoError(t, err)
	assert.Equal(t, user.RoleManager, p.Role)
	assert.Equal(t, "MGR0001", p.EmployeeCode)

	_, err = svc.GetProfile(context.Background(), "missing")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
