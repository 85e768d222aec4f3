package user

import "time"

type Role string

const (
	RoleManager  Role = "manager"  // Oversees attendance, dashboards and reports
	RoleEmployee Role = "employee" // Checks in and out
)

func (r Role) Valid() bool {
	return r == RoleManager || r == RoleEmployee
}

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	EmployeeCode string
	Department   string
	CreatedAt    time.Time
}

// Profile is the public projection of a User. It never carries credentials.
type Profile struct {
	ID           string
	Name         string
	Email        string
	Role         Role
	EmployeeCode string
	Department   string
	CreatedAt    time.Time
}

// Profile strips credential fields.
func (u *User) Profile() Profile {
	return Profile{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		EmployeeCode: u.EmployeeCode,
		Department:   u.Department,
		CreatedAt:    u.CreatedAt,
	}
}

// IsManager checks if user is a manager
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

// Identity is the resolved caller handed over by the auth gate.
type Identity struct {
	UserID string
	Role   Role
}

func (i Identity) IsManager() bool {
	return i.Role == RoleManager
}
