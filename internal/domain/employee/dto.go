package employee

import (
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/user"
)

type EmployeeFilter struct {
	Department string `json:"department"` // exact match, case-insensitive
	Search     string `json:"search"`     // substring of name, email or employee code
}

type ListEmployeeResponse struct {
	Employees   []user.ProfileResponse `json:"employees"`
	Total       int                    `json:"total"`
	Departments []string               `json:"departments"` // distinct, sorted
}
