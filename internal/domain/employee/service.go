package employee

import (
	"context"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/user"
)

// EmployeeService exposes the user directory
type EmployeeService interface {
	// ListEmployees lists every employee sorted by name (manager only)
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)

	// GetProfile retrieves one user's public profile
	GetProfile(ctx context.Context, id string) (user.ProfileResponse, error)
}
