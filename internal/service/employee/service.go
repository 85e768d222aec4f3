package employee

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/user"
)

type EmployeeServiceImpl struct {
	user.UserRepository
}

func NewEmployeeService(userRepository user.UserRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{UserRepository: userRepository}
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	profiles, err := s.UserRepository.ListEmployees(ctx)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	departments := make(map[string]struct{})
	matched := make([]user.Profile, 0, len(profiles))
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, p := range profiles {
		if p.Department != "" {
			departments[p.Department] = struct{}{}
		}
		if filter.Department != "" && !strings.EqualFold(p.Department, filter.Department) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Email), search) &&
			!strings.Contains(strings.ToLower(p.EmployeeCode), search) {
			continue
		}
		matched = append(matched, p)
	}

	deptList := make([]string, 0, len(departments))
	for d := range departments {
		deptList = append(deptList, d)
	}
	sort.Strings(deptList)

	return employee.ListEmployeeResponse{
		Employees:   user.NewProfileResponses(matched),
		Total:       len(matched),
		Departments: deptList,
	}, nil
}

// GetProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetProfile(ctx context.Context, id string) (user.ProfileResponse, error) {
	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.ProfileResponse{}, err
	}
	return user.NewProfileResponse(u.Profile()), nil
}
