package user

import "time"

// ProfileResponse represents public user data in API responses
type ProfileResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	EmployeeCode string `json:"employee_code"`
	Department   string `json:"department"`
	CreatedAt    string `json:"created_at"`
}

func NewProfileResponse(p Profile) ProfileResponse {
	return ProfileResponse{
		ID:           p.ID,
		Name:         p.Name,
		Email:        p.Email,
		Role:         p.Role,
		EmployeeCode: p.EmployeeCode,
		Department:   p.Department,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
}

func NewProfileResponses(profiles []Profile) []ProfileResponse {
	out := make([]ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, NewProfileResponse(p))
	}
	return out
}
