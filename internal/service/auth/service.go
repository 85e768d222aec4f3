package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

const (
	employeeCodePrefix = "EMP"
	// maxCodeAttempts bounds retries when a generated code collides.
	maxCodeAttempts = 5
)

type AuthServiceImpl struct {
	user.UserRepository
	jwt.Service
}

func NewAuthService(userRepository user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepository,
		Service:        jwtService,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	hashed, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := user.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         user.RoleEmployee,
		EmployeeCode: req.EmployeeCode,
		Department:   req.Department,
	}

	var created user.User
	if req.EmployeeCode != "" {
		created, err = a.UserRepository.Create(ctx, newUser)
	} else {
		created, err = a.createWithGeneratedCode(ctx, newUser)
	}
	if err != nil {
		return auth.TokenResponse{}, err
	}

	slog.Info("Registered employee", "user_id", created.ID, "employee_code", created.EmployeeCode)
	return a.issueToken(created)
}

// createWithGeneratedCode assigns the next free EMPnnnn code, retrying when a
// concurrent registration takes it first.
func (a *AuthServiceImpl) createWithGeneratedCode(ctx context.Context, newUser user.User) (user.User, error) {
	employees, err := a.UserRepository.ListEmployees(ctx)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to list employees: %w", err)
	}

	next := len(employees) + 1
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		newUser.EmployeeCode = fmt.Sprintf("%s%04d", employeeCodePrefix, next+attempt)
		created, err := a.UserRepository.Create(ctx, newUser)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, user.ErrDuplicateEmployeeCode) {
			return user.User{}, err
		}
	}
	return user.User{}, user.ErrDuplicateEmployeeCode
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueToken(userData)
}

func (a *AuthServiceImpl) issueToken(u user.User) (auth.TokenResponse, error) {
	token, expiresAt, err := a.Service.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:          token,
		AccessTokenExpiresIn: expiresAt - time.Now().Unix(),
		User:                 user.NewProfileResponse(u.Profile()),
	}, nil
}
