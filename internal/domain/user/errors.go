package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrDuplicateUser           = errors.New("email already registered")
	ErrDuplicateEmployeeCode   = errors.New("employee code already exists")
	ErrInvalidRole             = errors.New("role must be one of: employee, manager")
	ErrManagerAccessRequired   = errors.New("manager access required")
	ErrEmployeeAccessRequired  = errors.New("employee access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
