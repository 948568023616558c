package user

import "errors"

var (
	ErrUserNotFound       = errors.New("user not registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInactiveUser       = errors.New("user is disabled")
	ErrDuplicateUser      = errors.New("a user with this username, email or dni already exists")
	ErrMissingFields      = errors.New("username, name, lastname, dni, phone and email are required")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
)
