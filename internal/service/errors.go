package service

import (
	"errors"
	"fmt"
)

// Domain errors. Handlers map them to HTTP status codes with errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrMissingFields   = fmt.Errorf("%w: email, password, and username are required", ErrValidation)
	ErrMissingLogin    = fmt.Errorf("%w: email and password are required", ErrValidation)
	ErrInvalidStatus   = fmt.Errorf("%w: status must be active or inactive", ErrValidation)
	ErrEmailTaken      = errors.New("user with this email already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrFeatureNotFound = errors.New("feature not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidToken    = errors.New("invalid token")
)
