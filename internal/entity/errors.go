package entity

import "errors"

var (
	// Schedule errors
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrInvalidInterval  = errors.New("invalid interval")
	ErrMissingTime      = errors.New("schedule time is required")

	// User errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidEmail      = errors.New("invalid email format")
	ErrTokenMissing      = errors.New("no push token registered for user")

	// Dispatch errors
	ErrDeliveryFailed = errors.New("push delivery failed")

	// General errors
	ErrInvalidInput  = errors.New("invalid input")
	ErrDatabaseError = errors.New("database error")
)
