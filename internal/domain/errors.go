package domain

import "errors"

var (
	// ErrLevelNotFound is returned when a level ID or number resolves to nothing.
	ErrLevelNotFound = errors.New("level not found")
	// ErrUserNotFound is returned when a user ID or email resolves to nothing.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidAnswers indicates the answers array is missing or incomplete.
	ErrInvalidAnswers = errors.New("answers array invalid or incomplete")
	// ErrEmailTaken indicates a signup attempt with an already-registered email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password on login.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken indicates a missing, malformed, or expired access token.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrMissingFields indicates a signup request with empty required fields.
	ErrMissingFields = errors.New("all fields are required")
)
