package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email is already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access denied")
	ErrConflict           = errors.New("conflict with current state")

	// ErrNoBusinessProfile marks the expected-absent case: a user without a
	// business profile gets zeroed aggregates, not a failure.
	ErrNoBusinessProfile = errors.New("no business profile")

	// ErrPartialData marks an aggregation where one parallel sub-query failed
	// while siblings succeeded. The whole aggregation fails instead of
	// silently using zero for the missing part.
	ErrPartialData = errors.New("partial aggregation data")
)
