package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrStandingsUnavailable is surfaced when a division's standings
	// cannot be computed or read; callers must never fall back to
	// serving partial or stale rows as current.
	ErrStandingsUnavailable = errors.New("standings temporarily unavailable for this division")
)
