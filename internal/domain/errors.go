package domain

import "errors"

var (
	ErrNotFound         = errors.New("resource not found")
	ErrConflict         = errors.New("resource conflict")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidDateRange = errors.New("invalid date range")
	// ErrInsufficientData is returned when a user has logged fewer days
	// than the vitals gate requires.
	ErrInsufficientData = errors.New("not enough logged days")
)
