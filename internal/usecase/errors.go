package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("resource changed concurrently")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
