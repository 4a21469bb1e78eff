package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrForbidden             = errors.New("operation not allowed")
	ErrConflict              = errors.New("conflicting state")
	ErrInvalidState          = errors.New("invalid lifecycle state")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
