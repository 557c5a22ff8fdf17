package shared

import "errors"

// Cross-domain error classes. Domain packages wrap these so the error
// dispatcher can pick a status code without importing every domain.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
)
