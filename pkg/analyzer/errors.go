package analyzer

import "errors"

var (
	// ErrValidation is returned for malformed input (bad payloads, filters or queries)
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned when a value has already been stored
	ErrConflict = errors.New("string already exists in the system")

	// ErrNotFound is returned when no record exists for a value
	ErrNotFound = errors.New("string does not exist in the system")
)
