package repository

import "errors"

var (
	// ErrNotFound is returned when a requested storage slot doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrCorrupt is returned when a stored value can't be decoded
	ErrCorrupt = errors.New("stored value is corrupt")
)
