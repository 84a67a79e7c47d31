package models

import "errors"

// Catalog error kinds. Store operations wrap one of these so callers can
// branch with errors.Is.
var (
	// ErrValidation indicates a field constraint was violated.
	ErrValidation = errors.New("validation failed")
	// ErrUniqueness indicates a duplicate (category, name) pair.
	ErrUniqueness = errors.New("already exists")
	// ErrReference indicates a referenced record does not exist.
	ErrReference = errors.New("referenced record does not exist")
	// ErrReferentialIntegrity indicates a delete blocked by dependent records.
	ErrReferentialIntegrity = errors.New("record is still referenced")
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")
)
