package store

import "errors"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write violates a uniqueness constraint
// (duplicate email or name, duplicate join code, duplicate inventory pair).
var ErrConflict = errors.New("conflict")
