package core

import "errors"

// Common errors.
var (
	ErrReadOnly  = errors.New("repository is in read-only mode")
	ErrNotFound  = errors.New("document not found")
	ErrEmptyID   = errors.New("document ID cannot be empty")
	ErrNoWatcher = errors.New("repository does not support watching")
)
