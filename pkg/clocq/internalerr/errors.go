// Package internalerr collects sentinel errors shared across the CLOCQ packages.
package internalerr

import "errors"

// Sentinel errors for common cases across the pipeline.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrLoadFailed       = errors.New("index load failed")
	ErrCancelled        = errors.New("operation cancelled")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInvalidConfig    = errors.New("invalid configuration")
)
