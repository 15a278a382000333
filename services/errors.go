package services

import "errors"

// Reservation commit error kinds. Each maps to a distinct user-facing
// message at the route boundary; none should ever crash the process.
var (
	ErrLocationNotFound      = errors.New("location not found")
	ErrInvalidQuantity       = errors.New("quantity must be at least 1")
	ErrOverLimit             = errors.New("quantity exceeds the per-order limit")
	ErrInsufficientInventory = errors.New("not enough units available")

	// ErrCommitFailed marks transient transaction failures. The caller may
	// retry by resubmitting; the service never retries on its own.
	ErrCommitFailed = errors.New("reservation could not be committed")
)
