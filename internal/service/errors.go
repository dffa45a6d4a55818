package service

import "errors"

var (
	// ErrNotConfigured is returned when a sync is attempted before the
	// device has a session (device id and endpoint).
	ErrNotConfigured = errors.New("device is not configured for sync")

	// ErrKeyNotInitialized is returned when a sync is attempted before the
	// encryption key has been derived from the passphrase.
	ErrKeyNotInitialized = errors.New("encryption key is not initialized")

	// ErrRetryBackoff is returned when an automatic sync falls inside the
	// backoff window scheduled after previous failures.
	ErrRetryBackoff = errors.New("retry backoff window is still open")

	// ErrConflictPending is returned when a manual resolution targets a
	// task with no recorded conflict.
	ErrConflictPending = errors.New("no pending conflict for task")
)
