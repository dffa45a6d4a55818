package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrTaskNotFound is returned when a query targets a task id that does
	// not exist in the local store.
	ErrTaskNotFound = errors.New("task was not found")

	// ErrSessionNotFound is returned when the single sync session row has
	// not been created yet, i.e. the device was never configured.
	ErrSessionNotFound = errors.New("sync session was not found")

	// ErrConflictNotFound is returned when a lookup targets a task id with
	// no persisted conflict.
	ErrConflictNotFound = errors.New("conflict was not found")

	// ErrOperationNotFound is returned when a queue update targets sequence
	// numbers or task ids that match no pending operation.
	ErrOperationNotFound = errors.New("pending operation was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")
)
