package store

import (
	"context"

	"github.com/syncwell/taskvault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// TaskRepository is the local plaintext task store. Tasks live decrypted on
// the device only; everything that leaves the device goes through the crypto
// layer first.
type TaskRepository interface {
	// Save upserts a task by id.
	Save(ctx context.Context, task models.Task) error
	// Get returns the task with the given id or [ErrTaskNotFound].
	Get(ctx context.Context, taskID string) (models.Task, error)
	// GetAll returns every stored task.
	GetAll(ctx context.Context) ([]models.Task, error)
	// GetByDone returns tasks filtered by completion state.
	GetByDone(ctx context.Context, done bool) ([]models.Task, error)
	// Delete removes the task with the given id. Deleting an absent task
	// returns [ErrTaskNotFound].
	Delete(ctx context.Context, taskID string) error
}

// QueueRepository is the durable outbound operation queue. Sequence numbers
// are assigned on enqueue and preserve per-task mutation order.
type QueueRepository interface {
	// Enqueue appends an operation and returns its assigned sequence number.
	Enqueue(ctx context.Context, op models.PendingOperation) (int64, error)
	// List returns pending operations in sequence order. Parked operations
	// are excluded unless includeParked is set.
	List(ctx context.Context, includeParked bool) ([]models.PendingOperation, error)
	// Remove deletes the operations with the given sequence numbers.
	Remove(ctx context.Context, seqs []int64) error
	// Replace atomically deletes removeSeqs and inserts upserts in a single
	// transaction. Used by queue consolidation so a crash can never observe
	// a half-rewritten queue.
	Replace(ctx context.Context, removeSeqs []int64, upserts []models.PendingOperation) error
	// Park flags all operations of the given task as excluded from
	// automatic push.
	Park(ctx context.Context, taskID string) error
	// Unpark clears the parked flag for all operations of the given task.
	Unpark(ctx context.Context, taskID string) error
}

// SessionRepository persists the single sync session row.
type SessionRepository interface {
	// Get returns the session or [ErrSessionNotFound] when the device has
	// never been configured.
	Get(ctx context.Context) (models.SyncSession, error)
	// Save upserts the session row.
	Save(ctx context.Context, session models.SyncSession) error
}

// ConflictRepository persists unresolved conflicts under the manual
// strategy, keyed by task id.
type ConflictRepository interface {
	Save(ctx context.Context, conflict models.Conflict) error
	Get(ctx context.Context, taskID string) (models.Conflict, error)
	List(ctx context.Context) ([]models.Conflict, error)
	Delete(ctx context.Context, taskID string) error
}
