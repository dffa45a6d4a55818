package service

import (
	"context"

	"github.com/syncwell/taskvault/internal/queue"
	"github.com/syncwell/taskvault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// PushHandler uploads the consolidated pending queue. Implementations
// re-encrypt the current plaintext immediately before transmission; stale
// ciphertext never reaches the wire.
type PushHandler interface {
	Push(ctx context.Context, session *models.SyncSession) (PushOutcome, error)
}

// PullHandler downloads and applies remote changes past the session clock.
type PullHandler interface {
	Pull(ctx context.Context, session *models.SyncSession) (PullOutcome, error)
}

// Resolver settles concurrent edits. Resolve is the pure last-write-wins
// decision; Apply carries out a batch of conflicts according to the session
// strategy and returns those left unresolved (manual strategy only).
type Resolver interface {
	Resolve(conflict models.Conflict) *models.Task
	Apply(ctx context.Context, session *models.SyncSession, conflicts []models.Conflict) ([]models.Conflict, error)
	ResolveManually(ctx context.Context, taskID string, keepLocal bool) error
}

// Authenticator hands the engine a negotiated credential. Login and device
// registration happen outside the engine; AwaitCredential blocks until a
// credential is available or the context is cancelled.
type Authenticator interface {
	AwaitCredential(ctx context.Context) (models.Credential, error)
}

// TokenManager keeps the session credential usable for the duration of a
// sync run.
type TokenManager interface {
	EnsureValidToken(ctx context.Context, session *models.SyncSession) error
	HandleUnauthorized(ctx context.Context, session *models.SyncSession) (bool, error)
}

// RetryGate decides whether an automatic run may start and maintains the
// persisted backoff bookkeeping on the session.
type RetryGate interface {
	Allowed(session *models.SyncSession, priority models.SyncPriority) bool
	RecordFailure(session *models.SyncSession)
	RecordSuccess(session *models.SyncSession)
	ClearBackoff(session *models.SyncSession)
}

// QueueOptimizer plans the pre-push queue consolidation.
type QueueOptimizer interface {
	Consolidate(ops []models.PendingOperation) queue.Plan
}

// TaskService is the local mutation surface. Every mutation ticks the
// device's causal version, writes the plaintext store, and records a pending
// operation for the next push.
type TaskService interface {
	Create(ctx context.Context, task models.Task) (models.Task, error)
	Update(ctx context.Context, task models.Task) (models.Task, error)
	Delete(ctx context.Context, taskID string) error
	Get(ctx context.Context, taskID string) (models.Task, error)
	List(ctx context.Context) ([]models.Task, error)
	ListByDone(ctx context.Context, done bool) ([]models.Task, error)
}

// Coordinator is the single entry point for sync runs and conflict
// management.
type Coordinator interface {
	// Sync executes one full run. Never returns an error; every failure
	// mode is folded into the result.
	Sync(ctx context.Context, priority models.SyncPriority) models.SyncResult

	// ListConflicts returns conflicts awaiting manual resolution.
	ListConflicts(ctx context.Context) ([]models.Conflict, error)

	// ResolveConflict settles one parked conflict by user decision.
	ResolveConflict(ctx context.Context, taskID string, keepLocal bool) error

	// Status fetches server-side counters for this account.
	Status(ctx context.Context) (models.StatusResponse, error)

	// RevokeDevice revokes another device's access.
	RevokeDevice(ctx context.Context, deviceID string) error
}
