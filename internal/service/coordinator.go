// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskVault Authors

package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/syncwell/taskvault/internal/crypto"
	"github.com/syncwell/taskvault/internal/logger"
	"github.com/syncwell/taskvault/internal/store"
	"github.com/syncwell/taskvault/internal/wire"
	"github.com/syncwell/taskvault/models"
)

// CoordinatorDeps wires everything a sync run touches.
type CoordinatorDeps struct {
	Sessions  store.SessionRepository
	Queue     store.QueueRepository
	Conflicts store.ConflictRepository
	Cipher    crypto.Cipher
	Client    wire.Client
	Tokens    TokenManager
	Gate      RetryGate
	Optimizer QueueOptimizer
	Push      PushHandler
	Pull      PullHandler
	Resolver  Resolver
	Logger    *logger.Logger
}

type coordinator struct {
	deps CoordinatorDeps

	// running enforces single-flight: one sync run at a time, concurrent
	// callers bounce off immediately with no side effects.
	running atomic.Bool

	logger *logger.Logger
}

func NewCoordinator(deps CoordinatorDeps) Coordinator {
	return &coordinator{
		deps:   deps,
		logger: deps.Logger,
	}
}

// Sync implements [Coordinator]. The run order is fixed: preconditions,
// token, queue consolidation, push, pull, conflict resolution, bookkeeping.
// Push precedes pull so the server can fold this device's operations into
// the pull response.
func (c *coordinator) Sync(ctx context.Context, priority models.SyncPriority) models.SyncResult {
	if !c.running.CompareAndSwap(false, true) {
		return models.SyncResult{
			Status: models.StatusAlreadyRunning,
			Reason: "sync already running",
		}
	}
	defer c.running.Store(false)

	session, err := c.deps.Sessions.Get(ctx)
	if errors.Is(err, store.ErrSessionNotFound) {
		return errorResult(ErrNotConfigured)
	}
	if err != nil {
		return errorResult(fmt.Errorf("load session: %w", err))
	}
	if !session.Configured() {
		return errorResult(ErrNotConfigured)
	}
	if !c.deps.Cipher.KeyInitialized() {
		return errorResult(ErrKeyNotInitialized)
	}
	if !c.deps.Gate.Allowed(&session, priority) {
		return errorResult(ErrRetryBackoff)
	}

	if err := c.deps.Tokens.EnsureValidToken(ctx, &session); err != nil {
		return c.fail(ctx, &session, err)
	}

	if err := c.consolidate(ctx); err != nil {
		return c.fail(ctx, &session, err)
	}

	var refreshed bool

	var pushOut PushOutcome
	err = c.withAuthRetry(ctx, &session, &refreshed, func() error {
		out, pushErr := c.deps.Push.Push(ctx, &session)
		if pushErr != nil {
			return pushErr
		}
		pushOut = out
		return nil
	})
	if err != nil {
		return c.fail(ctx, &session, err)
	}

	var pullOut PullOutcome
	err = c.withAuthRetry(ctx, &session, &refreshed, func() error {
		out, pullErr := c.deps.Pull.Pull(ctx, &session)
		if pullErr != nil {
			return pullErr
		}
		pullOut = out
		return nil
	})
	if err != nil {
		return c.fail(ctx, &session, err)
	}

	conflicts := append(pushOut.Conflicts, pullOut.Conflicts...)
	unresolved, err := c.deps.Resolver.Apply(ctx, &session, conflicts)
	if err != nil {
		return c.fail(ctx, &session, err)
	}

	result := models.SyncResult{
		Status:    models.StatusSuccess,
		Pushed:    pushOut.Pushed,
		Rejected:  pushOut.Rejected,
		Pulled:    pullOut.Applied,
		Removed:   pullOut.Removed,
		Conflicts: unresolved,
	}

	// a run that leaves conflicts behind is not a completed sync: the
	// server was reachable, so backoff still resets, but LastSyncedAt is
	// stamped only once the stores have actually converged
	if len(unresolved) > 0 {
		result.Status = models.StatusConflict
		result.Reason = "conflicts await manual resolution"
		c.deps.Gate.ClearBackoff(&session)
	} else {
		c.deps.Gate.RecordSuccess(&session)
	}

	if err := c.deps.Sessions.Save(ctx, session); err != nil {
		return errorResult(fmt.Errorf("persist session: %w", err))
	}

	c.logger.Info().
		Str("status", string(result.Status)).
		Int("pushed", result.Pushed).
		Int("pulled", result.Pulled).
		Int("removed", result.Removed).
		Int("conflicts", len(result.Conflicts)).
		Msg("sync run finished")
	return result
}

// consolidate folds the queue before push; the rewrite is transactional so
// a crash mid-consolidation can never lose or duplicate operations.
func (c *coordinator) consolidate(ctx context.Context) error {
	ops, err := c.deps.Queue.List(ctx, true)
	if err != nil {
		return fmt.Errorf("list queue for consolidation: %w", err)
	}

	plan := c.deps.Optimizer.Consolidate(ops)
	if plan.Empty() {
		return nil
	}

	if err := c.deps.Queue.Replace(ctx, plan.RemoveSeqs, plan.Upserts); err != nil {
		return fmt.Errorf("rewrite consolidated queue: %w", err)
	}
	return nil
}

// withAuthRetry runs fn and, on the first auth-classified failure of the
// run, refreshes the token once and retries fn once. A second auth failure
// anywhere in the run is terminal.
func (c *coordinator) withAuthRetry(ctx context.Context, session *models.SyncSession, refreshed *bool, fn func() error) error {
	err := fn()
	if err == nil || !errors.Is(err, wire.ErrAuth) || *refreshed {
		return err
	}

	*refreshed = true
	retry, refreshErr := c.deps.Tokens.HandleUnauthorized(ctx, session)
	if refreshErr != nil || !retry {
		return err
	}

	return fn()
}

// fail folds an error into the run result. Only network-classified errors
// feed the backoff schedule; auth, validation, and local failures retry on
// the next regular run without penalty.
func (c *coordinator) fail(ctx context.Context, session *models.SyncSession, err error) models.SyncResult {
	if errors.Is(err, wire.ErrNetwork) {
		c.deps.Gate.RecordFailure(session)
		if saveErr := c.deps.Sessions.Save(ctx, *session); saveErr != nil {
			c.logger.Err(saveErr).Msg("failed to persist backoff state")
		}
	}

	c.logger.Err(err).Msg("sync run failed")
	return errorResult(err)
}

func errorResult(err error) models.SyncResult {
	return models.SyncResult{
		Status: models.StatusError,
		Reason: err.Error(),
	}
}

// ListConflicts implements [Coordinator].
func (c *coordinator) ListConflicts(ctx context.Context) ([]models.Conflict, error) {
	return c.deps.Conflicts.List(ctx)
}

// ResolveConflict implements [Coordinator].
func (c *coordinator) ResolveConflict(ctx context.Context, taskID string, keepLocal bool) error {
	return c.deps.Resolver.ResolveManually(ctx, taskID, keepLocal)
}

// Status implements [Coordinator].
func (c *coordinator) Status(ctx context.Context) (models.StatusResponse, error) {
	session, err := c.deps.Sessions.Get(ctx)
	if err != nil {
		return models.StatusResponse{}, fmt.Errorf("load session: %w", err)
	}
	if err := c.deps.Tokens.EnsureValidToken(ctx, &session); err != nil {
		return models.StatusResponse{}, err
	}
	return c.deps.Client.Status(ctx)
}

// RevokeDevice implements [Coordinator].
func (c *coordinator) RevokeDevice(ctx context.Context, deviceID string) error {
	session, err := c.deps.Sessions.Get(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if err := c.deps.Tokens.EnsureValidToken(ctx, &session); err != nil {
		return err
	}
	return c.deps.Client.RevokeDevice(ctx, deviceID)
}
