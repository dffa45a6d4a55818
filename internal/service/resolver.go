// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskVault Authors

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/syncwell/taskvault/internal/logger"
	"github.com/syncwell/taskvault/internal/store"
	"github.com/syncwell/taskvault/models"
)

type resolver struct {
	tasks     store.TaskRepository
	queue     store.QueueRepository
	conflicts store.ConflictRepository
	sessions  store.SessionRepository

	logger *logger.Logger
}

func NewResolver(
	tasks store.TaskRepository,
	queueRepo store.QueueRepository,
	conflicts store.ConflictRepository,
	sessions store.SessionRepository,
	log *logger.Logger,
) Resolver {
	return &resolver{
		tasks:     tasks,
		queue:     queueRepo,
		conflicts: conflicts,
		sessions:  sessions,
		logger:    log,
	}
}

// Resolve picks the last-write-wins winner: the revision with the later
// modification time, ties broken in favour of the lexically greater author
// device id. Both devices of a conflict reach the same verdict.
func (r *resolver) Resolve(conflict models.Conflict) *models.Task {
	local, remote := conflict.Local, conflict.Remote
	if local == nil {
		return remote
	}
	if remote == nil {
		return local
	}

	if remote.UpdatedAt.After(local.UpdatedAt) {
		return remote
	}
	if local.UpdatedAt.After(remote.UpdatedAt) {
		return local
	}

	if authorDevice(remote, local) > authorDevice(local, remote) {
		return remote
	}
	return local
}

// authorDevice names the device that produced rev's side of a concurrent
// edit: the lexically greatest device whose counter in rev exceeds its
// counter in the other revision.
func authorDevice(rev, other *models.Task) string {
	var author string
	for device, counter := range rev.CausalVersion {
		if counter > other.CausalVersion.Counter(device) && device > author {
			author = device
		}
	}
	return author
}

// Apply settles a batch of conflicts per the session strategy.
//
// Last-write-wins: the winner replaces the local revision under the merged
// clock; when the local side loses, its queued operations are dropped so a
// later push cannot resurrect the losing edit.
//
// Manual: each conflict is persisted, the task's queued operations are
// parked, and the conflict is returned unresolved.
func (r *resolver) Apply(ctx context.Context, session *models.SyncSession, conflicts []models.Conflict) ([]models.Conflict, error) {
	if len(conflicts) == 0 {
		return nil, nil
	}

	if session.Strategy == models.StrategyManual {
		var unresolved []models.Conflict
		for _, conflict := range conflicts {
			if err := r.conflicts.Save(ctx, conflict); err != nil {
				return unresolved, fmt.Errorf("persist conflict (task_id=%s): %w", conflict.TaskID, err)
			}
			if err := r.queue.Park(ctx, conflict.TaskID); err != nil {
				return unresolved, fmt.Errorf("park conflicting operations (task_id=%s): %w", conflict.TaskID, err)
			}
			unresolved = append(unresolved, conflict)
			r.logger.Info().
				Str("task_id", conflict.TaskID).
				Msg("conflict parked for manual resolution")
		}
		return unresolved, nil
	}

	for _, conflict := range conflicts {
		if err := r.applyLWW(ctx, session, conflict); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func (r *resolver) applyLWW(ctx context.Context, session *models.SyncSession, conflict models.Conflict) error {
	winner := r.Resolve(conflict)
	if winner == nil {
		return nil
	}

	merged := mergedClock(conflict)
	localWon := winner == conflict.Local

	resolved := *winner
	if localWon {
		// the kept local edit must supersede both histories on the next push
		resolved.CausalVersion = merged.Tick(session.DeviceID)
	} else {
		resolved.CausalVersion = merged
	}

	if err := r.tasks.Save(ctx, resolved); err != nil {
		return fmt.Errorf("apply conflict winner (task_id=%s): %w", conflict.TaskID, err)
	}

	if localWon {
		if err := r.refreshQueuedVersion(ctx, conflict.TaskID, resolved.CausalVersion); err != nil {
			return err
		}
	} else {
		// losing local edits must not be pushed
		if err := r.dropQueuedOps(ctx, conflict.TaskID); err != nil {
			return err
		}
	}

	r.logger.Info().
		Str("task_id", conflict.TaskID).
		Bool("local_won", localWon).
		Msg("conflict resolved last-write-wins")
	return nil
}

// ResolveManually settles one parked conflict by user decision and unparks
// or drops the task's queued operations accordingly.
func (r *resolver) ResolveManually(ctx context.Context, taskID string, keepLocal bool) error {
	session, err := r.sessions.Get(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	conflict, err := r.conflicts.Get(ctx, taskID)
	if errors.Is(err, store.ErrConflictNotFound) {
		return fmt.Errorf("%w: %s", ErrConflictPending, taskID)
	}
	if err != nil {
		return fmt.Errorf("load conflict (task_id=%s): %w", taskID, err)
	}

	merged := mergedClock(conflict)

	if keepLocal {
		kept := conflict.Local
		if kept == nil {
			return fmt.Errorf("%w: conflict has no local revision to keep", ErrConflictPending)
		}

		resolved := *kept
		resolved.CausalVersion = merged.Tick(session.DeviceID)
		if err := r.tasks.Save(ctx, resolved); err != nil {
			return fmt.Errorf("keep local revision (task_id=%s): %w", taskID, err)
		}

		if err := r.queue.Unpark(ctx, taskID); err != nil {
			return fmt.Errorf("unpark operations (task_id=%s): %w", taskID, err)
		}
		if err := r.ensureQueuedUpdate(ctx, taskID, resolved.CausalVersion); err != nil {
			return err
		}
	} else {
		remote := conflict.Remote
		if remote == nil {
			return fmt.Errorf("%w: conflict has no remote revision to keep", ErrConflictPending)
		}

		resolved := *remote
		resolved.CausalVersion = merged
		if err := r.tasks.Save(ctx, resolved); err != nil {
			return fmt.Errorf("keep remote revision (task_id=%s): %w", taskID, err)
		}

		if err := r.dropQueuedOps(ctx, taskID); err != nil {
			return err
		}
	}

	if err := r.conflicts.Delete(ctx, taskID); err != nil && !errors.Is(err, store.ErrConflictNotFound) {
		return fmt.Errorf("clear resolved conflict (task_id=%s): %w", taskID, err)
	}

	r.logger.Info().
		Str("task_id", taskID).
		Bool("kept_local", keepLocal).
		Msg("conflict resolved manually")
	return nil
}

// refreshQueuedVersion rewrites the task's queued operations to carry the
// resolved causal version, so the push supersedes the losing remote edit.
func (r *resolver) refreshQueuedVersion(ctx context.Context, taskID string, version models.VectorClock) error {
	ops, err := r.queue.List(ctx, true)
	if err != nil {
		return fmt.Errorf("list operations for version refresh: %w", err)
	}

	var removeSeqs []int64
	var upserts []models.PendingOperation
	for _, op := range ops {
		if op.TaskID != taskID {
			continue
		}
		removeSeqs = append(removeSeqs, op.Seq)
		op.CausalVersion = version.Clone()
		upserts = append(upserts, op)
	}
	if len(removeSeqs) == 0 {
		// conflict came from pull only; queue an update so the winner
		// reaches the server
		return r.ensureQueuedUpdate(ctx, taskID, version)
	}

	if err := r.queue.Replace(ctx, removeSeqs, upserts); err != nil {
		return fmt.Errorf("refresh queued versions (task_id=%s): %w", taskID, err)
	}
	return nil
}

// ensureQueuedUpdate guarantees at least one queued update for the task.
func (r *resolver) ensureQueuedUpdate(ctx context.Context, taskID string, version models.VectorClock) error {
	ops, err := r.queue.List(ctx, true)
	if err != nil {
		return fmt.Errorf("list operations (task_id=%s): %w", taskID, err)
	}
	for _, op := range ops {
		if op.TaskID == taskID {
			return nil
		}
	}

	_, err = r.queue.Enqueue(ctx, models.PendingOperation{
		Type:          models.OpUpdate,
		TaskID:        taskID,
		CausalVersion: version.Clone(),
		EnqueuedAt:    time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("enqueue resolution update (task_id=%s): %w", taskID, err)
	}
	return nil
}

func (r *resolver) dropQueuedOps(ctx context.Context, taskID string) error {
	ops, err := r.queue.List(ctx, true)
	if err != nil {
		return fmt.Errorf("list operations for drop (task_id=%s): %w", taskID, err)
	}

	var seqs []int64
	for _, op := range ops {
		if op.TaskID == taskID {
			seqs = append(seqs, op.Seq)
		}
	}
	if err := r.queue.Remove(ctx, seqs); err != nil {
		return fmt.Errorf("drop queued operations (task_id=%s): %w", taskID, err)
	}
	return nil
}

func mergedClock(conflict models.Conflict) models.VectorClock {
	var local, remote models.VectorClock
	if conflict.Local != nil {
		local = conflict.Local.CausalVersion
	}
	if conflict.Remote != nil {
		remote = conflict.Remote.CausalVersion
	}
	return local.Merge(remote)
}
