// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskVault Authors

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/syncwell/taskvault/internal/crypto"
	"github.com/syncwell/taskvault/internal/logger"
	"github.com/syncwell/taskvault/internal/store"
	"github.com/syncwell/taskvault/internal/wire"
	"github.com/syncwell/taskvault/models"
)

// PullOutcome summarises one pull batch.
type PullOutcome struct {
	// Applied counts remote revisions written to the local store.
	Applied int
	// Removed counts local tasks deleted by server tombstones.
	Removed int
	// Skipped counts records dropped because their blob failed to decrypt.
	Skipped int
	// Conflicts holds concurrent revisions needing resolution.
	Conflicts []models.Conflict
}

type pullHandler struct {
	tasks  store.TaskRepository
	cipher crypto.Cipher
	client wire.Client

	logger *logger.Logger
}

func NewPullHandler(
	tasks store.TaskRepository,
	cipher crypto.Cipher,
	client wire.Client,
	log *logger.Logger,
) PullHandler {
	return &pullHandler{
		tasks:  tasks,
		cipher: cipher,
		client: client,
		logger: log,
	}
}

// Pull fetches everything past the session clock and applies it record by
// record. A record that fails to decrypt is skipped without aborting the
// batch; the session clock is advanced only once the whole batch has been
// processed, so a skipped record surfaces again on the next pull.
func (h *pullHandler) Pull(ctx context.Context, session *models.SyncSession) (PullOutcome, error) {
	var outcome PullOutcome

	resp, err := h.client.Pull(ctx, models.PullRequest{
		DeviceID:          session.DeviceID,
		LastCausalVersion: session.CausalVersion,
	})
	if err != nil {
		return outcome, err
	}

	for _, enc := range resp.Tasks {
		if err := h.applyRemote(ctx, enc, &outcome); err != nil {
			return outcome, err
		}
	}

	for _, taskID := range resp.DeletedTaskIDs {
		err := h.tasks.Delete(ctx, taskID)
		if errors.Is(err, store.ErrTaskNotFound) {
			continue
		}
		if err != nil {
			return outcome, fmt.Errorf("apply remote tombstone (id=%s): %w", taskID, err)
		}
		outcome.Removed++
	}

	outcome.Conflicts = append(outcome.Conflicts,
		decryptWireConflicts(ctx, h.tasks, h.cipher, h.logger, resp.Conflicts)...)

	// clock adoption is the last step: a batch aborted halfway is replayed
	// in full on the next pull
	if outcome.Skipped == 0 {
		session.CausalVersion = session.CausalVersion.Merge(resp.ServerCausalVersion)
	}

	h.logger.Info().
		Int("applied", outcome.Applied).
		Int("removed", outcome.Removed).
		Int("skipped", outcome.Skipped).
		Int("conflicts", len(outcome.Conflicts)).
		Msg("pull batch processed")

	return outcome, nil
}

func (h *pullHandler) applyRemote(ctx context.Context, enc models.EncryptedTask, outcome *PullOutcome) error {
	plaintext, err := h.cipher.Decrypt(enc.EncryptedBlob, enc.Nonce)
	if errors.Is(err, crypto.ErrDecryption) {
		h.logger.Warn().
			Str("task_id", enc.ID).
			Msg("remote record failed to decrypt, skipping")
		outcome.Skipped++
		return nil
	}
	if err != nil {
		return fmt.Errorf("decrypt remote task (id=%s): %w", enc.ID, err)
	}

	var remote models.Task
	if err := json.Unmarshal(plaintext, &remote); err != nil {
		return fmt.Errorf("decode remote task payload (id=%s): %w", enc.ID, err)
	}
	remote.CausalVersion = enc.CausalVersion

	local, err := h.tasks.Get(ctx, enc.ID)
	if errors.Is(err, store.ErrTaskNotFound) {
		if saveErr := h.tasks.Save(ctx, remote); saveErr != nil {
			return fmt.Errorf("apply new remote task (id=%s): %w", enc.ID, saveErr)
		}
		outcome.Applied++
		return nil
	}
	if err != nil {
		return fmt.Errorf("load local task (id=%s): %w", enc.ID, err)
	}

	switch enc.CausalVersion.Compare(local.CausalVersion) {
	case models.OrderingBefore:
		// remote is stale, local already supersedes it
		return nil
	case models.OrderingAfter, models.OrderingEqual:
		if saveErr := h.tasks.Save(ctx, remote); saveErr != nil {
			return fmt.Errorf("apply remote task (id=%s): %w", enc.ID, saveErr)
		}
		outcome.Applied++
		return nil
	default:
		outcome.Conflicts = append(outcome.Conflicts, models.Conflict{
			TaskID:     enc.ID,
			Local:      &local,
			Remote:     &remote,
			DetectedAt: time.Now().UTC(),
		})
		return nil
	}
}
