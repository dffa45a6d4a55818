// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskVault Authors

package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/syncwell/taskvault/internal/crypto"
	"github.com/syncwell/taskvault/internal/logger"
	"github.com/syncwell/taskvault/internal/store"
	"github.com/syncwell/taskvault/internal/wire"
	"github.com/syncwell/taskvault/models"
)

// PushOutcome summarises one push batch.
type PushOutcome struct {
	// Pushed counts operations the server accepted.
	Pushed int
	// Rejected lists terminal per-record verdicts; their operations have
	// been dequeued and are never retried automatically.
	Rejected []models.Rejection
	// Conflicts holds server-reported conflicts with the remote revision
	// already decrypted. Their operations stay queued.
	Conflicts []models.Conflict
}

type pushHandler struct {
	queue  store.QueueRepository
	tasks  store.TaskRepository
	cipher crypto.Cipher
	client wire.Client

	logger *logger.Logger
}

func NewPushHandler(
	queueRepo store.QueueRepository,
	tasks store.TaskRepository,
	cipher crypto.Cipher,
	client wire.Client,
	log *logger.Logger,
) PushHandler {
	return &pushHandler{
		queue:  queueRepo,
		tasks:  tasks,
		cipher: cipher,
		client: client,
		logger: log,
	}
}

// Push uploads every active pending operation in one batch. For creates and
// updates the payload is sealed from the task's current plaintext right
// here, so the server always receives the newest state with a fresh nonce.
func (h *pushHandler) Push(ctx context.Context, session *models.SyncSession) (PushOutcome, error) {
	var outcome PushOutcome

	ops, err := h.queue.List(ctx, false)
	if err != nil {
		return outcome, fmt.Errorf("list pending operations: %w", err)
	}
	if len(ops) == 0 {
		return outcome, nil
	}

	wireOps := make([]models.WireOperation, 0, len(ops))
	seqByTask := make(map[string][]int64, len(ops))

	for _, op := range ops {
		seqByTask[op.TaskID] = append(seqByTask[op.TaskID], op.Seq)

		wireOp := models.WireOperation{
			Type:          op.Type,
			TaskID:        op.TaskID,
			CausalVersion: op.CausalVersion,
		}

		if op.Type != models.OpDelete {
			blob, nonce, checksum, sealErr := h.sealTask(ctx, op.TaskID)
			if sealErr != nil {
				return outcome, sealErr
			}
			wireOp.EncryptedBlob = blob
			wireOp.Nonce = nonce
			wireOp.Checksum = checksum
		}

		wireOps = append(wireOps, wireOp)
	}

	resp, err := h.client.Push(ctx, models.PushRequest{
		DeviceID:            session.DeviceID,
		Operations:          wireOps,
		ClientCausalVersion: session.CausalVersion,
	})
	if err != nil {
		return outcome, err
	}

	// accepted and rejected operations leave the queue either way; a
	// rejection is terminal for the record
	var doneSeqs []int64
	for _, taskID := range resp.Accepted {
		doneSeqs = append(doneSeqs, seqByTask[taskID]...)
	}
	for _, rejection := range resp.Rejected {
		doneSeqs = append(doneSeqs, seqByTask[rejection.TaskID]...)
		h.logger.Warn().
			Str("task_id", rejection.TaskID).
			Str("reason", rejection.Reason).
			Msg("server rejected operation")
	}
	if err := h.queue.Remove(ctx, doneSeqs); err != nil {
		return outcome, fmt.Errorf("dequeue acknowledged operations: %w", err)
	}

	outcome.Pushed = len(resp.Accepted)
	outcome.Rejected = resp.Rejected
	outcome.Conflicts = decryptWireConflicts(ctx, h.tasks, h.cipher, h.logger, resp.Conflicts)

	session.CausalVersion = session.CausalVersion.Merge(resp.ServerCausalVersion)

	h.logger.Info().
		Int("accepted", outcome.Pushed).
		Int("rejected", len(outcome.Rejected)).
		Int("conflicts", len(outcome.Conflicts)).
		Msg("push batch acknowledged")

	return outcome, nil
}

// sealTask loads the task's current plaintext and encrypts it for the wire.
func (h *pushHandler) sealTask(ctx context.Context, taskID string) (blob, nonce, checksum string, err error) {
	task, err := h.tasks.Get(ctx, taskID)
	if err != nil {
		return "", "", "", fmt.Errorf("load task for push (id=%s): %w", taskID, err)
	}

	plaintext, err := json.Marshal(task)
	if err != nil {
		return "", "", "", fmt.Errorf("encode task for push (id=%s): %w", taskID, err)
	}

	blob, nonce, err = h.cipher.Encrypt(plaintext)
	if err != nil {
		return "", "", "", fmt.Errorf("encrypt task for push (id=%s): %w", taskID, err)
	}

	return blob, nonce, h.cipher.Checksum(plaintext), nil
}
