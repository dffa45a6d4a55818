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
	"github.com/syncwell/taskvault/models"
)

// decryptWireConflicts turns server-reported conflicts into domain
// conflicts with both revisions in plaintext. Remote revisions that fail
// to decrypt are dropped with a log entry; the server reports them again
// on the next round. A missing local revision is left nil.
func decryptWireConflicts(
	ctx context.Context,
	tasks store.TaskRepository,
	cipher crypto.Cipher,
	log *logger.Logger,
	wireConflicts []models.WireConflict,
) []models.Conflict {
	var conflicts []models.Conflict

	for _, wc := range wireConflicts {
		remote, err := decryptRemoteRevision(cipher, wc.Remote)
		if err != nil {
			log.Err(err).
				Str("task_id", wc.TaskID).
				Msg("failed to decrypt conflicting remote revision")
			continue
		}

		conflict := models.Conflict{
			TaskID:     wc.TaskID,
			Remote:     remote,
			DetectedAt: time.Now().UTC(),
		}

		local, err := tasks.Get(ctx, wc.TaskID)
		if err == nil {
			conflict.Local = &local
		} else if !errors.Is(err, store.ErrTaskNotFound) {
			log.Err(err).
				Str("task_id", wc.TaskID).
				Msg("failed to load local revision of conflict")
			continue
		}

		conflicts = append(conflicts, conflict)
	}

	return conflicts
}

func decryptRemoteRevision(cipher crypto.Cipher, enc models.EncryptedTask) (*models.Task, error) {
	plaintext, err := cipher.Decrypt(enc.EncryptedBlob, enc.Nonce)
	if err != nil {
		return nil, err
	}

	var task models.Task
	if err := json.Unmarshal(plaintext, &task); err != nil {
		return nil, fmt.Errorf("decode remote task payload: %w", err)
	}

	task.CausalVersion = enc.CausalVersion
	return &task, nil
}
