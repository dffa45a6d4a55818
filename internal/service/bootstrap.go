// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskVault Authors

package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/syncwell/taskvault/internal/store"
	"github.com/syncwell/taskvault/models"
)

// BootstrapSession loads the durable sync session, creating it on first
// run. A session missing its credential or encryption salt blocks on the
// authenticator before it is persisted, so the first authenticated request
// already carries a valid token.
func BootstrapSession(
	ctx context.Context,
	sessions store.SessionRepository,
	auth Authenticator,
	endpoint string,
	strategy models.ConflictStrategy,
) (models.SyncSession, error) {
	session, err := sessions.Get(ctx)
	if errors.Is(err, store.ErrSessionNotFound) {
		session = models.SyncSession{
			DeviceID: uuid.NewString(),
			Endpoint: endpoint,
			Strategy: strategy,
		}
	} else if err != nil {
		return models.SyncSession{}, fmt.Errorf("load session: %w", err)
	}

	if session.Token == "" || session.EncryptionSalt == "" {
		cred, credErr := auth.AwaitCredential(ctx)
		if credErr != nil {
			return models.SyncSession{}, fmt.Errorf("await credential: %w", credErr)
		}
		session.Token = cred.Token
		session.TokenExpiresAt = cred.ExpiresAt
		session.EncryptionSalt = base64.StdEncoding.EncodeToString(cred.Salt)
	}

	if err := sessions.Save(ctx, session); err != nil {
		return models.SyncSession{}, fmt.Errorf("persist session: %w", err)
	}
	return session, nil
}
