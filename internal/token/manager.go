// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskVault Authors

// Package token keeps the bearer credential of the sync session valid:
// proactive refresh shortly before expiry, and exactly one reactive refresh
// after an auth-classified failure.
package token

import (
	"context"
	"fmt"
	"time"

	"github.com/syncwell/taskvault/internal/logger"
	"github.com/syncwell/taskvault/internal/store"
	"github.com/syncwell/taskvault/internal/utils"
	"github.com/syncwell/taskvault/internal/wire"
	"github.com/syncwell/taskvault/models"
)

// refreshThreshold is how close to expiry the token may get before a sync
// run refreshes it up front.
const refreshThreshold = 5 * time.Minute

// Manager owns credential lifecycle for the sync session.
type Manager struct {
	client   wire.Client
	sessions store.SessionRepository

	logger *logger.Logger
}

func NewManager(client wire.Client, sessions store.SessionRepository, log *logger.Logger) *Manager {
	return &Manager{
		client:   client,
		sessions: sessions,
		logger:   log,
	}
}

// EnsureValidToken installs the session credential on the wire client and
// refreshes it first when it is within [refreshThreshold] of expiry. The
// refreshed credential and its expiry are persisted back into the session.
func (m *Manager) EnsureValidToken(ctx context.Context, session *models.SyncSession) error {
	m.client.SetToken(session.Token)

	if !m.NeedsRefresh(session) {
		return nil
	}

	m.logger.Debug().
		Str("device_id", session.DeviceID).
		Time("expires_at", session.TokenExpiresAt).
		Msg("token near expiry, refreshing before sync")

	return m.refresh(ctx, session)
}

// NeedsRefresh reports whether the session credential expires within
// [refreshThreshold]. A session with no expiry on record falls back to the
// exp claim of the token itself; if that is also unavailable the credential
// is assumed valid and failures surface as auth errors during the run.
func (m *Manager) NeedsRefresh(session *models.SyncSession) bool {
	if session.Token == "" {
		return false
	}

	expiry := session.TokenExpiresAt
	if expiry.IsZero() {
		claimExpiry, err := utils.TokenExpiry(session.Token)
		if err != nil {
			return false
		}
		expiry = claimExpiry
	}

	return time.Until(expiry) < refreshThreshold
}

// HandleUnauthorized performs the single reactive refresh allowed after an
// auth-classified failure. It returns true when the caller should retry the
// failed request once with the new credential, false when the refresh itself
// failed and the run must stop.
func (m *Manager) HandleUnauthorized(ctx context.Context, session *models.SyncSession) (bool, error) {
	m.logger.Info().
		Str("device_id", session.DeviceID).
		Msg("auth failure, attempting token refresh")

	if err := m.refresh(ctx, session); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Manager) refresh(ctx context.Context, session *models.SyncSession) error {
	resp, err := m.client.RefreshToken(ctx)
	if err != nil {
		m.logger.Err(err).
			Str("device_id", session.DeviceID).
			Msg("token refresh failed")
		return fmt.Errorf("refresh token: %w", err)
	}

	session.Token = resp.Token
	session.TokenExpiresAt = resp.ExpiresAt

	if err := m.sessions.Save(ctx, *session); err != nil {
		return fmt.Errorf("persist refreshed token: %w", err)
	}

	m.logger.Debug().
		Str("device_id", session.DeviceID).
		Time("expires_at", resp.ExpiresAt).
		Msg("token refreshed")
	return nil
}
