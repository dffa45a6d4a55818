// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskVault Authors

// Package retry gates automatic sync attempts with persisted exponential
// backoff. The failure count lives in the sync session so backoff survives
// process restarts; user-initiated syncs always bypass the gate.
package retry

import (
	"math/rand"
	"time"

	"github.com/syncwell/taskvault/internal/config"
	"github.com/syncwell/taskvault/internal/logger"
	"github.com/syncwell/taskvault/models"
)

// jitterDivisor bounds jitter at a quarter of the computed delay, so
// devices that failed together do not retry in lockstep.
const jitterDivisor = 4

// Manager decides when the next automatic sync attempt may run.
type Manager struct {
	baseDelay time.Duration
	maxDelay  time.Duration

	// now is replaceable for tests.
	now func() time.Time

	logger *logger.Logger
}

func NewManager(cfg config.Retry, log *logger.Logger) *Manager {
	return &Manager{
		baseDelay: cfg.BaseDelay,
		maxDelay:  cfg.MaxDelay,
		now:       time.Now,
		logger:    log,
	}
}

// Allowed reports whether a sync attempt may run now. User-priority syncs
// are always allowed; automatic ones wait until the scheduled retry time.
func (m *Manager) Allowed(session *models.SyncSession, priority models.SyncPriority) bool {
	if priority == models.PriorityUser {
		return true
	}
	if session.NextRetryAt == nil {
		return true
	}
	return !m.now().Before(*session.NextRetryAt)
}

// RecordFailure bumps the consecutive failure count and schedules the next
// automatic attempt. The caller persists the session.
func (m *Manager) RecordFailure(session *models.SyncSession) {
	session.ConsecutiveFailures++

	now := m.now()
	next := now.Add(m.Backoff(session.ConsecutiveFailures))
	session.LastFailureAt = &now
	session.NextRetryAt = &next

	m.logger.Debug().
		Int("consecutive_failures", session.ConsecutiveFailures).
		Time("next_retry_at", next).
		Msg("sync failure recorded, backoff scheduled")
}

// RecordSuccess clears all backoff state and stamps the sync time. The
// caller persists the session.
func (m *Manager) RecordSuccess(session *models.SyncSession) {
	now := m.now()
	m.ClearBackoff(session)
	session.LastSyncedAt = &now
}

// ClearBackoff resets the failure count and retry schedule without
// stamping the sync time. Used when the server was reachable but the
// round did not fully converge, such as when conflicts await manual
// resolution. The caller persists the session.
func (m *Manager) ClearBackoff(session *models.SyncSession) {
	session.ConsecutiveFailures = 0
	session.LastFailureAt = nil
	session.NextRetryAt = nil
}

// Backoff returns the delay preceding the attempt after the given number of
// consecutive failures: base doubled per failure plus up to 25% random
// jitter, the whole capped at the configured maximum.
func (m *Manager) Backoff(failures int) time.Duration {
	if failures <= 0 {
		return 0
	}

	delay := m.baseDelay
	for i := 1; i < failures; i++ {
		delay *= 2
		if delay >= m.maxDelay || delay <= 0 {
			delay = m.maxDelay
			break
		}
	}

	if jitterRange := int64(delay / jitterDivisor); jitterRange > 0 {
		delay += time.Duration(rand.Int63n(jitterRange))
	}
	if delay > m.maxDelay {
		delay = m.maxDelay
	}

	return delay
}
