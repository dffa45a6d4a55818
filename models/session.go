// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskVault Authors

package models

import "time"

// ConflictStrategy selects how concurrent edits of the same task are settled.
type ConflictStrategy string

const (
	// StrategyLastWriteWins keeps the revision with the later modification
	// timestamp, ties broken by device id.
	StrategyLastWriteWins ConflictStrategy = "last_write_wins"
	// StrategyManual surfaces conflicts to the caller instead of resolving
	// them; the sync run terminates with a conflict status.
	StrategyManual ConflictStrategy = "manual"
)

// Credential is the outcome of a session negotiation performed outside the
// engine: the bearer token, its expiry, and the server-held key derivation
// salt.
type Credential struct {
	Token     string
	ExpiresAt time.Time
	Salt      []byte
}

// SyncSession is the single durable record describing this device's
// relationship with the remote store. It is read at the start of every sync
// run and written only at well-defined checkpoints (token refresh, post-push
// and post-pull clock adoption, failure bookkeeping). It is never deleted,
// only reset.
type SyncSession struct {
	// DeviceID identifies this device in every causal version entry.
	DeviceID string `json:"device_id"`

	// Endpoint is the base URL of the remote sync server.
	Endpoint string `json:"endpoint"`

	// Token is the current bearer credential.
	Token string `json:"token"`

	// TokenExpiresAt is the credential expiry reported by the server. A zero
	// value means unknown; the token manager recovers it from the JWT exp
	// claim where possible.
	TokenExpiresAt time.Time `json:"token_expires_at"`

	// EncryptionSalt is the base64-encoded salt used for local key
	// derivation. It is not a secret.
	EncryptionSalt string `json:"encryption_salt"`

	// CausalVersion is the session high-water mark: the latest server clock
	// this device has fully processed. It only ever advances.
	CausalVersion VectorClock `json:"causal_version"`

	// Strategy is the active conflict resolution strategy.
	Strategy ConflictStrategy `json:"strategy"`

	// ConsecutiveFailures counts network-classified sync failures since the
	// last success. Drives exponential backoff.
	ConsecutiveFailures int        `json:"consecutive_failures"`
	LastFailureAt       *time.Time `json:"last_failure_at,omitempty"`
	NextRetryAt         *time.Time `json:"next_retry_at,omitempty"`

	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
}

// Configured reports whether the session carries enough state for a sync run
// to be attempted at all.
func (s *SyncSession) Configured() bool {
	return s.DeviceID != "" && s.Endpoint != ""
}
