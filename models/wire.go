// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskVault Authors

package models

import "time"

// WireOperation is a single queued mutation as transmitted to the server.
// Create and update operations carry the encrypted payload, its nonce, and a
// checksum of the plaintext serialization; deletes carry neither.
type WireOperation struct {
	Type          OperationType `json:"type"`
	TaskID        string        `json:"taskId"`
	EncryptedBlob string        `json:"encryptedBlob,omitempty"`
	Nonce         string        `json:"nonce,omitempty"`
	Checksum      string        `json:"checksum,omitempty"`
	CausalVersion VectorClock   `json:"causalVersion"`
}

// PushRequest is the body of POST /sync/push.
type PushRequest struct {
	DeviceID            string          `json:"deviceId"`
	Operations          []WireOperation `json:"operations"`
	ClientCausalVersion VectorClock     `json:"clientCausalVersion"`
}

// Rejection describes a per-record push verdict the server refused, e.g. a
// checksum or causal-version mismatch. Rejections are terminal for the
// affected record; they are never retried automatically.
type Rejection struct {
	TaskID  string `json:"taskId"`
	Reason  string `json:"reason"`
	Details string `json:"details,omitempty"`
}

// WireConflict is a server-reported conflict: the remote revision of a task
// the server could not reconcile with the client's push.
type WireConflict struct {
	TaskID string        `json:"taskId"`
	Remote EncryptedTask `json:"remote"`
}

// PushResponse is the server verdict for one push batch.
type PushResponse struct {
	Accepted            []string       `json:"accepted"`
	Rejected            []Rejection    `json:"rejected"`
	Conflicts           []WireConflict `json:"conflicts"`
	ServerCausalVersion VectorClock    `json:"serverCausalVersion"`
}

// PullRequest is the body of POST /sync/pull. The server returns all changes
// strictly after LastCausalVersion.
type PullRequest struct {
	DeviceID          string      `json:"deviceId"`
	LastCausalVersion VectorClock `json:"lastCausalVersion"`
}

// EncryptedTask is the opaque wire form of a task. The server never sees
// plaintext; it stores and forwards the blob as-is.
type EncryptedTask struct {
	ID            string      `json:"id"`
	EncryptedBlob string      `json:"encryptedBlob"`
	Nonce         string      `json:"nonce"`
	CausalVersion VectorClock `json:"causalVersion"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// PullResponse carries all remote changes since the requested causal
// version, plus any conflicts the server already knows about for this
// device.
type PullResponse struct {
	Tasks               []EncryptedTask `json:"tasks"`
	DeletedTaskIDs      []string        `json:"deletedTaskIds"`
	ServerCausalVersion VectorClock     `json:"serverCausalVersion"`
	Conflicts           []WireConflict  `json:"conflicts"`
}

// RefreshResponse is returned by POST /auth/refresh.
type RefreshResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SaltResponse is returned by GET /auth/encryption-salt.
type SaltResponse struct {
	Salt string `json:"salt"`
}

// StatusResponse is returned by GET /sync/status.
type StatusResponse struct {
	Devices       int `json:"devices"`
	StoredTasks   int `json:"storedTasks"`
	OpenConflicts int `json:"openConflicts"`
}
