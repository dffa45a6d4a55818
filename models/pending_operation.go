package models

import "time"

// OperationType enumerates the kinds of queued mutations.
type OperationType string

const (
	OpCreate OperationType = "create"
	OpUpdate OperationType = "update"
	OpDelete OperationType = "delete"
)

// PendingOperation is a mutation recorded while the device is offline or
// between sync runs. It survives process restarts and is removed from the
// queue only after the server acknowledges acceptance.
//
// EncryptedBlob, Nonce and Checksum are filled in by the push handler
// immediately before transmission; the queue itself never holds plaintext
// nor a stale ciphertext.
type PendingOperation struct {
	// Seq is the queue sequence number, assigned on enqueue. Consolidation
	// relies on it to preserve the original mutation order per task.
	Seq int64 `json:"seq"`

	Type   OperationType `json:"type"`
	TaskID string        `json:"task_id"`

	EncryptedBlob string `json:"encrypted_blob,omitempty"`
	Nonce         string `json:"nonce,omitempty"`
	Checksum      string `json:"checksum,omitempty"`

	// CausalVersion is the task revision this operation carries.
	CausalVersion VectorClock `json:"causal_version"`

	// Parked marks operations excluded from automatic push because the task
	// has an unresolved conflict under the manual strategy.
	Parked bool `json:"parked"`

	EnqueuedAt time.Time `json:"enqueued_at"`
}
