package models

import "time"

// Conflict pairs the local and remote revisions of a task whose causal
// versions are concurrent. Conflicts are transient within a sync run; they
// are persisted only when the session strategy is manual, so that the caller
// can list and resolve them across restarts.
type Conflict struct {
	TaskID string `json:"task_id"`
	Local  *Task  `json:"local"`
	Remote *Task  `json:"remote"`

	DetectedAt time.Time `json:"detected_at"`
}
