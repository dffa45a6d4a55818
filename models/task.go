package models

import "time"

// Task is the synchronized unit. It is held in plaintext in the local store
// only; on the wire and on the server it exists exclusively as an encrypted
// blob (see EncryptedTask).
type Task struct {
	// ID is the client-assigned UUID of the task.
	ID string `json:"id"`

	// Title is the short display text of the task.
	Title string `json:"title"`

	// Notes holds optional free-form text.
	Notes string `json:"notes,omitempty"`

	// Done marks the task as completed.
	Done bool `json:"done"`

	// Tags are free-form labels used for filtering.
	Tags []string `json:"tags,omitempty"`

	// Subtasks are nested checklist entries.
	Subtasks []Subtask `json:"subtasks,omitempty"`

	// DependsOn lists ids of tasks that must complete before this one.
	DependsOn []string `json:"depends_on,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// CausalVersion orders this revision against revisions produced by
	// other devices.
	CausalVersion VectorClock `json:"causal_version"`
}

// Subtask is a single checklist entry inside a task.
type Subtask struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}
