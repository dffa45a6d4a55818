package models

// SyncStatus is the terminal state of one sync run.
type SyncStatus string

const (
	StatusSuccess        SyncStatus = "success"
	StatusError          SyncStatus = "error"
	StatusConflict       SyncStatus = "conflict"
	StatusAlreadyRunning SyncStatus = "already_running"
)

// SyncPriority distinguishes user-triggered runs, which bypass the retry
// gate, from automatic background runs, which respect it.
type SyncPriority int

const (
	PriorityAutomatic SyncPriority = iota
	PriorityUser
)

// SyncResult is the only thing the coordinator surfaces upward: a terminal
// status plus a human-readable reason. Raw error types never leak past the
// coordinator boundary.
type SyncResult struct {
	Status SyncStatus `json:"status"`

	// Reason is a human-readable explanation for error and conflict
	// statuses; empty on success.
	Reason string `json:"reason,omitempty"`

	// Pushed is the number of operations the server accepted.
	Pushed int `json:"pushed"`
	// Rejected lists per-record push verdicts the server refused.
	Rejected []Rejection `json:"rejected,omitempty"`
	// Pulled is the number of remote revisions applied locally.
	Pulled int `json:"pulled"`
	// Removed is the number of local tombstones applied from the server.
	Removed int `json:"removed"`

	// Conflicts holds unresolved conflicts under the manual strategy.
	Conflicts []Conflict `json:"conflicts,omitempty"`
}
