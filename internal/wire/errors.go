package wire

import "errors"

// Error kinds downstream components key their retry and refresh decisions
// on. Get the classification wrong and retries either thrash on permanent
// errors or give up on transient ones.
var (
	// ErrAuth marks 401/403 responses. Handled by exactly one token
	// refresh-and-retry; terminal afterwards.
	ErrAuth = errors.New("authentication failed")

	// ErrValidation marks 400/422 responses. Terminal for the affected
	// record; never retried.
	ErrValidation = errors.New("request rejected by server")

	// ErrNetwork marks 5xx/429 responses and transport-level failures.
	// Retryable with backoff.
	ErrNetwork = errors.New("network error")
)
