package wire

import (
	"context"

	"github.com/syncwell/taskvault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/wire_client_mock.go -package=mock

// Client is the typed mapping onto the remote sync protocol. Every call
// attaches the bearer credential unless noted otherwise. Implementations
// categorize transport failures into the sentinel errors of this package;
// downstream retry and refresh decisions key off that classification.
type Client interface {
	// SetToken stores the bearer credential for all subsequent
	// authenticated requests.
	SetToken(token string)

	// Token returns the bearer credential currently held, or "".
	Token() string

	// Push uploads one batch of pending operations to POST /sync/push and
	// returns the server's per-record verdicts.
	Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error)

	// Pull requests all remote changes strictly after the given causal
	// version from POST /sync/pull.
	Pull(ctx context.Context, req models.PullRequest) (models.PullResponse, error)

	// RefreshToken exchanges the current credential for a fresh one via
	// POST /auth/refresh.
	RefreshToken(ctx context.Context) (models.RefreshResponse, error)

	// EncryptionSalt fetches the key-derivation salt from
	// GET /auth/encryption-salt.
	EncryptionSalt(ctx context.Context) ([]byte, error)

	// Status fetches device/storage/conflict counters from GET /sync/status.
	Status(ctx context.Context) (models.StatusResponse, error)

	// RevokeDevice asks the server to revoke another device's access via
	// POST /auth/revoke-device.
	RevokeDevice(ctx context.Context, deviceID string) error
}
