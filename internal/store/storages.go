package store

import (
	"context"
	"fmt"

	"github.com/syncwell/taskvault/internal/config"
	"github.com/syncwell/taskvault/internal/logger"
)

// Storages groups all local repositories into a single value that can be
// passed around the service layer.
type Storages struct {
	// Tasks is the plaintext task store.
	Tasks TaskRepository
	// Queue is the durable outbound operation queue.
	Queue QueueRepository
	// Sessions holds the single sync session row.
	Sessions SessionRepository
	// Conflicts holds unresolved conflicts under the manual strategy.
	Conflicts ConflictRepository
}

// NewStorages initialises the local storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Constructs and returns a [Storages] value wired to fresh repositories
//     sharing the connection.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewStorages(cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		Tasks:     NewTaskRepository(db, logger),
		Queue:     NewQueueRepository(db, logger),
		Sessions:  NewSessionRepository(db, logger),
		Conflicts: NewConflictRepository(db, logger),
	}, nil
}
