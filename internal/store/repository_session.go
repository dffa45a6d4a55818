package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/syncwell/taskvault/internal/logger"
	"github.com/syncwell/taskvault/models"
)

type sessionRepository struct {
	*DB
	logger *logger.Logger
}

func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	return &sessionRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *sessionRepository) Get(ctx context.Context) (models.SyncSession, error) {
	log := logger.FromContext(ctx)

	var (
		session       models.SyncSession
		clock         string
		tokenExpires  sql.NullTime
		lastFailureAt sql.NullTime
		nextRetryAt   sql.NullTime
		lastSyncedAt  sql.NullTime
	)

	err := r.DB.QueryRowContext(ctx, getSession).Scan(
		&session.DeviceID,
		&session.Endpoint,
		&session.Token,
		&tokenExpires,
		&session.EncryptionSalt,
		&clock,
		&session.Strategy,
		&session.ConsecutiveFailures,
		&lastFailureAt,
		&nextRetryAt,
		&lastSyncedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncSession{}, ErrSessionNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "sessionRepository.Get").
			Msg("failed to query sync session")
		return models.SyncSession{}, fmt.Errorf("failed to query sync session: %w", err)
	}

	if err := json.Unmarshal([]byte(clock), &session.CausalVersion); err != nil {
		return models.SyncSession{}, fmt.Errorf("failed to decode session causal version: %w", err)
	}

	if tokenExpires.Valid {
		session.TokenExpiresAt = tokenExpires.Time
	}
	if lastFailureAt.Valid {
		session.LastFailureAt = &lastFailureAt.Time
	}
	if nextRetryAt.Valid {
		session.NextRetryAt = &nextRetryAt.Time
	}
	if lastSyncedAt.Valid {
		session.LastSyncedAt = &lastSyncedAt.Time
	}

	return session, nil
}

func (r *sessionRepository) Save(ctx context.Context, session models.SyncSession) error {
	log := logger.FromContext(ctx)

	clock, err := json.Marshal(session.CausalVersion)
	if err != nil {
		return fmt.Errorf("failed to encode session causal version: %w", err)
	}

	var tokenExpires any
	if !session.TokenExpiresAt.IsZero() {
		tokenExpires = session.TokenExpiresAt
	}

	_, err = r.DB.ExecContext(ctx, saveSession,
		session.DeviceID,
		session.Endpoint,
		session.Token,
		tokenExpires,
		session.EncryptionSalt,
		string(clock),
		string(session.Strategy),
		session.ConsecutiveFailures,
		timePtrArg(session.LastFailureAt),
		timePtrArg(session.NextRetryAt),
		timePtrArg(session.LastSyncedAt),
	)
	if err != nil {
		log.Err(err).
			Str("func", "sessionRepository.Save").
			Str("device_id", session.DeviceID).
			Msg("failed to upsert sync session")
		return fmt.Errorf("failed to save sync session: %w", err)
	}

	return nil
}

// timePtrArg maps a nil *time.Time to SQL NULL.
func timePtrArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
