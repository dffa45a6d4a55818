package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/syncwell/taskvault/internal/logger"
	"github.com/syncwell/taskvault/models"
)

type conflictRepository struct {
	*DB
	logger *logger.Logger
}

func NewConflictRepository(db *DB, logger *logger.Logger) ConflictRepository {
	return &conflictRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *conflictRepository) Save(ctx context.Context, conflict models.Conflict) error {
	log := logger.FromContext(ctx)

	local, err := json.Marshal(conflict.Local)
	if err != nil {
		return fmt.Errorf("failed to encode local revision (task_id=%s): %w", conflict.TaskID, err)
	}
	remote, err := json.Marshal(conflict.Remote)
	if err != nil {
		return fmt.Errorf("failed to encode remote revision (task_id=%s): %w", conflict.TaskID, err)
	}

	_, err = r.DB.ExecContext(ctx, saveConflict,
		conflict.TaskID,
		string(local),
		string(remote),
		conflict.DetectedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.Save").
			Str("task_id", conflict.TaskID).
			Msg("failed to upsert conflict")
		return fmt.Errorf("failed to save conflict (task_id=%s): %w", conflict.TaskID, err)
	}

	return nil
}

func (r *conflictRepository) Get(ctx context.Context, taskID string) (models.Conflict, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getConflict, taskID)

	conflict, err := scanConflict(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Conflict{}, ErrConflictNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.Get").
			Str("task_id", taskID).
			Msg("failed to query conflict")
		return models.Conflict{}, err
	}

	return conflict, nil
}

func (r *conflictRepository) List(ctx context.Context) ([]models.Conflict, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listConflicts)
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.List").
			Msg("failed to execute query for conflicts")
		return nil, fmt.Errorf("failed to query conflicts: %w", err)
	}
	defer rows.Close()

	var conflicts []models.Conflict
	for rows.Next() {
		conflict, scanErr := scanConflict(rows.Scan)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "conflictRepository.List").
				Msg("failed to scan conflict row")
			return nil, scanErr
		}
		conflicts = append(conflicts, conflict)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "conflictRepository.List").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating conflict rows: %w", rowsErr)
	}

	return conflicts, nil
}

func (r *conflictRepository) Delete(ctx context.Context, taskID string) error {
	log := logger.FromContext(ctx)

	res, err := r.DB.ExecContext(ctx, deleteConflict, taskID)
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.Delete").
			Str("task_id", taskID).
			Msg("failed to delete conflict")
		return fmt.Errorf("failed to delete conflict (task_id=%s): %w", taskID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrConflictNotFound
	}

	return nil
}

func scanConflict(scan func(dest ...any) error) (models.Conflict, error) {
	var conflict models.Conflict
	var local, remote string

	if err := scan(&conflict.TaskID, &local, &remote, &conflict.DetectedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Conflict{}, err
		}
		return models.Conflict{}, fmt.Errorf("failed to scan conflict row: %w", err)
	}

	if err := json.Unmarshal([]byte(local), &conflict.Local); err != nil {
		return models.Conflict{}, fmt.Errorf("failed to decode local revision (task_id=%s): %w", conflict.TaskID, err)
	}
	if err := json.Unmarshal([]byte(remote), &conflict.Remote); err != nil {
		return models.Conflict{}, fmt.Errorf("failed to decode remote revision (task_id=%s): %w", conflict.TaskID, err)
	}

	return conflict, nil
}
