package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/syncwell/taskvault/internal/logger"
	"github.com/syncwell/taskvault/models"
)

type queueRepository struct {
	*DB
	logger *logger.Logger
}

func NewQueueRepository(db *DB, logger *logger.Logger) QueueRepository {
	return &queueRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *queueRepository) Enqueue(ctx context.Context, op models.PendingOperation) (int64, error) {
	log := logger.FromContext(ctx)

	clock, err := json.Marshal(op.CausalVersion)
	if err != nil {
		return 0, fmt.Errorf("failed to encode operation causal version (task_id=%s): %w", op.TaskID, err)
	}

	res, err := r.DB.ExecContext(ctx, enqueueOperation,
		string(op.Type),
		op.TaskID,
		op.EncryptedBlob,
		op.Nonce,
		op.Checksum,
		string(clock),
		op.Parked,
		op.EnqueuedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.Enqueue").
			Str("task_id", op.TaskID).
			Str("type", string(op.Type)).
			Msg("failed to enqueue pending operation")
		return 0, fmt.Errorf("failed to enqueue operation (task_id=%s): %w", op.TaskID, err)
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read assigned sequence number: %w", err)
	}

	return seq, nil
}

func (r *queueRepository) List(ctx context.Context, includeParked bool) ([]models.PendingOperation, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListOperationsQuery(includeParked)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.List").
			Msg("failed to execute query for pending operations")
		return nil, fmt.Errorf("failed to query pending operations: %w", err)
	}
	defer rows.Close()

	var ops []models.PendingOperation
	for rows.Next() {
		op, scanErr := scanOperation(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "queueRepository.List").
				Msg("failed to scan pending operation row")
			return nil, scanErr
		}
		ops = append(ops, op)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "queueRepository.List").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating pending operation rows: %w", rowsErr)
	}

	return ops, nil
}

func (r *queueRepository) Remove(ctx context.Context, seqs []int64) error {
	if len(seqs) == 0 {
		return nil
	}

	log := logger.FromContext(ctx)

	query, args, err := buildDeleteOperationsQuery(seqs)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "queueRepository.Remove").
			Ints64("seqs", seqs).
			Msg("failed to remove pending operations")
		return fmt.Errorf("failed to remove pending operations: %w", err)
	}

	return nil
}

// Replace rewrites part of the queue in one transaction. Consolidation calls
// it with the raw operations to drop and their folded replacements; either
// both take effect or neither does.
func (r *queueRepository) Replace(ctx context.Context, removeSeqs []int64, upserts []models.PendingOperation) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if len(removeSeqs) > 0 {
		query, args, buildErr := buildDeleteOperationsQuery(removeSeqs)
		if buildErr != nil {
			return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, buildErr)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).
				Str("func", "queueRepository.Replace").
				Msg("failed to remove consolidated operations")
			return fmt.Errorf("failed to remove consolidated operations: %w", err)
		}
	}

	for _, op := range upserts {
		clock, marshalErr := json.Marshal(op.CausalVersion)
		if marshalErr != nil {
			return fmt.Errorf("failed to encode operation causal version (task_id=%s): %w", op.TaskID, marshalErr)
		}

		if _, err = tx.ExecContext(ctx, enqueueOperation,
			string(op.Type),
			op.TaskID,
			op.EncryptedBlob,
			op.Nonce,
			op.Checksum,
			string(clock),
			op.Parked,
			op.EnqueuedAt,
		); err != nil {
			log.Err(err).
				Str("func", "queueRepository.Replace").
				Str("task_id", op.TaskID).
				Msg("failed to insert consolidated operation")
			return fmt.Errorf("failed to insert consolidated operation (task_id=%s): %w", op.TaskID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrCommitingTransaction, err)
	}

	return nil
}

func (r *queueRepository) Park(ctx context.Context, taskID string) error {
	return r.setParked(ctx, taskID, true)
}

func (r *queueRepository) Unpark(ctx context.Context, taskID string) error {
	return r.setParked(ctx, taskID, false)
}

func (r *queueRepository) setParked(ctx context.Context, taskID string, parked bool) error {
	log := logger.FromContext(ctx)

	if _, err := r.DB.ExecContext(ctx, setOperationsParked, parked, taskID); err != nil {
		log.Err(err).
			Str("func", "queueRepository.setParked").
			Str("task_id", taskID).
			Bool("parked", parked).
			Msg("failed to update parked flag")
		return fmt.Errorf("failed to update parked flag (task_id=%s): %w", taskID, err)
	}

	return nil
}

func scanOperation(rows *sql.Rows) (models.PendingOperation, error) {
	var op models.PendingOperation
	var clock string

	if err := rows.Scan(
		&op.Seq,
		&op.Type,
		&op.TaskID,
		&op.EncryptedBlob,
		&op.Nonce,
		&op.Checksum,
		&clock,
		&op.Parked,
		&op.EnqueuedAt,
	); err != nil {
		return models.PendingOperation{}, fmt.Errorf("failed to scan pending operation row: %w", err)
	}

	if err := json.Unmarshal([]byte(clock), &op.CausalVersion); err != nil {
		return models.PendingOperation{}, fmt.Errorf("failed to decode operation causal version (task_id=%s): %w", op.TaskID, err)
	}

	return op, nil
}
