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

type taskRepository struct {
	*DB
	logger *logger.Logger
}

func NewTaskRepository(db *DB, logger *logger.Logger) TaskRepository {
	return &taskRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *taskRepository) Save(ctx context.Context, task models.Task) error {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to encode task (id=%s): %w", task.ID, err)
	}
	clock, err := json.Marshal(task.CausalVersion)
	if err != nil {
		return fmt.Errorf("failed to encode task causal version (id=%s): %w", task.ID, err)
	}

	_, err = r.DB.ExecContext(ctx, saveTask,
		task.ID,
		string(payload),
		task.Done,
		string(clock),
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "taskRepository.Save").
			Str("task_id", task.ID).
			Msg("failed to execute upsert for task")
		return fmt.Errorf("failed to save task (id=%s): %w", task.ID, err)
	}

	return nil
}

func (r *taskRepository) Get(ctx context.Context, taskID string) (models.Task, error) {
	log := logger.FromContext(ctx)

	var payload string
	err := r.DB.QueryRowContext(ctx, getTask, taskID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrTaskNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "taskRepository.Get").
			Str("task_id", taskID).
			Msg("failed to query task")
		return models.Task{}, fmt.Errorf("failed to query task: %w", err)
	}

	var task models.Task
	if err := json.Unmarshal([]byte(payload), &task); err != nil {
		return models.Task{}, fmt.Errorf("failed to decode task payload (id=%s): %w", taskID, err)
	}

	return task, nil
}

func (r *taskRepository) GetAll(ctx context.Context) ([]models.Task, error) {
	return r.selectTasks(ctx, nil)
}

func (r *taskRepository) GetByDone(ctx context.Context, done bool) ([]models.Task, error) {
	return r.selectTasks(ctx, &done)
}

func (r *taskRepository) selectTasks(ctx context.Context, done *bool) ([]models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectTasksQuery(done)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "taskRepository.selectTasks").
			Msg("failed to execute query for tasks")
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			log.Err(err).
				Str("func", "taskRepository.selectTasks").
				Msg("failed to scan task row")
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}

		var task models.Task
		if err := json.Unmarshal([]byte(payload), &task); err != nil {
			return nil, fmt.Errorf("failed to decode task payload: %w", err)
		}
		tasks = append(tasks, task)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "taskRepository.selectTasks").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating task rows: %w", rowsErr)
	}

	return tasks, nil
}

func (r *taskRepository) Delete(ctx context.Context, taskID string) error {
	log := logger.FromContext(ctx)

	res, err := r.DB.ExecContext(ctx, deleteTask, taskID)
	if err != nil {
		log.Err(err).
			Str("func", "taskRepository.Delete").
			Str("task_id", taskID).
			Msg("failed to delete task")
		return fmt.Errorf("failed to delete task (id=%s): %w", taskID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrTaskNotFound
	}

	return nil
}
