// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskVault Authors

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/syncwell/taskvault/internal/logger"
	"github.com/syncwell/taskvault/internal/store"
	"github.com/syncwell/taskvault/models"
)

type taskService struct {
	tasks    store.TaskRepository
	queue    store.QueueRepository
	sessions store.SessionRepository

	logger *logger.Logger
}

func NewTaskService(
	tasks store.TaskRepository,
	queueRepo store.QueueRepository,
	sessions store.SessionRepository,
	log *logger.Logger,
) TaskService {
	return &taskService{
		tasks:    tasks,
		queue:    queueRepo,
		sessions: sessions,
		logger:   log,
	}
}

func (s *taskService) Create(ctx context.Context, task models.Task) (models.Task, error) {
	session, err := s.sessions.Get(ctx)
	if err != nil {
		return models.Task{}, fmt.Errorf("load session: %w", err)
	}

	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now
	task.CausalVersion = task.CausalVersion.Tick(session.DeviceID)

	if err := s.tasks.Save(ctx, task); err != nil {
		return models.Task{}, err
	}
	if err := s.enqueue(ctx, models.OpCreate, task); err != nil {
		return models.Task{}, err
	}

	s.logger.Debug().Str("task_id", task.ID).Msg("task created")
	return task, nil
}

func (s *taskService) Update(ctx context.Context, task models.Task) (models.Task, error) {
	session, err := s.sessions.Get(ctx)
	if err != nil {
		return models.Task{}, fmt.Errorf("load session: %w", err)
	}

	existing, err := s.tasks.Get(ctx, task.ID)
	if err != nil {
		return models.Task{}, err
	}

	task.CreatedAt = existing.CreatedAt
	task.UpdatedAt = time.Now().UTC()
	task.CausalVersion = existing.CausalVersion.Tick(session.DeviceID)

	if err := s.tasks.Save(ctx, task); err != nil {
		return models.Task{}, err
	}
	if err := s.enqueue(ctx, models.OpUpdate, task); err != nil {
		return models.Task{}, err
	}

	s.logger.Debug().Str("task_id", task.ID).Msg("task updated")
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, taskID string) error {
	session, err := s.sessions.Get(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	existing, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return err
	}

	tombstone := existing
	tombstone.CausalVersion = existing.CausalVersion.Tick(session.DeviceID)
	if err := s.enqueue(ctx, models.OpDelete, tombstone); err != nil {
		return err
	}

	s.logger.Debug().Str("task_id", taskID).Msg("task deleted")
	return nil
}

func (s *taskService) Get(ctx context.Context, taskID string) (models.Task, error) {
	return s.tasks.Get(ctx, taskID)
}

func (s *taskService) List(ctx context.Context) ([]models.Task, error) {
	return s.tasks.GetAll(ctx)
}

func (s *taskService) ListByDone(ctx context.Context, done bool) ([]models.Task, error) {
	return s.tasks.GetByDone(ctx, done)
}

func (s *taskService) enqueue(ctx context.Context, opType models.OperationType, task models.Task) error {
	_, err := s.queue.Enqueue(ctx, models.PendingOperation{
		Type:          opType,
		TaskID:        task.ID,
		CausalVersion: task.CausalVersion.Clone(),
		EnqueuedAt:    time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("record pending %s (task_id=%s): %w", opType, task.ID, err)
	}
	return nil
}
