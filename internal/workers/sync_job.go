// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskVault Authors

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/syncwell/taskvault/internal/logger"
	"github.com/syncwell/taskvault/internal/service"
	"github.com/syncwell/taskvault/models"
)

const defaultSyncInterval = 5 * time.Minute

// SyncJob runs automatic sync rounds on a ticker until stopped.
type SyncJob struct {
	coordinator service.Coordinator

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewSyncJob creates a SyncJob driving the given coordinator. The job is
// idle until Start is called.
func NewSyncJob(coordinator service.Coordinator, log *logger.Logger) *SyncJob {
	return &SyncJob{
		coordinator: coordinator,
		logger:      log,
	}
}

// Start stops any previously running job, then launches a background
// goroutine that triggers an automatic sync every interval. If interval is
// zero or negative it defaults to 5 minutes. The goroutine exits when ctx is
// cancelled or Stop is called. Backoff after failures is handled inside the
// coordinator; the ticker just offers it the chance to run.
func (j *SyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				result := j.coordinator.Sync(jobCtx, models.PriorityAutomatic)
				if result.Status == models.StatusError {
					j.logger.Warn().
						Str("reason", result.Reason).
						Msg("automatic sync round failed")
				}
			}
		}
	}()
}

// Stop cancels the background goroutine and blocks until it has fully
// exited. Safe to call when the job is not running.
func (j *SyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
