// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskVault Authors

package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/syncwell/taskvault/internal/logger"
	"github.com/syncwell/taskvault/internal/mock"
	"github.com/syncwell/taskvault/internal/queue"
	"github.com/syncwell/taskvault/internal/service"
	"github.com/syncwell/taskvault/internal/store"
	"github.com/syncwell/taskvault/internal/wire"
	"github.com/syncwell/taskvault/models"
)

type coordinatorMocks struct {
	sessions  *mock.MockSessionRepository
	queue     *mock.MockQueueRepository
	conflicts *mock.MockConflictRepository
	cipher    *mock.MockCipher
	client    *mock.MockClient
	tokens    *mock.MockTokenManager
	gate      *mock.MockRetryGate
	optimizer *mock.MockQueueOptimizer
	push      *mock.MockPushHandler
	pull      *mock.MockPullHandler
	resolver  *mock.MockResolver
}

func newTestCoordinator(t *testing.T, ctrl *gomock.Controller) (service.Coordinator, *coordinatorMocks) {
	t.Helper()

	m := &coordinatorMocks{
		sessions:  mock.NewMockSessionRepository(ctrl),
		queue:     mock.NewMockQueueRepository(ctrl),
		conflicts: mock.NewMockConflictRepository(ctrl),
		cipher:    mock.NewMockCipher(ctrl),
		client:    mock.NewMockClient(ctrl),
		tokens:    mock.NewMockTokenManager(ctrl),
		gate:      mock.NewMockRetryGate(ctrl),
		optimizer: mock.NewMockQueueOptimizer(ctrl),
		push:      mock.NewMockPushHandler(ctrl),
		pull:      mock.NewMockPullHandler(ctrl),
		resolver:  mock.NewMockResolver(ctrl),
	}

	coordinator := service.NewCoordinator(service.CoordinatorDeps{
		Sessions:  m.sessions,
		Queue:     m.queue,
		Conflicts: m.conflicts,
		Cipher:    m.cipher,
		Client:    m.client,
		Tokens:    m.tokens,
		Gate:      m.gate,
		Optimizer: m.optimizer,
		Push:      m.push,
		Pull:      m.pull,
		Resolver:  m.resolver,
		Logger:    logger.Nop(),
	})

	return coordinator, m
}

func configuredSession() models.SyncSession {
	return models.SyncSession{
		DeviceID:      "dev-1",
		Endpoint:      "https://vault.example.com",
		Token:         "token-1",
		CausalVersion: models.VectorClock{"dev-1": 3},
		Strategy:      models.StrategyLastWriteWins,
	}
}

// expectPreamble wires the expectations every run that reaches the push
// phase shares: session load, key check, gate check, token check and an
// empty-queue consolidation.
func expectPreamble(m *coordinatorMocks, session models.SyncSession) {
	m.sessions.EXPECT().Get(gomock.Any()).Return(session, nil)
	m.cipher.EXPECT().KeyInitialized().Return(true)
	m.gate.EXPECT().Allowed(gomock.Any(), gomock.Any()).Return(true)
	m.tokens.EXPECT().EnsureValidToken(gomock.Any(), gomock.Any()).Return(nil)
	m.queue.EXPECT().List(gomock.Any(), true).Return(nil, nil)
	m.optimizer.EXPECT().Consolidate(gomock.Any()).Return(queue.Plan{})
}

func TestCoordinator_Sync_NotConfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coordinator, m := newTestCoordinator(t, ctrl)
	m.sessions.EXPECT().Get(gomock.Any()).Return(models.SyncSession{}, store.ErrSessionNotFound)

	result := coordinator.Sync(context.Background(), models.PriorityUser)

	assert.Equal(t, models.StatusError, result.Status)
	assert.Equal(t, service.ErrNotConfigured.Error(), result.Reason)
}

func TestCoordinator_Sync_EmptySessionIsNotConfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coordinator, m := newTestCoordinator(t, ctrl)
	m.sessions.EXPECT().Get(gomock.Any()).Return(models.SyncSession{DeviceID: "dev-1"}, nil)

	result := coordinator.Sync(context.Background(), models.PriorityUser)

	assert.Equal(t, models.StatusError, result.Status)
	assert.Equal(t, service.ErrNotConfigured.Error(), result.Reason)
}

func TestCoordinator_Sync_KeyNotInitialized(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coordinator, m := newTestCoordinator(t, ctrl)
	m.sessions.EXPECT().Get(gomock.Any()).Return(configuredSession(), nil)
	m.cipher.EXPECT().KeyInitialized().Return(false)

	result := coordinator.Sync(context.Background(), models.PriorityUser)

	assert.Equal(t, models.StatusError, result.Status)
	assert.Equal(t, service.ErrKeyNotInitialized.Error(), result.Reason)
}

func TestCoordinator_Sync_BackoffGateBlocksAutomaticRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coordinator, m := newTestCoordinator(t, ctrl)
	m.sessions.EXPECT().Get(gomock.Any()).Return(configuredSession(), nil)
	m.cipher.EXPECT().KeyInitialized().Return(true)
	m.gate.EXPECT().Allowed(gomock.Any(), models.PriorityAutomatic).Return(false)

	result := coordinator.Sync(context.Background(), models.PriorityAutomatic)

	assert.Equal(t, models.StatusError, result.Status)
	assert.Equal(t, service.ErrRetryBackoff.Error(), result.Reason)
}

func TestCoordinator_Sync_HappyPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coordinator, m := newTestCoordinator(t, ctrl)
	session := configuredSession()
	expectPreamble(m, session)

	m.push.EXPECT().Push(gomock.Any(), gomock.Any()).
		Return(service.PushOutcome{Pushed: 3}, nil)
	m.pull.EXPECT().Pull(gomock.Any(), gomock.Any()).
		Return(service.PullOutcome{Applied: 2, Removed: 1}, nil)
	m.resolver.EXPECT().Apply(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	m.gate.EXPECT().RecordSuccess(gomock.Any())
	m.sessions.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	result := coordinator.Sync(context.Background(), models.PriorityUser)

	assert.Equal(t, models.StatusSuccess, result.Status)
	assert.Empty(t, result.Reason)
	assert.Equal(t, 3, result.Pushed)
	assert.Equal(t, 2, result.Pulled)
	assert.Equal(t, 1, result.Removed)
	assert.Empty(t, result.Conflicts)
}

func TestCoordinator_Sync_ConsolidatesQueueBeforePush(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coordinator, m := newTestCoordinator(t, ctrl)

	ops := []models.PendingOperation{
		{Seq: 1, Type: models.OpCreate, TaskID: "t-1"},
		{Seq: 2, Type: models.OpUpdate, TaskID: "t-1"},
	}
	plan := queue.Plan{
		RemoveSeqs: []int64{1, 2},
		Upserts:    []models.PendingOperation{{Type: models.OpCreate, TaskID: "t-1"}},
	}

	m.sessions.EXPECT().Get(gomock.Any()).Return(configuredSession(), nil)
	m.cipher.EXPECT().KeyInitialized().Return(true)
	m.gate.EXPECT().Allowed(gomock.Any(), gomock.Any()).Return(true)
	m.tokens.EXPECT().EnsureValidToken(gomock.Any(), gomock.Any()).Return(nil)
	m.queue.EXPECT().List(gomock.Any(), true).Return(ops, nil)
	m.optimizer.EXPECT().Consolidate(ops).Return(plan)
	m.queue.EXPECT().Replace(gomock.Any(), plan.RemoveSeqs, plan.Upserts).Return(nil)

	m.push.EXPECT().Push(gomock.Any(), gomock.Any()).Return(service.PushOutcome{Pushed: 1}, nil)
	m.pull.EXPECT().Pull(gomock.Any(), gomock.Any()).Return(service.PullOutcome{}, nil)
	m.resolver.EXPECT().Apply(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	m.gate.EXPECT().RecordSuccess(gomock.Any())
	m.sessions.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	result := coordinator.Sync(context.Background(), models.PriorityUser)

	require.Equal(t, models.StatusSuccess, result.Status)
	assert.Equal(t, 1, result.Pushed)
}

func TestCoordinator_Sync_RefreshesTokenOnceOnAuthFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coordinator, m := newTestCoordinator(t, ctrl)
	expectPreamble(m, configuredSession())

	authErr := fmt.Errorf("push: %w", wire.ErrAuth)
	gomock.InOrder(
		m.push.EXPECT().Push(gomock.Any(), gomock.Any()).Return(service.PushOutcome{}, authErr),
		m.tokens.EXPECT().HandleUnauthorized(gomock.Any(), gomock.Any()).Return(true, nil),
		m.push.EXPECT().Push(gomock.Any(), gomock.Any()).Return(service.PushOutcome{Pushed: 1}, nil),
	)

	m.pull.EXPECT().Pull(gomock.Any(), gomock.Any()).Return(service.PullOutcome{}, nil)
	m.resolver.EXPECT().Apply(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	m.gate.EXPECT().RecordSuccess(gomock.Any())
	m.sessions.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	result := coordinator.Sync(context.Background(), models.PriorityUser)

	assert.Equal(t, models.StatusSuccess, result.Status)
	assert.Equal(t, 1, result.Pushed)
}

func TestCoordinator_Sync_SecondAuthFailureIsTerminal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coordinator, m := newTestCoordinator(t, ctrl)
	expectPreamble(m, configuredSession())

	authErr := fmt.Errorf("push: %w", wire.ErrAuth)
	gomock.InOrder(
		m.push.EXPECT().Push(gomock.Any(), gomock.Any()).Return(service.PushOutcome{}, authErr),
		m.tokens.EXPECT().HandleUnauthorized(gomock.Any(), gomock.Any()).Return(true, nil),
		m.push.EXPECT().Push(gomock.Any(), gomock.Any()).Return(service.PushOutcome{}, authErr),
	)

	result := coordinator.Sync(context.Background(), models.PriorityUser)

	assert.Equal(t, models.StatusError, result.Status)
	assert.Contains(t, result.Reason, "authentication")
}

func TestCoordinator_Sync_RefreshIsSharedAcrossPushAndPull(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coordinator, m := newTestCoordinator(t, ctrl)
	expectPreamble(m, configuredSession())

	authErr := fmt.Errorf("pull: %w", wire.ErrAuth)
	gomock.InOrder(
		m.push.EXPECT().Push(gomock.Any(), gomock.Any()).Return(service.PushOutcome{}, authErr),
		m.tokens.EXPECT().HandleUnauthorized(gomock.Any(), gomock.Any()).Return(true, nil),
		m.push.EXPECT().Push(gomock.Any(), gomock.Any()).Return(service.PushOutcome{}, nil),
		// Auth failure in pull after the run already refreshed: terminal,
		// no second refresh attempt.
		m.pull.EXPECT().Pull(gomock.Any(), gomock.Any()).Return(service.PullOutcome{}, authErr),
	)

	result := coordinator.Sync(context.Background(), models.PriorityUser)

	assert.Equal(t, models.StatusError, result.Status)
}

func TestCoordinator_Sync_NetworkFailureFeedsBackoff(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coordinator, m := newTestCoordinator(t, ctrl)
	expectPreamble(m, configuredSession())

	netErr := fmt.Errorf("push: %w", wire.ErrNetwork)
	m.push.EXPECT().Push(gomock.Any(), gomock.Any()).Return(service.PushOutcome{}, netErr)
	m.gate.EXPECT().RecordFailure(gomock.Any())
	m.sessions.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	result := coordinator.Sync(context.Background(), models.PriorityUser)

	assert.Equal(t, models.StatusError, result.Status)
	assert.Contains(t, result.Reason, "push")
}

func TestCoordinator_Sync_ValidationFailureDoesNotFeedBackoff(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coordinator, m := newTestCoordinator(t, ctrl)
	expectPreamble(m, configuredSession())

	// No RecordFailure expectation: a validation error must not touch the
	// backoff schedule.
	m.push.EXPECT().Push(gomock.Any(), gomock.Any()).
		Return(service.PushOutcome{}, fmt.Errorf("push: %w", wire.ErrValidation))

	result := coordinator.Sync(context.Background(), models.PriorityUser)

	assert.Equal(t, models.StatusError, result.Status)
}

func TestCoordinator_Sync_ManualConflictsSurface(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coordinator, m := newTestCoordinator(t, ctrl)
	session := configuredSession()
	session.Strategy = models.StrategyManual
	expectPreamble(m, session)

	conflict := models.Conflict{TaskID: "t-1", DetectedAt: time.Now()}
	m.push.EXPECT().Push(gomock.Any(), gomock.Any()).
		Return(service.PushOutcome{Conflicts: []models.Conflict{conflict}}, nil)
	m.pull.EXPECT().Pull(gomock.Any(), gomock.Any()).Return(service.PullOutcome{}, nil)
	m.resolver.EXPECT().Apply(gomock.Any(), gomock.Any(), []models.Conflict{conflict}).
		Return([]models.Conflict{conflict}, nil)
	m.gate.EXPECT().ClearBackoff(gomock.Any())
	m.sessions.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	result := coordinator.Sync(context.Background(), models.PriorityUser)

	assert.Equal(t, models.StatusConflict, result.Status)
	assert.NotEmpty(t, result.Reason)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, "t-1", result.Conflicts[0].TaskID)
}

func TestCoordinator_Sync_ConflictRunSkipsSyncStamp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coordinator, m := newTestCoordinator(t, ctrl)
	session := configuredSession()
	session.Strategy = models.StrategyManual
	session.ConsecutiveFailures = 3
	expectPreamble(m, session)

	conflict := models.Conflict{TaskID: "t-1", DetectedAt: time.Now()}
	m.push.EXPECT().Push(gomock.Any(), gomock.Any()).Return(service.PushOutcome{}, nil)
	m.pull.EXPECT().Pull(gomock.Any(), gomock.Any()).
		Return(service.PullOutcome{Conflicts: []models.Conflict{conflict}}, nil)
	m.resolver.EXPECT().Apply(gomock.Any(), gomock.Any(), []models.Conflict{conflict}).
		Return([]models.Conflict{conflict}, nil)

	// the gate resets backoff but must not stamp LastSyncedAt, and the
	// persisted session reflects exactly that
	m.gate.EXPECT().ClearBackoff(gomock.Any()).
		Do(func(s *models.SyncSession) {
			s.ConsecutiveFailures = 0
			s.NextRetryAt = nil
			s.LastFailureAt = nil
		})
	m.sessions.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s models.SyncSession) error {
			assert.Nil(t, s.LastSyncedAt)
			assert.Zero(t, s.ConsecutiveFailures)
			return nil
		})

	result := coordinator.Sync(context.Background(), models.PriorityUser)
	assert.Equal(t, models.StatusConflict, result.Status)
}

func TestCoordinator_Sync_SingleFlight(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coordinator, m := newTestCoordinator(t, ctrl)

	started := make(chan struct{})
	release := make(chan struct{})
	m.sessions.EXPECT().Get(gomock.Any()).DoAndReturn(func(context.Context) (models.SyncSession, error) {
		close(started)
		<-release
		return models.SyncSession{}, store.ErrSessionNotFound
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		coordinator.Sync(context.Background(), models.PriorityUser)
	}()

	<-started
	result := coordinator.Sync(context.Background(), models.PriorityUser)
	close(release)
	wg.Wait()

	assert.Equal(t, models.StatusAlreadyRunning, result.Status)

	// Once the first run has drained, the coordinator accepts runs again.
	m.sessions.EXPECT().Get(gomock.Any()).Return(models.SyncSession{}, store.ErrSessionNotFound)
	result = coordinator.Sync(context.Background(), models.PriorityUser)
	assert.Equal(t, models.StatusError, result.Status)
}

func TestCoordinator_Sync_ResolverFailureIsTerminal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coordinator, m := newTestCoordinator(t, ctrl)
	expectPreamble(m, configuredSession())

	m.push.EXPECT().Push(gomock.Any(), gomock.Any()).Return(service.PushOutcome{}, nil)
	m.pull.EXPECT().Pull(gomock.Any(), gomock.Any()).Return(service.PullOutcome{}, nil)
	m.resolver.EXPECT().Apply(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("conflict table unavailable"))

	result := coordinator.Sync(context.Background(), models.PriorityUser)

	assert.Equal(t, models.StatusError, result.Status)
	assert.Contains(t, result.Reason, "conflict table unavailable")
}

func TestCoordinator_ListConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coordinator, m := newTestCoordinator(t, ctrl)
	want := []models.Conflict{{TaskID: "t-1"}}
	m.conflicts.EXPECT().List(gomock.Any()).Return(want, nil)

	got, err := coordinator.ListConflicts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCoordinator_ResolveConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coordinator, m := newTestCoordinator(t, ctrl)
	m.resolver.EXPECT().ResolveManually(gomock.Any(), "t-1", true).Return(nil)

	require.NoError(t, coordinator.ResolveConflict(context.Background(), "t-1", true))
}

func TestCoordinator_Status(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coordinator, m := newTestCoordinator(t, ctrl)
	m.sessions.EXPECT().Get(gomock.Any()).Return(configuredSession(), nil)
	m.tokens.EXPECT().EnsureValidToken(gomock.Any(), gomock.Any()).Return(nil)
	m.client.EXPECT().Status(gomock.Any()).
		Return(models.StatusResponse{Devices: 2, StoredTasks: 10}, nil)

	status, err := coordinator.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, status.Devices)
	assert.Equal(t, 10, status.StoredTasks)
}

func TestCoordinator_RevokeDevice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coordinator, m := newTestCoordinator(t, ctrl)
	m.sessions.EXPECT().Get(gomock.Any()).Return(configuredSession(), nil)
	m.tokens.EXPECT().EnsureValidToken(gomock.Any(), gomock.Any()).Return(nil)
	m.client.EXPECT().RevokeDevice(gomock.Any(), "dev-2").Return(nil)

	require.NoError(t, coordinator.RevokeDevice(context.Background(), "dev-2"))
}
