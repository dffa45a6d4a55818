// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskVault Authors

package service

import (
	"github.com/syncwell/taskvault/internal/config"
	"github.com/syncwell/taskvault/internal/crypto"
	"github.com/syncwell/taskvault/internal/logger"
	"github.com/syncwell/taskvault/internal/queue"
	"github.com/syncwell/taskvault/internal/retry"
	"github.com/syncwell/taskvault/internal/store"
	"github.com/syncwell/taskvault/internal/token"
	"github.com/syncwell/taskvault/internal/wire"
)

// Services bundles the fully wired service layer for the client binary.
type Services struct {
	Tasks       TaskService
	Coordinator Coordinator
}

func NewServices(cfg *config.StructuredConfig, storages *store.Storages, cipher crypto.Cipher, client wire.Client, log *logger.Logger) *Services {
	tokens := token.NewManager(client, storages.Sessions, log)
	gate := retry.NewManager(cfg.Retry, log)
	optimizer := queue.NewOptimizer(log)

	push := NewPushHandler(storages.Queue, storages.Tasks, cipher, client, log)
	pull := NewPullHandler(storages.Tasks, cipher, client, log)
	resolver := NewResolver(storages.Tasks, storages.Queue, storages.Conflicts, storages.Sessions, log)

	coordinator := NewCoordinator(CoordinatorDeps{
		Sessions:  storages.Sessions,
		Queue:     storages.Queue,
		Conflicts: storages.Conflicts,
		Cipher:    cipher,
		Client:    client,
		Tokens:    tokens,
		Gate:      gate,
		Optimizer: optimizer,
		Push:      push,
		Pull:      pull,
		Resolver:  resolver,
		Logger:    log,
	})

	return &Services{
		Tasks:       NewTaskService(storages.Tasks, storages.Queue, storages.Sessions, log),
		Coordinator: coordinator,
	}
}
