// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskVault Authors

package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/syncwell/taskvault/internal/config"
	"github.com/syncwell/taskvault/internal/crypto"
	"github.com/syncwell/taskvault/internal/logger"
	"github.com/syncwell/taskvault/internal/service"
	"github.com/syncwell/taskvault/internal/store"
	"github.com/syncwell/taskvault/internal/utils"
	"github.com/syncwell/taskvault/internal/wire"
	"github.com/syncwell/taskvault/internal/workers"
	"github.com/syncwell/taskvault/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetConfig()
	if err != nil {
		logger.NewLogger("taskvault-syncd").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("taskvault-syncd")
	if cfg.App.LogFile != "" {
		log = logger.NewFileLogger("taskvault-syncd", cfg.App.LogFile)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storages, err := store.NewStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	client, err := wire.NewHTTPClient(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create sync client")
	}

	auth := &tokenAuthenticator{token: cfg.App.Token, client: client}
	session, err := service.BootstrapSession(
		ctx,
		storages.Sessions,
		auth,
		cfg.Adapter.ServerAddress,
		models.ConflictStrategy(cfg.App.ConflictStrategy),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("bootstrap sync session")
	}
	client.SetToken(session.Token)

	cipher := crypto.NewCipher()
	salt, err := base64.StdEncoding.DecodeString(session.EncryptionSalt)
	if err != nil {
		log.Fatal().Err(err).Msg("decode encryption salt")
	}
	cipher.DeriveKey(cfg.App.Passphrase, salt)

	services := service.NewServices(cfg, storages, cipher, client, log)

	job := workers.NewSyncJob(services.Coordinator, log)
	job.Start(ctx, cfg.Workers.SyncInterval)

	// one user-priority round at startup so a freshly launched daemon does
	// not wait a full interval to converge
	result := services.Coordinator.Sync(ctx, models.PriorityUser)
	log.Info().
		Str("status", string(result.Status)).
		Str("reason", result.Reason).
		Msg("initial sync round")

	<-ctx.Done()
	log.Info().Msg("shutting down")
	job.Stop()
}

// tokenAuthenticator satisfies service.Authenticator for headless daemon
// runs: the token is injected through configuration, its expiry read from
// the JWT, and the salt fetched from the server once the token is attached
// to the client.
type tokenAuthenticator struct {
	token  string
	client wire.Client
}

func (a *tokenAuthenticator) AwaitCredential(ctx context.Context) (models.Credential, error) {
	if a.token == "" {
		return models.Credential{}, errors.New("no credential configured, set APP_TOKEN")
	}

	a.client.SetToken(a.token)

	// expiry is best-effort; the token manager recovers it later anyway
	expiresAt, err := utils.TokenExpiry(a.token)
	if err != nil {
		expiresAt = time.Time{}
	}

	salt, err := a.client.EncryptionSalt(ctx)
	if err != nil {
		return models.Credential{}, fmt.Errorf("fetch encryption salt: %w", err)
	}

	return models.Credential{Token: a.token, ExpiresAt: expiresAt, Salt: salt}, nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
