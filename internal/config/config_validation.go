// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskVault Authors

package config

import (
	"strings"
	"time"
)

const (
	defaultRequestTimeout = 30 * time.Second
	defaultSyncInterval   = 5 * time.Minute
	defaultRetryBase      = 2 * time.Second
	defaultRetryMax       = 5 * time.Minute
	defaultStrategy       = "last_write_wins"
)

// applyDefaults fills in defaults for optional fields left unset by all
// configuration sources. Required fields (server address, DSN) stay empty
// and are caught by validate.
func applyDefaults(cfg *StructuredConfig) {
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Workers.SyncInterval == 0 {
		cfg.Workers.SyncInterval = defaultSyncInterval
	}
	if cfg.Retry.BaseDelay == 0 {
		cfg.Retry.BaseDelay = defaultRetryBase
	}
	if cfg.Retry.MaxDelay == 0 {
		cfg.Retry.MaxDelay = defaultRetryMax
	}
	if cfg.App.ConflictStrategy == "" {
		cfg.App.ConflictStrategy = defaultStrategy
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a sentinel error naming the
// invalid configuration group otherwise.
func validate(cfg *StructuredConfig) error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.ServerAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	switch cfg.App.ConflictStrategy {
	case "last_write_wins", "manual":
	default:
		return ErrInvalidAppConfigs
	}

	if cfg.Retry.BaseDelay <= 0 || cfg.Retry.MaxDelay < cfg.Retry.BaseDelay {
		return ErrInvalidRetryConfigs
	}

	return nil
}
