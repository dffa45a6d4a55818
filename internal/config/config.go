// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskVault Authors

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for taskvault.
// It aggregates all sub-configurations and is populated by merging values
// from environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the passphrase source
	// and the conflict strategy.
	App App `envPrefix:"APP_"`

	// Adapter holds network settings for the outbound sync transport.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds configuration for the local persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds configuration for the background sync job.
	Workers Workers `envPrefix:"WORKERS_"`

	// Retry holds backoff settings for automatic sync attempts.
	Retry Retry `envPrefix:"RETRY_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration.
type App struct {
	// Passphrase is the user passphrase the encryption key is derived from.
	// For daemon runs it is injected through the environment; interactive
	// frontends supply it at unlock time instead.
	// Env: APP_PASSPHRASE
	Passphrase string `env:"PASSPHRASE"`

	// Token is the bearer credential for the sync server, used on first
	// run before a session exists. Negotiating it (login, device
	// registration) happens outside the daemon.
	// Env: APP_TOKEN
	Token string `env:"TOKEN"`

	// ConflictStrategy selects how concurrent edits are settled:
	// "last_write_wins" or "manual".
	// Env: APP_CONFLICT_STRATEGY
	ConflictStrategy string `env:"CONFLICT_STRATEGY"`

	// LogFile is an optional path for daemon log output.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Adapter holds network settings used by the outbound sync transport.
type Adapter struct {
	// ServerAddress is the base URL of the remote sync server
	// (e.g. "https://sync.example.com").
	// Env: ADAPTER_SERVER_ADDRESS
	ServerAddress string `env:"SERVER_ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single outbound
	// request (e.g. "30s", "1m").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups local persistence settings.
type Storage struct {
	// DB holds the local database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite file path used for all durable engine state
	// (tasks, pending operations, sync session).
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Workers holds configuration for the background sync job.
type Workers struct {
	// SyncInterval defines how often the automatic background sync runs.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// Retry holds backoff settings the retry manager applies to automatic syncs.
type Retry struct {
	// BaseDelay is the backoff delay after the first failure.
	// Env: RETRY_BASE_DELAY
	BaseDelay time.Duration `env:"BASE_DELAY"`

	// MaxDelay caps the exponential backoff growth.
	// Env: RETRY_MAX_DELAY
	MaxDelay time.Duration `env:"MAX_DELAY"`
}

// GetConfig loads, merges, and validates the application configuration from
// all available sources in the following priority order (last source wins
// for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
