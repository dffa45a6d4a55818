// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskVault Authors

package config

import "errors"

// Source errors returned by the config builder when a configuration source
// fails to load.
var (
	// ErrEnvParse indicates the environment variable source failed to parse.
	ErrEnvParse = errors.New("parse env configuration")
	// ErrFlagParse indicates the command-line flag source failed to parse.
	ErrFlagParse = errors.New("parse flag configuration")
	// ErrJSONParse indicates the JSON file source failed to load or decode.
	ErrJSONParse = errors.New("parse json configuration")
)

// Validation errors returned by validate when required configuration groups
// are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid sync transport settings
	// (for example, missing server address or non-positive request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid local storage settings
	// (for example, empty DSN or unsupported in-memory DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, an unknown conflict strategy).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero sync interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidRetryConfigs indicates invalid retry backoff settings
	// (for example, max delay smaller than base delay).
	ErrInvalidRetryConfigs = errors.New("invalid retry configuration")
)
