// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskVault Authors

package config

import (
	"github.com/caarlos0/env/v11"
)

// parseEnv reads configuration from environment variables using the env
// struct tags declared on StructuredConfig and its nested sections.
func parseEnv() (*StructuredConfig, error) {
	cfg := &StructuredConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
