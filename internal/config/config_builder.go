// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskVault Authors

package config

import (
	"fmt"

	"dario.cat/mergo"
)

// configBuilder accumulates configuration from multiple sources and merges
// them into a single StructuredConfig. Sources are applied in the order the
// with* methods are called; later sources override earlier ones for fields
// they set (mergo merge with override).
type configBuilder struct {
	cfg  *StructuredConfig
	errs []error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{cfg: &StructuredConfig{}}
}

// withEnv merges values parsed from environment variables.
func (b *configBuilder) withEnv() *configBuilder {
	envCfg, err := parseEnv()
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("%w: %v", ErrEnvParse, err))
		return b
	}
	b.merge(envCfg, "env")
	return b
}

// withFlags merges values parsed from command-line flags.
func (b *configBuilder) withFlags() *configBuilder {
	flagCfg, err := parseFlags()
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("%w: %v", ErrFlagParse, err))
		return b
	}
	b.merge(flagCfg, "flags")
	return b
}

// withJSON merges values parsed from the JSON file named by the
// JSONFilePath accumulated so far. A missing path is not an error:
// the JSON source is optional.
func (b *configBuilder) withJSON() *configBuilder {
	if b.cfg.JSONFilePath == "" {
		return b
	}
	jsonCfg, err := parseJSON(b.cfg.JSONFilePath)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("%w: %v", ErrJSONParse, err))
		return b
	}
	b.merge(jsonCfg, "json")
	return b
}

func (b *configBuilder) merge(src *StructuredConfig, source string) {
	if err := mergo.Merge(b.cfg, src, mergo.WithOverride); err != nil {
		b.errs = append(b.errs, fmt.Errorf("merge %s config: %w", source, err))
	}
}

// build finalizes the configuration: applies defaults for unset fields,
// validates the result, and returns the first accumulated error if any
// source failed.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}

	applyDefaults(b.cfg)

	if err := validate(b.cfg); err != nil {
		return nil, err
	}
	return b.cfg, nil
}
