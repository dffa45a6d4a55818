package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			ConflictStrategy: "last_write_wins",
		},
		Adapter: Adapter{
			ServerAddress:  "https://sync.example.com",
			RequestTimeout: 30 * time.Second,
		},
		Storage: Storage{
			DB: DB{DSN: "/tmp/tasks.db"},
		},
		Workers: Workers{
			SyncInterval: 5 * time.Minute,
		},
		Retry: Retry{
			BaseDelay: 2 * time.Second,
			MaxDelay:  time.Minute,
		},
	}
}

// TestValidate tests the validate function against each configuration group
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:    "valid config",
			mutate:  func(cfg *StructuredConfig) {},
			wantErr: nil,
		},
		{
			name:    "empty DSN",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "in-memory DSN",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "file::memory:?cache=shared" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "empty server address",
			mutate:  func(cfg *StructuredConfig) { cfg.Adapter.ServerAddress = "" },
			wantErr: ErrInvalidAdapterConfigs,
		},
		{
			name:    "zero request timeout",
			mutate:  func(cfg *StructuredConfig) { cfg.Adapter.RequestTimeout = 0 },
			wantErr: ErrInvalidAdapterConfigs,
		},
		{
			name:    "zero sync interval",
			mutate:  func(cfg *StructuredConfig) { cfg.Workers.SyncInterval = 0 },
			wantErr: ErrInvalidWorkerConfigs,
		},
		{
			name:    "unknown strategy",
			mutate:  func(cfg *StructuredConfig) { cfg.App.ConflictStrategy = "newest_wins" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "max delay below base delay",
			mutate:  func(cfg *StructuredConfig) { cfg.Retry.MaxDelay = time.Second },
			wantErr: ErrInvalidRetryConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

// TestApplyDefaults tests that unset optional fields receive defaults
func TestApplyDefaults(t *testing.T) {
	cfg := &StructuredConfig{}
	applyDefaults(cfg)

	assert.Equal(t, defaultRequestTimeout, cfg.Adapter.RequestTimeout)
	assert.Equal(t, defaultSyncInterval, cfg.Workers.SyncInterval)
	assert.Equal(t, defaultRetryBase, cfg.Retry.BaseDelay)
	assert.Equal(t, defaultRetryMax, cfg.Retry.MaxDelay)
	assert.Equal(t, defaultStrategy, cfg.App.ConflictStrategy)
}

// TestApplyDefaults_PreservesSetValues tests that defaults never override explicit values
func TestApplyDefaults_PreservesSetValues(t *testing.T) {
	cfg := validConfig()
	cfg.Workers.SyncInterval = time.Hour

	applyDefaults(cfg)

	assert.Equal(t, time.Hour, cfg.Workers.SyncInterval)
	assert.Equal(t, "last_write_wins", cfg.App.ConflictStrategy)
}
