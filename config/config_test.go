package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("ADMIN_IDS", "")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "test-token", cfg.Telegram.BotToken)
	require.Empty(t, cfg.Telegram.AdminIDs)
	require.Equal(t, "file", cfg.Storage.Driver)
	require.Equal(t, "data", cfg.Storage.Path)
	require.Equal(t, "en", cfg.Languages.Default)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, 30*time.Minute, cfg.Session.IdleTimeout)
	require.False(t, cfg.HTTP.Enabled)
}

func TestLoad_AdminIDs(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("ADMIN_IDS", "123, 456,789")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, []int64{123, 456, 789}, cfg.Telegram.AdminIDs)
}

func TestLoad_InvalidAdminIDs(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("ADMIN_IDS", "123,abc")

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid file driver", mutate: func(c *Config) {}},
		{name: "missing token", mutate: func(c *Config) { c.Telegram.BotToken = "" }, wantErr: true},
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "sqlite" }, wantErr: true},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Storage.Driver = "postgres" }, wantErr: true},
		{
			name: "postgres with dsn",
			mutate: func(c *Config) {
				c.Storage.Driver = "postgres"
				c.Storage.PostgresDSN = "host=localhost user=bot dbname=bot"
			},
		},
		{
			name:    "http enabled without token",
			mutate:  func(c *Config) { c.HTTP.Enabled = true },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Telegram:  TelegramConfig{BotToken: "token"},
				Storage:   StorageConfig{Driver: "file", Path: "data"},
				Languages: LanguagesConfig{Dir: "languages", Default: "en"},
				Logging:   LoggingConfig{Level: "info"},
				Session:   SessionConfig{IdleTimeout: time.Minute},
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
