package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds all configuration for the bot
type Config struct {
	Telegram  TelegramConfig
	Storage   StorageConfig
	Languages LanguagesConfig
	HTTP      HTTPConfig
	Logging   LoggingConfig
	Session   SessionConfig
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken string
	AdminIDs []int64
}

// StorageConfig selects and configures the report store backend
type StorageConfig struct {
	// Driver is "file" or "postgres"
	Driver      string
	Path        string
	PostgresDSN string
}

// LanguagesConfig holds the message catalog configuration
type LanguagesConfig struct {
	Dir     string
	Default string
}

// HTTPConfig holds the admin HTTP API configuration
type HTTPConfig struct {
	Enabled   bool
	Port      string
	AuthToken string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string
}

// SessionConfig holds conversation session configuration
type SessionConfig struct {
	IdleTimeout time.Duration
}

// Result provides config parts for fx dependency injection using fx.Out pattern
type Result struct {
	fx.Out

	Config    *Config
	Telegram  *TelegramConfig
	Storage   *StorageConfig
	Languages *LanguagesConfig
	HTTP      *HTTPConfig
	Logging   *LoggingConfig
	Session   *SessionConfig
}

// Out loads configuration and returns Result for fx injection
func Out() (Result, error) {
	cfg, err := Load()
	if err != nil {
		return Result{}, err
	}

	return Result{
		Config:    cfg,
		Telegram:  &cfg.Telegram,
		Storage:   &cfg.Storage,
		Languages: &cfg.Languages,
		HTTP:      &cfg.HTTP,
		Logging:   &cfg.Logging,
		Session:   &cfg.Session,
	}, nil
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	adminIDs, err := parseAdminIDs(getEnv("ADMIN_IDS", ""))
	if err != nil {
		return nil, err
	}

	idleTimeout, err := parseDuration(getEnv("SESSION_IDLE_TIMEOUT", "30m"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Telegram: TelegramConfig{
			BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
			AdminIDs: adminIDs,
		},
		Storage: StorageConfig{
			Driver:      getEnv("STORAGE_DRIVER", "file"),
			Path:        getEnv("STORAGE_PATH", "data"),
			PostgresDSN: getEnv("POSTGRES_DSN", ""),
		},
		Languages: LanguagesConfig{
			Dir:     getEnv("LANGUAGES_DIR", "languages"),
			Default: getEnv("DEFAULT_LANGUAGE", "en"),
		},
		HTTP: HTTPConfig{
			Enabled:   getEnv("HTTP_ENABLED", "false") == "true",
			Port:      getEnv("HTTP_PORT", "8080"),
			AuthToken: getEnv("HTTP_AUTH_TOKEN", ""),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Session: SessionConfig{
			IdleTimeout: idleTimeout,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	switch c.Storage.Driver {
	case "file":
		if c.Storage.Path == "" {
			return fmt.Errorf("STORAGE_PATH is required for the file driver")
		}
	case "postgres":
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q, expected file or postgres", c.Storage.Driver)
	}

	if c.Languages.Default == "" {
		return fmt.Errorf("DEFAULT_LANGUAGE is required")
	}

	if c.HTTP.Enabled && c.HTTP.AuthToken == "" {
		return fmt.Errorf("HTTP_AUTH_TOKEN is required when the HTTP API is enabled")
	}

	return nil
}

// parseAdminIDs parses the comma-separated ADMIN_IDS list
func parseAdminIDs(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_IDS entry %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseDuration parses a duration env value
func parseDuration(raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid SESSION_IDLE_TIMEOUT %q: %w", raw, err)
	}
	return d, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
