// Package config loads application configuration from a yaml file and
// environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Auth    AuthConfig
	Log     LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr string
}

// StorageConfig selects and configures the storage backend.
type StorageConfig struct {
	// Backend is "sqlite" or "postgres".
	Backend string

	// SQLitePath is the database file path for the sqlite backend.
	SQLitePath string

	// PostgresDSN is the connection string for the postgres backend.
	PostgresDSN string

	// PostgresMaxConns bounds the pgx pool; 0 keeps the pool default.
	PostgresMaxConns int
}

// AuthConfig holds session token configuration.
type AuthConfig struct {
	JWTSecret     string
	TokenTTLHours int
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string
}

// TokenTTL returns the configured token lifetime.
func (c AuthConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

// Load reads configuration from the given file (optional) and from
// SPLITLEDGER_* environment variables, applying defaults for everything
// else.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("storage.backend", "sqlite")
	v.SetDefault("storage.sqlitepath", "./data/splitledger.db")
	v.SetDefault("storage.postgresmaxconns", 0)
	v.SetDefault("auth.tokenttlhours", 24)
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("SPLITLEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal only sees keys viper already knows about. These two have
	// no default on purpose, so they must be bound explicitly or the env
	// override would be silently ignored.
	for _, key := range []string{"auth.jwtsecret", "storage.postgresdsn"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwtsecret is required")
	}
	switch cfg.Storage.Backend {
	case "sqlite":
		if cfg.Storage.SQLitePath == "" {
			return nil, fmt.Errorf("storage.sqlitepath is required for the sqlite backend")
		}
	case "postgres":
		if cfg.Storage.PostgresDSN == "" {
			return nil, fmt.Errorf("storage.postgresdsn is required for the postgres backend")
		}
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	return &cfg, nil
}
