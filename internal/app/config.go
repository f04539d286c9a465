package app

import (
	"os"
	"strconv"
	"time"

	"github.com/shhac/minisql/internal/provider"
)

// Config holds application-wide configuration.
type Config struct {
	// Debug enables debug logging and additional diagnostics
	Debug bool

	// StoragePath is the directory holding connections.xml
	StoragePath string

	// ConnectTimeout bounds opening and pinging a database
	ConnectTimeout time.Duration
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:          false,
		StoragePath:    "", // storage.DefaultStoragePath() at startup
		ConnectTimeout: provider.DefaultConnectTimeout,
	}
}

// ConfigFromEnv creates a configuration from environment variables:
// MINISQL_DEBUG, MINISQL_STORAGE_PATH and MINISQL_CONNECT_TIMEOUT (a Go
// duration such as "30s"). Unparseable values keep the default.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()

	if debugStr := os.Getenv("MINISQL_DEBUG"); debugStr != "" {
		if debug, err := strconv.ParseBool(debugStr); err == nil {
			cfg.Debug = debug
		}
	}

	if storagePath := os.Getenv("MINISQL_STORAGE_PATH"); storagePath != "" {
		cfg.StoragePath = storagePath
	}

	if timeoutStr := os.Getenv("MINISQL_CONNECT_TIMEOUT"); timeoutStr != "" {
		if timeout, err := time.ParseDuration(timeoutStr); err == nil && timeout > 0 {
			cfg.ConnectTimeout = timeout
		}
	}

	return cfg
}
