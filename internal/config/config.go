package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"flightdesk/internal/cache"
	"flightdesk/internal/database"
	"flightdesk/internal/gateway"
	"flightdesk/internal/messaging"
)

// Config holds the shell configuration
type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration
	MetricsEnabled bool

	Gateway gateway.Config
	Session SessionConfig

	Valkey   cache.Config
	Database database.Config
	NATS     messaging.Config
}

// SessionConfig selects where the session keys live.
type SessionConfig struct {
	Driver    string // memory, file, valkey, postgres
	FilePath  string
	Namespace string
}

// Load reads the configuration from environment variables
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "4200"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SEC", 30)) * time.Second,
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),

		Gateway: gateway.Config{
			BaseURL:            getEnv("GATEWAY_URL", "http://localhost:8062"),
			Timeout:            time.Duration(getEnvInt("GATEWAY_TIMEOUT_SEC", 30)) * time.Second,
			ChangePasswordPath: getEnv("GATEWAY_CHANGE_PASSWORD_PATH", "/auth/change-password"),
			StrictContract:     getEnvBool("GATEWAY_STRICT_CONTRACT", true),
		},

		Session: SessionConfig{
			Driver:    strings.ToLower(getEnv("SESSION_DRIVER", "file")),
			FilePath:  getEnv("SESSION_FILE", defaultSessionFile()),
			Namespace: getEnv("SESSION_NAMESPACE", "flightdesk:session"),
		},

		Valkey: cache.Config{
			Addr:     getEnv("VALKEY_ADDR", "localhost:6379"),
			Password: getEnv("VALKEY_PASSWORD", ""),
			DB:       getEnvInt("VALKEY_DB", 0),
		},

		Database: database.Config{
			Host:               getEnv("DB_HOST", "localhost"),
			Port:               getEnvInt("DB_PORT", 5432),
			User:               getEnv("DB_USER", "flightdesk"),
			Password:           getEnv("DB_PASSWORD", "flightdesk"),
			DBName:             getEnv("DB_NAME", "flightdesk"),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 4),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 2),
			ConnMaxLifetimeMin: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 5),
			ConnMaxIdleTimeMin: getEnvInt("DB_CONN_MAX_IDLE_TIME_MIN", 1),
		},

		NATS: messaging.Config{
			Enabled:   getEnvBool("NATS_ENABLED", false),
			URL:       getEnv("NATS_URL", "nats://localhost:4222"),
			ClusterID: getEnv("NATS_CLUSTER_ID", "flightdesk"),
			ClientID:  getEnv("NATS_CLIENT_ID", "flightdesk-app"),
		},
	}
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(home, ".config", "flightdesk", "session.json")
}

// getEnv returns the environment value or the default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns an integer environment value or the default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
