// Package config provides configuration loading for socialintel.
//
// Configuration comes from environment variables with sensible defaults
// (Load) or from a YAML file overridden by the environment (LoadWithFile).
// All environment variables share the SOCIALINTEL_ prefix.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvPrefix prefixes every environment variable read by this package.
const EnvPrefix = "SOCIALINTEL_"

// Defaults.
const (
	DefaultHost            = "0.0.0.0"
	DefaultPort            = 8501
	DefaultShutdownTimeout = 10 * time.Second
	DefaultCookieName      = "socialintel_session"
	DefaultMaxSessions     = 10000
	DefaultContentDir      = "./data"
	DefaultServiceName     = "socialintel"
)

// Config holds the complete socialintel configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Access    AccessConfig    `koanf:"access"`
	Content   ContentConfig   `koanf:"content"`
	Logging   LoggingConfig   `koanf:"logging"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	SecureCookies   bool          `koanf:"secure_cookies"`
}

// AccessConfig configures the shared-code gate.
type AccessConfig struct {
	Code        Secret `koanf:"code"`
	CookieName  string `koanf:"cookie_name"`
	MaxSessions int    `koanf:"max_sessions"`
}

// ContentConfig points at the curated fixture files.
type ContentConfig struct {
	Dir   string `koanf:"dir"`
	Watch bool   `koanf:"watch"`
}

// LoggingConfig selects log level and encoding.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// TelemetryConfig holds OpenTelemetry export settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Endpoint    string `koanf:"endpoint"`
	Protocol    string `koanf:"protocol"`
	ServiceName string `koanf:"service_name"`
	Insecure    bool   `koanf:"insecure"`
}

// Load loads configuration from environment variables with defaults.
//
// Environment variables:
//   - SOCIALINTEL_SERVER_HOST (default: 0.0.0.0)
//   - SOCIALINTEL_SERVER_PORT (default: 8501)
//   - SOCIALINTEL_SERVER_SHUTDOWN_TIMEOUT (default: 10s)
//   - SOCIALINTEL_SERVER_SECURE_COOKIES (default: false)
//   - SOCIALINTEL_ACCESS_CODE (no default; unset denies every attempt)
//   - SOCIALINTEL_ACCESS_COOKIE_NAME (default: socialintel_session)
//   - SOCIALINTEL_ACCESS_MAX_SESSIONS (default: 10000)
//   - SOCIALINTEL_CONTENT_DIR (default: ./data)
//   - SOCIALINTEL_CONTENT_WATCH (default: true)
//   - SOCIALINTEL_LOGGING_LEVEL (default: info)
//   - SOCIALINTEL_LOGGING_FORMAT (default: json)
//   - SOCIALINTEL_TELEMETRY_ENABLED (default: false)
//   - SOCIALINTEL_TELEMETRY_ENDPOINT (default: localhost:4317)
//   - SOCIALINTEL_TELEMETRY_PROTOCOL (default: grpc)
//   - SOCIALINTEL_TELEMETRY_SERVICE_NAME (default: socialintel)
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            getEnvString("SERVER_HOST", DefaultHost),
			Port:            getEnvInt("SERVER_PORT", DefaultPort),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
			SecureCookies:   getEnvBool("SERVER_SECURE_COOKIES", false),
		},
		Access: AccessConfig{
			// Read raw: the code is compared byte-for-byte.
			Code:        Secret(os.Getenv(EnvPrefix + "ACCESS_CODE")),
			CookieName:  getEnvString("ACCESS_COOKIE_NAME", DefaultCookieName),
			MaxSessions: getEnvInt("ACCESS_MAX_SESSIONS", DefaultMaxSessions),
		},
		Content: ContentConfig{
			Dir:   getEnvString("CONTENT_DIR", DefaultContentDir),
			Watch: getEnvBool("CONTENT_WATCH", true),
		},
		Logging: LoggingConfig{
			Level:  getEnvString("LOGGING_LEVEL", "info"),
			Format: getEnvString("LOGGING_FORMAT", "json"),
		},
		Telemetry: TelemetryConfig{
			Enabled:     getEnvBool("TELEMETRY_ENABLED", false),
			Endpoint:    getEnvString("TELEMETRY_ENDPOINT", "localhost:4317"),
			Protocol:    getEnvString("TELEMETRY_PROTOCOL", "grpc"),
			ServiceName: getEnvString("TELEMETRY_SERVICE_NAME", DefaultServiceName),
			Insecure:    getEnvBool("TELEMETRY_INSECURE", true),
		},
	}
}

// Validate validates the configuration.
//
// A missing access code is not an error: the gate denies every attempt.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be 1-65535)", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.New("shutdown timeout must be positive")
	}
	if strings.TrimSpace(c.Access.CookieName) == "" {
		return errors.New("access cookie name cannot be empty")
	}
	if c.Access.MaxSessions < 1 {
		return fmt.Errorf("access max sessions must be positive, got %d", c.Access.MaxSessions)
	}
	if c.Content.Dir == "" {
		return errors.New("content dir is required")
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("logging format must be 'json' or 'console', got %q", c.Logging.Format)
	}
	if c.Telemetry.Enabled {
		if c.Telemetry.Endpoint == "" {
			return errors.New("telemetry endpoint required when telemetry is enabled")
		}
		if c.Telemetry.ServiceName == "" {
			return errors.New("service name required when telemetry is enabled")
		}
	}
	return nil
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Helper functions for environment variable parsing

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
