// Package config provides centralized configuration management for the
// application. Settings come from environment variables with sensible
// defaults and are validated on startup so misconfiguration fails fast.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Upload   UploadConfig
	Auth     AuthConfig
	Send     SendConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading a request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// DatabaseConfig holds the optional send-history database settings.
// When URL is empty the history store is disabled and the service runs
// fully in memory.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility.
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 10)
	MaxConns int `env:"DB_MAX_CONNS" default:"10"`

	// MinConns is the minimum number of connections to keep open (default: 2)
	MinConns int `env:"DB_MIN_CONNS" default:"2"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
}

// UploadConfig holds upload processing settings.
type UploadConfig struct {
	// MaxFileSize is the maximum allowed size per uploaded file in bytes (default: 25MB)
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"26214400"`

	// MaxFormSize is the maximum total multipart form size in bytes (default: 100MB)
	MaxFormSize int64 `env:"UPLOAD_MAX_FORM_SIZE" default:"104857600"`
}

// AuthConfig holds operator login settings.
type AuthConfig struct {
	// Username is the operator login name (required)
	Username string `env:"AUTH_USERNAME" required:"true"`

	// PasswordHash is the bcrypt hash of the operator password (required)
	PasswordHash string `env:"AUTH_PASSWORD_HASH" required:"true"`

	// TokenSecret signs session tokens (required)
	TokenSecret string `env:"AUTH_TOKEN_SECRET" required:"true"`

	// TokenIssuer is the iss claim on session tokens (default: mailmerge)
	TokenIssuer string `env:"AUTH_TOKEN_ISSUER" default:"mailmerge"`

	// SessionExpiry is the session token lifetime (default: 8h)
	SessionExpiry time.Duration `env:"AUTH_SESSION_EXPIRY" default:"8h"`
}

// SendConfig holds sender profile settings.
type SendConfig struct {
	// FromAddress is the envelope sender for composed messages (required)
	FromAddress string `env:"SEND_FROM_ADDRESS" required:"true"`

	// Profile selects the sender system variant: standard, bulk or sandbox
	// (default: standard)
	Profile string `env:"SEND_PROFILE" default:"standard"`

	// BulkBatchSize caps batches for the bulk profile (default: 50)
	BulkBatchSize int `env:"SEND_BULK_BATCH_SIZE" default:"50"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + strconv.Itoa(c.Port)
	}
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// HistoryEnabled reports whether the send-history database is configured.
func (c *Config) HistoryEnabled() bool {
	return c.Database.URL != ""
}
