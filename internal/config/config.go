// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/allisson/go-env"
	validation "github.com/jellydator/validation"
	"github.com/joho/godotenv"
)

// Supported values for DBDriver.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverMemory   = "memory"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int

	// DBDriver selects the record store: "sqlite3", "postgres", "mysql" or "memory".
	DBDriver string
	// DBConnectionString is the connection string for the database.
	DBConnectionString string
	// DBMaxOpenConnections is the maximum number of open connections to the database.
	DBMaxOpenConnections int
	// DBMaxIdleConnections is the maximum number of idle connections in the database pool.
	DBMaxIdleConnections int
	// DBConnMaxLifetime is the maximum amount of time a connection may be reused.
	DBConnMaxLifetime time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// MasterKey is the hex or base64 encoded 32-byte key, or the base64 KMS ciphertext
	// of that key when KMSProvider is set.
	MasterKey string
	// AEADAlgorithm is "aes-gcm" or "chacha20-poly1305".
	AEADAlgorithm string

	// KMSProvider is the KMS provider to use (e.g., "google", "aws", "azure").
	KMSProvider string
	// KMSKeyURI is the URI for the master key in the KMS.
	KMSKeyURI string

	// AdminAPIKey is the plain admin credential required to reveal a PAN.
	AdminAPIKey string
	// AdminAPIKeyHash is an Argon2id hash of the admin credential. Takes precedence over AdminAPIKey.
	AdminAPIKeyHash string

	// PANLuhnCheck enables the mod-10 checksum on tokenize.
	PANLuhnCheck bool
	// MaxRequestBodyBytes caps every request body.
	MaxRequestBodyBytes int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
//
// MASTER_KEY_HEX and DATABASE are accepted as fallbacks for MASTER_KEY and
// DB_CONNECTION_STRING.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost: env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort: env.GetInt("SERVER_PORT", 8080),

		// Database configuration
		DBDriver:             strings.ToLower(env.GetString("DB_DRIVER", DriverSQLite)),
		DBConnectionString:   env.GetString("DB_CONNECTION_STRING", env.GetString("DATABASE", "./tokens.db")),
		DBMaxOpenConnections: env.GetInt("DB_MAX_OPEN_CONNECTIONS", 25),
		DBMaxIdleConnections: env.GetInt("DB_MAX_IDLE_CONNECTIONS", 5),
		DBConnMaxLifetime:    env.GetDuration("DB_CONN_MAX_LIFETIME", 5, time.Minute),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Cryptography
		MasterKey:     env.GetString("MASTER_KEY", env.GetString("MASTER_KEY_HEX", "")),
		AEADAlgorithm: env.GetString("AEAD_ALGORITHM", "aes-gcm"),

		// KMS configuration
		KMSProvider: env.GetString("KMS_PROVIDER", ""),
		KMSKeyURI:   env.GetString("KMS_KEY_URI", ""),

		// Admin credential
		AdminAPIKey:     env.GetString("ADMIN_API_KEY", ""),
		AdminAPIKeyHash: env.GetString("ADMIN_API_KEY_HASH", ""),

		// Tokenization
		PANLuhnCheck:        env.GetBool("PAN_LUHN_CHECK", true),
		MaxRequestBodyBytes: env.GetInt("MAX_REQUEST_BODY_BYTES", 4096),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "pantoken"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// Validate checks settings that would otherwise fail late at request time.
// Secrets are validated when they are decoded at startup.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ServerPort, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.DBDriver,
			validation.Required,
			validation.In(DriverSQLite, DriverPostgres, DriverMySQL, DriverMemory),
		),
		validation.Field(&c.DBConnectionString,
			validation.When(c.DBDriver != DriverMemory, validation.Required),
		),
		validation.Field(&c.MaxRequestBodyBytes, validation.Required, validation.Min(256)),
		validation.Field(&c.KMSKeyURI, validation.When(c.KMSProvider != "", validation.Required)),
		validation.Field(&c.MetricsPort,
			validation.When(c.MetricsEnabled, validation.Required, validation.Min(1), validation.Max(65535)),
		),
	)
}

// UsesKMS reports whether the master key is KMS-wrapped.
func (c *Config) UsesKMS() bool {
	return c.KMSProvider != "" && c.KMSKeyURI != ""
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
