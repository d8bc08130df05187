package config

import "time"

// Store backends selectable with store.backend.
const (
	BackendDynamoDB = "dynamodb"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Store    StoreConfig    `mapstructure:"store"    validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Tasks    TasksConfig    `mapstructure:"tasks"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port               int           `mapstructure:"port"                 validate:"required,gt=0,lt=65536"`
	LogLevel           string        `mapstructure:"log_level"            validate:"required,oneof=debug info warn error"`
	CORSAllowedOrigins []string      `mapstructure:"cors_allowed_origins"`
	ShutdownTimeout    time.Duration `mapstructure:"shutdown_timeout"     validate:"gt=0"`
}

// StoreConfig describes the key-value store holding task records.
type StoreConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=dynamodb postgres memory"`

	// Endpoint overrides the managed service endpoint (e.g. a local stack).
	// Empty means the default endpoint for Region.
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"`
	Region   string `mapstructure:"region"   validate:"required_if=Backend dynamodb"`

	Table       string `mapstructure:"table"        validate:"required"`
	StatusIndex string `mapstructure:"status_index" validate:"required"`

	// StatusIndexLookup routes status-filtered listings through the secondary
	// index (exact match, filter before limit) instead of scan-then-filter.
	StatusIndexLookup bool `mapstructure:"status_index_lookup"`

	MaxRetries     int           `mapstructure:"max_retries"     validate:"gte=0,lte=10"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0"`

	// EnsureTable creates the table and status index at startup when missing.
	EnsureTable bool `mapstructure:"ensure_table"`
}

// DatabaseConfig contains the PostgreSQL settings used by the postgres backend.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// TasksConfig contains task service policy settings.
type TasksConfig struct {
	// UpdateRequiresExisting makes update fail with not-found for unknown IDs
	// instead of creating them.
	UpdateRequiresExisting bool `mapstructure:"update_requires_existing"`
}
