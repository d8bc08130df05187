package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. TASKS_STORE_REGION.
const EnvPrefix = "TASKS"

// setDefaults registers every key so that environment variables bind during
// Unmarshal even when no config file mentions them.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("store.backend", BackendDynamoDB)
	v.SetDefault("store.endpoint", "")
	v.SetDefault("store.region", "")
	v.SetDefault("store.table", "Tasks")
	v.SetDefault("store.status_index", "status-index")
	v.SetDefault("store.status_index_lookup", false)
	v.SetDefault("store.max_retries", 0)
	v.SetDefault("store.request_timeout", 10*time.Second)
	v.SetDefault("store.ensure_table", false)

	v.SetDefault("database.url", "")

	v.SetDefault("tasks.update_requires_existing", false)
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags and the cross-section rules
// the tags cannot express.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if cfg.Store.Backend == BackendPostgres && cfg.Database.URL == "" {
		return errors.New("config validation failed: database.url is required for the postgres backend")
	}
	return nil
}
