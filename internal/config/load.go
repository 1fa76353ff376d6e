package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and, optionally, a
// config.yaml in the working directory. Environment variables use the
// WORDBANK_ prefix with underscores for nesting (WORDBANK_SERVER_PORT,
// WORDBANK_DATABASE_URL, ...) and take precedence over file values.
// Returns a populated Config or an error if loading or validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults keep the service bootable with nothing but a database URL
	// and, if enrichment is wanted, an API key.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	// Registered with empty defaults so AutomaticEnv can populate them;
	// viper only maps env vars for keys it already knows about.
	v.SetDefault("database.url", "")
	v.SetDefault("generation.gemini_api_key", "")
	v.SetDefault("generation.model_name", "gemini-2.0-flash")
	v.SetDefault("generation.timeout_seconds", 10)
	v.SetDefault("generation.max_retries", 3)
	v.SetDefault("generation.retry_delay_seconds", 2)
	v.SetDefault("review.initial_interval_days", 1)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("WORDBANK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; the environment carries everything.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
